package fluentsql

// -----------------------------------------------------------------------------
// JOIN OPERATIONS
// -----------------------------------------------------------------------------
// Bu dosya, QueryBuilder'ın JOIN kuran metodlarını içerir. Basit form
// (tablo, sol kolon, operatör, sağ kolon) tek ON koşulu üretir; callback
// formu bir JoinCriteria accumulator'ı ile birden çok On/OrOn koşulunu
// tek ON clause'unda birleştirir. JoinUsing ise USING (kolon, ...)
// parçası üretir.
// -----------------------------------------------------------------------------

// JoinCriteriaFunc, callback formundaki join'lerde ON koşullarını kuran
// fonksiyon tipidir.
type JoinCriteriaFunc func(*JoinCriteria)

// JoinCriteria, bir join'in ON koşullarını biriktiren özel accumulator'dır.
// On/OrOn kolon-kolon karşılaştırması üretir (binding tüketmez);
// OnValue binding'li koşul ekler.
type JoinCriteria struct {
	clauses []WhereClause
}

// On, AND ile bağlanan kolon-kolon karşılaştırması ekler.
//
//	j.On("users.id", "=", "posts.user_id")
//	→ ON `users`.`id` = `posts`.`user_id`
func (jc *JoinCriteria) On(first, operator, second string) *JoinCriteria {
	validateIdentifier(first, "column")
	validateIdentifier(second, "column")
	jc.clauses = append(jc.clauses, WhereClause{
		Column: first, Operator: operator, ValueColumn: second, Boolean: "AND",
	})
	return jc
}

// OrOn, OR ile bağlanan kolon-kolon karşılaştırması ekler.
func (jc *JoinCriteria) OrOn(first, operator, second string) *JoinCriteria {
	validateIdentifier(first, "column")
	validateIdentifier(second, "column")
	jc.clauses = append(jc.clauses, WhereClause{
		Column: first, Operator: operator, ValueColumn: second, Boolean: "OR",
	})
	return jc
}

// OnValue, ON clause'una binding'li bir koşul ekler.
//
//	j.On("u.id", "=", "p.user_id").OnValue("p.published", "=", 1)
//	→ ON `u`.`id` = `p`.`user_id` AND `p`.`published` = ?
func (jc *JoinCriteria) OnValue(column, operator string, value any) *JoinCriteria {
	validateWhereColumn(column)
	jc.clauses = append(jc.clauses, WhereClause{
		Column: column, Operator: operator, Value: value, Boolean: "AND",
	})
	return jc
}

// OnNull, ON clause'una IS NULL koşulu ekler.
func (jc *JoinCriteria) OnNull(column string) *JoinCriteria {
	validateWhereColumn(column)
	jc.clauses = append(jc.clauses, WhereClause{
		Column: column, Operator: "IS", Value: nil, Boolean: "AND",
	})
	return jc
}

// addJoin, join-ekleme primitifidir.
func (qb *QueryBuilder) addJoin(j JoinClause) *QueryBuilder {
	qb.stmts.Joins = append(qb.stmts.Joins, j)
	return qb
}

// simpleJoin, tek ON koşullu join kurar.
func (qb *QueryBuilder) simpleJoin(joinType JoinType, table, first, operator, second string) *QueryBuilder {
	validateIdentifier(table, "table")
	validateIdentifier(first, "column")
	validateIdentifier(second, "column")

	return qb.addJoin(JoinClause{
		Type:  joinType,
		Table: table,
		Criteria: []WhereClause{{
			Column: first, Operator: operator, ValueColumn: second, Boolean: "AND",
		}},
	})
}

// Join, düz JOIN ekler (MySQL'de INNER JOIN ile eşdeğerdir).
//
//	qb.Table("users").Join("posts", "users.id", "=", "posts.user_id")
//	→ ... JOIN `posts` ON `users`.`id` = `posts`.`user_id`
func (qb *QueryBuilder) Join(table, first, operator, second string) *QueryBuilder {
	return qb.simpleJoin(PlainJoin, table, first, operator, second)
}

// InnerJoin, INNER JOIN ekler.
func (qb *QueryBuilder) InnerJoin(table, first, operator, second string) *QueryBuilder {
	return qb.simpleJoin(InnerJoin, table, first, operator, second)
}

// LeftJoin, LEFT JOIN ekler.
func (qb *QueryBuilder) LeftJoin(table, first, operator, second string) *QueryBuilder {
	return qb.simpleJoin(LeftJoin, table, first, operator, second)
}

// RightJoin, RIGHT JOIN ekler.
func (qb *QueryBuilder) RightJoin(table, first, operator, second string) *QueryBuilder {
	return qb.simpleJoin(RightJoin, table, first, operator, second)
}

// CrossJoin, koşulsuz CROSS JOIN ekler.
func (qb *QueryBuilder) CrossJoin(table string) *QueryBuilder {
	validateIdentifier(table, "table")
	return qb.addJoin(JoinClause{Type: CrossJoin, Table: table})
}

// JoinOn, callback formunda join kurar: callback'e verilen JoinCriteria
// üzerindeki tüm On/OrOn çağrıları tek ON clause'unda birleşir.
//
//	qb.JoinOn(fluentsql.LeftJoin, "posts", func(j *fluentsql.JoinCriteria) {
//	    j.On("users.id", "=", "posts.user_id").
//	        OrOn("users.id", "=", "posts.editor_id")
//	})
func (qb *QueryBuilder) JoinOn(joinType JoinType, table string, fn JoinCriteriaFunc) *QueryBuilder {
	validateIdentifier(table, "table")

	criteria := &JoinCriteria{}
	fn(criteria)

	return qb.addJoin(JoinClause{
		Type:     joinType,
		Table:    table,
		Criteria: criteria.clauses,
	})
}

// InnerJoinOn, JoinOn'un INNER kısayoludur.
func (qb *QueryBuilder) InnerJoinOn(table string, fn JoinCriteriaFunc) *QueryBuilder {
	return qb.JoinOn(InnerJoin, table, fn)
}

// LeftJoinOn, JoinOn'un LEFT kısayoludur.
func (qb *QueryBuilder) LeftJoinOn(table string, fn JoinCriteriaFunc) *QueryBuilder {
	return qb.JoinOn(LeftJoin, table, fn)
}

// JoinUsing, ortak kolon adları üzerinden USING formlu join ekler.
//
//	qb.JoinUsing("profiles", "user_id")
//	→ ... JOIN `profiles` USING (`user_id`)
func (qb *QueryBuilder) JoinUsing(table string, columns ...string) *QueryBuilder {
	validateIdentifier(table, "table")
	for _, col := range columns {
		validateIdentifier(col, "column")
	}
	return qb.addJoin(JoinClause{Table: table, Using: columns})
}
