package fluentsql

import (
	"fmt"
	"strings"
)

// -----------------------------------------------------------------------------
// WHERE / HAVING OPERATIONS
// -----------------------------------------------------------------------------
// Bu dosya, QueryBuilder'ın koşul biriktiren metodlarını içerir. Tüm
// varyantlar tek bir append primitifine (addWhere) iner; joiner kelimesi
// ("AND", "OR", "AND NOT", "OR NOT") girdiyle birlikte saklanır ve ilk
// girdininki derleme sırasında atılır.
//
// GÜVENLİK NOTU:
// Tüm değerler prepared statement ile bağlanır. Kolon adları builder
// sınırında validate edilir, operatörler Grammar'da whitelist'ten geçer.
// -----------------------------------------------------------------------------

// addWhere, koşul-ekleme primitifidir. where ailesinin tamamı buraya iner.
func (qb *QueryBuilder) addWhere(w WhereClause) *QueryBuilder {
	qb.stmts.Wheres = append(qb.stmts.Wheres, w)
	return qb
}

// Where, sorguya AND ile bağlanan bir koşul ekler.
//
// Örnek:
//
//	qb.Where("status", "=", "active")
//	qb.Where("age", ">", 18)
//	qb.Where("name", "LIKE", "%john%")
func (qb *QueryBuilder) Where(column string, operator string, value any) *QueryBuilder {
	validateWhereColumn(column)
	return qb.addWhere(WhereClause{Column: column, Operator: operator, Value: value, Boolean: "AND"})
}

// WhereEq, iki argümanlı eşitlik kısayoludur (operator "=" varsayılır).
func (qb *QueryBuilder) WhereEq(column string, value any) *QueryBuilder {
	return qb.Where(column, "=", value)
}

// OrWhere, sorguya OR ile bağlanan bir koşul ekler.
//
//	qb.Where("role", "=", "admin").OrWhere("role", "=", "moderator")
//	→ WHERE `role` = ? OR `role` = ?
func (qb *QueryBuilder) OrWhere(column string, operator string, value any) *QueryBuilder {
	validateWhereColumn(column)
	return qb.addWhere(WhereClause{Column: column, Operator: operator, Value: value, Boolean: "OR"})
}

// WhereNot, AND NOT ile bağlanan bir koşul ekler.
func (qb *QueryBuilder) WhereNot(column string, operator string, value any) *QueryBuilder {
	validateWhereColumn(column)
	return qb.addWhere(WhereClause{Column: column, Operator: operator, Value: value, Boolean: "AND NOT"})
}

// OrWhereNot, OR NOT ile bağlanan bir koşul ekler.
func (qb *QueryBuilder) OrWhereNot(column string, operator string, value any) *QueryBuilder {
	validateWhereColumn(column)
	return qb.addWhere(WhereClause{Column: column, Operator: operator, Value: value, Boolean: "OR NOT"})
}

// WhereIn, kolonun değerinin dizide olup olmadığını kontrol eder.
// Eleman başına bir binding üretilir, eleman sırası korunur.
//
//	qb.WhereIn("status", []any{"active", "pending"})
//	→ WHERE `status` IN (?, ?)
func (qb *QueryBuilder) WhereIn(column string, values []any) *QueryBuilder {
	validateWhereColumn(column)
	return qb.addWhere(WhereClause{Column: column, Operator: "IN", Value: values, Boolean: "AND"})
}

// OrWhereIn, WhereIn'in OR ile bağlanan halidir.
func (qb *QueryBuilder) OrWhereIn(column string, values []any) *QueryBuilder {
	validateWhereColumn(column)
	return qb.addWhere(WhereClause{Column: column, Operator: "IN", Value: values, Boolean: "OR"})
}

// WhereNotIn, kolonun değerinin dizide OLMADIĞINI kontrol eder.
func (qb *QueryBuilder) WhereNotIn(column string, values []any) *QueryBuilder {
	validateWhereColumn(column)
	return qb.addWhere(WhereClause{Column: column, Operator: "NOT IN", Value: values, Boolean: "AND"})
}

// WhereBetween, değerin iki sınır arasında olup olmadığını kontrol eder.
// Her iki sınır da sırayla bağlanır.
//
//	qb.WhereBetween("age", 18, 65)
//	→ WHERE `age` BETWEEN ? AND ?
func (qb *QueryBuilder) WhereBetween(column string, min, max any) *QueryBuilder {
	validateWhereColumn(column)
	return qb.addWhere(WhereClause{Column: column, Operator: "BETWEEN", Value: []any{min, max}, Boolean: "AND"})
}

// WhereNotBetween, değerin iki sınır arasında OLMADIĞINI kontrol eder.
func (qb *QueryBuilder) WhereNotBetween(column string, min, max any) *QueryBuilder {
	validateWhereColumn(column)
	return qb.addWhere(WhereClause{Column: column, Operator: "NOT BETWEEN", Value: []any{min, max}, Boolean: "AND"})
}

// WhereNull, kolonun NULL olup olmadığını kontrol eder. Binding tüketmez.
//
//	qb.WhereNull("deleted_at") → WHERE `deleted_at` IS NULL
func (qb *QueryBuilder) WhereNull(column string) *QueryBuilder {
	validateWhereColumn(column)
	return qb.addWhere(WhereClause{Column: column, Operator: "IS", Value: nil, Boolean: "AND"})
}

// WhereNotNull, kolonun NULL olmadığını kontrol eder. Binding tüketmez.
func (qb *QueryBuilder) WhereNotNull(column string) *QueryBuilder {
	validateWhereColumn(column)
	return qb.addWhere(WhereClause{Column: column, Operator: "IS NOT", Value: nil, Boolean: "AND"})
}

// OrWhereNull, WhereNull'un OR ile bağlanan halidir.
func (qb *QueryBuilder) OrWhereNull(column string) *QueryBuilder {
	validateWhereColumn(column)
	return qb.addWhere(WhereClause{Column: column, Operator: "IS", Value: nil, Boolean: "OR"})
}

// WhereRaw, ham bir koşul parçası ekler. Raw metin quote'lanmaz;
// binding'leri pozisyonel olarak merge edilir.
//
//	qb.WhereRaw(fluentsql.Raw("YEAR(created_at) = ?", 2024))
func (qb *QueryBuilder) WhereRaw(raw *RawExpr) *QueryBuilder {
	return qb.addWhere(WhereClause{Raw: raw, Boolean: "AND"})
}

// OrWhereRaw, WhereRaw'un OR ile bağlanan halidir.
func (qb *QueryBuilder) OrWhereRaw(raw *RawExpr) *QueryBuilder {
	return qb.addWhere(WhereClause{Raw: raw, Boolean: "OR"})
}

// WhereGroup, callback ile parantezli bir nested koşul grubu kurar.
// Callback izole bir alt builder ile çağrılır; alt builder'ın koşulları
// tek grup olarak eklenir ve binding'leri kardeş koşullara göre doğru
// pozisyonda merge edilir.
//
//	qb.Where("status", "=", "active").
//	    WhereGroup(func(g *fluentsql.QueryBuilder) {
//	        g.Where("age", "<", 18).OrWhere("age", ">", 65)
//	    })
//	→ WHERE `status` = ? AND (`age` < ? OR `age` > ?)
func (qb *QueryBuilder) WhereGroup(fn GroupFunc) *QueryBuilder {
	return qb.addGroup(fn, "AND")
}

// OrWhereGroup, OR ile bağlanan nested grup ekler.
func (qb *QueryBuilder) OrWhereGroup(fn GroupFunc) *QueryBuilder {
	return qb.addGroup(fn, "OR")
}

// WhereNotGroup, AND NOT ile bağlanan nested grup ekler.
func (qb *QueryBuilder) WhereNotGroup(fn GroupFunc) *QueryBuilder {
	return qb.addGroup(fn, "AND NOT")
}

// OrWhereNotGroup, OR NOT ile bağlanan nested grup ekler.
func (qb *QueryBuilder) OrWhereNotGroup(fn GroupFunc) *QueryBuilder {
	return qb.addGroup(fn, "OR NOT")
}

// addGroup, callback'i taze bir alt builder ile çalıştırıp sonucu
// nested-grup varyantı olarak saklar. Alt builder her seferinde yeniden
// oluşturulduğundan recursion kendi parent'ının çözülmemiş state'ine
// giremez.
func (qb *QueryBuilder) addGroup(fn GroupFunc, boolean string) *QueryBuilder {
	sub := qb.subBuilder()
	fn(sub)
	group := sub.stmts.Wheres
	if group == nil {
		group = make([]WhereClause, 0)
	}
	return qb.addWhere(WhereClause{Group: group, Boolean: boolean})
}

// WhereDate, tarih kolonunun gün bazında eşitliğini kontrol eder.
//
//	qb.WhereDate("created_at", "2024-01-15") → WHERE DATE(`created_at`) = ?
func (qb *QueryBuilder) WhereDate(column string, date string) *QueryBuilder {
	validateWhereColumn(column)
	return qb.addWhere(WhereClause{Column: "DATE(" + column + ")", Operator: "=", Value: date, Boolean: "AND"})
}

// WhereYear, tarih kolonunun yılını kontrol eder.
func (qb *QueryBuilder) WhereYear(column string, year int) *QueryBuilder {
	validateWhereColumn(column)
	return qb.addWhere(WhereClause{Column: "YEAR(" + column + ")", Operator: "=", Value: year, Boolean: "AND"})
}

// WhereMonth, tarih kolonunun ayını kontrol eder (1-12).
func (qb *QueryBuilder) WhereMonth(column string, month int) *QueryBuilder {
	validateWhereColumn(column)
	return qb.addWhere(WhereClause{Column: "MONTH(" + column + ")", Operator: "=", Value: month, Boolean: "AND"})
}

// WhereDay, tarih kolonunun gününü kontrol eder (1-31).
func (qb *QueryBuilder) WhereDay(column string, day int) *QueryBuilder {
	validateWhereColumn(column)
	return qb.addWhere(WhereClause{Column: "DAY(" + column + ")", Operator: "=", Value: day, Boolean: "AND"})
}

// Having, GROUP BY sonrası filtre ekler. Aynı koşul modeli kullanılır.
func (qb *QueryBuilder) Having(column string, operator string, value any) *QueryBuilder {
	validateWhereColumn(column)
	qb.stmts.Havings = append(qb.stmts.Havings, WhereClause{
		Column: column, Operator: operator, Value: value, Boolean: "AND",
	})
	return qb
}

// OrHaving, OR ile bağlanan HAVING koşulu ekler.
func (qb *QueryBuilder) OrHaving(column string, operator string, value any) *QueryBuilder {
	validateWhereColumn(column)
	qb.stmts.Havings = append(qb.stmts.Havings, WhereClause{
		Column: column, Operator: operator, Value: value, Boolean: "OR",
	})
	return qb
}

// HavingRaw, ham bir HAVING parçası ekler.
func (qb *QueryBuilder) HavingRaw(raw *RawExpr) *QueryBuilder {
	qb.stmts.Havings = append(qb.stmts.Havings, WhereClause{Raw: raw, Boolean: "AND"})
	return qb
}

// validateWhereColumn, koşul kolonlarını validate eder. DATE(x) gibi
// fonksiyon sarmalı kolonlara esnek davranılır.
func validateWhereColumn(column string) {
	if strings.Contains(column, "(") {
		if strings.Contains(column, ";") || strings.Contains(column, "--") {
			panic(fmt.Sprintf("Invalid column expression: '%s' (suspicious content)", column))
		}
		return
	}
	validateIdentifier(column, "column")
}
