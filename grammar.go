package fluentsql

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// -----------------------------------------------------------------------------
// Grammar — SQL Lehçesi Derleyicisi
// -----------------------------------------------------------------------------
// Grammar, bir Statements snapshot'ını tek bir operasyon türü için
// {SQL, Bindings} çiftine derleyen saf fonksiyon kümesidir. Asla SQL
// ÇALIŞTIRMAZ; identifier quote'lama ve değer → placeholder eşlemesi
// tamamen bu katmana aittir.
//
// Farklı veritabanları için farklı implementasyonlar:
// - MySQLGrammar: MySQL/MariaDB (backtick, INSERT IGNORE, ON DUPLICATE KEY)
// - PostgresGrammar: PostgreSQL (çift tırnak, $n placeholder, ON CONFLICT)
// - SQLiteGrammar: SQLite (çift tırnak, INSERT OR IGNORE / OR REPLACE)
//
// Operasyon türleri stringly-typed metod lookup'ı yerine kapalı bir enum
// (CompileType) üzerinden dispatch edilir.
// -----------------------------------------------------------------------------

// CompileType, grammar'ın derleyebildiği operasyon türlerinin kapalı kümesidir.
type CompileType int

const (
	CompileSelect CompileType = iota
	CompileInsert
	CompileInsertIgnore
	CompileReplace
	CompileUpdate
	CompileDelete
	CompileCriteriaOnly
)

// Grammar, SQL lehçesine özgü sorgu üretimini tanımlar.
type Grammar interface {
	// Name, grammar'ın kimliğini döndürür (mysql | postgres | sqlite3).
	// Loglama ve debug aşamasında tanımlayıcıdır.
	Name() string

	// Wrap, identifier'ları (kolon/tablo adları) lehçeye göre sarmalar.
	// MySQL: `users` — PostgreSQL/SQLite: "users".
	// Geçersiz identifier'lar için error döner, panic atmaz.
	Wrap(value string) (string, error)

	// Placeholder, i'inci (1 tabanlı) binding için driver'a gidecek
	// placeholder metnini döndürür. MySQL/SQLite: "?" — PostgreSQL: "$1".
	// Derlenen SQL her zaman evrensel "?" kullanır; çeviri Execution
	// Façade'de, prepare'den hemen önce yapılır.
	Placeholder(index int) string

	// Compile, verilen snapshot'ı istenen operasyon türü için derler.
	// data parametresi yalnızca insert/update ailesinde kullanılır.
	// Boş insert/update payload'ı ErrEmptyData ile fail eder; bunun
	// dışında iyi biçimli snapshot'lar için derleme totaldir.
	Compile(kind CompileType, stmts *Statements, data map[string]any) (*Query, error)
}

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_\.]+$`)

var allowedOperators = map[string]bool{
	"=":           true,
	"!=":          true,
	"<>":          true,
	"<":           true,
	">":           true,
	"<=":          true,
	">=":          true,
	"LIKE":        true,
	"NOT LIKE":    true,
	"IN":          true,
	"NOT IN":      true,
	"BETWEEN":     true,
	"NOT BETWEEN": true,
	"IS":          true,
	"IS NOT":      true,
}

// baseGrammar, dialect implementasyonlarının ortak gövdesidir.
// Quote karakteri ve verb yazımları alan olarak tutulur; derleme
// algoritmalarının tamamı bu yapı üzerinde yaşar, alt tipler yalnızca
// lehçe farklarını taşır. Bir iskelet — ruhu dialect verir.
type baseGrammar struct {
	name  string
	quote string

	insertVerb   string // "INSERT INTO"
	ignoreVerb   string // lehçenin "insert or ignore" yazımı ("" → suffix formu)
	ignoreSuffix string // verb yoksa eklenen suffix (ON CONFLICT DO NOTHING)
	replaceVerb  string // lehçenin "replace" yazımı ("" → desteklenmiyor)

	supportsOnDuplicate bool
}

// Name, grammar adını döndürür.
func (g *baseGrammar) Name() string {
	return g.name
}

// Placeholder, varsayılan evrensel placeholder'ı döndürür.
// $n isteyen lehçeler override eder.
func (g *baseGrammar) Placeholder(index int) string {
	return "?"
}

// Wrap, kolon ve tablo isimlerini lehçenin quote karakteri ile sarmalar.
// Tablo.kolon formatında her parça ayrı sarmalanır ve ayrı validate edilir.
func (g *baseGrammar) Wrap(value string) (string, error) {
	if value == "*" {
		return value, nil
	}

	if strings.Contains(value, ".") {
		parts := strings.Split(value, ".")
		wrapped := make([]string, len(parts))
		for i, part := range parts {
			if part == "*" {
				wrapped[i] = part
				continue
			}
			if !identifierPattern.MatchString(part) {
				return "", fmt.Errorf("invalid SQL identifier: %s (contains unsafe characters)", part)
			}
			wrapped[i] = g.quote + part + g.quote
		}
		return strings.Join(wrapped, "."), nil
	}

	if !identifierPattern.MatchString(value) {
		return "", fmt.Errorf("invalid SQL identifier: %s (contains unsafe characters)", value)
	}

	return g.quote + value + g.quote, nil
}

// validateOperator, verilen operatörün whitelist'te olup olmadığını kontrol eder.
func (g *baseGrammar) validateOperator(operator string) error {
	op := strings.ToUpper(strings.TrimSpace(operator))
	if !allowedOperators[op] {
		return fmt.Errorf("invalid SQL operator: %s (not in whitelist)", operator)
	}
	return nil
}

// Compile, operasyon türünü kapalı enum üzerinden ilgili derleyiciye yönlendirir.
func (g *baseGrammar) Compile(kind CompileType, stmts *Statements, data map[string]any) (*Query, error) {
	switch kind {
	case CompileSelect:
		return g.compileSelect(stmts)
	case CompileInsert:
		return g.compileInsert(stmts, data, g.insertVerb, "")
	case CompileInsertIgnore:
		if g.ignoreVerb != "" {
			return g.compileInsert(stmts, data, g.ignoreVerb, "")
		}
		return g.compileInsert(stmts, data, g.insertVerb, g.ignoreSuffix)
	case CompileReplace:
		if g.replaceVerb == "" {
			return nil, fmt.Errorf("fluentsql: %s dialect does not support REPLACE", g.name)
		}
		return g.compileInsert(stmts, data, g.replaceVerb, "")
	case CompileUpdate:
		return g.compileUpdate(stmts, data)
	case CompileDelete:
		return g.compileDelete(stmts)
	case CompileCriteriaOnly:
		sql, args, err := g.compileCriteria(stmts.Wheres, "")
		if err != nil {
			return nil, err
		}
		return &Query{SQL: sql, Bindings: args}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompileType, kind)
	}
}

// tableAlias, tablo için kayıtlı alias'ı (küçük harfe çevrilmiş) döndürür.
func (g *baseGrammar) tableAlias(stmts *Statements, table string) string {
	if stmts.Aliases == nil {
		return ""
	}
	return strings.ToLower(stmts.Aliases[table])
}

// wrapColumn, bir kolon referansını sarmalar. SQL fonksiyonu içeren
// ifadeler (COUNT(*), DATE(x) gibi) olduğu gibi bırakılır. Aktif bir tablo
// alias bağlamı varsa, nokta içermeyen kolon adları alias ile nitelenir.
func (g *baseGrammar) wrapColumn(column, aliasCtx string) (string, error) {
	if strings.Contains(column, "(") {
		if strings.Contains(column, ";") || strings.Contains(column, "--") {
			return "", fmt.Errorf("invalid column expression: %s (suspicious content)", column)
		}
		return column, nil
	}

	if aliasCtx != "" && !strings.Contains(column, ".") && column != "*" {
		column = aliasCtx + "." + column
	}

	return g.Wrap(column)
}

// compileSelect, snapshot'tan tam bir SELECT sorgusu üretir. Kullanılmayan
// clause'lar tamamen atlanır — sarkık keyword üretilmez. Union üyeleri en
// sonda, ana sorguyu tek parantezli gruba alarak sırayla eklenir.
func (g *baseGrammar) compileSelect(stmts *Statements) (*Query, error) {
	var args []any

	aliasCtx := g.tableAlias(stmts, stmts.Table)

	colSQL, colArgs, err := g.compileSelectColumns(stmts, aliasCtx)
	if err != nil {
		return nil, fmt.Errorf("select compilation failed: %w", err)
	}
	args = append(args, colArgs...)

	sql := "SELECT "
	if stmts.Distinct {
		sql += "DISTINCT "
	}
	sql += colSQL

	if stmts.Table != "" {
		wrappedTable, err := g.Wrap(stmts.Table)
		if err != nil {
			return nil, fmt.Errorf("table wrap error: %w", err)
		}
		sql += " FROM " + wrappedTable
		if aliasCtx != "" {
			wrappedAlias, err := g.Wrap(aliasCtx)
			if err != nil {
				return nil, fmt.Errorf("alias wrap error: %w", err)
			}
			sql += " AS " + wrappedAlias
		}
	}

	joinSQL, joinArgs, err := g.compileJoins(stmts.Joins)
	if err != nil {
		return nil, err
	}
	sql += joinSQL
	args = append(args, joinArgs...)

	if len(stmts.Wheres) > 0 {
		whereSQL, whereArgs, err := g.compileCriteria(stmts.Wheres, aliasCtx)
		if err != nil {
			return nil, fmt.Errorf("where clause error: %w", err)
		}
		if whereSQL != "" {
			sql += " WHERE " + whereSQL
			args = append(args, whereArgs...)
		}
	}

	groupSQL, err := g.compileGroupBys(stmts.GroupBys)
	if err != nil {
		return nil, err
	}
	sql += groupSQL

	if len(stmts.Havings) > 0 {
		havingSQL, havingArgs, err := g.compileCriteria(stmts.Havings, aliasCtx)
		if err != nil {
			return nil, fmt.Errorf("having clause error: %w", err)
		}
		if havingSQL != "" {
			sql += " HAVING " + havingSQL
			args = append(args, havingArgs...)
		}
	}

	orderSQL, err := g.compileOrderBys(stmts.OrderBys)
	if err != nil {
		return nil, err
	}
	sql += orderSQL

	sql += g.compileLimitOffset(stmts)

	if stmts.Lock != "" {
		sql += " FOR " + stmts.Lock
	}

	if len(stmts.Unions) > 0 {
		sql = "(" + sql + ")"
		for _, u := range stmts.Unions {
			// Union üyeleri snapshot KOPYASI üzerinden, kendi union
			// zincirleri olmadan derlenir (düzleştirme union anında
			// yapıldı); üyenin canlı snapshot'ına dokunulmaz.
			member := *u.Builder.compileStatements()
			member.Unions = nil
			memberQuery, err := g.compileSelect(&member)
			if err != nil {
				return nil, fmt.Errorf("union compilation failed: %w", err)
			}
			sql += " UNION "
			if u.Type != UnionPlain {
				sql += string(u.Type) + " "
			}
			sql += "(" + memberQuery.SQL + ")"
			args = append(args, memberQuery.Bindings...)
		}
	}

	return &Query{SQL: sql, Bindings: args}, nil
}

// compileSelectColumns, select listesini derler. Liste boşsa "*" kullanılır.
// "expr as alias" biçimindeki string'lerde her iki taraf ayrı sarmalanır;
// RawExpr girdileri olduğu gibi yerleştirilip binding'leri merge edilir.
func (g *baseGrammar) compileSelectColumns(stmts *Statements, aliasCtx string) (string, []any, error) {
	if len(stmts.Selects) == 0 {
		return "*", nil, nil
	}

	parts := make([]string, 0, len(stmts.Selects))
	var args []any

	for _, sel := range stmts.Selects {
		switch col := sel.(type) {
		case *RawExpr:
			parts = append(parts, col.sql)
			args = append(args, col.bindings...)
		case string:
			lower := strings.ToLower(col)
			if idx := strings.Index(lower, " as "); idx > 0 {
				expr := strings.TrimSpace(col[:idx])
				alias := strings.TrimSpace(col[idx+4:])
				wrappedExpr, err := g.wrapColumn(expr, aliasCtx)
				if err != nil {
					return "", nil, err
				}
				wrappedAlias, err := g.Wrap(alias)
				if err != nil {
					return "", nil, err
				}
				parts = append(parts, wrappedExpr+" AS "+wrappedAlias)
				continue
			}
			wrapped, err := g.wrapColumn(col, aliasCtx)
			if err != nil {
				return "", nil, err
			}
			parts = append(parts, wrapped)
		default:
			return "", nil, fmt.Errorf("unsupported select column type %T", sel)
		}
	}

	return strings.Join(parts, ", "), args, nil
}

// compileJoins, join listesini derler. Criteria dolu ise ON, Using dolu
// ise USING formu üretilir.
func (g *baseGrammar) compileJoins(joins []JoinClause) (string, []any, error) {
	var sb strings.Builder
	var args []any

	for _, j := range joins {
		wrappedTable, err := g.Wrap(j.Table)
		if err != nil {
			return "", nil, fmt.Errorf("join table wrap error: %w", err)
		}

		sb.WriteString(" ")
		if j.Type != PlainJoin {
			sb.WriteString(string(j.Type))
			sb.WriteString(" ")
		}
		sb.WriteString("JOIN ")
		sb.WriteString(wrappedTable)

		if j.Alias != "" {
			wrappedAlias, err := g.Wrap(strings.ToLower(j.Alias))
			if err != nil {
				return "", nil, fmt.Errorf("join alias wrap error: %w", err)
			}
			sb.WriteString(" AS ")
			sb.WriteString(wrappedAlias)
		}

		switch {
		case len(j.Using) > 0:
			wrapped, err := g.wrapList(j.Using)
			if err != nil {
				return "", nil, err
			}
			sb.WriteString(" USING (")
			sb.WriteString(strings.Join(wrapped, ", "))
			sb.WriteString(")")
		case len(j.Criteria) > 0:
			onSQL, onArgs, err := g.compileCriteria(j.Criteria, "")
			if err != nil {
				return "", nil, fmt.Errorf("join criteria error: %w", err)
			}
			sb.WriteString(" ON ")
			sb.WriteString(onSQL)
			args = append(args, onArgs...)
		}
	}

	return sb.String(), args, nil
}

// compileGroupBys, GROUP BY bölümünü derler; liste boşsa hiçbir şey üretmez.
func (g *baseGrammar) compileGroupBys(groupBys []string) (string, error) {
	if len(groupBys) == 0 {
		return "", nil
	}
	wrapped, err := g.wrapList(groupBys)
	if err != nil {
		return "", fmt.Errorf("group by wrap error: %w", err)
	}
	return " GROUP BY " + strings.Join(wrapped, ", "), nil
}

// compileOrderBys, ORDER BY bölümünü derler.
func (g *baseGrammar) compileOrderBys(orderBys []OrderClause) (string, error) {
	if len(orderBys) == 0 {
		return "", nil
	}
	parts := make([]string, len(orderBys))
	for i, order := range orderBys {
		wrapped, err := g.wrapColumn(order.Column, "")
		if err != nil {
			return "", fmt.Errorf("order column wrap error: %w", err)
		}
		parts[i] = wrapped + " " + string(order.Direction)
	}
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

// compileLimitOffset, LIMIT/OFFSET bölümünü derler. Sıfır değerler
// "clause kullanılmadı" anlamına gelir ve atlanır.
func (g *baseGrammar) compileLimitOffset(stmts *Statements) string {
	sql := ""
	if stmts.Limit > 0 {
		sql += fmt.Sprintf(" LIMIT %d", stmts.Limit)
	}
	if stmts.Offset > 0 {
		sql += fmt.Sprintf(" OFFSET %d", stmts.Offset)
	}
	return sql
}

// compileInsert, INSERT / INSERT IGNORE / REPLACE ailesini derler.
// Kolonlar deterministik çıktı için sıralanır; RawExpr değerler metin
// olarak inline edilir ve pozisyonel binding listesine girmez.
func (g *baseGrammar) compileInsert(stmts *Statements, data map[string]any, verb, suffix string) (*Query, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: insert requires at least one column", ErrEmptyData)
	}

	wrappedTable, err := g.Wrap(stmts.Table)
	if err != nil {
		return nil, fmt.Errorf("table wrap error: %w", err)
	}

	keys := sortedKeys(data)

	cols := make([]string, 0, len(keys))
	values := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))

	for _, k := range keys {
		wrappedCol, err := g.Wrap(k)
		if err != nil {
			return nil, fmt.Errorf("column wrap error: %w", err)
		}
		cols = append(cols, wrappedCol)

		if raw, ok := data[k].(*RawExpr); ok {
			values = append(values, raw.sql)
			args = append(args, raw.bindings...)
			continue
		}
		values = append(values, "?")
		args = append(args, normalizeBinding(data[k]))
	}

	sql := fmt.Sprintf("%s %s (%s) VALUES (%s)",
		verb,
		wrappedTable,
		strings.Join(cols, ", "),
		strings.Join(values, ", "),
	)
	sql += suffix

	if stmts.OnDuplicate != nil {
		if !g.supportsOnDuplicate {
			return nil, fmt.Errorf("fluentsql: %s dialect does not support ON DUPLICATE KEY UPDATE", g.name)
		}
		setSQL, setArgs, err := g.compileSetList(stmts.OnDuplicate)
		if err != nil {
			return nil, fmt.Errorf("on duplicate key update error: %w", err)
		}
		sql += " ON DUPLICATE KEY UPDATE " + setSQL
		args = append(args, setArgs...)
	}

	return &Query{SQL: sql, Bindings: args}, nil
}

// compileUpdate, UPDATE sorgusu üretir. SET listesi ile UPDATE sonrası
// ON DUPLICATE payload'ı aynı renderer'ı paylaşır.
func (g *baseGrammar) compileUpdate(stmts *Statements, data map[string]any) (*Query, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: update requires at least one column", ErrEmptyData)
	}

	wrappedTable, err := g.Wrap(stmts.Table)
	if err != nil {
		return nil, fmt.Errorf("table wrap error: %w", err)
	}

	var args []any
	sql := "UPDATE " + wrappedTable

	joinSQL, joinArgs, err := g.compileJoins(stmts.Joins)
	if err != nil {
		return nil, err
	}
	sql += joinSQL
	args = append(args, joinArgs...)

	setSQL, setArgs, err := g.compileSetList(data)
	if err != nil {
		return nil, err
	}
	sql += " SET " + setSQL
	args = append(args, setArgs...)

	tail, tailArgs, err := g.compileConditionTail(stmts)
	if err != nil {
		return nil, err
	}
	sql += tail
	args = append(args, tailArgs...)

	return &Query{SQL: sql, Bindings: args}, nil
}

// compileDelete, DELETE sorgusu üretir.
func (g *baseGrammar) compileDelete(stmts *Statements) (*Query, error) {
	wrappedTable, err := g.Wrap(stmts.Table)
	if err != nil {
		return nil, fmt.Errorf("table wrap error: %w", err)
	}

	var args []any
	sql := "DELETE FROM " + wrappedTable

	joinSQL, joinArgs, err := g.compileJoins(stmts.Joins)
	if err != nil {
		return nil, err
	}
	sql += joinSQL
	args = append(args, joinArgs...)

	tail, tailArgs, err := g.compileConditionTail(stmts)
	if err != nil {
		return nil, err
	}
	sql += tail
	args = append(args, tailArgs...)

	return &Query{SQL: sql, Bindings: args}, nil
}

// compileConditionTail, update/delete'in WHERE/GROUP BY/ORDER BY/LIMIT/OFFSET
// kuyruğunu derler.
func (g *baseGrammar) compileConditionTail(stmts *Statements) (string, []any, error) {
	var args []any
	sql := ""

	if len(stmts.Wheres) > 0 {
		whereSQL, whereArgs, err := g.compileCriteria(stmts.Wheres, "")
		if err != nil {
			return "", nil, fmt.Errorf("where clause error: %w", err)
		}
		if whereSQL != "" {
			sql += " WHERE " + whereSQL
			args = append(args, whereArgs...)
		}
	}

	groupSQL, err := g.compileGroupBys(stmts.GroupBys)
	if err != nil {
		return "", nil, err
	}
	sql += groupSQL

	orderSQL, err := g.compileOrderBys(stmts.OrderBys)
	if err != nil {
		return "", nil, err
	}
	sql += orderSQL

	sql += g.compileLimitOffset(stmts)

	return sql, args, nil
}

// compileSetList, "col = ?, col = ?" biçimindeki SET listesini üretir.
// UPDATE ve ON DUPLICATE KEY UPDATE aynı renderer'ı kullanır.
func (g *baseGrammar) compileSetList(data map[string]any) (string, []any, error) {
	if len(data) == 0 {
		return "", nil, fmt.Errorf("%w: set list requires at least one column", ErrEmptyData)
	}

	keys := sortedKeys(data)
	parts := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))

	for _, k := range keys {
		wrappedCol, err := g.Wrap(k)
		if err != nil {
			return "", nil, fmt.Errorf("column wrap error: %w", err)
		}
		if raw, ok := data[k].(*RawExpr); ok {
			parts = append(parts, wrappedCol+" = "+raw.sql)
			args = append(args, raw.bindings...)
			continue
		}
		parts = append(parts, wrappedCol+" = ?")
		args = append(args, normalizeBinding(data[k]))
	}

	return strings.Join(parts, ", "), args, nil
}

// critFragment, derlenmiş tek bir koşul girdisini joiner'ı ile birlikte tutar.
type critFragment struct {
	joiner string
	text   string
}

// compileCriteria, koşul listesini derleyen merkezi algoritmadır.
// WHERE, HAVING, JOIN ON ve nested gruplar aynı yoldan geçer.
//
// Girdiler ekleme sırasıyla gezilir; her girdi sıfır, bir veya birden çok
// binding üretebilir ve binding'ler girdi sırasında düzleştirilerek `?`
// pozisyonları ile hizalı kalır. İlk girdinin joiner'ı atılır. Boş nested
// gruplar hiçbir fragment üretmeden atlanır.
func (g *baseGrammar) compileCriteria(clauses []WhereClause, aliasCtx string) (string, []any, error) {
	frags := make([]critFragment, 0, len(clauses))
	var args []any

	for _, w := range clauses {
		text, entryArgs, err := g.compileCriterion(w, aliasCtx)
		if err != nil {
			return "", nil, err
		}
		if text == "" {
			continue
		}

		joiner := w.Boolean
		if joiner == "" {
			joiner = "AND"
		}
		frags = append(frags, critFragment{joiner: joiner, text: text})
		args = append(args, entryArgs...)
	}

	if len(frags) == 0 {
		return "", args, nil
	}

	var sb strings.Builder
	sb.WriteString(frags[0].text)
	for _, f := range frags[1:] {
		sb.WriteString(" ")
		sb.WriteString(f.joiner)
		sb.WriteString(" ")
		sb.WriteString(f.text)
	}

	return sb.String(), args, nil
}

// compileCriterion, tek bir koşul girdisini derler.
func (g *baseGrammar) compileCriterion(w WhereClause, aliasCtx string) (string, []any, error) {
	// Nested grup: izole derlenir, parantezlenir, binding'leri yerinde
	// merge edilir. Her grup kendi bağımsız listesine sahip olduğundan
	// recursion her zaman sonlanır.
	if w.Group != nil {
		inner, innerArgs, err := g.compileCriteria(w.Group, aliasCtx)
		if err != nil {
			return "", nil, err
		}
		if inner == "" {
			return "", nil, nil
		}
		return "(" + inner + ")", innerArgs, nil
	}

	// Ham koşul: metin aynen, binding'ler merge.
	if w.Raw != nil {
		return w.Raw.sql, w.Raw.bindings, nil
	}

	wrappedCol, err := g.wrapColumn(w.Column, aliasCtx)
	if err != nil {
		return "", nil, fmt.Errorf("where column wrap error: %w", err)
	}

	// Kolon-kolon karşılaştırması (JOIN ON): binding tüketmez.
	if w.ValueColumn != "" {
		if err := g.validateOperator(w.Operator); err != nil {
			return "", nil, err
		}
		wrappedRight, err := g.wrapColumn(w.ValueColumn, aliasCtx)
		if err != nil {
			return "", nil, fmt.Errorf("where column wrap error: %w", err)
		}
		return wrappedCol + " " + strings.ToUpper(w.Operator) + " " + wrappedRight, nil, nil
	}

	if err := g.validateOperator(w.Operator); err != nil {
		return "", nil, err
	}
	operator := strings.ToUpper(strings.TrimSpace(w.Operator))

	switch operator {
	case "IN", "NOT IN":
		values, ok := w.Value.([]any)
		if !ok {
			return "", nil, fmt.Errorf("IN/NOT IN operator requires []any value")
		}
		placeholders := make([]string, len(values))
		args := make([]any, len(values))
		for i, v := range values {
			placeholders[i] = "?"
			args[i] = normalizeBinding(v)
		}
		return fmt.Sprintf("%s %s (%s)", wrappedCol, operator, strings.Join(placeholders, ", ")), args, nil

	case "BETWEEN", "NOT BETWEEN":
		values, ok := w.Value.([]any)
		if !ok || len(values) != 2 {
			return "", nil, fmt.Errorf("BETWEEN operator requires exactly 2 values")
		}
		return fmt.Sprintf("%s %s ? AND ?", wrappedCol, operator),
			[]any{normalizeBinding(values[0]), normalizeBinding(values[1])}, nil

	case "IS", "IS NOT":
		if w.Value == nil {
			return fmt.Sprintf("%s %s NULL", wrappedCol, operator), nil, nil
		}
		return fmt.Sprintf("%s %s ?", wrappedCol, operator), []any{normalizeBinding(w.Value)}, nil

	default:
		if raw, ok := w.Value.(*RawExpr); ok {
			return fmt.Sprintf("%s %s %s", wrappedCol, operator, raw.sql), raw.bindings, nil
		}
		return fmt.Sprintf("%s %s ?", wrappedCol, operator), []any{normalizeBinding(w.Value)}, nil
	}
}

// wrapList, bir identifier listesini sarmalar.
func (g *baseGrammar) wrapList(values []string) ([]string, error) {
	wrapped := make([]string, len(values))
	for i, value := range values {
		w, err := g.Wrap(value)
		if err != nil {
			return nil, fmt.Errorf("failed to wrap '%s': %w", value, err)
		}
		wrapped[i] = w
	}
	return wrapped, nil
}

// normalizeBinding, binding'e girecek değeri normalize eder.
// MySQL'in native boolean literal'i olmadığından bool → 0/1'e çevrilir.
// fmt.Stringer implement eden değerler (time.Time hariç — onu driver
// native işler) string'e çevrilerek bağlanır.
func normalizeBinding(value any) any {
	switch v := value.(type) {
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		if s, ok := value.(fmt.Stringer); ok && !isTimeValue(value) {
			return s.String()
		}
		return value
	}
}

func isTimeValue(value any) bool {
	switch value.(type) {
	case interface{ UnixNano() int64 }:
		return true
	default:
		return false
	}
}

// sortedKeys, map'in anahtarlarını sıralı döndürür. Go map iterasyonu
// nondeterministik olduğundan, aynı snapshot'ın iki derlemesinin
// byte-identical çıkması için kolonlar daima sıralanır.
func sortedKeys(data map[string]any) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
