package fluentsql

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/biyonik/go-fluent-sql/cache"
)

// -----------------------------------------------------------------------------
// QUERY BUILDER — STATEMENT ACCUMULATOR
// -----------------------------------------------------------------------------
// Bu dosya, QueryBuilder'ın ana gövdesini içerir. Builder; tablo, kolonlar,
// where'lar, join'ler, group/order, limit/offset, union ve distinct gibi
// state bilgilerini Statements snapshot'ında biriktirir ve derlemeyi
// Grammar katmanına delege eder.
//
// Builder "building" dışında bir duruma geçmez: her terminal çağrı güncel
// snapshot'tan yeniden derler, derleme sonrası mutasyona devam edilebilir.
// Aynı snapshot'ın iki derlemesi byte-identical SQL üretir.
//
// GÜVENLİK:
// - Tüm değerler prepared statement ile bağlanır
// - Identifier'lar regex whitelist'inden geçer, geçersiz olanlar panic atar
// - Operator whitelist kontrolü Grammar katmanında yapılır
// -----------------------------------------------------------------------------

// validIdentifierRegex, güvenli SQL identifier pattern'ini tanımlar.
// Sadece alphanumeric, underscore ve nokta (table.column için) kabul eder.
var validIdentifierRegex = regexp.MustCompile(`^[a-zA-Z0-9_\.]+$`)

// GroupFunc, nested koşul grubu kuran callback tipidir. Callback, izole
// bir alt builder ile çağrılır; alt builder'ın koşulları parantezlenmiş
// tek bir grup olarak dış sorguya eklenir.
type GroupFunc func(*QueryBuilder)

type QueryBuilder struct {
	conn      *Connection
	executor  QueryExecutor
	grammar   Grammar
	stmts     *Statements
	overwrite bool
	inTx      bool

	cacheStore cache.Cache
	cacheKey   string
	cacheTTL   time.Duration
}

// NewBuilder, executor ve grammar alarak yeni QueryBuilder üretir.
// Bağlantısız (executor=nil) builder'lar yalnızca derleme yapabilir;
// terminal operasyonlar ErrNoConnection döner.
func NewBuilder(executor QueryExecutor, grammar Grammar) *QueryBuilder {
	return &QueryBuilder{
		executor: executor,
		grammar:  grammar,
		stmts:    newStatements(),
	}
}

// validateIdentifier, SQL identifier'ı (column/table adı) validate eder.
//
// GÜVENLİK KRİTİK:
// Bu fonksiyon builder sınırındaki ilk savunma hattıdır. Hostil
// identifier bulunursa panic atar — identifier'lar geliştirici kodundan
// gelir, kullanıcı girdisinden gelmemelidir.
//
// İzin verilenler: harf, rakam, underscore ve table.column için nokta.
func validateIdentifier(identifier string, context string) {
	if identifier == "*" {
		return
	}

	if strings.TrimSpace(identifier) == "" {
		panic(fmt.Sprintf("Invalid %s name: empty identifier", context))
	}

	if !validIdentifierRegex.MatchString(identifier) {
		panic(fmt.Sprintf("Invalid %s name: '%s' (contains unsafe characters)", context, identifier))
	}

	if strings.Contains(identifier, ".") {
		parts := strings.Split(identifier, ".")
		if len(parts) > 2 {
			panic(fmt.Sprintf("Invalid %s name: '%s' (too many dots)", context, identifier))
		}
		for _, part := range parts {
			if strings.TrimSpace(part) == "" {
				panic(fmt.Sprintf("Invalid %s name: '%s' (empty part)", context, identifier))
			}
		}
	}
}

// Table, mevcut bağlam üzerinde SIFIRDAN bir builder başlatır ve tablo
// adını set eder. From'dan farkı budur: Table yeni bir snapshot açar,
// From mevcut snapshot'ı mutate eder.
func (qb *QueryBuilder) Table(tableName string) *QueryBuilder {
	validateIdentifier(tableName, "table")

	fresh := &QueryBuilder{
		conn:      qb.conn,
		executor:  qb.executor,
		grammar:   qb.grammar,
		stmts:     newStatements(),
		overwrite: qb.overwrite,
		inTx:      qb.inTx,
	}
	fresh.stmts.Table = tableName
	return fresh
}

// From, mevcut builder'ın tablo clause'unu set eder (snapshot korunur).
func (qb *QueryBuilder) From(tableName string) *QueryBuilder {
	validateIdentifier(tableName, "table")
	qb.stmts.Table = tableName
	return qb
}

// FromAs, tabloyu alias ile birlikte set eder.
//
// Örnek:
//
//	qb.FromAs("users", "u").Where("active", "=", 1)
//	→ SELECT * FROM `users` AS `u` WHERE `u`.`active` = ?
func (qb *QueryBuilder) FromAs(tableName, alias string) *QueryBuilder {
	qb.From(tableName)
	return qb.Alias(alias, tableName)
}

// Alias, bir tablo için alias kaydeder. Alias render edilirken küçük
// harfe çevrilir; aktif alias, nitelenmemiş kolon adlarını otomatik
// niteler.
func (qb *QueryBuilder) Alias(alias, tableName string) *QueryBuilder {
	validateIdentifier(alias, "alias")
	validateIdentifier(tableName, "table")

	if qb.stmts.Aliases == nil {
		qb.stmts.Aliases = make(map[string]string)
	}
	qb.stmts.Aliases[tableName] = alias
	return qb
}

// Overwrite, overwrite modunu açar/kapatır. Açıkken Select, GroupBy gibi
// setter'lar mevcut clause içeriğini ekleme yerine DEĞİŞTİRİR; OrderBy
// aynı kolon için son yazılanı geçerli kılar.
func (qb *QueryBuilder) Overwrite(enabled bool) *QueryBuilder {
	qb.overwrite = enabled
	return qb
}

// Select, sorgudan döndürülecek kolonları belirler. Varsayılan modda
// tekrar çağrılar listeye ekleme yapar (bilinçli duplicate'lere izin
// verilir — sorumluluk çağırandadır); overwrite modunda listeyi değiştirir.
//
// Örnek:
//
//	qb.Select("id", "name", "email")
//	qb.Select("COUNT(*) as total")
func (qb *QueryBuilder) Select(columns ...string) *QueryBuilder {
	for _, col := range columns {
		validateSelectExpression(col)
	}

	entries := make([]any, len(columns))
	for i, col := range columns {
		entries[i] = col
	}

	if qb.overwrite {
		qb.stmts.Selects = entries
		return qb
	}
	qb.stmts.Selects = append(qb.stmts.Selects, entries...)
	return qb
}

// SelectAs, "expr AS alias" biçiminde kolon ekler.
func (qb *QueryBuilder) SelectAs(expr, alias string) *QueryBuilder {
	return qb.Select(expr + " as " + alias)
}

// SelectRaw, select listesine ham bir ifade ekler. Raw metin identifier
// quote'lamasından geçmez; binding'leri pozisyonel olarak merge edilir.
func (qb *QueryBuilder) SelectRaw(raw *RawExpr) *QueryBuilder {
	if qb.overwrite {
		qb.stmts.Selects = []any{raw}
		return qb
	}
	qb.stmts.Selects = append(qb.stmts.Selects, raw)
	return qb
}

// validateSelectExpression, select listesi girdilerini kontrol eder.
// SQL fonksiyonları (COUNT(*), SUM(price) vb.) için esnek, düz kolonlar
// için sıkı validation uygulanır.
func validateSelectExpression(col string) {
	if strings.Contains(col, "(") && strings.Contains(col, ")") {
		if strings.Contains(col, ";") || strings.Contains(col, "--") {
			panic(fmt.Sprintf("Invalid column expression: '%s' (suspicious content)", col))
		}
		return
	}

	if idx := strings.Index(strings.ToLower(col), " as "); idx > 0 {
		validateIdentifier(strings.TrimSpace(col[:idx]), "column")
		validateIdentifier(strings.TrimSpace(col[idx+4:]), "column alias")
		return
	}

	validateIdentifier(col, "column")
}

// Distinct, SELECT DISTINCT bayrağını set eder.
func (qb *QueryBuilder) Distinct() *QueryBuilder {
	qb.stmts.Distinct = true
	return qb
}

// GroupBy, GROUP BY listesine kolon ekler (overwrite modunda değiştirir).
func (qb *QueryBuilder) GroupBy(columns ...string) *QueryBuilder {
	for _, col := range columns {
		validateIdentifier(col, "column")
	}
	if qb.overwrite {
		qb.stmts.GroupBys = append(make([]string, 0, len(columns)), columns...)
		return qb
	}
	qb.stmts.GroupBys = append(qb.stmts.GroupBys, columns...)
	return qb
}

// OrderBy, sonuçları belirtilen kolona göre sıralar. Direction whitelist
// kontrolünden geçer; geçersiz değerler "ASC"e düşer. Overwrite modunda
// aynı kolon için son yazılan yön geçerli olur.
func (qb *QueryBuilder) OrderBy(column string, direction string) *QueryBuilder {
	validateIdentifier(column, "column")

	dir := strings.ToUpper(strings.TrimSpace(direction))

	var orderDir OrderDirection
	switch dir {
	case "DESC":
		orderDir = OrderDesc
	default:
		orderDir = OrderAsc
	}

	if qb.overwrite {
		for i, existing := range qb.stmts.OrderBys {
			if existing.Column == column {
				qb.stmts.OrderBys[i].Direction = orderDir
				return qb
			}
		}
	}

	qb.stmts.OrderBys = append(qb.stmts.OrderBys, OrderClause{
		Column:    column,
		Direction: orderDir,
	})
	return qb
}

// OrderByDesc, azalan sıralama için kısayoldur.
func (qb *QueryBuilder) OrderByDesc(column string) *QueryBuilder {
	return qb.OrderBy(column, "DESC")
}

// Limit, döndürülecek maksimum satır sayısını belirler.
func (qb *QueryBuilder) Limit(limit int) *QueryBuilder {
	qb.stmts.Limit = limit
	return qb
}

// Take, Limit için Laravel-style alias'tır.
func (qb *QueryBuilder) Take(limit int) *QueryBuilder {
	return qb.Limit(limit)
}

// Offset, atlanacak satır sayısını belirler (pagination için).
func (qb *QueryBuilder) Offset(offset int) *QueryBuilder {
	qb.stmts.Offset = offset
	return qb
}

// Skip, Offset için alias'tır.
func (qb *QueryBuilder) Skip(offset int) *QueryBuilder {
	return qb.Offset(offset)
}

// For, satır kilitleme clause'unu set eder.
//
// Örnek:
//
//	qb.Table("accounts").Where("id", "=", 1).For("UPDATE")
//	→ ... FOR UPDATE
func (qb *QueryBuilder) For(lock string) *QueryBuilder {
	qb.stmts.Lock = strings.ToUpper(strings.TrimSpace(lock))
	return qb
}

// OnDuplicateKeyUpdate, insert'e eklenecek ON DUPLICATE KEY UPDATE
// payload'ını set eder (yalnızca MySQL lehçesi). Boş map derleme anında
// ErrEmptyData ile fail eder.
func (qb *QueryBuilder) OnDuplicateKeyUpdate(data map[string]any) *QueryBuilder {
	qb.stmts.OnDuplicate = data
	return qb
}

// Union, diğer builder'ı UNION zincirine ekler. Diğer builder'ın kendi
// union'ları önce bu zincire düzleştirilir; böylece N builder'lık bir
// zincir iç içe parantezler yerine tek düzlemde
// (A) UNION (B) UNION (C) olarak derlenir.
func (qb *QueryBuilder) Union(other *QueryBuilder) *QueryBuilder {
	return qb.union(other, UnionPlain)
}

// UnionAll, UNION ALL zinciri kurar.
func (qb *QueryBuilder) UnionAll(other *QueryBuilder) *QueryBuilder {
	return qb.union(other, UnionAll)
}

// UnionDistinct, UNION DISTINCT zinciri kurar.
func (qb *QueryBuilder) UnionDistinct(other *QueryBuilder) *QueryBuilder {
	return qb.union(other, UnionDistinct)
}

func (qb *QueryBuilder) union(other *QueryBuilder, unionType UnionType) *QueryBuilder {
	// Diğer builder'ın zinciri KOPYALANARAK düzleştirilir; other kendi
	// snapshot'ının tek sahibi kalır ve union sonrası bağımsız
	// kullanılabilir. Düzleştirme listesi union anında sabitlenir.
	qb.stmts.Unions = append(qb.stmts.Unions, other.stmts.Unions...)
	qb.stmts.Unions = append(qb.stmts.Unions, UnionClause{
		Builder: other,
		Type:    unionType,
	})
	return qb
}

// GetColumns, select clause'undan mantıksal çıktı kolon adlarını türetir.
// Sorgu çalıştırmadan kolon manifestosuna ihtiyaç duyan tüketiciler için.
// "expr as alias" girdilerinde alias, "table.column" girdilerinde kolon
// adı döner; Raw girdiler metinleriyle temsil edilir.
func (qb *QueryBuilder) GetColumns() []string {
	if len(qb.stmts.Selects) == 0 {
		return []string{"*"}
	}

	cols := make([]string, 0, len(qb.stmts.Selects))
	for _, sel := range qb.stmts.Selects {
		switch col := sel.(type) {
		case *RawExpr:
			cols = append(cols, col.sql)
		case string:
			name := col
			if idx := strings.Index(strings.ToLower(name), " as "); idx > 0 {
				name = strings.TrimSpace(name[idx+4:])
			} else if dot := strings.LastIndex(name, "."); dot >= 0 {
				name = name[dot+1:]
			}
			cols = append(cols, name)
		}
	}
	return cols
}

// Statements, builder'ın güncel snapshot'ını döndürür (introspection için).
func (qb *QueryBuilder) Statements() *Statements {
	return qb.stmts
}

// Grammar, builder'ın kullandığı grammar'ı döndürür.
func (qb *QueryBuilder) Grammar() Grammar {
	return qb.grammar
}

// ToQuery, güncel snapshot'ı SELECT olarak derleyip Query nesnesi döndürür.
// Tablo prefix'i derleme öncesi snapshot kopyasına uygulanır; accumulator
// hiç mutate edilmez, bu sayede arka arkaya derlemeler idempotent kalır.
func (qb *QueryBuilder) ToQuery() (*Query, error) {
	return qb.grammar.Compile(CompileSelect, qb.compileStatements(), nil)
}

// ToSQL, Query'yi (SQL, bindings) çifti olarak döndürür.
//
// Örnek:
//
//	sql, args, err := qb.ToSQL()
//	// sql: "SELECT `id` FROM `users` WHERE `status` = ? LIMIT 10"
//	// args: ["active"]
func (qb *QueryBuilder) ToSQL() (string, []any, error) {
	q, err := qb.ToQuery()
	if err != nil {
		return "", nil, err
	}
	return q.SQL, q.Bindings, nil
}

// CriteriaOnly, yalnızca WHERE koşul listesinin fragment'ını derler.
// Koşul yoksa boş string ve boş binding listesi döner.
func (qb *QueryBuilder) CriteriaOnly() (*Query, error) {
	return qb.grammar.Compile(CompileCriteriaOnly, qb.compileStatements(), nil)
}

// subBuilder, nested grup callback'leri için izole bir builder üretir.
func (qb *QueryBuilder) subBuilder() *QueryBuilder {
	return &QueryBuilder{
		conn:     qb.conn,
		executor: qb.executor,
		grammar:  qb.grammar,
		stmts:    newStatements(),
		inTx:     qb.inTx,
	}
}

// clone, snapshot'ın shallow kopyasıyla yeni bir builder döndürür.
// UpdateOrInsert gibi "probe + dispatch" akışları orijinal accumulator'ı
// kirletmeden ara sorgular kurabilsin diye kullanılır.
func (qb *QueryBuilder) clone() *QueryBuilder {
	stmts := *qb.stmts
	stmts.Selects = append([]any(nil), qb.stmts.Selects...)
	stmts.Wheres = append([]WhereClause(nil), qb.stmts.Wheres...)
	stmts.Havings = append([]WhereClause(nil), qb.stmts.Havings...)
	stmts.Joins = append([]JoinClause(nil), qb.stmts.Joins...)
	stmts.GroupBys = append(make([]string, 0, len(qb.stmts.GroupBys)), qb.stmts.GroupBys...)
	stmts.OrderBys = append([]OrderClause(nil), qb.stmts.OrderBys...)
	stmts.Unions = append(make([]UnionClause, 0, len(qb.stmts.Unions)), qb.stmts.Unions...)

	if qb.stmts.Aliases != nil {
		stmts.Aliases = make(map[string]string, len(qb.stmts.Aliases))
		for table, alias := range qb.stmts.Aliases {
			stmts.Aliases[table] = alias
		}
	}

	return &QueryBuilder{
		conn:      qb.conn,
		executor:  qb.executor,
		grammar:   qb.grammar,
		stmts:     &stmts,
		overwrite: qb.overwrite,
		inTx:      qb.inTx,
	}
}

// compileStatements, derlemeye giden snapshot'ı döndürür. Bağlantıda bir
// tablo prefix'i tanımlıysa, prefix uygulanmış bir KOPYA döner; builder'ın
// kendi snapshot'ı asla değişmez.
func (qb *QueryBuilder) compileStatements() *Statements {
	prefix := ""
	if qb.conn != nil {
		prefix = qb.conn.TablePrefix()
	}
	if prefix == "" {
		return qb.stmts
	}
	return prefixStatements(qb.stmts, prefix)
}

// prefixStatements, snapshot'ın tablo referanslarına prefix uygulanmış
// bir kopyasını üretir. Kurallar:
//   - tablo adları: prefix doğrudan eklenir
//   - kolonlar: yalnızca table.column biçimindekilerin tablo kısmı
//     prefix'lenir; çıplak kolon adlarına dokunulmaz
//   - Raw ifadeler ve nested gruplar olduğu gibi geçer (gruplar kendi
//     içinde aynı kurallarla recursive işlenir)
//   - alias map'inde prefix anahtara (tabloya) uygulanır, alias'a değil
func prefixStatements(stmts *Statements, prefix string) *Statements {
	out := *stmts

	if out.Table != "" {
		out.Table = prefix + out.Table
	}

	if stmts.Aliases != nil {
		out.Aliases = make(map[string]string, len(stmts.Aliases))
		for table, alias := range stmts.Aliases {
			out.Aliases[prefix+table] = alias
		}
	}

	if stmts.Selects != nil {
		out.Selects = make([]any, len(stmts.Selects))
		for i, sel := range stmts.Selects {
			if col, ok := sel.(string); ok {
				out.Selects[i] = prefixColumn(col, prefix)
				continue
			}
			out.Selects[i] = sel
		}
	}

	out.Wheres = prefixWhereClauses(stmts.Wheres, prefix)
	out.Havings = prefixWhereClauses(stmts.Havings, prefix)

	if stmts.Joins != nil {
		out.Joins = make([]JoinClause, len(stmts.Joins))
		for i, j := range stmts.Joins {
			j.Table = prefix + j.Table
			j.Criteria = prefixWhereClauses(j.Criteria, prefix)
			out.Joins[i] = j
		}
	}

	if len(stmts.GroupBys) > 0 {
		out.GroupBys = make([]string, len(stmts.GroupBys))
		for i, col := range stmts.GroupBys {
			out.GroupBys[i] = prefixColumn(col, prefix)
		}
	}

	if stmts.OrderBys != nil {
		out.OrderBys = make([]OrderClause, len(stmts.OrderBys))
		for i, o := range stmts.OrderBys {
			o.Column = prefixColumn(o.Column, prefix)
			out.OrderBys[i] = o
		}
	}

	return &out
}

// prefixWhereClauses, koşul listesinin prefix uygulanmış kopyasını üretir.
func prefixWhereClauses(clauses []WhereClause, prefix string) []WhereClause {
	if clauses == nil {
		return nil
	}
	out := make([]WhereClause, len(clauses))
	for i, w := range clauses {
		if w.Group != nil {
			w.Group = prefixWhereClauses(w.Group, prefix)
		}
		if w.Raw == nil && w.Column != "" {
			w.Column = prefixColumn(w.Column, prefix)
		}
		if w.ValueColumn != "" {
			w.ValueColumn = prefixColumn(w.ValueColumn, prefix)
		}
		out[i] = w
	}
	return out
}

// prefixColumn, yalnızca table.column biçimindeki referansların tablo
// kısmına prefix uygular.
func prefixColumn(column, prefix string) string {
	if i := strings.Index(column, "."); i > 0 && !strings.Contains(column, "(") {
		return prefix + column[:i] + column[i:]
	}
	return column
}
