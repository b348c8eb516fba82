// -----------------------------------------------------------------------------
// FluentSQL Types - Statement Snapshot ve Clause Yapıları
// -----------------------------------------------------------------------------
// Bu dosya, QueryBuilder'ın biriktirdiği clause'ların internal struct
// tiplerini içerir. WhereClause, JoinClause, OrderClause, UnionClause gibi
// yapılar burada tanımlanır. Bu sayede SQL injection gibi güvenlik açıklarına
// karşı daha güvenli bir yapı oluşturulur.
//
// Statements, "statement snapshot" dediğimiz sabit şemalı state nesnesidir:
// her clause türü için ayrı bir alan tutulur. Bir clause'un hiç
// kullanılmaması (nil slice) ile boş kullanılması (boş slice) birbirinden
// ayrıdır; GroupBys ve Unions her zaman initialize edilir, diğerleri ilk
// kullanımda oluşturulur.
// -----------------------------------------------------------------------------

package fluentsql

// OrderDirection, ORDER BY için izin verilen yönleri temsil eder.
// Bu enum-like yapı sayesinde direction üzerinden SQL injection riski
// ortadan kalkar.
type OrderDirection string

const (
	OrderAsc  OrderDirection = "ASC"
	OrderDesc OrderDirection = "DESC"
)

// OrderClause, bir ORDER BY ifadesini güvenli bir şekilde temsil eder.
type OrderClause struct {
	Column    string
	Direction OrderDirection
}

// WhereClause, bir koşul girdisini temsil eder. Aynı tip WHERE, HAVING ve
// JOIN ON bağlamlarında kullanılır.
//
// Varyantlar (tagged-variant mantığı, runtime tip muayenesi yok):
//   - Group != nil  → parantezli nested grup; Column/Operator/Value boş
//   - Raw != nil    → ham koşul parçası; kendi binding'leri merge edilir
//   - ValueColumn != "" → kolon-kolon karşılaştırması (JOIN ON), binding yok
//   - aksi halde    → Column Operator ? biçiminde tek binding'li koşul
//
// Boolean, önceki koşulla bağlantı tipidir: "AND", "OR", "AND NOT", "OR NOT".
// İlk girdinin Boolean'ı compile sırasında atılır (clause asla sarkık bir
// AND/OR ile başlamaz).
type WhereClause struct {
	Column      string
	Operator    string
	Value       any
	ValueColumn string
	Boolean     string
	Raw         *RawExpr
	Group       []WhereClause
}

// JoinType, JOIN tiplerini temsil eden enum-like yapıdır.
type JoinType string

const (
	PlainJoin JoinType = ""
	InnerJoin JoinType = "INNER"
	LeftJoin  JoinType = "LEFT"
	RightJoin JoinType = "RIGHT"
	CrossJoin JoinType = "CROSS"
)

// JoinClause, bir JOIN ifadesini temsil eder.
//
// Criteria doluysa "JOIN tablo ON <criteria>" üretilir; Using doluysa
// "JOIN tablo USING (kolon, ...)" üretilir. İkisi birden dolu olamaz —
// builder katmanı bunu garanti eder.
type JoinClause struct {
	Type     JoinType
	Table    string
	Alias    string
	Criteria []WhereClause
	Using    []string
}

// UnionType, UNION zincirindeki bağlama tipini temsil eder.
type UnionType string

const (
	UnionPlain    UnionType = ""
	UnionAll      UnionType = "ALL"
	UnionDistinct UnionType = "DISTINCT"
)

// UnionClause, zincire eklenmiş bir union üyesini temsil eder.
// Builder referansı compile anında select olarak derlenir; üyenin kendi
// union listesi derlemeye DAHİL EDİLMEZ (düzleştirme union() anında yapılır).
type UnionClause struct {
	Builder *QueryBuilder
	Type    UnionType
}

// Statements, bir QueryBuilder'ın o ana kadar topladığı tüm clause'ların
// snapshot'ıdır. Builder bu yapıya münhasıran sahiptir; clause girdileri
// eklendikten sonra mutate edilmez (overwrite modu hariç — orada girdi
// komple değiştirilir).
type Statements struct {
	Selects     []any // string veya *RawExpr
	Distinct    bool
	Table       string
	Aliases     map[string]string // tablo → alias
	Wheres      []WhereClause
	Havings     []WhereClause
	Joins       []JoinClause
	GroupBys    []string      // her zaman initialize edilir
	OrderBys    []OrderClause
	Unions      []UnionClause // her zaman initialize edilir
	Limit       int
	Offset      int
	Lock        string         // FOR UPDATE, FOR SHARE vb.
	OnDuplicate map[string]any // ON DUPLICATE KEY UPDATE payload'ı
}

// newStatements, GroupBys ve Unions'ı initialize edilmiş boş bir snapshot
// döndürür. Diğer clause'lar ilk kullanımda oluşturulur; nil kalmaları
// "clause hiç kullanılmadı" anlamına gelir.
func newStatements() *Statements {
	return &Statements{
		GroupBys: make([]string, 0),
		Unions:   make([]UnionClause, 0),
	}
}
