package fluentsql

// -----------------------------------------------------------------------------
// Raw Expression
// -----------------------------------------------------------------------------
// Raw, identifier quote/escape mekanizmasının DIŞINDA tutulan opak bir SQL
// parçasını temsil eder. Grammar katmanı Raw gördüğü yerde metni olduğu gibi
// yerleştirir ve Raw'ın kendi binding'lerini pozisyonel olarak sorgunun
// binding listesine ekler.
//
// GÜVENLİK UYARISI:
// Raw içine kullanıcı girdisi ASLA string birleştirme ile konmamalıdır.
// Değişken değerler her zaman binding parametresi olarak verilmelidir:
//
//	✅ fluentsql.Raw("price * ?", 1.18)
//	❌ fluentsql.Raw("price * " + userInput)
// -----------------------------------------------------------------------------

// RawExpr, ham bir SQL parçası ve ona ait binding'leri taşır.
// Construct edildikten sonra immutable kabul edilir.
type RawExpr struct {
	sql      string
	bindings []any
}

// Raw, yeni bir ham SQL ifadesi oluşturur.
//
// Örnek:
//
//	qb.SelectRaw(fluentsql.Raw("COUNT(*) AS total"))
//	qb.WhereRaw(fluentsql.Raw("YEAR(created_at) = ?", 2024))
func Raw(sql string, bindings ...any) *RawExpr {
	return &RawExpr{sql: sql, bindings: bindings}
}

// SQL, ham ifadenin metnini döndürür.
func (r *RawExpr) SQL() string {
	return r.sql
}

// Bindings, ham ifadenin binding listesinin bir kopyasını döndürür.
// Kopya dönülür; dışarıdan mutate edilerek immutability bozulamaz.
func (r *RawExpr) Bindings() []any {
	out := make([]any, len(r.bindings))
	copy(out, r.bindings)
	return out
}
