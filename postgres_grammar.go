package fluentsql

import "strconv"

// -----------------------------------------------------------------------------
// PostgreSQL Grammar
// -----------------------------------------------------------------------------
// Identifier'lar çift tırnak ile sarmalanır. PostgreSQL'in INSERT IGNORE
// karşılığı yoktur; aynı semantik ON CONFLICT DO NOTHING suffix'i ile
// üretilir. REPLACE INTO ve ON DUPLICATE KEY UPDATE desteklenmez — bu
// operasyonlar derleme aşamasında hata döner.
//
// Derlenen SQL evrensel "?" placeholder'ı taşır; $1, $2 ... çevirisi
// Execution Façade'de Placeholder() üzerinden yapılır.
// -----------------------------------------------------------------------------

type PostgresGrammar struct {
	baseGrammar
}

// NewPostgresGrammar, PostgreSQL için grammar oluşturur.
func NewPostgresGrammar() *PostgresGrammar {
	return &PostgresGrammar{
		baseGrammar: baseGrammar{
			name:         "postgres",
			quote:        `"`,
			insertVerb:   "INSERT INTO",
			ignoreSuffix: " ON CONFLICT DO NOTHING",
		},
	}
}

// Placeholder, PostgreSQL'in 1 tabanlı numaralı placeholder'ını döndürür.
func (g *PostgresGrammar) Placeholder(index int) string {
	return "$" + strconv.Itoa(index)
}
