package fluentsql

// -----------------------------------------------------------------------------
// MySQL Grammar
// -----------------------------------------------------------------------------
// Varsayılan lehçe. Identifier'lar backtick ile sarmalanır, insert
// varyantları INSERT IGNORE / REPLACE INTO olarak yazılır ve
// ON DUPLICATE KEY UPDATE desteklenir. Derleme algoritmalarının tamamı
// baseGrammar'dadır; bu dosya yalnızca lehçe farklarını taşır.
// -----------------------------------------------------------------------------

type MySQLGrammar struct {
	baseGrammar
}

// NewMySQLGrammar, MySQL/MariaDB için grammar oluşturur.
func NewMySQLGrammar() *MySQLGrammar {
	return &MySQLGrammar{
		baseGrammar: baseGrammar{
			name:                "mysql",
			quote:               "`",
			insertVerb:          "INSERT INTO",
			ignoreVerb:          "INSERT IGNORE INTO",
			replaceVerb:         "REPLACE INTO",
			supportsOnDuplicate: true,
		},
	}
}
