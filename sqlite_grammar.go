package fluentsql

// -----------------------------------------------------------------------------
// SQLite Grammar
// -----------------------------------------------------------------------------
// Identifier'lar çift tırnak ile sarmalanır; insert varyantları SQLite'ın
// INSERT OR IGNORE / INSERT OR REPLACE yazımını kullanır.
// -----------------------------------------------------------------------------

type SQLiteGrammar struct {
	baseGrammar
}

// NewSQLiteGrammar, SQLite için grammar oluşturur.
func NewSQLiteGrammar() *SQLiteGrammar {
	return &SQLiteGrammar{
		baseGrammar: baseGrammar{
			name:        "sqlite3",
			quote:       `"`,
			insertVerb:  "INSERT INTO",
			ignoreVerb:  "INSERT OR IGNORE INTO",
			replaceVerb: "INSERT OR REPLACE INTO",
		},
	}
}
