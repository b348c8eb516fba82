// -----------------------------------------------------------------------------
// PostgreSQL Grammar for Schema Builder
// -----------------------------------------------------------------------------
// PostgreSQL lehçe farkları:
// - Identifier'lar çift tırnakla quote edilir
// - AUTO_INCREMENT yerine BIGSERIAL / SERIAL kullanılır
// - UNSIGNED desteklenmez (sessizce atlanır)
// - Index'ler CREATE TABLE gövdesine değil ayrı CREATE INDEX
//   statement'larına derlenir; bu yüzden CompileCreateTable yalnızca
//   unique constraint'leri gövdeye gömer
// -----------------------------------------------------------------------------

package migration

import (
	"fmt"
	"strings"
)

// PostgresGrammar, Grammar interface'inin PostgreSQL implementasyonu.
type PostgresGrammar struct{}

// NewPostgresGrammar, yeni bir PostgresGrammar instance oluşturur.
func NewPostgresGrammar() *PostgresGrammar {
	return &PostgresGrammar{}
}

// CompileCreateTable, CREATE TABLE IF NOT EXISTS SQL'i üretir.
func (g *PostgresGrammar) CompileCreateTable(table string, columns []*Column, indexes []Index, foreigns []*ForeignKey) string {
	defs := make([]string, 0, len(columns)+len(indexes)+len(foreigns))

	for _, column := range columns {
		defs = append(defs, g.compileColumn(column))
	}

	for _, index := range indexes {
		if index.Type == IndexTypeUnique {
			cols := g.quoteList(index.Columns)
			defs = append(defs, fmt.Sprintf("CONSTRAINT %q UNIQUE (%s)", index.Name, cols))
		}
		// Normal index'ler gövdeye gömülemez; AlterTable/CompileAddIndex
		// üzerinden ayrı statement olarak çalıştırılır.
	}

	for _, fk := range foreigns {
		defs = append(defs, g.compileForeign(table, fk))
	}

	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %q (\n  %s\n)",
		table,
		strings.Join(defs, ",\n  "),
	)
}

// CompileDropTable, DROP TABLE SQL'i üretir.
func (g *PostgresGrammar) CompileDropTable(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %q", table)
}

// CompileAddColumn, ALTER TABLE ADD COLUMN SQL'i üretir.
func (g *PostgresGrammar) CompileAddColumn(table string, column *Column) string {
	return fmt.Sprintf("ALTER TABLE %q ADD COLUMN %s", table, g.compileColumn(column))
}

// CompileDropColumn, ALTER TABLE DROP COLUMN SQL'i üretir.
func (g *PostgresGrammar) CompileDropColumn(table string, columnName string) string {
	return fmt.Sprintf("ALTER TABLE %q DROP COLUMN %q", table, columnName)
}

// CompileAddIndex, CREATE INDEX SQL'i üretir.
func (g *PostgresGrammar) CompileAddIndex(table string, index Index) string {
	cols := g.quoteList(index.Columns)

	if index.Type == IndexTypeUnique {
		return fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS %q ON %q (%s)", index.Name, table, cols)
	}
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %q ON %q (%s)", index.Name, table, cols)
}

// CompileDropIndex, DROP INDEX SQL'i üretir.
func (g *PostgresGrammar) CompileDropIndex(table string, indexName string) string {
	return fmt.Sprintf("DROP INDEX IF EXISTS %q", indexName)
}

// CompileTableExists, tablo varlık kontrolü sorgusunu döndürür.
func (g *PostgresGrammar) CompileTableExists() string {
	return "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1"
}

// compileColumn, tek bir kolon tanımını derler.
func (g *PostgresGrammar) compileColumn(column *Column) string {
	parts := []string{fmt.Sprintf("%q", column.name)}

	parts = append(parts, g.columnType(column))

	if column.nullable {
		parts = append(parts, "NULL")
	} else {
		parts = append(parts, "NOT NULL")
	}

	if column.hasDefault {
		parts = append(parts, "DEFAULT "+g.defaultLiteral(column.defaultVal))
	}

	if column.primary {
		parts = append(parts, "PRIMARY KEY")
	}

	return strings.Join(parts, " ")
}

// defaultLiteral, default değeri PostgreSQL literal'ine çevirir.
// MySQL'den farklı olarak bool değerler TRUE/FALSE keyword'leriyle yazılır.
func (g *PostgresGrammar) defaultLiteral(value interface{}) string {
	if v, ok := value.(bool); ok {
		if v {
			return "TRUE"
		}
		return "FALSE"
	}
	return defaultLiteral(value)
}

// columnType, MySQL odaklı kolon tiplerini PostgreSQL karşılıklarına çevirir.
func (g *PostgresGrammar) columnType(column *Column) string {
	if column.autoIncrement {
		return "BIGSERIAL"
	}

	switch column.colType {
	case ColumnTypeString:
		return fmt.Sprintf("VARCHAR(%d)", column.length)
	case ColumnTypeChar:
		return fmt.Sprintf("CHAR(%d)", column.length)
	case ColumnTypeUnsignedBigInt:
		return "BIGINT"
	case ColumnTypeBoolean:
		return "BOOLEAN"
	case ColumnTypeDateTime:
		return "TIMESTAMP"
	case ColumnTypeFloat:
		return "DOUBLE PRECISION"
	case ColumnTypeJSON:
		return "JSONB"
	default:
		return string(column.colType)
	}
}

// compileForeign, bir foreign key constraint'ini derler.
func (g *PostgresGrammar) compileForeign(table string, fk *ForeignKey) string {
	def := fmt.Sprintf(
		"CONSTRAINT %q FOREIGN KEY (%q) REFERENCES %q (%q)",
		fmt.Sprintf("%s_%s_foreign", table, fk.Column),
		fk.Column, fk.ReferencedTable, fk.ReferencedColumn,
	)

	if fk.OnDeleteAction != "" {
		def += " ON DELETE " + fk.OnDeleteAction
	}
	if fk.OnUpdateAction != "" {
		def += " ON UPDATE " + fk.OnUpdateAction
	}

	return def
}

// quoteList, kolon listesini quote edip virgülle birleştirir.
func (g *PostgresGrammar) quoteList(columns []string) string {
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = fmt.Sprintf("%q", col)
	}
	return strings.Join(quoted, ", ")
}
