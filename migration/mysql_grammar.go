// -----------------------------------------------------------------------------
// MySQL Grammar for Schema Builder
// -----------------------------------------------------------------------------
// Bu dosya, MySQL için DDL sorguları oluşturur.
// -----------------------------------------------------------------------------

package migration

import (
	"fmt"
	"strings"
)

// Grammar, farklı veritabanları için DDL üretim interface'i.
type Grammar interface {
	CompileCreateTable(table string, columns []*Column, indexes []Index, foreigns []*ForeignKey) string
	CompileDropTable(table string) string
	CompileAddColumn(table string, column *Column) string
	CompileDropColumn(table string, columnName string) string
	CompileAddIndex(table string, index Index) string
	CompileDropIndex(table string, indexName string) string
	CompileTableExists() string
}

// MySQLGrammar, Grammar interface'inin MySQL implementasyonu.
type MySQLGrammar struct{}

// NewMySQLGrammar, yeni bir MySQLGrammar instance oluşturur.
func NewMySQLGrammar() *MySQLGrammar {
	return &MySQLGrammar{}
}

// CompileCreateTable, CREATE TABLE IF NOT EXISTS SQL'i üretir.
func (g *MySQLGrammar) CompileCreateTable(table string, columns []*Column, indexes []Index, foreigns []*ForeignKey) string {
	defs := make([]string, 0, len(columns)+len(indexes)+len(foreigns))

	for _, column := range columns {
		defs = append(defs, g.compileColumn(column))
	}

	for _, index := range indexes {
		defs = append(defs, g.compileIndex(index))
	}

	for _, fk := range foreigns {
		defs = append(defs, g.compileForeign(table, fk))
	}

	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS `%s` (\n  %s\n) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci",
		table,
		strings.Join(defs, ",\n  "),
	)
}

// CompileDropTable, DROP TABLE SQL'i üretir.
func (g *MySQLGrammar) CompileDropTable(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS `%s`", table)
}

// CompileAddColumn, ALTER TABLE ADD COLUMN SQL'i üretir.
func (g *MySQLGrammar) CompileAddColumn(table string, column *Column) string {
	return fmt.Sprintf("ALTER TABLE `%s` ADD COLUMN %s", table, g.compileColumn(column))
}

// CompileDropColumn, ALTER TABLE DROP COLUMN SQL'i üretir.
func (g *MySQLGrammar) CompileDropColumn(table string, columnName string) string {
	return fmt.Sprintf("ALTER TABLE `%s` DROP COLUMN `%s`", table, columnName)
}

// CompileAddIndex, ALTER TABLE ADD INDEX SQL'i üretir.
func (g *MySQLGrammar) CompileAddIndex(table string, index Index) string {
	return fmt.Sprintf("ALTER TABLE `%s` ADD %s", table, g.compileIndex(index))
}

// CompileDropIndex, ALTER TABLE DROP INDEX SQL'i üretir.
func (g *MySQLGrammar) CompileDropIndex(table string, indexName string) string {
	return fmt.Sprintf("ALTER TABLE `%s` DROP INDEX `%s`", table, indexName)
}

// CompileTableExists, tablo varlık kontrolü sorgusunu döndürür.
func (g *MySQLGrammar) CompileTableExists() string {
	return "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?"
}

// compileColumn, tek bir kolon tanımını derler.
func (g *MySQLGrammar) compileColumn(column *Column) string {
	parts := []string{fmt.Sprintf("`%s`", column.name)}

	if column.length > 0 && column.colType.requiresLength() {
		parts = append(parts, fmt.Sprintf("%s(%d)", column.colType, column.length))
	} else {
		parts = append(parts, string(column.colType))
	}

	if column.unsigned && column.colType != ColumnTypeUnsignedBigInt {
		parts = append(parts, "UNSIGNED")
	}

	if column.nullable {
		parts = append(parts, "NULL")
	} else {
		parts = append(parts, "NOT NULL")
	}

	if column.autoIncrement {
		parts = append(parts, "AUTO_INCREMENT")
	}

	if column.hasDefault {
		parts = append(parts, "DEFAULT "+defaultLiteral(column.defaultVal))
	}

	if column.primary {
		parts = append(parts, "PRIMARY KEY")
	}

	return strings.Join(parts, " ")
}

// compileIndex, bir index tanımını derler.
func (g *MySQLGrammar) compileIndex(index Index) string {
	columns := make([]string, len(index.Columns))
	for i, col := range index.Columns {
		columns[i] = fmt.Sprintf("`%s`", col)
	}

	switch index.Type {
	case IndexTypePrimary:
		return fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(columns, ", "))
	case IndexTypeUnique:
		return fmt.Sprintf("UNIQUE KEY `%s` (%s)", index.Name, strings.Join(columns, ", "))
	default:
		return fmt.Sprintf("INDEX `%s` (%s)", index.Name, strings.Join(columns, ", "))
	}
}

// compileForeign, bir foreign key constraint'ini derler.
func (g *MySQLGrammar) compileForeign(table string, fk *ForeignKey) string {
	def := fmt.Sprintf(
		"CONSTRAINT `%s_%s_foreign` FOREIGN KEY (`%s`) REFERENCES `%s` (`%s`)",
		table, fk.Column, fk.Column, fk.ReferencedTable, fk.ReferencedColumn,
	)

	if fk.OnDeleteAction != "" {
		def += " ON DELETE " + fk.OnDeleteAction
	}
	if fk.OnUpdateAction != "" {
		def += " ON UPDATE " + fk.OnUpdateAction
	}

	return def
}

// defaultLiteral, default değeri SQL literal'ine çevirir.
func defaultLiteral(value interface{}) string {
	switch v := value.(type) {
	case string:
		return fmt.Sprintf("'%s'", strings.ReplaceAll(v, "'", "''"))
	case bool:
		if v {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprintf("%v", v)
	}
}
