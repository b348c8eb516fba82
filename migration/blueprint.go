// -----------------------------------------------------------------------------
// Blueprint - Table Schema Builder
// -----------------------------------------------------------------------------
// Blueprint, bir tablonun şemasını fluent API ile tanımlar:
//
//	migrator.CreateTable("users", func(t *migration.Blueprint) {
//	    t.ID()
//	    t.String("name", 100)
//	    t.String("email", 190).Unique()
//	    t.Integer("age").Nullable()
//	    t.Timestamps()
//	})
//
// VARCHAR gibi uzunluk gerektiren tipler uzunluk olmadan tanımlanamaz;
// derleme öncesi validate aşamasında hata döner.
// -----------------------------------------------------------------------------

package migration

import (
	"fmt"
	"strings"

	fluentsql "github.com/biyonik/go-fluent-sql"
)

// ColumnType, bir veritabanı kolon tipini temsil eder.
type ColumnType string

const (
	ColumnTypeString         ColumnType = "VARCHAR"
	ColumnTypeChar           ColumnType = "CHAR"
	ColumnTypeText           ColumnType = "TEXT"
	ColumnTypeInteger        ColumnType = "INT"
	ColumnTypeBigInt         ColumnType = "BIGINT"
	ColumnTypeUnsignedBigInt ColumnType = "BIGINT UNSIGNED"
	ColumnTypeBoolean        ColumnType = "TINYINT(1)"
	ColumnTypeTimestamp      ColumnType = "TIMESTAMP"
	ColumnTypeDateTime       ColumnType = "DATETIME"
	ColumnTypeDate           ColumnType = "DATE"
	ColumnTypeDecimal        ColumnType = "DECIMAL"
	ColumnTypeFloat          ColumnType = "DOUBLE"
	ColumnTypeJSON           ColumnType = "JSON"
)

// requiresLength, tipin uzunluk parametresi zorunlu olup olmadığını söyler.
func (t ColumnType) requiresLength() bool {
	switch t {
	case ColumnTypeString, ColumnTypeChar:
		return true
	default:
		return false
	}
}

// Column, bir tablo kolonunu temsil eder. Alanlar fluent metodlarla
// doldurulur ve grammar tarafından okunur.
type Column struct {
	name          string
	colType       ColumnType
	length        int
	nullable      bool
	defaultVal    interface{}
	hasDefault    bool
	unsigned      bool
	autoIncrement bool
	primary       bool
	unique        bool
}

// Nullable, kolonu NULL kabul eder yapar.
func (c *Column) Nullable() *Column {
	c.nullable = true
	return c
}

// Default, kolona varsayılan değer atar.
func (c *Column) Default(value interface{}) *Column {
	c.defaultVal = value
	c.hasDefault = true
	return c
}

// Unsigned, sayısal kolonu unsigned yapar.
func (c *Column) Unsigned() *Column {
	c.unsigned = true
	return c
}

// Unique, kolona unique constraint ekler.
func (c *Column) Unique() *Column {
	c.unique = true
	return c
}

// Primary, kolonu primary key yapar.
func (c *Column) Primary() *Column {
	c.primary = true
	return c
}

// IndexType, index çeşidini temsil eder.
type IndexType string

const (
	IndexTypeIndex   IndexType = "INDEX"
	IndexTypeUnique  IndexType = "UNIQUE"
	IndexTypePrimary IndexType = "PRIMARY KEY"
)

// Index, bir tablo index'ini temsil eder.
type Index struct {
	Name    string
	Columns []string
	Type    IndexType
}

// ForeignKey, bir foreign key constraint'ini temsil eder.
type ForeignKey struct {
	Column           string
	ReferencedTable  string
	ReferencedColumn string
	OnDeleteAction   string
	OnUpdateAction   string
}

// References, referans verilen kolonu ayarlar.
func (fk *ForeignKey) References(column string) *ForeignKey {
	fk.ReferencedColumn = column
	return fk
}

// On, referans verilen tabloyu ayarlar.
func (fk *ForeignKey) On(table string) *ForeignKey {
	fk.ReferencedTable = table
	return fk
}

// OnDelete, ON DELETE aksiyonunu ayarlar.
func (fk *ForeignKey) OnDelete(action string) *ForeignKey {
	fk.OnDeleteAction = action
	return fk
}

// OnUpdate, ON UPDATE aksiyonunu ayarlar.
func (fk *ForeignKey) OnUpdate(action string) *ForeignKey {
	fk.OnUpdateAction = action
	return fk
}

// Cascade, hem ON DELETE hem ON UPDATE için CASCADE ayarlar.
func (fk *ForeignKey) Cascade() *ForeignKey {
	fk.OnDeleteAction = "CASCADE"
	fk.OnUpdateAction = "CASCADE"
	return fk
}

// Blueprint, bir tablonun şema tanımını biriktirir.
type Blueprint struct {
	table    string
	columns  []*Column
	indexes  []Index
	foreigns []*ForeignKey
}

// NewBlueprint, yeni bir Blueprint instance oluşturur.
func NewBlueprint(tableName string) *Blueprint {
	return &Blueprint{
		table:    tableName,
		columns:  make([]*Column, 0),
		indexes:  make([]Index, 0),
		foreigns: make([]*ForeignKey, 0),
	}
}

// addColumn, blueprint'e kolon ekler ve fluent zincir için döndürür.
func (b *Blueprint) addColumn(column *Column) *Column {
	b.columns = append(b.columns, column)
	return column
}

// ID, auto-increment primary key kolonu ekler.
func (b *Blueprint) ID() *Column {
	return b.addColumn(&Column{
		name:          "id",
		colType:       ColumnTypeUnsignedBigInt,
		autoIncrement: true,
		primary:       true,
	})
}

// String, VARCHAR kolonu ekler. Uzunluk zorunludur.
func (b *Blueprint) String(name string, length int) *Column {
	return b.addColumn(&Column{
		name:    name,
		colType: ColumnTypeString,
		length:  length,
	})
}

// Char, sabit uzunluklu CHAR kolonu ekler.
func (b *Blueprint) Char(name string, length int) *Column {
	return b.addColumn(&Column{
		name:    name,
		colType: ColumnTypeChar,
		length:  length,
	})
}

// Text, TEXT kolonu ekler.
func (b *Blueprint) Text(name string) *Column {
	return b.addColumn(&Column{name: name, colType: ColumnTypeText})
}

// Integer, INT kolonu ekler.
func (b *Blueprint) Integer(name string) *Column {
	return b.addColumn(&Column{name: name, colType: ColumnTypeInteger})
}

// BigInteger, BIGINT kolonu ekler.
func (b *Blueprint) BigInteger(name string) *Column {
	return b.addColumn(&Column{name: name, colType: ColumnTypeBigInt})
}

// Boolean, TINYINT(1) kolonu ekler.
func (b *Blueprint) Boolean(name string) *Column {
	return b.addColumn(&Column{name: name, colType: ColumnTypeBoolean})
}

// Decimal, DECIMAL(precision, scale) kolonu ekler.
func (b *Blueprint) Decimal(name string, precision, scale int) *Column {
	return b.addColumn(&Column{
		name:    name,
		colType: ColumnType(fmt.Sprintf("DECIMAL(%d,%d)", precision, scale)),
	})
}

// Float, DOUBLE kolonu ekler.
func (b *Blueprint) Float(name string) *Column {
	return b.addColumn(&Column{name: name, colType: ColumnTypeFloat})
}

// JSON, JSON kolonu ekler.
func (b *Blueprint) JSON(name string) *Column {
	return b.addColumn(&Column{name: name, colType: ColumnTypeJSON})
}

// Timestamp, TIMESTAMP kolonu ekler.
func (b *Blueprint) Timestamp(name string) *Column {
	return b.addColumn(&Column{name: name, colType: ColumnTypeTimestamp})
}

// Date, DATE kolonu ekler.
func (b *Blueprint) Date(name string) *Column {
	return b.addColumn(&Column{name: name, colType: ColumnTypeDate})
}

// DateTime, DATETIME kolonu ekler.
func (b *Blueprint) DateTime(name string) *Column {
	return b.addColumn(&Column{name: name, colType: ColumnTypeDateTime})
}

// Timestamps, created_at ve updated_at kolonlarını ekler.
func (b *Blueprint) Timestamps() {
	b.Timestamp("created_at").Nullable()
	b.Timestamp("updated_at").Nullable()
}

// SoftDeletes, soft delete için deleted_at kolonu ekler.
func (b *Blueprint) SoftDeletes() {
	b.Timestamp("deleted_at").Nullable()
}

// Unique, verilen kolonlar üzerinde composite unique index tanımlar.
func (b *Blueprint) Unique(columns ...string) {
	indexName := fmt.Sprintf("%s_%s_unique", b.table, strings.Join(columns, "_"))
	b.indexes = append(b.indexes, Index{
		Name:    indexName,
		Columns: columns,
		Type:    IndexTypeUnique,
	})
}

// Index, verilen kolonlar üzerinde normal index tanımlar.
func (b *Blueprint) Index(columns ...string) {
	indexName := fmt.Sprintf("%s_%s_index", b.table, strings.Join(columns, "_"))
	b.indexes = append(b.indexes, Index{
		Name:    indexName,
		Columns: columns,
		Type:    IndexTypeIndex,
	})
}

// Foreign, foreign key constraint tanımlar ve blueprint'e kaydeder.
//
//	t.Foreign("user_id").References("id").On("users").Cascade()
func (b *Blueprint) Foreign(column string) *ForeignKey {
	fk := &ForeignKey{Column: column, ReferencedColumn: "id"}
	b.foreigns = append(b.foreigns, fk)
	return fk
}

// validate, blueprint'in derlenebilir olduğunu doğrular: en az bir kolon
// bulunmalı ve uzunluk gerektiren tipler uzunluk taşımalıdır.
func (b *Blueprint) validate() error {
	if len(b.columns) == 0 {
		return fmt.Errorf("%w: table %q has no columns", fluentsql.ErrEmptyData, b.table)
	}

	for _, col := range b.columns {
		if col.colType.requiresLength() && col.length <= 0 {
			return fmt.Errorf("%w: column %q (%s)", fluentsql.ErrMissingLength, col.name, col.colType)
		}
	}

	return nil
}

// uniqueIndexes, tekil kolon unique flag'lerini index listesiyle
// birleştirir. Kolon bazlı unique'ler kolon adından türetilen isimle
// UNIQUE KEY olarak render edilir.
func (b *Blueprint) uniqueIndexes() []Index {
	indexes := make([]Index, 0, len(b.indexes))

	for _, col := range b.columns {
		if col.unique {
			indexes = append(indexes, Index{
				Name:    fmt.Sprintf("%s_%s_unique", b.table, col.name),
				Columns: []string{col.name},
				Type:    IndexTypeUnique,
			})
		}
	}

	return append(indexes, b.indexes...)
}
