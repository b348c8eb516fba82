// -----------------------------------------------------------------------------
// Database Migration System
// -----------------------------------------------------------------------------
// Bu package, veritabanı şema değişikliklerini Blueprint tabanlı schema
// builder ile yönetir.
//
// Özellikler:
// - Schema builder (CreateTable, AlterTable, DropTable)
// - Column types (String, Integer, Boolean, Timestamps, ...)
// - Index'ler (unique, index, foreign key)
// - Migration tracking (migrations tablosu, batch numaraları)
// - Rollback desteği
//
// Kullanım:
//
//	func (m *CreateUsersTable) Up(migrator *migration.Migrator) error {
//	    return migrator.CreateTable("users", func(t *migration.Blueprint) {
//	        t.ID()
//	        t.String("name", 255)
//	        t.String("email", 255).Unique()
//	        t.Timestamps()
//	    })
//	}
//
//	func (m *CreateUsersTable) Down(migrator *migration.Migrator) error {
//	    return migrator.DropTable("users")
//	}
// -----------------------------------------------------------------------------

package migration

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration, tek bir şema değişikliğini temsil eder. Up ileri yönde
// uygular, Down geri alır.
type Migration interface {
	Name() string
	Up(m *Migrator) error
	Down(m *Migrator) error
}

// Migrator, migration'ları çalıştırır ve migrations tablosunda izler.
type Migrator struct {
	db      *sql.DB
	grammar Grammar
}

// NewMigrator, yeni bir Migrator instance oluşturur.
func NewMigrator(db *sql.DB, grammar Grammar) *Migrator {
	return &Migrator{
		db:      db,
		grammar: grammar,
	}
}

// CreateTable, yeni bir tablo oluşturur. Blueprint validate edilir:
// kolonsuz tablo veya uzunluksuz VARCHAR hata döndürür.
func (m *Migrator) CreateTable(tableName string, callback func(*Blueprint)) error {
	blueprint := NewBlueprint(tableName)
	callback(blueprint)

	if err := blueprint.validate(); err != nil {
		return err
	}

	ddl := m.grammar.CompileCreateTable(
		blueprint.table,
		blueprint.columns,
		blueprint.uniqueIndexes(),
		blueprint.foreigns,
	)

	if _, err := m.db.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	log.Printf("✅ Tablo oluşturuldu: %s", tableName)
	return nil
}

// DropTable, tabloyu siler.
func (m *Migrator) DropTable(tableName string) error {
	if _, err := m.db.Exec(m.grammar.CompileDropTable(tableName)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	log.Printf("✅ Tablo silindi: %s", tableName)
	return nil
}

// AlterTable, mevcut tabloya kolon ve index ekler.
func (m *Migrator) AlterTable(tableName string, callback func(*Blueprint)) error {
	blueprint := NewBlueprint(tableName)
	callback(blueprint)

	for _, column := range blueprint.columns {
		if column.colType.requiresLength() && column.length <= 0 {
			return fmt.Errorf("failed to add column %s: length required", column.name)
		}

		ddl := m.grammar.CompileAddColumn(tableName, column)
		if _, err := m.db.Exec(ddl); err != nil {
			return fmt.Errorf("failed to add column %s: %w", column.name, err)
		}
	}

	for _, index := range blueprint.uniqueIndexes() {
		ddl := m.grammar.CompileAddIndex(tableName, index)
		if _, err := m.db.Exec(ddl); err != nil {
			return fmt.Errorf("failed to add index %s: %w", index.Name, err)
		}
	}

	log.Printf("✅ Tablo güncellendi: %s", tableName)
	return nil
}

// DropColumn, tablodan kolon siler.
func (m *Migrator) DropColumn(tableName, columnName string) error {
	ddl := m.grammar.CompileDropColumn(tableName, columnName)
	if _, err := m.db.Exec(ddl); err != nil {
		return fmt.Errorf("failed to drop column %s.%s: %w", tableName, columnName, err)
	}
	return nil
}

// DropIndex, tablodan index siler.
func (m *Migrator) DropIndex(tableName, indexName string) error {
	ddl := m.grammar.CompileDropIndex(tableName, indexName)
	if _, err := m.db.Exec(ddl); err != nil {
		return fmt.Errorf("failed to drop index %s: %w", indexName, err)
	}
	return nil
}

// HasTable, tablonun var olup olmadığını kontrol eder.
func (m *Migrator) HasTable(tableName string) (bool, error) {
	var count int
	err := m.db.QueryRow(m.grammar.CompileTableExists(), tableName).Scan(&count)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// EnsureMigrationsTable, migrations izleme tablosunu oluşturur (yoksa).
func (m *Migrator) EnsureMigrationsTable() error {
	return m.CreateTable("migrations", func(t *Blueprint) {
		t.ID()
		t.String("migration", 255)
		t.Integer("batch")
		t.Timestamp("created_at").Nullable()
	})
}

// Run, verilen migration'lardan henüz çalışmamış olanları sırayla
// uygular ve hepsini aynı batch numarasıyla kaydeder.
func (m *Migrator) Run(migrations []Migration) error {
	if err := m.EnsureMigrationsTable(); err != nil {
		return err
	}

	ran, err := m.ranMigrations()
	if err != nil {
		return err
	}

	batch, err := m.lastBatch()
	if err != nil {
		return err
	}
	batch++

	for _, mig := range migrations {
		if ran[mig.Name()] {
			continue
		}

		log.Printf("🔄 Migration çalışıyor: %s", mig.Name())
		if err := mig.Up(m); err != nil {
			return fmt.Errorf("migration %s failed: %w", mig.Name(), err)
		}

		if err := m.recordMigration(mig.Name(), batch); err != nil {
			return err
		}
	}

	return nil
}

// Rollback, son batch'teki migration'ları ters sırayla geri alır.
func (m *Migrator) Rollback(migrations []Migration) error {
	batch, err := m.lastBatch()
	if err != nil {
		return err
	}
	if batch == 0 {
		return nil // geri alınacak migration yok
	}

	names, err := m.batchMigrations(batch)
	if err != nil {
		return err
	}

	byName := make(map[string]Migration, len(migrations))
	for _, mig := range migrations {
		byName[mig.Name()] = mig
	}

	// Ters sırayla geri al
	for i := len(names) - 1; i >= 0; i-- {
		mig, ok := byName[names[i]]
		if !ok {
			return fmt.Errorf("migration %s not found for rollback", names[i])
		}

		log.Printf("🔄 Migration geri alınıyor: %s", mig.Name())
		if err := mig.Down(m); err != nil {
			return fmt.Errorf("rollback of %s failed: %w", mig.Name(), err)
		}

		if err := m.deleteMigration(mig.Name()); err != nil {
			return err
		}
	}

	return nil
}

// recordMigration, migration'ı çalışmış olarak kaydeder.
func (m *Migrator) recordMigration(name string, batch int) error {
	query := "INSERT INTO migrations (migration, batch) VALUES (?, ?)"
	_, err := m.db.Exec(query, name, batch)
	return err
}

// deleteMigration, migration kaydını siler.
func (m *Migrator) deleteMigration(name string) error {
	query := "DELETE FROM migrations WHERE migration = ?"
	_, err := m.db.Exec(query, name)
	return err
}

// ranMigrations, çalışmış migration adlarını set olarak döndürür.
func (m *Migrator) ranMigrations() (map[string]bool, error) {
	query := "SELECT migration FROM migrations ORDER BY id ASC"

	rows, err := m.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ran := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		ran[name] = true
	}

	return ran, rows.Err()
}

// batchMigrations, verilen batch'teki migration adlarını sırayla döndürür.
func (m *Migrator) batchMigrations(batch int) ([]string, error) {
	query := "SELECT migration FROM migrations WHERE batch = ? ORDER BY id ASC"

	rows, err := m.db.Query(query, batch)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// lastBatch, son batch numarasını döndürür; hiç migration yoksa 0.
func (m *Migrator) lastBatch() (int, error) {
	query := "SELECT MAX(batch) FROM migrations"

	var batch sql.NullInt64
	if err := m.db.QueryRow(query).Scan(&batch); err != nil {
		return 0, err
	}

	if batch.Valid {
		return int(batch.Int64), nil
	}

	return 0, nil
}
