package migration

import (
	"strings"
	"testing"
)

// TestMySQLGrammar_CreateTable tests full CREATE TABLE compilation
func TestMySQLGrammar_CreateTable(t *testing.T) {
	b := NewBlueprint("users")
	b.ID()
	b.String("name", 100)
	b.String("email", 190).Unique()
	b.Integer("age").Nullable()
	b.Boolean("active").Default(true)
	b.Timestamps()

	if err := b.validate(); err != nil {
		t.Fatalf("Blueprint should validate: %v", err)
	}

	g := NewMySQLGrammar()
	sql := g.CompileCreateTable(b.table, b.columns, b.uniqueIndexes(), b.foreigns)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS `users`",
		"`id` BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY",
		"`name` VARCHAR(100) NOT NULL",
		"`email` VARCHAR(190) NOT NULL",
		"`age` INT NULL",
		"`active` TINYINT(1) NOT NULL DEFAULT 1",
		"`created_at` TIMESTAMP NULL",
		"UNIQUE KEY `users_email_unique` (`email`)",
		"ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
	}
	for _, want := range checks {
		if !strings.Contains(sql, want) {
			t.Errorf("Expected DDL to contain %q, got:\n%s", want, sql)
		}
	}
}

// TestMySQLGrammar_UniqueFromColumnFlags tests that UNIQUE constraints come
// from unique-flagged columns, not from primary keys
func TestMySQLGrammar_UniqueFromColumnFlags(t *testing.T) {
	b := NewBlueprint("accounts")
	b.ID()
	b.String("iban", 34).Unique()

	indexes := b.uniqueIndexes()
	if len(indexes) != 1 {
		t.Fatalf("Expected exactly 1 unique index, got %d", len(indexes))
	}
	if indexes[0].Columns[0] != "iban" || indexes[0].Type != IndexTypeUnique {
		t.Errorf("Unexpected unique index: %+v", indexes[0])
	}

	sql := NewMySQLGrammar().CompileCreateTable(b.table, b.columns, indexes, b.foreigns)
	if strings.Contains(sql, "UNIQUE KEY `accounts_id_unique`") {
		t.Error("Primary key must not produce a UNIQUE constraint")
	}
	if !strings.Contains(sql, "UNIQUE KEY `accounts_iban_unique` (`iban`)") {
		t.Errorf("Missing unique constraint for iban:\n%s", sql)
	}
}

// TestMySQLGrammar_ForeignKey tests registered foreign key constraints
func TestMySQLGrammar_ForeignKey(t *testing.T) {
	b := NewBlueprint("posts")
	b.ID()
	b.BigInteger("user_id").Unsigned()
	b.Foreign("user_id").References("id").On("users").Cascade()

	sql := NewMySQLGrammar().CompileCreateTable(b.table, b.columns, b.uniqueIndexes(), b.foreigns)

	want := "CONSTRAINT `posts_user_id_foreign` FOREIGN KEY (`user_id`) REFERENCES `users` (`id`) ON DELETE CASCADE ON UPDATE CASCADE"
	if !strings.Contains(sql, want) {
		t.Errorf("Expected DDL to contain:\n%s\nGot:\n%s", want, sql)
	}
}

// TestBlueprint_Validation tests the compile-time schema validation rules
func TestBlueprint_Validation(t *testing.T) {
	// Kolonsuz tablo
	empty := NewBlueprint("nothing")
	if err := empty.validate(); err == nil {
		t.Error("Expected error for zero-column blueprint")
	}

	// Uzunluksuz VARCHAR
	b := NewBlueprint("users")
	b.String("name", 0)
	if err := b.validate(); err == nil {
		t.Error("Expected error for VARCHAR without length")
	}

	// TEXT uzunluk gerektirmez
	b2 := NewBlueprint("posts")
	b2.Text("body")
	if err := b2.validate(); err != nil {
		t.Errorf("TEXT should not require a length: %v", err)
	}
}

// TestPostgresGrammar_CreateTable tests dialect translation
func TestPostgresGrammar_CreateTable(t *testing.T) {
	b := NewBlueprint("users")
	b.ID()
	b.String("email", 190).Unique()
	b.Boolean("active").Default(false)
	b.JSON("meta").Nullable()

	sql := NewPostgresGrammar().CompileCreateTable(b.table, b.columns, b.uniqueIndexes(), b.foreigns)

	checks := []string{
		`CREATE TABLE IF NOT EXISTS "users"`,
		`"id" BIGSERIAL NOT NULL PRIMARY KEY`,
		`"email" VARCHAR(190) NOT NULL`,
		`"active" BOOLEAN NOT NULL DEFAULT FALSE`,
		`"meta" JSONB NULL`,
		`CONSTRAINT "users_email_unique" UNIQUE ("email")`,
	}
	for _, want := range checks {
		if !strings.Contains(sql, want) {
			t.Errorf("Expected DDL to contain %q, got:\n%s", want, sql)
		}
	}

	if strings.Contains(sql, "ENGINE=InnoDB") {
		t.Error("Postgres DDL must not carry MySQL table options")
	}
}

// TestPostgresGrammar_AddIndex tests separate CREATE INDEX statements
func TestPostgresGrammar_AddIndex(t *testing.T) {
	g := NewPostgresGrammar()

	idx := Index{Name: "users_email_index", Columns: []string{"email"}, Type: IndexTypeIndex}
	sql := g.CompileAddIndex("users", idx)
	if expected := `CREATE INDEX IF NOT EXISTS "users_email_index" ON "users" ("email")`; sql != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, sql)
	}

	uniq := Index{Name: "users_email_unique", Columns: []string{"email"}, Type: IndexTypeUnique}
	sql = g.CompileAddIndex("users", uniq)
	if expected := `CREATE UNIQUE INDEX IF NOT EXISTS "users_email_unique" ON "users" ("email")`; sql != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, sql)
	}
}

// TestMySQLGrammar_DropStatements tests drop compilation
func TestMySQLGrammar_DropStatements(t *testing.T) {
	g := NewMySQLGrammar()

	if sql := g.CompileDropTable("users"); sql != "DROP TABLE IF EXISTS `users`" {
		t.Errorf("Unexpected drop table SQL: %s", sql)
	}
	if sql := g.CompileDropColumn("users", "age"); sql != "ALTER TABLE `users` DROP COLUMN `age`" {
		t.Errorf("Unexpected drop column SQL: %s", sql)
	}
	if sql := g.CompileDropIndex("users", "users_email_unique"); sql != "ALTER TABLE `users` DROP INDEX `users_email_unique`" {
		t.Errorf("Unexpected drop index SQL: %s", sql)
	}
}
