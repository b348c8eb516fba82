package fluentsql

import (
	"testing"
)

// -----------------------------------------------------------------------------
// SQL INJECTION GÜVENLİK TESTLERİ
// -----------------------------------------------------------------------------
// Bu testler, SQL injection saldırılarına karşı korumanın çalıştığını doğrular.
// Her test case bir exploit senaryosunu simüle eder.
// -----------------------------------------------------------------------------

// TestSQLInjection_OrderBy_MaliciousColumn tests SQL injection prevention in OrderBy
func TestSQLInjection_OrderBy_MaliciousColumn(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar())

	maliciousInputs := []struct {
		name   string
		column string
	}{
		{
			name:   "DROP TABLE attack",
			column: "id; DROP TABLE users--",
		},
		{
			name:   "OR injection",
			column: "id' OR '1'='1",
		},
		{
			name:   "UNION attack",
			column: "id UNION SELECT * FROM passwords--",
		},
		{
			name:   "Comment injection",
			column: "id--",
		},
		{
			name:   "Semicolon injection",
			column: "id; UPDATE users SET admin=1",
		},
		{
			name:   "Quote injection",
			column: "id'",
		},
		{
			name:   "Double quote injection",
			column: `id"`,
		},
		{
			name:   "Backtick injection",
			column: "id`",
		},
	}

	for _, tc := range maliciousInputs {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("Expected panic for malicious input '%s', but no panic occurred", tc.column)
				}
			}()

			// Bu çağrı panic atmalı
			qb.Table("users").OrderBy(tc.column, "DESC")
		})
	}
}

// TestSQLInjection_Where_MaliciousColumn tests SQL injection prevention in Where
func TestSQLInjection_Where_MaliciousColumn(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar())

	maliciousInputs := []string{
		"id; DROP TABLE users--",
		"id' OR '1'='1",
		"id/**/OR/**/1=1",
		"id'; DELETE FROM users WHERE '1'='1",
	}

	for _, column := range maliciousInputs {
		t.Run(column, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("Expected panic for malicious input '%s', but no panic occurred", column)
				}
			}()

			qb.Table("users").Where(column, "=", 1)
		})
	}
}

// TestSQLInjection_Table_MaliciousName tests SQL injection prevention in Table
func TestSQLInjection_Table_MaliciousName(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar())

	maliciousInputs := []string{
		"users; DROP TABLE sessions--",
		"users' OR '1'='1",
		"users/**/UNION/**/SELECT",
	}

	for _, table := range maliciousInputs {
		t.Run(table, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("Expected panic for malicious input '%s', but no panic occurred", table)
				}
			}()

			qb.Table(table)
		})
	}
}

// TestSQLInjection_Select_MaliciousColumn tests SQL injection prevention in Select
func TestSQLInjection_Select_MaliciousColumn(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar())

	maliciousInputs := []string{
		"id; DROP TABLE users--",
		"*; DELETE FROM users--",
		"id'",
	}

	for _, column := range maliciousInputs {
		t.Run(column, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("Expected panic for malicious input '%s', but no panic occurred", column)
				}
			}()

			qb.Table("users").Select(column)
		})
	}
}

// TestSQLInjection_Insert_MaliciousColumn tests SQL injection prevention in Insert
func TestSQLInjection_Insert_MaliciousColumn(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar())

	data := map[string]any{
		"name; DROP TABLE users--": "test",
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for malicious column name in Insert, but no panic occurred")
		}
	}()

	_, _ = qb.Table("users").Insert(data)
}

// TestSQLInjection_Update_MaliciousColumn tests SQL injection prevention in Update
func TestSQLInjection_Update_MaliciousColumn(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar())

	data := map[string]any{
		"id' OR '1'='1": "hacked",
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for malicious column name in Update, but no panic occurred")
		}
	}()

	_, _ = qb.Table("users").Where("id", "=", 1).Update(data)
}

// TestValidIdentifiers tests that legitimate identifiers are accepted
func TestValidIdentifiers(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar())

	validCases := []struct {
		name   string
		method func()
	}{
		{
			name: "Simple column",
			method: func() {
				qb.Table("users").OrderBy("id", "DESC")
			},
		},
		{
			name: "Underscore column",
			method: func() {
				qb.Table("users").OrderBy("user_id", "ASC")
			},
		},
		{
			name: "Dotted column",
			method: func() {
				qb.Table("users").Where("users.email", "=", "a@b.c")
			},
		},
		{
			name: "Star select",
			method: func() {
				qb.Table("users").Select("*")
			},
		},
		{
			name: "Function expression",
			method: func() {
				qb.Table("users").Select("COUNT(*) as total")
			},
		},
	}

	for _, tc := range validCases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Unexpected panic for valid identifier: %v", r)
				}
			}()

			tc.method()
		})
	}
}

// TestSQLInjection_Values_SafelyBound tests that hostile VALUES never reach SQL text
func TestSQLInjection_Values_SafelyBound(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar())

	sql, args, err := qb.Table("users").
		Where("name", "=", "'; DROP TABLE users--").
		ToSQL()
	if err != nil {
		t.Fatalf("Failed to compile SQL: %v", err)
	}

	expected := "SELECT * FROM `users` WHERE `name` = ?"
	if sql != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, sql)
	}
	if len(args) != 1 || args[0] != "'; DROP TABLE users--" {
		t.Errorf("Hostile value should survive as an inert binding, got %v", args)
	}
}
