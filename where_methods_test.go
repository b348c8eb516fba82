// -----------------------------------------------------------------------------
// WHERE Methods Tests
// -----------------------------------------------------------------------------
// Bu testler, WhereIn, WhereBetween, WhereNull, nested gruplar ve raw
// koşulların hem doğru SQL ürettiğini hem de SQL injection'a karşı
// korumalı olduğunu doğrular.
// -----------------------------------------------------------------------------

package fluentsql

import (
	"strings"
	"testing"
)

// TestWhereIn_BasicUsage tests basic WhereIn functionality.
func TestWhereIn_BasicUsage(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar())

	qb = qb.Table("users").
		Select("id", "name", "email").
		WhereIn("status", []any{"active", "pending", "approved"})

	sql, args, err := qb.ToSQL()
	if err != nil {
		t.Fatalf("Failed to compile SQL: %v", err)
	}

	expected := "SELECT `id`, `name`, `email` FROM `users` WHERE `status` IN (?, ?, ?)"
	if sql != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, sql)
	}

	if len(args) != 3 {
		t.Errorf("Expected 3 args, got %d", len(args))
	}
}

// TestWhereIn_SQLInjectionPrevention tests SQL injection prevention in WhereIn.
func TestWhereIn_SQLInjectionPrevention(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar())

	// Hostil değerler parametre olarak güvenle bağlanmalı
	maliciousValues := []any{
		"active",
		"'; DROP TABLE users--",
		"' OR '1'='1",
		"admin' UNION SELECT * FROM passwords--",
	}

	qb = qb.Table("users").WhereIn("status", maliciousValues)

	sql, args, err := qb.ToSQL()
	if err != nil {
		t.Fatalf("Failed to compile SQL: %v", err)
	}

	if strings.Contains(sql, "DROP TABLE") {
		t.Error("SQL injection detected in WhereIn: DROP TABLE found in query")
	}
	if strings.Contains(sql, "UNION SELECT") {
		t.Error("SQL injection detected in WhereIn: UNION SELECT found in query")
	}

	if !strings.Contains(sql, "IN (?, ?, ?, ?)") {
		t.Error("WhereIn should use placeholders")
	}

	if len(args) != 4 {
		t.Errorf("Expected 4 args, got %d", len(args))
	}
}

// TestWhereBetween_BasicUsage tests basic WhereBetween functionality.
func TestWhereBetween_BasicUsage(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar())

	sql, args, err := qb.Table("users").WhereBetween("age", 18, 65).ToSQL()
	if err != nil {
		t.Fatalf("Failed to compile SQL: %v", err)
	}

	expected := "SELECT * FROM `users` WHERE `age` BETWEEN ? AND ?"
	if sql != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, sql)
	}
	if len(args) != 2 || args[0] != 18 || args[1] != 65 {
		t.Errorf("Expected args [18 65], got %v", args)
	}
}

// TestWhereNull tests NULL predicates consuming no bindings.
func TestWhereNull(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar())

	sql, args, err := qb.Table("users").
		WhereNull("deleted_at").
		WhereNotNull("email").
		ToSQL()
	if err != nil {
		t.Fatalf("Failed to compile SQL: %v", err)
	}

	expected := "SELECT * FROM `users` WHERE `deleted_at` IS NULL AND `email` IS NOT NULL"
	if sql != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, sql)
	}
	if len(args) != 0 {
		t.Errorf("NULL predicates should consume no bindings, got %v", args)
	}
}

// TestWhereNot_Joiners tests AND NOT / OR NOT joiner words.
func TestWhereNot_Joiners(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar())

	sql, _, err := qb.Table("users").
		Where("status", "=", "active").
		WhereNot("role", "=", "banned").
		OrWhereNot("score", "<", 10).
		ToSQL()
	if err != nil {
		t.Fatalf("Failed to compile SQL: %v", err)
	}

	expected := "SELECT * FROM `users` WHERE `status` = ? AND NOT `role` = ? OR NOT `score` < ?"
	if sql != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, sql)
	}
}

// TestWhereGroup_Nested tests parenthesized groups and binding order.
func TestWhereGroup_Nested(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar())

	sql, args, err := qb.Table("users").
		Where("status", "=", "active").
		WhereGroup(func(g *QueryBuilder) {
			g.Where("age", "<", 18).OrWhere("age", ">", 65)
		}).
		ToSQL()
	if err != nil {
		t.Fatalf("Failed to compile SQL: %v", err)
	}

	expected := "SELECT * FROM `users` WHERE `status` = ? AND (`age` < ? OR `age` > ?)"
	if sql != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, sql)
	}

	// Binding'ler girdi sırasında düz
	if len(args) != 3 || args[0] != "active" || args[1] != 18 || args[2] != 65 {
		t.Errorf("Expected args [active 18 65], got %v", args)
	}
}

// TestWhereGroup_DeepNesting tests groups inside groups.
func TestWhereGroup_DeepNesting(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar())

	sql, args, err := qb.Table("users").
		WhereGroup(func(g *QueryBuilder) {
			g.Where("a", "=", 1).
				OrWhereGroup(func(g2 *QueryBuilder) {
					g2.Where("b", "=", 2).Where("c", "=", 3)
				})
		}).
		ToSQL()
	if err != nil {
		t.Fatalf("Failed to compile SQL: %v", err)
	}

	expected := "SELECT * FROM `users` WHERE (`a` = ? OR (`b` = ? AND `c` = ?))"
	if sql != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, sql)
	}
	if len(args) != 3 {
		t.Errorf("Expected 3 args, got %d", len(args))
	}
}

// TestWhereGroup_Empty tests that empty groups vanish entirely.
func TestWhereGroup_Empty(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar())

	sql, args, err := qb.Table("users").
		Where("id", "=", 1).
		WhereGroup(func(g *QueryBuilder) {}).
		ToSQL()
	if err != nil {
		t.Fatalf("Failed to compile SQL: %v", err)
	}

	expected := "SELECT * FROM `users` WHERE `id` = ?"
	if sql != expected {
		t.Errorf("Empty group should vanish — Expected:\n%s\nGot:\n%s", expected, sql)
	}
	if len(args) != 1 {
		t.Errorf("Expected 1 arg, got %d", len(args))
	}
}

// TestWhereRaw_BindingOrder tests raw fragments keeping positional bindings.
func TestWhereRaw_BindingOrder(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar())

	sql, args, err := qb.Table("users").
		Where("status", "=", "active").
		WhereRaw(Raw("YEAR(created_at) = ?", 2026)).
		Where("age", ">", 18).
		ToSQL()
	if err != nil {
		t.Fatalf("Failed to compile SQL: %v", err)
	}

	expected := "SELECT * FROM `users` WHERE `status` = ? AND YEAR(created_at) = ? AND `age` > ?"
	if sql != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, sql)
	}
	if len(args) != 3 || args[0] != "active" || args[1] != 2026 || args[2] != 18 {
		t.Errorf("Expected args [active 2026 18], got %v", args)
	}
}

// TestWhereDate_Functions tests the date helper family.
func TestWhereDate_Functions(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar())

	sql, args, err := qb.Table("orders").
		WhereDate("created_at", "2026-08-01").
		WhereYear("shipped_at", 2026).
		ToSQL()
	if err != nil {
		t.Fatalf("Failed to compile SQL: %v", err)
	}

	expected := "SELECT * FROM `orders` WHERE DATE(created_at) = ? AND YEAR(shipped_at) = ?"
	if sql != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, sql)
	}
	if len(args) != 2 {
		t.Errorf("Expected 2 args, got %d", len(args))
	}
}

// TestWhere_InvalidOperator tests operator whitelisting at compile time.
func TestWhere_InvalidOperator(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar())

	_, _, err := qb.Table("users").Where("id", "= 1 OR 1=1 --", 1).ToSQL()
	if err == nil {
		t.Error("Expected error for non-whitelisted operator, got nil")
	}
}

// TestCriteriaOnly tests bare condition fragment compilation.
func TestCriteriaOnly(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar())

	q, err := qb.Table("users").
		Where("status", "=", "active").
		OrWhere("role", "=", "admin").
		CriteriaOnly()
	if err != nil {
		t.Fatalf("Failed to compile criteria: %v", err)
	}

	expected := "`status` = ? OR `role` = ?"
	if q.SQL != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, q.SQL)
	}
	if len(q.Bindings) != 2 {
		t.Errorf("Expected 2 bindings, got %d", len(q.Bindings))
	}

	// Koşul yoksa boş fragment
	q, err = NewBuilder(nil, NewMySQLGrammar()).Table("users").CriteriaOnly()
	if err != nil {
		t.Fatalf("Failed to compile empty criteria: %v", err)
	}
	if q.SQL != "" {
		t.Errorf("Expected empty fragment, got %q", q.SQL)
	}
}
