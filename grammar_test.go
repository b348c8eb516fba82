package fluentsql

import (
	"errors"
	"testing"
)

// -----------------------------------------------------------------------------
// GRAMMAR DERLEME TESTLERİ
// -----------------------------------------------------------------------------
// Insert/update/delete aileleri, lehçe farkları ve union düzleştirmesi.
// Grammar saf derleyicidir; testler doğrudan Compile üzerinden veya
// builder snapshot'ı ile çalışır, veritabanına dokunmaz.
// -----------------------------------------------------------------------------

func insertStmts(table string) *Statements {
	s := newStatements()
	s.Table = table
	return s
}

// TestCompileInsert_SortedColumns tests deterministic column ordering
func TestCompileInsert_SortedColumns(t *testing.T) {
	g := NewMySQLGrammar()

	q, err := g.Compile(CompileInsert, insertStmts("users"), map[string]any{
		"name":  "John",
		"email": "john@example.com",
		"age":   30,
	})
	if err != nil {
		t.Fatalf("Failed to compile insert: %v", err)
	}

	expected := "INSERT INTO `users` (`age`, `email`, `name`) VALUES (?, ?, ?)"
	if q.SQL != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, q.SQL)
	}

	// Binding sırası kolon sırasıyla hizalı
	if q.Bindings[0] != 30 || q.Bindings[1] != "john@example.com" || q.Bindings[2] != "John" {
		t.Errorf("Bindings misaligned with sorted columns: %v", q.Bindings)
	}
}

// TestCompileInsert_EmptyData tests the zero-column edge case
func TestCompileInsert_EmptyData(t *testing.T) {
	g := NewMySQLGrammar()

	_, err := g.Compile(CompileInsert, insertStmts("users"), map[string]any{})
	if !errors.Is(err, ErrEmptyData) {
		t.Errorf("Expected ErrEmptyData, got %v", err)
	}

	_, err = g.Compile(CompileUpdate, insertStmts("users"), nil)
	if !errors.Is(err, ErrEmptyData) {
		t.Errorf("Expected ErrEmptyData for empty update, got %v", err)
	}
}

// TestCompileInsert_RawValue tests RawExpr inlining in VALUES
func TestCompileInsert_RawValue(t *testing.T) {
	g := NewMySQLGrammar()

	q, err := g.Compile(CompileInsert, insertStmts("users"), map[string]any{
		"name":       "John",
		"created_at": Raw("NOW()"),
	})
	if err != nil {
		t.Fatalf("Failed to compile insert: %v", err)
	}

	expected := "INSERT INTO `users` (`created_at`, `name`) VALUES (NOW(), ?)"
	if q.SQL != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, q.SQL)
	}
	if len(q.Bindings) != 1 || q.Bindings[0] != "John" {
		t.Errorf("Raw value should not bind, got %v", q.Bindings)
	}
}

// TestCompileInsert_BoolNormalization tests bool → 0/1 binding normalization
func TestCompileInsert_BoolNormalization(t *testing.T) {
	g := NewMySQLGrammar()

	q, err := g.Compile(CompileInsert, insertStmts("users"), map[string]any{
		"active": true,
		"banned": false,
	})
	if err != nil {
		t.Fatalf("Failed to compile insert: %v", err)
	}

	if q.Bindings[0] != 1 || q.Bindings[1] != 0 {
		t.Errorf("Expected bool normalization to [1 0], got %v", q.Bindings)
	}
}

// TestInsertIgnore_Dialects tests the per-dialect ignore forms
func TestInsertIgnore_Dialects(t *testing.T) {
	data := map[string]any{"email": "a@b.c"}

	cases := []struct {
		grammar  Grammar
		expected string
	}{
		{NewMySQLGrammar(), "INSERT IGNORE INTO `users` (`email`) VALUES (?)"},
		{NewSQLiteGrammar(), `INSERT OR IGNORE INTO "users" ("email") VALUES (?)`},
		{NewPostgresGrammar(), `INSERT INTO "users" ("email") VALUES (?) ON CONFLICT DO NOTHING`},
	}

	for _, tc := range cases {
		t.Run(tc.grammar.Name(), func(t *testing.T) {
			q, err := tc.grammar.Compile(CompileInsertIgnore, insertStmts("users"), data)
			if err != nil {
				t.Fatalf("Failed to compile insert ignore: %v", err)
			}
			if q.SQL != tc.expected {
				t.Errorf("Expected:\n%s\nGot:\n%s", tc.expected, q.SQL)
			}
		})
	}
}

// TestReplace_Dialects tests REPLACE support and the postgres refusal
func TestReplace_Dialects(t *testing.T) {
	data := map[string]any{"email": "a@b.c"}

	q, err := NewMySQLGrammar().Compile(CompileReplace, insertStmts("users"), data)
	if err != nil {
		t.Fatalf("Failed to compile replace: %v", err)
	}
	if expected := "REPLACE INTO `users` (`email`) VALUES (?)"; q.SQL != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, q.SQL)
	}

	q, err = NewSQLiteGrammar().Compile(CompileReplace, insertStmts("users"), data)
	if err != nil {
		t.Fatalf("Failed to compile sqlite replace: %v", err)
	}
	if expected := `INSERT OR REPLACE INTO "users" ("email") VALUES (?)`; q.SQL != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, q.SQL)
	}

	// PostgreSQL REPLACE desteklemez
	_, err = NewPostgresGrammar().Compile(CompileReplace, insertStmts("users"), data)
	if err == nil {
		t.Error("Expected error for postgres REPLACE, got nil")
	}
}

// TestOnDuplicateKeyUpdate tests the MySQL-only upsert suffix
func TestOnDuplicateKeyUpdate(t *testing.T) {
	stmts := insertStmts("users")
	stmts.OnDuplicate = map[string]any{"name": "John"}

	q, err := NewMySQLGrammar().Compile(CompileInsert, stmts, map[string]any{"email": "a@b.c"})
	if err != nil {
		t.Fatalf("Failed to compile upsert: %v", err)
	}

	expected := "INSERT INTO `users` (`email`) VALUES (?) ON DUPLICATE KEY UPDATE `name` = ?"
	if q.SQL != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, q.SQL)
	}
	if len(q.Bindings) != 2 {
		t.Errorf("Expected 2 bindings, got %d", len(q.Bindings))
	}

	// Diğer lehçeler reddetmeli
	_, err = NewSQLiteGrammar().Compile(CompileInsert, stmts, map[string]any{"email": "a@b.c"})
	if err == nil {
		t.Error("Expected error for sqlite ON DUPLICATE KEY UPDATE, got nil")
	}
}

// TestCompileUpdate tests UPDATE with condition tail
func TestCompileUpdate(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar()).Table("users").
		Where("id", "=", 7).
		OrderBy("id", "ASC").
		Limit(1)

	q, err := qb.Grammar().Compile(CompileUpdate, qb.Statements(), map[string]any{
		"status": "inactive",
		"name":   "Johnny",
	})
	if err != nil {
		t.Fatalf("Failed to compile update: %v", err)
	}

	expected := "UPDATE `users` SET `name` = ?, `status` = ? WHERE `id` = ? ORDER BY `id` ASC LIMIT 1"
	if q.SQL != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, q.SQL)
	}

	// SET binding'leri WHERE binding'lerinden önce gelir
	if q.Bindings[0] != "Johnny" || q.Bindings[1] != "inactive" || q.Bindings[2] != 7 {
		t.Errorf("Binding order wrong: %v", q.Bindings)
	}
}

// TestCompileDelete tests DELETE with condition tail
func TestCompileDelete(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar()).Table("users").Where("status", "=", "banned")

	q, err := qb.Grammar().Compile(CompileDelete, qb.Statements(), nil)
	if err != nil {
		t.Fatalf("Failed to compile delete: %v", err)
	}

	expected := "DELETE FROM `users` WHERE `status` = ?"
	if q.SQL != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, q.SQL)
	}
}

// TestUnknownCompileType tests the closed enum boundary
func TestUnknownCompileType(t *testing.T) {
	_, err := NewMySQLGrammar().Compile(CompileType(99), insertStmts("users"), nil)
	if !errors.Is(err, ErrUnknownCompileType) {
		t.Errorf("Expected ErrUnknownCompileType, got %v", err)
	}
}

// TestPostgres_Quoting tests double-quote identifier wrapping
func TestPostgres_Quoting(t *testing.T) {
	qb := NewBuilder(nil, NewPostgresGrammar())

	sql, _, err := qb.Table("users").Select("id", "users.email").Where("id", "=", 1).ToSQL()
	if err != nil {
		t.Fatalf("Failed to compile SQL: %v", err)
	}

	expected := `SELECT "id", "users"."email" FROM "users" WHERE "id" = ?`
	if sql != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, sql)
	}
}

// TestJoin_Variants tests join family compilation
func TestJoin_Variants(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar())

	sql, args, err := qb.Table("users").
		LeftJoin("posts", "posts.user_id", "=", "users.id").
		CrossJoin("settings").
		JoinUsing("profiles", "user_id").
		ToSQL()
	if err != nil {
		t.Fatalf("Failed to compile SQL: %v", err)
	}

	expected := "SELECT * FROM `users`" +
		" LEFT JOIN `posts` ON `posts`.`user_id` = `users`.`id`" +
		" CROSS JOIN `settings`" +
		" JOIN `profiles` USING (`user_id`)"
	if sql != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, sql)
	}
	if len(args) != 0 {
		t.Errorf("Column-compare joins should consume no bindings, got %v", args)
	}
}

// TestJoinOn_CallbackCriteria tests callback-built ON criteria with bound values
func TestJoinOn_CallbackCriteria(t *testing.T) {
	qb := NewBuilder(nil, NewMySQLGrammar())

	sql, args, err := qb.Table("users").
		InnerJoinOn("orders", func(j *JoinCriteria) {
			j.On("orders.user_id", "=", "users.id").
				OnValue("orders.status", "=", "paid")
		}).
		ToSQL()
	if err != nil {
		t.Fatalf("Failed to compile SQL: %v", err)
	}

	expected := "SELECT * FROM `users`" +
		" INNER JOIN `orders` ON `orders`.`user_id` = `users`.`id` AND `orders`.`status` = ?"
	if sql != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, sql)
	}
	if len(args) != 1 || args[0] != "paid" {
		t.Errorf("Expected args [paid], got %v", args)
	}
}

// TestUnion_FlatChaining tests that chained unions stay flat
func TestUnion_FlatChaining(t *testing.T) {
	g := NewMySQLGrammar()

	a := NewBuilder(nil, g).Table("a")
	b := NewBuilder(nil, g).Table("b")
	c := NewBuilder(nil, g).Table("c")

	sql, _, err := a.Union(b).UnionAll(c).ToSQL()
	if err != nil {
		t.Fatalf("Failed to compile union: %v", err)
	}

	expected := "(SELECT * FROM `a`) UNION (SELECT * FROM `b`) UNION ALL (SELECT * FROM `c`)"
	if sql != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, sql)
	}
}

// TestUnion_MemberChainFlattened tests flattening of a member's own chain
func TestUnion_MemberChainFlattened(t *testing.T) {
	g := NewMySQLGrammar()

	a := NewBuilder(nil, g).Table("a")
	b := NewBuilder(nil, g).Table("b")
	c := NewBuilder(nil, g).Table("c")

	// b kendi zincirini taşıyor; a'ya eklenince zincir düzleşir
	b.Union(c)
	sql, _, err := a.Union(b).ToSQL()
	if err != nil {
		t.Fatalf("Failed to compile union: %v", err)
	}

	expected := "(SELECT * FROM `a`) UNION (SELECT * FROM `c`) UNION (SELECT * FROM `b`)"
	if sql != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, sql)
	}
}

// TestUnion_MemberKeepsOwnChain tests that a member builder stays usable
// after being unioned into another query
func TestUnion_MemberKeepsOwnChain(t *testing.T) {
	g := NewMySQLGrammar()

	a := NewBuilder(nil, g).Table("a")
	b := NewBuilder(nil, g).Table("b")
	c := NewBuilder(nil, g).Table("c")

	b.Union(c)
	before, _, err := b.ToSQL()
	if err != nil {
		t.Fatalf("Failed to compile member: %v", err)
	}

	// b başka bir zincire katıldıktan sonra kendi zincirini korumalı
	a.Union(b)
	after, _, err := b.ToSQL()
	if err != nil {
		t.Fatalf("Failed to recompile member: %v", err)
	}

	expected := "(SELECT * FROM `b`) UNION (SELECT * FROM `c`)"
	if before != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, before)
	}
	if after != before {
		t.Errorf("Member chain changed after union:\nbefore: %s\nafter:  %s", before, after)
	}
}

// TestUnion_CompileDoesNotMutateMembers tests that compiling the outer
// query leaves member snapshots untouched
func TestUnion_CompileDoesNotMutateMembers(t *testing.T) {
	g := NewMySQLGrammar()

	a := NewBuilder(nil, g).Table("a")
	b := NewBuilder(nil, g).Table("b")
	c := NewBuilder(nil, g).Table("c")

	b.Union(c)
	a.Union(b)

	if _, _, err := a.ToSQL(); err != nil {
		t.Fatalf("Failed to compile outer union: %v", err)
	}

	sql, _, err := b.ToSQL()
	if err != nil {
		t.Fatalf("Failed to compile member after outer compile: %v", err)
	}

	expected := "(SELECT * FROM `b`) UNION (SELECT * FROM `c`)"
	if sql != expected {
		t.Errorf("Outer compile corrupted member snapshot.\nExpected:\n%s\nGot:\n%s", expected, sql)
	}

	// Dış sorgunun ikinci derlemesi de byte-identical kalmalı
	first, _, _ := a.ToSQL()
	second, _, _ := a.ToSQL()
	if first != second {
		t.Errorf("Outer union compile not idempotent:\n%s\nvs\n%s", first, second)
	}
}

// TestUnion_WithBindings tests binding order across union members
func TestUnion_WithBindings(t *testing.T) {
	g := NewMySQLGrammar()

	a := NewBuilder(nil, g).Table("a").Where("x", "=", 1)
	b := NewBuilder(nil, g).Table("b").Where("y", "=", 2)

	sql, args, err := a.Union(b).ToSQL()
	if err != nil {
		t.Fatalf("Failed to compile union: %v", err)
	}

	expected := "(SELECT * FROM `a` WHERE `x` = ?) UNION (SELECT * FROM `b` WHERE `y` = ?)"
	if sql != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, sql)
	}
	if len(args) != 2 || args[0] != 1 || args[1] != 2 {
		t.Errorf("Expected args [1 2], got %v", args)
	}
}
