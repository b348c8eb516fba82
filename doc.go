// Package fluentsql provides a fluent SQL query builder for Go.
//
// go-fluent-sql offers a Laravel-inspired API for building SQL queries
// with built-in protection against SQL injection attacks.
//
// # Quick Start
//
// Connect to a database and start building queries:
//
//	conn, err := fluentsql.Open("mysql", "user:pass@tcp(localhost:3306)/dbname")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
// # Select Queries
//
// Build SELECT queries using the fluent API:
//
//	var users []User
//	err := conn.Table("users").
//	    Select("id", "name", "email").
//	    Where("status", "=", "active").
//	    OrderBy("created_at", "DESC").
//	    Limit(10).
//	    Get(&users)
//
// # Where Clauses
//
// Multiple WHERE methods are available:
//
//	qb.Where("age", ">", 18)
//	qb.OrWhere("role", "=", "admin")
//	qb.WhereIn("status", []any{"active", "pending"})
//	qb.WhereBetween("created_at", startDate, endDate)
//	qb.WhereNull("deleted_at")
//
// Nested groups keep OR logic unambiguous:
//
//	qb.Where("status", "=", "active").
//	    WhereGroup(func(q *fluentsql.QueryBuilder) {
//	        q.Where("age", "<", 18).OrWhere("age", ">", 65)
//	    })
//	// WHERE `status` = ? AND (`age` < ? OR `age` > ?)
//
// # Raw Expressions
//
// Raw fragments pass through compilation untouched while their bindings
// stay positional:
//
//	qb.SelectRaw("COUNT(*) as total").
//	    WhereRaw("YEAR(created_at) = ?", 2026)
//
// # Insert, Update, Delete
//
// Execute write operations:
//
//	// Insert
//	id, err := conn.Table("users").Insert(map[string]any{
//	    "name":  "John",
//	    "email": "john@example.com",
//	})
//
//	// Update
//	affected, err := conn.Table("users").
//	    Where("id", "=", 1).
//	    Update(map[string]any{"status": "inactive"})
//
//	// Delete
//	affected, err := conn.Table("users").
//	    Where("status", "=", "banned").
//	    Delete()
//
// InsertBatch wraps multi-row inserts in a transaction automatically, so a
// failing row rolls back the rows before it.
//
// # Transactions
//
// Use the callback form for atomic operations; returning an error rolls
// everything back:
//
//	err := conn.Transaction(func(tx *fluentsql.Transaction) error {
//	    if _, err := tx.Table("accounts").Where("id", "=", 1).Update(debit); err != nil {
//	        return err
//	    }
//	    _, err := tx.Table("accounts").Where("id", "=", 2).Update(credit)
//	    return err
//	})
//
// # Unions
//
// Chained unions stay flat, never nested:
//
//	q, err := first.Union(second).UnionAll(third).ToQuery()
//
// # Compile Without Executing
//
// ToQuery compiles the accumulated statements into SQL plus ordered
// bindings without touching the database; Interpolate renders a debug
// string with the bindings inlined:
//
//	q, err := qb.ToQuery()
//	fmt.Println(q.SQL)           // SELECT * FROM `users` WHERE `id` = ?
//	fmt.Println(q.Interpolate()) // SELECT * FROM `users` WHERE `id` = 1
//
// # Query Result Caching
//
// Remember stores GetMaps results in a cache driver (memory or Redis):
//
//	rows, err := conn.Table("events").
//	    Remember(store, "events:upcoming", 10*time.Minute).
//	    GetMaps()
//
// # Security
//
// go-fluent-sql protects against SQL injection through:
//   - Prepared statements for all values
//   - Identifier validation (table/column names)
//   - Operator whitelisting
//
// # Thread Safety
//
// QueryBuilder instances are NOT thread-safe. Create a new instance
// for each goroutine or query.
//
// # Supported Databases
//
//   - MySQL / MariaDB
//   - PostgreSQL
//   - SQLite
package fluentsql
