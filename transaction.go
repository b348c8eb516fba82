// transaction.go
//
// Bu dosya, FluentSQL'in transaction sarmalayıcısını içerir. Bir
// transaction; ACID prensiplerine uygun olarak bir grup veritabanı
// işleminin tamamının *ya tamamen başarılı olmasını* ya da *hiçbirinin
// uygulanmamış kabul edilmesini* sağlar.
//
// Callback tabanlı kullanım begin/commit/rollback parantezini otomatik
// yönetir:
//
//	err := conn.Transaction(func(tx *fluentsql.Transaction) error {
//	    if _, err := tx.Table("accounts").Where("id", "=", 1).Update(debit); err != nil {
//	        return err // otomatik rollback
//	    }
//	    _, err := tx.Table("accounts").Where("id", "=", 2).Update(credit)
//	    return err
//	})
//
// Aynı bağlantıda aynı anda EN FAZLA BİR açık transaction bulunur:
// açık bir transaction varken yapılan iç içe Transaction çağrıları yeni
// bir BEGIN üretmez, mevcut transaction'ı ve onun commit/rollback
// kaderini paylaşır.

package fluentsql

import (
	"database/sql"
	"log"
)

// Transaction, açık bir sql.Tx'i bağlantı bağlamıyla birlikte sarmalar.
// Transaction üzerinden üretilen builder'lar tx executor'ına bağlıdır ve
// batch insert'lerde yeni transaction başlatmaz.
type Transaction struct {
	conn *Connection
	tx   *sql.Tx
}

// Transaction, callback'i begin/commit/rollback parantezi içinde çalıştırır.
//
// Davranış:
//   - Açık transaction yoksa yeni bir tane başlatılır.
//   - Callback hata dönerse rollback yapılır ve hata, son derlenen Query
//     ile birlikte TransactionError olarak yeniden fırlatılır.
//   - Commit hatası da aynı şekilde sarmalanır.
//   - Açık transaction VARSA callback mevcut transaction ile çağrılır;
//     commit/rollback dıştaki çağrıya bırakılır.
func (c *Connection) Transaction(fn func(*Transaction) error) error {
	if c.activeTx != nil {
		return fn(c.activeTx)
	}

	tx, err := c.db.Begin()
	if err != nil {
		return &TransactionError{Query: c.lastQuery, Err: err}
	}
	log.Println("🔄 Transaction başladı.")

	t := &Transaction{conn: c, tx: tx}
	c.activeTx = t
	defer func() { c.activeTx = nil }()

	if err := fn(t); err != nil {
		if rbErr := tx.Rollback(); rbErr == nil {
			log.Println("❌ Transaction geri alındı.")
		}
		return &TransactionError{Query: c.lastQuery, Err: err}
	}

	if err := tx.Commit(); err != nil {
		// Commit başarısızsa rollback best-effort denenir.
		_ = tx.Rollback()
		return &TransactionError{Query: c.lastQuery, Err: err}
	}

	log.Println("✅ Transaction commit edildi.")
	return nil
}

// InTransaction, bağlantıda açık bir transaction olup olmadığını döndürür.
func (c *Connection) InTransaction() bool {
	return c.activeTx != nil
}

// Builder, transaction'a bağlı boş bir QueryBuilder döndürür.
func (t *Transaction) Builder() *QueryBuilder {
	return &QueryBuilder{
		conn:     t.conn,
		executor: t.tx,
		grammar:  t.conn.grammar,
		stmts:    newStatements(),
		inTx:     true,
	}
}

// Table, transaction'a bağlı, tablo adı set edilmiş QueryBuilder döndürür.
func (t *Transaction) Table(name string) *QueryBuilder {
	return t.Builder().Table(name)
}

// Tx, altta yatan *sql.Tx'i döndürür (ileri seviye kullanım için).
func (t *Transaction) Tx() *sql.Tx {
	return t.tx
}
