package fluentsql

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/biyonik/go-fluent-sql/cache"
)

// -----------------------------------------------------------------------------
// TERMINAL OPERATIONS
// -----------------------------------------------------------------------------
// Bu dosya, builder'ın sorguyu gerçekten çalıştıran uç metodlarını içerir.
// Akış her terminalde aynıdır: snapshot'tan derle → before event'i yayınla
// → execution façade üzerinden çalıştır → süreyi ölçüp after event'i
// yayınla → sonucu istenen biçime map'le. Her çağrı güncel snapshot'tan
// yeniden derler; derleme sonucu bağlantıya "last query" olarak yazılır.
// -----------------------------------------------------------------------------

// recordQuery, derlenen sorguyu bağlantıya "last query" olarak iliştirir.
func (qb *QueryBuilder) recordQuery(q *Query) {
	if qb.conn != nil {
		qb.conn.lastQuery = q
	}
}

// runRows, select derlemesini event parantezi içinde çalıştırır.
func (qb *QueryBuilder) runRows() (*sql.Rows, *Query, error) {
	q, err := qb.ToQuery()
	if err != nil {
		return nil, nil, fmt.Errorf("query compilation failed: %w", err)
	}
	qb.recordQuery(q)
	qb.fire(EventBeforeSelect, q, 0)

	start := time.Now()
	rows, err := qb.query(q)
	if err != nil {
		return nil, nil, err
	}
	qb.fire(EventAfterSelect, q, time.Since(start))
	return rows, q, nil
}

// Get, sorguyu çalıştırır ve sonuçları bir struct slice'ına tarar.
//
//	var users []User
//	err := conn.Table("users").Where("status", "=", "active").Get(&users)
func (qb *QueryBuilder) Get(dest any) error {
	rows, _, err := qb.runRows()
	if err != nil {
		return err
	}
	defer rows.Close()

	return ScanSlice(rows, dest)
}

// GetMaps, sorguyu çalıştırır ve satırları generic map listesi olarak
// döndürür. Remember ile bir cache bağlandıysa sonuç önce cache'den
// okunur, miss durumunda sorgu çalışır ve sonuç cache'e yazılır.
func (qb *QueryBuilder) GetMaps() ([]map[string]any, error) {
	cacheKey := qb.resolveCacheKey()

	if qb.cacheStore != nil {
		if cached, err := qb.cacheStore.Get(cacheKey); err == nil && cached != nil {
			if maps, ok := toMapRows(cached); ok {
				return maps, nil
			}
		}
	}

	rows, _, err := qb.runRows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result, err := rowsToMaps(rows)
	if err != nil {
		return nil, err
	}

	if qb.cacheStore != nil {
		if err := qb.cacheStore.Set(cacheKey, result, qb.cacheTTL); err != nil {
			// Cache yazım hatası sorgu sonucunu etkilemez.
			_ = err
		}
	}

	return result, nil
}

// resolveCacheKey, açık key verilmemişse derlenmiş sorgunun interpolate
// edilmiş halini key olarak kullanır: aynı SQL + aynı binding'ler aynı
// cache girdisini paylaşır.
func (qb *QueryBuilder) resolveCacheKey() string {
	if qb.cacheStore == nil || qb.cacheKey != "" {
		return qb.cacheKey
	}

	q, err := qb.ToQuery()
	if err != nil {
		return ""
	}
	return q.Interpolate()
}

// Remember, bir sonraki GetMaps sonucunun verilen cache'te saklanmasını
// sağlar (read-through). Boş key verilirse derlenmiş sorgunun interpolate
// edilmiş hali key olarak kullanılır.
//
//	rows, err := conn.Table("events").
//	    Remember(store, "events:upcoming", 10*time.Minute).
//	    GetMaps()
func (qb *QueryBuilder) Remember(store cache.Cache, key string, ttl time.Duration) *QueryBuilder {
	qb.cacheStore = store
	qb.cacheKey = key
	qb.cacheTTL = ttl
	return qb
}

// First, sorguyu LIMIT 1 ile çalıştırır ve ilk sonucu struct'a tarar.
// Satır yoksa ErrNoRows döner.
//
//	var user User
//	err := conn.Table("users").Where("id", "=", 1).First(&user)
func (qb *QueryBuilder) First(dest any) error {
	qb.Limit(1)

	rows, _, err := qb.runRows()
	if err != nil {
		return err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return err
		}
		return ErrNoRows
	}

	return ScanStruct(rows, dest)
}

// FirstMap, ilk satırı generic map olarak döndürür; satır yoksa nil
// döner (hata değil — "bulunamadı" iyi tanımlı bir sonuçtur).
func (qb *QueryBuilder) FirstMap() (map[string]any, error) {
	qb.Limit(1)

	rows, _, err := qb.runRows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	maps, err := rowsToMaps(rows)
	if err != nil {
		return nil, err
	}
	if len(maps) == 0 {
		return nil, nil
	}
	return maps[0], nil
}

// Value, tek bir kolonun ilk satırdaki değerini döndürür; satır yoksa
// nil döner.
//
//	title, err := conn.Table("posts").Where("id", "=", 7).Value("title")
func (qb *QueryBuilder) Value(column string) (any, error) {
	validateWhereColumn(column)
	qb.stmts.Selects = []any{column}
	qb.Limit(1)

	rows, _, err := qb.runRows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	var value any
	if err := rows.Scan(&value); err != nil {
		return nil, err
	}
	return normalizeScalar(value), nil
}

// Pluck, tek bir kolonun tüm satırlardaki değerlerini liste olarak döndürür.
//
//	emails, err := conn.Table("users").Pluck("email")
func (qb *QueryBuilder) Pluck(column string) ([]any, error) {
	validateWhereColumn(column)
	qb.stmts.Selects = []any{column}

	rows, _, err := qb.runRows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make([]any, 0)
	for rows.Next() {
		var value any
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, normalizeScalar(value))
	}
	return values, rows.Err()
}

// runExec, yazma derlemesini event parantezi içinde çalıştırır.
func (qb *QueryBuilder) runExec(kind CompileType, data map[string]any, beforeEvent, afterEvent string) (sql.Result, error) {
	q, err := qb.grammar.Compile(kind, qb.compileStatements(), data)
	if err != nil {
		return nil, err
	}
	qb.recordQuery(q)
	qb.fire(beforeEvent, q, 0)

	start := time.Now()
	result, err := qb.exec(q)
	if err != nil {
		return nil, err
	}
	qb.fire(afterEvent, q, time.Since(start))
	return result, nil
}

// Insert, tek satır ekler ve insert id'yi döndürür.
//
//	id, err := conn.Table("users").Insert(map[string]any{
//	    "name":  "John Doe",
//	    "email": "john@example.com",
//	})
func (qb *QueryBuilder) Insert(data map[string]any) (int64, error) {
	for column := range data {
		validateIdentifier(column, "column")
	}

	result, err := qb.runExec(CompileInsert, data, EventBeforeInsert, EventAfterInsert)
	if err != nil {
		return 0, err
	}

	id, _ := result.LastInsertId()
	return id, nil
}

// InsertIgnore, lehçenin "zaten varsa sessizce geç" formuyla ekler
// (MySQL: INSERT IGNORE, SQLite: INSERT OR IGNORE, PostgreSQL:
// ON CONFLICT DO NOTHING).
func (qb *QueryBuilder) InsertIgnore(data map[string]any) (int64, error) {
	for column := range data {
		validateIdentifier(column, "column")
	}

	result, err := qb.runExec(CompileInsertIgnore, data, EventBeforeInsert, EventAfterInsert)
	if err != nil {
		return 0, err
	}

	id, _ := result.LastInsertId()
	return id, nil
}

// Replace, lehçenin replace formuyla ekler (MySQL: REPLACE INTO,
// SQLite: INSERT OR REPLACE). PostgreSQL'de hata döner.
func (qb *QueryBuilder) Replace(data map[string]any) (int64, error) {
	for column := range data {
		validateIdentifier(column, "column")
	}

	result, err := qb.runExec(CompileReplace, data, EventBeforeInsert, EventAfterInsert)
	if err != nil {
		return 0, err
	}

	id, _ := result.LastInsertId()
	return id, nil
}

// InsertBatch, birden çok satırı ekler ve insert id'lerini sırayla döndürür.
//
// Açık bir transaction YOKSA tüm batch tek bir transaction'a sarılır:
// ortada bir satır fail ederse önceki satırlar da geri alınır. Zaten bir
// transaction içindeysek satırlar mevcut transaction'da sırayla eklenir —
// iç içe yeni bir BEGIN başlatılmaz.
func (qb *QueryBuilder) InsertBatch(rowData []map[string]any) ([]int64, error) {
	if len(rowData) == 0 {
		return nil, fmt.Errorf("%w: batch insert requires at least one row", ErrEmptyData)
	}

	insertAll := func(target *QueryBuilder) ([]int64, error) {
		ids := make([]int64, 0, len(rowData))
		for _, row := range rowData {
			id, err := target.Insert(row)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
		return ids, nil
	}

	if qb.inTx || qb.conn == nil {
		return insertAll(qb)
	}

	var ids []int64
	err := qb.conn.Transaction(func(tx *Transaction) error {
		target := tx.Builder()
		target.stmts.Table = qb.stmts.Table
		var txErr error
		ids, txErr = insertAll(target)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Update, eşleşen satırları günceller ve etkilenen satır sayısını döndürür.
//
//	affected, err := conn.Table("users").
//	    Where("id", "=", 1).
//	    Update(map[string]any{"status": "inactive"})
//
// GÜVENLİK UYARISI:
// WHERE olmadan UPDATE tüm tabloyu günceller.
func (qb *QueryBuilder) Update(data map[string]any) (int64, error) {
	for column := range data {
		validateIdentifier(column, "column")
	}

	result, err := qb.runExec(CompileUpdate, data, EventBeforeUpdate, EventAfterUpdate)
	if err != nil {
		return 0, err
	}

	affected, _ := result.RowsAffected()
	return affected, nil
}

// UpdateOrInsert, attributes ile eşleşen satır varsa values ile günceller;
// yoksa attributes+values birleşimini yeni satır olarak ekler.
func (qb *QueryBuilder) UpdateOrInsert(attributes, values map[string]any) error {
	probe := qb.clone()
	for _, k := range sortedKeys(attributes) {
		probe.Where(k, "=", attributes[k])
	}

	row, err := probe.FirstMap()
	if err != nil {
		return err
	}

	if row == nil {
		merged := make(map[string]any, len(attributes)+len(values))
		for k, v := range attributes {
			merged[k] = v
		}
		for k, v := range values {
			merged[k] = v
		}
		_, err := qb.clone().Insert(merged)
		return err
	}

	target := qb.clone()
	for _, k := range sortedKeys(attributes) {
		target.Where(k, "=", attributes[k])
	}
	_, err = target.Update(values)
	return err
}

// Delete, eşleşen satırları siler ve etkilenen satır sayısını döndürür.
//
// GÜVENLİK UYARISI:
// WHERE olmadan DELETE tüm tabloyu boşaltır.
func (qb *QueryBuilder) Delete() (int64, error) {
	result, err := qb.runExec(CompileDelete, nil, EventBeforeDelete, EventAfterDelete)
	if err != nil {
		return 0, err
	}

	affected, _ := result.RowsAffected()
	return affected, nil
}

// normalizeScalar, driver'ın []byte döndürdüğü değerleri string'e çevirir
// (go-sql-driver/mysql text protokolünde sayılar dahil çoğu değer []byte
// gelir).
func normalizeScalar(value any) any {
	if b, ok := value.([]byte); ok {
		return string(b)
	}
	return value
}

// toMapRows, cache'den dönen değeri satır listesine çevirmeye çalışır.
// Memory cache değeri olduğu gibi saklar; Redis cache JSON decode
// sonrası []any içinde map[string]any döndürür.
func toMapRows(value any) ([]map[string]any, bool) {
	switch v := value.(type) {
	case []map[string]any:
		return v, true
	case []any:
		rows := make([]map[string]any, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, false
			}
			rows = append(rows, m)
		}
		return rows, true
	default:
		return nil, false
	}
}
