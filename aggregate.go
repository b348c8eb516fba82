package fluentsql

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// -----------------------------------------------------------------------------
// AGGREGATE OPERATIONS
// -----------------------------------------------------------------------------
// Aggregate'ler mevcut sorguyu bozmadan bir alt sorguya sarar:
//
//	SELECT COUNT(field) AS field FROM (<mevcut sorgu>) AS count
//
// Bu sayede GROUP BY, DISTINCT ve LIMIT içeren sorguların üstünde de doğru
// sonuç alınır. Alan adı "*" değilse sorgunun bildirilmiş select listesinde
// yer almak zorundadır; aksi halde ErrColumnNotFound döner.
// -----------------------------------------------------------------------------

// validateAggregateField, alanın "*" veya select manifest'inde bulunan bir
// kolon olduğunu doğrular.
func (qb *QueryBuilder) validateAggregateField(field string) error {
	if field == "*" {
		return nil
	}

	for _, col := range qb.GetColumns() {
		if col == field || col == "*" {
			return nil
		}
	}
	return fmt.Errorf("%w: %q is not in the selected columns", ErrColumnNotFound, field)
}

// aggregate, mevcut sorguyu FN(field) alt sorgusuna sarıp tek skaler
// değer okur.
func (qb *QueryBuilder) aggregate(fn, field string) (any, error) {
	if err := qb.validateAggregateField(field); err != nil {
		return nil, err
	}

	inner, err := qb.ToQuery()
	if err != nil {
		return nil, fmt.Errorf("query compilation failed: %w", err)
	}

	column := "*"
	if field != "*" {
		column, err = qb.grammar.Wrap(field)
		if err != nil {
			return nil, err
		}
	}
	alias, err := qb.grammar.Wrap(strings.ToLower(fn))
	if err != nil {
		return nil, err
	}

	q := &Query{
		SQL:      fmt.Sprintf("SELECT %s(%s) AS %s FROM (%s) AS %s", fn, column, alias, inner.SQL, alias),
		Bindings: inner.Bindings,
	}
	qb.recordQuery(q)
	qb.fire(EventBeforeSelect, q, 0)

	start := time.Now()
	rows, err := qb.query(q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	qb.fire(EventAfterSelect, q, time.Since(start))

	if !rows.Next() {
		return nil, rows.Err()
	}

	var value any
	if err := rows.Scan(&value); err != nil {
		return nil, err
	}
	return value, nil
}

// Count, eşleşen satır sayısını döndürür.
//
//	total, err := conn.Table("users").Where("status", "=", "active").Count("*")
func (qb *QueryBuilder) Count(field string) (int64, error) {
	value, err := qb.aggregate("COUNT", field)
	if err != nil {
		return 0, err
	}
	return toInt64(value), nil
}

// Sum, kolonun toplamını döndürür.
func (qb *QueryBuilder) Sum(field string) (float64, error) {
	value, err := qb.aggregate("SUM", field)
	if err != nil {
		return 0, err
	}
	return toFloat64(value), nil
}

// Avg, kolonun ortalamasını döndürür.
func (qb *QueryBuilder) Avg(field string) (float64, error) {
	value, err := qb.aggregate("AVG", field)
	if err != nil {
		return 0, err
	}
	return toFloat64(value), nil
}

// Min, kolonun en küçük değerini döndürür. Değer tipi kolona bağlı
// olduğundan sonuç any'dir.
func (qb *QueryBuilder) Min(field string) (any, error) {
	value, err := qb.aggregate("MIN", field)
	if err != nil {
		return nil, err
	}
	return normalizeScalar(value), nil
}

// Max, kolonun en büyük değerini döndürür.
func (qb *QueryBuilder) Max(field string) (any, error) {
	value, err := qb.aggregate("MAX", field)
	if err != nil {
		return nil, err
	}
	return normalizeScalar(value), nil
}

// toInt64, driver'ların aggregate sonuçları için döndürdüğü farklı
// tipleri int64'e indirger (mysql text protokolü []byte, sqlite int64,
// postgres int64/string).
func toInt64(value any) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case []byte:
		n, _ := strconv.ParseInt(string(v), 10, 64)
		return n
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

// toFloat64, SUM/AVG sonuçlarını float64'e indirger.
func toFloat64(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case []byte:
		f, _ := strconv.ParseFloat(string(v), 64)
		return f
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}
