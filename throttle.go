package fluentsql

import (
	"context"
	"database/sql"

	"golang.org/x/time/rate"
)

// ThrottledExecutor, bir QueryExecutor'ı token bucket rate limiter ile
// sarar. Her sorgu çalışmadan önce limiter'dan token bekler; böylece
// toplu işler (batch insert, rapor sorguları) veritabanını boğamaz.
type ThrottledExecutor struct {
	inner   QueryExecutor
	limiter *rate.Limiter
}

// NewThrottledExecutor, saniyede limit sorguya izin veren, burst'e kadar
// ani yığılmayı tolere eden bir executor oluşturur.
func NewThrottledExecutor(inner QueryExecutor, limit rate.Limit, burst int) *ThrottledExecutor {
	return &ThrottledExecutor{
		inner:   inner,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Exec, token alındıktan sonra sorguyu iç executor'a iletir.
func (t *ThrottledExecutor) Exec(query string, args ...any) (sql.Result, error) {
	if err := t.limiter.Wait(context.Background()); err != nil {
		return nil, err
	}
	return t.inner.Exec(query, args...)
}

// Query, token alındıktan sonra sorguyu iç executor'a iletir.
func (t *ThrottledExecutor) Query(query string, args ...any) (*sql.Rows, error) {
	if err := t.limiter.Wait(context.Background()); err != nil {
		return nil, err
	}
	return t.inner.Query(query, args...)
}

// QueryRow, token alındıktan sonra sorguyu iç executor'a iletir.
//
// sql.Row imzası hata taşıyamaz; Wait yalnızca limiter yapılandırması
// geçersizse (burst 0 gibi) hata verir ve hata anında döner — bu durumda
// sorgu BEKLEMEDEN iletilir. Exec ve Query aynı hatayı çağırana döndürür.
func (t *ThrottledExecutor) QueryRow(query string, args ...any) *sql.Row {
	_ = t.limiter.Wait(context.Background())
	return t.inner.QueryRow(query, args...)
}
