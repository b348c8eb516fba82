package fluentsql

import (
	"database/sql"
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Error Tanımları
// -----------------------------------------------------------------------------
// Bu dosya, FluentSQL'in ürettiği hata tiplerini merkezi olarak tanımlar.
// Validation hataları (boş payload, bilinmeyen compile tipi vb.) sentinel
// error olarak tutulur; driver hataları ise QueryError ile sarmalanarak
// sorumlu SQL metni ile birlikte yukarı taşınır.
//
// Hata politikası:
// - Validation hatası → anında döner, retry edilmez
// - Driver hatası → QueryError ile sarmalanır, offending SQL eklenir
// - Transaction hatası → rollback yapılır, TransactionError ile yeniden fırlatılır
// -----------------------------------------------------------------------------

var (
	// ErrEmptyData, insert/update/DDL işlemine sıfır kolon verildiğinde döner.
	ErrEmptyData = errors.New("fluentsql: empty data payload")

	// ErrColumnNotFound, aggregate fonksiyonuna verilen alan select
	// listesinde bulunamadığında döner.
	ErrColumnNotFound = errors.New("fluentsql: aggregate column not found in selects")

	// ErrNoConnection, bağlantısı olmayan bir builder üzerinde terminal
	// operasyon çalıştırıldığında döner.
	ErrNoConnection = errors.New("fluentsql: no connection available")

	// ErrUnknownCompileType, grammar'a tanımsız bir compile tipi
	// istendiğinde döner.
	ErrUnknownCompileType = errors.New("fluentsql: unknown compile type")

	// ErrMissingLength, uzunluk gerektiren kolon tipleri (VARCHAR vb.)
	// uzunluk olmadan tanımlandığında döner.
	ErrMissingLength = errors.New("fluentsql: variable-length column requires a length")

	// ErrNoRows, First sonuç bulamadığında döner. sql.ErrNoRows'un alias'ıdır;
	// çağıranın database/sql import etmeden errors.Is yapabilmesi içindir.
	ErrNoRows = sql.ErrNoRows
)

// QueryError, driver'dan dönen bir hatayı sorumlu SQL metni ve binding'ler
// ile birlikte taşır. Böylece log'larda hangi sorgunun patladığı görülür.
type QueryError struct {
	SQL      string
	Bindings []any
	Err      error
}

// Error, hata mesajını SQL metni ile birlikte döndürür.
func (e *QueryError) Error() string {
	return fmt.Sprintf("fluentsql: query failed: %v (sql: %s)", e.Err, e.SQL)
}

// Unwrap, errors.Is / errors.As zincirinin altta yatan hataya
// ulaşabilmesini sağlar.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// TransactionError, transaction callback'i veya commit/rollback sırasında
// oluşan hatayı, son derlenen Query ile birlikte taşır.
type TransactionError struct {
	Query *Query // hata anındaki son derlenen sorgu (nil olabilir)
	Err   error
}

// Error, transaction hatasını okunabilir biçimde döndürür.
func (e *TransactionError) Error() string {
	if e.Query != nil {
		return fmt.Sprintf("fluentsql: transaction failed: %v (last query: %s)", e.Err, e.Query.SQL)
	}
	return fmt.Sprintf("fluentsql: transaction failed: %v", e.Err)
}

// Unwrap, altta yatan hatayı döndürür.
func (e *TransactionError) Unwrap() error {
	return e.Err
}
