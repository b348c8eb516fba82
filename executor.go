package fluentsql

import (
	"database/sql"
	"strings"
)

// -----------------------------------------------------------------------------
// Execution Façade
// -----------------------------------------------------------------------------
// QueryExecutor, Go'nun 'database/sql' paketindeki hem *sql.DB (havuz)
// hem de *sql.Tx (transaction) tarafından örtük olarak uygulanan dar
// arayüzdür. Builder core'un driver'dan ihtiyaç duyduğu operasyonların
// TAMAMI budur — reflection tabanlı forwarding yoktur.
//
// Derlenmiş SQL her zaman evrensel `?` placeholder'ı taşır; driver'a
// gitmeden hemen önce translatePlaceholders ile lehçenin native
// placeholder sentaksına ($1, $2 ...) çevrilir.
// -----------------------------------------------------------------------------

type QueryExecutor interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// translatePlaceholders, evrensel `?` token'larını grammar'ın native
// placeholder'larına çevirir. MySQL/SQLite için no-op'tur; PostgreSQL
// için soldan sağa $1, $2 ... üretilir.
//
// Çeviri tek geçişlidir ve derlenmiş SQL üzerinde çalışır; literal `?`
// içerebilecek ham parçalar binding olarak verilmelidir.
func translatePlaceholders(sqlStr string, grammar Grammar) string {
	if grammar.Placeholder(1) == "?" {
		return sqlStr
	}

	var sb strings.Builder
	index := 1
	for _, ch := range sqlStr {
		if ch == '?' {
			sb.WriteString(grammar.Placeholder(index))
			index++
			continue
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}

// exec, derlenmiş sorguyu placeholder çevirisiyle çalıştırır ve driver
// hatasını sorumlu SQL ile sarmalar.
func (qb *QueryBuilder) exec(q *Query) (sql.Result, error) {
	if qb.executor == nil {
		return nil, ErrNoConnection
	}

	result, err := qb.executor.Exec(translatePlaceholders(q.SQL, qb.grammar), q.Bindings...)
	if err != nil {
		return nil, &QueryError{SQL: q.SQL, Bindings: q.Bindings, Err: err}
	}
	return result, nil
}

// query, derlenmiş sorguyu satır kümesi döndürecek şekilde çalıştırır.
func (qb *QueryBuilder) query(q *Query) (*sql.Rows, error) {
	if qb.executor == nil {
		return nil, ErrNoConnection
	}

	rows, err := qb.executor.Query(translatePlaceholders(q.SQL, qb.grammar), q.Bindings...)
	if err != nil {
		return nil, &QueryError{SQL: q.SQL, Bindings: q.Bindings, Err: err}
	}
	return rows, nil
}
