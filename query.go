package fluentsql

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// -----------------------------------------------------------------------------
// Compiled Query Object
// -----------------------------------------------------------------------------
// Query, bir terminal operasyonun ürettiği immutable {SQL, Bindings} çiftini
// taşır. Her terminal çağrıda snapshot'tan yeniden derlenir, bağlantıya
// "last query" olarak iliştirilir ve sonra atılır — çağrılar arasında
// yeniden kullanılmaz.
// -----------------------------------------------------------------------------

// Query, derlenmiş bir SQL sorgusu ve ona pozisyonel olarak hizalı
// binding listesini temsil eder.
type Query struct {
	SQL      string
	Bindings []any
}

// Interpolate, binding'leri `?` placeholder'larının yerine soldan sağa
// escape edilmiş literal olarak yerleştirir ve okunabilir bir SQL metni
// döndürür. Her binding tam olarak bir placeholder'ı doldurur.
//
// SADECE log ve test amaçlıdır. Bu çıktı asla veritabanında
// ÇALIŞTIRILMAMALIDIR — escape işlemi debug okunabilirliği içindir,
// prepared statement güvencesinin yerini tutmaz.
//
// Örnek:
//
//	q := &Query{SQL: "SELECT `title` FROM `t` WHERE `id` = ?", Bindings: []any{1}}
//	q.Interpolate() // → "SELECT `title` FROM `t` WHERE `id` = 1"
func (q *Query) Interpolate() string {
	var sb strings.Builder
	next := 0

	for _, ch := range q.SQL {
		if ch == '?' && next < len(q.Bindings) {
			sb.WriteString(quoteLiteral(q.Bindings[next]))
			next++
			continue
		}
		sb.WriteRune(ch)
	}

	return sb.String()
}

// quoteLiteral, tek bir binding değerini debug çıktısı için SQL literal'ine
// çevirir. String'lerde tek tırnak ve backslash escape edilir.
func quoteLiteral(value any) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case bool:
		if v {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return "'" + v.Format("2006-01-02 15:04:05") + "'"
	case []byte:
		return quoteLiteral(string(v))
	case string:
		escaped := strings.ReplaceAll(v, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, "'", `\'`)
		return "'" + escaped + "'"
	default:
		return quoteLiteral(fmt.Sprintf("%v", v))
	}
}
