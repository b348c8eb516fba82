// -----------------------------------------------------------------------------
// Connection
// -----------------------------------------------------------------------------
// Bu dosya, FluentSQL'in veritabanına bağlanmasını sağlayan merkezi
// bağlantı katmanını içerir. Laravel veya Symfony frameworklerinde olduğu
// gibi, bağlantı yapılandırması tek noktadan yönetilir: driver seçimi
// grammar'ı belirler, bağlantı havuzu ayarlanır ve ping ile doğrulanır.
//
// Connection; grammar, tablo prefix'i, event publisher ve "last query"
// introspection referansını bir arada tutar. Core içinde global bir
// bağlantı singleton'ı YOKTUR — her builder bağlantısını explicit alır.
// -----------------------------------------------------------------------------

package fluentsql

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"golang.org/x/time/rate"
)

// Connection, bir veritabanı bağlantısını ve ona bağlı collaborator'ları
// (grammar, prefix, events) temsil eder.
type Connection struct {
	db        *sql.DB
	executor  QueryExecutor
	grammar   Grammar
	events    *EventPublisher
	prefix    string
	lastQuery *Query
	activeTx  *Transaction // aynı anda en fazla bir açık transaction
}

// Open, verilen driver ve DSN ile bağlantı açar. Driver adı grammar'ı
// belirler: "mysql", "postgres", "sqlite3".
//
// Bağlantı sırasında şu adımlar gerçekleştirilir:
//  1. sql.Open ile bağlantı nesnesi oluşturulur.
//  2. Havuz için max open/idle connection değerleri belirlenir.
//  3. Bağlantı ömrü 5 dakika olarak ayarlanır.
//  4. db.Ping ile ulaşılabilirlik kontrol edilir.
func Open(driver, dsn string) (*Connection, error) {
	var grammar Grammar
	switch driver {
	case "mysql":
		grammar = NewMySQLGrammar()
	case "postgres":
		grammar = NewPostgresGrammar()
	case "sqlite3":
		grammar = NewSQLiteGrammar()
	default:
		return nil, fmt.Errorf("fluentsql: unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	// Bağlantı havuzu ayarları: performans ve kaynak yönetimi için
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Veritabanına bağlanılıyor...")
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	log.Println("✅ Veritabanı bağlantısı başarılı!")

	conn := &Connection{
		db:      db,
		grammar: grammar,
		events:  NewEventPublisher(),
	}
	conn.executor = db
	return conn, nil
}

// Connect, MySQL için Open kısayoludur.
func Connect(dsn string) (*Connection, error) {
	return Open("mysql", dsn)
}

// NewConnection, hazır bir *sql.DB ve grammar üzerinden Connection kurar.
// Test ve özel havuz yapılandırmaları için kullanılır.
func NewConnection(db *sql.DB, grammar Grammar) *Connection {
	return &Connection{
		db:       db,
		executor: db,
		grammar:  grammar,
		events:   NewEventPublisher(),
	}
}

// Builder, bağlantıya bağlı boş bir QueryBuilder döndürür.
func (c *Connection) Builder() *QueryBuilder {
	return &QueryBuilder{
		conn:     c,
		executor: c.executor,
		grammar:  c.grammar,
		stmts:    newStatements(),
	}
}

// Table, tablo adı set edilmiş yeni bir QueryBuilder döndürür.
//
//	var users []User
//	err := conn.Table("users").Where("status", "=", "active").Get(&users)
func (c *Connection) Table(name string) *QueryBuilder {
	return c.Builder().Table(name)
}

// SetTablePrefix, bağlantının tablo prefix'ini set eder. Prefix, derleme
// anında tablo adlarına ve table.column referanslarının tablo kısmına
// uygulanır; Raw ifadelere dokunulmaz.
func (c *Connection) SetTablePrefix(prefix string) {
	c.prefix = prefix
}

// TablePrefix, aktif tablo prefix'ini döndürür.
func (c *Connection) TablePrefix() string {
	return c.prefix
}

// Events, bağlantının event publisher'ını döndürür.
func (c *Connection) Events() *EventPublisher {
	return c.events
}

// LastQuery, bu bağlantı üzerinde son derlenen Query'yi döndürür
// (introspection/debug için; hiç sorgu çalışmadıysa nil).
func (c *Connection) LastQuery() *Query {
	return c.lastQuery
}

// Grammar, bağlantının grammar'ını döndürür.
func (c *Connection) Grammar() Grammar {
	return c.grammar
}

// DB, altta yatan *sql.DB havuzunu döndürür.
func (c *Connection) DB() *sql.DB {
	return c.db
}

// Throttle, bağlantının executor'ını saniye başına qps sorguya izin veren
// rate-limit'li sarmalayıcı ile değiştirir. Transaction içindeki sorgular
// throttle'dan etkilenmez (tx kendi executor'ını kullanır).
func (c *Connection) Throttle(qps float64, burst int) {
	c.executor = NewThrottledExecutor(c.db, rate.Limit(qps), burst)
}

// Close, bağlantı havuzunu kapatır. Kapanan bağlantı üzerinden üretilen
// builder'ların terminal operasyonları driver hatası döner.
func (c *Connection) Close() error {
	return c.db.Close()
}
