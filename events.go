package fluentsql

import (
	"log"
	"time"
)

// -----------------------------------------------------------------------------
// Lifecycle Events — Observer Pattern
// -----------------------------------------------------------------------------
// Her terminal operasyon öncesi/sonrası event yayınlanır. Listener'lar
// tamamen gözlemcidir: derlenmiş SQL'i DEĞİŞTİREMEZLER. after.* eventleri
// operasyonun çalışma süresini taşır — sorgu loglama ve slow-query tespiti
// için kullanılır.
// -----------------------------------------------------------------------------

const (
	EventBeforeSelect = "before.select"
	EventAfterSelect  = "after.select"
	EventBeforeInsert = "before.insert"
	EventAfterInsert  = "after.insert"
	EventBeforeUpdate = "before.update"
	EventAfterUpdate  = "after.update"
	EventBeforeDelete = "before.delete"
	EventAfterDelete  = "after.delete"
)

// EventData, bir lifecycle event'inin payload'ını taşır.
type EventData struct {
	Builder  *QueryBuilder
	Query    *Query
	Duration time.Duration // yalnızca after.* eventlerinde doludur
}

// Listener, bir event'e abone olan fonksiyon tipidir.
type Listener func(*EventData)

// EventPublisher, listener'ları yönetir ve eventleri yayınlar.
type EventPublisher struct {
	listeners map[string][]Listener
}

// NewEventPublisher, boş bir publisher oluşturur.
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{
		listeners: make(map[string][]Listener),
	}
}

// On, verilen event adına bir listener kaydeder.
//
// Örnek:
//
//	conn.Events().On(fluentsql.EventAfterSelect, func(e *fluentsql.EventData) {
//	    if e.Duration > 200*time.Millisecond {
//	        log.Printf("🐢 Yavaş sorgu (%s): %s", e.Duration, e.Query.SQL)
//	    }
//	})
func (p *EventPublisher) On(event string, listener Listener) {
	p.listeners[event] = append(p.listeners[event], listener)
}

// Fire, event'i kayıtlı tüm listener'lara sırayla iletir. Listener'da
// çıkan panic yakalanır ve loglanır; bir gözlemci sorgu akışını düşüremez.
func (p *EventPublisher) Fire(event string, data *EventData) {
	for _, listener := range p.listeners[event] {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[EventPublisher] listener panic (%s): %v", event, r)
				}
			}()
			listener(data)
		}()
	}
}

// fire, builder tarafındaki yayın kısayoludur. Bağlantısız builder'larda
// sessizce no-op'tur.
func (qb *QueryBuilder) fire(event string, q *Query, duration time.Duration) {
	if qb.conn == nil || qb.conn.events == nil {
		return
	}
	qb.conn.events.Fire(event, &EventData{Builder: qb, Query: q, Duration: duration})
}
