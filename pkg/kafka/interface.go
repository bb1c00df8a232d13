// pkg/kafka/interface.go
//
// Пакет kafka публикует собранные события в Kafka. Контракт Producer
// не зависит от конкретного драйвера.
package kafka

import "context"

// Producer публикует сообщения в Kafka.
type Producer interface {
	// Publish гарантирует, что сообщение будет доставлено согласно политике
	// RequiredAcks; возможен внутренний retry согласно стратегии back-off.
	Publish(ctx context.Context, topic string, key, value []byte) error
	// Ping проверяет достижимость кластера (обновление метаданных).
	Ping(ctx context.Context) error
	Close() error
}
