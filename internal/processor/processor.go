// internal/processor/processor.go
package processor

import (
	"context"

	"github.com/YaganovValera/market-stream/pkg/binance"
)

// Processor обрабатывает одно событие multi-stream конверта.
type Processor interface {
	// EventType возвращает значение поля "e", на которое подписан процессор.
	EventType() string
	// Process обрабатывает payload события. Ошибка останавливает event loop.
	Process(ctx context.Context, evt binance.CombinedStreamEvent) error
}
