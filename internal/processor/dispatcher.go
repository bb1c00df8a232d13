// internal/processor/dispatcher.go
package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/YaganovValera/market-stream/internal/metrics"
	"github.com/YaganovValera/market-stream/pkg/binance"
	"github.com/YaganovValera/market-stream/pkg/logger"
)

// DispatchRouter направляет события по полю "e" в зарегистрированные
// процессоры. Событие неизвестного типа логируется и пропускается:
// подписка может опережать набор процессоров.
type DispatchRouter struct {
	routes map[string]Processor
	log    *logger.Logger
}

// NewDispatchRouter собирает роутер из набора процессоров.
func NewDispatchRouter(log *logger.Logger, procs ...Processor) *DispatchRouter {
	routes := make(map[string]Processor, len(procs))
	for _, p := range procs {
		routes[p.EventType()] = p
	}
	return &DispatchRouter{routes: routes, log: log.Named("dispatcher")}
}

// eventEnvelope — минимум, нужный для маршрутизации.
type eventEnvelope struct {
	EventType string `json:"e"`
}

// Dispatch разбирает тег "e" из payload и вызывает соответствующий процессор.
func (d *DispatchRouter) Dispatch(ctx context.Context, evt binance.CombinedStreamEvent) error {
	var env eventEnvelope
	if err := json.Unmarshal(evt.Data, &env); err != nil {
		metrics.ParseErrors.WithLabelValues("envelope").Inc()
		return fmt.Errorf("dispatch %q: decode envelope: %w", evt.Stream, err)
	}

	metrics.EventsTotal.WithLabelValues(env.EventType).Inc()

	proc, ok := d.routes[env.EventType]
	if !ok {
		d.log.Debug("no processor for event type",
			zap.String("type", env.EventType),
			zap.String("stream", evt.Stream),
		)
		return nil
	}
	return proc.Process(ctx, evt)
}
