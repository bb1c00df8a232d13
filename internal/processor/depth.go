// internal/processor/depth.go
package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/YaganovValera/market-stream/internal/metrics"
	"github.com/YaganovValera/market-stream/pkg/binance"
	"github.com/YaganovValera/market-stream/pkg/kafka"
	"github.com/YaganovValera/market-stream/pkg/logger"
	"github.com/YaganovValera/market-stream/pkg/telemetry"
)

// depthPayload — заголовок depthUpdate: границы апдейта нужны потребителям
// для склейки книги, здесь — для ключа и логов.
type depthPayload struct {
	EventType     string `json:"e"`
	EventTime     int64  `json:"E"`
	Symbol        string `json:"s"`
	FirstUpdateID int64  `json:"U"`
	FinalUpdateID int64  `json:"u"`
}

// DepthProcessor публикует инкременты стакана в Kafka, ключ — символ,
// чтобы апдейты одного символа попадали в одну партицию по порядку.
type DepthProcessor struct {
	producer kafka.Producer
	topic    string
	log      *logger.Logger
}

func NewDepthProcessor(producer kafka.Producer, topic string, log *logger.Logger) *DepthProcessor {
	return &DepthProcessor{
		producer: producer,
		topic:    topic,
		log:      log.Named("depth"),
	}
}

func (p *DepthProcessor) EventType() string { return binance.EventTypeDepth }

func (p *DepthProcessor) Process(ctx context.Context, evt binance.CombinedStreamEvent) error {
	var depth depthPayload
	if err := json.Unmarshal(evt.Data, &depth); err != nil {
		metrics.ParseErrors.WithLabelValues(binance.EventTypeDepth).Inc()
		return fmt.Errorf("depth: decode %q: %w", evt.Stream, err)
	}

	ctx, span := telemetry.Tracer().Start(ctx, "ProcessDepth",
		trace.WithAttributes(
			attribute.String("symbol", depth.Symbol),
			attribute.Int64("final_update_id", depth.FinalUpdateID),
		))
	defer span.End()

	start := time.Now()
	if err := p.producer.Publish(ctx, p.topic, []byte(depth.Symbol), evt.Data); err != nil {
		metrics.PublishErrors.WithLabelValues(binance.EventTypeDepth).Inc()
		span.RecordError(err)
		return fmt.Errorf("depth: publish %s: %w", depth.Symbol, err)
	}
	metrics.PublishLatency.WithLabelValues(binance.EventTypeDepth).Observe(time.Since(start).Seconds())

	p.log.Debug("depth update published",
		zap.String("symbol", depth.Symbol),
		zap.Int64("first_update_id", depth.FirstUpdateID),
		zap.Int64("final_update_id", depth.FinalUpdateID),
	)
	return nil
}
