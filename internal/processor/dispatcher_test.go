// internal/processor/dispatcher_test.go
package processor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/YaganovValera/market-stream/pkg/binance"
	"github.com/YaganovValera/market-stream/pkg/logger"
)

type publishedMsg struct {
	topic string
	key   string
	value string
}

type fakeProducer struct {
	published []publishedMsg
	err       error
}

func (f *fakeProducer) Publish(_ context.Context, topic string, key, value []byte) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, publishedMsg{topic: topic, key: string(key), value: string(value)})
	return nil
}
func (f *fakeProducer) Ping(context.Context) error { return nil }
func (f *fakeProducer) Close() error               { return nil }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error", DevMode: true})
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func combinedEvent(stream, data string) binance.CombinedStreamEvent {
	return binance.CombinedStreamEvent{Stream: stream, Data: json.RawMessage(data)}
}

func TestDispatch_RoutesTradeAndDepth(t *testing.T) {
	prod := &fakeProducer{}
	log := testLogger(t)
	router := NewDispatchRouter(log,
		NewTradeProcessor(prod, "raw", log),
		NewDepthProcessor(prod, "book", log),
	)

	tradeData := `{"e":"trade","E":1,"s":"BTCUSDT","t":42,"p":"50000.1","q":"0.5"}`
	depthData := `{"e":"depthUpdate","E":2,"s":"ETHUSDT","U":10,"u":12}`

	if err := router.Dispatch(context.Background(), combinedEvent("btcusdt@trade", tradeData)); err != nil {
		t.Fatalf("dispatch trade: %v", err)
	}
	if err := router.Dispatch(context.Background(), combinedEvent("ethusdt@depth@100ms", depthData)); err != nil {
		t.Fatalf("dispatch depth: %v", err)
	}

	if len(prod.published) != 2 {
		t.Fatalf("expected 2 publishes, got %d", len(prod.published))
	}
	if got := prod.published[0]; got.topic != "raw" || got.key != "BTCUSDT" || got.value != tradeData {
		t.Errorf("unexpected trade publish: %+v", got)
	}
	if got := prod.published[1]; got.topic != "book" || got.key != "ETHUSDT" || got.value != depthData {
		t.Errorf("unexpected depth publish: %+v", got)
	}
}

func TestDispatch_UnknownTypeIsSkipped(t *testing.T) {
	prod := &fakeProducer{}
	log := testLogger(t)
	router := NewDispatchRouter(log, NewTradeProcessor(prod, "raw", log))

	err := router.Dispatch(context.Background(), combinedEvent("btcusdt@kline_1m", `{"e":"kline","s":"BTCUSDT"}`))
	if err != nil {
		t.Fatalf("unknown type must be skipped, got %v", err)
	}
	if len(prod.published) != 0 {
		t.Errorf("nothing should be published, got %d", len(prod.published))
	}
}

func TestDispatch_MalformedEnvelope(t *testing.T) {
	prod := &fakeProducer{}
	log := testLogger(t)
	router := NewDispatchRouter(log, NewTradeProcessor(prod, "raw", log))

	err := router.Dispatch(context.Background(), combinedEvent("btcusdt@trade", `{broken`))
	if err == nil {
		t.Fatal("expected envelope decode error")
	}
}

func TestProcess_PublishErrorPropagates(t *testing.T) {
	sentinel := errors.New("kafka down")
	prod := &fakeProducer{err: sentinel}
	log := testLogger(t)
	router := NewDispatchRouter(log, NewTradeProcessor(prod, "raw", log))

	err := router.Dispatch(context.Background(),
		combinedEvent("btcusdt@trade", `{"e":"trade","s":"BTCUSDT","t":1}`))
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected publish error to propagate, got %v", err)
	}
}

func TestProcess_MalformedPayload(t *testing.T) {
	prod := &fakeProducer{}
	log := testLogger(t)
	depth := NewDepthProcessor(prod, "book", log)

	err := depth.Process(context.Background(), combinedEvent("x", `{"e":"depthUpdate","U":"not-a-number"}`))
	if err == nil {
		t.Fatal("expected decode error for malformed depth payload")
	}
}
