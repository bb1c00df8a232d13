// pkg/binance/streams.go
package binance

import (
	"fmt"
	"strings"
)

// URL path segments of the Binance WebSocket API.
const (
	WSEndpoint     = "ws"     // single stream: <base>/ws/<stream>
	StreamEndpoint = "stream" // combined: <base>/stream?streams=a/b/c
)

// Event type tags carried in the "e" field of stream payloads.
const (
	EventTypeTrade    = "trade"
	EventTypeAggTrade = "aggTrade"
	EventTypeKline    = "kline"
	EventTypeDepth    = "depthUpdate"
	EventTypeTicker   = "24hrTicker"
)

// AllTickerStream returns the full-market ticker stream name.
func AllTickerStream() string { return "!ticker@arr" }

// TickerStream returns the 24hr ticker stream for a symbol.
func TickerStream(symbol string) string { return symbol + "@ticker" }

// MiniTickerStream returns the mini-ticker stream for a symbol.
func MiniTickerStream(symbol string) string { return symbol + "@miniTicker" }

// AllMiniTickerStream returns the full-market mini-ticker stream name.
func AllMiniTickerStream() string { return "!miniTicker@arr" }

// AggTradeStream returns the aggregated trade stream for a symbol.
func AggTradeStream(symbol string) string { return symbol + "@aggTrade" }

// TradeStream returns the raw trade stream for a symbol.
func TradeStream(symbol string) string { return symbol + "@trade" }

// KlineStream returns the kline stream for a symbol at the given interval
// (e.g. "1m", "5m", "1h").
func KlineStream(symbol, interval string) string {
	return fmt.Sprintf("%s@kline_%s", symbol, interval)
}

// BookTickerStream returns the best bid/ask stream for a symbol.
func BookTickerStream(symbol string) string { return symbol + "@bookTicker" }

// AllBookTickerStream returns the full-market book ticker stream name.
func AllBookTickerStream() string { return "!bookTicker" }

// PartialBookDepthStream returns the partial order-book stream.
// levels — 5, 10 или 20; updateSpeedMs — 100 или 1000.
// Значения не валидируются: endpoint сам отклонит неизвестный стрим.
func PartialBookDepthStream(symbol string, levels, updateSpeedMs int) string {
	return fmt.Sprintf("%s@depth%d@%dms", symbol, levels, updateSpeedMs)
}

// DiffBookDepthStream returns the incremental order-book stream.
// updateSpeedMs — 100 или 1000.
func DiffBookDepthStream(symbol string, updateSpeedMs int) string {
	return fmt.Sprintf("%s@depth@%dms", symbol, updateSpeedMs)
}

// CombinedStream joins stream names into one multi-stream path.
// Порядок сохраняется как есть; разделитель — "/".
func CombinedStream(streams []string) string {
	return strings.Join(streams, "/")
}
