// pkg/binance/streams_test.go
package binance

import "testing"

func TestStreamNames(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"all ticker", AllTickerStream(), "!ticker@arr"},
		{"ticker", TickerStream("btcusdt"), "btcusdt@ticker"},
		{"mini ticker", MiniTickerStream("btcusdt"), "btcusdt@miniTicker"},
		{"all mini ticker", AllMiniTickerStream(), "!miniTicker@arr"},
		{"agg trade", AggTradeStream("ethusdt"), "ethusdt@aggTrade"},
		{"trade", TradeStream("ethusdt"), "ethusdt@trade"},
		{"kline", KlineStream("btcusdt", "1m"), "btcusdt@kline_1m"},
		{"book ticker", BookTickerStream("bnbusdt"), "bnbusdt@bookTicker"},
		{"all book ticker", AllBookTickerStream(), "!bookTicker"},
		{"partial depth", PartialBookDepthStream("btcusdt", 5, 100), "btcusdt@depth5@100ms"},
		{"partial depth 1000ms", PartialBookDepthStream("btcusdt", 20, 1000), "btcusdt@depth20@1000ms"},
		{"diff depth", DiffBookDepthStream("btcusdt", 100), "btcusdt@depth@100ms"},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, tc.got, tc.want)
		}
	}
}

func TestCombinedStream(t *testing.T) {
	tests := []struct {
		name    string
		streams []string
		want    string
	}{
		{"order preserved", []string{"btcusdt@trade", "ethusdt@depth@100ms", "!ticker@arr"}, "btcusdt@trade/ethusdt@depth@100ms/!ticker@arr"},
		{"single", []string{"btcusdt@trade"}, "btcusdt@trade"},
		{"empty", nil, ""},
	}
	for _, tc := range tests {
		if got := CombinedStream(tc.streams); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}
