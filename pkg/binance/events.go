// pkg/binance/events.go
package binance

import "encoding/json"

// CombinedStreamEvent — конверт multi-stream эндпоинта: имя стрима плюс
// сырой payload. Data декодируется дальше по полю "e" внутри.
type CombinedStreamEvent struct {
	Stream string          `json:"stream"`
	Data   json.RawMessage `json:"data"`
}
