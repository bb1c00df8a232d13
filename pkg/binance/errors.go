// pkg/binance/errors.go
package binance

import (
	"errors"
	"fmt"
)

// ErrNotConnected возвращается из Disconnect, когда соединение не открыто.
var ErrNotConnected = errors.New("binance: not connected")

// ProxyError reports a failed SOCKS5 tunnel to the proxy.
type ProxyError struct {
	Addr string // proxy address "host:port"
	Err  error
}

func (e *ProxyError) Error() string {
	return fmt.Sprintf("binance: proxy connect via %s: %v", e.Addr, e.Err)
}
func (e *ProxyError) Unwrap() error { return e.Err }

// HandshakeError reports a failed WebSocket handshake (direct or tunneled).
type HandshakeError struct {
	URL string
	Err error
}

func (e *HandshakeError) Error() string {
	return fmt.Sprintf("binance: handshake %s: %v", e.URL, e.Err)
}
func (e *HandshakeError) Unwrap() error { return e.Err }

// DecodeError reports a text frame that could not be decoded into the
// event type. Останавливает event loop целиком: частичная толерантность
// к битым сообщениям не предусмотрена.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("binance: decode event: %v", e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// CloseError reports a close frame received from the server; carries the
// remote close code and reason when present.
type CloseError struct {
	Code int
	Text string
}

func (e *CloseError) Error() string {
	return fmt.Sprintf("binance: disconnected: code=%d text=%q", e.Code, e.Text)
}
