// pkg/binance/transport.go
package binance

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/net/proxy"
)

// Variant identifies how the WebSocket connection was established.
type Variant int

const (
	// VariantDirect — прямое соединение (TLS при wss-схеме).
	VariantDirect Variant = iota + 1
	// VariantProxied — соединение через SOCKS5-туннель.
	VariantProxied
)

func (v Variant) String() string {
	switch v {
	case VariantDirect:
		return "direct"
	case VariantProxied:
		return "proxied"
	default:
		return "unknown"
	}
}

// Transport is an established WebSocket session, direct or SOCKS5-proxied.
// The set of implementations is closed: exactly directTransport and
// proxiedTransport exist, both exposing the same capability set.
type Transport interface {
	// Variant reports which connection path was taken.
	Variant() Variant
	// Response returns the handshake response metadata from the server.
	Response() *http.Response
	// ReadMessage blocks until the next frame arrives. Close frames are
	// returned as *websocket.CloseError.
	ReadMessage() (messageType int, data []byte, err error)
	// Close requests a graceful shutdown of the underlying socket and
	// blocks until it is done or fails. Failures are surfaced.
	Close() error

	sealedTransport()
}

const closeGraceTimeout = 5 * time.Second

// closeWS шлёт close-фрейм и затем закрывает сокет. Ошибка записи
// close-фрейма не маскируется ошибкой Close.
func closeWS(ws *websocket.Conn) error {
	deadline := time.Now().Add(closeGraceTimeout)
	err := ws.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		deadline,
	)
	if cerr := ws.Close(); err == nil {
		err = cerr
	}
	return err
}

type directTransport struct {
	ws   *websocket.Conn
	resp *http.Response
}

func (t *directTransport) Variant() Variant                  { return VariantDirect }
func (t *directTransport) Response() *http.Response          { return t.resp }
func (t *directTransport) ReadMessage() (int, []byte, error) { return t.ws.ReadMessage() }
func (t *directTransport) Close() error                      { return closeWS(t.ws) }
func (t *directTransport) sealedTransport()                  {}

type proxiedTransport struct {
	ws   *websocket.Conn
	resp *http.Response
}

func (t *proxiedTransport) Variant() Variant                  { return VariantProxied }
func (t *proxiedTransport) Response() *http.Response          { return t.resp }
func (t *proxiedTransport) ReadMessage() (int, []byte, error) { return t.ws.ReadMessage() }
func (t *proxiedTransport) Close() error                      { return closeWS(t.ws) }
func (t *proxiedTransport) sealedTransport()                  {}

// newSocksDialer строит SOCKS5-диалер до proxyAddr. Вынесено в переменную,
// чтобы тесты могли подменить туннель и зафиксировать выбранный путь.
var newSocksDialer = func(proxyAddr string) (proxy.ContextDialer, error) {
	d, err := proxy.SOCKS5("tcp", proxyAddr, nil, proxy.Direct)
	if err != nil {
		return nil, err
	}
	cd, ok := d.(proxy.ContextDialer)
	if !ok {
		return nil, fmt.Errorf("socks5 dialer does not support context")
	}
	return cd, nil
}

// dialTransport выполняет WebSocket-handshake по rawURL, при непустом
// proxyAddr — поверх SOCKS5-туннеля. Ретраев нет: любая ошибка уходит
// вызывающему как ProxyError или HandshakeError.
func dialTransport(ctx context.Context, rawURL, proxyAddr string, handshakeTimeout time.Duration) (Transport, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("binance: parse url %q: %w", rawURL, err)
	}

	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}

	if proxyAddr == "" {
		ws, resp, err := dialer.DialContext(ctx, u.String(), nil)
		if err != nil {
			return nil, &HandshakeError{URL: u.String(), Err: err}
		}
		return &directTransport{ws: ws, resp: resp}, nil
	}

	sd, err := newSocksDialer(proxyAddr)
	if err != nil {
		return nil, &ProxyError{Addr: proxyAddr, Err: err}
	}
	// Туннель устанавливается до handshake; ошибка туннеля помечается,
	// чтобы не перепутать её с ошибкой самого handshake.
	dialer.NetDialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := sd.DialContext(ctx, network, addr)
		if err != nil {
			return nil, &ProxyError{Addr: proxyAddr, Err: err}
		}
		return conn, nil
	}

	ws, resp, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		var perr *ProxyError
		if errors.As(err, &perr) {
			return nil, perr
		}
		return nil, &HandshakeError{URL: u.String(), Err: err}
	}
	return &proxiedTransport{ws: ws, resp: resp}, nil
}
