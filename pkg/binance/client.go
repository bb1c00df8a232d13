// pkg/binance/client.go
package binance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/YaganovValera/market-stream/pkg/logger"
)

// Handler обрабатывает одно декодированное событие. Ненулевая ошибка
// останавливает event loop и возвращается вызывающему без обёртки.
type Handler[E any] func(event E) error

// Client — синхронный WebSocket-клиент Binance. Один коннект, один цикл
// чтения; реконнекты и ретраи — ответственность вызывающего кода.
// Не потокобезопасен: Connect/EventLoop/Disconnect вызываются из одной
// горутины.
type Client[E any] struct {
	cfg     Config
	handler Handler[E]
	tr      Transport
	log     *logger.Logger
}

// New создаёт клиента с конфигом по умолчанию (публичный эндпоинт, без прокси).
func New[E any](handler Handler[E], log *logger.Logger) *Client[E] {
	return NewWithConfig(Config{}, handler, log)
}

// NewWithConfig создаёт клиента с явным конфигом. Поля, оставленные
// пустыми, получают значения по умолчанию.
func NewWithConfig[E any](cfg Config, handler Handler[E], log *logger.Logger) *Client[E] {
	cfg.ApplyDefaults()
	return &Client[E]{
		cfg:     cfg,
		handler: handler,
		log:     log.Named("binance-ws"),
	}
}

// Connect открывает соединение на одиночный стрим: <base>/ws/<endpoint>.
func (c *Client[E]) Connect(ctx context.Context, endpoint string) error {
	rawURL := fmt.Sprintf("%s/%s/%s", c.cfg.BaseURL, WSEndpoint, endpoint)
	return c.connect(ctx, rawURL)
}

// ConnectMultiple открывает соединение на multi-stream эндпоинт:
// <base>/stream?streams=a/b/c. Разделители "/" в query не экранируются —
// этого требует серверная сторона.
func (c *Client[E]) ConnectMultiple(ctx context.Context, streams []string) error {
	u, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("binance: parse base url %q: %w", c.cfg.BaseURL, err)
	}
	u.Path = path.Join(u.Path, StreamEndpoint)
	u.RawQuery = "streams=" + CombinedStream(streams)
	return c.connect(ctx, u.String())
}

func (c *Client[E]) connect(ctx context.Context, rawURL string) error {
	tr, err := dialTransport(ctx, rawURL, c.cfg.ProxyAddr, c.cfg.HandshakeTimeout)
	if err != nil {
		return err
	}
	c.tr = tr
	c.log.Info("connected",
		zap.String("url", rawURL),
		zap.String("variant", tr.Variant().String()),
	)
	return nil
}

// EventLoop читает и диспетчеризует события до отмены ctx или ошибки.
// Отмена проверяется раз на итерацию, перед блокирующим чтением: уже
// начатое чтение не прерывается. На отмену возвращается nil; любая
// ошибка чтения, декодирования или обработчика завершает цикл.
func (c *Client[E]) EventLoop(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			c.log.Debug("event loop cancelled")
			return nil
		}
		if c.tr == nil {
			continue
		}

		msgType, data, err := c.tr.ReadMessage()
		if err != nil {
			var ce *websocket.CloseError
			if errors.As(err, &ce) {
				return &CloseError{Code: ce.Code, Text: ce.Text}
			}
			return fmt.Errorf("binance: read: %w", err)
		}

		if err := c.processMessage(msgType, data); err != nil {
			return err
		}
	}
}

// processMessage обрабатывает один фрейм. Текстовые фреймы декодируются
// и передаются обработчику; остальные типы игнорируются (gorilla отвечает
// на ping/pong на уровне протокола).
func (c *Client[E]) processMessage(msgType int, data []byte) error {
	if msgType != websocket.TextMessage {
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var event E
	if err := json.Unmarshal(data, &event); err != nil {
		return &DecodeError{Err: err}
	}
	return c.handler(event)
}

// Disconnect закрывает соединение gracefully. Без открытого соединения
// возвращает ErrNotConnected. После вызова клиент снова "не подключён",
// даже если закрытие завершилось ошибкой.
func (c *Client[E]) Disconnect() error {
	if c.tr == nil {
		return ErrNotConnected
	}
	err := c.tr.Close()
	c.tr = nil
	if err != nil {
		return fmt.Errorf("binance: close: %w", err)
	}
	c.log.Info("disconnected")
	return nil
}

// Transport возвращает текущее соединение (nil, если не подключены).
func (c *Client[E]) Transport() Transport { return c.tr }
