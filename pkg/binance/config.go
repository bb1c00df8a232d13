// pkg/binance/config.go
package binance

import (
	"fmt"
	"strings"
	"time"
)

// Config описывает подключение к Binance WebSocket API.
type Config struct {
	// BaseURL — корень WS-эндпоинта, без завершающего "/".
	BaseURL string `mapstructure:"base_url"`
	// ProxyAddr — адрес SOCKS5-прокси "host:port". Пусто — прямое соединение.
	ProxyAddr string `mapstructure:"proxy_addr"`
	// HandshakeTimeout ограничивает время установления соединения.
	HandshakeTimeout time.Duration `mapstructure:"handshake_timeout"`
}

// ApplyDefaults заполняет незаданные поля значениями по умолчанию.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "wss://stream.binance.com:9443"
	}
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = 45 * time.Second
	}
}

// Validate проверяет согласованность конфигурации.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("binance: base_url is required")
	}
	if strings.HasSuffix(c.BaseURL, "/") {
		return fmt.Errorf("binance: base_url must not end with '/'")
	}
	return nil
}
