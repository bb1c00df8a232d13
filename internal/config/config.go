// internal/config/config.go
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/YaganovValera/market-stream/pkg/backoff"
	"github.com/YaganovValera/market-stream/pkg/binance"
	"github.com/YaganovValera/market-stream/pkg/httpserver"
	"github.com/YaganovValera/market-stream/pkg/kafka"
	"github.com/YaganovValera/market-stream/pkg/telemetry"
)

// Config — полный конфиг сервиса market-stream.
type Config struct {
	ServiceName    string `mapstructure:"service_name"`
	ServiceVersion string `mapstructure:"service_version"`

	Binance BinanceConfig     `mapstructure:"binance"`
	Kafka   KafkaConfig       `mapstructure:"kafka"`
	HTTP    httpserver.Config `mapstructure:"http"`

	Telemetry telemetry.Config `mapstructure:"telemetry"`
	Logging   LoggingConfig    `mapstructure:"logging"`
}

// BinanceConfig — подключение к WS и подписки.
type BinanceConfig struct {
	binance.Config `mapstructure:",squash"`

	// Streams — список подписок для multi-stream эндпоинта.
	Streams []string `mapstructure:"streams"`

	// Backoff управляет реконнектами; сам WS-клиент ретраев не делает.
	Backoff backoff.Config `mapstructure:"backoff"`
}

// KafkaConfig — продьюсер и топики назначения.
type KafkaConfig struct {
	kafka.Config `mapstructure:",squash"`

	RawTopic       string `mapstructure:"raw_topic"`
	OrderBookTopic string `mapstructure:"orderbook_topic"`
}

type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	DevMode bool   `mapstructure:"dev_mode"`
}

// Load читает конфигурацию: defaults → yaml-файл (опционально) → ENV.
// ENV-переменные имеют префикс MARKETSTREAM, вложенность через "_":
// MARKETSTREAM_KAFKA_RAW_TOPIC и т.д. Отдельно поддерживается WSS_PROXY
// как адрес SOCKS5-прокси.
func Load(path string) (*Config, error) {
	v := viper.New()

	applyViperDefaults(v)

	v.SetEnvPrefix("MARKETSTREAM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Исторический внешний контракт: прокси задаётся через WSS_PROXY.
	if err := v.BindEnv("binance.proxy_addr", "MARKETSTREAM_BINANCE_PROXY_ADDR", "WSS_PROXY"); err != nil {
		return nil, fmt.Errorf("config: bind env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
	}

	var cfg Config
	if err := decode(v.AllSettings(), &cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	cfg.Binance.ApplyDefaults()
	cfg.Telemetry.ServiceName = cfg.ServiceName
	cfg.Telemetry.ServiceVersion = cfg.ServiceVersion

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyViperDefaults(v *viper.Viper) {
	v.SetDefault("service_name", "market-stream")
	v.SetDefault("service_version", "v1.0.0")

	v.SetDefault("binance.base_url", "wss://stream.binance.com:9443")
	v.SetDefault("binance.handshake_timeout", "45s")
	v.SetDefault("binance.streams", []string{"btcusdt@trade", "btcusdt@depth@100ms"})
	v.SetDefault("binance.backoff.initial_interval", "1s")
	v.SetDefault("binance.backoff.max_interval", "30s")

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.raw_topic", "marketdata.raw")
	v.SetDefault("kafka.orderbook_topic", "marketdata.orderbook")
	v.SetDefault("kafka.acks", "all")
	v.SetDefault("kafka.compression", "none")
	v.SetDefault("kafka.timeout", "5s")

	v.SetDefault("telemetry.otel_endpoint", "otel-collector:4317")
	v.SetDefault("telemetry.insecure", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.dev_mode", false)

	v.SetDefault("http.addr", ":8080")
}

// Validate проверяет конфиг целиком; ошибки собираются по одной.
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("config: service_name is required")
	}
	if c.ServiceVersion == "" {
		return fmt.Errorf("config: service_version is required")
	}
	if err := c.Binance.Validate(); err != nil {
		return err
	}
	if len(c.Binance.Streams) == 0 {
		return fmt.Errorf("config: binance.streams must not be empty")
	}
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("config: kafka.brokers must not be empty")
	}
	if c.Kafka.RawTopic == "" {
		return fmt.Errorf("config: kafka.raw_topic is required")
	}
	if c.Kafka.OrderBookTopic == "" {
		return fmt.Errorf("config: kafka.orderbook_topic is required")
	}
	return nil
}
