// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServiceName != "market-stream" {
		t.Errorf("unexpected service_name: %q", cfg.ServiceName)
	}
	if cfg.Binance.BaseURL != "wss://stream.binance.com:9443" {
		t.Errorf("unexpected base_url: %q", cfg.Binance.BaseURL)
	}
	if cfg.Binance.HandshakeTimeout != 45*time.Second {
		t.Errorf("unexpected handshake_timeout: %v", cfg.Binance.HandshakeTimeout)
	}
	if len(cfg.Binance.Streams) == 0 {
		t.Error("default streams must not be empty")
	}
	if cfg.Kafka.RawTopic != "marketdata.raw" {
		t.Errorf("unexpected raw_topic: %q", cfg.Kafka.RawTopic)
	}
	if cfg.Telemetry.ServiceName != cfg.ServiceName {
		t.Error("telemetry service name must mirror service_name")
	}
}

func TestLoad_WSSProxyEnv(t *testing.T) {
	t.Setenv("WSS_PROXY", "10.0.0.5:1080")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Binance.ProxyAddr != "10.0.0.5:1080" {
		t.Errorf("WSS_PROXY not applied: %q", cfg.Binance.ProxyAddr)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("MARKETSTREAM_KAFKA_RAW_TOPIC", "override.raw")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Kafka.RawTopic != "override.raw" {
		t.Errorf("env override not applied: %q", cfg.Kafka.RawTopic)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte(`
service_name: custom-svc
binance:
  base_url: "wss://testnet.binance.vision"
  streams:
    - ethusdt@trade
kafka:
  brokers:
    - kafka-1:9092
    - kafka-2:9092
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServiceName != "custom-svc" {
		t.Errorf("unexpected service_name: %q", cfg.ServiceName)
	}
	if cfg.Binance.BaseURL != "wss://testnet.binance.vision" {
		t.Errorf("unexpected base_url: %q", cfg.Binance.BaseURL)
	}
	if len(cfg.Kafka.Brokers) != 2 {
		t.Errorf("unexpected brokers: %v", cfg.Kafka.Brokers)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		return cfg
	}

	cfg := base()
	cfg.Binance.Streams = nil
	if err := cfg.Validate(); err == nil {
		t.Error("empty streams must be rejected")
	}

	cfg = base()
	cfg.Kafka.Brokers = nil
	if err := cfg.Validate(); err == nil {
		t.Error("empty brokers must be rejected")
	}

	cfg = base()
	cfg.Kafka.OrderBookTopic = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty orderbook_topic must be rejected")
	}
}
