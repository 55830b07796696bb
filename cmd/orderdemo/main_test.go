package main

import (
	"testing"
	"time"
)

func TestReadConfig_Defaults(t *testing.T) {
	t.Setenv("ORDERDEMO_HTTP_ADDR", "")
	t.Setenv("ORDERDEMO_ADMIN_ADDR", "")

	cfg := readConfig()

	if cfg.HTTPAddr != ":3000" {
		t.Errorf("expected HTTPAddr :3000, got %s", cfg.HTTPAddr)
	}
	if cfg.AdminAddr != ":9090" {
		t.Errorf("expected AdminAddr :9090, got %s", cfg.AdminAddr)
	}
}

func TestReadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ORDERDEMO_HTTP_ADDR", ":8080")
	t.Setenv("ORDERDEMO_ADMIN_ADDR", ":8081")
	t.Setenv("ORDERDEMO_STATUS_INTERVAL", "250ms")
	t.Setenv("KAFKA_BROKERS", "localhost:9092,localhost:9093")

	cfg := readConfig()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("expected HTTPAddr :8080, got %s", cfg.HTTPAddr)
	}
	if cfg.AdminAddr != ":8081" {
		t.Errorf("expected AdminAddr :8081, got %s", cfg.AdminAddr)
	}
	if cfg.StatusInterval != 250*time.Millisecond {
		t.Errorf("expected StatusInterval 250ms, got %s", cfg.StatusInterval)
	}
	if len(cfg.KafkaBrokers) != 2 {
		t.Errorf("expected 2 kafka brokers, got %v", cfg.KafkaBrokers)
	}
}

func TestReadConfig_BadInterval(t *testing.T) {
	t.Setenv("ORDERDEMO_STATUS_INTERVAL", "not-a-duration")

	cfg := readConfig()
	if cfg.StatusInterval <= 0 {
		t.Errorf("expected fallback to default interval, got %s", cfg.StatusInterval)
	}
}
