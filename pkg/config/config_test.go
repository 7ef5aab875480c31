package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testYAML = `
environment: test
logger:
  level: info
backend:
  type: clickhouse
stream:
  sources: [twitter, reddit]
redis:
  addr: localhost:6379
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeConfig(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Backend.Type != "clickhouse" {
		t.Fatalf("backend %q", c.Backend.Type)
	}
	if len(c.Stream.Sources) != 2 {
		t.Fatalf("sources %v", c.Stream.Sources)
	}
}

func TestLoadWithEnvPrefixedOverrides(t *testing.T) {
	t.Setenv("SENTICAST_LOG_LEVEL", "debug")
	t.Setenv("SENTICAST_REDIS_ADDR", "redis.internal:6380")
	t.Setenv("SENTICAST_STREAM_SOURCES", "news")
	t.Setenv("SENTICAST_BACKEND", "kafka")

	c, err := LoadWithEnv(writeConfig(t))
	if err != nil {
		t.Fatalf("load with env: %v", err)
	}
	if c.Logger.Level != "debug" {
		t.Errorf("log level %q", c.Logger.Level)
	}
	if c.Redis.Addr != "redis.internal:6380" {
		t.Errorf("redis addr %q", c.Redis.Addr)
	}
	if len(c.Stream.Sources) != 1 || c.Stream.Sources[0] != "news" {
		t.Errorf("sources %v", c.Stream.Sources)
	}
	if c.Backend.Type != "kafka" {
		t.Errorf("backend %q", c.Backend.Type)
	}
}

func TestLoadWithEnvUnprefixedIgnored(t *testing.T) {
	t.Setenv("LOG_LEVEL", "trace")
	t.Setenv("REDIS_ADDR", "somewhere:1")

	c, err := LoadWithEnv(writeConfig(t))
	if err != nil {
		t.Fatalf("load with env: %v", err)
	}
	if c.Logger.Level != "info" {
		t.Errorf("unprefixed LOG_LEVEL applied: %q", c.Logger.Level)
	}
	if c.Redis.Addr != "localhost:6379" {
		t.Errorf("unprefixed REDIS_ADDR applied: %q", c.Redis.Addr)
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	var c Config
	c.Environment = "test"
	c.Backend.Type = "postgres"
	c.Stream.Sources = []string{"twitter"}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected backend validation error")
	}
}
