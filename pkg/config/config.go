package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Logger      struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // json or console
		Output string `yaml:"output"`
	} `yaml:"logger"`
	Server struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Backend struct {
		Type         string        `yaml:"type"`
		BatchSize    int           `yaml:"batch_size"`
		BatchTimeout time.Duration `yaml:"batch_timeout"`
	} `yaml:"backend"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		AuditTopic   string   `yaml:"audit_topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
		Consumer struct {
			GroupID    string        `yaml:"group_id"`
			Workers    int           `yaml:"workers"`
			BufferSize int           `yaml:"buffer_size"`
			RetryMax   int           `yaml:"retry_max"`
			BackoffMin time.Duration `yaml:"backoff_min"`
			BackoffMax time.Duration `yaml:"backoff_max"`
			DLQTopic   string        `yaml:"dlq_topic"`
			MinBytes   int           `yaml:"min_bytes"`
			MaxBytes   int           `yaml:"max_bytes"`
		} `yaml:"consumer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		PoolSize int    `yaml:"pool_size"`
	} `yaml:"redis"`
	Stream struct {
		APIKey         string        `yaml:"api_key"`
		WebSocketURL   string        `yaml:"websocket_url"`
		RestURL        string        `yaml:"rest_url"`
		Sources        []string      `yaml:"sources"`
		ReconnectDelay time.Duration `yaml:"reconnect_delay"`
		PingInterval   time.Duration `yaml:"ping_interval"`
		PollInterval   time.Duration `yaml:"poll_interval"`
		MockPerMinute  int           `yaml:"mock_per_minute"`
	} `yaml:"stream"`
	Forecast struct {
		SequenceLength int     `yaml:"sequence_length"`
		HiddenSize     int     `yaml:"hidden_size"`
		Layers         int     `yaml:"layers"`
		Epochs         int     `yaml:"epochs"`
		BatchSize      int     `yaml:"batch_size"`
		LearningRate   float64 `yaml:"learning_rate"`
		Dropout        float64 `yaml:"dropout"`
		Seed           int64   `yaml:"seed"`
		SeasonalPeriod int     `yaml:"seasonal_period"`
		MaxHorizon     int     `yaml:"max_horizon"`
		HistoryDays    int     `yaml:"history_days"`
	} `yaml:"forecast"`
	Cache struct {
		TrendsTTL     time.Duration `yaml:"trends_ttl"`
		HistoricalTTL time.Duration `yaml:"historical_ttl"`
		ModelTTL      time.Duration `yaml:"model_ttl"`
	} `yaml:"cache"`
	Queue struct {
		Name       string `yaml:"name"`
		Workers    int    `yaml:"workers"`
		MaxRetries int    `yaml:"max_retries"`
	} `yaml:"queue"`
	Admin struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"admin"`
	Privacy struct {
		Salt string `yaml:"salt"`
	} `yaml:"privacy"`
	Notify struct {
		WebhookURL string        `yaml:"webhook_url"`
		Timeout    time.Duration `yaml:"timeout"`
		MaxRetries int           `yaml:"max_retries"`
	} `yaml:"notify"`
	RateLimit struct {
		Capacity     int     `yaml:"capacity"`
		RefillPerSec float64 `yaml:"refill_per_sec"`
	} `yaml:"ratelimit"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with SENTICAST_*
// environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("SENTICAST_LOG_LEVEL"); v != "" {
		c.Logger.Level = v
	}
	if v := os.Getenv("SENTICAST_STREAM_API_KEY"); v != "" {
		c.Stream.APIKey = v
	}
	if v := os.Getenv("SENTICAST_STREAM_SOURCES"); v != "" {
		c.Stream.Sources = strings.Split(v, ",")
	}
	if v := os.Getenv("SENTICAST_BACKEND"); v != "" {
		c.Backend.Type = v
	}
	if v := os.Getenv("SENTICAST_KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("SENTICAST_KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("SENTICAST_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("SENTICAST_CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}
	if v := os.Getenv("SENTICAST_ADMIN_API_KEY"); v != "" {
		c.Admin.APIKey = v
	}
	if v := os.Getenv("SENTICAST_PRIVACY_SALT"); v != "" {
		c.Privacy.Salt = v
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Backend.Type == "" {
		return fmt.Errorf("backend.type is required")
	}
	if c.Backend.Type != "kafka" && c.Backend.Type != "clickhouse" {
		return fmt.Errorf("backend.type must be 'kafka' or 'clickhouse', got '%s'", c.Backend.Type)
	}
	if len(c.Stream.Sources) == 0 {
		return fmt.Errorf("stream.sources cannot be empty")
	}
	// An empty stream.api_key is allowed: the firehose client falls back
	// to the synthetic generator so the pipeline works without credentials.
	if c.Forecast.SequenceLength < 0 || c.Forecast.MaxHorizon < 0 {
		return fmt.Errorf("forecast values must be non-negative")
	}
	return nil
}
