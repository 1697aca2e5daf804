package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, переопределяющих значения из файла
// Например: AVAILABILITY_DATABASE_HOST, AVAILABILITY_REDIS_ADDR
const EnvPrefix = "AVAILABILITY"

// Драйверы хранилища кэша доступности
const (
	CacheDriverRedis    = "redis"
	CacheDriverPostgres = "postgres"
)

var (
	ErrReadConfig    = errors.New("config: failed to read config file")
	ErrEnvOverride   = errors.New("config: failed to apply environment overrides")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server            ServerConfig            `toml:"server"`
	Database          DatabaseConfig          `toml:"database"`
	Redis             RedisConfig             `toml:"redis"`
	Cache             CacheConfig             `toml:"cache"`
	Kafka             KafkaConfig             `toml:"kafka"`
	ProviderDirectory ProviderDirectoryConfig `toml:"provider_directory" envconfig:"PROVIDER_DIRECTORY"`
	Logs              LogsConfig              `toml:"logs"`
	Metrics           MetricsConfig           `toml:"metrics"`
	Tracing           TracingConfig           `toml:"tracing"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int      `toml:"http_port" envconfig:"HTTP_PORT"`
	ReadTimeout     int      `toml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    int      `toml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     int      `toml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout int      `toml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	CORSOrigins     []string `toml:"cors_origins" envconfig:"CORS_ORIGINS"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" envconfig:"DBNAME"`
	SSLMode         string `toml:"sslmode" envconfig:"SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" envconfig:"MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" envconfig:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" envconfig:"CONN_MAX_LIFETIME"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// RedisConfig параметры подключения к Redis
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// CacheConfig параметры кэша доступности
type CacheConfig struct {
	Driver         string `toml:"driver"`
	KeyPrefix      string `toml:"key_prefix" envconfig:"KEY_PREFIX"`
	RetentionHours int    `toml:"retention_hours" envconfig:"RETENTION_HOURS"`
}

// KafkaConfig параметры консьюмера событий записи
type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	GroupID string   `toml:"group_id" envconfig:"GROUP_ID"`
	Topic   string   `toml:"topic"`
}

// ProviderDirectoryConfig параметры клиента каталога специалистов и услуг
type ProviderDirectoryConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// LogsConfig параметры логгера
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" envconfig:"SERVICE_NAME"`
}

// TracingConfig параметры OpenTelemetry
type TracingConfig struct {
	Enabled      bool    `toml:"enabled"`
	OTLPEndpoint string  `toml:"otlp_endpoint" envconfig:"OTLP_ENDPOINT"`
	SampleRatio  float64 `toml:"sample_ratio" envconfig:"SAMPLE_RATIO"`
}

// Load читает конфигурацию из TOML файла, применяет переменные окружения,
// значения по умолчанию и валидирует результат
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvOverride, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Cache.Driver == "" {
		c.Cache.Driver = CacheDriverRedis
	}
	c.Cache.Driver = strings.ToLower(c.Cache.Driver)
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "availability:"
	}
	if c.Cache.RetentionHours == 0 {
		c.Cache.RetentionHours = 24
	}

	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "availability-service"
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "availability.write-events"
	}

	if c.ProviderDirectory.Timeout == 0 {
		c.ProviderDirectory.Timeout = 5
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "availability-service"
	}

	if c.Tracing.OTLPEndpoint == "" {
		c.Tracing.OTLPEndpoint = "localhost:4317"
	}
	if c.Tracing.SampleRatio == 0 {
		c.Tracing.SampleRatio = 1
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var problems []string

	if c.Database.Host == "" {
		problems = append(problems, "database.host is required")
	}
	if c.Database.DBName == "" {
		problems = append(problems, "database.dbname is required")
	}
	if c.ProviderDirectory.URL == "" {
		problems = append(problems, "provider_directory.url is required")
	}

	switch c.Cache.Driver {
	case CacheDriverRedis:
		if c.Redis.Addr == "" {
			problems = append(problems, "redis.addr is required for cache.driver = redis")
		}
	case CacheDriverPostgres:
	default:
		problems = append(problems, fmt.Sprintf("cache.driver must be %q or %q, got %q",
			CacheDriverRedis, CacheDriverPostgres, c.Cache.Driver))
	}

	if c.Cache.RetentionHours < 0 {
		problems = append(problems, "cache.retention_hours must be positive")
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		problems = append(problems, "kafka.brokers is required when kafka.enabled = true")
	}

	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		problems = append(problems, "tracing.sample_ratio must be within [0, 1]")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
