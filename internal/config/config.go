package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config — настройки сервиса. Порядок: значения по умолчанию, YAML-файл, переменные окружения.
type Config struct {
	Env   string      `yaml:"env"`
	DB    DBConfig    `yaml:"db"`
	HTTP  HTTPConfig  `yaml:"http"`
	GRPC  GRPCConfig  `yaml:"grpc"`
	JWT   JWTConfig   `yaml:"jwt"`
	Cache CacheConfig `yaml:"cache"`
	NATS  NATSConfig  `yaml:"nats"`
	SMTP  SMTPConfig  `yaml:"smtp"`
}

type HTTPConfig struct {
	Addr           string        `yaml:"addr"`
	Timeout        time.Duration `yaml:"timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

type GRPCConfig struct {
	Addr string `yaml:"addr"`
}

type JWTConfig struct {
	Secret   string        `yaml:"secret"`
	Duration time.Duration `yaml:"duration"`
}

type CacheConfig struct {
	// memory | redis
	Backend       string        `yaml:"backend"`
	TTL           time.Duration `yaml:"ttl"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
}

type NATSConfig struct {
	// Пустой URL — рассылка инвалидаций выключена.
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

type SMTPConfig struct {
	// Пустой Host — письма только логируются.
	Host     string        `yaml:"host"`
	Port     int           `yaml:"port"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	From     string        `yaml:"from"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Load читает .env (если есть), затем YAML по path (если задан) и переменные окружения.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := defaults()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.DB.Validate(); err != nil {
		return nil, err
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("invalid config: jwt secret must not be empty")
	}
	if cfg.Cache.Backend != "memory" && cfg.Cache.Backend != "redis" {
		return nil, fmt.Errorf("invalid config: unknown cache backend %q", cfg.Cache.Backend)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Env: "development",
		DB: DBConfig{
			Driver:          DriverPostgres,
			Host:            "postgres",
			Port:            5432,
			User:            "crew",
			Password:        "crew",
			Name:            "crew_db",
			SSLMode:         "disable",
			TimeZone:        "Europe/Madrid",
			SQLitePath:      "crew.db",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifeTime: 30,
		},
		HTTP: HTTPConfig{
			Addr:           ":8080",
			Timeout:        15 * time.Second,
			AllowedOrigins: []string{"*"},
		},
		GRPC: GRPCConfig{Addr: ":50051"},
		JWT: JWTConfig{
			Duration: 12 * time.Hour,
		},
		Cache: CacheConfig{
			Backend:   "memory",
			TTL:       5 * time.Minute,
			RedisAddr: "localhost:6379",
		},
		NATS: NATSConfig{
			Subject: "crew.cache.invalidate",
		},
		SMTP: SMTPConfig{
			Port:    587,
			Timeout: 10 * time.Second,
		},
	}
}

func applyEnv(cfg *Config) {
	cfg.Env = getEnv("CREW_ENV", cfg.Env)

	cfg.DB.Driver = getEnv("DB_DRIVER", cfg.DB.Driver)
	cfg.DB.Host = getEnv("DB_HOST", cfg.DB.Host)
	cfg.DB.Port = getEnvInt("DB_PORT", cfg.DB.Port)
	cfg.DB.User = getEnv("DB_USER", cfg.DB.User)
	cfg.DB.Password = getEnv("DB_PASSWORD", cfg.DB.Password)
	cfg.DB.Name = getEnv("DB_NAME", cfg.DB.Name)
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", cfg.DB.SSLMode)
	cfg.DB.TimeZone = getEnv("DB_TIMEZONE", cfg.DB.TimeZone)
	cfg.DB.SQLitePath = getEnv("DB_SQLITE_PATH", cfg.DB.SQLitePath)
	cfg.DB.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", cfg.DB.MaxOpenConns)
	cfg.DB.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", cfg.DB.MaxIdleConns)
	cfg.DB.ConnMaxLifeTime = getEnvInt("DB_CONN_MAX_LIFETIME_MIN", cfg.DB.ConnMaxLifeTime)

	cfg.HTTP.Addr = getEnv("CREW_HTTP_ADDR", cfg.HTTP.Addr)
	cfg.HTTP.Timeout = getEnvDuration("CREW_HTTP_TIMEOUT", cfg.HTTP.Timeout)
	cfg.GRPC.Addr = getEnv("CREW_GRPC_ADDR", cfg.GRPC.Addr)

	cfg.JWT.Secret = getEnv("CREW_JWT_SECRET", cfg.JWT.Secret)
	cfg.JWT.Duration = getEnvDuration("CREW_JWT_DURATION", cfg.JWT.Duration)

	cfg.Cache.Backend = getEnv("CREW_CACHE_BACKEND", cfg.Cache.Backend)
	cfg.Cache.TTL = getEnvDuration("CREW_CACHE_TTL", cfg.Cache.TTL)
	cfg.Cache.RedisAddr = getEnv("REDIS_ADDR", cfg.Cache.RedisAddr)
	cfg.Cache.RedisPassword = getEnv("REDIS_PASSWORD", cfg.Cache.RedisPassword)
	cfg.Cache.RedisDB = getEnvInt("REDIS_DB", cfg.Cache.RedisDB)

	cfg.NATS.URL = getEnv("NATS_URL", cfg.NATS.URL)
	cfg.NATS.Subject = getEnv("NATS_SUBJECT", cfg.NATS.Subject)

	cfg.SMTP.Host = getEnv("SMTP_HOST", cfg.SMTP.Host)
	cfg.SMTP.Port = getEnvInt("SMTP_PORT", cfg.SMTP.Port)
	cfg.SMTP.Username = getEnv("SMTP_USERNAME", cfg.SMTP.Username)
	cfg.SMTP.Password = getEnv("SMTP_PASSWORD", cfg.SMTP.Password)
	cfg.SMTP.From = getEnv("SMTP_FROM", cfg.SMTP.From)
	cfg.SMTP.Timeout = getEnvDuration("SMTP_TIMEOUT", cfg.SMTP.Timeout)
}

// Development — человекочитаемые логи и подробный вывод.
func (c *Config) Development() bool {
	return getEnvBool("CREW_DEBUG", c.Env == "development")
}
