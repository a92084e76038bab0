package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"

	StorageMinIO = "minio"
	StorageLocal = "local"

	EventsNone   = "none"
	EventsKafka  = "kafka"
	EventsSarama = "sarama"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Storage   StorageConfig
	Events    EventsConfig
	Results   ResultsConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

var (
	ConfigInstance *Config
	once           sync.Once
	loadErr        error
)

type ServerConfig struct {
	Environment  string
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Driver   string
	URI      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	Path     string // sqlite file
}

type RedisConfig struct {
	URI          string
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	MinIdleConns int
}

type JWTConfig struct {
	Secret         string
	ExpirationTime time.Duration
}

type StorageConfig struct {
	Driver         string
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOSecure    bool
	LocalDir       string
	PublicBaseURL  string
}

type EventsConfig struct {
	Driver  string
	Brokers []string
	Topic   string
}

type ResultsConfig struct {
	CacheTTL time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	UserPerMinute int
	IPPerMinute   int
}

// LoadConfig reads the process configuration once. An optional .env file is
// loaded before the environment is consulted.
func LoadConfig() (*Config, error) {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			slog.Info("No .env file found, using environment variables")
		}

		v := viper.New()
		setDefaults(v)
		v.AutomaticEnv()

		cfg := fromViper(v)
		if err := cfg.Validate(); err != nil {
			loadErr = err
			return
		}
		ConfigInstance = cfg
	})

	return ConfigInstance, loadErr
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVER_HOST", "")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_READ_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_IDLE_TIMEOUT", 60*time.Second)

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "pageant_voting")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_PATH", "pageant_voting.db")

	v.SetDefault("REDIS_URL", "redis://127.0.0.1:6379/0")
	v.SetDefault("REDIS_MAX_RETRIES", 3)
	v.SetDefault("REDIS_POOL_SIZE", 100)
	v.SetDefault("REDIS_MIN_IDLE_CONNS", 10)
	v.SetDefault("REDIS_DIAL_TIMEOUT", 5*time.Second)
	v.SetDefault("REDIS_READ_TIMEOUT", 3*time.Second)
	v.SetDefault("REDIS_WRITE_TIMEOUT", 3*time.Second)

	v.SetDefault("JWT_SECRET", "secret")
	v.SetDefault("JWT_EXPIRATION", 24*time.Hour)

	v.SetDefault("STORAGE_DRIVER", StorageLocal)
	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_BUCKET", "candidates-images")
	v.SetDefault("MINIO_SECURE", false)
	v.SetDefault("STORAGE_LOCAL_DIR", "public/candidates-images")
	v.SetDefault("STORAGE_PUBLIC_BASE_URL", "/candidates-images")

	v.SetDefault("EVENTS_DRIVER", EventsNone)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_TOPIC", "votes")

	v.SetDefault("RESULTS_CACHE_TTL", 10*time.Second)

	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	v.SetDefault("RATE_LIMIT_USER_PER_MINUTE", 100)
	v.SetDefault("RATE_LIMIT_IP_PER_MINUTE", 50)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Environment:  v.GetString("APP_ENV"),
			Host:         v.GetString("SERVER_HOST"),
			Port:         v.GetString("SERVER_PORT"),
			ReadTimeout:  v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:  v.GetDuration("SERVER_IDLE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			URI:      v.GetString("DATABASE_URL"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			Path:     v.GetString("DB_PATH"),
		},
		Redis: RedisConfig{
			URI:          v.GetString("REDIS_URL"),
			MaxRetries:   v.GetInt("REDIS_MAX_RETRIES"),
			DialTimeout:  v.GetDuration("REDIS_DIAL_TIMEOUT"),
			ReadTimeout:  v.GetDuration("REDIS_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("REDIS_WRITE_TIMEOUT"),
			PoolSize:     v.GetInt("REDIS_POOL_SIZE"),
			MinIdleConns: v.GetInt("REDIS_MIN_IDLE_CONNS"),
		},
		JWT: JWTConfig{
			Secret:         v.GetString("JWT_SECRET"),
			ExpirationTime: v.GetDuration("JWT_EXPIRATION"),
		},
		Storage: StorageConfig{
			Driver:         strings.ToLower(v.GetString("STORAGE_DRIVER")),
			MinIOEndpoint:  v.GetString("MINIO_ENDPOINT"),
			MinIOAccessKey: v.GetString("MINIO_ACCESS_KEY"),
			MinIOSecretKey: v.GetString("MINIO_SECRET_KEY"),
			MinIOBucket:    v.GetString("MINIO_BUCKET"),
			MinIOSecure:    v.GetBool("MINIO_SECURE"),
			LocalDir:       v.GetString("STORAGE_LOCAL_DIR"),
			PublicBaseURL:  v.GetString("STORAGE_PUBLIC_BASE_URL"),
		},
		Events: EventsConfig{
			Driver:  strings.ToLower(v.GetString("EVENTS_DRIVER")),
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		Results: ResultsConfig{
			CacheTTL: v.GetDuration("RESULTS_CACHE_TTL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
		},
		RateLimit: RateLimitConfig{
			UserPerMinute: v.GetInt("RATE_LIMIT_USER_PER_MINUTE"),
			IPPerMinute:   v.GetInt("RATE_LIMIT_IP_PER_MINUTE"),
		},
	}
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	switch c.Storage.Driver {
	case StorageMinIO, StorageLocal:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}
	switch c.Events.Driver {
	case EventsNone, EventsKafka, EventsSarama:
	default:
		return fmt.Errorf("unsupported EVENTS_DRIVER %q", c.Events.Driver)
	}
	if c.Events.Driver != EventsNone && len(c.Events.Brokers) == 0 {
		return errors.New("KAFKA_BROKERS is required when events are enabled")
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.JWT.ExpirationTime <= 0 {
		return errors.New("JWT_EXPIRATION must be positive")
	}
	return nil
}

// DSN builds the driver specific connection string. DATABASE_URL wins when set.
func (d DatabaseConfig) DSN() string {
	if d.URI != "" {
		return d.URI
	}
	switch d.Driver {
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.User, d.Password, d.Host, d.Port, d.DBName)
	case DriverSQLite:
		return d.Path
	default:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			d.Host, d.User, d.Password, d.DBName, d.Port, d.SSLMode)
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
