package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFromEnv(t *testing.T) *Config {
	t.Helper()
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return fromViper(v)
}

func TestDefaults(t *testing.T) {
	cfg := loadFromEnv(t)

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, StorageLocal, cfg.Storage.Driver)
	assert.Equal(t, EventsNone, cfg.Events.Driver)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpirationTime)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Events.Brokers)
	assert.Len(t, cfg.CORS.AllowedOrigins, 3)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("EVENTS_DRIVER", "sarama")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("RESULTS_CACHE_TTL", "1m")

	cfg := loadFromEnv(t)

	require.NoError(t, cfg.Validate())
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.Brokers)
	assert.Equal(t, time.Minute, cfg.Results.CacheTTL)
	assert.Contains(t, cfg.Database.DSN(), "@tcp(db.internal:5432)/pageant_voting")
}

func TestValidateRejectsUnknownDrivers(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"database", func(c *Config) { c.Database.Driver = "oracle" }},
		{"storage", func(c *Config) { c.Storage.Driver = "s3" }},
		{"events", func(c *Config) { c.Events.Driver = "nats" }},
		{"empty secret", func(c *Config) { c.JWT.Secret = "" }},
		{"no brokers", func(c *Config) {
			c.Events.Driver = EventsKafka
			c.Events.Brokers = nil
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadFromEnv(t)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Driver: DriverSQLite, Path: "/tmp/votes.db"}
	assert.Equal(t, "/tmp/votes.db", d.DSN())

	d = DatabaseConfig{Driver: DriverPostgres, URI: "postgres://u:p@h/db"}
	assert.Equal(t, "postgres://u:p@h/db", d.DSN())

	d = DatabaseConfig{Driver: DriverPostgres, Host: "h", Port: "5432", User: "u", Password: "p", DBName: "db", SSLMode: "disable"}
	assert.Equal(t, "host=h user=u password=p dbname=db port=5432 sslmode=disable TimeZone=UTC", d.DSN())
}
