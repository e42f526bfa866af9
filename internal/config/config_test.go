package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "LOG_LEVEL", "JWT_SECRET", "TOKEN_TTL", "BCRYPT_COST",
		"STORE_DRIVER", "SQLITE_DSN", "SEED_PRODUCTS",
		"ADMIN_USERNAME", "ADMIN_PASSWORD", "USER_USERNAME", "USER_PASSWORD",
		"KAFKA_BROKERS", "KAFKA_TOPIC", "ES_URL", "ES_USER", "ES_PASSWORD", "ES_INDEX",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, []byte("secret"), cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, ":memory:", cfg.SQLiteDSN)
	assert.True(t, cfg.SeedProducts)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, "admin123", cfg.AdminPassword)
	assert.Equal(t, "user", cfg.UserUsername)
	assert.Nil(t, cfg.KafkaBrokers)
	assert.Equal(t, "product_events", cfg.KafkaTopic)
	assert.Empty(t, cfg.ESURL)
	assert.Equal(t, "products", cfg.ESIndex)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "8081")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("SEED_PRODUCTS", "false")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.False(t, cfg.SeedProducts)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing secret", env: map[string]string{}},
		{name: "bad port", env: map[string]string{"JWT_SECRET": "s", "PORT": "http"}},
		{name: "port out of range", env: map[string]string{"JWT_SECRET": "s", "PORT": "70000"}},
		{name: "bad ttl", env: map[string]string{"JWT_SECRET": "s", "TOKEN_TTL": "soon"}},
		{name: "negative ttl", env: map[string]string{"JWT_SECRET": "s", "TOKEN_TTL": "-1m"}},
		{name: "bad cost", env: map[string]string{"JWT_SECRET": "s", "BCRYPT_COST": "99"}},
		{name: "unknown driver", env: map[string]string{"JWT_SECRET": "s", "STORE_DRIVER": "postgres"}},
		{name: "bad seed flag", env: map[string]string{"JWT_SECRET": "s", "SEED_PRODUCTS": "maybe"}},
		{name: "same seed usernames", env: map[string]string{"JWT_SECRET": "s", "USER_USERNAME": "admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := FromEnv()
			require.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a"}, CSV(" a ,, "))
}
