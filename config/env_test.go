package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "APP_PORT", "PORT", "STORE_DRIVER", "JWT_EXPIRY", "LOW_STOCK_THRESHOLD", "SMTP_PORT"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 5, cfg.LowStockThreshold)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "")
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_EXPIRY", "90m")
	t.Setenv("LOW_STOCK_THRESHOLD", "3")
	t.Setenv("STORE_DRIVER", "memory")

	cfg := FromEnv()
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 90*time.Minute, cfg.JWTExpiry)
	assert.Equal(t, 3, cfg.LowStockThreshold)
	assert.Equal(t, "memory", cfg.StoreDriver)
}

func TestFromEnv_BadValuesFallBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "forever")
	t.Setenv("LOW_STOCK_THRESHOLD", "few")

	cfg := FromEnv()
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 5, cfg.LowStockThreshold)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: "5432", DBUser: "mithai", DBPassword: "pw", DBName: "shop", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://mithai:pw@db:5432/shop?sslmode=disable", cfg.DSN())

	cfg.DatabaseURL = "postgres://override"
	assert.Equal(t, "postgres://override", cfg.DSN())
}
