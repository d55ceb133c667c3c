// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"APP_HOST", "APP_PORT", "APP_ENV", "WEB_PORT", "API_BASE_URL",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
	"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD",
	"EXTRACT_TIMEOUT", "EXTRACT_CACHE_TTL", "RATE_LIMIT_PER_MINUTE", "CORS_ORIGINS",
}

// clearEnv sets every key Load reads to "", which envOrDefault treats as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
	}
}

// TestLoad_Defaults verifies that Load returns sensible development defaults
// when no environment variables are set.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8081", cfg.WebPort)
	assert.Equal(t, "http://localhost:8080/api", cfg.APIBaseURL)
	assert.Equal(t, "bookmarkbrain", cfg.DBUser)
	assert.Equal(t, "bookmarkbrain", cfg.DBName)
	assert.Equal(t, "changeme", cfg.DBPassword)
	assert.Equal(t, "6379", cfg.ValkeyPort)
	assert.Equal(t, 10*time.Second, cfg.ExtractTimeout)
	assert.Equal(t, 24*time.Hour, cfg.ExtractCacheTTL)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
	assert.Equal(t, []string{"http://localhost:8081"}, cfg.CORSOrigins)
	assert.True(t, cfg.IsDev())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9000")
	t.Setenv("API_BASE_URL", "http://api:9000/api/")
	t.Setenv("EXTRACT_TIMEOUT", "3s")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.Equal(t, "http://api:9000/api", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.ExtractTimeout)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoad_InvalidNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("EXTRACT_CACHE_TTL", "forever")
	_, err := Load()
	assert.ErrorContains(t, err, "EXTRACT_CACHE_TTL")

	clearEnv(t)
	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")
	_, err = Load()
	assert.ErrorContains(t, err, "RATE_LIMIT_PER_MINUTE")
}

// TestLoad_ProductionRequiresPassword checks the production guard on the
// default database password.
func TestLoad_ProductionRequiresPassword(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("POSTGRES_PASSWORD", "s3cret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.IsDev())
}

func TestDSNAndAddrs(t *testing.T) {
	cfg := &Config{
		Host: "127.0.0.1", Port: "8080", WebPort: "8081",
		DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5432", DBName: "bb",
	}
	assert.Equal(t, "postgres://u:p@db:5432/bb?sslmode=disable", cfg.DSN())
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, "127.0.0.1:8081", cfg.WebAddr())
}
