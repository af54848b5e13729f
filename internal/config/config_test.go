package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromLookuper_Defaults(t *testing.T) {
	cfg, err := FromLookuper(context.Background(), envconfig.MapLookuper(map[string]string{
		"DATABASE_URL": "postgres://localhost/market",
		"JWT_SECRET":   "secret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "marketplace", cfg.ServiceName)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.Admin.Enabled())
}

func TestFromLookuper_Overrides(t *testing.T) {
	cfg, err := FromLookuper(context.Background(), envconfig.MapLookuper(map[string]string{
		"DATABASE_URL":   "market.db",
		"DB_DRIVER":      "sqlite",
		"JWT_SECRET":     "secret",
		"SERVER_PORT":    "9000",
		"TOKEN_TTL":      "15m",
		"PAGE_SIZE":      "25",
		"KAFKA_BROKERS":  "kafka-1:9092,kafka-2:9092",
		"ADMIN_USERNAME": "root",
		"ADMIN_PASSWORD": "toor",
	}))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.Admin.Enabled())
}

func TestFromLookuper_MissingRequired(t *testing.T) {
	_, err := FromLookuper(context.Background(), envconfig.MapLookuper(map[string]string{
		"DATABASE_URL": "postgres://localhost/market",
	}))
	require.Error(t, err)
}

func TestFromLookuper_RejectsBadPageSize(t *testing.T) {
	_, err := FromLookuper(context.Background(), envconfig.MapLookuper(map[string]string{
		"DATABASE_URL": "x",
		"JWT_SECRET":   "secret",
		"PAGE_SIZE":    "0",
	}))
	require.ErrorContains(t, err, "PAGE_SIZE")
}
