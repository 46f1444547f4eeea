package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreDynamoDB, cfg.StoreKind)
	assert.Equal(t, "products-table", cfg.ProductTableName)
	assert.Equal(t, "Product", cfg.MongoCollection)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "product-events", cfg.ProductEventsTopic)
	assert.False(t, cfg.TLSConfig.Enabled)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_KIND", "memory")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("TLS_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.StoreKind)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.True(t, cfg.TLSConfig.Enabled)
}

func TestLoad_UnknownStoreKind(t *testing.T) {
	t.Setenv("STORE_KIND", "cassandra")

	_, err := Load()
	assert.ErrorContains(t, err, "cassandra")
}
