package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/cloud-wave-best-zizon/product-inventory/pkg/tls"
)

const (
	StoreDynamoDB = "dynamodb"
	StoreMongo    = "mongo"
	StoreMemory   = "memory"
)

type Config struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`

	StoreKind string `envconfig:"STORE_KIND" default:"dynamodb"`

	AWSRegion        string `envconfig:"AWS_REGION" default:"ap-northeast-2"`
	ProductTableName string `envconfig:"PRODUCT_TABLE_NAME" default:"products-table"`
	DynamoDBEndpoint string `envconfig:"DYNAMODB_ENDPOINT"`
	LocalMode        bool   `envconfig:"LOCAL_MODE" default:"true"` // dynamodb-local 등 AWS 없이 실행

	MongoURI        string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase   string `envconfig:"MONGO_DATABASE" default:"inventory"`
	MongoCollection string `envconfig:"MONGO_COLLECTION" default:"Product"`

	RedisAddr string        `envconfig:"REDIS_ADDR"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"5m"`

	KafkaBrokers       []string `envconfig:"KAFKA_BROKERS"`
	ProductEventsTopic string   `envconfig:"PRODUCT_EVENTS_TOPIC" default:"product-events"`

	OtelEndpoint   string `envconfig:"OTEL_ENDPOINT"`
	OtelAuthHeader string `envconfig:"OTEL_AUTH_HEADER"`

	tls.TLSConfig
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	switch cfg.StoreKind {
	case StoreDynamoDB, StoreMongo, StoreMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_KIND %q", cfg.StoreKind)
	}
	return &cfg, nil
}
