package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Mongo    MongoConfig
	Input    InputConfig
	Pipeline PipelineConfig
	Tax      TaxConfig
	Log      LogConfig
	Metrics  MetricsConfig
}

// MongoConfig holds document store connection settings.
type MongoConfig struct {
	URI              string        `mapstructure:"uri"`
	Database         string        `mapstructure:"database"`
	OrdersCollection string        `mapstructure:"orders_collection"`
	ReviewCollection string        `mapstructure:"review_collection"`
	ConnectTimeout   time.Duration `mapstructure:"connect_timeout"`
}

// InputConfig holds the order file directories. Processed files move to
// ProcessedDir, files that fail validation or persistence move to ErrorDir.
type InputConfig struct {
	Dir          string `mapstructure:"dir"`
	ProcessedDir string `mapstructure:"processed_dir"`
	ErrorDir     string `mapstructure:"error_dir"`
}

// PipelineConfig holds transformation stage settings.
type PipelineConfig struct {
	// ChunkSize bounds a single bulk-write payload.
	ChunkSize int `mapstructure:"chunk_size"`
	// Workers bounds line enrichment fan-out; <=1 means sequential.
	Workers int `mapstructure:"workers"`
}

// TaxConfig holds rate table settings.
type TaxConfig struct {
	// RulesFile optionally points to a JSON file with additional rate rules
	// that override the builtin table.
	RulesFile string `mapstructure:"rules_file"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig holds the optional Prometheus listener settings.
type MetricsConfig struct {
	// Addr is the listen address for /metrics; empty disables the listener.
	Addr string `mapstructure:"addr"`
}

// Load reads configuration from environment variables with the ORDERSVC_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ORDERSVC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Mongo defaults
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "order_service")
	v.SetDefault("mongo.orders_collection", "orders")
	v.SetDefault("mongo.review_collection", "orders_pending_review")
	v.SetDefault("mongo.connect_timeout", "10s")

	// Input defaults
	v.SetDefault("input.dir", "data")
	v.SetDefault("input.processed_dir", "data/processed")
	v.SetDefault("input.error_dir", "data/error")

	// Pipeline defaults
	v.SetDefault("pipeline.chunk_size", 1000)
	v.SetDefault("pipeline.workers", 1)

	// Tax defaults
	v.SetDefault("tax.rules_file", "")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Metrics defaults
	v.SetDefault("metrics.addr", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"mongo.uri":               "ORDERSVC_MONGO_URI",
		"mongo.database":          "ORDERSVC_MONGO_DATABASE",
		"mongo.orders_collection": "ORDERSVC_MONGO_ORDERS_COLLECTION",
		"mongo.review_collection": "ORDERSVC_MONGO_REVIEW_COLLECTION",
		"mongo.connect_timeout":   "ORDERSVC_MONGO_CONNECT_TIMEOUT",
		"input.dir":               "ORDERSVC_INPUT_DIR",
		"input.processed_dir":     "ORDERSVC_INPUT_PROCESSED_DIR",
		"input.error_dir":         "ORDERSVC_INPUT_ERROR_DIR",
		"pipeline.chunk_size":     "ORDERSVC_PIPELINE_CHUNK_SIZE",
		"pipeline.workers":        "ORDERSVC_PIPELINE_WORKERS",
		"tax.rules_file":          "ORDERSVC_TAX_RULES_FILE",
		"log.level":               "ORDERSVC_LOG_LEVEL",
		"log.format":              "ORDERSVC_LOG_FORMAT",
		"metrics.addr":            "ORDERSVC_METRICS_ADDR",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}
	cfg.Mongo = MongoConfig{
		URI:              v.GetString("mongo.uri"),
		Database:         v.GetString("mongo.database"),
		OrdersCollection: v.GetString("mongo.orders_collection"),
		ReviewCollection: v.GetString("mongo.review_collection"),
		ConnectTimeout:   v.GetDuration("mongo.connect_timeout"),
	}
	cfg.Input = InputConfig{
		Dir:          v.GetString("input.dir"),
		ProcessedDir: v.GetString("input.processed_dir"),
		ErrorDir:     v.GetString("input.error_dir"),
	}
	cfg.Pipeline = PipelineConfig{
		ChunkSize: v.GetInt("pipeline.chunk_size"),
		Workers:   v.GetInt("pipeline.workers"),
	}
	cfg.Tax = TaxConfig{
		RulesFile: v.GetString("tax.rules_file"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Metrics = MetricsConfig{
		Addr: v.GetString("metrics.addr"),
	}

	return cfg, nil
}
