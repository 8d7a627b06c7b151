package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Manticore
	ManticoreHost        string
	ManticorePort        int
	ManticoreConnTimeout time.Duration

	// Download
	PayloadURL      string
	DownloadTimeout time.Duration
	MaxRetries      int

	// Pipeline
	BatchSize         int
	WorkersCount      int
	ChannelBufferSize int

	// Import
	DataDir     string
	PayloadFile string // выгрузка иерархий в формате NDJSON, одна цепочка на строку

	// Postgres (база ГАР)
	PostgresDSN          string
	PostgresPayloadQuery string

	// Synonyms
	SynonymsSource string // manticore | yaml | none
	SynonymsFile   string

	// Export
	ExportDir string

	Quiet bool // без прогресс-баров, для cron и CI
}

// Источники синонимов
const (
	SynonymsSourceManticore = "manticore"
	SynonymsSourceYAML      = "yaml"
	SynonymsSourceNone      = "none"
)

const defaultPayloadQuery = `SELECT hierarchy_id, object_id, parents FROM address_hierarchy_payloads ORDER BY hierarchy_id`

func Load() (*Config, error) {
	// Загружаем .env файл если существует
	_ = godotenv.Load()

	cfg := &Config{
		ManticoreHost:        getEnv("MANTICORE_HOST", "localhost"),
		ManticorePort:        getEnvAsInt("MANTICORE_PORT", 9308),
		ManticoreConnTimeout: getEnvAsDuration("MANTICORE_TIMEOUT", 30*time.Second),

		PayloadURL:      getEnv("PAYLOAD_URL", ""),
		DownloadTimeout: getEnvAsDuration("DOWNLOAD_TIMEOUT", 10*time.Minute),
		MaxRetries:      getEnvAsInt("MAX_RETRIES", 3),

		BatchSize:         getEnvAsInt("BATCH_SIZE", 1000),
		WorkersCount:      getEnvAsInt("WORKERS_COUNT", 4),
		ChannelBufferSize: getEnvAsInt("CHANNEL_BUFFER_SIZE", 100),

		DataDir:     getEnv("DATA_DIR", "./data"),
		PayloadFile: getEnv("PAYLOAD_FILE", "hierarchy.ndjson"),

		PostgresDSN:          getEnv("POSTGRES_DSN", ""),
		PostgresPayloadQuery: getEnv("POSTGRES_PAYLOAD_QUERY", defaultPayloadQuery),

		SynonymsSource: getEnv("SYNONYMS_SOURCE", SynonymsSourceManticore),
		SynonymsFile:   getEnv("SYNONYMS_FILE", "./data/synonyms.yaml"),

		ExportDir: getEnv("EXPORT_DIR", "./exports"),

		Quiet: getEnvAsBool("QUIET", false),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("BATCH_SIZE must be positive, got %d", c.BatchSize)
	}
	if c.WorkersCount <= 0 {
		return fmt.Errorf("WORKERS_COUNT must be positive, got %d", c.WorkersCount)
	}
	if c.ChannelBufferSize < 0 {
		return fmt.Errorf("CHANNEL_BUFFER_SIZE must not be negative, got %d", c.ChannelBufferSize)
	}
	switch c.SynonymsSource {
	case SynonymsSourceManticore, SynonymsSourceYAML, SynonymsSourceNone:
	default:
		return fmt.Errorf("unknown SYNONYMS_SOURCE %q", c.SynonymsSource)
	}
	return nil
}

// ManticoreURL returns the base url of the Manticore HTTP API.
func (c *Config) ManticoreURL() string {
	return fmt.Sprintf("http://%s:%d", c.ManticoreHost, c.ManticorePort)
}

// PayloadPath returns the local path of the payload dump.
func (c *Config) PayloadPath() string {
	if filepath.IsAbs(c.PayloadFile) {
		return c.PayloadFile
	}
	return filepath.Join(c.DataDir, c.PayloadFile)
}

// Вспомогательные функции для получения переменных окружения
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
