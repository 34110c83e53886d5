package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string        `env:"LEDGER_HTTP_ADDR"`
	DataDir         string        `env:"LEDGER_DATA_DIR"`
	FlushSchedule   string        `env:"LEDGER_FLUSH_SCHEDULE"`
	ShutdownTimeout time.Duration `env:"LEDGER_SHUTDOWN_TIMEOUT"`

	Log struct {
		Level      string `env:"LEDGER_LOG_LEVEL"`
		File       string `env:"LEDGER_LOG_FILE"`
		MaxSizeMB  int    `env:"LEDGER_LOG_MAX_SIZE_MB"`
		MaxBackups int    `env:"LEDGER_LOG_MAX_BACKUPS"`
		MaxAgeDays int    `env:"LEDGER_LOG_MAX_AGE_DAYS"`
	}

	KafkaBrokerURL   string `env:"KAFKA_BROKER_URL"`
	KafkaLedgerTopic string `env:"KAFKA_LEDGER_TOPIC"`
}

// Load reads the given env files, or ./.env when none are given, and then
// the process environment. Variables already set in the environment win over
// file entries. A missing ./.env is fine; a missing file that was asked for
// by name is an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if len(envFiles) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	cfg := &Config{}
	cfg.HTTPAddr = getEnvOrDefault("LEDGER_HTTP_ADDR", ":8080")
	cfg.DataDir = getEnvOrDefault("LEDGER_DATA_DIR", "./db")
	cfg.FlushSchedule = getEnvOrDefault("LEDGER_FLUSH_SCHEDULE", "@daily")
	cfg.ShutdownTimeout = getEnvAsDuration("LEDGER_SHUTDOWN_TIMEOUT", 15*time.Second)

	cfg.Log.Level = getEnvOrDefault("LEDGER_LOG_LEVEL", "info")
	cfg.Log.File = getEnvOrDefault("LEDGER_LOG_FILE", "")
	cfg.Log.MaxSizeMB = getEnvAsInt("LEDGER_LOG_MAX_SIZE_MB", 100)
	cfg.Log.MaxBackups = getEnvAsInt("LEDGER_LOG_MAX_BACKUPS", 14)
	cfg.Log.MaxAgeDays = getEnvAsInt("LEDGER_LOG_MAX_AGE_DAYS", 14)

	cfg.KafkaBrokerURL = getEnvOrDefault("KAFKA_BROKER_URL", "")
	cfg.KafkaLedgerTopic = getEnvOrDefault("KAFKA_LEDGER_TOPIC", "ledger_events")

	return cfg, nil
}

func (c *Config) KafkaEnabled() bool {
	return strings.TrimSpace(c.KafkaBrokerURL) != ""
}

func (c *Config) GetKafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokerURL, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnvOrDefault(key, strconv.Itoa(defaultValue))
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnvOrDefault(key, defaultValue.String())
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
