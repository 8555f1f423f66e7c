package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Inventory backends. The memory ledger keeps stock in process and loses it
// on restart.
const (
	InventoryPostgres = "postgres"
	InventoryMemory   = "memory"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr      string
	StatusCacheTTL time.Duration

	InventoryBackend string

	KafkaBrokers          []string
	KafkaOrderEventsTopic string

	ReconcileSchedule  string
	ReconcileBatchSize int

	LogLevel slog.Level
}

// LoadConfig reads the environment, after loading envFile into it when the
// file exists. Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("STATUS_CACHE_TTL", "10m")
	v.SetDefault("INVENTORY_BACKEND", InventoryPostgres)
	v.SetDefault("KAFKA_ORDER_EVENTS_TOPIC", "order.events")
	v.SetDefault("RECONCILE_SCHEDULE", "*/30 * * * * *")
	v.SetDefault("RECONCILE_BATCH_SIZE", 100)
	v.SetDefault("LOG_LEVEL", "info")

	cfg := Config{
		HTTPPort:              v.GetString("HTTP_PORT"),
		DBHost:                v.GetString("DB_HOST"),
		DBPort:                v.GetString("DB_PORT"),
		DBUser:                v.GetString("DB_USER"),
		DBPassword:            v.GetString("DB_PASSWORD"),
		DBName:                v.GetString("DB_NAME"),
		DBSslMode:             v.GetString("DB_SSLMODE"),
		RedisAddr:             v.GetString("REDIS_ADDR"),
		StatusCacheTTL:        v.GetDuration("STATUS_CACHE_TTL"),
		InventoryBackend:      v.GetString("INVENTORY_BACKEND"),
		KafkaBrokers:          splitList(v.GetString("KAFKA_BROKERS")),
		KafkaOrderEventsTopic: v.GetString("KAFKA_ORDER_EVENTS_TOPIC"),
		ReconcileSchedule:     v.GetString("RECONCILE_SCHEDULE"),
		ReconcileBatchSize:    v.GetInt("RECONCILE_BATCH_SIZE"),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var missing []string
	for name, value := range map[string]string{
		"DB_HOST": c.DBHost,
		"DB_USER": c.DBUser,
		"DB_NAME": c.DBName,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	if c.ReconcileBatchSize <= 0 {
		return fmt.Errorf("RECONCILE_BATCH_SIZE must be positive, got %d", c.ReconcileBatchSize)
	}
	if c.InventoryBackend != InventoryPostgres && c.InventoryBackend != InventoryMemory {
		return fmt.Errorf("INVENTORY_BACKEND must be %q or %q, got %q",
			InventoryPostgres, InventoryMemory, c.InventoryBackend)
	}
	if c.StatusCacheTTL <= 0 {
		return fmt.Errorf("STATUS_CACHE_TTL must be positive, got %s", c.StatusCacheTTL)
	}
	return nil
}

// DSN is the libpq connection string for the configured database.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
