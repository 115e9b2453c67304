package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaEnabled           bool
	KafkaHost              string
	KafkaOrderChangedTopic string

	DueCreditSchedule   string
	OutboxRelaySchedule string
	OutboxBatchSize     int

	RateLimitRPS float64
	LogLevel     string
}

var scheduleParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// LoadConfig reads envFile when it exists, then the environment. Real
// environment variables win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	cfg := Config{
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		DBHost:                 getEnv("DB_HOST", "localhost"),
		DBPort:                 getEnv("DB_PORT", "5432"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              getEnv("DB_SSLMODE", "disable"),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: getEnv("KAFKA_ORDER_CHANGED_TOPIC", "order.status_changed"),
		DueCreditSchedule:      getEnv("DUE_CREDIT_SCHEDULE", "0 0 9 * * *"),
		OutboxRelaySchedule:    getEnv("OUTBOX_RELAY_SCHEDULE", "*/5 * * * * *"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
	}

	var errList []error
	var err error
	if cfg.KafkaEnabled, err = strconv.ParseBool(getEnv("KAFKA_ENABLED", "true")); err != nil {
		errList = append(errList, fmt.Errorf("KAFKA_ENABLED: %w", err))
	}
	if cfg.OutboxBatchSize, err = strconv.Atoi(getEnv("OUTBOX_BATCH_SIZE", "100")); err != nil {
		errList = append(errList, fmt.Errorf("OUTBOX_BATCH_SIZE: %w", err))
	}
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "20"), 64); err != nil {
		errList = append(errList, fmt.Errorf("RATE_LIMIT_RPS: %w", err))
	}
	if err = errors.Join(errList...); err != nil {
		return Config{}, err
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errList []error
	for _, kv := range [][2]string{
		{"HTTP_PORT", c.HTTPPort},
		{"DB_HOST", c.DBHost},
		{"DB_PORT", c.DBPort},
		{"DB_USER", c.DBUser},
		{"DB_PASSWORD", c.DBPassword},
		{"DB_NAME", c.DBName},
	} {
		if kv[1] == "" {
			errList = append(errList, fmt.Errorf("%s is required", kv[0]))
		}
	}

	if c.KafkaEnabled {
		if c.KafkaHost == "" {
			errList = append(errList, errors.New("KAFKA_HOST is required when KAFKA_ENABLED is true"))
		}
		if c.KafkaOrderChangedTopic == "" {
			errList = append(errList, errors.New("KAFKA_ORDER_CHANGED_TOPIC is required when KAFKA_ENABLED is true"))
		}
	}
	if _, err := scheduleParser.Parse(c.DueCreditSchedule); err != nil {
		errList = append(errList, fmt.Errorf("DUE_CREDIT_SCHEDULE: %w", err))
	}
	if _, err := scheduleParser.Parse(c.OutboxRelaySchedule); err != nil {
		errList = append(errList, fmt.Errorf("OUTBOX_RELAY_SCHEDULE: %w", err))
	}
	if c.OutboxBatchSize < 1 {
		errList = append(errList, errors.New("OUTBOX_BATCH_SIZE must be positive"))
	}
	if c.RateLimitRPS <= 0 {
		errList = append(errList, errors.New("RATE_LIMIT_RPS must be positive"))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errList = append(errList, fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error", c.LogLevel))
	}

	return errors.Join(errList...)
}

// DSN is the lib/pq connection string for migrations and gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits KAFKA_HOST on commas.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
