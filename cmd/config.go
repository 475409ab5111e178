package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"dispatch/internal/pkg/errs"
)

const (
	defaultHTTPPort           = "8080"
	defaultLockTimeout        = 5 * time.Second
	defaultRetryCeiling       = 3
	defaultBatchSize          = 100
	defaultAssignmentSchedule = "*/30 * * * * *"
	defaultRetrySchedule      = "0 * * * * *"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	LockTimeout        time.Duration
	RetryCeiling       int
	BatchSize          int
	AssignmentSchedule string
	RetrySchedule      string
}

// ConfigFromEnv reads the configuration through getenv, applying defaults to
// unset keys. All malformed values are reported together.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPPort:           withDefault(getenv("HTTP_PORT"), defaultHTTPPort),
		DBHost:             getenv("DB_HOST"),
		DBPort:             withDefault(getenv("DB_PORT"), "5432"),
		DBUser:             getenv("DB_USER"),
		DBPassword:         getenv("DB_PASSWORD"),
		DBName:             getenv("DB_NAME"),
		DBSslMode:          withDefault(getenv("DB_SSLMODE"), "disable"),
		AssignmentSchedule: withDefault(getenv("ASSIGNMENT_SCHEDULE"), defaultAssignmentSchedule),
		RetrySchedule:      withDefault(getenv("RETRY_SCHEDULE"), defaultRetrySchedule),
	}

	var lockErr, ceilingErr, batchErr error
	cfg.LockTimeout, lockErr = durationVar(getenv, "LOCK_TIMEOUT", defaultLockTimeout)
	cfg.RetryCeiling, ceilingErr = positiveIntVar(getenv, "RETRY_CEILING", defaultRetryCeiling)
	cfg.BatchSize, batchErr = positiveIntVar(getenv, "BATCH_SIZE", defaultBatchSize)

	if err := errors.Join(lockErr, ceilingErr, batchErr, cfg.requireDB()); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN returns the PostgreSQL connection string for the configured database.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

func (c Config) requireDB() error {
	var missing []error
	for _, kv := range [][2]string{
		{"DB_HOST", c.DBHost},
		{"DB_USER", c.DBUser},
		{"DB_NAME", c.DBName},
	} {
		if kv[1] == "" {
			missing = append(missing, errs.NewValueIsRequiredError(kv[0]))
		}
	}
	return errors.Join(missing...)
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func durationVar(getenv func(string) string, key string, fallback time.Duration) (time.Duration, error) {
	raw := getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, fmt.Errorf("%q is not a positive duration", raw))
	}
	return d, nil
}

func positiveIntVar(getenv func(string) string, key string, fallback int) (int, error) {
	raw := getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, fmt.Errorf("%q is not a positive integer", raw))
	}
	return n, nil
}
