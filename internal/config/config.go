package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Row store drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverSheets   = "sheets"
)

type Config struct {
	//App
	Env string // dev / staging / prod
	//HTTP
	HTTPAddr           string
	RequestBodyMaxSize int64

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// Row store
	RowStoreDriver string
	UsersTable     string

	DBAddr  string
	DBDebug bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SheetsSpreadsheetID   string
	SheetsCredentialsFile string

	// Hashing
	HashAlgorithm string // argon2id / sha256
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:            getEnv("ENV", "dev"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		RowStoreDriver: strings.ToLower(getEnv("ROWSTORE_DRIVER", DriverMemory)),
		UsersTable:     getEnv("USERS_TABLE", "Users"),
		HashAlgorithm:  strings.ToLower(getEnv("HASH_ALGORITHM", "argon2id")),
	}

	switch cfg.HashAlgorithm {
	case "argon2id", "sha256":
	default:
		return nil, fmt.Errorf("invalid HASH_ALGORITHM: %q", cfg.HashAlgorithm)
	}

	// Backing store settings are required only for the selected driver.
	// Fail fast so the service never starts half-configured.
	switch cfg.RowStoreDriver {
	case DriverMemory:
		if cfg.Env != "dev" {
			return nil, fmt.Errorf("ROWSTORE_DRIVER=memory is only allowed with ENV=dev")
		}
	case DriverPostgres:
		cfg.DBAddr = os.Getenv("DB_ADDR")
		if cfg.DBAddr == "" {
			return nil, fmt.Errorf("missing required env var: DB_ADDR")
		}
		debug, err := getBool("DB_DEBUG", false)
		if err != nil {
			return nil, err
		}
		cfg.DBDebug = debug
	case DriverRedis:
		cfg.RedisAddr = os.Getenv("REDIS_ADDR")
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("missing required env var: REDIS_ADDR")
		}
		cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
		db, err := getInt("REDIS_DB", 0)
		if err != nil {
			return nil, err
		}
		cfg.RedisDB = db
	case DriverSheets:
		cfg.SheetsSpreadsheetID = os.Getenv("SHEETS_SPREADSHEET_ID")
		if cfg.SheetsSpreadsheetID == "" {
			return nil, fmt.Errorf("missing required env var: SHEETS_SPREADSHEET_ID")
		}
		// empty means Application Default Credentials
		cfg.SheetsCredentialsFile = os.Getenv("SHEETS_CREDENTIALS_FILE")
	default:
		return nil, fmt.Errorf("invalid ROWSTORE_DRIVER: %q", cfg.RowStoreDriver)
	}

	maxBody, err := getInt("REQUEST_BODY_MAX_SIZE", 1<<20)
	if err != nil {
		return nil, err
	}
	if maxBody <= 0 {
		return nil, fmt.Errorf("REQUEST_BODY_MAX_SIZE must be positive")
	}
	cfg.RequestBodyMaxSize = int64(maxBody)

	//Timeout values are optional and have a default value if not
	rt, err := getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPReadTimeout = rt

	wt, err := getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPWriteTimeout = wt

	it, err := getDuration("HTTP_IDLE_TIMEOUT", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPIdleTimeout = it

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid int for %s: %q: %w", key, v, err)
	}
	return n, nil
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid bool for %s: %q: %w", key, v, err)
	}
	return b, nil
}
