package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/cronforge/jenkins-scheduler/internal/common/core"
)

type Config struct {
	// ListenAddr is the HTTP listen address.
	ListenAddr string
	// DBDriver is "sqlite" or "postgres".
	DBDriver string
	// DBDSN is the driver-specific data source name: a file path for
	// sqlite, a connection string for postgres.
	DBDSN string

	JWTSecret string

	// Admin bootstrap account, seeded when the schema is first created.
	AdminUsername string
	AdminPassword string
	AdminEmail    string

	// Mostly used for log level.
	Development bool

	RetryMode    core.RetryMode
	RetryMaxTime time.Duration
}

var retryModeMap = map[string]core.RetryMode{
	"none":    core.None,
	"backoff": core.Backoff,
}

// New returns a new Config with sensible defaults.
//
// The following environment variables are honored:
//
// - JS_LISTEN_ADDR: the HTTP listen address. Defaults to ":3000".
// - JS_DB_DRIVER: the database driver, "sqlite" or "postgres". Defaults to "sqlite".
// - JS_DB_DSN: the data source name. Defaults to "./jenkins-scheduler.db".
// - JS_JWT_SECRET: the HMAC secret for session tokens.
// - JS_ADMIN_USERNAME: the bootstrap admin username. Defaults to "admin".
// - JS_ADMIN_PASSWORD: the bootstrap admin password. Defaults to "admin123".
// - JS_ADMIN_EMAIL: the bootstrap admin email.
// - JS_DEVELOPMENT: whether to enable development mode.
// - JS_RETRY_MODE: the Jenkins retry mode. Defaults to "none". Valid values are "none", "backoff".
// - JS_RETRY_MAX_TIME: the maximum elapsed time for retries. Defaults to 5 minutes.
func New() (*Config, error) {
	driver := getenv("JS_DB_DRIVER", "sqlite")
	switch driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("JS_DB_DRIVER must be \"sqlite\" or \"postgres\", got %q", driver)
	}

	retryMode := core.None
	retryMaxTime := 5 * time.Minute

	if v := os.Getenv("JS_RETRY_MODE"); v != "" {
		retry, ok := retryModeMap[v]
		if !ok {
			fmt.Println("[ERROR] failed to set retry mode, disabling retries")
		} else {
			retryMode = retry
		}
	}

	if v := os.Getenv("JS_RETRY_MAX_TIME"); v != "" {
		duration, err := time.ParseDuration(v)
		if err == nil {
			retryMaxTime = duration
		} else {
			fmt.Println("[ERROR] failed to parse JS_RETRY_MAX_TIME, keeping default")
		}
	}

	development := false
	if v := os.Getenv("JS_DEVELOPMENT"); v != "" {
		development, _ = strconv.ParseBool(v)
	}

	return &Config{
		ListenAddr:    getenv("JS_LISTEN_ADDR", ":3000"),
		DBDriver:      driver,
		DBDSN:         getenv("JS_DB_DSN", "./jenkins-scheduler.db"),
		JWTSecret:     getenv("JS_JWT_SECRET", "your-secret-key-change-in-production"),
		AdminUsername: getenv("JS_ADMIN_USERNAME", "admin"),
		AdminPassword: getenv("JS_ADMIN_PASSWORD", "admin123"),
		AdminEmail:    getenv("JS_ADMIN_EMAIL", "admin@example.com"),
		Development:   development,
		RetryMode:     retryMode,
		RetryMaxTime:  retryMaxTime,
	}, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
