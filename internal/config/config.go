// Package config loads superlista settings from the environment.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config is read once at startup and treated as immutable.
type Config struct {
	// Server
	Port   string
	DBPath string

	// Logging
	LogLevel  string
	LogFormat string

	// Push
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubject    string

	// App client
	APIURL          string
	PrefsPath       string
	RefreshInterval time.Duration

	// Rate limit
	LoginRatePerMin int
}

// Load reads Config from SUPERLISTA_* environment variables, applying
// defaults for anything unset or unparsable.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnvString("SUPERLISTA_PORT", "8080"),
		DBPath:          getEnvString("SUPERLISTA_DB_PATH", "superlista.db"),
		LogLevel:        getEnvString("SUPERLISTA_LOG_LEVEL", "info"),
		LogFormat:       getEnvString("SUPERLISTA_LOG_FORMAT", "text"),
		VAPIDPublicKey:  os.Getenv("SUPERLISTA_VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("SUPERLISTA_VAPID_PRIVATE_KEY"),
		VAPIDSubject:    getEnvString("SUPERLISTA_VAPID_SUBJECT", "admin@superlista.app"),
		APIURL:          getEnvString("SUPERLISTA_API_URL", "http://localhost:8080"),
		PrefsPath:       getEnvString("SUPERLISTA_PREFS_PATH", "superlista-prefs.db"),
		RefreshInterval: getEnvDuration("SUPERLISTA_REFRESH_INTERVAL", 30*time.Second),
		LoginRatePerMin: getEnvInt("SUPERLISTA_LOGIN_RATE_PER_MIN", 10),
	}

	if (cfg.VAPIDPublicKey == "") != (cfg.VAPIDPrivateKey == "") {
		return nil, errors.New("SUPERLISTA_VAPID_PUBLIC_KEY and SUPERLISTA_VAPID_PRIVATE_KEY must be set together")
	}

	return cfg, nil
}

// PushEnabled reports whether VAPID keys are configured.
func (c *Config) PushEnabled() bool {
	return c.VAPIDPublicKey != "" && c.VAPIDPrivateKey != ""
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
