package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// Storage backends accepted by LEDGER_BACKEND.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

var validBackends = []string{BackendMemory, BackendFile, BackendSQLite}

type Config struct {
	// Storage
	DataBackend  string
	DataDir      string
	SQLiteDBPath string
	SeedSample   bool

	// Logging
	LogLevel  string
	LogFormat string

	// Reports
	ReportCacheSize int

	// AMQP change feed (optional)
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string
	AMQPQueue      string

	// Google Sheets export (optional)
	GoogleSpreadsheetID      string
	GoogleServiceAccountFile string
	GoogleServiceAccountJSON string
	GoogleReportSheetPrefix  string
}

func Load() *Config {
	cfg := &Config{
		DataBackend:  getEnv("LEDGER_BACKEND", BackendFile),
		DataDir:      getEnv("LEDGER_DATA_DIR", "./data"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/bizledger.db"),
		SeedSample:   getEnvBool("LEDGER_SEED_SAMPLE", true),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		ReportCacheSize: getEnvInt("REPORT_CACHE_SIZE", 32),

		AMQPURL:        getEnv("AMQP_URL", ""),
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "bizledger"),
		AMQPRoutingKey: getEnv("AMQP_ROUTING_KEY", "ledger"),
		AMQPQueue:      getEnv("AMQP_QUEUE", "ledger_changes"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleReportSheetPrefix:  getEnv("GOOGLE_REPORT_SHEET_PREFIX", "Report"),
	}

	return cfg
}

// AMQPEnabled reports whether the change feed is configured.
func (c *Config) AMQPEnabled() bool {
	return c.AMQPURL != ""
}

// SheetsEnabled reports whether report export to Google Sheets is configured.
func (c *Config) SheetsEnabled() bool {
	return c.GoogleSpreadsheetID != ""
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate data backend
	if !slices.Contains(validBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	switch c.DataBackend {
	case BackendFile:
		if c.DataDir == "" {
			errors = append(errors, "data directory cannot be empty when using file backend")
		}
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			// Check if directory exists or can be created
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	if c.ReportCacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid report cache size %d: must be at least 1", c.ReportCacheSize))
	} else if c.ReportCacheSize > 1024 {
		errors = append(errors, fmt.Sprintf("invalid report cache size %d: must be at most 1024", c.ReportCacheSize))
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	// Validate Google Sheets configuration if export is enabled
	if c.GoogleSpreadsheetID != "" {
		hasFile := c.GoogleServiceAccountFile != ""
		hasJSON := c.GoogleServiceAccountJSON != ""
		if !hasFile && !hasJSON {
			errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_SERVICE_ACCOUNT_JSON must be provided for sheets export")
		}
		if hasFile {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
		if strings.TrimSpace(c.GoogleReportSheetPrefix) == "" {
			errors = append(errors, "Google report sheet prefix cannot be empty when sheets export is enabled")
		}
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
