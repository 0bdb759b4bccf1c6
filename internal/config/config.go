package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time parses duration values
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message;
// everything else carries a sensible default.
type Config struct {
	Env               string        // application environment (e.g. "dev", "prod")
	Port              string        // HTTP port to listen on
	DB                DBConfig      // primary database settings
	WebhookJWTSecret  string        // secret the dialogue manager signs webhook tokens with
	LocationIndexPath string        // optional JSON file mapping place names to route codes
	NearbyCodesPath   string        // optional JSON file mapping codes to metro-area alternates
	FlightCacheTTL    time.Duration // lifetime of cached availability lookups
	DateDayFirst      bool          // tie-break ambiguous slashed dates as day-first
}

// DBConfig groups the database connection variables so the offline
// ingester can load them without requiring the webhook settings.
type DBConfig struct {
	User string // database username
	Pass string // database password (optional)
	Host string // database host address
	Port string // database port number
	Name string // database name
}

// Load reads the full server configuration from environment variables.
func Load() Config {
	return Config{
		Env:               must("APP_ENV"),
		Port:              must("APP_PORT"),
		DB:                LoadDB(),
		WebhookJWTSecret:  must("WEBHOOK_JWT_SECRET"),
		LocationIndexPath: os.Getenv("LOCATION_INDEX_PATH"),
		NearbyCodesPath:   os.Getenv("NEARBY_CODES_PATH"),
		FlightCacheTTL:    envDur("FLIGHT_CACHE_TTL", time.Minute),
		DateDayFirst:      envBool("DATE_DAY_FIRST", true),
	}
}

// LoadDB reads only the database connection variables.
func LoadDB() DBConfig {
	return DBConfig{
		User: must("DB_USER"),
		Pass: os.Getenv("DB_PASS"), // empty allowed
		Host: must("DB_HOST"),
		Port: must("DB_PORT"),
		Name: must("DB_NAME"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
