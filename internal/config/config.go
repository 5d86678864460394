// Package config loads application configuration from environment variables
// and simulation layouts from YAML files.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration of the HTTP service. Each field
// corresponds to an environment variable. Database settings are optional:
// an empty DBHost disables run history.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	LogLevel     string // debug, info, warn or error
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address, empty disables MySQL
	DBPort       string // database port number
	DBName       string // database name
	JWTSecret    string // secret used to sign operator tokens
	AccessTTLMin int    // access token time-to-live in minutes
	// OperatorUser and OperatorPasswordHash are the credentials exchanged
	// for an access token. The hash is a bcrypt string.
	OperatorUser         string
	OperatorPasswordHash string
	LayoutPath           string // default simulation layout, empty uses built-in defaults
	ConsumerEnabled      bool   // run the simulation.completed log consumer in-process
	ConsumerLogDir       string // directory the consumer appends simulation.log to
}

// LoadDotEnv reads a .env file from the working directory into the process
// environment when one exists. Variables already set win over the file.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: ignoring .env: %v", err)
	}
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	LoadDotEnv()
	return Config{
		Env:                  envStr("APP_ENV", "dev"),
		Port:                 must("APP_PORT"),
		LogLevel:             envStr("LOG_LEVEL", "info"),
		DBUser:               envStr("DB_USER", "dining"),
		DBPass:               os.Getenv("DB_PASS"),
		DBHost:               os.Getenv("DB_HOST"),
		DBPort:               envStr("DB_PORT", "3306"),
		DBName:               envStr("DB_NAME", "dining_sim"),
		JWTSecret:            must("JWT_SECRET"),
		AccessTTLMin:         mustInt("ACCESS_TOKEN_TTL_MIN"),
		OperatorUser:         envStr("OPERATOR_USER", "operator"),
		OperatorPasswordHash: must("OPERATOR_PASSWORD_HASH"),
		LayoutPath:           os.Getenv("SIM_LAYOUT"),
		ConsumerEnabled:      envBool("SIM_CONSUMER_ENABLED", false),
		ConsumerLogDir:       envStr("SIM_CONSUMER_LOG_DIR", "logs"),
	}
}

// DatabaseEnabled reports whether run history should be stored in MySQL.
func (c Config) DatabaseEnabled() bool { return c.DBHost != "" }

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
