package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"./configs/.env",
	"../configs/.env",
}

// LoadConfig loads configuration from file based on the environment.
// A missing config file is not fatal: defaults plus environment
// variables are enough to run.
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Environment variables override config file values
	v.SetEnvPrefix("SMM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	return &config, nil
}

// Validate ensures required settings are present before startup
func (c *Config) Validate() error {
	var missing []string

	if c.Server.Port == 0 {
		missing = append(missing, "server.port")
	}
	if c.Database.Host == "" {
		missing = append(missing, "database.host (or SMM_DB_HOST)")
	}
	if c.Database.Username == "" {
		missing = append(missing, "database.username (or SMM_DB_USERNAME)")
	}
	if c.Database.Database == "" {
		missing = append(missing, "database.database (or SMM_DB_NAME)")
	}
	if c.Redis.Addr == "" {
		missing = append(missing, "redis.addr (or SMM_REDIS_ADDR)")
	}
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "auth.jwtSecret (or SMM_JWT_SECRET)")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configurations: %v", missing)
	}

	switch c.Environment {
	case Development, Production, Test:
	default:
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			c.Environment, Development, Production, Test)
	}

	return nil
}

// loadDotEnvFile attempts to load environment variables from .env files
func loadDotEnvFile() error {
	var lastError error
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return nil
			} else {
				lastError = err
			}
		}
	}
	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 15)   // seconds

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 5) // minutes
	v.SetDefault("database.connMaxIdleTime", 5) // minutes
	v.SetDefault("database.queryTimeout", 10)   // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 5) // seconds

	v.SetDefault("redis.db", 0)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")

	v.SetDefault("auth.tokenTTL", 24) // hours
	v.SetDefault("auth.bcryptCost", 12)

	v.SetDefault("provider.requestTimeout", 30) // seconds

	v.SetDefault("dispatcher.queueSize", 256)
	v.SetDefault("dispatcher.workers", 4)

	v.SetDefault("poller.cronSpec", "*/2 * * * *")
	v.SetDefault("poller.batchSize", 100)

	v.SetDefault("panel.defaultMarkup", 1.2)

	// Amounts in paise: tiers unlock at cumulative deposits of 100, 200
	// and 500 rupees
	v.SetDefault("referral.tierSeeds", []map[string]any{
		{"threshold": 10000, "commission": 1000},
		{"threshold": 20000, "commission": 3000},
		{"threshold": 50000, "commission": 8000},
	})
}

// getEnvironment determines the environment to use based on SMM_ENV
func getEnvironment() string {
	env := os.Getenv("SMM_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides ensures environment variables override config values
// for sensitive settings that rarely live in a checked-in file
func processEnvOverrides(v *viper.Viper) {
	overrides := map[string]string{
		"SMM_DB_HOST":        "database.host",
		"SMM_DB_PORT":        "database.port",
		"SMM_DB_USERNAME":    "database.username",
		"SMM_DB_PASSWORD":    "database.password",
		"SMM_DB_NAME":        "database.database",
		"SMM_DB_SSL_MODE":    "database.sslMode",
		"SMM_REDIS_ADDR":     "redis.addr",
		"SMM_REDIS_PASSWORD": "redis.password",
		"SMM_JWT_SECRET":     "auth.jwtSecret",
		"SMM_SERVER_HOST":    "server.host",
		"SMM_SERVER_PORT":    "server.port",
		"SMM_LOGGER_LEVEL":   "logger.level",
	}
	for envName, key := range overrides {
		if val := os.Getenv(envName); val != "" {
			v.Set(key, val)
		}
	}
}

// processDurations converts duration fields from their raw values
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second

	config.Auth.TokenTTL = time.Duration(config.Auth.TokenTTL) * time.Hour
	config.Provider.RequestTimeout = time.Duration(config.Provider.RequestTimeout) * time.Second
}
