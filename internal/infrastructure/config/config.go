package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string           `mapstructure:"environment"`
	Server      ServerConfig     `mapstructure:"server"`
	Database    DatabaseConfig   `mapstructure:"database"`
	Redis       RedisConfig      `mapstructure:"redis"`
	Logger      LoggerConfig     `mapstructure:"logger"`
	Auth        AuthConfig       `mapstructure:"auth"`
	Provider    ProviderConfig   `mapstructure:"provider"`
	Dispatcher  DispatcherConfig `mapstructure:"dispatcher"`
	Poller      PollerConfig     `mapstructure:"poller"`
	Panel       PanelConfig      `mapstructure:"panel"`
	Referral    ReferralConfig   `mapstructure:"referral"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
}

// RedisConfig contains the token store connection settings
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AuthConfig contains token issuance settings
type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwtSecret"`
	TokenTTL   time.Duration `mapstructure:"tokenTTL"` // hours
	BcryptCost int           `mapstructure:"bcryptCost"`
}

// ProviderConfig contains upstream provider client settings
type ProviderConfig struct {
	RequestTimeout time.Duration `mapstructure:"requestTimeout"` // seconds
}

// DispatcherConfig contains order dispatch worker settings
type DispatcherConfig struct {
	QueueSize int `mapstructure:"queueSize"`
	Workers   int `mapstructure:"workers"`
}

// PollerConfig contains order status poll settings
type PollerConfig struct {
	CronSpec  string `mapstructure:"cronSpec"`
	BatchSize int    `mapstructure:"batchSize"`
}

// PanelConfig contains storefront settings
type PanelConfig struct {
	DefaultMarkup float64 `mapstructure:"defaultMarkup"`
}

// CommissionTierSeed is one default referral tier, amounts in paise.
// Seeds only apply when the tier table is empty.
type CommissionTierSeed struct {
	Threshold  int64 `mapstructure:"threshold"`
	Commission int64 `mapstructure:"commission"`
}

// ReferralConfig contains referral program settings
type ReferralConfig struct {
	TierSeeds []CommissionTierSeed `mapstructure:"tierSeeds"`
}
