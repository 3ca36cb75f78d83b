package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	JWT        JWTConfig        `yaml:"jwt"`
	OTP        OTPConfig        `yaml:"otp"`
	Payment    PaymentConfig    `yaml:"payment"`
	Penalty    PenaltyConfig    `yaml:"penalty"`
	TrustScore TrustScoreConfig `yaml:"trust_score"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_days"`
}

// OTPConfig contains one-time code settings
type OTPConfig struct {
	ExpiryMinutes int `yaml:"expiry_minutes"`
	// DemoMode echoes the issued code in the RequestOTP response for
	// environments without an SMS transport.
	DemoMode bool `yaml:"demo_mode"`
}

// PaymentConfig selects the payment gateway once at startup.
// Provider "mock" needs no credentials; "gateway" talks to a Razorpay-style
// REST API using key_id/key_secret and verifies webhooks with webhook_secret.
type PaymentConfig struct {
	Provider      string `yaml:"provider"` // "mock" or "gateway"
	KeyID         string `yaml:"key_id"`
	KeySecret     string `yaml:"key_secret"`
	BaseURL       string `yaml:"base_url"`
	WebhookSecret string `yaml:"webhook_secret"`
	Currency      string `yaml:"currency"`
}

// PenaltyConfig contains late-return charge settings
type PenaltyConfig struct {
	PerDayCents int32 `yaml:"per_day_cents"`
}

// TrustScoreConfig contains score bookkeeping settings
type TrustScoreConfig struct {
	HistoryKeep int32 `yaml:"history_keep"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	MarkOverdueBorrows   string `yaml:"mark_overdue_borrows"`
	SendOverdueReminders string `yaml:"send_overdue_reminders"`
	PurgeExpiredOtps     string `yaml:"purge_expired_otps"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// OTP
	if val := os.Getenv("OTP_EXPIRY_MINUTES"); val != "" {
		fmt.Sscanf(val, "%d", &c.OTP.ExpiryMinutes)
	}

	// Payment
	if val := os.Getenv("PAYMENT_KEY_ID"); val != "" {
		c.Payment.KeyID = val
	}
	if val := os.Getenv("PAYMENT_KEY_SECRET"); val != "" {
		c.Payment.KeySecret = val
	}
	if val := os.Getenv("PAYMENT_WEBHOOK_SECRET"); val != "" {
		c.Payment.WebhookSecret = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 30
	}

	if c.OTP.ExpiryMinutes == 0 {
		c.OTP.ExpiryMinutes = 10
	}

	switch c.Payment.Provider {
	case "", "mock":
		c.Payment.Provider = "mock"
	case "gateway":
		if c.Payment.KeyID == "" || c.Payment.KeySecret == "" {
			return fmt.Errorf("payment gateway requires key_id and key_secret")
		}
		if c.Payment.BaseURL == "" {
			return fmt.Errorf("payment gateway requires base_url")
		}
	default:
		return fmt.Errorf("unknown payment provider: %s", c.Payment.Provider)
	}
	if c.Payment.Currency == "" {
		c.Payment.Currency = "INR"
	}

	if c.Penalty.PerDayCents == 0 {
		c.Penalty.PerDayCents = 500 // $5.00 per day late
	}

	if c.TrustScore.HistoryKeep == 0 {
		c.TrustScore.HistoryKeep = 50
	}

	// Scheduler defaults
	if c.Scheduler.MarkOverdueBorrows == "" {
		c.Scheduler.MarkOverdueBorrows = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.SendOverdueReminders == "" {
		c.Scheduler.SendOverdueReminders = "0 0 3 * * *" // 3 AM UTC
	}
	if c.Scheduler.PurgeExpiredOtps == "" {
		c.Scheduler.PurgeExpiredOtps = "0 15 * * * *" // hourly at :15
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
