// Package config loads service configuration from an optional file and the
// environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Email    EmailConfig    `mapstructure:"email"`
	Sheets   SheetsConfig   `mapstructure:"sheets"`
	Razorpay RazorpayConfig `mapstructure:"razorpay"`
	Content  ContentConfig  `mapstructure:"content"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigin   string        `mapstructure:"allowed_origin"`
}

// LogConfig configures zap.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig configures Postgres. An empty URL runs without persistence.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// RedisConfig configures the AI result cache. An empty address disables it.
type RedisConfig struct {
	Address  string        `mapstructure:"address"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// LLMConfig configures the generative model used for recommendations and guides.
type LLMConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	Timeout         time.Duration `mapstructure:"timeout"`
	BreakerFailures uint32        `mapstructure:"breaker_failures"`
	BreakerCooldown time.Duration `mapstructure:"breaker_cooldown"`
}

// EmailConfig configures outbound mail through SES.
type EmailConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Region       string `mapstructure:"region"`
	From         string `mapstructure:"from"`
	AdminAddress string `mapstructure:"admin_address"`
	// SMSEnabled sends SNS text confirmations for pet requests.
	SMSEnabled bool `mapstructure:"sms_enabled"`
}

// SheetsConfig holds the spreadsheet webhook URLs that mirror lead submissions.
type SheetsConfig struct {
	WaitlistURL string `mapstructure:"waitlist_url"`
	LeadsURL    string `mapstructure:"leads_url"`
}

// RazorpayConfig holds payment gateway credentials.
type RazorpayConfig struct {
	KeyID         string `mapstructure:"key_id"`
	KeySecret     string `mapstructure:"key_secret"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

// ContentConfig configures the CMS document store.
type ContentConfig struct {
	Path     string `mapstructure:"path"`
	AdminKey string `mapstructure:"admin_key"`
}

// AuthConfig holds the token and password hashing settings.
type AuthConfig struct {
	JWTSecret          string `mapstructure:"jwt_secret"`
	JWTExpirationHours int    `mapstructure:"jwt_expiration_hours"`
	BcryptCost         int    `mapstructure:"bcrypt_cost"`
	PasswordPepper     string `mapstructure:"password_pepper"`
}

var defaults = map[string]any{
	"server.port":             8080,
	"server.read_timeout":     "30s",
	"server.write_timeout":    "120s",
	"server.shutdown_timeout": "30s",
	"server.allowed_origin":   "*",

	"log.level":  "info",
	"log.format": "json",

	"database.url": "",

	"redis.address":   "",
	"redis.password":  "",
	"redis.db":        0,
	"redis.cache_ttl": "6h",

	"llm.api_key":          "",
	"llm.timeout":          "45s",
	"llm.breaker_failures": 3,
	"llm.breaker_cooldown": "1m",

	"email.enabled":       false,
	"email.region":        "ap-south-1",
	"email.from":          "Petra <noreply@thepetra.in>",
	"email.admin_address": "Petragroupofficial@gmail.com",
	"email.sms_enabled":   false,

	"sheets.waitlist_url": "",
	"sheets.leads_url":    "",

	"razorpay.key_id":         "",
	"razorpay.key_secret":     "",
	"razorpay.webhook_secret": "",

	"content.path":      "data/content.json",
	"content.admin_key": "",

	"auth.jwt_secret":           "",
	"auth.jwt_expiration_hours": 720,
	"auth.bcrypt_cost":          12,
	"auth.password_pepper":      "",
}

// envAliases lets deployments keep the variable names the site already uses.
var envAliases = map[string][]string{
	"llm.api_key":               {"LLM_API_KEY", "GEMINI_API_KEY"},
	"email.region":              {"EMAIL_REGION", "AWS_REGION"},
	"sheets.waitlist_url":       {"SHEETS_WAITLIST_URL", "GOOGLE_SHEET_WAITLIST_URL"},
	"sheets.leads_url":          {"SHEETS_LEADS_URL", "GOOGLE_SHEET_LEADS_URL"},
	"content.admin_key":         {"CONTENT_ADMIN_KEY", "ADMIN_API_KEY"},
	"auth.jwt_secret":           {"AUTH_JWT_SECRET", "JWT_SECRET"},
	"auth.jwt_expiration_hours": {"AUTH_JWT_EXPIRATION_HOURS", "JWT_EXPIRATION_HOURS"},
	"auth.bcrypt_cost":          {"AUTH_BCRYPT_COST", "BCRYPT_COST"},
	"auth.password_pepper":      {"AUTH_PASSWORD_PEPPER", "PASSWORD_PEPPER"},
}

// Load reads configuration from path (YAML, JSON or TOML, optional) and
// overlays environment variables. Keys map to variables by upper-casing and
// replacing dots, so server.port is SERVER_PORT.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, envs := range envAliases {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and settings that depend on each other.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("config error: 'log.format' must be json or console, got %q", c.Log.Format)
	}
	if c.Redis.CacheTTL < 0 {
		return fmt.Errorf("config error: 'redis.cache_ttl' must be non-negative")
	}
	if c.LLM.BreakerFailures == 0 {
		return fmt.Errorf("config error: 'llm.breaker_failures' must be at least 1")
	}
	if c.Email.Enabled && c.Email.From == "" {
		return fmt.Errorf("config error: 'email.from' is required when email is enabled")
	}
	if c.Email.Enabled && c.Email.AdminAddress == "" {
		return fmt.Errorf("config error: 'email.admin_address' is required when email is enabled")
	}
	if (c.Razorpay.KeyID == "") != (c.Razorpay.KeySecret == "") {
		return fmt.Errorf("config error: 'razorpay.key_id' and 'razorpay.key_secret' must be set together")
	}
	if c.Content.Path == "" {
		return fmt.Errorf("config error: 'content.path' is required")
	}
	return nil
}

// PaymentsEnabled reports whether gateway credentials are configured.
func (c *Config) PaymentsEnabled() bool {
	return c.Razorpay.KeyID != "" && c.Razorpay.KeySecret != ""
}
