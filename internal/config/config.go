package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for AgriBot
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Admin        AdminConfig        `mapstructure:"admin"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Gemini       GeminiConfig       `mapstructure:"gemini"`
	Connectivity ConnectivityConfig `mapstructure:"connectivity"`
	Consultation ConsultationConfig `mapstructure:"consultation"`
	Session      SessionConfig      `mapstructure:"session"`
	Branding     BrandingConfig     `mapstructure:"branding"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host         string   `mapstructure:"host"`
	Port         int      `mapstructure:"port"`
	BaseURL      string   `mapstructure:"base_url"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// AdminConfig holds admin authentication configuration
type AdminConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// GeminiConfig holds the generative AI backend configuration
type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	TTSModel    string  `mapstructure:"tts_model"`
	Voice       string  `mapstructure:"voice"`
	Temperature float32 `mapstructure:"temperature"`
}

// ConnectivityConfig holds the online/offline detection configuration
type ConnectivityConfig struct {
	Mode          string        `mapstructure:"mode"` // auto, online, offline
	ProbeURL      string        `mapstructure:"probe_url"`
	ProbeInterval time.Duration `mapstructure:"probe_interval"`
	ProbeTimeout  time.Duration `mapstructure:"probe_timeout"`
}

// ConsultationConfig holds the simulated expert workflow timings
type ConsultationConfig struct {
	AcceptDelay     time.Duration `mapstructure:"accept_delay"`
	NotificationTTL time.Duration `mapstructure:"notification_ttl"`
}

// SessionConfig holds app state storage configuration
type SessionConfig struct {
	Store    string        `mapstructure:"store"` // memory, redis
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// BrandingConfig holds logo fallbacks
type BrandingConfig struct {
	PlaceholderURL string `mapstructure:"placeholder_url"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file if specified
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("AGRIBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The key is commonly provided without our prefix
	_ = v.BindEnv("gemini.api_key", "AGRIBOT_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY")

	// Read config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
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

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.allow_origins", []string{"*"})

	v.SetDefault("admin.api_key", "")

	v.SetDefault("database.path", "./data/agribot.db")

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.tts_model", "gemini-2.5-flash-preview-tts")
	v.SetDefault("gemini.voice", "Kore")
	v.SetDefault("gemini.temperature", 0.7)

	v.SetDefault("connectivity.mode", "auto")
	v.SetDefault("connectivity.probe_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("connectivity.probe_interval", 30*time.Second)
	v.SetDefault("connectivity.probe_timeout", 5*time.Second)

	v.SetDefault("consultation.accept_delay", 4*time.Second)
	v.SetDefault("consultation.notification_ttl", 4*time.Second)

	v.SetDefault("session.store", "memory")
	v.SetDefault("session.redis_url", "redis://localhost:6379/0")
	v.SetDefault("session.ttl", 24*time.Hour)

	v.SetDefault("branding.placeholder_url", "https://ui-avatars.com/api/?name=Agri+Bot&background=166534&color=fff&rounded=true&bold=true")
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch c.Connectivity.Mode {
	case "auto", "online", "offline":
	default:
		return fmt.Errorf("invalid connectivity.mode %q", c.Connectivity.Mode)
	}
	switch c.Session.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("invalid session.store %q", c.Session.Store)
	}
	return nil
}

// Address returns the server address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
