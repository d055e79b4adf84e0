// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// AuthServiceConfig provides settings needed by the auth service.
type AuthServiceConfig interface {
	JWTConfig
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetAdminRegistrationKey() string
}

// EmailConfig provides settings for email sending.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetEmailProvider() string
	GetResendAPIKey() string
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// AlertConfig provides settings for the notification module.
type AlertConfig interface {
	GetAlertRecipient() string
	GetAppBaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// SchedulerConfig provides settings for the asynq nurturing scheduler.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// ChatConfig provides settings for the chat assistant provider.
type ChatConfig interface {
	GetChatProvider() string
	GetGeminiAPIKey() string
	GetChatAPIKey() string
	GetChatAPIBaseURL() string
	GetChatModel() string
	IsChatEnabled() bool
}

// ScoringConfig provides settings for the lead scoring rule tables.
type ScoringConfig interface {
	GetScoringRulesPath() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                  string
	HTTPAddr             string
	DatabaseURL          string
	JWTAccessSecret      string
	AccessTokenTTL       time.Duration
	RefreshTokenTTL      time.Duration
	AdminRegistrationKey string
	CORSAllowAll         bool
	CORSOrigins          []string
	CORSAllowCreds       bool
	AppBaseURL           string
	EmailEnabled         bool
	EmailProvider        string
	ResendAPIKey         string
	SMTPHost             string
	SMTPPort             int
	SMTPUsername         string
	SMTPPassword         string
	EmailFromName        string
	EmailFromAddress     string
	AlertRecipient       string
	RedisURL             string
	RedisTLSInsecure     bool
	AsynqQueueName       string
	AsynqConcurrency     int
	ChatProvider         string
	GeminiAPIKey         string
	ChatAPIKey           string
	ChatAPIBaseURL       string
	ChatModel            string
	ScoringRulesPath     string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// AuthServiceConfig implementation
func (c *Config) GetAccessTokenTTL() time.Duration  { return c.AccessTokenTTL }
func (c *Config) GetRefreshTokenTTL() time.Duration { return c.RefreshTokenTTL }
func (c *Config) GetAdminRegistrationKey() string   { return c.AdminRegistrationKey }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool       { return c.EmailEnabled }
func (c *Config) GetEmailProvider() string    { return c.EmailProvider }
func (c *Config) GetResendAPIKey() string     { return c.ResendAPIKey }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }

// AlertConfig implementation
func (c *Config) GetAlertRecipient() string { return c.AlertRecipient }
func (c *Config) GetAppBaseURL() string     { return c.AppBaseURL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string        { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool  { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string  { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int   { return c.AsynqConcurrency }

// ChatConfig implementation
func (c *Config) GetChatProvider() string   { return c.ChatProvider }
func (c *Config) GetGeminiAPIKey() string   { return c.GeminiAPIKey }
func (c *Config) GetChatAPIKey() string     { return c.ChatAPIKey }
func (c *Config) GetChatAPIBaseURL() string { return c.ChatAPIBaseURL }
func (c *Config) GetChatModel() string      { return c.ChatModel }

// IsChatEnabled reports whether a chat provider credential is configured.
func (c *Config) IsChatEnabled() bool {
	switch c.ChatProvider {
	case "gemini":
		return c.GeminiAPIKey != ""
	default:
		return c.ChatAPIKey != ""
	}
}

// ScoringConfig implementation
func (c *Config) GetScoringRulesPath() string { return c.ScoringRulesPath }

// =============================================================================
// Loading
// =============================================================================

// Load reads configuration from the environment (and .env if present) and
// validates required values. Secrets are always environment-injected; none
// have literal fallbacks.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	emailProvider := strings.ToLower(getEnv("EMAIL_PROVIDER", "resend"))
	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true")

	cfg := &Config{
		Env:                  getEnv("APP_ENV", "development"),
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		JWTAccessSecret:      getEnv("JWT_ACCESS_SECRET", ""),
		AccessTokenTTL:       mustDuration(getEnv("JWT_ACCESS_TTL", "24h")),
		RefreshTokenTTL:      mustDuration(getEnv("JWT_REFRESH_TTL", "720h")),
		AdminRegistrationKey: getEnv("ADMIN_REGISTRATION_KEY", ""),
		CORSAllowAll:         corsAllowAll,
		CORSOrigins:          corsOrigins,
		CORSAllowCreds:       strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		AppBaseURL:           getEnv("APP_BASE_URL", "http://localhost:3000"),
		EmailEnabled:         emailEnabled,
		EmailProvider:        emailProvider,
		ResendAPIKey:         getEnv("RESEND_API_KEY", ""),
		SMTPHost:             getEnv("SMTP_HOST", ""),
		SMTPPort:             getEnvInt("SMTP_PORT", 587),
		SMTPUsername:         getEnv("SMTP_USERNAME", ""),
		SMTPPassword:         getEnv("SMTP_PASSWORD", ""),
		EmailFromName:        getEnv("EMAIL_FROM_NAME", "Leadops"),
		EmailFromAddress:     getEnv("EMAIL_FROM_ADDRESS", ""),
		AlertRecipient:       getEnv("ALERT_RECIPIENT", ""),
		RedisURL:             getEnv("REDIS_URL", ""),
		RedisTLSInsecure:     strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:       getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:     getEnvInt("ASYNQ_CONCURRENCY", 10),
		ChatProvider:         strings.ToLower(getEnv("CHAT_PROVIDER", "gemini")),
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		ChatAPIKey:           getEnv("CHAT_API_KEY", ""),
		ChatAPIBaseURL:       getEnv("CHAT_API_BASE_URL", ""),
		ChatModel:            getEnv("CHAT_MODEL", ""),
		ScoringRulesPath:     getEnv("SCORING_RULES_PATH", ""),
	}

	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.EmailEnabled {
		switch cfg.EmailProvider {
		case "resend":
			if cfg.ResendAPIKey == "" {
				return nil, fmt.Errorf("RESEND_API_KEY is required when EMAIL_PROVIDER is resend")
			}
		case "smtp":
			if cfg.SMTPHost == "" {
				return nil, fmt.Errorf("SMTP_HOST is required when EMAIL_PROVIDER is smtp")
			}
		default:
			return nil, fmt.Errorf("unknown EMAIL_PROVIDER %q", cfg.EmailProvider)
		}
		if cfg.EmailFromAddress == "" {
			return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
		}
		if cfg.AlertRecipient == "" {
			return nil, fmt.Errorf("ALERT_RECIPIENT is required when email is enabled")
		}
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var parsed int
	if _, err := fmt.Sscanf(val, "%d", &parsed); err != nil {
		return fallback
	}
	return parsed
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
