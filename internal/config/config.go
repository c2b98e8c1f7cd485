package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

type Config struct {
	AppName string
	AppPort string

	// Database
	DBPath string

	// Local attachment storage
	UploadsDir string

	// Auth
	JWTSecret      string
	JWTExpiryHours int

	// Email: SMTP wins when both are configured
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPUseTLS   bool

	SendGridAPIKey    string
	SendGridFromEmail string

	// Twilio SMS
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromPhone  string

	// OpenAI assistant
	OpenAIAPIKey string

	CORSAllowedOrigins []string
}

const devJWTSecret = "landscaping-dev-secret-do-not-use-in-prod"

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug("No .env file found, relying on environment")
	}

	cfg := &Config{
		AppName:    getEnv("APP_NAME", "landscaping-api"),
		AppPort:    getEnv("APP_PORT", "8080"),
		DBPath:     getEnv("DB_PATH", "landscaping.db"),
		UploadsDir: getEnv("UPLOADS_DIR", "uploads"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),
		SMTPUseTLS:   getEnvBool("SMTP_USE_TLS", false),

		SendGridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", "no-reply@landscaping.example.com"),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromPhone:  os.Getenv("TWILIO_FROM_PHONE"),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),

		CORSAllowedOrigins: []string{getEnv("CORS_ALLOWED_ORIGIN", "*")},
	}

	if cfg.JWTSecret == "" {
		utils.Logger.Warn("JWT_SECRET not set, using insecure development secret")
		cfg.JWTSecret = devJWTSecret
	}
	if !cfg.EmailConfigured() {
		utils.Logger.Warn("Neither SMTP nor SendGrid configured, status emails will be skipped")
	}
	if !cfg.SMSConfigured() {
		utils.Logger.Warn("Twilio not configured, status SMS will be skipped")
	}
	if cfg.OpenAIAPIKey == "" {
		utils.Logger.Warn("OPENAI_API_KEY not set, assistant replies with a configuration notice")
	}

	return cfg
}

// EmailConfigured reports whether at least one email transport has enough
// settings to attempt a send.
func (c *Config) EmailConfigured() bool {
	return c.SMTPConfigured() || c.SendGridAPIKey != ""
}

func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

func (c *Config) SMSConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromPhone != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		utils.Logger.Warnf("%s=%q is not an integer, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		utils.Logger.Warnf("%s=%q is not a boolean, using %t", key, v, fallback)
		return fallback
	}
	return b
}
