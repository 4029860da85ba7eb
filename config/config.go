package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port       string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTKey         string
	JWTExpiryHours int
	SaltRound      int

	GatewayURL    string // Payment gateway base URL (empty = settle locally)
	GatewayAPIKey string

	EmailSender   string
	EmailPassword string // SMTP app password
	SMTPHost      string
	SMTPPort      string
}

// Load initializes configuration from environment variables or defaults.
// The returned Config is passed explicitly to every component that needs it.
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	cfg := &Config{
		Port:       getEnv("PORT", "3000"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "edhub"),
		DBPort:     getEnv("DB_PORT", "5432"),

		JWTKey:         getEnv("JWT_SECRET_KEY", "defaultSecret"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),
		SaltRound:      getEnvInt("SALT_ROUND", 10),

		GatewayURL:    getEnv("PAYMENT_GATEWAY_URL", ""),
		GatewayAPIKey: getEnv("PAYMENT_GATEWAY_API_KEY", ""),

		EmailSender:   getEnv("EMAIL_SENDER", ""),
		EmailPassword: getEnv("EMAIL_PASSWORD", ""),
		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
	}

	// Validate critical configuration
	if cfg.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}

	return cfg
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
