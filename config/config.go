package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	DBName string
	JWTKey string

	EmailSender string
	SendGridKey string

	GatewayURL      string // payment gateway base URL
	GatewayKeyID    string
	PaymentSecret   string // shared secret for order signature verification
	PaymentCurrency string

	ReconcileMinutes int // settlement reconciler sweep interval
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:   getEnv("PORT", "3000"),
		DBName: getEnv("DB_NAME", "upskill"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		EmailSender: getEnv("EMAIL_SENDER", "no-reply@upskill.io"),
		SendGridKey: getEnv("SENDGRID_API_KEY", ""),

		GatewayURL:      getEnv("PAYMENT_GATEWAY_URL", "https://api.razorpay.com/v1"),
		GatewayKeyID:    getEnv("PAYMENT_KEY_ID", ""),
		PaymentSecret:   getEnv("PAYMENT_SECRET", ""),
		PaymentCurrency: getEnv("PAYMENT_CURRENCY", "INR"),

		ReconcileMinutes: getEnvInt("SETTLEMENT_SWEEP_MINUTES", 5),
	}

	// Validate critical configuration
	if AppConfig.PaymentSecret == "" {
		log.Fatal("PAYMENT_SECRET is not set. Payment verification cannot run without it.")
	}
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.SendGridKey == "" {
		log.Println("Warning: SENDGRID_API_KEY is not set. Transactional emails will fail.")
	}
	if AppConfig.ReconcileMinutes < 1 {
		log.Println("Warning: SETTLEMENT_SWEEP_MINUTES must be at least 1. Using 5.")
		AppConfig.ReconcileMinutes = 5
	}
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
