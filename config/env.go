package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	AppEnv     string
	Port       string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	JWTSecret  string
	JWTExpiry  string

	// Flutterwave credentials and payment defaults. The secret key is
	// injected into the gateway client from here, never read from the
	// environment inside business logic.
	FlutterwaveSecretKey string
	FlutterwaveBaseURL   string
	PaymentRedirectURL   string
	PaymentCurrency      string
	PaymentTax           decimal.Decimal
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	tax, err := decimal.NewFromString(getEnv("PAYMENT_TAX", "15.00"))
	if err != nil {
		log.Fatalf("Invalid PAYMENT_TAX value: %v", err)
	}

	AppConfig = &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		Port:       getEnv("APP_PORT", getEnv("PORT", "8000")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "shoppit"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		JWTSecret:  getEnv("JWT_SECRET", "secret"),
		JWTExpiry:  getEnv("JWT_EXPIRY", "24h"),

		FlutterwaveSecretKey: getEnv("FLUTTERWAVE_SECRET_KEY", ""),
		FlutterwaveBaseURL:   getEnv("FLUTTERWAVE_BASE_URL", "https://api.flutterwave.com/v3"),
		PaymentRedirectURL:   getEnv("PAYMENT_REDIRECT_URL", "http://localhost:5173/payment-status"),
		PaymentCurrency:      getEnv("PAYMENT_CURRENCY", "NGN"),
		PaymentTax:           tax,
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Server will run on port: %s", AppConfig.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
