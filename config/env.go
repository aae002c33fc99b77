package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv            string
	Port              string
	LogLevel          string
	StoreDriver       string
	DatabaseURL       string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSSLMode         string
	JWTSecret         string
	JWTExpiry         time.Duration
	RedisURL          string
	RedisAddr         string
	RedisPassword     string
	OriginURL         string
	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPass          string
	SMTPFrom          string
	AdminEmail        string
	LowStockThreshold int
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	AppConfig = FromEnv()

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Server will run on port: %s", AppConfig.Port)
}

// FromEnv builds a Config from the current process environment without touching .env files.
func FromEnv() *Config {
	expiry, err := time.ParseDuration(getEnv("JWT_EXPIRY", "24h"))
	if err != nil || expiry <= 0 {
		expiry = 24 * time.Hour
	}

	return &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("APP_PORT", getEnv("PORT", "5000")),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		StoreDriver:       getEnv("STORE_DRIVER", "postgres"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBName:            getEnv("DB_NAME", "mithai_mahal"),
		DBSSLMode:         getEnv("DB_SSLMODE", "disable"),
		JWTSecret:         getEnv("JWT_SECRET", "secret"),
		JWTExpiry:         expiry,
		RedisURL:          os.Getenv("REDIS_URL"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		OriginURL:         os.Getenv("ORIGIN_URL"),
		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPPort:          getEnvInt("SMTP_PORT", 587),
		SMTPUser:          os.Getenv("SMTP_USER"),
		SMTPPass:          os.Getenv("SMTP_PASS"),
		SMTPFrom:          getEnv("SMTP_FROM", os.Getenv("SMTP_USER")),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		LowStockThreshold: getEnvInt("LOW_STOCK_THRESHOLD", 5),
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}
