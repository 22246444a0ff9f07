package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	Port      string
	ClientUrl string
	JWTSecret string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	RedisHost string
	RedisPort string

	UploadDir string

	MailHost     string
	MailPort     string
	MailUsername string
	MailPassword string
	SupportEmail string
)

// Load reads the .env file if present and fills the package variables
// from the environment
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	Port = getEnv("PORT", "8080")
	ClientUrl = getEnv("CLIENT_URL", "http://localhost:3000")
	JWTSecret = getEnv("JWT_SECRET", "")

	PostgresHost = getEnv("POSTGRES_HOST", "localhost")
	PostgresPort = getEnv("POSTGRES_PORT", "5432")
	PostgresUser = getEnv("POSTGRES_USER", "postgres")
	PostgresPassword = getEnv("POSTGRES_PASSWORD", "postgres")
	PostgresDB = getEnv("POSTGRES_DB", "hub")

	RedisHost = os.Getenv("REDIS_HOST")
	RedisPort = getEnv("REDIS_PORT", "6379")

	UploadDir = getEnv("UPLOAD_DIR", "./uploads")

	MailHost = os.Getenv("MAIL_HOST")
	MailPort = getEnv("MAIL_PORT", "587")
	MailUsername = os.Getenv("MAIL_USERNAME")
	MailPassword = os.Getenv("MAIL_PASSWORD")
	SupportEmail = os.Getenv("SUPPORT_EMAIL")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
