package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	PublicURL  string
}

// Media holds the settings handed to the browser upload widget.
type Media struct {
	UploadPreset string
	CloudName    string
}

type Session struct {
	Secret       string
	Duration     time.Duration
	CookieName   string
	CookieSecure bool
}

type Config struct {
	ServerPort        int
	DB                DB
	MinIO             MinIO
	Media             Media
	Session           Session
	SignInPath        string
	CORSAllowedOrigin string
	MaxUploadSize     int64
	LogLevel          string
	MigrationsPath    string
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "inkblog"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadMinIO() MinIO {
	useSSL := getEnvBool("MINIO_USE_SSL", false)
	endpoint := getEnv("MINIO_ENDPOINT", "localhost:9000")

	scheme := "http"
	if useSSL {
		scheme = "https"
	}

	return MinIO{
		Endpoint:   endpoint,
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "images"),
		UseSSL:     useSSL,
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", scheme+"://"+endpoint),
	}
}

func LoadMedia() Media {
	return Media{
		UploadPreset: getEnv("MEDIA_UPLOAD_PRESET", "blog"),
		CloudName:    getEnv("MEDIA_CLOUD_NAME", ""),
	}
}

func LoadSession() Session {
	return Session{
		Secret:       getEnv("SESSION_SECRET", ""),
		Duration:     parseDuration(getEnv("SESSION_DURATION", "168h"), 7*24*time.Hour),
		CookieName:   getEnv("SESSION_COOKIE_NAME", "session_token"),
		CookieSecure: getEnvBool("SESSION_COOKIE_SECURE", false),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:        getEnvAsInt("SERVER_PORT", 8080),
		DB:                LoadDB(),
		MinIO:             LoadMinIO(),
		Media:             LoadMedia(),
		Session:           LoadSession(),
		SignInPath:        getEnv("SIGN_IN_PATH", "/sign-in"),
		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),
		MaxUploadSize:     parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "5242880")),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", "migrations"),
	}
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return 5 * 1024 * 1024
	}
	return size
}
