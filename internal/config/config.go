package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	AppEnv     string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret        string
	TokenLifetimeMin int

	UploadDir     string
	MaxUploadMB   int64
	StorageDriver string
	S3Bucket      string
	S3Region      string
	S3Endpoint    string
	S3AccessKey   string
	S3SecretKey   string

	AllowedOrigins []string
}

func Load() *Config {
	// .env is optional; deployments normally set the environment directly.
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		AppEnv:     getEnv("APP_ENV", "production"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "mbj"),
		DBPassword: getEnv("DB_PASSWORD", "mbj_dev_password"),
		DBName:     getEnv("DB_NAME", "mbj"),

		JWTSecret:        getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenLifetimeMin: getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 480),

		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadMB:   int64(getEnvInt("MAX_FILE_SIZE_MB", 5)),
		StorageDriver: getEnv("STORAGE_DRIVER", "local"),
		S3Bucket:      getEnv("S3_BUCKET", ""),
		S3Region:      getEnv("S3_REGION", "eu-west-3"),
		S3Endpoint:    getEnv("S3_ENDPOINT", ""),
		S3AccessKey:   getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:   getEnv("S3_SECRET_KEY", ""),

		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "https://lamaisonbleuedejulien.org")),
	}
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}

	return n
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
