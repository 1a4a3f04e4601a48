package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DatabaseURL     string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	AllowOrigins    []string
	LogstashTCPAddr string

	MinIOEndpoint      string
	MinIOAccessKey     string
	MinIOSecretKey     string
	MinIOUseSSL        bool
	MinIOBucketAvatars string
	MinIOPublicURL     string

	OpenAIAPIKey string
	OpenAIModel  string

	PricePerPerson     int
	PaymentDelay       time.Duration
	AvatarMaxBytes     int64
	AvatarMaxDimension int
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	pricePerPerson := 100
	if v, err := strconv.Atoi(getenv("PRICE_PER_PERSON", "100")); err == nil && v > 0 {
		pricePerPerson = v
	}

	avatarMax := int64(5 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("AVATAR_MAX_BYTES", "5242880"), 10, 64); err == nil && v > 0 {
		avatarMax = v
	}

	avatarDim := 1024
	if v, err := strconv.Atoi(getenv("AVATAR_MAX_DIMENSION", "1024")); err == nil && v > 0 {
		avatarDim = v
	}

	return Config{
		Port:            getenv("PORT", "8000"),
		DatabaseURL:     must("DATABASE_URL"),
		JWTSecret:       must("JWT_SECRET"),
		AccessTokenTTL:  duration("ACCESS_TOKEN_TTL", 30*time.Minute),
		RefreshTokenTTL: duration("REFRESH_TOKEN_TTL", 24*time.Hour),
		AllowOrigins:    splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogstashTCPAddr: getenv("LOGSTASH_TCP_ADDR", ""),

		MinIOEndpoint:      getenv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:     getenv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:     getenv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:        getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketAvatars: getenv("MINIO_BUCKET_AVATARS", "qaztour-avatars"),
		MinIOPublicURL:     getenv("MINIO_PUBLIC_URL", ""),

		OpenAIAPIKey: getenv("OPENAI_API_KEY", ""),
		OpenAIModel:  getenv("OPENAI_MODEL", "gpt-4o-mini"),

		PricePerPerson:     pricePerPerson,
		PaymentDelay:       duration("PAYMENT_DELAY", 2*time.Second),
		AvatarMaxBytes:     avatarMax,
		AvatarMaxDimension: avatarDim,
	}
}

func duration(k string, d time.Duration) time.Duration {
	raw := getenv(k, "")
	if raw == "" {
		return d
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return d
	}
	return parsed
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
