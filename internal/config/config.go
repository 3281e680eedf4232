package config

import (
	"errors"
	"os"
)

// Config carries everything read from the environment at startup.
type Config struct {
	HTTPAddr      string
	MySQLDSN      string
	RedisAddr     string
	JWTSecret     string
	GeminiAPIKey  string
	CloudName     string
	CloudAPIKey   string
	CloudSecret   string
	CloudFolder   string
	AllowedOrigin string
}

// Load reads the config from the environment. Gemini and object-storage
// credentials are required; Redis is optional and disabled when
// REDIS_ADDR is empty.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		MySQLDSN:      os.Getenv("DB_DSN"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		CloudName:     os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudAPIKey:   os.Getenv("CLOUDINARY_API_KEY"),
		CloudSecret:   os.Getenv("CLOUDINARY_API_SECRET"),
		CloudFolder:   getenv("CLOUDINARY_FOLDER", "cars"),
		AllowedOrigin: getenv("ALLOWED_ORIGIN", "http://localhost:3000"),
	}

	if cfg.MySQLDSN == "" {
		return cfg, errors.New("DB_DSN environment variable is not set")
	}
	if cfg.JWTSecret == "" {
		return cfg, errors.New("JWT_SECRET environment variable is not set")
	}
	if cfg.GeminiAPIKey == "" {
		return cfg, errors.New("GEMINI_API_KEY environment variable is not set")
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
