package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the app reads from the environment.
type Config struct {
	Port          string
	RedisAddr     string
	USDAAPIKey    string
	SessionSecret string
	TemplateGlob  string
}

// Load reads .env (when present) and assembles the config with defaults for
// local development.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("config: no .env file, using environment as-is")
	}
	return &Config{
		Port:          getenv("NUT_PORT", "8000"),
		RedisAddr:     getenv("REDIS_ADDR", "127.0.0.1:6379"),
		USDAAPIKey:    getenv("USDA_API_KEY", "DEMO_KEY"),
		SessionSecret: getenv("SESSION_SECRET", "dev-secret-change-me"),
		TemplateGlob:  getenv("TEMPLATE_GLOB", "templates/*.html"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
