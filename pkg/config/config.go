package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURL           string
	GithubClientID     string
	GithubClientSecret string
	Port               string
	JWTSecret          string
}

// Load reads every required variable up front so a misconfigured
// process dies before it starts serving. A .env file is optional.
func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		MongoURL:           mustGetEnv("MONGO_URL"),
		GithubClientID:     mustGetEnv("GITHUB_CLIENT_ID"),
		GithubClientSecret: mustGetEnv("GITHUB_CLIENT_SECRET"),
		Port:               mustGetEnv("PORT"),
		JWTSecret:          mustGetEnv("JWT_SECRET"),
	}
}

func mustGetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("missing required environment variable: %s", key)
	}
	return value
}
