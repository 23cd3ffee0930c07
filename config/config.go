package config

import (
	"os"
	"time"
)

type Config struct {
	Port      string
	MongoURI  string
	DBName    string
	JWTSecret string
	TokenTTL  time.Duration
	Env       string // "development" or "production"
}

/*
* Read configuration from the environment with development defaults
* godotenv is loaded by main before this runs
 */
func Load() Config {
	cfg := Config{
		Port:      getEnv("PORT", "8080"),
		MongoURI:  getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:    getEnv("DB_NAME", "cliniccore"),
		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:  24 * time.Hour,
		Env:       getEnv("APP_ENV", "development"),
	}
	return cfg
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
