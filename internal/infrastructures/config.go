package infrastructures

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type AppConfig struct {
	DATABASE_URL   string
	REDIS_ADDRESS  string
	REDIS_PASSWORD string
	LISTEN_ADDRESS string
	SESSION_TTL    string
}

var Config *AppConfig

// LoadConfig resolves configuration from the environment. A missing
// DATABASE_URL is fatal at startup rather than at first use.
func LoadConfig() *AppConfig {
	godotenv.Load()

	Config = &AppConfig{
		DATABASE_URL:   os.Getenv("DATABASE_URL"),
		REDIS_ADDRESS:  os.Getenv("REDIS_ADDRESS"),
		REDIS_PASSWORD: os.Getenv("REDIS_PASSWORD"),
		LISTEN_ADDRESS: os.Getenv("LISTEN_ADDRESS"),
		SESSION_TTL:    os.Getenv("SESSION_TTL"),
	}

	if Config.DATABASE_URL == "" {
		logrus.Fatal("DATABASE_URL is not set")
	}
	if Config.LISTEN_ADDRESS == "" {
		Config.LISTEN_ADDRESS = ":8080"
	}

	return Config
}
