package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
	Redis    RedisConfig
	MapQuest MapQuestConfig
	Storage  StorageConfig
	S3       S3Config
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
	StaticDir   string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type SessionConfig struct {
	Secret string
	Store  string // cookie, redis
	MaxAge time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MapQuestConfig struct {
	APIKey  string
	BaseURL string
}

type StorageConfig struct {
	Driver string // local, s3
	MapDir string
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string // CloudFront or S3 direct URL
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	staticDir := getEnv("STATIC_DIR", "./static")

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
			StaticDir:   staticDir,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "admin"),
			Password: getEnv("DB_PASSWORD", "1234"),
			DBName:   getEnv("DB_NAME", "cafe"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "shhhh"),
			Store:  getEnv("SESSION_STORE", "cookie"),
			MaxAge: parseDuration(getEnv("SESSION_MAX_AGE", "720h")),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0")),
		},
		MapQuest: MapQuestConfig{
			APIKey:  getEnv("MAPQUEST_API_KEY", ""),
			BaseURL: getEnv("MAPQUEST_BASE_URL", "https://www.mapquestapi.com/staticmap/v5/map"),
		},
		Storage: StorageConfig{
			Driver: getEnv("MAP_STORAGE", "local"),
			MapDir: getEnv("MAP_DIR", staticDir+"/maps"),
		},
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "us-west-1"),
			Bucket:          getEnv("AWS_S3_BUCKET", "cafe-maps"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			BaseURL:         getEnv("AWS_S3_BASE_URL", ""),
		},
	}

	if config.Session.Store != "cookie" && config.Session.Store != "redis" {
		return nil, fmt.Errorf("unsupported SESSION_STORE %q", config.Session.Store)
	}
	if config.Storage.Driver != "local" && config.Storage.Driver != "s3" {
		return nil, fmt.Errorf("unsupported MAP_STORAGE %q", config.Storage.Driver)
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default 720h", s)
		return 720 * time.Hour
	}
	return duration
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Invalid integer %s, using 0", s)
		return 0
	}
	return n
}
