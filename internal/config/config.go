package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultBookingAPIURL адрес бэкенда бронирований по умолчанию
const DefaultBookingAPIURL = "https://backend-placetoplacetransfers.onrender.com"

type Config struct {
	TelegramToken string `mapstructure:"TELEGRAM_TOKEN"`
	Environment   string `mapstructure:"ENV"`

	BookingAPIURL string        `mapstructure:"BOOKING_API_URL"`
	HTTPTimeout   time.Duration `mapstructure:"HTTP_TIMEOUT"`
	Timezone      string        `mapstructure:"TIMEZONE"`

	// Необязательные хранилища: пустое значение отключает компонент
	DBDSN         string `mapstructure:"DB_DSN"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	SessionTTL          time.Duration `mapstructure:"SESSION_TTL"`
	SubmissionRetention time.Duration `mapstructure:"SUBMISSION_RETENTION"`

	HTTPAddr string `mapstructure:"HTTP_ADDR"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		Environment:   getEnv("ENV", "development"),
		BookingAPIURL: strings.TrimRight(getEnv("BOOKING_API_URL", DefaultBookingAPIURL), "/"),
		Timezone:      getEnv("TIMEZONE", "Local"),
		DBDSN:         os.Getenv("DB_DSN"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8081"),
	}

	var err error
	if cfg.HTTPTimeout, err = getDuration("HTTP_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SubmissionRetention, err = getDuration("SUBMISSION_RETENTION", 30*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}

	// Проверяем обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}

// Location возвращает часовой пояс, в котором считается "сегодня"
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
