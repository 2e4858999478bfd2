package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"comanda-pos/internal/domain"
)

type Config struct {
	HTTP     HTTPConfig
	DB       DBConfig
	Rabbit   RabbitConfig
	Auth     AuthConfig
	Caja     CajaConfig
	Telegram TelegramConfig
}

type HTTPConfig struct {
	Addr string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type RabbitConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// CajaConfig carries the deployment policy for checkout: by default an
// order must be served before it can be closed, but CAJA_CLOSE_FROM=in_kitchen
// lets the cashier close it as soon as the kitchen has it.
type CajaConfig struct {
	CloseFrom []domain.Status
}

type TelegramConfig struct {
	Token  string
	ChatID int64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTP: HTTPConfig{
			Addr: getEnv("HTTP_ADDR", ":3000"),
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "comanda"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Rabbit: RabbitConfig{
			Host:     getEnv("RABBIT_HOST", "localhost"),
			Port:     getEnvInt("RABBIT_PORT", 5672),
			User:     getEnv("RABBIT_USER", "guest"),
			Password: getEnv("RABBIT_PASSWORD", "guest"),
			VHost:    getEnv("RABBIT_VHOST", "/"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  time.Duration(getEnvInt("TOKEN_TTL_MINUTES", 480)) * time.Minute,
		},
		Telegram: TelegramConfig{
			Token:  getEnv("TELEGRAM_TOKEN", ""),
			ChatID: getEnvInt64("TELEGRAM_CHAT_ID", 0),
		},
	}

	closeFrom, err := parseCloseFrom(getEnv("CAJA_CLOSE_FROM", "served"))
	if err != nil {
		return nil, err
	}
	cfg.Caja.CloseFrom = closeFrom

	return cfg, nil
}

func parseCloseFrom(v string) ([]domain.Status, error) {
	switch v {
	case "served":
		return []domain.Status{domain.StatusServed}, nil
	case "in_kitchen":
		return []domain.Status{domain.StatusInKitchen, domain.StatusServed}, nil
	default:
		return nil, fmt.Errorf("CAJA_CLOSE_FROM must be served or in_kitchen, got %q", v)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}
