package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// Config ilovaning konfiguratsiyasi
type Config struct {
	TelegramToken  string        `envconfig:"TELEGRAM_BOT_TOKEN"`
	StaffChatID    int64         `envconfig:"STAFF_CHAT_ID"`
	GeminiAPIKey   string        `envconfig:"GEMINI_API_KEY"`
	GeminiModel    string        `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	EditorPassword string        `envconfig:"EDITOR_PASSWORD"`
	HTTPAddr       string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	MenuSeedXLSX   string        `envconfig:"MENU_SEED_XLSX"`
	ContactDelay   time.Duration `envconfig:"CONTACT_DELAY" default:"1500ms"`
	MaxContextSize int           `envconfig:"MAX_CONTEXT_SIZE" default:"20"`
	ItemHeight     float64       `envconfig:"ITEM_HEIGHT" default:"120"`
}

// Load .env (mavjud bo'lsa) va environment dan konfiguratsiyani yuklash
func Load(logger *logrus.Logger) (*Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warnf("Error loading .env file (but continuing): %v", err)
	} else if err == nil {
		logger.Info("Loaded configuration from .env file")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}

	// Validatsiya
	if config.MaxContextSize <= 0 {
		return nil, fmt.Errorf("MAX_CONTEXT_SIZE must be positive, got %d", config.MaxContextSize)
	}
	if config.ItemHeight <= 0 {
		return nil, fmt.Errorf("ITEM_HEIGHT must be positive, got %v", config.ItemHeight)
	}
	if config.ContactDelay < 0 {
		return nil, fmt.Errorf("CONTACT_DELAY must not be negative, got %v", config.ContactDelay)
	}

	logger.WithFields(logrus.Fields{
		"http_addr":   config.HTTPAddr,
		"log_level":   config.LogLevel,
		"assistant":   config.GeminiAPIKey != "",
		"editor_gate": config.EditorPassword != "",
		"seed_xlsx":   config.MenuSeedXLSX,
	}).Info("Configuration loaded")

	return &config, nil
}

// RequireBot bot rejimi uchun majburiy qiymatlar
func (c *Config) RequireBot() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable bo'sh")
	}
	return nil
}

// NewLogger server rejimlarida JSON, TUI da matn
func NewLogger(level string, jsonFormat bool, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	if jsonFormat {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Warnf("Unknown LOG_LEVEL %q, using info", level)
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
