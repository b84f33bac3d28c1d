package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/SengdowJones/portfolio/internal/starfield"
)

// Config holds everything the server reads from the environment.
// A .env file is loaded first by godotenv/autoload.
type Config struct {
	Port        string
	DBPath      string
	ContentPath string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	ToEmail  string

	AdminUsername string
	AdminPassword string

	StarCount    int
	StarSeed     int64
	StarMaxCount int

	VisitorRetention time.Duration
}

func loadConfig() (Config, error) {
	cfg := Config{
		Port:          getenv("PORT", "8080"),
		DBPath:        getenv("DB_PATH", "portfolio.db"),
		ContentPath:   os.Getenv("CONTENT_PATH"),
		SMTPHost:      getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getenv("SMTP_PORT", "587"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		ToEmail:       getenv("TO_EMAIL", "imsengdao@gmail.com"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	var err error
	if cfg.StarCount, err = getenvInt("STAR_COUNT", starfield.DefaultCount); err != nil {
		return Config{}, err
	}
	if cfg.StarCount < 0 {
		return Config{}, fmt.Errorf("STAR_COUNT must not be negative, got %d", cfg.StarCount)
	}
	if cfg.StarMaxCount, err = getenvInt("STAR_MAX_COUNT", 1000); err != nil {
		return Config{}, err
	}
	if cfg.StarCount > cfg.StarMaxCount {
		return Config{}, fmt.Errorf("STAR_COUNT %d exceeds STAR_MAX_COUNT %d", cfg.StarCount, cfg.StarMaxCount)
	}

	seed := os.Getenv("STAR_SEED")
	if seed == "" {
		cfg.StarSeed = starfield.DefaultSeed
	} else if cfg.StarSeed, err = strconv.ParseInt(seed, 10, 64); err != nil {
		return Config{}, fmt.Errorf("STAR_SEED: %w", err)
	}

	retention := getenv("VISITOR_RETENTION", "8760h")
	if cfg.VisitorRetention, err = time.ParseDuration(retention); err != nil {
		return Config{}, fmt.Errorf("VISITOR_RETENTION: %w", err)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
