package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const defaultPolicyURL = "https://docs.google.com/document/d/1dD2YDtgmaGrSuJfCxL4KDO0Xtz9uKa-VHn7puQCP7Ro/edit?usp=sharing"

type Config struct {
	AuthURL          string
	PolicyURL        string
	TermsURL         string
	DBPath           string
	PrefsPath        string
	MediaDir         string
	LogLevel         string
	Environment      string
	StartupTimeoutMS int
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	home, _ := os.UserHomeDir()
	dataDir := filepath.Join(home, ".fishhit")

	dbPath := os.Getenv("FISHHIT_DB")
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "fishhit.db")
	}
	prefsPath := os.Getenv("FISHHIT_PREFS")
	if prefsPath == "" {
		prefsPath = filepath.Join(dataDir, "prefs.db")
	}
	mediaDir := os.Getenv("FISHHIT_MEDIA_DIR")
	if mediaDir == "" {
		mediaDir = filepath.Join(dataDir, "media")
	}

	policyURL := os.Getenv("FISHHIT_POLICY_URL")
	if policyURL == "" {
		policyURL = defaultPolicyURL
	}
	termsURL := os.Getenv("FISHHIT_TERMS_URL")
	if termsURL == "" {
		termsURL = policyURL
	}

	logLevel := os.Getenv("FISHHIT_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	environment := os.Getenv("FISHHIT_ENV")
	if environment == "" {
		environment = "development"
	}

	timeoutMS, err := loadInt("FISHHIT_STARTUP_TIMEOUT_MS", 5500)
	if err != nil {
		return nil, err
	}

	return &Config{
		AuthURL:          os.Getenv("FISHHIT_AUTH_URL"),
		PolicyURL:        policyURL,
		TermsURL:         termsURL,
		DBPath:           dbPath,
		PrefsPath:        prefsPath,
		MediaDir:         mediaDir,
		LogLevel:         logLevel,
		Environment:      environment,
		StartupTimeoutMS: timeoutMS,
	}, nil
}

// RequireAuthURL errors when the auth endpoint is not configured; only
// the session commands need it
func (c *Config) RequireAuthURL() (string, error) {
	if c.AuthURL == "" {
		return "", fmt.Errorf("no FISHHIT_AUTH_URL in environment")
	}
	return c.AuthURL, nil
}

func loadInt(key string, defValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defValue, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
