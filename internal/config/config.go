package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const appName = "StudyHub"

type Config struct {
	Port          string
	DBPath        string
	MigrationsDir string
	JWTSecret     string
	TokenTTL      time.Duration
	CORSOrigins   []string
	TickInterval  time.Duration
	GeminiAPIKey  string
	GeminiModel   string
	Bell          bool
}

// fileConfig mirrors the optional YAML config file. Zero values mean "not set".
type fileConfig struct {
	Port           string   `yaml:"port"`
	DBPath         string   `yaml:"db_path"`
	MigrationsDir  string   `yaml:"migrations_dir"`
	JWTSecret      string   `yaml:"jwt_secret"`
	TokenTTLHours  int      `yaml:"token_ttl_hours"`
	CORSOrigins    []string `yaml:"cors_origins"`
	TickIntervalMS int      `yaml:"tick_interval_ms"`
	GeminiAPIKey   string   `yaml:"gemini_api_key"`
	GeminiModel    string   `yaml:"gemini_model"`
	Bell           *bool    `yaml:"bell"`
}

// Load builds the configuration from defaults, then the YAML file, then the
// environment (including a .env file in the working directory).
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("config: load .env: %v", err)
	}

	file, err := loadFile(getEnv("STUDYHUB_CONFIG", defaultConfigPath()))
	if err != nil {
		log.Printf("config: %v", err)
	}
	return fromSources(file)
}

func fromSources(file fileConfig) Config {
	defaults := defaultFileConfig()
	file = mergeFile(defaults, file)

	return Config{
		Port:          getEnv("PORT", file.Port),
		DBPath:        getEnv("DB_PATH", file.DBPath),
		MigrationsDir: getEnv("MIGRATIONS_DIR", file.MigrationsDir),
		JWTSecret:     getEnv("JWT_SECRET", file.JWTSecret),
		TokenTTL:      time.Duration(getEnvInt("TOKEN_TTL_HOURS", file.TokenTTLHours)) * time.Hour,
		CORSOrigins:   getEnvList("CORS_ORIGINS", file.CORSOrigins),
		TickInterval:  time.Duration(getEnvInt("TICK_INTERVAL_MS", file.TickIntervalMS)) * time.Millisecond,
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", file.GeminiAPIKey),
		GeminiModel:   getEnv("GEMINI_MODEL", file.GeminiModel),
		Bell:          getEnvBool("BELL", *file.Bell),
	}
}

func defaultFileConfig() fileConfig {
	bell := true
	return fileConfig{
		Port:           "8080",
		DBPath:         "./data/studyhub.db",
		MigrationsDir:  "./migrations",
		JWTSecret:      "change-this-secret",
		TokenTTLHours:  72,
		CORSOrigins:    []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		TickIntervalMS: 1000,
		GeminiModel:    "gemini-2.0-flash",
		Bell:           &bell,
	}
}

func mergeFile(base, override fileConfig) fileConfig {
	if override.Port != "" {
		base.Port = override.Port
	}
	if override.DBPath != "" {
		base.DBPath = override.DBPath
	}
	if override.MigrationsDir != "" {
		base.MigrationsDir = override.MigrationsDir
	}
	if override.JWTSecret != "" {
		base.JWTSecret = override.JWTSecret
	}
	if override.TokenTTLHours > 0 {
		base.TokenTTLHours = override.TokenTTLHours
	}
	if len(override.CORSOrigins) > 0 {
		base.CORSOrigins = override.CORSOrigins
	}
	if override.TickIntervalMS > 0 {
		base.TickIntervalMS = override.TickIntervalMS
	}
	if override.GeminiAPIKey != "" {
		base.GeminiAPIKey = override.GeminiAPIKey
	}
	if override.GeminiModel != "" {
		base.GeminiModel = override.GeminiModel
	}
	if override.Bell != nil {
		base.Bell = override.Bell
	}
	return base
}

func loadFile(path string) (fileConfig, error) {
	var file fileConfig
	if path == "" {
		return file, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return file, nil
		}
		return file, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fileConfig{}, fmt.Errorf("parse config yaml: %w", err)
	}
	return file, nil
}

func defaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, appName, "config.yaml")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
