package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/masterenglish/server/pkg/logger"
)

type Config struct {
	Database DatabaseConfig `json:"database"`
	Server   ServerConfig   `json:"server"`
	Logging  LoggingConfig  `json:"logging"`
}

type DatabaseConfig struct {
	Host     string `json:"host"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	Port     int    `json:"port"`
	SSLMode  string `json:"sslmode"`
}

type ServerConfig struct {
	ListenAddr     string   `json:"listen_addr"`
	AllowedOrigins []string `json:"allowed_origins"`
}

type LoggingConfig struct {
	Level     string `json:"level"`
	Format    string `json:"format"`
	File      string `json:"file"`
	GormLevel string `json:"gorm_level"`
}

var AppConfig Config

// LoadConfig reads the JSON config file and applies MASTERENGLISH_*
// environment overrides on top. A .env file in the working directory is
// loaded first when present.
func LoadConfig(filename string) error {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using process environment")
	}

	file, err := os.Open(filename)
	if err != nil {
		logger.Error("failed to open config file", "error", err)
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&AppConfig); err != nil {
		logger.Error("failed to decode config file", "error", err)
		return err
	}

	applyEnvOverrides(&AppConfig)
	applyDefaults(&AppConfig)
	return nil
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.Database.Host, "MASTERENGLISH_DB_HOST")
	setString(&cfg.Database.User, "MASTERENGLISH_DB_USER")
	setString(&cfg.Database.Password, "MASTERENGLISH_DB_PASSWORD")
	setString(&cfg.Database.DBName, "MASTERENGLISH_DB_NAME")
	setString(&cfg.Database.SSLMode, "MASTERENGLISH_DB_SSLMODE")
	if value := os.Getenv("MASTERENGLISH_DB_PORT"); value != "" {
		if port, err := strconv.Atoi(value); err == nil {
			cfg.Database.Port = port
		} else {
			logger.Error("invalid MASTERENGLISH_DB_PORT", "value", value, "error", err)
		}
	}
	setString(&cfg.Server.ListenAddr, "MASTERENGLISH_LISTEN_ADDR")
	if value := os.Getenv("MASTERENGLISH_ALLOWED_ORIGINS"); value != "" {
		origins := strings.Split(value, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.Server.AllowedOrigins = origins
	}
	setString(&cfg.Logging.Level, "MASTERENGLISH_LOG_LEVEL")
	setString(&cfg.Logging.Format, "MASTERENGLISH_LOG_FORMAT")
	setString(&cfg.Logging.File, "MASTERENGLISH_LOG_FILE")
	setString(&cfg.Logging.GormLevel, "MASTERENGLISH_GORM_LOG_LEVEL")
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Server.ListenAddr) == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if strings.TrimSpace(cfg.Database.SSLMode) == "" {
		cfg.Database.SSLMode = "disable"
	}
}

func setString(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}
