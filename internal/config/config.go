package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Storage  StorageConfig  `json:"storage"`
	Security SecurityConfig `json:"security"`
	Logging  LoggingConfig  `json:"logging"`
	Monitor  MonitorConfig  `json:"monitor"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Host           string        `json:"host"`
	Port           int           `json:"port"`
	User           string        `json:"user"`
	Password       string        `json:"password"`
	DBName         string        `json:"db_name"`
	SSLMode        string        `json:"ssl_mode"`
	MaxConnections int           `json:"max_connections"`
	MaxIdleConns   int           `json:"max_idle_conns"`
	MaxLifetime    time.Duration `json:"max_lifetime"`
}

// StorageConfig holds the S3 settings for uploaded document and receipt images
type StorageConfig struct {
	Region          string `json:"region"`
	Bucket          string `json:"bucket"`
	Endpoint        string `json:"endpoint"`
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
}

// SecurityConfig
type SecurityConfig struct {
	JWTSecret     string        `json:"jwt_secret"`
	TokenDuration time.Duration `json:"token_duration"`
}

// LoggingConfig
type LoggingConfig struct {
	Level string `json:"level"`
}

// MonitorConfig controls the subscription monitor schedule
type MonitorConfig struct {
	Enabled        bool   `json:"enabled"`
	CronExpression string `json:"cron_expression"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Default config
	config := &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    os.Getenv("USER"),
			DBName:  "aqarshare_admin",
			SSLMode: "disable",
		},
		Storage: StorageConfig{
			Region: "me-south-1",
			Bucket: "aqarshare-uploads",
		},
		Security: SecurityConfig{
			TokenDuration: 24 * time.Hour,
		},
		Monitor: MonitorConfig{
			Enabled:        true,
			CronExpression: "@every 10m",
		},
	}

	// Load from file if exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Override with environment variables
	overrideWithEnv(config)

	return config, nil
}

func overrideWithEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if dbHost := os.Getenv("DATABASE_HOST"); dbHost != "" {
		config.Database.Host = dbHost
	}
	if dbUser := os.Getenv("DATABASE_USER"); dbUser != "" {
		config.Database.User = dbUser
	}
	if dbPass := os.Getenv("DATABASE_PASSWORD"); dbPass != "" {
		config.Database.Password = dbPass
	}
	if dbName := os.Getenv("DATABASE_DBNAME"); dbName != "" {
		config.Database.DBName = dbName
	}
	if bucket := os.Getenv("STORAGE_BUCKET"); bucket != "" {
		config.Storage.Bucket = bucket
	}
	if region := os.Getenv("STORAGE_REGION"); region != "" {
		config.Storage.Region = region
	}
	if endpoint := os.Getenv("STORAGE_ENDPOINT"); endpoint != "" {
		config.Storage.Endpoint = endpoint
	}
	if key := os.Getenv("STORAGE_ACCESS_KEY_ID"); key != "" {
		config.Storage.AccessKeyID = key
	}
	if secret := os.Getenv("STORAGE_SECRET_ACCESS_KEY"); secret != "" {
		config.Storage.SecretAccessKey = secret
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.Security.JWTSecret = secret
	}
}

// GetDatabaseURL returns the database connection string
func (c *DatabaseConfig) GetDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
