package config

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the catalog service and the manager console.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Client   ClientConfig   `mapstructure:"client"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// DatabaseConfig selects the storage of record. Driver is "mongo" or "memory".
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// Enabled reports whether catalog exports can be written.
func (c S3Config) Enabled() bool { return c.BucketName != "" }

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// ClientConfig is read by planctl to reach the catalog service.
type ClientConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Token   string        `mapstructure:"token"` // Bearer token supplied by the session provider
}

// LoadConfig reads configuration from path/config.yaml, an optional path/.env
// and environment variables (server.address -> SERVER_ADDRESS).
func LoadConfig(path string) (config Config, err error) {
	if err := godotenv.Load(filepath.Join(path, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("WARN: Could not read .env: %v", err)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	// Every key needs a default so AutomaticEnv can see it during Unmarshal.
	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.driver", "mongo")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "plan_admin")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "1h")
	v.SetDefault("client.base_url", "http://localhost:8080")
	v.SetDefault("client.timeout", "10s")
	v.SetDefault("client.token", "")

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// Config file is optional; defaults and env vars are enough.
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	return config, nil
}
