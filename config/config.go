package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server        ServerConfig
	DB            DBConfig
	OpenFoodFacts OpenFoodFactsConfig
	AWS           AWSConfig
	JWT           JWTConfig
}

type ServerConfig struct {
	Port        string `mapstructure:"port"`
	Environment string `mapstructure:"environment"`
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	Port     string `mapstructure:"port"`
	SSLMode  string `mapstructure:"sslmode"`
}

type OpenFoodFactsConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	PageSize int           `mapstructure:"page_size"`
}

type AWSConfig struct {
	Region    string `mapstructure:"region"`
	SESSender string `mapstructure:"ses_sender"`
	S3Bucket  string `mapstructure:"s3_bucket"`
	S3BaseURL string `mapstructure:"s3_base_url"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// DSN builds the postgres connection string.
func (d DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

// Load reads configuration from an optional config.yaml and CALORIEAPP_*
// environment variables, applying defaults and validating the result.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("CALORIEAPP")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file; environment variables and defaults apply.
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.environment", "development")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.sslmode", "disable")

	v.SetDefault("openfoodfacts.base_url", "https://world.openfoodfacts.org")
	v.SetDefault("openfoodfacts.timeout", "10s")
	v.SetDefault("openfoodfacts.page_size", 20)

	v.SetDefault("aws.region", "us-east-1")
}

func validate(config *Config) error {
	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required (set CALORIEAPP_JWT_SECRET)")
	}
	if config.DB.Name == "" {
		return fmt.Errorf("database name is required (set CALORIEAPP_DB_NAME)")
	}
	if config.OpenFoodFacts.PageSize <= 0 {
		return fmt.Errorf("openfoodfacts page_size must be positive, got: %d", config.OpenFoodFacts.PageSize)
	}
	return nil
}
