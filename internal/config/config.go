package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	BaseURL            string   `mapstructure:"base_url"`
	Port               string   `mapstructure:"port"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
	UploadDir          string   `mapstructure:"upload_dir"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"db_name"`
}

// Load reads the YAML config at path, with environment variables taking
// precedence (API_PORT overrides api.port, etc.).
func Load(path string) (*AppConfig, error) {
	viper.SetConfigFile(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := viper.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	return conf, nil
}
