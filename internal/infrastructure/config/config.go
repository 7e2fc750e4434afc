package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	sharedConfig "github.com/jubbslineu/tokensale/internal/shared/config"
)

type Config struct {
	Server       sharedConfig.ServerConfig       `mapstructure:"server"`
	Database     sharedConfig.DatabaseConfig     `mapstructure:"database"`
	Logger       sharedConfig.LoggerConfig       `mapstructure:"logger"`
	Auth         sharedConfig.AuthConfig         `mapstructure:"auth"`
	Sale         sharedConfig.SaleConfig         `mapstructure:"sale"`
	Changelly    sharedConfig.ChangellyConfig    `mapstructure:"changelly"`
	ExchangeRate sharedConfig.ExchangeRateConfig `mapstructure:"exchange_rate"`
}

// Load loads configuration from file and environment variables
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("TOKENSALE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	// The config file is optional; environment variables can carry the
	// full configuration in containerized deployments.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.allowed_origins", []string{"*"})

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.username", "postgres")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "tokensale_dev")
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	viper.SetDefault("auth.jwt.secret", "change-me-in-production")
	viper.SetDefault("auth.jwt.expires_in_seconds", 3600)
	viper.SetDefault("auth.api_keys", []string{})

	// Sale defaults
	viper.SetDefault("sale.payment_request_expire_in_seconds", 3600)
	viper.SetDefault("sale.sweep_interval_minutes", 5)
	viper.SetDefault("sale.ton_destination_address", "")

	// Changelly defaults (key material must be configured)
	viper.SetDefault("changelly.crypto.base_url", "https://api.pay.changelly.com")
	viper.SetDefault("changelly.crypto.api_key", "")
	viper.SetDefault("changelly.crypto.private_key", "")
	viper.SetDefault("changelly.crypto.callback_public_key", "")
	viper.SetDefault("changelly.fiat.base_url", "https://fiat-api.changelly.com")
	viper.SetDefault("changelly.fiat.api_key", "")
	viper.SetDefault("changelly.fiat.private_key", "")
	viper.SetDefault("changelly.fiat.callback_public_key", "")
	viper.SetDefault("changelly.signature_expires_in_seconds", 600)
	viper.SetDefault("changelly.http_timeout_seconds", 15)
	viper.SetDefault("changelly.payment_receiver", "")

	// Exchange rate defaults
	viper.SetDefault("exchange_rate.api_key", "")
}
