// Package config defines the typed configuration structures shared across
// the application. Values are loaded once at startup and injected into the
// components that need them.
package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
	// APIKeys authorize server-to-server partner calls (subscription API).
	APIKeys []string `mapstructure:"api_keys"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	ExpiresInSeconds int    `mapstructure:"expires_in_seconds"`
}

func (c *JWTConfig) ExpiresIn() time.Duration {
	return time.Duration(c.ExpiresInSeconds) * time.Second
}

// SaleConfig holds the payment-request ledger settings.
type SaleConfig struct {
	PaymentRequestExpireInSeconds int    `mapstructure:"payment_request_expire_in_seconds"`
	SweepIntervalMinutes          int    `mapstructure:"sweep_interval_minutes"`
	TonDestinationAddress         string `mapstructure:"ton_destination_address"`
}

func (c *SaleConfig) PaymentRequestTTL() time.Duration {
	return time.Duration(c.PaymentRequestExpireInSeconds) * time.Second
}

func (c *SaleConfig) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalMinutes) * time.Minute
}

// ChangellyConfig holds the payment-provider integration settings. Key
// material is raw base64 (PEM body without armor), as delivered by the
// provider dashboard.
type ChangellyConfig struct {
	Crypto                    ChangellySchemeConfig `mapstructure:"crypto"`
	Fiat                      ChangellySchemeConfig `mapstructure:"fiat"`
	SignatureExpiresInSeconds int                   `mapstructure:"signature_expires_in_seconds"`
	HTTPTimeoutSeconds        int                   `mapstructure:"http_timeout_seconds"`
	PaymentReceiver           string                `mapstructure:"payment_receiver"`
}

func (c *ChangellyConfig) SignatureTTL() time.Duration {
	return time.Duration(c.SignatureExpiresInSeconds) * time.Second
}

func (c *ChangellyConfig) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

type ChangellySchemeConfig struct {
	BaseURL           string `mapstructure:"base_url"`
	APIKey            string `mapstructure:"api_key"`
	PrivateKey        string `mapstructure:"private_key"`
	CallbackPublicKey string `mapstructure:"callback_public_key"`
}

// ExchangeRateConfig holds the CoinGecko client settings.
type ExchangeRateConfig struct {
	APIKey string `mapstructure:"api_key"`
}
