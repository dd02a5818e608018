package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr         string `mapstructure:"LISTEN_ADDR"`
	DatabasePath       string `mapstructure:"DB_PATH"`
	LogLevel           string `mapstructure:"LOG_LEVEL"`
	MetricsAddr        string `mapstructure:"METRICS_ADDR"`
	CloudflareAPIToken string `mapstructure:"CF_API_TOKEN"`
	ProxyManagerURL    string `mapstructure:"PROXY_MANAGER_URL"`
	ProxyManagerToken  string `mapstructure:"PROXY_MANAGER_TOKEN"`
	DNSResolver        string `mapstructure:"DNS_RESOLVER"`
	ProvisionPauseMS   int    `mapstructure:"PROVISION_PAUSE_MS"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("LISTEN_ADDR", ":8080")
	viper.SetDefault("DB_PATH", "domainpilot.db")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("METRICS_ADDR", ":9090")
	viper.SetDefault("DNS_RESOLVER", "1.1.1.1:53")
	viper.SetDefault("PROVISION_PAUSE_MS", 500)

	viper.SetEnvPrefix("DOMAINPILOT")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Fallback to a local .env for development; ignore if absent.
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
