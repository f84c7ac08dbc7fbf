// Package config loads runtime settings and the region keyword table.
// Credentials are environment-supplied; a missing API key is a normal
// condition handled downstream, never a startup error.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings holds the tunables read from env/config file.
type Settings struct {
	LogLevel       string        `mapstructure:"log_level"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	CachePath      string        `mapstructure:"cache_path"`
	SourcesFile    string        `mapstructure:"sources_file"`
	PublishersFile string        `mapstructure:"publishers_file"`
	RegionsFile    string        `mapstructure:"regions_file"`
	HTTPTimeout    time.Duration `mapstructure:"http_timeout"`
}

// Load reads .env (when present), then settings from the environment and
// an optional riskfeed.yaml in the working directory.
func Load() (Settings, error) {
	// Absence of .env is fine; real deployments inject env directly.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("riskfeed")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("log_level", "info")
	v.SetDefault("cache_ttl", 15*time.Minute)
	v.SetDefault("cache_path", "")
	v.SetDefault("sources_file", "")
	v.SetDefault("publishers_file", "")
	v.SetDefault("regions_file", "")
	v.SetDefault("http_timeout", 15*time.Second)

	v.SetEnvPrefix("RISKFEED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	return s, nil
}
