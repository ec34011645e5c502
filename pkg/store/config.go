package store

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/datepick/pkg/settings"
)

// Config says where settings live and which settings the environment or a
// config file override.
type Config interface {
	BasePath() string
	Overrides() map[string]string
}

// LoadConfig reads .datepick.yaml from DATEPICK_CONFIG_PATH, the working
// directory or the home directory. Every setting key can also come from the
// environment, e.g. DATEPICK_DATE_LAYOUT.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.datepick")
	viper.SetConfigName(".datepick") // .yaml is implicit
	viper.SetEnvPrefix("DATEPICK")
	viper.AutomaticEnv()

	if override := os.Getenv("DATEPICK_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		viper.AddConfigPath(home)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config file: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	overrides := make(map[string]string)
	for _, key := range settings.Keys() {
		if viper.IsSet(key) {
			overrides[key] = viper.GetString(key)
		}
	}

	return &fileConfig{Path: path, Settings: overrides}, nil
}

type fileConfig struct {
	Path     string            `json:"path"`
	Settings map[string]string `json:"settings,omitempty"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Overrides() map[string]string {
	return f.Settings
}

// StaticConfig is a Config built in code, for tests and one-off runs.
type StaticConfig struct {
	Path     string
	Settings map[string]string
}

func (s StaticConfig) BasePath() string { return s.Path }

func (s StaticConfig) Overrides() map[string]string { return s.Settings }
