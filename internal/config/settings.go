package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Settings are the application preferences that are not calculator input
type Settings struct {
	Log    LogSettings    `mapstructure:"log"`
	Output OutputSettings `mapstructure:"output"`
}

// LogSettings configure the CLI logger
type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputSettings configure result rendering
type OutputSettings struct {
	Format string `mapstructure:"format"`
}

var (
	validLogLevels    = []string{"debug", "info", "warn", "error"}
	validLogFormats   = []string{"console", "json"}
	validOutputFormat = []string{"console", "table", "json", "csv"}
)

// NewSettingsLoader returns a viper instance with defaults and ESNET_* environment
// overrides. If configFile is empty an esnet.yaml in the working directory or
// $HOME/.config/esnet is used when present.
func NewSettingsLoader(configFile string) *viper.Viper {
	v := viper.New()
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("output.format", "console")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("esnet")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/esnet")
	}

	v.SetEnvPrefix("ESNET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadSettings reads application settings. A missing default settings file is
// not an error; a missing explicit one is.
func LoadSettings(v *viper.Viper) (*Settings, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}

	settings.Log.Level = strings.ToLower(settings.Log.Level)
	settings.Log.Format = strings.ToLower(settings.Log.Format)
	settings.Output.Format = strings.ToLower(settings.Output.Format)

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate checks every setting against its allowed values
func (s *Settings) Validate() error {
	if !contains(validLogLevels, s.Log.Level) {
		return fmt.Errorf("invalid log level %q (valid: %s)", s.Log.Level, strings.Join(validLogLevels, ", "))
	}
	if !contains(validLogFormats, s.Log.Format) {
		return fmt.Errorf("invalid log format %q (valid: %s)", s.Log.Format, strings.Join(validLogFormats, ", "))
	}
	if !contains(validOutputFormat, s.Output.Format) {
		return fmt.Errorf("invalid output format %q (valid: %s)", s.Output.Format, strings.Join(validOutputFormat, ", "))
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
