package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const configName = "irisql"

// newViperWithDefaults returns a viper instance with the CLI defaults, the
// config search path and IRISQL_ environment binding.
func newViperWithDefaults() *viper.Viper {
	vi := viper.New()

	vi.SetDefault("dialect", "iris")
	vi.SetDefault("output", "text")

	vi.SetDefault("log.level", "warn")
	vi.SetDefault("log.format", "console")

	vi.SetConfigName(configName)
	vi.SetConfigType("yaml")
	vi.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		vi.AddConfigPath(filepath.Join(home, ".config", configName))
	}

	vi.SetEnvPrefix("IRISQL")
	vi.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vi.AutomaticEnv()

	return vi
}

// readConfig loads file, or searches the config paths when file is empty.
// A missing config is only an error when it was named explicitly.
func readConfig(vi *viper.Viper, file string) error {
	if file != "" {
		vi.SetConfigFile(file)
	}
	if err := vi.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}
