// Package config loads service configuration through viper: defaults,
// then an optional config file, then QLEAP_* environment overrides.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config is a thin wrapper over viper so callers read settings without
// knowing where they came from.
type Config struct {
	*viper.Viper
}

// Load builds the configuration. path may name a directory containing
// qleap.yaml; an empty path skips the file lookup.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("debug", false)
	v.SetDefault("port", 8083)
	v.SetDefault("local_only", true)
	v.SetDefault("shots", 1024)
	v.SetDefault("workers", 0) // 0 => NumCPU
	v.SetDefault("backend", "svec")
	v.SetDefault("max_qubits", 12)

	v.SetEnvPrefix("qleap")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigName("qleap")
		v.SetConfigType("yaml")
		v.AddConfigPath(path)
		if err := v.ReadInConfig(); err != nil {
			// a missing file is fine; anything else is not
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, err
			}
		}
	}

	return &Config{v}, nil
}
