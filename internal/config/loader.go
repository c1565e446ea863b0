package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads the named configuration. The name is resolved the same way
// the original tool did it: a bare name maps to <config-dir>/<name>.yaml
// (default "config"), while anything containing a path separator or a
// yaml extension is used as a literal path. Environment variables with
// the KEYHUD_ prefix override file values (e.g. KEYHUD_TIMEOUT=10s,
// KEYHUD_LOGGING_LEVEL=debug).
func Load(name string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("KEYHUD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	isDefault := name == "" || name == "config"
	if err := pointViperAt(v, name); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && isDefault {
			// First run: drop a commented sample next to where we
			// looked, then read it back.
			if createErr := createDefaultConfig(); createErr != nil {
				return nil, fmt.Errorf("config not found and could not create a default: %w", createErr)
			}
			if rereadErr := v.ReadInConfig(); rereadErr != nil {
				return nil, fmt.Errorf("failed to read newly created config: %w", rereadErr)
			}
		} else {
			return nil, fmt.Errorf("failed to read config %q: %w", name, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", v.ConfigFileUsed(), err)
	}

	normalize(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", v.ConfigFileUsed(), err)
	}
	return cfg, nil
}

func pointViperAt(v *viper.Viper, name string) error {
	if name == "" {
		name = "config"
	}

	// Literal path: contains a separator or already carries an
	// extension viper knows.
	if strings.ContainsRune(name, os.PathSeparator) || hasYAMLExt(name) {
		if !hasYAMLExt(name) {
			name += ".yaml"
		}
		v.SetConfigFile(name)
		return nil
	}

	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("could not determine config directory: %w", err)
	}
	v.SetConfigName(name)
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	return nil
}

func hasYAMLExt(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}

func createDefaultConfig() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s exists but was not readable", path)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
