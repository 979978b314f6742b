// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the application configuration as persisted in licmaster.yaml.
type Config struct {
	Database struct {
		Type string `mapstructure:"type" yaml:"type"`
		Dsn  string `mapstructure:"dsn" yaml:"dsn"`
	} `mapstructure:"database" yaml:"database"`
	Language string `mapstructure:"language" yaml:"language"`
	Backups  struct {
		// KeepRlicBak controls whether saving a project file snapshots the
		// previous contents to a .bak next to it.
		KeepRlicBak bool `mapstructure:"keep_rlic_bak" yaml:"keep_rlic_bak"`
	} `mapstructure:"backups" yaml:"backups"`
	Keys struct {
		// Bits is the RSA modulus size for newly generated keypairs.
		Bits int `mapstructure:"bits" yaml:"bits"`
	} `mapstructure:"keys" yaml:"keys"`
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		// System-wide configuration paths
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Licmaster")
		default: // Linux, macOS, etc.
			configDir = "/etc/licmaster"
		}
	} else {
		// User-specific configuration paths
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "licmaster")
	}

	return filepath.Join(configDir, "licmaster.yaml"), nil
}

// FindConfigFile reports the configuration file LoadConfig would read, or ""
// when none of the search locations carries one yet.
func FindConfigFile() string {
	for _, system := range []bool{false, true} {
		path, err := GetConfigPath(system)
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr == nil {
			return path
		}
	}
	if _, err := os.Stat("licmaster.yaml"); err == nil {
		return "licmaster.yaml"
	}
	if _, err := os.Stat(".licmaster.yaml"); err == nil {
		return ".licmaster.yaml"
	}
	return ""
}

// LoadConfig resolves configuration from defaults, config files, environment
// variables and command-line flags, in ascending order of precedence.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, additionalConfigFilePath *string) (T, error) {
	var c T
	v := viper.New()

	// 1. Set defaults
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// 2. Set up file search paths (new format: licmaster.yaml)
	v.SetConfigName("licmaster")
	v.SetConfigType("yaml")

	// 3. Add explicit config file path if provided via --config flag.
	// This has the highest precedence for file-based configuration.
	if additionalConfigFilePath != nil {
		v.SetConfigFile(*additionalConfigFilePath)
	}

	// 4. Add standard config locations
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".") // Look for licmaster.yaml in current dir

	// 5. Read in the primary config file.
	if err := v.ReadInConfig(); err != nil {
		// It's okay if the file is not found, but other errors are fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	// 6. For backward compatibility, check for and merge `.licmaster.yaml` in the current directory.
	mergeLegacyConfig(v)

	// 7. Read from environment variables
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("licmaster")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return c, err
	}

	// parse config
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, nil
}

// mergeLegacyConfig checks for a `.licmaster.yaml` file in the current directory
// and merges it into the viper configuration if found. This is for backward compatibility.
func mergeLegacyConfig(v *viper.Viper) {
	legacyConfigFile := ".licmaster.yaml"
	if _, err := os.Stat(legacyConfigFile); err == nil {
		// File exists, let's try to merge it.
		v.SetConfigFile(legacyConfigFile)
		// MergeInConfig errors on a malformed file, which would be the
		// desired behavior, but a broken legacy file must not block startup.
		_ = v.MergeInConfig()
		// Reset the config file path to avoid side effects.
		v.SetConfigFile("")
	}
}

// WriteConfigFile persists the configuration to the user or system location.
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := GetConfigPath(system)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	err = os.WriteFile(path, data, 0600) // Use 0600 for security, as it may contain secrets
	if err != nil {
		return err
	}

	return nil
}
