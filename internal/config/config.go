// Package config loads wsp settings from defaults, an optional YAML file and
// WSP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/dshills/wsp/pkg/types"
)

// Configuration keys
const (
	KeyDBPath    = "db_path"
	KeyShell     = "shell"
	KeyShellFlag = "shell_flag"
	KeyLogLevel  = "log_level"
)

const (
	// EnvPrefix is prepended to every key when read from the environment,
	// e.g. WSP_DB_PATH
	EnvPrefix = "WSP"
	// DefaultDBPath is the database location used by earlier releases
	DefaultDBPath = "~/workspaces.db"
	// DefaultLogLevel keeps the CLI quiet unless something goes wrong
	DefaultLogLevel = "warn"
)

// Config holds runtime configuration
type Config struct {
	DBPath    string `mapstructure:"db_path" yaml:"db_path"`
	Shell     string `mapstructure:"shell" yaml:"shell"`
	ShellFlag string `mapstructure:"shell_flag" yaml:"shell_flag"`
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
}

// DefaultShell returns the shell and its command flag for the current OS
func DefaultShell() (shell, flag string) {
	if runtime.GOOS == "windows" {
		return "pwsh", "-Command"
	}
	return "bash", "-c"
}

// Default returns the built-in configuration
func Default() Config {
	shell, flag := DefaultShell()
	return Config{
		DBPath:    DefaultDBPath,
		Shell:     shell,
		ShellFlag: flag,
		LogLevel:  DefaultLogLevel,
	}
}

// Load reads configuration into v. When cfgFile is empty the file is looked
// up as config.yaml under ~/.config/wsp; a missing file is not an error.
// Precedence: environment, then file, then defaults.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	def := Default()
	v.SetDefault(KeyDBPath, def.DBPath)
	v.SetDefault(KeyShell, def.Shell)
	v.SetDefault(KeyShellFlag, def.ShellFlag)
	v.SetDefault(KeyLogLevel, def.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	path, err := ExpandHome(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	cfg.DBPath = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every setting is usable
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("%s must not be empty: %w", KeyDBPath, types.ErrInvalidArgument)
	}
	if strings.TrimSpace(c.Shell) == "" {
		return fmt.Errorf("%s must not be empty: %w", KeyShell, types.ErrInvalidArgument)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%s %q: %w", KeyLogLevel, c.LogLevel, types.ErrInvalidArgument)
	}
	return nil
}

// ConfigFileUsed returns the path of the config file that was read, if any
func ConfigFileUsed(v *viper.Viper) string {
	return v.ConfigFileUsed()
}

// ExpandHome replaces a leading "~" with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wsp"), nil
}
