package config

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// DefaultPlaceholder is the token replaced in templated copies.
const DefaultPlaceholder = "$MSGID$"

// Config holds the application configuration
type Config struct {
	LogLevel string `yaml:"log_level"`
	// Workers is the templated engine pool size. Zero selects
	// DefaultWorkers at load time.
	Workers int `yaml:"workers"`
	// ChunkSize overrides the per-file chunk-size hint when positive.
	ChunkSize   int    `yaml:"chunk_size"`
	ZeroCopy    bool   `yaml:"zero_copy"`
	Mmap        bool   `yaml:"mmap"`
	Placeholder string `yaml:"placeholder"`
	Quiet       bool   `yaml:"quiet"`
}

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"log-level":   "log_level",
	"workers":     "workers",
	"chunk-size":  "chunk_size",
	"zero-copy":   "zero_copy",
	"mmap":        "mmap",
	"placeholder": "placeholder",
	"quiet":       "quiet",
}

// LoadConfig loads configuration from config.yaml, environment variables, or CLI flags
// Priority: CLI flags > Environment variables > config.yaml > defaults
func LoadConfig(configPath string, rootCmd *cobra.Command) (*Config, error) {
	v := viper.New()
	if err := setupViper(v, configPath, rootCmd); err != nil {
		return nil, err
	}

	cfg := &Config{
		LogLevel:    v.GetString("log_level"),
		Workers:     v.GetInt("workers"),
		ChunkSize:   v.GetInt("chunk_size"),
		ZeroCopy:    v.GetBool("zero_copy"),
		Mmap:        v.GetBool("mmap"),
		Placeholder: v.GetString("placeholder"),
		Quiet:       v.GetBool("quiet"),
	}

	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers()
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must be positive, got %d", cfg.Workers)
	}
	if cfg.ChunkSize < 0 {
		return nil, fmt.Errorf("chunk_size must not be negative, got %d", cfg.ChunkSize)
	}

	return cfg, nil
}

// DefaultWorkers sizes the worker pool at twice the core count to cover I/O
// wait, falling back to 1 when the core count is unknown.
func DefaultWorkers() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return 2 * n
}

// setupViper configures Viper with defaults, paths, and bindings
func setupViper(v *viper.Viper, configPath string, rootCmd *cobra.Command) error {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if configPath != "" {
		v.SetConfigFile(configPath)
	}

	setDefaults(v)
	v.AutomaticEnv()

	if rootCmd != nil {
		for name, key := range flagKeys {
			flag := rootCmd.PersistentFlags().Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("workers", 0)
	v.SetDefault("chunk_size", 0)
	v.SetDefault("zero_copy", true)
	v.SetDefault("mmap", false)
	v.SetDefault("placeholder", DefaultPlaceholder)
	v.SetDefault("quiet", false)
}
