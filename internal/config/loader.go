package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileName is the project config file looked up in the root directory.
const FileName = ".outline"

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file, environment variables and flags.
	// Priority: defaults → config file → environment variables → flags
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
	flags      *pflag.FlagSet
	bindings   map[string]string
}

// LoaderOption customizes a Loader.
type LoaderOption func(*loader)

// WithFlags binds config keys to command-line flags. Only flags the user
// actually set override file and environment values.
func WithFlags(flags *pflag.FlagSet, bindings map[string]string) LoaderOption {
	return func(l *loader) {
		l.flags = flags
		l.bindings = bindings
	}
}

// NewLoader creates a new configuration loader for the given root directory.
// configFile, when set, replaces the .outline.yml lookup.
func NewLoader(rootDir, configFile string, opts ...LoaderOption) Loader {
	l := &loader{rootDir: rootDir, configFile: configFile}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Explicitly set flags
// 2. Environment variables (OUTLINE_*)
// 3. Config file (.outline.yml / .outline.yaml, or --config)
// 4. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(l.rootDir)
	}

	// Replace . with _ in env var names (e.g., OUTLINE_OUTPUT_FORMAT)
	v.SetEnvPrefix("OUTLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	for key, name := range l.bindings {
		flag := l.flags.Lookup(name)
		if flag == nil {
			return nil, fmt.Errorf("unknown flag %q for key %s", name, key)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		var notFound viper.ConfigFileNotFoundError
		if l.configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values. Every key gets a
// default so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("outline.max_depth", defaults.Outline.MaxDepth)
	v.SetDefault("outline.named_only", defaults.Outline.NamedOnly)

	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.annotate_files", defaults.Output.AnnotateFiles)

	v.SetDefault("paths.include", defaults.Paths.Include)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)

	v.SetDefault("processing.workers", defaults.Processing.Workers)
	v.SetDefault("processing.cache_size", defaults.Processing.CacheSize)

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir, "").Load()
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return LoadConfigFromDir(wd)
}
