package config

import (
	"github.com/mvp-joe/code-outline/internal/discovery"
	"github.com/mvp-joe/code-outline/internal/outline"
	"github.com/mvp-joe/code-outline/internal/syntax"
)

// Config represents the complete outline configuration.
// It can be loaded from .outline.yml with environment variable overrides.
type Config struct {
	Outline    OutlineConfig    `yaml:"outline" mapstructure:"outline"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Paths      PathsConfig      `yaml:"paths" mapstructure:"paths"`
	Processing ProcessingConfig `yaml:"processing" mapstructure:"processing"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// OutlineConfig controls what the extractor keeps.
type OutlineConfig struct {
	MaxDepth  int  `yaml:"max_depth" mapstructure:"max_depth"`   // 0 means unbounded
	NamedOnly bool `yaml:"named_only" mapstructure:"named_only"` // false keeps every node
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Format        string `yaml:"format" mapstructure:"format"`                 // text, json, yaml, compressed, dot
	AnnotateFiles bool   `yaml:"annotate_files" mapstructure:"annotate_files"` // stamp named nodes with their file
}

// PathsConfig defines which files to outline when a directory is given.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for source files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to ignore
}

// ProcessingConfig tunes the worker pool and cache.
type ProcessingConfig struct {
	Workers   int `yaml:"workers" mapstructure:"workers"`       // 0 means one per CPU
	CacheSize int `yaml:"cache_size" mapstructure:"cache_size"` // outlines kept in watch and mcp modes
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // text or json
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Outline: OutlineConfig{
			MaxDepth:  0,
			NamedOnly: true,
		},
		Output: OutputConfig{
			Format: "compressed",
		},
		Paths: PathsConfig{
			Include: discovery.IncludeForExtensions(syntax.NewLanguages().Extensions()),
			Ignore:  append([]string(nil), discovery.DefaultIgnore...),
		},
		Processing: ProcessingConfig{
			Workers:   0,
			CacheSize: 4096,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// OutlineOptions converts the outline section into extractor options.
func (c *Config) OutlineOptions() outline.Options {
	return outline.Options{
		MaxDepth:  outline.DepthLimit(c.Outline.MaxDepth),
		NamedOnly: c.Outline.NamedOnly,
	}
}
