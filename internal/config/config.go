// Package config reads and writes the repository settings file, a git-style
// INI document stored at .gitodb/config.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zlib"
	"gopkg.in/ini.v1"
)

const (
	CoreSection    = "core"
	CompressionKey = "compression"
	LogLevelKey    = "loglevel"
)

// ErrInvalidKey reports a key not written as <section>.<name>.
var ErrInvalidKey = errors.New("invalid config key")

// Config holds the parsed settings along with the underlying INI document.
type Config struct {
	// Compression is the zlib level used when writing objects (-1 through 9).
	Compression int

	// LogLevel is the minimum level the CLI logs at.
	LogLevel slog.Level

	path string
	file *ini.File
}

func loadOptions() ini.LoadOptions {
	return ini.LoadOptions{
		// Git treats section and key names case-insensitively.
		Insensitive: true,
		// A missing file yields defaults.
		Loose: true,
	}
}

// Default returns settings for a fresh repository, bound to path.
func Default(path string) *Config {
	cfg := &Config{
		Compression: zlib.DefaultCompression,
		LogLevel:    slog.LevelInfo,
		path:        path,
		file:        ini.Empty(loadOptions()),
	}
	core := cfg.file.Section(CoreSection)
	core.Key(CompressionKey).SetValue(strconv.Itoa(cfg.Compression))
	core.Key(LogLevelKey).SetValue(strings.ToLower(cfg.LogLevel.String()))
	return cfg
}

// Load reads the config file at path. Unset keys take their defaults.
func Load(path string) (*Config, error) {
	file, err := ini.LoadSources(loadOptions(), path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	cfg := &Config{
		Compression: zlib.DefaultCompression,
		LogLevel:    slog.LevelInfo,
		path:        path,
		file:        file,
	}
	if err := cfg.parse(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) parse() error {
	core := cfg.file.Section(CoreSection)

	if core.HasKey(CompressionKey) {
		level, err := parseCompression(core.Key(CompressionKey).String())
		if err != nil {
			return err
		}
		cfg.Compression = level
	}

	if core.HasKey(LogLevelKey) {
		level, err := parseLogLevel(core.Key(LogLevelKey).String())
		if err != nil {
			return err
		}
		cfg.LogLevel = level
	}

	return nil
}

func parseCompression(value string) (int, error) {
	level, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || level < zlib.HuffmanOnly || level > zlib.BestCompression {
		return 0, fmt.Errorf("%s.%s must be an integer between %d and %d, got %q",
			CoreSection, CompressionKey, zlib.HuffmanOnly, zlib.BestCompression, value)
	}
	return level, nil
}

func parseLogLevel(value string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return 0, fmt.Errorf("%s.%s: %w", CoreSection, LogLevelKey, err)
	}
	return level, nil
}

// Path returns the file the config was loaded from or will be saved to.
func (cfg *Config) Path() string {
	return cfg.path
}

// Get returns the raw value of a <section>.<name> key.
func (cfg *Config) Get(key string) (string, error) {
	section, name, err := splitKey(key)
	if err != nil {
		return "", err
	}

	sec, err := cfg.file.GetSection(section)
	if err != nil || !sec.HasKey(name) {
		return "", fmt.Errorf("config key not found: %s", key)
	}
	return sec.Key(name).String(), nil
}

// Set updates a key in memory. Keys under core are validated before they are applied.
func (cfg *Config) Set(key, value string) error {
	section, name, err := splitKey(key)
	if err != nil {
		return err
	}

	_, sectionErr := cfg.file.GetSection(section)
	hadSection := sectionErr == nil

	sec := cfg.file.Section(section)
	hadKey := sec.HasKey(name)
	previous := ""
	if hadKey {
		previous = sec.Key(name).String()
	}
	sec.Key(name).SetValue(value)

	if err := cfg.parse(); err != nil {
		switch {
		case hadKey:
			sec.Key(name).SetValue(previous)
		case hadSection:
			sec.DeleteKey(name)
		default:
			cfg.file.DeleteSection(section)
		}
		return err
	}
	return nil
}

// Save writes the document back to its path.
func (cfg *Config) Save() error {
	if err := cfg.file.SaveTo(cfg.path); err != nil {
		return fmt.Errorf("failed to save config %s: %w", cfg.path, err)
	}
	return nil
}

func splitKey(key string) (string, string, error) {
	section, name, ok := strings.Cut(key, ".")
	if !ok || section == "" || name == "" {
		return "", "", fmt.Errorf("%w: %q, want <section>.<name>", ErrInvalidKey, key)
	}
	return section, name, nil
}
