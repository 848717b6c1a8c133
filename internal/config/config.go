package config

import (
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the optional settings for capsule. The filesystem layout is
// fixed and deliberately not part of it.
type Config struct {
	// Compression is the zip method for file entries: store, deflate or zstd.
	Compression string `toml:"compression" validate:"omitempty,oneof=store deflate zstd"`

	// LogLevel is the minimum level written to stderr and the log file.
	LogLevel string `toml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// LogDir, when set, receives capsule.log in addition to stderr.
	LogDir string `toml:"log_dir,omitempty"`

	// Progress enables the terminal progress bar.
	Progress bool `toml:"progress"`

	// Ignore lists patterns left out of new capsules.
	Ignore []string `toml:"ignore,omitempty" validate:"dive,required"`
}

// NewConfig returns the defaults: uncompressed capsules, warnings only,
// progress bar on.
func NewConfig() *Config {
	return &Config{
		Compression: "store",
		LogLevel:    "warn",
		Progress:    true,
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from r on top of the defaults and validates it.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	cfg := NewConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Write encodes a Config to w.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Load is ReadFromFile, except that a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg, err := ReadFromFile(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return NewConfig(), nil
	}
	return cfg, err
}

func writeToFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init writes cfg to path. It refuses to overwrite an existing file.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := Validate(cfg); err != nil {
		return err
	}
	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
