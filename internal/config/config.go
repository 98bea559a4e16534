package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for una.
type Config struct {
	Subreddit string         `toml:"subreddit"`
	BaseDir   string         `toml:"base_dir"`
	LogDir    string         `toml:"log_dir"`
	Archive   ArchiveConfig  `toml:"archive"`
	Source    SourceConfig   `toml:"source"`
	Store     StoreConfig    `toml:"store"`
	Database  DatabaseConfig `toml:"database"`
}

// ArchiveConfig holds scheduling settings for the daemon.
type ArchiveConfig struct {
	IntervalHours int `toml:"interval_hours"` // defaults to 8
}

// SourceConfig represents configuration for the notes source.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type SourceConfig struct {
	Type string `toml:"type"` // "reddit" or "file"

	// Reddit-specific fields (only used when Type == "reddit")
	ClientID     string `toml:"client_id,omitempty"`
	ClientSecret string `toml:"client_secret,omitempty"`
	RefreshToken string `toml:"refresh_token,omitempty"`
	UserAgent    string `toml:"user_agent,omitempty"`

	// File-specific fields (only used when Type == "file")
	DocumentPath string `toml:"document_path,omitempty"`
}

// StoreConfig represents configuration for the archive store.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type StoreConfig struct {
	Type string `toml:"type"` // "filesystem", "memory", or "s3"

	// Filesystem-specific fields (only used when Type == "filesystem")
	ArchivePath string `toml:"archive_path,omitempty"`

	// S3-specific fields (only used when Type == "s3")
	S3Bucket          string `toml:"s3_bucket,omitempty"`
	S3Key             string `toml:"s3_key,omitempty"`
	S3Region          string `toml:"s3_region,omitempty"`
	S3AccessKeyID     string `toml:"s3_access_key_id,omitempty"`
	S3SecretAccessKey string `toml:"s3_secret_access_key,omitempty"`
}

// DatabaseConfig represents configuration for the cycle-history database.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type DatabaseConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// NewConfig creates a new Config for the given subreddit with default paths
// and backends rooted at baseDir.
func NewConfig(subreddit, baseDir string) *Config {
	return &Config{
		Subreddit: subreddit,
		BaseDir:   baseDir,
		LogDir:    filepath.Join(baseDir, "log"),
		Archive: ArchiveConfig{
			IntervalHours: 8,
		},
		Source: SourceConfig{
			Type:      "reddit",
			UserAgent: "linux:una:v0.1",
		},
		Store: StoreConfig{
			Type:        "filesystem",
			ArchivePath: filepath.Join(baseDir, "archived_usernotes.json"),
		},
		Database: DatabaseConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "data"),
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
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

// writeToFile writes a Config to the specified file path.
// This is an internal helper and should not be exported.
func writeToFile(path string, cfg *Config) error {
	// Ensure the directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
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

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
