package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/devbush/ytgrab/internal/domain"
	"gopkg.in/yaml.v3"
)

// AppName is used for every per-user directory
const AppName = "ytgrab"

// Config represents the application configuration
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Paths    PathsConfig    `yaml:"paths"`
}

// DefaultsConfig holds default values
type DefaultsConfig struct {
	Format       string `yaml:"format"`
	AudioQuality string `yaml:"audio_quality"`
	Language     string `yaml:"language"`
	DownloadDir  string `yaml:"download_dir"`
	Parallel     int    `yaml:"parallel"`
	CacheTTL     string `yaml:"cache_ttl"`
}

// PathsConfig holds custom path overrides
type PathsConfig struct {
	YtDlp  string `yaml:"yt_dlp"`
	FFmpeg string `yaml:"ffmpeg"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Format:       string(domain.DefaultFormat),
			AudioQuality: domain.DefaultAudioQuality,
			Language:     "auto",
			DownloadDir:  "",
			Parallel:     1,
			CacheTTL:     "24h",
		},
	}
}

// DataDir returns the application data directory
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// BinDir returns the directory bundled tools are installed to
func BinDir() string {
	return filepath.Join(DataDir(), "bin")
}

// CacheDir returns the cache directory
func CacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// ProbeCacheDir returns the directory holding cached URL analyses
func ProbeCacheDir() string {
	return filepath.Join(CacheDir(), "probe")
}

// ConfigPath returns the config file path
func ConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// DefaultDownloadDir returns the user's download folder
func DefaultDownloadDir() string {
	if xdg.UserDirs.Download != "" {
		return xdg.UserDirs.Download
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Downloads")
}

// EnsureDirs creates all required directories
func EnsureDirs() error {
	dirs := []string{DataDir(), BinDir(), CacheDir(), filepath.Dir(ConfigPath())}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Load reads config from file, returns default if not exists
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// LoadDefault loads config from default path and applies environment overrides
func LoadDefault() (*Config, error) {
	cfg, err := Load(ConfigPath())
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// Save writes config to file atomically
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := writeFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveDefault saves config to default path
func (c *Config) SaveDefault() error {
	return c.Save(ConfigPath())
}

// ApplyEnv overrides values from YTGRAB_* environment variables
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("YTGRAB_DOWNLOAD_DIR"); ok && v != "" {
		c.Defaults.DownloadDir = v
	}
	if v, ok := lookup("YTGRAB_FORMAT"); ok && v != "" {
		c.Defaults.Format = v
	}
	if v, ok := lookup("YTGRAB_LANGUAGE"); ok && v != "" {
		c.Defaults.Language = v
	}
}

// GetFormat returns the configured default format
func (c *Config) GetFormat() (domain.Format, error) {
	if c.Defaults.Format == "" {
		return domain.DefaultFormat, nil
	}
	return domain.ParseFormat(c.Defaults.Format)
}

// GetCacheTTL returns the cache TTL as a duration
func (c *Config) GetCacheTTL() (time.Duration, error) {
	return ParseDuration(c.Defaults.CacheTTL)
}

// HasDownloadDir reports whether the user picked a download directory
func (c *Config) HasDownloadDir() bool {
	return c.Defaults.DownloadDir != ""
}

// Keys lists the settable keys in dotted form
func Keys() []string {
	return []string{
		"defaults.format",
		"defaults.audio_quality",
		"defaults.language",
		"defaults.download_dir",
		"defaults.parallel",
		"defaults.cache_ttl",
		"paths.yt_dlp",
		"paths.ffmpeg",
	}
}

// Set assigns a value by dotted key, validating it first
func (c *Config) Set(key, value string) error {
	switch strings.ToLower(key) {
	case "defaults.format", "format":
		f, err := domain.ParseFormat(value)
		if err != nil {
			return err
		}
		c.Defaults.Format = string(f)
	case "defaults.audio_quality", "audio_quality":
		c.Defaults.AudioQuality = value
	case "defaults.language", "language":
		c.Defaults.Language = value
	case "defaults.download_dir", "download_dir":
		abs, err := filepath.Abs(value)
		if err != nil {
			return err
		}
		c.Defaults.DownloadDir = abs
	case "defaults.parallel", "parallel":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("parallel must be a positive integer, got %q", value)
		}
		c.Defaults.Parallel = n
	case "defaults.cache_ttl", "cache_ttl":
		if _, err := ParseDuration(value); err != nil {
			return err
		}
		c.Defaults.CacheTTL = value
	case "paths.yt_dlp", "yt_dlp":
		c.Paths.YtDlp = value
	case "paths.ffmpeg", "ffmpeg":
		c.Paths.FFmpeg = value
	default:
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}

var durationPattern = regexp.MustCompile(`^(\d+)(m|h|d)$`)

// ParseDuration parses duration strings like "30m", "24h", "7d"
func ParseDuration(s string) (time.Duration, error) {
	matches := durationPattern.FindStringSubmatch(s)
	if len(matches) != 3 {
		return 0, fmt.Errorf("invalid duration format: %s (use format like 24h, 7d)", s)
	}

	value, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch unit {
	case "m":
		return time.Duration(value) * time.Minute, nil
	case "h":
		return time.Duration(value) * time.Hour, nil
	case "d":
		return time.Duration(value) * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %s", unit)
	}
}
