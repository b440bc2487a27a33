// internal/config/config.go
//
// This package handles configuration and the .propseller directory structure.
// Every user of the client gets a .propseller/ folder in their home directory
// holding config.yaml, the persisted session credential and the activity log.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// AppDir is the name of the directory we create in the user's home
	AppDir = ".propseller"

	defaultBaseURL        = "https://goswitch.app/api"
	defaultTimeoutSeconds = 10
)

const defaultConfigYAML = `# propseller client configuration
version: 1

api:
  base_url: https://goswitch.app/api
  timeout_seconds: 10

# Unsigned upload settings for the media cloud. Presets come from the
# marketplace operators; without them media upload is disabled.
media:
  cloud_name: ""
  image_upload_preset: ""
  video_upload_preset: ""

# Codes the identity service expects at sign-in.
device:
  profile_type: 1   # seller
  platform: 5       # android
`

// APIConfig holds the settings for reaching the marketplace REST services.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// MediaConfig holds unsigned-upload settings for the object storage cloud.
type MediaConfig struct {
	CloudName         string `yaml:"cloud_name"`
	ImageUploadPreset string `yaml:"image_upload_preset"`
	VideoUploadPreset string `yaml:"video_upload_preset"`
}

// DeviceConfig carries the numeric codes the identity service wants with a
// sign-in request.
type DeviceConfig struct {
	ProfileType int    `yaml:"profile_type"`
	Platform    int    `yaml:"platform"`
	Token       string `yaml:"token,omitempty"`
}

// FileConfig models .propseller/config.yaml.
type FileConfig struct {
	Version int          `yaml:"version"`
	API     APIConfig    `yaml:"api"`
	Media   MediaConfig  `yaml:"media"`
	Device  DeviceConfig `yaml:"device"`
}

// Config holds the runtime configuration for the client.
type Config struct {
	// HomeDir is the directory the app folder lives under (usually $HOME)
	HomeDir string

	// AppHomeDir is HomeDir/.propseller
	AppHomeDir string

	File FileConfig
}

// InitAppDir creates the .propseller directory structure under the given
// home directory. Called once at startup, before anything else touches disk.
//
// Structure created:
// .propseller/
// ├── logs/      <- activity log
// └── state/     <- persisted credential, cached drafts
func InitAppDir(homeDir string) error {
	appDir := filepath.Join(homeDir, AppDir)

	dirs := []string{
		filepath.Join(appDir, "logs"),
		filepath.Join(appDir, "state"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	return ensureConfigFile(filepath.Join(appDir, "config.yaml"))
}

// New creates a Config populated from .propseller/config.yaml, falling back
// to defaults when the file is absent.
func New(homeDir string) (*Config, error) {
	if strings.TrimSpace(homeDir) == "" {
		return nil, fmt.Errorf("config: home directory is required")
	}

	cfg := &Config{
		HomeDir:    homeDir,
		AppHomeDir: filepath.Join(homeDir, AppDir),
		File:       defaultFileConfig(),
	}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.AppHomeDir, "logs")
}

// StateDir returns the path to the state directory.
func (c *Config) StateDir() string {
	return filepath.Join(c.AppHomeDir, "state")
}

// CredentialPath returns the file that persists the bearer credential.
func (c *Config) CredentialPath() string {
	return filepath.Join(c.StateDir(), "credential.json")
}

// ConfigPath returns the on-disk location of config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.AppHomeDir, "config.yaml")
}

func (c *Config) loadFile() error {
	path := c.ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed FileConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.File = parsed
	return nil
}

func defaultFileConfig() FileConfig {
	return FileConfig{
		Version: 1,
		API: APIConfig{
			BaseURL:        defaultBaseURL,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Device: DeviceConfig{
			ProfileType: 1,
			Platform:    5,
		},
	}
}

func (fc *FileConfig) applyDefaults() {
	if fc.Version == 0 {
		fc.Version = 1
	}
	if strings.TrimSpace(fc.API.BaseURL) == "" {
		fc.API.BaseURL = defaultBaseURL
	}
	if fc.API.TimeoutSeconds <= 0 {
		fc.API.TimeoutSeconds = defaultTimeoutSeconds
	}
	if fc.Device.ProfileType == 0 {
		fc.Device.ProfileType = 1
	}
	if fc.Device.Platform == 0 {
		fc.Device.Platform = 5
	}
}

func (fc *FileConfig) normalize() {
	fc.API.BaseURL = strings.TrimRight(strings.TrimSpace(fc.API.BaseURL), "/")
	fc.Media.CloudName = strings.TrimSpace(fc.Media.CloudName)
	fc.Media.ImageUploadPreset = strings.TrimSpace(fc.Media.ImageUploadPreset)
	fc.Media.VideoUploadPreset = strings.TrimSpace(fc.Media.VideoUploadPreset)
	fc.Device.Token = strings.TrimSpace(fc.Device.Token)
}

func (fc FileConfig) validate() error {
	if fc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	parsed, err := url.Parse(fc.API.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL")
	}
	if fc.API.TimeoutSeconds < 1 {
		return fmt.Errorf("api.timeout_seconds must be >= 1")
	}
	return nil
}

func ensureConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
