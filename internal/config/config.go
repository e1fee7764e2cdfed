// Package config loads application configuration from an optional config
// file and environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the client.
type Config struct {
	Backend BackendConfig `mapstructure:"backend"`
	UI      UIConfig      `mapstructure:"ui"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// BackendConfig points at the document Q&A backend.
type BackendConfig struct {
	BaseURL string `mapstructure:"base_url"`

	// AskTimeout bounds one question round trip; 0 waits forever.
	AskTimeout time.Duration `mapstructure:"ask_timeout"`

	// UploadTimeout bounds one document upload; 0 waits forever.
	UploadTimeout time.Duration `mapstructure:"upload_timeout"`
}

// UIConfig contains presentation-side settings.
type UIConfig struct {
	// DropzoneDir, when set, is watched for dropped candidate files.
	DropzoneDir string `mapstructure:"dropzone_dir"`
}

// StorageConfig contains persistence settings.
type StorageConfig struct {
	// TranscriptPath is the sqlite transcript location; empty disables
	// persistence (in-memory transcript).
	TranscriptPath string `mapstructure:"transcript_path"`
}

// LoggingConfig contains logger settings. The TUI owns the terminal, so
// logs go to a file, never to stdout.
type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	FilePath string `mapstructure:"file_path"`
}

// Load reads configuration from the given file (optional) and DOCCHAT_*
// environment variables, applying defaults for everything unset.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("backend.base_url", "http://localhost:5000")
	v.SetDefault("backend.ask_timeout", 2*time.Minute)
	v.SetDefault("backend.upload_timeout", 2*time.Minute)
	v.SetDefault("ui.dropzone_dir", "")
	v.SetDefault("storage.transcript_path", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file_path", "")

	v.SetEnvPrefix("DOCCHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
