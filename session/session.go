// Package session resolves the cached configuration for the cube
// service: which installation to talk to and which credentials to use.
//
// Configuration lives in a YAML file (by default
// $XDG_CONFIG_HOME/cube/config.yml), can be overridden per key with
// CUBE_-prefixed environment variables, and is written by `cube login`.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	cubeclient "github.com/cubeworks/go-cube-client/pkg/client"
)

// EnvPrefix is the prefix for environment overrides, e.g. CUBE_BASE_URL.
const EnvPrefix = "CUBE"

// ConfigEnv names the environment variable that overrides the config
// file location.
const ConfigEnv = "CUBE_CONFIG"

const defaultTimeout = 30 * time.Second

// ErrNoConfig is returned when no cached configuration supplies a base
// URL and none was given on the command line.
var ErrNoConfig = errors.New("session: no cached configuration; run login or pass a url")

// Session holds the resolved settings used to reach a cube service.
// BaseURL may be overwritten after loading; the override is never
// persisted back to the cached configuration.
type Session struct {
	BaseURL      string
	Token        string
	APIKey       string
	APIKeyHeader string
	Timeout      time.Duration

	path string
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("session: locate config dir: %w", err)
	}
	return filepath.Join(dir, "cube", "config.yml"), nil
}

func configPath() (string, error) {
	if path := os.Getenv(ConfigEnv); path != "" {
		return path, nil
	}
	return DefaultPath()
}

// FromConfig loads the session from the cached configuration, honoring
// CUBE_CONFIG and CUBE_-prefixed environment overrides. It returns
// ErrNoConfig when no source yields a base URL.
func FromConfig() (*Session, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Load reads the session from the given config file plus environment
// overrides. A missing file is not an error as long as the environment
// supplies a base URL.
func Load(path string) (*Session, error) {
	// explicit .env loading; a missing file is fine
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("timeout", defaultTimeout)
	v.SetDefault("api_key_header", "Authorization")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
				return nil, fmt.Errorf("session: read config %s: %w", path, err)
			}
		}
	}

	s := &Session{
		BaseURL:      v.GetString("base_url"),
		Token:        v.GetString("token"),
		APIKey:       v.GetString("api_key"),
		APIKeyHeader: v.GetString("api_key_header"),
		Timeout:      v.GetDuration("timeout"),
		path:         path,
	}
	if s.BaseURL == "" {
		return s, ErrNoConfig
	}
	return s, nil
}

// Resolve loads the cached session and applies the optional base URL
// override. With an override, a missing cached configuration is not an
// error: credentials are simply absent. Without one, ErrNoConfig is
// surfaced.
func Resolve(override string) (*Session, error) {
	s, err := FromConfig()
	if err != nil {
		if !errors.Is(err, ErrNoConfig) || override == "" {
			return nil, err
		}
	}
	if override != "" {
		s.BaseURL = override
	}
	return s, nil
}

// Save persists the session to its config file, creating the directory
// if needed. Only login writes configuration; listing commands never do.
func (s *Session) Save() error {
	path := s.path
	if path == "" {
		var err error
		path, err = configPath()
		if err != nil {
			return err
		}
		s.path = path
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("session: create config dir: %w", err)
	}

	v := viper.New()
	v.Set("base_url", s.BaseURL)
	if s.Token != "" {
		v.Set("token", s.Token)
	}
	if s.APIKey != "" {
		v.Set("api_key", s.APIKey)
		v.Set("api_key_header", s.APIKeyHeader)
	}
	if s.Timeout > 0 && s.Timeout != defaultTimeout {
		v.Set("timeout", s.Timeout.String())
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("session: write config %s: %w", path, err)
	}
	return nil
}

// SaveTo persists the session to an explicit config file path.
func SaveTo(path string, s *Session) error {
	s.path = path
	return s.Save()
}

// Path returns the config file backing this session.
func (s *Session) Path() string {
	return s.path
}

// Client constructs a cube service client for this session, wiring the
// configured credential transport. Extra options are applied last so
// callers can override retry policy or logging.
func (s *Session) Client(opts ...cubeclient.ClientOption) (*cubeclient.Client, error) {
	if s.BaseURL == "" {
		return nil, ErrNoConfig
	}
	options := []cubeclient.ClientOption{
		cubeclient.WithBaseURL(s.BaseURL),
	}
	if s.Timeout > 0 {
		options = append(options, cubeclient.WithTimeout(s.Timeout))
	}
	switch {
	case s.Token != "":
		options = append(options, cubeclient.WithBearerToken(s.Token))
	case s.APIKey != "":
		options = append(options, cubeclient.WithAPIKey(s.APIKeyHeader, s.APIKey))
	}
	options = append(options, opts...)
	return cubeclient.New(options...)
}
