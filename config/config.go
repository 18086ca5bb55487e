package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/wricardo/mcp-training/splinemcp/openai"
	"github.com/wricardo/mcp-training/splinemcp/spline"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

const (
	DefaultPort    = 3000
	DefaultTimeout = 30 * time.Second
	// DefaultPath is where the launcher looks when --config is not given.
	DefaultPath = "config/.env"
)

// Duration decodes from TOML strings such as "30s".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for Duration.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Ngrok controls the optional public tunnel.
type Ngrok struct {
	Enabled   bool   `toml:"enabled"`
	AuthToken string `toml:"auth_token"`
	Domain    string `toml:"domain"`
}

// Config is the resolved runtime configuration.
type Config struct {
	APIKey    string   `toml:"api_key"`
	APIURL    string   `toml:"api_url"`
	OpenAIKey string   `toml:"openai_api_key"`
	OpenAIURL string   `toml:"openai_api_url"`
	Port      int      `toml:"port"`
	Timeout   Duration `toml:"timeout"`
	Ngrok     Ngrok    `toml:"ngrok"`

	// Source is the file the values were read from, empty when only the
	// environment was used.
	Source string `toml:"-"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	return &Config{
		APIURL:    spline.DefaultBaseURL,
		OpenAIURL: openai.DefaultBaseURL,
		Port:      DefaultPort,
		Timeout:   Duration(DefaultTimeout),
	}
}

// Load resolves the configuration.
//
// The file at path is used when it exists, otherwise ./.env in the working
// directory, otherwise nothing. Files ending in .toml are decoded as TOML,
// everything else as a dotenv file. Process environment variables override
// file values. A missing file is not an error; an unreadable or malformed
// one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	source, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	fileEnv := map[string]string{}
	if source != "" {
		if strings.EqualFold(filepath.Ext(source), ".toml") {
			if _, err := toml.DecodeFile(source, cfg); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, source, err)
			}
		} else {
			fileEnv, err = godotenv.Read(source)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, source, err)
			}
		}
		cfg.Source = source
	}

	if err := cfg.apply(lookupFunc(fileEnv)); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolvePath picks the file to read. An explicit path that does not exist
// falls through to ./.env.
func resolvePath(path string) (string, error) {
	candidates := []string{}
	if path != "" {
		candidates = append(candidates, path)
	}
	candidates = append(candidates, ".env")

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", fmt.Errorf("failed to stat config file %s: %w", candidate, err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%w: %s is a directory", ErrInvalidConfig, candidate)
		}
		return candidate, nil
	}
	return "", nil
}

// Check reports ErrConfigNotFound when path does not exist.
func Check(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return err
	}
	return nil
}

// lookupFunc prefers the process environment over values read from a file.
func lookupFunc(fileEnv map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok && v != ""
	}
}

func (c *Config) apply(lookup func(string) (string, bool)) error {
	if v, ok := lookup("SPLINE_API_KEY"); ok {
		c.APIKey = v
	}
	if v, ok := lookup("SPLINE_API_URL"); ok {
		c.APIURL = v
	}
	if v, ok := lookup("OPENAI_API_KEY"); ok {
		c.OpenAIKey = v
	}
	if v, ok := lookup("OPENAI_API_URL"); ok {
		c.OpenAIURL = v
	}
	if v, ok := lookup("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: PORT %q is not a number", ErrInvalidConfig, v)
		}
		c.Port = port
	}
	if v, ok := lookup("SPLINE_API_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: SPLINE_API_TIMEOUT: %v", ErrInvalidConfig, err)
		}
		c.Timeout = Duration(d)
	}
	if v, ok := lookup("NGROK_ENABLED"); ok {
		c.Ngrok.Enabled = v == "true" || v == "1"
	}
	if v, ok := lookup("NGROK_AUTHTOKEN"); ok {
		c.Ngrok.AuthToken = v
	} else if v, ok := lookup("NGROK_AUTH_TOKEN"); ok {
		c.Ngrok.AuthToken = v
	}
	if v, ok := lookup("NGROK_DOMAIN"); ok {
		c.Ngrok.Domain = v
	}
	return nil
}

// Validate checks the values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if u, err := url.Parse(c.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: SPLINE_API_URL %q is not an absolute URL", ErrInvalidConfig, c.APIURL)
	}
	if c.Timeout.Duration() < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidConfig)
	}
	return nil
}

// WarnMissing logs the credentials that are not set.
func (c *Config) WarnMissing(logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	if c.APIKey == "" {
		logger.Println("Warning: SPLINE_API_KEY is not set; Spline API calls will be rejected")
	}
}

// SplineConfig builds the client configuration for the Spline API.
func (c *Config) SplineConfig() spline.Config {
	return spline.Config{
		BaseURL: c.APIURL,
		APIKey:  c.APIKey,
		Timeout: c.Timeout.Duration(),
	}
}

// OpenAIConfig builds the client configuration for OpenAI.
func (c *Config) OpenAIConfig() openai.Config {
	return openai.Config{
		BaseURL: c.OpenAIURL,
		APIKey:  c.OpenAIKey,
	}
}
