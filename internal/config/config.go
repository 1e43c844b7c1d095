// Package config loads application configuration from environment variables
// and an optional YAML profile.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// TokenEnvVar is the primary environment variable holding the GitHub token.
const TokenEnvVar = "MERGEMETRICS_GITHUB_TOKEN"

// ErrMissingToken is returned when no GitHub token is configured and none can be prompted for.
var ErrMissingToken = errors.New(TokenEnvVar + " is not set")

// Config holds the application configuration.
type Config struct {
	GitHubToken  string
	DefaultOwner string
	LogLevel     slog.Level
	ProfilePath  string
	Profile      Profile
}

// Profile is the optional YAML file with defaults for the github command.
type Profile struct {
	DefaultOwner string   `yaml:"default_owner"`
	Repos        []string `yaml:"repos"`
	Labels       []string `yaml:"labels"`
}

// HasGitHubToken returns true when a token was found in the environment.
func (c *Config) HasGitHubToken() bool {
	return c.GitHubToken != ""
}

// Load reads configuration from environment variables and returns a validated Config.
// MERGEMETRICS_GITHUB_TOKEN (falling back to GITHUB_TOKEN) is optional here; commands
// that reach GitHub ask for it when absent. Optional variables:
// MERGEMETRICS_DEFAULT_OWNER, MERGEMETRICS_LOG_LEVEL (warn), MERGEMETRICS_CONFIG.
func Load() (*Config, error) {
	token := os.Getenv(TokenEnvVar)
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}

	logLevel := slog.LevelWarn
	if v, ok := os.LookupEnv("MERGEMETRICS_LOG_LEVEL"); ok && v != "" {
		if err := logLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("MERGEMETRICS_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	var profile Profile
	profilePath := os.Getenv("MERGEMETRICS_CONFIG")
	if profilePath != "" {
		p, err := LoadProfile(profilePath)
		if err != nil {
			return nil, err
		}
		profile = *p
	}

	defaultOwner := strings.TrimSpace(os.Getenv("MERGEMETRICS_DEFAULT_OWNER"))
	if defaultOwner == "" {
		defaultOwner = profile.DefaultOwner
	}

	return &Config{
		GitHubToken:  token,
		DefaultOwner: defaultOwner,
		LogLevel:     logLevel,
		ProfilePath:  profilePath,
		Profile:      profile,
	}, nil
}

// LoadProfile reads and parses the YAML profile at path.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}

	return &profile, nil
}
