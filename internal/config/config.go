// Package config loads loglady configuration from layered sources using koanf.
// Priority: environment variables (LOGLADY_*) > config file > defaults. A .env
// file in the working directory feeds the environment before the env layer is
// read, so explicitly exported variables still win over .env entries. Config
// files are YAML by default; a .json extension switches the parser.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables as loglady configuration.
// LOGLADY_GITLAB_TOKEN maps to gitlab.token, LOGLADY_SLACK_WEBHOOK_URL to
// slack.webhook_url, and so on: the first underscore after the prefix
// becomes the section separator.
const EnvPrefix = "LOGLADY_"

// Configuration holds everything loglady needs for a run.
type Configuration struct {
	GitLab GitLabConfig `koanf:"gitlab"`

	// Products maps a product name to the repositories whose issues belong
	// to it. Repositories are full URLs or paths relative to the GitLab URL.
	Products map[string][]string `koanf:"products"`

	Slack SlackConfig `koanf:"slack"`
}

// GitLabConfig identifies the instance and group to query.
type GitLabConfig struct {
	URL     string `koanf:"url" validate:"omitempty,url"`
	Token   string `koanf:"token"`
	GroupID string `koanf:"group_id"`
}

// SlackConfig configures optional webhook publishing.
type SlackConfig struct {
	WebhookURL string `koanf:"webhook_url" validate:"omitempty,url"`
	Channel    string `koanf:"channel"`
}

// Load builds the configuration from defaults, the given config file, and the
// environment. An empty path skips the file layer entirely; use
// ResolveConfigPath to discover the file first.
func Load(path string) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	// Best-effort: a missing .env is the normal case.
	_ = godotenv.Load()

	if path != "" {
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
	}

	if err := loadEnvironment(k); err != nil {
		return nil, err
	}

	return finalize(k, displayPath(path))
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadFile merges a config file, choosing the parser by extension.
func loadFile(k *koanf.Koanf, path string) error {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", path, err)
		}
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return err
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	return nil
}

// loadEnvironment merges LOGLADY_-prefixed environment variables.
func loadEnvironment(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("loading environment config: %w", err)
	}
	return nil
}

// envTransform converts environment variable names to config keys.
// Example: LOGLADY_GITLAB_GROUP_ID -> gitlab.group_id
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(s, "_", ".", 1)
}

// finalize unmarshals, validates, and normalizes the merged configuration.
func finalize(k *koanf.Koanf, source string) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, source); err != nil {
		return nil, err
	}

	// Trailing slashes on the instance URL break repository matching.
	cfg.GitLab.URL = strings.TrimRight(cfg.GitLab.URL, "/")

	return &cfg, nil
}

// displayPath names the configuration source in validation errors.
func displayPath(path string) string {
	if path == "" {
		return "config"
	}
	return path
}

// MissingGitLab lists the required GitLab settings that are not set, in
// config-key form. Empty means the configuration can reach the API.
func (c *Configuration) MissingGitLab() []string {
	var missing []string
	if c.GitLab.URL == "" {
		missing = append(missing, "gitlab.url")
	}
	if c.GitLab.Token == "" {
		missing = append(missing, "gitlab.token")
	}
	if c.GitLab.GroupID == "" {
		missing = append(missing, "gitlab.group_id")
	}
	return missing
}

// HasSlack reports whether a webhook is configured for publishing.
func (c *Configuration) HasSlack() bool {
	return c.Slack.WebhookURL != ""
}
