package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/ylchen07/ghi/internal/auth"
	"github.com/ylchen07/ghi/internal/repo"
)

// Config represents the full application configuration loaded from file/env.
type Config struct {
	GitHub GitHubConfig `mapstructure:"github"`
	GHI    GHIConfig    `mapstructure:"ghi"`
	Log    LogConfig    `mapstructure:"log"`

	v        *viper.Viper
	fallback auth.Credentials
}

// GitHubConfig holds the account used to talk to the issues API.
type GitHubConfig struct {
	User  string `mapstructure:"user"`
	Token string `mapstructure:"token"`
}

// GHIConfig holds client options.
type GHIConfig struct {
	Repository string `mapstructure:"repository"`
	Secure     bool   `mapstructure:"secure"`
}

// LogConfig selects the logger level and output format.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the provided directory or file and from
// GHI_* environment variables. Credentials missing from both are looked up in
// the global git config and then in .netrc.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if path != "" {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			v.AddConfigPath(path)
		} else {
			v.SetConfigFile(path)
		}
	} else {
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ghi")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("github.user", "")
	v.SetDefault("github.token", "")
	v.SetDefault("ghi.repository", "")
	v.SetDefault("ghi.secure", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "auto")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	cfg := &Config{v: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if err := cfg.loadFallbackCredentials(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "":
		c.Log.Level = "info"
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log.level %q", c.Log.Level)
	}

	switch strings.ToLower(c.Log.Format) {
	case "":
		c.Log.Format = "auto"
	case "auto", "json", "text":
	default:
		return fmt.Errorf("config: unknown log.format %q", c.Log.Format)
	}

	if c.GHI.Repository != "" {
		if _, _, err := SplitRepository(c.GHI.Repository); err != nil {
			return err
		}
	}

	return nil
}

// loadFallbackCredentials fills the lookup chain behind viper: global git
// config first, then .netrc. Both are read once.
func (c *Config) loadFallbackCredentials() error {
	creds, err := repo.GlobalCredentials()
	if err != nil {
		slog.Default().Debug("git config credentials unavailable", slog.Any("error", err))
		creds = auth.Credentials{}
	}

	if creds.Login == "" || creds.Token == "" {
		netrc, err := netrcCredentials(githubMachine)
		if err != nil {
			return err
		}
		if creds.Login == "" {
			creds.Login = netrc.Login
		}
		if creds.Token == "" {
			creds.Token = netrc.Token
		}
	}

	c.fallback = creds
	return nil
}

// Credentials returns a provider that re-reads github.user and github.token on
// every call, so environment changes take effect on the next request.
func (c *Config) Credentials() auth.Provider {
	return auth.Func(func() auth.Credentials {
		creds := auth.Credentials{Login: c.GitHub.User, Token: c.GitHub.Token}
		if c.v != nil {
			creds = auth.Credentials{
				Login: c.v.GetString("github.user"),
				Token: c.v.GetString("github.token"),
			}
		}
		if creds.Login == "" {
			creds.Login = c.fallback.Login
		}
		if creds.Token == "" {
			creds.Token = c.fallback.Token
		}
		return creds
	})
}

// SplitRepository parses "owner/repository".
func SplitRepository(s string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("config: repository %q must be owner/name", s)
	}
	return owner, name, nil
}
