package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points every credential source at an empty temp home.
func isolate(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("NETRC", filepath.Join(home, ".netrc"))
	for _, key := range []string{"GHI_GITHUB_USER", "GHI_GITHUB_TOKEN", "GHI_GHI_REPOSITORY", "GHI_GHI_SECURE", "GHI_LOG_LEVEL", "GHI_LOG_FORMAT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "info" || cfg.Log.Format != "auto" {
		t.Fatalf("unexpected log defaults: %+v", cfg.Log)
	}
	if cfg.GHI.Secure {
		t.Fatalf("secure should default to false")
	}
	if got := cfg.Credentials(); got.Login() != "" || got.Token() != "" {
		t.Fatalf("expected anonymous credentials, got %q/%q", got.Login(), got.Token())
	}
}

func TestLoadFromFile(t *testing.T) {
	isolate(t)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.yaml"), `github:
  user: stephencelis
  token: from-file
ghi:
  repository: stephencelis/ghi
  secure: true
log:
  level: debug
  format: json
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GHI.Repository != "stephencelis/ghi" || !cfg.GHI.Secure {
		t.Fatalf("unexpected ghi config: %+v", cfg.GHI)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}

	creds := cfg.Credentials()
	if creds.Login() != "stephencelis" || creds.Token() != "from-file" {
		t.Fatalf("unexpected credentials %q/%q", creds.Login(), creds.Token())
	}
}

func TestLoadExplicitFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "ghi.yaml")
	writeFile(t, path, "ghi:\n  repository: o/r\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.GHI.Repository != "o/r" {
		t.Fatalf("unexpected repository %q", cfg.GHI.Repository)
	}
}

func TestCredentialsFollowEnvironment(t *testing.T) {
	isolate(t)

	t.Setenv("GHI_GITHUB_USER", "stephencelis")
	t.Setenv("GHI_GITHUB_TOKEN", "first")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	creds := cfg.Credentials()
	if creds.Token() != "first" {
		t.Fatalf("expected first token, got %q", creds.Token())
	}

	t.Setenv("GHI_GITHUB_TOKEN", "rotated")
	if creds.Token() != "rotated" {
		t.Fatalf("expected rotated token, got %q", creds.Token())
	}
	if creds.Login() != "stephencelis" {
		t.Fatalf("unexpected login %q", creds.Login())
	}
}

func TestCredentialFallbackOrder(t *testing.T) {
	home := isolate(t)

	writeFile(t, filepath.Join(home, ".gitconfig"), "[github]\n\tuser = git-user\n")
	writeFile(t, filepath.Join(home, ".netrc"), "machine github.com login netrc-user password netrc-token\n")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	creds := cfg.Credentials()
	if creds.Login() != "git-user" {
		t.Fatalf("git config should win for login, got %q", creds.Login())
	}
	if creds.Token() != "netrc-token" {
		t.Fatalf("netrc should fill the token, got %q", creds.Token())
	}

	t.Setenv("GHI_GITHUB_TOKEN", "env-token")
	if creds.Token() != "env-token" {
		t.Fatalf("environment should win over fallbacks, got %q", creds.Token())
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "empty fills defaults", cfg: Config{}},
		{name: "bad level", cfg: Config{Log: LogConfig{Level: "trace"}}, wantErr: true},
		{name: "bad format", cfg: Config{Log: LogConfig{Format: "xml"}}, wantErr: true},
		{name: "bad repository", cfg: Config{GHI: GHIConfig{Repository: "ghi"}}, wantErr: true},
		{name: "good repository", cfg: Config{GHI: GHIConfig{Repository: "stephencelis/ghi"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := tc.cfg
			err := cfg.validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestSplitRepository(t *testing.T) {
	t.Parallel()

	owner, name, err := SplitRepository("stephencelis/ghi")
	if err != nil || owner != "stephencelis" || name != "ghi" {
		t.Fatalf("SplitRepository() = %q, %q, %v", owner, name, err)
	}

	for _, bad := range []string{"", "ghi", "/ghi", "o/", "a/b/c"} {
		if _, _, err := SplitRepository(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
