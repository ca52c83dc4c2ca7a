package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ylchen07/ghi/internal/auth"
)

func TestParseNetrc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    map[string]netrcEntry
	}{
		{
			name: "multi-line entry",
			content: `machine github.com
  login stephencelis
  password token`,
			want: map[string]netrcEntry{
				"github.com": {Machine: "github.com", Login: "stephencelis", Password: "token"},
			},
		},
		{
			name:    "single line format",
			content: `machine github.com login stephencelis password token account personal`,
			want: map[string]netrcEntry{
				"github.com": {Machine: "github.com", Login: "stephencelis", Password: "token", Account: "personal"},
			},
		},
		{
			name: "comments and default",
			content: `# personal
machine github.com login me password one # trailing comment

default
  login anon
  password none`,
			want: map[string]netrcEntry{
				"github.com": {Machine: "github.com", Login: "me", Password: "one"},
				"default":    {Machine: "default", Login: "anon", Password: "none"},
			},
		},
		{
			name: "macdef body is skipped",
			content: `macdef init
machine evil.example.com login x password y

machine github.com login me password one`,
			want: map[string]netrcEntry{
				"github.com": {Machine: "github.com", Login: "me", Password: "one"},
			},
		},
		{
			name: "first entry for a machine wins",
			content: `machine github.com login first password a
machine github.com login second password b`,
			want: map[string]netrcEntry{
				"github.com": {Machine: "github.com", Login: "first", Password: "a"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseNetrc(strings.NewReader(tt.content))
			if err != nil {
				t.Fatalf("parseNetrc() error = %v", err)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("parseNetrc() got %d entries, want %d: %+v", len(got), len(tt.want), got)
			}

			for machine, want := range tt.want {
				if got[machine] != want {
					t.Errorf("machine %q: got %+v, want %+v", machine, got[machine], want)
				}
			}
		})
	}
}

func TestNetrcCredentials(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    auth.Credentials
	}{
		{
			name:    "exact host",
			content: "machine github.com login stephencelis password token",
			want:    auth.Credentials{Login: "stephencelis", Token: "token"},
		},
		{
			name:    "default fallback",
			content: "machine other.example.com login x password y\ndefault login anon password none",
			want:    auth.Credentials{Login: "anon", Token: "none"},
		},
		{
			name:    "no match",
			content: "machine other.example.com login x password y",
			want:    auth.Credentials{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".netrc")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("write netrc: %v", err)
			}
			t.Setenv("NETRC", path)

			got, err := netrcCredentials(githubMachine)
			if err != nil {
				t.Fatalf("netrcCredentials() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("netrcCredentials() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNetrcCredentialsMissingFile(t *testing.T) {
	t.Setenv("NETRC", filepath.Join(t.TempDir(), "absent"))

	got, err := netrcCredentials(githubMachine)
	if err != nil {
		t.Fatalf("netrcCredentials() error = %v", err)
	}
	if got != (auth.Credentials{}) {
		t.Fatalf("expected empty credentials, got %+v", got)
	}
}
