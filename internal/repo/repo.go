// Package repo resolves the GitHub repository and credentials from the local
// git environment.
package repo

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"

	"github.com/ylchen07/ghi/internal/auth"
)

const (
	githubHost = "github.com"
	originName = "origin"
)

var (
	// ErrNoOrigin is returned when the repository has no usable origin remote.
	ErrNoOrigin = errors.New("repo: no origin remote")
	// ErrNotGitHub is returned when the remote URL does not point at github.com.
	ErrNotGitHub = errors.New("repo: remote is not a github.com repository")
)

// Detect opens the git repository containing dir and returns the owner and
// name of its origin remote.
func Detect(dir string) (owner, name string, err error) {
	r, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", "", fmt.Errorf("repo: open %s: %w", dir, err)
	}

	remote, err := r.Remote(originName)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return "", "", ErrNoOrigin
		}
		return "", "", fmt.Errorf("repo: read origin: %w", err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", "", ErrNoOrigin
	}

	return ParseRemoteURL(urls[0])
}

// ParseRemoteURL extracts owner and repository from a github.com remote in
// scp form (git@github.com:o/r.git) or URL form (https, git, ssh).
func ParseRemoteURL(raw string) (owner, name string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", ErrNoOrigin
	}

	var host, path string
	if strings.Contains(raw, "://") {
		u, perr := url.Parse(raw)
		if perr != nil {
			return "", "", fmt.Errorf("repo: parse remote %q: %w", raw, perr)
		}
		host, path = u.Hostname(), u.Path
	} else {
		// scp-like syntax: [user@]host:path
		at := strings.LastIndex(raw, "@")
		rest := raw[at+1:]
		h, p, ok := strings.Cut(rest, ":")
		if !ok {
			return "", "", fmt.Errorf("repo: unrecognised remote %q", raw)
		}
		host, path = h, p
	}

	if !strings.EqualFold(host, githubHost) {
		return "", "", fmt.Errorf("%w: %s", ErrNotGitHub, raw)
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	owner, name, ok := strings.Cut(path, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("repo: remote %q does not name owner/repository", raw)
	}

	return owner, name, nil
}

// GlobalCredentials reads github.user and github.token from the user's global
// git configuration. Missing keys are returned empty.
func GlobalCredentials() (auth.Credentials, error) {
	cfg, err := config.LoadConfig(config.GlobalScope)
	if err != nil {
		return auth.Credentials{}, fmt.Errorf("repo: load git config: %w", err)
	}
	return CredentialsFromConfig(cfg), nil
}

// CredentialsFromConfig pulls the github section out of a parsed git config.
func CredentialsFromConfig(cfg *config.Config) auth.Credentials {
	if cfg == nil || cfg.Raw == nil || !cfg.Raw.HasSection("github") {
		return auth.Credentials{}
	}

	section := cfg.Raw.Section("github")
	return auth.Credentials{
		Login: section.Option("user"),
		Token: section.Option("token"),
	}
}
