package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ylchen07/ghi/internal/auth"
)

const githubMachine = "github.com"

// netrcEntry is one machine (or the default) block of a .netrc file.
type netrcEntry struct {
	Machine  string
	Login    string
	Password string
	Account  string
}

// parseNetrc reads netrc tokens from r. Tokens may be spread across lines in
// any layout; "#" starts a comment and macdef bodies are skipped.
func parseNetrc(r io.Reader) (map[string]netrcEntry, error) {
	entries := make(map[string]netrcEntry)

	var (
		current *netrcEntry
		inMacro bool
	)
	flush := func() {
		if current != nil && current.Machine != "" {
			if _, seen := entries[current.Machine]; !seen {
				entries[current.Machine] = *current
			}
		}
		current = nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if inMacro {
			if strings.TrimSpace(line) == "" {
				inMacro = false
			}
			continue
		}

		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}

		tokens := strings.Fields(line)
		for i := 0; i < len(tokens); i++ {
			next := func() string {
				if i+1 < len(tokens) {
					i++
					return tokens[i]
				}
				return ""
			}

			switch tokens[i] {
			case "machine":
				flush()
				current = &netrcEntry{Machine: next()}
			case "default":
				flush()
				current = &netrcEntry{Machine: "default"}
			case "login":
				if v := next(); current != nil {
					current.Login = v
				}
			case "password":
				if v := next(); current != nil {
					current.Password = v
				}
			case "account":
				if v := next(); current != nil {
					current.Account = v
				}
			case "macdef":
				flush()
				inMacro = true
				i = len(tokens)
			}
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("netrc: scan: %w", err)
	}

	return entries, nil
}

// netrcPath returns $NETRC when set, otherwise ~/.netrc.
func netrcPath() string {
	if p := os.Getenv("NETRC"); p != "" {
		return p
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".netrc")
}

// netrcCredentials looks up host in the user's .netrc, falling back to the
// default entry. A missing file yields empty credentials.
func netrcCredentials(host string) (auth.Credentials, error) {
	path := netrcPath()
	if path == "" {
		return auth.Credentials{}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return auth.Credentials{}, nil
		}
		return auth.Credentials{}, fmt.Errorf("netrc: open: %w", err)
	}
	defer f.Close()

	entries, err := parseNetrc(f)
	if err != nil {
		return auth.Credentials{}, err
	}

	entry, ok := entries[host]
	if !ok {
		entry, ok = entries["default"]
	}
	if !ok {
		return auth.Credentials{}, nil
	}

	return auth.Credentials{Login: entry.Login, Token: entry.Password}, nil
}
