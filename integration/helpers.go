package integration

import (
	"os"
	"strings"
	"testing"

	"github.com/ylchen07/ghi/internal/auth"
	"github.com/ylchen07/ghi/internal/config"
	"github.com/ylchen07/ghi/internal/ghi"
	"github.com/ylchen07/ghi/pkg/logging"
)

// requireIntegration skips the test if GHI_INTEGRATION environment variable is not set.
func requireIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("GHI_INTEGRATION") == "" {
		t.Skip("GHI_INTEGRATION not set; skipping integration tests")
	}
}

// resolveEnv returns the first non-empty environment variable value from the provided keys.
func resolveEnv(keys ...string) string {
	for _, key := range keys {
		if val := os.Getenv(key); strings.TrimSpace(val) != "" {
			return val
		}
	}
	return ""
}

// setupClient builds a client for GHI_INTEGRATION_REPO. Credentials come from
// the usual configuration chain.
func setupClient(t *testing.T, secure bool) *ghi.Client {
	t.Helper()

	repository := resolveEnv("GHI_INTEGRATION_REPO", "GHI_GHI_REPOSITORY")
	if repository == "" {
		t.Skip("GHI_INTEGRATION_REPO not set")
	}

	owner, name, err := config.SplitRepository(repository)
	if err != nil {
		t.Fatalf("SplitRepository: %v", err)
	}

	var creds auth.Provider
	if cfg, err := config.Load(os.Getenv("GHI_INTEGRATION_CONFIG")); err == nil {
		creds = cfg.Credentials()
	} else {
		t.Logf("config unavailable, using anonymous credentials: %v", err)
	}

	client, err := ghi.New(owner, name, secure, creds, ghi.WithLogger(logging.New("debug", "text")))
	if err != nil {
		t.Fatalf("ghi.New: %v", err)
	}
	return client
}
