package ghi

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ylchen07/ghi/internal/auth"
)

func TestResolveMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		secure     bool
		verb       string
		want       requestMode
		wantMethod string
	}{
		{false, http.MethodGet, modeInsecureRead, http.MethodGet},
		{true, http.MethodGet, modeSecureRead, http.MethodPost},
		{false, http.MethodPost, modeWrite, http.MethodPost},
		{true, http.MethodPost, modeWrite, http.MethodPost},
	}

	for _, tt := range tests {
		mode := resolveMode(tt.secure, tt.verb)
		assert.Equal(t, tt.want, mode, "secure=%v verb=%s", tt.secure, tt.verb)
		assert.Equal(t, tt.wantMethod, mode.httpMethod())
	}
}

func TestBuildRequestShapes(t *testing.T) {
	t.Parallel()

	creds := auth.Credentials{Login: "stephencelis", Token: "token"}
	path := "/api/v2/yaml/issues/list/stephencelis/ghi/open"

	t.Run("insecure read", func(t *testing.T) {
		req := buildRequest(modeInsecureRead, path, creds, nil)
		assert.Equal(t, http.MethodGet, req.method)
		assert.Equal(t, path+"?login=stephencelis&token=token", req.target)
		assert.Empty(t, req.body)
		assert.False(t, req.hasBody())
	})

	t.Run("secure read", func(t *testing.T) {
		req := buildRequest(modeSecureRead, path, creds, nil)
		assert.Equal(t, http.MethodPost, req.method)
		assert.Equal(t, path, req.target)
		assert.Equal(t, "login=stephencelis&token=token", req.body)
	})

	t.Run("write merges and encodes", func(t *testing.T) {
		params := NewParams("title", "Title", "body", "Body & more")
		req := buildRequest(modeWrite, path, creds, params)

		assert.Equal(t, http.MethodPost, req.method)
		assert.Equal(t, path, req.target)
		assert.Equal(t, "title=Title&body=Body+%26+more&login=stephencelis&token=token", req.body)
		assert.Equal(t, 2, params.Len(), "caller params must not be mutated")
	})

	t.Run("auth overwrites colliding keys", func(t *testing.T) {
		params := NewParams("login", "caller", "title", "T")
		req := buildRequest(modeWrite, path, creds, params)

		values, err := url.ParseQuery(req.body)
		require.NoError(t, err)
		assert.Equal(t, "stephencelis", values.Get("login"))
		assert.Equal(t, []string{"stephencelis"}, values["login"])
	})

	t.Run("write without params", func(t *testing.T) {
		req := buildRequest(modeWrite, path, creds, nil)
		assert.Equal(t, "login=stephencelis&token=token", req.body)
	})
}
