package ghi

import (
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ylchen07/ghi/internal/auth"
)

const issuesYAML = `---
issues:
- number: 1
  votes: 0
  created_at: 2009-04-17 14:55:33 -07:00
  body: my sweet, sweet issue
  title: new issue
  updated_at: 2009-04-17 14:55:33 -07:00
  user: schacon
  state: open
- number: 2
  votes: 0
  created_at: 2009-04-17 15:16:47 -07:00
  body: the body of a second issue
  title: another issue
  updated_at: 2009-04-17 15:16:47 -07:00
  user: schacon
  state: open
`

const issueYAML = `---
issue:
  number: 1
  votes: 0
  created_at: 2009-04-17 14:55:33 -07:00
  body: my sweet, sweet issue
  title: new issue
  updated_at: 2009-04-17 14:55:33 -07:00
  user: schacon
  state: open
`

const labelsYAML = `---
labels:
- testing
- test_label
`

const commentYAML = `---
comment:
  comment: this is amazing
  status: saved
`

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// captured is a request as seen on the wire.
type captured struct {
	Method string
	URL    string
	Path   string
	Query  string
	Body   string
	Header http.Header
}

// recorder answers every request with body and remembers what was sent.
type recorder struct {
	mu       sync.Mutex
	body     string
	requests []captured
}

func (r *recorder) RoundTrip(req *http.Request) (*http.Response, error) {
	c := captured{
		Method: req.Method,
		URL:    req.URL.String(),
		Path:   req.URL.Path,
		Query:  req.URL.RawQuery,
		Header: req.Header.Clone(),
	}
	if req.Body != nil {
		data, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		c.Body = string(data)
	}

	r.mu.Lock()
	r.requests = append(r.requests, c)
	r.mu.Unlock()

	return yamlResponse(r.body), nil
}

func (r *recorder) only(t *testing.T) captured {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.Len(t, r.requests, 1, "expected exactly one request")
	return r.requests[0]
}

func yamlResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/x-yaml"}},
	}
}

func newTestClient(t *testing.T, secure bool, body string) (*Client, *recorder) {
	t.Helper()

	client, err := New("stephencelis", "ghi", secure, auth.Static("stephencelis", "token"))
	require.NoError(t, err)

	rec := &recorder{body: body}
	client.SetTransport(rec)
	return client, rec
}
