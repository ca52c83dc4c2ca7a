package ghi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
)

// apiHost is reached on the scheme's default port: 443 secure, 80 otherwise.
const apiHost = "github.com"

func newHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableKeepAlives = true
	return &http.Client{Transport: transport, CheckRedirect: noRedirect}
}

// noRedirect hands the first response back to the caller. Following a
// Location would replay credentials to another URL.
func noRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

func (c *Client) origin() string {
	if c.secure {
		return "https://" + apiHost
	}
	return "http://" + apiHost
}

// execute sends exactly one request and returns the full response body. The
// connection is closed once the body has been read.
func (c *Client) execute(ctx context.Context, wr wireRequest) ([]byte, error) {
	var body io.Reader
	if wr.hasBody() {
		body = strings.NewReader(wr.body)
	}

	req, err := http.NewRequestWithContext(ctx, wr.method, c.origin()+wr.target, body)
	if err != nil {
		return nil, transportError(ErrHiccup, err)
	}
	req.Close = true
	req.Header.Set("Accept", "application/x-yaml")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if wr.hasBody() {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, transportError(nil, fmt.Errorf("read response: %w", err))
	}

	return data, nil
}

// classifyTransport maps name resolution and dial failures to ErrNoInternet;
// anything else keeps its own message. The request URL is dropped from the
// message since insecure reads carry the token in the query.
func classifyTransport(err error) *Error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return transportError(ErrNoInternet, err)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return transportError(ErrNoInternet, err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return &Error{Kind: KindTransport, Message: urlErr.Err.Error(), Err: err}
	}

	return transportError(nil, err)
}
