package ghi

import (
	"net/http"

	"github.com/ylchen07/ghi/internal/auth"
)

// requestMode is the wire shape of a call, resolved once from the client's
// secure flag and the verb the operation declares.
type requestMode int

const (
	modeInsecureRead requestMode = iota
	modeSecureRead
	modeWrite
)

func (m requestMode) String() string {
	switch m {
	case modeInsecureRead:
		return "insecure-read"
	case modeSecureRead:
		return "secure-read"
	case modeWrite:
		return "write"
	default:
		return "unknown"
	}
}

func resolveMode(secure bool, verb string) requestMode {
	switch {
	case verb != http.MethodGet:
		return modeWrite
	case secure:
		return modeSecureRead
	default:
		return modeInsecureRead
	}
}

// httpMethod is the HTTP method sent on the wire. Secure reads go out as POST.
func (m requestMode) httpMethod() string {
	if m == modeInsecureRead {
		return http.MethodGet
	}
	return http.MethodPost
}

// wireRequest is what the transport sends: target is the path plus any
// literal query string.
type wireRequest struct {
	mode   requestMode
	method string
	target string
	body   string
}

func (r wireRequest) hasBody() bool {
	return r.method == http.MethodPost
}

// buildRequest places credentials according to mode. params is never mutated.
func buildRequest(mode requestMode, path string, creds auth.Credentials, params *Params) wireRequest {
	req := wireRequest{mode: mode, method: mode.httpMethod(), target: path}

	switch mode {
	case modeInsecureRead:
		req.target = path + creds.Query()
	case modeSecureRead:
		req.body = creds.Body()
	case modeWrite:
		merged := params.Clone()
		creds.MergeInto(merged)
		req.body = merged.Encode()
	}

	return req
}
