package ghi

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies where in the request pipeline an error arose.
type Kind int

const (
	// KindConstruction reports an invalid client configuration.
	KindConstruction Kind = iota + 1
	// KindTransport reports a failure to build, send or receive a request.
	KindTransport
	// KindService reports an error carried in the service response.
	KindService
)

func (k Kind) String() string {
	switch k {
	case KindConstruction:
		return "construction"
	case KindTransport:
		return "transport"
	case KindService:
		return "service"
	default:
		return "unknown"
	}
}

// Fixed transport messages.
var (
	ErrHiccup     = errors.New("the service hiccuped on your request")
	ErrNoInternet = errors.New("couldn't find the internet")
)

// Error is the single error type returned by Client.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsConstruction reports whether err is a construction error.
func IsConstruction(err error) bool { return hasKind(err, KindConstruction) }

// IsTransport reports whether err is a transport error.
func IsTransport(err error) bool { return hasKind(err, KindTransport) }

// IsService reports whether err is an error returned by the service.
func IsService(err error) bool { return hasKind(err, KindService) }

func hasKind(err error, kind Kind) bool {
	var ghiErr *Error
	return errors.As(err, &ghiErr) && ghiErr.Kind == kind
}

func constructionError(format string, args ...any) *Error {
	return &Error{Kind: KindConstruction, Message: fmt.Sprintf(format, args...)}
}

// transportError keeps sentinel as the visible message while still unwrapping
// to the underlying cause.
func transportError(sentinel, cause error) *Error {
	if sentinel == nil {
		return &Error{Kind: KindTransport, Message: cause.Error(), Err: cause}
	}
	return &Error{Kind: KindTransport, Message: sentinel.Error(), Err: fmt.Errorf("%w: %w", sentinel, cause)}
}

func serviceError(messages []string) *Error {
	return &Error{Kind: KindService, Message: strings.Join(messages, ", ")}
}

func serviceErrorf(cause error, format string, args ...any) *Error {
	return &Error{Kind: KindService, Message: fmt.Sprintf(format, args...), Err: cause}
}
