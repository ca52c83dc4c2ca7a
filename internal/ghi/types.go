package ghi

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// State selects which issues list and search operate on. The service accepts
// other tokens too; they are forwarded unchanged.
type State string

const (
	StateOpen   State = "open"
	StateClosed State = "closed"
)

func (s State) orDefault() State {
	if strings.TrimSpace(string(s)) == "" {
		return StateOpen
	}
	return s
}

// Issue is a single issue as returned by the service.
type Issue struct {
	Number    int       `mapstructure:"number" json:"number"`
	Title     string    `mapstructure:"title" json:"title"`
	Body      string    `mapstructure:"body" json:"body"`
	State     string    `mapstructure:"state" json:"state"`
	User      string    `mapstructure:"user" json:"user"`
	Votes     int       `mapstructure:"votes" json:"votes"`
	Comments  int       `mapstructure:"comments" json:"comments,omitempty"`
	Labels    []string  `mapstructure:"labels" json:"labels,omitempty"`
	CreatedAt time.Time `mapstructure:"created_at" json:"created_at"`
	UpdatedAt time.Time `mapstructure:"updated_at" json:"updated_at"`
	ClosedAt  time.Time `mapstructure:"closed_at" json:"closed_at,omitzero"`
}

// Comment is the acknowledgement returned after commenting. Fields the service
// adds beyond body and status are kept in Extra.
type Comment struct {
	Body   string         `mapstructure:"comment" json:"comment"`
	Status string         `mapstructure:"status" json:"status"`
	Extra  map[string]any `mapstructure:",remain" json:"extra,omitempty"`
}

// SearchResult is the projection of list and search responses.
type SearchResult struct {
	Issues []Issue `mapstructure:"issues"`
}

type issueResult struct {
	Issue Issue `mapstructure:"issue"`
}

type labelsResult struct {
	Labels []string `mapstructure:"labels"`
}

type commentResult struct {
	Comment Comment `mapstructure:"comment"`
}

// timeLayouts covers the timestamp shapes the service has emitted.
var timeLayouts = []string{
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02 15:04:05 -0700",
	"2006/01/02 15:04:05 -0700",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

func stringToTimeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(time.Time{}) {
		return data, nil
	}

	s, ok := data.(string)
	if !ok {
		return data, nil
	}
	if s == "" {
		return time.Time{}, nil
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("unrecognised timestamp %q", s)
}

// project decodes doc into out after checking that key is present.
func project(doc document, key string, out any) error {
	if _, ok := doc[key]; !ok {
		return serviceErrorf(nil, "response missing %q", key)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       stringToTimeHook,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return serviceErrorf(err, "decode %s: %v", key, err)
	}

	if err := decoder.Decode(map[string]any(doc)); err != nil {
		return serviceErrorf(err, "decode %s: %v", key, err)
	}

	return nil
}
