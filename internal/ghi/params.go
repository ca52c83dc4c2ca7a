package ghi

import (
	"net/url"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Params is an insertion-ordered mapping of form fields. Setting an existing
// key replaces its value in place.
type Params struct {
	m *orderedmap.OrderedMap[string, string]
}

// NewParams builds Params from alternating key/value pairs. A trailing key
// without a value is ignored.
func NewParams(pairs ...string) *Params {
	p := &Params{m: orderedmap.New[string, string]()}
	for i := 0; i+1 < len(pairs); i += 2 {
		p.Set(pairs[i], pairs[i+1])
	}
	return p
}

// Set stores value under key.
func (p *Params) Set(key, value string) {
	if p.m == nil {
		p.m = orderedmap.New[string, string]()
	}
	p.m.Set(key, value)
}

// Get returns the value stored under key.
func (p *Params) Get(key string) (string, bool) {
	if p == nil || p.m == nil {
		return "", false
	}
	return p.m.Get(key)
}

// Len returns the number of fields.
func (p *Params) Len() int {
	if p == nil || p.m == nil {
		return 0
	}
	return p.m.Len()
}

// Clone returns an independent copy preserving order.
func (p *Params) Clone() *Params {
	out := NewParams()
	if p == nil || p.m == nil {
		return out
	}
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value)
	}
	return out
}

// Encode percent-encodes every key and value and joins the pairs with "&" in
// insertion order.
func (p *Params) Encode() string {
	if p.Len() == 0 {
		return ""
	}

	var b strings.Builder
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(pair.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(pair.Value))
	}
	return b.String()
}
