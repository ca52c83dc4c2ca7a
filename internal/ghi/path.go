package ghi

import (
	"fmt"
	"strings"
)

const pathTemplate = "/api/v2/yaml/issues/:action/:owner/:repository"

// path renders the resource path for action. Positional args are appended in
// order, joined by "/", and are not escaped.
func (c *Client) path(action string, args ...any) string {
	c.prefixOnce.Do(func() {
		prefix := strings.Replace(pathTemplate, ":owner", c.owner, 1)
		c.prefix = strings.Replace(prefix, ":repository", c.repository, 1)
	})

	p := strings.Replace(c.prefix, ":action", action, 1)
	if len(args) == 0 {
		return p
	}

	segments := make([]string, len(args))
	for i, arg := range args {
		segments[i] = fmt.Sprint(arg)
	}
	return p + "/" + strings.Join(segments, "/")
}
