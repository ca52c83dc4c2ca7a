package ghi

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// document is a decoded response body. Only the "error" field is inspected
// here; everything else is handed to the projection step untouched.
type document map[string]any

func decodeResponse(body []byte) (document, error) {
	var doc document
	if err := yaml.Unmarshal(body, &doc); err != nil {
		return nil, serviceErrorf(err, "unexpected response: %v", err)
	}

	if messages, failed := responseErrors(doc); failed {
		return nil, serviceError(messages)
	}

	return doc, nil
}

// responseErrors collects the messages of a truthy "error" field, which may
// hold a single error object or a sequence of them.
func responseErrors(doc document) ([]string, bool) {
	raw, ok := doc["error"]
	if !ok || raw == nil || raw == false {
		return nil, false
	}

	entries, isList := raw.([]any)
	if !isList {
		entries = []any{raw}
	}

	messages := make([]string, 0, len(entries))
	for _, entry := range entries {
		switch e := entry.(type) {
		case map[string]any:
			if msg, ok := e["error"]; ok && msg != nil {
				messages = append(messages, fmt.Sprint(msg))
			}
		case nil:
		default:
			messages = append(messages, fmt.Sprint(e))
		}
	}

	return messages, true
}
