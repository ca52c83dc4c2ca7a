package ghi

import "context"

// Search returns issues in state matching term. An empty state means open.
func (c *Client) Search(ctx context.Context, term string, state State) ([]Issue, error) {
	doc, err := c.get(ctx, "search", string(state.orDefault()), term)
	if err != nil {
		return nil, err
	}
	return issuesFrom(doc)
}

// List returns the repository's issues in state. An empty state means open.
func (c *Client) List(ctx context.Context, state State) ([]Issue, error) {
	doc, err := c.get(ctx, "list", string(state.orDefault()))
	if err != nil {
		return nil, err
	}
	return issuesFrom(doc)
}

// Show fetches a single issue.
func (c *Client) Show(ctx context.Context, number int) (*Issue, error) {
	doc, err := c.get(ctx, "show", number)
	if err != nil {
		return nil, err
	}
	return issueFrom(doc)
}

// Open creates an issue.
func (c *Client) Open(ctx context.Context, title, body string) (*Issue, error) {
	doc, err := c.post(ctx, "open", NewParams("title", title, "body", body))
	if err != nil {
		return nil, err
	}
	return issueFrom(doc)
}

// Edit replaces the title and body of an issue.
func (c *Client) Edit(ctx context.Context, number int, title, body string) (*Issue, error) {
	doc, err := c.post(ctx, "edit", NewParams("title", title, "body", body), number)
	if err != nil {
		return nil, err
	}
	return issueFrom(doc)
}

// Close closes an issue.
func (c *Client) Close(ctx context.Context, number int) (*Issue, error) {
	doc, err := c.post(ctx, "close", nil, number)
	if err != nil {
		return nil, err
	}
	return issueFrom(doc)
}

// Reopen reopens a closed issue.
func (c *Client) Reopen(ctx context.Context, number int) (*Issue, error) {
	doc, err := c.post(ctx, "reopen", nil, number)
	if err != nil {
		return nil, err
	}
	return issueFrom(doc)
}

// AddLabel attaches label to an issue and returns the issue's labels.
func (c *Client) AddLabel(ctx context.Context, label string, number int) ([]string, error) {
	doc, err := c.post(ctx, "label/add", nil, label, number)
	if err != nil {
		return nil, err
	}
	return labelsFrom(doc)
}

// RemoveLabel detaches label from an issue and returns the remaining labels.
func (c *Client) RemoveLabel(ctx context.Context, label string, number int) ([]string, error) {
	doc, err := c.post(ctx, "label/remove", nil, label, number)
	if err != nil {
		return nil, err
	}
	return labelsFrom(doc)
}

// Comment adds a comment to an issue.
func (c *Client) Comment(ctx context.Context, number int, text string) (*Comment, error) {
	doc, err := c.post(ctx, "comment", NewParams("comment", text), number)
	if err != nil {
		return nil, err
	}

	var out commentResult
	if err := project(doc, "comment", &out); err != nil {
		return nil, err
	}
	return &out.Comment, nil
}

func issuesFrom(doc document) ([]Issue, error) {
	var out SearchResult
	if err := project(doc, "issues", &out); err != nil {
		return nil, err
	}
	if out.Issues == nil {
		out.Issues = []Issue{}
	}
	return out.Issues, nil
}

func issueFrom(doc document) (*Issue, error) {
	var out issueResult
	if err := project(doc, "issue", &out); err != nil {
		return nil, err
	}
	return &out.Issue, nil
}

func labelsFrom(doc document) ([]string, error) {
	var out labelsResult
	if err := project(doc, "labels", &out); err != nil {
		return nil, err
	}
	if out.Labels == nil {
		out.Labels = []string{}
	}
	return out.Labels, nil
}
