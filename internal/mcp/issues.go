package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ylchen07/ghi/internal/ghi"
	"github.com/ylchen07/ghi/internal/state"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const siteURL = "https://github.com"

// IssueTools wires the issues client into MCP tools.
type IssueTools struct {
	client  *ghi.Client
	cache   *state.Cache
	repoURL string
}

// NewIssueTools registers issue and label tools on the server.
func NewIssueTools(s *server.MCPServer, client *ghi.Client, cache *state.Cache) *IssueTools {
	it := &IssueTools{
		client:  client,
		cache:   cache,
		repoURL: fmt.Sprintf("%s/%s/%s", siteURL, client.Owner(), client.Repository()),
	}

	s.AddTool(
		mcp.NewTool(
			"issues.search",
			mcp.WithDescription("Search the repository's issues for a term"),
			mcp.WithInputSchema[IssueSearchArgs](),
			mcp.WithOutputSchema[IssueListResult](),
		),
		mcp.NewTypedToolHandler(it.handleSearch),
	)

	s.AddTool(
		mcp.NewTool(
			"issues.list",
			mcp.WithDescription("List the repository's open or closed issues"),
			mcp.WithInputSchema[IssueListArgs](),
			mcp.WithOutputSchema[IssueListResult](),
		),
		mcp.NewTypedToolHandler(it.handleList),
	)

	s.AddTool(
		mcp.NewTool(
			"issues.show",
			mcp.WithDescription("Fetch a single issue"),
			mcp.WithInputSchema[IssueNumberArgs](),
			mcp.WithOutputSchema[IssueDetail](),
		),
		mcp.NewTypedToolHandler(it.handleShow),
	)

	s.AddTool(
		mcp.NewTool(
			"issues.open",
			mcp.WithDescription("Open a new issue"),
			mcp.WithInputSchema[IssueOpenArgs](),
			mcp.WithOutputSchema[IssueDetail](),
		),
		mcp.NewTypedToolHandler(it.handleOpen),
	)

	s.AddTool(
		mcp.NewTool(
			"issues.edit",
			mcp.WithDescription("Replace the title and body of an issue"),
			mcp.WithInputSchema[IssueEditArgs](),
			mcp.WithOutputSchema[IssueDetail](),
		),
		mcp.NewTypedToolHandler(it.handleEdit),
	)

	s.AddTool(
		mcp.NewTool(
			"issues.close",
			mcp.WithDescription("Close an issue"),
			mcp.WithInputSchema[IssueNumberArgs](),
			mcp.WithOutputSchema[IssueDetail](),
		),
		mcp.NewTypedToolHandler(it.handleClose),
	)

	s.AddTool(
		mcp.NewTool(
			"issues.reopen",
			mcp.WithDescription("Reopen a closed issue"),
			mcp.WithInputSchema[IssueNumberArgs](),
			mcp.WithOutputSchema[IssueDetail](),
		),
		mcp.NewTypedToolHandler(it.handleReopen),
	)

	s.AddTool(
		mcp.NewTool(
			"labels.add",
			mcp.WithDescription("Attach a label to an issue"),
			mcp.WithInputSchema[LabelArgs](),
			mcp.WithOutputSchema[LabelsResult](),
		),
		mcp.NewTypedToolHandler(it.handleAddLabel),
	)

	s.AddTool(
		mcp.NewTool(
			"labels.remove",
			mcp.WithDescription("Detach a label from an issue"),
			mcp.WithInputSchema[LabelArgs](),
			mcp.WithOutputSchema[LabelsResult](),
		),
		mcp.NewTypedToolHandler(it.handleRemoveLabel),
	)

	s.AddTool(
		mcp.NewTool(
			"issues.comment",
			mcp.WithDescription("Comment on an issue"),
			mcp.WithInputSchema[IssueCommentArgs](),
			mcp.WithOutputSchema[CommentResult](),
		),
		mcp.NewTypedToolHandler(it.handleComment),
	)

	return it
}

// IssueSearchArgs parameters for searching issues.
type IssueSearchArgs struct {
	Term  string `json:"term,omitempty" jsonschema_description:"Search term; empty repeats the previous search"`
	State string `json:"state,omitempty" jsonschema_description:"Issue state, defaults to open" jsonschema:"enum=open,enum=closed"`
}

// IssueListArgs parameters for listing issues.
type IssueListArgs struct {
	State string `json:"state,omitempty" jsonschema_description:"Issue state, defaults to open" jsonschema:"enum=open,enum=closed"`
}

// IssueNumberArgs identifies a single issue.
type IssueNumberArgs struct {
	Number int `json:"number,omitempty" jsonschema_description:"Issue number; 0 uses the last issue touched in this session" jsonschema:"minimum=0"`
}

// IssueOpenArgs parameters for opening an issue.
type IssueOpenArgs struct {
	Title string `json:"title" jsonschema:"required" jsonschema_description:"Issue title"`
	Body  string `json:"body,omitempty" jsonschema_description:"Issue body"`
}

// IssueEditArgs parameters for editing an issue.
type IssueEditArgs struct {
	Number int    `json:"number,omitempty" jsonschema_description:"Issue number; 0 uses the last issue touched in this session" jsonschema:"minimum=0"`
	Title  string `json:"title" jsonschema:"required" jsonschema_description:"New title"`
	Body   string `json:"body,omitempty" jsonschema_description:"New body"`
}

// LabelArgs parameters for label changes.
type LabelArgs struct {
	Label  string `json:"label" jsonschema:"required" jsonschema_description:"Label name"`
	Number int    `json:"number,omitempty" jsonschema_description:"Issue number; 0 uses the last issue touched in this session" jsonschema:"minimum=0"`
}

// IssueCommentArgs parameters for commenting.
type IssueCommentArgs struct {
	Number  int    `json:"number,omitempty" jsonschema_description:"Issue number; 0 uses the last issue touched in this session" jsonschema:"minimum=0"`
	Comment string `json:"comment" jsonschema:"required" jsonschema_description:"Comment text"`
}

// IssueSummary is the list view of an issue.
type IssueSummary struct {
	Number int      `json:"number"`
	Title  string   `json:"title"`
	State  string   `json:"state"`
	User   string   `json:"user"`
	Votes  int      `json:"votes"`
	Labels []string `json:"labels,omitempty"`
	URL    string   `json:"url"`
}

// IssueListResult wraps list and search responses.
type IssueListResult struct {
	Issues []IssueSummary `json:"issues"`
}

// IssueDetail is a full issue.
type IssueDetail struct {
	IssueSummary
	Body      string     `json:"body"`
	Comments  int        `json:"comments"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	ClosedAt  *time.Time `json:"closedAt,omitempty"`
}

// LabelsResult lists an issue's labels after a change.
type LabelsResult struct {
	Number int      `json:"number"`
	Labels []string `json:"labels"`
}

// CommentResult acknowledges a comment.
type CommentResult struct {
	Number  int    `json:"number"`
	Comment string `json:"comment"`
	Status  string `json:"status"`
}

func (it *IssueTools) summarize(issue ghi.Issue) IssueSummary {
	return IssueSummary{
		Number: issue.Number,
		Title:  issue.Title,
		State:  issue.State,
		User:   issue.User,
		Votes:  issue.Votes,
		Labels: issue.Labels,
		URL:    fmt.Sprintf("%s/issues/%d", it.repoURL, issue.Number),
	}
}

func (it *IssueTools) detail(issue *ghi.Issue) IssueDetail {
	d := IssueDetail{
		IssueSummary: it.summarize(*issue),
		Body:         issue.Body,
		Comments:     issue.Comments,
		CreatedAt:    issue.CreatedAt,
		UpdatedAt:    issue.UpdatedAt,
	}
	if !issue.ClosedAt.IsZero() {
		closed := issue.ClosedAt
		d.ClosedAt = &closed
	}
	return d
}

func (it *IssueTools) listResult(issues []ghi.Issue) IssueListResult {
	result := IssueListResult{Issues: make([]IssueSummary, 0, len(issues))}
	for _, issue := range issues {
		result.Issues = append(result.Issues, it.summarize(issue))
	}
	return result
}

// issueNumber resolves 0 to the last issue touched in this session.
func (it *IssueTools) issueNumber(number int) (int, *mcp.CallToolResult) {
	if number < 0 {
		return 0, mcp.NewToolResultError("issue number must not be negative")
	}
	n, ok := it.cache.ResolveIssue(number)
	if !ok {
		return 0, mcp.NewToolResultError("issue number required")
	}
	return n, nil
}

func (it *IssueTools) handleSearch(ctx context.Context, _ mcp.CallToolRequest, args IssueSearchArgs) (*mcp.CallToolResult, error) {
	term := args.Term
	if strings.TrimSpace(term) == "" {
		term = it.cache.LastSearch()
	}
	if strings.TrimSpace(term) == "" {
		return mcp.NewToolResultError("search term must not be empty"), nil
	}

	issues, err := it.client.Search(ctx, term, ghi.State(args.State))
	if err != nil {
		return mcp.NewToolResultErrorFromErr("issues search failed", err), nil
	}

	it.cache.SetLastSearch(term)

	result := it.listResult(issues)
	fallback := fmt.Sprintf("Found %d issues matching %q", len(result.Issues), term)
	return mcp.NewToolResultStructured(result, fallback), nil
}

func (it *IssueTools) handleList(ctx context.Context, _ mcp.CallToolRequest, args IssueListArgs) (*mcp.CallToolResult, error) {
	issues, err := it.client.List(ctx, ghi.State(args.State))
	if err != nil {
		return mcp.NewToolResultErrorFromErr("issues list failed", err), nil
	}

	result := it.listResult(issues)
	fallback := fmt.Sprintf("Found %d issues", len(result.Issues))
	return mcp.NewToolResultStructured(result, fallback), nil
}

func (it *IssueTools) handleShow(ctx context.Context, _ mcp.CallToolRequest, args IssueNumberArgs) (*mcp.CallToolResult, error) {
	number, invalid := it.issueNumber(args.Number)
	if invalid != nil {
		return invalid, nil
	}

	issue, err := it.client.Show(ctx, number)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("issues show failed", err), nil
	}

	it.cache.SetLastIssue(issue.Number)

	fallback := fmt.Sprintf("#%d: %s", issue.Number, issue.Title)
	return mcp.NewToolResultStructured(it.detail(issue), fallback), nil
}

func (it *IssueTools) handleOpen(ctx context.Context, _ mcp.CallToolRequest, args IssueOpenArgs) (*mcp.CallToolResult, error) {
	if strings.TrimSpace(args.Title) == "" {
		return mcp.NewToolResultError("title must not be empty"), nil
	}

	issue, err := it.client.Open(ctx, args.Title, args.Body)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("issues open failed", err), nil
	}

	it.cache.SetLastIssue(issue.Number)

	fallback := fmt.Sprintf("Opened issue #%d", issue.Number)
	return mcp.NewToolResultStructured(it.detail(issue), fallback), nil
}

func (it *IssueTools) handleEdit(ctx context.Context, _ mcp.CallToolRequest, args IssueEditArgs) (*mcp.CallToolResult, error) {
	number, invalid := it.issueNumber(args.Number)
	if invalid != nil {
		return invalid, nil
	}
	if strings.TrimSpace(args.Title) == "" {
		return mcp.NewToolResultError("title must not be empty"), nil
	}

	issue, err := it.client.Edit(ctx, number, args.Title, args.Body)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("issues edit failed", err), nil
	}

	it.cache.SetLastIssue(number)

	fallback := fmt.Sprintf("Edited issue #%d", number)
	return mcp.NewToolResultStructured(it.detail(issue), fallback), nil
}

func (it *IssueTools) handleClose(ctx context.Context, _ mcp.CallToolRequest, args IssueNumberArgs) (*mcp.CallToolResult, error) {
	number, invalid := it.issueNumber(args.Number)
	if invalid != nil {
		return invalid, nil
	}

	issue, err := it.client.Close(ctx, number)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("issues close failed", err), nil
	}

	it.cache.SetLastIssue(number)

	fallback := fmt.Sprintf("Closed issue #%d", number)
	return mcp.NewToolResultStructured(it.detail(issue), fallback), nil
}

func (it *IssueTools) handleReopen(ctx context.Context, _ mcp.CallToolRequest, args IssueNumberArgs) (*mcp.CallToolResult, error) {
	number, invalid := it.issueNumber(args.Number)
	if invalid != nil {
		return invalid, nil
	}

	issue, err := it.client.Reopen(ctx, number)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("issues reopen failed", err), nil
	}

	it.cache.SetLastIssue(number)

	fallback := fmt.Sprintf("Reopened issue #%d", number)
	return mcp.NewToolResultStructured(it.detail(issue), fallback), nil
}

func (it *IssueTools) handleAddLabel(ctx context.Context, _ mcp.CallToolRequest, args LabelArgs) (*mcp.CallToolResult, error) {
	return it.changeLabel(ctx, args, it.client.AddLabel, "add", "added")
}

func (it *IssueTools) handleRemoveLabel(ctx context.Context, _ mcp.CallToolRequest, args LabelArgs) (*mcp.CallToolResult, error) {
	return it.changeLabel(ctx, args, it.client.RemoveLabel, "remove", "removed")
}

func (it *IssueTools) changeLabel(ctx context.Context, args LabelArgs, change func(context.Context, string, int) ([]string, error), op, done string) (*mcp.CallToolResult, error) {
	if strings.TrimSpace(args.Label) == "" {
		return mcp.NewToolResultError("label must not be empty"), nil
	}
	number, invalid := it.issueNumber(args.Number)
	if invalid != nil {
		return invalid, nil
	}

	labels, err := change(ctx, args.Label, number)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("label "+op+" failed", err), nil
	}

	it.cache.SetLastIssue(number)

	result := LabelsResult{Number: number, Labels: labels}
	fallback := fmt.Sprintf("Label %q %s on #%d", args.Label, done, number)
	return mcp.NewToolResultStructured(result, fallback), nil
}

func (it *IssueTools) handleComment(ctx context.Context, _ mcp.CallToolRequest, args IssueCommentArgs) (*mcp.CallToolResult, error) {
	if strings.TrimSpace(args.Comment) == "" {
		return mcp.NewToolResultError("comment must not be empty"), nil
	}
	number, invalid := it.issueNumber(args.Number)
	if invalid != nil {
		return invalid, nil
	}

	comment, err := it.client.Comment(ctx, number, args.Comment)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("issues comment failed", err), nil
	}

	it.cache.SetLastIssue(number)

	result := CommentResult{Number: number, Comment: comment.Body, Status: comment.Status}
	fallback := fmt.Sprintf("Commented on #%d", number)
	return mcp.NewToolResultStructured(result, fallback), nil
}
