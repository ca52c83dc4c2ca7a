package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ylchen07/ghi/internal/ghi"
	mcpserver "github.com/ylchen07/ghi/internal/mcp"
	"github.com/ylchen07/ghi/internal/state"
)

// showConcurrency bounds parallel requests for `ghi show N...`.
const showConcurrency = 4

func newListCmd(a *app) *cobra.Command {
	var stateFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			issues, err := a.client.List(cmd.Context(), ghi.State(stateFlag))
			if err != nil {
				return err
			}
			printIssues(a.out, issues)
			return nil
		},
	}
	cmd.Flags().StringVarP(&stateFlag, "state", "s", "open", "issue state: open or closed")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var stateFlag string

	cmd := &cobra.Command{
		Use:   "search TERM",
		Short: "Search issues",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			issues, err := a.client.Search(cmd.Context(), args[0], ghi.State(stateFlag))
			if err != nil {
				return err
			}
			printIssues(a.out, issues)
			return nil
		},
	}
	cmd.Flags().StringVarP(&stateFlag, "state", "s", "open", "issue state: open or closed")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show N...",
		Short: "Show one or more issues",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			numbers, err := parseNumbers(args)
			if err != nil {
				return err
			}

			issues, err := showAll(cmd.Context(), a.client, numbers)
			if err != nil {
				return err
			}
			for i, issue := range issues {
				if i > 0 {
					fmt.Fprintln(a.out)
				}
				printIssue(a.out, issue)
			}
			return nil
		},
	}
}

// showAll fetches issues concurrently and returns them in argument order.
func showAll(ctx context.Context, client *ghi.Client, numbers []int) ([]*ghi.Issue, error) {
	issues := make([]*ghi.Issue, len(numbers))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(showConcurrency)

	for i, n := range numbers {
		g.Go(func() error {
			issue, err := client.Show(ctx, n)
			if err != nil {
				return fmt.Errorf("issue #%d: %w", n, err)
			}
			issues[i] = issue
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return issues, nil
}

func newOpenCmd(a *app) *cobra.Command {
	var title, body string

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open an issue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			issue, err := a.client.Open(cmd.Context(), title, body)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Opened issue #%d\n", issue.Number)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "issue title")
	cmd.Flags().StringVarP(&body, "body", "b", "", "issue body")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var title, body string

	cmd := &cobra.Command{
		Use:   "edit N",
		Short: "Replace the title and body of an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseNumber(args[0])
			if err != nil {
				return err
			}
			issue, err := a.client.Edit(cmd.Context(), n, title, body)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Edited issue #%d\n", issue.Number)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&body, "body", "b", "", "new body")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newStateCmd(a *app, use, short string, change func(*ghi.Client, context.Context, int) (*ghi.Issue, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " N",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseNumber(args[0])
			if err != nil {
				return err
			}
			issue, err := change(a.client, cmd.Context(), n)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Issue #%d is %s\n", n, issue.State)
			return nil
		},
	}
}

func newLabelCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Add or remove issue labels",
	}

	change := func(use, short string, op func(*ghi.Client, context.Context, string, int) ([]string, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use + " LABEL N",
			Short: short,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := parseNumber(args[1])
				if err != nil {
					return err
				}
				labels, err := op(a.client, cmd.Context(), args[0], n)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "#%d labels: %s\n", n, strings.Join(labels, ", "))
				return nil
			},
		}
	}

	cmd.AddCommand(
		change("add", "Attach a label to an issue", (*ghi.Client).AddLabel),
		change("remove", "Detach a label from an issue", (*ghi.Client).RemoveLabel),
	)
	return cmd
}

func newCommentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "comment N TEXT",
		Short: "Comment on an issue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseNumber(args[0])
			if err != nil {
				return err
			}
			comment, err := a.client.Comment(cmd.Context(), n, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Comment on #%d %s\n", n, comment.Status)
			return nil
		},
	}
}

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the issue tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			srv := mcpserver.NewServer(mcpserver.Dependencies{
				Client:  a.client,
				Cache:   state.NewCache(),
				Logger:  a.logger,
				Version: version,
			})

			if err := server.ServeStdio(srv); err != nil {
				a.logger.Error("stdio server terminated", slog.Any("error", err))
				return err
			}
			return nil
		},
	}
}

func printIssues(w io.Writer, issues []ghi.Issue) {
	if len(issues) == 0 {
		fmt.Fprintln(w, "No issues found.")
		return
	}
	for _, issue := range issues {
		fmt.Fprintf(w, "%4d: %s", issue.Number, issue.Title)
		if len(issue.Labels) > 0 {
			fmt.Fprintf(w, " [%s]", strings.Join(issue.Labels, ", "))
		}
		fmt.Fprintln(w)
	}
}

func printIssue(w io.Writer, issue *ghi.Issue) {
	fmt.Fprintf(w, "#%d: %s\n", issue.Number, issue.Title)
	fmt.Fprintf(w, "   @%s opened %s, %s, %d votes\n",
		issue.User, issue.CreatedAt.Format("2006-01-02"), issue.State, issue.Votes)
	if len(issue.Labels) > 0 {
		fmt.Fprintf(w, "   labels: %s\n", strings.Join(issue.Labels, ", "))
	}
	if body := strings.TrimSpace(issue.Body); body != "" {
		fmt.Fprintln(w)
		for _, line := range strings.Split(body, "\n") {
			fmt.Fprintf(w, "   %s\n", line)
		}
	}
}
