package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ylchen07/ghi/internal/config"
	"github.com/ylchen07/ghi/internal/ghi"
	"github.com/ylchen07/ghi/internal/repo"
	"github.com/ylchen07/ghi/pkg/logging"
)

const version = "0.1.0"

// app carries state shared by every subcommand.
type app struct {
	out io.Writer

	cfgFile  string
	repoFlag string
	secure   bool
	logLevel string

	cfg    *config.Config
	logger *slog.Logger
	client *ghi.Client

	// transport replaces the HTTP round tripper when set.
	transport http.RoundTripper
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "ghi",
		Short:         "Work with the GitHub issues of a repository",
		Long:          "ghi lists, searches, opens, edits, closes, labels and comments on the issues of a single GitHub repository.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initialize(cmd)
		},
	}

	root.SetOut(a.out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file or directory (default is ./config.yaml)")
	flags.StringVarP(&a.repoFlag, "repo", "r", "", "repository as owner/name (default is the origin remote)")
	flags.BoolVar(&a.secure, "secure", false, "use HTTPS and keep credentials out of URLs")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newListCmd(a),
		newSearchCmd(a),
		newShowCmd(a),
		newOpenCmd(a),
		newEditCmd(a),
		newStateCmd(a, "close", "Close an issue", (*ghi.Client).Close),
		newStateCmd(a, "reopen", "Reopen a closed issue", (*ghi.Client).Reopen),
		newLabelCmd(a),
		newCommentCmd(a),
		newMCPCmd(a),
	)

	return root
}

// initialize loads configuration and builds the client.
func (a *app) initialize(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	level := cfg.Log.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	a.logger = logging.New(level, cfg.Log.Format)

	owner, name, err := a.resolveRepository()
	if err != nil {
		return err
	}

	secure := cfg.GHI.Secure
	if cmd.Flags().Changed("secure") {
		secure = a.secure
	}

	client, err := ghi.New(owner, name, secure, cfg.Credentials(),
		ghi.WithLogger(a.logger),
		ghi.WithUserAgent("ghi/"+version),
	)
	if err != nil {
		return err
	}
	if a.transport != nil {
		client.SetTransport(a.transport)
	}
	a.client = client

	a.logger.Debug("client ready",
		slog.String("owner", owner),
		slog.String("repository", name),
		slog.Bool("secure", secure),
	)
	return nil
}

// resolveRepository prefers --repo, then ghi.repository, then the origin
// remote of the working directory.
func (a *app) resolveRepository() (string, string, error) {
	if a.repoFlag != "" {
		return config.SplitRepository(a.repoFlag)
	}
	if a.cfg != nil && a.cfg.GHI.Repository != "" {
		return config.SplitRepository(a.cfg.GHI.Repository)
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", "", fmt.Errorf("resolve repository: %w", err)
	}
	owner, name, err := repo.Detect(wd)
	if err != nil {
		return "", "", fmt.Errorf("no repository given and none detected: %w", err)
	}
	return owner, name, nil
}

func parseNumber(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid issue number %q", arg)
	}
	return n, nil
}

func parseNumbers(args []string) ([]int, error) {
	numbers := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := parseNumber(arg)
		if err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}
