package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/client"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/config"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/ingest"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/session"
)

// maxLogFiles is how many CLI log files are kept in <home>/logs.
const maxLogFiles = 10

// app holds everything a command needs. It is filled in by setup before any
// command runs.
type app struct {
	// flags
	verbose bool
	apiURL  string
	home    string

	logger     *slog.Logger
	logFile    *os.File
	api        *client.Client
	extractors *ingest.Registry
	sessions   *session.Manager
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "redliner",
		Short: "Review contracts against compliance playbooks",
		Long: `redliner talks to the AI Redliner backend.

Upload a contract with its playbook, and redliner shows the conflicts,
gaps and irrelevant clauses the analysis found.

Log in first (the demo account is vasp@gmail.com / pass@123):
  redliner login --email vasp@gmail.com --password pass@123`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  func(cmd *cobra.Command, args []string) error { return a.setup() },
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error { return a.close() },
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "write debug logs")
	root.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "backend URL (default $REDLINER_API_URL, then $NEXT_PUBLIC_API_URL)")
	root.PersistentFlags().StringVar(&a.home, "home", "", "state directory for session and logs (default $REDLINER_HOME or ~/.redliner)")

	root.AddCommand(
		newPingCmd(a),
		newLoginCmd(a),
		newSignupCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newDocumentsCmd(a),
		newPlaybooksCmd(a),
		newReviewsCmd(a),
		newAnalyzeCmd(a),
		newStatsCmd(a),
	)

	return root
}

func (a *app) setup() error {
	// .env is optional
	_ = godotenv.Load()

	cfg := config.Load()
	if a.apiURL == "" {
		a.apiURL = cfg.APIBaseURL
	}
	if a.home == "" {
		a.home = cfg.HomeDir
	}

	logFile, err := config.SetupLogFile(filepath.Join(a.home, "logs"), "redliner", maxLogFiles)
	if err != nil {
		return err
	}
	a.logFile = logFile

	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))

	a.api = client.New(a.apiURL)
	a.extractors = ingest.NewRegistry(a.logger)

	directory, err := session.OpenDirectory(filepath.Join(a.home, "users.yaml"))
	if err != nil {
		return fmt.Errorf("open user directory: %w", err)
	}
	a.sessions = session.NewManager(directory, session.NewStore(a.home))

	a.logger.Debug("cli started", "api_url", a.api.BaseURL(), "home", a.home)
	return nil
}

func (a *app) close() error {
	if a.logFile == nil {
		return nil
	}
	err := a.logFile.Close()
	a.logFile = nil
	return err
}

// authed returns a context carrying the current session, and a logger
// tagged with its user.
func (a *app) authed(ctx context.Context) (context.Context, *slog.Logger, error) {
	sess, err := a.sessions.Current()
	if errors.Is(err, session.ErrNoSession) {
		return nil, nil, errors.New("not logged in: run `redliner login` first")
	}
	if err != nil {
		return nil, nil, err
	}
	return session.WithSession(ctx, sess), a.logger.With("user", sess.User.Username, "session_id", sess.ID), nil
}

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := a.api.Ping(cmd.Context())
			if err != nil {
				return fmt.Errorf("backend at %s: %w", a.api.BaseURL(), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}
