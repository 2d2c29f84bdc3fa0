// cmd/eventdesk is the terminal client: it drives the same navigator as the
// browser build, rendering views as text and keeping the session in a local
// BoltDB file.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Shivanand-hulikatti/eventdesk/internal/app"
	"github.com/Shivanand-hulikatti/eventdesk/internal/client"
	"github.com/Shivanand-hulikatti/eventdesk/internal/config"
	"github.com/Shivanand-hulikatti/eventdesk/internal/console"
	"github.com/Shivanand-hulikatti/eventdesk/internal/logging"
	"github.com/Shivanand-hulikatti/eventdesk/internal/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdin, os.Stdout).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	cfg, loadErr := config.LoadClient()

	root := &cobra.Command{
		Use:           "eventdesk",
		Short:         "Browse and manage the event catalog from a terminal",
		Long:          "Interactive client for the eventdesk catalog. Type help at the prompt for commands.",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if loadErr != nil {
				return fmt.Errorf("client config: %w", loadErr)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, _ := cmd.Flags().GetString("path")
			return runInteractive(cmd.Context(), cfg, start, in, out)
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.APIURL, "api", cfg.APIURL, "data store base URL")
	flags.StringVar(&cfg.SessionPath, "session", cfg.SessionPath, "session database file")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "request timeout")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	root.Flags().String("path", "/", "view to open first")

	root.AddCommand(whoamiCmd(&cfg), logoutCmd(&cfg))
	return root
}

func runInteractive(ctx context.Context, cfg config.Client, start string, in io.Reader, out io.Writer) error {
	log, err := logging.New(cfg.LogLevel, "console")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	kv, err := session.OpenBolt(cfg.SessionPath)
	if err != nil {
		return err
	}
	defer kv.Close()

	page := console.NewPage(out)
	input := console.NewInput(in, out)
	input.Accessible = !isTerminal(in) || !isTerminal(out)
	nav, err := app.New(client.New(cfg.APIURL, cfg.Timeout), app.Host{
		Page:     page,
		Notifier: page,
		Confirm:  input,
		Storage:  kv,
	}, log)
	if err != nil {
		return err
	}

	page.Println("eventdesk: type help for commands")
	loop := &console.Loop{Nav: nav, Page: page, Input: input, Start: start}
	return loop.Run(ctx)
}

func whoamiCmd(cfg *config.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cfg, func(s *session.Store) error {
				st := s.Load()
				if !st.Authenticated {
					fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", st.UserName, st.Role.Label())
				return nil
			})
		},
	}
}

func logoutCmd(cfg *config.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out without opening the interactive client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cfg, func(s *session.Store) error {
				if err := s.Logout(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "signed out")
				return nil
			})
		},
	}
}

func withSession(cfg *config.Client, fn func(*session.Store) error) error {
	log, err := logging.New(cfg.LogLevel, "console")
	if err != nil {
		return err
	}
	kv, err := session.OpenBolt(cfg.SessionPath)
	if err != nil {
		return err
	}
	defer kv.Close()
	return fn(session.NewStore(kv, log))
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
