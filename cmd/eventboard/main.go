package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/eventboard/eventboard/app"
	"github.com/eventboard/eventboard/client"
	"github.com/eventboard/eventboard/internal/config"
	"github.com/eventboard/eventboard/internal/fakeapi"
	"github.com/eventboard/eventboard/router"
	"github.com/eventboard/eventboard/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// rootFlags holds the persistent flags.
type rootFlags struct {
	apiURL     string
	configFile string
	session    string
	debug      bool
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:           "eventboard",
		Short:         "Terminal client for the events API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.InitConsoleLogger(cmd.ErrOrStderr(), os.Getenv(config.EnvPrefix+"_LOG_LEVEL"), flags.debug)
			if flags.debug {
				log.Debug().Msg("debug logging enabled")
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "Base URL of the events API (default $EVENTBOARD_API_URL or "+client.DefaultBaseURL+")")
	rootCmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "YAML config file (overrides environment)")
	rootCmd.PersistentFlags().StringVar(&flags.session, "session", "", "Session cookie value (default $EVENTBOARD_SESSION)")
	rootCmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "Enable verbose debug output")

	rootCmd.AddCommand(newOpenCmd(&flags))
	rootCmd.AddCommand(newShellCmd(&flags))
	rootCmd.AddCommand(newWhoamiCmd(&flags))
	rootCmd.AddCommand(newLoginCmd(&flags))
	rootCmd.AddCommand(newLogoutCmd(&flags))
	rootCmd.AddCommand(newMostViewedCmd(&flags))
	rootCmd.AddCommand(newCategoryCmd(&flags))
	rootCmd.AddCommand(newRoutesCmd())
	rootCmd.AddCommand(newFakeAPICmd())

	return rootCmd
}

// settings resolves environment, config file and flags, in that order.
func (f *rootFlags) settings() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if f.configFile != "" {
		if err := cfg.MergeFile(f.configFile); err != nil {
			return nil, err
		}
	}
	if f.apiURL != "" {
		cfg.APIURL = f.apiURL
	}
	if f.session != "" {
		cfg.Session = f.session
	}
	if f.debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (f *rootFlags) client() (*client.Client, error) {
	cfg, err := f.settings()
	if err != nil {
		return nil, err
	}
	return cfg.NewClient()
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func newOpenCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Render one route and exit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.settings()
			if err != nil {
				return err
			}
			a := app.New(cfg, app.WithOutput(cmd.OutOrStdout()), app.WithInitialPath(args[0]))
			defer func() { _ = a.Close() }()
			return a.Start(cmd.Context())
		},
	}
}

func newShellCmd(flags *rootFlags) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell (type help for commands)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.settings()
			if err != nil {
				return err
			}
			a := app.New(cfg, app.WithOutput(cmd.OutOrStdout()), app.WithInitialPath(path))
			defer func() { _ = a.Close() }()
			if err := a.Start(cmd.Context()); err != nil {
				return err
			}
			return app.NewShell(a, cmd.OutOrStdout()).Run(cmd.Context(), cmd.InOrStdin())
		},
	}
	cmd.Flags().StringVar(&path, "path", "/", "Route to open first")
	return cmd
}

func newWhoamiCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the user bound to the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.client()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			auth := store.NewAuthStore(c)
			auth.FetchMe(cmd.Context())
			u := auth.User()
			if u == nil {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "anonymous")
				return err
			}
			return printJSON(cmd.OutOrStdout(), u)
		},
	}
}

func newLoginCmd(flags *rootFlags) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Start a session and print the cookie to export",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.client()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			start := time.Now()
			auth := store.NewAuthStore(c)
			if err := auth.Login(cmd.Context(), email, password); err != nil {
				log.Debug().Err(err).Dur("elapsed", time.Since(start)).Msg("login failed")
				return errors.New(client.ErrorMessage(err))
			}
			log.Debug().Str("email", email).Dur("elapsed", time.Since(start)).Msg("login completed")

			out := cmd.OutOrStdout()
			if u := auth.User(); u != nil {
				fmt.Fprintf(out, "Logged in as %s (%s)\n", u.FullName(), u.Type)
			}
			_, err = fmt.Fprintf(out, "export %s_SESSION=%s\n", config.EnvPrefix, c.Session())
			return err
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.client()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			store.NewAuthStore(c).Logout(cmd.Context())
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return err
		},
	}
}

func newMostViewedCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "most-viewed",
		Short: "List the most viewed events",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.client()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			events := store.NewEventStore(c)
			events.LoadMostViewed(cmd.Context())
			if msg, failed := events.ErrorMessage(); failed {
				return errors.New(msg)
			}
			return printJSON(cmd.OutOrStdout(), events.MostViewedEvents())
		},
	}
}

func newCategoryCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "category <id>",
		Short: "List the first page of events in a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid category id %q", args[0])
			}
			c, err := flags.client()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			events := store.NewEventStore(c)
			events.LoadByCategory(cmd.Context(), id)
			if msg, failed := events.ErrorMessage(); failed {
				return errors.New(msg)
			}
			return printJSON(cmd.OutOrStdout(), events.CategoryEvents())
		},
	}
}

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the client routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.PrintRoutes(cmd.OutOrStdout(), router.Default())
		},
	}
}

func newFakeAPICmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "fake-api",
		Short: "Serve the in-memory fixture API",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := &http.Server{
				Addr:              addr,
				Handler:           fakeapi.New(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			log.Info().Str("addr", addr).
				Str("admin", fakeapi.AdminEmail).
				Str("creator", fakeapi.CreatorEmail).
				Msg("fixture API listening")

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":3000", "Listen address")
	return cmd
}
