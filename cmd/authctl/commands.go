package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jrsteele09/go-auth-client/authmodel"
	"github.com/jrsteele09/go-auth-client/guard"
	"github.com/jrsteele09/go-auth-client/internal/config"
	"github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/internal/utils"
	"github.com/jrsteele09/go-auth-client/session"
	"github.com/spf13/cobra"
)

const requestTimeout = 30 * time.Second

type appKey struct{}

// rootCmd releases the store once the command finishes, whatever its outcome.
type rootCmd struct {
	*cobra.Command
	app *app
}

func (r *rootCmd) Execute() error {
	defer func() {
		if r.app != nil {
			r.app.Close()
		}
	}()
	return r.Command.Execute()
}

func newRootCmd(c config.Config) *rootCmd {
	var quiet bool
	r := &rootCmd{}

	root := &cobra.Command{
		Use:   "authctl",
		Short: "Log in, inspect and check a persisted auth session",
		Long: `authctl keeps a session obtained from a login endpoint and answers
authorization questions against it.

Configuration comes from the environment:
  AUTH_ENDPOINT_URL       login endpoint (POST)
  AUTH_LOGOUT_URL         optional logout endpoint (GET)
  AUTH_STORE_DRIVER       file, sqlite or memory
  AUTH_STORE_PATH         directory (file) or database file (sqlite)
  AUTH_*_FIELD            login response field names
  LOG_LEVEL               zerolog level`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !quiet {
				displayAppname(cmd.ErrOrStderr(), c.GetAppName())
			}
			a, err := newApp(cmd.Context(), c)
			if err != nil {
				return err
			}
			r.app = a
			cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, a))
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "do not print the banner")

	root.AddCommand(
		loginCmd(),
		logoutCmd(),
		statusCmd(),
		checkCmd(),
	)
	r.Command = root
	return r
}

func appFrom(cmd *cobra.Command) *app {
	return cmd.Context().Value(appKey{}).(*app)
}

func loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = config.GetEnv("AUTH_PASSWORD", "")
			}
			if username == "" || password == "" {
				return fmt.Errorf("username and password are required")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			state, err := appFrom(cmd).manager.Login(ctx, username, password)
			var httpErr *session.HTTPError
			if errors.As(err, &httpErr) && httpErr.Unauthorized() {
				return fmt.Errorf("invalid username or password: %w", err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", state.Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (or AUTH_PASSWORD)")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			if err := appFrom(cmd).manager.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := appFrom(cmd).manager
			state := m.State()
			out := cmd.OutOrStdout()

			if !state.LoggedIn {
				fmt.Fprintln(out, "not logged in")
				return nil
			}
			fmt.Fprintf(out, "username:   %s\n", state.Username)
			fmt.Fprintf(out, "roles:      %s\n", strings.Join(state.Roles, ", "))
			fmt.Fprintf(out, "token type: %s\n", state.TokenType)
			if exp, ok := m.ExpiresAt(); ok {
				fmt.Fprintf(out, "expires:    %s\n", exp.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func checkCmd() *cobra.Command {
	var (
		name     string
		loggedIn string
		roles    string
		all      bool
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether the session may access a destination",
		Long: `Runs the navigation guard against a destination described by flags.

  authctl check --name dashboard --logged-in=true
  authctl check --name reports --roles admin,ops --all`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dest, err := buildDestination(name, loggedIn, roles, all)
			if err != nil {
				return err
			}
			a := appFrom(cmd)
			out := cmd.OutOrStdout()

			nav := authmodel.NavigatorFunc(func(_ context.Context, destination string) error {
				fmt.Fprintf(out, "-> %s\n", destination)
				return nil
			})
			g, err := guard.New(a.manager, a.conf, nav)
			if err != nil {
				return err
			}
			if dryRun {
				if !g.Allowed(dest) {
					fmt.Fprintf(out, "would deny: %s\n", dest.Name)
					return fmt.Errorf("%w: %s", errors.ErrAccessDenied, dest.Name)
				}
				fmt.Fprintf(out, "would allow: %s\n", dest.Name)
				return nil
			}
			if err := g.Navigate(cmd.Context(), dest); err != nil {
				if errors.Is(err, errors.ErrAccessDenied) {
					fmt.Fprintf(out, "denied: %s\n", dest.Name)
				}
				return err
			}
			fmt.Fprintf(out, "allowed: %s\n", dest.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "destination", "destination name")
	cmd.Flags().StringVar(&loggedIn, "logged-in", "", "require the session to be logged in (true) or logged out (false)")
	cmd.Flags().StringVar(&roles, "roles", "", "comma separated roles")
	cmd.Flags().BoolVar(&all, "all", false, "require all roles instead of any")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report the decision without navigating or running the denial policy")
	cmd.MarkFlagsMutuallyExclusive("logged-in", "roles")
	return cmd
}

func buildDestination(name, loggedIn, roles string, all bool) (*authmodel.Destination, error) {
	dest := &authmodel.Destination{Name: name}
	switch {
	case loggedIn != "":
		var want bool
		switch strings.ToLower(loggedIn) {
		case "true", "yes", "1":
			want = true
		case "false", "no", "0":
		default:
			return nil, fmt.Errorf("invalid --logged-in value %q", loggedIn)
		}
		dest.Auth = authmodel.RequireLogin(want)
	case roles != "":
		list := utils.SplitRoles(roles)
		if len(list) == 0 {
			return nil, errors.Wrapf(errors.ErrRoleRequired, "--roles")
		}
		dest.Auth = authmodel.RequireRoles{Roles: list, All: all}
	}
	return dest, nil
}
