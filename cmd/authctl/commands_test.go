package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-auth-client/authmodel"
	"github.com/jrsteele09/go-auth-client/internal/authtest"
	"github.com/jrsteele09/go-auth-client/internal/config"
	"github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/stretchr/testify/require"
)

// setupEnv points the CLI at a fake server and a temp file store
func setupEnv(t *testing.T) *authtest.Server {
	t.Helper()
	srv := authtest.New(t)
	srv.AddAccount("ana", authtest.Account{
		Password: "pw",
		Response: authmodel.TokenResponse{
			Username:    "ana",
			AccessToken: "t1",
			TokenType:   "Bearer",
			Roles:       []string{"admin", "ops"},
		},
	})

	t.Setenv("AUTH_ENDPOINT_URL", srv.LoginURL())
	t.Setenv("AUTH_LOGOUT_URL", srv.LogoutURL())
	t.Setenv("AUTH_STORE_DRIVER", config.StoreDriverFile)
	t.Setenv("AUTH_STORE_PATH", t.TempDir())
	t.Setenv("AUTH_PASSWORD", "")
	t.Setenv("LOG_LEVEL", "disabled")
	return srv
}

// run executes one CLI invocation, like a separate process sharing the store
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(config.New())
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"-q"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

// TestCLI_SessionLifecycle logs in, survives a restart, checks access and logs out
func TestCLI_SessionLifecycle(t *testing.T) {
	srv := setupEnv(t)

	out, err := run(t, "status")
	require.NoError(t, err)
	require.Contains(t, out, "not logged in")

	out, err = run(t, "login", "-u", "ana", "-p", "pw")
	require.NoError(t, err)
	require.Contains(t, out, "logged in as ana")

	out, err = run(t, "status")
	require.NoError(t, err)
	require.Contains(t, out, "username:   ana")
	require.Contains(t, out, "admin, ops")

	out, err = run(t, "check", "--name", "reports", "--roles", "admin,ops", "--all")
	require.NoError(t, err)
	require.Contains(t, out, "-> reports")
	require.Contains(t, out, "allowed: reports")

	out, err = run(t, "logout")
	require.NoError(t, err)
	require.Contains(t, out, "logged out")
	require.Equal(t, 1, srv.LogoutCalls())

	out, err = run(t, "check", "--name", "dashboard", "--logged-in", "true")
	require.ErrorIs(t, err, errors.ErrAccessDenied)
	require.Contains(t, out, "-> login")
	require.Contains(t, out, "denied: dashboard")
}

// TestCLI_LoginFailure surfaces the server rejection
func TestCLI_LoginFailure(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "login", "-u", "ana", "-p", "nope")
	require.ErrorContains(t, err, "invalid username or password")
	require.ErrorContains(t, err, "401")

	_, err = run(t, "login", "-u", "ana")
	require.ErrorContains(t, err, "required")
}

// TestCLI_CheckDryRun reports the decision without navigating
func TestCLI_CheckDryRun(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "check", "--dry-run", "--name", "dashboard", "--logged-in", "true")
	require.ErrorIs(t, err, errors.ErrAccessDenied)
	require.Contains(t, out, "would deny: dashboard")
	require.NotContains(t, out, "->")

	_, err = run(t, "login", "-u", "ana", "-p", "pw")
	require.NoError(t, err)

	out, err = run(t, "check", "--dry-run", "--name", "reports", "--roles", "ops")
	require.NoError(t, err)
	require.Contains(t, out, "would allow: reports")
	require.NotContains(t, out, "->")
}

// TestCLI_ClosesStoreOnFailure releases the sqlite handle when a subcommand fails
func TestCLI_ClosesStoreOnFailure(t *testing.T) {
	setupEnv(t)
	t.Setenv("AUTH_STORE_DRIVER", config.StoreDriverSQLite)
	t.Setenv("AUTH_STORE_PATH", filepath.Join(t.TempDir(), "auth.db"))

	cmd := newRootCmd(config.New())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-q", "login", "-u", "ana"})
	require.ErrorContains(t, cmd.Execute(), "required")

	require.NotNil(t, cmd.app)
	err := cmd.app.manager.Restore(context.Background())
	require.ErrorContains(t, err, "database is closed")
}

// TestBuildDestination covers flag parsing
func TestBuildDestination(t *testing.T) {
	dest, err := buildDestination("x", "", "", false)
	require.NoError(t, err)
	require.Nil(t, dest.Auth)

	dest, err = buildDestination("x", "no", "", false)
	require.NoError(t, err)
	require.Equal(t, authmodel.RequireLogin(false), dest.Auth)

	dest, err = buildDestination("x", "", "a, b", true)
	require.NoError(t, err)
	require.Equal(t, authmodel.RequireRoles{Roles: []string{"a", "b"}, All: true}, dest.Auth)

	_, err = buildDestination("x", "maybe", "", false)
	require.Error(t, err)
	_, err = buildDestination("x", "", " , ", false)
	require.ErrorIs(t, err, errors.ErrRoleRequired)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, _, err := openStore("redis", "")
	require.Error(t, err)
}
