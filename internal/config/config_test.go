package config_test

import (
	"testing"

	"github.com/jrsteele09/go-auth-client/authconf"
	"github.com/jrsteele09/go-auth-client/internal/config"
	"github.com/stretchr/testify/require"
)

// TestDefaults checks the values used when no environment is set
func TestDefaults(t *testing.T) {
	t.Setenv("AUTH_ENDPOINT_URL", "")
	t.Setenv("AUTH_TOKEN_FIELD", "")
	c := config.New()

	require.Equal(t, "", c.GetEndpointURL())
	require.Equal(t, "login", c.GetLoginDestination())
	require.Equal(t, config.StoreDriverFile, c.GetStoreDriver())
	require.Equal(t, "access_token", c.GetTokenField())
}

// TestAuthOptions checks env overrides flow into the auth configuration
func TestAuthOptions(t *testing.T) {
	t.Setenv("AUTH_ENDPOINT_URL", "http://auth.local/login")
	t.Setenv("AUTH_LOGOUT_URL", "http://auth.local/logout")
	t.Setenv("AUTH_TOKEN_FIELD", "jwt")
	t.Setenv("AUTH_ROLES_FIELD", "authorities")

	conf, err := authconf.New(config.AuthOptions(config.New())...)
	require.NoError(t, err)
	require.Equal(t, "http://auth.local/login", conf.EndpointURL())
	require.Equal(t, "http://auth.local/logout", conf.LogoutEndpointURL())
	require.Equal(t, "jwt", conf.TokenField())
	require.Equal(t, "authorities", conf.RolesField())
	require.Equal(t, authconf.DefaultUsernameField, conf.UsernameField())
}

// TestStorePath_SQLite uses a database file under the default directory
func TestStorePath_SQLite(t *testing.T) {
	t.Setenv("AUTH_STORE_PATH", "")
	t.Setenv("AUTH_STORE_DRIVER", config.StoreDriverSQLite)
	require.Contains(t, config.New().GetStorePath(), "auth.db")

	t.Setenv("AUTH_STORE_PATH", "/tmp/x.db")
	require.Equal(t, "/tmp/x.db", config.New().GetStorePath())
}
