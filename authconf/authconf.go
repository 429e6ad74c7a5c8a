// Package authconf holds the immutable configuration of the auth client:
// endpoints, the login response field mapping and the two policy callbacks.
package authconf

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-auth-client/authmodel"
	"github.com/jrsteele09/go-auth-client/internal/errors"
)

const (
	DefaultLoginDestination  = "login"
	DefaultUsernameField     = "username"
	DefaultTokenField        = "access_token"
	DefaultRolesField        = "roles"
	DefaultRefreshTokenField = "refresh_token"
	DefaultTokenTypeField    = "token_type"
)

// DeniedFunc is invoked when navigation to dest is blocked. nav is the
// navigator that was asked to perform the transition.
type DeniedFunc func(ctx context.Context, dest *authmodel.Destination, nav authmodel.Navigator) error

// AuthenticatedFunc is invoked with the raw response after the credential
// header has been updated.
type AuthenticatedFunc func(resp authmodel.Response)

// Config is built once by New and is read-only afterwards.
type Config struct {
	loginDestination  string
	endpointURL       string
	logoutEndpointURL string

	usernameField     string
	tokenField        string
	rolesField        string
	refreshTokenField string
	tokenTypeField    string

	onDenied        DeniedFunc
	onAuthenticated AuthenticatedFunc
}

type Option func(*Config) error

// New applies opts over the defaults.
func New(opts ...Option) (*Config, error) {
	c := &Config{
		loginDestination:  DefaultLoginDestination,
		usernameField:     DefaultUsernameField,
		tokenField:        DefaultTokenField,
		rolesField:        DefaultRolesField,
		refreshTokenField: DefaultRefreshTokenField,
		tokenTypeField:    DefaultTokenTypeField,
		onAuthenticated:   func(authmodel.Response) {},
	}
	c.onDenied = c.redirectToLogin
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("[authconf.New] %w", err)
		}
	}
	return c, nil
}

// Default returns the configuration with every default in place.
func Default() *Config {
	c, _ := New()
	return c
}

func (c *Config) redirectToLogin(ctx context.Context, _ *authmodel.Destination, nav authmodel.Navigator) error {
	if nav == nil {
		return nil
	}
	return nav.Go(ctx, c.loginDestination)
}

func (c *Config) LoginDestination() string { return c.loginDestination }
func (c *Config) EndpointURL() string { return c.endpointURL }
func (c *Config) LogoutEndpointURL() string { return c.logoutEndpointURL }
func (c *Config) UsernameField() string { return c.usernameField }
func (c *Config) TokenField() string { return c.tokenField }
func (c *Config) RolesField() string { return c.rolesField }
func (c *Config) RefreshTokenField() string { return c.refreshTokenField }
func (c *Config) TokenTypeField() string { return c.tokenTypeField }

// OnDenied runs the denial policy for dest.
func (c *Config) OnDenied(ctx context.Context, dest *authmodel.Destination, nav authmodel.Navigator) error {
	return c.onDenied(ctx, dest, nav)
}

// OnAuthenticated runs the post authentication hook.
func (c *Config) OnAuthenticated(resp authmodel.Response) {
	c.onAuthenticated(resp)
}

func WithLoginDestination(destination string) Option {
	return func(c *Config) error {
		c.loginDestination = destination
		return nil
	}
}

func WithEndpointURL(url string) Option {
	return func(c *Config) error {
		c.endpointURL = url
		return nil
	}
}

// WithLogoutEndpointURL enables the logout GET. An empty url disables it.
func WithLogoutEndpointURL(url string) Option {
	return func(c *Config) error {
		c.logoutEndpointURL = url
		return nil
	}
}

func WithUsernameField(name string) Option {
	return fieldOption("username", name, func(c *Config) *string { return &c.usernameField })
}

func WithTokenField(name string) Option {
	return fieldOption("token", name, func(c *Config) *string { return &c.tokenField })
}

func WithRolesField(name string) Option {
	return fieldOption("roles", name, func(c *Config) *string { return &c.rolesField })
}

func WithRefreshTokenField(name string) Option {
	return fieldOption("refresh token", name, func(c *Config) *string { return &c.refreshTokenField })
}

func WithTokenTypeField(name string) Option {
	return fieldOption("token type", name, func(c *Config) *string { return &c.tokenTypeField })
}

func WithOnDenied(fn DeniedFunc) Option {
	return func(c *Config) error {
		if fn == nil {
			return errors.Wrapf(errors.ErrNilCallback, "on denied")
		}
		c.onDenied = fn
		return nil
	}
}

func WithOnAuthenticated(fn AuthenticatedFunc) Option {
	return func(c *Config) error {
		if fn == nil {
			return errors.Wrapf(errors.ErrNilCallback, "on authenticated")
		}
		c.onAuthenticated = fn
		return nil
	}
}

func fieldOption(label, name string, field func(*Config) *string) Option {
	return func(c *Config) error {
		if name == "" {
			return errors.Wrapf(errors.ErrEmptyFieldName, "%s field", label)
		}
		*field(c) = name
		return nil
	}
}
