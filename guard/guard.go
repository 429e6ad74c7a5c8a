// Package guard sits between the host's navigation layer and the session:
// every transition is checked with CanAccess and denied transitions are
// handed to the configured denial policy instead.
package guard

import (
	"context"
	"fmt"
	"strings"

	"github.com/jrsteele09/go-auth-client/authconf"
	"github.com/jrsteele09/go-auth-client/authmodel"
	"github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/rs/zerolog/log"
)

// AccessChecker is the part of session.Manager the guard needs.
type AccessChecker interface {
	CanAccess(dest *authmodel.Destination) bool
}

type Guard struct {
	access AccessChecker
	conf   *authconf.Config
	nav    authmodel.Navigator
}

func New(access AccessChecker, conf *authconf.Config, nav authmodel.Navigator) (*Guard, error) {
	if access == nil || conf == nil || nav == nil {
		return nil, fmt.Errorf("[guard.New] access checker, configuration and navigator are required")
	}
	return &Guard{access: access, conf: conf, nav: nav}, nil
}

// Navigate completes the transition to dest when allowed. Otherwise the
// transition is aborted, OnDenied runs with the guard's navigator and
// ErrAccessDenied is returned. A role requirement naming no roles fails with
// ErrRoleRequired before anything else runs.
func (g *Guard) Navigate(ctx context.Context, dest *authmodel.Destination) error {
	if err := validate(dest); err != nil {
		return err
	}
	if g.access.CanAccess(dest) {
		if dest == nil {
			return nil
		}
		return g.nav.Go(ctx, dest.Name)
	}

	log.Info().Str("destination", dest.Name).Msg("navigation denied")
	if err := g.conf.OnDenied(ctx, dest, g.nav); err != nil {
		return fmt.Errorf("%w: %s: on denied: %w", errors.ErrAccessDenied, dest.Name, err)
	}
	return fmt.Errorf("%w: %s", errors.ErrAccessDenied, dest.Name)
}

// Allowed reports whether Navigate would let dest through.
func (g *Guard) Allowed(dest *authmodel.Destination) bool {
	return g.access.CanAccess(dest)
}

func validate(dest *authmodel.Destination) error {
	if dest == nil {
		return nil
	}
	var roles []string
	switch req := dest.Auth.(type) {
	case authmodel.RequireRoles:
		roles = req.Roles
	case *authmodel.RequireRoles:
		if req == nil {
			return nil
		}
		roles = req.Roles
	default:
		return nil
	}
	for _, r := range roles {
		if strings.TrimSpace(r) != "" {
			return nil
		}
	}
	return errors.Wrapf(errors.ErrRoleRequired, "[guard.Navigate] %s", dest.Name)
}
