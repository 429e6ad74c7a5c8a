package authmodel

import "context"

// Destination is a navigation target with an optional access requirement.
type Destination struct {
	Name string

	// Auth is nil when the destination is unrestricted.
	Auth Requirement
}

// Requirement is either RequireLogin or RequireRoles.
type Requirement interface {
	requirement()
}

// RequireLogin matches when the session's logged in state equals the value.
// RequireLogin(false) is used for pages such as the login form itself.
type RequireLogin bool

// RequireRoles matches when the session holds any of Roles, or all of them
// when All is set.
type RequireRoles struct {
	Roles []string
	All   bool
}

func (RequireLogin) requirement() {}
func (RequireRoles) requirement() {}

// Navigator moves the host application to a named destination.
type Navigator interface {
	Go(ctx context.Context, destination string) error
}

// NavigatorFunc adapts a function to a Navigator.
type NavigatorFunc func(ctx context.Context, destination string) error

func (f NavigatorFunc) Go(ctx context.Context, destination string) error {
	return f(ctx, destination)
}
