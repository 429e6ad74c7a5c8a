// Package binding ties UI visibility to the session. A binding evaluates a
// condition once when bound and again on every session change, calling the
// render function only when the result flips.
package binding

import (
	"strings"
	"sync"

	"github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/internal/utils"
	"github.com/jrsteele09/go-auth-client/session"
)

// Source is the read side of session.Manager.
type Source interface {
	LoggedIn() bool
	Username() string
	HasRole(role string) bool
	HasAnyRole(roles ...string) bool
	HasAllRoles(roles ...string) bool
	Subscribe(fn func(session.Event)) (unsubscribe func())
}

var _ Source = (*session.Manager)(nil)

// Condition is re-evaluated on every session change.
type Condition func() bool

func LoggedIn(src Source) Condition {
	return src.LoggedIn
}

func NotLoggedIn(src Source) Condition {
	return func() bool { return !src.LoggedIn() }
}

// HasRole fails when role is blank. The value is matched as is, commas
// included.
func HasRole(src Source, role string) (Condition, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return nil, errors.Wrapf(errors.ErrRoleRequired, "has role")
	}
	return func() bool { return src.HasRole(role) }, nil
}

// HasAnyRole accepts roles as separate values, comma separated lists, or both.
func HasAnyRole(src Source, roles ...string) (Condition, error) {
	list, err := roleList("has any role", roles)
	if err != nil {
		return nil, err
	}
	return func() bool { return src.HasAnyRole(list...) }, nil
}

// HasAllRoles accepts roles as separate values, comma separated lists, or both.
func HasAllRoles(src Source, roles ...string) (Condition, error) {
	list, err := roleList("has all roles", roles)
	if err != nil {
		return nil, err
	}
	return func() bool { return src.HasAllRoles(list...) }, nil
}

func roleList(name string, roles []string) ([]string, error) {
	var list []string
	for _, r := range roles {
		list = append(list, utils.SplitRoles(r)...)
	}
	if len(list) == 0 {
		return nil, errors.Wrapf(errors.ErrRoleRequired, "%s", name)
	}
	return list, nil
}

// Bind renders the current visibility and keeps it in step with the session
// until unbind is called.
func Bind(src Source, cond Condition, render func(visible bool)) (unbind func()) {
	return watch[bool](src, cond, render)
}

// BindUsername renders the username now and whenever it changes.
func BindUsername(src Source, render func(username string)) (unbind func()) {
	return watch[string](src, src.Username, render)
}

// watch subscribes before the first evaluation so no change is missed. One
// caller at a time evaluates; changes arriving meanwhile, including ones
// triggered from eval or render on the same goroutine, mark the value dirty
// and the running caller evaluates again.
func watch[T comparable](src Source, eval func() T, render func(T)) (unbind func()) {
	var (
		lock    sync.Mutex
		running bool
		pending bool
		bound   bool
		current T
	)
	update := func() {
		lock.Lock()
		if running {
			pending = true
			lock.Unlock()
			return
		}
		running = true
		for {
			pending = false
			lock.Unlock()

			v := eval()
			if !bound || v != current {
				bound, current = true, v
				render(v)
			}

			lock.Lock()
			if !pending {
				running = false
				lock.Unlock()
				return
			}
		}
	}

	unbind = src.Subscribe(func(session.Event) { update() })
	update()
	return unbind
}
