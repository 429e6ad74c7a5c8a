// Package session owns the authenticated state of the client. All mutation
// goes through Authenticate, Logout and Restore; everything else reads.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-auth-client/authconf"
	"github.com/jrsteele09/go-auth-client/authmodel"
	"github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/internal/utils"
	"github.com/jrsteele09/go-auth-client/store"
	"github.com/rs/zerolog/log"
)

// State is a snapshot of the session.
type State struct {
	Username     string
	Roles        []string // nil when the response carried no roles
	Token        string
	RefreshToken string
	TokenType    string
	LoggedIn     bool
}

// Manager performs login/logout, answers authorization questions and keeps
// the credential header in step with the session.
type Manager struct {
	conf   *authconf.Config
	repo   store.Repo
	client *http.Client

	mu     sync.RWMutex
	state  State
	header string

	// held across apply and persist so memory and store agree
	writeLock sync.Mutex

	subsLock sync.Mutex
	subs     map[uuid.UUID]func(Event)
}

type Option func(*Manager)

// WithHTTPClient sets the client used for the login and logout calls. The
// credential header is layered over its transport.
func WithHTTPClient(c *http.Client) Option {
	return func(m *Manager) {
		m.client = c
	}
}

func New(conf *authconf.Config, repo store.Repo, opts ...Option) (*Manager, error) {
	if conf == nil {
		return nil, fmt.Errorf("[session.New] configuration is required")
	}
	if repo == nil {
		return nil, fmt.Errorf("[session.New] store is required")
	}
	m := &Manager{
		conf:   conf,
		repo:   repo,
		client: http.DefaultClient,
		subs:   make(map[uuid.UUID]func(Event)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.client == nil {
		m.client = http.DefaultClient
	}

	client := *m.client
	client.Transport = m.Transport(m.client.Transport)
	m.client = &client
	return m, nil
}

// Authenticate replaces the session with the values mapped out of resp,
// updates the credential header, runs the OnAuthenticated hook and persists
// resp verbatim. The in-memory session is updated even when persisting fails.
// The OnAuthenticated hook must not call Authenticate, Logout or Restore.
func (m *Manager) Authenticate(ctx context.Context, resp authmodel.Response) error {
	if resp == nil {
		resp = authmodel.Response{}
	}
	m.writeLock.Lock()
	state := m.apply(resp)

	// header is already in place so the hook can make authenticated calls
	m.conf.OnAuthenticated(resp)

	err := m.persist(ctx, resp)
	m.writeLock.Unlock()

	m.broadcast(state)
	if err != nil {
		log.Error().Err(err).Str("key", store.SessionKey).Msg("failed to persist session")
		return fmt.Errorf("[Authenticate] %w", err)
	}
	log.Debug().Str("username", state.Username).Bool("logged_in", state.LoggedIn).Msg("session authenticated")
	return nil
}

// Logout clears the session, the credential header and the persisted key.
// When a logout endpoint is configured it is called afterwards and its
// failure is returned.
func (m *Manager) Logout(ctx context.Context) error {
	m.writeLock.Lock()
	state := m.apply(authmodel.Response{})

	var errs []error
	if err := m.repo.Remove(ctx, store.SessionKey); err != nil {
		errs = append(errs, fmt.Errorf("remove persisted session: %w", err))
	}
	m.writeLock.Unlock()
	m.broadcast(state)

	if url := m.conf.LogoutEndpointURL(); url != "" {
		if err := m.callLogout(ctx, url); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		err := errors.Join(errs...)
		log.Warn().Err(err).Msg("logout completed with errors")
		return fmt.Errorf("[Logout] %w", err)
	}
	log.Debug().Msg("logged out")
	return nil
}

// Restore loads the persisted response and replays it through Authenticate.
// A missing or unreadable value leaves the session logged out. Storage
// failures other than not found are returned without touching the store.
func (m *Manager) Restore(ctx context.Context) error {
	data, err := m.repo.Get(ctx, store.SessionKey)
	if errors.Is(err, errors.ErrNotFound) {
		return m.Authenticate(ctx, authmodel.Response{})
	}
	if err != nil {
		m.writeLock.Lock()
		state := m.apply(authmodel.Response{})
		m.writeLock.Unlock()
		m.broadcast(state)
		return fmt.Errorf("[Restore] %w", err)
	}

	var resp authmodel.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		log.Warn().Err(err).Str("key", store.SessionKey).Msg("discarding malformed persisted session")
		resp = authmodel.Response{}
	}
	return m.Authenticate(ctx, resp)
}

// State returns a copy of the current session.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.state
	s.Roles = utils.CloneStrings(s.Roles)
	return s
}

func (m *Manager) Username() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Username
}

func (m *Manager) LoggedIn() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.LoggedIn
}

func (m *Manager) apply(resp authmodel.Response) State {
	s := State{
		Username:     stringField(resp, m.conf.UsernameField()),
		Token:        stringField(resp, m.conf.TokenField()),
		Roles:        rolesField(resp, m.conf.RolesField()),
		RefreshToken: stringField(resp, m.conf.RefreshTokenField()),
		TokenType:    stringField(resp, m.conf.TokenTypeField()),
	}
	s.LoggedIn = s.Token != ""

	var header string
	if s.LoggedIn {
		header = strings.TrimSpace(s.TokenType + " " + s.Token)
	}

	m.mu.Lock()
	m.state = s
	m.header = header
	m.mu.Unlock()

	s.Roles = utils.CloneStrings(s.Roles)
	return s
}

func (m *Manager) persist(ctx context.Context, resp authmodel.Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return m.repo.Set(ctx, store.SessionKey, data)
}

// stringField reads strings and numbers. A numeric zero reads as empty so a
// token of 0 does not count as logged in.
func stringField(resp authmodel.Response, name string) string {
	switch v := resp[name].(type) {
	case string:
		return v
	case float64:
		if v == 0 {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		if v == 0 {
			return ""
		}
		return strconv.Itoa(v)
	default:
		return ""
	}
}

// rolesField accepts a JSON array or a comma separated string.
func rolesField(resp authmodel.Response, name string) []string {
	switch v := resp[name].(type) {
	case []any:
		return utils.ToStringSlice(v)
	case []string:
		return utils.CloneStrings(v)
	case string:
		return utils.SplitRoles(v)
	default:
		return nil
	}
}
