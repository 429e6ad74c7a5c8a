// Package authtest runs an in-process auth server for tests.
package authtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jrsteele09/go-auth-client/authmodel"
)

const (
	LoginPath  = "/auth/login"
	LogoutPath = "/auth/logout"
	MePath     = "/api/me"
)

// Account is a user the server accepts, and the response it returns.
type Account struct {
	Password string
	Response authmodel.TokenResponse
}

// Server records the requests it sees so tests can assert on them.
type Server struct {
	*httptest.Server

	lock          sync.Mutex
	accounts      map[string]Account
	logoutStatus  int
	loginCalls    int
	logoutCalls   int
	authHeaders   []string
	loginRequests []authmodel.Credentials
}

// New starts a server closed at test cleanup.
func New(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		accounts:     make(map[string]Account),
		logoutStatus: http.StatusNoContent,
	}
	r := chi.NewRouter()
	r.Post(LoginPath, s.login)
	r.Get(LogoutPath, s.logout)
	r.Get(MePath, s.me)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// AddAccount registers username with the given password and login response.
func (s *Server) AddAccount(username string, account Account) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.accounts[username] = account
}

// SetLogoutStatus makes the logout endpoint answer with status.
func (s *Server) SetLogoutStatus(status int) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.logoutStatus = status
}

func (s *Server) LoginURL() string  { return s.URL + LoginPath }
func (s *Server) LogoutURL() string { return s.URL + LogoutPath }
func (s *Server) MeURL() string     { return s.URL + MePath }

func (s *Server) LoginCalls() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.loginCalls
}

func (s *Server) LogoutCalls() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.logoutCalls
}

// LoginRequests returns the credential bodies received by the login endpoint.
func (s *Server) LoginRequests() []authmodel.Credentials {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]authmodel.Credentials(nil), s.loginRequests...)
}

// AuthHeaders returns the Authorization header of every request, in order.
func (s *Server) AuthHeaders() []string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]string(nil), s.authHeaders...)
}

func (s *Server) record(r *http.Request) {
	s.authHeaders = append(s.authHeaders, r.Header.Get("Authorization"))
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.record(r)
	s.loginCalls++

	var creds authmodel.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, `{"error":"invalid_request"}`, http.StatusBadRequest)
		return
	}
	s.loginRequests = append(s.loginRequests, creds)

	account, ok := s.accounts[creds.Username]
	if !ok || account.Password != creds.Password {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(account.Response)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.record(r)
	s.logoutCalls++
	w.WriteHeader(s.logoutStatus)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.record(r)
	if r.Header.Get("Authorization") == "" {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ToResponse converts r into the generic map a decoded login response has.
func ToResponse(r authmodel.TokenResponse) authmodel.Response {
	resp := authmodel.Response{}
	if r.Username != "" {
		resp["username"] = r.Username
	}
	if r.AccessToken != "" {
		resp["access_token"] = r.AccessToken
	}
	if r.TokenType != "" {
		resp["token_type"] = r.TokenType
	}
	if r.RefreshToken != "" {
		resp["refresh_token"] = r.RefreshToken
	}
	if r.Roles != nil {
		roles := make([]any, len(r.Roles))
		for i, role := range r.Roles {
			roles[i] = role
		}
		resp["roles"] = roles
	}
	return resp
}
