package session

import "net/http"

// AuthorizationHeader returns the credential header value, "" when logged out.
func (m *Manager) AuthorizationHeader() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.header
}

// Transport wraps base so every request carries the current credential
// header. A header already set on the request wins. A nil base means
// http.DefaultTransport.
func (m *Manager) Transport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &credentialTransport{base: base, m: m}
}

// Client returns an http.Client whose requests carry the credential header.
func (m *Manager) Client() *http.Client {
	return m.client
}

type credentialTransport struct {
	base http.RoundTripper
	m    *Manager
}

func (t *credentialTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	header := t.m.AuthorizationHeader()
	if header == "" || req.Header.Get("Authorization") != "" {
		return t.base.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", header)
	return t.base.RoundTrip(r)
}
