package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jrsteele09/go-auth-client/authmodel"
	"github.com/rs/zerolog/log"
)

// maxErrorBody caps how much of a failed response is kept on HTTPError.
const maxErrorBody = 4 << 10

// Login POSTs the credentials to the configured endpoint and authenticates
// with the decoded response. There is exactly one attempt; on failure the
// error is returned and the current session is left as it was.
func (m *Manager) Login(ctx context.Context, username, password string) (State, error) {
	body, err := json.Marshal(authmodel.Credentials{Username: username, Password: password})
	if err != nil {
		return State{}, fmt.Errorf("[Login] encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.conf.EndpointURL(), bytes.NewReader(body))
	if err != nil {
		return State{}, fmt.Errorf("[Login] build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("url", m.conf.EndpointURL()).Msg("login request failed")
		return State{}, fmt.Errorf("[Login] %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		log.Warn().Int("status", resp.StatusCode).Str("username", username).Msg("login rejected")
		return State{}, fmt.Errorf("[Login] %w", err)
	}

	var data authmodel.Response
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return State{}, fmt.Errorf("[Login] decode response: %w", err)
	}

	if err := m.Authenticate(ctx, data); err != nil {
		return m.State(), err
	}
	log.Info().Str("username", m.Username()).Msg("logged in")
	return m.State(), nil
}

func (m *Manager) callLogout(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build logout request: %w", err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &HTTPError{
		Method:     resp.Request.Method,
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}
}
