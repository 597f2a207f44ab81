// Package gateway is the single outbound pipeline to the WQAM API server.
// Every authenticated request attaches the stored bearer token, and every
// 401 response evicts the credential store before the failure propagates.
// No other component decides that a session is dead.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/pratapsingh123om/WQAM-FINAL/internal/domain"
)

// Backend talks to the WQAM API server. Implements domain.APIGateway.
type Backend struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	// onSessionEvicted, if set, is called with the evicted token after a 401
	// clears the credential store. The resolver uses it to drop cache entries.
	onSessionEvicted func(token string)
}

// Option configures a Backend.
type Option func(*Backend)

// WithEvictionHook registers a callback invoked with the token that a 401
// response just evicted.
func WithEvictionHook(fn func(token string)) Option {
	return func(b *Backend) { b.onSessionEvicted = fn }
}

// NewBackend creates a gateway with a tuned HTTP transport and a bounded
// request timeout.
func NewBackend(baseURL string, timeout time.Duration, logger *slog.Logger, opts ...Option) *Backend {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	b := &Backend{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// detailBody matches the API server's 422 response shape.
type detailBody struct {
	Detail []domain.FieldError `json:"detail"`
}

// do executes one request through the pipeline. creds may be nil for calls
// that can never carry a session.
func (b *Backend) do(ctx context.Context, creds domain.CredentialStore, method, path string, query url.Values, body, out any) error {
	u := b.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	var attached domain.Session
	if creds != nil {
		if s, ok := creds.Get(); ok && s.Valid() {
			req.Header.Set("Authorization", "Bearer "+s.Token)
			attached = s
		}
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %w", domain.ErrUpstream, err)
		}
		return nil

	case resp.StatusCode == http.StatusUnauthorized:
		b.evict(ctx, creds, attached, method, path)
		return domain.ErrAuthenticationFailed

	case resp.StatusCode == http.StatusForbidden:
		return domain.ErrNotAuthorized

	case resp.StatusCode == http.StatusUnprocessableEntity:
		var body detailBody
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || len(body.Detail) == 0 {
			return &domain.ValidationError{}
		}
		return &domain.ValidationError{Fields: body.Detail}

	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound

	default:
		return fmt.Errorf("%w: status %d", domain.ErrUpstream, resp.StatusCode)
	}
}

// evict clears the credential store after a 401. Idempotent: clearing an
// already-empty store is a no-op.
func (b *Backend) evict(ctx context.Context, creds domain.CredentialStore, attached domain.Session, method, path string) {
	if creds == nil {
		return
	}
	creds.Clear()
	if attached.Token != "" && b.onSessionEvicted != nil {
		b.onSessionEvicted(attached.Token)
	}
	b.logger.InfoContext(ctx, "session evicted on 401",
		"method", method,
		"path", path,
		"had_session", attached.Token != "")
}

// tokenResponse matches the login endpoints' success body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
}

func (b *Backend) sessionFromToken(tr tokenResponse, want domain.Role) (domain.Session, error) {
	role, err := domain.ParseRole(tr.Role)
	if err != nil || tr.AccessToken == "" {
		return domain.Session{}, fmt.Errorf("%w: malformed token response", domain.ErrUpstream)
	}
	// The server is the authority on the role, but a session must never be
	// stored under a surface it was not requested for.
	if role != want {
		return domain.Session{}, domain.ErrAuthenticationFailed
	}
	return domain.Session{Token: tr.AccessToken, Role: role}, nil
}

// Login authenticates against POST /auth/login and stores the returned
// session on success.
func (b *Backend) Login(ctx context.Context, creds domain.CredentialStore, email, password string, role domain.Role) (domain.Session, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
		"role":     role.String(),
	}
	var tr tokenResponse
	if err := b.do(ctx, creds, http.MethodPost, "/auth/login", nil, body, &tr); err != nil {
		return domain.Session{}, err
	}
	s, err := b.sessionFromToken(tr, role)
	if err != nil {
		return domain.Session{}, err
	}
	if err := creds.Set(s); err != nil {
		return domain.Session{}, err
	}
	return s, nil
}

// AdminLogin authenticates against POST /auth/admin-login. The endpoint has
// its own credential namespace and takes no role field; the response role
// must still be admin before anything is stored.
func (b *Backend) AdminLogin(ctx context.Context, creds domain.CredentialStore, email, password string) (domain.Session, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	var tr tokenResponse
	if err := b.do(ctx, creds, http.MethodPost, "/auth/admin-login", nil, body, &tr); err != nil {
		return domain.Session{}, err
	}
	s, err := b.sessionFromToken(tr, domain.RoleAdmin)
	if err != nil {
		return domain.Session{}, err
	}
	if err := creds.Set(s); err != nil {
		return domain.Session{}, err
	}
	return s, nil
}

// Register submits a role-specific registration to POST /register?role=.
// Success yields no session; the account starts in pending.
func (b *Backend) Register(ctx context.Context, creds domain.CredentialStore, form domain.RegistrationForm, role domain.Role) error {
	query := url.Values{"role": []string{role.String()}}
	return b.do(ctx, creds, http.MethodPost, "/register", query, form, nil)
}

// Me resolves the current session against GET /me.
func (b *Backend) Me(ctx context.Context, creds domain.CredentialStore) (*domain.Identity, error) {
	var identity domain.Identity
	if err := b.do(ctx, creds, http.MethodGet, "/me", nil, nil, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// Pending fetches the ordered list of identities awaiting disposition from
// GET /admin/pending. Never cached.
func (b *Backend) Pending(ctx context.Context, creds domain.CredentialStore) ([]domain.Identity, error) {
	var list []domain.Identity
	if err := b.do(ctx, creds, http.MethodGet, "/admin/pending", nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Approve drives one pending identity to approved.
func (b *Backend) Approve(ctx context.Context, creds domain.CredentialStore, id int64) error {
	return b.do(ctx, creds, http.MethodPost, fmt.Sprintf("/admin/approve/%d", id), nil, nil, nil)
}

// Reject drives one pending identity to rejected.
func (b *Backend) Reject(ctx context.Context, creds domain.CredentialStore, id int64) error {
	return b.do(ctx, creds, http.MethodPost, fmt.Sprintf("/admin/reject/%d", id), nil, nil, nil)
}
