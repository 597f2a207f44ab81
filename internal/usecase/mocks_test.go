package usecase

import (
	"context"
	"sync"

	"github.com/pratapsingh123om/WQAM-FINAL/internal/domain"
)

// mockGateway implements domain.APIGateway with scripted results and call
// counting.
type mockGateway struct {
	mu sync.Mutex

	session  domain.Session
	loginErr error

	identity *domain.Identity
	meErr    error

	pending    []domain.Identity
	pendingErr error

	approveErr error
	rejectErr  error

	registerErr error

	loginCalls    int
	adminCalls    int
	registerCalls int
	meCalls       int
	pendingCalls  int
	approveCalls  int
	rejectCalls   int
}

func (m *mockGateway) Login(_ context.Context, creds domain.CredentialStore, _, _ string, _ domain.Role) (domain.Session, error) {
	m.mu.Lock()
	m.loginCalls++
	m.mu.Unlock()
	if m.loginErr != nil {
		return domain.Session{}, m.loginErr
	}
	if err := creds.Set(m.session); err != nil {
		return domain.Session{}, err
	}
	return m.session, nil
}

func (m *mockGateway) AdminLogin(_ context.Context, creds domain.CredentialStore, _, _ string) (domain.Session, error) {
	m.mu.Lock()
	m.adminCalls++
	m.mu.Unlock()
	if m.loginErr != nil {
		return domain.Session{}, m.loginErr
	}
	if err := creds.Set(m.session); err != nil {
		return domain.Session{}, err
	}
	return m.session, nil
}

func (m *mockGateway) Register(context.Context, domain.CredentialStore, domain.RegistrationForm, domain.Role) error {
	m.mu.Lock()
	m.registerCalls++
	m.mu.Unlock()
	return m.registerErr
}

func (m *mockGateway) Me(_ context.Context, creds domain.CredentialStore) (*domain.Identity, error) {
	m.mu.Lock()
	m.meCalls++
	m.mu.Unlock()
	if m.meErr != nil {
		// A 401 clears the store at the gateway; mirror that here.
		if m.meErr == domain.ErrAuthenticationFailed {
			creds.Clear()
		}
		return nil, m.meErr
	}
	identity := *m.identity
	return &identity, nil
}

func (m *mockGateway) Pending(context.Context, domain.CredentialStore) ([]domain.Identity, error) {
	m.mu.Lock()
	m.pendingCalls++
	m.mu.Unlock()
	if m.pendingErr != nil {
		return nil, m.pendingErr
	}
	out := make([]domain.Identity, len(m.pending))
	copy(out, m.pending)
	return out, nil
}

func (m *mockGateway) Approve(_ context.Context, _ domain.CredentialStore, id int64) error {
	m.mu.Lock()
	m.approveCalls++
	m.mu.Unlock()
	if m.approveErr != nil {
		return m.approveErr
	}
	m.dropPending(id)
	return nil
}

func (m *mockGateway) Reject(_ context.Context, _ domain.CredentialStore, id int64) error {
	m.mu.Lock()
	m.rejectCalls++
	m.mu.Unlock()
	if m.rejectErr != nil {
		return m.rejectErr
	}
	m.dropPending(id)
	return nil
}

func (m *mockGateway) dropPending(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.pending[:0]
	for _, identity := range m.pending {
		if identity.ID != id {
			kept = append(kept, identity)
		}
	}
	m.pending = kept
}

// mockCache implements domain.IdentityCache without TTL.
type mockCache struct {
	mu      sync.Mutex
	entries map[string]domain.Identity
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]domain.Identity)}
}

func (c *mockCache) Get(token string) (*domain.Identity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	identity, found := c.entries[token]
	if !found {
		return nil, false
	}
	return &identity, true
}

func (c *mockCache) Set(token string, identity domain.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[token] = identity
}

func (c *mockCache) Evict(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, token)
}
