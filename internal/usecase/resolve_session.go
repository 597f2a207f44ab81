package usecase

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/pratapsingh123om/WQAM-FINAL/internal/domain"
)

// ResolveSession derives the authenticated identity from whatever the
// credential store holds. It is the only component that may conclude
// "unauthenticated" from a stored token.
type ResolveSession struct {
	gateway domain.APIGateway
	cache   domain.IdentityCache
	group   singleflight.Group
	logger  *slog.Logger
}

// NewResolveSession creates the resolver.
func NewResolveSession(g domain.APIGateway, c domain.IdentityCache, l *slog.Logger) *ResolveSession {
	return &ResolveSession{gateway: g, cache: c, logger: l}
}

// Execute resolves the current session. With no stored session it returns
// ErrNoSession without a network call. Otherwise the token is validated
// against the identity endpoint, cache-through with concurrent resolutions
// for one token deduplicated. Any failure, including a network error or an
// identity that does not match the stored role, invalidates the session: the store
// is cleared, the cache entry evicted, and the result is unauthenticated.
// Partial or stale identity is never returned.
func (uc *ResolveSession) Execute(ctx context.Context, creds domain.CredentialStore) (*domain.Identity, error) {
	s, ok := creds.Get()
	if !ok || !s.Valid() {
		return nil, domain.ErrNoSession
	}

	if cached, found := uc.cache.Get(s.Token); found {
		if cached.Role == s.Role {
			return cached, nil
		}
		uc.cache.Evict(s.Token)
	}

	v, err, _ := uc.group.Do(s.Token, func() (any, error) {
		return uc.gateway.Me(ctx, creds)
	})
	if err != nil {
		uc.invalidate(ctx, creds, s.Token, err)
		return nil, domain.ErrNoSession
	}

	identity := v.(*domain.Identity)
	if identity.Role != s.Role || identity.Status != domain.StatusApproved {
		uc.invalidate(ctx, creds, s.Token, domain.ErrAuthenticationFailed)
		return nil, domain.ErrNoSession
	}

	uc.cache.Set(s.Token, *identity)
	return identity, nil
}

func (uc *ResolveSession) invalidate(ctx context.Context, creds domain.CredentialStore, token string, cause error) {
	creds.Clear()
	uc.cache.Evict(token)
	uc.logger.InfoContext(ctx, "stored session invalidated", "cause", cause.Error())
}
