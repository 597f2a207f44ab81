package usecase

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pratapsingh123om/WQAM-FINAL/internal/domain"
)

// Approvals drives pending identities to approved or rejected. Both
// transitions are terminal; the server is the sole arbiter of final state.
type Approvals struct {
	gateway domain.APIGateway
	logger  *slog.Logger

	mu       sync.Mutex
	inflight map[int64]int
}

// NewApprovals creates the approval workflow controller.
func NewApprovals(g domain.APIGateway, l *slog.Logger) *Approvals {
	return &Approvals{gateway: g, logger: l, inflight: make(map[int64]int)}
}

// List fetches all pending identities, fresh every time. The list is never
// cached or diffed.
func (uc *Approvals) List(ctx context.Context, creds domain.CredentialStore) ([]domain.Identity, error) {
	return uc.gateway.Pending(ctx, creds)
}

// Approve drives the identity to approved and, on success, returns a fresh
// list so the caller never renders a state the server has moved past. On
// failure the caller keeps its prior list; nothing is removed optimistically.
func (uc *Approvals) Approve(ctx context.Context, creds domain.CredentialStore, id int64) ([]domain.Identity, error) {
	return uc.act(ctx, creds, id, "approve", uc.gateway.Approve)
}

// Reject drives the identity to rejected, with the same relist contract as
// Approve.
func (uc *Approvals) Reject(ctx context.Context, creds domain.CredentialStore, id int64) ([]domain.Identity, error) {
	return uc.act(ctx, creds, id, "reject", uc.gateway.Reject)
}

func (uc *Approvals) act(ctx context.Context, creds domain.CredentialStore, id int64, action string, call func(context.Context, domain.CredentialStore, int64) error) ([]domain.Identity, error) {
	uc.begin(id)
	defer uc.end(id)

	if err := call(ctx, creds, id); err != nil {
		uc.logger.WarnContext(ctx, "approval action failed", "action", action, "id", id, "error", err)
		return nil, err
	}

	uc.logger.InfoContext(ctx, "approval action applied", "action", action, "id", id)
	return uc.gateway.Pending(ctx, creds)
}

// InFlight reports whether an action on id is currently being sent, so a
// rendering layer can disable that one control. It is not a mutex: a second
// concurrent action on the same id is still sent and the server arbitrates.
func (uc *Approvals) InFlight(id int64) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.inflight[id] > 0
}

func (uc *Approvals) begin(id int64) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.inflight[id]++
}

func (uc *Approvals) end(id int64) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.inflight[id]--
	if uc.inflight[id] <= 0 {
		delete(uc.inflight, id)
	}
}
