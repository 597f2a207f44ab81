package domain

import "context"

// CredentialStore owns the session artifact for one browsing context. Both
// fields (token and role) are always written and removed together; clearing
// an empty store is a no-op.
type CredentialStore interface {
	Set(s Session) error
	Get() (Session, bool)
	Clear()
}

// RegistrationForm is the role-specific payload submitted to the registration
// endpoint.
type RegistrationForm struct {
	Name          string `json:"name,omitempty"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Organisation  string `json:"organisation,omitempty"`
	IndustryType  string `json:"industry_type,omitempty"`
	ValidatorType string `json:"validator_type,omitempty"`
}

// APIGateway is the single outbound pipeline to the WQAM API server. The
// credential store is passed per call because it is bound to the request
// that is currently being served.
type APIGateway interface {
	Login(ctx context.Context, creds CredentialStore, email, password string, role Role) (Session, error)
	AdminLogin(ctx context.Context, creds CredentialStore, email, password string) (Session, error)
	Register(ctx context.Context, creds CredentialStore, form RegistrationForm, role Role) error
	Me(ctx context.Context, creds CredentialStore) (*Identity, error)
	Pending(ctx context.Context, creds CredentialStore) ([]Identity, error)
	Approve(ctx context.Context, creds CredentialStore, id int64) error
	Reject(ctx context.Context, creds CredentialStore, id int64) error
}

// IdentityCache provides read/write access to recently resolved identities,
// keyed by the token they were resolved with.
type IdentityCache interface {
	Get(token string) (*Identity, bool)
	Set(token string, identity Identity)
	Evict(token string)
}
