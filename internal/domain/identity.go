package domain

// Identity is the client-side projection of a registered account. The record
// itself is owned by the WQAM API server; nothing here mutates it directly.
type Identity struct {
	ID           int64  `json:"id"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	Status       Status `json:"status"`
	Organisation string `json:"organisation,omitempty"`

	// IndustryType is set only for role "user", ValidatorType only for
	// role "validator". Admins carry neither.
	IndustryType  string `json:"industry_type,omitempty"`
	ValidatorType string `json:"validator_type,omitempty"`
}

// Subtype choices offered at registration.
var (
	IndustryTypes  = []string{"Industry", "STP", "WTP", "Custom"}
	ValidatorTypes = []string{"Govt", "Private", "AI-enabled"}
)

// Session is the client-held proof of authentication: an opaque access token
// plus the role it was issued for. The credential store is its sole owner.
type Session struct {
	Token string
	Role  Role
}

// Valid reports whether s counts as a session at all. An empty token or an
// unknown role means "no session".
func (s Session) Valid() bool {
	return s.Token != "" && s.Role.Valid()
}
