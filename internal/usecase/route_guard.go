package usecase

import "github.com/pratapsingh123om/WQAM-FINAL/internal/domain"

// Client-side route surface.
const (
	PathHome               = "/"
	PathAuth               = "/auth"
	PathAdminLogin         = "/admin/login"
	PathAdminDashboard     = "/admin/dashboard"
	PathUserDashboard      = "/user/dashboard"
	PathValidatorDashboard = "/validator/dashboard"
)

// LoginPath returns the login surface for a role family: admins have their
// own credential namespace, users and validators share the tabbed /auth page.
func LoginPath(role domain.Role) string {
	if role == domain.RoleAdmin {
		return PathAdminLogin
	}
	return PathAuth
}

// DashboardPath returns the dashboard a role lands on after login.
func DashboardPath(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return PathAdminDashboard
	case domain.RoleValidator:
		return PathValidatorDashboard
	default:
		return PathUserDashboard
	}
}

// Decision is the outcome of a route-guard evaluation.
type Decision struct {
	Allow    bool
	Redirect string
}

// Guard decides whether a session may enter a surface that requires the
// given role. It is a pure function and is re-evaluated on every navigation,
// because the gateway can evict the session asynchronously mid-browse.
//
// No session redirects to the required role's login surface. A role mismatch
// redirects to the neutral home page and never to the other role's dashboard;
// the session is kept, since it may still be valid for its own surface.
func Guard(required domain.Role, s domain.Session, ok bool) Decision {
	if !ok || !s.Valid() {
		return Decision{Redirect: LoginPath(required)}
	}
	if s.Role != required {
		return Decision{Redirect: PathHome}
	}
	return Decision{Allow: true}
}
