package credstore

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pratapsingh123om/WQAM-FINAL/internal/domain"
)

// Cookie names. The pair is the whole client-persisted state: both are always
// written and deleted in the same response.
const (
	TokenCookie = "wqam_token"
	RoleCookie  = "wqam_role"
)

// Cookies is a credential store bound to a single request/response pair.
// Reads come from the request's cookies; writes become Set-Cookie headers on
// the response, so they take effect for the rest of the browsing context.
// Implements domain.CredentialStore.
type Cookies struct {
	c      echo.Context
	secure bool

	// override shadows the request cookies after a Set or Clear within the
	// same exchange, so a Get later in the handler observes the write.
	override *domain.Session
	cleared  bool
}

// NewCookies binds a cookie-backed store to the given exchange. secure
// controls the Secure attribute on written cookies.
func NewCookies(c echo.Context, secure bool) *Cookies {
	return &Cookies{c: c, secure: secure}
}

func (s *Cookies) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Set writes both cookies on the response. Sessions that do not satisfy
// Valid are rejected so a partial pair can never be persisted.
func (s *Cookies) Set(session domain.Session) error {
	if !session.Valid() {
		return domain.ErrNoSession
	}
	s.c.SetCookie(s.cookie(TokenCookie, session.Token, 0))
	s.c.SetCookie(s.cookie(RoleCookie, session.Role.String(), 0))
	s.override = &session
	s.cleared = false
	return nil
}

// Get returns the session carried by the exchange. A missing token, missing
// role, or unparsable role all count as "no session".
func (s *Cookies) Get() (domain.Session, bool) {
	if s.cleared {
		return domain.Session{}, false
	}
	if s.override != nil {
		return *s.override, true
	}

	tok, err := s.c.Cookie(TokenCookie)
	if err != nil || tok.Value == "" {
		return domain.Session{}, false
	}
	rc, err := s.c.Cookie(RoleCookie)
	if err != nil {
		return domain.Session{}, false
	}
	role, err := domain.ParseRole(rc.Value)
	if err != nil {
		return domain.Session{}, false
	}
	return domain.Session{Token: tok.Value, Role: role}, true
}

// Clear deletes both cookies in the same response. Idempotent.
func (s *Cookies) Clear() {
	expired := time.Unix(0, 0)
	for _, name := range []string{TokenCookie, RoleCookie} {
		ck := s.cookie(name, "", -1)
		ck.Expires = expired
		s.c.SetCookie(ck)
	}
	s.override = nil
	s.cleared = true
}
