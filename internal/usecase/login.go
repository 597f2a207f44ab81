package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pratapsingh123om/WQAM-FINAL/internal/domain"
)

// LoginInput is one login attempt.
type LoginInput struct {
	Email    string
	Password string
	Role     domain.Role
}

// LoginResult carries the stored session and where the client should land.
type LoginResult struct {
	Session  domain.Session
	Redirect string
}

// Login drives one login flow: local validation, the role-appropriate
// endpoint, then session storage via the credential store.
type Login struct {
	gateway domain.APIGateway
	logger  *slog.Logger
}

// NewLogin creates the login flow.
func NewLogin(g domain.APIGateway, l *slog.Logger) *Login {
	return &Login{gateway: g, logger: l}
}

// Execute runs the flow. Validation failures are reported locally without a
// network call. An authentication failure from the server is returned as-is;
// it carries no hint of whether the email exists.
func (uc *Login) Execute(ctx context.Context, creds domain.CredentialStore, in LoginInput) (*LoginResult, error) {
	in.Email = strings.TrimSpace(in.Email)

	var fields []domain.FieldError
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		fields = append(fields, domain.FieldError{Loc: "email", Msg: "email must contain '@'"})
	}
	if in.Password == "" {
		fields = append(fields, domain.FieldError{Loc: "password", Msg: "password is required"})
	}
	if !in.Role.Valid() {
		fields = append(fields, domain.FieldError{Loc: "role", Msg: "role must be admin, user or validator"})
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	var (
		session domain.Session
		err     error
	)
	if in.Role == domain.RoleAdmin {
		session, err = uc.gateway.AdminLogin(ctx, creds, in.Email, in.Password)
	} else {
		session, err = uc.gateway.Login(ctx, creds, in.Email, in.Password, in.Role)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "login succeeded", "role", session.Role)
	return &LoginResult{
		Session:  session,
		Redirect: DashboardPath(session.Role),
	}, nil
}

// Logout clears the credential store. Idempotent.
func (uc *Login) Logout(ctx context.Context, creds domain.CredentialStore) {
	creds.Clear()
	uc.logger.InfoContext(ctx, "session cleared on logout")
}
