package usecase

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/pratapsingh123om/WQAM-FINAL/internal/domain"
)

// minPasswordLen matches the API server's password policy so short passwords
// never leave the client.
const minPasswordLen = 6

// Register drives one registration flow. Success never yields a session: the
// account starts in pending and waits for admin disposition.
type Register struct {
	gateway domain.APIGateway
	logger  *slog.Logger
}

// NewRegister creates the registration flow.
func NewRegister(g domain.APIGateway, l *slog.Logger) *Register {
	return &Register{gateway: g, logger: l}
}

func validateForm(form domain.RegistrationForm, role domain.Role) *domain.ValidationError {
	var fields []domain.FieldError

	email := strings.TrimSpace(form.Email)
	if email == "" || !strings.Contains(email, "@") {
		fields = append(fields, domain.FieldError{Loc: "email", Msg: "email must contain '@'"})
	}
	if len(form.Password) < minPasswordLen {
		fields = append(fields, domain.FieldError{Loc: "password", Msg: "password must be at least 6 characters"})
	}

	switch role {
	case domain.RoleUser:
		if !slices.Contains(domain.IndustryTypes, form.IndustryType) {
			fields = append(fields, domain.FieldError{Loc: "industry_type", Msg: "industry type is required"})
		}
	case domain.RoleValidator:
		if !slices.Contains(domain.ValidatorTypes, form.ValidatorType) {
			fields = append(fields, domain.FieldError{Loc: "validator_type", Msg: "validator type is required"})
		}
	default:
		// Admins are provisioned out of band; only the two public roles
		// can self-register.
		fields = append(fields, domain.FieldError{Loc: "role", Msg: "role must be user or validator"})
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Execute validates the form locally and submits it. A local validation
// failure makes no network call. On success the caller reports
// awaiting-approval; nothing is stored.
func (uc *Register) Execute(ctx context.Context, creds domain.CredentialStore, form domain.RegistrationForm, role domain.Role) error {
	form.Email = strings.TrimSpace(form.Email)

	if verr := validateForm(form, role); verr != nil {
		return verr
	}

	// The subtype for the other role is never forwarded.
	switch role {
	case domain.RoleUser:
		form.ValidatorType = ""
	case domain.RoleValidator:
		form.IndustryType = ""
	}

	if err := uc.gateway.Register(ctx, creds, form, role); err != nil {
		return err
	}

	uc.logger.InfoContext(ctx, "registration submitted", "role", role)
	return nil
}
