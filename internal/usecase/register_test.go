package usecase

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratapsingh123om/WQAM-FINAL/internal/domain"
	"github.com/pratapsingh123om/WQAM-FINAL/internal/infrastructure/credstore"
)

func TestRegister_Success(t *testing.T) {
	gw := &mockGateway{}
	store := credstore.NewMemory()

	err := NewRegister(gw, slog.Default()).Execute(context.Background(), store, domain.RegistrationForm{
		Email:        "a@x.com",
		Password:     "secret1",
		Organisation: "Acme Water",
		IndustryType: "Industry",
	}, domain.RoleUser)

	require.NoError(t, err)
	assert.Equal(t, 1, gw.registerCalls)

	// Registration never grants a session; the account awaits approval.
	_, ok := store.Get()
	assert.False(t, ok)
}

func TestRegister_ShortPasswordNeverReachesNetwork(t *testing.T) {
	gw := &mockGateway{}

	err := NewRegister(gw, slog.Default()).Execute(context.Background(), credstore.NewMemory(), domain.RegistrationForm{
		Email:        "a@x.com",
		Password:     "12345",
		IndustryType: "STP",
	}, domain.RoleUser)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Fields[0].Loc)
	assert.Zero(t, gw.registerCalls)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name string
		form domain.RegistrationForm
		role domain.Role
		locs []string
	}{
		{
			name: "email without at sign",
			form: domain.RegistrationForm{Email: "ax.com", Password: "secret1", IndustryType: "WTP"},
			role: domain.RoleUser,
			locs: []string{"email"},
		},
		{
			name: "user missing industry type",
			form: domain.RegistrationForm{Email: "a@x.com", Password: "secret1"},
			role: domain.RoleUser,
			locs: []string{"industry_type"},
		},
		{
			name: "validator missing validator type",
			form: domain.RegistrationForm{Email: "v@x.com", Password: "secret1"},
			role: domain.RoleValidator,
			locs: []string{"validator_type"},
		},
		{
			name: "unknown subtype value",
			form: domain.RegistrationForm{Email: "v@x.com", Password: "secret1", ValidatorType: "Freelance"},
			role: domain.RoleValidator,
			locs: []string{"validator_type"},
		},
		{
			name: "admin cannot self-register",
			form: domain.RegistrationForm{Email: "root@x.com", Password: "secret1"},
			role: domain.RoleAdmin,
			locs: []string{"role"},
		},
		{
			name: "everything wrong at once",
			form: domain.RegistrationForm{Email: "", Password: "123"},
			role: domain.RoleUser,
			locs: []string{"email", "password", "industry_type"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &mockGateway{}
			err := NewRegister(gw, slog.Default()).Execute(context.Background(), credstore.NewMemory(), tt.form, tt.role)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Fields, len(tt.locs))
			for i, loc := range tt.locs {
				assert.Equal(t, loc, verr.Fields[i].Loc)
			}
			assert.Zero(t, gw.registerCalls)
		})
	}
}

func TestRegister_ServerValidationPassesThrough(t *testing.T) {
	gw := &mockGateway{registerErr: domain.NewValidationError("email", "already registered")}

	err := NewRegister(gw, slog.Default()).Execute(context.Background(), credstore.NewMemory(), domain.RegistrationForm{
		Email:         "dup@x.com",
		Password:      "secret1",
		ValidatorType: "Govt",
	}, domain.RoleValidator)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "already registered", verr.Fields[0].Msg)
}
