package handler

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratapsingh123om/WQAM-FINAL/internal/domain"
)

func identityBackend(hits *atomic.Int32, identity domain.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/me" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		hits.Add(1)
		if r.Header.Get("Authorization") != "Bearer "+identity.Email {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(identity)
	})
}

func TestHandleSession(t *testing.T) {
	identity := domain.Identity{
		ID:     3,
		Email:  "v@x.com",
		Role:   domain.RoleValidator,
		Status: domain.StatusApproved,
	}

	t.Run("no cookies resolves unauthenticated without a backend call", func(t *testing.T) {
		var hits atomic.Int32
		h := newHarness(t, identityBackend(&hits, identity))

		rec := h.do(http.MethodGet, "/api/session", "", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Zero(t, hits.Load())
	})

	t.Run("valid session yields identity and dashboard", func(t *testing.T) {
		var hits atomic.Int32
		h := newHarness(t, identityBackend(&hits, identity))

		// The stub accepts the email as the bearer token.
		rec := h.do(http.MethodGet, "/api/session", "",
			&domain.Session{Token: "v@x.com", Role: domain.RoleValidator})

		require.Equal(t, http.StatusOK, rec.Code)

		var resp sessionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.OK)
		assert.Equal(t, "v@x.com", resp.User.Email)
		assert.Equal(t, "validator", resp.User.Role)
		assert.Equal(t, "/validator/dashboard", resp.Dashboard)
	})

	t.Run("rejected token expires cookies", func(t *testing.T) {
		var hits atomic.Int32
		h := newHarness(t, identityBackend(&hits, identity))

		rec := h.do(http.MethodGet, "/api/session", "",
			&domain.Session{Token: "expired", Role: domain.RoleValidator})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		tok := cookieByName(rec, "wqam_token")
		require.NotNil(t, tok)
		assert.Less(t, tok.MaxAge, 0)
	})
}

func TestDashboard_RendersOnlyForLiveSession(t *testing.T) {
	identity := domain.Identity{
		ID:     1,
		Email:  "a@x.com",
		Role:   domain.RoleUser,
		Status: domain.StatusApproved,
	}

	t.Run("live session renders the dashboard", func(t *testing.T) {
		var hits atomic.Int32
		h := newHarness(t, identityBackend(&hits, identity))

		rec := h.do(http.MethodGet, "/user/dashboard", "",
			&domain.Session{Token: "a@x.com", Role: domain.RoleUser})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "user-dashboard")
	})

	t.Run("dead token passes the cookie guard but not the resolver", func(t *testing.T) {
		var hits atomic.Int32
		h := newHarness(t, identityBackend(&hits, identity))

		rec := h.do(http.MethodGet, "/user/dashboard", "",
			&domain.Session{Token: "dead", Role: domain.RoleUser})

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/auth", rec.Header().Get("Location"))
	})
}
