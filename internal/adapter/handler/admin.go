package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pratapsingh123om/WQAM-FINAL/internal/domain"
	"github.com/pratapsingh123om/WQAM-FINAL/internal/usecase"
)

// AdminHandler serves the approval workflow endpoints. Routes are guarded by
// the admin role; the backend enforces authorization again on its side.
type AdminHandler struct {
	approvals *usecase.Approvals
	stores    StoreFactory
}

// NewAdminHandler creates the admin handler.
func NewAdminHandler(approvals *usecase.Approvals, stores StoreFactory) *AdminHandler {
	return &AdminHandler{approvals: approvals, stores: stores}
}

type pendingResponse struct {
	OK      bool              `json:"ok"`
	Pending []domain.Identity `json:"pending"`
}

// HandlePending serves GET /api/admin/pending, fetched fresh every time.
func (h *AdminHandler) HandlePending(c echo.Context) error {
	list, err := h.approvals.List(c.Request().Context(), h.stores(c))
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, pendingResponse{OK: true, Pending: list})
}

// HandleApprove serves POST /api/admin/approve/:id and returns the refreshed
// pending list.
func (h *AdminHandler) HandleApprove(c echo.Context) error {
	return h.act(c, h.approvals.Approve)
}

// HandleReject serves POST /api/admin/reject/:id with the same contract.
func (h *AdminHandler) HandleReject(c echo.Context) error {
	return h.act(c, h.approvals.Reject)
}

type approvalAction func(ctx context.Context, creds domain.CredentialStore, id int64) ([]domain.Identity, error)

func (h *AdminHandler) act(c echo.Context, action approvalAction) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	list, err := action(c.Request().Context(), h.stores(c), id)
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, pendingResponse{OK: true, Pending: list})
}
