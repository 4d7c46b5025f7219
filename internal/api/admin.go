package api

import (
	"errors"
	"net/http"

	"github.com/hajorau/saveenergy/internal/service"
	"github.com/hajorau/saveenergy/pkg/httpx"
	"github.com/hajorau/saveenergy/pkg/slogx"
)

// AdminResetHandler serves POST /admin/reset.
type AdminResetHandler struct {
	AdminService *service.AdminService
}

// ServeHTTP godoc
//
//	@Summary		Wipe all data
//	@Description	Deletes every calculation and user in one transaction. Requires the shared admin secret; disabled entirely when no secret is configured.
//	@Tags			Admin
//	@Produce		json
//	@Param			secret	query		string	true	"Shared admin secret"
//	@Success		200		{object}	map[string]bool
//	@Failure		403		{object}	httpx.ErrorResponse
//	@Failure		429		{object}	httpx.ErrorResponse
//	@Router			/admin/reset [post].
func (h *AdminResetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	err := h.AdminService.Reset(ctx, r.URL.Query().Get("secret"))
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			httpx.WriteError(w, http.StatusForbidden, "forbidden")
			return
		}
		log.Error("admin reset failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	log.Warn("admin reset executed, all data deleted")
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
