package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/hajorau/saveenergy/internal/domain"
	"github.com/hajorau/saveenergy/internal/engine"
	"github.com/hajorau/saveenergy/internal/service"
	"github.com/hajorau/saveenergy/pkg/httpx"
	"github.com/hajorau/saveenergy/pkg/slogx"
)

// CalcSubmitHandler serves POST /calc.
type CalcSubmitHandler struct {
	CalcService *service.CalcService
}

type calcSubmitResponse struct {
	ID      int64              `json:"id"`
	Outputs domain.CalcOutputs `json:"outputs"`
}

// ServeHTTP godoc
//
//	@Summary		Run a calculation
//	@Description	Validates the inputs, evaluates the savings formula and persists the record for the authenticated user.
//	@Tags			Calculations
//	@Accept			json
//	@Produce		json
//	@Param			body	body		domain.CalcInputs	true	"Calculation inputs"
//	@Success		200		{object}	calcSubmitResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"validation failure, names the field"
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		429		{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/calc [post].
func (h *CalcSubmitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in domain.CalcInputs
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	out, id, err := h.CalcService.Submit(ctx, userID, in)
	if err != nil {
		var ve *engine.ValidationError
		if errors.As(err, &ve) {
			httpx.WriteFieldError(w, ve.Reason, ve.Field)
			return
		}
		log.Error("calculation submit failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, calcSubmitResponse{ID: id, Outputs: out})
}

// CalcListHandler serves GET /calc.
type CalcListHandler struct {
	CalcService *service.CalcService
}

type calcListItem struct {
	ID        int64              `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Inputs    domain.CalcInputs  `json:"inputs"`
	Outputs   domain.CalcOutputs `json:"outputs"`
}

// ServeHTTP godoc
//
//	@Summary		List calculations
//	@Description	Returns the caller's stored calculations, newest first.
//	@Tags			Calculations
//	@Produce		json
//	@Success		200	{array}		calcListItem
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Failure		429	{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/calc [get].
func (h *CalcListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	calcs, err := h.CalcService.List(ctx, userID)
	if err != nil {
		log.Error("calculation list failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	items := make([]calcListItem, 0, len(calcs))
	for _, c := range calcs {
		items = append(items, calcListItem{
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
			Inputs:    c.Inputs,
			Outputs:   c.Outputs,
		})
	}

	httpx.WriteJSON(w, http.StatusOK, items)
}
