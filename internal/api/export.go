package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/hajorau/saveenergy/internal/report"
	"github.com/hajorau/saveenergy/internal/service"
	"github.com/hajorau/saveenergy/internal/store"
	"github.com/hajorau/saveenergy/pkg/httpx"
	"github.com/hajorau/saveenergy/pkg/slogx"
)

// ExportPDFHandler serves GET /calc/{id}/export/pdf.
type ExportPDFHandler struct {
	CalcService *service.CalcService
}

// ServeHTTP godoc
//
//	@Summary		Export one calculation as PDF
//	@Description	Renders the record as a single-page A4 report. Records of other users return 404.
//	@Tags			Export
//	@Produce		application/pdf
//	@Param			id	path		int	true	"Calculation id"
//	@Success		200	{file}		file
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Failure		404	{object}	httpx.ErrorResponse	"absent or not owned"
//	@Failure		429	{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/calc/{id}/export/pdf [get].
func (h *ExportPDFHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.WriteError(w, http.StatusNotFound, "calculation not found")
		return
	}

	calc, err := h.CalcService.Get(ctx, id, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "calculation not found")
			return
		}
		log.Error("pdf export lookup failed", "error", err, "calculation_id", id)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// Render into memory first so a renderer failure still yields a clean 500
	// instead of a truncated body.
	var buf bytes.Buffer
	if err := report.RenderPDF(&buf, calc); err != nil {
		log.Error("pdf render failed", "error", err, "calculation_id", id)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="berechnung_%d.pdf"`, id))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

// ExportCSVHandler serves GET /calc/export/csv.
type ExportCSVHandler struct {
	CalcService *service.CalcService
}

// ServeHTTP godoc
//
//	@Summary		Export all calculations as CSV
//	@Description	Streams the caller's records as semicolon-delimited CSV, newest first. An account without records yields the header row only.
//	@Tags			Export
//	@Produce		text/csv
//	@Success		200	{file}		file
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Failure		429	{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/calc/export/csv [get].
func (h *ExportCSVHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	calcs, err := h.CalcService.List(ctx, userID)
	if err != nil {
		log.Error("csv export lookup failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	var buf bytes.Buffer
	if err := report.RenderCSV(&buf, calcs); err != nil {
		log.Error("csv render failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="berechnungen.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}
