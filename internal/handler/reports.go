package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
	"github.com/lottoops/unclaimed-tracker/backend/internal/pending"
	"github.com/lottoops/unclaimed-tracker/backend/internal/report"
	"github.com/lottoops/unclaimed-tracker/backend/internal/utils"
)

func (h *Handler) GetAllReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.repository.GetAllReports(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "reports loaded", reports)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	rep := r.Context().Value(ReportCtx).(*domain.Report)
	h.successResponse(w, r, "report loaded", rep)
}

// GenerateReport builds and stores the distribution report of every record drawn in
// [period_start, period_end).
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title" validate:"max=200"`
		PeriodStart string `json:"period_start" validate:"required"`
		PeriodEnd   string `json:"period_end" validate:"required"`
		Area        string `json:"area"`
		Franchise   string `json:"franchise_name"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	loc := h.location()
	start, ok := pending.ParseDrawTime(req.PeriodStart, loc)
	if !ok {
		h.badRequest(w, r, errors.New("period_start is not a valid date"))
		return
	}
	end, ok := pending.ParseDrawTime(req.PeriodEnd, loc)
	if !ok {
		h.badRequest(w, r, errors.New("period_end is not a valid date"))
		return
	}
	if err := utils.ValidatePeriod(start, end); err != nil {
		h.badRequest(w, r, err)
		return
	}

	records, err := h.repository.ListUnclaimed(r.Context(), domain.UnclaimedFilter{
		Area:      req.Area,
		Franchise: req.Franchise,
		DrawFrom:  &start,
		DrawTo:    &end,
	})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	title := req.Title
	if title == "" {
		title = fmt.Sprintf("Distribution %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	rep := report.Build(title, records, report.Period{Start: start, End: end})
	rep.GeneratedBy = currentUser(r).ID

	if err := h.repository.CreateReport(r.Context(), rep); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "report generated", rep)
}

func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	rep := r.Context().Value(ReportCtx).(*domain.Report)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.Filename(rep)))
	w.WriteHeader(http.StatusOK)

	if err := report.WriteCSV(w, rep); err != nil {
		// headers are gone already, all that is left is the log
		h.logInternalServerError(r, err)
	}
}

func (h *Handler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	rep := r.Context().Value(ReportCtx).(*domain.Report)

	if err := h.repository.DeleteReport(r.Context(), rep.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "report deleted", nil)
}
