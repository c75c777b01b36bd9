package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
	"github.com/lottoops/unclaimed-tracker/backend/internal/feed"
	"github.com/lottoops/unclaimed-tracker/backend/internal/pending"
)

const defaultOverdueLimit = 5

func pendingFilterFromQuery(r *http.Request) domain.PendingFilter {
	q := r.URL.Query()
	return domain.PendingFilter{
		Area:      q.Get("area"),
		Franchise: q.Get("franchise_name"),
		Collector: q.Get("collector"),
	}
}

// GetPending answers with the merged pending list. Feeds that could not be read are listed in
// warnings; the request still succeeds.
func (h *Handler) GetPending(w http.ResponseWriter, r *http.Request) {
	res, err := h.pending.FetchPendingFromAllSources(r.Context(), pendingFilterFromQuery(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "pending records loaded", res)
}

func (h *Handler) GetMostOverdue(w http.ResponseWriter, r *http.Request) {
	limit := defaultOverdueLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			h.badRequest(w, r, errors.New("limit must be between 1 and 100"))
			return
		}
		limit = n
	}

	res, err := h.pending.FetchPendingFromAllSources(r.Context(), pendingFilterFromQuery(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "most overdue records loaded", &pending.Result{
		Records:  pending.MostOverdue(res.Records, limit),
		Warnings: res.Warnings,
	})
}

func (h *Handler) AddFeedRecord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TransCode    string  `json:"trans_id" validate:"required"`
		TellerName   string  `json:"teller_name" validate:"required"`
		DrawTime     string  `json:"draw_date" validate:"required"`
		BetNumber    string  `json:"bet_number"`
		BetCode      string  `json:"bet_code"`
		BetAmount    float64 `json:"bet_amount" validate:"gte=0"`
		WinAmount    float64 `json:"win_amount" validate:"gte=0"`
		Collector    string  `json:"collector"`
		Status       string  `json:"status" validate:"omitempty,unclaimed_status"`
		Notification string  `json:"notification"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if _, ok := pending.ParseDrawTime(req.DrawTime, h.location()); !ok {
		h.badRequest(w, r, errors.New("draw_date is not a valid date"))
		return
	}
	if req.Status == "" {
		req.Status = string(domain.StatusUnclaimed)
	}

	row := feed.Row{
		TransCode:    feed.Text(strings.TrimSpace(req.TransCode)),
		TellerName:   feed.Text(req.TellerName),
		DrawTime:     feed.Text(req.DrawTime),
		BetNumber:    feed.Text(req.BetNumber),
		BetCode:      feed.Text(req.BetCode),
		BetAmount:    feed.Amount(req.BetAmount),
		WinAmount:    feed.Amount(req.WinAmount),
		Collector:    feed.Text(req.Collector),
		Status:       feed.Text(req.Status),
		Notification: feed.Text(req.Notification),
	}

	if err := h.pending.AddPendingRecord(r.Context(), row); err != nil {
		h.feedWriteError(w, r, err)
		return
	}

	h.successResponse(w, r, "record added to feed", row)
}

func (h *Handler) DeleteFeedRecord(w http.ResponseWriter, r *http.Request) {
	transCode := strings.TrimSpace(chi.URLParam(r, "transCode"))
	if transCode == "" {
		h.badRequest(w, r, errors.New("transaction code is required"))
		return
	}

	if err := h.pending.DeletePendingRecord(r.Context(), transCode); err != nil {
		h.feedWriteError(w, r, err)
		return
	}

	h.successResponse(w, r, "record removed from feed", nil)
}

func (h *Handler) feedWriteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, pending.ErrNoFeedConfigured):
		h.errorResponse(w, r, "no spreadsheet feed is configured")
	case errors.Is(err, feed.ErrRejected):
		h.errorResponse(w, r, err.Error())
	default:
		h.logInternalServerError(r, err)
		h.writeJSON(w, r, http.StatusBadGateway, Response{
			Success: false,
			Message: "spreadsheet feed unavailable",
		})
	}
}
