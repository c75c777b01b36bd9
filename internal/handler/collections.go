package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
	"github.com/lottoops/unclaimed-tracker/backend/internal/pending"
	"github.com/lottoops/unclaimed-tracker/backend/internal/repository"
)

func (h *Handler) GetAllCollections(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	loc := h.location()

	from, err := parseDateParam(q, "from", loc)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	to, err := parseDateParam(q, "to", loc)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	collections, err := h.repository.ListCollections(r.Context(), repository.CollectionFilter{
		Collector: q.Get("collector"),
		Area:      q.Get("area"),
		From:      from,
		To:        to,
	})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "collections loaded", collections)
}

// CreateCollection logs a cash deposit that is not tied to a single record, such as a
// collector's daily remittance.
func (h *Handler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Collector     string  `json:"collector" validate:"required"`
		Area          string  `json:"area"`
		Franchise     string  `json:"franchise_name"`
		Amount        float64 `json:"amount" validate:"gt=0"`
		ModeOfPayment string  `json:"mode_of_payment" validate:"required"`
		DepositDate   string  `json:"deposit_date"`
		Remarks       string  `json:"remarks" validate:"max=500"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	depositDate := time.Now()
	if req.DepositDate != "" {
		t, ok := pending.ParseDrawTime(req.DepositDate, h.location())
		if !ok {
			h.badRequest(w, r, errors.New("deposit_date is not a valid date"))
			return
		}
		depositDate = t
	}

	collection := &domain.CollectionRecord{
		Collector:     req.Collector,
		Area:          req.Area,
		Franchise:     req.Franchise,
		Amount:        req.Amount,
		ModeOfPayment: req.ModeOfPayment,
		DepositDate:   depositDate,
		ReceivedBy:    currentUser(r).ID,
		Remarks:       req.Remarks,
	}

	if err := h.repository.CreateCollection(r.Context(), collection); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "collection recorded", collection)
}
