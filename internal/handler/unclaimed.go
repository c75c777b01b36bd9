package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lottoops/unclaimed-tracker/backend/internal/authz"
	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
	"github.com/lottoops/unclaimed-tracker/backend/internal/pending"
	"github.com/lottoops/unclaimed-tracker/backend/internal/repository"
	"github.com/lottoops/unclaimed-tracker/backend/internal/utils"
)

// location is where dates without a zone are read.
func (h *Handler) location() *time.Location {
	if loc, err := time.LoadLocation(h.config.Feed.Location); err == nil {
		return loc
	}
	return time.Local
}

func parseDateParam(q url.Values, key string, loc *time.Location) (*time.Time, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	t, ok := pending.ParseDrawTime(raw, loc)
	if !ok {
		return nil, fmt.Errorf("%s is not a valid date", key)
	}
	return &t, nil
}

// parseUnclaimedFilter reads status, collector, area, franchise_name, from, to, order_by and desc.
func parseUnclaimedFilter(q url.Values, loc *time.Location) (domain.UnclaimedFilter, error) {
	filter := domain.UnclaimedFilter{
		Collector: q.Get("collector"),
		Area:      q.Get("area"),
		Franchise: q.Get("franchise_name"),
		OrderBy:   q.Get("order_by"),
		Desc:      q.Get("desc") == "true" || q.Get("desc") == "1",
	}

	if raw := q.Get("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			s = strings.TrimSpace(s)
			if !utils.IsUnclaimedStatus(s) {
				return filter, fmt.Errorf("unknown status %q", s)
			}
			filter.Status = append(filter.Status, domain.UnclaimedStatus(s))
		}
	}

	if !repository.IsUnclaimedOrderColumn(filter.OrderBy) {
		return filter, fmt.Errorf("cannot order by %q", filter.OrderBy)
	}

	var err error
	if filter.DrawFrom, err = parseDateParam(q, "from", loc); err != nil {
		return filter, err
	}
	if filter.DrawTo, err = parseDateParam(q, "to", loc); err != nil {
		return filter, err
	}

	return filter, nil
}

func (h *Handler) GetAllUnclaimed(w http.ResponseWriter, r *http.Request) {
	filter, err := parseUnclaimedFilter(r.URL.Query(), h.location())
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	records, err := h.repository.ListUnclaimed(r.Context(), filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "records loaded", records)
}

func (h *Handler) unclaimedConstraintError(w http.ResponseWriter, r *http.Request, err error) {
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr) && pgErr.ConstraintName == "unclaimed_trans_id_key":
		h.badRequest(w, r, errors.New("a record with this transaction id already exists"))
	case errors.Is(err, repository.ErrEditConflict):
		h.errorResponse(w, r, "record was changed by someone else, please reload")
	default:
		h.internalServerError(w, r, err)
	}
}

func (h *Handler) CreateUnclaimed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TransID       string  `json:"trans_id" validate:"required,max=64"`
		TellerName    string  `json:"teller_name" validate:"required"`
		BetNumber     string  `json:"bet_number" validate:"required"`
		BetCode       string  `json:"bet_code" validate:"required"`
		DrawDate      string  `json:"draw_date" validate:"required"`
		BetAmount     float64 `json:"bet_amount" validate:"gte=0"`
		WinAmount     float64 `json:"win_amount" validate:"gt=0"`
		ChargeAmount  float64 `json:"charge_amount" validate:"gte=0"`
		ModeOfPayment string  `json:"mode_of_payment"`
		Collector     string  `json:"collector"`
		Area          string  `json:"area"`
		Franchise     string  `json:"franchise_name"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	draw, ok := pending.ParseDrawTime(req.DrawDate, h.location())
	if !ok {
		h.badRequest(w, r, errors.New("draw_date is not a valid date"))
		return
	}
	if err := utils.ValidateDrawDate(draw, time.Now()); err != nil {
		h.badRequest(w, r, err)
		return
	}

	me := currentUser(r)
	rec := &domain.UnclaimedRecord{
		TransID:       strings.TrimSpace(req.TransID),
		TellerName:    req.TellerName,
		BetNumber:     req.BetNumber,
		BetCode:       req.BetCode,
		DrawDate:      draw,
		BetAmount:     req.BetAmount,
		WinAmount:     req.WinAmount,
		ChargeAmount:  req.ChargeAmount,
		ModeOfPayment: req.ModeOfPayment,
		Collector:     req.Collector,
		Area:          req.Area,
		Franchise:     req.Franchise,
		Status:        domain.StatusUnclaimed,
		CreatedBy:     &me.ID,
	}
	if rec.Collector == "" && domain.NormalizeRole(string(me.Role)) == domain.RoleCollector {
		rec.Collector = me.FullName
	}
	if rec.Area == "" && me.Area != nil {
		rec.Area = *me.Area
	}
	if rec.Franchise == "" && me.Franchise != nil {
		rec.Franchise = *me.Franchise
	}

	if err := utils.ValidateUnclaimedAmounts(rec); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateUnclaimed(r.Context(), rec); err != nil {
		h.unclaimedConstraintError(w, r, err)
		return
	}

	h.successResponse(w, r, "record created", rec)
}

func (h *Handler) GetUnclaimed(w http.ResponseWriter, r *http.Request) {
	rec := r.Context().Value(UnclaimedCtx).(*domain.UnclaimedRecord)
	h.successResponse(w, r, "record loaded", rec)
}

func (h *Handler) UpdateUnclaimed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TellerName    *string  `json:"teller_name" validate:"omitempty,min=1"`
		BetNumber     *string  `json:"bet_number" validate:"omitempty,min=1"`
		BetCode       *string  `json:"bet_code" validate:"omitempty,min=1"`
		DrawDate      *string  `json:"draw_date"`
		BetAmount     *float64 `json:"bet_amount" validate:"omitempty,gte=0"`
		WinAmount     *float64 `json:"win_amount" validate:"omitempty,gt=0"`
		ChargeAmount  *float64 `json:"charge_amount" validate:"omitempty,gte=0"`
		ModeOfPayment *string  `json:"mode_of_payment"`
		Collector     *string  `json:"collector"`
		Area          *string  `json:"area"`
		Franchise     *string  `json:"franchise_name"`
		Status        *string  `json:"status" validate:"omitempty,unclaimed_status"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rec := r.Context().Value(UnclaimedCtx).(*domain.UnclaimedRecord)
	updated := *rec

	if req.TellerName != nil {
		updated.TellerName = *req.TellerName
	}
	if req.BetNumber != nil {
		updated.BetNumber = *req.BetNumber
	}
	if req.BetCode != nil {
		updated.BetCode = *req.BetCode
	}
	if req.DrawDate != nil {
		draw, ok := pending.ParseDrawTime(*req.DrawDate, h.location())
		if !ok {
			h.badRequest(w, r, errors.New("draw_date is not a valid date"))
			return
		}
		if err := utils.ValidateDrawDate(draw, time.Now()); err != nil {
			h.badRequest(w, r, err)
			return
		}
		updated.DrawDate = draw
	}
	if req.BetAmount != nil {
		updated.BetAmount = *req.BetAmount
	}
	if req.WinAmount != nil {
		updated.WinAmount = *req.WinAmount
	}
	if req.ChargeAmount != nil {
		updated.ChargeAmount = *req.ChargeAmount
	}
	if req.ModeOfPayment != nil {
		updated.ModeOfPayment = *req.ModeOfPayment
	}
	if req.Collector != nil {
		updated.Collector = *req.Collector
	}
	if req.Area != nil {
		updated.Area = *req.Area
	}
	if req.Franchise != nil {
		updated.Franchise = *req.Franchise
	}
	if req.Status != nil {
		status := domain.UnclaimedStatus(*req.Status)
		switch {
		case status == rec.Status:
		case status == domain.StatusUncollected || status == domain.StatusCollected:
			// collection and deposit write the collections ledger, PATCH does not
			h.errorResponse(w, r, fmt.Sprintf("use /collect or /deposit to move a record to %s", status))
			return
		}
		if err := utils.ValidateStatusChange(rec.Status, status); err != nil {
			h.badRequest(w, r, err)
			return
		}
		updated.Status = status
	}

	if err := utils.ValidateUnclaimedAmounts(&updated); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// a collector may not hand their record over to someone else
	if !authz.CanPerformAction(currentUser(r), domain.PermUpdateUnclaimed, &updated) {
		h.forbidden(w, r)
		return
	}

	if err := h.repository.UpdateUnclaimed(r.Context(), &updated); err != nil {
		h.unclaimedConstraintError(w, r, err)
		return
	}

	h.successResponse(w, r, "record updated", updated)
}

func (h *Handler) DeleteUnclaimed(w http.ResponseWriter, r *http.Request) {
	rec := r.Context().Value(UnclaimedCtx).(*domain.UnclaimedRecord)

	if err := h.repository.DeleteUnclaimed(r.Context(), rec.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "record deleted", nil)
}

// MarkCollected records that the winnings were taken back from the outlet. What status the
// record lands in depends on who collected it.
func (h *Handler) MarkCollected(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ModeOfPayment string `json:"mode_of_payment"`
		Remarks       string `json:"remarks"`
	}
	if r.ContentLength != 0 {
		if err := h.readJSON(r, &req); err != nil {
			h.badRequest(w, r, err)
			return
		}
	}

	me := currentUser(r)
	rec := r.Context().Value(UnclaimedCtx).(*domain.UnclaimedRecord)
	target := domain.CollectedStatusFor(me.Role)

	if rec.Status == target {
		h.errorResponse(w, r, fmt.Sprintf("record is already %s", rec.Status))
		return
	}
	if err := utils.ValidateStatusChange(rec.Status, target); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	now := time.Now()
	updated := *rec
	updated.Status = target
	if updated.ReturnDate == nil {
		updated.ReturnDate = &now
	}
	if req.ModeOfPayment != "" {
		updated.ModeOfPayment = req.ModeOfPayment
	}

	if target != domain.StatusCollected {
		if err := h.repository.UpdateUnclaimed(r.Context(), &updated); err != nil {
			h.unclaimedConstraintError(w, r, err)
			return
		}
		h.successResponse(w, r, "record marked as collected", updated)
		return
	}

	// collected straight into cash on hand: log the deposit in the same step
	updated.DepositDate = &now
	collection := &domain.CollectionRecord{
		UnclaimedID:   &updated.ID,
		Collector:     updated.Collector,
		Area:          updated.Area,
		Franchise:     updated.Franchise,
		Amount:        updated.Net(),
		ModeOfPayment: updated.ModeOfPayment,
		DepositDate:   now,
		ReceivedBy:    me.ID,
		Remarks:       req.Remarks,
	}
	if err := h.repository.DepositUnclaimed(r.Context(), &updated, collection); err != nil {
		h.unclaimedConstraintError(w, r, err)
		return
	}

	h.successResponse(w, r, "record marked as collected", updated)
}

// DepositUnclaimed closes an Uncollected record once its cash reaches the office.
func (h *Handler) DepositUnclaimed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount        *float64 `json:"amount" validate:"omitempty,gt=0"`
		ModeOfPayment string   `json:"mode_of_payment"`
		DepositDate   string   `json:"deposit_date"`
		Remarks       string   `json:"remarks"`
	}
	if r.ContentLength != 0 {
		if err := h.readJSON(r, &req); err != nil {
			h.badRequest(w, r, err)
			return
		}
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rec := r.Context().Value(UnclaimedCtx).(*domain.UnclaimedRecord)
	if rec.Status != domain.StatusUncollected {
		h.errorResponse(w, r, fmt.Sprintf("only Uncollected records can be deposited, this one is %s", rec.Status))
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

	updated := *rec
	updated.Status = domain.StatusCollected
	updated.DepositDate = &depositDate
	if req.ModeOfPayment != "" {
		updated.ModeOfPayment = req.ModeOfPayment
	}

	amount := updated.Net()
	if req.Amount != nil {
		amount = *req.Amount
	}

	collection := &domain.CollectionRecord{
		UnclaimedID:   &updated.ID,
		Collector:     updated.Collector,
		Area:          updated.Area,
		Franchise:     updated.Franchise,
		Amount:        amount,
		ModeOfPayment: updated.ModeOfPayment,
		DepositDate:   depositDate,
		ReceivedBy:    currentUser(r).ID,
		Remarks:       req.Remarks,
	}

	if err := h.repository.DepositUnclaimed(r.Context(), &updated, collection); err != nil {
		h.unclaimedConstraintError(w, r, err)
		return
	}

	h.successResponse(w, r, "deposit recorded", map[string]any{
		"record":     updated,
		"collection": collection,
	})
}

func (h *Handler) VerifyUnclaimed(w http.ResponseWriter, r *http.Request) {
	rec := r.Context().Value(UnclaimedCtx).(*domain.UnclaimedRecord)
	if rec.VerificationDate != nil {
		h.errorResponse(w, r, "record is already verified")
		return
	}

	now := time.Now()
	updated := *rec
	updated.VerificationDate = &now

	if err := h.repository.UpdateUnclaimed(r.Context(), &updated); err != nil {
		h.unclaimedConstraintError(w, r, err)
		return
	}

	h.successResponse(w, r, "record verified", updated)
}
