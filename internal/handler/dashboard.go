package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
	"github.com/lottoops/unclaimed-tracker/backend/internal/pending"
	"github.com/lottoops/unclaimed-tracker/backend/internal/repository"
	"github.com/redis/go-redis/v9"
)

type Dashboard struct {
	ByStatus         []repository.StatusSummary `json:"by_status"`
	PendingCount     int                        `json:"pending_count"`
	PendingWinAmount float64                    `json:"pending_win_amount"`
	MostOverdue      []domain.PendingRecord     `json:"most_overdue"`
	Warnings         []pending.Warning          `json:"warnings"`
	GeneratedAt      time.Time                  `json:"generated_at"`
}

func dashboardCacheKey(area string) string {
	return "dashboard:" + area
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	area := r.URL.Query().Get("area")
	key := dashboardCacheKey(area)

	if cached, ok := h.cachedDashboard(r.Context(), key); ok {
		h.successResponse(w, r, "dashboard loaded", cached)
		return
	}

	summaries, err := h.repository.SummarizeUnclaimedByStatus(r.Context(), domain.UnclaimedFilter{Area: area})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	res, err := h.pending.FetchPendingFromAllSources(r.Context(), domain.PendingFilter{Area: area})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	dash := buildDashboard(summaries, res, h.config.Dashboard.OverdueSize, time.Now())

	h.storeDashboard(r.Context(), key, dash)
	h.successResponse(w, r, "dashboard loaded", dash)
}

// buildDashboard totals the merged pending list. Feed rows carry no charge, so the pending total is
// the win amount.
func buildDashboard(summaries []repository.StatusSummary, res *pending.Result, overdueSize int, now time.Time) *Dashboard {
	dash := &Dashboard{
		ByStatus:     summaries,
		PendingCount: len(res.Records),
		MostOverdue:  pending.MostOverdue(res.Records, overdueSize),
		Warnings:     res.Warnings,
		GeneratedAt:  now,
	}
	for _, rec := range res.Records {
		dash.PendingWinAmount += rec.WinAmount
	}
	return dash
}

// cachedDashboard reads a recent dashboard from redis. Any cache failure is a miss.
func (h *Handler) cachedDashboard(ctx context.Context, key string) (*Dashboard, bool) {
	if h.redisClient == nil || h.config.Dashboard.CacheTTL <= 0 {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	raw, err := h.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("dashboard cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	dash := &Dashboard{}
	if err := json.Unmarshal(raw, dash); err != nil {
		return nil, false
	}
	return dash, true
}

func (h *Handler) storeDashboard(ctx context.Context, key string, dash *Dashboard) {
	if h.redisClient == nil || h.config.Dashboard.CacheTTL <= 0 {
		return
	}

	raw, err := json.Marshal(dash)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	if err := h.redisClient.Set(ctx, key, raw, time.Duration(h.config.Dashboard.CacheTTL)*time.Second).Err(); err != nil {
		slog.Warn("dashboard cache write failed", "key", key, "error", err)
	}
}
