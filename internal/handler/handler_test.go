package handler

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lottoops/unclaimed-tracker/backend/internal/config"
	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
	"github.com/lottoops/unclaimed-tracker/backend/internal/feed"
	"github.com/lottoops/unclaimed-tracker/backend/internal/pending"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakePending struct {
	res       *pending.Result
	err       error
	writeErr  error
	added     []feed.Row
	deleted   []string
	lastQuery domain.PendingFilter
}

func (f *fakePending) FetchPendingFromAllSources(_ context.Context, filter domain.PendingFilter) (*pending.Result, error) {
	f.lastQuery = filter
	return f.res, f.err
}

func (f *fakePending) AddPendingRecord(_ context.Context, row feed.Row) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.added = append(f.added, row)
	return nil
}

func (f *fakePending) DeletePendingRecord(_ context.Context, transCode string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.deleted = append(f.deleted, transCode)
	return nil
}

type nopMailer struct{}

func (nopMailer) Publish(context.Context, domain.MailMessage) error { return nil }

func newTestHandler(t *testing.T, svc PendingService) *Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = 3600
	cfg.Feed.Location = "UTC"
	cfg.Dashboard.OverdueSize = 5

	h, err := NewHandler(cfg, nil, nopMailer{}, nil, svc)
	require.NoError(t, err)
	return h
}

// asUser stands in for auth + myInfo.
func asUser(user *domain.User) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), MyInfoCtx, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func decode(t *testing.T, body io.Reader) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestAuthMiddleware(t *testing.T) {
	h := newTestHandler(t, &fakePending{})

	var gotSub, gotRole string
	protected := h.auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub, _ = r.Context().Value(SubCtxKey).(string)
		gotRole, _ = r.Context().Value(RoleCtxKey).(string)
	}))

	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: tokenCookieName, Value: "not-a-jwt"})
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	expired, _, err := h.issueToken(&domain.User{ID: 7, Role: domain.RoleStaff}, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: tokenCookieName, Value: expired})
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	token, _, err := h.issueToken(&domain.User{ID: 42, Role: domain.RoleCashier}, time.Now())
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: tokenCookieName, Value: token})
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "42", gotSub)
	require.Equal(t, "cashier", gotRole)
}

func TestRequiredPermission(t *testing.T) {
	h := newTestHandler(t, &fakePending{})

	tests := []struct {
		name string
		user *domain.User
		perm domain.Permission
		want int
	}{
		{"staff views records", &domain.User{Role: domain.RoleStaff}, domain.PermViewUnclaimed, http.StatusOK},
		{"staff cannot delete", &domain.User{Role: domain.RoleStaff}, domain.PermDeleteUnclaimed, http.StatusForbidden},
		{"role case is ignored", &domain.User{Role: "Admin"}, domain.PermDeleteUser, http.StatusOK},
		{"unknown role", &domain.User{Role: "owner"}, domain.PermViewUnclaimed, http.StatusForbidden},
		{"no user", nil, domain.PermViewUnclaimed, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var chain http.Handler = h.RequiredPermission(tt.perm)(okHandler)
			if tt.user != nil {
				chain = asUser(tt.user)(chain)
			}
			rec := httptest.NewRecorder()
			chain.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			require.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequiredActionOwnership(t *testing.T) {
	h := newTestHandler(t, &fakePending{})
	collector := &domain.User{Role: domain.RoleCollector, FullName: "Ben Cruz"}

	serve := func(user *domain.User, p domain.Permission, rec *domain.UnclaimedRecord) int {
		chain := asUser(user)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), UnclaimedCtx, rec)
			h.RequiredAction(p)(okHandler).ServeHTTP(w, r.WithContext(ctx))
		}))
		w := httptest.NewRecorder()
		chain.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
		return w.Code
	}

	own := &domain.UnclaimedRecord{Collector: "Ben Cruz"}
	other := &domain.UnclaimedRecord{Collector: "Ana Reyes"}

	require.Equal(t, http.StatusOK, serve(collector, domain.PermUpdateUnclaimed, own))
	require.Equal(t, http.StatusForbidden, serve(collector, domain.PermUpdateUnclaimed, other))
	require.Equal(t, http.StatusOK, serve(collector, domain.PermMarkCollected, other))
	require.Equal(t, http.StatusOK, serve(&domain.User{Role: domain.RoleSpecialist}, domain.PermUpdateUnclaimed, other))
	require.Equal(t, http.StatusForbidden, serve(&domain.User{Role: domain.RoleChecker}, domain.PermUpdateUnclaimed, own))
}

func pendingRouter(h *Handler, user *domain.User) http.Handler {
	r := chi.NewRouter()
	r.Use(asUser(user))
	r.Route("/pending", func(r chi.Router) {
		r.With(h.RequiredPermission(domain.PermViewUnclaimed)).Get("/", h.GetPending)
		r.With(h.RequiredPermission(domain.PermViewUnclaimed)).Get("/overdue", h.GetMostOverdue)
		r.With(h.RequiredPermission(domain.PermCreateUnclaimed)).Post("/feed", h.AddFeedRecord)
		r.With(h.RequiredPermission(domain.PermDeleteUnclaimed)).Delete("/feed/{transCode}", h.DeleteFeedRecord)
	})
	return r
}

func TestGetPending(t *testing.T) {
	svc := &fakePending{res: &pending.Result{
		Records: []domain.PendingRecord{
			{ID: 1, TransID: "P1", Source: domain.SourcePrimary, DaysOverdue: 2},
			{TransID: "F1", Source: domain.SourceExternalFeed, DaysOverdue: 7},
		},
		Warnings: []pending.Warning{{Endpoint: "https://sheet", Message: "timeout"}},
	}}
	h := newTestHandler(t, svc)
	srv := httptest.NewServer(pendingRouter(h, &domain.User{Role: domain.RoleStaff}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/pending/?area=North&collector=Ben")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Records []domain.PendingRecord `json:"records"`
			Warnings []struct {
				Endpoint string `json:"endpoint"`
				Message  string `json:"message"`
			} `json:"warnings"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Success)
	require.Len(t, body.Data.Records, 2)
	require.Equal(t, domain.SourceExternalFeed, body.Data.Records[1].Source)
	require.Equal(t, "https://sheet", body.Data.Warnings[0].Endpoint)
	require.Equal(t, domain.PendingFilter{Area: "North", Collector: "Ben"}, svc.lastQuery)
}

func TestGetPendingPrimaryFailure(t *testing.T) {
	h := newTestHandler(t, &fakePending{err: errors.New("db down")})
	srv := httptest.NewServer(pendingRouter(h, &domain.User{Role: domain.RoleStaff}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/pending/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.False(t, decode(t, resp.Body).Success)
}

func TestGetMostOverdue(t *testing.T) {
	records := make([]domain.PendingRecord, 0, 8)
	for i, d := range []int{3, 0, 11, 5, 8, 1, 9, 2} {
		records = append(records, domain.PendingRecord{ID: int64(i + 1), DaysOverdue: d})
	}
	h := newTestHandler(t, &fakePending{res: &pending.Result{Records: records}})
	srv := httptest.NewServer(pendingRouter(h, &domain.User{Role: domain.RoleCashier}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/pending/overdue")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Data struct {
			Records []domain.PendingRecord `json:"records"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data.Records, 5)
	got := make([]int, 0, 5)
	for _, r := range body.Data.Records {
		got = append(got, r.DaysOverdue)
	}
	require.Equal(t, []int{11, 9, 8, 5, 3}, got)

	resp, err = http.Get(srv.URL + "/pending/overdue?limit=abc")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.False(t, decode(t, resp.Body).Success)
}

func TestAddFeedRecord(t *testing.T) {
	svc := &fakePending{}
	h := newTestHandler(t, svc)
	srv := httptest.NewServer(pendingRouter(h, &domain.User{Role: domain.RoleChecker}))
	defer srv.Close()

	body := `{"trans_id":"T9","teller_name":"Ana","draw_date":"2024-02-01 18:00","win_amount":4500}`
	resp, err := http.Post(srv.URL+"/pending/feed", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.True(t, decode(t, resp.Body).Success)
	require.Len(t, svc.added, 1)
	require.Equal(t, feed.Text("T9"), svc.added[0].TransCode)
	require.Equal(t, feed.Text("Unclaimed"), svc.added[0].Status)

	resp, err = http.Post(srv.URL+"/pending/feed", "application/json", strings.NewReader(`{"trans_id":"T9","teller_name":"Ana","draw_date":"soon"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.False(t, decode(t, resp.Body).Success)
	require.Len(t, svc.added, 1)
}

func TestFeedWriteErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"no feed configured", pending.ErrNoFeedConfigured, http.StatusOK, "no spreadsheet feed is configured"},
		{"rejected by sheet", feed.ErrRejected, http.StatusOK, feed.ErrRejected.Error()},
		{"transport failure", errors.New("dial tcp: refused"), http.StatusBadGateway, "spreadsheet feed unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, &fakePending{writeErr: tt.err})
			srv := httptest.NewServer(pendingRouter(h, &domain.User{Role: domain.RoleAdmin}))
			defer srv.Close()

			req, err := http.NewRequest(http.MethodDelete, srv.URL+"/pending/feed/T1", nil)
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tt.status, resp.StatusCode)
			body := decode(t, resp.Body)
			require.False(t, body.Success)
			require.Equal(t, tt.message, body.Message)
		})
	}
}

func TestDeleteFeedRecordNeedsPermission(t *testing.T) {
	svc := &fakePending{}
	h := newTestHandler(t, svc)
	srv := httptest.NewServer(pendingRouter(h, &domain.User{Role: domain.RoleCollector}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/pending/feed/T1", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Empty(t, svc.deleted)
}

func TestParseUnclaimedFilter(t *testing.T) {
	q := url.Values{}
	q.Set("status", "Unclaimed, Uncollected")
	q.Set("collector", "Ben")
	q.Set("from", "2024-01-01")
	q.Set("order_by", "win_amount")
	q.Set("desc", "true")

	filter, err := parseUnclaimedFilter(q, time.UTC)
	require.NoError(t, err)
	require.Equal(t, []domain.UnclaimedStatus{domain.StatusUnclaimed, domain.StatusUncollected}, filter.Status)
	require.Equal(t, "Ben", filter.Collector)
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *filter.DrawFrom)
	require.Nil(t, filter.DrawTo)
	require.True(t, filter.Desc)

	_, err = parseUnclaimedFilter(url.Values{"status": {"Paid"}}, time.UTC)
	require.Error(t, err)
	_, err = parseUnclaimedFilter(url.Values{"order_by": {"password_hash"}}, time.UTC)
	require.Error(t, err)
	_, err = parseUnclaimedFilter(url.Values{"to": {"later"}}, time.UTC)
	require.Error(t, err)
}

func TestExportReport(t *testing.T) {
	h := newTestHandler(t, &fakePending{})
	rep := &domain.Report{
		PeriodStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Lines:       []domain.ReportRow{{Franchise: "Luzon", Area: "North", Records: 2, WinAmount: 1500, NetAmount: 1400}},
		Totals:      domain.ReportRow{Franchise: "TOTAL", Records: 2, WinAmount: 1500, NetAmount: 1400},
	}

	req := httptest.NewRequest(http.MethodGet, "/reports/1/export", nil)
	req = req.WithContext(context.WithValue(req.Context(), ReportCtx, rep))
	rec := httptest.NewRecorder()
	h.ExportReport(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "distribution-20240301-20240401.csv")

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Luzon", rows[1][0])
	require.Equal(t, "1400.00", rows[2][5])
}

func TestGetMyInfoListsPermissions(t *testing.T) {
	h := newTestHandler(t, &fakePending{})
	req := httptest.NewRequest(http.MethodGet, "/my-info", nil)
	req = req.WithContext(context.WithValue(req.Context(), MyInfoCtx, &domain.User{ID: 3, Username: "gm", Role: domain.RoleGeneralManager}))
	rec := httptest.NewRecorder()
	h.GetMyInfo(rec, req)

	var body struct {
		Data struct {
			Username    string              `json:"username"`
			Permissions []domain.Permission `json:"permissions"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "gm", body.Data.Username)
	require.ElementsMatch(t, []domain.Permission{
		domain.PermViewUnclaimed, domain.PermViewUsers, domain.PermViewReports, domain.PermExportReports,
	}, body.Data.Permissions)
}

func TestDashboardCache(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not reachable at %s: %v", addr, err)
	}

	h := newTestHandler(t, &fakePending{})
	h.redisClient = rdb
	h.config.Redis.OperationExpiration = 2
	h.config.Dashboard.CacheTTL = 5

	key := dashboardCacheKey("test-" + strconv.FormatInt(time.Now().UnixNano(), 10))
	defer rdb.Del(context.Background(), key)

	_, ok := h.cachedDashboard(context.Background(), key)
	require.False(t, ok)

	h.storeDashboard(context.Background(), key, &Dashboard{
		PendingCount:     2,
		PendingWinAmount: 8500,
		Warnings:         []pending.Warning{{Endpoint: "https://sheet", Message: "timeout"}},
	})

	got, ok := h.cachedDashboard(context.Background(), key)
	require.True(t, ok)
	require.Equal(t, 2, got.PendingCount)
	require.Equal(t, 8500.0, got.PendingWinAmount)
	require.Equal(t, "timeout", got.Warnings[0].Message)
}

func TestDashboardCacheDisabled(t *testing.T) {
	h := newTestHandler(t, &fakePending{})
	h.storeDashboard(context.Background(), "dashboard:", &Dashboard{})
	_, ok := h.cachedDashboard(context.Background(), "dashboard:")
	require.False(t, ok)
}

func TestBuildDashboard(t *testing.T) {
	now := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
	res := &pending.Result{
		Records: []domain.PendingRecord{
			{TransID: "T-1", WinAmount: 4500, DaysOverdue: 2},
			{TransID: "T-2", WinAmount: 1200, DaysOverdue: 9},
			{TransID: "T-3", WinAmount: 300, DaysOverdue: 5},
		},
		Warnings: []pending.Warning{{Endpoint: "https://sheet-2", Message: "timeout"}},
	}

	dash := buildDashboard(nil, res, 2, now)
	require.Equal(t, 3, dash.PendingCount)
	require.Equal(t, 6000.0, dash.PendingWinAmount)
	require.Len(t, dash.MostOverdue, 2)
	require.Equal(t, "T-2", dash.MostOverdue[0].TransID)
	require.Len(t, dash.Warnings, 1)
	require.Equal(t, now, dash.GeneratedAt)

	raw, err := json.Marshal(dash)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"pending_win_amount":6000`)
}

// serveRecord runs next with user and rec in the request context, as myInfo and
// unclaimedCtx would.
func serveRecord(next http.HandlerFunc, user *domain.User, rec *domain.UnclaimedRecord, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body))
	ctx := context.WithValue(req.Context(), MyInfoCtx, user)
	ctx = context.WithValue(ctx, UnclaimedCtx, rec)

	w := httptest.NewRecorder()
	next.ServeHTTP(w, req.WithContext(ctx))
	return w
}

func TestUpdateUnclaimedCollectionStatus(t *testing.T) {
	h := newTestHandler(t, &fakePending{})
	collector := &domain.User{ID: 5, Role: domain.RoleCollector, FullName: "Ben Cruz"}
	admin := &domain.User{ID: 1, Role: domain.RoleAdmin, FullName: "Admin"}

	tests := []struct {
		name   string
		user   *domain.User
		status domain.UnclaimedStatus
		body   string
		want   string
	}{
		{"collector to collected", collector, domain.StatusUnclaimed, `{"status":"Collected"}`, "/collect"},
		{"collector to uncollected", collector, domain.StatusUnclaimed, `{"status":"Uncollected"}`, "/collect"},
		{"admin to collected", admin, domain.StatusUncollected, `{"status":"Collected"}`, "/deposit"},
		{"reopen cancelled", admin, domain.StatusCancelled, `{"status":"Unclaimed"}`, "cannot change status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &domain.UnclaimedRecord{ID: 9, TransID: "T-9", WinAmount: 1000, Collector: "Ben Cruz", Status: tt.status}
			w := serveRecord(h.UpdateUnclaimed, tt.user, rec, tt.body)
			require.Equal(t, http.StatusOK, w.Code)

			resp := decode(t, w.Body)
			require.False(t, resp.Success)
			require.Contains(t, resp.Message, tt.want)
			require.Equal(t, tt.status, rec.Status)
		})
	}
}

func TestUpdateUnclaimedHandOver(t *testing.T) {
	h := newTestHandler(t, &fakePending{})
	collector := &domain.User{ID: 5, Role: domain.RoleCollector, FullName: "Ben Cruz"}

	rec := &domain.UnclaimedRecord{ID: 9, TransID: "T-9", WinAmount: 1000, Collector: "Ben Cruz", Status: domain.StatusUnclaimed}
	w := serveRecord(h.UpdateUnclaimed, collector, rec, `{"collector":"Ana Reyes"}`)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "Ben Cruz", rec.Collector)

	other := &domain.UnclaimedRecord{ID: 10, TransID: "T-10", WinAmount: 1000, Collector: "Ana Reyes", Status: domain.StatusUnclaimed}
	w = serveRecord(h.UpdateUnclaimed, collector, other, `{"teller_name":"Lito"}`)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestMarkCollectedRejections(t *testing.T) {
	h := newTestHandler(t, &fakePending{})
	cashier := &domain.User{ID: 4, Role: domain.RoleCashier, FullName: "Cora Lim"}
	collector := &domain.User{ID: 5, Role: domain.RoleCollector, FullName: "Ben Cruz"}

	tests := []struct {
		name   string
		user   *domain.User
		status domain.UnclaimedStatus
		want   string
	}{
		{"cashier on collected", cashier, domain.StatusCollected, "record is already Collected"},
		{"collector on uncollected", collector, domain.StatusUncollected, "record is already Uncollected"},
		{"collector on collected", collector, domain.StatusCollected, "cannot change status from Collected to Uncollected"},
		{"cashier on cancelled", cashier, domain.StatusCancelled, "cannot change status from Cancelled to Collected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &domain.UnclaimedRecord{ID: 9, TransID: "T-9", WinAmount: 1000, Collector: "Ben Cruz", Status: tt.status}
			w := serveRecord(h.MarkCollected, tt.user, rec, "")
			require.Equal(t, http.StatusOK, w.Code)

			resp := decode(t, w.Body)
			require.False(t, resp.Success)
			require.Equal(t, tt.want, resp.Message)
			require.Equal(t, tt.status, rec.Status)
		})
	}
}
