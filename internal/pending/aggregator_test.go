package pending

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
	"github.com/lottoops/unclaimed-tracker/backend/internal/feed"
	"github.com/stretchr/testify/require"
)

type fakePrimary struct {
	records []domain.PendingRecord
	err     error
	filter  domain.PendingFilter
}

func (f *fakePrimary) GetPendingRecords(_ context.Context, filter domain.PendingFilter) ([]domain.PendingRecord, error) {
	f.filter = filter
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.PendingRecord(nil), f.records...), nil
}

type fakeFeed struct {
	mu       sync.Mutex
	rows     map[string][]feed.Row
	errs     map[string]error
	appended map[string][]feed.Row
	deleted  map[string][]string
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{
		rows:     map[string][]feed.Row{},
		errs:     map[string]error{},
		appended: map[string][]feed.Row{},
		deleted:  map[string][]string{},
	}
}

func (f *fakeFeed) Fetch(_ context.Context, endpoint string) ([]feed.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[endpoint]; err != nil {
		return nil, err
	}
	return f.rows[endpoint], nil
}

func (f *fakeFeed) Append(_ context.Context, endpoint string, row feed.Row) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[endpoint]; err != nil {
		return err
	}
	f.appended[endpoint] = append(f.appended[endpoint], row)
	return nil
}

func (f *fakeFeed) Delete(_ context.Context, endpoint string, transCode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[endpoint]; err != nil {
		return err
	}
	f.deleted[endpoint] = append(f.deleted[endpoint], transCode)
	return nil
}

var fixedNow = time.Date(2024, 1, 11, 12, 0, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAggregator(endpoints []string, primary PrimarySource, client FeedClient) *Aggregator {
	return New(Config{
		Endpoints: endpoints,
		Now:       func() time.Time { return fixedNow },
		Location:  time.UTC,
	}, primary, client, quietLogger())
}

func TestFetchPendingMergesFeedRow(t *testing.T) {
	primary := &fakePrimary{}
	client := newFakeFeed()
	client.rows["https://sheet-a"] = []feed.Row{{
		TransCode:  "T1",
		TellerName: "Ana",
		DrawTime:   "2024-01-01T00:00:00Z",
		BetNumber:  "123",
		BetCode:    "S3",
		BetAmount:  10,
		WinAmount:  4500,
		Collector:  "Ben",
		Status:     "Unclaimed",
	}}

	agg := newTestAggregator([]string{"https://sheet-a"}, primary, client)
	res, err := agg.FetchPendingFromAllSources(context.Background(), domain.PendingFilter{})
	require.NoError(t, err)
	require.Empty(t, res.Warnings)
	require.Len(t, res.Records, 1)

	got := res.Records[0]
	require.Equal(t, "T1", got.TransID)
	require.Equal(t, "Ana", got.TellerName)
	require.Equal(t, "123", got.BetNumber)
	require.Equal(t, "2024-01-01T00:00:00Z", got.DrawDate)
	require.Equal(t, 4500.0, got.WinAmount)
	require.Equal(t, "Ben", got.Collector)
	require.Equal(t, domain.SourceExternalFeed, got.Source)
	require.Equal(t, 7, got.DaysOverdue)
}

func TestFetchPendingSkipsFailedFeed(t *testing.T) {
	primary := &fakePrimary{records: []domain.PendingRecord{
		{ID: 1, TransID: "P1", DaysOverdue: 2},
		{ID: 2, TransID: "P2", DaysOverdue: 0},
	}}
	client := newFakeFeed()
	client.errs["https://sheet-a"] = errors.New("connection refused")
	client.rows["https://sheet-b"] = []feed.Row{
		{TransCode: "B1", DrawTime: "2024-01-10"},
		{TransCode: "B2", DrawTime: "not a date"},
		{TransCode: "B3", DrawTime: "1/2/2024"},
	}

	agg := newTestAggregator([]string{"https://sheet-a", "https://sheet-b"}, primary, client)
	res, err := agg.FetchPendingFromAllSources(context.Background(), domain.PendingFilter{Area: "North"})
	require.NoError(t, err)
	require.Equal(t, "North", primary.filter.Area)

	require.Len(t, res.Records, 5)
	require.Equal(t, "P1", res.Records[0].TransID)
	require.Equal(t, domain.SourcePrimary, res.Records[0].Source)
	require.Equal(t, domain.SourcePrimary, res.Records[1].Source)
	for _, r := range res.Records[2:] {
		require.Equal(t, domain.SourceExternalFeed, r.Source)
	}
	require.Equal(t, 0, res.Records[2].DaysOverdue)
	require.Equal(t, 0, res.Records[3].DaysOverdue)
	require.Equal(t, 6, res.Records[4].DaysOverdue)

	require.Len(t, res.Warnings, 1)
	require.Equal(t, "https://sheet-a", res.Warnings[0].Endpoint)
	require.Contains(t, res.Warnings[0].Message, "connection refused")
}

func TestFetchPendingAllFeedsFail(t *testing.T) {
	primary := &fakePrimary{records: []domain.PendingRecord{{ID: 1, TransID: "P1"}}}
	client := newFakeFeed()
	client.errs["a"] = errors.New("boom")
	client.errs["b"] = errors.New("boom")

	res, err := newTestAggregator([]string{"a", "b"}, primary, client).
		FetchPendingFromAllSources(context.Background(), domain.PendingFilter{})
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	require.Len(t, res.Warnings, 2)
}

func TestFetchPendingPrimaryFailure(t *testing.T) {
	primary := &fakePrimary{err: errors.New("db down")}
	client := newFakeFeed()
	client.rows["a"] = []feed.Row{{TransCode: "A1"}}

	res, err := newTestAggregator([]string{"a"}, primary, client).
		FetchPendingFromAllSources(context.Background(), domain.PendingFilter{})
	require.Error(t, err)
	require.ErrorContains(t, err, "db down")
	require.Nil(t, res)
}

func TestFetchPendingNoEndpoints(t *testing.T) {
	primary := &fakePrimary{records: []domain.PendingRecord{{ID: 1}, {ID: 2}}}

	res, err := newTestAggregator([]string{"", "  "}, primary, newFakeFeed()).
		FetchPendingFromAllSources(context.Background(), domain.PendingFilter{})
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	require.Empty(t, res.Warnings)
}

func TestFetchPendingOverHTTP(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[{"transCode":"H1","drawTime":"2024-01-01","winAmount":"1,000"}]}`))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	primary := &fakePrimary{records: []domain.PendingRecord{{ID: 7, TransID: "P7"}}}
	agg := newTestAggregator([]string{bad.URL, good.URL}, primary, feed.NewClient(time.Second))

	res, err := agg.FetchPendingFromAllSources(context.Background(), domain.PendingFilter{})
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	require.Equal(t, "H1", res.Records[1].TransID)
	require.Equal(t, 1000.0, res.Records[1].WinAmount)
	require.Equal(t, 7, res.Records[1].DaysOverdue)
	require.Len(t, res.Warnings, 1)
	require.Equal(t, bad.URL, res.Warnings[0].Endpoint)
}

func TestPendingWritesUseFirstEndpoint(t *testing.T) {
	client := newFakeFeed()
	agg := newTestAggregator([]string{"first", "second"}, &fakePrimary{}, client)

	require.NoError(t, agg.AddPendingRecord(context.Background(), feed.Row{TransCode: "N1"}))
	require.NoError(t, agg.DeletePendingRecord(context.Background(), "N0"))

	require.Len(t, client.appended["first"], 1)
	require.Empty(t, client.appended["second"])
	require.Equal(t, []string{"N0"}, client.deleted["first"])
	require.Empty(t, client.deleted["second"])
}

func TestPendingWritesWithoutEndpoint(t *testing.T) {
	agg := newTestAggregator(nil, &fakePrimary{}, newFakeFeed())

	require.ErrorIs(t, agg.AddPendingRecord(context.Background(), feed.Row{}), ErrNoFeedConfigured)
	require.ErrorIs(t, agg.DeletePendingRecord(context.Background(), "x"), ErrNoFeedConfigured)
}

func TestPendingWritePropagatesFeedError(t *testing.T) {
	client := newFakeFeed()
	client.errs["first"] = feed.ErrRejected
	agg := newTestAggregator([]string{"first"}, &fakePrimary{}, client)

	require.ErrorIs(t, agg.AddPendingRecord(context.Background(), feed.Row{}), feed.ErrRejected)
	require.ErrorIs(t, agg.DeletePendingRecord(context.Background(), "x"), feed.ErrRejected)
}
