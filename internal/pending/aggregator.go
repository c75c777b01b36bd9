// Package pending merges pending records from the primary store with the rows published by
// spreadsheet feeds.
package pending

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
	"github.com/lottoops/unclaimed-tracker/backend/internal/feed"
	"golang.org/x/sync/errgroup"
)

var ErrNoFeedConfigured = errors.New("no pending feed endpoint configured")

// PrimarySource is the store query behind the pending view. Rows must already carry
// days_overdue.
type PrimarySource interface {
	GetPendingRecords(ctx context.Context, filter domain.PendingFilter) ([]domain.PendingRecord, error)
}

// FeedClient is the subset of *feed.Client the aggregator uses.
type FeedClient interface {
	Fetch(ctx context.Context, endpoint string) ([]feed.Row, error)
	Append(ctx context.Context, endpoint string, row feed.Row) error
	Delete(ctx context.Context, endpoint string, transCode string) error
}

type Config struct {
	Endpoints []string
	// Now defaults to time.Now.
	Now func() time.Time
	// Location is used for draw times without a zone. Defaults to time.Local.
	Location *time.Location
}

// Warning describes a feed that contributed nothing to a merge.
type Warning struct {
	Endpoint string `json:"endpoint"`
	Err      error  `json:"-"`
	Message  string `json:"message"`
}

type Result struct {
	Records  []domain.PendingRecord `json:"records"`
	Warnings []Warning              `json:"warnings"`
}

type Aggregator struct {
	endpoints []string
	primary   PrimarySource
	feed      FeedClient
	now       func() time.Time
	loc       *time.Location
	logger    *slog.Logger
}

func New(cfg Config, primary PrimarySource, feed FeedClient, logger *slog.Logger) *Aggregator {
	endpoints := make([]string, 0, len(cfg.Endpoints))
	for _, endpoint := range cfg.Endpoints {
		if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
			endpoints = append(endpoints, endpoint)
		}
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Aggregator{
		endpoints: endpoints,
		primary:   primary,
		feed:      feed,
		now:       now,
		loc:       loc,
		logger:    logger,
	}
}

func (a *Aggregator) Endpoints() []string {
	return append([]string(nil), a.endpoints...)
}

// FetchPendingFromAllSources queries the primary store and every feed at once. A feed that
// fails is logged, reported in Result.Warnings and skipped. A primary failure fails the call.
func (a *Aggregator) FetchPendingFromAllSources(ctx context.Context, filter domain.PendingFilter) (*Result, error) {
	var (
		primaryRows []domain.PendingRecord
		feedRows    []domain.PendingRecord
		warnings    []Warning
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := a.primary.GetPendingRecords(gctx, filter)
		if err != nil {
			return fmt.Errorf("query primary pending records: %w", err)
		}
		for i := range rows {
			rows[i].Source = domain.SourcePrimary
		}
		primaryRows = rows
		return nil
	})

	g.Go(func() error {
		feedRows, warnings = a.fetchFeeds(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]domain.PendingRecord, 0, len(primaryRows)+len(feedRows))
	records = append(records, primaryRows...)
	records = append(records, feedRows...)

	return &Result{Records: records, Warnings: warnings}, nil
}

type feedOutcome struct {
	rows []feed.Row
	err  error
}

// fetchFeeds waits for every endpoint to settle; one failing never cancels the others.
func (a *Aggregator) fetchFeeds(ctx context.Context) ([]domain.PendingRecord, []Warning) {
	outcomes := make([]feedOutcome, len(a.endpoints))

	var wg sync.WaitGroup
	for i, endpoint := range a.endpoints {
		wg.Add(1)
		go func(i int, endpoint string) {
			defer wg.Done()
			rows, err := a.feed.Fetch(ctx, endpoint)
			outcomes[i] = feedOutcome{rows: rows, err: err}
		}(i, endpoint)
	}
	wg.Wait()

	now := a.now()
	records := []domain.PendingRecord{}
	warnings := []Warning{}
	for i, outcome := range outcomes {
		if outcome.err != nil {
			a.logger.Warn("pending feed unavailable", "endpoint", a.endpoints[i], "error", outcome.err)
			warnings = append(warnings, Warning{
				Endpoint: a.endpoints[i],
				Err:      outcome.err,
				Message:  outcome.err.Error(),
			})
			continue
		}
		for _, row := range outcome.rows {
			records = append(records, a.fromFeedRow(row, now))
		}
	}

	return records, warnings
}

func (a *Aggregator) fromFeedRow(row feed.Row, now time.Time) domain.PendingRecord {
	return domain.PendingRecord{
		TransID:      row.TransCode.String(),
		TellerName:   row.TellerName.String(),
		BetNumber:    row.BetNumber.String(),
		BetCode:      row.BetCode.String(),
		DrawDate:     row.DrawTime.String(),
		BetAmount:    float64(row.BetAmount),
		WinAmount:    float64(row.WinAmount),
		Collector:    row.Collector.String(),
		Status:       row.Status.String(),
		Notification: row.Notification.String(),
		Source:       domain.SourceExternalFeed,
		DaysOverdue:  DaysOverdueFrom(row.DrawTime.String(), now, a.loc),
	}
}

// AddPendingRecord appends row to the first configured feed. Writes never fan out.
func (a *Aggregator) AddPendingRecord(ctx context.Context, row feed.Row) error {
	if len(a.endpoints) == 0 {
		return ErrNoFeedConfigured
	}
	if err := a.feed.Append(ctx, a.endpoints[0], row); err != nil {
		return fmt.Errorf("append pending record: %w", err)
	}
	return nil
}

// DeletePendingRecord removes transCode from the first configured feed.
func (a *Aggregator) DeletePendingRecord(ctx context.Context, transCode string) error {
	if len(a.endpoints) == 0 {
		return ErrNoFeedConfigured
	}
	if err := a.feed.Delete(ctx, a.endpoints[0], transCode); err != nil {
		return fmt.Errorf("delete pending record %s: %w", transCode, err)
	}
	return nil
}
