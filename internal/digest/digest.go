// Package digest mails the most overdue pending records to everyone who reads reports.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lottoops/unclaimed-tracker/backend/internal/authz"
	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
	"github.com/lottoops/unclaimed-tracker/backend/internal/pending"
	"github.com/robfig/cron/v3"
)

type PendingFetcher interface {
	FetchPendingFromAllSources(ctx context.Context, filter domain.PendingFilter) (*pending.Result, error)
}

type Recipients interface {
	GetActiveUsersByRoles(ctx context.Context, roles []domain.Role) ([]*domain.User, error)
}

type MailPublisher interface {
	Publish(ctx context.Context, msg domain.MailMessage) error
}

type Job struct {
	size       int
	timeout    time.Duration
	fetcher    PendingFetcher
	recipients Recipients
	publisher  MailPublisher
	logger     *slog.Logger
}

// New returns a job mailing the size most overdue records. A run gives up after timeout.
func New(size int, timeout time.Duration, fetcher PendingFetcher, recipients Recipients, publisher MailPublisher, logger *slog.Logger) *Job {
	if logger == nil {
		logger = slog.Default()
	}
	return &Job{
		size:       size,
		timeout:    timeout,
		fetcher:    fetcher,
		recipients: recipients,
		publisher:  publisher,
		logger:     logger,
	}
}

// Run sends one digest per recipient and returns how many were queued. Nothing is sent when no
// record is overdue.
func (j *Job) Run(ctx context.Context) (int, error) {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	res, err := j.fetcher.FetchPendingFromAllSources(ctx, domain.PendingFilter{})
	if err != nil {
		return 0, fmt.Errorf("fetch pending records: %w", err)
	}

	top := pending.MostOverdue(res.Records, j.size)
	overdue := make([]domain.PendingRecord, 0, len(top))
	for _, rec := range top {
		if rec.DaysOverdue > 0 {
			overdue = append(overdue, rec)
		}
	}
	if len(overdue) == 0 {
		j.logger.Info("overdue digest skipped, nothing overdue")
		return 0, nil
	}

	warnings := make([]string, 0, len(res.Warnings))
	for _, w := range res.Warnings {
		warnings = append(warnings, fmt.Sprintf("%s: %s", w.Endpoint, w.Message))
	}

	users, err := j.recipients.GetActiveUsersByRoles(ctx, authz.RolesWith(domain.PermViewReports))
	if err != nil {
		return 0, fmt.Errorf("list digest recipients: %w", err)
	}

	sent := 0
	for _, user := range users {
		if !user.IsActive() || user.Email == "" || !authz.HasPermission(user, domain.PermViewReports) {
			continue
		}

		msg := domain.MailMessage{
			Type: domain.MailTypeOverdueDigest,
			To:   user.Email,
			Data: domain.OverdueDigestMailData{
				FullName: user.FullName,
				Records:  overdue,
				Warnings: warnings,
			},
		}
		if err := j.publisher.Publish(ctx, msg); err != nil {
			j.logger.Error("failed to queue overdue digest", "user", user.Username, "error", err)
			continue
		}
		sent++
	}

	j.logger.Info("overdue digest queued", "recipients", sent, "records", len(overdue))
	return sent, nil
}

// Schedule registers the job on c under a standard five-field cron spec.
func (j *Job) Schedule(c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		if _, err := j.Run(context.Background()); err != nil {
			j.logger.Error("overdue digest failed", "error", err)
		}
	})
}
