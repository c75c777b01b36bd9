package digest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
	"github.com/lottoops/unclaimed-tracker/backend/internal/pending"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	res *pending.Result
	err error
}

func (s stubFetcher) FetchPendingFromAllSources(context.Context, domain.PendingFilter) (*pending.Result, error) {
	return s.res, s.err
}

type stubRecipients struct {
	users []*domain.User
	roles []domain.Role
}

func (s *stubRecipients) GetActiveUsersByRoles(_ context.Context, roles []domain.Role) ([]*domain.User, error) {
	s.roles = roles
	return s.users, nil
}

type capturePublisher struct {
	sent []domain.MailMessage
	fail map[string]bool
}

func (c *capturePublisher) Publish(_ context.Context, msg domain.MailMessage) error {
	if c.fail[msg.To] {
		return errors.New("queue unavailable")
	}
	c.sent = append(c.sent, msg)
	return nil
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func records(days ...int) []domain.PendingRecord {
	out := make([]domain.PendingRecord, 0, len(days))
	for i, d := range days {
		out = append(out, domain.PendingRecord{TransID: string(rune('a' + i)), DaysOverdue: d})
	}
	return out
}

func TestRunSendsTopOverdue(t *testing.T) {
	fetcher := stubFetcher{res: &pending.Result{
		Records:  records(0, 5, 2, 9, 1),
		Warnings: []pending.Warning{{Endpoint: "https://sheet", Message: "timeout"}},
	}}
	recipients := &stubRecipients{users: []*domain.User{
		{Username: "gm", FullName: "Gina", Email: "gina@example.com", Role: domain.RoleGeneralManager, Status: domain.UserStatusActive},
		{Username: "staff", FullName: "Sam", Email: "", Role: domain.RoleStaff, Status: domain.UserStatusActive},
		{Username: "col", FullName: "Cole", Email: "cole@example.com", Role: domain.RoleCollector, Status: domain.UserStatusActive},
		{Username: "old", FullName: "Olga", Email: "olga@example.com", Role: domain.RoleAdmin, Status: domain.UserStatusInactive},
	}}
	pub := &capturePublisher{}

	sent, err := New(3, time.Second, fetcher, recipients, pub, quiet()).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, sent)
	require.NotContains(t, recipients.roles, domain.RoleCollector)

	require.Len(t, pub.sent, 1)
	msg := pub.sent[0]
	require.Equal(t, domain.MailTypeOverdueDigest, msg.Type)
	require.Equal(t, "gina@example.com", msg.To)

	data := msg.Data.(domain.OverdueDigestMailData)
	require.Equal(t, "Gina", data.FullName)
	require.Len(t, data.Records, 3)
	require.Equal(t, 9, data.Records[0].DaysOverdue)
	require.Equal(t, 5, data.Records[1].DaysOverdue)
	require.Equal(t, 2, data.Records[2].DaysOverdue)
	require.Equal(t, []string{"https://sheet: timeout"}, data.Warnings)
}

func TestRunNothingOverdue(t *testing.T) {
	fetcher := stubFetcher{res: &pending.Result{Records: records(0, 0)}}
	recipients := &stubRecipients{}
	pub := &capturePublisher{}

	sent, err := New(5, 0, fetcher, recipients, pub, quiet()).Run(context.Background())
	require.NoError(t, err)
	require.Zero(t, sent)
	require.Nil(t, recipients.roles, "recipients are not looked up when nothing is overdue")
}

func TestRunFetchError(t *testing.T) {
	_, err := New(5, 0, stubFetcher{err: errors.New("db down")}, &stubRecipients{}, &capturePublisher{}, quiet()).
		Run(context.Background())
	require.ErrorContains(t, err, "db down")
}

func TestRunPublishFailureContinues(t *testing.T) {
	fetcher := stubFetcher{res: &pending.Result{Records: records(4)}}
	recipients := &stubRecipients{users: []*domain.User{
		{Username: "a", Email: "a@example.com", Role: domain.RoleAdmin, Status: domain.UserStatusActive},
		{Username: "b", Email: "b@example.com", Role: domain.RoleStaff, Status: domain.UserStatusActive},
	}}
	pub := &capturePublisher{fail: map[string]bool{"a@example.com": true}}

	sent, err := New(5, 0, fetcher, recipients, pub, quiet()).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, sent)
	require.Equal(t, "b@example.com", pub.sent[0].To)
}

func TestSchedule(t *testing.T) {
	c := cron.New()
	job := New(5, 0, stubFetcher{}, &stubRecipients{}, &capturePublisher{}, quiet())

	id, err := job.Schedule(c, "0 7 * * *")
	require.NoError(t, err)
	require.NotZero(t, id)
	require.Len(t, c.Entries(), 1)

	_, err = job.Schedule(c, "not a schedule")
	require.Error(t, err)
}
