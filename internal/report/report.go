// Package report builds distribution summaries of unclaimed records and exports them.
package report

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
)

type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Build groups the records drawn within period by franchise and area. Cancelled records are left out.
// Lines are sorted by franchise then area.
func Build(title string, records []*domain.UnclaimedRecord, period Period) *domain.Report {
	type key struct{ franchise, area string }
	lines := make(map[key]*domain.ReportRow)
	totals := domain.ReportRow{Franchise: "TOTAL"}

	for _, rec := range records {
		if rec == nil || rec.Status == domain.StatusCancelled || !period.Contains(rec.DrawDate) {
			continue
		}

		k := key{rec.Franchise, rec.Area}
		line, ok := lines[k]
		if !ok {
			line = &domain.ReportRow{Franchise: rec.Franchise, Area: rec.Area}
			lines[k] = line
		}
		add(line, rec)
		add(&totals, rec)
	}

	rows := make([]domain.ReportRow, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, *line)
	}
	slices.SortFunc(rows, func(a, b domain.ReportRow) int {
		return cmp.Or(cmp.Compare(a.Franchise, b.Franchise), cmp.Compare(a.Area, b.Area))
	})

	return &domain.Report{
		Title:       title,
		PeriodStart: period.Start,
		PeriodEnd:   period.End,
		Lines:       rows,
		Totals:      totals,
	}
}

func add(row *domain.ReportRow, rec *domain.UnclaimedRecord) {
	net := rec.Net()
	row.Records++
	row.WinAmount += rec.WinAmount
	row.ChargeAmount += rec.ChargeAmount
	row.NetAmount += net
	if rec.Status == domain.StatusCollected {
		row.CollectedCount++
		row.CollectedNet += net
	} else {
		row.OutstandingCount++
		row.OutstandingNet += net
	}
}

var csvHeader = []string{
	"Franchise", "Area", "Records", "Win Amount", "Charge", "Net",
	"Collected", "Collected Net", "Outstanding", "Outstanding Net",
}

// WriteCSV writes the report lines followed by a totals row.
func WriteCSV(w io.Writer, r *domain.Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, line := range r.Lines {
		if err := cw.Write(csvRecord(line)); err != nil {
			return err
		}
	}
	if err := cw.Write(csvRecord(r.Totals)); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

func csvRecord(row domain.ReportRow) []string {
	return []string{
		row.Franchise,
		row.Area,
		strconv.Itoa(row.Records),
		money(row.WinAmount),
		money(row.ChargeAmount),
		money(row.NetAmount),
		strconv.Itoa(row.CollectedCount),
		money(row.CollectedNet),
		strconv.Itoa(row.OutstandingCount),
		money(row.OutstandingNet),
	}
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// Filename is the download name of an exported report.
func Filename(r *domain.Report) string {
	return fmt.Sprintf("distribution-%s-%s.csv", r.PeriodStart.Format("20060102"), r.PeriodEnd.Format("20060102"))
}
