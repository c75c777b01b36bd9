// Package seed loads unclaimed records exported from the branch spreadsheets.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
	"github.com/lottoops/unclaimed-tracker/backend/internal/feed"
	"github.com/lottoops/unclaimed-tracker/backend/internal/pending"
	"github.com/lottoops/unclaimed-tracker/backend/internal/utils"
)

type column int

const (
	colTransID column = iota
	colTeller
	colDrawDate
	colBetNumber
	colBetCode
	colBetAmount
	colWinAmount
	colCharge
	colCollector
	colArea
	colFranchise
	colStatus
	colModeOfPayment
)

// HeaderMap maps the header spellings seen in branch exports to columns. Keys are lower case.
var HeaderMap = map[string]column{
	"trans id":        colTransID,
	"trans_id":        colTransID,
	"transcode":       colTransID,
	"trans code":      colTransID,
	"teller":          colTeller,
	"teller name":     colTeller,
	"teller_name":     colTeller,
	"draw date":       colDrawDate,
	"draw_date":       colDrawDate,
	"draw time":       colDrawDate,
	"bet number":      colBetNumber,
	"bet_number":      colBetNumber,
	"bet code":        colBetCode,
	"bet_code":        colBetCode,
	"game":            colBetCode,
	"bet amount":      colBetAmount,
	"bet_amount":      colBetAmount,
	"win amount":      colWinAmount,
	"win_amount":      colWinAmount,
	"charge":          colCharge,
	"charge amount":   colCharge,
	"charge_amount":   colCharge,
	"collector":       colCollector,
	"area":            colArea,
	"franchise":       colFranchise,
	"franchise name":  colFranchise,
	"franchise_name":  colFranchise,
	"status":          colStatus,
	"mode of payment": colModeOfPayment,
	"mode_of_payment": colModeOfPayment,
}

var requiredColumns = map[column]string{
	colTransID:   "trans id",
	colTeller:    "teller",
	colDrawDate:  "draw date",
	colWinAmount: "win amount",
}

// RowError is a data row that could not be turned into a record. Line is the line in the file.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ParseUnclaimedCSV reads records from r. Unknown columns are ignored. Rows that fail to parse are
// returned as RowErrors and do not stop the read; a bad header does.
func ParseUnclaimedCSV(r io.Reader, loc *time.Location) ([]*domain.UnclaimedRecord, []error, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("file is empty")
		}
		return nil, nil, err
	}

	index := make(map[column]int)
	for i, header := range headers {
		header = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\ufeff")))
		if col, ok := HeaderMap[header]; ok {
			if _, dup := index[col]; !dup {
				index[col] = i
			}
		}
	}
	for col, name := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, nil, fmt.Errorf("missing %q column", name)
		}
	}

	var records []*domain.UnclaimedRecord
	var rowErrs []error
	for {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return records, rowErrs, err
		}
		line, _ := reader.FieldPos(0)

		cell := func(col column) string {
			i, ok := index[col]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		if strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}

		rec, err := recordFromRow(cell, loc)
		if err != nil {
			rowErrs = append(rowErrs, &RowError{Line: line, Err: err})
			continue
		}
		records = append(records, rec)
	}

	return records, rowErrs, nil
}

func recordFromRow(cell func(column) string, loc *time.Location) (*domain.UnclaimedRecord, error) {
	rec := &domain.UnclaimedRecord{
		TransID:       cell(colTransID),
		TellerName:    cell(colTeller),
		BetNumber:     cell(colBetNumber),
		BetCode:       cell(colBetCode),
		BetAmount:     feed.ParseAmount(cell(colBetAmount)),
		WinAmount:     feed.ParseAmount(cell(colWinAmount)),
		ChargeAmount:  feed.ParseAmount(cell(colCharge)),
		Collector:     cell(colCollector),
		Area:          cell(colArea),
		Franchise:     cell(colFranchise),
		ModeOfPayment: cell(colModeOfPayment),
		Status:        domain.StatusUnclaimed,
	}

	if rec.TransID == "" {
		return nil, errors.New("trans id is empty")
	}
	if rec.TellerName == "" {
		return nil, errors.New("teller is empty")
	}

	draw, ok := pending.ParseDrawTime(cell(colDrawDate), loc)
	if !ok {
		return nil, fmt.Errorf("draw date %q is not a valid date", cell(colDrawDate))
	}
	rec.DrawDate = draw

	if status := cell(colStatus); status != "" {
		if !utils.IsUnclaimedStatus(status) {
			return nil, fmt.Errorf("unknown status %q", status)
		}
		rec.Status = domain.UnclaimedStatus(status)
	}

	rec.RecomputeNet()
	if err := utils.ValidateUnclaimedAmounts(rec); err != nil {
		return nil, err
	}

	return rec, nil
}

type UnclaimedStore interface {
	CreateUnclaimed(ctx context.Context, rec *domain.UnclaimedRecord) error
}

// ImportUnclaimedFile parses path and stores every valid row, returning how many were stored.
// Bad rows and failed inserts are logged and skipped.
func ImportUnclaimedFile(ctx context.Context, store UnclaimedStore, path string, loc *time.Location, createdBy *int64) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	records, rowErrs, err := ParseUnclaimedCSV(file, loc)
	if err != nil {
		return 0, err
	}
	for _, rowErr := range rowErrs {
		slog.Warn("skipping row", "file", path, "error", rowErr)
	}

	stored := 0
	for _, rec := range records {
		rec.CreatedBy = createdBy
		if err := store.CreateUnclaimed(ctx, rec); err != nil {
			slog.Error("cannot insert record", "trans_id", rec.TransID, "error", err)
			continue
		}
		stored++
	}

	return stored, nil
}
