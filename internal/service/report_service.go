package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/apperrors"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/model"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/portfolio"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/reference"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/statement"
)

// UploadedFile is one statement submitted for processing.
type UploadedFile struct {
	Name string
	Body io.Reader
}

// ReportService turns uploaded statements into a portfolio report.
// Every request works on one snapshot of the reference tables.
type ReportService struct {
	store  *reference.Store
	prices portfolio.PriceLookup
	log    *logrus.Logger
	now    func() time.Time
}

// NewReportService creates a new ReportService. prices may be nil to skip
// market lookups.
func NewReportService(store *reference.Store, prices portfolio.PriceLookup, log *logrus.Logger) *ReportService {
	return &ReportService{
		store:  store,
		prices: prices,
		log:    log,
		now:    time.Now,
	}
}

// WithClock overrides the valuation clock.
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// Generate validates every file before computing anything. A file with
// missing columns or broken CSV fails the whole request; invalid rows are
// dropped and counted.
func (s *ReportService) Generate(ctx context.Context, files []UploadedFile) (*model.Report, error) {
	if len(files) == 0 {
		return nil, apperrors.ErrNoValidFiles
	}

	var txs []model.Transaction
	dropped := 0
	for _, f := range files {
		res, err := statement.Parse(f.Name, f.Body)
		if err != nil {
			return nil, err
		}
		for _, d := range res.Dropped {
			s.log.WithFields(logrus.Fields{
				"file":   f.Name,
				"row":    d.Row,
				"reason": d.Reason,
			}).Debug("row dropped")
		}
		dropped += len(res.Dropped)
		txs = append(txs, res.Transactions...)
	}
	if len(txs) == 0 {
		return nil, apperrors.ErrNoTransactions
	}

	result := portfolio.NewPipeline(s.store.Current(), s.prices, s.log).
		WithClock(s.now).
		Run(ctx, txs)

	report := &model.Report{
		ID:           uuid.New().String(),
		GeneratedAt:  s.now().UTC(),
		Summary:      result.Summary,
		Transactions: result.Transactions,
		TimeSeries:   result.TimeSeries,
		DroppedRows:  dropped,
	}

	s.log.WithFields(logrus.Fields{
		"report_id":    report.ID,
		"files":        len(files),
		"transactions": len(txs),
		"securities":   len(report.Summary),
		"dropped_rows": dropped,
	}).Info("report generated")

	return report, nil
}

// Reference returns the reference tables currently in use.
func (s *ReportService) Reference() model.ReferenceData {
	return s.store.Current().Export()
}
