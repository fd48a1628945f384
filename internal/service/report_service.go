package service

import (
	"time"

	"go-jewelry-pos/internal/apperror"
	"go-jewelry-pos/internal/repository"
)

// DefaultLowStockThreshold flags items whose combined quantity across
// warehouse and shops drops below it.
const DefaultLowStockThreshold = 5

// ReportService exposes the read-only figures the owner checks:
// valuation of everything on hand, what is running out, and what sold.
// Rendering and export are client concerns; these return plain structs.
type ReportService interface {
	Valuation() (*repository.ValuationReport, error)
	LowStock(threshold int) ([]repository.LowStockRow, error)
	SalesSummary(from, to time.Time) (*repository.SalesSummary, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
}

func NewReportService(reportRepo repository.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

func (s *reportService) Valuation() (*repository.ValuationReport, error) {
	report, err := s.reportRepo.Valuation()
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	return report, nil
}

func (s *reportService) LowStock(threshold int) ([]repository.LowStockRow, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	rows, err := s.reportRepo.LowStock(threshold)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	return rows, nil
}

func (s *reportService) SalesSummary(from, to time.Time) (*repository.SalesSummary, error) {
	// Last 30 days when the caller gives no range.
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	if from.After(to) {
		return nil, apperror.Validationf("from must not be after to")
	}
	summary, err := s.reportRepo.SalesSummary(from, to)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	return summary, nil
}
