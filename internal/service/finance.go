package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/siaksi/siaksi-api/internal/domain"
	"github.com/siaksi/siaksi-api/internal/pdf"
	"github.com/siaksi/siaksi-api/internal/repository"
)

var (
	ErrFinanceEntryNotFound = repository.ErrFinanceEntryNotFound
	ErrInvalidFinanceEntry  = errors.New("invalid finance entry")
)

type FinanceRepository interface {
	Create(ctx context.Context, entry domain.FinanceEntry) (domain.FinanceEntry, error)
	FindByPeriod(ctx context.Context, from, to time.Time) ([]domain.FinanceEntry, error)
	Delete(ctx context.Context, id uint) error
}

type FinanceService struct {
	repo FinanceRepository
}

func NewFinanceService(repo FinanceRepository) *FinanceService {
	return &FinanceService{
		repo: repo,
	}
}

func (s *FinanceService) RecordEntry(ctx context.Context, entry domain.FinanceEntry) (domain.FinanceEntry, error) {
	if entry.Kind != domain.FinanceIncome && entry.Kind != domain.FinanceExpense {
		return domain.FinanceEntry{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidFinanceEntry, entry.Kind)
	}
	if entry.Amount <= 0 {
		return domain.FinanceEntry{}, fmt.Errorf("%w: amount must be positive", ErrInvalidFinanceEntry)
	}

	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		return domain.FinanceEntry{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *FinanceService) ListEntries(ctx context.Context, from, to time.Time) ([]domain.FinanceEntry, domain.FinanceSummary, error) {
	entries, err := s.repo.FindByPeriod(ctx, from, to)
	if err != nil {
		return nil, domain.FinanceSummary{}, fmt.Errorf("s.repo.FindByPeriod -> %w", err)
	}

	return entries, domain.Summarize(entries), nil
}

func (s *FinanceService) DeleteEntry(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// ExportReport renders the period's entries as a PDF.
func (s *FinanceService) ExportReport(ctx context.Context, from, to time.Time) ([]byte, error) {
	entries, err := s.repo.FindByPeriod(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByPeriod -> %w", err)
	}

	report, err := pdf.RenderFinanceReport(from, to, entries, domain.Summarize(entries))
	if err != nil {
		return nil, fmt.Errorf("pdf.RenderFinanceReport -> %w", err)
	}

	return report, nil
}
