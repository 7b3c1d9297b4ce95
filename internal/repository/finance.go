package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/siaksi/siaksi-api/internal/domain"
	"github.com/siaksi/siaksi-api/internal/repository/dao"
)

var ErrFinanceEntryNotFound = dao.ErrFinanceEntryNotFound

type FinanceDAO interface {
	Insert(ctx context.Context, entry dao.FinanceEntry) (dao.FinanceEntry, error)
	FindByPeriod(ctx context.Context, from, to time.Time) ([]dao.FinanceEntry, error)
	Delete(ctx context.Context, id uint) error
}

type FinanceRepository struct {
	dao FinanceDAO
}

func NewFinanceRepository(dao FinanceDAO) *FinanceRepository {
	return &FinanceRepository{
		dao: dao,
	}
}

func (r *FinanceRepository) Create(ctx context.Context, entry domain.FinanceEntry) (domain.FinanceEntry, error) {
	created, err := r.dao.Insert(ctx, dao.FinanceEntry{
		Date:        entry.Date,
		Kind:        entry.Kind,
		Amount:      entry.Amount,
		Description: entry.Description,
		RecordedBy:  entry.RecordedBy,
	})
	if err != nil {
		return domain.FinanceEntry{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *FinanceRepository) FindByPeriod(ctx context.Context, from, to time.Time) ([]domain.FinanceEntry, error) {
	found, err := r.dao.FindByPeriod(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByPeriod -> %w", err)
	}

	entries := make([]domain.FinanceEntry, 0, len(found))
	for _, e := range found {
		entries = append(entries, r.daoToDomain(e))
	}

	return entries, nil
}

func (r *FinanceRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *FinanceRepository) daoToDomain(e dao.FinanceEntry) domain.FinanceEntry {
	return domain.FinanceEntry{
		ID:          e.ID,
		Date:        e.Date,
		Kind:        e.Kind,
		Amount:      e.Amount,
		Description: e.Description,
		RecordedBy:  e.RecordedBy,
		CreatedAt:   e.CreatedAt,
	}
}
