package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrFinanceEntryNotFound = errors.New("finance entry not found")

type FinanceEntry struct {
	ID uint `gorm:"primaryKey"`

	Date        time.Time `gorm:"not null;index"`
	Kind        string    `gorm:"not null"` // "income" or "expense"
	Amount      int64     `gorm:"not null"`
	Description string    `gorm:"not null"`
	RecordedBy  uint      `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type FinanceDAO struct {
	db *gorm.DB
}

func NewFinanceDAO(db *gorm.DB) *FinanceDAO {
	return &FinanceDAO{
		db: db,
	}
}

func (d *FinanceDAO) Insert(ctx context.Context, entry FinanceEntry) (FinanceEntry, error) {
	result := d.db.WithContext(ctx).Create(&entry)
	if result.Error != nil {
		return FinanceEntry{}, result.Error
	}

	return entry, nil
}

func (d *FinanceDAO) FindByPeriod(ctx context.Context, from, to time.Time) ([]FinanceEntry, error) {
	var entries []FinanceEntry

	result := d.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date").
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

func (d *FinanceDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&FinanceEntry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFinanceEntryNotFound
	}

	return nil
}
