package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siaksi/siaksi-api/internal/domain"
	"github.com/siaksi/siaksi-api/internal/repository"
)

// fakeFinanceRepo implements FinanceRepository for tests.
type fakeFinanceRepo struct {
	entries map[uint]domain.FinanceEntry
	nextID  uint
}

func newFakeFinanceRepo() *fakeFinanceRepo {
	return &fakeFinanceRepo{entries: make(map[uint]domain.FinanceEntry)}
}

func (f *fakeFinanceRepo) Create(ctx context.Context, entry domain.FinanceEntry) (domain.FinanceEntry, error) {
	f.nextID++
	entry.ID = f.nextID
	f.entries[entry.ID] = entry

	return entry, nil
}

func (f *fakeFinanceRepo) FindByPeriod(ctx context.Context, from, to time.Time) ([]domain.FinanceEntry, error) {
	var out []domain.FinanceEntry
	for _, e := range f.entries {
		if !e.Date.Before(from) && e.Date.Before(to) {
			out = append(out, e)
		}
	}

	return out, nil
}

func (f *fakeFinanceRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := f.entries[id]; !ok {
		return repository.ErrFinanceEntryNotFound
	}
	delete(f.entries, id)

	return nil
}

func marchEntry(kind string, amount int64, day int) domain.FinanceEntry {
	return domain.FinanceEntry{
		Date:        time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
		Kind:        kind,
		Amount:      amount,
		Description: "Kas",
		RecordedBy:  1,
	}
}

func TestRecordEntry(t *testing.T) {
	svc := NewFinanceService(newFakeFinanceRepo())

	created, err := svc.RecordEntry(context.Background(), marchEntry(domain.FinanceIncome, 500000, 1))

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestRecordEntry_Invalid(t *testing.T) {
	svc := NewFinanceService(newFakeFinanceRepo())

	_, err := svc.RecordEntry(context.Background(), marchEntry("transfer", 500000, 1))
	assert.ErrorIs(t, err, ErrInvalidFinanceEntry)

	_, err = svc.RecordEntry(context.Background(), marchEntry(domain.FinanceIncome, 0, 1))
	assert.ErrorIs(t, err, ErrInvalidFinanceEntry)

	_, err = svc.RecordEntry(context.Background(), marchEntry(domain.FinanceExpense, -100, 1))
	assert.ErrorIs(t, err, ErrInvalidFinanceEntry)
}

func TestListEntries_SummarizesPeriod(t *testing.T) {
	svc := NewFinanceService(newFakeFinanceRepo())

	_, err := svc.RecordEntry(context.Background(), marchEntry(domain.FinanceIncome, 500000, 5))
	require.NoError(t, err)
	_, err = svc.RecordEntry(context.Background(), marchEntry(domain.FinanceExpense, 200000, 10))
	require.NoError(t, err)
	// Outside the queried period.
	_, err = svc.RecordEntry(context.Background(), domain.FinanceEntry{
		Date: time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC), Kind: domain.FinanceIncome, Amount: 999, RecordedBy: 1,
	})
	require.NoError(t, err)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	entries, summary, err := svc.ListEntries(context.Background(), from, to)

	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, int64(500000), summary.TotalIncome)
	assert.Equal(t, int64(200000), summary.TotalExpense)
	assert.Equal(t, int64(300000), summary.Balance)
}

func TestDeleteEntry_NotFound(t *testing.T) {
	svc := NewFinanceService(newFakeFinanceRepo())

	err := svc.DeleteEntry(context.Background(), 404)

	assert.ErrorIs(t, err, ErrFinanceEntryNotFound)
}

func TestExportReport_ProducesPDF(t *testing.T) {
	svc := NewFinanceService(newFakeFinanceRepo())

	_, err := svc.RecordEntry(context.Background(), marchEntry(domain.FinanceIncome, 1500000, 5))
	require.NoError(t, err)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	report, err := svc.ExportReport(context.Background(), from, from.AddDate(0, 1, 0))

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(report, []byte("%PDF")))
}
