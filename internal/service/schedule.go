package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/siaksi/siaksi-api/internal/domain"
	"github.com/siaksi/siaksi-api/internal/repository"
)

var (
	ErrScheduleNotFound    = repository.ErrScheduleNotFound
	ErrScheduleNotEditable = errors.New("schedule can only be edited while scheduled")
	ErrInvalidSchedule     = errors.New("invalid schedule definition")
)

type ScheduleRepository interface {
	Create(ctx context.Context, schedule domain.Schedule) (domain.Schedule, error)
	FindByID(ctx context.Context, id uint) (domain.Schedule, error)
	FindUpcoming(ctx context.Context, after time.Time) ([]domain.Schedule, error)
	FindAll(ctx context.Context) ([]domain.Schedule, error)
	Update(ctx context.Context, schedule domain.Schedule) (domain.Schedule, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type ScheduleService struct {
	repo ScheduleRepository
}

func NewScheduleService(repo ScheduleRepository) *ScheduleService {
	return &ScheduleService{
		repo: repo,
	}
}

// validateSchedule enforces the schedule invariants: open before close,
// non-negative tolerance, geofence only on onsite events with a positive
// radius.
func validateSchedule(schedule domain.Schedule) error {
	if schedule.OpensAt.After(schedule.ClosesAt) {
		return fmt.Errorf("%w: opens_at is after closes_at", ErrInvalidSchedule)
	}
	if schedule.ToleranceMinutes < 0 {
		return fmt.Errorf("%w: negative tolerance", ErrInvalidSchedule)
	}
	if schedule.Mode == domain.ModeOnline && schedule.Geofence != nil {
		return fmt.Errorf("%w: online events cannot carry a geofence", ErrInvalidSchedule)
	}
	if schedule.Geofence != nil && schedule.Geofence.RadiusMeters <= 0 {
		return fmt.Errorf("%w: geofence radius must be positive", ErrInvalidSchedule)
	}

	return nil
}

func (s *ScheduleService) CreateSchedule(ctx context.Context, schedule domain.Schedule) (domain.Schedule, error) {
	if err := validateSchedule(schedule); err != nil {
		return domain.Schedule{}, err
	}

	schedule.Status = domain.ScheduleStatusScheduled

	created, err := s.repo.Create(ctx, schedule)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ScheduleService) GetSchedule(ctx context.Context, id uint) (domain.Schedule, error) {
	schedule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return schedule, nil
}

func (s *ScheduleService) ListUpcoming(ctx context.Context) ([]domain.Schedule, error) {
	schedules, err := s.repo.FindUpcoming(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindUpcoming -> %w", err)
	}

	return schedules, nil
}

func (s *ScheduleService) ListAll(ctx context.Context) ([]domain.Schedule, error) {
	schedules, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return schedules, nil
}

// UpdateSchedule replaces the editable fields. Cancelled and archived
// schedules are read-only.
func (s *ScheduleService) UpdateSchedule(ctx context.Context, updated domain.Schedule) (domain.Schedule, error) {
	existing, err := s.repo.FindByID(ctx, updated.ID)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if existing.Status != domain.ScheduleStatusScheduled {
		return domain.Schedule{}, ErrScheduleNotEditable
	}

	if err = validateSchedule(updated); err != nil {
		return domain.Schedule{}, err
	}

	updated.Status = existing.Status
	updated.CreatedBy = existing.CreatedBy
	updated.CreatedAt = existing.CreatedAt

	saved, err := s.repo.Update(ctx, updated)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return saved, nil
}

func (s *ScheduleService) CancelSchedule(ctx context.Context, id uint) error {
	schedule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if schedule.Status != domain.ScheduleStatusScheduled {
		return ErrScheduleNotEditable
	}

	if err = s.repo.UpdateStatus(ctx, id, domain.ScheduleStatusCancelled); err != nil {
		return fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return nil
}
