package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/siaksi/siaksi-api/internal/domain"
	"github.com/siaksi/siaksi-api/internal/repository/dao"
)

var ErrScheduleNotFound = dao.ErrScheduleNotFound

type ScheduleDAO interface {
	Insert(ctx context.Context, schedule dao.Schedule) (dao.Schedule, error)
	FindByID(ctx context.Context, id uint) (dao.Schedule, error)
	FindUpcoming(ctx context.Context, after time.Time) ([]dao.Schedule, error)
	FindAll(ctx context.Context) ([]dao.Schedule, error)
	Update(ctx context.Context, schedule dao.Schedule) (dao.Schedule, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type ScheduleRepository struct {
	dao ScheduleDAO
}

func NewScheduleRepository(dao ScheduleDAO) *ScheduleRepository {
	return &ScheduleRepository{
		dao: dao,
	}
}

func (r *ScheduleRepository) Create(ctx context.Context, schedule domain.Schedule) (domain.Schedule, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(schedule))
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ScheduleRepository) FindByID(ctx context.Context, id uint) (domain.Schedule, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ScheduleRepository) FindUpcoming(ctx context.Context, after time.Time) ([]domain.Schedule, error) {
	found, err := r.dao.FindUpcoming(ctx, after)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindUpcoming -> %w", err)
	}

	return r.daoSliceToDomain(found), nil
}

func (r *ScheduleRepository) FindAll(ctx context.Context) ([]domain.Schedule, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daoSliceToDomain(found), nil
}

func (r *ScheduleRepository) Update(ctx context.Context, schedule domain.Schedule) (domain.Schedule, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(schedule))
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ScheduleRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	if err := r.dao.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *ScheduleRepository) domainToDao(s domain.Schedule) dao.Schedule {
	d := dao.Schedule{
		ID:               s.ID,
		Title:            s.Title,
		Description:      s.Description,
		Location:         s.Location,
		Mode:             s.Mode,
		Status:           s.Status,
		OpensAt:          s.OpensAt,
		ClosesAt:         s.ClosesAt,
		ToleranceMinutes: s.ToleranceMinutes,
		CreatedBy:        s.CreatedBy,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}

	if s.Geofence != nil {
		lat, lng, radius := s.Geofence.Latitude, s.Geofence.Longitude, s.Geofence.RadiusMeters
		d.GeofenceLat = &lat
		d.GeofenceLng = &lng
		d.GeofenceRadius = &radius
	}

	return d
}

func (r *ScheduleRepository) daoToDomain(s dao.Schedule) domain.Schedule {
	schedule := domain.Schedule{
		ID:               s.ID,
		Title:            s.Title,
		Description:      s.Description,
		Location:         s.Location,
		Mode:             s.Mode,
		Status:           s.Status,
		OpensAt:          s.OpensAt,
		ClosesAt:         s.ClosesAt,
		ToleranceMinutes: s.ToleranceMinutes,
		CreatedBy:        s.CreatedBy,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}

	if s.GeofenceLat != nil && s.GeofenceLng != nil && s.GeofenceRadius != nil {
		schedule.Geofence = &domain.Geofence{
			Latitude:     *s.GeofenceLat,
			Longitude:    *s.GeofenceLng,
			RadiusMeters: *s.GeofenceRadius,
		}
	}

	return schedule
}

func (r *ScheduleRepository) daoSliceToDomain(schedules []dao.Schedule) []domain.Schedule {
	out := make([]domain.Schedule, 0, len(schedules))
	for _, s := range schedules {
		out = append(out, r.daoToDomain(s))
	}

	return out
}
