package repository

import (
	"context"
	"fmt"

	"github.com/siaksi/siaksi-api/internal/domain"
	"github.com/siaksi/siaksi-api/internal/repository/dao"
)

var (
	ErrAttendanceExists   = dao.ErrAttendanceExists
	ErrAttendanceNotFound = dao.ErrAttendanceNotFound
)

type AttendanceDAO interface {
	Insert(ctx context.Context, record dao.AttendanceRecord) (dao.AttendanceRecord, error)
	FindByScheduleAndUser(ctx context.Context, scheduleID, userID uint) (dao.AttendanceRecord, error)
	FindBySchedule(ctx context.Context, scheduleID uint) ([]dao.AttendanceRecord, error)
	FindByUser(ctx context.Context, userID uint) ([]dao.AttendanceRecord, error)
	FindUserIDsWithRecord(ctx context.Context, scheduleID uint) ([]uint, error)
}

type AttendanceRepository struct {
	dao AttendanceDAO
}

func NewAttendanceRepository(dao AttendanceDAO) *AttendanceRepository {
	return &AttendanceRepository{
		dao: dao,
	}
}

func (r *AttendanceRepository) Create(ctx context.Context, record domain.AttendanceRecord) (domain.AttendanceRecord, error) {
	d := dao.AttendanceRecord{
		ScheduleID:  record.ScheduleID,
		UserID:      record.UserID,
		Status:      record.Status,
		Reason:      record.Reason,
		SubmittedAt: record.SubmittedAt,
	}

	if record.Coordinates != nil {
		lat, lng := record.Coordinates.Latitude, record.Coordinates.Longitude
		d.Latitude = &lat
		d.Longitude = &lng
	}

	created, err := r.dao.Insert(ctx, d)
	if err != nil {
		return domain.AttendanceRecord{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *AttendanceRepository) FindByScheduleAndUser(ctx context.Context, scheduleID, userID uint) (domain.AttendanceRecord, error) {
	found, err := r.dao.FindByScheduleAndUser(ctx, scheduleID, userID)
	if err != nil {
		return domain.AttendanceRecord{}, fmt.Errorf("r.dao.FindByScheduleAndUser -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *AttendanceRepository) FindBySchedule(ctx context.Context, scheduleID uint) ([]domain.AttendanceRecord, error) {
	found, err := r.dao.FindBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBySchedule -> %w", err)
	}

	records := make([]domain.AttendanceRecord, 0, len(found))
	for _, rec := range found {
		records = append(records, r.daoToDomain(rec))
	}

	return records, nil
}

func (r *AttendanceRepository) FindByUser(ctx context.Context, userID uint) ([]domain.AttendanceRecord, error) {
	found, err := r.dao.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUser -> %w", err)
	}

	records := make([]domain.AttendanceRecord, 0, len(found))
	for _, rec := range found {
		records = append(records, r.daoToDomain(rec))
	}

	return records, nil
}

func (r *AttendanceRepository) FindUserIDsWithRecord(ctx context.Context, scheduleID uint) ([]uint, error) {
	ids, err := r.dao.FindUserIDsWithRecord(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindUserIDsWithRecord -> %w", err)
	}

	return ids, nil
}

func (r *AttendanceRepository) daoToDomain(rec dao.AttendanceRecord) domain.AttendanceRecord {
	record := domain.AttendanceRecord{
		ID:          rec.ID,
		ScheduleID:  rec.ScheduleID,
		UserID:      rec.UserID,
		Status:      rec.Status,
		Reason:      rec.Reason,
		SubmittedAt: rec.SubmittedAt,
		CreatedAt:   rec.CreatedAt,
	}

	if rec.Latitude != nil && rec.Longitude != nil {
		record.Coordinates = &domain.Coordinates{
			Latitude:  *rec.Latitude,
			Longitude: *rec.Longitude,
		}
	}

	return record
}
