package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrAttendanceExists   = errors.New("attendance record already exists")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)

type AttendanceRecord struct {
	ID uint `gorm:"primaryKey"`

	ScheduleID uint `gorm:"not null;uniqueIndex:idx_attendance_schedule_user"`
	UserID     uint `gorm:"not null;uniqueIndex:idx_attendance_schedule_user"`

	Status string `gorm:"not null"` // "hadir", "terlambat", "izin", or "alpha"
	Reason string

	Latitude  *float64
	Longitude *float64

	SubmittedAt time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

type AttendanceDAO struct {
	db *gorm.DB
}

func NewAttendanceDAO(db *gorm.DB) *AttendanceDAO {
	return &AttendanceDAO{
		db: db,
	}
}

// Insert persists a record. The unique index on (schedule_id, user_id) is
// the authoritative duplicate guard; a racing second insert surfaces here
// as ErrAttendanceExists.
func (d *AttendanceDAO) Insert(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error) {
	result := d.db.WithContext(ctx).Create(&record)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return AttendanceRecord{}, ErrAttendanceExists
		}

		return AttendanceRecord{}, result.Error
	}

	return record, nil
}

func (d *AttendanceDAO) FindByScheduleAndUser(ctx context.Context, scheduleID, userID uint) (AttendanceRecord, error) {
	var record AttendanceRecord

	result := d.db.WithContext(ctx).
		First(&record, "schedule_id = ? AND user_id = ?", scheduleID, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return AttendanceRecord{}, ErrAttendanceNotFound
		}

		return AttendanceRecord{}, result.Error
	}

	return record, nil
}

func (d *AttendanceDAO) FindBySchedule(ctx context.Context, scheduleID uint) ([]AttendanceRecord, error) {
	var records []AttendanceRecord

	result := d.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Order("submitted_at").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

func (d *AttendanceDAO) FindByUser(ctx context.Context, userID uint) ([]AttendanceRecord, error) {
	var records []AttendanceRecord

	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at desc").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

// FindUserIDsWithRecord returns the set of users that already have a record
// for the schedule, used by close-out to find the silent ones.
func (d *AttendanceDAO) FindUserIDsWithRecord(ctx context.Context, scheduleID uint) ([]uint, error) {
	var userIDs []uint

	result := d.db.WithContext(ctx).
		Model(&AttendanceRecord{}).
		Where("schedule_id = ?", scheduleID).
		Pluck("user_id", &userIDs)
	if result.Error != nil {
		return nil, result.Error
	}

	return userIDs, nil
}
