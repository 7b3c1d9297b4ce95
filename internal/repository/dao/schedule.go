package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrScheduleNotFound    = errors.New("schedule not found")
	ErrScheduleNotEditable = errors.New("schedule is no longer editable")
)

type Schedule struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Description string
	Location    string
	Mode        string `gorm:"not null"` // "online" or "onsite"
	Status      string `gorm:"not null;default:scheduled;index"`

	OpensAt          time.Time `gorm:"not null"`
	ClosesAt         time.Time `gorm:"not null"`
	ToleranceMinutes int       `gorm:"not null;default:0"`

	// Geofence; all three are set together for onsite events, all nil otherwise.
	GeofenceLat    *float64
	GeofenceLng    *float64
	GeofenceRadius *float64

	CreatedBy uint `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ScheduleDAO struct {
	db *gorm.DB
}

func NewScheduleDAO(db *gorm.DB) *ScheduleDAO {
	return &ScheduleDAO{
		db: db,
	}
}

func (d *ScheduleDAO) Insert(ctx context.Context, schedule Schedule) (Schedule, error) {
	result := d.db.WithContext(ctx).Create(&schedule)
	if result.Error != nil {
		return Schedule{}, result.Error
	}

	return schedule, nil
}

func (d *ScheduleDAO) FindByID(ctx context.Context, id uint) (Schedule, error) {
	var schedule Schedule

	result := d.db.WithContext(ctx).First(&schedule, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Schedule{}, ErrScheduleNotFound
		}

		return Schedule{}, result.Error
	}

	return schedule, nil
}

func (d *ScheduleDAO) FindUpcoming(ctx context.Context, after time.Time) ([]Schedule, error) {
	var schedules []Schedule

	result := d.db.WithContext(ctx).
		Where("status = ? AND closes_at >= ?", "scheduled", after).
		Order("opens_at").
		Find(&schedules)
	if result.Error != nil {
		return nil, result.Error
	}

	return schedules, nil
}

func (d *ScheduleDAO) FindAll(ctx context.Context) ([]Schedule, error) {
	var schedules []Schedule

	result := d.db.WithContext(ctx).Order("opens_at desc").Find(&schedules)
	if result.Error != nil {
		return nil, result.Error
	}

	return schedules, nil
}

func (d *ScheduleDAO) Update(ctx context.Context, schedule Schedule) (Schedule, error) {
	result := d.db.WithContext(ctx).Save(&schedule)
	if result.Error != nil {
		return Schedule{}, result.Error
	}

	return schedule, nil
}

func (d *ScheduleDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).
		Model(&Schedule{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}
