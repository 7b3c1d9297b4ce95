package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siaksi/siaksi-api/internal/domain"
)

func validSchedule() domain.Schedule {
	opens := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	return domain.Schedule{
		Title:            "Latihan Rutin",
		Mode:             domain.ModeOnsite,
		OpensAt:          opens,
		ClosesAt:         opens.Add(time.Hour),
		ToleranceMinutes: 15,
		Geofence: &domain.Geofence{
			Latitude:     -6.71263,
			Longitude:    108.53125,
			RadiusMeters: 50,
		},
		CreatedBy: 1,
	}
}

func TestCreateSchedule(t *testing.T) {
	svc := NewScheduleService(newFakeScheduleRepo())

	created, err := svc.CreateSchedule(context.Background(), validSchedule())

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, domain.ScheduleStatusScheduled, created.Status)
}

func TestCreateSchedule_Invalid(t *testing.T) {
	svc := NewScheduleService(newFakeScheduleRepo())

	tests := []struct {
		name   string
		mutate func(*domain.Schedule)
	}{
		{"inverted window", func(s *domain.Schedule) {
			s.OpensAt, s.ClosesAt = s.ClosesAt, s.OpensAt
		}},
		{"negative tolerance", func(s *domain.Schedule) {
			s.ToleranceMinutes = -1
		}},
		{"online with geofence", func(s *domain.Schedule) {
			s.Mode = domain.ModeOnline
		}},
		{"non-positive radius", func(s *domain.Schedule) {
			s.Geofence.RadiusMeters = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := validSchedule()
			tt.mutate(&schedule)

			_, err := svc.CreateSchedule(context.Background(), schedule)
			assert.ErrorIs(t, err, ErrInvalidSchedule)
		})
	}
}

func TestUpdateSchedule_PreservesOrigin(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo)

	created, err := svc.CreateSchedule(context.Background(), validSchedule())
	require.NoError(t, err)

	updated := created
	updated.Title = "Latihan Tambahan"
	updated.CreatedBy = 99 // must not take effect

	saved, err := svc.UpdateSchedule(context.Background(), updated)

	require.NoError(t, err)
	assert.Equal(t, "Latihan Tambahan", saved.Title)
	assert.Equal(t, created.CreatedBy, saved.CreatedBy)
	assert.Equal(t, domain.ScheduleStatusScheduled, saved.Status)
}

func TestUpdateSchedule_NotEditableOnceCancelled(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo)

	created, err := svc.CreateSchedule(context.Background(), validSchedule())
	require.NoError(t, err)
	require.NoError(t, svc.CancelSchedule(context.Background(), created.ID))

	created.Title = "changed"
	_, err = svc.UpdateSchedule(context.Background(), created)

	assert.ErrorIs(t, err, ErrScheduleNotEditable)
}

func TestCancelSchedule_OnlyOnce(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo)

	created, err := svc.CreateSchedule(context.Background(), validSchedule())
	require.NoError(t, err)

	require.NoError(t, svc.CancelSchedule(context.Background(), created.ID))

	err = svc.CancelSchedule(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrScheduleNotEditable)
}

func TestCancelSchedule_NotFound(t *testing.T) {
	svc := NewScheduleService(newFakeScheduleRepo())

	err := svc.CancelSchedule(context.Background(), 404)

	assert.ErrorIs(t, err, ErrScheduleNotFound)
}
