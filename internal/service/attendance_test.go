package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siaksi/siaksi-api/internal/domain"
	"github.com/siaksi/siaksi-api/internal/repository"
)

// fakeAttendanceRepo implements AttendanceRepository for tests.
type fakeAttendanceRepo struct {
	records   map[string]domain.AttendanceRecord
	nextID    uint
	createErr error
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]domain.AttendanceRecord)}
}

func attendanceKey(scheduleID, userID uint) string {
	return fmt.Sprintf("%d/%d", scheduleID, userID)
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record domain.AttendanceRecord) (domain.AttendanceRecord, error) {
	if f.createErr != nil {
		return domain.AttendanceRecord{}, f.createErr
	}

	key := attendanceKey(record.ScheduleID, record.UserID)
	if _, exists := f.records[key]; exists {
		return domain.AttendanceRecord{}, repository.ErrAttendanceExists
	}

	f.nextID++
	record.ID = f.nextID
	f.records[key] = record

	return record, nil
}

func (f *fakeAttendanceRepo) FindByScheduleAndUser(ctx context.Context, scheduleID, userID uint) (domain.AttendanceRecord, error) {
	if record, ok := f.records[attendanceKey(scheduleID, userID)]; ok {
		return record, nil
	}

	return domain.AttendanceRecord{}, repository.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) FindBySchedule(ctx context.Context, scheduleID uint) ([]domain.AttendanceRecord, error) {
	var out []domain.AttendanceRecord
	for _, r := range f.records {
		if r.ScheduleID == scheduleID {
			out = append(out, r)
		}
	}

	return out, nil
}

func (f *fakeAttendanceRepo) FindByUser(ctx context.Context, userID uint) ([]domain.AttendanceRecord, error) {
	var out []domain.AttendanceRecord
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}

	return out, nil
}

func (f *fakeAttendanceRepo) FindUserIDsWithRecord(ctx context.Context, scheduleID uint) ([]uint, error) {
	var out []uint
	for _, r := range f.records {
		if r.ScheduleID == scheduleID {
			out = append(out, r.UserID)
		}
	}

	return out, nil
}

// fakeScheduleRepo implements ScheduleRepository for tests.
type fakeScheduleRepo struct {
	schedules map[uint]domain.Schedule
	nextID    uint
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{schedules: make(map[uint]domain.Schedule)}
}

func (f *fakeScheduleRepo) Create(ctx context.Context, schedule domain.Schedule) (domain.Schedule, error) {
	f.nextID++
	schedule.ID = f.nextID
	f.schedules[schedule.ID] = schedule

	return schedule, nil
}

func (f *fakeScheduleRepo) FindByID(ctx context.Context, id uint) (domain.Schedule, error) {
	if s, ok := f.schedules[id]; ok {
		return s, nil
	}

	return domain.Schedule{}, repository.ErrScheduleNotFound
}

func (f *fakeScheduleRepo) FindUpcoming(ctx context.Context, after time.Time) ([]domain.Schedule, error) {
	var out []domain.Schedule
	for _, s := range f.schedules {
		if s.ClosesAt.After(after) {
			out = append(out, s)
		}
	}

	return out, nil
}

func (f *fakeScheduleRepo) FindAll(ctx context.Context) ([]domain.Schedule, error) {
	var out []domain.Schedule
	for _, s := range f.schedules {
		out = append(out, s)
	}

	return out, nil
}

func (f *fakeScheduleRepo) Update(ctx context.Context, schedule domain.Schedule) (domain.Schedule, error) {
	if _, ok := f.schedules[schedule.ID]; !ok {
		return domain.Schedule{}, repository.ErrScheduleNotFound
	}
	f.schedules[schedule.ID] = schedule

	return schedule, nil
}

func (f *fakeScheduleRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	s, ok := f.schedules[id]
	if !ok {
		return repository.ErrScheduleNotFound
	}
	s.Status = status
	f.schedules[id] = s

	return nil
}

// fakeMemberRepo implements AttendanceMemberRepository and
// MailMemberRepository for tests.
type fakeMemberRepo struct {
	members map[uint]string // id -> role, all active
}

func (f *fakeMemberRepo) FindActiveIDs(ctx context.Context, role string) ([]uint, error) {
	var out []uint
	for id, r := range f.members {
		if role == "" || r == role {
			out = append(out, id)
		}
	}

	return out, nil
}

func seedSchedule(repo *fakeScheduleRepo) domain.Schedule {
	opens := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	schedule, _ := repo.Create(context.Background(), domain.Schedule{
		Title:            "Rapat Anggota",
		Mode:             domain.ModeOnsite,
		Status:           domain.ScheduleStatusScheduled,
		OpensAt:          opens,
		ClosesAt:         opens.Add(time.Hour),
		ToleranceMinutes: 15,
		Geofence: &domain.Geofence{
			Latitude:     -6.71263,
			Longitude:    108.53125,
			RadiusMeters: 50,
		},
	})

	return schedule
}

func TestSubmitAttendance_Accepted(t *testing.T) {
	scheduleRepo := newFakeScheduleRepo()
	schedule := seedSchedule(scheduleRepo)
	svc := NewAttendanceService(newFakeAttendanceRepo(), scheduleRepo, &fakeMemberRepo{})

	record, err := svc.SubmitAttendance(context.Background(), schedule.ID, 42, domain.Submission{
		SubmittedAt: schedule.OpensAt.Add(5 * time.Minute),
		Coordinates: &domain.Coordinates{Latitude: -6.71263, Longitude: 108.53125},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.AttendanceHadir, record.Status)
	assert.Equal(t, uint(42), record.UserID)
	assert.Equal(t, schedule.ID, record.ScheduleID)
}

func TestSubmitAttendance_ScheduleNotFound(t *testing.T) {
	svc := NewAttendanceService(newFakeAttendanceRepo(), newFakeScheduleRepo(), &fakeMemberRepo{})

	_, err := svc.SubmitAttendance(context.Background(), 99, 42, domain.Submission{SubmittedAt: time.Now()})

	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestSubmitAttendance_Duplicate(t *testing.T) {
	scheduleRepo := newFakeScheduleRepo()
	schedule := seedSchedule(scheduleRepo)
	svc := NewAttendanceService(newFakeAttendanceRepo(), scheduleRepo, &fakeMemberRepo{})

	sub := domain.Submission{
		SubmittedAt: schedule.OpensAt.Add(5 * time.Minute),
		Coordinates: &domain.Coordinates{Latitude: -6.71263, Longitude: 108.53125},
	}

	_, err := svc.SubmitAttendance(context.Background(), schedule.ID, 42, sub)
	require.NoError(t, err)

	_, err = svc.SubmitAttendance(context.Background(), schedule.ID, 42, sub)
	assert.ErrorIs(t, err, ErrDuplicateSubmission)
}

func TestSubmitAttendance_DuplicateOnInsertRace(t *testing.T) {
	scheduleRepo := newFakeScheduleRepo()
	schedule := seedSchedule(scheduleRepo)
	attendanceRepo := newFakeAttendanceRepo()
	attendanceRepo.createErr = repository.ErrAttendanceExists
	svc := NewAttendanceService(attendanceRepo, scheduleRepo, &fakeMemberRepo{})

	// The pre-read sees nothing, the insert hits the unique index.
	_, err := svc.SubmitAttendance(context.Background(), schedule.ID, 42, domain.Submission{
		SubmittedAt: schedule.OpensAt.Add(5 * time.Minute),
		Coordinates: &domain.Coordinates{Latitude: -6.71263, Longitude: 108.53125},
	})

	assert.ErrorIs(t, err, ErrDuplicateSubmission)
}

func TestSubmitAttendance_RejectionsAreNotPersisted(t *testing.T) {
	scheduleRepo := newFakeScheduleRepo()
	schedule := seedSchedule(scheduleRepo)
	attendanceRepo := newFakeAttendanceRepo()
	svc := NewAttendanceService(attendanceRepo, scheduleRepo, &fakeMemberRepo{})

	_, err := svc.SubmitAttendance(context.Background(), schedule.ID, 42, domain.Submission{
		SubmittedAt: schedule.ClosesAt.Add(time.Hour),
	})

	assert.ErrorIs(t, err, ErrOutsideWindow)
	assert.Empty(t, attendanceRepo.records)
}

func TestSubmitAttendance_Excuse(t *testing.T) {
	scheduleRepo := newFakeScheduleRepo()
	schedule := seedSchedule(scheduleRepo)
	svc := NewAttendanceService(newFakeAttendanceRepo(), scheduleRepo, &fakeMemberRepo{})

	record, err := svc.SubmitAttendance(context.Background(), schedule.ID, 42, domain.Submission{
		SubmittedAt: schedule.OpensAt.Add(-2 * time.Hour),
		Reason:      "sakit",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.AttendanceIzin, record.Status)
	assert.Equal(t, "sakit", record.Reason)
}

func TestGetRecap(t *testing.T) {
	scheduleRepo := newFakeScheduleRepo()
	schedule := seedSchedule(scheduleRepo)
	svc := NewAttendanceService(newFakeAttendanceRepo(), scheduleRepo, &fakeMemberRepo{})

	center := &domain.Coordinates{Latitude: -6.71263, Longitude: 108.53125}
	_, err := svc.SubmitAttendance(context.Background(), schedule.ID, 1, domain.Submission{
		SubmittedAt: schedule.OpensAt.Add(5 * time.Minute), Coordinates: center,
	})
	require.NoError(t, err)
	_, err = svc.SubmitAttendance(context.Background(), schedule.ID, 2, domain.Submission{
		SubmittedAt: schedule.OpensAt.Add(30 * time.Minute), Coordinates: center,
	})
	require.NoError(t, err)
	_, err = svc.SubmitAttendance(context.Background(), schedule.ID, 3, domain.Submission{
		SubmittedAt: schedule.OpensAt, Reason: "izin",
	})
	require.NoError(t, err)

	records, counts, err := svc.GetRecap(context.Background(), schedule.ID)

	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, 1, counts[domain.AttendanceHadir])
	assert.Equal(t, 1, counts[domain.AttendanceTerlambat])
	assert.Equal(t, 1, counts[domain.AttendanceIzin])
}

func TestCloseOutSchedule_MarksMissingMembersAlpha(t *testing.T) {
	scheduleRepo := newFakeScheduleRepo()
	schedule := seedSchedule(scheduleRepo)
	members := &fakeMemberRepo{members: map[uint]string{
		1: domain.RoleAnggota,
		2: domain.RoleAnggota,
		3: domain.RolePengurus,
	}}
	svc := NewAttendanceService(newFakeAttendanceRepo(), scheduleRepo, members)

	_, err := svc.SubmitAttendance(context.Background(), schedule.ID, 1, domain.Submission{
		SubmittedAt: schedule.OpensAt.Add(5 * time.Minute),
		Coordinates: &domain.Coordinates{Latitude: -6.71263, Longitude: 108.53125},
	})
	require.NoError(t, err)

	marked, err := svc.CloseOutSchedule(context.Background(), schedule.ID)

	require.NoError(t, err)
	assert.Equal(t, 2, marked)

	updated, err := scheduleRepo.FindByID(context.Background(), schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ScheduleStatusArchived, updated.Status)

	_, counts, err := svc.GetRecap(context.Background(), schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[domain.AttendanceAlpha])
	assert.Equal(t, 1, counts[domain.AttendanceHadir])
}

func TestCloseOutSchedule_Idempotent(t *testing.T) {
	scheduleRepo := newFakeScheduleRepo()
	schedule := seedSchedule(scheduleRepo)
	members := &fakeMemberRepo{members: map[uint]string{1: domain.RoleAnggota}}
	svc := NewAttendanceService(newFakeAttendanceRepo(), scheduleRepo, members)

	marked, err := svc.CloseOutSchedule(context.Background(), schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	marked, err = svc.CloseOutSchedule(context.Background(), schedule.ID)
	require.NoError(t, err)
	assert.Zero(t, marked)
}

func TestCloseOutSchedule_CancelledOnlyArchives(t *testing.T) {
	scheduleRepo := newFakeScheduleRepo()
	schedule := seedSchedule(scheduleRepo)
	require.NoError(t, scheduleRepo.UpdateStatus(context.Background(), schedule.ID, domain.ScheduleStatusCancelled))

	members := &fakeMemberRepo{members: map[uint]string{1: domain.RoleAnggota}}
	attendanceRepo := newFakeAttendanceRepo()
	svc := NewAttendanceService(attendanceRepo, scheduleRepo, members)

	marked, err := svc.CloseOutSchedule(context.Background(), schedule.ID)

	require.NoError(t, err)
	assert.Zero(t, marked)
	assert.Empty(t, attendanceRepo.records)

	updated, err := scheduleRepo.FindByID(context.Background(), schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ScheduleStatusArchived, updated.Status)
}

func TestGetHistory(t *testing.T) {
	scheduleRepo := newFakeScheduleRepo()
	schedule := seedSchedule(scheduleRepo)
	svc := NewAttendanceService(newFakeAttendanceRepo(), scheduleRepo, &fakeMemberRepo{})

	_, err := svc.SubmitAttendance(context.Background(), schedule.ID, 7, domain.Submission{
		SubmittedAt: schedule.OpensAt, Reason: "izin",
	})
	require.NoError(t, err)

	records, err := svc.GetHistory(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.AttendanceIzin, records[0].Status)
}

func TestSubmitAttendance_UnexpectedRepoError(t *testing.T) {
	scheduleRepo := newFakeScheduleRepo()
	schedule := seedSchedule(scheduleRepo)
	attendanceRepo := newFakeAttendanceRepo()
	attendanceRepo.createErr = errors.New("connection reset")
	svc := NewAttendanceService(attendanceRepo, scheduleRepo, &fakeMemberRepo{})

	_, err := svc.SubmitAttendance(context.Background(), schedule.ID, 42, domain.Submission{
		SubmittedAt: schedule.OpensAt,
		Coordinates: &domain.Coordinates{Latitude: -6.71263, Longitude: 108.53125},
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateSubmission)
}
