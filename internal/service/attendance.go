package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/siaksi/siaksi-api/internal/domain"
	"github.com/siaksi/siaksi-api/internal/metrics"
	"github.com/siaksi/siaksi-api/internal/repository"
)

var (
	ErrEventCancelled      = domain.ErrEventCancelled
	ErrOutsideWindow       = domain.ErrOutsideWindow
	ErrLocationRequired    = domain.ErrLocationRequired
	ErrOutOfRange          = domain.ErrOutOfRange
	ErrDuplicateSubmission = domain.ErrDuplicateSubmission
)

type AttendanceRepository interface {
	Create(ctx context.Context, record domain.AttendanceRecord) (domain.AttendanceRecord, error)
	FindByScheduleAndUser(ctx context.Context, scheduleID, userID uint) (domain.AttendanceRecord, error)
	FindBySchedule(ctx context.Context, scheduleID uint) ([]domain.AttendanceRecord, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.AttendanceRecord, error)
	FindUserIDsWithRecord(ctx context.Context, scheduleID uint) ([]uint, error)
}

type AttendanceMemberRepository interface {
	FindActiveIDs(ctx context.Context, role string) ([]uint, error)
}

type AttendanceService struct {
	repo         AttendanceRepository
	scheduleRepo ScheduleRepository
	memberRepo   AttendanceMemberRepository
}

func NewAttendanceService(repo AttendanceRepository, scheduleRepo ScheduleRepository, memberRepo AttendanceMemberRepository) *AttendanceService {
	return &AttendanceService{
		repo:         repo,
		scheduleRepo: scheduleRepo,
		memberRepo:   memberRepo,
	}
}

// SubmitAttendance evaluates a submission against the schedule snapshot and
// persists the outcome. The pre-read of an existing record is an
// optimization; the unique index on (schedule_id, user_id) is what actually
// prevents two accepted records when submissions race.
func (s *AttendanceService) SubmitAttendance(ctx context.Context, scheduleID, userID uint, sub domain.Submission) (domain.AttendanceRecord, error) {
	schedule, err := s.scheduleRepo.FindByID(ctx, scheduleID)
	if err != nil {
		return domain.AttendanceRecord{}, fmt.Errorf("s.scheduleRepo.FindByID -> %w", err)
	}

	_, err = s.repo.FindByScheduleAndUser(ctx, scheduleID, userID)
	if err == nil {
		metrics.AttendanceDecisions.WithLabelValues("duplicate").Inc()
		return domain.AttendanceRecord{}, ErrDuplicateSubmission
	}
	if !errors.Is(err, repository.ErrAttendanceNotFound) {
		return domain.AttendanceRecord{}, fmt.Errorf("s.repo.FindByScheduleAndUser -> %w", err)
	}

	status, err := domain.EvaluateAttendance(schedule, sub)
	if err != nil {
		metrics.AttendanceDecisions.WithLabelValues("rejected").Inc()
		return domain.AttendanceRecord{}, err
	}

	record := domain.AttendanceRecord{
		ScheduleID:  scheduleID,
		UserID:      userID,
		Status:      status,
		Reason:      sub.Reason,
		Coordinates: sub.Coordinates,
		SubmittedAt: sub.SubmittedAt,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		if errors.Is(err, repository.ErrAttendanceExists) {
			metrics.AttendanceDecisions.WithLabelValues("duplicate").Inc()
			return domain.AttendanceRecord{}, ErrDuplicateSubmission
		}

		return domain.AttendanceRecord{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	metrics.AttendanceDecisions.WithLabelValues(status).Inc()

	return created, nil
}

// GetRecap returns all records for a schedule plus status counts.
func (s *AttendanceService) GetRecap(ctx context.Context, scheduleID uint) ([]domain.AttendanceRecord, map[string]int, error) {
	if _, err := s.scheduleRepo.FindByID(ctx, scheduleID); err != nil {
		return nil, nil, fmt.Errorf("s.scheduleRepo.FindByID -> %w", err)
	}

	records, err := s.repo.FindBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, nil, fmt.Errorf("s.repo.FindBySchedule -> %w", err)
	}

	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Status]++
	}

	return records, counts, nil
}

func (s *AttendanceService) GetHistory(ctx context.Context, userID uint) ([]domain.AttendanceRecord, error) {
	records, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUser -> %w", err)
	}

	return records, nil
}

// CloseOutSchedule archives the schedule and writes an alpha record for
// every active member who never submitted. Cancelled schedules are only
// archived: attendance was universally rejected, nobody is marked alpha.
// Safe to run twice; members who already have a record are skipped.
func (s *AttendanceService) CloseOutSchedule(ctx context.Context, scheduleID uint) (int, error) {
	schedule, err := s.scheduleRepo.FindByID(ctx, scheduleID)
	if err != nil {
		return 0, fmt.Errorf("s.scheduleRepo.FindByID -> %w", err)
	}

	marked := 0
	if !schedule.IsCancelled() {
		memberIDs, err := s.memberRepo.FindActiveIDs(ctx, "")
		if err != nil {
			return 0, fmt.Errorf("s.memberRepo.FindActiveIDs -> %w", err)
		}

		submittedIDs, err := s.repo.FindUserIDsWithRecord(ctx, scheduleID)
		if err != nil {
			return 0, fmt.Errorf("s.repo.FindUserIDsWithRecord -> %w", err)
		}

		submitted := make(map[uint]bool, len(submittedIDs))
		for _, id := range submittedIDs {
			submitted[id] = true
		}

		for _, memberID := range memberIDs {
			if submitted[memberID] {
				continue
			}

			_, err = s.repo.Create(ctx, domain.AttendanceRecord{
				ScheduleID:  scheduleID,
				UserID:      memberID,
				Status:      domain.AttendanceAlpha,
				SubmittedAt: schedule.ClosesAt,
			})
			if err != nil {
				if errors.Is(err, repository.ErrAttendanceExists) {
					continue
				}

				return marked, fmt.Errorf("s.repo.Create -> %w", err)
			}
			marked++
		}
	}

	if schedule.Status != domain.ScheduleStatusArchived {
		if err = s.scheduleRepo.UpdateStatus(ctx, scheduleID, domain.ScheduleStatusArchived); err != nil {
			return marked, fmt.Errorf("s.scheduleRepo.UpdateStatus -> %w", err)
		}
	}

	return marked, nil
}
