package domain

import (
	"errors"
	"time"

	"github.com/siaksi/siaksi-api/internal/pkg/geo"
)

const (
	AttendanceHadir     = "hadir"     // present, inside tolerance
	AttendanceTerlambat = "terlambat" // present, after tolerance
	AttendanceIzin      = "izin"      // excused with a reason
	AttendanceAlpha     = "alpha"     // never submitted; assigned at close-out
)

// Rejection reasons. These are expected user-facing outcomes, not faults;
// handlers map each to a stable error code.
var (
	ErrEventCancelled      = errors.New("event has been cancelled")
	ErrOutsideWindow       = errors.New("submission outside the attendance window")
	ErrLocationRequired    = errors.New("location is required for this event")
	ErrOutOfRange          = errors.New("location outside the event geofence")
	ErrDuplicateSubmission = errors.New("attendance already submitted")
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Submission is one attendance attempt by a participant.
// Reason being non-empty marks the submission as an excuse request.
type Submission struct {
	SubmittedAt time.Time
	Coordinates *Coordinates
	Reason      string
}

// AttendanceRecord is the immutable outcome of one accepted submission,
// at most one per (schedule, user) pair.
type AttendanceRecord struct {
	ID          uint         `json:"id"`
	ScheduleID  uint         `json:"schedule_id"`
	UserID      uint         `json:"user_id"`
	Status      string       `json:"status"`
	Reason      string       `json:"reason,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	SubmittedAt time.Time    `json:"submitted_at"`
	CreatedAt   time.Time    `json:"created_at"`
}

// EvaluateAttendance decides whether a submission against a schedule
// snapshot is accepted, and with which status. It is pure: duplicate
// detection and persistence belong to the caller. Guards run in order
// and the first failing one wins:
//
//  1. cancelled event
//  2. excuse request (accepted regardless of window and location)
//  3. attendance window, inclusive on both ends
//  4. coordinates present when the event carries a geofence
//  5. haversine distance inside the radius, boundary inclusive
//
// Past all guards, elapsed time since open against the tolerance decides
// hadir versus terlambat.
func EvaluateAttendance(schedule Schedule, sub Submission) (string, error) {
	if schedule.IsCancelled() {
		return "", ErrEventCancelled
	}

	if sub.Reason != "" {
		return AttendanceIzin, nil
	}

	if sub.SubmittedAt.Before(schedule.OpensAt) || sub.SubmittedAt.After(schedule.ClosesAt) {
		return "", ErrOutsideWindow
	}

	if schedule.RequiresLocation() {
		if sub.Coordinates == nil {
			return "", ErrLocationRequired
		}

		distance := geo.Haversine(
			sub.Coordinates.Latitude, sub.Coordinates.Longitude,
			schedule.Geofence.Latitude, schedule.Geofence.Longitude,
		)
		if distance > schedule.Geofence.RadiusMeters {
			return "", ErrOutOfRange
		}
	}

	elapsed := sub.SubmittedAt.Sub(schedule.OpensAt)
	if elapsed <= time.Duration(schedule.ToleranceMinutes)*time.Minute {
		return AttendanceHadir, nil
	}

	return AttendanceTerlambat, nil
}
