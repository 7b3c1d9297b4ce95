package domain

import "time"

const (
	ModeOnline = "online"
	ModeOnsite = "onsite"
)

const (
	ScheduleStatusScheduled = "scheduled"
	ScheduleStatusCancelled = "cancelled"
	ScheduleStatusArchived  = "archived"
)

// Geofence is a circular region used to validate physical presence.
type Geofence struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
}

// Schedule is a single event occurrence requiring attendance.
// OpensAt and ClosesAt are absolute instants on the event date;
// submissions are accepted inside [OpensAt, ClosesAt] inclusive.
type Schedule struct {
	ID               uint      `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Location         string    `json:"location"`
	Mode             string    `json:"mode"`
	Status           string    `json:"status"`
	OpensAt          time.Time `json:"opens_at"`
	ClosesAt         time.Time `json:"closes_at"`
	ToleranceMinutes int       `json:"tolerance_minutes"`
	Geofence         *Geofence `json:"geofence,omitempty"`
	CreatedBy        uint      `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (s Schedule) IsCancelled() bool {
	return s.Status == ScheduleStatusCancelled
}

// RequiresLocation reports whether submissions must carry coordinates.
// Online events never check location, even when coordinates are supplied.
func (s Schedule) RequiresLocation() bool {
	return s.Mode == ModeOnsite && s.Geofence != nil
}
