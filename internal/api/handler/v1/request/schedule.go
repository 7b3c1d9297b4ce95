package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	errWindowInverted     = errors.New("opens_at must not be after closes_at")
	errOnlineWithGeofence = errors.New("online events cannot carry a geofence")
	errPartialGeofence    = errors.New("geofence requires latitude, longitude and radius together")
)

type GeofenceRequest struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
}

type CreateScheduleRequest struct {
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Location         string           `json:"location"`
	Mode             string           `json:"mode"`
	OpensAt          time.Time        `json:"opens_at"`
	ClosesAt         time.Time        `json:"closes_at"`
	ToleranceMinutes int              `json:"tolerance_minutes"`
	Geofence         *GeofenceRequest `json:"geofence,omitempty"`
}

func (req *CreateScheduleRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 150)),
		validation.Field(&req.Mode, validation.Required, validation.In("online", "onsite")),
		validation.Field(&req.OpensAt, validation.Required),
		validation.Field(&req.ClosesAt, validation.Required),
		validation.Field(&req.ToleranceMinutes, validation.Min(0)),
	)
	if err != nil {
		return err
	}

	if req.OpensAt.After(req.ClosesAt) {
		return errWindowInverted
	}

	if req.Geofence != nil {
		if req.Mode == "online" {
			return errOnlineWithGeofence
		}
		if req.Geofence.RadiusMeters <= 0 {
			return errPartialGeofence
		}
		if err = validation.ValidateStruct(
			req.Geofence,
			validation.Field(&req.Geofence.Latitude, validation.Min(-90.0), validation.Max(90.0)),
			validation.Field(&req.Geofence.Longitude, validation.Min(-180.0), validation.Max(180.0)),
		); err != nil {
			return err
		}
	}

	return nil
}

type UpdateScheduleRequest struct {
	CreateScheduleRequest
}
