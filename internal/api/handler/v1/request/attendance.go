package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
)

var errPartialCoordinates = errors.New("latitude and longitude must be supplied together")

type CoordinatesRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SubmitAttendanceRequest is either a presence submission (optionally with
// coordinates) or an excuse request (reason set, no coordinates needed).
type SubmitAttendanceRequest struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Reason    string   `json:"reason,omitempty"`
}

func (req *SubmitAttendanceRequest) Validate() error {
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return errPartialCoordinates
	}

	if req.Latitude != nil {
		if err := validation.Validate(*req.Latitude, validation.Min(-90.0), validation.Max(90.0)); err != nil {
			return err
		}
		if err := validation.Validate(*req.Longitude, validation.Min(-180.0), validation.Max(180.0)); err != nil {
			return err
		}
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Reason, validation.Length(0, 500)),
	)
}
