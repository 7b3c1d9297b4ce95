package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validCreateScheduleRequest() CreateScheduleRequest {
	opens := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	return CreateScheduleRequest{
		Title:            "Latihan Rutin",
		Mode:             "onsite",
		OpensAt:          opens,
		ClosesAt:         opens.Add(time.Hour),
		ToleranceMinutes: 15,
		Geofence: &GeofenceRequest{
			Latitude:     -6.71263,
			Longitude:    108.53125,
			RadiusMeters: 50,
		},
	}
}

func TestCreateScheduleRequestValidate(t *testing.T) {
	req := validCreateScheduleRequest()
	assert.NoError(t, req.Validate())

	req = validCreateScheduleRequest()
	req.Title = ""
	assert.Error(t, req.Validate())

	req = validCreateScheduleRequest()
	req.Mode = "hybrid"
	assert.Error(t, req.Validate())

	req = validCreateScheduleRequest()
	req.OpensAt, req.ClosesAt = req.ClosesAt, req.OpensAt
	assert.ErrorIs(t, req.Validate(), errWindowInverted)

	req = validCreateScheduleRequest()
	req.Mode = "online"
	assert.ErrorIs(t, req.Validate(), errOnlineWithGeofence)

	req = validCreateScheduleRequest()
	req.Geofence.RadiusMeters = 0
	assert.ErrorIs(t, req.Validate(), errPartialGeofence)

	req = validCreateScheduleRequest()
	req.Geofence.Latitude = 120
	assert.Error(t, req.Validate())

	req = validCreateScheduleRequest()
	req.Geofence = nil
	assert.NoError(t, req.Validate())
}
