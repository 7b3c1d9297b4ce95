package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siaksi/siaksi-api/internal/api/middleware"
	"github.com/siaksi/siaksi-api/internal/domain"
	"github.com/siaksi/siaksi-api/internal/service"
)

// fakeUserService implements UserService for handler tests.
type fakeUserService struct {
	user domain.User
}

func (f *fakeUserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	return f.user, nil
}

func (f *fakeUserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return []domain.User{f.user}, nil
}

func (f *fakeUserService) UpdateProfile(ctx context.Context, userID uint, name, email string) (domain.User, error) {
	return f.user, nil
}

func (f *fakeUserService) SetActive(ctx context.Context, userID uint, active bool) (domain.User, error) {
	return f.user, nil
}

// fakeAttendanceService implements AttendanceService for handler tests.
type fakeAttendanceService struct {
	record    domain.AttendanceRecord
	submitErr error
	marked    int
}

func (f *fakeAttendanceService) SubmitAttendance(ctx context.Context, scheduleID, userID uint, sub domain.Submission) (domain.AttendanceRecord, error) {
	if f.submitErr != nil {
		return domain.AttendanceRecord{}, f.submitErr
	}

	return f.record, nil
}

func (f *fakeAttendanceService) GetRecap(ctx context.Context, scheduleID uint) ([]domain.AttendanceRecord, map[string]int, error) {
	return []domain.AttendanceRecord{f.record}, map[string]int{f.record.Status: 1}, nil
}

func (f *fakeAttendanceService) GetHistory(ctx context.Context, userID uint) ([]domain.AttendanceRecord, error) {
	return []domain.AttendanceRecord{f.record}, nil
}

func (f *fakeAttendanceService) CloseOutSchedule(ctx context.Context, scheduleID uint) (int, error) {
	return f.marked, nil
}

func setupAttendanceRouter(svc AttendanceService, user domain.User) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewAttendanceHandler(svc, &fakeUserService{user: user})

	router := gin.New()
	router.Use(func(ctx *gin.Context) {
		ctx.Set(middleware.ContextKeyUserID, user.ID)
	})
	router.POST("/schedules/:id/attendance", handler.HandleSubmitAttendance)
	router.GET("/schedules/:id/attendance", handler.HandleAttendanceRecap)
	router.POST("/schedules/:id/closeout", handler.HandleCloseOut)

	return router
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestHandleSubmitAttendance_Created(t *testing.T) {
	svc := &fakeAttendanceService{record: domain.AttendanceRecord{
		ID:          1,
		ScheduleID:  3,
		UserID:      42,
		Status:      domain.AttendanceHadir,
		SubmittedAt: time.Now(),
	}}
	router := setupAttendanceRouter(svc, domain.User{ID: 42, Role: domain.RoleAnggota, IsActive: true})

	w := postJSON(router, "/schedules/3/attendance", gin.H{
		"latitude":  -6.71263,
		"longitude": 108.53125,
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var got domain.AttendanceRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, domain.AttendanceHadir, got.Status)
}

func TestHandleSubmitAttendance_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"schedule not found", service.ErrScheduleNotFound, http.StatusNotFound},
		{"duplicate", service.ErrDuplicateSubmission, http.StatusConflict},
		{"cancelled", service.ErrEventCancelled, http.StatusUnprocessableEntity},
		{"outside window", service.ErrOutsideWindow, http.StatusUnprocessableEntity},
		{"location required", service.ErrLocationRequired, http.StatusUnprocessableEntity},
		{"out of range", service.ErrOutOfRange, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAttendanceService{submitErr: tt.err}
			router := setupAttendanceRouter(svc, domain.User{ID: 42, Role: domain.RoleAnggota, IsActive: true})

			w := postJSON(router, "/schedules/3/attendance", gin.H{})

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestHandleSubmitAttendance_PartialCoordinates(t *testing.T) {
	router := setupAttendanceRouter(&fakeAttendanceService{}, domain.User{ID: 42, Role: domain.RoleAnggota})

	w := postJSON(router, "/schedules/3/attendance", gin.H{"latitude": -6.7})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAttendanceRecap_RequiresBoardRole(t *testing.T) {
	svc := &fakeAttendanceService{record: domain.AttendanceRecord{Status: domain.AttendanceHadir}}

	router := setupAttendanceRouter(svc, domain.User{ID: 42, Role: domain.RoleAnggota})
	req := httptest.NewRequest(http.MethodGet, "/schedules/3/attendance", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	router = setupAttendanceRouter(svc, domain.User{ID: 1, Role: domain.RolePengurus})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleCloseOut(t *testing.T) {
	svc := &fakeAttendanceService{marked: 4}
	router := setupAttendanceRouter(svc, domain.User{ID: 1, Role: domain.RoleAdmin})

	w := postJSON(router, "/schedules/3/closeout", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.EqualValues(t, 4, got["marked_alpha"])
	assert.EqualValues(t, 3, got["schedule_id"])
}
