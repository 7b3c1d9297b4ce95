package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/siaksi/siaksi-api/internal/api/handler/v1/request"
	"github.com/siaksi/siaksi-api/internal/api/handler/v1/response"
	"github.com/siaksi/siaksi-api/internal/domain"
	"github.com/siaksi/siaksi-api/internal/service"
)

type AttendanceService interface {
	SubmitAttendance(ctx context.Context, scheduleID, userID uint, sub domain.Submission) (domain.AttendanceRecord, error)
	GetRecap(ctx context.Context, scheduleID uint) ([]domain.AttendanceRecord, map[string]int, error)
	GetHistory(ctx context.Context, userID uint) ([]domain.AttendanceRecord, error)
	CloseOutSchedule(ctx context.Context, scheduleID uint) (int, error)
}

type AttendanceHandler struct {
	svc  AttendanceService
	uSvc UserService
}

func NewAttendanceHandler(svc AttendanceService, uSvc UserService) *AttendanceHandler {
	return &AttendanceHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleSubmitAttendance godoc
// @Summary      Submit attendance for a schedule
// @Description  A submission with a reason is recorded as an excuse (izin); otherwise the window, geofence and tolerance decide hadir or terlambat.
// @Tags         attendance
// @Produce      json
// @Param        id        path      int true "schedule id"
// @Param        request   body      request.SubmitAttendanceRequest true "request body"
// @Success      201 {object} domain.AttendanceRecord
// @Failure      404 {object} response.Err
// @Failure      409 {object} response.Err
// @Failure      422 {object} response.Err
// @Security     BearerAuth
// @Router       /schedules/{id}/attendance [post]
func (h *AttendanceHandler) HandleSubmitAttendance(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	scheduleID, respErr := parseUintParam(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SubmitAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	sub := domain.Submission{
		SubmittedAt: time.Now(),
		Reason:      req.Reason,
	}
	if req.Latitude != nil {
		sub.Coordinates = &domain.Coordinates{
			Latitude:  *req.Latitude,
			Longitude: *req.Longitude,
		}
	}

	record, err := h.svc.SubmitAttendance(ctx.Request.Context(), scheduleID, user.ID, sub)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScheduleNotFound):
			response.RenderErr(ctx, response.ErrNotFound("schedule", "id", scheduleID))
		case errors.Is(err, service.ErrDuplicateSubmission):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrEventCancelled),
			errors.Is(err, service.ErrOutsideWindow),
			errors.Is(err, service.ErrLocationRequired),
			errors.Is(err, service.ErrOutOfRange):
			response.RenderErr(ctx, response.ErrUnprocessable(err))
		default:
			err = fmt.Errorf("v1.HandleSubmitAttendance -> h.svc.SubmitAttendance -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, record)
}

// HandleAttendanceRecap godoc
// @Summary      Attendance recap for a schedule
// @Tags         attendance
// @Produce      json
// @Param        id   path      int true "schedule id"
// @Success      200 {object} response.AttendanceRecapResponse
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Security     BearerAuth
// @Router       /schedules/{id}/attendance [get]
func (h *AttendanceHandler) HandleAttendanceRecap(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.CanManage() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("only admin or pengurus can view the recap")))
		return
	}

	scheduleID, respErr := parseUintParam(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	records, counts, err := h.svc.GetRecap(ctx.Request.Context(), scheduleID)
	if err != nil {
		if errors.Is(err, service.ErrScheduleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("schedule", "id", scheduleID))
			return
		}

		err = fmt.Errorf("v1.HandleAttendanceRecap -> h.svc.GetRecap -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.AttendanceRecapResponse{
		ScheduleID: scheduleID,
		Counts:     counts,
		Records:    records,
	})
}

// HandleAttendanceHistory godoc
// @Summary      Attendance history of the authenticated member
// @Tags         attendance
// @Produce      json
// @Success      200 {array} domain.AttendanceRecord
// @Security     BearerAuth
// @Router       /attendance/history [get]
func (h *AttendanceHandler) HandleAttendanceHistory(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	records, err := h.svc.GetHistory(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleAttendanceHistory -> h.svc.GetHistory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, records)
}

// HandleCloseOut godoc
// @Summary      Close out a schedule
// @Description  Marks every active member without a record as alpha and archives the schedule.
// @Tags         attendance
// @Produce      json
// @Param        id   path      int true "schedule id"
// @Success      200 {object} response.CloseOutResponse
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Security     BearerAuth
// @Router       /schedules/{id}/closeout [post]
func (h *AttendanceHandler) HandleCloseOut(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.CanManage() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("only admin or pengurus can close out a schedule")))
		return
	}

	scheduleID, respErr := parseUintParam(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	marked, err := h.svc.CloseOutSchedule(ctx.Request.Context(), scheduleID)
	if err != nil {
		if errors.Is(err, service.ErrScheduleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("schedule", "id", scheduleID))
			return
		}

		err = fmt.Errorf("v1.HandleCloseOut -> h.svc.CloseOutSchedule -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.CloseOutResponse{
		ScheduleID:  scheduleID,
		MarkedAlpha: marked,
	})
}
