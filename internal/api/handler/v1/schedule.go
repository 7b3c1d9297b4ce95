package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/siaksi/siaksi-api/internal/api/handler/v1/request"
	"github.com/siaksi/siaksi-api/internal/api/handler/v1/response"
	"github.com/siaksi/siaksi-api/internal/domain"
	"github.com/siaksi/siaksi-api/internal/service"
)

type ScheduleService interface {
	CreateSchedule(ctx context.Context, schedule domain.Schedule) (domain.Schedule, error)
	GetSchedule(ctx context.Context, id uint) (domain.Schedule, error)
	ListUpcoming(ctx context.Context) ([]domain.Schedule, error)
	ListAll(ctx context.Context) ([]domain.Schedule, error)
	UpdateSchedule(ctx context.Context, schedule domain.Schedule) (domain.Schedule, error)
	CancelSchedule(ctx context.Context, id uint) error
}

type ScheduleHandler struct {
	svc  ScheduleService
	uSvc UserService
}

func NewScheduleHandler(svc ScheduleService, uSvc UserService) *ScheduleHandler {
	return &ScheduleHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

func scheduleFromRequest(req request.CreateScheduleRequest) domain.Schedule {
	schedule := domain.Schedule{
		Title:            req.Title,
		Description:      req.Description,
		Location:         req.Location,
		Mode:             req.Mode,
		OpensAt:          req.OpensAt,
		ClosesAt:         req.ClosesAt,
		ToleranceMinutes: req.ToleranceMinutes,
	}

	if req.Geofence != nil {
		schedule.Geofence = &domain.Geofence{
			Latitude:     req.Geofence.Latitude,
			Longitude:    req.Geofence.Longitude,
			RadiusMeters: req.Geofence.RadiusMeters,
		}
	}

	return schedule
}

// HandleCreateSchedule godoc
// @Summary      Create an event schedule
// @Tags         schedules
// @Produce      json
// @Param        request   body      request.CreateScheduleRequest true "request body"
// @Success      201 {object} domain.Schedule
// @Failure      400 {object} response.Err
// @Failure      403 {object} response.Err
// @Security     BearerAuth
// @Router       /schedules [post]
func (h *ScheduleHandler) HandleCreateSchedule(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.CanManage() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("only admin or pengurus can create schedules")))
		return
	}

	var req request.CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	schedule := scheduleFromRequest(req)
	schedule.CreatedBy = user.ID

	created, err := h.svc.CreateSchedule(ctx.Request.Context(), schedule)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSchedule) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateSchedule -> h.svc.CreateSchedule -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetSchedule godoc
// @Summary      Get a schedule by id
// @Tags         schedules
// @Produce      json
// @Param        id   path      int true "schedule id"
// @Success      200 {object} domain.Schedule
// @Failure      404 {object} response.Err
// @Security     BearerAuth
// @Router       /schedules/{id} [get]
func (h *ScheduleHandler) HandleGetSchedule(ctx *gin.Context) {
	id, respErr := parseUintParam(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	schedule, err := h.svc.GetSchedule(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrScheduleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("schedule", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetSchedule -> h.svc.GetSchedule -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, schedule)
}

// HandleListSchedules godoc
// @Summary      List schedules
// @Description  Pass ?upcoming=true to only return schedules that have not closed yet.
// @Tags         schedules
// @Produce      json
// @Success      200 {array} domain.Schedule
// @Security     BearerAuth
// @Router       /schedules [get]
func (h *ScheduleHandler) HandleListSchedules(ctx *gin.Context) {
	var (
		schedules []domain.Schedule
		err       error
	)

	if ctx.Query("upcoming") == "true" {
		schedules, err = h.svc.ListUpcoming(ctx.Request.Context())
	} else {
		schedules, err = h.svc.ListAll(ctx.Request.Context())
	}
	if err != nil {
		err = fmt.Errorf("v1.HandleListSchedules -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, schedules)
}

// HandleUpdateSchedule godoc
// @Summary      Update a schedule
// @Tags         schedules
// @Produce      json
// @Param        id        path      int true "schedule id"
// @Param        request   body      request.UpdateScheduleRequest true "request body"
// @Success      200 {object} domain.Schedule
// @Failure      400 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      409 {object} response.Err
// @Security     BearerAuth
// @Router       /schedules/{id} [put]
func (h *ScheduleHandler) HandleUpdateSchedule(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.CanManage() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("only admin or pengurus can update schedules")))
		return
	}

	id, respErr := parseUintParam(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	schedule := scheduleFromRequest(req.CreateScheduleRequest)
	schedule.ID = id

	updated, err := h.svc.UpdateSchedule(ctx.Request.Context(), schedule)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScheduleNotFound):
			response.RenderErr(ctx, response.ErrNotFound("schedule", "id", id))
		case errors.Is(err, service.ErrScheduleNotEditable):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrInvalidSchedule):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateSchedule -> h.svc.UpdateSchedule -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleCancelSchedule godoc
// @Summary      Cancel a schedule
// @Tags         schedules
// @Produce      json
// @Param        id   path      int true "schedule id"
// @Success      204
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      409 {object} response.Err
// @Security     BearerAuth
// @Router       /schedules/{id} [delete]
func (h *ScheduleHandler) HandleCancelSchedule(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.CanManage() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("only admin or pengurus can cancel schedules")))
		return
	}

	id, respErr := parseUintParam(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.CancelSchedule(ctx.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrScheduleNotFound):
			response.RenderErr(ctx, response.ErrNotFound("schedule", "id", id))
		case errors.Is(err, service.ErrScheduleNotEditable):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleCancelSchedule -> h.svc.CancelSchedule -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}
