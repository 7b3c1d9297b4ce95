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

type FinanceService interface {
	RecordEntry(ctx context.Context, entry domain.FinanceEntry) (domain.FinanceEntry, error)
	ListEntries(ctx context.Context, from, to time.Time) ([]domain.FinanceEntry, domain.FinanceSummary, error)
	DeleteEntry(ctx context.Context, id uint) error
	ExportReport(ctx context.Context, from, to time.Time) ([]byte, error)
}

type FinanceHandler struct {
	svc  FinanceService
	uSvc UserService
}

func NewFinanceHandler(svc FinanceService, uSvc UserService) *FinanceHandler {
	return &FinanceHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// parsePeriod reads the optional from/to query params (RFC 3339 dates);
// defaults to the current calendar month.
func parsePeriod(ctx *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0)

	if raw := ctx.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from (%v)", raw)
		}
		from = parsed
	}
	if raw := ctx.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to (%v)", raw)
		}
		to = parsed
	}

	return from, to, nil
}

// HandleRecordEntry godoc
// @Summary      Record a finance entry
// @Tags         finance
// @Produce      json
// @Param        request   body      request.CreateFinanceEntryRequest true "request body"
// @Success      201 {object} domain.FinanceEntry
// @Failure      400 {object} response.Err
// @Failure      403 {object} response.Err
// @Security     BearerAuth
// @Router       /finance/entries [post]
func (h *FinanceHandler) HandleRecordEntry(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.CanManage() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("only admin or pengurus can record finance entries")))
		return
	}

	var req request.CreateFinanceEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.RecordEntry(ctx.Request.Context(), domain.FinanceEntry{
		Date:        req.Date,
		Kind:        req.Kind,
		Amount:      req.Amount,
		Description: req.Description,
		RecordedBy:  user.ID,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidFinanceEntry) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleRecordEntry -> h.svc.RecordEntry -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleListEntries godoc
// @Summary      List finance entries for a period
// @Description  Optional ?from= and ?to= RFC 3339 bounds; defaults to the current month.
// @Tags         finance
// @Produce      json
// @Success      200 {object} response.FinanceListResponse
// @Failure      403 {object} response.Err
// @Security     BearerAuth
// @Router       /finance/entries [get]
func (h *FinanceHandler) HandleListEntries(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.CanManage() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("only admin or pengurus can view finance records")))
		return
	}

	from, to, err := parsePeriod(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	entries, summary, err := h.svc.ListEntries(ctx.Request.Context(), from, to)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEntries -> h.svc.ListEntries -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.FinanceListResponse{
		Entries: entries,
		Summary: summary,
	})
}

// HandleDeleteEntry godoc
// @Summary      Delete a finance entry
// @Tags         finance
// @Produce      json
// @Param        id   path      int true "entry id"
// @Success      204
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Security     BearerAuth
// @Router       /finance/entries/{id} [delete]
func (h *FinanceHandler) HandleDeleteEntry(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if user.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("only admin can delete finance entries")))
		return
	}

	id, respErr := parseUintParam(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteEntry(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrFinanceEntryNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("finance entry", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteEntry -> h.svc.DeleteEntry -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleExportReport godoc
// @Summary      Export the finance report as PDF
// @Tags         finance
// @Produce      application/pdf
// @Success      200 {file} binary
// @Failure      403 {object} response.Err
// @Security     BearerAuth
// @Router       /finance/report [get]
func (h *FinanceHandler) HandleExportReport(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.CanManage() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("only admin or pengurus can export the report")))
		return
	}

	from, to, err := parsePeriod(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	report, err := h.svc.ExportReport(ctx.Request.Context(), from, to)
	if err != nil {
		err = fmt.Errorf("v1.HandleExportReport -> h.svc.ExportReport -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	filename := fmt.Sprintf("laporan-keuangan-%s.pdf", from.Format("2006-01"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "application/pdf", report)
}
