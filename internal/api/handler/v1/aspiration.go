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

type AspirationService interface {
	Submit(ctx context.Context, aspiration domain.Aspiration) (domain.Aspiration, error)
	ListMine(ctx context.Context, authorID uint) ([]domain.Aspiration, error)
	ListAll(ctx context.Context, viewer domain.User, status string) ([]domain.Aspiration, error)
	Respond(ctx context.Context, id uint, status, responseNote string) (domain.Aspiration, error)
}

type AspirationHandler struct {
	svc  AspirationService
	uSvc UserService
}

func NewAspirationHandler(svc AspirationService, uSvc UserService) *AspirationHandler {
	return &AspirationHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleSubmitAspiration godoc
// @Summary      Submit an aspiration or complaint
// @Tags         aspirations
// @Produce      json
// @Param        request   body      request.SubmitAspirationRequest true "request body"
// @Success      201 {object} domain.Aspiration
// @Failure      400 {object} response.Err
// @Security     BearerAuth
// @Router       /aspirations [post]
func (h *AspirationHandler) HandleSubmitAspiration(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SubmitAspirationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.Submit(ctx.Request.Context(), domain.Aspiration{
		AuthorID:    user.ID,
		Subject:     req.Subject,
		Body:        req.Body,
		IsAnonymous: req.IsAnonymous,
		Status:      domain.AspirationOpen,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleSubmitAspiration -> h.svc.Submit -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleListMyAspirations godoc
// @Summary      List the authenticated member aspirations
// @Tags         aspirations
// @Produce      json
// @Success      200 {array} domain.Aspiration
// @Security     BearerAuth
// @Router       /aspirations/mine [get]
func (h *AspirationHandler) HandleListMyAspirations(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	aspirations, err := h.svc.ListMine(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMyAspirations -> h.svc.ListMine -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, aspirations)
}

// HandleListAspirations godoc
// @Summary      List all aspirations
// @Description  Optional ?status= filter. Anonymous authors are redacted for non-admin viewers.
// @Tags         aspirations
// @Produce      json
// @Success      200 {array}  domain.Aspiration
// @Failure      403 {object} response.Err
// @Security     BearerAuth
// @Router       /aspirations [get]
func (h *AspirationHandler) HandleListAspirations(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.CanManage() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("only admin or pengurus can view the aspiration board")))
		return
	}

	aspirations, err := h.svc.ListAll(ctx.Request.Context(), user, ctx.Query("status"))
	if err != nil {
		err = fmt.Errorf("v1.HandleListAspirations -> h.svc.ListAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, aspirations)
}

// HandleRespondAspiration godoc
// @Summary      Respond to an aspiration
// @Tags         aspirations
// @Produce      json
// @Param        id        path      int true "aspiration id"
// @Param        request   body      request.RespondAspirationRequest true "request body"
// @Success      200 {object} domain.Aspiration
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      409 {object} response.Err
// @Security     BearerAuth
// @Router       /aspirations/{id} [patch]
func (h *AspirationHandler) HandleRespondAspiration(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.CanManage() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("only admin or pengurus can respond to aspirations")))
		return
	}

	id, respErr := parseUintParam(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.RespondAspirationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.Respond(ctx.Request.Context(), id, req.Status, req.Response)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAspirationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("aspiration", "id", id))
		case errors.Is(err, service.ErrInvalidStatusTransition):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleRespondAspiration -> h.svc.Respond -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, updated)
}
