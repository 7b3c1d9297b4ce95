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

type MailService interface {
	SendDirect(ctx context.Context, senderID, recipientID uint, subject, body string) (domain.Mail, error)
	Broadcast(ctx context.Context, senderID uint, subject, body, targetRole string) (domain.Mail, error)
	GetInbox(ctx context.Context, userID uint) ([]domain.InboxEntry, error)
	ReadEntry(ctx context.Context, entryID, userID uint) (domain.InboxEntry, error)
}

type MailHandler struct {
	svc  MailService
	uSvc UserService
}

func NewMailHandler(svc MailService, uSvc UserService) *MailHandler {
	return &MailHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleSendMail godoc
// @Summary      Send a direct mail to another member
// @Tags         mail
// @Produce      json
// @Param        request   body      request.SendMailRequest true "request body"
// @Success      201 {object} domain.Mail
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Security     BearerAuth
// @Router       /mail [post]
func (h *MailHandler) HandleSendMail(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SendMailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if _, err := h.uSvc.GetUser(ctx.Request.Context(), req.RecipientID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "id", req.RecipientID))
			return
		}

		err = fmt.Errorf("v1.HandleSendMail -> h.uSvc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	mail, err := h.svc.SendDirect(ctx.Request.Context(), user.ID, req.RecipientID, req.Subject, req.Body)
	if err != nil {
		err = fmt.Errorf("v1.HandleSendMail -> h.svc.SendDirect -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, mail)
}

// HandleBroadcast godoc
// @Summary      Broadcast a mail to active members
// @Description  The broadcast is accepted immediately; inbox fan-out runs through the queue dispatcher.
// @Tags         mail
// @Produce      json
// @Param        request   body      request.BroadcastMailRequest true "request body"
// @Success      202 {object} domain.Mail
// @Failure      400 {object} response.Err
// @Failure      403 {object} response.Err
// @Security     BearerAuth
// @Router       /mail/broadcast [post]
func (h *MailHandler) HandleBroadcast(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.CanManage() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("only admin or pengurus can broadcast")))
		return
	}

	var req request.BroadcastMailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	mail, err := h.svc.Broadcast(ctx.Request.Context(), user.ID, req.Subject, req.Body, req.TargetRole)
	if err != nil {
		err = fmt.Errorf("v1.HandleBroadcast -> h.svc.Broadcast -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusAccepted, mail)
}

// HandleInbox godoc
// @Summary      List the authenticated member inbox
// @Tags         mail
// @Produce      json
// @Success      200 {array} domain.InboxEntry
// @Security     BearerAuth
// @Router       /mail/inbox [get]
func (h *MailHandler) HandleInbox(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	entries, err := h.svc.GetInbox(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleInbox -> h.svc.GetInbox -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// HandleReadEntry godoc
// @Summary      Read one inbox entry
// @Description  Fetching an entry marks it read.
// @Tags         mail
// @Produce      json
// @Param        id   path      int true "inbox entry id"
// @Success      200 {object} domain.InboxEntry
// @Failure      404 {object} response.Err
// @Security     BearerAuth
// @Router       /mail/inbox/{id} [get]
func (h *MailHandler) HandleReadEntry(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	entryID, respErr := parseUintParam(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	entry, err := h.svc.ReadEntry(ctx.Request.Context(), entryID, user.ID)
	if err != nil {
		if errors.Is(err, service.ErrMailNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("inbox entry", "id", entryID))
			return
		}

		err = fmt.Errorf("v1.HandleReadEntry -> h.svc.ReadEntry -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, entry)
}
