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

type LearningService interface {
	CreateCategory(ctx context.Context, category domain.LearningCategory) (domain.LearningCategory, error)
	GetCategoryTree(ctx context.Context) ([]*domain.CategoryNode, error)
	DeleteCategory(ctx context.Context, id uint) error
	CreateMaterial(ctx context.Context, material domain.LearningMaterial) (domain.LearningMaterial, error)
	GetMaterial(ctx context.Context, id uint) (domain.LearningMaterial, error)
	ListMaterials(ctx context.Context, categoryID uint) ([]domain.LearningMaterial, error)
	UpdateMaterial(ctx context.Context, material domain.LearningMaterial) (domain.LearningMaterial, error)
	DeleteMaterial(ctx context.Context, id uint) error
}

type LearningHandler struct {
	svc  LearningService
	uSvc UserService
}

func NewLearningHandler(svc LearningService, uSvc UserService) *LearningHandler {
	return &LearningHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

func materialFromRequest(req request.CreateMaterialRequest) domain.LearningMaterial {
	return domain.LearningMaterial{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		FilePath:    req.FilePath,
	}
}

// HandleCreateCategory godoc
// @Summary      Create a learning category
// @Tags         learning
// @Produce      json
// @Param        request   body      request.CreateCategoryRequest true "request body"
// @Success      201 {object} domain.LearningCategory
// @Failure      400 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Security     BearerAuth
// @Router       /learning/categories [post]
func (h *LearningHandler) HandleCreateCategory(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.CanManage() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("only admin or pengurus can manage the catalog")))
		return
	}

	var req request.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateCategory(ctx.Request.Context(), domain.LearningCategory{
		Name:     req.Name,
		ParentID: req.ParentID,
	})
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("category", "id", req.ParentID))
			return
		}

		err = fmt.Errorf("v1.HandleCreateCategory -> h.svc.CreateCategory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleCategoryTree godoc
// @Summary      Get the learning category tree
// @Tags         learning
// @Produce      json
// @Success      200 {array} domain.CategoryNode
// @Security     BearerAuth
// @Router       /learning/categories/tree [get]
func (h *LearningHandler) HandleCategoryTree(ctx *gin.Context) {
	tree, err := h.svc.GetCategoryTree(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleCategoryTree -> h.svc.GetCategoryTree -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, tree)
}

// HandleDeleteCategory godoc
// @Summary      Delete an empty learning category
// @Tags         learning
// @Produce      json
// @Param        id   path      int true "category id"
// @Success      204
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      409 {object} response.Err
// @Security     BearerAuth
// @Router       /learning/categories/{id} [delete]
func (h *LearningHandler) HandleDeleteCategory(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.CanManage() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("only admin or pengurus can manage the catalog")))
		return
	}

	id, respErr := parseUintParam(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteCategory(ctx.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			response.RenderErr(ctx, response.ErrNotFound("category", "id", id))
		case errors.Is(err, service.ErrCategoryNotEmpty):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleDeleteCategory -> h.svc.DeleteCategory -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleCreateMaterial godoc
// @Summary      Add a learning material
// @Tags         learning
// @Produce      json
// @Param        request   body      request.CreateMaterialRequest true "request body"
// @Success      201 {object} domain.LearningMaterial
// @Failure      400 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Security     BearerAuth
// @Router       /learning/materials [post]
func (h *LearningHandler) HandleCreateMaterial(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.CanManage() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("only admin or pengurus can manage the catalog")))
		return
	}

	var req request.CreateMaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	material := materialFromRequest(req)
	material.UploadedBy = user.ID

	created, err := h.svc.CreateMaterial(ctx.Request.Context(), material)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("category", "id", req.CategoryID))
			return
		}

		err = fmt.Errorf("v1.HandleCreateMaterial -> h.svc.CreateMaterial -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetMaterial godoc
// @Summary      Get a learning material
// @Tags         learning
// @Produce      json
// @Param        id   path      int true "material id"
// @Success      200 {object} domain.LearningMaterial
// @Failure      404 {object} response.Err
// @Security     BearerAuth
// @Router       /learning/materials/{id} [get]
func (h *LearningHandler) HandleGetMaterial(ctx *gin.Context) {
	id, respErr := parseUintParam(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	material, err := h.svc.GetMaterial(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMaterialNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("material", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetMaterial -> h.svc.GetMaterial -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, material)
}

// HandleListMaterials godoc
// @Summary      List materials in a category
// @Tags         learning
// @Produce      json
// @Param        id   path      int true "category id"
// @Success      200 {array}  domain.LearningMaterial
// @Failure      404 {object} response.Err
// @Security     BearerAuth
// @Router       /learning/categories/{id}/materials [get]
func (h *LearningHandler) HandleListMaterials(ctx *gin.Context) {
	categoryID, respErr := parseUintParam(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	materials, err := h.svc.ListMaterials(ctx.Request.Context(), categoryID)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("category", "id", categoryID))
			return
		}

		err = fmt.Errorf("v1.HandleListMaterials -> h.svc.ListMaterials -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, materials)
}

// HandleUpdateMaterial godoc
// @Summary      Update a learning material
// @Tags         learning
// @Produce      json
// @Param        id        path      int true "material id"
// @Param        request   body      request.UpdateMaterialRequest true "request body"
// @Success      200 {object} domain.LearningMaterial
// @Failure      400 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Security     BearerAuth
// @Router       /learning/materials/{id} [put]
func (h *LearningHandler) HandleUpdateMaterial(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.CanManage() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("only admin or pengurus can manage the catalog")))
		return
	}

	id, respErr := parseUintParam(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateMaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	material := materialFromRequest(req.CreateMaterialRequest)
	material.ID = id

	updated, err := h.svc.UpdateMaterial(ctx.Request.Context(), material)
	if err != nil {
		if errors.Is(err, service.ErrMaterialNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("material", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateMaterial -> h.svc.UpdateMaterial -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteMaterial godoc
// @Summary      Delete a learning material
// @Tags         learning
// @Produce      json
// @Param        id   path      int true "material id"
// @Success      204
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Security     BearerAuth
// @Router       /learning/materials/{id} [delete]
func (h *LearningHandler) HandleDeleteMaterial(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.CanManage() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("only admin or pengurus can manage the catalog")))
		return
	}

	id, respErr := parseUintParam(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteMaterial(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrMaterialNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("material", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteMaterial -> h.svc.DeleteMaterial -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
