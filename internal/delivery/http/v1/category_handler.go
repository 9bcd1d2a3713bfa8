package v1

import (
	"net/http"

	"meal-planner-backend/internal/delivery/http/response"
	"meal-planner-backend/internal/domain"
	"meal-planner-backend/internal/usecase"
	"meal-planner-backend/pkg/schema"

	"github.com/gin-gonic/gin"
)

const (
	schemaCategory       = "category"
	schemaCategoryUpdate = "category_update"
)

type CategoryHandler struct {
	categoryUC *usecase.EntityUsecase[domain.Category, *domain.Category]
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1"`
}

func NewCategoryHandler(protected *gin.RouterGroup, categoryUC *usecase.EntityUsecase[domain.Category, *domain.Category], schemas *schema.Registry) {
	schemas.Register(schemaCategory, CreateCategoryRequest{})
	schemas.Register(schemaCategoryUpdate, UpdateCategoryRequest{})

	handler := &CategoryHandler{categoryUC: categoryUC}

	categories := protected.Group("/categories")
	{
		categories.GET("", handler.List)
		categories.POST("", handler.Create)
		categories.GET("/:id", handler.Get)
		categories.PUT("/:id", handler.Update)
		categories.DELETE("/:id", handler.Delete)
	}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, categories)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	category, err := h.categoryUC.Create(c.Request.Context(), req, func(category *domain.Category) {
		category.Name = req.Name
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, category)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	category, err := h.categoryUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req UpdateCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	if err := rejectEmpty("name", req.Name); err != nil {
		c.Error(err)
		return
	}

	category, err := h.categoryUC.Update(c.Request.Context(), id, req, func(category *domain.Category) {
		if req.Name != nil {
			category.Name = *req.Name
		}
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.categoryUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusNoContent, nil)
}
