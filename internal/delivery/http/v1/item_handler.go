package v1

import (
	"net/http"

	"meal-planner-backend/internal/delivery/http/response"
	"meal-planner-backend/internal/domain"
	"meal-planner-backend/internal/usecase"
	"meal-planner-backend/pkg/apperror"
	"meal-planner-backend/pkg/schema"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	schemaItem       = "item"
	schemaItemUpdate = "item_update"

	defaultItemUnit = "each"
)

type ItemHandler struct {
	itemUC *usecase.EntityUsecase[domain.Item, *domain.Item]
}

type CreateItemRequest struct {
	Name       string `json:"name" validate:"required,min=1"`
	Unit       string `json:"unit" validate:"omitempty,min=1"`
	CategoryID string `json:"category_id" validate:"required,uuid"`
}

type UpdateItemRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1"`
	Unit       *string `json:"unit" validate:"omitempty,min=1"`
	CategoryID *string `json:"category_id" validate:"omitempty,uuid"`
}

func NewItemHandler(protected *gin.RouterGroup, itemUC *usecase.EntityUsecase[domain.Item, *domain.Item], schemas *schema.Registry) {
	schemas.Register(schemaItem, CreateItemRequest{})
	schemas.Register(schemaItemUpdate, UpdateItemRequest{})

	handler := &ItemHandler{itemUC: itemUC}

	items := protected.Group("/items")
	{
		items.GET("", handler.List)
		items.POST("", handler.Create)
		items.GET("/:id", handler.Get)
		items.PUT("/:id", handler.Update)
		items.DELETE("/:id", handler.Delete)
	}
}

func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.itemUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *ItemHandler) Create(c *gin.Context) {
	var req CreateItemRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	item, err := h.itemUC.Create(c.Request.Context(), req, func(item *domain.Item) {
		item.Name = req.Name
		item.Unit = req.Unit
		if item.Unit == "" {
			item.Unit = defaultItemUnit
		}
		item.CategoryID = uuid.MustParse(req.CategoryID)
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, item)
}

func (h *ItemHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	item, err := h.itemUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

func (h *ItemHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req UpdateItemRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	// Explicit empty strings slip past omitempty on pointer fields, so
	// supplied values are checked here before the merge.
	if err := rejectEmpty("name", req.Name); err != nil {
		c.Error(err)
		return
	}
	if err := rejectEmpty("unit", req.Unit); err != nil {
		c.Error(err)
		return
	}
	var categoryID *uuid.UUID
	if req.CategoryID != nil {
		parsed, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			c.Error(apperror.Validation("category_id: must be a valid UUID"))
			return
		}
		categoryID = &parsed
	}

	item, err := h.itemUC.Update(c.Request.Context(), id, req, func(item *domain.Item) {
		if req.Name != nil {
			item.Name = *req.Name
		}
		if req.Unit != nil {
			item.Unit = *req.Unit
		}
		if categoryID != nil {
			item.CategoryID = *categoryID
		}
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

func (h *ItemHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.itemUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusNoContent, nil)
}
