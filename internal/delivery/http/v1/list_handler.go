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
	schemaList        = "list"
	schemaListUpdate  = "list_update"
	schemaListEntry   = "list_entry"
	schemaEntryUpdate = "list_entry_update"
)

type ListHandler struct {
	listUC  *usecase.EntityUsecase[domain.List, *domain.List]
	entryUC domain.ListUsecase
	schemas *schema.Registry
}

// CreateListRequest is the composite payload: a list plus a mixed batch
// of item prototypes. A prototype with an id references an existing item;
// one with a name creates the item inline.
type CreateListRequest struct {
	Name  string                 `json:"name" validate:"required,min=1"`
	Items []ItemPrototypeRequest `json:"items" validate:"omitempty,dive"`
}

type ItemPrototypeRequest struct {
	ID         string `json:"id" validate:"omitempty,uuid"`
	Quantity   int    `json:"quantity" validate:"omitempty,gte=1"`
	Name       string `json:"name" validate:"omitempty,min=1"`
	Unit       string `json:"unit"`
	CategoryID string `json:"category_id" validate:"omitempty,uuid"`
}

type UpdateListRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1"`
}

type AddListEntryRequest struct {
	ItemID   string `json:"item_id" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"omitempty,gte=1"`
}

type UpdateListEntryRequest struct {
	Quantity *int  `json:"quantity" validate:"omitempty,gte=1"`
	Checked  *bool `json:"checked"`
}

func NewListHandler(protected *gin.RouterGroup, listUC *usecase.EntityUsecase[domain.List, *domain.List], entryUC domain.ListUsecase, schemas *schema.Registry) {
	schemas.Register(schemaList, CreateListRequest{})
	schemas.Register(schemaListUpdate, UpdateListRequest{})
	schemas.Register(schemaListEntry, AddListEntryRequest{})
	schemas.Register(schemaEntryUpdate, UpdateListEntryRequest{})

	handler := &ListHandler{listUC: listUC, entryUC: entryUC, schemas: schemas}

	lists := protected.Group("/lists")
	{
		lists.GET("", handler.List)
		lists.POST("", handler.Create)
		lists.GET("/:id", handler.Get)
		lists.PUT("/:id", handler.Update)
		lists.DELETE("/:id", handler.Delete)

		lists.POST("/:id/items", handler.AddItem)
		lists.PUT("/:id/items/:itemId", handler.UpdateEntry)
		lists.DELETE("/:id/items/:itemId", handler.RemoveEntry)
	}
}

func (h *ListHandler) List(c *gin.Context) {
	lists, err := h.listUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, lists)
}

// Create handles the composite operation: the list and all its item
// associations are persisted atomically.
func (h *ListHandler) Create(c *gin.Context) {
	var req CreateListRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	if err := h.schemas.Validate(schemaList, req); err != nil {
		c.Error(err)
		return
	}

	var newItems []domain.NewItem
	var refs []domain.ItemRef
	for _, proto := range req.Items {
		switch {
		case proto.ID != "":
			refs = append(refs, domain.ItemRef{
				ItemID:   uuid.MustParse(proto.ID),
				Quantity: proto.Quantity,
			})
		case proto.Name != "":
			item := domain.NewItem{
				Name: proto.Name,
				Unit: proto.Unit,
			}
			if proto.CategoryID != "" {
				item.CategoryID = uuid.MustParse(proto.CategoryID)
			}
			newItems = append(newItems, item)
		default:
			c.Error(apperror.Validation("items: each entry needs an id or a name"))
			return
		}
	}

	list, err := h.entryUC.CreateWithItems(c.Request.Context(), req.Name, newItems, refs)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, list)
}

func (h *ListHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	list, err := h.listUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *ListHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req UpdateListRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	if err := rejectEmpty("name", req.Name); err != nil {
		c.Error(err)
		return
	}

	list, err := h.listUC.Update(c.Request.Context(), id, req, func(list *domain.List) {
		if req.Name != nil {
			list.Name = *req.Name
		}
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *ListHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.listUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusNoContent, nil)
}

// AddItem associates one existing item with the list and responds with
// the updated association set.
func (h *ListHandler) AddItem(c *gin.Context) {
	listID, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req AddListEntryRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	if err := h.schemas.Validate(schemaListEntry, req); err != nil {
		c.Error(err)
		return
	}

	entries, err := h.entryUC.AddItem(c.Request.Context(), listID, uuid.MustParse(req.ItemID), req.Quantity)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, entries)
}

func (h *ListHandler) UpdateEntry(c *gin.Context) {
	listID, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	itemID, err := parseID(c, "itemId")
	if err != nil {
		c.Error(err)
		return
	}

	var req UpdateListEntryRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	if err := h.schemas.Validate(schemaEntryUpdate, req); err != nil {
		c.Error(err)
		return
	}

	entry, err := h.entryUC.UpdateEntry(c.Request.Context(), listID, itemID, domain.ListItemPatch{
		Quantity: req.Quantity,
		Checked:  req.Checked,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, entry)
}

func (h *ListHandler) RemoveEntry(c *gin.Context) {
	listID, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	itemID, err := parseID(c, "itemId")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.entryUC.RemoveEntry(c.Request.Context(), listID, itemID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusNoContent, nil)
}
