package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"catalog-service/internal/commands"
	"catalog-service/internal/domain"
	"catalog-service/internal/events"
	"catalog-service/internal/repository"
	"catalog-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	logger     *zap.Logger
	repository repository.CatalogRepository
	eventBus   events.EventPublisher
}

func NewCatalogHandler(logger *zap.Logger, repo repository.CatalogRepository, eventBus events.EventPublisher) *CatalogHandler {
	return &CatalogHandler{
		logger:     logger,
		repository: repo,
		eventBus:   eventBus,
	}
}

// GetCatalog handles GET /api/v1/catalog
// @Summary      Read the catalog
// @Description  Returns every item in display order together with the computed total.
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  CatalogResponse
// @Router       /catalog [get]
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	snap, err := h.repository.Snapshot(c.Request.Context())
	if err != nil {
		h.fail(c, "failed to read catalog", err)
		return
	}
	c.JSON(http.StatusOK, newCatalogResponse(snap))
}

// GetTotal handles GET /api/v1/catalog/total
// @Summary      Read the total
// @Description  Sum of price times quantity over the catalog, with two decimal places.
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  TotalResponse
// @Router       /catalog/total [get]
func (h *CatalogHandler) GetTotal(c *gin.Context) {
	snap, err := h.repository.Snapshot(c.Request.Context())
	if err != nil {
		h.fail(c, "failed to compute total", err)
		return
	}
	c.JSON(http.StatusOK, TotalResponse{
		Total: snap.FormattedTotal(),
		Label: snap.TotalLabel(),
	})
}

// AddItem handles POST /api/v1/catalog/items
// @Summary      Add an item
// @Description  Validates name and price text, assigns the next id and appends the item with quantity 0.
// @Description  Replaying the same X-Request-ID returns the first response without adding twice.
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-Request-ID  header    string          false  "Request ID for idempotency"
// @Param        request       body      AddItemRequest  true   "Item to add"
// @Success      201           {object}  AddItemResponse
// @Failure      400           {object}  errors.StandardError  "MissingField or InvalidPrice"
// @Failure      401           {object}  errors.StandardError
// @Failure      409           {object}  errors.StandardError  "same X-Request-ID still in flight"
// @Router       /catalog/items [post]
func (h *CatalogHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("Invalid request", zap.Error(err))
		_ = c.Error(errors.NewInvalidRequest("invalid request body", err.Error()))
		c.Abort()
		return
	}

	cmd := commands.AddItemCommand{
		Name:      req.Name,
		PriceText: req.Price,
	}

	res, err := h.repository.AddItem(c.Request.Context(), cmd.Name, cmd.PriceText)
	if err != nil {
		var validationErr *domain.ValidationError
		if stderrors.As(err, &validationErr) {
			switch validationErr.Kind {
			case domain.MissingField:
				_ = c.Error(errors.NewMissingField(validationErr.Message))
			default:
				_ = c.Error(errors.NewInvalidPrice(validationErr.Message, cmd.PriceText))
			}
			c.Abort()
			return
		}
		h.fail(c, "failed to add item", err)
		return
	}

	h.publish(c, events.CatalogItemAddedEvent{
		ItemID:     res.Item.ID,
		Name:       res.Item.Name,
		Price:      res.Item.Price.StringFixed(2),
		Quantity:   res.Item.Quantity,
		OccurredAt: time.Now().UTC(),
	})

	h.logger.Info("Item added", zap.Int("item_id", res.Item.ID), zap.String("name", res.Item.Name))
	c.JSON(http.StatusCreated, AddItemResponse{
		Item:    newItemResponse(res.Item),
		Catalog: newCatalogResponse(res.Snapshot),
	})
}

// IncrementItem handles POST /api/v1/catalog/items/:id/increment
// @Summary      Increment quantity
// @Description  Adds one to the item quantity. An id that is not in the catalog is a no-op (applied=false).
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Item ID"
// @Success      200  {object}  CatalogResponse
// @Failure      400  {object}  errors.StandardError  "id is not an integer"
// @Router       /catalog/items/{id}/increment [post]
func (h *CatalogHandler) IncrementItem(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	cmd := commands.IncrementQuantityCommand{ID: id}

	res, err := h.repository.Increment(c.Request.Context(), cmd.ID)
	if err != nil {
		h.fail(c, "failed to increment quantity", err)
		return
	}

	if res.Applied {
		h.publish(c, events.ItemQuantityIncrementedEvent{
			ItemID:     res.Item.ID,
			Name:       res.Item.Name,
			Quantity:   res.Item.Quantity,
			Total:      res.Snapshot.FormattedTotal(),
			OccurredAt: time.Now().UTC(),
		})
	}

	c.JSON(http.StatusOK, newAppliedResponse(res.Snapshot, res.Applied))
}

// DecrementItem handles POST /api/v1/catalog/items/:id/decrement
// @Summary      Decrement quantity
// @Description  Removes one from the item quantity. Quantity 0 or an unknown id is a no-op (applied=false), never an error.
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Item ID"
// @Success      200  {object}  CatalogResponse
// @Failure      400  {object}  errors.StandardError  "id is not an integer"
// @Router       /catalog/items/{id}/decrement [post]
func (h *CatalogHandler) DecrementItem(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	cmd := commands.DecrementQuantityCommand{ID: id}

	res, err := h.repository.Decrement(c.Request.Context(), cmd.ID)
	if err != nil {
		h.fail(c, "failed to decrement quantity", err)
		return
	}

	if res.Applied {
		h.publish(c, events.ItemQuantityDecrementedEvent{
			ItemID:     res.Item.ID,
			Name:       res.Item.Name,
			Quantity:   res.Item.Quantity,
			Total:      res.Snapshot.FormattedTotal(),
			OccurredAt: time.Now().UTC(),
		})
	}

	c.JSON(http.StatusOK, newAppliedResponse(res.Snapshot, res.Applied))
}

// DeleteItem handles DELETE /api/v1/catalog/items/:id
// @Summary      Delete an item
// @Description  Removes the item regardless of its quantity. An unknown id is a no-op (applied=false).
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Item ID"
// @Success      200  {object}  CatalogResponse
// @Failure      400  {object}  errors.StandardError  "id is not an integer"
// @Router       /catalog/items/{id} [delete]
func (h *CatalogHandler) DeleteItem(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	cmd := commands.DeleteItemCommand{ID: id}

	res, err := h.repository.DeleteItem(c.Request.Context(), cmd.ID)
	if err != nil {
		h.fail(c, "failed to delete item", err)
		return
	}

	if res.Applied {
		h.publish(c, events.CatalogItemDeletedEvent{
			ItemID:     res.Item.ID,
			Name:       res.Item.Name,
			Quantity:   res.Item.Quantity,
			OccurredAt: time.Now().UTC(),
		})
		h.logger.Info("Item deleted", zap.Int("item_id", res.Item.ID))
	}

	c.JSON(http.StatusOK, newAppliedResponse(res.Snapshot, res.Applied))
}

// ResetCatalog handles POST /api/v1/catalog/reset
// @Summary      Reset to the seed
// @Description  Discards every change and restores the initial items, as a fresh start would.
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  CatalogResponse
// @Router       /catalog/reset [post]
func (h *CatalogHandler) ResetCatalog(c *gin.Context) {
	snap, err := h.repository.Reset(c.Request.Context())
	if err != nil {
		h.fail(c, "failed to reset catalog", err)
		return
	}
	h.logger.Info("Catalog reset to seed", zap.Int("items", len(snap.Items)))
	c.JSON(http.StatusOK, newCatalogResponse(snap))
}

func (h *CatalogHandler) parseID(c *gin.Context) (int, bool) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		_ = c.Error(errors.NewInvalidItemID(raw))
		c.Abort()
		return 0, false
	}
	return id, true
}

// publish never fails the request: the catalog change is already applied
func (h *CatalogHandler) publish(c *gin.Context, event interface{}) {
	if err := h.eventBus.Publish(c.Request.Context(), event); err != nil {
		h.logger.Error("Failed to publish event",
			zap.String("event-type", events.EventType(event)),
			zap.Error(err),
		)
	}
}

func (h *CatalogHandler) fail(c *gin.Context, message string, err error) {
	h.logger.Error(message, zap.Error(err))
	_ = c.Error(errors.NewInternalError(message, err))
	c.Abort()
}
