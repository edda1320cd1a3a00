package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cloudkitchenpro/backend/internal/middleware"
	"github.com/cloudkitchenpro/backend/internal/models"
	"github.com/cloudkitchenpro/backend/internal/service"
)

const dateLayout = "2006-01-02"

type InventoryHandler struct {
	inventory *service.InventoryService
	alerts    *service.AlertService
	insights  *service.InsightsService
	auth      *service.AuthService
	limiter   *middleware.RateLimiter
}

func NewInventoryHandler(inventory *service.InventoryService, alerts *service.AlertService, insights *service.InsightsService, auth *service.AuthService, limiter *middleware.RateLimiter) *InventoryHandler {
	return &InventoryHandler{
		inventory: inventory,
		alerts:    alerts,
		insights:  insights,
		auth:      auth,
		limiter:   limiter,
	}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	inventory := router.Group("/inventory")
	{
		inventory.GET("/form-options", h.FormOptions)

		authed := inventory.Group("")
		authed.Use(middleware.AuthMiddleware(h.auth))
		{
			authed.GET("", h.List)
			authed.GET("/alerts", h.Alerts)
			authed.GET("/:id", h.Get)
			authed.POST("", h.Create)
			authed.PUT("/:id", h.Update)
			authed.DELETE("/:id", h.Delete)

			insights := authed.Group("/insights")
			insights.Use(middleware.RequireRoles(models.RoleManager, models.RoleAdmin))
			if h.limiter != nil {
				insights.Use(h.limiter.RateLimitMiddleware())
			}
			insights.GET("", h.Insights)
		}
	}
}

// FormOptions exposes the enum sets the inventory form needs.
func (h *InventoryHandler) FormOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"units":      models.AllowedUnits,
		"categories": models.AllowedCategories,
		"locations":  models.AllowedLocations,
	})
}

type createInventoryRequest struct {
	IngredientName string  `json:"ingredient_name" binding:"required"`
	Quantity       float64 `json:"quantity" binding:"required"`
	Unit           string  `json:"unit" binding:"required"`
	Category       string  `json:"category" binding:"required"`
	PurchaseDate   string  `json:"purchase_date" binding:"required"`
	ExpirationDate string  `json:"expiration_date" binding:"required"`
	Location       string  `json:"location" binding:"required"`
	Cost           float64 `json:"cost" binding:"required"`
}

func (h *InventoryHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req createInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purchase, err := parseDate(req.PurchaseDate, "purchase_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	expiration, err := parseDate(req.ExpirationDate, "expiration_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := &models.InventoryItem{
		UserID:         userID,
		IngredientName: req.IngredientName,
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		Category:       req.Category,
		PurchaseDate:   purchase,
		ExpirationDate: expiration,
		Location:       req.Location,
		Cost:           req.Cost,
	}

	created, err := h.inventory.CreateItem(c.Request.Context(), item)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *InventoryHandler) Get(c *gin.Context) {
	item, err := h.inventory.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.inventory.ListItems(c.Request.Context())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

type updateInventoryRequest struct {
	IngredientName *string  `json:"ingredient_name"`
	Quantity       *float64 `json:"quantity"`
	Unit           *string  `json:"unit"`
	Category       *string  `json:"category"`
	PurchaseDate   *string  `json:"purchase_date"`
	ExpirationDate *string  `json:"expiration_date"`
	Location       *string  `json:"location"`
	Cost           *float64 `json:"cost"`
}

func (h *InventoryHandler) Update(c *gin.Context) {
	var req updateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := service.InventoryUpdate{
		IngredientName: req.IngredientName,
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		Category:       req.Category,
		Location:       req.Location,
		Cost:           req.Cost,
	}
	if req.PurchaseDate != nil {
		purchase, err := parseDate(*req.PurchaseDate, "purchase_date")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		update.PurchaseDate = &purchase
	}
	if req.ExpirationDate != nil {
		expiration, err := parseDate(*req.ExpirationDate, "expiration_date")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		update.ExpirationDate = &expiration
	}

	item, err := h.inventory.UpdateItem(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.inventory.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "inventory item deleted"})
}

// Alerts returns the expiry and low-stock snapshot for the whole inventory.
func (h *InventoryHandler) Alerts(c *gin.Context) {
	snapshot, err := h.alerts.Alerts(c.Request.Context())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// Insights returns waste, spending and shopping-list analytics.
func (h *InventoryHandler) Insights(c *gin.Context) {
	insights, err := h.insights.Insights(c.Request.Context())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, insights)
}

func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a date in YYYY-MM-DD format", field)
	}
	return t, nil
}
