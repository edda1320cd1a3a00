package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cloudkitchenpro/backend/internal/middleware"
	"github.com/cloudkitchenpro/backend/internal/models"
	"github.com/cloudkitchenpro/backend/internal/service"
)

type RecipeHandler struct {
	recipes      *service.RecipeService
	availability *service.AvailabilityService
	auth         *service.AuthService
}

func NewRecipeHandler(recipes *service.RecipeService, availability *service.AvailabilityService, auth *service.AuthService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, availability: availability, auth: auth}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("/form-options", h.FormOptions)

		authed := recipes.Group("")
		authed.Use(middleware.AuthMiddleware(h.auth))
		{
			authed.GET("", h.List)
			authed.GET("/availability", middleware.RequireRoles(models.RoleChef, models.RoleAdmin), h.Availability)
			authed.GET("/suggested", middleware.RequireRoles(models.RoleChef, models.RoleAdmin), h.Suggested)
			authed.POST("/import-suggested", middleware.RequireRoles(models.RoleChef, models.RoleAdmin), h.ImportSuggested)
			authed.GET("/:id", h.Get)
			authed.POST("", middleware.RequireRoles(models.RoleChef, models.RoleAdmin), h.Create)
			authed.PUT("/:id", middleware.RequireRoles(models.RoleChef, models.RoleAdmin), h.Update)
			authed.DELETE("/:id", middleware.RequireRoles(models.RoleChef, models.RoleAdmin), h.Delete)
		}
	}
}

// FormOptions exposes the enum sets the recipe form needs. Public so the
// frontend can render the form before login.
func (h *RecipeHandler) FormOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"meal_types":    models.MealTypes,
		"cuisine_types": models.CuisineTypes,
		"difficulties":  models.DifficultyTypes,
	})
}

type recipeRequest struct {
	Title        string   `json:"title" binding:"required"`
	Chef         string   `json:"chef" binding:"required"`
	Ingredients  []string `json:"ingredients" binding:"required"`
	Instructions []string `json:"instructions" binding:"required"`
	MealType     string   `json:"meal_type" binding:"required"`
	CuisineType  string   `json:"cuisine_type" binding:"required"`
	PrepTime     int      `json:"prep_time" binding:"required"`
	Difficulty   string   `json:"difficulty" binding:"required"`
	Servings     int      `json:"servings" binding:"required"`
}

func (r recipeRequest) toModel(userID uuid.UUID) *models.Recipe {
	return &models.Recipe{
		UserID:       userID,
		Title:        r.Title,
		Chef:         r.Chef,
		Ingredients:  models.JSONBStringArray(r.Ingredients),
		Instructions: models.JSONBStringArray(r.Instructions),
		MealType:     r.MealType,
		CuisineType:  r.CuisineType,
		PrepTime:     r.PrepTime,
		Difficulty:   r.Difficulty,
		Servings:     r.Servings,
	}
}

func (h *RecipeHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), req.toModel(userID))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) Get(c *gin.Context) {
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) List(c *gin.Context) {
	recipes, err := h.recipes.ListRecipes(c.Request.Context())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes, "count": len(recipes)})
}

func (h *RecipeHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), c.Param("id"), req.toModel(userID))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), c.Param("id"), userID); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted"})
}

// Availability reports, per recipe the caller owns, which ingredients the
// shared inventory covers.
func (h *RecipeHandler) Availability(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	results, err := h.availability.RecipeAvailability(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": results, "count": len(results)})
}

// Suggested lists every recipe, any owner, that is 100% cookable right now.
func (h *RecipeHandler) Suggested(c *gin.Context) {
	results, err := h.availability.SuggestedRecipes(c.Request.Context())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": results, "count": len(results)})
}

type importSuggestedRequest struct {
	RecipeID string `json:"recipe_id" binding:"required"`
}

func (h *RecipeHandler) ImportSuggested(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req importSuggestedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.availability.ImportSuggested(c.Request.Context(), userID, req.RecipeID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// currentUserID pulls the authenticated user's ID out of the Gin context,
// writing the error response itself when it is missing.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user identity"})
		return uuid.Nil, false
	}
	return userID, true
}
