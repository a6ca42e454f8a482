package handlers

import (
	"net/http"
	"strconv"

	"tastebook-backend/models"
	"tastebook-backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RecipeHandler struct {
	Recipes  *services.RecipeService
	Ratings  *services.RatingService
	Comments *services.CommentService
}

func NewRecipeHandler(db *gorm.DB) *RecipeHandler {
	return &RecipeHandler{
		Recipes:  services.NewRecipeService(db),
		Ratings:  services.NewRatingService(db),
		Comments: services.NewCommentService(db),
	}
}

func (h *RecipeHandler) GetRecipes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	recipes, total, err := h.Recipes.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"recipes": recipes,
		"total":   total,
		"page":    page,
		"limit":   limit,
		"pages":   (int(total) + limit - 1) / limit,
	})
}

func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	query := c.Query("q")

	recipes, err := h.Recipes.Search(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes, "query": query})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	actor := currentActor(c)

	recipe, err := h.Recipes.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	average, err := h.Ratings.Average(c.Request.Context(), recipe.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	userRating, err := h.Ratings.ForUser(c.Request.Context(), actor, recipe.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	comments, err := h.Comments.ListForRecipe(c.Request.Context(), actor, recipe.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipe":         recipe,
		"average_rating": average,
		"user_rating":    userRating,
		"comments":       comments,
	})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var input models.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.Recipes.Create(c.Request.Context(), currentActor(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	var input models.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.Recipes.Update(c.Request.Context(), currentActor(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	if err := h.Recipes.Delete(c.Request.Context(), currentActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
}

func (h *RecipeHandler) MyRecipes(c *gin.Context) {
	recipes, err := h.Recipes.ListByOwner(c.Request.Context(), currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) AddRating(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	var input models.RatingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "score must be between 1 and 5", "field": "score"})
		return
	}

	summary, err := h.Ratings.Upsert(c.Request.Context(), currentActor(c), id, input.Score)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"average": summary.Average,
		"count":   summary.Count,
	})
}

func (h *RecipeHandler) AddComment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	var input models.CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "comment must not be empty", "field": "body"})
		return
	}

	comment, err := h.Comments.Add(c.Request.Context(), currentActor(c), id, input.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *RecipeHandler) GetComments(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	comments, err := h.Comments.ListForRecipe(c.Request.Context(), currentActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}
