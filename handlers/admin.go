package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"tastebook-backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminHandler struct {
	Recipes    *services.RecipeService
	Moderation *services.ModerationService
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{
		Recipes:    services.NewRecipeService(db),
		Moderation: services.NewModerationService(db),
	}
}

// PendingRecipes lists the approval queue. Unlike entity-scoped actions,
// this collection endpoint reports a plain 403 to non-admins; there is no
// existence to hide.
func (h *AdminHandler) PendingRecipes(c *gin.Context) {
	recipes, err := h.Recipes.ListPending(c.Request.Context(), currentActor(c))
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *AdminHandler) RecentComments(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	comments, err := h.Moderation.RecentComments(c.Request.Context(), currentActor(c), limit)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *AdminHandler) ApproveRecipe(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	if err := h.Moderation.Approve(c.Request.Context(), currentActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe approved"})
}

func (h *AdminHandler) RejectRecipe(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	if err := h.Moderation.Reject(c.Request.Context(), currentActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe rejected"})
}

func (h *AdminHandler) RemoveComment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	if err := h.Moderation.RemoveComment(c.Request.Context(), currentActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment removed"})
}

func (h *AdminHandler) RestoreComment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	if err := h.Moderation.RestoreComment(c.Request.Context(), currentActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment restored"})
}
