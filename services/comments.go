package services

import (
	"context"
	"errors"
	"strings"

	"tastebook-backend/models"

	"gorm.io/gorm"
)

type CommentService struct {
	DB *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{DB: db}
}

// Add attaches a new visible comment to a recipe the actor can see.
func (s *CommentService) Add(ctx context.Context, actor Actor, recipeID uint, body string) (*models.Comment, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthorized
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, &ValidationError{Field: "body", Message: "comment must not be empty"}
	}

	var recipe models.Recipe
	if err := s.DB.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !CanViewRecipe(actor, &recipe) {
		return nil, ErrNotFound
	}

	comment := models.Comment{Body: body, UserID: actor.ID, RecipeID: recipe.ID}
	if err := s.DB.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Preload("User").First(&comment, comment.ID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListForRecipe returns the visible comments of a recipe, oldest first.
// Removed comments never appear here; admins review them through the
// moderation queue instead.
func (s *CommentService) ListForRecipe(ctx context.Context, actor Actor, recipeID uint) ([]models.Comment, error) {
	var recipe models.Recipe
	if err := s.DB.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !CanViewRecipe(actor, &recipe) {
		return nil, ErrNotFound
	}

	var comments []models.Comment
	err := s.DB.WithContext(ctx).Preload("User").
		Where("recipe_id = ? AND is_removed = ?", recipeID, false).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
