package services

import (
	"context"
	"errors"
	"strings"

	"tastebook-backend/models"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

type RecipeService struct {
	DB *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{DB: db}
}

// Get returns the recipe if it is visible to actor. Recipes hidden by the
// visibility policy are reported as ErrNotFound, not as a permission error,
// so unapproved content does not leak its existence.
func (s *RecipeService) Get(ctx context.Context, actor Actor, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.DB.WithContext(ctx).Preload("User").First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !CanViewRecipe(actor, &recipe) {
		return nil, ErrNotFound
	}
	return &recipe, nil
}

// List returns approved recipes, newest first.
func (s *RecipeService) List(ctx context.Context, page, pageSize int) ([]models.Recipe, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	query := s.DB.WithContext(ctx).Model(&models.Recipe{}).Where("approved = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []models.Recipe
	if err := query.Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// Search matches approved recipes whose title, description, ingredients or
// category contains the query, case-insensitively.
func (s *RecipeService) Search(ctx context.Context, query string) ([]models.Recipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	pattern := "%" + strings.ToLower(query) + "%"

	var recipes []models.Recipe
	err := s.DB.WithContext(ctx).Preload("User").
		Where("approved = ?", true).
		Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(ingredients) LIKE ? OR LOWER(category) LIKE ?",
			pattern, pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// Create stores a new recipe owned by actor. Every submission starts
// unapproved, regardless of who creates it.
func (s *RecipeService) Create(ctx context.Context, actor Actor, input models.RecipeInput) (*models.Recipe, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthorized
	}
	if err := validateRecipeInput(input); err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		Instructions: input.Instructions,
		Ingredients:  models.ParseIngredients(input.Ingredients),
		Image:        input.Image,
		Category:     strings.TrimSpace(input.Category),
		CookingTime:  input.CookingTime,
		Servings:     input.Servings,
		Approved:     false,
		UserID:       actor.ID,
	}
	if err := s.DB.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Update edits an existing recipe. Only the owner or an admin may edit;
// editing does not change the approval state.
func (s *RecipeService) Update(ctx context.Context, actor Actor, id uint, input models.RecipeInput) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.DB.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !actor.Authenticated() || (!actor.IsAdmin && actor.ID != recipe.UserID) {
		return nil, ErrUnauthorized
	}
	if err := validateRecipeInput(input); err != nil {
		return nil, err
	}

	recipe.Title = strings.TrimSpace(input.Title)
	recipe.Description = strings.TrimSpace(input.Description)
	recipe.Instructions = input.Instructions
	recipe.Ingredients = models.ParseIngredients(input.Ingredients)
	recipe.Category = strings.TrimSpace(input.Category)
	recipe.CookingTime = input.CookingTime
	recipe.Servings = input.Servings
	if input.Image != "" {
		recipe.Image = input.Image
	}
	if err := s.DB.WithContext(ctx).Save(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Delete removes a recipe and all its ratings and comments. Only the owner
// or an admin may delete; the effect is identical to an admin rejection.
func (s *RecipeService) Delete(ctx context.Context, actor Actor, id uint) error {
	var recipe models.Recipe
	if err := s.DB.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !actor.Authenticated() || (!actor.IsAdmin && actor.ID != recipe.UserID) {
		return ErrUnauthorized
	}
	return deleteRecipeCascade(s.DB.WithContext(ctx), recipe.ID)
}

// ListByOwner returns the actor's own recipes, approved or not, newest first.
func (s *RecipeService) ListByOwner(ctx context.Context, actor Actor) ([]models.Recipe, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthorized
	}
	var recipes []models.Recipe
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", actor.ID).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// ListPending returns the admin review queue of unapproved recipes.
func (s *RecipeService) ListPending(ctx context.Context, actor Actor) ([]models.Recipe, error) {
	if !actor.IsAdmin {
		return nil, ErrUnauthorized
	}
	var recipes []models.Recipe
	err := s.DB.WithContext(ctx).Preload("User").
		Where("approved = ?", false).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

func validateRecipeInput(input models.RecipeInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if input.CookingTime != nil && *input.CookingTime < 0 {
		return &ValidationError{Field: "cooking_time", Message: "must not be negative"}
	}
	if input.Servings != nil && *input.Servings < 1 {
		return &ValidationError{Field: "servings", Message: "must be at least 1"}
	}
	return nil
}

// deleteRecipeCascade removes a recipe together with its dependent ratings
// and comments in one transaction. Shared by owner deletion and admin
// rejection.
func deleteRecipeCascade(db *gorm.DB, recipeID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, recipeID).Error
	})
}
