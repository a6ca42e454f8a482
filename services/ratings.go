package services

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"tastebook-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingService struct {
	DB *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{DB: db}
}

// RatingSummary is the aggregate returned after an upsert. Average is nil
// when the recipe has no ratings; "no ratings yet" is not a zero average.
type RatingSummary struct {
	Average *float64 `json:"average"`
	Count   int64    `json:"count"`
}

// Upsert records the actor's score for a recipe, overwriting any previous
// score from the same actor. Conflicting concurrent upserts resolve on the
// (user_id, recipe_id) unique index instead of inserting twice.
func (s *RatingService) Upsert(ctx context.Context, actor Actor, recipeID uint, score int) (*RatingSummary, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthorized
	}
	if score < 1 || score > 5 {
		return nil, &ValidationError{Field: "score", Message: "score must be between 1 and 5"}
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

	rating := models.Rating{UserID: actor.ID, RecipeID: recipe.ID, Score: score}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
	}).Create(&rating).Error
	if err != nil {
		return nil, err
	}

	return s.summary(ctx, recipe.ID)
}

// Average returns the mean score rounded to two decimal places, or nil when
// the recipe has no ratings.
func (s *RatingService) Average(ctx context.Context, recipeID uint) (*float64, error) {
	summary, err := s.summary(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return summary.Average, nil
}

// ForUser returns the actor's own score for a recipe, or nil if the actor
// is anonymous or has not rated it.
func (s *RatingService) ForUser(ctx context.Context, actor Actor, recipeID uint) (*int, error) {
	if !actor.Authenticated() {
		return nil, nil
	}
	var rating models.Rating
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", actor.ID, recipeID).
		First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rating.Score, nil
}

func (s *RatingService) summary(ctx context.Context, recipeID uint) (*RatingSummary, error) {
	var agg struct {
		Avg   sql.NullFloat64
		Count int64
	}
	err := s.DB.WithContext(ctx).Model(&models.Rating{}).
		Select("AVG(score) AS avg, COUNT(*) AS count").
		Where("recipe_id = ?", recipeID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}

	summary := &RatingSummary{Count: agg.Count}
	if agg.Avg.Valid {
		rounded := math.Round(agg.Avg.Float64*100) / 100
		summary.Average = &rounded
	}
	return summary, nil
}
