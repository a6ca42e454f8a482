package services

import (
	"context"
	"errors"

	"tastebook-backend/models"

	"gorm.io/gorm"
)

// ModerationService holds the admin-facing lifecycle transitions: recipe
// approval and rejection, and comment removal and restoration.
type ModerationService struct {
	DB *gorm.DB
}

func NewModerationService(db *gorm.DB) *ModerationService {
	return &ModerationService{DB: db}
}

// Approve marks a pending recipe as approved. Admin only. Approving an
// already-approved recipe is a no-op.
func (s *ModerationService) Approve(ctx context.Context, actor Actor, recipeID uint) error {
	if !actor.IsAdmin {
		return ErrUnauthorized
	}
	var recipe models.Recipe
	if err := s.DB.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if recipe.Approved {
		return nil
	}
	return s.DB.WithContext(ctx).Model(&recipe).Update("approved", true).Error
}

// Reject permanently deletes a recipe and everything attached to it.
// Admin only, irreversible.
func (s *ModerationService) Reject(ctx context.Context, actor Actor, recipeID uint) error {
	if !actor.IsAdmin {
		return ErrUnauthorized
	}
	var recipe models.Recipe
	if err := s.DB.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return deleteRecipeCascade(s.DB.WithContext(ctx), recipe.ID)
}

// RemoveComment hides a comment. Allowed for the comment's owner or an
// admin; removing an already-removed comment is a no-op.
func (s *ModerationService) RemoveComment(ctx context.Context, actor Actor, commentID uint) error {
	if !actor.Authenticated() {
		return ErrUnauthorized
	}
	var comment models.Comment
	if err := s.DB.WithContext(ctx).First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !actor.IsAdmin && actor.ID != comment.UserID {
		return ErrUnauthorized
	}
	if comment.IsRemoved {
		return nil
	}
	return s.DB.WithContext(ctx).Model(&comment).Update("is_removed", true).Error
}

// RestoreComment makes a removed comment visible again, body, owner and
// timestamp untouched. Admin only; restoring a visible comment is a no-op.
func (s *ModerationService) RestoreComment(ctx context.Context, actor Actor, commentID uint) error {
	if !actor.IsAdmin {
		return ErrUnauthorized
	}
	var comment models.Comment
	if err := s.DB.WithContext(ctx).First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !comment.IsRemoved {
		return nil
	}
	return s.DB.WithContext(ctx).Model(&comment).Update("is_removed", false).Error
}

// RecentComments returns the moderation review queue, newest first, removed
// comments included. Admin only.
func (s *ModerationService) RecentComments(ctx context.Context, actor Actor, limit int) ([]models.Comment, error) {
	if !actor.IsAdmin {
		return nil, ErrUnauthorized
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var comments []models.Comment
	err := s.DB.WithContext(ctx).Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
