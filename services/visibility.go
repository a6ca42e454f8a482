package services

import (
	"tastebook-backend/models"
)

// CanViewRecipe reports whether actor may see recipe. Approved recipes are
// public, including to anonymous actors; pending recipes are visible only to
// their owner and to admins.
func CanViewRecipe(actor Actor, recipe *models.Recipe) bool {
	if recipe.Approved {
		return true
	}
	return actor.Authenticated() && (actor.IsAdmin || actor.ID == recipe.UserID)
}

// CanViewComment is derived transitively: the parent recipe must be visible,
// and removed comments are shown only to admins.
func CanViewComment(actor Actor, recipe *models.Recipe, comment *models.Comment) bool {
	if !CanViewRecipe(actor, recipe) {
		return false
	}
	return !comment.IsRemoved || actor.IsAdmin
}
