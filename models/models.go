package models

import (
	"time"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:80;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"size:200;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:200;not null"`
	Bio          string    `json:"bio" gorm:"type:text"`
	IsAdmin      bool      `json:"is_admin" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`

	Recipes  []Recipe  `json:"-" gorm:"foreignKey:UserID"`
	Ratings  []Rating  `json:"-" gorm:"foreignKey:UserID"`
	Comments []Comment `json:"-" gorm:"foreignKey:UserID"`
}

// Recipe starts unapproved and becomes publicly visible only after an admin
// approves it. Ownership is mandatory.
type Recipe struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Title        string         `json:"title" gorm:"size:200;not null"`
	Description  string         `json:"description" gorm:"type:text"`
	Instructions string         `json:"instructions" gorm:"type:text"`
	Ingredients  IngredientList `json:"ingredients" gorm:"type:text"`
	Image        string         `json:"image" gorm:"size:300"`
	Category     string         `json:"category" gorm:"size:80"`
	CookingTime  *int           `json:"cooking_time"`
	Servings     *int           `json:"servings"`
	Approved     bool           `json:"approved" gorm:"default:false"`
	UserID       uint           `json:"user_id" gorm:"not null;index"`
	CreatedAt    time.Time      `json:"created_at"`

	User     User      `json:"user" gorm:"foreignKey:UserID"`
	Ratings  []Rating  `json:"-" gorm:"foreignKey:RecipeID"`
	Comments []Comment `json:"-" gorm:"foreignKey:RecipeID"`
}

// Rating carries a composite unique index so two concurrent upserts for the
// same (user, recipe) pair cannot both insert a row.
type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Score     int       `json:"score" gorm:"not null;check:score >= 1 AND score <= 5"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_ratings_user_recipe"`
	RecipeID  uint      `json:"recipe_id" gorm:"not null;uniqueIndex:idx_ratings_user_recipe"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment is soft-deleted only: IsRemoved hides it without erasing it.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	RecipeID  uint      `json:"recipe_id" gorm:"not null;index"`
	IsRemoved bool      `json:"is_removed" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"user" gorm:"foreignKey:UserID"`
}

// Auth types
type SignupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=80"`
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type ProfileUpdateRequest struct {
	Username string `json:"username" binding:"omitempty,min=3,max=80"`
	Bio      string `json:"bio" binding:"max=2000"`
}

// RecipeInput is the typed form for creating or editing a recipe. The
// ingredients field accepts either a JSON array of strings or one ingredient
// per line; see ParseIngredients.
type RecipeInput struct {
	Title        string `json:"title" binding:"required,max=200"`
	Description  string `json:"description" binding:"max=2000"`
	Instructions string `json:"instructions"`
	Ingredients  string `json:"ingredients"`
	Image        string `json:"image" binding:"max=300"`
	Category     string `json:"category" binding:"max=80"`
	CookingTime  *int   `json:"cooking_time" binding:"omitempty,min=0"`
	Servings     *int   `json:"servings" binding:"omitempty,min=1"`
}

type RatingInput struct {
	Score int `json:"score" binding:"required"`
}

type CommentInput struct {
	Body string `json:"body" binding:"required"`
}
