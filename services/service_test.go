package services

import (
	"testing"
	"time"

	"tastebook-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.Rating{},
		&models.Comment{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, admin bool) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
		IsAdmin:      admin,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createRecipe(t *testing.T, db *gorm.DB, owner *models.User, title string, approved bool) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		Title:    title,
		UserID:   owner.ID,
		Approved: approved,
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

func createRecipeAt(t *testing.T, db *gorm.DB, owner *models.User, title string, approved bool, at time.Time) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		Title:     title,
		UserID:    owner.ID,
		Approved:  approved,
		CreatedAt: at,
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

func createComment(t *testing.T, db *gorm.DB, author *models.User, recipe *models.Recipe, body string) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		Body:     body,
		UserID:   author.ID,
		RecipeID: recipe.ID,
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func actorFor(u *models.User) Actor {
	return Actor{ID: u.ID, IsAdmin: u.IsAdmin}
}
