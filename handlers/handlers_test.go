package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"tastebook-backend/middleware"
	"tastebook-backend/models"
	"tastebook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
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
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.Rating{},
		&models.Comment{},
	))
	return db
}

func newTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recipeHandler := NewRecipeHandler(db)
	adminHandler := NewAdminHandler(db)

	router := gin.New()
	router.GET("/api/recipes/:id", middleware.OptionalAuthMiddleware(), recipeHandler.GetRecipe)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/recipes/:id/rating", recipeHandler.AddRating)
		protected.POST("/recipes/:id/comment", recipeHandler.AddComment)
		protected.POST("/recipes/:id/approve", adminHandler.ApproveRecipe)
		protected.GET("/admin/pending", adminHandler.PendingRecipes)
	}
	return router
}

func seedUser(t *testing.T, db *gorm.DB, username string, admin bool) (*models.User, string) {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
		IsAdmin:      admin,
	}
	require.NoError(t, db.Create(user).Error)

	token, err := utils.GenerateJWT(user)
	require.NoError(t, err)
	return user, token
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetRecipeHidesPendingFromAnonymous(t *testing.T) {
	utils.SetJWTSecret("handler-test-secret")
	db := newTestDB(t)
	router := newTestRouter(t, db)

	owner, ownerToken := seedUser(t, db, "owner", false)
	_, strangerToken := seedUser(t, db, "stranger", false)

	recipe := &models.Recipe{Title: "Pending Paella", UserID: owner.ID}
	require.NoError(t, db.Create(recipe).Error)
	path := fmt.Sprintf("/api/recipes/%d", recipe.ID)

	// hidden and absent are the same 404
	w := doJSON(router, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodGet, path, strangerToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodGet, path, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recipe models.Recipe `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Pending Paella", resp.Recipe.Title)
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	utils.SetJWTSecret("handler-test-secret")
	db := newTestDB(t)
	router := newTestRouter(t, db)

	w := doJSON(router, http.MethodPost, "/api/recipes/1/rating", "", models.RatingInput{Score: 3})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/api/recipes/1/rating", "garbage-token", models.RatingInput{Score: 3})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddRating(t *testing.T) {
	utils.SetJWTSecret("handler-test-secret")
	db := newTestDB(t)
	router := newTestRouter(t, db)

	owner, _ := seedUser(t, db, "owner", false)
	_, raterToken := seedUser(t, db, "rater", false)

	recipe := &models.Recipe{Title: "Rated Ragu", UserID: owner.ID, Approved: true}
	require.NoError(t, db.Create(recipe).Error)
	path := fmt.Sprintf("/api/recipes/%d/rating", recipe.ID)

	// out-of-range score is a field-level 400
	w := doJSON(router, http.MethodPost, path, raterToken, models.RatingInput{Score: 6})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var badResp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &badResp))
	assert.Equal(t, "score", badResp["field"])

	w = doJSON(router, http.MethodPost, path, raterToken, models.RatingInput{Score: 5})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Average *float64 `json:"average"`
		Count   int64    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Average)
	assert.Equal(t, 5.0, *resp.Average)
	assert.Equal(t, int64(1), resp.Count)
}

func TestApproveRecipe(t *testing.T) {
	utils.SetJWTSecret("handler-test-secret")
	db := newTestDB(t)
	router := newTestRouter(t, db)

	owner, ownerToken := seedUser(t, db, "owner", false)
	_, adminToken := seedUser(t, db, "admin", true)

	recipe := &models.Recipe{Title: "Approvable Aioli", UserID: owner.ID}
	require.NoError(t, db.Create(recipe).Error)
	approvePath := fmt.Sprintf("/api/recipes/%d/approve", recipe.ID)
	viewPath := fmt.Sprintf("/api/recipes/%d", recipe.ID)

	// a non-admin cannot approve; the rejection does not reveal anything
	w := doJSON(router, http.MethodPost, approvePath, ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodPost, approvePath, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, viewPath, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPendingQueueForbiddenForNonAdmins(t *testing.T) {
	utils.SetJWTSecret("handler-test-secret")
	db := newTestDB(t)
	router := newTestRouter(t, db)

	_, userToken := seedUser(t, db, "user", false)
	_, adminToken := seedUser(t, db, "admin", true)

	w := doJSON(router, http.MethodGet, "/api/admin/pending", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodGet, "/api/admin/pending", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAddCommentValidation(t *testing.T) {
	utils.SetJWTSecret("handler-test-secret")
	db := newTestDB(t)
	router := newTestRouter(t, db)

	owner, _ := seedUser(t, db, "owner", false)
	_, readerToken := seedUser(t, db, "reader", false)

	recipe := &models.Recipe{Title: "Chatty Chili", UserID: owner.ID, Approved: true}
	require.NoError(t, db.Create(recipe).Error)
	path := fmt.Sprintf("/api/recipes/%d/comment", recipe.ID)

	w := doJSON(router, http.MethodPost, path, readerToken, models.CommentInput{Body: "   "})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var badResp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &badResp))
	assert.Equal(t, "body", badResp["field"])

	w = doJSON(router, http.MethodPost, path, readerToken, models.CommentInput{Body: "needs more cumin"})
	require.Equal(t, http.StatusCreated, w.Code)

	var comment models.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))
	assert.Equal(t, "needs more cumin", comment.Body)
	assert.Equal(t, "reader", comment.User.Username)
}
