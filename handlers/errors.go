package handlers

import (
	"errors"
	"net/http"

	"tastebook-backend/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP responses. Unauthorized and
// not-found collapse into one 404 so callers cannot probe for hidden
// content; validation failures carry the offending field.
func respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// currentActor reads the identity stored by the auth middleware. Requests
// that never passed the middleware, or failed optional auth, yield the
// anonymous actor.
func currentActor(c *gin.Context) services.Actor {
	id, ok := c.Get("user_id")
	if !ok {
		return services.Actor{}
	}
	userID, ok := id.(uint)
	if !ok {
		return services.Actor{}
	}
	isAdmin, _ := c.Get("is_admin")
	admin, _ := isAdmin.(bool)
	return services.Actor{ID: userID, IsAdmin: admin}
}
