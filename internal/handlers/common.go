package handlers

import (
	"github.com/gin-gonic/gin"

	apierrors "github.com/AnneAnotherThing/hivenow-app/internal/errors"
	"github.com/AnneAnotherThing/hivenow-app/internal/middleware"
	"github.com/AnneAnotherThing/hivenow-app/internal/models"
	"github.com/AnneAnotherThing/hivenow-app/internal/services"
)

// resolveActor returns the authenticated user, preferring one already loaded
// by a middleware. Writes a 401 and returns false when there is none.
func resolveActor(c *gin.Context, authService *services.AuthService) (*models.User, bool) {
	if user, ok := middleware.GetUser(c); ok {
		return user, true
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return nil, false
	}

	user, err := authService.GetUser(userID)
	if err != nil {
		apierrors.Unauthorized(c, "")
		return nil, false
	}
	return user, true
}

// optionalActor returns the session user if there is one, nil otherwise.
func optionalActor(c *gin.Context, authService *services.AuthService) *models.User {
	if user, ok := middleware.GetUser(c); ok {
		return user
	}

	if userID, ok := middleware.GetUserID(c); ok {
		if user, err := authService.GetUser(userID); err == nil {
			return user
		}
	}
	return nil
}
