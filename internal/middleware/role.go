package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/AnneAnotherThing/hivenow-app/internal/constants"
	"github.com/AnneAnotherThing/hivenow-app/internal/database"
	apierrors "github.com/AnneAnotherThing/hivenow-app/internal/errors"
	"github.com/AnneAnotherThing/hivenow-app/internal/models"
)

// RequireProvider checks that the authenticated user has the provider role and
// stores the loaded user in the context.
func RequireProvider() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if user.Role != models.RoleProvider {
			apierrors.Forbidden(c, "Provider role required")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}
