package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AnneAnotherThing/hivenow-app/internal/constants"
	"github.com/AnneAnotherThing/hivenow-app/internal/database"
	apierrors "github.com/AnneAnotherThing/hivenow-app/internal/errors"
	"github.com/AnneAnotherThing/hivenow-app/internal/models"
)

// RequireProjectAccess checks that the authenticated user may act on the
// project named in the URL: the owner, the assigned provider, or an admin.
// The loaded project and user are stored in the context for the handler.
func RequireProjectAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectIDStr := c.Param("id")
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

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

		var project models.Project
		if err := database.GetDB().
			Preload("User").
			Preload("Provider").
			First(&project, projectID).Error; err != nil {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		if !project.CanAccess(&user) {
			apierrors.Forbidden(c, "You don't have access to this project")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Set(constants.ContextKeyProject, project)
		c.Next()
	}
}

// GetProject retrieves the project loaded by RequireProjectAccess
func GetProject(c *gin.Context) (*models.Project, bool) {
	value, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return nil, false
	}

	project, ok := value.(models.Project)
	if !ok {
		return nil, false
	}
	return &project, true
}
