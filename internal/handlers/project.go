package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AnneAnotherThing/hivenow-app/internal/dto"
	apierrors "github.com/AnneAnotherThing/hivenow-app/internal/errors"
	"github.com/AnneAnotherThing/hivenow-app/internal/middleware"
	"github.com/AnneAnotherThing/hivenow-app/internal/models"
	"github.com/AnneAnotherThing/hivenow-app/internal/services"
	"github.com/AnneAnotherThing/hivenow-app/internal/utils"
)

// ProjectHandler coordinates project-related HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
	authService    *services.AuthService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService, authService *services.AuthService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		authService:    authService,
	}
}

// ListProjects returns the projects visible to the authenticated user.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	actor, ok := resolveActor(c, h.authService)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	projects, total, err := h.projectService.ListProjects(actor, params.Page, params.Limit)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": dto.ToProjectListItemDTOs(projects),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// CreateProject creates a new project owned by the authenticated user.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	actor, ok := resolveActor(c, h.authService)
	if !ok {
		return
	}

	type CreateProjectRequest struct {
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		Attachments []string   `json:"attachments"`
		DueDate     *time.Time `json:"due_date"`
		Tier        string     `json:"tier" binding:"omitempty,oneof=basic pro enterprise"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Attachments: req.Attachments,
		DueDate:     req.DueDate,
		Tier:        models.SubscriptionTier(req.Tier),
		OwnerID:     actor.ID,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"project": dto.ToProjectDTO(*project)})
}

// GetProject returns the project loaded by the access middleware.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": dto.ToProjectDTO(*project)})
}

// UpdateProject applies a partial update to a project. Which fields take
// effect depends on the caller's relationship to the project.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	actor, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type UpdateProjectRequest struct {
		Title        *string    `json:"title"`
		Description  *string    `json:"description"`
		Status       *string    `json:"status" binding:"omitempty,oneof=pending in_progress completed cancelled"`
		Attachments  *[]string  `json:"attachments"`
		DueDate      *time.Time `json:"due_date"`
		ClearDueDate bool       `json:"clear_due_date"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateProjectInput{
		Title:        req.Title,
		Description:  req.Description,
		Attachments:  req.Attachments,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
	}
	if req.Status != nil {
		status := models.ProjectStatus(*req.Status)
		input.Status = &status
	}

	updated, err := h.projectService.UpdateProject(actor, project.ID, input)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": dto.ToProjectDTO(*updated)})
}

// AssignProject lets a provider claim an unassigned project.
func (h *ProjectHandler) AssignProject(c *gin.Context) {
	actor, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	project, err := h.projectService.AssignProject(actor, projectID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": dto.ToProjectDTO(*project)})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrProjectAccessDenied),
		errors.Is(err, services.ErrNotProvider):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrSubscriptionRequired):
		apierrors.SubscriptionRequired(c, err.Error())
	case errors.Is(err, services.ErrAlreadyAssigned),
		errors.Is(err, services.ErrInvalidTransition):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrProjectTitleRequired),
		errors.Is(err, services.ErrInvalidTier):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
