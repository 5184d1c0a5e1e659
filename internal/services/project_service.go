package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AnneAnotherThing/hivenow-app/internal/models"
	"github.com/AnneAnotherThing/hivenow-app/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectAccessDenied  = errors.New("you do not have access to this project")
	ErrNotProvider          = errors.New("provider role required")
	ErrAlreadyAssigned      = errors.New("project already assigned")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrSubscriptionRequired = errors.New("active subscription required to create this project")
	ErrProjectTitleRequired = errors.New("title is required")
)

// projectPreloads are the relations loaded for single-project reads.
var projectPreloads = []string{"User", "Provider"}

// ProjectService handles the project lifecycle: creation behind the
// subscription gate, assignment, status transitions and role-scoped updates.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	subRepo     repository.SubscriptionRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, subRepo repository.SubscriptionRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		subRepo:     subRepo,
	}
}

// CreateProjectInput represents input for creating a project.
type CreateProjectInput struct {
	Title       string
	Description string
	Attachments []string
	DueDate     *time.Time
	Tier        models.SubscriptionTier
	OwnerID     uint64
}

// CreateProject creates a pending, unassigned project owned by the customer.
// Any tier above basic requires the owner's current subscription to be active.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrProjectTitleRequired
	}

	tier := input.Tier
	if tier == "" {
		tier = models.TierBasic
	}
	if !models.ValidTier(tier) {
		return nil, ErrInvalidTier
	}

	if tier != models.TierBasic {
		active, err := s.ownerHasActiveSubscription(input.OwnerID)
		if err != nil {
			return nil, err
		}
		if !active {
			return nil, ErrSubscriptionRequired
		}
	}

	project := &models.Project{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		UserID:      input.OwnerID,
		Status:      models.ProjectPending,
		Attachments: input.Attachments,
		DueDate:     input.DueDate,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// GetProject returns a project if the actor may see it.
func (s *ProjectService) GetProject(actor *models.User, projectID uint64) (*models.Project, error) {
	project, err := s.findProject(projectID, projectPreloads...)
	if err != nil {
		return nil, err
	}

	if !project.CanAccess(actor) {
		return nil, ErrProjectAccessDenied
	}

	return project, nil
}

// ListProjects returns the projects visible to the actor: owned ones for
// customers, assigned ones for providers, all of them for admins.
func (s *ProjectService) ListProjects(actor *models.User, page, pageSize int) ([]models.Project, int64, error) {
	filter := repository.ProjectFilter{
		Page:     page,
		PageSize: pageSize,
	}

	switch actor.Role {
	case models.RoleProvider:
		filter.ProviderID = &actor.ID
	case models.RoleAdmin:
		// no filter
	default:
		filter.OwnerID = &actor.ID
	}

	projects, total, err := s.projectRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, total, nil
}

// AssignProject claims an unassigned project for a provider. Provider id and
// the pending -> in_progress move are committed together; there is never a
// state where only one of them is visible.
func (s *ProjectService) AssignProject(actor *models.User, projectID uint64) (*models.Project, error) {
	if actor.Role != models.RoleProvider {
		return nil, ErrNotProvider
	}

	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}

	if project.ProviderID != nil {
		return nil, ErrAlreadyAssigned
	}

	claimed, err := s.projectRepo.Claim(projectID, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to assign project: %w", err)
	}
	if !claimed {
		// Another provider won the claim between our read and the update
		return nil, ErrAlreadyAssigned
	}

	return s.findProject(projectID, projectPreloads...)
}

// UpdateProjectInput represents a partial project update. Nil pointers leave
// the field alone.
type UpdateProjectInput struct {
	Title        *string
	Description  *string
	Status       *models.ProjectStatus
	Attachments  *[]string
	DueDate      *time.Time
	ClearDueDate bool
}

// UpdateProject applies a role-scoped update. Status changes are validated
// against the lifecycle graph and the actor's relationship to the project.
// Non-status fields outside the actor's write scope are dropped, not rejected:
// a provider may touch attachments, the owner may touch title, description,
// attachments and due date.
func (s *ProjectService) UpdateProject(actor *models.User, projectID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}

	if !project.CanAccess(actor) {
		return nil, ErrProjectAccessDenied
	}

	if input.Status != nil && *input.Status != project.Status {
		if !allowedTransition(actor, project, *input.Status) {
			return nil, ErrInvalidTransition
		}
		project.Status = *input.Status
	}

	providerScope := project.IsAssignedProvider(actor) && !project.IsOwner(actor)

	if input.Attachments != nil {
		project.Attachments = *input.Attachments
	}
	if !providerScope {
		if input.Title != nil && strings.TrimSpace(*input.Title) != "" {
			project.Title = strings.TrimSpace(*input.Title)
		}
		if input.Description != nil {
			project.Description = *input.Description
		}
		if input.ClearDueDate {
			project.DueDate = nil
		} else if input.DueDate != nil {
			project.DueDate = input.DueDate
		}
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.findProject(projectID, projectPreloads...)
}

// allowedTransition decides whether the actor may move the project to the
// requested status. The lifecycle graph bounds everyone; on top of that the
// owner may complete or cancel, the assigned provider may start or complete,
// and admins may drive any valid edge.
func allowedTransition(actor *models.User, project *models.Project, to models.ProjectStatus) bool {
	if !models.ValidStatusTransition(project.Status, to) {
		return false
	}

	if actor.Role == models.RoleAdmin {
		return true
	}

	if project.IsOwner(actor) {
		switch to {
		case models.ProjectCompleted:
			return project.Status == models.ProjectInProgress
		case models.ProjectCancelled:
			return true
		}
		return false
	}

	if project.IsAssignedProvider(actor) {
		switch to {
		case models.ProjectInProgress:
			return project.Status == models.ProjectPending
		case models.ProjectCompleted:
			return project.Status == models.ProjectInProgress
		}
		return false
	}

	return false
}

func (s *ProjectService) findProject(projectID uint64, preload ...string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) ownerHasActiveSubscription(userID uint64) (bool, error) {
	sub, err := s.subRepo.FindCurrentByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}
	return sub.Status == models.SubscriptionActive, nil
}
