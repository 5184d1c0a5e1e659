package repository

import (
	"github.com/AnneAnotherThing/hivenow-app/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error
}

// SubscriptionRepository defines the interface for subscription data access
type SubscriptionRepository interface {
	// Create creates a new subscription record
	Create(sub *models.Subscription) error

	// FindByID finds a subscription by ID
	FindByID(id uint64) (*models.Subscription, error)

	// FindCurrentByUserID returns the user's most recently created
	// subscription record, or gorm.ErrRecordNotFound if none exists
	FindCurrentByUserID(userID uint64) (*models.Subscription, error)

	// Update persists changes to a subscription record
	Update(sub *models.Subscription) error
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	OwnerID    *uint64
	ProviderID *uint64
	Status     *models.ProjectStatus
	Page       int
	PageSize   int
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// List retrieves projects with filtering and pagination, newest first
	List(filter ProjectFilter) ([]models.Project, int64, error)

	// Update persists changes to a project
	Update(project *models.Project) error

	// Claim atomically assigns a provider to an unassigned project and moves
	// it to in_progress in a single guarded UPDATE. Returns false when the
	// project was already assigned.
	Claim(projectID, providerID uint64) (bool, error)
}

// MessageRepository defines the interface for message data access
type MessageRepository interface {
	// Create creates a new message
	Create(msg *models.Message) error

	// ListByProject returns a project's messages in ascending creation-time
	// order, insertion order breaking ties
	ListByProject(projectID uint64) ([]models.Message, error)
}

// ReviewRepository defines the interface for review data access
type ReviewRepository interface {
	// Create creates a new review
	Create(review *models.Review) error

	// FindByID finds a review by ID
	FindByID(id uint64) (*models.Review, error)

	// FindByProjectAndReviewer finds the review a user left on a project,
	// if any
	FindByProjectAndReviewer(projectID, reviewerID uint64) (*models.Review, error)

	// ListByProject returns all reviews on a project, newest first
	ListByProject(projectID uint64) ([]models.Review, error)

	// ListByReceiver returns reviews received by a user, newest first,
	// optionally including hidden ones
	ListByReceiver(receiverID uint64, includeHidden bool) ([]models.Review, error)

	// Update persists changes to a review
	Update(review *models.Review) error
}
