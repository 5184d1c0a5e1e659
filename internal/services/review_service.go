package services

import (
	"errors"
	"fmt"

	"github.com/AnneAnotherThing/hivenow-app/internal/constants"
	"github.com/AnneAnotherThing/hivenow-app/internal/models"
	"github.com/AnneAnotherThing/hivenow-app/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrProjectNotCompleted = errors.New("project is not completed")
	ErrDuplicateReview     = errors.New("you have already reviewed this project")
	ErrNoCounterparty      = errors.New("project has no counterparty to review")
	ErrInvalidRating       = errors.New("rating must be an integer between 1 and 5")
	ErrNotReviewReceiver   = errors.New("only the review receiver can change its visibility")
)

// ReviewService handles review eligibility and receiver-controlled visibility.
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	projectRepo repository.ProjectRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repository.ReviewRepository, projectRepo repository.ProjectRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		projectRepo: projectRepo,
	}
}

// Submit creates a review on a completed project. The receiver is the other
// side of the project: the assigned provider when the owner reviews, the owner
// otherwise. One review per (project, reviewer).
func (s *ReviewService) Submit(actor *models.User, projectID uint64, rating int, comment string) (*models.Review, error) {
	if rating < constants.MinRating || rating > constants.MaxRating {
		return nil, ErrInvalidRating
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if !project.CanAccess(actor) {
		return nil, ErrProjectAccessDenied
	}
	if project.Status != models.ProjectCompleted {
		return nil, ErrProjectNotCompleted
	}

	if _, err := s.reviewRepo.FindByProjectAndReviewer(projectID, actor.ID); err == nil {
		return nil, ErrDuplicateReview
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}

	var receiverID uint64
	if project.IsOwner(actor) {
		if project.ProviderID == nil {
			return nil, ErrNoCounterparty
		}
		receiverID = *project.ProviderID
	} else {
		receiverID = project.UserID
	}

	review := &models.Review{
		ProjectID:  projectID,
		ReviewerID: actor.ID,
		ReceiverID: receiverID,
		Rating:     rating,
		Comment:    comment,
		Hidden:     false,
	}

	if err := s.reviewRepo.Create(review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return review, nil
}

// ToggleVisibility flips a review's hidden flag. Only the receiver may do so.
func (s *ReviewService) ToggleVisibility(actor *models.User, reviewID uint64) (*models.Review, error) {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to find review: %w", err)
	}

	if review.ReceiverID != actor.ID {
		return nil, ErrNotReviewReceiver
	}

	review.Hidden = !review.Hidden
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	return review, nil
}

// ListForProject returns a project's reviews. Hidden reviews are visible only
// to their own receiver; actor may be nil for anonymous callers.
func (s *ReviewService) ListForProject(actor *models.User, projectID uint64) ([]models.Review, error) {
	reviews, err := s.reviewRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	visible := make([]models.Review, 0, len(reviews))
	for _, review := range reviews {
		if !review.Hidden || (actor != nil && actor.ID == review.ReceiverID) {
			visible = append(visible, review)
		}
	}

	return visible, nil
}

// ListForUser returns the reviews a user has received. Hidden reviews are
// included only when the user asks about themself.
func (s *ReviewService) ListForUser(userID uint64, actor *models.User) ([]models.Review, error) {
	includeHidden := actor != nil && actor.ID == userID

	reviews, err := s.reviewRepo.ListByReceiver(userID, includeHidden)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}

// isNotFound reports whether err is the store's record-not-found.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
