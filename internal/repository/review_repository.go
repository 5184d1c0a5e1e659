package repository

import (
	"github.com/AnneAnotherThing/hivenow-app/internal/models"
	"gorm.io/gorm"
)

// GormReviewRepository is a GORM implementation of ReviewRepository
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &GormReviewRepository{db: db}
}

// Create creates a new review
func (r *GormReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// FindByID finds a review by ID
func (r *GormReviewRepository) FindByID(id uint64) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// FindByProjectAndReviewer finds the review a user left on a project, if any
func (r *GormReviewRepository) FindByProjectAndReviewer(projectID, reviewerID uint64) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("project_id = ? AND reviewer_id = ?", projectID, reviewerID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByProject returns all reviews on a project, newest first
func (r *GormReviewRepository) ListByProject(projectID uint64) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("project_id = ?", projectID).
		Order("created_at DESC, id DESC").
		Preload("Reviewer").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListByReceiver returns reviews received by a user, newest first
func (r *GormReviewRepository) ListByReceiver(receiverID uint64, includeHidden bool) ([]models.Review, error) {
	query := r.db.Where("receiver_id = ?", receiverID)
	if !includeHidden {
		query = query.Where("hidden = ?", false)
	}

	var reviews []models.Review
	err := query.Order("created_at DESC, id DESC").
		Preload("Reviewer").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// Update persists changes to a review
func (r *GormReviewRepository) Update(review *models.Review) error {
	return r.db.Save(review).Error
}
