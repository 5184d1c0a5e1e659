package dto

import (
	"time"

	"github.com/AnneAnotherThing/hivenow-app/internal/models"
)

// ReviewDTO represents a review in API responses
type ReviewDTO struct {
	ID         uint64         `json:"id"`
	ProjectID  uint64         `json:"project_id"`
	ReviewerID uint64         `json:"reviewer_id"`
	ReceiverID uint64         `json:"receiver_id"`
	Rating     int            `json:"rating"`
	Comment    string         `json:"comment,omitempty"`
	Hidden     bool           `json:"hidden"`
	CreatedAt  time.Time      `json:"created_at"`
	Reviewer   *PublicUserDTO `json:"reviewer,omitempty"`
}

// ToReviewDTO converts a Review model to ReviewDTO
func ToReviewDTO(review models.Review) ReviewDTO {
	dto := ReviewDTO{
		ID:         review.ID,
		ProjectID:  review.ProjectID,
		ReviewerID: review.ReviewerID,
		ReceiverID: review.ReceiverID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		Hidden:     review.Hidden,
		CreatedAt:  review.CreatedAt,
	}

	if review.Reviewer.ID != 0 {
		reviewer := ToPublicUserDTO(review.Reviewer)
		dto.Reviewer = &reviewer
	}

	return dto
}

// ToReviewDTOs converts a slice of reviews
func ToReviewDTOs(reviews []models.Review) []ReviewDTO {
	items := make([]ReviewDTO, len(reviews))
	for i, review := range reviews {
		items[i] = ToReviewDTO(review)
	}
	return items
}
