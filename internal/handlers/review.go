package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AnneAnotherThing/hivenow-app/internal/dto"
	apierrors "github.com/AnneAnotherThing/hivenow-app/internal/errors"
	"github.com/AnneAnotherThing/hivenow-app/internal/services"
)

// ReviewHandler coordinates review-related HTTP handlers.
type ReviewHandler struct {
	reviewService *services.ReviewService
	authService   *services.AuthService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService *services.ReviewService, authService *services.AuthService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		authService:   authService,
	}
}

// SubmitReview creates a review on a completed project.
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	actor, ok := resolveActor(c, h.authService)
	if !ok {
		return
	}

	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	type SubmitReviewRequest struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment"`
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Rating must be an integer between 1 and 5")
		return
	}

	review, err := h.reviewService.Submit(actor, projectID, req.Rating, req.Comment)
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": dto.ToReviewDTO(*review)})
}

// ListProjectReviews returns a project's reviews. Hidden reviews show up only
// for their receiver.
func (h *ReviewHandler) ListProjectReviews(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	actor := optionalActor(c, h.authService)

	reviews, err := h.reviewService.ListForProject(actor, projectID)
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": dto.ToReviewDTOs(reviews)})
}

// ListUserReviews returns the reviews a user has received.
func (h *ReviewHandler) ListUserReviews(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	actor := optionalActor(c, h.authService)

	reviews, err := h.reviewService.ListForUser(userID, actor)
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": dto.ToReviewDTOs(reviews)})
}

// ToggleReviewVisibility flips a review between hidden and visible.
func (h *ReviewHandler) ToggleReviewVisibility(c *gin.Context) {
	actor, ok := resolveActor(c, h.authService)
	if !ok {
		return
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid review ID")
		return
	}

	review, err := h.reviewService.ToggleVisibility(actor, reviewID)
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": dto.ToReviewDTO(*review)})
}

func respondReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrReviewNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrProjectAccessDenied),
		errors.Is(err, services.ErrNotReviewReceiver):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrProjectNotCompleted),
		errors.Is(err, services.ErrDuplicateReview),
		errors.Is(err, services.ErrNoCounterparty):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidRating):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
