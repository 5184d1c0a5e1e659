package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AnneAnotherThing/hivenow-app/internal/dto"
	apierrors "github.com/AnneAnotherThing/hivenow-app/internal/errors"
	"github.com/AnneAnotherThing/hivenow-app/internal/middleware"
	"github.com/AnneAnotherThing/hivenow-app/internal/models"
	"github.com/AnneAnotherThing/hivenow-app/internal/services"
)

// SubscriptionHandler coordinates subscription-related HTTP handlers.
type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(subscriptionService *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
	}
}

// GetCurrentSubscription returns the authenticated user's current subscription,
// null when they never had one.
func (h *SubscriptionHandler) GetCurrentSubscription(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	sub, err := h.subscriptionService.Current(userID)
	if err != nil {
		respondSubscriptionError(c, err)
		return
	}

	if sub == nil {
		c.JSON(http.StatusOK, gin.H{"subscription": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscription": dto.ToSubscriptionDTO(*sub)})
}

// CreateSubscription opens a subscription at the payment processor and returns
// the client secret needed to confirm payment.
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateSubscriptionRequest struct {
		Tier string `json:"tier" binding:"required,oneof=basic pro enterprise"`
	}

	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid subscription tier")
		return
	}

	result, err := h.subscriptionService.Subscribe(userID, models.SubscriptionTier(req.Tier))
	if err != nil {
		respondSubscriptionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// CancelSubscription flags the current subscription to lapse at period end.
func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.subscriptionService.Cancel(userID); err != nil {
		respondSubscriptionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subscription will be cancelled at the end of the current period",
	})
}

func respondSubscriptionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidTier):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNoSubscription):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrPaymentProcessor):
		apierrors.BadGateway(c, "Payment processor request failed")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
