package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/AnneAnotherThing/hivenow-app/internal/billing"
	"github.com/AnneAnotherThing/hivenow-app/internal/models"
	"github.com/AnneAnotherThing/hivenow-app/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidTier      = errors.New("unknown subscription tier")
	ErrNoSubscription   = errors.New("no subscription found")
	ErrPaymentProcessor = errors.New("payment processor request failed")
)

// SubscriptionService owns the subscription gate and the conversation with the
// payment processor.
type SubscriptionService struct {
	subRepo   repository.SubscriptionRepository
	userRepo  repository.UserRepository
	processor billing.Processor
	prices    map[models.SubscriptionTier]string
}

// NewSubscriptionService creates a new SubscriptionService. prices maps each
// tier to its processor price id.
func NewSubscriptionService(
	subRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	processor billing.Processor,
	prices map[models.SubscriptionTier]string,
) *SubscriptionService {
	return &SubscriptionService{
		subRepo:   subRepo,
		userRepo:  userRepo,
		processor: processor,
		prices:    prices,
	}
}

// Current returns the user's current subscription, nil when they never had
// one. A user's history accumulates rows; current means most recently created.
func (s *SubscriptionService) Current(userID uint64) (*models.Subscription, error) {
	sub, err := s.subRepo.FindCurrentByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}
	return sub, nil
}

// HasActive reports whether the user's current subscription is active.
func (s *SubscriptionService) HasActive(userID uint64) (bool, error) {
	sub, err := s.Current(userID)
	if err != nil {
		return false, err
	}
	return sub != nil && sub.Status == models.SubscriptionActive, nil
}

// SubscribeResult is handed back to the client to confirm payment.
type SubscribeResult struct {
	SubscriptionID string `json:"subscription_id"`
	ClientSecret   string `json:"client_secret"`
}

// Subscribe opens a subscription at the processor and records it locally. The
// processor customer is created on first use and remembered on the user row.
func (s *SubscriptionService) Subscribe(userID uint64, tier models.SubscriptionTier) (*SubscribeResult, error) {
	if !models.ValidTier(tier) {
		return nil, ErrInvalidTier
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.BillingCustomerID == "" {
		name := user.Username
		if user.FirstName != "" && user.LastName != "" {
			name = user.FirstName + " " + user.LastName
		}
		customerID, err := s.processor.CreateCustomer(user.Email, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPaymentProcessor, err)
		}
		user.BillingCustomerID = customerID
		if err := s.userRepo.Update(user); err != nil {
			return nil, fmt.Errorf("failed to store billing customer id: %w", err)
		}
	}

	result, err := s.processor.CreateSubscription(user.BillingCustomerID, s.prices[tier])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentProcessor, err)
	}

	now := time.Now()
	sub := &models.Subscription{
		UserID:             user.ID,
		Tier:               tier,
		Status:             models.SubscriptionActive,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   now.AddDate(0, 1, 0),
		CancelAtPeriodEnd:  false,
	}
	if err := s.subRepo.Create(sub); err != nil {
		return nil, fmt.Errorf("failed to store subscription: %w", err)
	}

	user.BillingSubscriptionID = result.ID
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to store billing subscription id: %w", err)
	}

	return &SubscribeResult{
		SubscriptionID: result.ID,
		ClientSecret:   result.ClientSecret,
	}, nil
}

// Cancel flags the user's current subscription to lapse at period end.
func (s *SubscriptionService) Cancel(userID uint64) error {
	sub, err := s.Current(userID)
	if err != nil {
		return err
	}
	if sub == nil {
		return ErrNoSubscription
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}

	if user.BillingSubscriptionID != "" {
		if err := s.processor.CancelAtPeriodEnd(user.BillingSubscriptionID); err != nil {
			return fmt.Errorf("%w: %v", ErrPaymentProcessor, err)
		}
	}

	sub.CancelAtPeriodEnd = true
	if err := s.subRepo.Update(sub); err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	return nil
}
