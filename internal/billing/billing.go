// Package billing talks to the payment processor. The processor is opaque to
// the rest of the application: it hands out customer ids, subscription ids and
// client secrets, and everything else about payment collection happens on its
// side.
package billing

// SubscriptionResult is what the processor returns when a subscription is
// opened. The client secret goes back to the browser to confirm payment.
type SubscriptionResult struct {
	ID           string
	ClientSecret string
}

// Processor is the contract the subscription service depends on.
type Processor interface {
	// CreateCustomer registers a customer with the processor and returns its id.
	CreateCustomer(email, name string) (string, error)

	// CreateSubscription opens a subscription for a customer on a price.
	CreateSubscription(customerID, priceID string) (*SubscriptionResult, error)

	// CancelAtPeriodEnd flags a subscription to lapse at the end of the
	// current billing period instead of renewing.
	CancelAtPeriodEnd(subscriptionID string) error
}
