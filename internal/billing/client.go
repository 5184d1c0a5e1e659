package billing

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is an HTTP implementation of Processor against a Stripe-style API:
// form-encoded requests, bearer authentication, JSON responses.
type Client struct {
	apiURL     string
	secretKey  string
	httpClient *http.Client
}

// NewClient creates a processor client. apiURL has no trailing slash, e.g.
// "https://api.stripe.com/v1".
func NewClient(apiURL, secretKey string) *Client {
	return &Client{
		apiURL:     apiURL,
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type customerResponse struct {
	ID string `json:"id"`
}

type subscriptionResponse struct {
	ID            string `json:"id"`
	LatestInvoice struct {
		PaymentIntent struct {
			ClientSecret string `json:"client_secret"`
		} `json:"payment_intent"`
	} `json:"latest_invoice"`
}

// CreateCustomer registers a customer with the processor
func (c *Client) CreateCustomer(email, name string) (string, error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("name", name)

	var resp customerResponse
	if err := c.post("/customers", form, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// CreateSubscription opens a subscription and expands the payment intent so
// the client secret comes back in one call
func (c *Client) CreateSubscription(customerID, priceID string) (*SubscriptionResult, error) {
	form := url.Values{}
	form.Set("customer", customerID)
	form.Set("items[0][price]", priceID)
	form.Set("payment_behavior", "default_incomplete")
	form.Add("expand[]", "latest_invoice.payment_intent")

	var resp subscriptionResponse
	if err := c.post("/subscriptions", form, &resp); err != nil {
		return nil, err
	}

	return &SubscriptionResult{
		ID:           resp.ID,
		ClientSecret: resp.LatestInvoice.PaymentIntent.ClientSecret,
	}, nil
}

// CancelAtPeriodEnd flags a subscription to lapse instead of renewing
func (c *Client) CancelAtPeriodEnd(subscriptionID string) error {
	form := url.Values{}
	form.Set("cancel_at_period_end", "true")

	return c.post("/subscriptions/"+subscriptionID, form, &struct{}{})
}

func (c *Client) post(path string, form url.Values, out interface{}) error {
	req, err := http.NewRequest(http.MethodPost, c.apiURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("payment processor returned %s for %s", resp.Status, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
