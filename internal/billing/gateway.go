package billing

import (
	"context"
	"fmt"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
)

// Gateway is the payment provider.
type Gateway interface {
	CreateCustomer(ctx context.Context, c Customer) (string, error)
	CreatePlan(ctx context.Context, req PlanRequest) (string, error)
	CreateSubscription(ctx context.Context, req SubscriptionRequest) (*GatewaySubscription, error)
	FetchPayment(ctx context.Context, paymentID string) (*GatewayPayment, error)
}

// PlanRequest describes a gateway plan. Amount is in paise.
type PlanRequest struct {
	Name     string
	Amount   int64
	Interval int
}

// SubscriptionRequest describes a gateway subscription.
type SubscriptionRequest struct {
	PlanID     string
	CustomerID string
	TotalCount int
	StartAt    time.Time
	Notes      map[string]string
}

// GatewaySubscription is the provider's view of a subscription.
type GatewaySubscription struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	ShortURL     string `json:"short_url"`
	CurrentStart int64  `json:"current_start,omitempty"`
	CurrentEnd   int64  `json:"current_end,omitempty"`
}

// Period converts the provider's unix period bounds, if both are present.
func (s *GatewaySubscription) Period() *Period {
	if s.CurrentStart == 0 || s.CurrentEnd == 0 {
		return nil
	}
	return &Period{Start: time.Unix(s.CurrentStart, 0).UTC(), End: time.Unix(s.CurrentEnd, 0).UTC()}
}

// GatewayPayment is the provider's view of a payment.
type GatewayPayment struct {
	ID             string `json:"id"`
	OrderID        string `json:"order_id"`
	SubscriptionID string `json:"subscription_id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Status         string `json:"status"`
	Method         string `json:"method"`
}

// Captured reports whether the payment has been captured.
func (p *GatewayPayment) Captured() bool {
	return p.Status == "captured"
}

// RazorpayGateway implements Gateway with the Razorpay API.
type RazorpayGateway struct {
	client *razorpay.Client
}

// NewRazorpay creates a gateway for the given key pair.
func NewRazorpay(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{client: razorpay.NewClient(keyID, keySecret)}
}

// CreateCustomer implements Gateway. An existing customer with the same
// email is returned instead of failing.
func (g *RazorpayGateway) CreateCustomer(ctx context.Context, c Customer) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := c.Name
	if name == "" {
		name = c.Email
	}
	if name == "" {
		name = "User"
	}
	data := map[string]interface{}{
		"name":          name,
		"fail_existing": "0",
	}
	if c.Email != "" {
		data["email"] = c.Email
	}
	if c.Phone != "" {
		data["contact"] = c.Phone
	}
	resp, err := g.client.Customer.Create(data, nil)
	if err != nil {
		return "", &GatewayError{Op: "create customer", Cause: err}
	}
	return requireID("create customer", resp)
}

// CreatePlan implements Gateway.
func (g *RazorpayGateway) CreatePlan(ctx context.Context, req PlanRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	resp, err := g.client.Plan.Create(map[string]interface{}{
		"period":   "monthly",
		"interval": req.Interval,
		"item": map[string]interface{}{
			"name":     req.Name,
			"amount":   req.Amount,
			"currency": "INR",
		},
	}, nil)
	if err != nil {
		return "", &GatewayError{Op: "create plan", Cause: err}
	}
	return requireID("create plan", resp)
}

// CreateSubscription implements Gateway.
func (g *RazorpayGateway) CreateSubscription(ctx context.Context, req SubscriptionRequest) (*GatewaySubscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	notes := make(map[string]interface{}, len(req.Notes))
	for k, v := range req.Notes {
		notes[k] = v
	}
	data := map[string]interface{}{
		"plan_id":         req.PlanID,
		"customer_notify": 1,
		"total_count":     req.TotalCount,
		"start_at":        req.StartAt.Unix(),
		"notes":           notes,
	}
	if req.CustomerID != "" {
		data["customer_id"] = req.CustomerID
	}
	resp, err := g.client.Subscription.Create(data, nil)
	if err != nil {
		return nil, &GatewayError{Op: "create subscription", Cause: err}
	}
	sub := subscriptionFromMap(resp)
	if sub.ID == "" {
		return nil, &GatewayError{Op: "create subscription", Cause: fmt.Errorf("response has no id")}
	}
	return sub, nil
}

// FetchPayment implements Gateway.
func (g *RazorpayGateway) FetchPayment(ctx context.Context, paymentID string) (*GatewayPayment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := g.client.Payment.Fetch(paymentID, nil, nil)
	if err != nil {
		return nil, &GatewayError{Op: "fetch payment", Cause: err}
	}
	return paymentFromMap(resp), nil
}

func requireID(op string, resp map[string]interface{}) (string, error) {
	id := stringField(resp, "id")
	if id == "" {
		return "", &GatewayError{Op: op, Cause: fmt.Errorf("response has no id")}
	}
	return id, nil
}

func subscriptionFromMap(m map[string]interface{}) *GatewaySubscription {
	return &GatewaySubscription{
		ID:           stringField(m, "id"),
		Status:       stringField(m, "status"),
		ShortURL:     stringField(m, "short_url"),
		CurrentStart: intField(m, "current_start"),
		CurrentEnd:   intField(m, "current_end"),
	}
}

func paymentFromMap(m map[string]interface{}) *GatewayPayment {
	return &GatewayPayment{
		ID:             stringField(m, "id"),
		OrderID:        stringField(m, "order_id"),
		SubscriptionID: stringField(m, "subscription_id"),
		Amount:         intField(m, "amount"),
		Currency:       stringField(m, "currency"),
		Status:         stringField(m, "status"),
		Method:         stringField(m, "method"),
	}
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

// intField reads a JSON number, which the client decodes as float64.
func intField(m map[string]interface{}, key string) int64 {
	switch v := m[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}
