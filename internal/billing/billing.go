// Package billing manages subscription plans, gateway subscriptions and
// payment verification.
package billing

import "time"

// Status is the lifecycle state of a subscription.
type Status string

// Status values
const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusPaused    Status = "paused"
	StatusPastDue   Status = "past_due"
)

// Cycle is a billing cycle.
type Cycle string

// Cycle values
const (
	CycleMonthly Cycle = "monthly"
	CycleYearly  Cycle = "yearly"
)

// Plan is a subscription plan. Prices are in paise.
type Plan struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description,omitempty"`
	PriceMonthly        int64     `json:"price_monthly"`
	PriceYearly         int64     `json:"price_yearly,omitempty"`
	Features            []string  `json:"features"`
	Active              bool      `json:"is_active"`
	GatewayPlanID       string    `json:"-"`
	GatewayYearlyPlanID string    `json:"-"`
	CreatedAt           time.Time `json:"created_at"`
}

// price returns the amount charged per cycle.
func (p *Plan) price(c Cycle) int64 {
	if c == CycleYearly && p.PriceYearly > 0 {
		return p.PriceYearly
	}
	return p.PriceMonthly
}

func (p *Plan) gatewayPlanID(c Cycle) string {
	if c == CycleYearly {
		return p.GatewayYearlyPlanID
	}
	return p.GatewayPlanID
}

// Subscription is a user's subscription to a plan.
type Subscription struct {
	ID                    string    `json:"id"`
	UserID                string    `json:"user_id"`
	PlanID                string    `json:"plan_id"`
	GatewaySubscriptionID string    `json:"razorpay_subscription_id"`
	GatewayCustomerID     string    `json:"razorpay_customer_id"`
	Status                Status    `json:"status"`
	CurrentPeriodStart    time.Time `json:"current_period_start"`
	CurrentPeriodEnd      time.Time `json:"current_period_end"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
	Plan                  *Plan     `json:"subscription_plans,omitempty"`
}

// Period is a billing period reported by the gateway.
type Period struct {
	Start time.Time
	End   time.Time
}

// Payment is a recorded gateway payment.
type Payment struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	SubscriptionID   string    `json:"subscription_id"`
	GatewayPaymentID string    `json:"razorpay_payment_id"`
	GatewayOrderID   string    `json:"razorpay_order_id,omitempty"`
	Amount           int64     `json:"amount"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`
	Method           string    `json:"payment_method,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// Customer identifies the paying user.
type Customer struct {
	UserID string
	Name   string
	Email  string
	Phone  string
}

// Checkout is the result of creating a subscription.
type Checkout struct {
	Subscription *Subscription        `json:"subscription"`
	Gateway      *GatewaySubscription `json:"razorpaySubscription"`
	CheckoutURL  string               `json:"checkoutUrl"`
}

// PaymentProof is the signed payment handed back by the checkout widget.
type PaymentProof struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}
