package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/thepetra/petra/internal/billing"
)

const planColumns = `id, name, description, price_monthly, price_yearly, features, is_active,
	COALESCE(razorpay_plan_id, ''), COALESCE(razorpay_yearly_plan_id, ''), created_at`

func scanPlan(row pgx.Row) (*billing.Plan, error) {
	var p billing.Plan
	var features []byte
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.PriceMonthly, &p.PriceYearly, &features,
		&p.Active, &p.GatewayPlanID, &p.GatewayYearlyPlanID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(features, &p.Features); err != nil {
		return nil, fmt.Errorf("failed to decode plan features: %w", err)
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	return &p, nil
}

// ListActivePlans returns active plans ordered by monthly price
func (db *DB) ListActivePlans(ctx context.Context) ([]billing.Plan, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+planColumns+` FROM subscription_plans WHERE is_active ORDER BY price_monthly ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var plans []billing.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plans: %w", err)
	}
	return plans, nil
}

// GetActivePlan retrieves an active plan by ID
func (db *DB) GetActivePlan(ctx context.Context, id string) (*billing.Plan, error) {
	p, err := scanPlan(db.pool.QueryRow(ctx,
		`SELECT `+planColumns+` FROM subscription_plans WHERE id = $1 AND is_active`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return p, nil
}

// SetPlanGatewayID stores the gateway plan created for a billing cycle
func (db *DB) SetPlanGatewayID(ctx context.Context, planID string, cycle billing.Cycle, gatewayPlanID string) error {
	query := `UPDATE subscription_plans SET razorpay_plan_id = $1 WHERE id = $2`
	if cycle == billing.CycleYearly {
		query = `UPDATE subscription_plans SET razorpay_yearly_plan_id = $1 WHERE id = $2`
	}
	if _, err := db.pool.Exec(ctx, query, gatewayPlanID, planID); err != nil {
		return fmt.Errorf("failed to set gateway plan id: %w", err)
	}
	return nil
}

const subscriptionColumns = `s.id, s.user_id, s.plan_id, s.razorpay_subscription_id, s.razorpay_customer_id,
	s.status, s.current_period_start, s.current_period_end, s.created_at, s.updated_at`

func scanSubscription(row pgx.Row) (*billing.Subscription, error) {
	var sub billing.Subscription
	var id, userID uuid.UUID
	var status string
	err := row.Scan(&id, &userID, &sub.PlanID, &sub.GatewaySubscriptionID, &sub.GatewayCustomerID,
		&status, &sub.CurrentPeriodStart, &sub.CurrentPeriodEnd, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return nil, err
	}
	sub.ID, sub.UserID, sub.Status = id.String(), userID.String(), billing.Status(status)
	return &sub, nil
}

// CreateSubscription inserts a subscription and fills in its ID and timestamps
func (db *DB) CreateSubscription(ctx context.Context, sub *billing.Subscription) error {
	userID, err := uuid.Parse(sub.UserID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", sub.UserID, err)
	}
	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO subscriptions (user_id, plan_id, razorpay_subscription_id, razorpay_customer_id,
		                            status, current_period_start, current_period_end)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		userID, sub.PlanID, sub.GatewaySubscriptionID, sub.GatewayCustomerID,
		string(sub.Status), sub.CurrentPeriodStart, sub.CurrentPeriodEnd,
	).Scan(&id, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	sub.ID = id.String()
	return nil
}

// GetActiveSubscription returns the user's active subscription with its
// plan, or nil.
func (db *DB) GetActiveSubscription(ctx context.Context, userID string) (*billing.Subscription, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, nil
	}
	sub, err := scanSubscription(db.pool.QueryRow(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions s
		 WHERE s.user_id = $1 AND s.status = 'active'
		 ORDER BY s.current_period_end DESC
		 LIMIT 1`, uid))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active subscription: %w", err)
	}

	plan, err := scanPlan(db.pool.QueryRow(ctx,
		`SELECT `+planColumns+` FROM subscription_plans WHERE id = $1`, sub.PlanID))
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to get subscription plan: %w", err)
	}
	sub.Plan = plan
	return sub, nil
}

// GetSubscriptionByGatewayID retrieves a subscription by its gateway ID
func (db *DB) GetSubscriptionByGatewayID(ctx context.Context, gatewayID string) (*billing.Subscription, error) {
	sub, err := scanSubscription(db.pool.QueryRow(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions s WHERE s.razorpay_subscription_id = $1`, gatewayID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return sub, nil
}

// UpdateSubscriptionStatus sets a subscription's status and, when period is
// non-nil, its current billing period.
func (db *DB) UpdateSubscriptionStatus(ctx context.Context, id string, status billing.Status, period *billing.Period) error {
	sid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid subscription id %q: %w", id, err)
	}
	if period != nil {
		_, err = db.pool.Exec(ctx,
			`UPDATE subscriptions
			 SET status = $1, current_period_start = $2, current_period_end = $3, updated_at = NOW()
			 WHERE id = $4`,
			string(status), period.Start, period.End, sid)
	} else {
		_, err = db.pool.Exec(ctx,
			`UPDATE subscriptions SET status = $1, updated_at = NOW() WHERE id = $2`,
			string(status), sid)
	}
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	return nil
}

// InsertPayment records a gateway payment
func (db *DB) InsertPayment(ctx context.Context, p *billing.Payment) error {
	userID, err := uuid.Parse(p.UserID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", p.UserID, err)
	}
	var subID *uuid.UUID
	if p.SubscriptionID != "" {
		id, err := uuid.Parse(p.SubscriptionID)
		if err != nil {
			return fmt.Errorf("invalid subscription id %q: %w", p.SubscriptionID, err)
		}
		subID = &id
	}
	currency := p.Currency
	if currency == "" {
		currency = "INR"
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO payments (user_id, subscription_id, razorpay_payment_id, razorpay_order_id,
		                       amount, currency, status, payment_method)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		userID, subID, p.GatewayPaymentID, p.GatewayOrderID, p.Amount, currency, p.Status, p.Method,
	).Scan(&id, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	p.ID = id.String()
	return nil
}

// RecordGuideExport stores a completed guide export
func (db *DB) RecordGuideExport(ctx context.Context, e *GuideExport) error {
	err := db.pool.QueryRow(ctx,
		`INSERT INTO guide_exports (user_id, email, pet_name, razorpay_payment_id, subscriber)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		e.UserID, e.Email, e.PetName, e.PaymentID, e.Subscriber,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record guide export: %w", err)
	}
	return nil
}

var _ billing.Store = (*DB)(nil)
