package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/thepetra/petra/internal/metrics"
	"go.uber.org/zap"
)

// Store persists plans, subscriptions and payments. Lookups return nil, nil
// when nothing matches.
type Store interface {
	ListActivePlans(ctx context.Context) ([]Plan, error)
	GetActivePlan(ctx context.Context, id string) (*Plan, error)
	SetPlanGatewayID(ctx context.Context, planID string, cycle Cycle, gatewayPlanID string) error
	GetGatewayCustomerID(ctx context.Context, userID string) (string, error)
	SetGatewayCustomerID(ctx context.Context, userID, customerID string) error
	CreateSubscription(ctx context.Context, sub *Subscription) error
	GetActiveSubscription(ctx context.Context, userID string) (*Subscription, error)
	GetSubscriptionByGatewayID(ctx context.Context, gatewayID string) (*Subscription, error)
	UpdateSubscriptionStatus(ctx context.Context, id string, status Status, period *Period) error
	InsertPayment(ctx context.Context, p *Payment) error
}

// Options configures a Service.
type Options struct {
	Store         Store
	Gateway       Gateway // nil disables checkout
	KeySecret     string
	WebhookSecret string
	Logger        *zap.Logger
}

// Service implements plan listing, checkout, webhook processing and
// payment checks for paid features.
type Service struct {
	store         Store
	gateway       Gateway
	keySecret     string
	webhookSecret string
	logger        *zap.Logger
	now           func() time.Time
}

// NewService creates a Service.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:         opts.Store,
		gateway:       opts.Gateway,
		keySecret:     opts.KeySecret,
		webhookSecret: opts.WebhookSecret,
		logger:        logger,
		now:           time.Now,
	}
}

// Plans lists active plans, cheapest first.
func (s *Service) Plans(ctx context.Context) ([]Plan, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	plans, err := s.store.ListActivePlans(ctx)
	if err != nil {
		return nil, err
	}
	if plans == nil {
		plans = []Plan{}
	}
	return plans, nil
}

// Subscribe creates a pending subscription for the customer. It becomes
// active when the gateway reports the first charge.
func (s *Service) Subscribe(ctx context.Context, c Customer, planID string, cycle Cycle) (*Checkout, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	if s.gateway == nil {
		return nil, ErrPaymentsDisabled
	}
	if cycle != CycleYearly {
		cycle = CycleMonthly
	}

	plan, err := s.store.GetActivePlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	customerID, err := s.customerID(ctx, c)
	if err != nil {
		return nil, err
	}
	gatewayPlanID, err := s.gatewayPlanID(ctx, plan, cycle)
	if err != nil {
		return nil, err
	}

	now := s.now()
	totalCount, periodEnd := 999, now.AddDate(0, 1, 0)
	if cycle == CycleYearly {
		totalCount, periodEnd = 12, now.AddDate(1, 0, 0)
	}

	gs, err := s.gateway.CreateSubscription(ctx, SubscriptionRequest{
		PlanID:     gatewayPlanID,
		CustomerID: customerID,
		TotalCount: totalCount,
		StartAt:    now.Add(time.Minute),
		Notes:      map[string]string{"user_id": c.UserID, "plan_id": plan.ID},
	})
	if err != nil {
		return nil, err
	}

	sub := &Subscription{
		UserID:                c.UserID,
		PlanID:                plan.ID,
		GatewaySubscriptionID: gs.ID,
		GatewayCustomerID:     customerID,
		Status:                StatusPending,
		CurrentPeriodStart:    now,
		CurrentPeriodEnd:      periodEnd,
	}
	if err := s.store.CreateSubscription(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}

	s.logger.Info("subscription created",
		zap.String("user_id", c.UserID),
		zap.String("plan_id", plan.ID),
		zap.String("cycle", string(cycle)),
		zap.String("gateway_subscription_id", gs.ID))

	return &Checkout{Subscription: sub, Gateway: gs, CheckoutURL: gs.ShortURL}, nil
}

func (s *Service) customerID(ctx context.Context, c Customer) (string, error) {
	id, err := s.store.GetGatewayCustomerID(ctx, c.UserID)
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}
	if id, err = s.gateway.CreateCustomer(ctx, c); err != nil {
		return "", err
	}
	if err := s.store.SetGatewayCustomerID(ctx, c.UserID, id); err != nil {
		return "", fmt.Errorf("failed to save customer id: %w", err)
	}
	return id, nil
}

func (s *Service) gatewayPlanID(ctx context.Context, plan *Plan, cycle Cycle) (string, error) {
	if id := plan.gatewayPlanID(cycle); id != "" {
		return id, nil
	}
	interval := 1
	if cycle == CycleYearly {
		interval = 12
	}
	id, err := s.gateway.CreatePlan(ctx, PlanRequest{Name: plan.Name, Amount: plan.price(cycle), Interval: interval})
	if err != nil {
		return "", err
	}
	if err := s.store.SetPlanGatewayID(ctx, plan.ID, cycle, id); err != nil {
		return "", fmt.Errorf("failed to save gateway plan id: %w", err)
	}
	return id, nil
}

// MySubscription returns the user's active subscription, or nil.
func (s *Service) MySubscription(ctx context.Context, userID string) (*Subscription, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	return s.store.GetActiveSubscription(ctx, userID)
}

// VerifyPayment checks a checkout payment signature.
func (s *Service) VerifyPayment(p PaymentProof) error {
	return VerifyPaymentSignature(p, s.keySecret)
}

// ExportBasis records what entitled a caller to a paid export.
type ExportBasis int

// ExportBasis values
const (
	ExportDenied ExportBasis = iota
	ExportBySubscription
	ExportByPayment
)

// AuthorizeExport decides whether a user may export a paid guide: an
// active subscription or a verified payment is required. userID may be
// empty for anonymous callers. An active subscription wins over a payment
// proof sent alongside it.
func (s *Service) AuthorizeExport(ctx context.Context, userID string, proof *PaymentProof) (ExportBasis, error) {
	if userID != "" && s.store != nil {
		sub, err := s.store.GetActiveSubscription(ctx, userID)
		if err != nil {
			return ExportDenied, err
		}
		if sub != nil {
			return ExportBySubscription, nil
		}
	}
	if proof == nil || proof.PaymentID == "" {
		return ExportDenied, ErrPaymentRequired
	}
	if err := VerifyPaymentSignature(*proof, s.keySecret); err != nil {
		return ExportDenied, ErrInvalidPayment
	}
	if s.gateway != nil {
		payment, err := s.gateway.FetchPayment(ctx, proof.PaymentID)
		if err != nil {
			return ExportDenied, err
		}
		if !payment.Captured() {
			return ExportDenied, ErrInvalidPayment
		}
	}
	return ExportByPayment, nil
}

type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Subscription *struct {
			Entity GatewaySubscription `json:"entity"`
		} `json:"subscription"`
		Payment *struct {
			Entity GatewayPayment `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// HandleWebhook verifies and applies a gateway webhook. It returns the
// event name.
func (s *Service) HandleWebhook(ctx context.Context, body []byte, signature string) (string, error) {
	if err := VerifyWebhookSignature(body, signature, s.webhookSecret); err != nil {
		metrics.WebhookEvents.WithLabelValues("unknown", "rejected").Inc()
		return "", err
	}

	var ev webhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		metrics.WebhookEvents.WithLabelValues("unknown", "rejected").Inc()
		return "", fmt.Errorf("failed to decode webhook: %w", err)
	}

	log := s.logger.With(zap.String("event", ev.Event))
	if err := s.apply(ctx, &ev, log); err != nil {
		metrics.WebhookEvents.WithLabelValues(ev.Event, "error").Inc()
		return ev.Event, err
	}
	metrics.WebhookEvents.WithLabelValues(ev.Event, "ok").Inc()
	return ev.Event, nil
}

func (s *Service) apply(ctx context.Context, ev *webhookEvent, log *zap.Logger) error {
	if s.store == nil {
		log.Warn("webhook ignored: no subscription storage")
		return nil
	}
	switch ev.Event {
	case "subscription.activated", "subscription.charged":
		return s.setStatus(ctx, ev, StatusActive, true, log)
	case "subscription.cancelled":
		return s.setStatus(ctx, ev, StatusCancelled, false, log)
	case "subscription.paused":
		return s.setStatus(ctx, ev, StatusPaused, false, log)
	case "subscription.resumed":
		return s.setStatus(ctx, ev, StatusActive, false, log)
	case "payment.captured":
		return s.recordPayment(ctx, ev, "succeeded", log)
	case "payment.failed":
		return s.recordPayment(ctx, ev, "failed", log)
	default:
		log.Info("unhandled webhook event")
		return nil
	}
}

func (s *Service) setStatus(ctx context.Context, ev *webhookEvent, status Status, withPeriod bool, log *zap.Logger) error {
	if ev.Payload.Subscription == nil {
		return fmt.Errorf("%s event has no subscription entity", ev.Event)
	}
	entity := ev.Payload.Subscription.Entity

	sub, err := s.store.GetSubscriptionByGatewayID(ctx, entity.ID)
	if err != nil {
		return err
	}
	if sub == nil {
		log.Warn("webhook for unknown subscription", zap.String("gateway_subscription_id", entity.ID))
		return nil
	}

	var period *Period
	if withPeriod {
		period = entity.Period()
	}
	if err := s.store.UpdateSubscriptionStatus(ctx, sub.ID, status, period); err != nil {
		return err
	}
	log.Info("subscription updated", zap.String("subscription_id", sub.ID), zap.String("status", string(status)))
	return nil
}

func (s *Service) recordPayment(ctx context.Context, ev *webhookEvent, status string, log *zap.Logger) error {
	if ev.Payload.Payment == nil {
		return fmt.Errorf("%s event has no payment entity", ev.Event)
	}
	entity := ev.Payload.Payment.Entity

	if entity.SubscriptionID == "" {
		log.Info("payment not linked to a subscription", zap.String("payment_id", entity.ID))
		return nil
	}
	sub, err := s.store.GetSubscriptionByGatewayID(ctx, entity.SubscriptionID)
	if err != nil {
		return err
	}
	if sub == nil {
		log.Warn("payment for unknown subscription", zap.String("gateway_subscription_id", entity.SubscriptionID))
		return nil
	}

	err = s.store.InsertPayment(ctx, &Payment{
		UserID:           sub.UserID,
		SubscriptionID:   sub.ID,
		GatewayPaymentID: entity.ID,
		GatewayOrderID:   entity.OrderID,
		Amount:           entity.Amount,
		Currency:         entity.Currency,
		Status:           status,
		Method:           entity.Method,
	})
	if err != nil {
		return err
	}

	if status == "failed" {
		return s.store.UpdateSubscriptionStatus(ctx, sub.ID, StatusPastDue, nil)
	}
	return nil
}
