package billing

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thepetra/petra/internal/metrics"
)

var (
	basicPlan   = Plan{ID: "basic", Name: "Basic", PriceMonthly: 49900, Active: true}
	premiumPlan = Plan{ID: "premium", Name: "Premium", PriceMonthly: 99900, PriceYearly: 999900, Active: true}
	retiredPlan = Plan{ID: "retired", Name: "Retired", PriceMonthly: 100, Active: false}
)

var fixedNow = time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)

func newTestService(store *memStore, gw Gateway) *Service {
	s := NewService(Options{Store: store, Gateway: gw, KeySecret: "keysecret", WebhookSecret: "whsec"})
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestPlans(t *testing.T) {
	s := newTestService(newMemStore(premiumPlan, retiredPlan, basicPlan), nil)

	plans, err := s.Plans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "basic", plans[0].ID)
	assert.Equal(t, "premium", plans[1].ID)

	empty, err := newTestService(newMemStore(), nil).Plans(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestSubscribe_Monthly(t *testing.T) {
	store := newMemStore(basicPlan)
	gw := &fakeGateway{}
	s := newTestService(store, gw)
	cust := Customer{UserID: "u1", Name: "Anu", Email: "anu@example.com"}

	checkout, err := s.Subscribe(context.Background(), cust, "basic", CycleMonthly)
	require.NoError(t, err)

	assert.Equal(t, "https://rzp.io/i/rp_sub_1", checkout.CheckoutURL)
	sub := checkout.Subscription
	assert.Equal(t, StatusPending, sub.Status)
	assert.Equal(t, "cust_1", sub.GatewayCustomerID)
	assert.Equal(t, "rp_sub_1", sub.GatewaySubscriptionID)
	assert.Equal(t, fixedNow, sub.CurrentPeriodStart)
	assert.Equal(t, fixedNow.AddDate(0, 1, 0), sub.CurrentPeriodEnd)

	require.Len(t, gw.plans, 1)
	assert.Equal(t, PlanRequest{Name: "Basic", Amount: 49900, Interval: 1}, gw.plans[0])

	require.Len(t, gw.subscriptions, 1)
	req := gw.subscriptions[0]
	assert.Equal(t, "plan_1", req.PlanID)
	assert.Equal(t, 999, req.TotalCount)
	assert.Equal(t, fixedNow.Add(time.Minute), req.StartAt)
	assert.Equal(t, map[string]string{"user_id": "u1", "plan_id": "basic"}, req.Notes)

	// Customer and gateway plan are reused on the next checkout.
	_, err = s.Subscribe(context.Background(), cust, "basic", CycleMonthly)
	require.NoError(t, err)
	assert.Len(t, gw.customers, 1)
	assert.Len(t, gw.plans, 1)
	assert.Len(t, gw.subscriptions, 2)
}

func TestSubscribe_Yearly(t *testing.T) {
	store := newMemStore(premiumPlan)
	gw := &fakeGateway{}
	s := newTestService(store, gw)

	checkout, err := s.Subscribe(context.Background(), Customer{UserID: "u1"}, "premium", CycleYearly)
	require.NoError(t, err)

	assert.Equal(t, PlanRequest{Name: "Premium", Amount: 999900, Interval: 12}, gw.plans[0])
	assert.Equal(t, 12, gw.subscriptions[0].TotalCount)
	assert.Equal(t, fixedNow.AddDate(1, 0, 0), checkout.Subscription.CurrentPeriodEnd)
	assert.Equal(t, "plan_1", store.plans["premium"].GatewayYearlyPlanID)
	assert.Empty(t, store.plans["premium"].GatewayPlanID)
}

func TestSubscribe_Errors(t *testing.T) {
	ctx := context.Background()
	cust := Customer{UserID: "u1"}

	_, err := newTestService(newMemStore(basicPlan), nil).Subscribe(ctx, cust, "basic", CycleMonthly)
	assert.ErrorIs(t, err, ErrPaymentsDisabled)

	s := newTestService(newMemStore(basicPlan, retiredPlan), &fakeGateway{})
	_, err = s.Subscribe(ctx, cust, "missing", CycleMonthly)
	assert.ErrorIs(t, err, ErrPlanNotFound)
	_, err = s.Subscribe(ctx, cust, "retired", CycleMonthly)
	assert.ErrorIs(t, err, ErrPlanNotFound)

	boom := &GatewayError{Op: "create customer", Cause: errors.New("timeout")}
	store := newMemStore(basicPlan)
	_, err = newTestService(store, &fakeGateway{err: boom}).Subscribe(ctx, cust, "basic", CycleMonthly)
	var ge *GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Empty(t, store.subscriptions)
}

func webhookBody(event, entityKey, entity string) []byte {
	return []byte(fmt.Sprintf(`{"event":%q,"payload":{%q:{"entity":%s}}}`, event, entityKey, entity))
}

func TestHandleWebhook_SubscriptionLifecycle(t *testing.T) {
	store := newMemStore(basicPlan)
	s := newTestService(store, &fakeGateway{})
	ctx := context.Background()

	checkout, err := s.Subscribe(ctx, Customer{UserID: "u1"}, "basic", CycleMonthly)
	require.NoError(t, err)
	sub := checkout.Subscription

	send := func(event string) {
		t.Helper()
		body := webhookBody(event, "subscription", `{"id":"rp_sub_1","current_start":1767225600,"current_end":1769904000}`)
		got, err := s.HandleWebhook(ctx, body, Sign("whsec", body))
		require.NoError(t, err)
		assert.Equal(t, event, got)
	}

	send("subscription.charged")
	assert.Equal(t, StatusActive, sub.Status)
	assert.Equal(t, time.Unix(1767225600, 0).UTC(), sub.CurrentPeriodStart)
	assert.Equal(t, time.Unix(1769904000, 0).UTC(), sub.CurrentPeriodEnd)

	send("subscription.paused")
	assert.Equal(t, StatusPaused, sub.Status)
	send("subscription.resumed")
	assert.Equal(t, StatusActive, sub.Status)
	send("subscription.cancelled")
	assert.Equal(t, StatusCancelled, sub.Status)
}

func TestHandleWebhook_Payments(t *testing.T) {
	store := newMemStore(basicPlan)
	s := newTestService(store, &fakeGateway{})
	ctx := context.Background()

	checkout, err := s.Subscribe(ctx, Customer{UserID: "u1"}, "basic", CycleMonthly)
	require.NoError(t, err)

	captured := webhookBody("payment.captured", "payment",
		`{"id":"pay_1","order_id":"order_1","subscription_id":"rp_sub_1","amount":49900,"currency":"INR","status":"captured","method":"upi"}`)
	_, err = s.HandleWebhook(ctx, captured, Sign("whsec", captured))
	require.NoError(t, err)
	require.Len(t, store.payments, 1)
	assert.Equal(t, &Payment{
		UserID: "u1", SubscriptionID: checkout.Subscription.ID, GatewayPaymentID: "pay_1", GatewayOrderID: "order_1",
		Amount: 49900, Currency: "INR", Status: "succeeded", Method: "upi",
	}, store.payments[0])

	failed := webhookBody("payment.failed", "payment", `{"id":"pay_2","subscription_id":"rp_sub_1","amount":49900,"currency":"INR"}`)
	_, err = s.HandleWebhook(ctx, failed, Sign("whsec", failed))
	require.NoError(t, err)
	require.Len(t, store.payments, 2)
	assert.Equal(t, "failed", store.payments[1].Status)
	assert.Equal(t, StatusPastDue, checkout.Subscription.Status)
}

func TestHandleWebhook_Rejections(t *testing.T) {
	s := newTestService(newMemStore(), nil)
	ctx := context.Background()
	body := webhookBody("subscription.charged", "subscription", `{"id":"rp_sub_1"}`)

	before := testutil.ToFloat64(metrics.WebhookEvents.WithLabelValues("unknown", "rejected"))
	_, err := s.HandleWebhook(ctx, body, "deadbeef")
	var se *SignatureError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.WebhookEvents.WithLabelValues("unknown", "rejected")))

	_, err = s.HandleWebhook(ctx, []byte("not json"), Sign("whsec", []byte("not json")))
	assert.ErrorContains(t, err, "failed to decode webhook")
}

func TestHandleWebhook_UnknownAndUnhandled(t *testing.T) {
	store := newMemStore()
	s := newTestService(store, nil)
	ctx := context.Background()

	body := webhookBody("subscription.charged", "subscription", `{"id":"rp_sub_404"}`)
	_, err := s.HandleWebhook(ctx, body, Sign("whsec", body))
	assert.NoError(t, err)

	body = webhookBody("invoice.paid", "invoice", `{"id":"inv_1"}`)
	event, err := s.HandleWebhook(ctx, body, Sign("whsec", body))
	assert.NoError(t, err)
	assert.Equal(t, "invoice.paid", event)

	body = []byte(`{"event":"subscription.cancelled","payload":{}}`)
	_, err = s.HandleWebhook(ctx, body, Sign("whsec", body))
	assert.ErrorContains(t, err, "no subscription entity")
}

func TestAuthorizeExport(t *testing.T) {
	ctx := context.Background()
	valid := &PaymentProof{OrderID: "order_1", PaymentID: "pay_1", Signature: Sign("keysecret", []byte("order_1|pay_1"))}

	t.Run("active subscriber", func(t *testing.T) {
		store := newMemStore()
		store.subscriptions = []*Subscription{{ID: "s1", UserID: "u1", Status: StatusActive}}
		basis, err := newTestService(store, nil).AuthorizeExport(ctx, "u1", nil)
		assert.NoError(t, err)
		assert.Equal(t, ExportBySubscription, basis)
	})

	t.Run("active subscriber with payment proof", func(t *testing.T) {
		store := newMemStore()
		store.subscriptions = []*Subscription{{ID: "s1", UserID: "u1", Status: StatusActive}}
		basis, err := newTestService(store, nil).AuthorizeExport(ctx, "u1", valid)
		assert.NoError(t, err)
		assert.Equal(t, ExportBySubscription, basis)
	})

	t.Run("no subscription and no payment", func(t *testing.T) {
		store := newMemStore()
		store.subscriptions = []*Subscription{{ID: "s1", UserID: "u1", Status: StatusPending}}
		basis, err := newTestService(store, nil).AuthorizeExport(ctx, "u1", nil)
		assert.ErrorIs(t, err, ErrPaymentRequired)
		assert.Equal(t, ExportDenied, basis)
		_, err = newTestService(store, nil).AuthorizeExport(ctx, "", &PaymentProof{})
		assert.ErrorIs(t, err, ErrPaymentRequired)
	})

	t.Run("signed payment", func(t *testing.T) {
		basis, err := newTestService(newMemStore(), nil).AuthorizeExport(ctx, "", valid)
		assert.NoError(t, err)
		assert.Equal(t, ExportByPayment, basis)
		basis, err = newTestService(newMemStore(), &fakeGateway{}).AuthorizeExport(ctx, "", valid)
		assert.NoError(t, err)
		assert.Equal(t, ExportByPayment, basis)
	})

	t.Run("bad signature", func(t *testing.T) {
		bad := *valid
		bad.Signature = Sign("other", []byte("order_1|pay_1"))
		_, err := newTestService(newMemStore(), nil).AuthorizeExport(ctx, "", &bad)
		assert.ErrorIs(t, err, ErrInvalidPayment)
	})

	t.Run("payment not captured", func(t *testing.T) {
		gw := &fakeGateway{payment: &GatewayPayment{ID: "pay_1", Status: "authorized"}}
		_, err := newTestService(newMemStore(), gw).AuthorizeExport(ctx, "", valid)
		assert.ErrorIs(t, err, ErrInvalidPayment)
	})
}

func TestGatewayMapping(t *testing.T) {
	sub := subscriptionFromMap(map[string]interface{}{
		"id": "sub_1", "status": "active", "short_url": "https://rzp.io/i/x",
		"current_start": float64(1767225600), "current_end": float64(1769904000),
	})
	assert.Equal(t, &GatewaySubscription{ID: "sub_1", Status: "active", ShortURL: "https://rzp.io/i/x", CurrentStart: 1767225600, CurrentEnd: 1769904000}, sub)
	require.NotNil(t, sub.Period())

	assert.Nil(t, subscriptionFromMap(map[string]interface{}{"id": "sub_2"}).Period())

	pay := paymentFromMap(map[string]interface{}{"id": "pay_1", "amount": float64(49900), "status": "captured", "currency": "INR"})
	assert.True(t, pay.Captured())
	assert.Equal(t, int64(49900), pay.Amount)

	_, err := requireID("create plan", map[string]interface{}{"entity": "plan"})
	var ge *GatewayError
	assert.ErrorAs(t, err, &ge)
}

func TestService_NoStore(t *testing.T) {
	ctx := context.Background()
	s := NewService(Options{Gateway: &fakeGateway{}, KeySecret: "keysecret", WebhookSecret: "whsec"})

	_, err := s.Plans(ctx)
	assert.ErrorIs(t, err, ErrNoStore)
	_, err = s.Subscribe(ctx, Customer{UserID: "u1"}, "basic", CycleMonthly)
	assert.ErrorIs(t, err, ErrNoStore)
	_, err = s.MySubscription(ctx, "u1")
	assert.ErrorIs(t, err, ErrNoStore)

	body := webhookBody("subscription.activated", "subscription", `{"id":"rp_sub_1"}`)
	event, err := s.HandleWebhook(ctx, body, Sign("whsec", body))
	require.NoError(t, err)
	assert.Equal(t, "subscription.activated", event)

	_, err = s.AuthorizeExport(ctx, "u1", nil)
	assert.ErrorIs(t, err, ErrPaymentRequired)
}
