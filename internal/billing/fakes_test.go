package billing

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type memStore struct {
	mu            sync.Mutex
	plans         map[string]*Plan
	customers     map[string]string
	subscriptions []*Subscription
	payments      []*Payment
}

func newMemStore(plans ...Plan) *memStore {
	s := &memStore{plans: map[string]*Plan{}, customers: map[string]string{}}
	for i := range plans {
		p := plans[i]
		s.plans[p.ID] = &p
	}
	return s
}

func (s *memStore) ListActivePlans(context.Context) ([]Plan, error) {
	var out []Plan
	for _, p := range s.plans {
		if p.Active {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PriceMonthly < out[j].PriceMonthly })
	return out, nil
}

func (s *memStore) GetActivePlan(_ context.Context, id string) (*Plan, error) {
	p, ok := s.plans[id]
	if !ok || !p.Active {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *memStore) SetPlanGatewayID(_ context.Context, planID string, cycle Cycle, gatewayPlanID string) error {
	p, ok := s.plans[planID]
	if !ok {
		return fmt.Errorf("no plan %s", planID)
	}
	if cycle == CycleYearly {
		p.GatewayYearlyPlanID = gatewayPlanID
	} else {
		p.GatewayPlanID = gatewayPlanID
	}
	return nil
}

func (s *memStore) GetGatewayCustomerID(_ context.Context, userID string) (string, error) {
	return s.customers[userID], nil
}

func (s *memStore) SetGatewayCustomerID(_ context.Context, userID, customerID string) error {
	s.customers[userID] = customerID
	return nil
}

func (s *memStore) CreateSubscription(_ context.Context, sub *Subscription) error {
	sub.ID = fmt.Sprintf("sub-%d", len(s.subscriptions)+1)
	s.subscriptions = append(s.subscriptions, sub)
	return nil
}

func (s *memStore) GetActiveSubscription(_ context.Context, userID string) (*Subscription, error) {
	for _, sub := range s.subscriptions {
		if sub.UserID == userID && sub.Status == StatusActive {
			return sub, nil
		}
	}
	return nil, nil
}

func (s *memStore) GetSubscriptionByGatewayID(_ context.Context, gatewayID string) (*Subscription, error) {
	for _, sub := range s.subscriptions {
		if sub.GatewaySubscriptionID == gatewayID {
			return sub, nil
		}
	}
	return nil, nil
}

func (s *memStore) UpdateSubscriptionStatus(_ context.Context, id string, status Status, period *Period) error {
	for _, sub := range s.subscriptions {
		if sub.ID == id {
			sub.Status = status
			if period != nil {
				sub.CurrentPeriodStart, sub.CurrentPeriodEnd = period.Start, period.End
			}
			return nil
		}
	}
	return fmt.Errorf("no subscription %s", id)
}

func (s *memStore) InsertPayment(_ context.Context, p *Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = append(s.payments, p)
	return nil
}

type fakeGateway struct {
	customers     []Customer
	plans         []PlanRequest
	subscriptions []SubscriptionRequest
	payment       *GatewayPayment
	err           error
}

func (g *fakeGateway) CreateCustomer(_ context.Context, c Customer) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	g.customers = append(g.customers, c)
	return fmt.Sprintf("cust_%d", len(g.customers)), nil
}

func (g *fakeGateway) CreatePlan(_ context.Context, req PlanRequest) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	g.plans = append(g.plans, req)
	return fmt.Sprintf("plan_%d", len(g.plans)), nil
}

func (g *fakeGateway) CreateSubscription(_ context.Context, req SubscriptionRequest) (*GatewaySubscription, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.subscriptions = append(g.subscriptions, req)
	id := fmt.Sprintf("rp_sub_%d", len(g.subscriptions))
	return &GatewaySubscription{ID: id, Status: "created", ShortURL: "https://rzp.io/i/" + id}, nil
}

func (g *fakeGateway) FetchPayment(_ context.Context, id string) (*GatewayPayment, error) {
	if g.err != nil {
		return nil, g.err
	}
	if g.payment == nil {
		return &GatewayPayment{ID: id, Status: "captured"}, nil
	}
	return g.payment, nil
}
