package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/thepetra/petra/internal/billing"
	"github.com/thepetra/petra/internal/config"
	"github.com/thepetra/petra/internal/content"
	"github.com/thepetra/petra/internal/db"
	"github.com/thepetra/petra/internal/leads"
	"github.com/thepetra/petra/internal/notify"
	"github.com/thepetra/petra/internal/server/ratelimit"
	"go.uber.org/zap/zaptest"
)

// memUsers implements DBClient.
type memUsers struct {
	mu         sync.Mutex
	users      map[uuid.UUID]*db.User
	failUpdate error
	deleted    []uuid.UUID
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[uuid.UUID]*db.User{}}
}

func (m *memUsers) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, err := m.GetUserByEmail(ctx, email)
	return u != nil, err
}

func (m *memUsers) CreateUser(_ context.Context, name, email, phone string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	now := time.Now()
	m.users[id] = &db.User{ID: id, Name: name, Email: email, Phone: phone, CreatedAt: now, UpdatedAt: now}
	return id, nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpdate != nil {
		return m.failUpdate
	}
	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("user not found: %s", id)
	}
	u.PasswordHash, u.PasswordSet = hash, true
	return nil
}

func (m *memUsers) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) DeleteUser(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	m.deleted = append(m.deleted, id)
	return nil
}

// memRecords implements AssessmentStore and ExportRecorder.
type memRecords struct {
	mu          sync.Mutex
	assessments map[uuid.UUID]*db.Assessment
	exports     []*db.GuideExport
}

func newMemRecords() *memRecords {
	return &memRecords{assessments: map[uuid.UUID]*db.Assessment{}}
}

func (m *memRecords) CreateAssessment(_ context.Context, userID *uuid.UUID, answers any, score int, tier string, result any) (uuid.UUID, error) {
	a, err := json.Marshal(answers)
	if err != nil {
		return uuid.Nil, err
	}
	r, err := json.Marshal(result)
	if err != nil {
		return uuid.Nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.assessments[id] = &db.Assessment{ID: id, UserID: userID, Answers: a, Score: score, Tier: tier, Result: r, CreatedAt: time.Now()}
	return id, nil
}

func (m *memRecords) GetAssessment(_ context.Context, id uuid.UUID) (*db.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.assessments[id], nil
}

func (m *memRecords) RecordGuideExport(_ context.Context, e *db.GuideExport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exports = append(m.exports, e)
	return nil
}

// memBilling implements billing.Store.
type memBilling struct {
	mu            sync.Mutex
	plans         []billing.Plan
	customers     map[string]string
	subscriptions []*billing.Subscription
	payments      []*billing.Payment
}

func newMemBilling(plans ...billing.Plan) *memBilling {
	return &memBilling{plans: plans, customers: map[string]string{}}
}

func (m *memBilling) ListActivePlans(context.Context) ([]billing.Plan, error) {
	var out []billing.Plan
	for _, p := range m.plans {
		if p.Active {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PriceMonthly < out[j].PriceMonthly })
	return out, nil
}

func (m *memBilling) GetActivePlan(_ context.Context, id string) (*billing.Plan, error) {
	for _, p := range m.plans {
		if p.ID == id && p.Active {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memBilling) SetPlanGatewayID(context.Context, string, billing.Cycle, string) error {
	return nil
}

func (m *memBilling) GetGatewayCustomerID(_ context.Context, userID string) (string, error) {
	return m.customers[userID], nil
}

func (m *memBilling) SetGatewayCustomerID(_ context.Context, userID, customerID string) error {
	m.customers[userID] = customerID
	return nil
}

func (m *memBilling) CreateSubscription(_ context.Context, sub *billing.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub.ID = fmt.Sprintf("sub-%d", len(m.subscriptions)+1)
	m.subscriptions = append(m.subscriptions, sub)
	return nil
}

func (m *memBilling) GetActiveSubscription(_ context.Context, userID string) (*billing.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sub := range m.subscriptions {
		if sub.UserID == userID && sub.Status == billing.StatusActive {
			return sub, nil
		}
	}
	return nil, nil
}

func (m *memBilling) GetSubscriptionByGatewayID(_ context.Context, gatewayID string) (*billing.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sub := range m.subscriptions {
		if sub.GatewaySubscriptionID == gatewayID {
			return sub, nil
		}
	}
	return nil, nil
}

func (m *memBilling) UpdateSubscriptionStatus(_ context.Context, id string, status billing.Status, period *billing.Period) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sub := range m.subscriptions {
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

func (m *memBilling) InsertPayment(_ context.Context, p *billing.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments = append(m.payments, p)
	return nil
}

// stubGateway implements billing.Gateway.
type stubGateway struct {
	paymentStatus string
}

func (g *stubGateway) CreateCustomer(context.Context, billing.Customer) (string, error) {
	return "cust_1", nil
}

func (g *stubGateway) CreatePlan(context.Context, billing.PlanRequest) (string, error) {
	return "plan_1", nil
}

func (g *stubGateway) CreateSubscription(context.Context, billing.SubscriptionRequest) (*billing.GatewaySubscription, error) {
	return &billing.GatewaySubscription{ID: "rp_sub_1", Status: "created", ShortURL: "https://rzp.io/i/rp_sub_1"}, nil
}

func (g *stubGateway) FetchPayment(_ context.Context, id string) (*billing.GatewayPayment, error) {
	status := g.paymentStatus
	if status == "" {
		status = "captured"
	}
	return &billing.GatewayPayment{ID: id, Status: status}, nil
}

// recordingMailer implements notify.Mailer.
type recordingMailer struct {
	mu   sync.Mutex
	sent []notify.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg notify.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) messages() []notify.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notify.Message(nil), m.sent...)
}

var premiumPlan = billing.Plan{ID: "premium", Name: "Premium", PriceMonthly: 99900, PriceYearly: 999900, Active: true}

const (
	testKeySecret     = "keysecret"
	testWebhookSecret = "whsec"
	testAdminKey      = "admin-key"
)

// testEnv is a server wired to in-memory fakes.
type testEnv struct {
	t       *testing.T
	server  *Server
	jwt     *JWTService
	users   *memUsers
	records *memRecords
	billing *memBilling
	gateway *stubGateway
	mailer  *recordingMailer
}

func newTestEnv(t *testing.T, customize ...func(*Options)) *testEnv {
	t.Helper()
	logger := zaptest.NewLogger(t)
	env := &testEnv{
		t:       t,
		jwt:     setupTestJWTService(t, 24),
		users:   newMemUsers(),
		records: newMemRecords(),
		billing: newMemBilling(premiumPlan),
		gateway: &stubGateway{},
		mailer:  &recordingMailer{},
	}

	opts := Options{
		Config:      config.ServerConfig{Port: 8080, AllowedOrigin: "https://thepetra.in"},
		RateLimit:   &ratelimit.Config{Enabled: false},
		Logger:      logger,
		JWT:         env.jwt,
		Users:       env.users,
		Password:    &config.PasswordConfig{BcryptCost: 4},
		Assessments: env.records,
		Exports:     env.records,
		Leads:       leads.NewService(leads.Options{Mailer: env.mailer, AdminAddress: "admin@thepetra.in", Logger: logger}),
		Billing: billing.NewService(billing.Options{
			Store:         env.billing,
			Gateway:       env.gateway,
			KeySecret:     testKeySecret,
			WebhookSecret: testWebhookSecret,
			Logger:        logger,
		}),
		Mailer:   env.mailer,
		Content:  content.NewFileStore(t.TempDir() + "/content.json"),
		AdminKey: testAdminKey,
	}
	for _, fn := range customize {
		fn(&opts)
	}

	env.server = New(opts)
	t.Cleanup(env.server.Close)
	return env
}

// do sends a request through the full middleware chain. body may be nil, a
// string, or a value to encode as JSON.
func (e *testEnv) do(method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	e.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	case []byte:
		reader = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(e.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(w, req)
	return w
}

// signIn creates a user and returns its ID and a bearer header.
func (e *testEnv) signIn(email string) (uuid.UUID, map[string]string) {
	e.t.Helper()
	id, err := e.users.CreateUser(context.Background(), "Asha Menon", email, "9847012345")
	require.NoError(e.t, err)
	token, err := e.jwt.GenerateToken(id, email)
	require.NoError(e.t, err)
	return id, map[string]string{"Authorization": "Bearer " + token}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type failingPinger struct{ err error }

func (p failingPinger) Ping(context.Context) error { return p.err }

var errBoom = errors.New("boom")

