package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thepetra/petra/internal/billing"
	"github.com/thepetra/petra/internal/guide"
	"github.com/thepetra/petra/internal/readiness"
)

func TestGuideRequest(t *testing.T) {
	quiz := GuideRequest{Situation: "new-parent", ExperienceLevel: "first-time", Concern: "health,behavior"}
	require.NoError(t, quiz.Validate())
	assert.Equal(t, guide.EntryQuiz, quiz.Entry())
	assert.Equal(t, "health,behavior", quiz.Profile().Concern)

	direct := GuideRequest{Source: "direct", Breed: "Beagle", AgeInWeeks: 10}
	require.NoError(t, direct.Validate())
	assert.Equal(t, guide.EntryDirect, direct.Entry())
	assert.Equal(t, guide.Profile{Breed: "Beagle", AgeInWeeks: 10}, direct.Profile())

	assert.ErrorContains(t, (&GuideRequest{Source: "direct"}).Validate(), "required_if")
	assert.ErrorContains(t, (&GuideRequest{Source: "email"}).Validate(), "oneof")
	assert.ErrorContains(t, (&GuideRequest{AgeInWeeks: -1}).Validate(), "min")
	assert.ErrorContains(t, (&GuideRequest{AgeInWeeks: 1561}).Validate(), "max")
}

func TestRecommendationRequest_Profile(t *testing.T) {
	req := RecommendationRequest{Situation: "family", ExperienceLevel: "first-time", Concern: "health"}
	require.NoError(t, req.Validate())
	p := req.Profile()
	assert.Equal(t, "family", p.Situation)
	assert.Equal(t, []string{"health"}, p.Concerns())
}

func TestSubscribeRequest(t *testing.T) {
	req := SubscribeRequest{PlanID: "premium"}
	require.NoError(t, req.Validate())
	assert.Equal(t, billing.CycleMonthly, req.Cycle())

	req.BillingCycle = "yearly"
	assert.Equal(t, billing.CycleYearly, req.Cycle())

	assert.ErrorContains(t, (&SubscribeRequest{}).Validate(), "required")
	assert.ErrorContains(t, (&SubscribeRequest{PlanID: "basic", BillingCycle: "weekly"}).Validate(), "oneof")
}

func TestExportRequest_Decode(t *testing.T) {
	body := `{
		"guideData": {"sections": [], "source": "quiz"},
		"userEmail": "anu@example.com",
		"petName": "Bruno",
		"payment": {"razorpay_order_id": "order_1", "razorpay_payment_id": "pay_1", "razorpay_signature": "sig"}
	}`
	var req ExportRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NoError(t, req.Validate())
	assert.Equal(t, guide.EntryQuiz, req.Guide.Entry)
	assert.Equal(t, "pay_1", req.Payment.PaymentID)

	assert.ErrorContains(t, (&ExportRequest{Email: "anu@example.com"}).Validate(), "required")
}

func TestAssessmentRequest_Decode(t *testing.T) {
	body := `{"answers": {"homeType": "independent-house", "hasAllergies": "no"}, "recommend": true}`
	var req AssessmentRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	assert.True(t, req.Recommend)
	assert.Equal(t, readiness.HomeIndependentHouse, req.Answers.HomeType)
	assert.Equal(t, readiness.No, req.Answers.HasAllergies)
}
