package types

import (
	"github.com/thepetra/petra/internal/billing"
	"github.com/thepetra/petra/internal/guide"
	"github.com/thepetra/petra/internal/readiness"
	"github.com/thepetra/petra/internal/recommend"
)

// AssessmentRequest submits questionnaire answers for scoring. When
// Recommend is set the response also carries breed recommendations derived
// from the answers.
type AssessmentRequest struct {
	Answers   readiness.Answers `json:"answers"`
	Recommend bool              `json:"recommend,omitempty"`
}

// AssessmentResponse is a scored submission.
type AssessmentResponse struct {
	ID              string                     `json:"id,omitempty"`
	Result          readiness.Result           `json:"result"`
	Recommendations []recommend.Recommendation `json:"recommendations,omitempty"`
	Source          string                     `json:"source,omitempty"`
}

// RecommendationRequest asks for breed recommendations.
type RecommendationRequest struct {
	Situation       string `json:"situation" validate:"omitempty,max=50"`
	ExperienceLevel string `json:"experienceLevel" validate:"omitempty,max=50"`
	Concern         string `json:"concern" validate:"omitempty,max=200"`
}

// Profile converts the request to a recommendation profile.
func (r *RecommendationRequest) Profile() recommend.Profile {
	return recommend.Profile{Situation: r.Situation, ExperienceLevel: r.ExperienceLevel, Concern: r.Concern}.Normalize()
}

// Validate checks the request tags.
func (r *RecommendationRequest) Validate() error {
	return validate.Struct(r)
}

// RecommendationResponse lists recommendations and where they came from.
type RecommendationResponse struct {
	Recommendations []recommend.Recommendation `json:"recommendations"`
	Source          string                     `json:"source"`
}

// GuideRequest asks for a pet-parent guide. Source is "quiz" (default) or
// "direct"; direct requests name a breed and age.
type GuideRequest struct {
	Source          string `json:"source" validate:"omitempty,oneof=quiz direct"`
	Situation       string `json:"situation" validate:"omitempty,max=50"`
	ExperienceLevel string `json:"experienceLevel" validate:"omitempty,max=50"`
	Concern         string `json:"concern" validate:"omitempty,max=200"`
	Breed           string `json:"breed" validate:"required_if=Source direct,max=100"`
	AgeInWeeks      int    `json:"ageInWeeks" validate:"min=0,max=1560"`
}

// Entry returns the guide entry, defaulting to the quiz.
func (r *GuideRequest) Entry() guide.Entry {
	if r.Source == string(guide.EntryDirect) {
		return guide.EntryDirect
	}
	return guide.EntryQuiz
}

// Profile converts the request to a guide profile.
func (r *GuideRequest) Profile() guide.Profile {
	return guide.Profile{
		Situation:       r.Situation,
		ExperienceLevel: r.ExperienceLevel,
		Concern:         r.Concern,
		Breed:           r.Breed,
		AgeInWeeks:      r.AgeInWeeks,
	}
}

// Validate checks the request tags.
func (r *GuideRequest) Validate() error {
	return validate.Struct(r)
}

// ExportRequest emails a guide. It needs an active subscription or a
// signed payment.
type ExportRequest struct {
	Guide     *guide.Guide          `json:"guideData" validate:"required"`
	Email     string                `json:"userEmail" validate:"required,email,max=254"`
	PetName   string                `json:"petName,omitempty" validate:"max=50"`
	OwnerName string                `json:"ownerName,omitempty" validate:"max=100"`
	Payment   *billing.PaymentProof `json:"payment,omitempty"`
}

// Validate checks the request tags.
func (r *ExportRequest) Validate() error {
	return validate.Struct(r)
}

// SubscribeRequest starts a subscription checkout.
type SubscribeRequest struct {
	PlanID       string `json:"planId" validate:"required,max=50"`
	BillingCycle string `json:"billingCycle" validate:"omitempty,oneof=monthly yearly"`
}

// Cycle returns the billing cycle, defaulting to monthly.
func (r *SubscribeRequest) Cycle() billing.Cycle {
	if r.BillingCycle == string(billing.CycleYearly) {
		return billing.CycleYearly
	}
	return billing.CycleMonthly
}

// Validate checks the request tags.
func (r *SubscribeRequest) Validate() error {
	return validate.Struct(r)
}
