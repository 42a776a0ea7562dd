package readiness

import (
	"math"
	"slices"
)

// Category groups scoring rules for the breakdown shown on the score card.
type Category string

// Scoring categories, in display order.
const (
	CategoryHome        Category = "home"
	CategoryLifestyle   Category = "lifestyle"
	CategoryPractical   Category = "practical"
	CategoryPetSpecific Category = "pet-specific"
)

// categoryOrder fixes the breakdown order.
var categoryOrder = []Category{CategoryHome, CategoryLifestyle, CategoryPractical, CategoryPetSpecific}

// categoryCap is the most any one category can contribute.
const categoryCap = 25

// rule awards Points in Category when Applies holds.
type rule struct {
	Name     string
	Category Category
	Points   int
	Applies  func(a *Answers) bool
}

func oneOf[T comparable](v T, set ...T) bool {
	return slices.Contains(set, v)
}

var scoringRules = []rule{
	// Home
	{"home-type", CategoryHome, 10, func(a *Answers) bool {
		return oneOf(a.HomeType, HomeIndependentHouse, HomeFarmhouse)
	}},
	{"outdoor-access", CategoryHome, 10, (*Answers).hasUsableOutdoorSpace},
	{"hours-empty", CategoryHome, 5, func(a *Answers) bool {
		return oneOf(a.HoursEmpty, Hours0To2, Hours3To5)
	}},

	// Lifestyle
	{"daily-time", CategoryLifestyle, 10, func(a *Answers) bool {
		return oneOf(a.DailyTimeAvailable, Daily1To2Hours, Daily2PlusHrs)
	}},
	{"travel", CategoryLifestyle, 10, func(a *Answers) bool {
		return oneOf(a.TravelFrequency, TravelRarely, TravelMonthly)
	}},
	{"experience", CategoryLifestyle, 5, func(a *Answers) bool {
		return oneOf(a.ExperienceLevel, ExperienceSome, ExperienceVery)
	}},

	// Practical
	{"budget", CategoryPractical, 10, func(a *Answers) bool {
		return oneOf(a.MonthlyBudget, Budget3kTo6k, Budget6kOrMore)
	}},
	{"family-support", CategoryPractical, 10, func(a *Answers) bool {
		return a.FamilySupport == Yes
	}},
	{"no-allergies", CategoryPractical, 5, func(a *Answers) bool {
		return a.HasAllergies == No
	}},

	// Pet-specific
	{"pet-types", CategoryPetSpecific, 10, func(a *Answers) bool {
		return len(a.ConsideringPetTypes) > 0
	}},
	{"dog-walking", CategoryPetSpecific, 5, func(a *Answers) bool {
		return a.Considering(PetDog) && a.dogSafeWalking() == Yes
	}},
	{"cat-secured", CategoryPetSpecific, 5, func(a *Answers) bool {
		return a.Considering(PetCat) && a.catSecuredSpaces() == Yes
	}},
	{"bird-noise", CategoryPetSpecific, 5, func(a *Answers) bool {
		return a.Considering(PetBird) && a.birdNoiseOK() == Yes
	}},
}

// CategoryScore is the earned and possible points for one category.
type CategoryScore struct {
	Category Category `json:"category"`
	Earned   int      `json:"earned"`
	Possible int      `json:"possible"`
}

// Result is the outcome of scoring one submission.
type Result struct {
	Score     int             `json:"score"`
	Tier      Tier            `json:"tier"`
	Headline  string          `json:"headline"`
	Summary   string          `json:"summary"`
	Breakdown []CategoryScore `json:"breakdown"`
	Checklist []ChecklistItem `json:"checklist"`
}

// Score computes the readiness score, tier, per-category breakdown and
// preparation checklist for a submission. A nil submission scores as empty.
func Score(a *Answers) Result {
	if a == nil {
		a = &Answers{}
	}

	earned := make(map[Category]int, len(categoryOrder))
	possible := make(map[Category]int, len(categoryOrder))
	for _, r := range scoringRules {
		possible[r.Category] += r.Points
		if r.Applies(a) {
			earned[r.Category] += r.Points
		}
	}

	var total, outOf int
	breakdown := make([]CategoryScore, 0, len(categoryOrder))
	for _, c := range categoryOrder {
		cs := CategoryScore{
			Category: c,
			Earned:   min(earned[c], categoryCap),
			Possible: min(possible[c], categoryCap),
		}
		total += cs.Earned
		outOf += cs.Possible
		breakdown = append(breakdown, cs)
	}

	score := 0
	if outOf > 0 {
		score = int(math.Round(float64(total) / float64(outOf) * 100))
	}
	score = min(max(score, 0), 100)

	tier := TierFor(score)
	return Result{
		Score:     score,
		Tier:      tier,
		Headline:  tier.Headline(),
		Summary:   tier.Description(),
		Breakdown: breakdown,
		Checklist: Checklist(a),
	}
}
