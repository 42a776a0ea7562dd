// Package recommend suggests pet breeds available in Kerala for a quiz
// profile, using the language model when it is available and a fixed
// rule-based list when it is not.
package recommend

import (
	"slices"
	"strings"

	"github.com/thepetra/petra/internal/readiness"
)

// Situation values.
const (
	SituationThinking         = "thinking"
	SituationGettingThisWeek  = "getting-week"
	SituationNewParent        = "new-parent"
	SituationExperiencedBreed = "experienced-new-breed"
)

// Experience values.
const (
	ExperienceFirstTime   = "first-time"
	ExperienceFamilyPet   = "family-pet"
	ExperienceExperienced = "experienced"
)

// Concern values.
const (
	ConcernBasicCare = "basic-care"
	ConcernHealth    = "health"
	ConcernBehavior  = "behavior"
	ConcernEmergency = "emergency"
)

var situationContext = map[string]string{
	SituationThinking:         "is researching pets. Recommend breeds that are good starter pets with clear expectations.",
	SituationGettingThisWeek:  "is getting a pet THIS WEEK. Recommend readily available breeds that settle quickly.",
	SituationNewParent:        "JUST GOT their first pet (0-3 months ago). Recommend what would have been best for them.",
	SituationExperiencedBreed: "is experienced but trying a new breed. Can handle more challenging breeds.",
}

var experienceContext = map[string]string{
	ExperienceFirstTime:   "has NEVER owned a pet. Prioritize LOW MAINTENANCE, FORGIVING breeds. Avoid high-maintenance.",
	ExperienceFamilyPet:   "had pets at home but never primary responsibility. Recommend MODERATE care needs.",
	ExperienceExperienced: "is very experienced. Can handle HIGH MAINTENANCE and challenging breeds.",
}

var concernContext = map[string]string{
	ConcernBasicCare: "worried about daily routines. Recommend LOW MAINTENANCE breeds with simple care needs like Pugs, Beagles, Persians.",
	ConcernHealth:    "worried about vet visits and health. Recommend HEALTHY, ROBUST breeds with good health records like Labradors, Beagles.",
	ConcernBehavior:  "worried about training. Recommend EASY TO TRAIN, INTELLIGENT, OBEDIENT breeds like Labs, Goldens, German Shepherds.",
	ConcernEmergency: "worried about emergencies. Recommend RESILIENT, HARDY breeds with stable temperaments.",
}

// Profile is the short quiz a visitor answers before asking for breeds.
type Profile struct {
	Situation       string `json:"situation"`
	ExperienceLevel string `json:"experienceLevel"`
	// Concern may hold several comma-separated concerns.
	Concern string `json:"concern"`
}

// Concerns splits Concern into its trimmed, de-duplicated parts. An empty
// concern means basic care.
func (p Profile) Concerns() []string {
	var out []string
	for _, c := range strings.Split(p.Concern, ",") {
		c = strings.TrimSpace(c)
		if c != "" && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return []string{ConcernBasicCare}
	}
	return out
}

// Normalize fills the defaults for unanswered fields.
func (p Profile) Normalize() Profile {
	if p.Situation == "" {
		p.Situation = SituationThinking
	}
	if p.ExperienceLevel == "" {
		p.ExperienceLevel = ExperienceFirstTime
	}
	p.Concern = strings.Join(p.Concerns(), ",")
	return p
}

// FirstTime reports whether the profile belongs to a first-time owner.
func (p Profile) FirstTime() bool {
	return p.Normalize().ExperienceLevel == ExperienceFirstTime
}

// ProfileFromAnswers derives a recommendation profile from a readiness
// questionnaire. Someone taking the assessment has not adopted yet, so the
// situation is always "thinking".
func ProfileFromAnswers(a *readiness.Answers) Profile {
	p := Profile{Situation: SituationThinking, ExperienceLevel: ExperienceFirstTime}
	if a == nil {
		return p.Normalize()
	}

	switch a.ExperienceLevel {
	case readiness.ExperienceSome:
		p.ExperienceLevel = ExperienceFamilyPet
	case readiness.ExperienceVery:
		p.ExperienceLevel = ExperienceExperienced
	}

	var concerns []string
	if slices.Contains(a.LookingFor, "kids") || slices.Contains(a.LookingFor, "playful") {
		concerns = append(concerns, ConcernBehavior)
	}
	if a.HasAllergies == readiness.Yes {
		concerns = append(concerns, ConcernHealth)
	}
	p.Concern = strings.Join(concerns, ",")
	return p.Normalize()
}

func describe(m map[string]string, key string) string {
	if d, ok := m[key]; ok {
		return key + " - " + d
	}
	return key
}

func describeConcerns(concerns []string) string {
	var parts []string
	for _, c := range concerns {
		if d := concernContext[c]; d != "" {
			parts = append(parts, d)
		}
	}
	return strings.Join(concerns, ", ") + " - " + strings.Join(parts, " ALSO ")
}
