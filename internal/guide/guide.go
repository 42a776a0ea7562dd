// Package guide builds personalised pet-parent guides: four sections of care
// tips tailored to the owner's situation, experience, concerns and pet.
package guide

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/thepetra/petra/internal/llm"
	"github.com/thepetra/petra/internal/recommend"
)

// Entry is how the visitor reached the guide.
type Entry string

// Entry values
const (
	// EntryQuiz follows the situation/experience/concern quiz.
	EntryQuiz Entry = "quiz"
	// EntryDirect follows a breed and age form.
	EntryDirect Entry = "direct"
)

// Category groups tips by section.
type Category string

// Category values
const (
	CategoryPriority Category = "priority"
	CategoryWeekly   Category = "weekly"
	CategoryMistakes Category = "mistakes"
	CategoryAlerts   Category = "alerts"
)

// Difficulty values
const (
	Beginner     = "beginner"
	Intermediate = "intermediate"
	Advanced     = "advanced"
)

const (
	defaultAgeWeeks = 8
	adultAgeWeeks   = 52
	maxAgeWeeks     = 1560
)

// Profile describes the owner and pet the guide is written for.
type Profile struct {
	Situation       string `json:"situation,omitempty"`
	ExperienceLevel string `json:"experienceLevel,omitempty"`
	Concern         string `json:"concern,omitempty"`
	Breed           string `json:"breed,omitempty"`
	AgeInWeeks      int    `json:"ageInWeeks,omitempty"`
}

// Content is a single tip.
type Content struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Category   Category `json:"category"`
	Difficulty string   `json:"difficulty"`
	IsPremium  bool     `json:"isPremium"`
	Order      int      `json:"order"`
}

// Section is a titled group of tips.
type Section struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Contents    []Content `json:"contents"`
}

// Guide is a generated guide.
type Guide struct {
	Profile     Profile    `json:"profile"`
	Entry       Entry      `json:"source"`
	Sections    []Section  `json:"sections"`
	GeneratedAt time.Time  `json:"generatedAt"`
	Source      llm.Source `json:"aiProvider"`
}

// Validate checks the request shape for an entry.
func (p Profile) Validate(entry Entry) error {
	switch entry {
	case EntryQuiz:
	case EntryDirect:
		if strings.TrimSpace(p.Breed) == "" {
			return fmt.Errorf("breed is required for direct entry")
		}
	default:
		return fmt.Errorf("unknown entry %q", entry)
	}
	if p.AgeInWeeks < 0 || p.AgeInWeeks > maxAgeWeeks {
		return fmt.Errorf("ageInWeeks must be between 0 and %d", maxAgeWeeks)
	}
	return nil
}

// Concerns splits Concern into trimmed parts, defaulting to basic care.
func (p Profile) Concerns() []string {
	var out []string
	for _, c := range strings.Split(p.Concern, ",") {
		c = strings.TrimSpace(c)
		if c != "" && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return []string{recommend.ConcernBasicCare}
	}
	return out
}

// HasConcern reports whether c is among the profile's concerns.
func (p Profile) HasConcern(c string) bool {
	return slices.Contains(p.Concerns(), c)
}

// Weeks returns the pet's age, defaulting to eight weeks when unknown.
func (p Profile) Weeks() int {
	if p.AgeInWeeks <= 0 {
		return defaultAgeWeeks
	}
	return p.AgeInWeeks
}

// Months returns the age rounded to whole months of four weeks.
func (p Profile) Months() int {
	return (p.Weeks() + 2) / 4
}

// Young reports whether the pet is under a year old.
func (p Profile) Young() bool {
	return p.Weeks() < adultAgeWeeks
}

func (p Profile) newParent() bool {
	return p.Situation == recommend.SituationNewParent || p.Situation == recommend.SituationGettingThisWeek
}

func (p Profile) firstTime() bool {
	return p.ExperienceLevel == recommend.ExperienceFirstTime
}

func (p Profile) cacheParts(entry Entry) []string {
	return []string{
		string(entry), p.Situation, p.ExperienceLevel,
		strings.Join(p.Concerns(), ","), strings.ToLower(strings.TrimSpace(p.Breed)),
		fmt.Sprint(p.Weeks()),
	}
}

func breedSectionTitle(p Profile, entry Entry) string {
	if entry == EntryDirect && p.Breed != "" {
		return p.Breed + " Specific Tips"
	}
	return "Breed-Specific Alerts"
}
