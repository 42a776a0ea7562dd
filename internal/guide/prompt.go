package guide

import (
	"fmt"
	"strings"

	"github.com/thepetra/petra/internal/prompts"
	"github.com/thepetra/petra/internal/recommend"
)

var situationText = map[string]string{
	recommend.SituationThinking:         "is researching and considering getting their first pet",
	recommend.SituationGettingThisWeek:  "is getting a pet THIS WEEK and needs immediate preparation advice",
	recommend.SituationNewParent:        "just got their first pet within the last 0-3 months",
	recommend.SituationExperiencedBreed: "is an experienced pet owner but new to this specific breed",
}

var experienceText = map[string]string{
	recommend.ExperienceFirstTime:   "has NEVER owned a pet before (complete beginner)",
	recommend.ExperienceFamilyPet:   "grew up with family pets but never had personal responsibility",
	recommend.ExperienceExperienced: "is an experienced pet owner with years of hands-on experience",
}

var concernText = map[string]string{
	recommend.ConcernBasicCare: "BASIC DAILY CARE (feeding, grooming, routines)",
	recommend.ConcernHealth:    "HEALTH & WELLNESS (vet visits, vaccinations, illnesses)",
	recommend.ConcernBehavior:  "BEHAVIOR & TRAINING (commands, socialization, discipline)",
	recommend.ConcernEmergency: "EMERGENCY PREPAREDNESS (first aid, emergencies)",
}

var concernRequirements = map[string]string{
	recommend.ConcernHealth: `CRITICAL: Prioritize HEALTH topics heavily.
- Vet schedules and what to expect
- Vaccination timelines
- Signs of illness to watch for
- Preventive care`,
	recommend.ConcernBehavior: `CRITICAL: Prioritize TRAINING and BEHAVIOR heavily.
- Specific training commands and techniques
- How to handle unwanted behaviors
- Socialization strategies
- Positive reinforcement methods`,
	recommend.ConcernEmergency: `CRITICAL: Prioritize EMERGENCY PREP heavily.
- First aid basics
- Emergency vet contacts
- What to do in common emergencies
- Warning signs that need immediate attention`,
}

// quizDefaults fills the unanswered quiz fields. A guide visitor usually
// already has a pet, so the default situation is new-parent.
func quizDefaults(p Profile) Profile {
	if p.Situation == "" {
		p.Situation = recommend.SituationNewParent
	}
	if p.ExperienceLevel == "" {
		p.ExperienceLevel = recommend.ExperienceFirstTime
	}
	p.Concern = strings.Join(p.Concerns(), ",")
	return p
}

func lookup(m map[string]string, key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return key
}

func quizContext(p Profile) (string, string) {
	concerns := p.Concerns()

	var concernPart string
	if len(concerns) > 1 {
		labels := make([]string, 0, len(concerns))
		for _, c := range concerns {
			labels = append(labels, lookup(concernText, c))
		}
		concernPart = "is concerned about multiple areas: " + strings.Join(labels, ", ")
	} else {
		concernPart = "is most concerned about " + lookup(concernText, concerns[0])
	}

	ctx := fmt.Sprintf("User %s, %s, and %s.",
		lookup(situationText, p.Situation), lookup(experienceText, p.ExperienceLevel), concernPart)
	if p.Breed != "" {
		ctx += fmt.Sprintf(" They have selected a %s.", p.Breed)
	}

	var reqs []string
	if len(concerns) > 1 {
		lines := make([]string, 0, len(concerns))
		for _, c := range concerns {
			lines = append(lines, "- "+lookup(concernText, c))
		}
		reqs = append(reqs, fmt.Sprintf("CRITICAL: User has MULTIPLE concerns (%s). Address ALL of them:\n%s\nDistribute advice across all their concerns evenly.",
			strings.Join(concerns, ", "), strings.Join(lines, "\n")))
	}
	switch p.Situation {
	case recommend.SituationGettingThisWeek:
		reqs = append(reqs, `CRITICAL: They need IMMEDIATE action items for THIS WEEK. Focus on urgent prep before pet arrives.
- What to buy TODAY
- How to pet-proof home NOW
- Emergency contacts to set up BEFORE pet arrives`)
	case recommend.SituationNewParent:
		reqs = append(reqs, `CRITICAL: They ALREADY HAVE the pet (0-3 months). Focus on immediate challenges they're facing NOW.
- Current issues new parents face
- What to do in first few weeks
- How to handle accidents and mistakes`)
	default:
		if len(concerns) == 1 {
			if r, ok := concernRequirements[concerns[0]]; ok {
				reqs = append(reqs, r)
			}
		}
	}
	return ctx, strings.Join(reqs, "\n\n")
}

func directContext(p Profile) (string, string) {
	ctx := fmt.Sprintf("User has a %s, currently %d month(s) old (%d weeks).", p.Breed, p.Months(), p.Weeks())

	var req string
	if p.Young() {
		req = `CRITICAL: This is a YOUNG pet (puppy/kitten). Focus on:
- Age-appropriate development milestones
- Puppy/kitten specific care (feeding frequency, sleep needs)
- Early socialization windows
- Teething and growth`
	} else {
		req = `CRITICAL: This is an ADULT pet. Focus on:
- Adult care requirements
- Maintaining health and fitness
- Behavior maintenance
- Long-term care`
	}
	req += fmt.Sprintf(`

CRITICAL: Make ALL advice SPECIFIC to %s:
- Breed-specific health issues
- Breed-specific exercise needs
- Breed-specific grooming requirements
- Breed-specific temperament and behavior`, p.Breed)
	return ctx, req
}

func priorityDescription(p Profile) string {
	switch p.Situation {
	case recommend.SituationGettingThisWeek:
		return "Urgent prep before pet arrives"
	case recommend.SituationNewParent:
		return "Critical first steps for new parents"
	}
	return "Most important things to focus on right now"
}

// BuildPrompt renders the generation prompt for a profile and entry.
func BuildPrompt(p Profile, entry Entry) (string, error) {
	tmpl, err := prompts.Get("guide.json", "generate-guide")
	if err != nil {
		return "", err
	}
	format, err := prompts.Get("guide.json", "output-format")
	if err != nil {
		return "", err
	}

	var ctx, reqs string
	if entry == EntryDirect {
		ctx, reqs = directContext(p)
	} else {
		p = quizDefaults(p)
		ctx, reqs = quizContext(p)
	}

	subject := "their pet"
	if p.Breed != "" {
		subject = p.Breed
	}

	format = prompts.Format(format, map[string]string{"PriorityDescription": priorityDescription(p)})
	return prompts.Format(tmpl, map[string]string{
		"Context":      ctx,
		"Requirements": reqs,
		"Subject":      subject,
		"BreedSection": fmt.Sprintf("%q", breedSectionTitle(p, entry)),
		"Format":       format,
	}), nil
}
