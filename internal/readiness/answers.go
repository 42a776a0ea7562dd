// Package readiness scores how prepared a household is to adopt a pet.
//
// Scoring is a pure function of the questionnaire answers: no I/O, no clock,
// no randomness. Missing or unrecognised answers never fail; they simply do
// not earn points.
package readiness

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
	"strings"
)

// HomeType is the kind of dwelling the respondent lives in.
type HomeType string

// HomeType values
const (
	HomeApartment        HomeType = "apartment"
	HomeIndependentHouse HomeType = "independent-house"
	HomeFarmhouse        HomeType = "farmhouse"
	HomeHostelPG         HomeType = "hostel-pg"
)

// OutdoorSpace is one kind of outdoor area available at home.
type OutdoorSpace string

// OutdoorSpace values
const (
	OutdoorBalcony     OutdoorSpace = "balcony"
	OutdoorTerrace     OutdoorSpace = "terrace"
	OutdoorPrivateYard OutdoorSpace = "private-yard"
	OutdoorSharedArea  OutdoorSpace = "shared-area"
	OutdoorNone        OutdoorSpace = "none"
)

// HoursEmpty is the weekday band during which nobody is home.
type HoursEmpty string

// HoursEmpty values
const (
	Hours0To2    HoursEmpty = "0-2"
	Hours3To5    HoursEmpty = "3-5"
	Hours6To8    HoursEmpty = "6-8"
	Hours9OrMore HoursEmpty = "9+"
)

// DailyTime is the daily time band available for pet care.
type DailyTime string

// DailyTime values
const (
	Daily15To30Min DailyTime = "15-30"
	Daily30To60Min DailyTime = "30-60"
	Daily1To2Hours DailyTime = "1-2"
	Daily2PlusHrs  DailyTime = "2+"
)

// TravelFrequency is how often the respondent travels overnight.
type TravelFrequency string

// TravelFrequency values
const (
	TravelRarely        TravelFrequency = "rarely"
	TravelMonthly       TravelFrequency = "monthly"
	TravelFewTimesMonth TravelFrequency = "few-times-month"
	TravelWeekly        TravelFrequency = "weekly"
)

// ExperienceLevel is the respondent's prior pet-keeping experience.
type ExperienceLevel string

// ExperienceLevel values
const (
	ExperienceFirstTime ExperienceLevel = "first-time"
	ExperienceSome      ExperienceLevel = "some-experience"
	ExperienceVery      ExperienceLevel = "very-experienced"
)

// Budget is the comfortable monthly spend band, in rupees.
type Budget string

// Budget values
const (
	BudgetUpTo1k   Budget = "up-to-1k"
	Budget1kTo3k   Budget = "1k-3k"
	Budget3kTo6k   Budget = "3k-6k"
	Budget6kOrMore Budget = "6k+"
)

// PetType is a kind of pet under consideration.
type PetType string

// PetType values
const (
	PetDog         PetType = "dog"
	PetCat         PetType = "cat"
	PetBird        PetType = "bird"
	PetFish        PetType = "fish"
	PetSmallAnimal PetType = "small-animal"
)

// YesNo is a tri-state boolean answer. The zero value means the question
// was not answered.
type YesNo int

// YesNo values
const (
	Unanswered YesNo = iota
	Yes
	No
)

// UnmarshalJSON accepts true/false as well as the "yes"/"no" strings the
// questionnaire submits. Anything else decodes to Unanswered.
func (y *YesNo) UnmarshalJSON(data []byte) error {
	raw := strings.ToLower(string(bytes.Trim(bytes.TrimSpace(data), `"`)))
	switch raw {
	case "true", "yes":
		*y = Yes
	case "false", "no":
		*y = No
	default:
		*y = Unanswered
	}
	return nil
}

// MarshalJSON writes "yes", "no", or null.
func (y YesNo) MarshalJSON() ([]byte, error) {
	switch y {
	case Yes:
		return []byte(`"yes"`), nil
	case No:
		return []byte(`"no"`), nil
	default:
		return []byte("null"), nil
	}
}

func (y YesNo) String() string {
	switch y {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "unanswered"
	}
}

// DogAnswers holds the dog-specific follow-up answers.
type DogAnswers struct {
	SafeWalking   YesNo  `json:"safeWalking"`
	IndoorOutdoor string `json:"indoorOutdoor,omitempty"`
}

// CatAnswers holds the cat-specific follow-up answers.
type CatAnswers struct {
	IndoorOnly    YesNo `json:"indoorOnly"`
	SecuredSpaces YesNo `json:"securedSpaces"`
}

// BirdAnswers holds the bird-specific follow-up answers.
type BirdAnswers struct {
	NoiseOK YesNo `json:"noiseOk"`
}

// FishAnswers holds the fish-specific follow-up answers.
type FishAnswers struct {
	TankSizeReady string `json:"tankSizeReady,omitempty"`
}

// SmallAnimalAnswers holds the small-animal follow-up answers.
type SmallAnimalAnswers struct {
	FreeRoamTime YesNo `json:"freeRoamTime"`
}

// PetSpecificAnswers groups the conditional follow-ups by pet type. A nil
// group means none of that pet's questions were asked.
type PetSpecificAnswers struct {
	Dogs         *DogAnswers         `json:"dogs,omitempty"`
	Cats         *CatAnswers         `json:"cats,omitempty"`
	Birds        *BirdAnswers        `json:"birds,omitempty"`
	Fish         *FishAnswers        `json:"fish,omitempty"`
	SmallAnimals *SmallAnimalAnswers `json:"smallAnimals,omitempty"`
}

// Answers is a single questionnaire submission. Every field is optional.
type Answers struct {
	City                string             `json:"city,omitempty"`
	HomeType            HomeType           `json:"homeType,omitempty"`
	OutdoorAccess       []OutdoorSpace     `json:"outdoorAccess,omitempty"`
	HoursEmpty          HoursEmpty         `json:"hoursEmpty,omitempty"`
	TravelFrequency     TravelFrequency    `json:"travelFrequency,omitempty"`
	DailyTimeAvailable  DailyTime          `json:"dailyTimeAvailable,omitempty"`
	ExperienceLevel     ExperienceLevel    `json:"experienceLevel,omitempty"`
	ConsideringPetTypes []PetType          `json:"consideringPetTypes,omitempty"`
	SizePreference      string             `json:"sizePreference,omitempty"`
	LookingFor          []string           `json:"lookingFor,omitempty"`
	PetSpecificAnswers  PetSpecificAnswers `json:"petSpecificAnswers"`
	MonthlyBudget       Budget             `json:"monthlyBudget,omitempty"`
	HasAllergies        YesNo              `json:"hasAllergies"`
	FamilySupport       YesNo              `json:"familySupport"`
}

// UnmarshalJSON decodes a submission leniently. A field of the wrong JSON
// type is left at its zero value instead of failing the whole submission.
// The multi-select fields also accept a single string as a one-item
// selection. Only malformed JSON is an error.
func (a *Answers) UnmarshalJSON(data []byte) error {
	type plain Answers
	aux := struct {
		*plain
		OutdoorAccess       json.RawMessage `json:"outdoorAccess"`
		ConsideringPetTypes json.RawMessage `json:"consideringPetTypes"`
		LookingFor          json.RawMessage `json:"lookingFor"`
	}{plain: (*plain)(a)}

	var typeErr *json.UnmarshalTypeError
	if err := json.Unmarshal(data, &aux); err != nil && !errors.As(err, &typeErr) {
		return err
	}
	a.OutdoorAccess = selection[OutdoorSpace](aux.OutdoorAccess)
	a.ConsideringPetTypes = selection[PetType](aux.ConsideringPetTypes)
	a.LookingFor = selection[string](aux.LookingFor)
	return nil
}

// selection reads a multi-select answer: an array keeps its non-empty
// strings, a lone string becomes one item, anything else is no selection.
func selection[T ~string](raw json.RawMessage) []T {
	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		if one == "" {
			return nil
		}
		return []T{T(one)}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	var out []T
	for _, item := range items {
		var v string
		if err := json.Unmarshal(item, &v); err == nil && v != "" {
			out = append(out, T(v))
		}
	}
	return out
}

// ParseAnswers decodes a JSON submission.
func ParseAnswers(data []byte) (*Answers, error) {
	var a Answers
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Considering reports whether pet type p is among the pets under consideration.
func (a *Answers) Considering(p PetType) bool {
	return slices.Contains(a.ConsideringPetTypes, p)
}

// hasUsableOutdoorSpace is true when at least one outdoor space was selected
// and "none" was not.
func (a *Answers) hasUsableOutdoorSpace() bool {
	return len(a.OutdoorAccess) > 0 && !slices.Contains(a.OutdoorAccess, OutdoorNone)
}

func (a *Answers) dogSafeWalking() YesNo {
	if a.PetSpecificAnswers.Dogs == nil {
		return Unanswered
	}
	return a.PetSpecificAnswers.Dogs.SafeWalking
}

func (a *Answers) catSecuredSpaces() YesNo {
	if a.PetSpecificAnswers.Cats == nil {
		return Unanswered
	}
	return a.PetSpecificAnswers.Cats.SecuredSpaces
}

func (a *Answers) birdNoiseOK() YesNo {
	if a.PetSpecificAnswers.Birds == nil {
		return Unanswered
	}
	return a.PetSpecificAnswers.Birds.NoiseOK
}
