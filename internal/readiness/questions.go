package readiness

import "slices"

// QuestionType controls how a question is answered.
type QuestionType string

// QuestionType values
const (
	SingleSelect QuestionType = "single-select"
	MultiSelect  QuestionType = "multi-select"
	Boolean      QuestionType = "boolean"
)

// Option is one selectable answer.
type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// Question is one entry of the questionnaire. PetType is set only on the
// conditional follow-ups, whose answers belong under petSpecificAnswers.
type Question struct {
	Section  string       `json:"section"`
	Key      string       `json:"key"`
	Question string       `json:"question"`
	Subtitle string       `json:"subtitle,omitempty"`
	Type     QuestionType `json:"type"`
	Options  []Option     `json:"options"`
	PetType  PetType      `json:"petType,omitempty"`
}

// petTypesKey is the question after which pet follow-ups are inserted.
const petTypesKey = "consideringPetTypes"

func yesNo(yes, no string) []Option {
	return []Option{{Value: "yes", Label: yes}, {Value: "no", Label: no}}
}

var quickQuestions = []Question{
	{Section: "home", Key: "city", Question: "Which city are you in?", Subtitle: "To check if Petra services are available", Type: SingleSelect,
		Options: []Option{{Value: "kochi", Label: "Kochi"}, {Value: "other", Label: "Other City"}}},
	{Section: "home", Key: "homeType", Question: "What type of home do you live in?", Type: SingleSelect,
		Options: []Option{
			{Value: string(HomeApartment), Label: "Apartment"},
			{Value: string(HomeIndependentHouse), Label: "Independent House"},
			{Value: string(HomeFarmhouse), Label: "Farmhouse"},
			{Value: string(HomeHostelPG), Label: "Hostel / PG"},
		}},
	{Section: "home", Key: "outdoorAccess", Question: "What outdoor spaces do you have?", Subtitle: "Select all that apply", Type: MultiSelect,
		Options: []Option{
			{Value: string(OutdoorBalcony), Label: "Balcony"},
			{Value: string(OutdoorTerrace), Label: "Terrace"},
			{Value: string(OutdoorPrivateYard), Label: "Private Yard"},
			{Value: string(OutdoorSharedArea), Label: "Shared Area"},
			{Value: string(OutdoorNone), Label: "No Outdoor Space"},
		}},
	{Section: "home", Key: "hoursEmpty", Question: "How many hours is your home empty on weekdays?", Type: SingleSelect,
		Options: []Option{
			{Value: string(Hours0To2), Label: "0-2 hours", Description: "Someone usually home"},
			{Value: string(Hours3To5), Label: "3-5 hours", Description: "Short periods alone"},
			{Value: string(Hours6To8), Label: "6-8 hours", Description: "Regular work hours"},
			{Value: string(Hours9OrMore), Label: "9+ hours", Description: "Long periods alone"},
		}},
	{Section: "lifestyle", Key: "travelFrequency", Question: "How often do you travel overnight?", Type: SingleSelect,
		Options: []Option{
			{Value: string(TravelRarely), Label: "Rarely", Description: "Few times a year"},
			{Value: string(TravelMonthly), Label: "Once a Month"},
			{Value: string(TravelFewTimesMonth), Label: "Few Times a Month"},
			{Value: string(TravelWeekly), Label: "Weekly or More"},
		}},
	{Section: "lifestyle", Key: "dailyTimeAvailable", Question: "Daily time you can give for pet care?", Subtitle: "Feeding, cleaning, play, walks, training", Type: SingleSelect,
		Options: []Option{
			{Value: string(Daily15To30Min), Label: "15-30 minutes"},
			{Value: string(Daily30To60Min), Label: "30-60 minutes"},
			{Value: string(Daily1To2Hours), Label: "1-2 hours"},
			{Value: string(Daily2PlusHrs), Label: "2+ hours"},
		}},
	{Section: "lifestyle", Key: "experienceLevel", Question: "Your pet parenting experience?", Type: SingleSelect,
		Options: []Option{
			{Value: string(ExperienceFirstTime), Label: "First Time", Description: "Never had pets"},
			{Value: string(ExperienceSome), Label: "Some Experience", Description: "Had family pets"},
			{Value: string(ExperienceVery), Label: "Very Experienced", Description: "Owned & cared for pets"},
		}},
	{Section: "preferences", Key: petTypesKey, Question: "Which pets are you considering?", Subtitle: "Select all you're open to", Type: MultiSelect,
		Options: []Option{
			{Value: string(PetDog), Label: "Dog"},
			{Value: string(PetCat), Label: "Cat"},
			{Value: string(PetBird), Label: "Bird"},
			{Value: string(PetFish), Label: "Fish"},
			{Value: string(PetSmallAnimal), Label: "Rabbit / Guinea Pig / Hamster"},
		}},
	{Section: "preferences", Key: "sizePreference", Question: "Size preference for your pet?", Type: SingleSelect,
		Options: []Option{
			{Value: "small", Label: "Small", Description: "Easy to handle, less space"},
			{Value: "medium", Label: "Medium", Description: "Moderate size & needs"},
			{Value: "large", Label: "Large", Description: "Need more space & exercise"},
			{Value: "any", Label: "Any Size", Description: "Open to all"},
		}},
	{Section: "preferences", Key: "lookingFor", Question: "What are you mainly looking for?", Subtitle: "Select all that apply", Type: MultiSelect,
		Options: []Option{
			{Value: "playful", Label: "Playful Companion"},
			{Value: "calm", Label: "Calm Companion"},
			{Value: "observe", Label: "To Observe & Enjoy"},
			{Value: "kids", Label: "For Kids to Learn"},
		}},
	{Section: "practical", Key: "monthlyBudget", Question: "Comfortable monthly budget for pet care?", Subtitle: "Food, vet, grooming, supplies", Type: SingleSelect,
		Options: []Option{
			{Value: string(BudgetUpTo1k), Label: "Up to ₹1,000"},
			{Value: string(Budget1kTo3k), Label: "₹1,000 - ₹3,000"},
			{Value: string(Budget3kTo6k), Label: "₹3,000 - ₹6,000"},
			{Value: string(Budget6kOrMore), Label: "₹6,000+"},
		}},
	{Section: "practical", Key: "hasAllergies", Question: "Anyone in family with pet-related allergies?", Subtitle: "Fur, feathers, hay, dust", Type: Boolean,
		Options: []Option{{Value: "no", Label: "No Allergies"}, {Value: "yes", Label: "Yes, We Have Allergies"}}},
	{Section: "practical", Key: "familySupport", Question: "Is everyone at home supportive of getting a pet?", Type: Boolean,
		Options: yesNo("Yes, Everyone's On Board!", "Not Everyone Agrees")},
}

var petQuestions = map[PetType][]Question{
	PetDog: {
		{Key: "safeWalking", Question: "Do you have safe walking options near your home?", Type: Boolean,
			Options: yesNo("Yes, Safe Walking Areas", "No Safe Areas")},
		{Key: "indoorOutdoor", Question: "Where will the dog stay mostly?", Type: SingleSelect,
			Options: []Option{{Value: "indoor", Label: "Indoors"}, {Value: "outdoor", Label: "Outdoors"}, {Value: "both", Label: "Both"}}},
	},
	PetCat: {
		{Key: "indoorOnly", Question: "Will your cat be indoor-only?", Type: Boolean,
			Options: []Option{
				{Value: "yes", Label: "Indoor Only", Description: "Safer & recommended"},
				{Value: "no", Label: "Indoor-Outdoor", Description: "Higher risks"},
			}},
		{Key: "securedSpaces", Question: "Are windows & balconies secured?", Subtitle: "To prevent falls/escapes", Type: Boolean,
			Options: yesNo("Yes, Secured", "Not Yet / No")},
	},
	PetBird: {
		{Key: "noiseOk", Question: "Comfortable with bird noise?", Subtitle: "Chirping, squawking, especially mornings", Type: Boolean,
			Options: yesNo("Yes, It's Fine!", "Prefer Quieter Pets")},
	},
	PetFish: {
		{Key: "tankSizeReady", Question: "What tank size are you thinking?", Type: SingleSelect,
			Options: []Option{
				{Value: "small", Label: "Small (< 50L)", Description: "Few fish"},
				{Value: "medium", Label: "Medium (50-150L)", Description: "Community tank"},
				{Value: "large", Label: "Large (150L+)", Description: "Full setup"},
			}},
	},
	PetSmallAnimal: {
		{Key: "freeRoamTime", Question: "Will they get supervised free-roam time?", Type: Boolean,
			Options: yesNo("Yes, Daily Free Time", "Mostly in Enclosure")},
	},
}

// QuickQuestions returns a copy of the base questionnaire.
func QuickQuestions() []Question {
	return slices.Clone(quickQuestions)
}

// ExpandQuestions returns the questionnaire with follow-ups for each selected
// pet type inserted directly after the pet-type question, in selection order.
// Unknown and repeated pet types are ignored.
func ExpandQuestions(petTypes []PetType) []Question {
	var followUps []Question
	seen := make(map[PetType]bool, len(petTypes))
	for _, p := range petTypes {
		qs, ok := petQuestions[p]
		if !ok || seen[p] {
			continue
		}
		seen[p] = true
		for _, q := range qs {
			q.Section = "pet-specific"
			q.PetType = p
			followUps = append(followUps, q)
		}
	}

	out := make([]Question, 0, len(quickQuestions)+len(followUps))
	for _, q := range quickQuestions {
		out = append(out, q)
		if q.Key == petTypesKey {
			out = append(out, followUps...)
		}
	}
	return out
}
