package recommend

import "strings"

// Breeds commonly and legally sold in Kerala.
var (
	KeralaDogs = []string{
		"Labrador Retriever", "Golden Retriever", "German Shepherd", "Beagle", "Pug",
		"Shih Tzu", "Cocker Spaniel", "Pomeranian", "Dachshund", "Rottweiler", "Doberman",
		"Boxer", "Siberian Husky", "Great Dane", "Bulldog", "French Bulldog",
		"Yorkshire Terrier", "Maltese",
	}
	KeralaCats = []string{
		"Persian Cat", "Siamese Cat", "British Shorthair", "Maine Coon", "Bengal Cat",
		"Ragdoll", "Himalayan Cat", "American Shorthair", "Exotic Shorthair", "Scottish Fold",
	}
)

func catalogList() string {
	return strings.Join(append(append([]string{}, KeralaDogs...), KeralaCats...), ", ")
}

var firstTimePicks = []Recommendation{
	{
		Breed:          "Labrador Retriever",
		Type:           "dog",
		MatchScore:     90,
		BestFor:        "Families and first-time owners",
		WhyRecommended: "Labs are friendly, easy to train, and great with families. They're one of the most popular breeds in Kerala for good reason - gentle temperament and high intelligence make them ideal for beginners.",
		ClimateNote:    "Adapts well but needs AC/cool space during summer",
		CareLevel:      CareMedium,
		EstimatedAge:   "8-12 weeks",
		KeyTraits:      []string{"friendly", "easy to train", "family-oriented", "gentle"},
		Considerations: "Need daily exercise and space to play. Moderate grooming required.",
	},
	{
		Breed:          "Beagle",
		Type:           "dog",
		MatchScore:     88,
		BestFor:        "Active first-time owners",
		WhyRecommended: "Beagles are small to medium-sized, friendly, and great with children. They're relatively easy to care for and their size makes them suitable for apartments. Very playful and social.",
		ClimateNote:    "Handles Kerala climate reasonably well",
		CareLevel:      CareMedium,
		EstimatedAge:   "8-10 weeks",
		KeyTraits:      []string{"friendly", "playful", "compact size", "social"},
		Considerations: "Can be vocal (barking). Need daily walks and mental stimulation.",
	},
	{
		Breed:          "Pug",
		Type:           "dog",
		MatchScore:     92,
		BestFor:        "First-time owners in apartments",
		WhyRecommended: "Pugs are small, affectionate, and perfect for first-time owners. They're low-energy, great with families, and adapt well to apartment living. Their playful personality and manageable size make them ideal beginners' pets.",
		ClimateNote:    "Moderate heat tolerance, needs cool indoor space",
		CareLevel:      CareLow,
		EstimatedAge:   "8-10 weeks",
		KeyTraits:      []string{"affectionate", "low-energy", "compact", "family-friendly"},
		Considerations: "Watch for breathing issues in hot weather. Keep indoors during peak heat. Regular but simple grooming needed.",
	},
	{
		Breed:          "Persian Cat",
		Type:           "cat",
		MatchScore:     89,
		BestFor:        "Indoor-only, calm environments",
		WhyRecommended: "Persian cats are calm, gentle, and perfect for indoor living. They're low-energy and enjoy a peaceful home. Great for apartments and families seeking a relaxed companion.",
		ClimateNote:    "Needs AC in hot weather due to thick coat",
		CareLevel:      CareMedium,
		EstimatedAge:   "3-4 months",
		KeyTraits:      []string{"calm", "gentle", "indoor-friendly", "quiet"},
		Considerations: "Requires daily grooming due to long coat. Must be kept indoors in AC.",
	},
}

var experiencedPicks = []Recommendation{
	{
		Breed:          "German Shepherd",
		Type:           "dog",
		MatchScore:     94,
		BestFor:        "Experienced owners",
		WhyRecommended: "Highly intelligent, loyal, and versatile. German Shepherds excel in training and are excellent protectors. They form strong bonds with families and are very trainable. Perfect for experienced handlers.",
		ClimateNote:    "Needs cool environment, AC recommended",
		CareLevel:      CareHigh,
		EstimatedAge:   "8-10 weeks",
		KeyTraits:      []string{"intelligent", "loyal", "protective", "trainable"},
		Considerations: "Need significant exercise, mental stimulation, and space. Regular grooming required.",
	},
	{
		Breed:          "Golden Retriever",
		Type:           "dog",
		MatchScore:     91,
		BestFor:        "Active families",
		WhyRecommended: "Golden Retrievers are friendly, intelligent, and excellent with families. They're highly trainable and make wonderful companions. Great for those who want an active, loving pet.",
		ClimateNote:    "Adapts well but needs AC during hot months",
		CareLevel:      CareMedium,
		EstimatedAge:   "8-12 weeks",
		KeyTraits:      []string{"friendly", "intelligent", "gentle", "active"},
		Considerations: "Need daily exercise and space to play. Regular grooming and coat care needed.",
	},
	{
		Breed:          "Doberman",
		Type:           "dog",
		MatchScore:     88,
		BestFor:        "Experienced owners with space",
		WhyRecommended: "Dobermans are highly intelligent, protective, and loyal. They're excellent guard dogs and form strong bonds with families. Perfect for experienced handlers who want a protective companion.",
		ClimateNote:    "Short coat handles Kerala heat reasonably well",
		CareLevel:      CareHigh,
		EstimatedAge:   "8-10 weeks",
		KeyTraits:      []string{"loyal", "protective", "intelligent", "alert"},
		Considerations: "Need space, regular exercise, and consistent training. Can be protective of territory.",
	},
	{
		Breed:          "Bengal Cat",
		Type:           "cat",
		MatchScore:     87,
		BestFor:        "Active, experienced cat owners",
		WhyRecommended: "Intelligent, active, and stunning. Bengal cats are highly interactive and can be trained. They're perfect for experienced owners who want an engaging, dog-like cat.",
		ClimateNote:    "Short coat handles Kerala climate well",
		CareLevel:      CareMedium,
		EstimatedAge:   "3-4 months",
		KeyTraits:      []string{"intelligent", "active", "playful", "trainable"},
		Considerations: "Very active, needs lots of play and stimulation. Can be demanding.",
	},
}

// RuleBased returns the fixed recommendation list for a profile: the
// beginner list for first-time owners, the experienced list otherwise.
func RuleBased(p Profile) []Recommendation {
	src := experiencedPicks
	if p.FirstTime() {
		src = firstTimePicks
	}
	out := make([]Recommendation, len(src))
	for i, r := range src {
		r.KeyTraits = append([]string(nil), r.KeyTraits...)
		out[i] = r
	}
	return out
}
