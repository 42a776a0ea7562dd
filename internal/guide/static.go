package guide

import (
	"strings"
	"time"

	"github.com/thepetra/petra/internal/llm"
	"github.com/thepetra/petra/internal/recommend"
)

// Static builds the template guide for a profile. It needs no model and is
// used whenever generation is unavailable or fails.
func Static(p Profile, entry Entry) *Guide {
	return &Guide{
		Profile:     p,
		Entry:       entry,
		Sections:    staticSections(p, entry),
		GeneratedAt: time.Now().UTC(),
		Source:      llm.SourceFallback,
	}
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

func staticSections(p Profile, entry Entry) []Section {
	firstTime := p.firstTime()
	young := p.Young()
	health := p.HasConcern(recommend.ConcernHealth)

	meals := pick(p.Weeks() < 16, "4 meals", "3 meals")

	return []Section{
		{
			Title:       "Today's Priority",
			Description: pick(p.newParent(), "Critical first steps for new pet parents", "Most important things to focus on right now"),
			Icon:        "🎯",
			Contents: []Content{
				{
					ID:    "1",
					Title: pick(firstTime, "Set Up Essential Supplies", "Review Your Setup"),
					Content: pick(firstTime,
						"Get the basics ready: food and water bowls, bed, collar with ID tag, leash, and age-appropriate food. Choose a quiet spot for feeding and sleeping away from high-traffic areas.",
						"Double-check that you have all essentials in place. Ensure food is age-appropriate, water is fresh, and sleeping area is comfortable. Update ID tags with current contact information."),
					Category: CategoryPriority, Difficulty: Beginner, Order: 1,
				},
				{
					ID:    "2",
					Title: "Establish Feeding Routine",
					Content: pick(young,
						"Young pets need "+meals+" per day at consistent times. Measure portions according to food guidelines for their weight. Never free-feed puppies as it makes house training harder.",
						"Adult pets do well with 2 meals daily. Maintain consistent feeding times to establish routine. Avoid feeding human food to prevent digestive issues and obesity."),
					Category: CategoryPriority, Difficulty: Beginner, Order: 2,
				},
				{
					ID:    "3",
					Title: pick(health, "Schedule Urgent Vet Visit", "Book Wellness Check"),
					Content: pick(health,
						"Book a vet appointment within 48 hours. Bring any medical records from breeder. Discuss your health concerns in detail. Ask about vaccination schedule and preventive care.",
						"Schedule a wellness check within the first week. This establishes a baseline for future care. Bring medical records and prepare questions about diet, exercise, and behavior."),
					Category: CategoryPriority, Difficulty: Beginner, Order: 3,
				},
				{
					ID:       "4",
					Title:    "Create Safe Environment",
					Content:  "Pet-proof your home by removing toxic plants, securing cabinets, covering electrical cords, and removing small objects. Set up a safe space where your pet can retreat when overwhelmed.",
					Category: CategoryPriority, Difficulty: Beginner, Order: 4,
				},
			},
		},
		{
			Title:       "This Week's Focus",
			Description: "Key activities and milestones for the next 7 days",
			Icon:        "📅",
			Contents: []Content{
				{
					ID:    "5",
					Title: pick(p.HasConcern(recommend.ConcernBehavior), "Start Training Basics", "Begin House Training"),
					Content: pick(p.HasConcern(recommend.ConcernBehavior),
						`Start with simple commands: "sit", "stay", and "come". Use positive reinforcement with treats and praise. Keep sessions short (5-10 minutes) and fun. Practice multiple times daily in different locations.`,
						"Take your pet outside every 2 hours, after meals, after naps, and first thing in morning. Praise immediately when they go in the right spot. Clean accidents with enzymatic cleaner to remove scent."),
					Category: CategoryWeekly, Difficulty: Intermediate, Order: 1,
				},
				{
					ID:    "6",
					Title: pick(young, "Start Early Socialization", "Maintain Social Skills"),
					Content: pick(young,
						"Introduce your pet to different people, sounds, and sights in a controlled way. Keep experiences positive. Avoid overwhelming situations. The socialization window (3-14 weeks) is critical for lifelong behavior.",
						"Continue exposing your pet to various situations to prevent fear or aggression. Regular walks, visits to pet-friendly stores, and controlled interactions with other pets help maintain social skills."),
					Category: CategoryWeekly, Difficulty: Intermediate, Order: 2,
				},
				{
					ID:       "7",
					Title:    "Establish Daily Routine",
					Content:  "Create a consistent schedule for feeding, walks, play, and sleep. Pets thrive on routine. Post the schedule where everyone can see it. Get all family members involved in daily care.",
					Category: CategoryWeekly, Difficulty: Beginner, IsPremium: true, Order: 3,
				},
				{
					ID:    "8",
					Title: pick(p.HasConcern(recommend.ConcernEmergency), "Prepare Emergency Kit", "Plan Exercise Routine"),
					Content: pick(p.HasConcern(recommend.ConcernEmergency),
						"Assemble a pet first aid kit with gauze, antiseptic, tweezers, and emergency contact numbers. Save 24-hour vet clinic contact. Learn basic first aid: how to handle bleeding, choking, and heatstroke.",
						"Plan age and breed-appropriate exercise. Puppies need short, frequent play sessions. Adults need daily walks and mental stimulation. Mix physical exercise with training and puzzle toys."),
					Category: CategoryWeekly, Difficulty: Intermediate, IsPremium: true, Order: 4,
				},
			},
		},
		{
			Title:       "Common Mistakes to Avoid",
			Description: "Learn from others and skip these pitfalls",
			Icon:        "⚠️",
			Contents: []Content{
				{
					ID:    "9",
					Title: pick(firstTime, "Expecting Too Much Too Soon", "Inconsistent Rules"),
					Content: pick(firstTime,
						"Your pet needs time to adjust (typically 3 days to 3 weeks). Don't expect perfect behavior immediately. Be patient with accidents and mistakes. Focus on bonding before intensive training.",
						"Everyone in household must enforce same rules. If one person allows couch access and another doesn't, you'll confuse your pet. Hold a family meeting to agree on boundaries and commands."),
					Category: CategoryMistakes, Difficulty: Beginner, Order: 1,
				},
				{
					ID:       "10",
					Title:    "Overfeeding Treats",
					Content:  "Treats should be less than 10% of daily calories. Many new parents over-treat during training. Use tiny pieces or part of regular food as rewards. Obesity is a serious health risk.",
					Category: CategoryMistakes, Difficulty: Beginner, Order: 2,
				},
				{
					ID:    "11",
					Title: pick(young, "Skipping Socialization", "Neglecting Exercise"),
					Content: pick(young,
						"The critical socialization window is 3-14 weeks. Missing it leads to fearful or aggressive adult behavior. Safely expose young pets to various people, animals, sounds, and environments.",
						"Insufficient exercise leads to destructive behavior, obesity, and anxiety. Your pet needs daily physical and mental stimulation appropriate to age and breed. Bored pets develop bad habits."),
					Category: CategoryMistakes, Difficulty: Advanced, Order: 3,
				},
				{
					ID:       "12",
					Title:    "Using Punishment-Based Training",
					Content:  `Yelling, hitting, or "dominance" methods damage trust and can create aggressive behavior. Use positive reinforcement instead. Reward good behavior, redirect unwanted behavior, and be patient.`,
					Category: CategoryMistakes, Difficulty: Intermediate, IsPremium: true, Order: 4,
				},
			},
		},
		{
			Title:       breedSectionTitle(p, entry),
			Description: "Important considerations for your pet",
			Icon:        "🔔",
			Contents: []Content{
				{ID: "13", Title: "Exercise Requirements", Content: exerciseTip(p.Breed), Category: CategoryAlerts, Difficulty: Intermediate, Order: 1},
				{ID: "14", Title: "Grooming Essentials", Content: groomingTip(p.Breed), Category: CategoryAlerts, Difficulty: Beginner, IsPremium: true, Order: 2},
				{ID: "15", Title: "Health Watch Points", Content: healthTip(p.Breed), Category: CategoryAlerts, Difficulty: Advanced, IsPremium: true, Order: 3},
				{ID: "16", Title: "Training Considerations", Content: trainingTip(p.Breed), Category: CategoryAlerts, Difficulty: Intermediate, IsPremium: true, Order: 4},
			},
		},
	}
}

// breedTip is one keyword-matched piece of breed advice. The first entry
// whose keywords match the breed wins.
type breedTip struct {
	keywords []string
	text     string
}

func matchTip(breed, none, other string, tips []breedTip) string {
	if breed == "" {
		return none
	}
	b := strings.ToLower(breed)
	for _, t := range tips {
		for _, k := range t.keywords {
			if strings.Contains(b, k) {
				return t.text
			}
		}
	}
	return other
}

func exerciseTip(breed string) string {
	return matchTip(breed,
		"Most pets need 30-60 minutes of daily exercise. Adjust based on age, health, and energy level. Include walks, play time, and mental stimulation like puzzle toys.",
		"This breed typically needs 30-45 minutes of daily exercise. Include walks, play sessions, and training. Adjust based on individual energy levels and weather conditions.",
		[]breedTip{
			{[]string{"husky", "shepherd", "retriever"}, "This high-energy breed needs 60-90 minutes of vigorous exercise daily. Include running, swimming, or hiking. Under-exercising leads to destructive behavior. Mental challenges are equally important."},
			{[]string{"bulldog", "pug"}, "This breed has moderate exercise needs due to brachycephalic (flat-faced) features. 20-30 minutes daily in cooler temperatures. Avoid overexertion and watch for breathing difficulties."},
			{[]string{"cat"}, "Cats need 20-30 minutes of active play daily. Use interactive toys, laser pointers, and climbing structures. Indoor cats especially need regular exercise to prevent obesity."},
		})
}

func groomingTip(breed string) string {
	return matchTip(breed,
		"Brush coat weekly, trim nails monthly, clean ears as needed. Bath when dirty using pet-safe shampoo. Check for skin issues, lumps, or parasites during grooming.",
		"Brush 2-3 times weekly to reduce shedding and keep coat healthy. Trim nails every 2-3 weeks. Clean ears monthly. Bath every 2-3 months or as needed. Check paws and teeth regularly.",
		[]breedTip{
			{[]string{"poodle", "shih tzu", "maltese"}, "This breed requires daily brushing and professional grooming every 4-6 weeks. Hair grows continuously and mats easily. Regular eye cleaning is essential. Consider keeping coat trimmed short for easier maintenance."},
			{[]string{"husky", "retriever"}, "Expect heavy shedding, especially seasonally. Brush 2-3 times weekly (daily during shedding season). Bath monthly. Check and clean ears after swimming. Trim nails regularly."},
			{[]string{"persian", "maine coon"}, "Long-haired cats need daily brushing to prevent mats. Clean face folds daily on flat-faced breeds. Trim nails every 2-3 weeks. Most cats don't need baths unless very dirty."},
		})
}

func healthTip(breed string) string {
	return matchTip(breed,
		"Schedule annual wellness checks. Keep vaccinations current. Use monthly flea, tick, and heartworm prevention. Watch for changes in appetite, energy, or bathroom habits. Address concerns promptly.",
		"Keep up with preventive care including vaccinations and parasite control. Watch for breed-specific issues. Maintain healthy weight. Address any changes in behavior or health immediately. Build relationship with trusted vet.",
		[]breedTip{
			{[]string{"shepherd", "retriever", "labrador"}, "This breed is prone to hip and elbow dysplasia. Maintain healthy weight to reduce joint stress. Consider joint supplements. Watch for limping or difficulty rising. Screen for hereditary eye conditions annually."},
			{[]string{"bulldog", "pug"}, "Brachycephalic breeds face breathing issues. Watch for overheating, especially in hot/humid weather. Monitor breathing during exercise. Prone to eye injuries and skin fold infections. Keep facial wrinkles clean and dry."},
			{[]string{"persian", "siamese"}, "Monitor for kidney disease (common in cats). Ensure plenty of water intake. Persian cats prone to eye tearing and breathing issues. Schedule dental cleanings. Watch for signs of urinary blockage in males."},
		})
}

func trainingTip(breed string) string {
	return matchTip(breed,
		"Use positive reinforcement consistently. Start with basic commands. Keep sessions short and fun. Be patient and consistent. Socialize early and often. Consider professional training classes.",
		"Start training early using positive reinforcement. This breed responds well to consistency and patience. Keep sessions engaging with treats and praise. Socialize with other pets and people. Consider group classes for structure.",
		[]breedTip{
			{[]string{"shepherd", "border collie"}, "This intelligent breed learns quickly but needs mental stimulation. Teach advanced commands and tricks. Use puzzle toys and varied activities. Without challenges, they become bored and destructive. Excellent for agility training."},
			{[]string{"bulldog", "beagle"}, "This breed can be stubborn. Use high-value treats and keep training fun. Short, frequent sessions work best. Be patient and consistent. They may be food-motivated, making treat-based training effective."},
			{[]string{"cat"}, `Cats respond to positive reinforcement. Use clicker training for tricks. Train using play and treats. Keep sessions very short (2-3 minutes). Focus on litter training, scratching post use, and basic commands like "come".`},
		})
}
