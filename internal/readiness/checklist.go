package readiness

// Priority ranks a checklist task.
type Priority string

// Priority values
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ChecklistItem is one preparation task. Completed is always false when
// generated; clients toggle it locally.
type ChecklistItem struct {
	Task      string   `json:"task"`
	Priority  Priority `json:"priority"`
	Completed bool     `json:"completed"`
}

// Checklist task text.
const (
	TaskIndoorSpace   = "Set up safe indoor space for pet"
	TaskLongAbsences  = "Arrange pet care for long absences"
	TaskWalkingRoutes = "Find safe walking routes near home"
	TaskDogEssentials = "Get dog essentials (leash, collar, bowls, bed)"
	TaskSecureWindows = "Secure windows and balconies"
	TaskLitterBox     = "Set up litter box area"
	TaskBirdCage      = "Set up cage in safe, ventilated area"
	TaskAquarium      = "Set up aquarium with filter and heater"
	TaskVetExpenses   = "Plan for unexpected vet expenses"
	TaskAllergyDoctor = "Consult doctor about pet allergies"
)

// checklistRule emits Task at Priority when When holds. Rules are evaluated
// in slice order, which is the order items appear in the checklist.
type checklistRule struct {
	Task     string
	Priority Priority
	When     func(a *Answers) bool
}

var checklistRules = []checklistRule{
	{TaskIndoorSpace, PriorityHigh, func(a *Answers) bool { return !a.hasUsableOutdoorSpace() }},
	{TaskLongAbsences, PriorityHigh, func(a *Answers) bool { return a.HoursEmpty == Hours9OrMore }},
	{TaskWalkingRoutes, PriorityHigh, func(a *Answers) bool {
		return a.Considering(PetDog) && a.dogSafeWalking() != Yes
	}},
	{TaskDogEssentials, PriorityHigh, func(a *Answers) bool { return a.Considering(PetDog) }},
	{TaskSecureWindows, PriorityHigh, func(a *Answers) bool {
		return a.Considering(PetCat) && a.catSecuredSpaces() != Yes
	}},
	{TaskLitterBox, PriorityHigh, func(a *Answers) bool { return a.Considering(PetCat) }},
	{TaskBirdCage, PriorityHigh, func(a *Answers) bool { return a.Considering(PetBird) }},
	{TaskAquarium, PriorityHigh, func(a *Answers) bool { return a.Considering(PetFish) }},
	{TaskVetExpenses, PriorityMedium, func(a *Answers) bool { return a.MonthlyBudget == BudgetUpTo1k }},
	{TaskAllergyDoctor, PriorityHigh, func(a *Answers) bool { return a.HasAllergies == Yes }},
}

// Checklist returns the preparation tasks for a submission in their fixed
// order. The result is never nil.
func Checklist(a *Answers) []ChecklistItem {
	if a == nil {
		a = &Answers{}
	}
	items := make([]ChecklistItem, 0, len(checklistRules))
	for _, r := range checklistRules {
		if r.When(a) {
			items = append(items, ChecklistItem{Task: r.Task, Priority: r.Priority})
		}
	}
	return items
}
