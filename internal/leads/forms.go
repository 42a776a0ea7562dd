// Package leads handles the site's lead capture forms: subscription waitlist,
// pet requests, pet finder requests and product launch notifications.
package leads

// Form identifies a lead form.
type Form string

// Form values
const (
	FormWaitlist      Form = "waitlist"
	FormPetRequest    Form = "pet-request"
	FormPetFinder     Form = "pet-finder"
	FormProductNotify Form = "product-notify"
)

// Waitlist is an early-access signup for a subscription plan.
type Waitlist struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email,max=254"`
	Phone string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Plan  string `json:"plan" validate:"required,max=50"`
}

// PetRequest asks the team to source a specific pet.
type PetRequest struct {
	FullName            string `json:"fullName" validate:"required,max=100"`
	Email               string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Phone               string `json:"phone" validate:"required,max=20"`
	PetType             string `json:"petType" validate:"required,max=50"`
	BreedSizePreference string `json:"breedSizePreference,omitempty" validate:"max=100"`
	AgePreference       string `json:"agePreference,omitempty" validate:"max=50"`
	BudgetRange         int64  `json:"budgetRange,omitempty" validate:"min=0"`
	Location            string `json:"location,omitempty" validate:"max=100"`
	AdditionalNotes     string `json:"additionalNotes,omitempty" validate:"max=2000"`
}

// PetFinder is the detailed "find my pet" request.
type PetFinder struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Email       string   `json:"email" validate:"required,email,max=254"`
	Phone       string   `json:"phone,omitempty" validate:"omitempty,max=20"`
	City        string   `json:"city" validate:"required,max=100"`
	PetType     string   `json:"petType" validate:"required,max=50"`
	Breed       string   `json:"breed,omitempty" validate:"max=100"`
	AgeRange    string   `json:"ageRange" validate:"required,max=50"`
	Budget      string   `json:"budget" validate:"required,max=50"`
	Temperament []string `json:"temperament,omitempty" validate:"max=10,dive,max=50"`
	Notes       string   `json:"notes,omitempty" validate:"max=2000"`
}

// ProductNotify asks to be told when a product category launches.
type ProductNotify struct {
	Email   string `json:"email" validate:"required,email,max=254"`
	Product string `json:"product" validate:"required,max=50"`
}

// productInfo describes a shop category in notification mails.
type productInfo struct {
	Emoji       string
	Description string
}

var products = map[string]productInfo{
	"Food":        {Emoji: "🍖", Description: "Premium nutrition for every life stage"},
	"Accessories": {Emoji: "🎾", Description: "Quality toys, collars, beds & more"},
	"Health":      {Emoji: "💊", Description: "Supplements, vitamins & care products"},
}

func productFor(name string) productInfo {
	if p, ok := products[name]; ok {
		return p
	}
	return productInfo{Emoji: "🛍️", Description: "Premium pet products"}
}
