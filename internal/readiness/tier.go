package readiness

// Tier is the readiness band a score falls into.
type Tier string

// Tiers, highest first.
const (
	TierHighlyReady      Tier = "Highly Ready"
	TierReady            Tier = "Ready"
	TierNeedsPreparation Tier = "Needs Preparation"
	TierNotReady         Tier = "Not Ready"
)

// tierBands maps inclusive lower bounds to tiers, highest first.
var tierBands = []struct {
	min  int
	tier Tier
}{
	{80, TierHighlyReady},
	{60, TierReady},
	{40, TierNeedsPreparation},
}

// TierFor returns the tier for a score in 0..100.
func TierFor(score int) Tier {
	for _, b := range tierBands {
		if score >= b.min {
			return b.tier
		}
	}
	return TierNotReady
}

// Headline is the one-line message shown on the score card.
func (t Tier) Headline() string {
	switch t {
	case TierHighlyReady:
		return "You're exceptionally well-prepared!"
	case TierReady:
		return "You're ready to welcome a pet!"
	case TierNeedsPreparation:
		return "A few adjustments needed"
	default:
		return "More preparation recommended"
	}
}

// Description expands on the headline.
func (t Tier) Description() string {
	switch t {
	case TierHighlyReady:
		return "You have the perfect setup and lifestyle for pet ownership."
	case TierReady:
		return "You have good preparation and can start looking for your perfect companion."
	case TierNeedsPreparation:
		return "Make some changes to your setup or lifestyle before getting a pet."
	default:
		return "Consider waiting until your situation is more suitable for pet ownership."
	}
}
