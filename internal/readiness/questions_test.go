package readiness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(qs []Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.Key
	}
	return out
}

func TestQuickQuestions(t *testing.T) {
	qs := QuickQuestions()
	require.Len(t, qs, 13)
	assert.Equal(t, "city", qs[0].Key)
	assert.Equal(t, "familySupport", qs[len(qs)-1].Key)

	// Callers may not mutate the package copy.
	qs[0].Key = "changed"
	assert.Equal(t, "city", QuickQuestions()[0].Key)
}

func TestExpandQuestions_NoPets(t *testing.T) {
	assert.Equal(t, keys(QuickQuestions()), keys(ExpandQuestions(nil)))
}

func TestExpandQuestions_InsertsAfterPetTypes(t *testing.T) {
	qs := ExpandQuestions([]PetType{PetCat, PetDog, PetCat, "dragon"})

	got := keys(qs)
	idx := -1
	for i, k := range got {
		if k == petTypesKey {
			idx = i
			break
		}
	}
	require.GreaterOrEqual(t, idx, 0)

	assert.Equal(t, []string{"indoorOnly", "securedSpaces", "safeWalking", "indoorOutdoor"}, got[idx+1:idx+5])
	assert.Equal(t, "sizePreference", got[idx+5])
	assert.Len(t, qs, 13+4)

	assert.Equal(t, PetCat, qs[idx+1].PetType)
	assert.Equal(t, PetDog, qs[idx+3].PetType)
	assert.Equal(t, "pet-specific", qs[idx+3].Section)
}

func TestExpandQuestions_AllPetTypes(t *testing.T) {
	qs := ExpandQuestions([]PetType{PetDog, PetCat, PetBird, PetFish, PetSmallAnimal})
	assert.Len(t, qs, 13+7)
	for _, q := range qs {
		assert.NotEmpty(t, q.Options, q.Key)
	}
}
