package readiness

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYesNo_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input    string
		expected YesNo
	}{
		{`true`, Yes},
		{`false`, No},
		{`"yes"`, Yes},
		{`"no"`, No},
		{`"YES"`, Yes},
		{`null`, Unanswered},
		{`"maybe"`, Unanswered},
		{`1`, Unanswered},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var y YesNo
			require.NoError(t, json.Unmarshal([]byte(tt.input), &y))
			assert.Equal(t, tt.expected, y)
		})
	}
}

func TestYesNo_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		A YesNo `json:"a"`
		B YesNo `json:"b"`
		C YesNo `json:"c"`
	}{Yes, No, Unanswered})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"yes","b":"no","c":null}`, string(data))
}

func TestParseAnswers_QuestionnaireStrings(t *testing.T) {
	a, err := ParseAnswers([]byte(`{
		"homeType": "farmhouse",
		"consideringPetTypes": ["cat", "bird"],
		"petSpecificAnswers": {
			"cats": {"indoorOnly": "yes", "securedSpaces": "no"},
			"birds": {"noiseOk": "yes"}
		},
		"hasAllergies": "no",
		"familySupport": "yes"
	}`))
	require.NoError(t, err)

	assert.Equal(t, HomeFarmhouse, a.HomeType)
	assert.True(t, a.Considering(PetCat))
	assert.False(t, a.Considering(PetDog))
	require.NotNil(t, a.PetSpecificAnswers.Cats)
	assert.Equal(t, Yes, a.PetSpecificAnswers.Cats.IndoorOnly)
	assert.Equal(t, No, a.PetSpecificAnswers.Cats.SecuredSpaces)
	assert.Equal(t, Yes, a.birdNoiseOK())
	assert.Equal(t, Unanswered, a.dogSafeWalking())
	assert.Equal(t, No, a.HasAllergies)
	assert.Equal(t, Yes, a.FamilySupport)
}

func TestParseAnswers_Invalid(t *testing.T) {
	_, err := ParseAnswers([]byte(`{"outdoorAccess": "balcony"`))
	assert.Error(t, err)
}

func TestParseAnswers_MistypedFieldsScoreZero(t *testing.T) {
	tests := []struct {
		name  string
		input string
		score int
	}{
		{"outdoor access as string", `{"homeType": "farmhouse", "outdoorAccess": "balcony"}`, 20},
		{"hours as number", `{"hoursEmpty": 3}`, 0},
		{"pet types as string", `{"consideringPetTypes": "dog"}`, 10},
		{"home type as object", `{"homeType": {"kind": "farmhouse"}, "consideringPetTypes": ["cat"]}`, 10},
		{"budget as number", `{"monthlyBudget": 6000, "familySupport": true}`, 10},
		{"mixed array", `{"consideringPetTypes": [1, "", null, "bird"], "petSpecificAnswers": {"birds": {"noiseOk": "yes"}}}`, 15},
		{"pet group as string", `{"consideringPetTypes": ["dog"], "petSpecificAnswers": {"dogs": "yes"}}`, 10},
		{"outdoor access as number", `{"outdoorAccess": 2}`, 0},
		{"answers not an object", `["dog"]`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ParseAnswers([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.score, Score(a).Score)
		})
	}
}

func TestParseAnswers_Selections(t *testing.T) {
	a, err := ParseAnswers([]byte(`{"outdoorAccess": "terrace", "consideringPetTypes": ["dog", 7, "cat"], "lookingFor": ""}`))
	require.NoError(t, err)
	assert.Equal(t, []OutdoorSpace{OutdoorTerrace}, a.OutdoorAccess)
	assert.Equal(t, []PetType{PetDog, PetCat}, a.ConsideringPetTypes)
	assert.Nil(t, a.LookingFor)

	a, err = ParseAnswers([]byte(`{"homeType": true, "city": 42}`))
	require.NoError(t, err)
	assert.Empty(t, a.HomeType)
	assert.Empty(t, a.City)
	assert.Nil(t, a.OutdoorAccess)
	assert.Contains(t, tasks(Checklist(a)), TaskIndoorSpace)
}
