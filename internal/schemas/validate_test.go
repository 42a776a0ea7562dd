package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validRecommendations = `{"recommendations": [{
	"breed": "Beagle", "type": "dog", "matchScore": 88, "bestFor": "Active first-time owners",
	"whyRecommended": "Friendly and compact.", "climateNote": "Handles heat with shade",
	"careLevel": "medium", "estimatedAge": "8-10 weeks", "keyTraits": ["friendly"],
	"considerations": "Vocal."}]}`

func TestValidate_Recommendations(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"valid", validRecommendations, false},
		{"missing list", `{}`, true},
		{"empty list", `{"recommendations": []}`, true},
		{"bad care level", `{"recommendations": [{"breed": "Pug", "type": "dog", "matchScore": 90, "whyRecommended": "x", "careLevel": "extreme"}]}`, true},
		{"score out of range", `{"recommendations": [{"breed": "Pug", "type": "dog", "matchScore": 140, "whyRecommended": "x", "careLevel": "low"}]}`, true},
		{"unsupported type", `{"recommendations": [{"breed": "Koi", "type": "fish", "matchScore": 50, "whyRecommended": "x", "careLevel": "low"}]}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(Recommendations, []byte(tt.doc))
			if tt.wantErr {
				var ve *ValidationError
				require.True(t, errors.As(err, &ve), "got %v", err)
				assert.NotEmpty(t, ve.Errors)
				assert.Equal(t, Recommendations, ve.Schema)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_Guide(t *testing.T) {
	section := `{"title": "Today's Priority", "contents": [{"title": "Water", "content": "Keep fresh water out.", "category": "priority"}]}`
	four := `{"sections": [` + section + `,` + section + `,` + section + `,` + section + `]}`
	three := `{"sections": [` + section + `,` + section + `,` + section + `]}`

	assert.NoError(t, Validate(Guide, []byte(four)))
	assert.Error(t, Validate(Guide, []byte(three)))
	assert.Error(t, Validate(Guide, []byte(`{"sections": [{"title": "", "contents": []}]}`)))
}

func TestValidate_Answers(t *testing.T) {
	assert.NoError(t, Validate(Answers, []byte(`{}`)))
	assert.NoError(t, Validate(Answers, []byte(`{"homeType": "apartment", "outdoorAccess": ["none"], "hasAllergies": "no"}`)))
	assert.Error(t, Validate(Answers, []byte(`{"outdoorAccess": "none"}`)))
	assert.Error(t, Validate(Answers, []byte(`[]`)))
}

func TestValidate_NotJSON(t *testing.T) {
	err := Validate(Guide, []byte("sorry, no guide today"))
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "(root)", ve.Errors[0].Field)
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope", []byte(`{}`))
	var le *SchemaLoadError
	require.True(t, errors.As(err, &le))
	assert.Contains(t, err.Error(), "unknown schema")
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type": "object", "required": ["email"], "properties": {"email": {"type": "string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"email": "a@b.in"}`))

	err := ValidateJSONString(schema, `{"email": 3}`)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "email", ve.Errors[0].Field)
	assert.Contains(t, err.Error(), "validation failed")

	err = ValidateJSONString(`{"type": 12}`, `{}`)
	var le *SchemaLoadError
	assert.True(t, errors.As(err, &le))
}
