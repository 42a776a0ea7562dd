package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/thepetra/petra/internal/cache"
	"github.com/thepetra/petra/internal/llm"
	"github.com/thepetra/petra/internal/metrics"
	"github.com/thepetra/petra/internal/prompts"
	"github.com/thepetra/petra/internal/schemas"
	"go.uber.org/zap"
)

// CareLevel is how demanding a breed is to keep.
type CareLevel string

// CareLevel values
const (
	CareLow    CareLevel = "low"
	CareMedium CareLevel = "medium"
	CareHigh   CareLevel = "high"
)

// Recommendation is a single suggested breed.
type Recommendation struct {
	Breed          string    `json:"breed"`
	Type           string    `json:"type"`
	MatchScore     int       `json:"matchScore"`
	BestFor        string    `json:"bestFor"`
	WhyRecommended string    `json:"whyRecommended"`
	ClimateNote    string    `json:"climateNote"`
	CareLevel      CareLevel `json:"careLevel"`
	EstimatedAge   string    `json:"estimatedAge"`
	KeyTraits      []string  `json:"keyTraits"`
	Considerations string    `json:"considerations"`
}

const cacheNamespace = "recommend"

// Recommender produces breed recommendations. A nil client or cache is
// allowed: without a client every request is served from the rule-based list.
type Recommender struct {
	client llm.Client
	cache  cache.Store
	ttl    time.Duration
	logger *zap.Logger
}

// NewRecommender creates a Recommender.
func NewRecommender(client llm.Client, store cache.Store, ttl time.Duration, logger *zap.Logger) *Recommender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recommender{client: client, cache: store, ttl: ttl, logger: logger}
}

// Recommend returns recommendations for p. Model failures never surface as
// errors; they fall back to RuleBased. The only error is a cancelled context.
func (r *Recommender) Recommend(ctx context.Context, p Profile) ([]Recommendation, llm.Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	p = p.Normalize()
	key := cache.Key(cacheNamespace, p.Situation, p.ExperienceLevel, p.Concern)

	if r.cache != nil {
		var cached []Recommendation
		found, err := r.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			r.logger.Warn("recommendation cache read failed", zap.Error(err))
		} else if found && len(cached) > 0 {
			return r.done(cached, llm.SourceCache), llm.SourceCache, nil
		}
	}

	if r.client == nil {
		return r.done(RuleBased(p), llm.SourceFallback), llm.SourceFallback, nil
	}

	recs, err := r.generate(ctx, p)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, "", ctxErr
		}
		r.logger.Warn("AI recommendation failed, using fallback", zap.Error(err))
		return r.done(RuleBased(p), llm.SourceFallback), llm.SourceFallback, nil
	}

	if r.cache != nil {
		if err := r.cache.SetJSON(ctx, key, recs, r.ttl); err != nil {
			r.logger.Warn("recommendation cache write failed", zap.Error(err))
		}
	}
	return r.done(recs, llm.SourceAI), llm.SourceAI, nil
}

func (r *Recommender) done(recs []Recommendation, src llm.Source) []Recommendation {
	metrics.AIResults.WithLabelValues(cacheNamespace, string(src)).Inc()
	return recs
}

func (r *Recommender) generate(ctx context.Context, p Profile) ([]Recommendation, error) {
	prompt, err := BuildPrompt(p)
	if err != nil {
		return nil, err
	}
	system, err := prompts.Get("recommend.json", "system")
	if err != nil {
		return nil, err
	}

	text, err := r.client.GenerateJSON(ctx, prompt, llm.TierStandard,
		llm.WithSystemInstruction(system),
		llm.WithTemperature(0.85),
		llm.WithTopP(0.95),
		llm.WithMaxOutputTokens(2500),
	)
	if err != nil {
		return nil, err
	}
	return Parse(text)
}

// BuildPrompt renders the recommendation prompt for p.
func BuildPrompt(p Profile) (string, error) {
	p = p.Normalize()
	return prompts.Render("recommend.json", "recommend-breeds", map[string]string{
		"Situation":  describe(situationContext, p.Situation),
		"Experience": describe(experienceContext, p.ExperienceLevel),
		"Concerns":   describeConcerns(p.Concerns()),
		"Catalog":    catalogList(),
	})
}

// Parse decodes a model response into recommendations ordered by match
// score, best first.
func Parse(text string) ([]Recommendation, error) {
	doc := []byte(llm.CleanJSONBlock(text))
	if err := schemas.Validate(schemas.Recommendations, doc); err != nil {
		return nil, &ParseError{Message: "response does not match schema", Cause: err}
	}

	var out struct {
		Recommendations []Recommendation `json:"recommendations"`
	}
	if err := json.Unmarshal(doc, &out); err != nil {
		return nil, &ParseError{Message: "invalid JSON", Cause: err}
	}
	for i := range out.Recommendations {
		out.Recommendations[i].Breed = strings.TrimSpace(out.Recommendations[i].Breed)
	}
	sort.SliceStable(out.Recommendations, func(i, j int) bool {
		return out.Recommendations[i].MatchScore > out.Recommendations[j].MatchScore
	})
	return out.Recommendations, nil
}
