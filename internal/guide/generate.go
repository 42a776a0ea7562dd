package guide

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/thepetra/petra/internal/cache"
	"github.com/thepetra/petra/internal/llm"
	"github.com/thepetra/petra/internal/metrics"
	"github.com/thepetra/petra/internal/prompts"
	"github.com/thepetra/petra/internal/schemas"
	"go.uber.org/zap"
)

const cacheNamespace = "guide"

// Generator writes guides with the language model, falling back to Static.
// client and store may be nil.
type Generator struct {
	client llm.Client
	cache  cache.Store
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewGenerator creates a Generator.
func NewGenerator(client llm.Client, store cache.Store, ttl time.Duration, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{client: client, cache: store, ttl: ttl, logger: logger, now: time.Now}
}

// Generate returns a guide for the profile. Invalid input is an error; model
// failures are not, they produce the template guide instead.
func (g *Generator) Generate(ctx context.Context, p Profile, entry Entry) (*Guide, error) {
	if err := p.Validate(entry); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if entry == EntryQuiz {
		p = quizDefaults(p)
	}
	key := cache.Key(cacheNamespace, p.cacheParts(entry)...)

	if g.cache != nil {
		var sections []Section
		found, err := g.cache.GetJSON(ctx, key, &sections)
		if err != nil {
			g.logger.Warn("guide cache read failed", zap.Error(err))
		} else if found && len(sections) > 0 {
			return g.done(p, entry, sections, llm.SourceCache), nil
		}
	}

	if g.client == nil {
		return g.fallback(p, entry), nil
	}

	sections, err := g.generate(ctx, p, entry)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, ctxErr
		}
		g.logger.Warn("AI guide generation failed, using template guide",
			zap.String("entry", string(entry)), zap.Error(err))
		return g.fallback(p, entry), nil
	}

	if g.cache != nil {
		if err := g.cache.SetJSON(ctx, key, sections, g.ttl); err != nil {
			g.logger.Warn("guide cache write failed", zap.Error(err))
		}
	}
	return g.done(p, entry, sections, llm.SourceAI), nil
}

func (g *Generator) fallback(p Profile, entry Entry) *Guide {
	guide := Static(p, entry)
	guide.GeneratedAt = g.now().UTC()
	metrics.AIResults.WithLabelValues(cacheNamespace, string(llm.SourceFallback)).Inc()
	return guide
}

func (g *Generator) done(p Profile, entry Entry, sections []Section, src llm.Source) *Guide {
	metrics.AIResults.WithLabelValues(cacheNamespace, string(src)).Inc()
	return &Guide{
		Profile:     p,
		Entry:       entry,
		Sections:    sections,
		GeneratedAt: g.now().UTC(),
		Source:      src,
	}
}

func (g *Generator) generate(ctx context.Context, p Profile, entry Entry) ([]Section, error) {
	prompt, err := BuildPrompt(p, entry)
	if err != nil {
		return nil, err
	}
	system, err := prompts.Get("guide.json", "system")
	if err != nil {
		return nil, err
	}

	text, err := g.client.GenerateJSON(ctx, prompt, llm.TierAdvanced,
		llm.WithSystemInstruction(system),
		llm.WithTemperature(0.85),
		llm.WithTopP(0.95),
		llm.WithMaxOutputTokens(3000),
	)
	if err != nil {
		return nil, err
	}
	return Parse(text)
}

// Parse decodes a model response into guide sections. Missing ids and orders
// are filled in so every tip can be addressed.
func Parse(text string) ([]Section, error) {
	doc := []byte(llm.CleanJSONBlock(text))
	if err := schemas.Validate(schemas.Guide, doc); err != nil {
		return nil, &ParseError{Message: "response does not match schema", Cause: err}
	}

	var out struct {
		Sections []Section `json:"sections"`
	}
	if err := json.Unmarshal(doc, &out); err != nil {
		return nil, &ParseError{Message: "invalid JSON", Cause: err}
	}

	n := 0
	for i := range out.Sections {
		for j := range out.Sections[i].Contents {
			n++
			c := &out.Sections[i].Contents[j]
			if c.ID == "" {
				c.ID = strconv.Itoa(n)
			}
			if c.Order == 0 {
				c.Order = j + 1
			}
		}
	}
	return out.Sections, nil
}
