// Package llm wraps the generative model used for breed recommendations and
// pet-parent guides.
package llm

import "time"

// ModelTier represents the capability level of a model.
type ModelTier string

const (
	// TierLite is for short, cheap completions.
	TierLite ModelTier = "lite"
	// TierStandard is for structured JSON output such as recommendations.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long-form guide writing.
	TierAdvanced ModelTier = "advanced"
)

// Config maps tiers to model names.
type Config struct {
	Models map[ModelTier]string
	// Timeout bounds a single generation call. Zero means no limit beyond
	// the caller's context.
	Timeout time.Duration
}

// DefaultConfig returns the default Gemini model mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a tier, falling back to standard and
// then lite.
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if model, ok := c.Models[t]; ok && model != "" {
			return model
		}
	}
	return ""
}

// WithModel returns a copy of c with tier mapped to model.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := &Config{Models: make(map[ModelTier]string, len(c.Models)+1), Timeout: c.Timeout}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	out.Models[tier] = model
	return out
}

// options are per-call generation settings.
type options struct {
	temperature float32
	topP        float32
	maxTokens   int32
	system      string
}

func defaultOptions() options {
	return options{temperature: 0.2, topP: 0.95}
}

// Option adjusts a single generation call.
type Option func(*options)

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) Option {
	return func(o *options) { o.temperature = t }
}

// WithTopP sets nucleus sampling.
func WithTopP(p float32) Option {
	return func(o *options) { o.topP = p }
}

// WithMaxOutputTokens caps the response length.
func WithMaxOutputTokens(n int32) Option {
	return func(o *options) { o.maxTokens = n }
}

// WithSystemInstruction sets the system prompt.
func WithSystemInstruction(s string) Option {
	return func(o *options) { o.system = s }
}
