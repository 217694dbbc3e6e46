package llm

// ModelCost holds per-million-token pricing for a model.
// Prices are in USD per 1 million tokens, sourced from models.dev.
type ModelCost struct {
	InputPerMTok  float64 // USD per 1M input tokens
	OutputPerMTok float64 // USD per 1M output tokens
}

// Cost calculates the total USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a model ID, or nil if unknown.
func LookupCost(modelID string) *ModelCost {
	if c, ok := modelCosts[modelID]; ok {
		return &c
	}
	return nil
}

// modelCosts covers the models reachable through the configured providers.
// Prices from models.dev.
var modelCosts = map[string]ModelCost{
	// Google (Gemini)
	"gemini-2.5-flash":       {0.3, 2.5},
	"gemini-2.5-pro":         {1.25, 10},
	"gemini-3-flash-preview": {0.5, 3},
	"gemini-3-pro-preview":   {2, 12},

	// Anthropic
	"claude-haiku-4-5-20251001":  {1, 5},
	"claude-opus-4-5-20251101":   {5, 25},
	"claude-sonnet-4-5-20250929": {3, 15},

	// OpenAI
	"gpt-4o":      {2.5, 10},
	"gpt-4o-mini": {0.15, 0.6},
	"gpt-5":       {1.25, 10},
	"gpt-5-mini":  {0.25, 2},

	// OpenRouter ids carry the vendor prefix.
	"google/gemini-2.5-pro":       {1.25, 10},
	"google/gemini-3-pro-preview": {2, 12},
	"openai/gpt-4o":               {2.5, 10},
}
