package cost

import (
	"fmt"

	"github.com/leofalp/braveagent/providers/ai"
)

// ModelCost represents the pricing structure for a language model.
// Costs are expressed in USD per million tokens.
//
// Example usage:
//
//	modelCost := cost.ModelCost{
//	    InputCostPerMillion:       0.15,
//	    OutputCostPerMillion:      0.60,
//	    CachedInputCostPerMillion: 0.075,
//	}
type ModelCost struct {
	// InputCostPerMillion is the cost in USD per 1 million input tokens
	InputCostPerMillion float64 `json:"input_cost_per_million"`

	// OutputCostPerMillion is the cost in USD per 1 million output tokens
	OutputCostPerMillion float64 `json:"output_cost_per_million"`

	// CachedInputCostPerMillion is the discounted cost in USD per 1 million
	// cached input tokens. Zero bills cached tokens at the input rate.
	CachedInputCostPerMillion float64 `json:"cached_input_cost_per_million,omitempty"`
}

// IsZero reports whether no pricing is configured.
func (mc ModelCost) IsZero() bool {
	return mc.InputCostPerMillion == 0 && mc.OutputCostPerMillion == 0 && mc.CachedInputCostPerMillion == 0
}

// CalculateInputCost calculates the cost for the given number of input tokens.
func (mc ModelCost) CalculateInputCost(tokens int) float64 {
	return perMillion(tokens, mc.InputCostPerMillion)
}

// CalculateOutputCost calculates the cost for the given number of output tokens.
func (mc ModelCost) CalculateOutputCost(tokens int) float64 {
	return perMillion(tokens, mc.OutputCostPerMillion)
}

// CalculateCachedCost calculates the cost for the given number of cached
// input tokens.
func (mc ModelCost) CalculateCachedCost(tokens int) float64 {
	if mc.CachedInputCostPerMillion == 0 {
		return mc.CalculateInputCost(tokens)
	}
	return perMillion(tokens, mc.CachedInputCostPerMillion)
}

// CalculateUsageCost prices a usage report. Prompt tokens include the cached
// ones, which are billed at the cached rate.
func (mc ModelCost) CalculateUsageCost(usage ai.Usage) Summary {
	cached := min(usage.CachedTokens, usage.PromptTokens)

	summary := Summary{
		InputCost:  mc.CalculateInputCost(usage.PromptTokens - cached),
		CachedCost: mc.CalculateCachedCost(cached),
		OutputCost: mc.CalculateOutputCost(usage.CompletionTokens),
		Currency:   "USD",
	}
	summary.TotalCost = summary.InputCost + summary.CachedCost + summary.OutputCost
	return summary
}

// String returns a formatted string representation of the model costs.
func (mc ModelCost) String() string {
	return fmt.Sprintf("Input: $%.6f/M, Output: $%.6f/M",
		mc.InputCostPerMillion, mc.OutputCostPerMillion)
}

// Summary is the cost breakdown of a usage report.
type Summary struct {
	InputCost  float64 `json:"input_cost"`
	CachedCost float64 `json:"cached_cost"`
	OutputCost float64 `json:"output_cost"`
	TotalCost  float64 `json:"total_cost"`
	Currency   string  `json:"currency"`
}

func perMillion(tokens int, price float64) float64 {
	return (float64(tokens) / 1_000_000.0) * price
}
