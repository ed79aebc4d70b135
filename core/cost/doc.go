// Package cost prices model token usage.
//
// [ModelCost] holds per-million-token rates for input, cached input and
// output tokens; [ModelCost.CalculateUsageCost] turns an [ai.Usage] report
// into a [Summary].
package cost
