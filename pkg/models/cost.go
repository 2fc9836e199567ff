package models

// ModelPrice is the price per 1K tokens for one model.
type ModelPrice struct {
	InputPer1K  float64 `json:"input_per_1k" yaml:"input_per_1k"`
	OutputPer1K float64 `json:"output_per_1k" yaml:"output_per_1k"`
}

// CostStats summarizes spend for one session ledger.
type CostStats struct {
	TotalCost         float64 `json:"total_cost"`
	RequestCount      int     `json:"request_count"`
	InputTokens       int     `json:"input_tokens"`
	OutputTokens      int     `json:"output_tokens"`
	AvgCostPerRequest float64 `json:"avg_cost_per_request"`
	RemainingBudget   float64 `json:"remaining_budget"`
}
