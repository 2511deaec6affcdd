package models

// CostBreakdown splits an estimated maintenance cost into labor and parts (USD).
type CostBreakdown struct {
	Labor float64 `json:"labor" bson:"labor"`
	Parts float64 `json:"parts" bson:"parts"`
	Total float64 `json:"total" bson:"total"`
}
