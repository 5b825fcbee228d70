package models

// MenuItem is static catalog data; it is not persisted.
type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	UnitPrice   float64 `json:"unitPrice"`
	CostPerUnit float64 `json:"costPerUnit"`
}
