package models

// MenuItem is one dish on the menu. Price is in the menu currency's units.
type MenuItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Price       int64  `json:"price"`
	Available   bool   `json:"available"`
}
