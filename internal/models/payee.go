package models

// Payee represents a counterparty on a transaction. LastCategoryID is a cache
// hint (the category used most recently with this payee), not authoritative.
type Payee struct {
	ID             int64  `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"not null" json:"name"`
	LastCategoryID *int64 `json:"last_category_id,omitempty"`

	LastCategory *Category `gorm:"foreignKey:LastCategoryID" json:"last_category,omitempty"`
}
