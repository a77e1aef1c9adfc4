package models

// Category represents a transaction category. At most one level of nesting is
// supported: a category's parent must itself be a root category.
type Category struct {
	ID       int64  `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	ParentID *int64 `gorm:"index" json:"parent_id,omitempty"`

	// Relationships
	Parent   *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}
