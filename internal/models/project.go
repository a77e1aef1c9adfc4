package models

import "time"

// Project groups transactions under a user-defined undertaking.
type Project struct {
	ID        int64      `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"not null" json:"title"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`
}
