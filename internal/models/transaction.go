package models

import "time"

// Transaction represents a single movement of money. Shape is determined by
// which account sides are set: both from and to is a transfer, only from is a
// debit, only to is a credit. At least one side is always set.
//
// FromAmount and ToAmount carry non-negative magnitudes in minor currency
// units; the sign is implied by the side. FromRunningBalance and
// ToRunningBalance are snapshots of the respective account balance
// immediately after this transaction, maintained by the integrity fixer.
type Transaction struct {
	ID                 int64      `gorm:"primaryKey" json:"id"`
	FromAccountID      *int64     `gorm:"index" json:"from_account_id,omitempty"`
	FromAmount         int64      `gorm:"not null;default:0" json:"from_amount"`
	FromRunningBalance int64      `gorm:"not null;default:0" json:"from_running_balance"`
	ToAccountID        *int64     `gorm:"index" json:"to_account_id,omitempty"`
	ToAmount           int64      `gorm:"not null;default:0" json:"to_amount"`
	ToRunningBalance   int64      `gorm:"not null;default:0" json:"to_running_balance"`
	PayeeID            *int64     `json:"payee_id,omitempty"`
	CategoryID         *int64     `json:"category_id,omitempty"`
	ProjectID          *int64     `json:"project_id,omitempty"`
	Note               string     `json:"note"`
	OriginalCurrency   string     `json:"original_currency,omitempty"`
	OriginalAmount     int64      `json:"original_amount,omitempty"`
	OccurredAt         time.Time  `gorm:"not null;index" json:"occurred_at"`
	ClearedAt          time.Time  `gorm:"not null" json:"cleared_at"`
	UpdatedAt          *time.Time `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`

	// Relationships
	FromAccount *Account           `gorm:"foreignKey:FromAccountID" json:"from_account,omitempty"`
	ToAccount   *Account           `gorm:"foreignKey:ToAccountID" json:"to_account,omitempty"`
	Payee       *Payee             `gorm:"foreignKey:PayeeID" json:"payee,omitempty"`
	Category    *Category          `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Project     *Project           `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Splits      []TransactionSplit `gorm:"foreignKey:TransactionID" json:"splits,omitempty"`
}

// IsTransfer reports whether both account sides are set.
func (t *Transaction) IsTransfer() bool {
	return t.FromAccountID != nil && t.ToAccountID != nil
}

// TransactionSplit is a sub-allocation of a transaction's amount across
// categories and projects. When a transaction has splits, the sum of the
// split amounts replaces the transaction's debit amount.
type TransactionSplit struct {
	ID            int64  `gorm:"primaryKey" json:"id"`
	TransactionID int64  `gorm:"not null;index" json:"transaction_id"`
	Amount        int64  `gorm:"not null" json:"amount"`
	CategoryID    *int64 `json:"category_id,omitempty"`
	ProjectID     *int64 `json:"project_id,omitempty"`
	Note          string `json:"note"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Project  *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
