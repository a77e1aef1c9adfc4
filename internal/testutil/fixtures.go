package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"expenses/internal/models"

	"gorm.io/gorm"
)

// counter provides unique ids across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(100)
}

// CreateTestAccount creates a bank account with the given balance (in cents).
func CreateTestAccount(t *testing.T, db *gorm.DB, balance int64) *models.Account {
	t.Helper()

	n := nextID()
	account := &models.Account{
		ID:              n,
		Title:           fmt.Sprintf("Test Account %d", n),
		Currency:        "EUR",
		Balance:         balance,
		Type:            models.AccountTypeBank,
		IsActive:        true,
		IncludeInTotals: true,
		CreatedAt:       time.Now().UTC(),
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestCategory creates a category. Pass a nil parentID for a root
// category.
func CreateTestCategory(t *testing.T, db *gorm.DB, parentID *int64) *models.Category {
	t.Helper()

	n := nextID()
	category := &models.Category{
		ID:       n,
		Name:     fmt.Sprintf("Test Category %d", n),
		ParentID: parentID,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestPayee creates a payee with no category hint.
func CreateTestPayee(t *testing.T, db *gorm.DB) *models.Payee {
	t.Helper()

	n := nextID()
	payee := &models.Payee{
		ID:   n,
		Name: fmt.Sprintf("Test Payee %d", n),
	}
	if err := db.Create(payee).Error; err != nil {
		t.Fatalf("failed to create test payee: %v", err)
	}
	return payee
}

// CreateTestProject creates an active project.
func CreateTestProject(t *testing.T, db *gorm.DB) *models.Project {
	t.Helper()

	n := nextID()
	project := &models.Project{
		ID:       n,
		Title:    fmt.Sprintf("Test Project %d", n),
		IsActive: true,
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

// CreateTestDebit creates a debit of the given magnitude (in cents) against
// the account at the given time.
func CreateTestDebit(t *testing.T, db *gorm.DB, accountID, amount int64, occurredAt time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		ID:            nextID(),
		FromAccountID: &accountID,
		FromAmount:    amount,
		OccurredAt:    occurredAt,
		ClearedAt:     occurredAt,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test debit: %v", err)
	}
	return tx
}

// CreateTestCredit creates a credit of the given magnitude (in cents) into
// the account at the given time.
func CreateTestCredit(t *testing.T, db *gorm.DB, accountID, amount int64, occurredAt time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		ID:          nextID(),
		ToAccountID: &accountID,
		ToAmount:    amount,
		OccurredAt:  occurredAt,
		ClearedAt:   occurredAt,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test credit: %v", err)
	}
	return tx
}

// CreateTestTransfer creates a transfer of the given magnitude (in cents)
// between two accounts at the given time.
func CreateTestTransfer(t *testing.T, db *gorm.DB, fromAccountID, toAccountID, amount int64, occurredAt time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		ID:            nextID(),
		FromAccountID: &fromAccountID,
		FromAmount:    amount,
		ToAccountID:   &toAccountID,
		ToAmount:      amount,
		OccurredAt:    occurredAt,
		ClearedAt:     occurredAt,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transfer: %v", err)
	}
	return tx
}
