package database

import (
	"os"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"expenses/internal/models"
)

// The checked-in SQL migrations and the GORM models describe the same schema
// from two sides. This applies the migration SQL directly and round-trips
// every model through the resulting tables, so a column rename in one place
// but not the other fails here instead of at runtime.
func TestMigrationSchemaMatchesModels(t *testing.T) {
	sql, err := os.ReadFile("../../migrations/000001_create_ledger.up.sql")
	if err != nil {
		t.Fatalf("failed to read migration: %v", err)
	}

	db, err := gorm.Open(sqlite.Open("file:migrationtest?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	defer func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}()

	if err := db.Exec(string(sql)).Error; err != nil {
		t.Fatalf("failed to apply migration: %v", err)
	}

	now := time.Now().UTC()
	paypal := models.OnlineAccountTypePayPal
	visa := models.CardTypeVisa

	accounts := []*models.Account{
		{ID: 1, Title: "Wallet", Currency: "EUR", Type: models.AccountTypeOnline,
			OnlineAccountType: &paypal, IsActive: true, IncludeInTotals: true, CreatedAt: now},
		{ID: 2, Title: "Card", Currency: "EUR", Type: models.AccountTypeCreditCard,
			CardType: &visa, IsActive: true, IncludeInTotals: true, CreatedAt: now},
		{ID: 3, Title: "Checking", Currency: "EUR", Type: models.AccountTypeBank,
			IsActive: true, IncludeInTotals: true, CreatedAt: now},
	}
	for _, account := range accounts {
		if err := db.Create(account).Error; err != nil {
			t.Fatalf("failed to insert account %q: %v", account.Title, err)
		}
	}

	root := &models.Category{ID: 1, Name: "Food"}
	if err := db.Create(root).Error; err != nil {
		t.Fatalf("failed to insert root category: %v", err)
	}
	child := &models.Category{ID: 2, Name: "Groceries", ParentID: &root.ID}
	if err := db.Create(child).Error; err != nil {
		t.Fatalf("failed to insert child category: %v", err)
	}

	payee := &models.Payee{ID: 1, Name: "Market", LastCategoryID: &child.ID}
	if err := db.Create(payee).Error; err != nil {
		t.Fatalf("failed to insert payee: %v", err)
	}

	updatedAt := now
	project := &models.Project{ID: 1, Title: "Renovation", IsActive: true, UpdatedAt: &updatedAt}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to insert project: %v", err)
	}

	fromID := int64(3)
	toID := int64(1)
	transaction := &models.Transaction{
		ID:            1,
		FromAccountID: &fromID,
		FromAmount:    500,
		ToAccountID:   &toID,
		ToAmount:      500,
		PayeeID:       &payee.ID,
		CategoryID:    &child.ID,
		ProjectID:     &project.ID,
		Note:          "move",
		OccurredAt:    now,
		ClearedAt:     now,
		Splits: []models.TransactionSplit{
			{ID: 1, TransactionID: 1, Amount: 500, CategoryID: &child.ID, Note: "all of it"},
		},
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to insert transaction with split: %v", err)
	}

	var wallet models.Account
	if err := db.First(&wallet, "id = ?", 1).Error; err != nil {
		t.Fatalf("failed to read account back: %v", err)
	}
	if wallet.OnlineAccountType == nil || *wallet.OnlineAccountType != models.OnlineAccountTypePayPal {
		t.Errorf("expected online account type to survive the round trip, got %v", wallet.OnlineAccountType)
	}

	var loaded models.Transaction
	if err := db.Preload("Splits").First(&loaded, "id = ?", 1).Error; err != nil {
		t.Fatalf("failed to read transaction back: %v", err)
	}
	if len(loaded.Splits) != 1 || loaded.Splits[0].Amount != 500 {
		t.Errorf("expected split to survive the round trip, got %+v", loaded.Splits)
	}
}
