package services

import (
	"testing"

	"expenses/internal/models"
	"expenses/internal/testutil"
)

func TestListAccounts(t *testing.T) {
	t.Run("ordered_by_sort_order_then_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		first := testutil.CreateTestAccount(t, db, 0)
		second := testutil.CreateTestAccount(t, db, 0)
		testutil.AssertNoError(t, db.Model(second).Update("sort_order", -1).Error)

		accounts, err := svc.ListAccounts(AccountFilter{})
		testutil.AssertNoError(t, err)
		if len(accounts) != 2 {
			t.Fatalf("expected 2 accounts, got %d", len(accounts))
		}
		if accounts[0].ID != second.ID || accounts[1].ID != first.ID {
			t.Errorf("expected sort order to win, got %d then %d", accounts[0].ID, accounts[1].ID)
		}
	})

	t.Run("filter_by_currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		eur := testutil.CreateTestAccount(t, db, 0)
		usd := testutil.CreateTestAccount(t, db, 0)
		testutil.AssertNoError(t, db.Model(usd).Update("currency", "USD").Error)

		currency := "EUR"
		accounts, err := svc.ListAccounts(AccountFilter{Currency: &currency})
		testutil.AssertNoError(t, err)
		if len(accounts) != 1 || accounts[0].ID != eur.ID {
			t.Errorf("expected only the EUR account, got %d accounts", len(accounts))
		}
	})

	t.Run("filter_by_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		bank := testutil.CreateTestAccount(t, db, 0)
		cash := testutil.CreateTestAccount(t, db, 0)
		testutil.AssertNoError(t, db.Model(cash).Update("type", models.AccountTypeCash).Error)

		accountType := models.AccountTypeBank
		accounts, err := svc.ListAccounts(AccountFilter{Type: &accountType})
		testutil.AssertNoError(t, err)
		if len(accounts) != 1 || accounts[0].ID != bank.ID {
			t.Errorf("expected only the bank account, got %d accounts", len(accounts))
		}
	})

	t.Run("filter_by_active", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		testutil.CreateTestAccount(t, db, 0)
		closed := testutil.CreateTestAccount(t, db, 0)
		testutil.AssertNoError(t, db.Model(closed).Update("is_active", false).Error)

		inactive := false
		accounts, err := svc.ListAccounts(AccountFilter{Active: &inactive})
		testutil.AssertNoError(t, err)
		if len(accounts) != 1 || accounts[0].ID != closed.ID {
			t.Errorf("expected only the inactive account, got %d accounts", len(accounts))
		}
	})

	t.Run("empty_store", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		accounts, err := svc.ListAccounts(AccountFilter{})
		testutil.AssertNoError(t, err)
		if len(accounts) != 0 {
			t.Errorf("expected no accounts, got %d", len(accounts))
		}
	})
}

func TestGetAccountByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		account := testutil.CreateTestAccount(t, db, 2500)

		got, err := svc.GetAccountByID(account.ID)
		testutil.AssertNoError(t, err)
		if got.Balance != 2500 || got.Type != models.AccountTypeBank {
			t.Errorf("unexpected account: %+v", got)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		_, err := svc.GetAccountByID(424242)
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}
