package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "expenses/internal/errors"
	"expenses/internal/models"
	"expenses/internal/pagination"
	"expenses/internal/services"
	"expenses/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// --- mock account service ---

type mockAccountService struct {
	listAccountsFn   func(filter services.AccountFilter) ([]models.Account, error)
	getAccountByIDFn func(id int64) (*models.Account, error)
}

func (m *mockAccountService) ListAccounts(filter services.AccountFilter) ([]models.Account, error) {
	if m.listAccountsFn != nil {
		return m.listAccountsFn(filter)
	}
	return []models.Account{}, nil
}

func (m *mockAccountService) GetAccountByID(id int64) (*models.Account, error) {
	if m.getAccountByIDFn != nil {
		return m.getAccountByIDFn(id)
	}
	return &models.Account{ID: id}, nil
}

var _ services.AccountServicer = (*mockAccountService)(nil)

// --- mock transaction service ---

type mockTransactionService struct {
	getTransactionByIDFn     func(id int64) (*models.Transaction, error)
	getAccountTransactionsFn func(accountID int64, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
}

func (m *mockTransactionService) GetTransactionByID(id int64) (*models.Transaction, error) {
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(id)
	}
	return &models.Transaction{ID: id}, nil
}

func (m *mockTransactionService) GetAccountTransactions(accountID int64, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if m.getAccountTransactionsFn != nil {
		return m.getAccountTransactionsFn(accountID, page, filter)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
	return &resp, nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func setupAccountRouter(handler *AccountHandler) *gin.Engine {
	r := gin.New()
	r.GET("/accounts", handler.GetAccounts)
	r.GET("/accounts/:id", handler.GetAccountByID)
	r.GET("/accounts/:id/transactions", handler.GetAccountTransactions)
	return r
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAccountHandler_GetAccounts(t *testing.T) {
	t.Run("returns 200 with accounts", func(t *testing.T) {
		handler := NewAccountHandler(&mockAccountService{
			listAccountsFn: func(_ services.AccountFilter) ([]models.Account, error) {
				return []models.Account{{ID: 1, Title: "Checking"}}, nil
			},
		}, &mockTransactionService{})

		rec := serve(setupAccountRouter(handler), "GET", "/accounts")
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("passes filters to the service", func(t *testing.T) {
		var got services.AccountFilter
		handler := NewAccountHandler(&mockAccountService{
			listAccountsFn: func(filter services.AccountFilter) ([]models.Account, error) {
				got = filter
				return nil, nil
			},
		}, &mockTransactionService{})

		rec := serve(setupAccountRouter(handler), "GET", "/accounts?currency=USD&active=true")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Currency == nil || *got.Currency != "USD" {
			t.Errorf("expected currency filter USD, got %v", got.Currency)
		}
		if got.Active == nil || !*got.Active {
			t.Errorf("expected active filter true, got %v", got.Active)
		}
	})

	t.Run("passes type filter to the service", func(t *testing.T) {
		var got services.AccountFilter
		handler := NewAccountHandler(&mockAccountService{
			listAccountsFn: func(filter services.AccountFilter) ([]models.Account, error) {
				got = filter
				return nil, nil
			},
		}, &mockTransactionService{})

		rec := serve(setupAccountRouter(handler), "GET", "/accounts?type=CREDIT_CARD")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Type == nil || *got.Type != models.AccountTypeCreditCard {
			t.Errorf("expected type filter CREDIT_CARD, got %v", got.Type)
		}
	})

	t.Run("returns 400 for invalid currency", func(t *testing.T) {
		handler := NewAccountHandler(&mockAccountService{}, &mockTransactionService{})

		rec := serve(setupAccountRouter(handler), "GET", "/accounts?currency=NOPE")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 for unknown account type", func(t *testing.T) {
		handler := NewAccountHandler(&mockAccountService{}, &mockTransactionService{})

		rec := serve(setupAccountRouter(handler), "GET", "/accounts?type=PIGGY_BANK")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAccountHandler_GetAccountByID(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		handler := NewAccountHandler(&mockAccountService{
			getAccountByIDFn: func(_ int64) (*models.Account, error) {
				return nil, apperrors.ErrAccountNotFound
			},
		}, &mockTransactionService{})

		rec := serve(setupAccountRouter(handler), "GET", "/accounts/7")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("returns 400 for non-numeric id", func(t *testing.T) {
		handler := NewAccountHandler(&mockAccountService{}, &mockTransactionService{})

		rec := serve(setupAccountRouter(handler), "GET", "/accounts/abc")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAccountHandler_GetAccountTransactions(t *testing.T) {
	t.Run("date_range_inclusive_of_to_day", func(t *testing.T) {
		var got services.TransactionFilter
		handler := NewAccountHandler(&mockAccountService{}, &mockTransactionService{
			getAccountTransactionsFn: func(_ int64, _ pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
				got = filter
				resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
				return &resp, nil
			},
		})

		rec := serve(setupAccountRouter(handler), "GET", "/accounts/1/transactions?from=2023-01-01&to=2023-01-31")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Since == nil || got.Since.Day() != 1 {
			t.Errorf("expected since on the 1st, got %v", got.Since)
		}
		// The exclusive bound must land on the day after "to".
		if got.Before == nil || got.Before.Day() != 1 || got.Before.Month() != 2 {
			t.Errorf("expected before on Feb 1st, got %v", got.Before)
		}
	})

	t.Run("returns 400 for malformed date", func(t *testing.T) {
		handler := NewAccountHandler(&mockAccountService{}, &mockTransactionService{})

		rec := serve(setupAccountRouter(handler), "GET", "/accounts/1/transactions?from=01-01-2023")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 for oversized page", func(t *testing.T) {
		handler := NewAccountHandler(&mockAccountService{}, &mockTransactionService{})

		rec := serve(setupAccountRouter(handler), "GET", "/accounts/1/transactions?page_size=500")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}
