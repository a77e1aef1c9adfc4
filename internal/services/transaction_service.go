package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "expenses/internal/errors"
	"expenses/internal/models"
	"expenses/internal/pagination"
)

// transactionService handles transaction browsing.
type transactionService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, accountService AccountServicer) TransactionServicer {
	return &transactionService{db: db, accountService: accountService}
}

// GetTransactionByID retrieves a transaction with its splits.
func (s *transactionService) GetTransactionByID(id int64) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Preload("Splits").First(&transaction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// GetAccountTransactions retrieves a paginated, filtered list of transactions
// touching the given account on either side, newest first.
func (s *transactionService) GetAccountTransactions(accountID int64, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	// Verify the account exists first.
	if _, err := s.accountService.GetAccountByID(accountID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Transaction{}).
		Where("from_account_id = ? OR to_account_id = ?", accountID, accountID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("occurred_at DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.Since != nil {
		q = q.Where("occurred_at >= ?", *f.Since)
	}
	if f.Before != nil {
		q = q.Where("occurred_at < ?", *f.Before)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.PayeeID != nil {
		q = q.Where("payee_id = ?", *f.PayeeID)
	}
	if f.ProjectID != nil {
		q = q.Where("project_id = ?", *f.ProjectID)
	}
	return q
}
