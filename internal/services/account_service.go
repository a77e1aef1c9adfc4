package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "expenses/internal/errors"
	"expenses/internal/models"
)

// accountService handles account browsing.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// ListAccounts returns all accounts in sort order.
func (s *accountService) ListAccounts(filter AccountFilter) ([]models.Account, error) {
	q := s.db.Model(&models.Account{})
	if filter.Currency != nil {
		q = q.Where("currency = ?", *filter.Currency)
	}
	if filter.Type != nil {
		q = q.Where("type = ?", *filter.Type)
	}
	if filter.Active != nil {
		q = q.Where("is_active = ?", *filter.Active)
	}

	var accounts []models.Account
	if err := q.Order("sort_order ASC, id ASC").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accounts, nil
}

// GetAccountByID retrieves a single account.
func (s *accountService) GetAccountByID(id int64) (*models.Account, error) {
	var account models.Account
	if err := s.db.First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}
