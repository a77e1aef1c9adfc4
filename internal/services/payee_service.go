package services

import (
	"gorm.io/gorm"

	apperrors "expenses/internal/errors"
	"expenses/internal/models"
)

type payeeService struct {
	db *gorm.DB
}

// NewPayeeService creates a new PayeeServicer.
func NewPayeeService(db *gorm.DB) PayeeServicer {
	return &payeeService{db: db}
}

// ListPayees returns all payees in name order.
func (s *payeeService) ListPayees() ([]models.Payee, error) {
	var payees []models.Payee
	if err := s.db.Order("name ASC").Find(&payees).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return payees, nil
}
