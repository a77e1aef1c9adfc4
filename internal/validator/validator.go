// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"expenses/internal/currency"
	"expenses/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("iso4217", validateISO4217)
		_ = v.RegisterValidation("account_type", validateAccountType)
	}
}

func validateISO4217(fl validator.FieldLevel) bool {
	return currency.Valid(fl.Field().String())
}

func validateAccountType(fl validator.FieldLevel) bool {
	switch models.AccountType(fl.Field().String()) {
	case models.AccountTypeCash, models.AccountTypeDebitCard, models.AccountTypeCreditCard,
		models.AccountTypeBank, models.AccountTypeSavings, models.AccountTypeLoan,
		models.AccountTypeOnline, models.AccountTypeOther:
		return true
	}
	return false
}
