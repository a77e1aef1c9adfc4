package services

import (
	"time"

	"expenses/internal/models"
	"expenses/internal/pagination"
)

// AccountFilter narrows account listings.
type AccountFilter struct {
	Currency *string
	Type     *models.AccountType
	Active   *bool
}

// TransactionFilter narrows transaction listings. Since is inclusive, Before
// exclusive.
type TransactionFilter struct {
	Since      *time.Time
	Before     *time.Time
	CategoryID *int64
	PayeeID    *int64
	ProjectID  *int64
}

// AccountServicer defines account browsing operations.
type AccountServicer interface {
	ListAccounts(filter AccountFilter) ([]models.Account, error)
	GetAccountByID(id int64) (*models.Account, error)
}

// TransactionServicer defines transaction browsing operations.
type TransactionServicer interface {
	GetTransactionByID(id int64) (*models.Transaction, error)
	GetAccountTransactions(accountID int64, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
}

// CategoryServicer defines category browsing operations.
type CategoryServicer interface {
	ListCategories() ([]models.Category, error)
	GetCategoryByID(id int64) (*models.Category, error)
}

// PayeeServicer defines payee browsing operations.
type PayeeServicer interface {
	ListPayees() ([]models.Payee, error)
}

// ProjectServicer defines project browsing operations.
type ProjectServicer interface {
	ListProjects() ([]models.Project, error)
}

// RestoreServicer runs legacy backup imports and the integrity fixer.
type RestoreServicer interface {
	StartImport(path string) (*RestoreJob, error)
	GetJob(id string) (*RestoreJob, error)
	RunImport(path string) error
	FixIntegrity() error
}
