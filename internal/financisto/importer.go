package financisto

import (
	"errors"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "expenses/internal/errors"
	"expenses/internal/logger"
	"expenses/internal/models"
)

// Importer restores the database from a Financisto backup file.
//
// The store is emptied before population, so a fatal error during population
// leaves it empty rather than half-legacy/half-new. Each persistence phase
// runs inside its own write transaction; a failure rolls back only the phase
// in flight.
type Importer struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewImporter creates an Importer writing to db.
func NewImporter(db *gorm.DB) *Importer {
	return &Importer{db: db, log: logger.Get()}
}

// Run imports the backup at path: empty the store, parse the file into the
// accumulator, then persist category roots, category children, accounts,
// payees, projects, and transactions with their splits, in that order.
// The ordering is a hard requirement: later phases resolve references into
// earlier ones.
func (im *Importer) Run(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrBackupNotFound, err)
	}
	defer f.Close()

	r, err := newBackupReader(f)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrBackupRead, err)
	}

	if err := im.emptyDatabase(); err != nil {
		return err
	}

	data, err := parseBackup(r, im.log)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			return apperrors.Wrap(apperrors.ErrBackupParse, err)
		}
		return apperrors.Wrap(apperrors.ErrBackupRead, err)
	}
	im.log.Info("Finished parsing Financisto backup file")

	roots, children, migrated := flattenCategories(data.categories)
	if err := im.persistCategories(roots, children); err != nil {
		return err
	}
	if err := im.persistAccounts(data); err != nil {
		return err
	}
	if err := im.persistPayees(data, migrated); err != nil {
		return err
	}
	if err := im.persistProjects(data); err != nil {
		return err
	}
	if err := im.persistTransactions(data, migrated); err != nil {
		return err
	}

	im.log.Info("Finished processing backup file")
	return nil
}

func (im *Importer) emptyDatabase() error {
	err := im.db.Transaction(func(tx *gorm.DB) error {
		// Referencing tables first.
		for _, model := range []interface{}{
			&models.TransactionSplit{},
			&models.Transaction{},
			&models.Payee{},
			&models.Project{},
			&models.Category{},
			&models.Account{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	im.log.Info("Finished emptying existing database")
	return nil
}

// persistCategories writes root categories (already in descending name
// order), then child categories linking to their persisted parents.
func (im *Importer) persistCategories(roots, children []categoryRecord) error {
	err := im.db.Transaction(func(tx *gorm.DB) error {
		for _, rec := range roots {
			category := models.Category{ID: rec.ID, Name: rec.Name}
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err = im.db.Transaction(func(tx *gorm.DB) error {
		for _, rec := range children {
			category := models.Category{ID: rec.ID, Name: rec.Name}
			if rec.ParentID > 0 {
				ok, err := rowExists(tx, &models.Category{}, rec.ParentID)
				if err != nil {
					return err
				}
				if ok {
					parentID := rec.ParentID
					category.ParentID = &parentID
				}
			}
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (im *Importer) persistAccounts(data *backupData) error {
	err := im.db.Transaction(func(tx *gorm.DB) error {
		for _, rec := range data.accounts {
			code, ok := data.currencies[rec.CurrencyID]
			if !ok {
				code = fallbackCurrency
			}

			account := models.Account{
				ID:                rec.ID,
				Title:             rec.Title,
				Currency:          code,
				Balance:           rec.Balance,
				Type:              rec.Type,
				CardType:          rec.CardType,
				OnlineAccountType: rec.OnlineAccountType,
				IsActive:          rec.IsActive,
				IncludeInTotals:   rec.IncludeInTotals,
				SortOrder:         rec.SortOrder,
				Note:              rec.Note,
				CreatedAt:         time.UnixMilli(rec.CreatedAt).UTC(),
			}
			if err := tx.Create(&account).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (im *Importer) persistPayees(data *backupData, migrated map[int64]int64) error {
	err := im.db.Transaction(func(tx *gorm.DB) error {
		for _, rec := range data.payees {
			payee := models.Payee{ID: rec.ID, Name: rec.Name}

			if categoryID := rec.LastCategoryID; categoryID > 0 {
				if target, ok := migrated[categoryID]; ok {
					categoryID = target
				}
				ok, err := rowExists(tx, &models.Category{}, categoryID)
				if err != nil {
					return err
				}
				if ok {
					payee.LastCategoryID = &categoryID
				}
			}

			if err := tx.Create(&payee).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (im *Importer) persistProjects(data *backupData) error {
	err := im.db.Transaction(func(tx *gorm.DB) error {
		for _, rec := range data.projects {
			project := models.Project{ID: rec.ID, Title: rec.Title, IsActive: rec.IsActive}
			if rec.UpdatedAt > 0 {
				updatedAt := time.UnixMilli(rec.UpdatedAt).UTC()
				project.UpdatedAt = &updatedAt
			}
			if err := tx.Create(&project).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// persistTransactions writes the buffered top-level transactions in original
// encounter order, attaching any splits buffered against their ids. When a
// transaction has splits, the sum of split amounts replaces its debit amount.
func (im *Importer) persistTransactions(data *backupData, migrated map[int64]int64) error {
	err := im.db.Transaction(func(tx *gorm.DB) error {
		for _, rec := range data.transactions {
			transaction := models.Transaction{ID: rec.ID, Note: rec.Note}

			if rec.FromAccountID > 0 {
				transaction.FromAmount = rec.FromAmount
				ok, err := rowExists(tx, &models.Account{}, rec.FromAccountID)
				if err != nil {
					return err
				}
				if ok {
					fromAccountID := rec.FromAccountID
					transaction.FromAccountID = &fromAccountID
				}
			}
			if rec.ToAccountID > 0 {
				transaction.ToAmount = rec.ToAmount
				ok, err := rowExists(tx, &models.Account{}, rec.ToAccountID)
				if err != nil {
					return err
				}
				if ok {
					toAccountID := rec.ToAccountID
					transaction.ToAccountID = &toAccountID
				}
			}

			categoryID, err := im.resolveCategory(tx, rec.CategoryID, migrated)
			if err != nil {
				return err
			}
			transaction.CategoryID = categoryID

			if rec.PayeeID > 0 {
				ok, err := rowExists(tx, &models.Payee{}, rec.PayeeID)
				if err != nil {
					return err
				}
				if ok {
					payeeID := rec.PayeeID
					transaction.PayeeID = &payeeID
				}
			}
			if rec.ProjectID > 0 {
				ok, err := rowExists(tx, &models.Project{}, rec.ProjectID)
				if err != nil {
					return err
				}
				if ok {
					projectID := rec.ProjectID
					transaction.ProjectID = &projectID
				}
			}

			if id := rec.OriginalCurrencyID; id != "" && id != "0" && id != "-1" {
				if code, ok := data.currencies[id]; ok {
					transaction.OriginalCurrency = code
					transaction.OriginalAmount = rec.OriginalAmount
				} else {
					im.log.Warnf("skipping unknown original currency ID %s", id)
				}
			}

			transaction.OccurredAt = time.UnixMilli(rec.OccurredAt).UTC()
			transaction.ClearedAt = time.UnixMilli(rec.ClearedAt).UTC()
			if rec.UpdatedAt > 0 {
				updatedAt := time.UnixMilli(rec.UpdatedAt).UTC()
				transaction.UpdatedAt = &updatedAt
			}

			if splits := data.splits[rec.ID]; len(splits) > 0 {
				var total int64
				for _, sp := range splits {
					split := models.TransactionSplit{
						ID:            sp.ID,
						TransactionID: rec.ID,
						Amount:        sp.Amount,
						Note:          sp.Note,
					}

					splitCategoryID, err := im.resolveCategory(tx, sp.CategoryID, migrated)
					if err != nil {
						return err
					}
					split.CategoryID = splitCategoryID

					if sp.ProjectID > 0 {
						ok, err := rowExists(tx, &models.Project{}, sp.ProjectID)
						if err != nil {
							return err
						}
						if ok {
							projectID := sp.ProjectID
							split.ProjectID = &projectID
						}
					}

					total += sp.Amount
					transaction.Splits = append(transaction.Splits, split)
				}
				// Split amounts are already sign-normalized debits; their sum
				// replaces whatever the top-level record carried.
				transaction.FromAmount = total
			}

			if err := tx.Create(&transaction).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// resolveCategory rewrites a legacy category id through the migration mapping
// and verifies the target exists. An unresolvable reference is absence, not
// an error.
func (im *Importer) resolveCategory(tx *gorm.DB, categoryID int64, migrated map[int64]int64) (*int64, error) {
	if categoryID <= 0 {
		return nil, nil
	}
	if target, ok := migrated[categoryID]; ok {
		categoryID = target
	}
	ok, err := rowExists(tx, &models.Category{}, categoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &categoryID, nil
}

func rowExists(tx *gorm.DB, model interface{}, id int64) (bool, error) {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
