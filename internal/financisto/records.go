package financisto

import (
	"errors"
	"strconv"

	"go.uber.org/zap"

	"expenses/internal/currency"
	"expenses/internal/models"
)

// fallbackCurrency is assigned to accounts whose legacy currency id cannot be
// resolved. Kept literally from the legacy import behavior.
const fallbackCurrency = "EUR"

var errMissingKey = errors.New("missing required key")

// backupData accumulates typed records across the streaming parse. Nothing is
// written to the store until the whole file has been parsed.
type backupData struct {
	log          *zap.SugaredLogger
	currencies   map[string]string // legacy currency id -> ISO 4217 code
	accounts     []accountRecord
	payees       []payeeRecord
	projects     []projectRecord
	categories   []categoryRecord
	transactions []transactionRecord
	splits       map[int64][]splitRecord // keyed by parent transaction id
}

func newBackupData(log *zap.SugaredLogger) *backupData {
	return &backupData{
		log:        log,
		currencies: make(map[string]string),
		splits:     make(map[int64][]splitRecord),
	}
}

type accountRecord struct {
	ID                int64
	Title             string
	CurrencyID        string
	Balance           int64
	Type              models.AccountType
	CardType          *models.CardType
	OnlineAccountType *models.OnlineAccountType
	IsActive          bool
	IncludeInTotals   bool
	SortOrder         int
	Note              string
	CreatedAt         int64 // milliseconds since epoch
}

type payeeRecord struct {
	ID             int64
	Name           string
	LastCategoryID int64
}

type projectRecord struct {
	ID        int64
	Title     string
	IsActive  bool
	UpdatedAt int64
}

// categoryRecord retains the legacy nested-set bounds for tree flattening.
type categoryRecord struct {
	ID       int64
	Name     string
	Left     int64
	Right    int64
	ParentID int64 // resolved by flattenCategories
}

type transactionRecord struct {
	ID                 int64
	FromAccountID      int64
	FromAmount         int64
	ToAccountID        int64
	ToAmount           int64
	CategoryID         int64
	PayeeID            int64
	ProjectID          int64
	Note               string
	OriginalCurrencyID string
	OriginalAmount     int64
	OccurredAt         int64
	ClearedAt          int64
	UpdatedAt          int64
}

type splitRecord struct {
	ID         int64
	Amount     int64
	CategoryID int64
	ProjectID  int64
	Note       string
}

// legacyAccountTypes maps the legacy account type enumeration onto this
// system's account types. Lookup misses fall back to OTHER.
var legacyAccountTypes = map[string]models.AccountType{
	"CASH":        models.AccountTypeCash,
	"BANK":        models.AccountTypeBank,
	"DEBIT_CARD":  models.AccountTypeDebitCard,
	"CREDIT_CARD": models.AccountTypeCreditCard,
	"ASSET":       models.AccountTypeSavings,
	"LIABILITY":   models.AccountTypeLoan,
	"ONLINE":      models.AccountTypeOnline,
	"PAYPAL":      models.AccountTypeOnline,
	"OTHER":       models.AccountTypeOther,
}

// legacyCardIssuers maps the legacy card issuer code onto a card type.
// NETS and any unknown issuer fall back to OTHER.
var legacyCardIssuers = map[string]models.CardType{
	"VISA":          models.CardTypeVisa,
	"VISA_ELECTRON": models.CardTypeVisaElectron,
	"MASTERCARD":    models.CardTypeMastercard,
	"MAESTRO":       models.CardTypeMaestro,
	"CIRRUS":        models.CardTypeCirrus,
	"AMEX":          models.CardTypeAmericanExpress,
	"JCB":           models.CardTypeJCB,
	"DINERS":        models.CardTypeDiners,
	"DISCOVER":      models.CardTypeDiscover,
	"UNIONPAY":      models.CardTypeUnionPay,
	"EPS":           models.CardTypeEPS,
}

var legacyOnlineProviders = map[string]models.OnlineAccountType{
	"PAYPAL":        models.OnlineAccountTypePayPal,
	"AMAZON":        models.OnlineAccountTypeAmazon,
	"GOOGLE_WALLET": models.OnlineAccountTypeGoogleWallet,
}

// processEntry dispatches a closed record to its table handler. Unrecognized
// tables are silently ignored.
func (b *backupData) processEntry(table string, fields map[string]string) error {
	switch table {
	case "currency":
		b.addCurrency(fields)
		return nil
	case "account":
		return b.addAccount(fields)
	case "payee":
		return b.addPayee(fields)
	case "project":
		return b.addProject(fields)
	case "category":
		return b.addCategory(fields)
	case "transactions":
		isTemplate, err := optionalInt(table, fields, "is_template")
		if err != nil {
			return err
		}
		if isTemplate != 0 {
			// Templates are never imported.
			return nil
		}
		return b.addTransaction(fields)
	}
	return nil
}

func (b *backupData) addCurrency(fields map[string]string) {
	code := fields["name"]
	if !currency.Valid(code) {
		b.log.Warnf("Could not find currency for currency code %q, will default to %s", code, fallbackCurrency)
		return
	}
	b.currencies[fields["_id"]] = code
}

func (b *backupData) addAccount(fields map[string]string) error {
	const table = "account"

	id, err := requireInt(table, fields, "_id")
	if err != nil {
		return err
	}
	balance, err := requireInt(table, fields, "total_amount")
	if err != nil {
		return err
	}
	isActive, err := requireInt(table, fields, "is_active")
	if err != nil {
		return err
	}
	includeInTotals, err := requireInt(table, fields, "is_include_into_totals")
	if err != nil {
		return err
	}
	sortOrder, err := requireInt(table, fields, "sort_order")
	if err != nil {
		return err
	}
	createdAt, err := requireInt(table, fields, "creation_date")
	if err != nil {
		return err
	}

	rec := accountRecord{
		ID:              id,
		Title:           fields["title"],
		CurrencyID:      fields["currency_id"],
		Balance:         balance,
		IsActive:        isActive == 1,
		IncludeInTotals: includeInTotals == 1,
		SortOrder:       int(sortOrder),
		Note:            fields["note"],
		CreatedAt:       createdAt,
	}

	legacyType := fields["type"]
	accountType, ok := legacyAccountTypes[legacyType]
	if !ok {
		accountType = models.AccountTypeOther
	}
	rec.Type = accountType

	switch accountType {
	case models.AccountTypeDebitCard, models.AccountTypeCreditCard:
		cardType, ok := legacyCardIssuers[fields["card_issuer"]]
		if !ok {
			cardType = models.CardTypeOther
		}
		rec.CardType = &cardType
	case models.AccountTypeOnline:
		onlineType := models.OnlineAccountTypeOther
		if legacyType == "PAYPAL" {
			onlineType = models.OnlineAccountTypePayPal
		} else if mapped, ok := legacyOnlineProviders[fields["card_issuer"]]; ok {
			onlineType = mapped
		}
		rec.OnlineAccountType = &onlineType
	}

	b.accounts = append(b.accounts, rec)
	return nil
}

func (b *backupData) addPayee(fields map[string]string) error {
	const table = "payee"

	id, err := requireInt(table, fields, "_id")
	if err != nil {
		return err
	}
	lastCategoryID, err := optionalInt(table, fields, "last_category_id")
	if err != nil {
		return err
	}

	b.payees = append(b.payees, payeeRecord{
		ID:             id,
		Name:           fields["title"],
		LastCategoryID: lastCategoryID,
	})
	return nil
}

func (b *backupData) addProject(fields map[string]string) error {
	const table = "project"

	id, err := requireInt(table, fields, "_id")
	if err != nil {
		return err
	}
	if id <= 0 {
		// Sentinel "no project" record, dropped entirely.
		return nil
	}
	isActive, err := requireInt(table, fields, "is_active")
	if err != nil {
		return err
	}
	updatedAt, err := requireInt(table, fields, "updated_on")
	if err != nil {
		return err
	}

	b.projects = append(b.projects, projectRecord{
		ID:        id,
		Title:     fields["title"],
		IsActive:  isActive == 1,
		UpdatedAt: updatedAt,
	})
	return nil
}

func (b *backupData) addCategory(fields map[string]string) error {
	const table = "category"

	id, err := requireInt(table, fields, "_id")
	if err != nil {
		return err
	}
	left, err := requireInt(table, fields, "left")
	if err != nil {
		return err
	}
	right, err := requireInt(table, fields, "right")
	if err != nil {
		return err
	}

	b.categories = append(b.categories, categoryRecord{
		ID:    id,
		Name:  fields["title"],
		Left:  left,
		Right: right,
	})
	return nil
}

// addTransaction normalizes the legacy single-perspective signed amount into
// the transfer/debit/credit model:
//
//   - A "to" account present means a transfer: the legacy from-amount (always
//     negative in that convention) is negated into the debit amount, and the
//     to-amount is copied as-is into the credit amount.
//   - Without a "to" account the sign decides: a positive amount arrived, so
//     the from-account becomes the credit recipient; otherwise it is a debit
//     of the negated magnitude.
//
// Records carrying a parent id are splits, buffered for later attachment —
// unless they also carry a to-account, in which case a transfer is hiding in
// split clothing and the record is reprocessed as a fresh top-level record
// with the parent id cleared. The re-dispatch cannot recurse again: the
// cleared parent id no longer satisfies the split condition.
func (b *backupData) addTransaction(fields map[string]string) error {
	const table = "transactions"

	id, err := requireInt(table, fields, "_id")
	if err != nil {
		return err
	}
	fromAccountID, err := requireInt(table, fields, "from_account_id")
	if err != nil {
		return err
	}
	fromAmount, err := requireInt(table, fields, "from_amount")
	if err != nil {
		return err
	}
	toAccountID, err := requireInt(table, fields, "to_account_id")
	if err != nil {
		return err
	}
	toAmount, err := requireInt(table, fields, "to_amount")
	if err != nil {
		return err
	}
	parentID, err := optionalInt(table, fields, "parent_id")
	if err != nil {
		return err
	}

	if parentID != 0 {
		if toAccountID > 0 {
			redispatched := make(map[string]string, len(fields))
			for k, v := range fields {
				redispatched[k] = v
			}
			redispatched["parent_id"] = "0"
			return b.addTransaction(redispatched)
		}

		split := splitRecord{
			ID:     id,
			Amount: -fromAmount,
			Note:   fields["note"],
		}
		if split.CategoryID, err = optionalInt(table, fields, "category_id"); err != nil {
			return err
		}
		if split.ProjectID, err = optionalInt(table, fields, "project_id"); err != nil {
			return err
		}
		b.splits[parentID] = append(b.splits[parentID], split)
		return nil
	}

	rec := transactionRecord{ID: id, Note: fields["note"]}

	if toAccountID > 0 {
		rec.FromAccountID = fromAccountID
		rec.FromAmount = -fromAmount
		rec.ToAccountID = toAccountID
		rec.ToAmount = toAmount
	} else if fromAmount > 0 {
		rec.ToAccountID = fromAccountID
		rec.ToAmount = fromAmount
	} else {
		rec.FromAccountID = fromAccountID
		rec.FromAmount = -fromAmount
	}

	if rec.CategoryID, err = optionalInt(table, fields, "category_id"); err != nil {
		return err
	}
	if rec.PayeeID, err = optionalInt(table, fields, "payee_id"); err != nil {
		return err
	}
	if rec.ProjectID, err = optionalInt(table, fields, "project_id"); err != nil {
		return err
	}

	if originalCurrencyID := fields["original_currency_id"]; originalCurrencyID != "" && originalCurrencyID != "0" {
		rec.OriginalCurrencyID = originalCurrencyID
		if rec.OriginalAmount, err = requireInt(table, fields, "original_from_amount"); err != nil {
			return err
		}
	}

	occurredAt, err := requireInt(table, fields, "datetime")
	if err != nil {
		return err
	}
	rec.OccurredAt = occurredAt
	rec.ClearedAt = occurredAt

	updatedAt, err := requireInt(table, fields, "updated_on")
	if err != nil {
		return err
	}
	if updatedAt > 1 {
		rec.UpdatedAt = updatedAt
	}

	b.transactions = append(b.transactions, rec)
	return nil
}

// requireInt parses a mandatory numeric field; missing or malformed values
// are parse errors.
func requireInt(table string, fields map[string]string, key string) (int64, error) {
	raw, ok := fields[key]
	if !ok {
		return 0, &ParseError{Table: table, Field: key, Err: errMissingKey}
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ParseError{Table: table, Field: key, Err: err}
	}
	return n, nil
}

// optionalInt parses a numeric field that may be absent; malformed values are
// still parse errors.
func optionalInt(table string, fields map[string]string, key string) (int64, error) {
	raw, ok := fields[key]
	if !ok || raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ParseError{Table: table, Field: key, Err: err}
	}
	return n, nil
}
