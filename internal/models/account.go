package models

import "time"

// AccountType represents the kind of account
type AccountType string

const (
	AccountTypeCash       AccountType = "CASH"
	AccountTypeDebitCard  AccountType = "DEBIT_CARD"
	AccountTypeCreditCard AccountType = "CREDIT_CARD"
	AccountTypeBank       AccountType = "BANK"
	AccountTypeSavings    AccountType = "SAVINGS"
	AccountTypeLoan       AccountType = "LOAN"
	AccountTypeOnline     AccountType = "ONLINE"
	AccountTypeOther      AccountType = "OTHER"
)

// CardType is the card issuer for debit and credit card accounts.
type CardType string

const (
	CardTypeVisa            CardType = "VISA"
	CardTypeVisaElectron    CardType = "VISA_ELECTRON"
	CardTypeMastercard      CardType = "MASTERCARD"
	CardTypeMaestro         CardType = "MAESTRO"
	CardTypeAmericanExpress CardType = "AMERICAN_EXPRESS"
	CardTypeDiscover        CardType = "DISCOVER"
	CardTypeCirrus          CardType = "CIRRUS"
	CardTypeJCB             CardType = "JCB"
	CardTypeDiners          CardType = "DINERS"
	CardTypeUnionPay        CardType = "UNIONPAY"
	CardTypeEPS             CardType = "EPS"
	CardTypeOther           CardType = "OTHER"
)

// OnlineAccountType is the provider behind an online account.
type OnlineAccountType string

const (
	OnlineAccountTypePayPal       OnlineAccountType = "PAYPAL"
	OnlineAccountTypeAmazon       OnlineAccountType = "AMAZON"
	OnlineAccountTypeGoogleWallet OnlineAccountType = "GOOGLE_WALLET"
	OnlineAccountTypeOther        OnlineAccountType = "OTHER"
)

// Account represents a financial account. The identity is the stable integer
// id assigned by the legacy source (or by the store for locally created rows).
//
// Balance and LastTransactionAt are derived values: they are recomputed by the
// integrity fixer from the account's transaction history and are never the
// source of truth. Balance is in minor currency units (cents).
type Account struct {
	ID                int64              `gorm:"primaryKey" json:"id"`
	Title             string             `gorm:"not null" json:"title"`
	Currency          string             `gorm:"not null;default:'EUR'" json:"currency"`
	Balance           int64              `gorm:"not null;default:0" json:"balance"`
	Type              AccountType        `gorm:"not null" json:"type"`
	CardType          *CardType          `json:"card_type,omitempty"`
	OnlineAccountType *OnlineAccountType `json:"online_account_type,omitempty"`
	IsActive          bool               `gorm:"default:true" json:"is_active"`
	IncludeInTotals   bool               `gorm:"default:true" json:"include_in_totals"`
	SortOrder         int                `gorm:"default:0" json:"sort_order"`
	Note              string             `json:"note"`
	CreatedAt         time.Time          `json:"created_at"`
	LastTransactionAt *time.Time         `json:"last_transaction_at,omitempty"`
}
