package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents an imported bank transaction row.
type Transaction struct {
	TransactionID      string          `db:"transaction_id"`
	Amount             decimal.Decimal `db:"amount"`
	MerchantText       string          `db:"merchant_text"`
	DescriptionText    string          `db:"description_text"`
	Date               time.Time       `db:"txn_date"`
	AccountID          string          `db:"account_id"`
	IsPending          bool            `db:"is_pending"`
	LinkedObligationID string          `db:"linked_obligation_id"` // Nullable, derived from obligation_links
	AuditFields
}
