package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a real bank transaction, read-only from the matching
// core's perspective. Amount is an unsigned magnitude; direction is not
// relevant to bill reconciliation.
type Transaction struct {
	TransactionID      string          `json:"transactionID"`
	Amount             decimal.Decimal `json:"amount"`
	MerchantText       string          `json:"merchantText"`
	DescriptionText    string          `json:"descriptionText"`
	Date               time.Time       `json:"date"`
	AccountID          string          `json:"accountID"`
	IsPending          bool            `json:"isPending"`
	LinkedObligationID string          `json:"linkedObligationID"` // empty = not yet reconciled
	AuditFields
}
