package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionPending    = "pending"
	TransactionSuccessful = "successful"
	TransactionFailed     = "failed"
)

// Transaction snapshots a cart's payable amount at payment-initiation time.
// Everything except Status is immutable after creation; reconciliation
// trusts Amount and Currency here, never values from the callback request.
type Transaction struct {
	ID         int             `json:"id"`
	Ref        string          `json:"ref"`
	CartID     int             `json:"cart_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	UserID     int             `json:"user_id"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	ModifiedAt time.Time       `json:"modified_at"`
}
