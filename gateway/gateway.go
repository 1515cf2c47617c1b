// Package gateway talks to the payment provider over HTTP. The rest of
// the system only sees the Gateway interface and the typed results; the
// provider's raw payloads are passed through untouched.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// StatusSuccessful is the provider's success sentinel, used both in
// callback requests and in verified transaction records.
const StatusSuccessful = "successful"

type Customer struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phonenumber,omitempty"`
}

type InitiateRequest struct {
	TxRef       string
	Amount      decimal.Decimal
	Currency    string
	RedirectURL string
	Customer    Customer
}

// InitiateResult carries the checkout link plus the provider's raw
// response body for the client to act on.
type InitiateResult struct {
	CheckoutURL string
	Raw         json.RawMessage
}

// VerifyResult is the provider's record of a transaction, fetched on a
// second independent call. Its fields are cross-checked against the local
// snapshot during reconciliation.
type VerifyResult struct {
	Status   string
	Amount   decimal.Decimal
	Currency string
	TxRef    string
	Raw      json.RawMessage
}

type Gateway interface {
	Initiate(ctx context.Context, req InitiateRequest) (*InitiateResult, error)
	Verify(ctx context.Context, providerTxID string) (*VerifyResult, error)
}

// ErrUnavailable covers network errors and timeouts. A timed-out initiate
// may still have succeeded on the provider's side, so callers must not
// treat it as proof the provider transaction failed.
var ErrUnavailable = errors.New("payment gateway unavailable")

// Error is a structured rejection from the provider (non-2xx response).
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("payment gateway error (%d): %s", e.StatusCode, e.Message)
}

func decimalFromNumber(n json.Number) (decimal.Decimal, error) {
	return decimal.NewFromString(n.String())
}
