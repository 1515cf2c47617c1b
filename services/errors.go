package services

import "errors"

var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrProductNotFound = errors.New("product not found")
	ErrCartNotFound    = errors.New("no open cart for this code")
	ErrCartAlreadyPaid = errors.New("cart has already been paid for")
	ErrCartEmpty       = errors.New("cart is empty, nothing to pay for")
	ErrItemNotFound    = errors.New("cart item not found")

	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrMissingCallbackField = errors.New("status, tx_ref and transaction_id are required")
	ErrPaymentIncomplete    = errors.New("payment was not successful or is still processing")
	// ErrVerificationMismatch means the provider's verified record
	// disagrees with the local snapshot; the transaction stays pending.
	ErrVerificationMismatch = errors.New("payment verification failed")

	ErrUserExists         = errors.New("email or username already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
