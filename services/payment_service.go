package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"shoppit/gateway"
	"shoppit/models"
	"shoppit/repositories"
)

type TransactionStore interface {
	CreatePending(ctx context.Context, t *models.Transaction) error
	FindByRef(ctx context.Context, ref string) (*models.Transaction, error)
	MarkFailed(ctx context.Context, id int) error
	MarkSuccessful(ctx context.Context, txID, cartID, userID int) error
}

type UserFinder interface {
	FindByID(ctx context.Context, id int) (*models.User, error)
}

type CartReader interface {
	GetUnpaid(ctx context.Context, cartCode string) (*models.Cart, error)
	HasPaid(ctx context.Context, cartCode string) (bool, error)
}

// PaymentService owns the transaction lifecycle: pending at initiation,
// then exactly one transition to successful or failed.
type PaymentService struct {
	transactions TransactionStore
	carts        CartReader
	users        UserFinder
	gw           gateway.Gateway

	tax         decimal.Decimal
	currency    string
	redirectURL string

	// newRef is swappable in tests.
	newRef func() string
}

func NewPaymentService(
	transactions TransactionStore,
	carts CartReader,
	users UserFinder,
	gw gateway.Gateway,
	tax decimal.Decimal,
	currency string,
	redirectURL string,
) *PaymentService {
	return &PaymentService{
		transactions: transactions,
		carts:        carts,
		users:        users,
		gw:           gw,
		tax:          tax,
		currency:     currency,
		redirectURL:  redirectURL,
		newRef:       uuid.NewString,
	}
}

type InitiateResponse struct {
	TxRef       string          `json:"tx_ref"`
	CheckoutURL string          `json:"checkout_url"`
	Gateway     json.RawMessage `json:"gateway_response"`
}

// Initiate snapshots the cart total plus the fixed tax into a pending
// transaction, then asks the provider for a checkout link. The local row
// is committed before the gateway call so that a provider-side success
// always has a record to reconcile against, and so no database lock is
// held during gateway I/O.
func (s *PaymentService) Initiate(ctx context.Context, cartCode string, userID int) (*InitiateResponse, error) {
	cart, err := s.carts.GetUnpaid(ctx, cartCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			paid, perr := s.carts.HasPaid(ctx, cartCode)
			if perr != nil {
				return nil, perr
			}
			if paid {
				return nil, ErrCartAlreadyPaid
			}
			return nil, ErrCartNotFound
		}
		return nil, err
	}

	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	t := &models.Transaction{
		Ref:      s.newRef(),
		CartID:   cart.ID,
		Amount:   cart.SumTotal().Add(s.tax),
		Currency: s.currency,
		UserID:   user.ID,
	}

	err = s.transactions.CreatePending(ctx, t)
	if errors.Is(err, repositories.ErrDuplicateRef) {
		// One retry with a fresh ref; uuid collisions are not worth
		// more than that.
		t.Ref = s.newRef()
		err = s.transactions.CreatePending(ctx, t)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrCartGone) {
			return nil, ErrCartAlreadyPaid
		}
		return nil, err
	}

	result, err := s.gw.Initiate(ctx, gateway.InitiateRequest{
		TxRef:       t.Ref,
		Amount:      t.Amount,
		Currency:    t.Currency,
		RedirectURL: s.redirectURL,
		Customer: gateway.Customer{
			Email:       user.Email,
			Name:        user.Username,
			PhoneNumber: user.Phone,
		},
	})
	if err != nil {
		// A transaction whose initiate call failed must not linger
		// as a pending orphan.
		if ferr := s.transactions.MarkFailed(context.WithoutCancel(ctx), t.ID); ferr != nil {
			log.Printf("failed to mark transaction %s failed: %v", t.Ref, ferr)
		}
		return nil, fmt.Errorf("payment initiation failed: %w", err)
	}

	return &InitiateResponse{
		TxRef:       t.Ref,
		CheckoutURL: result.CheckoutURL,
		Gateway:     result.Raw,
	}, nil
}

type ReconcileResult struct {
	TxRef            string `json:"tx_ref"`
	Status           string `json:"status"`
	AlreadyProcessed bool   `json:"already_processed,omitempty"`
}

// Reconcile settles a provider callback against the local snapshot. The
// callback itself is never trusted: settlement requires a fresh verify
// call whose status, amount and currency all match the values this system
// computed at initiation time.
func (s *PaymentService) Reconcile(ctx context.Context, req models.PaymentCallbackRequest) (*ReconcileResult, error) {
	if req.TxRef == "" || req.TransactionID == "" {
		return nil, ErrMissingCallbackField
	}

	// A non-successful callback is not authoritative either way; leave
	// the transaction as it is and let the provider settle or expire it.
	if req.Status != gateway.StatusSuccessful {
		return nil, ErrPaymentIncomplete
	}

	verified, err := s.gw.Verify(ctx, req.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("payment verification failed: %w", err)
	}

	t, err := s.transactions.FindByRef(ctx, req.TxRef)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	if t.Status == models.TransactionSuccessful {
		// Replayed callback after a completed settlement: confirm,
		// do not re-credit.
		return &ReconcileResult{TxRef: t.Ref, Status: t.Status, AlreadyProcessed: true}, nil
	}

	if verified.Status != gateway.StatusSuccessful ||
		!verified.Amount.Equal(t.Amount) ||
		verified.Currency != t.Currency {
		log.Printf("verification mismatch for %s: status=%s amount=%s currency=%s (expected %s %s)",
			t.Ref, verified.Status, verified.Amount, verified.Currency, t.Amount, t.Currency)
		return nil, ErrVerificationMismatch
	}

	if err := s.transactions.MarkSuccessful(ctx, t.ID, t.CartID, t.UserID); err != nil {
		return nil, err
	}

	return &ReconcileResult{TxRef: t.Ref, Status: models.TransactionSuccessful}, nil
}
