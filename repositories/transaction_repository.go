package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"shoppit/models"
)

// ErrCartGone signals that the cart was paid (or deleted) between the
// caller's check and the transaction insert.
var ErrCartGone = errors.New("cart is no longer payable")

// ErrDuplicateRef signals a unique-constraint collision on the ref.
var ErrDuplicateRef = errors.New("transaction ref already exists")

type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// CreatePending inserts the transaction snapshot, conditional on the cart
// still being unpaid. The conditional insert serializes against the paid
// flip in MarkSuccessful, so a settled cart can never gain a new pending
// transaction.
func (r *TransactionRepository) CreatePending(ctx context.Context, t *models.Transaction) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO transactions (ref, cart_id, amount, currency, user_id, status, created_at, modified_at)
		SELECT $1, c.id, $2, $3, $4, 'pending', now(), now()
		FROM carts c
		WHERE c.id = $5 AND NOT c.paid
		RETURNING id, status, created_at, modified_at`,
		t.Ref, t.Amount, t.Currency, t.UserID, t.CartID,
	).Scan(&t.ID, &t.Status, &t.CreatedAt, &t.ModifiedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrCartGone
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateRef
	}

	return err
}

func (r *TransactionRepository) FindByRef(ctx context.Context, ref string) (*models.Transaction, error) {
	var t models.Transaction
	err := r.db.QueryRow(ctx, `
		SELECT id, ref, cart_id, amount, currency, user_id, status, created_at, modified_at
		FROM transactions WHERE ref = $1`,
		ref,
	).Scan(&t.ID, &t.Ref, &t.CartID, &t.Amount, &t.Currency, &t.UserID, &t.Status, &t.CreatedAt, &t.ModifiedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// MarkFailed is a terminal transition; it never touches a transaction
// that already settled.
func (r *TransactionRepository) MarkFailed(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `
		UPDATE transactions SET status = 'failed', modified_at = now()
		WHERE id = $1 AND status = 'pending'`,
		id)
	return err
}

// MarkSuccessful settles the transaction and flips its cart to paid in
// one database transaction. A cart without an owner inherits the paying
// user. This is the only code path that marks a cart paid.
func (r *TransactionRepository) MarkSuccessful(ctx context.Context, txID, cartID, userID int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE transactions SET status = 'successful', modified_at = now()
		WHERE id = $1 AND status = 'pending'`,
		txID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE carts SET paid = true, user_id = COALESCE(user_id, $2), modified_at = now()
		WHERE id = $1`,
		cartID, userID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
