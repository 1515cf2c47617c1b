package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shoppit/models"
)

type CartRepository struct {
	db *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{db: db}
}

// GetOrCreate resolves the unpaid cart for a code, creating it on first
// use. The upsert rides on the partial unique index over unpaid cart
// codes, so concurrent first adds for the same code converge on one row.
func (r *CartRepository) GetOrCreate(ctx context.Context, cartCode string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.QueryRow(ctx, `
		INSERT INTO carts (cart_code, paid, created_at, modified_at)
		VALUES ($1, false, now(), now())
		ON CONFLICT (cart_code) WHERE NOT paid
		DO UPDATE SET modified_at = now()
		RETURNING id, cart_code, user_id, paid, created_at, modified_at`,
		cartCode,
	).Scan(&cart.ID, &cart.CartCode, &cart.UserID, &cart.Paid, &cart.CreatedAt, &cart.ModifiedAt)
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetUnpaid loads the unpaid cart for a code together with its line items
// and their products. pgx.ErrNoRows when no unpaid cart exists.
func (r *CartRepository) GetUnpaid(ctx context.Context, cartCode string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.QueryRow(ctx, `
		SELECT id, cart_code, user_id, paid, created_at, modified_at
		FROM carts WHERE cart_code = $1 AND NOT paid`,
		cartCode,
	).Scan(&cart.ID, &cart.CartCode, &cart.UserID, &cart.Paid, &cart.CreatedAt, &cart.ModifiedAt)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity,
		       p.id, p.name, p.slug, p.thumbnail, p.description, p.price,
		       p.category, p.brand, p.stock, p.rating, p.discount_percentage
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.cart_id = $1
		ORDER BY ci.id`,
		cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cart.Items = []models.CartItem{}
	for rows.Next() {
		var item models.CartItem
		var p models.Product
		err := rows.Scan(
			&item.ID, &item.CartID, &item.ProductID, &item.Quantity,
			&p.ID, &p.Name, &p.Slug, &p.Thumbnail, &p.Description, &p.Price,
			&p.Category, &p.Brand, &p.Stock, &p.Rating, &p.DiscountPercentage,
		)
		if err != nil {
			return nil, err
		}
		item.Product = &p
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &cart, nil
}

// HasPaid reports whether the code belongs to an already settled cart.
func (r *CartRepository) HasPaid(ctx context.Context, cartCode string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM carts WHERE cart_code = $1 AND paid)`,
		cartCode,
	).Scan(&exists)
	return exists, err
}

// UpsertItem adds quantity to the (cart, product) line, creating it when
// absent. The unique constraint on (cart_id, product_id) makes concurrent
// adds accumulate instead of duplicating rows.
func (r *CartRepository) UpsertItem(ctx context.Context, cartID, productID, quantity int) (*models.CartItem, error) {
	item := models.CartItem{CartID: cartID, ProductID: productID}
	err := r.db.QueryRow(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, quantity`,
		cartID, productID, quantity,
	).Scan(&item.ID, &item.Quantity)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CartRepository) GetItem(ctx context.Context, itemID int) (*models.CartItem, error) {
	var item models.CartItem
	var p models.Product
	err := r.db.QueryRow(ctx, `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity,
		       p.id, p.name, p.slug, p.thumbnail, p.description, p.price,
		       p.category, p.brand, p.stock, p.rating, p.discount_percentage
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.id = $1`,
		itemID,
	).Scan(
		&item.ID, &item.CartID, &item.ProductID, &item.Quantity,
		&p.ID, &p.Name, &p.Slug, &p.Thumbnail, &p.Description, &p.Price,
		&p.Category, &p.Brand, &p.Stock, &p.Rating, &p.DiscountPercentage,
	)
	if err != nil {
		return nil, err
	}
	item.Product = &p
	return &item, nil
}

func (r *CartRepository) SetItemQuantity(ctx context.Context, itemID, quantity int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE cart_items SET quantity = $1 WHERE id = $2`,
		quantity, itemID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *CartRepository) DeleteItem(ctx context.Context, itemID int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ProductInCart never reports a missing cart as an error; an absent cart
// simply does not contain the product.
func (r *CartRepository) ProductInCart(ctx context.Context, cartCode string, productID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM cart_items ci
			JOIN carts c ON ci.cart_id = c.id
			WHERE c.cart_code = $1 AND NOT c.paid AND ci.product_id = $2
		)`,
		cartCode, productID,
	).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return false, err
	}
	return exists, nil
}
