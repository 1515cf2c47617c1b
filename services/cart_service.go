package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"shoppit/models"
)

// CartStore is the slice of the cart repository the ledger needs.
type CartStore interface {
	GetOrCreate(ctx context.Context, cartCode string) (*models.Cart, error)
	GetUnpaid(ctx context.Context, cartCode string) (*models.Cart, error)
	HasPaid(ctx context.Context, cartCode string) (bool, error)
	UpsertItem(ctx context.Context, cartID, productID, quantity int) (*models.CartItem, error)
	GetItem(ctx context.Context, itemID int) (*models.CartItem, error)
	SetItemQuantity(ctx context.Context, itemID, quantity int) error
	DeleteItem(ctx context.Context, itemID int) error
	ProductInCart(ctx context.Context, cartCode string, productID int) (bool, error)
}

type ProductFinder interface {
	GetByID(ctx context.Context, id int) (*models.Product, error)
}

type CartService struct {
	carts    CartStore
	products ProductFinder
}

func NewCartService(carts CartStore, products ProductFinder) *CartService {
	return &CartService{carts: carts, products: products}
}

// AddItem adds quantity of a product to the cart identified by cartCode,
// creating the cart on first use. Re-adding a product accumulates into the
// existing line instead of creating a second one.
func (s *CartService) AddItem(ctx context.Context, cartCode string, productID, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	cart, err := s.carts.GetOrCreate(ctx, cartCode)
	if err != nil {
		return nil, err
	}

	item, err := s.carts.UpsertItem(ctx, cart.ID, product.ID, quantity)
	if err != nil {
		return nil, err
	}

	item.Product = product
	return item, nil
}

// UpdateQuantity overwrites a line's quantity. Zero or below removes the
// line; the bool result reports removal.
func (s *CartService) UpdateQuantity(ctx context.Context, itemID, quantity int) (*models.CartItem, bool, error) {
	item, err := s.carts.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, ErrItemNotFound
		}
		return nil, false, err
	}

	if quantity <= 0 {
		if err := s.carts.DeleteItem(ctx, itemID); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	}

	if err := s.carts.SetItemQuantity(ctx, itemID, quantity); err != nil {
		return nil, false, err
	}
	item.Quantity = quantity
	return item, false, nil
}

// GetCart returns the unpaid cart for a code with its items loaded.
// A code whose cart already settled gets ErrCartAlreadyPaid so the client
// can tell "start shopping" apart from "already checked out".
func (s *CartService) GetCart(ctx context.Context, cartCode string) (*models.Cart, error) {
	cart, err := s.carts.GetUnpaid(ctx, cartCode)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	paid, perr := s.carts.HasPaid(ctx, cartCode)
	if perr != nil {
		return nil, perr
	}
	if paid {
		return nil, ErrCartAlreadyPaid
	}
	return nil, ErrCartNotFound
}

func (s *CartService) GetCartSummary(ctx context.Context, cartCode string) (*models.CartSummary, error) {
	cart, err := s.GetCart(ctx, cartCode)
	if err != nil {
		return nil, err
	}

	return &models.CartSummary{
		ID:       cart.ID,
		CartCode: cart.CartCode,
		NumItems: cart.NumItems(),
		SumTotal: cart.SumTotal(),
	}, nil
}

// ProductInCart is a pure membership check; a missing cart yields false,
// never an error.
func (s *CartService) ProductInCart(ctx context.Context, cartCode string, productID int) (bool, error) {
	return s.carts.ProductInCart(ctx, cartCode, productID)
}
