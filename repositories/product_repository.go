package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shoppit/models"
	"shoppit/utils"
)

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name, slug, thumbnail, description, price, category, brand, stock, rating, discount_percentage`

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Thumbnail, &p.Description,
		&p.Price, &p.Category, &p.Brand, &p.Stock, &p.Rating, &p.DiscountPercentage,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return scanProduct(row)
}

func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*models.DetailedProduct, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
	p, err := scanProduct(row)
	if err != nil {
		return nil, err
	}

	detailed := &models.DetailedProduct{Product: *p, Reviews: []models.Review{}, SimilarProducts: []models.Product{}}

	var d models.Dimensions
	err = r.db.QueryRow(ctx,
		`SELECT width, height, depth FROM product_dimensions WHERE product_id = $1`, p.ID,
	).Scan(&d.Width, &d.Height, &d.Depth)
	if err == nil {
		detailed.Dimensions = &d
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	var m models.MetaInfo
	err = r.db.QueryRow(ctx,
		`SELECT created_at, updated_at, barcode, qr_code FROM product_meta WHERE product_id = $1`, p.ID,
	).Scan(&m.CreatedAt, &m.UpdatedAt, &m.Barcode, &m.QRCode)
	if err == nil {
		detailed.Meta = &m
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, rating, comment, date, reviewer_name, reviewer_email
		 FROM product_reviews WHERE product_id = $1 ORDER BY date DESC`, p.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var rev models.Review
		if err := rows.Scan(&rev.ID, &rev.Rating, &rev.Comment, &rev.Date, &rev.ReviewerName, &rev.ReviewerEmail); err != nil {
			return nil, err
		}
		detailed.Reviews = append(detailed.Reviews, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	similar, err := r.GetSimilar(ctx, p.Category, p.ID, 10)
	if err != nil {
		return nil, err
	}
	detailed.SimilarProducts = similar

	return detailed, nil
}

func (r *ProductRepository) GetSimilar(ctx context.Context, category string, excludeID, limit int) ([]models.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE category = $1 AND id <> $2 ORDER BY id LIMIT $3`,
		category, excludeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// Create inserts a product, deriving a unique slug from its name. Slug
// collisions are resolved with a numeric suffix (shirt, shirt-1, shirt-2).
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	slug, err := r.uniqueSlug(ctx, product.Name)
	if err != nil {
		return err
	}
	product.Slug = slug

	return r.db.QueryRow(ctx, `
		INSERT INTO products (name, slug, thumbnail, description, price, category, brand, stock, rating, discount_percentage, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		product.Name, product.Slug, product.Thumbnail, product.Description,
		product.Price, product.Category, product.Brand, product.Stock,
		product.Rating, product.DiscountPercentage, time.Now(),
	).Scan(&product.ID)
}

func (r *ProductRepository) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := utils.Slugify(name)
	slug := base
	for counter := 1; ; counter++ {
		var exists bool
		err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE slug = $1)`, slug).Scan(&exists)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}
