package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"shoppit/models"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO users (username, email, password, city, state, address, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		user.Username, user.Email, user.Password,
		user.City, user.State, user.Address, user.Phone, time.Now(),
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanUser(ctx, `WHERE email = $1`, email)
}

func (r *UserRepository) FindByID(ctx context.Context, id int) (*models.User, error) {
	return r.scanUser(ctx, `WHERE id = $1`, id)
}

func (r *UserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 OR username = $2)`,
		email, username,
	).Scan(&exists)
	return exists, err
}

func (r *UserRepository) scanUser(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, username, email, password, city, state, address, phone, created_at
		FROM users `+where,
		arg,
	).Scan(
		&user.ID, &user.Username, &user.Email, &user.Password,
		&user.City, &user.State, &user.Address, &user.Phone, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
