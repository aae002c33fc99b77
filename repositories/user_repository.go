package repositories

import (
	"context"
	"errors"
	"strings"

	"mithai-mahal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, password, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id::text, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		uuid.NewString(),
		user.Name,
		strings.ToLower(user.Email),
		user.Password,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if isUniqueViolation(err) {
		return models.ErrEmailTaken
	}
	return err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id::text, name, email, password, role, created_at, updated_at FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, strings.ToLower(email)))
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	if !validID(id) {
		return nil, models.ErrUserNotFound
	}
	query := `SELECT id::text, name, email, password, role, created_at, updated_at FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
