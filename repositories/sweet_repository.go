package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mithai-mahal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const sweetColumns = `id::text, name, category, price::float8, quantity_in_stock, created_at, updated_at`

const (
	uniqueViolation   = "23505"
	numericOutOfRange = "22003"
	checkViolation    = "23514"
)

type SweetRepository struct {
	db *pgxpool.Pool
}

func NewSweetRepository(db *pgxpool.Pool) *SweetRepository {
	return &SweetRepository{db: db}
}

func scanSweet(row pgx.Row) (*models.Sweet, error) {
	var s models.Sweet
	err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Price, &s.QuantityInStock, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func collectSweets(rows pgx.Rows) ([]models.Sweet, error) {
	defer rows.Close()

	sweets := []models.Sweet{}
	for rows.Next() {
		var s models.Sweet
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Price, &s.QuantityInStock, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sweets = append(sweets, s)
	}
	return sweets, rows.Err()
}

func isUniqueViolation(err error) bool {
	return hasCode(err, uniqueViolation)
}

// isStockOutOfRange reports a quantity that overflows the column or breaks the non-negative check.
func isStockOutOfRange(err error) bool {
	return hasCode(err, numericOutOfRange) || hasCode(err, checkViolation)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// validID keeps malformed ids from reaching the uuid cast, where they would surface as a 500.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (r *SweetRepository) Create(ctx context.Context, sweet *models.Sweet) error {
	query := `
		INSERT INTO sweets (id, name, category, price, quantity_in_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + sweetColumns

	created, err := scanSweet(r.db.QueryRow(ctx, query,
		uuid.NewString(), sweet.Name, sweet.Category, sweet.Price, sweet.QuantityInStock,
	))
	switch {
	case isUniqueViolation(err):
		return models.ErrDuplicateName
	case isStockOutOfRange(err):
		return models.ErrInvalidQuantity
	case err != nil:
		return err
	}

	*sweet = *created
	return nil
}

func (r *SweetRepository) FindAll(ctx context.Context) ([]models.Sweet, error) {
	rows, err := r.db.Query(ctx, `SELECT `+sweetColumns+` FROM sweets ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	return collectSweets(rows)
}

func (r *SweetRepository) FindByID(ctx context.Context, id string) (*models.Sweet, error) {
	if !validID(id) {
		return nil, models.ErrNotFound
	}
	return scanSweet(r.db.QueryRow(ctx, `SELECT `+sweetColumns+` FROM sweets WHERE id = $1`, id))
}

func (r *SweetRepository) FindByName(ctx context.Context, name string) (*models.Sweet, error) {
	return scanSweet(r.db.QueryRow(ctx, `SELECT `+sweetColumns+` FROM sweets WHERE name = $1`, name))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *SweetRepository) Search(ctx context.Context, filter models.SweetFilter) ([]models.Sweet, error) {
	query := `SELECT ` + sweetColumns + ` FROM sweets WHERE 1=1`
	args := []interface{}{}
	paramIndex := 1

	if filter.Name != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", paramIndex)
		args = append(args, "%"+likeEscaper.Replace(filter.Name)+"%")
		paramIndex++
	}

	if filter.Category != "" {
		query += fmt.Sprintf(" AND category ILIKE $%d", paramIndex)
		args = append(args, "%"+likeEscaper.Replace(filter.Category)+"%")
		paramIndex++
	}

	if filter.MinPrice != nil {
		query += fmt.Sprintf(" AND price >= $%d", paramIndex)
		args = append(args, *filter.MinPrice)
		paramIndex++
	}

	if filter.MaxPrice != nil {
		query += fmt.Sprintf(" AND price <= $%d", paramIndex)
		args = append(args, *filter.MaxPrice)
		paramIndex++
	}

	query += " ORDER BY created_at, id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectSweets(rows)
}

func (r *SweetRepository) Update(ctx context.Context, id string, patch models.SweetPatch) (*models.Sweet, error) {
	if !validID(id) {
		return nil, models.ErrNotFound
	}

	query := `
		UPDATE sweets SET
			name = COALESCE(NULLIF($2::text, ''), name),
			category = COALESCE(NULLIF($3::text, ''), category),
			price = COALESCE($4::numeric, price),
			quantity_in_stock = COALESCE($5::int, quantity_in_stock),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + sweetColumns

	sweet, err := scanSweet(r.db.QueryRow(ctx, query, id, patch.Name, patch.Category, patch.Price, patch.QuantityInStock))
	switch {
	case isUniqueViolation(err):
		return nil, models.ErrDuplicateName
	case isStockOutOfRange(err):
		return nil, models.ErrInvalidQuantity
	}
	return sweet, err
}

func (r *SweetRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return models.ErrNotFound
	}

	result, err := r.db.Exec(ctx, `DELETE FROM sweets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *SweetRepository) DecrementStock(ctx context.Context, id string) (*models.Sweet, error) {
	if !validID(id) {
		return nil, models.ErrNotFound
	}

	query := `
		UPDATE sweets SET quantity_in_stock = quantity_in_stock - 1, updated_at = NOW()
		WHERE id = $1 AND quantity_in_stock >= 1
		RETURNING ` + sweetColumns

	sweet, err := scanSweet(r.db.QueryRow(ctx, query, id))
	if !errors.Is(err, models.ErrNotFound) {
		return sweet, err
	}

	// Zero rows: either the sweet is gone or it has nothing left to sell.
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sweets WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, err
	}
	if exists {
		return nil, models.ErrOutOfStock
	}
	return nil, models.ErrNotFound
}

func (r *SweetRepository) IncrementStock(ctx context.Context, id string, quantity int) (*models.Sweet, error) {
	if !validID(id) {
		return nil, models.ErrNotFound
	}

	query := `
		UPDATE sweets SET quantity_in_stock = quantity_in_stock + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + sweetColumns

	sweet, err := scanSweet(r.db.QueryRow(ctx, query, id, quantity))
	if isStockOutOfRange(err) {
		return nil, models.ErrInvalidQuantity
	}
	return sweet, err
}
