package services

import (
	"context"
	"time"

	"mithai-mahal/models"
)

// SweetStore persists catalog records. Implementations report ErrNotFound for
// unknown ids and ErrDuplicateName when the unique name constraint trips.
type SweetStore interface {
	Create(ctx context.Context, sweet *models.Sweet) error
	FindAll(ctx context.Context) ([]models.Sweet, error)
	FindByID(ctx context.Context, id string) (*models.Sweet, error)
	FindByName(ctx context.Context, name string) (*models.Sweet, error)
	Search(ctx context.Context, filter models.SweetFilter) ([]models.Sweet, error)
	Update(ctx context.Context, id string, patch models.SweetPatch) (*models.Sweet, error)
	Delete(ctx context.Context, id string) error

	// DecrementStock takes one unit only if at least one is available, as a single atomic step.
	DecrementStock(ctx context.Context, id string) (*models.Sweet, error)
	IncrementStock(ctx context.Context, id string, quantity int) (*models.Sweet, error)
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type StockNotifier interface {
	NotifyLowStock(ctx context.Context, sweet models.Sweet) error
}

type TokenIssuer interface {
	GenerateToken(user models.User) (string, error)
}
