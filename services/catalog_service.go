package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"mithai-mahal/models"
)

type CatalogService struct {
	store SweetStore
}

func NewCatalogService(store SweetStore) *CatalogService {
	return &CatalogService{store: store}
}

// CreateSweet rejects a name that already exists verbatim; matching is case-sensitive.
func (s *CatalogService) CreateSweet(ctx context.Context, req models.CreateSweetRequest) (*models.Sweet, error) {
	if !stockInRange(req.QuantityInStock) {
		return nil, models.ErrInvalidQuantity
	}

	name := strings.TrimSpace(req.Name)

	existing, err := s.store.FindByName(ctx, name)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, models.ErrDuplicateName
	}

	sweet := &models.Sweet{
		Name:     name,
		Category: strings.TrimSpace(req.Category),
	}
	if req.Price != nil {
		sweet.Price = *req.Price
	}
	if req.QuantityInStock != nil {
		sweet.QuantityInStock = *req.QuantityInStock
	}

	if err := s.store.Create(ctx, sweet); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "sweet created", "sweet_id", sweet.ID, "name", sweet.Name)
	return sweet, nil
}

func (s *CatalogService) GetAllSweets(ctx context.Context) ([]models.Sweet, error) {
	return s.store.FindAll(ctx)
}

func (s *CatalogService) GetSweetByID(ctx context.Context, id string) (*models.Sweet, error) {
	return s.store.FindByID(ctx, id)
}

// SearchSweets ANDs every supplied filter. No filters behaves like GetAllSweets.
func (s *CatalogService) SearchSweets(ctx context.Context, filter models.SweetFilter) ([]models.Sweet, error) {
	filter.Name = strings.TrimSpace(filter.Name)
	filter.Category = strings.TrimSpace(filter.Category)

	if filter.IsEmpty() {
		return s.store.FindAll(ctx)
	}
	return s.store.Search(ctx, filter)
}

// UpdateSweet applies only the supplied fields. Name uniqueness is not pre-checked
// here; only the storage constraint guards it.
func (s *CatalogService) UpdateSweet(ctx context.Context, id string, patch models.SweetPatch) (*models.Sweet, error) {
	if !stockInRange(patch.QuantityInStock) {
		return nil, models.ErrInvalidQuantity
	}

	sweet, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "sweet updated", "sweet_id", sweet.ID)
	return sweet, nil
}

func (s *CatalogService) DeleteSweet(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	slog.InfoContext(ctx, "sweet deleted", "sweet_id", id)
	return nil
}

func stockInRange(quantity *int) bool {
	return quantity == nil || (*quantity >= 0 && *quantity <= models.MaxStock)
}
