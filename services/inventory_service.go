package services

import (
	"context"
	"log/slog"
	"time"

	"mithai-mahal/models"
)

type InventoryService struct {
	store             SweetStore
	notifier          StockNotifier
	lowStockThreshold int
}

// NewInventoryService wires the stock transitions. notifier may be nil.
func NewInventoryService(store SweetStore, notifier StockNotifier, lowStockThreshold int) *InventoryService {
	return &InventoryService{
		store:             store,
		notifier:          notifier,
		lowStockThreshold: lowStockThreshold,
	}
}

// Purchase sells exactly one unit.
func (s *InventoryService) Purchase(ctx context.Context, id string) (*models.Sweet, error) {
	sweet, err := s.store.DecrementStock(ctx, id)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "sweet purchased", "sweet_id", sweet.ID, "quantity_in_stock", sweet.QuantityInStock)

	if s.notifier != nil && sweet.QuantityInStock <= s.lowStockThreshold {
		go s.notifyLowStock(context.WithoutCancel(ctx), *sweet)
	}
	return sweet, nil
}

func (s *InventoryService) Restock(ctx context.Context, id string, quantity *int) (*models.Sweet, error) {
	if quantity == nil || *quantity < 1 || *quantity > models.MaxStock {
		return nil, models.ErrInvalidQuantity
	}

	sweet, err := s.store.IncrementStock(ctx, id, *quantity)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "sweet restocked", "sweet_id", sweet.ID, "added", *quantity, "quantity_in_stock", sweet.QuantityInStock)
	return sweet, nil
}

func (s *InventoryService) notifyLowStock(ctx context.Context, sweet models.Sweet) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.notifier.NotifyLowStock(ctx, sweet); err != nil {
		slog.Warn("low stock alert failed", "sweet_id", sweet.ID, "error", err)
	}
}
