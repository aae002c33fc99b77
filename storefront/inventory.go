package storefront

import "mithai-mahal/models"

const LowStockLimit = 5

type StockStatus string

const (
	InStock    StockStatus = "in_stock"
	LowStock   StockStatus = "low_stock"
	OutOfStock StockStatus = "out_of_stock"
)

func StatusOf(sweet models.Sweet) StockStatus {
	switch {
	case sweet.QuantityInStock <= 0:
		return OutOfStock
	case sweet.QuantityInStock < LowStockLimit:
		return LowStock
	default:
		return InStock
	}
}

// CanPurchase mirrors the storefront's disabled buy button.
func CanPurchase(sweet models.Sweet) bool {
	return sweet.QuantityInStock > 0
}

// InventorySummary backs the admin dashboard counters. Available counts
// every sweet with stock, so low stock sweets are included in it.
type InventorySummary struct {
	Total      int `json:"total"`
	Available  int `json:"available"`
	LowStock   int `json:"lowStock"`
	OutOfStock int `json:"outOfStock"`
}

func Summarize(sweets []models.Sweet) InventorySummary {
	summary := InventorySummary{Total: len(sweets)}
	for _, s := range sweets {
		switch StatusOf(s) {
		case OutOfStock:
			summary.OutOfStock++
		case LowStock:
			summary.LowStock++
			summary.Available++
		default:
			summary.Available++
		}
	}
	return summary
}
