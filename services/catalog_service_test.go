package services

import (
	"context"
	"testing"

	"mithai-mahal/models"
	"mithai-mahal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float64Ptr(v float64) *float64 { return &v }
func intPtr(v int) *int             { return &v }
func stringPtr(v string) *string    { return &v }

func createSweet(t *testing.T, svc *CatalogService, name, category string, price float64, qty int) *models.Sweet {
	t.Helper()
	s, err := svc.CreateSweet(context.Background(), models.CreateSweetRequest{
		Name:            name,
		Category:        category,
		Price:           float64Ptr(price),
		QuantityInStock: intPtr(qty),
	})
	require.NoError(t, err)
	return s
}

func TestCatalogService_CreateSweet(t *testing.T) {
	svc := NewCatalogService(repositories.NewMemorySweetRepository())
	ctx := context.Background()

	t.Run("trims and stores", func(t *testing.T) {
		s := createSweet(t, svc, "  Gulab Jamun ", " Syrup ", 250, 20)
		assert.Equal(t, "Gulab Jamun", s.Name)
		assert.Equal(t, "Syrup", s.Category)
		assert.NotEmpty(t, s.ID)
	})

	t.Run("quantity defaults to zero", func(t *testing.T) {
		s, err := svc.CreateSweet(ctx, models.CreateSweetRequest{Name: "Imarti", Category: "Fried", Price: float64Ptr(90)})
		require.NoError(t, err)
		assert.Equal(t, 0, s.QuantityInStock)
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		_, err := svc.CreateSweet(ctx, models.CreateSweetRequest{Name: "Gulab Jamun", Category: "Other", Price: float64Ptr(1)})
		assert.ErrorIs(t, err, models.ErrDuplicateName)

		all, err := svc.GetAllSweets(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestCatalogService_SearchSweets(t *testing.T) {
	svc := NewCatalogService(repositories.NewMemorySweetRepository())
	ctx := context.Background()
	createSweet(t, svc, "Rasmalai", "Bengali", 300, 5)
	createSweet(t, svc, "Chikki", "Brittle", 60, 5)
	createSweet(t, svc, "Kalakand", "Milk", 520, 5)

	t.Run("empty filter returns everything", func(t *testing.T) {
		got, err := svc.SearchSweets(ctx, models.SweetFilter{Name: "   "})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("name substring", func(t *testing.T) {
		got, err := svc.SearchSweets(ctx, models.SweetFilter{Name: "KALA"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Kalakand", got[0].Name)
	})

	t.Run("price range", func(t *testing.T) {
		got, err := svc.SearchSweets(ctx, models.SweetFilter{MinPrice: float64Ptr(100), MaxPrice: float64Ptr(500)})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Rasmalai", got[0].Name)
	})
}

func TestCatalogService_UpdateSweet(t *testing.T) {
	svc := NewCatalogService(repositories.NewMemorySweetRepository())
	ctx := context.Background()
	s := createSweet(t, svc, "Peda", "Milk", 300, 5)
	createSweet(t, svc, "Barfi", "Milk", 280, 5)

	got, err := svc.UpdateSweet(ctx, s.ID, models.SweetPatch{Category: stringPtr("Mathura"), QuantityInStock: intPtr(9)})
	require.NoError(t, err)
	assert.Equal(t, "Peda", got.Name)
	assert.Equal(t, "Mathura", got.Category)
	assert.Equal(t, 300.0, got.Price)
	assert.Equal(t, 9, got.QuantityInStock)

	_, err = svc.UpdateSweet(ctx, s.ID, models.SweetPatch{Name: stringPtr("Barfi")})
	assert.ErrorIs(t, err, models.ErrDuplicateName)

	_, err = svc.UpdateSweet(ctx, "does-not-exist", models.SweetPatch{Price: float64Ptr(1)})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCatalogService_DeleteSweet(t *testing.T) {
	svc := NewCatalogService(repositories.NewMemorySweetRepository())
	ctx := context.Background()
	s := createSweet(t, svc, "Ghevar", "Rajasthani", 400, 3)

	require.NoError(t, svc.DeleteSweet(ctx, s.ID))

	_, err := svc.GetSweetByID(ctx, s.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteSweet(ctx, s.ID), models.ErrNotFound)
}

func TestCatalogService_RejectsStockOutOfRange(t *testing.T) {
	svc := NewCatalogService(repositories.NewMemorySweetRepository())
	ctx := context.Background()

	for _, qty := range []int{-1, models.MaxStock + 1} {
		_, err := svc.CreateSweet(ctx, models.CreateSweetRequest{Name: "Kulfi", Category: "Frozen", Price: float64Ptr(60), QuantityInStock: intPtr(qty)})
		assert.ErrorIs(t, err, models.ErrInvalidQuantity)
	}

	s := createSweet(t, svc, "Kulfi", "Frozen", 60, 3)
	_, err := svc.UpdateSweet(ctx, s.ID, models.SweetPatch{QuantityInStock: intPtr(models.MaxStock + 1)})
	assert.ErrorIs(t, err, models.ErrInvalidQuantity)

	got, err := svc.GetSweetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.QuantityInStock)
}
