package controllers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"mithai-mahal/models"
	"mithai-mahal/services"

	"github.com/gin-gonic/gin"
)

type SweetController struct {
	catalog   *services.CatalogService
	inventory *services.InventoryService
}

func NewSweetController(catalog *services.CatalogService, inventory *services.InventoryService) *SweetController {
	return &SweetController{catalog: catalog, inventory: inventory}
}

// CreateSweet godoc
// @Summary Create sweet
// @Description Add a new sweet to the catalog (Admin)
// @Tags Admin - Sweets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateSweetRequest true "Sweet"
// @Success 201 {object} models.Sweet
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /sweets [post]
func (ctrl *SweetController) CreateSweet(c *gin.Context) {
	var req models.CreateSweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	sweet, err := ctrl.catalog.CreateSweet(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sweet)
}

// GetAllSweets godoc
// @Summary List sweets
// @Description Get every sweet in the catalog
// @Tags Sweets
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Sweet
// @Router /sweets [get]
func (ctrl *SweetController) GetAllSweets(c *gin.Context) {
	sweets, err := ctrl.catalog.GetAllSweets(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sweets)
}

// SearchSweets godoc
// @Summary Search sweets
// @Description Filter sweets by name, category and price range. Text filters are case-insensitive substrings.
// @Tags Sweets
// @Security BearerAuth
// @Produce json
// @Param name query string false "Name contains"
// @Param category query string false "Category contains"
// @Param minPrice query number false "Minimum price (inclusive)"
// @Param maxPrice query number false "Maximum price (inclusive)"
// @Success 200 {array} models.Sweet
// @Router /sweets/search [get]
func (ctrl *SweetController) SearchSweets(c *gin.Context) {
	filter := models.SweetFilter{
		Name:     c.Query("name"),
		Category: c.Query("category"),
		MinPrice: parsePrice(c.Query("minPrice")),
		MaxPrice: parsePrice(c.Query("maxPrice")),
	}

	sweets, err := ctrl.catalog.SearchSweets(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sweets)
}

// GetSweetByID godoc
// @Summary Get sweet
// @Tags Sweets
// @Security BearerAuth
// @Produce json
// @Param id path string true "Sweet ID"
// @Success 200 {object} models.Sweet
// @Failure 404 {object} models.ErrorResponse
// @Router /sweets/{id} [get]
func (ctrl *SweetController) GetSweetByID(c *gin.Context) {
	sweet, err := ctrl.catalog.GetSweetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sweet)
}

// UpdateSweet godoc
// @Summary Update sweet
// @Description Update any subset of name, category, price and quantityInStock (Admin)
// @Tags Admin - Sweets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Sweet ID"
// @Param request body models.UpdateSweetRequest true "Fields to change"
// @Success 200 {object} models.Sweet
// @Failure 404 {object} models.ErrorResponse
// @Router /sweets/{id} [put]
func (ctrl *SweetController) UpdateSweet(c *gin.Context) {
	var req models.UpdateSweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	sweet, err := ctrl.catalog.UpdateSweet(c.Request.Context(), c.Param("id"), req.Patch())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sweet)
}

// DeleteSweet godoc
// @Summary Delete sweet
// @Description Delete sweet permanently (Admin)
// @Tags Admin - Sweets
// @Security BearerAuth
// @Produce json
// @Param id path string true "Sweet ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /sweets/{id} [delete]
func (ctrl *SweetController) DeleteSweet(c *gin.Context) {
	if err := ctrl.catalog.DeleteSweet(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Sweet deleted successfully"})
}

// PurchaseSweet godoc
// @Summary Purchase sweet
// @Description Buy one unit of a sweet
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Param id path string true "Sweet ID"
// @Success 200 {object} models.InventoryResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /sweets/{id}/purchase [post]
func (ctrl *SweetController) PurchaseSweet(c *gin.Context) {
	sweet, err := ctrl.inventory.Purchase(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.InventoryResponse{Message: "Purchase successful", Sweet: *sweet})
}

// RestockSweet godoc
// @Summary Restock sweet
// @Description Add units to a sweet's stock (Admin)
// @Tags Admin - Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Sweet ID"
// @Param request body models.RestockRequest true "Units to add"
// @Success 200 {object} models.InventoryResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /sweets/{id}/restock [post]
func (ctrl *SweetController) RestockSweet(c *gin.Context) {
	var req models.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, models.ErrInvalidQuantity)
		return
	}

	sweet, err := ctrl.inventory.Restock(c.Request.Context(), c.Param("id"), req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.InventoryResponse{Message: "Restock successful", Sweet: *sweet})
}

// parsePrice treats a missing, unparseable or non-finite bound as unconstrained.
func parsePrice(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
