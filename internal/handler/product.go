package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shop-inventory/internal/model"
	"github.com/iliyamo/shop-inventory/internal/repository"
)

// ProductHandler exposes the owner-facing catalog operations: create,
// partial update, restock and listing.  Role enforcement happens in the
// router; handlers only validate input and map repository errors.
type ProductHandler struct {
	Catalog ProductCatalog
}

// NewProductHandler constructs a ProductHandler and panics if the catalog
// dependency is nil.
func NewProductHandler(catalog ProductCatalog) *ProductHandler {
	if catalog == nil {
		panic("nil catalog passed to NewProductHandler")
	}
	return &ProductHandler{Catalog: catalog}
}

type createProductReq struct {
	SKU        *string `json:"sku"`
	Name       string  `json:"name"`
	CostCents  int64   `json:"cost_cents"`
	PriceCents int64   `json:"price_cents"`
	StockQty   int64   `json:"stock_qty"`
}

type updateProductReq struct {
	SKU        *string `json:"sku"`
	Name       *string `json:"name"`
	CostCents  *int64  `json:"cost_cents"`
	PriceCents *int64  `json:"price_cents"`
	StockQty   *int64  `json:"stock_qty"`
}

type restockReq struct {
	Quantity int64 `json:"quantity"`
}

type productResp struct {
	ID         uint64    `json:"id"`
	SKU        *string   `json:"sku,omitempty"`
	Name       string    `json:"name"`
	CostCents  int64     `json:"cost_cents"`
	PriceCents int64     `json:"price_cents"`
	StockQty   int64     `json:"stock_qty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toProductResp(p *model.Product) productResp {
	return productResp{
		ID:         p.ID,
		SKU:        p.SKU,
		Name:       p.Name,
		CostCents:  p.CostCents,
		PriceCents: p.PriceCents,
		StockQty:   p.StockQty,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// Create handles POST /v1/products.  Name is required; cost, price and
// initial stock must be non-negative; SKU is optional.
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if req.CostCents < 0 || req.PriceCents < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cost and price must be non-negative"})
	}
	if req.StockQty < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stock must be non-negative"})
	}

	p := &model.Product{
		SKU:        req.SKU,
		Name:       req.Name,
		CostCents:  req.CostCents,
		PriceCents: req.PriceCents,
		StockQty:   req.StockQty,
	}
	if err := h.Catalog.Create(c.Request().Context(), p); err != nil {
		if errors.Is(err, repository.ErrDuplicateSKU) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "sku already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create product failed"})
	}
	return c.JSON(http.StatusCreated, toProductResp(p))
}

// Update handles PATCH /v1/products/:id.  Absent fields stay untouched.
func (h *ProductHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	var req updateProductReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if (req.CostCents != nil && *req.CostCents < 0) || (req.PriceCents != nil && *req.PriceCents < 0) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cost and price must be non-negative"})
	}
	if req.StockQty != nil && *req.StockQty < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stock must be non-negative"})
	}

	p, err := h.Catalog.Update(c.Request().Context(), id, repository.ProductUpdate{
		SKU:        req.SKU,
		Name:       req.Name,
		CostCents:  req.CostCents,
		PriceCents: req.PriceCents,
		StockQty:   req.StockQty,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		case errors.Is(err, repository.ErrDuplicateSKU):
			return c.JSON(http.StatusConflict, echo.Map{"error": "sku already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update product failed"})
	}
	return c.JSON(http.StatusOK, toProductResp(p))
}

// Restock handles POST /v1/products/:id/restock, adding units to stock.
func (h *ProductHandler) Restock(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	var req restockReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	p, err := h.Catalog.Restock(c.Request().Context(), id, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidQuantity):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be positive"})
		case errors.Is(err, repository.ErrProductNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "restock failed"})
	}
	return c.JSON(http.StatusOK, toProductResp(p))
}

// List handles GET /v1/products, ordered by name.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.Catalog.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list products failed"})
	}
	out := make([]productResp, 0, len(products))
	for i := range products {
		out = append(out, toProductResp(&products[i]))
	}
	return c.JSON(http.StatusOK, out)
}
