package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shop-inventory/internal/model"
	"github.com/iliyamo/shop-inventory/internal/queue"
	"github.com/iliyamo/shop-inventory/internal/repository"
	queue_publisher "github.com/iliyamo/shop-inventory/internal/service"
)

// SaleHandler records sales and serves the sale history.  Recording is
// delegated to the ledger, which performs the stock guard, the decrement
// and the insert as one atomic unit; the handler validates input, maps
// errors and fires the sale.recorded event after commit.
type SaleHandler struct {
	Ledger  SaleLedger
	Catalog ProductCatalog
	Users   UserDirectory
	// Publish overrides the event publisher; nil selects RabbitMQ.
	Publish func(ctx context.Context, ev queue.SaleRecordedEvent) error
}

// NewSaleHandler constructs a SaleHandler with the provided dependencies.
func NewSaleHandler(ledger SaleLedger, catalog ProductCatalog, users UserDirectory) *SaleHandler {
	if ledger == nil || catalog == nil || users == nil {
		panic("nil dependency passed to NewSaleHandler")
	}
	return &SaleHandler{Ledger: ledger, Catalog: catalog, Users: users}
}

type recordSaleReq struct {
	ProductID uint64 `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

type saleResp struct {
	ID             uint64    `json:"id"`
	ProductID      uint64    `json:"product_id"`
	UserID         uint64    `json:"user_id"`
	Quantity       int64     `json:"quantity"`
	UnitCostCents  int64     `json:"unit_cost_cents"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	TotalCents     int64     `json:"total_cents"`
	ProfitCents    int64     `json:"profit_cents"`
	CreatedAt      time.Time `json:"created_at"`
}

func toSaleResp(s *model.Sale) saleResp {
	return saleResp{
		ID:             s.ID,
		ProductID:      s.ProductID,
		UserID:         s.UserID,
		Quantity:       s.Quantity,
		UnitCostCents:  s.UnitCostCents,
		UnitPriceCents: s.UnitPriceCents,
		TotalCents:     s.TotalCents,
		ProfitCents:    s.ProfitCents,
		CreatedAt:      s.CreatedAt,
	}
}

// Record handles POST /v1/sales.  Any authenticated role may sell.  On an
// insufficient-stock failure the response reports the quantity still
// available and the database state is untouched.
func (h *SaleHandler) Record(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req recordSaleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ProductID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id is required"})
	}

	ctx := c.Request().Context()
	sale, err := h.Ledger.Record(ctx, req.ProductID, req.Quantity, userID)
	if err != nil {
		var insufficient *repository.InsufficientStockError
		switch {
		case errors.Is(err, repository.ErrInvalidQuantity):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be positive"})
		case errors.Is(err, repository.ErrProductNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		case errors.As(err, &insufficient):
			return c.JSON(http.StatusConflict, echo.Map{
				"error":     "insufficient stock",
				"available": insufficient.Available,
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record sale failed"})
	}

	h.publishRecorded(sale)
	return c.JSON(http.StatusCreated, toSaleResp(sale))
}

// List handles GET /v1/sales, newest first.
func (h *SaleHandler) List(c echo.Context) error {
	sales, err := h.Ledger.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list sales failed"})
	}
	out := make([]saleResp, 0, len(sales))
	for i := range sales {
		out = append(out, toSaleResp(&sales[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// publishRecorded emits the sale.recorded event in the background.  The
// sale is already committed, so a publish failure is logged by the
// publisher and otherwise ignored.
func (h *SaleHandler) publishRecorded(sale *model.Sale) {
	publish := h.Publish
	if publish == nil {
		publish = queue_publisher.PublishSaleRecorded
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		ev := queue.SaleRecordedEvent{
			SaleID:      sale.ID,
			ProductID:   sale.ProductID,
			UserID:      sale.UserID,
			Quantity:    sale.Quantity,
			TotalCents:  sale.TotalCents,
			ProfitCents: sale.ProfitCents,
			RecordedAt:  sale.CreatedAt.UTC().Format(time.RFC3339),
		}
		if p, err := h.Catalog.GetByID(ctx, sale.ProductID); err == nil {
			ev.ProductName = p.Name
			ev.StockLeft = p.StockQty
			if p.SKU != nil {
				ev.SKU = *p.SKU
			}
		}
		if u, err := h.Users.GetByID(ctx, sale.UserID); err == nil {
			ev.Username = u.Username
		}
		_ = publish(ctx, ev)
	}()
}
