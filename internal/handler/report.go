package handler

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shop-inventory/internal/report"
)

// ReportHandler serves the reporting views: the current stock table and the
// date-grouped profit-and-loss report, the latter also as a CSV download.
// All report endpoints are read-only and sit behind the response cache.
type ReportHandler struct {
	Catalog ProductCatalog
	Ledger  SaleLedger
}

// NewReportHandler constructs a ReportHandler with the provided dependencies.
func NewReportHandler(catalog ProductCatalog, ledger SaleLedger) *ReportHandler {
	if catalog == nil || ledger == nil {
		panic("nil dependency passed to NewReportHandler")
	}
	return &ReportHandler{Catalog: catalog, Ledger: ledger}
}

type stockRow struct {
	ProductID uint64  `json:"product_id"`
	SKU       *string `json:"sku,omitempty"`
	Name      string  `json:"name"`
	StockQty  int64   `json:"stock_qty"`
}

// Stock handles GET /v1/reports/stock: the on-hand quantity of every
// product, ordered by name.
func (h *ReportHandler) Stock(c echo.Context) error {
	products, err := h.Catalog.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load stock failed"})
	}
	out := make([]stockRow, 0, len(products))
	for _, p := range products {
		out = append(out, stockRow{ProductID: p.ID, SKU: p.SKU, Name: p.Name, StockQty: p.StockQty})
	}
	return c.JSON(http.StatusOK, out)
}

// DailyPnL handles GET /v1/reports/pnl: revenue and profit summed per UTC
// calendar date, ascending.
func (h *ReportHandler) DailyPnL(c echo.Context) error {
	sales, err := h.Ledger.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load sales failed"})
	}
	return c.JSON(http.StatusOK, report.DailyProfitAndLoss(sales))
}

// DailyPnLCSV handles GET /v1/reports/pnl.csv: the same report as a CSV
// attachment for spreadsheet import.
func (h *ReportHandler) DailyPnLCSV(c echo.Context) error {
	sales, err := h.Ledger.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load sales failed"})
	}
	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, report.DailyProfitAndLoss(sales)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "render csv failed"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="pnl.csv"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}
