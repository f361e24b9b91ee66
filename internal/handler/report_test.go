package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestStockReport(t *testing.T) {
	store := newMemStore()
	store.addUser(2, "clerk", "EMPLOYEE")
	seedProduct(t, store, "Teh", 300, 700, 9)
	seedProduct(t, store, "Beras", 100, 150, 4)
	h := NewReportHandler(store, saleLedgerFake{store})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/reports/stock", nil)
	rec := httptest.NewRecorder()
	if err := h.Stock(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Stock returned error: %v", err)
	}
	var rows []struct {
		Name     string `json:"name"`
		StockQty int64  `json:"stock_qty"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Name != "Beras" || rows[0].StockQty != 4 {
		t.Errorf("row 0 = %+v, want Beras/4", rows[0])
	}
	if rows[1].Name != "Teh" || rows[1].StockQty != 9 {
		t.Errorf("row 1 = %+v, want Teh/9", rows[1])
	}
}

func TestDailyPnLOverSaleHistory(t *testing.T) {
	store, sh, _ := newSaleTestEnv(t)
	seedProduct(t, store, "Kopi", 1000, 2500, 100)
	postSale(t, sh, 2, `{"product_id":1,"quantity":3}`)
	postSale(t, sh, 2, `{"product_id":1,"quantity":1}`)
	h := NewReportHandler(store, saleLedgerFake{store})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/reports/pnl", nil)
	rec := httptest.NewRecorder()
	if err := h.DailyPnL(e.NewContext(req, rec)); err != nil {
		t.Fatalf("DailyPnL returned error: %v", err)
	}
	var rows []struct {
		Date         string `json:"date"`
		RevenueCents int64  `json:"revenue_cents"`
		ProfitCents  int64  `json:"profit_cents"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	// Both sales happened just now, so they land on one UTC date.
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].RevenueCents != 10000 || rows[0].ProfitCents != 6000 {
		t.Errorf("totals = (%d,%d), want (10000,6000)", rows[0].RevenueCents, rows[0].ProfitCents)
	}
}

func TestDailyPnLCSVIsDownloadable(t *testing.T) {
	store, sh, _ := newSaleTestEnv(t)
	seedProduct(t, store, "Kopi", 1000, 2500, 100)
	postSale(t, sh, 2, `{"product_id":1,"quantity":2}`)
	h := NewReportHandler(store, saleLedgerFake{store})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/reports/pnl.csv", nil)
	rec := httptest.NewRecorder()
	if err := h.DailyPnLCSV(e.NewContext(req, rec)); err != nil {
		t.Fatalf("DailyPnLCSV returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %q, want text/csv", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "pnl.csv") {
		t.Errorf("content disposition = %q, want attachment pnl.csv", cd)
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want header + 1 row", len(lines))
	}
	if !strings.HasSuffix(lines[1], ",5000,3000,1") {
		t.Errorf("row = %q, want revenue 5000 / profit 3000 / count 1", lines[1])
	}
}
