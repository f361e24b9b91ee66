package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shop-inventory/internal/model"
)

func callProduct(t *testing.T, fn echo.HandlerFunc, method, target, body, paramID string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if paramID != "" {
		c.SetParamNames("id")
		c.SetParamValues(paramID)
	}
	if err := fn(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestCreateProductRequiresName(t *testing.T) {
	h := NewProductHandler(newMemStore())
	rec := callProduct(t, h.Create, http.MethodPost, "/v1/products", `{"cost_cents":100,"price_cents":200}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCreateProductRejectsNegativeAmounts(t *testing.T) {
	h := NewProductHandler(newMemStore())
	for _, body := range []string{
		`{"name":"Teh","cost_cents":-1,"price_cents":200,"stock_qty":1}`,
		`{"name":"Teh","cost_cents":1,"price_cents":-200,"stock_qty":1}`,
		`{"name":"Teh","cost_cents":1,"price_cents":200,"stock_qty":-1}`,
	} {
		rec := callProduct(t, h.Create, http.MethodPost, "/v1/products", body, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	store := newMemStore()
	h := NewProductHandler(store)

	rec := callProduct(t, h.Create, http.MethodPost, "/v1/products",
		`{"sku":"KOPI-01","name":"Kopi","cost_cents":1000,"price_cents":2500,"stock_qty":5}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("first create status = %d, want 201", rec.Code)
	}

	rec = callProduct(t, h.Create, http.MethodPost, "/v1/products",
		`{"sku":"KOPI-01","name":"Kopi Lain","cost_cents":1,"price_cents":2,"stock_qty":1}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate create status = %d, want 409", rec.Code)
	}

	// The existing product must be unmodified and remain the only one.
	products, _ := store.List(context.Background())
	if len(products) != 1 {
		t.Fatalf("products = %d, want 1", len(products))
	}
	if products[0].Name != "Kopi" || products[0].StockQty != 5 {
		t.Errorf("existing product changed: %+v", products[0])
	}
}

func TestUpdateProductSKUCollision(t *testing.T) {
	store := newMemStore()
	h := NewProductHandler(store)
	callProduct(t, h.Create, http.MethodPost, "/v1/products",
		`{"sku":"A-1","name":"Beras","cost_cents":100,"price_cents":150,"stock_qty":3}`, "")
	callProduct(t, h.Create, http.MethodPost, "/v1/products",
		`{"sku":"B-2","name":"Minyak","cost_cents":200,"price_cents":260,"stock_qty":4}`, "")

	rec := callProduct(t, h.Update, http.MethodPatch, "/v1/products/2", `{"sku":"A-1"}`, "2")
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}

	// Re-using its own SKU is not a collision.
	rec = callProduct(t, h.Update, http.MethodPatch, "/v1/products/2", `{"sku":"B-2","name":"Minyak Goreng"}`, "2")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	h := NewProductHandler(newMemStore())
	rec := callProduct(t, h.Update, http.MethodPatch, "/v1/products/7", `{"name":"X"}`, "7")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRestock(t *testing.T) {
	store := newMemStore()
	h := NewProductHandler(store)
	callProduct(t, h.Create, http.MethodPost, "/v1/products",
		`{"name":"Gula","cost_cents":500,"price_cents":800,"stock_qty":2}`, "")

	rec := callProduct(t, h.Restock, http.MethodPost, "/v1/products/1/restock", `{"quantity":8}`, "1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		StockQty int64 `json:"stock_qty"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.StockQty != 10 {
		t.Errorf("stock = %d, want 10", resp.StockQty)
	}

	rec = callProduct(t, h.Restock, http.MethodPost, "/v1/products/1/restock", `{"quantity":0}`, "1")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("zero quantity status = %d, want 400", rec.Code)
	}
}

func TestListProductsOrderedByName(t *testing.T) {
	store := newMemStore()
	for _, name := range []string{"Teh", "Beras", "Minyak"} {
		p := &model.Product{Name: name, PriceCents: 100}
		if err := store.Create(context.Background(), p); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	h := NewProductHandler(store)
	rec := callProduct(t, h.List, http.MethodGet, "/v1/products", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var products []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &products); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	got := []string{products[0].Name, products[1].Name, products[2].Name}
	want := []string{"Beras", "Minyak", "Teh"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}
