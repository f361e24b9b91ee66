package handler

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/shop-inventory/internal/model"
	"github.com/iliyamo/shop-inventory/internal/repository"
)

// memStore is an in-memory implementation of ProductCatalog, SaleLedger and
// UserDirectory used by the handler tests.  A single mutex gives it the
// same per-product mutual exclusion the MySQL row lock provides, so the
// stock guard semantics match the real repositories.
type memStore struct {
	mu          sync.Mutex
	products    map[uint64]*model.Product
	sales       []model.Sale
	users       map[uint64]model.User
	nextProduct uint64
	nextSale    uint64
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[uint64]*model.Product),
		users:    make(map[uint64]model.User),
	}
}

func (m *memStore) addUser(id uint64, username, role string) {
	m.users[id] = model.User{ID: id, Username: username, Role: role, IsActive: true}
}

func (m *memStore) skuTaken(sku string, exceptID uint64) bool {
	for id, p := range m.products {
		if id == exceptID {
			continue
		}
		if p.SKU != nil && *p.SKU == sku {
			return true
		}
	}
	return false
}

func (m *memStore) Create(_ context.Context, p *model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.SKU != nil {
		s := strings.TrimSpace(*p.SKU)
		if s == "" {
			p.SKU = nil
		} else if m.skuTaken(s, 0) {
			return repository.ErrDuplicateSKU
		}
	}
	m.nextProduct++
	p.ID = m.nextProduct
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *memStore) Update(_ context.Context, id uint64, upd repository.ProductUpdate) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	if upd.SKU != nil {
		s := strings.TrimSpace(*upd.SKU)
		if s == "" {
			p.SKU = nil
		} else {
			if m.skuTaken(s, id) {
				return nil, repository.ErrDuplicateSKU
			}
			p.SKU = &s
		}
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.CostCents != nil {
		p.CostCents = *upd.CostCents
	}
	if upd.PriceCents != nil {
		p.PriceCents = *upd.PriceCents
	}
	if upd.StockQty != nil {
		p.StockQty = *upd.StockQty
	}
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	return &cp, nil
}

func (m *memStore) Restock(_ context.Context, id uint64, qty int64) (*model.Product, error) {
	if qty <= 0 {
		return nil, repository.ErrInvalidQuantity
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	p.StockQty += qty
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	return &cp, nil
}

func (m *memStore) GetByID(_ context.Context, id uint64) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) List(_ context.Context) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memStore) Record(_ context.Context, productID uint64, qty int64, userID uint64) (*model.Sale, error) {
	if qty <= 0 {
		return nil, repository.ErrInvalidQuantity
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[productID]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	if p.StockQty < qty {
		return nil, &repository.InsufficientStockError{Available: p.StockQty}
	}
	p.StockQty -= qty
	m.nextSale++
	s := model.Sale{
		ID:             m.nextSale,
		ProductID:      productID,
		UserID:         userID,
		Quantity:       qty,
		UnitCostCents:  p.CostCents,
		UnitPriceCents: p.PriceCents,
		TotalCents:     p.PriceCents * qty,
		ProfitCents:    (p.PriceCents - p.CostCents) * qty,
		CreatedAt:      time.Now().UTC(),
	}
	m.sales = append(m.sales, s)
	cp := s
	return &cp, nil
}

func (m *memStore) ListSales(_ context.Context) ([]model.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Sale, 0, len(m.sales))
	// Newest first, like the SQL repository.
	for i := len(m.sales) - 1; i >= 0; i-- {
		out = append(out, m.sales[i])
	}
	return out, nil
}

func (m *memStore) GetUserByID(_ context.Context, id uint64) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id], nil
}

// saleLedgerFake adapts memStore to the SaleLedger interface, whose List
// method name collides with ProductCatalog's.
type saleLedgerFake struct{ *memStore }

func (f saleLedgerFake) List(ctx context.Context) ([]model.Sale, error) { return f.ListSales(ctx) }

// userDirFake adapts memStore to UserDirectory.
type userDirFake struct{ *memStore }

func (f userDirFake) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return f.GetUserByID(ctx, id)
}
