// Package repository contains data access logic separated from HTTP
// handlers.  This file covers the product catalog: create, partial update,
// restock and ordered listing.  An empty SKU is stored as NULL so the
// unique index only applies to products that actually carry a code.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/shop-inventory/internal/model"
)

// ProductRepo encapsulates all database queries related to products.
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepo constructs a ProductRepo with the provided DB handle.
func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// ProductUpdate carries the optional fields of a partial product update.
// Nil pointers leave the column untouched.  Setting SKU to an empty string
// clears the product's SKU.
type ProductUpdate struct {
	SKU        *string
	Name       *string
	CostCents  *int64
	PriceCents *int64
	StockQty   *int64
}

// Create inserts a new product into the database.  On success the product's
// ID, CreatedAt and UpdatedAt fields are populated from the stored row.
// A non-empty SKU colliding with an existing product yields ErrDuplicateSKU.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
	const qInsert = "INSERT INTO products (sku, name, cost_cents, price_cents, stock_qty) VALUES (?, ?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, skuValue(p.SKU), p.Name, p.CostCents, p.PriceCents, p.StockQty)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateSKU
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)

	// Follow-up SELECT to populate default timestamp fields.
	const qSelect = "SELECT created_at, updated_at FROM products WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, p.ID).Scan(&p.CreatedAt, &p.UpdatedAt)
}

// Update applies a partial update and returns the updated product.  It
// returns ErrProductNotFound when the id does not exist and ErrDuplicateSKU
// when the new SKU belongs to a different product.  Stock may be set
// directly here for owner corrections; sales never go through this path.
func (r *ProductRepo) Update(ctx context.Context, id uint64, upd ProductUpdate) (*model.Product, error) {
	sets := make([]string, 0, 5)
	args := make([]interface{}, 0, 6)
	if upd.SKU != nil {
		sets = append(sets, "sku = ?")
		args = append(args, skuValue(upd.SKU))
	}
	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.CostCents != nil {
		sets = append(sets, "cost_cents = ?")
		args = append(args, *upd.CostCents)
	}
	if upd.PriceCents != nil {
		sets = append(sets, "price_cents = ?")
		args = append(args, *upd.PriceCents)
	}
	if upd.StockQty != nil {
		sets = append(sets, "stock_qty = ?")
		args = append(args, *upd.StockQty)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	q := "UPDATE products SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateSKU
		}
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// RowsAffected is 0 both for a missing row and for a no-op update;
		// disambiguate with a lookup.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Restock adds qty units to a product's stock.  qty must be positive.
func (r *ProductRepo) Restock(ctx context.Context, id uint64, qty int64) (*model.Product, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE products SET stock_qty = stock_qty + ? WHERE id = ?", qty, id)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrProductNotFound
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches a product by its ID.  It returns ErrProductNotFound if no
// row is found.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (*model.Product, error) {
	const q = "SELECT id, sku, name, cost_cents, price_cents, stock_qty, created_at, updated_at FROM products WHERE id = ?"
	var p model.Product
	var sku sql.NullString
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &sku, &p.Name, &p.CostCents, &p.PriceCents, &p.StockQty, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if sku.Valid {
		s := sku.String
		p.SKU = &s
	}
	return &p, nil
}

// List returns all products ordered by name for display determinism.
func (r *ProductRepo) List(ctx context.Context) ([]model.Product, error) {
	const q = `SELECT id, sku, name, cost_cents, price_cents, stock_qty, created_at, updated_at
	           FROM products ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Product, 0)
	for rows.Next() {
		var p model.Product
		var sku sql.NullString
		if err := rows.Scan(&p.ID, &sku, &p.Name, &p.CostCents, &p.PriceCents, &p.StockQty, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if sku.Valid {
			s := sku.String
			p.SKU = &s
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// skuValue converts an optional SKU into a driver value: nil and empty
// strings both become NULL.
func skuValue(sku *string) interface{} {
	if sku == nil {
		return nil
	}
	s := strings.TrimSpace(*sku)
	if s == "" {
		return nil
	}
	return s
}

// isDuplicateKey reports whether err is a MySQL 1062 duplicate-key error.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
