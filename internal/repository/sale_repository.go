package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/shop-inventory/internal/model"
)

// SaleRepo persists sales and performs the guarded stock decrement.  Sales
// are append-only; there are no update or delete methods on purpose.
type SaleRepo struct {
	db *sql.DB
}

// NewSaleRepo returns a new SaleRepo bound to the given database.
func NewSaleRepo(db *sql.DB) *SaleRepo { return &SaleRepo{db: db} }

// Record sells qty units of a product on behalf of userID.  The whole
// operation runs in one transaction: the product row is read under
// SELECT ... FOR UPDATE, the stock guard is checked, stock is decremented
// and the sale row is inserted with cost/price snapshots taken from the
// locked row.  The row lock serializes concurrent sales per product, so
// two requests can never both pass the guard against a stale stock figure.
// Either the decrement and the insert both commit or neither does.
//
// Errors: ErrInvalidQuantity when qty <= 0, ErrProductNotFound when the
// product does not exist, *InsufficientStockError when stock < qty.
func (r *SaleRepo) Record(ctx context.Context, productID uint64, qty int64, userID uint64) (*model.Sale, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const qLock = "SELECT cost_cents, price_cents, stock_qty FROM products WHERE id = ? FOR UPDATE"
	var costCents, priceCents, stockQty int64
	if err := tx.QueryRowContext(ctx, qLock, productID).Scan(&costCents, &priceCents, &stockQty); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if stockQty < qty {
		return nil, &InsufficientStockError{Available: stockQty}
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE products SET stock_qty = stock_qty - ? WHERE id = ?", qty, productID); err != nil {
		return nil, err
	}

	sale := &model.Sale{
		ProductID:      productID,
		UserID:         userID,
		Quantity:       qty,
		UnitCostCents:  costCents,
		UnitPriceCents: priceCents,
		TotalCents:     priceCents * qty,
		ProfitCents:    (priceCents - costCents) * qty,
	}
	const qInsert = `INSERT INTO sales
	    (product_id, user_id, quantity, unit_cost_cents, unit_price_cents, total_cents, profit_cents)
	    VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, qInsert,
		sale.ProductID, sale.UserID, sale.Quantity,
		sale.UnitCostCents, sale.UnitPriceCents, sale.TotalCents, sale.ProfitCents)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	sale.ID = uint64(id)

	// Read back the generated timestamp inside the same transaction.
	if err := tx.QueryRowContext(ctx,
		"SELECT created_at FROM sales WHERE id = ?", sale.ID).Scan(&sale.CreatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return sale, nil
}

// List returns all sales, newest first.
func (r *SaleRepo) List(ctx context.Context) ([]model.Sale, error) {
	const q = `SELECT id, product_id, user_id, quantity, unit_cost_cents, unit_price_cents,
	                  total_cents, profit_cents, created_at
	           FROM sales ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Sale, 0)
	for rows.Next() {
		var s model.Sale
		if err := rows.Scan(&s.ID, &s.ProductID, &s.UserID, &s.Quantity,
			&s.UnitCostCents, &s.UnitPriceCents, &s.TotalCents, &s.ProfitCents, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
