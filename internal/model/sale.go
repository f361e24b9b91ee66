package model

import "time"

// Sale is an append-only record of one completed sale.  Unit cost and price
// are captured at sale time so later product edits do not retroactively
// change historical profit figures.  TotalCents and ProfitCents are computed
// once at insert (price×qty and (price−cost)×qty) and never re-derived.
//
// Fields:
//  ID             – primary key identifier.
//  ProductID      – product that was sold.
//  UserID         – user who recorded the sale.
//  Quantity       – units sold (always positive).
//  UnitCostCents  – product cost per unit at sale time.
//  UnitPriceCents – product price per unit at sale time.
//  TotalCents     – revenue for this sale.
//  ProfitCents    – profit for this sale.
//  CreatedAt      – timestamp when the sale was recorded (UTC).
type Sale struct {
    ID             uint64    // sales.id
    ProductID      uint64    // sales.product_id
    UserID         uint64    // sales.user_id
    Quantity       int64     // sales.quantity
    UnitCostCents  int64     // sales.unit_cost_cents
    UnitPriceCents int64     // sales.unit_price_cents
    TotalCents     int64     // sales.total_cents
    ProfitCents    int64     // sales.profit_cents
    CreatedAt      time.Time // sales.created_at
}
