package model

import "time"

// Product is a catalog item held in stock.  Monetary amounts are stored as
// integer cents to avoid floating point drift in totals.  StockQty is
// mutated by restocks and by sale decrements and never goes below zero;
// the sale transaction enforces that invariant under a row lock.
//
// Fields:
//  ID         – primary key identifier.
//  SKU        – optional external product code; unique when present.
//  Name       – display name; listings are ordered by it.
//  CostCents  – unit cost in cents.
//  PriceCents – unit sale price in cents.
//  StockQty   – on-hand unit quantity (never negative).
//  CreatedAt  – timestamp when the record was created.
//  UpdatedAt  – timestamp when the record was last updated.
type Product struct {
    ID         uint64    // products.id
    SKU        *string   // products.sku (nullable, unique when set)
    Name       string    // products.name
    CostCents  int64     // products.cost_cents
    PriceCents int64     // products.price_cents
    StockQty   int64     // products.stock_qty
    CreatedAt  time.Time // products.created_at
    UpdatedAt  time.Time // products.updated_at
}
