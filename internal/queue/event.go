// Package queue defines message payloads exchanged over the message broker.
package queue

// SaleRecordedEvent is published after a sale transaction commits.  It
// carries enough information for downstream consumers to journal, notify or
// feed analytics without querying the primary database.  Amounts are cents.
type SaleRecordedEvent struct {
    SaleID      uint64 `json:"sale_id"`
    ProductID   uint64 `json:"product_id"`
    ProductName string `json:"product_name"`
    SKU         string `json:"sku,omitempty"`
    UserID      uint64 `json:"user_id"`
    Username    string `json:"username"`
    Quantity    int64  `json:"quantity"`
    TotalCents  int64  `json:"total_cents"`
    ProfitCents int64  `json:"profit_cents"`
    StockLeft   int64  `json:"stock_left"`
    RecordedAt  string `json:"recorded_at"`
}
