// Package handler implements the HTTP endpoints.  Handlers depend on small
// interfaces rather than concrete repositories so tests can substitute
// in-memory fakes; the MySQL repositories in internal/repository satisfy
// them.
package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shop-inventory/internal/model"
	"github.com/iliyamo/shop-inventory/internal/repository"
)

// ProductCatalog is the catalog surface handlers consume: create, partial
// update, restock and ordered listing.  Implemented by *repository.ProductRepo.
type ProductCatalog interface {
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, id uint64, upd repository.ProductUpdate) (*model.Product, error)
	Restock(ctx context.Context, id uint64, qty int64) (*model.Product, error)
	GetByID(ctx context.Context, id uint64) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
}

// SaleLedger records sales atomically with the stock decrement and lists
// the append-only history.  Implemented by *repository.SaleRepo.
type SaleLedger interface {
	Record(ctx context.Context, productID uint64, qty int64, userID uint64) (*model.Sale, error)
	List(ctx context.Context) ([]model.Sale, error)
}

// UserDirectory resolves user records; used to attribute sales in events.
// Implemented by *repository.UserRepo.
type UserDirectory interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// getUserID extracts the user_id claim from echo.Context and converts it to
// uint64.  JWT claims decode numbers as float64, so several types are
// accepted.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses the :id path parameter as a positive integer.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
