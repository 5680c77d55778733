package storage

import (
	"context"
	"database/sql"

	"github.com/storewise/storefront-backend/internal/basket"
	"github.com/storewise/storefront-backend/internal/order"
	"github.com/storewise/storefront-backend/internal/product"
)

// UnitOfWork binds the basket, product and order repositories to one
// transaction. Nothing is durable until Commit; an operation that returns
// without committing has no effect.
type UnitOfWork struct {
	tx       *sql.Tx
	done     bool
	baskets  *basket.PostgresRepository
	products *product.PostgresRepository
	orders   *order.PostgresRepository
}

func (u *UnitOfWork) Baskets() order.BasketStore   { return u.baskets }
func (u *UnitOfWork) Products() order.ProductStore { return u.products }
func (u *UnitOfWork) Orders() order.Repository     { return u.orders }

func (u *UnitOfWork) Commit() error {
	u.done = true
	return u.tx.Commit()
}

// Rollback is safe to defer unconditionally; after Commit it does nothing.
func (u *UnitOfWork) Rollback() error {
	if u.done {
		return nil
	}
	u.done = true
	return u.tx.Rollback()
}

// Factory opens a fresh unit of work per order operation.
type Factory struct {
	db *sql.DB
}

func NewFactory(db *sql.DB) *Factory {
	return &Factory{db: db}
}

var _ order.UnitOfWorkFactory = (*Factory)(nil)

func (f *Factory) Begin(ctx context.Context) (order.UnitOfWork, error) {
	tx, err := f.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &UnitOfWork{
		tx:       tx,
		baskets:  basket.NewPostgresRepository(tx),
		products: product.NewPostgresRepository(tx),
		orders:   order.NewPostgresRepository(tx),
	}, nil
}
