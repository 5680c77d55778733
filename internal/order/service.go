package order

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/storewise/storefront-backend/internal/basket"
	"github.com/storewise/storefront-backend/internal/product"
)

// BasketStore is the slice of the basket repository the workflow needs.
type BasketStore interface {
	GetByID(id int) (basket.Basket, error)
	AssignCustomer(basketID, customerID int) error
}

// ProductStore reads live product rows and writes stock through the
// version compare-and-swap; a stale version surfaces as product.ErrConflict.
type ProductStore interface {
	GetByID(id int) (product.Product, error)
	Update(id int, p product.Product) (product.Product, error)
}

// UnitOfWork scopes one order operation to a single transaction. All reads
// and writes go through the stores it hands out; nothing is durable until
// Commit, and Rollback after Commit is a no-op.
type UnitOfWork interface {
	Baskets() BasketStore
	Products() ProductStore
	Orders() Repository
	Commit() error
	Rollback() error
}

// UnitOfWorkFactory opens a fresh unit of work per public operation.
type UnitOfWorkFactory interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}

// Notifier publishes order lifecycle events to the email queue. Publish
// failures never undo a committed order.
type Notifier interface {
	Publish(ctx context.Context, kind string, o Order) error
}

const (
	EventOrderCreated   = "order.created"
	EventOrderCancelled = "order.cancelled"
	EventOrderCompleted = "order.completed"
)

// Service implements the order workflow: basket-to-order conversion with
// stock reconciliation, and the cancel/complete state transitions.
type Service struct {
	log      *slog.Logger
	uow      UnitOfWorkFactory
	notifier Notifier // optional
}

func NewService(log *slog.Logger, uow UnitOfWorkFactory, notifier Notifier) *Service {
	return &Service{log: log, uow: uow, notifier: notifier}
}

// CreateOrder converts a basket into a pending order. Stock is validated for
// every line before anything is written: all violations are aggregated so
// the caller learns about every short product at once. Only when the whole
// basket fits does the workflow decrement stock, snapshot the lines and
// persist the order, all inside one transaction.
func (s *Service) CreateOrder(ctx context.Context, basketID, customerID int) (Order, error) {
	uow, err := s.uow.Begin(ctx)
	if err != nil {
		return Order{}, err
	}
	defer uow.Rollback()

	b, err := uow.Baskets().GetByID(basketID)
	if err != nil {
		if errors.Is(err, basket.ErrNotFound) {
			s.log.Warn("create order: basket not found", "basket_id", basketID)
			return Order{}, ErrBasketNotFound
		}
		return Order{}, err
	}
	if len(b.Items) == 0 {
		s.log.Warn("create order: basket is empty", "basket_id", basketID)
		return Order{}, ErrEmptyBasket
	}

	// Check every line before mutating anything.
	products := make([]product.Product, len(b.Items))
	shortages := make([]StockShortage, 0)
	for i, it := range b.Items {
		p, err := uow.Products().GetByID(it.ProductID)
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				shortages = append(shortages, StockShortage{
					ProductID:   it.ProductID,
					ProductName: it.Product.Name,
					Requested:   it.Quantity,
					Available:   0,
				})
				continue
			}
			return Order{}, err
		}
		products[i] = p
		if p.StockQuantity < it.Quantity {
			shortages = append(shortages, StockShortage{
				ProductID:   p.ID,
				ProductName: p.Name,
				Requested:   it.Quantity,
				Available:   p.StockQuantity,
			})
		}
	}
	if len(shortages) > 0 {
		s.log.Warn("create order: insufficient stock", "basket_id", basketID, "shortages", len(shortages))
		return Order{}, &InsufficientStockError{Shortages: shortages}
	}

	// Decrement stock and snapshot each line at the live price.
	now := time.Now().UTC().Format(time.RFC3339)
	items := make([]Item, 0, len(b.Items))
	var total int64
	for i, it := range b.Items {
		p := products[i]
		p.StockQuantity -= it.Quantity
		if _, err := uow.Products().Update(p.ID, p); err != nil {
			if errors.Is(err, product.ErrConflict) {
				s.log.Warn("create order: stock conflict", "basket_id", basketID, "product_id", p.ID)
				return Order{}, ErrConflict
			}
			return Order{}, err
		}

		items = append(items, Item{
			PublicID:       uuid.NewString(),
			ProductID:      p.ID,
			ProductName:    p.Name,
			Quantity:       it.Quantity,
			UnitPriceCents: p.PriceCents,
		})
		total += p.PriceCents * int64(it.Quantity)
	}

	created, err := uow.Orders().Create(Order{
		PublicID:   uuid.NewString(),
		CustomerID: customerID,
		Status:     StatusPending,
		TotalCents: total,
		Items:      items,
		CreatedAt:  now,
	})
	if err != nil {
		return Order{}, err
	}

	// An anonymous basket is claimed by whoever checks it out.
	if b.CustomerID == nil {
		if err := uow.Baskets().AssignCustomer(b.ID, customerID); err != nil {
			return Order{}, err
		}
	}

	if err := uow.Commit(); err != nil {
		return Order{}, err
	}

	s.log.Info("order created", "order_id", created.ID, "customer_id", customerID, "total_cents", created.TotalCents)
	s.notify(ctx, EventOrderCreated, created)
	return created, nil
}

// CancelOrder restores the stock a pending order had taken and marks the
// order cancelled plus soft-deleted. Completed orders cannot be cancelled,
// and cancelling twice is rejected so stock is never restored twice.
func (s *Service) CancelOrder(ctx context.Context, orderID, customerID int) (Order, error) {
	uow, err := s.uow.Begin(ctx)
	if err != nil {
		return Order{}, err
	}
	defer uow.Rollback()

	o, err := uow.Orders().GetByID(orderID)
	if err != nil {
		s.log.Warn("cancel order: not found", "order_id", orderID)
		return Order{}, err
	}
	if o.CustomerID != customerID {
		s.log.Warn("cancel order: wrong owner", "order_id", orderID, "customer_id", customerID)
		return Order{}, ErrNotOwner
	}
	switch o.Status {
	case StatusCompleted:
		return Order{}, ErrCancelCompleted
	case StatusCancelled:
		return Order{}, ErrAlreadyCancelled
	}

	for _, it := range o.Items {
		p, err := uow.Products().GetByID(it.ProductID)
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				// Product was soft-deleted after the order was placed;
				// nothing to restore the units onto.
				continue
			}
			return Order{}, err
		}
		p.StockQuantity += it.Quantity
		if _, err := uow.Products().Update(p.ID, p); err != nil {
			if errors.Is(err, product.ErrConflict) {
				s.log.Warn("cancel order: stock conflict", "order_id", orderID, "product_id", p.ID)
				return Order{}, ErrConflict
			}
			return Order{}, err
		}
	}

	o.Status = StatusCancelled
	o.Deleted = true
	updated, err := uow.Orders().Update(o.ID, o)
	if err != nil {
		return Order{}, err
	}

	if err := uow.Commit(); err != nil {
		return Order{}, err
	}

	s.log.Info("order cancelled", "order_id", o.ID, "customer_id", customerID)
	s.notify(ctx, EventOrderCancelled, updated)
	return updated, nil
}

// CompleteOrder flips a pending order to completed. No inventory effect:
// the stock was already taken at creation.
func (s *Service) CompleteOrder(ctx context.Context, orderID, customerID int) (Order, error) {
	uow, err := s.uow.Begin(ctx)
	if err != nil {
		return Order{}, err
	}
	defer uow.Rollback()

	o, err := uow.Orders().GetByID(orderID)
	if err != nil {
		s.log.Warn("complete order: not found", "order_id", orderID)
		return Order{}, err
	}
	if o.CustomerID != customerID {
		s.log.Warn("complete order: wrong owner", "order_id", orderID, "customer_id", customerID)
		return Order{}, ErrNotOwner
	}
	switch o.Status {
	case StatusCompleted:
		return Order{}, ErrAlreadyCompleted
	case StatusCancelled:
		return Order{}, ErrCompleteCancelled
	}

	o.Status = StatusCompleted
	updated, err := uow.Orders().Update(o.ID, o)
	if err != nil {
		return Order{}, err
	}

	if err := uow.Commit(); err != nil {
		return Order{}, err
	}

	s.log.Info("order completed", "order_id", o.ID, "customer_id", customerID)
	s.notify(ctx, EventOrderCompleted, updated)
	return updated, nil
}

// GetOrder is an ownership-checked read.
func (s *Service) GetOrder(ctx context.Context, orderID, customerID int) (Order, error) {
	uow, err := s.uow.Begin(ctx)
	if err != nil {
		return Order{}, err
	}
	defer uow.Rollback()

	o, err := uow.Orders().GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if o.CustomerID != customerID {
		return Order{}, ErrNotOwner
	}
	return o, nil
}

func (s *Service) ListOrders(ctx context.Context, customerID int) ([]Order, error) {
	uow, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	return uow.Orders().ListByCustomer(customerID)
}

func (s *Service) notify(ctx context.Context, kind string, o Order) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, kind, o); err != nil {
		s.log.Error("order notification failed", "kind", kind, "order_id", o.ID, "err", err)
	}
}
