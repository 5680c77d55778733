package order

import (
	"database/sql"
	"time"
)

// DBTX is satisfied by *sql.DB and *sql.Tx. The workflow always hands this
// repository a transaction; handlers may read through the plain DB.
type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

type PostgresRepository struct {
	db DBTX
}

const (
	orderColumns = `order_id, public_id, customer_id, status, total_cents, deleted, created_at, updated_at`

	getOrderQuery = `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1`

	listOrdersByCustomerQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_id = $1 AND NOT deleted
		ORDER BY order_id DESC
	`
	listItemsQuery = `
		SELECT item_id, public_id, order_id, product_id, product_name, quantity, unit_price_cents
		FROM order_items
		WHERE order_id = $1
		ORDER BY item_id
	`
	insertOrderQuery = `
		INSERT INTO orders (public_id, customer_id, status, total_cents, deleted, created_at, updated_at)
		VALUES ($1,$2,$3,$4,FALSE,$5,$5)
		RETURNING order_id
	`
	insertItemQuery = `
		INSERT INTO order_items (public_id, order_id, product_id, product_name, quantity, unit_price_cents)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING item_id
	`
	updateOrderQuery = `
		UPDATE orders
		SET status = $1, deleted = $2, updated_at = $3
		WHERE order_id = $4
	`
)

func NewPostgresRepository(db DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	o, err := r.scanOrder(r.db.QueryRow(getOrderQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	if err := r.loadItems(&o); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *PostgresRepository) Create(o Order) (Order, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	if o.CreatedAt == "" {
		o.CreatedAt = now
	}
	err := r.db.QueryRow(insertOrderQuery, o.PublicID, o.CustomerID, string(o.Status), o.TotalCents, o.CreatedAt).Scan(&o.ID)
	if err != nil {
		return Order{}, err
	}
	o.UpdatedAt = o.CreatedAt

	for i := range o.Items {
		o.Items[i].OrderID = o.ID
		err := r.db.QueryRow(insertItemQuery,
			o.Items[i].PublicID, o.ID, o.Items[i].ProductID, o.Items[i].ProductName,
			o.Items[i].Quantity, o.Items[i].UnitPriceCents).Scan(&o.Items[i].ID)
		if err != nil {
			return Order{}, err
		}
	}
	return o, nil
}

// Update only touches the mutable columns; items are immutable after
// creation.
func (r *PostgresRepository) Update(id int, o Order) (Order, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := r.db.Exec(updateOrderQuery, string(o.Status), o.Deleted, now, id)
	if err != nil {
		return Order{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Order{}, err
	}
	if n == 0 {
		return Order{}, ErrNotFound
	}
	o.ID = id
	o.UpdatedAt = now
	return o, nil
}

func (r *PostgresRepository) ListByCustomer(customerID int) ([]Order, error) {
	rows, err := r.db.Query(listOrdersByCustomerQuery, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadItems(&out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PostgresRepository) scanOrder(row rowScanner) (Order, error) {
	var (
		o       Order
		status  string
		created sql.NullString
		updated sql.NullString
	)
	err := row.Scan(&o.ID, &o.PublicID, &o.CustomerID, &status, &o.TotalCents, &o.Deleted, &created, &updated)
	if err != nil {
		return Order{}, err
	}
	o.Status = Status(status)
	if created.Valid {
		o.CreatedAt = created.String
	}
	if updated.Valid {
		o.UpdatedAt = updated.String
	}
	return o, nil
}

func (r *PostgresRepository) loadItems(o *Order) error {
	rows, err := r.db.Query(listItemsQuery, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	o.Items = make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.PublicID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPriceCents); err != nil {
			return err
		}
		o.Items = append(o.Items, it)
	}
	return rows.Err()
}
