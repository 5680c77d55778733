package basket

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/storewise/storefront-backend/internal/product"
)

// DBTX is satisfied by *sql.DB and *sql.Tx, so basket rows can be read and
// reassigned inside the order workflow's transaction.
type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

type PostgresRepository struct {
	db DBTX
}

const (
	getBasketQuery = `SELECT basket_id, customer_id, created_at, updated_at FROM baskets WHERE basket_id = $1`

	listItemsQuery = `
		SELECT item_id, basket_id, product_id, quantity
		FROM basket_items
		WHERE basket_id = $1
		ORDER BY item_id
	`
	snapshotProductsQuery = `
		SELECT product_id, name, description, price_cents, stock_quantity, category_id, image_key, version, created_at, updated_at
		FROM products
		WHERE product_id = ANY($1::int[]) AND NOT deleted
		ORDER BY array_position($1::int[], product_id)
	`
)

func NewPostgresRepository(db DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(customerID *int) (Basket, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	var b Basket
	err := r.db.QueryRow(`INSERT INTO baskets (customer_id, created_at, updated_at) VALUES ($1,$2,$2) RETURNING basket_id`, customerID, now).Scan(&b.ID)
	if err != nil {
		return Basket{}, err
	}
	b.CustomerID = customerID
	b.Items = []Item{}
	b.CreatedAt = now
	b.UpdatedAt = now
	return b, nil
}

// GetByID eagerly loads items and their product snapshots in two queries,
// merging snapshots by product id.
func (r *PostgresRepository) GetByID(id int) (Basket, error) {
	var (
		b        Basket
		customer sql.NullInt64
		created  sql.NullString
		updated  sql.NullString
	)
	err := r.db.QueryRow(getBasketQuery, id).Scan(&b.ID, &customer, &created, &updated)
	if err != nil {
		if err == sql.ErrNoRows {
			return Basket{}, ErrNotFound
		}
		return Basket{}, err
	}
	if customer.Valid {
		v := int(customer.Int64)
		b.CustomerID = &v
	}
	if created.Valid {
		b.CreatedAt = created.String
	}
	if updated.Valid {
		b.UpdatedAt = updated.String
	}

	rows, err := r.db.Query(listItemsQuery, id)
	if err != nil {
		return Basket{}, err
	}
	defer rows.Close()

	b.Items = make([]Item, 0)
	ids := make([]int, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.BasketID, &it.ProductID, &it.Quantity); err != nil {
			return Basket{}, err
		}
		b.Items = append(b.Items, it)
		ids = append(ids, it.ProductID)
	}
	if err := rows.Err(); err != nil {
		return Basket{}, err
	}
	if len(ids) == 0 {
		return b, nil
	}

	prows, err := r.db.Query(snapshotProductsQuery, pq.Array(ids))
	if err != nil {
		return Basket{}, err
	}
	defer prows.Close()

	snapshots := map[int]product.Product{}
	for prows.Next() {
		var (
			p         product.Product
			desc      sql.NullString
			category  sql.NullInt64
			imageKey  sql.NullString
			createdAt sql.NullString
			updatedAt sql.NullString
		)
		if err := prows.Scan(&p.ID, &p.Name, &desc, &p.PriceCents, &p.StockQuantity, &category, &imageKey, &p.Version, &createdAt, &updatedAt); err != nil {
			return Basket{}, err
		}
		if desc.Valid {
			p.Description = desc.String
		}
		if category.Valid {
			v := int(category.Int64)
			p.CategoryID = &v
		}
		if imageKey.Valid {
			p.ImageKey = &imageKey.String
		}
		if createdAt.Valid {
			p.CreatedAt = createdAt.String
		}
		if updatedAt.Valid {
			p.UpdatedAt = updatedAt.String
		}
		snapshots[p.ID] = p
	}
	for i := range b.Items {
		if p, ok := snapshots[b.Items[i].ProductID]; ok {
			b.Items[i].Product = p
		}
	}
	return b, nil
}

func (r *PostgresRepository) AddItem(basketID, productID, qty int) (Basket, error) {
	if err := r.touch(basketID); err != nil {
		return Basket{}, err
	}

	var (
		itemID  int
		current int
	)
	err := r.db.QueryRow(`SELECT item_id, quantity FROM basket_items WHERE basket_id = $1 AND product_id = $2`, basketID, productID).Scan(&itemID, &current)
	switch err {
	case nil:
		newQty := current + qty
		if newQty <= 0 {
			if _, err := r.db.Exec(`DELETE FROM basket_items WHERE item_id = $1`, itemID); err != nil {
				return Basket{}, err
			}
		} else if _, err := r.db.Exec(`UPDATE basket_items SET quantity = $1 WHERE item_id = $2`, newQty, itemID); err != nil {
			return Basket{}, err
		}
	case sql.ErrNoRows:
		if qty > 0 {
			if _, err := r.db.Exec(`INSERT INTO basket_items (basket_id, product_id, quantity) VALUES ($1,$2,$3)`, basketID, productID, qty); err != nil {
				return Basket{}, err
			}
		}
	default:
		return Basket{}, err
	}
	return r.GetByID(basketID)
}

func (r *PostgresRepository) UpdateItem(basketID, itemID, qty int) (Basket, error) {
	if err := r.touch(basketID); err != nil {
		return Basket{}, err
	}

	var res sql.Result
	var err error
	if qty <= 0 {
		res, err = r.db.Exec(`DELETE FROM basket_items WHERE item_id = $1 AND basket_id = $2`, itemID, basketID)
	} else {
		res, err = r.db.Exec(`UPDATE basket_items SET quantity = $1 WHERE item_id = $2 AND basket_id = $3`, qty, itemID, basketID)
	}
	if err != nil {
		return Basket{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Basket{}, err
	}
	if n == 0 {
		return Basket{}, ErrItemNotFound
	}
	return r.GetByID(basketID)
}

func (r *PostgresRepository) RemoveItem(basketID, itemID int) (Basket, error) {
	return r.UpdateItem(basketID, itemID, 0)
}

// Delete removes the basket; items go with it via ON DELETE CASCADE.
func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM baskets WHERE basket_id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) AssignCustomer(basketID, customerID int) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := r.db.Exec(`UPDATE baskets SET customer_id = $1, updated_at = $2 WHERE basket_id = $3`, customerID, now, basketID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// touch bumps updated_at and doubles as the basket existence check.
func (r *PostgresRepository) touch(basketID int) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := r.db.Exec(`UPDATE baskets SET updated_at = $1 WHERE basket_id = $2`, now, basketID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
