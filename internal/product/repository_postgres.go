package product

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so the same repository code
// serves autocommit handler calls and the order workflow's transaction.
type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

type PostgresRepository struct {
	db DBTX
}

const (
	productColumns = `product_id, name, description, price_cents, stock_quantity, category_id, image_key, version, created_at, updated_at`

	listProductsQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE NOT deleted
		ORDER BY product_id
	`
	listProductsByIDsQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE product_id = ANY($1::int[]) AND NOT deleted
		ORDER BY array_position($1::int[], product_id)
	`
	getProductByIDQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE product_id = $1 AND NOT deleted
	`
	insertProductQuery = `
		INSERT INTO products (name, description, price_cents, stock_quantity, category_id, image_key, version, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,1,$7,$7)
		RETURNING product_id
	`
	updateProductQuery = `
		UPDATE products
		SET name = $1,
			description = $2,
			price_cents = $3,
			stock_quantity = $4,
			category_id = $5,
			image_key = $6,
			version = version + 1,
			updated_at = $7
		WHERE product_id = $8 AND version = $9 AND NOT deleted
		RETURNING version
	`
	deleteProductQuery = `UPDATE products SET deleted = TRUE, updated_at = $2 WHERE product_id = $1 AND NOT deleted`
)

func NewPostgresRepository(db DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Product, error) {
	rows, err := r.db.Query(listProductsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) ListByIDs(ids []int) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}

	rows, err := r.db.Query(listProductsByIDsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(getProductByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	err := r.db.QueryRow(insertProductQuery,
		p.Name, p.Description, p.PriceCents, p.StockQuantity, p.CategoryID, p.ImageKey, now).Scan(&p.ID)
	if err != nil {
		return Product{}, err
	}
	p.Version = 1
	p.CreatedAt = now
	p.UpdatedAt = now
	return p, nil
}

// Update compares the caller's version against the stored row. Zero rows
// matched means either the row is gone (ErrNotFound) or another writer got
// there first (ErrConflict); the follow-up existence probe tells the two apart.
func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	err := r.db.QueryRow(updateProductQuery,
		p.Name, p.Description, p.PriceCents, p.StockQuantity, p.CategoryID, p.ImageKey, now, id, p.Version).Scan(&p.Version)
	if err == nil {
		p.ID = id
		p.UpdatedAt = now
		return p, nil
	}
	if err != sql.ErrNoRows {
		return Product{}, err
	}

	var exists int
	probe := r.db.QueryRow(`SELECT 1 FROM products WHERE product_id = $1 AND NOT deleted`, id).Scan(&exists)
	if probe == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if probe != nil {
		return Product{}, probe
	}
	return Product{}, ErrConflict
}

func (r *PostgresRepository) Delete(id int) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := r.db.Exec(deleteProductQuery, id, now)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var (
		p         Product
		desc      sql.NullString
		category  sql.NullInt64
		imageKey  sql.NullString
		createdAt sql.NullString
		updatedAt sql.NullString
	)
	err := row.Scan(&p.ID, &p.Name, &desc, &p.PriceCents, &p.StockQuantity, &category, &imageKey, &p.Version, &createdAt, &updatedAt)
	if err != nil {
		return Product{}, err
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
	return p, nil
}
