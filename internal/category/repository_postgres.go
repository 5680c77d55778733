package category

import "database/sql"

type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

type PostgresRepository struct {
	db DBTX
}

func NewPostgresRepository(db DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns category rows ordered by `ord` then id.
func (r *PostgresRepository) List(limit int) ([]Category, error) {
	rows, err := r.db.Query(`SELECT category_id, name, ord FROM categories ORDER BY ord DESC, category_id LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Ord); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(c Category) (Category, error) {
	err := r.db.QueryRow(`INSERT INTO categories (name, ord) VALUES ($1,$2) RETURNING category_id`, c.Name, c.Ord).Scan(&c.ID)
	if err != nil {
		return Category{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Update(id int, c Category) (Category, error) {
	res, err := r.db.Exec(`UPDATE categories SET name = $1, ord = $2 WHERE category_id = $3`, c.Name, c.Ord, id)
	if err != nil {
		return Category{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Category{}, err
	}
	if n == 0 {
		return Category{}, ErrNotFound
	}
	c.ID = id
	return c, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM categories WHERE category_id = $1`, id)
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
