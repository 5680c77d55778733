package address

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByCustomer(customerID int) ([]Address, error) {
	rows, err := r.db.Query(`SELECT address_id, customer_id, name, detail, phone, created_at, updated_at FROM addresses WHERE customer_id = $1 ORDER BY address_id`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Address, 0)
	for rows.Next() {
		var (
			a       Address
			created sql.NullString
			updated sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.CustomerID, &a.Name, &a.Detail, &a.Phone, &created, &updated); err != nil {
			return nil, err
		}
		if created.Valid {
			a.CreatedAt = created.String
		}
		if updated.Valid {
			a.UpdatedAt = updated.String
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(a Address) (Address, error) {
	err := r.db.QueryRow(`INSERT INTO addresses (customer_id, name, detail, phone, created_at, updated_at) VALUES ($1,$2,$3,$4,$5,$5) RETURNING address_id`,
		a.CustomerID, a.Name, a.Detail, a.Phone, a.CreatedAt).Scan(&a.ID)
	if err != nil {
		return Address{}, err
	}
	return a, nil
}

func (r *PostgresRepository) Update(customerID, addressID int, a Address) (Address, error) {
	res, err := r.db.Exec(`UPDATE addresses SET name = $1, detail = $2, phone = $3, updated_at = $4 WHERE address_id = $5 AND customer_id = $6`,
		a.Name, a.Detail, a.Phone, a.UpdatedAt, addressID, customerID)
	if err != nil {
		return Address{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Address{}, err
	}
	if n == 0 {
		return Address{}, ErrNotFound
	}
	a.ID = addressID
	a.CustomerID = customerID
	return a, nil
}

func (r *PostgresRepository) Delete(customerID, addressID int) error {
	res, err := r.db.Exec(`DELETE FROM addresses WHERE address_id = $1 AND customer_id = $2`, addressID, customerID)
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
