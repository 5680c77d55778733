package customer

import "database/sql"

type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

type PostgresRepository struct {
	db DBTX
}

const (
	customerColumns = `customer_id, email, password, first_name, last_name, phone, created_at, updated_at`

	getCustomerByIDQuery    = `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1`
	getCustomerByEmailQuery = `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`

	insertCustomerQuery = `
		INSERT INTO customers (email, password, first_name, last_name, phone, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING customer_id
	`
	updateCustomerQuery = `
		UPDATE customers
		SET email = $1,
			first_name = $2,
			last_name = $3,
			phone = $4,
			updated_at = $5
		WHERE customer_id = $6
	`
)

func NewPostgresRepository(db DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (Customer, error) {
	return r.scanOne(r.db.QueryRow(getCustomerByIDQuery, id))
}

func (r *PostgresRepository) GetByEmail(email string) (Customer, error) {
	return r.scanOne(r.db.QueryRow(getCustomerByEmailQuery, email))
}

func (r *PostgresRepository) Create(c Customer) (Customer, error) {
	err := r.db.QueryRow(insertCustomerQuery,
		c.Email, c.Password, c.FirstName, c.LastName, c.Phone, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
	if err != nil {
		return Customer{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Update(id int, c Customer) (Customer, error) {
	res, err := r.db.Exec(updateCustomerQuery, c.Email, c.FirstName, c.LastName, c.Phone, c.UpdatedAt, id)
	if err != nil {
		return Customer{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Customer{}, err
	}
	if n == 0 {
		return Customer{}, ErrNotFound
	}
	c.ID = id
	return c, nil
}

func (r *PostgresRepository) CreateRefreshToken(rt RefreshToken) error {
	_, err := r.db.Exec(`INSERT INTO refresh_tokens (token, customer_id, expires_at) VALUES ($1,$2,$3)`,
		rt.Token, rt.CustomerID, rt.ExpiresAt)
	return err
}

func (r *PostgresRepository) GetRefreshToken(token string) (RefreshToken, error) {
	var (
		rt      RefreshToken
		revoked sql.NullString
	)
	err := r.db.QueryRow(`SELECT token, customer_id, expires_at, revoked_at FROM refresh_tokens WHERE token = $1`, token).
		Scan(&rt.Token, &rt.CustomerID, &rt.ExpiresAt, &revoked)
	if err != nil {
		if err == sql.ErrNoRows {
			return RefreshToken{}, ErrTokenInvalid
		}
		return RefreshToken{}, err
	}
	if revoked.Valid {
		rt.RevokedAt = &revoked.String
	}
	return rt, nil
}

func (r *PostgresRepository) RevokeRefreshToken(token, revokedAt string) error {
	res, err := r.db.Exec(`UPDATE refresh_tokens SET revoked_at = $1 WHERE token = $2 AND revoked_at IS NULL`, revokedAt, token)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTokenInvalid
	}
	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (Customer, error) {
	var (
		c       Customer
		created sql.NullString
		updated sql.NullString
	)
	err := row.Scan(&c.ID, &c.Email, &c.Password, &c.FirstName, &c.LastName, &c.Phone, &created, &updated)
	if err != nil {
		if err == sql.ErrNoRows {
			return Customer{}, ErrNotFound
		}
		return Customer{}, err
	}
	if created.Valid {
		c.CreatedAt = created.String
	}
	if updated.Valid {
		c.UpdatedAt = updated.String
	}
	return c, nil
}
