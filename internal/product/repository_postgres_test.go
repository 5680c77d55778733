package product

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return NewPostgresRepository(db), mock, func() { db.Close() }
}

func productRows(t *testing.T) *sqlmock.Rows {
	t.Helper()
	return sqlmock.NewRows([]string{
		"product_id", "name", "description", "price_cents", "stock_quantity",
		"category_id", "image_key", "version", "created_at", "updated_at",
	})
}

func TestGetByID(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	rows := productRows(t).AddRow(3, "Lead", "a strong lead", 2000, 4, nil, nil, 2, "t", "u")
	mock.ExpectQuery("SELECT .*FROM products").WithArgs(3).WillReturnRows(rows)

	p, err := repo.GetByID(3)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if p.ID != 3 || p.Name != "Lead" || p.Version != 2 {
		t.Fatalf("unexpected product %+v", p)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .*FROM products").WithArgs(9).WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByID(9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateBumpsVersion(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectQuery("UPDATE products").
		WithArgs("Lead", "", int64(2000), 4, nil, nil, sqlmock.AnyArg(), 3, 2).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(3))

	p, err := repo.Update(3, Product{Name: "Lead", PriceCents: 2000, StockQuantity: 4, Version: 2})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if p.Version != 3 {
		t.Errorf("version = %d, want 3", p.Version)
	}
	if p.ID != 3 {
		t.Errorf("id = %d, want 3", p.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// A zero-row update against a live row means the version was stale.
func TestUpdateStaleVersionConflicts(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectQuery("UPDATE products").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT 1 FROM products").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	_, err := repo.Update(3, Product{Name: "Lead", Version: 1})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// A zero-row update against a missing or soft-deleted row is not-found.
func TestUpdateMissingRow(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectQuery("UPDATE products").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT 1 FROM products").WithArgs(8).WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(8, Product{Name: "Gone", Version: 1})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListByIDsKeepsRequestedOrder(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	rows := productRows(t).
		AddRow(2, "B", nil, 200, 1, nil, nil, 1, "t", "u").
		AddRow(1, "A", nil, 100, 1, nil, nil, 1, "t", "u")
	mock.ExpectQuery("SELECT .*FROM products").WithArgs(pq.Array([]int{2, 1})).WillReturnRows(rows)

	out, err := repo.ListByIDs([]int{2, 1})
	if err != nil {
		t.Fatalf("ListByIDs: %v", err)
	}
	if len(out) != 2 || out[0].ID != 2 || out[1].ID != 1 {
		t.Fatalf("unexpected order %+v", out)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteIsSoft(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectExec("UPDATE products SET deleted").
		WithArgs(5, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(5); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	mock.ExpectExec("UPDATE products SET deleted").
		WithArgs(5, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
