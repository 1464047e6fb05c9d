package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiohq/studio-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func customerColumns() []string {
	return []string{"id", "first_name", "last_name", "address", "phone", "email", "preferred_contact", "senior", "class_balance", "norm_name", "created_at", "updated_at"}
}

func TestCustomerRepositoryListIDs(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCustomerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM customers ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("C001").AddRow("C002"))

	ids, err := repo.ListIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"C001", "C002"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepositoryFindByNormName(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCustomerRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT .+ FROM customers WHERE norm_name =").
		WithArgs("jane doe").
		WillReturnRows(sqlmock.NewRows(customerColumns()).
			AddRow("C001", "Jane", "Doe", "", "555-0100", "jane@example.com", "email", false, 3, "jane doe", now, now))

	customer, err := repo.FindByNormName(context.Background(), "jane doe")
	require.NoError(t, err)
	assert.Equal(t, "C001", customer.ID)
	assert.Equal(t, 3, customer.ClassBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepositoryFindByNormNameMiss(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCustomerRepository(db)

	mock.ExpectQuery("SELECT .+ FROM customers WHERE norm_name =").
		WithArgs("nobody here").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByNormName(context.Background(), "nobody here")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCustomerRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCustomerRepository(db)

	mock.ExpectExec("INSERT INTO customers").
		WillReturnResult(sqlmock.NewResult(1, 1))

	customer := &models.Customer{ID: "C001", FirstName: "Jane", LastName: "Doe", NormName: "jane doe"}
	require.NoError(t, repo.Create(context.Background(), customer))
	assert.False(t, customer.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepositoryIncrementBalance(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCustomerRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE customers SET class_balance = class_balance + $2")).
		WithArgs("C001", -1, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementBalance(context.Background(), "C001", -1))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE customers SET class_balance = class_balance + $2")).
		WithArgs("C999", 10, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.IncrementBalance(context.Background(), "C999", 10)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCustomerRepository(db)

	mock.ExpectExec("DELETE FROM customers").
		WithArgs("C999").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "C999")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
