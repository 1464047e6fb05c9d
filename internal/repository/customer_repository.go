package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/studiohq/studio-api/internal/models"
)

// CustomerRepository manages persistence for customers.
type CustomerRepository struct {
	db *sqlx.DB
}

// NewCustomerRepository constructs a customer repository.
func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// ListIDs returns every customer identifier.
func (r *CustomerRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM customers ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list customer ids: %w", err)
	}
	return ids, nil
}

// ListRefs returns id/name projections sorted by identifier.
func (r *CustomerRepository) ListRefs(ctx context.Context) ([]models.CustomerRef, error) {
	const query = `SELECT id, first_name, last_name FROM customers ORDER BY id`
	var refs []models.CustomerRef
	if err := r.db.SelectContext(ctx, &refs, query); err != nil {
		return nil, fmt.Errorf("list customer refs: %w", err)
	}
	return refs, nil
}

// FindByID returns a customer record by ID.
func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*models.Customer, error) {
	const query = `SELECT id, first_name, last_name, address, phone, email, preferred_contact, senior, class_balance, norm_name, created_at, updated_at FROM customers WHERE id = $1`
	var customer models.Customer
	if err := r.db.GetContext(ctx, &customer, query, id); err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByIDs returns customers matching the given identifiers.
func (r *CustomerRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Customer, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT id, first_name, last_name, address, phone, email, preferred_contact, senior, class_balance, norm_name, created_at, updated_at FROM customers WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("build customer id query: %w", err)
	}
	query = r.db.Rebind(query)
	var customers []models.Customer
	if err := r.db.SelectContext(ctx, &customers, query, args...); err != nil {
		return nil, fmt.Errorf("find customers by ids: %w", err)
	}
	return customers, nil
}

// FindByNormName looks up a customer by normalized name key.
func (r *CustomerRepository) FindByNormName(ctx context.Context, normName string) (*models.Customer, error) {
	const query = `SELECT id, first_name, last_name, address, phone, email, preferred_contact, senior, class_balance, norm_name, created_at, updated_at FROM customers WHERE norm_name = $1 LIMIT 1`
	var customer models.Customer
	if err := r.db.GetContext(ctx, &customer, query, normName); err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByRawName is the fallback duplicate lookup for records created before
// normalized names existed: case-insensitive exact match on trimmed fields.
func (r *CustomerRepository) FindByRawName(ctx context.Context, firstName, lastName string) (*models.Customer, error) {
	const query = `SELECT id, first_name, last_name, address, phone, email, preferred_contact, senior, class_balance, norm_name, created_at, updated_at FROM customers WHERE LOWER(TRIM(first_name)) = LOWER(TRIM($1)) AND LOWER(TRIM(last_name)) = LOWER(TRIM($2)) LIMIT 1`
	var customer models.Customer
	if err := r.db.GetContext(ctx, &customer, query, firstName, lastName); err != nil {
		return nil, err
	}
	return &customer, nil
}

// Create persists a customer record.
func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	now := time.Now().UTC()
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = now
	}
	customer.UpdatedAt = now

	const query = `INSERT INTO customers (id, first_name, last_name, address, phone, email, preferred_contact, senior, class_balance, norm_name, created_at, updated_at) VALUES (:id, :first_name, :last_name, :address, :phone, :email, :preferred_contact, :senior, :class_balance, :norm_name, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, customer); err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

// IncrementBalance adjusts a customer's class balance by delta, which may be
// negative. The balance is allowed to go below zero.
func (r *CustomerRepository) IncrementBalance(ctx context.Context, id string, delta int) error {
	const query = `UPDATE customers SET class_balance = class_balance + $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, delta, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("increment balance for %s: %w", id, err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a customer record.
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Count returns the total number of customers.
func (r *CustomerRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM customers`); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return count, nil
}
