package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/studiohq/studio-api/internal/models"
)

// SaleRepository manages persistence for sales.
type SaleRepository struct {
	db *sqlx.DB
}

// NewSaleRepository constructs a sale repository.
func NewSaleRepository(db *sqlx.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// ListIDs returns every sale identifier.
func (r *SaleRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM sales ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list sale ids: %w", err)
	}
	return ids, nil
}

// FindByID returns a sale record by ID.
func (r *SaleRepository) FindByID(ctx context.Context, id string) (*models.Sale, error) {
	const query = `SELECT id, customer_id, package_id, amount_paid, payment_mode, start_date, end_date, created_at FROM sales WHERE id = $1`
	var sale models.Sale
	if err := r.db.GetContext(ctx, &sale, query, id); err != nil {
		return nil, err
	}
	return &sale, nil
}

// Create persists a sale record.
func (r *SaleRepository) Create(ctx context.Context, sale *models.Sale) error {
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO sales (id, customer_id, package_id, amount_paid, payment_mode, start_date, end_date, created_at) VALUES (:id, :customer_id, :package_id, :amount_paid, :payment_mode, :start_date, :end_date, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, sale); err != nil {
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

// Count returns the total number of sales.
func (r *SaleRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM sales`); err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return count, nil
}
