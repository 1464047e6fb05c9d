package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/studiohq/studio-api/internal/models"
)

// PackageRepository manages persistence for packages.
type PackageRepository struct {
	db *sqlx.DB
}

// NewPackageRepository constructs a package repository.
func NewPackageRepository(db *sqlx.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

// ListIDs returns every package identifier.
func (r *PackageRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM packages ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list package ids: %w", err)
	}
	return ids, nil
}

// ListRefs returns id/name/category projections sorted by identifier.
func (r *PackageRepository) ListRefs(ctx context.Context) ([]models.PackageRef, error) {
	const query = `SELECT id, name, category FROM packages ORDER BY id`
	var refs []models.PackageRef
	if err := r.db.SelectContext(ctx, &refs, query); err != nil {
		return nil, fmt.Errorf("list package refs: %w", err)
	}
	return refs, nil
}

// FindByID returns a package record by ID.
func (r *PackageRepository) FindByID(ctx context.Context, id string) (*models.Package, error) {
	const query = `SELECT id, name, category, class_type, num_classes, is_unlimited, start_date, end_date, price, created_at, updated_at FROM packages WHERE id = $1`
	var pkg models.Package
	if err := r.db.GetContext(ctx, &pkg, query, id); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// FindByNameAndCategory looks up a package by case-insensitive trimmed name
// within a category, the duplicate key for packages.
func (r *PackageRepository) FindByNameAndCategory(ctx context.Context, name, category string) (*models.Package, error) {
	const query = `SELECT id, name, category, class_type, num_classes, is_unlimited, start_date, end_date, price, created_at, updated_at FROM packages WHERE LOWER(TRIM(name)) = LOWER(TRIM($1)) AND category = $2 LIMIT 1`
	var pkg models.Package
	if err := r.db.GetContext(ctx, &pkg, query, name, category); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// Create persists a package record.
func (r *PackageRepository) Create(ctx context.Context, pkg *models.Package) error {
	now := time.Now().UTC()
	if pkg.CreatedAt.IsZero() {
		pkg.CreatedAt = now
	}
	pkg.UpdatedAt = now

	const query = `INSERT INTO packages (id, name, category, class_type, num_classes, is_unlimited, start_date, end_date, price, created_at, updated_at) VALUES (:id, :name, :category, :class_type, :num_classes, :is_unlimited, :start_date, :end_date, :price, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, pkg); err != nil {
		return fmt.Errorf("create package: %w", err)
	}
	return nil
}

// Delete removes a package record.
func (r *PackageRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete package: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Count returns the total number of packages.
func (r *PackageRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM packages`); err != nil {
		return 0, fmt.Errorf("count packages: %w", err)
	}
	return count, nil
}
