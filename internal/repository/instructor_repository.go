package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/studiohq/studio-api/internal/models"
)

// InstructorRepository manages persistence for instructors.
type InstructorRepository struct {
	db *sqlx.DB
}

// NewInstructorRepository constructs an instructor repository.
func NewInstructorRepository(db *sqlx.DB) *InstructorRepository {
	return &InstructorRepository{db: db}
}

// ListIDs returns every instructor identifier.
func (r *InstructorRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM instructors ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list instructor ids: %w", err)
	}
	return ids, nil
}

// ListRefs returns id/name projections sorted by identifier.
func (r *InstructorRepository) ListRefs(ctx context.Context) ([]models.InstructorRef, error) {
	const query = `SELECT id, first_name, last_name FROM instructors ORDER BY id`
	var refs []models.InstructorRef
	if err := r.db.SelectContext(ctx, &refs, query); err != nil {
		return nil, fmt.Errorf("list instructor refs: %w", err)
	}
	return refs, nil
}

// Search returns instructors whose first name contains the search string,
// case-insensitively.
func (r *InstructorRepository) Search(ctx context.Context, firstName string) ([]models.Instructor, error) {
	const query = `SELECT id, first_name, last_name, address, phone, email, preferred_contact, created_at, updated_at FROM instructors WHERE LOWER(first_name) LIKE $1 ORDER BY id`
	var instructors []models.Instructor
	pattern := "%" + strings.ToLower(firstName) + "%"
	if err := r.db.SelectContext(ctx, &instructors, query, pattern); err != nil {
		return nil, fmt.Errorf("search instructors: %w", err)
	}
	return instructors, nil
}

// FindByID returns an instructor record by ID.
func (r *InstructorRepository) FindByID(ctx context.Context, id string) (*models.Instructor, error) {
	const query = `SELECT id, first_name, last_name, address, phone, email, preferred_contact, created_at, updated_at FROM instructors WHERE id = $1`
	var instructor models.Instructor
	if err := r.db.GetContext(ctx, &instructor, query, id); err != nil {
		return nil, err
	}
	return &instructor, nil
}

// FindByName looks up an instructor by case-insensitive trimmed name pair.
func (r *InstructorRepository) FindByName(ctx context.Context, firstName, lastName string) (*models.Instructor, error) {
	const query = `SELECT id, first_name, last_name, address, phone, email, preferred_contact, created_at, updated_at FROM instructors WHERE LOWER(TRIM(first_name)) = LOWER(TRIM($1)) AND LOWER(TRIM(last_name)) = LOWER(TRIM($2)) LIMIT 1`
	var instructor models.Instructor
	if err := r.db.GetContext(ctx, &instructor, query, firstName, lastName); err != nil {
		return nil, err
	}
	return &instructor, nil
}

// Create persists an instructor record.
func (r *InstructorRepository) Create(ctx context.Context, instructor *models.Instructor) error {
	now := time.Now().UTC()
	if instructor.CreatedAt.IsZero() {
		instructor.CreatedAt = now
	}
	instructor.UpdatedAt = now

	const query = `INSERT INTO instructors (id, first_name, last_name, address, phone, email, preferred_contact, created_at, updated_at) VALUES (:id, :first_name, :last_name, :address, :phone, :email, :preferred_contact, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, instructor); err != nil {
		return fmt.Errorf("create instructor: %w", err)
	}
	return nil
}

// Delete removes an instructor record.
func (r *InstructorRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM instructors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete instructor: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Count returns the total number of instructors.
func (r *InstructorRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM instructors`); err != nil {
		return 0, fmt.Errorf("count instructors: %w", err)
	}
	return count, nil
}
