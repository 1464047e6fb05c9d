package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/studiohq/studio-api/internal/models"
)

// ClassRepository manages persistence for classes and their weekly slots.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a class repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// ListIDs returns every class identifier.
func (r *ClassRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM classes ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list class ids: %w", err)
	}
	return ids, nil
}

// ListRefs returns id/name projections sorted by identifier.
func (r *ClassRepository) ListRefs(ctx context.Context) ([]models.ClassRef, error) {
	const query = `SELECT id, name FROM classes ORDER BY id`
	var refs []models.ClassRef
	if err := r.db.SelectContext(ctx, &refs, query); err != nil {
		return nil, fmt.Errorf("list class refs: %w", err)
	}
	return refs, nil
}

// FindByID returns a class with its slots.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*models.Class, error) {
	const query = `SELECT id, name, instructor_id, class_type, pay_rate, description, created_at, updated_at FROM classes WHERE id = $1`
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		return nil, err
	}

	const slotQuery = `SELECT day, start_time, duration_min FROM class_slots WHERE class_id = $1 ORDER BY position`
	if err := r.db.SelectContext(ctx, &class.Slots, slotQuery, id); err != nil {
		return nil, fmt.Errorf("load slots for %s: %w", id, err)
	}
	return &class, nil
}

// ListAllSlots returns every weekly slot joined with its class, optionally
// excluding one class (used when re-checking an edited class).
func (r *ClassRepository) ListAllSlots(ctx context.Context, excludeClassID string) ([]models.ClassSlot, error) {
	query := `SELECT s.class_id, c.name AS class_name, s.day, s.start_time, s.duration_min FROM class_slots s JOIN classes c ON c.id = s.class_id`
	args := []interface{}{}
	if excludeClassID != "" {
		query += ` WHERE s.class_id <> $1`
		args = append(args, excludeClassID)
	}
	query += ` ORDER BY s.class_id, s.position`

	var slots []models.ClassSlot
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, fmt.Errorf("list class slots: %w", err)
	}
	return slots, nil
}

// ListByInstructor returns each of an instructor's classes with its first
// scheduled slot, as shown on the check-in form.
func (r *ClassRepository) ListByInstructor(ctx context.Context, instructorID string) ([]models.InstructorClassSlot, error) {
	const query = `SELECT DISTINCT ON (c.id) c.id AS class_id, c.name AS class_name, c.class_type, s.day, s.start_time FROM classes c JOIN class_slots s ON s.class_id = c.id WHERE c.instructor_id = $1 ORDER BY c.id, s.position`
	var rows []models.InstructorClassSlot
	if err := r.db.SelectContext(ctx, &rows, query, instructorID); err != nil {
		return nil, fmt.Errorf("list classes by instructor: %w", err)
	}
	return rows, nil
}

// Create persists a class and its slots in one transaction.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	now := time.Now().UTC()
	if class.CreatedAt.IsZero() {
		class.CreatedAt = now
	}
	class.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create class: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `INSERT INTO classes (id, name, instructor_id, class_type, pay_rate, description, created_at, updated_at) VALUES (:id, :name, :instructor_id, :class_type, :pay_rate, :description, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, query, class); err != nil {
		return fmt.Errorf("create class: %w", err)
	}

	const slotQuery = `INSERT INTO class_slots (class_id, position, day, start_time, duration_min) VALUES ($1, $2, $3, $4, $5)`
	for i, slot := range class.Slots {
		if _, err := tx.ExecContext(ctx, slotQuery, class.ID, i, slot.Day, slot.Time, slot.Duration); err != nil {
			return fmt.Errorf("create slot %d for %s: %w", i, class.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create class: %w", err)
	}
	return nil
}

// Delete removes a class; slots cascade via the schema.
func (r *ClassRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Count returns the total number of classes.
func (r *ClassRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM classes`); err != nil {
		return 0, fmt.Errorf("count classes: %w", err)
	}
	return count, nil
}
