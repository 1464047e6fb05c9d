package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/studiohq/studio-api/internal/models"
)

// AttendanceRepository manages persistence for attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an attendance repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// ListIDs returns every attendance identifier.
func (r *AttendanceRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM attendance ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list attendance ids: %w", err)
	}
	return ids, nil
}

// Create persists an attendance record with its attendee rows in one
// transaction.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.Attendance) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create attendance: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `INSERT INTO attendance (id, class_id, instructor_id, occurred_at, created_at) VALUES (:id, :class_id, :instructor_id, :occurred_at, :created_at)`
	if _, err := tx.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create attendance: %w", err)
	}

	const attendeeQuery = `INSERT INTO attendance_attendees (attendance_id, customer_id, package_id, note) VALUES ($1, $2, $3, $4)`
	for _, attendee := range record.Attendees {
		if _, err := tx.ExecContext(ctx, attendeeQuery, record.ID, attendee.CustomerID, attendee.PackageID, attendee.Note); err != nil {
			return fmt.Errorf("create attendee %s for %s: %w", attendee.CustomerID, record.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create attendance: %w", err)
	}
	return nil
}

// Count returns the total number of attendance records.
func (r *AttendanceRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM attendance`); err != nil {
		return 0, fmt.Errorf("count attendance: %w", err)
	}
	return count, nil
}

// CountCheckinsByInstructor tallies attendee check-ins across an
// instructor's sessions.
func (r *AttendanceRepository) CountCheckinsByInstructor(ctx context.Context, instructorID string) (int, error) {
	const query = `SELECT COUNT(*) FROM attendance_attendees aa JOIN attendance a ON a.id = aa.attendance_id WHERE a.instructor_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, instructorID); err != nil {
		return 0, fmt.Errorf("count checkins by instructor: %w", err)
	}
	return count, nil
}

// CountCheckinsByClass tallies attendee check-ins for one class.
func (r *AttendanceRepository) CountCheckinsByClass(ctx context.Context, classID string) (int, error) {
	const query = `SELECT COUNT(*) FROM attendance_attendees aa JOIN attendance a ON a.id = aa.attendance_id WHERE a.class_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, classID); err != nil {
		return 0, fmt.Errorf("count checkins by class: %w", err)
	}
	return count, nil
}

// CountCheckinsByCustomer tallies how often one customer checked in.
func (r *AttendanceRepository) CountCheckinsByCustomer(ctx context.Context, customerID string) (int, error) {
	const query = `SELECT COUNT(*) FROM attendance_attendees WHERE customer_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, customerID); err != nil {
		return 0, fmt.Errorf("count checkins by customer: %w", err)
	}
	return count, nil
}
