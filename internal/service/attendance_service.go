package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/studiohq/studio-api/internal/models"
	appErrors "github.com/studiohq/studio-api/pkg/errors"
	"github.com/studiohq/studio-api/pkg/notify"
	"github.com/studiohq/studio-api/pkg/sequence"
)

const attendancePrefix = "A"

// Timestamp layouts accepted from the check-in form, most specific first.
var checkInLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

type attendanceRepository interface {
	ListIDs(ctx context.Context) ([]string, error)
	Create(ctx context.Context, record *models.Attendance) error
	Count(ctx context.Context) (int, error)
}

type classFinder interface {
	FindByID(ctx context.Context, id string) (*models.Class, error)
}

type attendanceCustomerStore interface {
	FindByIDs(ctx context.Context, ids []string) ([]models.Customer, error)
	IncrementBalance(ctx context.Context, id string, delta int) error
}

// AttendanceService runs the confirm-then-commit check-in workflow.
type AttendanceService struct {
	repo      attendanceRepository
	classes   classFinder
	customers attendanceCustomerStore
	notifier  *NotificationService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceRepository, classes classFinder, customers attendanceCustomerStore, notifier *NotificationService, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, classes: classes, customers: customers, notifier: notifier, validator: validate, logger: logger}
}

// AttendeeRequest is one attendee in a check-in payload.
type AttendeeRequest struct {
	CustomerID string  `json:"customer_id" validate:"required"`
	PackageID  *string `json:"package_id"`
	Note       *string `json:"note"`
}

// CheckInRequest describes a check-in payload. OccurredAt stays a string so
// malformed timestamps degrade to a schedule warning instead of a hard
// binding failure.
type CheckInRequest struct {
	ClassID      string            `json:"class_id" validate:"required"`
	InstructorID string            `json:"instructor_id" validate:"required"`
	OccurredAt   string            `json:"occurred_at" validate:"required"`
	Attendees    []AttendeeRequest `json:"attendees" validate:"required,min=1,dive"`
}

// NextID derives the next attendance identifier from the stored set.
func (s *AttendanceService) NextID(ctx context.Context) (string, error) {
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to scan attendance ids")
	}
	return sequence.Next(attendancePrefix, ids), nil
}

func parseCheckInTime(value string) (time.Time, bool) {
	for _, layout := range checkInLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// scheduleMatches compares the session timestamp's weekday and HH:MM against
// the class's first weekly slot. Classes with several slots are still
// compared against the first one only, so a legitimate second-slot session
// warns; the force flag is the operator's way through.
func scheduleMatches(class *models.Class, at time.Time) bool {
	if len(class.Slots) == 0 {
		return false
	}
	first := class.Slots[0]
	return at.Weekday().String()[:3] == first.Day && at.Format("15:04") == first.Time
}

// CheckIn validates a session check-in, answers NEEDS_CONFIRM when the
// session is off-schedule or any attendee lacks balance, and otherwise
// commits: persists the record, debits one class from every attendee and
// queues a confirmation message per attendee.
func (s *AttendanceService) CheckIn(ctx context.Context, req CheckInRequest, force bool) (*models.Attendance, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidInput(enumerateValidation(err))
	}

	class, err := s.classes.FindByID(ctx, req.ClassID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	if class.InstructorID != "" && class.InstructorID != req.InstructorID {
		return nil, invalidInput([]string{"instructor does not teach this class"})
	}

	occurredAt, parsed := parseCheckInTime(req.OccurredAt)
	warnSchedule := !parsed || !scheduleMatches(class, occurredAt)

	ids := make([]string, len(req.Attendees))
	for i, a := range req.Attendees {
		ids[i] = a.CustomerID
	}
	customers, err := s.customers.FindByIDs(ctx, ids)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendees")
	}
	byID := make(map[string]models.Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("customer %s not found", id))
		}
	}

	insufficient := make([]models.InsufficientBalance, 0)
	for _, id := range ids {
		if c := byID[id]; c.ClassBalance < 1 {
			insufficient = append(insufficient, models.InsufficientBalance{CustomerID: c.ID, Balance: c.ClassBalance})
		}
	}

	if (warnSchedule || len(insufficient) > 0) && !force {
		confirmation := models.CheckInConfirmation{
			WarnSchedule: warnSchedule,
			Insufficient: insufficient,
		}
		return nil, appErrors.WithDetails(appErrors.ErrNeedsConfirm, confirmation)
	}

	id, err := s.NextID(ctx)
	if err != nil {
		return nil, err
	}
	if !parsed {
		occurredAt = time.Now().UTC()
	}

	record := &models.Attendance{
		ID:           id,
		ClassID:      class.ID,
		InstructorID: req.InstructorID,
		OccurredAt:   occurredAt,
	}
	record.Attendees = make([]models.Attendee, len(req.Attendees))
	for i, a := range req.Attendees {
		record.Attendees[i] = models.Attendee{CustomerID: a.CustomerID, PackageID: a.PackageID, Note: a.Note}
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save attendance")
	}

	// Debits are applied after the record is saved and are not re-checked
	// against the live balance; a forced check-in may drive it negative.
	for _, attendee := range record.Attendees {
		if err := s.customers.IncrementBalance(ctx, attendee.CustomerID, -1); err != nil {
			s.logger.Error("balance debit after check-in failed",
				zap.String("attendance_id", record.ID),
				zap.String("customer_id", attendee.CustomerID),
				zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to debit class balance")
		}
	}

	if s.notifier != nil {
		for _, attendee := range record.Attendees {
			customer := byID[attendee.CustomerID]
			channel := notify.Channel(customer.PreferredContact)
			if !channel.Valid() {
				channel = notify.ChannelEmail
			}
			message := fmt.Sprintf("Hi %s, you are checked in to %s. Remaining class balance: %d.",
				customer.FirstName, class.Name, customer.ClassBalance-1)
			s.notifier.Notify(customer.ContactDestination(), channel, message)
		}
	}

	return record, nil
}
