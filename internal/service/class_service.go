package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/studiohq/studio-api/internal/models"
	"github.com/studiohq/studio-api/pkg/config"
	appErrors "github.com/studiohq/studio-api/pkg/errors"
	"github.com/studiohq/studio-api/pkg/sequence"
)

const classPrefix = "A"

const minutesPerDay = 24 * 60

type classRepository interface {
	ListIDs(ctx context.Context) ([]string, error)
	ListRefs(ctx context.Context) ([]models.ClassRef, error)
	FindByID(ctx context.Context, id string) (*models.Class, error)
	ListAllSlots(ctx context.Context, excludeClassID string) ([]models.ClassSlot, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]models.InstructorClassSlot, error)
	Create(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type instructorFinder interface {
	FindByID(ctx context.Context, id string) (*models.Instructor, error)
}

// ClassService manages the weekly class schedule.
type ClassService struct {
	repo        classRepository
	instructors instructorFinder
	studio      config.StudioConfig
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewClassService constructs the class service.
func NewClassService(repo classRepository, instructors instructorFinder, studio config.StudioConfig, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, instructors: instructors, studio: studio, validator: validate, logger: logger}
}

// SlotRequest is one weekly time window in a class creation payload.
type SlotRequest struct {
	Day      string `json:"day"`
	Time     string `json:"time"`
	Duration int    `json:"duration"`
}

// CreateClassRequest describes a class creation payload.
type CreateClassRequest struct {
	ID           string          `json:"id"`
	Name         string          `json:"name" validate:"required"`
	InstructorID string          `json:"instructor_id" validate:"required"`
	ClassType    string          `json:"class_type" validate:"required"`
	PayRate      decimal.Decimal `json:"pay_rate"`
	Description  string          `json:"description"`
	Slots        []SlotRequest   `json:"slots" validate:"required,min=1"`
}

// NextID derives the next class identifier from the stored set.
func (s *ClassService) NextID(ctx context.Context) (string, error) {
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to scan class ids")
	}
	return sequence.Next(classPrefix, ids), nil
}

// validateSlots collects every slot problem instead of stopping at the
// first one.
func validateSlots(slots []SlotRequest) []string {
	var problems []string
	for i, slot := range slots {
		if !models.ValidWeekday(slot.Day) {
			problems = append(problems, fmt.Sprintf("slot %d: day must be one of Mon..Sun", i+1))
		}
		if !timeRe.MatchString(slot.Time) {
			problems = append(problems, fmt.Sprintf("slot %d: time must be HH:MM", i+1))
		} else if start := toMinutes(slot.Time); start < 0 || start >= minutesPerDay {
			problems = append(problems, fmt.Sprintf("slot %d: time is out of range", i+1))
		} else if slot.Duration > 0 && start+slot.Duration > minutesPerDay {
			problems = append(problems, fmt.Sprintf("slot %d: class may not run past midnight", i+1))
		}
		if slot.Duration <= 0 {
			problems = append(problems, fmt.Sprintf("slot %d: duration must be a positive number of minutes", i+1))
		}
	}
	return problems
}

// Create adds a class after validating its slots and checking the weekly
// schedule for collisions. A conflict is a 409 carrying every collision plus
// alternative start times; force skips the check entirely.
func (s *ClassService) Create(ctx context.Context, req CreateClassRequest, force bool) (*models.Class, error) {
	var problems []string
	if err := s.validator.Struct(req); err != nil {
		problems = enumerateValidation(err)
	}
	if req.ClassType != "" && !models.ValidClassType(req.ClassType) {
		problems = append(problems, "class_type must be General or Special")
	}
	if req.PayRate.IsNegative() {
		problems = append(problems, "pay_rate must not be negative")
	}
	problems = append(problems, validateSlots(req.Slots)...)
	if len(problems) > 0 {
		return nil, invalidInput(problems)
	}

	if _, err := s.instructors.FindByID(ctx, req.InstructorID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "instructor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load instructor")
	}

	slots := make([]models.Slot, len(req.Slots))
	for i, sr := range req.Slots {
		slots[i] = models.Slot{Day: sr.Day, Time: sr.Time, Duration: sr.Duration}
	}

	if !force {
		existing, err := s.repo.ListAllSlots(ctx, "")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to scan weekly schedule")
		}
		if conflicts := findSlotConflicts(slots, existing); len(conflicts) > 0 {
			suggestions := suggestAlternatives(conflicts[0].Slot, existing, s.studio.OpenHour, s.studio.CloseHour)
			detail := &models.ScheduleConflictError{
				Message:     "requested slots conflict with the existing schedule",
				Conflicts:   conflicts,
				Suggestions: suggestions,
			}
			return nil, appErrors.WithDetails(
				appErrors.Clone(appErrors.ErrScheduleConflict, detail.Message), detail)
		}
	}

	id := req.ID
	if id == "" {
		var err error
		if id, err = s.NextID(ctx); err != nil {
			return nil, err
		}
	}

	classType := req.ClassType
	if classType == "" {
		classType = models.ClassTypeGeneral
	}

	class := &models.Class{
		ID:           id,
		Name:         req.Name,
		InstructorID: req.InstructorID,
		ClassType:    classType,
		PayRate:      req.PayRate,
		Description:  req.Description,
		Slots:        slots,
	}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class")
	}
	return class, nil
}

// ListRefs returns the id/name listing of all classes.
func (s *ClassService) ListRefs(ctx context.Context) ([]models.ClassRef, error) {
	refs, err := s.repo.ListRefs(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	return refs, nil
}

// Get returns one class with its weekly slots.
func (s *ClassService) Get(ctx context.Context, id string) (*models.Class, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	return class, nil
}

// ListByInstructor returns each of an instructor's classes with its first
// weekly slot, as shown by the check-in screen.
func (s *ClassService) ListByInstructor(ctx context.Context, instructorID string) ([]models.InstructorClassSlot, error) {
	if _, err := s.instructors.FindByID(ctx, instructorID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "instructor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load instructor")
	}
	classes, err := s.repo.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list instructor classes")
	}
	return classes, nil
}

// Delete removes one class and its slots.
func (s *ClassService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class")
	}
	return nil
}
