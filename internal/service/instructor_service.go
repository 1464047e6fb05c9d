package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/studiohq/studio-api/internal/models"
	appErrors "github.com/studiohq/studio-api/pkg/errors"
	"github.com/studiohq/studio-api/pkg/sequence"
)

const instructorPrefix = "I"

type instructorRepository interface {
	ListIDs(ctx context.Context) ([]string, error)
	ListRefs(ctx context.Context) ([]models.InstructorRef, error)
	Search(ctx context.Context, firstName string) ([]models.Instructor, error)
	FindByID(ctx context.Context, id string) (*models.Instructor, error)
	FindByName(ctx context.Context, firstName, lastName string) (*models.Instructor, error)
	Create(ctx context.Context, instructor *models.Instructor) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// InstructorService manages the instructor roster.
type InstructorService struct {
	repo      instructorRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewInstructorService constructs the instructor service.
func NewInstructorService(repo instructorRepository, validate *validator.Validate, logger *zap.Logger) *InstructorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstructorService{repo: repo, validator: validate, logger: logger}
}

// CreateInstructorRequest describes an instructor creation payload.
type CreateInstructorRequest struct {
	ID               string `json:"id"`
	FirstName        string `json:"first_name" validate:"required"`
	LastName         string `json:"last_name" validate:"required"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	PreferredContact string `json:"preferred_contact"`
}

// NextID derives the next instructor identifier from the stored set.
func (s *InstructorService) NextID(ctx context.Context) (string, error) {
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to scan instructor ids")
	}
	return sequence.Next(instructorPrefix, ids), nil
}

// Create adds an instructor unless a same-named one exists and force is
// unset.
func (s *InstructorService) Create(ctx context.Context, req CreateInstructorRequest, force bool) (*models.Instructor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidInput(enumerateValidation(err))
	}

	contact := req.PreferredContact
	if !models.ValidContact(contact) {
		contact = models.ContactEmail
	}

	dup, err := s.repo.FindByName(ctx, req.FirstName, req.LastName)
	if err != nil && err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "duplicate check failed")
	}
	if dup != nil && !force {
		return nil, appErrors.Clone(appErrors.ErrDuplicateName, "an instructor with the same name exists")
	}

	id := req.ID
	if id == "" {
		if id, err = s.NextID(ctx); err != nil {
			return nil, err
		}
	}

	instructor := &models.Instructor{
		ID:               id,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Address:          req.Address,
		Phone:            req.Phone,
		Email:            req.Email,
		PreferredContact: contact,
	}
	if err := s.repo.Create(ctx, instructor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create instructor")
	}
	return instructor, nil
}

// Search returns instructors whose first name contains the query.
func (s *InstructorService) Search(ctx context.Context, firstName string) ([]models.Instructor, error) {
	instructors, err := s.repo.Search(ctx, firstName)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search instructors")
	}
	if len(instructors) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no instructor found")
	}
	return instructors, nil
}

// ListRefs returns the id/name roster.
func (s *InstructorService) ListRefs(ctx context.Context) ([]models.InstructorRef, error) {
	refs, err := s.repo.ListRefs(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list instructors")
	}
	return refs, nil
}

// Get returns one instructor.
func (s *InstructorService) Get(ctx context.Context, id string) (*models.Instructor, error) {
	instructor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "instructor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load instructor")
	}
	return instructor, nil
}

// Delete removes one instructor.
func (s *InstructorService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "instructor not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete instructor")
	}
	return nil
}
