package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/studiohq/studio-api/internal/models"
	appErrors "github.com/studiohq/studio-api/pkg/errors"
	"github.com/studiohq/studio-api/pkg/notify"
	"github.com/studiohq/studio-api/pkg/sequence"
)

const customerPrefix = "C"

type customerRepository interface {
	ListIDs(ctx context.Context) ([]string, error)
	ListRefs(ctx context.Context) ([]models.CustomerRef, error)
	FindByID(ctx context.Context, id string) (*models.Customer, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Customer, error)
	FindByNormName(ctx context.Context, normName string) (*models.Customer, error)
	FindByRawName(ctx context.Context, firstName, lastName string) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	IncrementBalance(ctx context.Context, id string, delta int) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// CustomerService manages the customer roster.
type CustomerService struct {
	repo      customerRepository
	notifier  *NotificationService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCustomerService constructs the customer service.
func NewCustomerService(repo customerRepository, notifier *NotificationService, validate *validator.Validate, logger *zap.Logger) *CustomerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerService{repo: repo, notifier: notifier, validator: validate, logger: logger}
}

// CreateCustomerRequest describes a customer creation payload. ID is
// optional; when absent the next sequential identifier is assigned.
type CreateCustomerRequest struct {
	ID               string `json:"id"`
	FirstName        string `json:"first_name" validate:"required"`
	LastName         string `json:"last_name" validate:"required"`
	Address          string `json:"address"`
	Phone            string `json:"phone" validate:"required"`
	Email            string `json:"email" validate:"required"`
	PreferredContact string `json:"preferred_contact"`
	Senior           bool   `json:"senior"`
}

// NextID derives the next customer identifier from the stored set.
func (s *CustomerService) NextID(ctx context.Context) (string, error) {
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to scan customer ids")
	}
	return sequence.Next(customerPrefix, ids), nil
}

// Create adds a customer after duplicate-name detection. A duplicate is
// reported as a 409 unless force is set, in which case both records coexist.
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest, force bool) (*models.Customer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidInput(enumerateValidation(err))
	}

	contact := req.PreferredContact
	if !models.ValidContact(contact) {
		contact = models.ContactEmail
	}
	normName := normalizeName(req.FirstName, req.LastName)

	dup, err := s.findDuplicate(ctx, normName, req.FirstName, req.LastName)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "duplicate check failed")
	}
	if dup != nil && !force {
		return nil, appErrors.Clone(appErrors.ErrDuplicateName, "a customer with this name already exists; save anyway?")
	}

	id := req.ID
	if id == "" {
		if id, err = s.NextID(ctx); err != nil {
			return nil, err
		}
	}

	customer := &models.Customer{
		ID:               id,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Address:          req.Address,
		Phone:            req.Phone,
		Email:            req.Email,
		PreferredContact: contact,
		Senior:           req.Senior,
		ClassBalance:     0,
		NormName:         normName,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create customer")
	}

	if s.notifier != nil {
		message := fmt.Sprintf("Welcome to the studio! Your customer id is %s.", customer.ID)
		s.notifier.Notify(customer.ContactDestination(), notify.Channel(customer.PreferredContact), message)
	}

	return customer, nil
}

// findDuplicate checks the normalized-name index first and falls back to a
// case-insensitive raw-name match for records created before normalization.
func (s *CustomerService) findDuplicate(ctx context.Context, normName, firstName, lastName string) (*models.Customer, error) {
	dup, err := s.repo.FindByNormName(ctx, normName)
	if err == nil {
		return dup, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	dup, err = s.repo.FindByRawName(ctx, firstName, lastName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return dup, nil
}

// ListRefs returns the id/name roster.
func (s *CustomerService) ListRefs(ctx context.Context) ([]models.CustomerRef, error) {
	refs, err := s.repo.ListRefs(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list customers")
	}
	return refs, nil
}

// Get returns one customer.
func (s *CustomerService) Get(ctx context.Context, id string) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "customer not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load customer")
	}
	return customer, nil
}

// Delete removes one customer.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "customer not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete customer")
	}
	return nil
}
