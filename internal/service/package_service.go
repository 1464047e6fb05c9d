package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/studiohq/studio-api/internal/models"
	appErrors "github.com/studiohq/studio-api/pkg/errors"
	"github.com/studiohq/studio-api/pkg/sequence"
)

const dateLayout = "2006-01-02"

var allowedClassCounts = []int{1, 4, 10}

type packageRepository interface {
	ListIDs(ctx context.Context) ([]string, error)
	ListRefs(ctx context.Context) ([]models.PackageRef, error)
	FindByID(ctx context.Context, id string) (*models.Package, error)
	FindByNameAndCategory(ctx context.Context, name, category string) (*models.Package, error)
	Create(ctx context.Context, pkg *models.Package) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// PackageService manages the prepaid package catalog.
type PackageService struct {
	repo      packageRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPackageService constructs the package service.
func NewPackageService(repo packageRepository, validate *validator.Validate, logger *zap.Logger) *PackageService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PackageService{repo: repo, validator: validate, logger: logger}
}

// ClassCount is the polymorphic num_classes field: either one of the fixed
// class counts or the literal string "unlimited".
type ClassCount struct {
	Count     *int
	Unlimited bool
}

// UnmarshalJSON accepts a JSON number or the string "unlimited".
func (c *ClassCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*c = ClassCount{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if strings.EqualFold(strings.TrimSpace(s), "unlimited") {
			*c = ClassCount{Unlimited: true}
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		*c = ClassCount{Count: &n}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = ClassCount{Count: &n}
	return nil
}

// CreatePackageRequest describes a package creation payload.
type CreatePackageRequest struct {
	ID         string          `json:"id"`
	Name       string          `json:"name" validate:"required"`
	Category   string          `json:"category" validate:"required"`
	ClassType  string          `json:"class_type"`
	NumClasses ClassCount      `json:"num_classes"`
	StartDate  string          `json:"start_date" validate:"required"`
	EndDate    string          `json:"end_date" validate:"required"`
	Price      decimal.Decimal `json:"price"`
}

// NextID derives the next package identifier for a category; General and
// Senior packages number independently under their own prefixes.
func (s *PackageService) NextID(ctx context.Context, category string) (string, error) {
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to scan package ids")
	}
	return sequence.Next(models.PackagePrefix(category), ids), nil
}

func validClassCount(n int) bool {
	for _, allowed := range allowedClassCounts {
		if n == allowed {
			return true
		}
	}
	return false
}

// Create adds a package after checking the category/name pair for
// duplicates.
func (s *PackageService) Create(ctx context.Context, req CreatePackageRequest, force bool) (*models.Package, error) {
	var problems []string
	if err := s.validator.Struct(req); err != nil {
		problems = enumerateValidation(err)
	}
	if req.Category != "" && req.Category != models.PackageGeneral && req.Category != models.PackageSenior {
		problems = append(problems, "category must be General or Senior")
	}
	if req.ClassType != "" && !models.ValidClassType(req.ClassType) {
		problems = append(problems, "class_type must be General or Special")
	}
	if req.NumClasses.Unlimited {
		if req.NumClasses.Count != nil {
			problems = append(problems, "num_classes cannot be both a count and unlimited")
		}
	} else if req.NumClasses.Count == nil {
		problems = append(problems, "num_classes must be 1, 4, 10 or \"unlimited\"")
	} else if !validClassCount(*req.NumClasses.Count) {
		problems = append(problems, "num_classes must be 1, 4, 10 or \"unlimited\"")
	}
	if req.Price.IsNegative() {
		problems = append(problems, "price must not be negative")
	}

	var startDate, endDate time.Time
	var err error
	if req.StartDate != "" {
		if startDate, err = time.Parse(dateLayout, req.StartDate); err != nil {
			problems = append(problems, "start_date must be YYYY-MM-DD")
		}
	}
	if req.EndDate != "" {
		if endDate, err = time.Parse(dateLayout, req.EndDate); err != nil {
			problems = append(problems, "end_date must be YYYY-MM-DD")
		}
	}
	if !startDate.IsZero() && !endDate.IsZero() && endDate.Before(startDate) {
		problems = append(problems, "start_date must not be after end_date")
	}
	if len(problems) > 0 {
		return nil, invalidInput(problems)
	}

	dup, err := s.repo.FindByNameAndCategory(ctx, req.Name, req.Category)
	if err != nil && err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "duplicate check failed")
	}
	if dup != nil && !force {
		return nil, appErrors.Clone(appErrors.ErrDuplicatePackage, "a package with the same name and category exists")
	}

	id := req.ID
	if id == "" {
		if id, err = s.NextID(ctx, req.Category); err != nil {
			return nil, err
		}
	}

	classType := req.ClassType
	if classType == "" {
		classType = models.ClassTypeGeneral
	}

	pkg := &models.Package{
		ID:          id,
		Name:        req.Name,
		Category:    req.Category,
		ClassType:   classType,
		NumClasses:  req.NumClasses.Count,
		IsUnlimited: req.NumClasses.Unlimited,
		StartDate:   startDate,
		EndDate:     endDate,
		Price:       req.Price,
	}
	if err := s.repo.Create(ctx, pkg); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create package")
	}
	return pkg, nil
}

// ListRefs returns the id/name/category catalog listing.
func (s *PackageService) ListRefs(ctx context.Context) ([]models.PackageRef, error) {
	refs, err := s.repo.ListRefs(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list packages")
	}
	return refs, nil
}

// Get returns one package.
func (s *PackageService) Get(ctx context.Context, id string) (*models.Package, error) {
	pkg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "package not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load package")
	}
	return pkg, nil
}

// Delete removes one package.
func (s *PackageService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "package not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete package")
	}
	return nil
}
