package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/studiohq/studio-api/internal/models"
	appErrors "github.com/studiohq/studio-api/pkg/errors"
	"github.com/studiohq/studio-api/pkg/sequence"
)

const salePrefix = "S"

type saleRepository interface {
	ListIDs(ctx context.Context) ([]string, error)
	FindByID(ctx context.Context, id string) (*models.Sale, error)
	Create(ctx context.Context, sale *models.Sale) error
	Count(ctx context.Context) (int, error)
}

type saleCustomerStore interface {
	FindByID(ctx context.Context, id string) (*models.Customer, error)
	IncrementBalance(ctx context.Context, id string, delta int) error
}

type packageFinder interface {
	FindByID(ctx context.Context, id string) (*models.Package, error)
}

// SaleService records package purchases and applies their balance side
// effects.
type SaleService struct {
	repo      saleRepository
	customers saleCustomerStore
	packages  packageFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSaleService constructs the sale service.
func NewSaleService(repo saleRepository, customers saleCustomerStore, packages packageFinder, validate *validator.Validate, logger *zap.Logger) *SaleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleService{repo: repo, customers: customers, packages: packages, validator: validate, logger: logger}
}

// CreateSaleRequest describes a sale creation payload. Validity dates
// default to the package's own window when omitted.
type CreateSaleRequest struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id" validate:"required"`
	PackageID   string          `json:"package_id" validate:"required"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	PaymentMode string          `json:"payment_mode"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
}

// NextID derives the next sale identifier from the stored set.
func (s *SaleService) NextID(ctx context.Context) (string, error) {
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to scan sale ids")
	}
	return sequence.Next(salePrefix, ids), nil
}

// Create records a sale. Selling a non-unlimited package credits the
// customer's class balance with the package's class count.
func (s *SaleService) Create(ctx context.Context, req CreateSaleRequest) (*models.Sale, error) {
	var problems []string
	if err := s.validator.Struct(req); err != nil {
		problems = enumerateValidation(err)
	}
	if req.PaymentMode != "" && !models.ValidPaymentMode(req.PaymentMode) {
		problems = append(problems, "payment_mode must be one of cash, card, check, zelle, venmo, other")
	}
	if req.AmountPaid.IsNegative() {
		problems = append(problems, "amount_paid must not be negative")
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

	customer, err := s.customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "customer not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load customer")
	}
	pkg, err := s.packages.FindByID(ctx, req.PackageID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "package not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load package")
	}

	id := req.ID
	if id == "" {
		if id, err = s.NextID(ctx); err != nil {
			return nil, err
		}
	}

	mode := req.PaymentMode
	if mode == "" {
		mode = "cash"
	}
	if startDate.IsZero() {
		startDate = pkg.StartDate
	}
	if endDate.IsZero() {
		endDate = pkg.EndDate
	}

	sale := &models.Sale{
		ID:          id,
		CustomerID:  customer.ID,
		PackageID:   pkg.ID,
		AmountPaid:  req.AmountPaid,
		PaymentMode: mode,
		StartDate:   startDate,
		EndDate:     endDate,
	}
	if err := s.repo.Create(ctx, sale); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create sale")
	}

	if !pkg.IsUnlimited && pkg.NumClasses != nil && *pkg.NumClasses > 0 {
		if err := s.customers.IncrementBalance(ctx, customer.ID, *pkg.NumClasses); err != nil {
			s.logger.Error("balance credit after sale failed",
				zap.String("sale_id", sale.ID),
				zap.String("customer_id", customer.ID),
				zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to credit class balance")
		}
	}
	return sale, nil
}

// Get returns one sale.
func (s *SaleService) Get(ctx context.Context, id string) (*models.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "sale not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sale")
	}
	return sale, nil
}
