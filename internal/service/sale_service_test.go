package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studiohq/studio-api/internal/models"
	appErrors "github.com/studiohq/studio-api/pkg/errors"
)

type mockSaleRepo struct {
	ids   []string
	saved []*models.Sale
}

func (m *mockSaleRepo) ListIDs(ctx context.Context) ([]string, error) {
	return m.ids, nil
}

func (m *mockSaleRepo) FindByID(ctx context.Context, id string) (*models.Sale, error) {
	for _, s := range m.saved {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockSaleRepo) Create(ctx context.Context, sale *models.Sale) error {
	m.ids = append(m.ids, sale.ID)
	m.saved = append(m.saved, sale)
	return nil
}

func (m *mockSaleRepo) Count(ctx context.Context) (int, error) {
	return len(m.ids), nil
}

type mockPackageFinder struct {
	packages map[string]*models.Package
}

func (m *mockPackageFinder) FindByID(ctx context.Context, id string) (*models.Package, error) {
	if pkg, ok := m.packages[id]; ok {
		cp := *pkg
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func intPtr(n int) *int { return &n }

func saleFixture() (*mockSaleRepo, *mockCustomerRepo, *mockPackageFinder) {
	customers := newMockCustomerRepo()
	customers.add(models.Customer{ID: "C001", FirstName: "Jane", LastName: "Doe", ClassBalance: 2})
	packages := &mockPackageFinder{packages: map[string]*models.Package{
		"P001": {
			ID:         "P001",
			Name:       "Ten Pack",
			Category:   models.PackageGeneral,
			NumClasses: intPtr(10),
			StartDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		"S001": {
			ID:          "S001",
			Name:        "Senior Unlimited",
			Category:    models.PackageSenior,
			IsUnlimited: true,
		},
	}}
	return &mockSaleRepo{}, customers, packages
}

func TestSaleCreditsClassBalance(t *testing.T) {
	repo, customers, packages := saleFixture()
	svc := NewSaleService(repo, customers, packages, validator.New(), zap.NewNop())

	sale, err := svc.Create(context.Background(), CreateSaleRequest{
		CustomerID: "C001",
		PackageID:  "P001",
		AmountPaid: decimal.NewFromInt(150),
	})
	require.NoError(t, err)
	assert.Equal(t, "S001", sale.ID)
	assert.Equal(t, "cash", sale.PaymentMode)
	assert.Equal(t, 12, customers.balances["C001"])
	// Validity window defaults to the package's own.
	assert.Equal(t, 2025, sale.StartDate.Year())
}

func TestSaleUnlimitedPackageLeavesBalance(t *testing.T) {
	repo, customers, packages := saleFixture()
	svc := NewSaleService(repo, customers, packages, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateSaleRequest{
		CustomerID:  "C001",
		PackageID:   "S001",
		PaymentMode: "card",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, customers.balances["C001"])
}

func TestSaleUnknownReferences(t *testing.T) {
	repo, customers, packages := saleFixture()
	svc := NewSaleService(repo, customers, packages, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateSaleRequest{CustomerID: "C999", PackageID: "P001"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(context.Background(), CreateSaleRequest{CustomerID: "C001", PackageID: "P999"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSaleRejectsBadPaymentMode(t *testing.T) {
	repo, customers, packages := saleFixture()
	svc := NewSaleService(repo, customers, packages, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateSaleRequest{
		CustomerID:  "C001",
		PackageID:   "P001",
		PaymentMode: "barter",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
