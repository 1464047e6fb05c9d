package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studiohq/studio-api/internal/models"
	appErrors "github.com/studiohq/studio-api/pkg/errors"
)

type mockCustomerRepo struct {
	items      map[string]*models.Customer
	byNormName map[string]*models.Customer
	created    []*models.Customer
	balances   map[string]int
}

func newMockCustomerRepo() *mockCustomerRepo {
	return &mockCustomerRepo{
		items:      make(map[string]*models.Customer),
		byNormName: make(map[string]*models.Customer),
		balances:   make(map[string]int),
	}
}

func (m *mockCustomerRepo) add(c models.Customer) {
	cp := c
	m.items[c.ID] = &cp
	if c.NormName != "" {
		m.byNormName[c.NormName] = &cp
	}
	m.balances[c.ID] = c.ClassBalance
}

func (m *mockCustomerRepo) ListIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *mockCustomerRepo) ListRefs(ctx context.Context) ([]models.CustomerRef, error) {
	refs := make([]models.CustomerRef, 0, len(m.items))
	for _, c := range m.items {
		refs = append(refs, models.CustomerRef{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName})
	}
	return refs, nil
}

func (m *mockCustomerRepo) FindByID(ctx context.Context, id string) (*models.Customer, error) {
	if c, ok := m.items[id]; ok {
		cp := *c
		cp.ClassBalance = m.balances[id]
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCustomerRepo) FindByIDs(ctx context.Context, ids []string) ([]models.Customer, error) {
	var out []models.Customer
	for _, id := range ids {
		if c, ok := m.items[id]; ok {
			cp := *c
			cp.ClassBalance = m.balances[id]
			out = append(out, cp)
		}
	}
	return out, nil
}

func (m *mockCustomerRepo) FindByNormName(ctx context.Context, normName string) (*models.Customer, error) {
	if c, ok := m.byNormName[normName]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCustomerRepo) FindByRawName(ctx context.Context, firstName, lastName string) (*models.Customer, error) {
	return nil, sql.ErrNoRows
}

func (m *mockCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	m.add(*customer)
	m.created = append(m.created, customer)
	return nil
}

func (m *mockCustomerRepo) IncrementBalance(ctx context.Context, id string, delta int) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	m.balances[id] += delta
	return nil
}

func (m *mockCustomerRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func (m *mockCustomerRepo) Count(ctx context.Context) (int, error) {
	return len(m.items), nil
}

func TestCustomerServiceCreateAssignsNextID(t *testing.T) {
	repo := newMockCustomerRepo()
	repo.add(models.Customer{ID: "C001", FirstName: "Ana", LastName: "Lee", NormName: "ana lee"})
	repo.add(models.Customer{ID: "C002", FirstName: "Bo", LastName: "Kim", NormName: "bo kim"})
	svc := NewCustomerService(repo, nil, validator.New(), zap.NewNop())

	customer, err := svc.Create(context.Background(), CreateCustomerRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     "555-0100",
		Email:     "jane@example.com",
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "C003", customer.ID)
	assert.Equal(t, 0, customer.ClassBalance)
	assert.Equal(t, "jane doe", customer.NormName)
	assert.Equal(t, models.ContactEmail, customer.PreferredContact)
}

func TestCustomerServiceCreateDuplicateName(t *testing.T) {
	repo := newMockCustomerRepo()
	repo.add(models.Customer{ID: "C001", FirstName: "Jane", LastName: "Doe", NormName: "jane doe"})
	svc := NewCustomerService(repo, nil, validator.New(), zap.NewNop())

	// Irregular spacing and case still collide on the normalized key.
	_, err := svc.Create(context.Background(), CreateCustomerRequest{
		FirstName: "jane  ",
		LastName:  " DOE",
		Phone:     "555-0100",
		Email:     "jane2@example.com",
	}, false)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrDuplicateName.Code, appErr.Code)
	assert.Equal(t, 409, appErr.Status)

	// force lets both records coexist.
	customer, err := svc.Create(context.Background(), CreateCustomerRequest{
		FirstName: "jane",
		LastName:  "doe",
		Phone:     "555-0100",
		Email:     "jane2@example.com",
	}, true)
	require.NoError(t, err)
	assert.Equal(t, "C002", customer.ID)
	assert.Len(t, repo.created, 1)
}

func TestCustomerServiceCreateValidation(t *testing.T) {
	svc := NewCustomerService(newMockCustomerRepo(), nil, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateCustomerRequest{FirstName: "Jane"}, false)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	details, ok := appErr.Details.(map[string]interface{})
	require.True(t, ok)
	messages, ok := details["errors"].([]string)
	require.True(t, ok)
	// last_name, phone and email reported together.
	assert.Len(t, messages, 3)
}

func TestCustomerServiceNextIDIdempotent(t *testing.T) {
	repo := newMockCustomerRepo()
	repo.add(models.Customer{ID: "C007"})
	svc := NewCustomerService(repo, nil, validator.New(), zap.NewNop())

	first, err := svc.NextID(context.Background())
	require.NoError(t, err)
	second, err := svc.NextID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "C008", first)
	assert.Equal(t, first, second)
}

func TestCustomerServiceGetNotFound(t *testing.T) {
	svc := NewCustomerService(newMockCustomerRepo(), nil, validator.New(), zap.NewNop())

	_, err := svc.Get(context.Background(), "C999")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
