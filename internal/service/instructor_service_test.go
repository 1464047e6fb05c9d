package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studiohq/studio-api/internal/models"
	appErrors "github.com/studiohq/studio-api/pkg/errors"
)

type mockInstructorRepo struct {
	items map[string]*models.Instructor
}

func newMockInstructorRepo() *mockInstructorRepo {
	return &mockInstructorRepo{items: make(map[string]*models.Instructor)}
}

func (m *mockInstructorRepo) ListIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *mockInstructorRepo) ListRefs(ctx context.Context) ([]models.InstructorRef, error) {
	refs := make([]models.InstructorRef, 0, len(m.items))
	for _, i := range m.items {
		refs = append(refs, models.InstructorRef{ID: i.ID, FirstName: i.FirstName, LastName: i.LastName})
	}
	return refs, nil
}

func (m *mockInstructorRepo) Search(ctx context.Context, firstName string) ([]models.Instructor, error) {
	var out []models.Instructor
	for _, i := range m.items {
		if strings.Contains(strings.ToLower(i.FirstName), strings.ToLower(firstName)) {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (m *mockInstructorRepo) FindByID(ctx context.Context, id string) (*models.Instructor, error) {
	if i, ok := m.items[id]; ok {
		cp := *i
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockInstructorRepo) FindByName(ctx context.Context, firstName, lastName string) (*models.Instructor, error) {
	for _, i := range m.items {
		if strings.EqualFold(i.FirstName, firstName) && strings.EqualFold(i.LastName, lastName) {
			cp := *i
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockInstructorRepo) Create(ctx context.Context, instructor *models.Instructor) error {
	cp := *instructor
	m.items[instructor.ID] = &cp
	return nil
}

func (m *mockInstructorRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func (m *mockInstructorRepo) Count(ctx context.Context) (int, error) {
	return len(m.items), nil
}

func TestInstructorServiceCreate(t *testing.T) {
	repo := newMockInstructorRepo()
	svc := NewInstructorService(repo, validator.New(), zap.NewNop())

	instructor, err := svc.Create(context.Background(), CreateInstructorRequest{
		FirstName: "Asha",
		LastName:  "Patel",
		Email:     "asha@example.com",
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "I001", instructor.ID)
	assert.Equal(t, models.ContactEmail, instructor.PreferredContact)
}

func TestInstructorServiceCreateDuplicateName(t *testing.T) {
	repo := newMockInstructorRepo()
	repo.items["I001"] = &models.Instructor{ID: "I001", FirstName: "Asha", LastName: "Patel"}
	svc := NewInstructorService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateInstructorRequest{
		FirstName: "asha",
		LastName:  "PATEL",
	}, false)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDuplicateName.Code, appErrors.FromError(err).Code)

	instructor, err := svc.Create(context.Background(), CreateInstructorRequest{
		FirstName: "asha",
		LastName:  "PATEL",
	}, true)
	require.NoError(t, err)
	assert.Equal(t, "I002", instructor.ID)
}

func TestInstructorServiceSearch(t *testing.T) {
	repo := newMockInstructorRepo()
	repo.items["I001"] = &models.Instructor{ID: "I001", FirstName: "Asha", LastName: "Patel"}
	repo.items["I002"] = &models.Instructor{ID: "I002", FirstName: "Ashford", LastName: "Gray"}
	svc := NewInstructorService(repo, validator.New(), zap.NewNop())

	found, err := svc.Search(context.Background(), "ash")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	_, err = svc.Search(context.Background(), "zelda")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
