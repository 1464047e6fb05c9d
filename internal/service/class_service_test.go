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
	"github.com/studiohq/studio-api/pkg/config"
	appErrors "github.com/studiohq/studio-api/pkg/errors"
)

type mockClassRepo struct {
	items map[string]*models.Class
	slots []models.ClassSlot
}

func newMockClassRepo() *mockClassRepo {
	return &mockClassRepo{items: make(map[string]*models.Class)}
}

func (m *mockClassRepo) ListIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *mockClassRepo) ListRefs(ctx context.Context) ([]models.ClassRef, error) {
	refs := make([]models.ClassRef, 0, len(m.items))
	for _, class := range m.items {
		refs = append(refs, models.ClassRef{ID: class.ID, Name: class.Name})
	}
	return refs, nil
}

func (m *mockClassRepo) FindByID(ctx context.Context, id string) (*models.Class, error) {
	if class, ok := m.items[id]; ok {
		cp := *class
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockClassRepo) ListAllSlots(ctx context.Context, excludeClassID string) ([]models.ClassSlot, error) {
	var out []models.ClassSlot
	for _, cs := range m.slots {
		if excludeClassID != "" && cs.ClassID == excludeClassID {
			continue
		}
		out = append(out, cs)
	}
	return out, nil
}

func (m *mockClassRepo) ListByInstructor(ctx context.Context, instructorID string) ([]models.InstructorClassSlot, error) {
	var out []models.InstructorClassSlot
	for _, class := range m.items {
		if class.InstructorID != instructorID || len(class.Slots) == 0 {
			continue
		}
		first := class.Slots[0]
		out = append(out, models.InstructorClassSlot{
			ClassID:   class.ID,
			ClassName: class.Name,
			ClassType: class.ClassType,
			Day:       first.Day,
			Time:      first.Time,
		})
	}
	return out, nil
}

func (m *mockClassRepo) Create(ctx context.Context, class *models.Class) error {
	cp := *class
	m.items[class.ID] = &cp
	for _, slot := range class.Slots {
		m.slots = append(m.slots, models.ClassSlot{ClassID: class.ID, ClassName: class.Name, Slot: slot})
	}
	return nil
}

func (m *mockClassRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func (m *mockClassRepo) Count(ctx context.Context) (int, error) {
	return len(m.items), nil
}

type mockInstructorFinder struct {
	items map[string]*models.Instructor
}

func (m *mockInstructorFinder) FindByID(ctx context.Context, id string) (*models.Instructor, error) {
	if instructor, ok := m.items[id]; ok {
		cp := *instructor
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

var testStudioHours = config.StudioConfig{OpenHour: 6, CloseHour: 21}

func classFixture() (*mockClassRepo, *mockInstructorFinder) {
	repo := newMockClassRepo()
	instructors := &mockInstructorFinder{items: map[string]*models.Instructor{
		"I001": {ID: "I001", FirstName: "Asha", LastName: "Patel"},
	}}
	return repo, instructors
}

func TestClassServiceCreate(t *testing.T) {
	repo, instructors := classFixture()
	svc := NewClassService(repo, instructors, testStudioHours, validator.New(), zap.NewNop())

	class, err := svc.Create(context.Background(), CreateClassRequest{
		Name:         "Vinyasa",
		InstructorID: "I001",
		ClassType:    models.ClassTypeGeneral,
		Slots:        []SlotRequest{{Day: "Mon", Time: "09:00", Duration: 60}},
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "A001", class.ID)
	require.Len(t, class.Slots, 1)
}

func TestClassServiceScheduleConflict(t *testing.T) {
	repo, instructors := classFixture()
	repo.slots = []models.ClassSlot{
		{ClassID: "A001", ClassName: "Vinyasa", Slot: models.Slot{Day: "Mon", Time: "09:00", Duration: 60}},
	}
	svc := NewClassService(repo, instructors, testStudioHours, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateClassRequest{
		Name:         "Yin",
		InstructorID: "I001",
		ClassType:    models.ClassTypeGeneral,
		Slots:        []SlotRequest{{Day: "Mon", Time: "09:30", Duration: 30}},
	}, false)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrScheduleConflict.Code, appErr.Code)

	detail, ok := appErr.Details.(*models.ScheduleConflictError)
	require.True(t, ok)
	require.Len(t, detail.Conflicts, 1)
	assert.Equal(t, "A001", detail.Conflicts[0].With.ClassID)
	require.NotEmpty(t, detail.Suggestions)
	assert.Equal(t, "06:00", detail.Suggestions[0].Time)
}

func TestClassServiceBoundaryTouchIsNotConflict(t *testing.T) {
	repo, instructors := classFixture()
	repo.items["A001"] = &models.Class{ID: "A001", Name: "Vinyasa"}
	repo.slots = []models.ClassSlot{
		{ClassID: "A001", ClassName: "Vinyasa", Slot: models.Slot{Day: "Mon", Time: "09:00", Duration: 60}},
	}
	svc := NewClassService(repo, instructors, testStudioHours, validator.New(), zap.NewNop())

	class, err := svc.Create(context.Background(), CreateClassRequest{
		Name:         "Yin",
		InstructorID: "I001",
		ClassType:    models.ClassTypeGeneral,
		Slots:        []SlotRequest{{Day: "Mon", Time: "10:00", Duration: 30}},
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "A002", class.ID)
}

func TestClassServiceForceSkipsConflictCheck(t *testing.T) {
	repo, instructors := classFixture()
	repo.slots = []models.ClassSlot{
		{ClassID: "A001", ClassName: "Vinyasa", Slot: models.Slot{Day: "Mon", Time: "09:00", Duration: 60}},
	}
	svc := NewClassService(repo, instructors, testStudioHours, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateClassRequest{
		Name:         "Yin",
		InstructorID: "I001",
		ClassType:    models.ClassTypeGeneral,
		Slots:        []SlotRequest{{Day: "Mon", Time: "09:30", Duration: 30}},
	}, true)
	require.NoError(t, err)
}

func TestClassServiceEnumeratesSlotProblems(t *testing.T) {
	repo, instructors := classFixture()
	svc := NewClassService(repo, instructors, testStudioHours, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateClassRequest{
		Name:         "Broken",
		InstructorID: "I001",
		ClassType:    models.ClassTypeGeneral,
		Slots: []SlotRequest{
			{Day: "Moonday", Time: "9am", Duration: 0},
			{Day: "Mon", Time: "23:30", Duration: 90},
		},
	}, false)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	details := appErr.Details.(map[string]interface{})
	messages := details["errors"].([]string)
	// Bad day, bad time and zero duration on slot 1, past-midnight on slot 2.
	assert.Len(t, messages, 4)
}

func TestClassServiceUnknownInstructor(t *testing.T) {
	repo, instructors := classFixture()
	svc := NewClassService(repo, instructors, testStudioHours, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateClassRequest{
		Name:         "Vinyasa",
		InstructorID: "I999",
		ClassType:    models.ClassTypeGeneral,
		Slots:        []SlotRequest{{Day: "Mon", Time: "09:00", Duration: 60}},
	}, false)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestClassServiceListByInstructor(t *testing.T) {
	repo, instructors := classFixture()
	svc := NewClassService(repo, instructors, testStudioHours, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateClassRequest{
		Name:         "Vinyasa",
		InstructorID: "I001",
		ClassType:    models.ClassTypeGeneral,
		Slots: []SlotRequest{
			{Day: "Mon", Time: "09:00", Duration: 60},
			{Day: "Wed", Time: "18:00", Duration: 60},
		},
	}, false)
	require.NoError(t, err)

	classes, err := svc.ListByInstructor(context.Background(), "I001")
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "Mon", classes[0].Day)
	assert.Equal(t, "09:00", classes[0].Time)

	_, err = svc.ListByInstructor(context.Background(), "I999")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
