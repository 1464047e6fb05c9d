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

type mockAttendanceRepo struct {
	ids   []string
	saved []*models.Attendance
}

func (m *mockAttendanceRepo) ListIDs(ctx context.Context) ([]string, error) {
	return m.ids, nil
}

func (m *mockAttendanceRepo) Create(ctx context.Context, record *models.Attendance) error {
	m.ids = append(m.ids, record.ID)
	m.saved = append(m.saved, record)
	return nil
}

func (m *mockAttendanceRepo) Count(ctx context.Context) (int, error) {
	return len(m.ids), nil
}

type mockClassFinder struct {
	classes map[string]*models.Class
}

func (m *mockClassFinder) FindByID(ctx context.Context, id string) (*models.Class, error) {
	if class, ok := m.classes[id]; ok {
		cp := *class
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

// 2025-06-02 is a Monday.
const mondayNineAM = "2025-06-02T09:00"

func checkInFixture() (*mockAttendanceRepo, *mockClassFinder, *mockCustomerRepo) {
	classes := &mockClassFinder{classes: map[string]*models.Class{
		"A001": {
			ID:           "A001",
			Name:         "Vinyasa",
			InstructorID: "I001",
			Slots: []models.Slot{
				{Day: "Mon", Time: "09:00", Duration: 60},
				{Day: "Wed", Time: "18:00", Duration: 60},
			},
		},
	}}
	customers := newMockCustomerRepo()
	customers.add(models.Customer{ID: "C001", FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", PreferredContact: "email", ClassBalance: 3})
	customers.add(models.Customer{ID: "C002", FirstName: "Max", LastName: "Roe", Email: "max@example.com", PreferredContact: "email", ClassBalance: 0})
	return &mockAttendanceRepo{ids: []string{"A016"}}, classes, customers
}

func TestCheckInCommitsWhenOnScheduleWithBalance(t *testing.T) {
	repo, classes, customers := checkInFixture()
	svc := NewAttendanceService(repo, classes, customers, nil, validator.New(), zap.NewNop())

	record, err := svc.CheckIn(context.Background(), CheckInRequest{
		ClassID:      "A001",
		InstructorID: "I001",
		OccurredAt:   mondayNineAM,
		Attendees:    []AttendeeRequest{{CustomerID: "C001"}},
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "A017", record.ID)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, 2, customers.balances["C001"])
}

func TestCheckInNeedsConfirmOnInsufficientBalance(t *testing.T) {
	repo, classes, customers := checkInFixture()
	svc := NewAttendanceService(repo, classes, customers, nil, validator.New(), zap.NewNop())

	req := CheckInRequest{
		ClassID:      "A001",
		InstructorID: "I001",
		OccurredAt:   mondayNineAM,
		Attendees:    []AttendeeRequest{{CustomerID: "C001"}, {CustomerID: "C002"}},
	}

	_, err := svc.CheckIn(context.Background(), req, false)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNeedsConfirm.Code, appErr.Code)
	confirmation, ok := appErr.Details.(models.CheckInConfirmation)
	require.True(t, ok)
	assert.False(t, confirmation.WarnSchedule)
	require.Len(t, confirmation.Insufficient, 1)
	assert.Equal(t, "C002", confirmation.Insufficient[0].CustomerID)
	assert.Equal(t, 0, confirmation.Insufficient[0].Balance)
	assert.Empty(t, repo.saved, "nothing is persisted before confirmation")

	// Resubmitting with force commits and drives the balance negative.
	record, err := svc.CheckIn(context.Background(), req, true)
	require.NoError(t, err)
	assert.Equal(t, "A017", record.ID)
	assert.Equal(t, 2, customers.balances["C001"])
	assert.Equal(t, -1, customers.balances["C002"])
}

func TestCheckInWarnsOffSchedule(t *testing.T) {
	repo, classes, customers := checkInFixture()
	svc := NewAttendanceService(repo, classes, customers, nil, validator.New(), zap.NewNop())

	_, err := svc.CheckIn(context.Background(), CheckInRequest{
		ClassID:      "A001",
		InstructorID: "I001",
		OccurredAt:   "2025-06-02T10:30",
		Attendees:    []AttendeeRequest{{CustomerID: "C001"}},
	}, false)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrNeedsConfirm.Code, appErr.Code)
	confirmation := appErr.Details.(models.CheckInConfirmation)
	assert.True(t, confirmation.WarnSchedule)
	assert.Empty(t, confirmation.Insufficient)
}

func TestCheckInComparesFirstSlotOnly(t *testing.T) {
	repo, classes, customers := checkInFixture()
	svc := NewAttendanceService(repo, classes, customers, nil, validator.New(), zap.NewNop())

	// 2025-06-04 is the Wednesday slot, but only the first slot is compared.
	_, err := svc.CheckIn(context.Background(), CheckInRequest{
		ClassID:      "A001",
		InstructorID: "I001",
		OccurredAt:   "2025-06-04T18:00",
		Attendees:    []AttendeeRequest{{CustomerID: "C001"}},
	}, false)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrNeedsConfirm.Code, appErr.Code)
	assert.True(t, appErr.Details.(models.CheckInConfirmation).WarnSchedule)
}

func TestCheckInWarnsOnUnparseableTimestamp(t *testing.T) {
	repo, classes, customers := checkInFixture()
	svc := NewAttendanceService(repo, classes, customers, nil, validator.New(), zap.NewNop())

	_, err := svc.CheckIn(context.Background(), CheckInRequest{
		ClassID:      "A001",
		InstructorID: "I001",
		OccurredAt:   "next monday",
		Attendees:    []AttendeeRequest{{CustomerID: "C001"}},
	}, false)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrNeedsConfirm.Code, appErr.Code)
	assert.True(t, appErr.Details.(models.CheckInConfirmation).WarnSchedule)
}

func TestCheckInRejectsInstructorMismatch(t *testing.T) {
	repo, classes, customers := checkInFixture()
	svc := NewAttendanceService(repo, classes, customers, nil, validator.New(), zap.NewNop())

	_, err := svc.CheckIn(context.Background(), CheckInRequest{
		ClassID:      "A001",
		InstructorID: "I999",
		OccurredAt:   mondayNineAM,
		Attendees:    []AttendeeRequest{{CustomerID: "C001"}},
	}, false)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCheckInRejectsUnknownClass(t *testing.T) {
	repo, classes, customers := checkInFixture()
	svc := NewAttendanceService(repo, classes, customers, nil, validator.New(), zap.NewNop())

	_, err := svc.CheckIn(context.Background(), CheckInRequest{
		ClassID:      "A999",
		InstructorID: "I001",
		OccurredAt:   mondayNineAM,
		Attendees:    []AttendeeRequest{{CustomerID: "C001"}},
	}, false)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCheckInRejectsEmptyAttendees(t *testing.T) {
	repo, classes, customers := checkInFixture()
	svc := NewAttendanceService(repo, classes, customers, nil, validator.New(), zap.NewNop())

	_, err := svc.CheckIn(context.Background(), CheckInRequest{
		ClassID:      "A001",
		InstructorID: "I001",
		OccurredAt:   mondayNineAM,
	}, false)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
