package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studiohq/studio-api/internal/models"
	"github.com/studiohq/studio-api/pkg/config"
	appErrors "github.com/studiohq/studio-api/pkg/errors"
)

type stubCounter struct {
	n     int
	calls int
}

func (s *stubCounter) Count(ctx context.Context) (int, error) {
	s.calls++
	return s.n, nil
}

type stubCheckinCounter struct {
	total        int
	byInstructor map[string]int
	byClass      map[string]int
	byCustomer   map[string]int
}

func (s *stubCheckinCounter) Count(ctx context.Context) (int, error) {
	return s.total, nil
}

func (s *stubCheckinCounter) CountCheckinsByInstructor(ctx context.Context, id string) (int, error) {
	return s.byInstructor[id], nil
}

func (s *stubCheckinCounter) CountCheckinsByClass(ctx context.Context, id string) (int, error) {
	return s.byClass[id], nil
}

func (s *stubCheckinCounter) CountCheckinsByCustomer(ctx context.Context, id string) (int, error) {
	return s.byCustomer[id], nil
}

type memoryCache struct {
	stored map[string]models.StudioSummary
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	if summary, ok := m.stored[key]; ok {
		*dest.(*models.StudioSummary) = summary
		return nil
	}
	return appErrors.ErrCacheMiss
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.stored == nil {
		m.stored = make(map[string]models.StudioSummary)
	}
	m.stored[key] = *value.(*models.StudioSummary)
	return nil
}

func reportFixture() (*ReportService, *stubCounter, *memoryCache) {
	customers := &stubCounter{n: 12}
	cacheStore := &memoryCache{}
	svc := NewReportService(
		customers,
		&stubCounter{n: 3},
		&stubCounter{n: 5},
		&stubCounter{n: 40},
		&stubCheckinCounter{
			total:        17,
			byInstructor: map[string]int{"I001": 9},
			byClass:      map[string]int{"A001": 6},
			byCustomer:   map[string]int{"C001": 4},
		},
		cacheStore,
		config.ReportsConfig{CacheEnabled: true, CacheTTL: time.Minute},
		zap.NewNop(),
	)
	return svc, customers, cacheStore
}

func TestReportSummaryCountsAndCaches(t *testing.T) {
	svc, customers, cacheStore := reportFixture()

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, summary.Customers)
	assert.Equal(t, 3, summary.Instructors)
	assert.Equal(t, 5, summary.Classes)
	assert.Equal(t, 17, summary.Attendance)
	assert.Equal(t, 40, summary.Sales)
	assert.Len(t, cacheStore.stored, 1)

	// Second call is served from the cache.
	_, err = svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, customers.calls)
}

func TestReportTallies(t *testing.T) {
	svc, _, _ := reportFixture()

	perf, err := svc.InstructorPerformance(context.Background(), "I001")
	require.NoError(t, err)
	assert.Equal(t, 9, perf.Checkins)

	class, err := svc.ClassAttendance(context.Background(), "A001")
	require.NoError(t, err)
	assert.Equal(t, 6, class.Checkins)

	customer, err := svc.CustomerAttendance(context.Background(), "C001")
	require.NoError(t, err)
	assert.Equal(t, 4, customer.Checkins)
}

func TestReportExportSummary(t *testing.T) {
	svc, _, _ := reportFixture()

	body, contentType, err := svc.ExportSummary(context.Background(), ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	text := string(body)
	assert.True(t, strings.HasPrefix(text, "Resource,Count"))
	assert.Contains(t, text, "Customers,12")

	pdfBody, contentType, err := svc.ExportSummary(context.Background(), ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.NotEmpty(t, pdfBody)

	_, _, err = svc.ExportSummary(context.Background(), "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
