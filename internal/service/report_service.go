package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/studiohq/studio-api/internal/models"
	"github.com/studiohq/studio-api/pkg/config"
	appErrors "github.com/studiohq/studio-api/pkg/errors"
	"github.com/studiohq/studio-api/pkg/export"
)

const summaryCacheKey = "reports:summary"

// Export formats accepted by the summary export endpoint.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type resourceCounter interface {
	Count(ctx context.Context) (int, error)
}

type checkinCounter interface {
	Count(ctx context.Context) (int, error)
	CountCheckinsByInstructor(ctx context.Context, instructorID string) (int, error)
	CountCheckinsByClass(ctx context.Context, classID string) (int, error)
	CountCheckinsByCustomer(ctx context.Context, customerID string) (int, error)
}

type reportCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// ReportService aggregates read-only counts and check-in tallies.
type ReportService struct {
	customers   resourceCounter
	instructors resourceCounter
	classes     resourceCounter
	sales       resourceCounter
	attendance  checkinCounter
	cache       reportCache
	cfg         config.ReportsConfig
	csv         *export.CSVExporter
	pdf         *export.PDFExporter
	logger      *zap.Logger
}

// NewReportService constructs the report service. cache may be nil when
// Redis is not configured; summaries are then computed on every call.
func NewReportService(customers, instructors, classes, sales resourceCounter, attendance checkinCounter, cache reportCache, cfg config.ReportsConfig, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		customers:   customers,
		instructors: instructors,
		classes:     classes,
		sales:       sales,
		attendance:  attendance,
		cache:       cache,
		cfg:         cfg,
		csv:         export.NewCSVExporter(),
		pdf:         export.NewPDFExporter(),
		logger:      logger,
	}
}

// Summary returns record counts across every resource family, served from
// Redis when the cache is warm.
func (s *ReportService) Summary(ctx context.Context) (*models.StudioSummary, error) {
	if s.cache != nil && s.cfg.CacheEnabled {
		var cached models.StudioSummary
		if err := s.cache.Get(ctx, summaryCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	summary := &models.StudioSummary{}
	var err error
	if summary.Customers, err = s.customers.Count(ctx); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count customers")
	}
	if summary.Instructors, err = s.instructors.Count(ctx); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count instructors")
	}
	if summary.Classes, err = s.classes.Count(ctx); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count classes")
	}
	if summary.Attendance, err = s.attendance.Count(ctx); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count attendance")
	}
	if summary.Sales, err = s.sales.Count(ctx); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count sales")
	}

	if s.cache != nil && s.cfg.CacheEnabled {
		if err := s.cache.Set(ctx, summaryCacheKey, summary, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("failed to cache studio summary", zap.Error(err))
		}
	}
	return summary, nil
}

// InstructorPerformance tallies check-ins across one instructor's sessions.
func (s *ReportService) InstructorPerformance(ctx context.Context, instructorID string) (*models.InstructorPerformance, error) {
	checkins, err := s.attendance.CountCheckinsByInstructor(ctx, instructorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to tally instructor checkins")
	}
	return &models.InstructorPerformance{InstructorID: instructorID, Checkins: checkins}, nil
}

// ClassAttendance tallies check-ins for one class.
func (s *ReportService) ClassAttendance(ctx context.Context, classID string) (*models.ClassAttendance, error) {
	checkins, err := s.attendance.CountCheckinsByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to tally class checkins")
	}
	return &models.ClassAttendance{ClassID: classID, Checkins: checkins}, nil
}

// CustomerAttendance tallies how often one customer checked in.
func (s *ReportService) CustomerAttendance(ctx context.Context, customerID string) (*models.CustomerAttendance, error) {
	checkins, err := s.attendance.CountCheckinsByCustomer(ctx, customerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to tally customer checkins")
	}
	return &models.CustomerAttendance{CustomerID: customerID, Checkins: checkins}, nil
}

// ExportSummary renders the studio summary as a downloadable document and
// returns the bytes with their content type.
func (s *ReportService) ExportSummary(ctx context.Context, format string) ([]byte, string, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return nil, "", err
	}

	data := export.Dataset{
		Headers: []string{"Resource", "Count"},
		Rows: []map[string]string{
			{"Resource": "Customers", "Count": strconv.Itoa(summary.Customers)},
			{"Resource": "Instructors", "Count": strconv.Itoa(summary.Instructors)},
			{"Resource": "Classes", "Count": strconv.Itoa(summary.Classes)},
			{"Resource": "Attendance", "Count": strconv.Itoa(summary.Attendance)},
			{"Resource": "Sales", "Count": strconv.Itoa(summary.Sales)},
		},
	}

	switch format {
	case ExportFormatCSV:
		body, err := s.csv.Render(data)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return body, "text/csv", nil
	case ExportFormatPDF:
		body, err := s.pdf.Render(data, "Studio Summary")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return body, "application/pdf", nil
	default:
		return nil, "", invalidInput([]string{fmt.Sprintf("unsupported export format %q", format)})
	}
}
