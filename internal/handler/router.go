package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers bundles every route handler for registration.
type Handlers struct {
	Customers   *CustomerHandler
	Instructors *InstructorHandler
	Classes     *ClassHandler
	Packages    *PackageHandler
	Sales       *SaleHandler
	Attendance  *AttendanceHandler
	Reports     *ReportHandler
	Metrics     *MetricsHandler
}

// Register wires every endpoint under the API prefix.
func Register(r *gin.Engine, prefix string, h Handlers) {
	api := r.Group(prefix)

	customers := api.Group("/customers")
	customers.GET("", h.Customers.List)
	customers.POST("", h.Customers.Create)
	customers.GET("/next-id", h.Customers.NextID)
	customers.GET("/:id", h.Customers.Get)
	customers.DELETE("/:id", h.Customers.Delete)

	instructors := api.Group("/instructors")
	instructors.GET("", h.Instructors.List)
	instructors.POST("", h.Instructors.Create)
	instructors.GET("/next-id", h.Instructors.NextID)
	instructors.GET("/search", h.Instructors.Search)
	instructors.GET("/:id", h.Instructors.Get)
	instructors.DELETE("/:id", h.Instructors.Delete)

	classes := api.Group("/classes")
	classes.GET("", h.Classes.List)
	classes.POST("", h.Classes.Create)
	classes.GET("/next-id", h.Classes.NextID)
	classes.GET("/:id", h.Classes.Get)
	classes.DELETE("/:id", h.Classes.Delete)

	packages := api.Group("/packages")
	packages.GET("", h.Packages.List)
	packages.POST("", h.Packages.Create)
	packages.GET("/next-id", h.Packages.NextID)
	packages.GET("/:id", h.Packages.Get)
	packages.DELETE("/:id", h.Packages.Delete)

	sales := api.Group("/sales")
	sales.POST("", h.Sales.Create)
	sales.GET("/next-id", h.Sales.NextID)
	sales.GET("/:id", h.Sales.Get)

	attendance := api.Group("/attendance")
	attendance.POST("", h.Attendance.CheckIn)
	attendance.GET("/next-id", h.Attendance.NextID)
	attendance.GET("/classes-by-instructor", h.Attendance.ClassesByInstructor)

	reports := api.Group("/reports")
	reports.GET("/summary", h.Reports.Summary)
	reports.GET("/summary/export", h.Reports.ExportSummary)
	reports.GET("/instructors/:id", h.Reports.InstructorPerformance)
	reports.GET("/classes/:id", h.Reports.ClassAttendance)
	reports.GET("/customers/:id", h.Reports.CustomerAttendance)

	if h.Metrics != nil {
		r.GET("/metrics", h.Metrics.Expose)
	}
}
