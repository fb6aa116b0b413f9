package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/domain/user"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	ucSchedule "github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
	ucUser "github.com/BruksfildServices01/barber-booking/internal/usecase/user"
)

// Deps are the process-wide singletons the routes are built from.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      zerolog.Logger
	Cache    user.VerifiedCache
	Notifier notify.Notifier
	Audit    *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	workingHoursRepo := infraRepo.NewWorkingHoursGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)

	settings := ucAppointment.NewSettings(cfg)

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, settings)
	bookUC := ucAppointment.NewBookAppointment(appointmentRepo, d.Notifier, d.Audit, settings, d.Log)
	confirmUC := ucAppointment.NewConfirmAppointment(appointmentRepo, d.Audit, settings)
	cancelUC := ucAppointment.NewCancelAppointment(appointmentRepo, d.Audit, settings)
	attendanceUC := ucAppointment.NewRecordAttendance(appointmentRepo, d.Cache, d.Notifier, d.Audit, d.Log)
	listByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo, settings)

	setHoursUC := ucSchedule.NewSetWorkingHours(workingHoursRepo, d.Audit, settings.Schedule, cfg.Timezone)
	getHoursUC := ucSchedule.NewGetWorkingHours(workingHoursRepo, cfg.Timezone)
	blockUC := ucSchedule.NewBlockSlot(workingHoursRepo, d.Audit, settings.Schedule, cfg.Timezone)
	unblockUC := ucSchedule.NewUnblockSlot(workingHoursRepo, d.Audit, settings.Schedule, cfg.Timezone)

	updateAttendanceUC := ucUser.NewUpdateAttendance(userRepo, d.Cache, d.Audit, d.Log)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(userRepo, cfg)
	meHandler := handlers.NewMeHandler(userRepo)
	appointmentHandler := handlers.NewAppointmentHandler(
		availabilityUC,
		bookUC,
		confirmUC,
		cancelUC,
		attendanceUC,
		listByDateUC,
	)
	scheduleHandler := handlers.NewScheduleHandler(setHoursUC, getHoursUC, blockUC, unblockUC)
	userHandler := handlers.NewUserHandler(updateAttendanceUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	// ======================================================
	// PUBLIC
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	// the emailed link carries its own credential
	r.GET("/appointments/confirmation/:token", appointmentHandler.Confirm)

	// ======================================================
	// AUTHENTICATED
	// ======================================================
	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(cfg, userRepo, d.Cache, d.Log))
	{
		secured.GET("/me", meHandler.GetMe)

		secured.GET("/appointments/:date", appointmentHandler.Availability)
		secured.POST("/appointments/book", appointmentHandler.Book)
		secured.DELETE("/appointments/cancel/:id", appointmentHandler.Cancel)

		secured.GET("/schedule/get-working-hours/:date", scheduleHandler.GetWorkingHours)

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := secured.Group("/")
		admin.Use(middleware.RequireAdmin())
		{
			admin.DELETE("/admin/appointments/:id", appointmentHandler.AdminCancel)
			admin.POST("/admin/appointments/:id/attendance", appointmentHandler.RecordAttendance)
			admin.GET("/admin/appointments/export/:date", appointmentHandler.Export)
			admin.GET("/admin/audit-logs", auditLogsHandler.List)

			admin.POST("/schedule/set-working-hours", scheduleHandler.SetWorkingHours)
			admin.POST("/schedule/block-slot", scheduleHandler.BlockSlot)
			admin.DELETE("/schedule/block-slot", scheduleHandler.UnblockSlot)

			admin.PATCH("/users/update-attendance/:id", userHandler.UpdateAttendance)
		}
	}
}
