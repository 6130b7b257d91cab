package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/handlers"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/mailer"
	infraRepo "github.com/BruksfildServices01/barbershop-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	ucAccount "github.com/BruksfildServices01/barbershop-booking/internal/usecase/account"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
	ucAvailability "github.com/BruksfildServices01/barbershop-booking/internal/usecase/availability"
	ucCatalog "github.com/BruksfildServices01/barbershop-booking/internal/usecase/catalog"
	ucReview "github.com/BruksfildServices01/barbershop-booking/internal/usecase/review"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

// Deps are the singletons built by main and shared by every route.
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Log    *zerolog.Logger
	Clock  timezone.Clock
	Audit  *audit.Dispatcher
	Mailer mailer.Sender
	Images storage.ImageStore
	Issuer *auth.Issuer

	// Emails checks signup domains when set.
	Emails *validators.EmailDomainChecker
}

// MediaPrefix is where LocalStore uploads are served from.
const MediaPrefix = "/media"

func RegisterRoutes(r *gin.Engine, d Deps) {
	validators.Register()

	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.Recovery(d.Log))
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware(cfg.HTTP.CORSOrigins))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	availabilityRepo := infraRepo.NewAvailabilityGormRepository(d.DB)
	serviceRepo := infraRepo.NewServiceGormRepository(d.DB)
	reviewRepo := infraRepo.NewReviewGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	tokenRepo := infraRepo.NewTokenGormRepository(d.DB)

	denylist := cache.NewTokenDenylist(d.Redis)
	attempts := cache.NewLoginLimiter(d.Redis, cfg.RateLimit.LoginAttempts, cfg.RateLimit.LoginWindow)

	// ======================================================
	// USE CASES
	// ======================================================
	authUC := ucAccount.NewAuth(userRepo, tokenRepo, d.Issuer, denylist, attempts, d.Mailer, d.Clock, cfg.App.PublicURL)
	onboardingUC := ucAccount.NewOnboarding(userRepo, tokenRepo, d.Mailer, d.Audit, d.Clock, cfg.App.PublicURL)
	barbersUC := ucAccount.NewBarbers(userRepo, reviewRepo, d.Images)

	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, d.Audit, d.Clock)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, d.Audit, d.Clock)
	listClientUC := ucAppointment.NewListClientAppointments(appointmentRepo, reviewRepo)
	listBarberUC := ucAppointment.NewListBarberSchedule(appointmentRepo)
	exportUC := ucAppointment.NewExportAppointments(appointmentRepo)

	createAvailabilityUC := ucAvailability.NewCreate(availabilityRepo, userRepo, d.Audit, d.Clock)
	updateAvailabilityUC := ucAvailability.NewUpdate(availabilityRepo, d.Audit, d.Clock)
	deleteAvailabilityUC := ucAvailability.NewDelete(availabilityRepo, d.Audit, d.Clock)
	listAdminUC := ucAvailability.NewListForAdmin(availabilityRepo, userRepo)
	listPublicUC := ucAvailability.NewListPublic(availabilityRepo, userRepo, d.Clock)

	servicesUC := ucCatalog.NewServices(serviceRepo, userRepo)
	reviewsUC := ucReview.NewReviews(reviewRepo, userRepo, d.Audit, d.Clock)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(authUC, onboardingUC, d.Emails, d.Log)
	meHandler := handlers.NewMeHandler(userRepo, d.Log)
	barberHandler := handlers.NewBarberHandler(barbersUC, d.Log)
	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		cancelAppointmentUC,
		listClientUC,
		listBarberUC,
		exportUC,
		d.Log,
	)
	availabilityHandler := handlers.NewAvailabilityHandler(
		createAvailabilityUC,
		updateAvailabilityUC,
		deleteAvailabilityUC,
		listAdminUC,
		listPublicUC,
		d.Log,
	)
	serviceHandler := handlers.NewServiceHandler(servicesUC, d.Log)
	reviewHandler := handlers.NewReviewHandler(reviewsUC, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	// ======================================================
	// INFRA ROUTES
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if local, ok := d.Images.(*storage.LocalStore); ok {
		r.Static(MediaPrefix, local.Dir())
	}

	limited := middleware.RateLimit(cfg.RateLimit)
	authenticated := middleware.RequireAuth(d.Issuer)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		authAPI := api.Group("/auth", limited)
		{
			authAPI.POST("/login", authHandler.Login)
			authAPI.POST("/refresh", authHandler.Refresh)
			authAPI.POST("/logout", authHandler.Logout)
			authAPI.POST("/signup", authHandler.Signup)
			authAPI.POST("/verify-email", authHandler.VerifyEmail)
			authAPI.POST("/password-reset", authHandler.RequestPasswordReset)
			authAPI.POST("/password-reset/confirm", authHandler.ConfirmPasswordReset)
			authAPI.POST("/accept-invite", authHandler.AcceptInvite)
		}

		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public", limited)
		{
			publicAPI.GET("/barbers", barberHandler.ListPublic)
			publicAPI.GET("/barbers/:id/availability", availabilityHandler.ListPublic)
			publicAPI.GET("/barbers/:id/services", serviceHandler.List)
			publicAPI.GET("/barbers/:id/reviews", reviewHandler.ListForBarber)
		}

		api.GET("/me", authenticated, meHandler.GetMe)

		// ------------------------------
		// CLIENT
		// ------------------------------
		clientAPI := api.Group("/client", authenticated, middleware.RequireRole(models.RoleClient))
		{
			clientAPI.GET("/appointments", appointmentHandler.ListForClient)
			clientAPI.POST("/appointments/barbers/:barber_id", appointmentHandler.Create)
			clientAPI.DELETE("/appointments/:appointment_id", appointmentHandler.Cancel)

			clientAPI.POST("/reviews", reviewHandler.Create)
			clientAPI.PATCH("/reviews/:review_id", reviewHandler.Update)
			clientAPI.DELETE("/reviews/:review_id", reviewHandler.Delete)
		}

		// ------------------------------
		// BARBER
		// ------------------------------
		barberAPI := api.Group("/barber", authenticated, middleware.RequireRole(models.RoleBarber))
		{
			barberAPI.GET("/appointments", appointmentHandler.ListForBarber)
			barberAPI.PUT("/me/image", barberHandler.UploadImage)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		adminAPI := api.Group("/admin", authenticated, middleware.RequireRole(models.RoleAdmin))
		{
			adminAPI.POST("/barbers/invite", authHandler.InviteBarber)

			adminAPI.GET("/barbers/:id/availability", availabilityHandler.ListForAdmin)
			adminAPI.POST("/barbers/:id/availability", availabilityHandler.Create)
			adminAPI.PATCH("/barbers/:id/availability/:availability_id", availabilityHandler.Update)
			adminAPI.DELETE("/barbers/:id/availability/:availability_id", availabilityHandler.Delete)

			adminAPI.GET("/barbers/:id/services", serviceHandler.List)
			adminAPI.POST("/barbers/:id/services", serviceHandler.Create)
			adminAPI.PATCH("/barbers/:id/services/:service_id", serviceHandler.Update)
			adminAPI.DELETE("/barbers/:id/services/:service_id", serviceHandler.Delete)

			adminAPI.GET("/appointments/export", appointmentHandler.Export)
			adminAPI.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
