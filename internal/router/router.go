package router

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/handlers"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/middleware"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/repositories"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/services"
)

// Setup wires repositories, services and handlers onto the engine.
// The object storage adapter is injected so tests and local setups can
// substitute it.
func Setup(engine *gin.Engine, db *sql.DB, storage services.FileStorage) {
	authRepo := repositories.NewAuthRepository(db)
	clientRepo := repositories.NewClientRepository(db)
	appointmentRepo := repositories.NewAppointmentRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	driverRepo := repositories.NewDriverRepository(db)
	collectorRepo := repositories.NewCollectorRepository(db)
	carRepo := repositories.NewCarRepository(db)
	packageRepo := repositories.NewLogisticsPackageRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)

	authService := services.NewAuthService(authRepo, db)
	clientService := services.NewClientService(clientRepo, db)
	tagService := services.NewTagService(tagRepo, appointmentRepo, db)
	appointmentService := services.NewAppointmentService(appointmentRepo, driverRepo, clientService, tagService, db)
	driverService := services.NewDriverService(driverRepo, db)
	collectorService := services.NewCollectorService(collectorRepo, db)
	carService := services.NewCarService(carRepo, db)
	packageService := services.NewLogisticsPackageService(packageRepo, driverRepo, collectorRepo, carRepo, db)
	notificationService := services.NewNotificationService(notificationRepo, db)
	documentService := services.NewDocumentService(documentRepo, clientRepo, storage, db)

	authHandler := handlers.NewAuthHandler(authService)
	clientHandler := handlers.NewClientHandler(clientService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	tagHandler := handlers.NewTagHandler(tagService)
	driverHandler := handlers.NewDriverHandler(driverService)
	collectorHandler := handlers.NewCollectorHandler(collectorService)
	carHandler := handlers.NewCarHandler(carService)
	packageHandler := handlers.NewLogisticsPackageHandler(packageService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	documentHandler := handlers.NewDocumentHandler(documentService)

	apiV1 := engine.Group("/api/v1")

	SetupAuthRoutes(apiV1, authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupClientRoutes(authenticated, clientHandler, documentHandler)
		SetupAppointmentRoutes(authenticated, appointmentHandler)
		SetupTagRoutes(authenticated, tagHandler)
		SetupDriverRoutes(authenticated, driverHandler)
		SetupCollectorRoutes(authenticated, collectorHandler)
		SetupCarRoutes(authenticated, carHandler)
		SetupLogisticsPackageRoutes(authenticated, packageHandler)
		SetupNotificationRoutes(authenticated, notificationHandler)
		SetupDocumentRoutes(authenticated, documentHandler)
	}
}
