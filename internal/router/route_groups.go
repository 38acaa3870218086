package router

import (
	"github.com/gin-gonic/gin"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/handlers"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/middleware"
)

// SetupAuthRoutes sets up the authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)

		authRequiredRoutes := authRoutes.Group("")
		authRequiredRoutes.Use(middleware.AuthMiddleware())
		{
			authRequiredRoutes.GET("/me", authHandler.Profile)
		}
	}
}

// SetupClientRoutes sets up the client routes, including per-client documents.
func SetupClientRoutes(authenticatedGroup *gin.RouterGroup, clientHandler *handlers.ClientHandler, documentHandler *handlers.DocumentHandler) {
	clientRoutes := authenticatedGroup.Group("/clients")
	clientRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		clientRoutes.POST("", clientHandler.CreateClient)
		clientRoutes.GET("", clientHandler.GetClients)
		clientRoutes.GET("/:id", clientHandler.GetClientByID)
		clientRoutes.GET("/cpf/:cpf", clientHandler.GetClientByCPF)
		clientRoutes.PUT("/:id", clientHandler.UpdateClient)
		clientRoutes.DELETE("/:id", clientHandler.DeleteClient)
		clientRoutes.GET("/:id/documents", documentHandler.GetDocumentsByClient)
	}
}

// SetupAppointmentRoutes sets up the appointment routes.
func SetupAppointmentRoutes(authenticatedGroup *gin.RouterGroup, appointmentHandler *handlers.AppointmentHandler) {
	appointmentRoutes := authenticatedGroup.Group("/appointments")
	appointmentRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
		appointmentRoutes.GET("", appointmentHandler.GetAppointments)
		appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
		appointmentRoutes.PUT("/:id", appointmentHandler.UpdateAppointment)
		appointmentRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus)
		appointmentRoutes.PUT("/:id/tags", appointmentHandler.SetAppointmentTags)
		appointmentRoutes.DELETE("/:id", appointmentHandler.DeleteAppointment)
	}
}

// SetupTagRoutes sets up the tag routes.
func SetupTagRoutes(authenticatedGroup *gin.RouterGroup, tagHandler *handlers.TagHandler) {
	tagRoutes := authenticatedGroup.Group("/tags")
	tagRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		tagRoutes.POST("", tagHandler.CreateTag)
		tagRoutes.GET("", tagHandler.GetTags)
		tagRoutes.GET("/:id", tagHandler.GetTagByID)
		tagRoutes.PUT("/:id", tagHandler.UpdateTag)
		tagRoutes.DELETE("/:id", tagHandler.DeleteTag)
	}
}

// SetupDriverRoutes sets up the driver routes.
func SetupDriverRoutes(authenticatedGroup *gin.RouterGroup, driverHandler *handlers.DriverHandler) {
	driverRoutes := authenticatedGroup.Group("/drivers")
	driverRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		driverRoutes.POST("", driverHandler.CreateDriver)
		driverRoutes.GET("", driverHandler.GetDrivers)
		driverRoutes.GET("/:id", driverHandler.GetDriverByID)
		driverRoutes.PUT("/:id", driverHandler.UpdateDriver)
		driverRoutes.DELETE("/:id", driverHandler.DeleteDriver)
	}
}

// SetupCollectorRoutes sets up the collector routes.
func SetupCollectorRoutes(authenticatedGroup *gin.RouterGroup, collectorHandler *handlers.CollectorHandler) {
	collectorRoutes := authenticatedGroup.Group("/collectors")
	collectorRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		collectorRoutes.POST("", collectorHandler.CreateCollector)
		collectorRoutes.GET("", collectorHandler.GetCollectors)
		collectorRoutes.GET("/:id", collectorHandler.GetCollectorByID)
		collectorRoutes.PUT("/:id", collectorHandler.UpdateCollector)
		collectorRoutes.DELETE("/:id", collectorHandler.DeleteCollector)
	}
}

// SetupCarRoutes sets up the fleet car routes.
func SetupCarRoutes(authenticatedGroup *gin.RouterGroup, carHandler *handlers.CarHandler) {
	carRoutes := authenticatedGroup.Group("/cars")
	carRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		carRoutes.POST("", carHandler.CreateCar)
		carRoutes.GET("", carHandler.GetCars)
		carRoutes.GET("/:id", carHandler.GetCarByID)
		carRoutes.PUT("/:id", carHandler.UpdateCar)
		carRoutes.DELETE("/:id", carHandler.DeleteCar)
	}
}

// SetupLogisticsPackageRoutes sets up the logistics package routes.
func SetupLogisticsPackageRoutes(authenticatedGroup *gin.RouterGroup, packageHandler *handlers.LogisticsPackageHandler) {
	packageRoutes := authenticatedGroup.Group("/logistics-packages")
	packageRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		packageRoutes.POST("", packageHandler.CreatePackage)
		packageRoutes.GET("", packageHandler.GetPackages)
		packageRoutes.GET("/:id", packageHandler.GetPackageByID)
		packageRoutes.PUT("/:id", packageHandler.UpdatePackage)
		packageRoutes.DELETE("/:id", packageHandler.DeletePackage)
	}
}

// SetupNotificationRoutes sets up the notification routes.
func SetupNotificationRoutes(authenticatedGroup *gin.RouterGroup, notificationHandler *handlers.NotificationHandler) {
	notificationRoutes := authenticatedGroup.Group("/notifications")
	notificationRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		notificationRoutes.POST("", notificationHandler.CreateNotification)
		notificationRoutes.GET("", notificationHandler.GetNotifications)
		notificationRoutes.GET("/unread-count", notificationHandler.CountUnread)
		notificationRoutes.PATCH("/:id/read", notificationHandler.MarkRead)
		notificationRoutes.POST("/mark-all-read", notificationHandler.MarkAllRead)
	}
}

// SetupDocumentRoutes sets up the patient document routes.
func SetupDocumentRoutes(authenticatedGroup *gin.RouterGroup, documentHandler *handlers.DocumentHandler) {
	documentRoutes := authenticatedGroup.Group("/documents")
	documentRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		documentRoutes.POST("", documentHandler.CreateDocument)
		documentRoutes.PATCH("/:id/confirm", documentHandler.ConfirmUpload)
		documentRoutes.GET("/:id/download-url", documentHandler.GetDownloadURL)
		documentRoutes.DELETE("/:id", documentHandler.DeleteDocument)
	}
}
