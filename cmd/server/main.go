package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/database"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/router"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/storage"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/pkg/utils"
)

func main() {
	utils.InitLogger()

	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "clinic_user")
	dbPassword := utils.Getenv("DB_PASSWORD", "clinic_password")
	dbName := utils.Getenv("DB_NAME", "clinic_appointments_db")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")
	dbSchemaPath := utils.Getenv("DB_SCHEMA_PATH", "")

	db, err := database.InitDB(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode, dbSchemaPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	utils.LogInfo("Database initialized", map[string]interface{}{"host": dbHost, "name": dbName})

	documentBucket := utils.Getenv("DOCUMENT_BUCKET", "clinic-patient-documents")
	documentStorage, err := storage.NewS3Storage(context.Background(), documentBucket)
	if err != nil {
		log.Fatalf("Failed to initialize document storage: %v", err)
	}

	engine := gin.Default()
	engine.Use(utils.GinLogger())

	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = allowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.Setup(engine, db, documentStorage)

	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
