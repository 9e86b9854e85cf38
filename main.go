// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NabinIslam/docport-server/config"
	"github.com/NabinIslam/docport-server/endpoint"
	"github.com/NabinIslam/docport-server/middleware"
	"github.com/NabinIslam/docport-server/model"
	"github.com/NabinIslam/docport-server/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupRouter(db *gorm.DB, appName string) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DatabaseMiddleware(db))
	router.Use(middleware.RequestAuditLogger())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("%s is running", appName),
		})
	})

	// Availability (public read path)
	router.GET("/appointment-options", endpoint.ListAppointmentOptions)
	router.GET("/specialties", endpoint.ListSpecialties)

	// Bookings
	router.POST("/bookings", endpoint.CreateBooking)
	router.GET("/bookings", middleware.RequireAuth(), endpoint.ListBookings)
	router.GET("/booking/:id", middleware.RequireAuth(), endpoint.GetBooking)

	// Token issuance, rate limited per client IP
	router.GET("/jwt", middleware.RateLimiter(middleware.RateLimitConfig{}), endpoint.IssueToken)

	// Accounts and roles
	router.POST("/users", endpoint.CreateUser)
	router.GET("/users", middleware.RequireAuth(), middleware.RequireAdmin(), endpoint.ListUsers)
	router.GET("/user/admin/:email", middleware.RequireAuth(), endpoint.CheckAdmin)
	router.PUT("/user/admin/:id", middleware.RequireAuth(), middleware.RequireAdmin(), endpoint.PromoteToAdmin)

	// Doctor roster
	router.POST("/doctors", middleware.RequireAuth(), endpoint.RegisterDoctor)
	router.GET("/doctors", middleware.RequireAuth(), middleware.RequireAdmin(), endpoint.ListDoctors)
	router.DELETE("/doctor/:id", middleware.RequireAuth(), endpoint.RemoveDoctor)

	return router
}

func main() {
	cfg := config.LoadConfig()

	if secret := os.Getenv("JWTSECRET"); secret != "" {
		util.SetJWTSecret(secret)
	} else {
		log.Fatal("JWTSECRET must be set")
	}

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err := db.AutoMigrate(
		&model.AppointmentOption{},
		&model.Booking{},
		&model.User{},
		&model.Doctor{},
		&model.AuditLog{},
	); err != nil {
		log.Fatalf("Error running migrations: %v", err)
	}
	if err := model.SeedAppointmentOptions(db); err != nil {
		log.Fatalf("Error seeding appointment options: %v", err)
	}
	util.SetAuditLoggerDB(db)

	// Redis is optional; rate limiting and the role cache degrade gracefully.
	if _, err := config.ConnectRedis(); err != nil {
		log.Printf("Warning: Redis unavailable, continuing without it: %v", err)
	}

	gin.SetMode(cfg.GinMode)
	router := setupRouter(db, cfg.AppName)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.AppPort),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("error starting server: %v", err)
		}
	}()
	log.Printf("%s listening on %s", cfg.AppName, srv.Addr)

	// Block until interrupted, then drain in-flight requests and close the
	// shared pools in order.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	if rdb := config.GetRedisClient(); rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
