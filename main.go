package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"

	"voyago/config"
	"voyago/cron"
	"voyago/database"
	bookingRepoPkg "voyago/database/repository/booking"
	destinationRepoPkg "voyago/database/repository/destination"
	tripRepoPkg "voyago/database/repository/trip"
	userRepoPkg "voyago/database/repository/user"
	vehicleRepoPkg "voyago/database/repository/vehicle"
	"voyago/handlers"
	"voyago/middleware"
	"voyago/routes"
	"voyago/services/driver"
	"voyago/services/maps"
	"voyago/services/notification"
	"voyago/services/payment"
	"voyago/services/user"
	"voyago/services/wizard"
	"voyago/utils"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	stripe.Key = config.AppConfig.StripeKey

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	routes.SetupCORS(router)

	// repositories.
	destRepo := destinationRepoPkg.NewMongoDestinationRepo()
	vehicleRepo := vehicleRepoPkg.NewMongoVehicleRepo()
	tripRepo := tripRepoPkg.NewMongoTripRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// async task client for trip reminders.
	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer taskClient.Close()

	// services.
	userService := &user.DefaultUserService{Repo: userRepo}
	driverService := &driver.DefaultDriverService{Users: userRepo, Vehicles: vehicleRepo}
	notificationService := notification.NewDefaultNotificationService(userRepo, taskClient, logger)
	paymentProcessor := payment.NewStripeProcessor(logger)

	mapsClient := maps.NewClient(maps.ClientConfig{
		APIKey:  config.AppConfig.GoogleAPIKey,
		BaseURL: config.AppConfig.MapsBaseURL,
		Country: config.AppConfig.MapsCountry,
		Timeout: time.Duration(config.AppConfig.MapsTimeoutMS) * time.Millisecond,
	}, logger)
	distanceLookup := maps.NewRepoDistanceLookup(destRepo, mapsClient)

	wizardService := &wizard.DefaultWizardService{
		Store:       wizard.NewRedisSessionStore(utils.GetWizardCacheClient()),
		DestRepo:    destRepo,
		VehicleRepo: vehicleRepo,
		TripRepo:    tripRepo,
		BookingRepo: bookingRepo,
		Lookup:      distanceLookup,
		Payments:    paymentProcessor,
		Notifier:    notificationService,
		Logger:      logger,
		Currency:    config.AppConfig.Currency,
	}

	// reminder worker.
	cron.InitReminderWorker(notificationService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:     userRepo,
		Wizard:       handlers.NewWizardHandler(wizardService),
		Auth:         handlers.NewAuthHandler(userService),
		Users:        handlers.NewUserHandler(userService),
		Drivers:      handlers.NewDriverHandler(driverService, cloudinaryStorageService),
		Destinations: handlers.NewDestinationHandler(destRepo),
		Bookings:     handlers.NewBookingHandler(bookingRepo, tripRepo),
		Maps:         handlers.NewMapsHandler(mapsClient),
		Storage:      handlers.NewStorageHandler(cloudinaryStorageService),
		Admin:        handlers.NewAdminHandler(userRepo, bookingRepo),
	}

	routes.RegisterAll(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
