package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"voyago/handlers"
	"voyago/middleware"
	"voyago/models"
)

// SetupCORS configures cross-origin access for the web and mobile clients.
func SetupCORS(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Voyago"})
	})
}

// RegisterAuthRoutes registers signup and sign-in endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.Register)
		api.POST("/login", hb.Auth.Login)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		protected.POST("/verify-email", hb.Auth.VerifyEmail)
		protected.POST("/resend-otp", hb.Auth.ResendOTP)
		protected.POST("/signout", hb.Auth.SignOut)
		protected.PUT("/password", hb.Auth.UpdatePassword)
	}
}

// RegisterUserRoutes registers profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.GET("/me", hb.Users.GetProfile)
		api.PATCH("/me", hb.Users.UpdateProfile)
		api.DELETE("/me", hb.Users.DeleteAccount)
		api.PUT("/me/fcm-token", hb.Users.RegisterFCMToken)
	}
}

// RegisterDriverRoutes registers driver onboarding and vehicle management.
func RegisterDriverRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/drivers")
	{
		// Registration flow is public; state lives in the cached session.
		api.POST("/register", hb.Drivers.InitiateRegistration)
		api.POST("/register/:tempID/verify-otp", hb.Drivers.VerifyRegistrationOTP)
		api.POST("/register/:tempID/documents", hb.Drivers.SubmitDocuments)
		api.POST("/register/:tempID/vehicle", hb.Drivers.FinalizeRegistration)
		api.DELETE("/register/:tempID", hb.Drivers.CancelRegistration)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo, models.RoleDriver))
		protected.GET("/vehicles", hb.Drivers.GetMyVehicles)
		protected.POST("/vehicles", hb.Drivers.AddVehicle)
		protected.PATCH("/vehicles/:vehicleID/active", hb.Drivers.SetVehicleActive)
		protected.GET("/bookings", hb.Bookings.GetDriverBookings)
		protected.POST("/bookings/:id/complete", hb.Bookings.CompleteBooking)
	}
}

// RegisterDestinationRoutes registers the destination catalogue.
func RegisterDestinationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/destinations")
	{
		api.GET("", hb.Destinations.List)
		api.GET("/search", hb.Destinations.Search)
		api.GET("/:id", hb.Destinations.GetByID)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthMiddleware(hb.UserRepo, models.RoleAdmin))
		admin.POST("", hb.Destinations.Create)
		admin.PUT("/:id", hb.Destinations.Update)
		admin.DELETE("/:id", hb.Destinations.Delete)
	}
}

// RegisterWizardRoutes registers the booking wizard flow.
func RegisterWizardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/booking")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo, models.RoleTourist, models.RoleAdmin))
	{
		api.POST("/session", hb.Wizard.InitiateSession)
		api.GET("/session/:sessionID", hb.Wizard.GetSession)
		api.PUT("/session/:sessionID/trip-details", hb.Wizard.SetTripDetails)
		api.POST("/session/:sessionID/stops", hb.Wizard.AddStop)
		api.PATCH("/session/:sessionID/stops/:index", hb.Wizard.UpdateStop)
		api.DELETE("/session/:sessionID/stops/:index", hb.Wizard.RemoveStop)
		api.PUT("/session/:sessionID/preferences", hb.Wizard.SetPreferences)
		api.GET("/session/:sessionID/vehicles", hb.Wizard.VehicleOptions)
		api.PUT("/session/:sessionID/vehicle", hb.Wizard.SelectVehicle)
		api.PUT("/session/:sessionID/payment", hb.Wizard.SetPaymentMethod)
		api.POST("/session/:sessionID/confirm", hb.Wizard.ConfirmBooking)
		api.DELETE("/session/:sessionID", hb.Wizard.CancelSession)
	}
}

// RegisterBookingRoutes registers confirmed booking and trip reads.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.GET("", hb.Bookings.GetMyBookings)
		api.GET("/reference/:reference", hb.Bookings.GetByReference)
		api.POST("/:id/cancel", hb.Bookings.CancelBooking)
		api.GET("/trips", hb.Bookings.GetMyTrips)
		api.GET("/trips/:tripID", hb.Bookings.GetTrip)
	}
}

// RegisterMapsRoutes registers place search and geocoding.
func RegisterMapsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/maps")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.GET("/places", hb.Maps.SearchPlaces)
		api.GET("/geocode", hb.Maps.Geocode)
		api.GET("/reverse-geocode", hb.Maps.ReverseGeocode)
		api.GET("/directions", hb.Maps.Directions)
	}
}

// RegisterStorageRoutes registers media upload endpoints.
func RegisterStorageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/storage")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.POST("/upload/:bucket", hb.Storage.UploadFile)
		api.POST("/documents/:bucket", hb.Storage.UploadDocument)
	}

	admin := r.Group("/api/storage/documents")
	admin.Use(middleware.JWTAuthMiddleware(hb.UserRepo, models.RoleAdmin))
	admin.GET("/:bucket/:filename/url", hb.Storage.GetDocumentURL)
}

// RegisterAdminRoutes registers the admin dashboard.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo, models.RoleAdmin))
	{
		api.GET("/reports/bookings", hb.Admin.BookingReport)
		api.GET("/users", hb.Admin.ListUsers)
		api.POST("/drivers/:id/verify", hb.Admin.VerifyDriver)
	}
}

// RegisterAll wires every route group onto the engine.
func RegisterAll(r *gin.Engine, hb *handlers.HandlerBundle) {
	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterDriverRoutes(r, hb)
	RegisterDestinationRoutes(r, hb)
	RegisterWizardRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterMapsRoutes(r, hb)
	RegisterStorageRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
