package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	customerRepo "mistriconnect/database/repository/customer"
	providerRepo "mistriconnect/database/repository/provider"
	"mistriconnect/handlers"
	"mistriconnect/middleware"
)

// HandlerBundle collects the assembled handlers and the repositories the
// auth middleware needs.
type HandlerBundle struct {
	CustomerRepo customerRepo.Repository
	ProviderRepo providerRepo.Repository

	Customer *handlers.CustomerHandler
	Provider *handlers.ProviderHandler
	Booking  *handlers.BookingHandler
	Earnings *handlers.EarningsHandler
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	registerHealthRoute(r)
	registerCustomerRoutes(r, hb)
	registerProviderRoutes(r, hb)
	registerBookingRoutes(r, hb)
	registerEarningsRoutes(r, hb)
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm MistriConnect"})
	})
}

func registerCustomerRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/customers")
	{
		api.POST("/register", hb.Customer.Register)
		api.POST("/login", hb.Customer.Login)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthCustomerMiddleware(hb.CustomerRepo))
		protected.GET("/me", hb.Customer.GetProfile)
		protected.PUT("/me", hb.Customer.UpdateProfile)
	}
}

func registerProviderRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.POST("/register", hb.Provider.Register)
		api.POST("/login", hb.Provider.Login)
		api.POST("/search", hb.Provider.Search)
		api.GET("/availability/:id", hb.Provider.QueryAvailability)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
		protected.GET("/me", hb.Provider.GetProfile)
		protected.PUT("/me", hb.Provider.UpdateProfile)
		protected.POST("/me/services", hb.Provider.AddServiceType)
		protected.DELETE("/me/services/:serviceType", hb.Provider.RemoveServiceType)
		protected.POST("/me/slots", hb.Provider.BlockSlot)
	}
}

func registerBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		asCustomer := api.Group("")
		asCustomer.Use(middleware.JWTAuthCustomerMiddleware(hb.CustomerRepo))
		asCustomer.POST("", hb.Booking.CreateJobRequest)
		asCustomer.GET("", hb.Booking.ListCustomerBookings)
		asCustomer.DELETE("/:jobId", hb.Booking.CancelJobRequest)
		asCustomer.POST("/:jobId/review", hb.Booking.ReviewJobRequest)

		asProvider := api.Group("")
		asProvider.Use(middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
		asProvider.GET("/incoming", hb.Booking.ListProviderBookings)
		asProvider.PUT("/:jobId/accept", hb.Booking.AcceptJobRequest)
		asProvider.PUT("/:jobId/reject", hb.Booking.RejectJobRequest)
	}
}

func registerEarningsRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/earnings")
	{
		api.Use(middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
		api.GET("", hb.Earnings.ListMonths)
		api.GET("/:month", hb.Earnings.GetMonth)
		api.GET("/:month/jobs", hb.Earnings.GetMonthJobs)
	}
}
