package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vehiql/vehiql-golang/internal/handlers"
	"github.com/vehiql/vehiql-golang/internal/middleware"
)

// CORSMiddleware allows the configured frontend origin to call the API
// with credentials, and answers preflight OPTIONS requests directly.
func CORSMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// SetupRouter wires every endpoint. Three tiers: public, authenticated
// and admin. Listing endpoints use OptionalAuth so anonymous browsing
// works while logged-in viewers get the wishlisted annotation.
func SetupRouter(h *handlers.Handlers, allowedOrigin string) *gin.Engine {
	router := gin.Default()
	router.Use(CORSMiddleware(allowedOrigin))

	v1 := router.Group("/v1")
	{
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		v1.POST("/register", h.Register)
		v1.POST("/login", h.Login)

		v1.GET("/dealership", h.GetDealershipInfo)

		cars := v1.Group("/cars")
		cars.Use(middleware.OptionalAuth(h.DB, h.JWTSecret))
		{
			cars.GET("", h.SearchCars)
			cars.GET("/filters", h.GetCarFilters)
			cars.GET("/featured", h.GetFeaturedCars)
			cars.GET("/:id", h.GetCar)
		}

		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware(h.DB, h.JWTSecret))
		{
			auth.GET("/me", h.GetMe)

			auth.POST("/test-drives", h.BookTestDrive)
			auth.GET("/test-drives", h.GetMyTestDrives)
			auth.POST("/test-drives/:id/cancel", h.CancelTestDrive)

			auth.POST("/cars/:id/save", h.ToggleSavedCar)
			auth.GET("/saved-cars", h.GetSavedCars)

			auth.POST("/ai/image-search", h.ImageSearch)

			admin := auth.Group("/admin")
			admin.Use(middleware.AdminMiddleware())
			{
				admin.GET("/cars", h.GetAdminCars)
				admin.POST("/cars", h.CreateCar)
				admin.POST("/cars/extract", h.ExtractCarDetails)
				admin.PATCH("/cars/:id", h.UpdateCar)
				admin.DELETE("/cars/:id", h.DeleteCar)

				admin.GET("/test-drives", h.GetTestDrives)
				admin.PATCH("/test-drives/:id/status", h.UpdateTestDriveStatus)

				admin.GET("/dashboard", h.GetDashboardStats)

				admin.GET("/users", h.GetUsers)
				admin.PATCH("/users/:id/role", h.UpdateUserRole)

				admin.PUT("/working-hours", h.SaveWorkingHours)
			}
		}
	}

	return router
}
