package routes

import (
	"net/http"

	"github.com/sheltweezy/digestlibrary/controllers"
	"github.com/sheltweezy/digestlibrary/services"
	"github.com/sheltweezy/digestlibrary/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires every service and controller onto one engine.
// The /consumption prefix is what the web client binds to.
func SetupRouter(db *gorm.DB, photos utils.PhotoStore) *gin.Engine {
	r := gin.Default()

	entrySvc := services.NewEntryService(db)

	profileCtl := controllers.NewProfileController(services.NewProfileService(db), photos)
	goalCtl := controllers.NewGoalController(services.NewGoalService(db))
	entryCtl := controllers.NewEntryController(entrySvc)
	ingestCtl := controllers.NewIngestController(services.NewIngestService(db, entrySvc))
	analyticsCtl := controllers.NewAnalyticsController(services.NewAnalyticsService(db))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if local, ok := photos.(*utils.LocalPhotoStore); ok {
		r.Static("/photos", local.Dir())
	}

	api := r.Group("/consumption")
	{
		api.GET("/profiles", profileCtl.List)
		api.POST("/profiles", profileCtl.Create)
		api.GET("/profiles/:id", profileCtl.Get)
		api.PUT("/profiles/:id", profileCtl.Update)
		api.DELETE("/profiles/:id", profileCtl.Delete)
		api.POST("/profiles/:id/photo", profileCtl.UploadPhoto)

		api.GET("/profiles/:id/goals", goalCtl.Get)
		api.POST("/profiles/:id/goals", goalCtl.Save)

		api.POST("/profiles/:id/ingest/snapcalorie", ingestCtl.Upload)

		api.GET("/profiles/:id/entries", entryCtl.ListByDay)
		api.GET("/profiles/:id/recent", entryCtl.Recent)

		api.GET("/profiles/:id/summary/:date", analyticsCtl.GetDailySummary)
		api.GET("/profiles/:id/overview", analyticsCtl.GetOverview)
		api.GET("/profiles/:id/trends", analyticsCtl.GetTrends)
		api.GET("/profiles/:id/averages", analyticsCtl.GetAverages)
		api.GET("/profiles/:id/favorites", analyticsCtl.GetFavorites)
		api.GET("/profiles/:id/meal-patterns", analyticsCtl.GetMealPatterns)
	}

	return r
}
