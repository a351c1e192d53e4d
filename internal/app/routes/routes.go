package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/peiyu/classmeet/internal/app/controllers"
	"github.com/peiyu/classmeet/internal/app/models/dto"
	"github.com/peiyu/classmeet/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	schoolController *controllers.SchoolController,
	scheduleController *controllers.ScheduleController,
	friendController *controllers.FriendController,
	ocrController *controllers.OCRController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.APIResponse{
			Data:      dto.SuccessResponse{Message: "ok"},
			Timestamp: time.Now(),
		})
	})

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		profile := authenticated.Group("/auth")
		{
			profile.GET("/profile", authController.GetProfile)
			profile.PUT("/profile", authController.UpdateProfile)
		}

		schools := authenticated.Group("/schools")
		{
			schools.GET("", schoolController.GetSchools)
			schools.GET("/:id", schoolController.GetSchool)
			schools.GET("/search/:query", schoolController.SearchSchools)
			schools.POST("", schoolController.CreateSchool)
			schools.PUT("/:id/periods", schoolController.UpdatePeriods)
		}

		schedules := authenticated.Group("/schedules")
		{
			schedules.POST("/batch", scheduleController.GetBatchSchedules)
			schedules.POST("/common-free", scheduleController.GetCommonFreeTime)
			schedules.GET("/:userId", scheduleController.GetUserSchedule)
			schedules.PUT("/:userId", scheduleController.UpdateUserSchedule)
			schedules.DELETE("/:userId", scheduleController.DeleteUserSchedule)
		}

		friends := authenticated.Group("/friends")
		{
			friends.GET("", friendController.ListFriends)
			friends.GET("/search/:query", authController.SearchUsers)
			friends.POST("/request", friendController.SendRequest)
			friends.GET("/requests", friendController.ListRequests)
			friends.PUT("/requests/:id", friendController.RespondRequest)
			friends.GET("/notifications", friendController.Notifications)
			friends.DELETE("/:friendshipId", friendController.RemoveFriend)
		}

		ocr := authenticated.Group("/ocr")
		{
			ocr.POST("/process", ocrController.ProcessImage)
			ocr.GET("/tips", ocrController.GetTips)
		}
	}
}
