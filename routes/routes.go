package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eduqg/eduqg-backend/config"
	"github.com/eduqg/eduqg-backend/controllers"
	"github.com/eduqg/eduqg-backend/middleware"
	"github.com/eduqg/eduqg-backend/services"
)

func SetupRouter(r *gin.Engine, db *gorm.DB, cfg *config.Config, qg *services.QuestionGenerator) *gin.Engine {
	r.Use(middleware.Services(db, cfg, qg))

	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")
	api.GET("/", controllers.Root)

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(db, cfg.JWTSecret))
	{
		protected.POST("/ebooks/upload", controllers.UploadEBook)
		protected.GET("/ebooks", controllers.GetEBooks)

		protected.POST("/questions/generate", controllers.GenerateQuestions)
		protected.GET("/questions", controllers.GetQuestions)

		protected.POST("/assignments/generate", controllers.GenerateAssignment)
	}

	return r
}
