package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eduqg/eduqg-backend/config"
	"github.com/eduqg/eduqg-backend/services"
)

// Services exposes the shared handles to handlers via the request context.
func Services(db *gorm.DB, cfg *config.Config, qg *services.QuestionGenerator) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("db", db)
		c.Set("config", cfg)
		c.Set("qgen", qg)
		c.Next()
	}
}
