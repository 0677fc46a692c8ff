package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "EduQG AI Backend Running"})
}

func HealthCheck(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	response := gin.H{
		"status":    "ok",
		"db":        "ok",
		"timestamp": time.Now().Unix(),
	}

	sqlDB, err := db.DB()
	if err != nil {
		response["status"] = "degraded"
		response["db"] = "error: cannot get DB instance"
		c.JSON(http.StatusInternalServerError, response)
		return
	}
	if err := sqlDB.Ping(); err != nil {
		response["status"] = "degraded"
		response["db"] = "error: cannot connect to DB"
		c.JSON(http.StatusInternalServerError, response)
		return
	}

	c.JSON(http.StatusOK, response)
}
