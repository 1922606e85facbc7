package controllers

import (
	"net/http"

	"github.com/Vithyatharshanaa/ctf-buddy-learn/database"
	"github.com/gin-gonic/gin"
)

// HealthCheck 存活探针，顺带 ping 一次数据库
func HealthCheck(c *gin.Context) {
	sqlDB, err := database.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
