package utils

import (
	"net/http"

	"github.com/Vithyatharshanaa/ctf-buddy-learn/dto"
	"github.com/gin-gonic/gin"
)

// Fail 错误出口，统一 {success:false, error:...} 形状
func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, dto.ValidateFlagResp{Success: false, Error: msg})
}

func Unauthorized(c *gin.Context) {
	Fail(c, http.StatusUnauthorized, "Unauthorized")
}

func InternalError(c *gin.Context) {
	Fail(c, http.StatusInternalServerError, "Internal server error")
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}
