package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Vithyatharshanaa/ctf-buddy-learn/dto"
	"github.com/Vithyatharshanaa/ctf-buddy-learn/logger"
	"github.com/Vithyatharshanaa/ctf-buddy-learn/middlewares"
	"github.com/Vithyatharshanaa/ctf-buddy-learn/services"
	"github.com/Vithyatharshanaa/ctf-buddy-learn/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 提交 flag 的长度上限，挡住病态输入，与前端的提示性校验无关
const maxFlagLength = 200

// ValidateFlag 判题入口。步骤顺序固定：认证（中间件）→ 入参形状 →
// 重复判定 → 取题 → 比对 → 落库，任何一步失败立即短路
func ValidateFlag(c *gin.Context) {
	userIDAny, exists := c.Get(middlewares.ContextUserIDKey)
	if !exists {
		utils.Unauthorized(c)
		return
	}
	userID := userIDAny.(string)

	var req dto.ValidateFlagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Challenge ID and flag are required")
		return
	}
	req.Normalize()

	if req.ChallengeID == "" || req.Flag == "" {
		utils.Fail(c, http.StatusBadRequest, "Challenge ID and flag are required")
		return
	}
	// 超长直接拒绝，此时还没有发生任何题目查询
	if len(req.Flag) > maxFlagLength {
		utils.Fail(c, http.StatusBadRequest, "Invalid flag format")
		return
	}

	flag := strings.TrimSpace(req.Flag)

	result, err := services.SubmitFlag(c.Request.Context(), userID, req.ChallengeID, flag, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrChallengeNotFound):
			utils.Fail(c, http.StatusNotFound, "Challenge not found")
		case errors.Is(err, services.ErrRecordSolve):
			utils.Fail(c, http.StatusInternalServerError, "Failed to record solve")
		default:
			logger.Log.Error("flag validation failed",
				zap.String("user_id", userID),
				zap.String("challenge_id", req.ChallengeID),
				zap.Error(err))
			utils.InternalError(c)
		}
		return
	}

	switch result.Status {
	case services.SubmitAlreadySolved:
		utils.OK(c, dto.ValidateFlagResp{
			Success:       false,
			AlreadySolved: true,
			Error:         "You have already solved this challenge!",
		})
	case services.SubmitCorrect:
		utils.OK(c, dto.ValidateFlagResp{
			Success: true,
			Message: fmt.Sprintf("Correct! You earned %d points!", result.Points),
			Points:  result.Points,
		})
	default:
		utils.OK(c, dto.ValidateFlagResp{
			Success: false,
			Message: "Incorrect flag. Keep trying!",
		})
	}
}
