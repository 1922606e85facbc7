package controllers

import (
	"github.com/Vithyatharshanaa/ctf-buddy-learn/dto"
	"github.com/Vithyatharshanaa/ctf-buddy-learn/middlewares"
	"github.com/Vithyatharshanaa/ctf-buddy-learn/services"
	"github.com/Vithyatharshanaa/ctf-buddy-learn/utils"
	"github.com/gin-gonic/gin"
)

// GetMySolves 当前用户的解题记录，倒序，附总分
func GetMySolves(c *gin.Context) {
	userIDAny, exists := c.Get(middlewares.ContextUserIDKey)
	if !exists {
		utils.Unauthorized(c)
		return
	}
	userID := userIDAny.(string)

	solves, err := services.ListUserSolves(c.Request.Context(), userID)
	if err != nil {
		utils.InternalError(c)
		return
	}

	var totalPoints uint
	items := make([]dto.SolveItemResp, 0, len(solves))
	for _, s := range solves {
		totalPoints += s.Challenge.Points
		items = append(items, dto.SolveItemResp{
			ID:       s.ID,
			SolvedAt: s.SolvedAt.Format("2006-01-02 15:04:05"),
			Challenge: dto.SolvedChallengeResp{
				ID:         s.Challenge.ID,
				Title:      s.Challenge.Title,
				Category:   string(s.Challenge.Category),
				Difficulty: string(s.Challenge.Difficulty),
				Points:     s.Challenge.Points,
			},
		})
	}

	utils.OK(c, dto.ProfileSolvesResp{
		TotalPoints: totalPoints,
		SolvedCount: len(items),
		Solves:      items,
	})
}
