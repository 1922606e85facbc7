package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Vithyatharshanaa/ctf-buddy-learn/dto"
	"github.com/Vithyatharshanaa/ctf-buddy-learn/middlewares"
	"github.com/Vithyatharshanaa/ctf-buddy-learn/services"
	"github.com/Vithyatharshanaa/ctf-buddy-learn/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListChallenges 题目浏览列表。匿名可访问；带有效 Token 时
// 逐项标注 solved。响应里永远没有 flag
func ListChallenges(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))
	difficulty := strings.TrimSpace(c.Query("difficulty"))

	challenges, err := services.ListChallenges(c.Request.Context(), category, difficulty)
	if err != nil {
		utils.InternalError(c)
		return
	}

	solved := map[string]bool{}
	if userIDAny, ok := c.Get(middlewares.ContextUserIDKey); ok {
		if s, err := services.SolvedSet(c.Request.Context(), userIDAny.(string)); err == nil {
			solved = s
		}
	}

	items := make([]dto.ChallengeItemResp, 0, len(challenges))
	for _, ch := range challenges {
		items = append(items, dto.ChallengeItemResp{
			ID:          ch.ID,
			Title:       ch.Title,
			Description: ch.Description,
			Category:    string(ch.Category),
			Difficulty:  string(ch.Difficulty),
			Points:      ch.Points,
			Hint:        ch.Hint,
			Solved:      solved[ch.ID],
		})
	}

	utils.OK(c, gin.H{
		"total":      len(items),
		"challenges": items,
	})
}

// GetChallengeDetail 单题详情
func GetChallengeDetail(c *gin.Context) {
	id := c.Param("id")

	challenge, err := services.GetChallenge(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Fail(c, http.StatusNotFound, "Challenge not found")
		return
	}
	if err != nil {
		utils.InternalError(c)
		return
	}

	solved := false
	if userIDAny, ok := c.Get(middlewares.ContextUserIDKey); ok {
		if s, err := services.SolvedSet(c.Request.Context(), userIDAny.(string)); err == nil {
			solved = s[challenge.ID]
		}
	}

	utils.OK(c, dto.ChallengeItemResp{
		ID:          challenge.ID,
		Title:       challenge.Title,
		Description: challenge.Description,
		Category:    string(challenge.Category),
		Difficulty:  string(challenge.Difficulty),
		Points:      challenge.Points,
		Hint:        challenge.Hint,
		Solved:      solved,
	})
}
