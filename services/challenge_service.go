package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Vithyatharshanaa/ctf-buddy-learn/database"
	"github.com/Vithyatharshanaa/ctf-buddy-learn/logger"
	"github.com/Vithyatharshanaa/ctf-buddy-learn/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 对外读取题目时的列白名单，flag 永远不在其中
var publicChallengeColumns = []string{"id", "title", "description", "category", "difficulty", "points", "hint"}

var ChallengeListTTL = 30 * time.Second

// ListChallenges 题目列表，难度升序、分值升序，可按分类/难度过滤。
// 未过滤的全量列表走 Redis 缓存，短 TTL，写入尽力而为
func ListChallenges(ctx context.Context, category, difficulty string) ([]models.Challenge, error) {
	const cacheKey = "challenges:list:all"
	cacheable := category == "" && difficulty == ""

	if cacheable && database.RDB != nil {
		if raw, err := database.RDB.Get(ctx, cacheKey).Result(); err == nil {
			var cached []models.Challenge
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	db := database.DB.WithContext(ctx).
		Model(&models.Challenge{}).
		Select(publicChallengeColumns)
	if category != "" {
		db = db.Where("category = ?", category)
	}
	if difficulty != "" {
		db = db.Where("difficulty = ?", difficulty)
	}

	var challenges []models.Challenge
	if err := db.Order("difficulty asc").Order("points asc").Find(&challenges).Error; err != nil {
		return nil, err
	}

	if cacheable && database.RDB != nil {
		if raw, err := json.Marshal(challenges); err == nil {
			if err := database.RDB.Set(ctx, cacheKey, raw, ChallengeListTTL).Err(); err != nil {
				logger.Log.Warn("challenge list cache write failed", zap.Error(err))
			}
		}
	}

	return challenges, nil
}

// GetChallenge 单题详情，同样不带 flag 列
func GetChallenge(ctx context.Context, id string) (*models.Challenge, error) {
	var challenge models.Challenge
	err := database.DB.WithContext(ctx).
		Select(publicChallengeColumns).
		Where("id = ?", id).
		First(&challenge).Error
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

// SolvedSet 返回用户已解题目的 ID 集合，用于列表标注
func SolvedSet(ctx context.Context, userID string) (map[string]bool, error) {
	var ids []string
	err := database.DB.WithContext(ctx).
		Model(&models.UserSolve{}).
		Where("user_id = ?", userID).
		Pluck("challenge_id", &ids).Error
	if err != nil {
		return nil, err
	}

	solved := make(map[string]bool, len(ids))
	for _, id := range ids {
		solved[id] = true
	}
	return solved, nil
}

// ListUserSolves 用户解题记录，按解题时间倒序，附带题目摘要
func ListUserSolves(ctx context.Context, userID string) ([]models.UserSolve, error) {
	var solves []models.UserSolve
	err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Challenge", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "category", "difficulty", "points")
		}).
		Order("solved_at desc").
		Find(&solves).Error
	if err != nil {
		return nil, err
	}
	return solves, nil
}
