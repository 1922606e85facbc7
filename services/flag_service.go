package services

import (
	"context"
	"errors"

	"github.com/Vithyatharshanaa/ctf-buddy-learn/database"
	"github.com/Vithyatharshanaa/ctf-buddy-learn/logger"
	"github.com/Vithyatharshanaa/ctf-buddy-learn/models"
	"github.com/Vithyatharshanaa/ctf-buddy-learn/monitoring"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SubmitStatus int

const (
	SubmitCorrect SubmitStatus = iota
	SubmitIncorrect
	SubmitAlreadySolved
)

var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrRecordSolve       = errors.New("failed to record solve")
)

type SubmitResult struct {
	Status SubmitStatus
	Points uint
	Title  string
}

// SubmitFlag 判题核心。flag 已由调用方裁剪两端空白，比较严格区分大小写。
// 每个 (user, challenge) 至多产生一条解题记录：这里的存在性检查只拦常规
// 重复提交，并发竞争由 user_solves 的联合唯一索引兜底
func SubmitFlag(ctx context.Context, userID, challengeID, flag, clientIP string) (*SubmitResult, error) {
	db := database.DB.WithContext(ctx)

	// 已解过直接返回，无副作用
	var existing models.UserSolve
	err := db.Select("id").
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		First(&existing).Error
	if err == nil {
		logSubmission(userID, challengeID, models.FlagResultDuplicate, clientIP)
		monitoring.FlagSubmissions.WithLabelValues(string(models.FlagResultDuplicate)).Inc()
		return &SubmitResult{Status: SubmitAlreadySolved}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// flag 列只在这条特权路径上被读取，任何响应体都不会包含它
	var challenge models.Challenge
	err = db.Select("id", "title", "points", "flag").
		Where("id = ?", challengeID).
		First(&challenge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChallengeNotFound
	}
	if err != nil {
		return nil, err
	}

	if flag != challenge.Flag {
		logSubmission(userID, challengeID, models.FlagResultWrong, clientIP)
		monitoring.FlagSubmissions.WithLabelValues(string(models.FlagResultWrong)).Inc()
		return &SubmitResult{Status: SubmitIncorrect}, nil
	}

	solve := models.UserSolve{
		UserID:      userID,
		ChallengeID: challengeID,
	}
	if err := db.Create(&solve).Error; err != nil {
		// 并发的重复提交会在这里撞上唯一索引，绝不可二次计分
		logger.Log.Error("solve insert failed",
			zap.String("user_id", userID),
			zap.String("challenge_id", challengeID),
			zap.Bool("duplicate", errors.Is(err, gorm.ErrDuplicatedKey)),
			zap.Error(err))
		return nil, ErrRecordSolve
	}

	logSubmission(userID, challengeID, models.FlagResultCorrect, clientIP)
	monitoring.FlagSubmissions.WithLabelValues(string(models.FlagResultCorrect)).Inc()
	logger.Log.Info("challenge solved",
		zap.String("user_id", userID),
		zap.String("challenge_id", challengeID),
		zap.String("title", challenge.Title),
		zap.Uint("points", challenge.Points))

	return &SubmitResult{
		Status: SubmitCorrect,
		Points: challenge.Points,
		Title:  challenge.Title,
	}, nil
}

// logSubmission 审计日志尽力而为，失败只告警不影响判题结果。
// 注意这里从不写入提交的 flag 原文
func logSubmission(userID, challengeID string, result models.FlagResult, clientIP string) {
	entry := models.SubmissionLog{
		UserID:      userID,
		ChallengeID: challengeID,
		Result:      result,
		IPAddress:   clientIP,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		logger.Log.Warn("submission audit write failed",
			zap.String("user_id", userID),
			zap.String("challenge_id", challengeID),
			zap.Error(err))
	}
}
