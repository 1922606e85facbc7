package models

import (
	"time"
)

type FlagResult string

const (
	FlagResultCorrect   FlagResult = "correct"
	FlagResultWrong     FlagResult = "wrong"
	FlagResultDuplicate FlagResult = "duplicate"
)

// SubmissionLog 提交审计日志。只记录结果和上下文，
// 提交的 flag 原文一律不落库，防止正确答案经由日志泄露
type SubmissionLog struct {
	ID          uint64     `gorm:"primarykey"`
	UserID      string     `gorm:"type:char(36);not null;index"`
	ChallengeID string     `gorm:"type:char(36);not null;index"`
	Result      FlagResult `gorm:"size:12;not null"`
	IPAddress   string     `gorm:"size:45"`
	SubmittedAt time.Time  `gorm:"default:CURRENT_TIMESTAMP"`
}

func (SubmissionLog) TableName() string {
	return "submission_logs"
}
