package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserSolve 解题记录。(user_id, challenge_id) 上的联合唯一索引是
// 防止并发重复提交双重得分的最后一道防线，应用层的存在性检查只是快速路径
type UserSolve struct {
	ID          string    `gorm:"type:char(36);primarykey" json:"id"`
	UserID      string    `gorm:"type:char(36);not null;uniqueIndex:uk_user_challenge" json:"user_id"`
	ChallengeID string    `gorm:"type:char(36);not null;uniqueIndex:uk_user_challenge" json:"challenge_id"`
	Challenge   Challenge `gorm:"foreignKey:ChallengeID" json:"challenge,omitempty"`
	SolvedAt    time.Time `gorm:"autoCreateTime" json:"solved_at"`
}

func (UserSolve) TableName() string {
	return "user_solves"
}

func (s *UserSolve) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return
}
