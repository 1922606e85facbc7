package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChallengeCategory string
type ChallengeDifficulty string

const (
	CategoryWeb       ChallengeCategory = "web"
	CategoryCrypto    ChallengeCategory = "crypto"
	CategoryForensics ChallengeCategory = "forensics"
	CategoryLinux     ChallengeCategory = "linux"
	CategoryReverse   ChallengeCategory = "reverse"

	DifficultyEasy   ChallengeDifficulty = "easy"
	DifficultyMedium ChallengeDifficulty = "medium"
	DifficultyHard   ChallengeDifficulty = "hard"
)

// Challenge 题目表。Flag 列建好后不可变（<-:create），且不参与 JSON 序列化，
// 普通读取路径必须显式排除该列
type Challenge struct {
	ID          string              `gorm:"type:char(36);primarykey" json:"id"`
	Title       string              `gorm:"size:100;unique;not null" json:"title"`
	Description string              `gorm:"type:text;not null" json:"description"`
	Category    ChallengeCategory   `gorm:"size:20;not null;index" json:"category"`
	Difficulty  ChallengeDifficulty `gorm:"size:10;default:'medium'" json:"difficulty"`
	Points      uint                `gorm:"not null" json:"points"`
	Hint        *string             `gorm:"type:text" json:"hint,omitempty"`
	Flag        string              `gorm:"size:255;not null;<-:create" json:"-"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func (Challenge) TableName() string {
	return "challenges"
}

func (ch *Challenge) BeforeCreate(tx *gorm.DB) (err error) {
	if ch.ID == "" {
		ch.ID = uuid.NewString()
	}
	return
}
