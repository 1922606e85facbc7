package dto

import "strings"

// ========== 请求 DTO ==========

type ValidateFlagReq struct {
	ChallengeID string `json:"challengeId"`
	Flag        string `json:"flag"`

	// 兼容 snake_case 旧客户端
	ChallengeIDSnake string `json:"challenge_id"`
}

// Normalize 归一化别名。Flag 原文保持不动，
// 长度校验要作用在裁剪前的原始输入上
func (r *ValidateFlagReq) Normalize() {
	if r.ChallengeID == "" && r.ChallengeIDSnake != "" {
		r.ChallengeID = r.ChallengeIDSnake
	}
	r.ChallengeID = strings.TrimSpace(r.ChallengeID)
}

// ========== 响应 DTO ==========

// ValidateFlagResp 与前端约定的判题响应，四种结局共用一个结构
type ValidateFlagResp struct {
	Success       bool   `json:"success"`
	Message       string `json:"message,omitempty"`
	Error         string `json:"error,omitempty"`
	AlreadySolved bool   `json:"alreadySolved,omitempty"`
	Points        uint   `json:"points,omitempty"`
}

type ChallengeItemResp struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Difficulty  string  `json:"difficulty"`
	Points      uint    `json:"points"`
	Hint        *string `json:"hint"`
	Solved      bool    `json:"solved"`
}

type SolvedChallengeResp struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	Points     uint   `json:"points"`
}

type SolveItemResp struct {
	ID        string              `json:"id"`
	SolvedAt  string              `json:"solved_at"`
	Challenge SolvedChallengeResp `json:"challenge"`
}

type ProfileSolvesResp struct {
	TotalPoints uint            `json:"total_points"`
	SolvedCount int             `json:"solved_count"`
	Solves      []SolveItemResp `json:"solves"`
}
