package dto

import (
	"github.com/google/uuid"
)

type LeaderboardEntry struct {
	Rank         int       `json:"rank"`
	UserId       uuid.UUID `json:"user_id"`
	FullName     string    `json:"full_name"`
	SkillLevel   string    `json:"skill_level"`
	SessionCount int       `json:"session_count"`
	AverageScore float64   `json:"average_score"`
}

type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
	Cached  bool               `json:"cached"`
}
