package service

import (
	"context"

	"peer-support-be/internal/dto"
	"peer-support-be/internal/repository/contract"
	"peer-support-be/internal/repository/memory"
)

const leaderboardLimit = 25

type ILeaderboardService interface {
	Leaderboard(ctx context.Context) (*dto.LeaderboardResponse, error)
}

type leaderboardService struct {
	sessionRepo contract.SessionRepository
	cache       *memory.LeaderboardCache
}

func NewLeaderboardService(sessionRepo contract.SessionRepository, cache *memory.LeaderboardCache) ILeaderboardService {
	return &leaderboardService{
		sessionRepo: sessionRepo,
		cache:       cache,
	}
}

func (s *leaderboardService) Leaderboard(ctx context.Context) (*dto.LeaderboardResponse, error) {
	if rows, found := s.cache.Get(); found {
		return toLeaderboardResponse(rows, true), nil
	}

	rows, err := s.sessionRepo.Leaderboard(ctx, leaderboardLimit)
	if err != nil {
		return nil, err
	}
	s.cache.Save(rows)

	return toLeaderboardResponse(rows, false), nil
}

func toLeaderboardResponse(rows []contract.LeaderboardRow, cached bool) *dto.LeaderboardResponse {
	entries := make([]dto.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, dto.LeaderboardEntry{
			Rank:         i + 1,
			UserId:       row.UserId,
			FullName:     row.FullName,
			SkillLevel:   row.SkillLevel,
			SessionCount: int(row.SessionCount),
			AverageScore: row.AverageScore,
		})
	}
	return &dto.LeaderboardResponse{Entries: entries, Cached: cached}
}
