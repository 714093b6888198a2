package service

import (
	"context"

	"github.com/aidar/hackathon-platform/internal/domain"
	"github.com/aidar/hackathon-platform/internal/events"
	"github.com/aidar/hackathon-platform/internal/repository"
)

// JudgingService handles rubric scoring. One score per (judge, team);
// totals are clamped and recomputed server-side rather than trusted
// from the caller.
type JudgingService struct {
	scoreRepo repository.ScoreRepository
	teamRepo  repository.TeamRepository
	hub       *events.Hub
}

// NewJudgingService creates a new JudgingService
func NewJudgingService(scoreRepo repository.ScoreRepository, teamRepo repository.TeamRepository, hub *events.Hub) *JudgingService {
	return &JudgingService{
		scoreRepo: scoreRepo,
		teamRepo:  teamRepo,
		hub:       hub,
	}
}

// SubmitScore upserts the calling judge's score for a team.
// Resubmission overwrites the previous score.
func (s *JudgingService) SubmitScore(ctx context.Context, judgeID, teamID string, criteria map[string]int, feedback string) (*domain.Score, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}

	clamped, total := domain.ClampRubric(criteria)
	score := &domain.Score{
		JudgeID:  judgeID,
		TeamID:   teamID,
		Criteria: clamped,
		Total:    total,
		Feedback: feedback,
	}

	if err := s.scoreRepo.Upsert(ctx, score); err != nil {
		return nil, err
	}

	stored, err := s.scoreRepo.GetByJudgeAndTeam(ctx, judgeID, teamID)
	if err != nil {
		return nil, err
	}

	scores, err := s.scoreRepo.ListByTeam(ctx, teamID)
	if err == nil {
		s.hub.Publish(events.ScoresKey(teamID), scores)
	}

	return stored, nil
}

// GetExistingScore returns only the calling judge's own prior score
func (s *JudgingService) GetExistingScore(ctx context.Context, judgeID, teamID string) (*domain.Score, error) {
	return s.scoreRepo.GetByJudgeAndTeam(ctx, judgeID, teamID)
}
