package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/aidar/hackathon-platform/internal/domain"
	"github.com/aidar/hackathon-platform/internal/events"
	"github.com/aidar/hackathon-platform/internal/repository"
)

// inviteCodeAttempts bounds regeneration on invite code collisions
const inviteCodeAttempts = 5

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 50
)

// TeamCoordinator handles team lifecycle: creation, membership,
// leadership and search. All paired-document mutations go through
// single repository transactions.
type TeamCoordinator struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
	codes    *InviteCodeGenerator
	hub      *events.Hub
}

// NewTeamCoordinator creates a new TeamCoordinator
func NewTeamCoordinator(
	teamRepo repository.TeamRepository,
	userRepo repository.UserRepository,
	codes *InviteCodeGenerator,
	hub *events.Hub,
) *TeamCoordinator {
	return &TeamCoordinator{
		teamRepo: teamRepo,
		userRepo: userRepo,
		codes:    codes,
		hub:      hub,
	}
}

// CreateTeam creates a team with the caller as its only member and
// leader. The caller must be team-less. The invite code is
// regenerated on collision, bounded by inviteCodeAttempts.
func (s *TeamCoordinator) CreateTeam(ctx context.Context, leaderID, name, theme string, tags []string, leaderPosition string) (*domain.Team, error) {
	leader, err := s.userRepo.GetByID(ctx, leaderID)
	if err != nil {
		return nil, err
	}
	if leader.HasTeam() {
		return nil, domain.ErrAlreadyMember
	}

	team := &domain.Team{
		TeamID:   uuid.NewString(),
		Name:     name,
		LeaderID: leaderID,
		Theme:    theme,
		Tags:     tags,
	}
	if team.Tags == nil {
		team.Tags = []string{}
	}

	var createErr error
	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		team.InviteCode = s.codes.Generate()
		createErr = s.teamRepo.CreateWithLeader(ctx, team, leaderPosition)
		if !errors.Is(createErr, domain.ErrInviteCodeCollision) {
			break
		}
	}
	if createErr != nil {
		return nil, createErr
	}

	return s.publishTeam(ctx, team.TeamID)
}

// JoinTeam adds the caller to the team behind the invite code.
// Joining a team the caller already belongs to is a no-op; the
// member cap is enforced inside the repository transaction.
func (s *TeamCoordinator) JoinTeam(ctx context.Context, userID, inviteCode, position string) (*domain.Team, error) {
	team, err := s.teamRepo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, err
	}

	if team.HasMember(userID) {
		return team, nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.HasTeam() {
		return nil, domain.ErrAlreadyMember
	}

	if err := s.teamRepo.AddMember(ctx, team.TeamID, userID, position); err != nil {
		return nil, err
	}

	return s.publishTeam(ctx, team.TeamID)
}

// LeaveTeam removes the caller from their current team. A leader with
// other members must transfer leadership first; a sole member's leave
// marks the team disbanded (teams are never hard-deleted). Both rules
// are applied by the repository under the team row lock, so a join
// committing after any snapshot read cannot flip the outcome.
func (s *TeamCoordinator) LeaveTeam(ctx context.Context, userID string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.HasTeam() {
		return domain.ErrNotFound
	}

	teamID := *user.TeamID
	if err := s.teamRepo.RemoveMember(ctx, teamID, userID); err != nil {
		return err
	}

	_, err = s.publishTeam(ctx, teamID)
	return err
}

// TransferLeadership hands team leadership to another current member.
// The snapshot checks are a fast path; the repository re-verifies the
// target's membership in the update itself.
func (s *TeamCoordinator) TransferLeadership(ctx context.Context, leaderID, newLeaderID string) (*domain.Team, error) {
	user, err := s.userRepo.GetByID(ctx, leaderID)
	if err != nil {
		return nil, err
	}
	if !user.HasTeam() {
		return nil, domain.ErrNotFound
	}

	team, err := s.teamRepo.GetByID(ctx, *user.TeamID)
	if err != nil {
		return nil, err
	}
	if !team.IsLeader(leaderID) {
		return nil, domain.ErrNotLeader
	}
	if !team.HasMember(newLeaderID) {
		return nil, domain.ErrUserNotFound
	}

	if err := s.teamRepo.UpdateLeader(ctx, team.TeamID, newLeaderID); err != nil {
		return nil, err
	}

	return s.publishTeam(ctx, team.TeamID)
}

// SearchTeams runs a bounded prefix query over normalized team names
func (s *TeamCoordinator) SearchTeams(ctx context.Context, prefix string, limit int) ([]*domain.TeamSummary, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	return s.teamRepo.SearchByPrefix(ctx, prefix, limit)
}

// GetTeam retrieves a team with all members
func (s *TeamCoordinator) GetTeam(ctx context.Context, teamID string) (*domain.Team, error) {
	return s.teamRepo.GetByID(ctx, teamID)
}

// GetTeamForUser retrieves the caller's current team
func (s *TeamCoordinator) GetTeamForUser(ctx context.Context, userID string) (*domain.Team, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasTeam() {
		return nil, domain.ErrTeamNotFound
	}
	return s.teamRepo.GetByID(ctx, *user.TeamID)
}

// publishTeam reloads committed team state and fans it out to
// subscribers
func (s *TeamCoordinator) publishTeam(ctx context.Context, teamID string) (*domain.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	s.hub.Publish(events.TeamKey(teamID), team)
	return team, nil
}
