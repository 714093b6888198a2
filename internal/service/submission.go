package service

import (
	"context"

	"github.com/aidar/hackathon-platform/internal/domain"
	"github.com/aidar/hackathon-platform/internal/events"
	"github.com/aidar/hackathon-platform/internal/repository"
)

// SubmissionService drives the idea → prototype submission funnel.
// Draft edits go through the Autosaver; explicit submits write payload
// and status together and freeze the phase from further autosave.
type SubmissionService struct {
	subRepo  repository.SubmissionRepository
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
	hub      *events.Hub

	autosaver *Autosaver
}

// NewSubmissionService creates a new SubmissionService and its
// autosave debouncer
func NewSubmissionService(
	subRepo repository.SubmissionRepository,
	teamRepo repository.TeamRepository,
	userRepo repository.UserRepository,
	hub *events.Hub,
	autosaver func(DraftWriter) *Autosaver,
) *SubmissionService {
	s := &SubmissionService{
		subRepo:  subRepo,
		teamRepo: teamRepo,
		userRepo: userRepo,
		hub:      hub,
	}
	s.autosaver = autosaver(s.writeDraft)
	return s
}

// Autosaver exposes the debouncer for shutdown flushing
func (s *SubmissionService) Autosaver() *Autosaver {
	return s.autosaver
}

// QueueIdeaDraft validates the caller and hands an idea draft edit to
// the debouncer. Payload edits are leader-only.
func (s *SubmissionService) QueueIdeaDraft(ctx context.Context, userID string, payload domain.IdeaPayload) error {
	team, err := s.requireLeader(ctx, userID)
	if err != nil {
		return err
	}
	if team.IsSubmitted() {
		// Submitted: autosave attempts are ignored
		return nil
	}

	s.autosaver.Edit(team.TeamID, domain.PhaseIdea, payload)
	return nil
}

// QueuePrototypeDraft hands a prototype draft edit to the debouncer
func (s *SubmissionService) QueuePrototypeDraft(ctx context.Context, userID string, payload domain.PrototypePayload) error {
	team, err := s.requireLeader(ctx, userID)
	if err != nil {
		return err
	}
	if team.PhaseStatus(domain.PhasePrototype) == domain.SubmissionSubmitted {
		return nil
	}

	s.autosaver.Edit(team.TeamID, domain.PhasePrototype, payload)
	return nil
}

// SubmitIdea explicitly submits the idea phase: payload and status are
// written together, pending autosaves for the phase are dropped
func (s *SubmissionService) SubmitIdea(ctx context.Context, userID string, payload domain.IdeaPayload) (*domain.Submission, error) {
	team, err := s.requireLeader(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.subRepo.Submit(ctx, team.TeamID, domain.PhaseIdea, payload); err != nil {
		return nil, err
	}
	s.autosaver.Discard(team.TeamID, domain.PhaseIdea)

	return s.publishSubmission(ctx, team.TeamID)
}

// SubmitPrototype explicitly submits the prototype phase. Requires the
// team to be shortlisted.
func (s *SubmissionService) SubmitPrototype(ctx context.Context, userID string, payload domain.PrototypePayload) (*domain.Submission, error) {
	team, err := s.requireLeader(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !team.Shortlisted {
		return nil, domain.ErrNotEligible
	}

	if err := s.subRepo.Submit(ctx, team.TeamID, domain.PhasePrototype, payload); err != nil {
		return nil, err
	}
	s.autosaver.Discard(team.TeamID, domain.PhasePrototype)

	return s.publishSubmission(ctx, team.TeamID)
}

// GetSubmission returns the submission read model; an already
// submitted team is served as submitted, skipping the draft cycle
func (s *SubmissionService) GetSubmission(ctx context.Context, teamID string) (*domain.Submission, error) {
	return s.subRepo.Get(ctx, teamID)
}

// SetShortlisted grants or revokes the shortlist flag (admin only,
// gated at the route)
func (s *SubmissionService) SetShortlisted(ctx context.Context, teamID string, shortlisted bool) error {
	if err := s.teamRepo.SetShortlisted(ctx, teamID, shortlisted); err != nil {
		return err
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	s.hub.Publish(events.TeamKey(teamID), team)
	return nil
}

// writeDraft is the DraftWriter behind the Autosaver: the actual
// persistence of a coalesced draft payload
func (s *SubmissionService) writeDraft(ctx context.Context, teamID string, phase domain.SubmissionPhase, payload any) (bool, error) {
	saved, err := s.subRepo.SaveDraft(ctx, teamID, phase, payload)
	if err != nil || !saved {
		return saved, err
	}

	sub, err := s.subRepo.Get(ctx, teamID)
	if err == nil {
		s.hub.Publish(events.TeamKey(teamID), sub)
	}
	return true, nil
}

// requireLeader resolves the caller's team and checks the leader-only
// edit gate
func (s *SubmissionService) requireLeader(ctx context.Context, userID string) (*domain.Team, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasTeam() {
		return nil, domain.ErrTeamNotFound
	}

	team, err := s.teamRepo.GetByID(ctx, *user.TeamID)
	if err != nil {
		return nil, err
	}
	if !team.IsLeader(userID) {
		return nil, domain.ErrNotLeader
	}

	return team, nil
}

func (s *SubmissionService) publishSubmission(ctx context.Context, teamID string) (*domain.Submission, error) {
	sub, err := s.subRepo.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}
	s.hub.Publish(events.TeamKey(teamID), sub)
	return sub, nil
}
