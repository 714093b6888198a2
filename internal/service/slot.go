package service

import (
	"context"
	"time"

	"github.com/aidar/hackathon-platform/internal/domain"
	"github.com/aidar/hackathon-platform/internal/events"
	"github.com/aidar/hackathon-platform/internal/repository"
)

// SlotAllocator arbitrates the shared pitch slot inventory. Booking is
// a transactional read-check-write in the repository, so a slot never
// ends up with two occupants.
type SlotAllocator struct {
	slotRepo repository.SlotRepository
	userRepo repository.UserRepository
	hub      *events.Hub
	now      func() time.Time
}

// NewSlotAllocator creates a new SlotAllocator
func NewSlotAllocator(slotRepo repository.SlotRepository, userRepo repository.UserRepository, hub *events.Hub) *SlotAllocator {
	return &SlotAllocator{
		slotRepo: slotRepo,
		userRepo: userRepo,
		hub:      hub,
		now:      time.Now,
	}
}

// ListSlots returns the full inventory with read-side countdown
// derivation; no write side effects
func (s *SlotAllocator) ListSlots(ctx context.Context) ([]domain.SlotView, error) {
	slots, err := s.slotRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]domain.SlotView, 0, len(slots))
	for _, slot := range slots {
		views = append(views, slot.View(now))
	}
	return views, nil
}

// BookSlot books the slot for the caller's team. A team that already
// holds a slot swaps to the new one in the same transaction.
func (s *SlotAllocator) BookSlot(ctx context.Context, userID, slotID string) (*domain.PitchSlot, error) {
	teamID, err := s.requireTeam(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.slotRepo.Book(ctx, slotID, teamID); err != nil {
		return nil, err
	}

	s.publishSlots(ctx)

	return s.slotRepo.GetByID(ctx, slotID)
}

// ReleaseSlot frees the slot held by the caller's team
func (s *SlotAllocator) ReleaseSlot(ctx context.Context, userID string) error {
	teamID, err := s.requireTeam(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.slotRepo.Release(ctx, teamID); err != nil {
		return err
	}

	s.publishSlots(ctx)
	return nil
}

// SeedSlots creates the fixed slot inventory (admin only, gated at the
// route)
func (s *SlotAllocator) SeedSlots(ctx context.Context, slots []domain.PitchSlot) error {
	if err := s.slotRepo.Seed(ctx, slots); err != nil {
		return err
	}

	s.publishSlots(ctx)
	return nil
}

func (s *SlotAllocator) requireTeam(ctx context.Context, userID string) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !user.HasTeam() {
		return "", domain.ErrTeamNotFound
	}
	return *user.TeamID, nil
}

func (s *SlotAllocator) publishSlots(ctx context.Context) {
	views, err := s.ListSlots(ctx)
	if err != nil {
		return
	}
	s.hub.Publish(events.SlotsKey, views)
}
