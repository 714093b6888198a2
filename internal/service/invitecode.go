package service

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// inviteCodeAlphabet excludes visually confusable glyphs (I, L, O, 0, 1)
const inviteCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// InviteCodeLength is the length of a human-shareable invite code
const InviteCodeLength = 6

// InviteCodeGenerator produces random invite codes with its own
// seeded random source
type InviteCodeGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewInviteCodeGenerator creates a new InviteCodeGenerator
func NewInviteCodeGenerator() *InviteCodeGenerator {
	return &InviteCodeGenerator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate returns a 6-character code drawn uniformly from the
// unambiguous alphabet. Uniqueness is enforced by the store: on a
// collision the caller regenerates and retries.
func (g *InviteCodeGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var sb strings.Builder
	sb.Grow(InviteCodeLength)
	for i := 0; i < InviteCodeLength; i++ {
		sb.WriteByte(inviteCodeAlphabet[g.rng.Intn(len(inviteCodeAlphabet))])
	}
	return sb.String()
}
