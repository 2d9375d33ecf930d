package hold

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotActive       = errors.New("hold is not active")
	ErrInvalidState    = errors.New("invalid hold state")
	ErrInvalidDuration = errors.New("hold duration must be positive")
)

// DefaultDuration is the reservation window applied when no override is
// configured: ten days from creation.
const DefaultDuration = 240 * time.Hour

// Hold is a time-boxed manual reservation of one stock unit for one
// beneficiary. At most one active hold may exist per stock unit; the
// storage layer enforces that invariant, the entity enforces the legal
// state transitions.
type Hold struct {
	id          uuid.UUID
	stockUnitID uuid.UUID
	lotID       uuid.UUID
	partnerID   uuid.UUID
	createdBy   uuid.UUID
	state       State
	note        Note
	createdAt   time.Time
	expiresAt   time.Time
	updatedAt   time.Time
}

// NewHold starts a hold at now for the given duration. The caller supplies
// now explicitly so expiry math stays deterministic under a mocked clock.
func NewHold(stockUnitID, lotID, partnerID, createdBy uuid.UUID, note Note, now time.Time, duration time.Duration) (*Hold, error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}
	return &Hold{
		id:          uuid.New(),
		stockUnitID: stockUnitID,
		lotID:       lotID,
		partnerID:   partnerID,
		createdBy:   createdBy,
		state:       StateActive,
		note:        note,
		createdAt:   now,
		expiresAt:   now.Add(duration),
	}, nil
}

func ReconstructHold(
	id, stockUnitID, lotID, partnerID, createdBy uuid.UUID,
	state State,
	note Note,
	createdAt, expiresAt, updatedAt time.Time,
) *Hold {
	return &Hold{
		id:          id,
		stockUnitID: stockUnitID,
		lotID:       lotID,
		partnerID:   partnerID,
		createdBy:   createdBy,
		state:       state,
		note:        note,
		createdAt:   createdAt,
		expiresAt:   expiresAt,
		updatedAt:   updatedAt,
	}
}

func (h *Hold) IsActive() bool {
	return h.state == StateActive
}

// HasExpired reports whether the hold is logically past its window,
// regardless of whether the sweep has flipped its state yet.
func (h *Hold) HasExpired(now time.Time) bool {
	return !now.Before(h.expiresAt)
}

// DaysRemaining is derived, never persisted. Negative means overdue but
// not yet swept; callers must treat that as already expired.
func (h *Hold) DaysRemaining(now time.Time) int {
	return int(math.Floor(h.expiresAt.Sub(now).Hours() / 24))
}

// Cancel transitions active → cancelled. Cancelling a hold that is already
// terminal is a no-op; the second return value reports whether state changed.
func (h *Hold) Cancel() bool {
	if h.state != StateActive {
		return false
	}
	h.state = StateCancelled
	return true
}

// Renew restarts the window from now. Only active holds can be renewed.
func (h *Hold) Renew(now time.Time, duration time.Duration) error {
	if h.state != StateActive {
		return ErrNotActive
	}
	if duration <= 0 {
		return ErrInvalidDuration
	}
	h.createdAt = now
	h.expiresAt = now.Add(duration)
	return nil
}

// Expire transitions active → expired. Only meaningful when the window has
// passed; the sweep decides that by expires_at, this just guards the state.
func (h *Hold) Expire() error {
	if h.state != StateActive {
		return ErrNotActive
	}
	h.state = StateExpired
	return nil
}

func (h *Hold) ID() uuid.UUID          { return h.id }
func (h *Hold) StockUnitID() uuid.UUID { return h.stockUnitID }
func (h *Hold) LotID() uuid.UUID       { return h.lotID }
func (h *Hold) PartnerID() uuid.UUID   { return h.partnerID }
func (h *Hold) CreatedBy() uuid.UUID   { return h.createdBy }
func (h *Hold) State() State           { return h.state }
func (h *Hold) Note() Note             { return h.note }
func (h *Hold) CreatedAt() time.Time   { return h.createdAt }
func (h *Hold) ExpiresAt() time.Time   { return h.expiresAt }
func (h *Hold) UpdatedAt() time.Time   { return h.updatedAt }
