package memstore

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"seat-reservation/internal/domain/seat"
	"seat-reservation/internal/infra"
	"seat-reservation/internal/pkg/clock"

	"github.com/google/uuid"
)

type record struct {
	mu   sync.Mutex
	seat *seat.Seat
}

// SeatStore keeps seats in memory. The registry lock guards the map itself;
// each record has its own mutex so writes to different seats never contend.
// Lock order is always registry then record.
type SeatStore struct {
	mu      sync.RWMutex
	records map[string]*record
	clock   clock.Clock
}

func NewSeatStore(clk clock.Clock) *SeatStore {
	return &SeatStore{
		records: make(map[string]*record),
		clock:   clk,
	}
}

func (s *SeatStore) lookup(number seat.SeatNumber) (*record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[number.String()]
	return r, ok
}

func (s *SeatStore) FindBySeatNumber(_ context.Context, number seat.SeatNumber) (*seat.Seat, error) {
	r, ok := s.lookup(number)
	if !ok {
		return nil, infra.WrapRepoErr("seat not found", nil, infra.KindNotFound)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seat.Clone(), nil
}

func (s *SeatStore) FindByHolder(_ context.Context, userID uuid.UUID) (*seat.Seat, error) {
	for _, r := range s.snapshot() {
		r.mu.Lock()
		held := r.seat.IsHeldBy(userID)
		var found *seat.Seat
		if held {
			found = r.seat.Clone()
		}
		r.mu.Unlock()
		if held {
			return found, nil
		}
	}
	return nil, infra.WrapRepoErr("no seat held by user", nil, infra.KindNotFound)
}

func (s *SeatStore) ListByRoom(_ context.Context, room *seat.Room) ([]*seat.Seat, error) {
	var result []*seat.Seat
	for _, r := range s.snapshot() {
		r.mu.Lock()
		if room == nil || r.seat.Room() == *room {
			result = append(result, r.seat.Clone())
		}
		r.mu.Unlock()
	}
	return result, nil
}

// ApplyHold checks availability and writes under the seat's own mutex,
// which makes it a compare-and-set for that record.
func (s *SeatStore) ApplyHold(_ context.Context, number seat.SeatNumber, userID uuid.UUID, reservedUntil time.Time) (*seat.Seat, error) {
	r, ok := s.lookup(number)
	if !ok {
		return nil, infra.WrapRepoErr("seat not found", nil, infra.KindNotFound)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.seat.IsAvailable() {
		return nil, infra.WrapRepoErr("seat is no longer available", nil, infra.KindConditionFailed)
	}
	if err := r.seat.Hold(userID, reservedUntil, s.clock.Now()); err != nil {
		return nil, infra.WrapRepoErr("failed to hold seat", err)
	}
	return r.seat.Clone(), nil
}

func (s *SeatStore) ApplyRelease(_ context.Context, number seat.SeatNumber) (*seat.Seat, error) {
	r, ok := s.lookup(number)
	if !ok {
		return nil, infra.WrapRepoErr("seat not found", nil, infra.KindNotFound)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.seat.Release(s.clock.Now())
	return r.seat.Clone(), nil
}

func (s *SeatStore) BulkReclaim(_ context.Context, now time.Time) ([]seat.SeatNumber, error) {
	var reclaimed []seat.SeatNumber
	for _, r := range s.snapshot() {
		r.mu.Lock()
		if r.seat.IsExpired(now) {
			r.seat.Release(now)
			reclaimed = append(reclaimed, r.seat.SeatNumber())
		}
		r.mu.Unlock()
	}
	return reclaimed, nil
}

func (s *SeatStore) BulkReinitialize(_ context.Context, specs []seat.RoomSpec) (int, error) {
	seats, err := seat.GenerateSeats(specs)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	records := make(map[string]*record, len(seats))
	for _, st := range seats {
		restored := seat.ReconstructSeat(st.ID(), st.SeatNumber(), st.Room(), st.Position(), nil, nil, now, now)
		records[st.SeatNumber().String()] = &record{seat: restored}
	}

	s.mu.Lock()
	deleted := len(s.records)
	s.records = records
	s.mu.Unlock()

	slog.Info("seat pool reinitialized", "deleted", deleted, "created", len(seats))
	return len(seats), nil
}

// snapshot returns records ordered by seat number. Records dropped by a
// concurrent reinitialize may still be visited; their writes are discarded.
func (s *SeatStore) snapshot() []*record {
	s.mu.RLock()
	keys := make([]string, 0, len(s.records))
	for k := range s.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*record, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.records[k])
	}
	s.mu.RUnlock()
	return out
}
