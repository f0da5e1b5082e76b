//go:build unit

package commands

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"seat-reservation/internal/domain/seat"
	"seat-reservation/internal/infra"
	"seat-reservation/internal/infra/memstore"
	"seat-reservation/internal/pkg/clock"
	"seat-reservation/internal/pkg/errs"
	"seat-reservation/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.SeatEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event shared.SeatEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []shared.SeatEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]shared.SeatEventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type busyLocker struct{}

func (busyLocker) TryLock(context.Context, uuid.UUID) (func(context.Context) error, bool, error) {
	return nil, false, nil
}

// brokenRegistry fails every call with a DB failure.
type brokenRegistry struct {
	shared.SeatRegistry
}

func (brokenRegistry) FindBySeatNumber(context.Context, seat.SeatNumber) (*seat.Seat, error) {
	return nil, infra.WrapRepoErr("connection refused", assert.AnError)
}

func (brokenRegistry) BulkReinitialize(context.Context, []seat.RoomSpec) (int, error) {
	return 0, infra.WrapRepoErr("connection refused", assert.AnError)
}

type fixture struct {
	store     *memstore.SeatStore
	clock     *clock.MockClock
	publisher *recordingPublisher
	commands  SeatCommands
}

func newFixture(t *testing.T, specs ...seat.RoomSpec) *fixture {
	t.Helper()
	if len(specs) == 0 {
		specs = []seat.RoomSpec{{Room: seat.RoomWhite, Count: 6}, {Room: seat.RoomStaff, Count: 2}}
	}
	clk := clock.NewMockClock(baseTime)
	store := memstore.NewSeatStore(clk)
	_, err := store.BulkReinitialize(context.Background(), specs)
	require.NoError(t, err)

	pub := &recordingPublisher{}
	return &fixture{
		store:     store,
		clock:     clk,
		publisher: pub,
		commands:  NewSeatCommands(store, shared.NewNopUserLocker(), pub, clk, seat.DefaultHourBounds()),
	}
}

func (f *fixture) seat(t *testing.T, number string) *seat.Seat {
	t.Helper()
	n, err := seat.NewSeatNumber(number)
	require.NoError(t, err)
	s, err := f.store.FindBySeatNumber(context.Background(), n)
	require.NoError(t, err)
	return s
}

func TestSeatCommands_Scenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userA, userB, userC, userD := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	// seed: W02 held by A for two hours
	_, err := f.commands.Reserve(ctx, ReserveSeatInput{SeatNumber: "W02", UserID: userA, Hours: 2})
	require.NoError(t, err)

	t.Run("1. 空席の予約は成功", func(t *testing.T) {
		view, err := f.commands.Reserve(ctx, ReserveSeatInput{SeatNumber: "W01", UserID: userB, Hours: 3})
		require.NoError(t, err)
		assert.Equal(t, "W01", view.SeatNumber)
		assert.False(t, view.IsAvailable)
		require.NotNil(t, view.CurrentUserID)
		assert.Equal(t, userB, *view.CurrentUserID)
		assert.Equal(t, baseTime.Add(3*time.Hour), *view.ReservedUntil)
		assert.Equal(t, 180, *view.RemainingMinutes)

		w01 := f.seat(t, "W01")
		assert.True(t, w01.IsHeldBy(userB))
	})

	t.Run("2. 既に予約済みのユーザーは別の座席を予約できない", func(t *testing.T) {
		_, err := f.commands.Reserve(ctx, ReserveSeatInput{SeatNumber: "W03", UserID: userA, Hours: 1})
		require.True(t, errs.Is(err, errs.ErrAlreadyHasReservation), "got %v", err)

		var already *AlreadyHasReservationError
		require.ErrorAs(t, err, &already)
		assert.Equal(t, "W02", already.SeatNumber)
		assert.True(t, f.seat(t, "W03").IsAvailable())
	})

	t.Run("3. 使用中の座席は予約できない", func(t *testing.T) {
		_, err := f.commands.Reserve(ctx, ReserveSeatInput{SeatNumber: "W02", UserID: userC, Hours: 1})
		assert.True(t, errs.Is(err, errs.ErrSeatOccupied), "got %v", err)

		// retrying does not change the outcome
		_, err = f.commands.Reserve(ctx, ReserveSeatInput{SeatNumber: "W02", UserID: userC, Hours: 1})
		assert.True(t, errs.Is(err, errs.ErrSeatOccupied), "got %v", err)
		assert.True(t, f.seat(t, "W02").IsHeldBy(userA))
	})

	t.Run("4. 期限切れの座席は回収される", func(t *testing.T) {
		f.clock.Add(2*time.Hour + time.Minute)

		reclaimed, err := f.store.BulkReclaim(ctx, f.clock.Now())
		require.NoError(t, err)
		var numbers []string
		for _, n := range reclaimed {
			numbers = append(numbers, n.String())
		}
		assert.Contains(t, numbers, "W02")

		w02 := f.seat(t, "W02")
		assert.True(t, w02.IsAvailable())
		assert.Nil(t, w02.CurrentUser())
		assert.Nil(t, w02.ReservedUntil())
	})

	t.Run("5. 回収後は同じユーザーが再予約できる", func(t *testing.T) {
		view, err := f.commands.Reserve(ctx, ReserveSeatInput{SeatNumber: "W04", UserID: userA, Hours: 1})
		require.NoError(t, err)
		assert.Equal(t, "W04", view.SeatNumber)
	})

	t.Run("6. 管理者は他人の座席を解放でき一般ユーザーはできない", func(t *testing.T) {
		_, err := f.commands.Release(ctx, ReleaseSeatInput{SeatNumber: "W01", RequesterID: userD})
		assert.True(t, errs.Is(err, errs.ErrNotAuthorized), "got %v", err)
		assert.True(t, f.seat(t, "W01").IsHeldBy(userB))

		view, err := f.commands.Release(ctx, ReleaseSeatInput{SeatNumber: "W01", RequesterID: uuid.New(), RequesterIsAdmin: true})
		require.NoError(t, err)
		assert.True(t, view.IsAvailable)
		assert.Nil(t, view.RemainingMinutes)
	})

	assert.Equal(t, []shared.SeatEventType{
		shared.SeatEventReserved,
		shared.SeatEventReserved,
		shared.SeatEventReserved,
		shared.SeatEventReleased,
	}, f.publisher.types())
}

func TestSeatCommands_Reserve_Hours(t *testing.T) {
	tests := []struct {
		hours   int
		wantErr error
	}{
		{hours: 0, wantErr: errs.ErrInvalidHours},
		{hours: 1},
		{hours: 8},
		{hours: 9, wantErr: errs.ErrInvalidHours},
		{hours: -1, wantErr: errs.ErrInvalidHours},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("hours=%d", tt.hours), func(t *testing.T) {
			f := newFixture(t)
			view, err := f.commands.Reserve(context.Background(), ReserveSeatInput{SeatNumber: "W01", UserID: uuid.New(), Hours: tt.hours})
			if tt.wantErr != nil {
				assert.True(t, errs.Is(err, tt.wantErr), "got %v", err)
				assert.True(t, f.seat(t, "W01").IsAvailable())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, baseTime.Add(time.Duration(tt.hours)*time.Hour), *view.ReservedUntil)
		})
	}

	t.Run("時間の検証は座席の存在確認より先", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.commands.Reserve(context.Background(), ReserveSeatInput{SeatNumber: "Z99", UserID: uuid.New(), Hours: 0})
		assert.True(t, errs.Is(err, errs.ErrInvalidHours), "got %v", err)
	})
}

func TestSeatCommands_Reserve_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("存在しない座席", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.commands.Reserve(ctx, ReserveSeatInput{SeatNumber: "W99", UserID: uuid.New(), Hours: 1})
		assert.True(t, errs.Is(err, errs.ErrSeatNotFound), "got %v", err)
	})

	t.Run("形式が不正な座席番号は存在しない扱い", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.commands.Reserve(ctx, ReserveSeatInput{SeatNumber: "01-W", UserID: uuid.New(), Hours: 1})
		assert.True(t, errs.Is(err, errs.ErrSeatNotFound), "got %v", err)
	})

	t.Run("小文字の座席番号も受け付ける", func(t *testing.T) {
		f := newFixture(t)
		view, err := f.commands.Reserve(ctx, ReserveSeatInput{SeatNumber: "s02", UserID: uuid.New(), Hours: 1})
		require.NoError(t, err)
		assert.Equal(t, "S02", view.SeatNumber)
	})

	t.Run("ストレージ障害", func(t *testing.T) {
		clk := clock.NewMockClock(baseTime)
		cmds := NewSeatCommands(brokenRegistry{}, shared.NewNopUserLocker(), shared.NewNopEventPublisher(), clk, seat.DefaultHourBounds())

		_, err := cmds.Reserve(ctx, ReserveSeatInput{SeatNumber: "W01", UserID: uuid.New(), Hours: 1})
		assert.True(t, errs.Is(err, errs.ErrStorageUnavailable), "got %v", err)
	})

	t.Run("同一ユーザーの予約処理中", func(t *testing.T) {
		clk := clock.NewMockClock(baseTime)
		store := memstore.NewSeatStore(clk)
		cmds := NewSeatCommands(store, busyLocker{}, shared.NewNopEventPublisher(), clk, seat.DefaultHourBounds())

		_, err := cmds.Reserve(ctx, ReserveSeatInput{SeatNumber: "W01", UserID: uuid.New(), Hours: 1})
		assert.True(t, errs.Is(err, errs.ErrReservationInProgress), "got %v", err)
	})

	t.Run("イベント送信失敗は予約を失敗させない", func(t *testing.T) {
		f := newFixture(t)
		f.publisher.err = assert.AnError

		_, err := f.commands.Reserve(ctx, ReserveSeatInput{SeatNumber: "W01", UserID: uuid.New(), Hours: 1})
		require.NoError(t, err)
		assert.Len(t, f.publisher.types(), 1)
	})
}

func TestSeatCommands_Reserve_ConcurrentSameSeat(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const workers = 24
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		success  int
		occupied int
	)
	start := make(chan struct{})
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.commands.Reserve(ctx, ReserveSeatInput{SeatNumber: "W05", UserID: uuid.New(), Hours: 2})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case errs.Is(err, errs.ErrSeatOccupied):
				occupied++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, success)
	assert.Equal(t, workers-1, occupied)
}

func TestSeatCommands_Release(t *testing.T) {
	ctx := context.Background()

	t.Run("保持者は残り時間に関係なく解放できる", func(t *testing.T) {
		f := newFixture(t)
		holder := uuid.New()
		_, err := f.commands.Reserve(ctx, ReserveSeatInput{SeatNumber: "W01", UserID: holder, Hours: 8})
		require.NoError(t, err)
		f.clock.Add(time.Minute)

		view, err := f.commands.Release(ctx, ReleaseSeatInput{SeatNumber: "W01", RequesterID: holder})
		require.NoError(t, err)
		assert.True(t, view.IsAvailable)
		assert.True(t, f.seat(t, "W01").IsAvailable())
	})

	t.Run("空席の解放は一般ユーザーには許可されない", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.commands.Release(ctx, ReleaseSeatInput{SeatNumber: "W01", RequesterID: uuid.New()})
		assert.True(t, errs.Is(err, errs.ErrNotAuthorized), "got %v", err)
	})

	t.Run("管理者による空席の解放は何もしない", func(t *testing.T) {
		f := newFixture(t)
		view, err := f.commands.Release(ctx, ReleaseSeatInput{SeatNumber: "W01", RequesterID: uuid.New(), RequesterIsAdmin: true})
		require.NoError(t, err)
		assert.True(t, view.IsAvailable)
		assert.Empty(t, f.publisher.types())
	})

	t.Run("存在しない座席", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.commands.Release(ctx, ReleaseSeatInput{SeatNumber: "S42", RequesterID: uuid.New(), RequesterIsAdmin: true})
		assert.True(t, errs.Is(err, errs.ErrSeatNotFound), "got %v", err)
	})
}

func TestSeatCommands_Reinitialize(t *testing.T) {
	ctx := context.Background()

	t.Run("既定のレイアウトで再生成", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.commands.Reserve(ctx, ReserveSeatInput{SeatNumber: "W01", UserID: uuid.New(), Hours: 1})
		require.NoError(t, err)

		count, err := f.commands.Reinitialize(ctx)
		require.NoError(t, err)
		assert.Equal(t, 48, count)

		seats, err := f.store.ListByRoom(ctx, nil)
		require.NoError(t, err)
		require.Len(t, seats, 48)
		assert.Equal(t, "S01", seats[0].SeatNumber().String())
		assert.Equal(t, "W36", seats[len(seats)-1].SeatNumber().String())
		for _, s := range seats {
			assert.True(t, s.IsAvailable())
		}
	})

	t.Run("ストレージ障害", func(t *testing.T) {
		cmds := NewSeatCommands(brokenRegistry{}, shared.NewNopUserLocker(), shared.NewNopEventPublisher(), clock.NewMockClock(baseTime), seat.DefaultHourBounds())
		_, err := cmds.Reinitialize(ctx)
		assert.True(t, errs.Is(err, errs.ErrStorageUnavailable), "got %v", err)
	})
}

// Random sequences of reserve/release/reclaim must keep every seat consistent
// and never give one user two seats. Calls are sequential so the known
// same-user race cannot occur.
func TestSeatCommands_RandomSequenceInvariants(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	rng := rand.New(rand.NewSource(42))

	users := make([]uuid.UUID, 5)
	for i := range users {
		users[i] = uuid.New()
	}
	numbers := []string{"W01", "W02", "W03", "W04", "W05", "W06", "S01", "S02"}

	for step := range 500 {
		user := users[rng.Intn(len(users))]
		number := numbers[rng.Intn(len(numbers))]

		switch rng.Intn(4) {
		case 0, 1:
			_, _ = f.commands.Reserve(ctx, ReserveSeatInput{SeatNumber: number, UserID: user, Hours: 1 + rng.Intn(8)})
		case 2:
			_, _ = f.commands.Release(ctx, ReleaseSeatInput{SeatNumber: number, RequesterID: user, RequesterIsAdmin: rng.Intn(5) == 0})
		case 3:
			f.clock.Add(time.Duration(rng.Intn(180)) * time.Minute)
			_, err := f.store.BulkReclaim(ctx, f.clock.Now())
			require.NoError(t, err)
		}

		seats, err := f.store.ListByRoom(ctx, nil)
		require.NoError(t, err)
		holders := make(map[uuid.UUID]string)
		for _, s := range seats {
			hasUser := s.CurrentUser() != nil
			hasDeadline := s.ReservedUntil() != nil
			require.Equal(t, hasUser, hasDeadline, "step %d seat %s", step, s.SeatNumber())
			require.Equal(t, !hasUser, s.IsAvailable(), "step %d seat %s", step, s.SeatNumber())
			if hasUser {
				prev, dup := holders[*s.CurrentUser()]
				require.False(t, dup, "step %d: user holds %s and %s", step, prev, s.SeatNumber())
				holders[*s.CurrentUser()] = s.SeatNumber().String()
			}
		}
	}
}
