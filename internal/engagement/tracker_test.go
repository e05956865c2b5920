package engagement

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/neuralplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu      sync.Mutex
	data    map[string]string
	sets    int
	getErr  error
	failSet error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}}
}

func (s *fakeStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *fakeStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet != nil {
		return s.failSet
	}
	s.sets++
	s.data[key] = value
	return nil
}

func day(d int, hour, min int) time.Time {
	return time.Date(2026, time.March, d, hour, min, 0, 0, time.UTC)
}

func newTestTracker(t *testing.T, store Store) *Tracker {
	t.Helper()
	tr := NewTracker(store, ClockFunc(func() time.Time { return day(20, 9, 0) }), WithLocation(time.UTC))
	_, err := tr.Initialize(context.Background())
	require.NoError(t, err)
	return tr
}

func strPtr(s string) *string { return &s }

func TestInitialize_NoBlobYieldsZeroState(t *testing.T) {
	tr := newTestTracker(t, newFakeStore())

	s := tr.Snapshot()
	assert.Nil(t, s.LastUsedDate)
	assert.Equal(t, 0, s.CurrentStreak)
	assert.Empty(t, s.EntryTimeHistory)
	assert.Empty(t, s.UnlockedBadgeIDs)
	assert.True(t, tr.IsOnboarding())
}

func TestInitialize_MalformedBlobFallsBackToSeed(t *testing.T) {
	store := newFakeStore()
	store.data[StatsKey] = `{"currentStreak": "seven",`

	tr := NewTracker(store, nil)
	s, err := tr.Initialize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, s.CurrentStreak)
	assert.Nil(t, s.LastUsedDate)
}

func TestInitialize_StoreReadErrorPropagates(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("disk gone")

	_, err := NewTracker(store, nil).Initialize(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestInitialize_RepairsStoredValues(t *testing.T) {
	store := newFakeStore()
	store.data[StatsKey] = `{"currentStreak":5,"highestStreak":2,"totalFocusMinutes":-3,"lastUsedDate":"2026-03-01","unlockedBadgeIds":null}`

	s, err := NewTracker(store, nil).Initialize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, s.HighestStreak)
	assert.Equal(t, 0, s.TotalFocusMinutes)
	assert.NotNil(t, s.UnlockedBadgeIDs)
}

func TestSynchronize_FreshInstallBootstrapsDateOnly(t *testing.T) {
	store := newFakeStore()
	tr := newTestTracker(t, store)

	s, err := tr.Synchronize(context.Background(), day(10, 8, 30))
	require.NoError(t, err)

	require.NotNil(t, s.LastUsedDate)
	assert.Equal(t, "2026-03-10", *s.LastUsedDate)
	assert.Equal(t, 0, s.CurrentStreak)
	assert.Empty(t, s.EntryTimeHistory, "bootstrap does not log an entry")
	assert.Equal(t, 1, store.sets)
}

func TestSynchronize_IdempotentWithinDay(t *testing.T) {
	store := newFakeStore()
	tr := newTestTracker(t, store)
	ctx := context.Background()

	_, err := tr.Synchronize(ctx, day(10, 8, 0))
	require.NoError(t, err)
	first, err := tr.Synchronize(ctx, day(11, 7, 0))
	require.NoError(t, err)
	writes := store.sets

	for _, ts := range []time.Time{day(11, 7, 0), day(11, 12, 15), day(11, 23, 59)} {
		again, err := tr.Synchronize(ctx, ts)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, writes, store.sets, "same-day sync must not write")
}

func TestSynchronize_ConsecutiveDayIncrements(t *testing.T) {
	tr := newTestTracker(t, newFakeStore())
	ctx := context.Background()

	_, err := tr.Synchronize(ctx, day(10, 8, 0))
	require.NoError(t, err)
	_, err = tr.Synchronize(ctx, day(11, 9, 0))
	require.NoError(t, err)
	s, err := tr.Synchronize(ctx, day(12, 22, 0))
	require.NoError(t, err)

	assert.Equal(t, 2, s.CurrentStreak)
	assert.Equal(t, 2, s.HighestStreak)
	assert.Len(t, s.EntryTimeHistory, 2)
}

func TestSynchronize_CalendarDayNotElapsedHours(t *testing.T) {
	tr := newTestTracker(t, newFakeStore())
	ctx := context.Background()

	_, err := tr.Synchronize(ctx, day(10, 23, 58))
	require.NoError(t, err)
	_, err = tr.Synchronize(ctx, day(11, 23, 59))
	require.NoError(t, err)
	// Two minutes later, but a new calendar day.
	s, err := tr.Synchronize(ctx, day(12, 0, 1))
	require.NoError(t, err)

	assert.Equal(t, 2, s.CurrentStreak)
}

func TestSynchronize_GapResetsToOne(t *testing.T) {
	store := newFakeStore()
	raw, err := EncodeStats(domain.UserStats{CurrentStreak: 4, HighestStreak: 4, LastUsedDate: strPtr("2026-03-10")})
	require.NoError(t, err)
	store.data[StatsKey] = raw
	tr := newTestTracker(t, store)

	s, err := tr.Synchronize(context.Background(), day(12, 9, 0))
	require.NoError(t, err)

	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 4, s.HighestStreak)
	assert.Equal(t, "2026-03-12", *s.LastUsedDate)
}

func TestSynchronize_NegativeGapTreatedAsReset(t *testing.T) {
	store := newFakeStore()
	raw, err := EncodeStats(domain.UserStats{CurrentStreak: 6, HighestStreak: 6, LastUsedDate: strPtr("2026-04-01")})
	require.NoError(t, err)
	store.data[StatsKey] = raw
	tr := newTestTracker(t, store)

	s, err := tr.Synchronize(context.Background(), day(12, 9, 0))
	require.NoError(t, err)

	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 6, s.HighestStreak)
}

func TestSynchronize_UnreadableDateTreatedAsReset(t *testing.T) {
	store := newFakeStore()
	store.data[StatsKey] = `{"currentStreak":3,"highestStreak":3,"lastUsedDate":"someday"}`
	tr := newTestTracker(t, store)

	s, err := tr.Synchronize(context.Background(), day(12, 9, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, "2026-03-12", *s.LastUsedDate)
}

func TestSynchronize_ThreeDayBadgeUnlocksOnThirdSync(t *testing.T) {
	store := newFakeStore()
	raw, err := EncodeStats(domain.UserStats{CurrentStreak: 1, HighestStreak: 1, LastUsedDate: strPtr("2026-03-09")})
	require.NoError(t, err)
	store.data[StatsKey] = raw
	tr := newTestTracker(t, store)
	ctx := context.Background()

	s, err := tr.Synchronize(ctx, day(10, 9, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, s.CurrentStreak)
	assert.False(t, s.HasBadge("3day"))

	s, err = tr.Synchronize(ctx, day(11, 9, 0))
	require.NoError(t, err)
	assert.Equal(t, 3, s.CurrentStreak)
	assert.True(t, s.HasBadge("3day"))
	assert.False(t, s.HasBadge("7day"))
}

func TestSynchronize_GapResetKeepsEarnedBadges(t *testing.T) {
	store := newFakeStore()
	raw, err := EncodeStats(domain.UserStats{
		CurrentStreak:    10,
		HighestStreak:    10,
		LastUsedDate:     strPtr("2026-03-05"),
		UnlockedBadgeIDs: []string{"3day", "7day"},
	})
	require.NoError(t, err)
	store.data[StatsKey] = raw
	tr := newTestTracker(t, store)

	s, err := tr.Synchronize(context.Background(), day(10, 9, 0))
	require.NoError(t, err)

	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 10, s.HighestStreak)
	assert.ElementsMatch(t, []string{"3day", "7day"}, s.UnlockedBadgeIDs)
}

func TestSynchronize_EntryLogBoundedAndChronological(t *testing.T) {
	tr := newTestTracker(t, newFakeStore())
	ctx := context.Background()

	start := time.Date(2026, time.January, 1, 7, 0, 0, 0, time.UTC)
	_, err := tr.Synchronize(ctx, start)
	require.NoError(t, err)

	var s domain.UserStats
	for i := 1; i <= 45; i++ {
		s, err = tr.Synchronize(ctx, start.AddDate(0, 0, i).Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		assert.LessOrEqual(t, len(s.EntryTimeHistory), MaxEntryHistory)
	}

	require.Len(t, s.EntryTimeHistory, MaxEntryHistory)
	assert.Equal(t, start.AddDate(0, 0, 45).Add(45*time.Minute), s.EntryTimeHistory[MaxEntryHistory-1])
	assert.Equal(t, start.AddDate(0, 0, 16).Add(16*time.Minute), s.EntryTimeHistory[0])
	for i := 1; i < len(s.EntryTimeHistory); i++ {
		assert.True(t, s.EntryTimeHistory[i].After(s.EntryTimeHistory[i-1]))
	}
	assert.Equal(t, 45, s.CurrentStreak)
	assert.True(t, s.HasBadge("30day"))
}

func TestSynchronize_WriteFailureLeavesStateUnchanged(t *testing.T) {
	store := newFakeStore()
	tr := newTestTracker(t, store)
	ctx := context.Background()
	_, err := tr.Synchronize(ctx, day(10, 9, 0))
	require.NoError(t, err)
	before := tr.Snapshot()

	store.failSet = errors.New("read-only filesystem")
	_, err = tr.Synchronize(ctx, day(11, 9, 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persisting stats")
	assert.Equal(t, before, tr.Snapshot())
}

func TestMonotonicCountersAcrossOperations(t *testing.T) {
	tr := newTestTracker(t, newFakeStore())
	ctx := context.Background()

	prev := tr.Snapshot()
	steps := []func() (domain.UserStats, error){
		func() (domain.UserStats, error) { return tr.Synchronize(ctx, day(1, 9, 0)) },
		func() (domain.UserStats, error) { return tr.Synchronize(ctx, day(2, 9, 0)) },
		func() (domain.UserStats, error) { return tr.RecordPlanGenerated(ctx) },
		func() (domain.UserStats, error) { return tr.Synchronize(ctx, day(3, 9, 0)) },
		func() (domain.UserStats, error) { return tr.RecordFocusCompleted(ctx, 25) },
		func() (domain.UserStats, error) { return tr.Synchronize(ctx, day(9, 9, 0)) },
		func() (domain.UserStats, error) { return tr.ResetProfile(ctx) },
		func() (domain.UserStats, error) { return tr.Synchronize(ctx, day(10, 9, 0)) },
	}
	for i, step := range steps {
		s, err := step()
		require.NoError(t, err, "step %d", i)
		assert.GreaterOrEqual(t, s.HighestStreak, prev.HighestStreak)
		assert.GreaterOrEqual(t, s.HighestStreak, s.CurrentStreak)
		assert.GreaterOrEqual(t, s.TotalPlansGenerated, prev.TotalPlansGenerated)
		assert.GreaterOrEqual(t, s.TotalFocusMinutes, prev.TotalFocusMinutes)
		assert.Subset(t, s.UnlockedBadgeIDs, prev.UnlockedBadgeIDs)
		prev = s
	}
	assert.Equal(t, 2, prev.CurrentStreak)
	assert.Equal(t, 2, prev.HighestStreak)
}

func TestRecordPlanGenerated_OnlyTouchesCounter(t *testing.T) {
	tr := newTestTracker(t, newFakeStore())
	ctx := context.Background()
	_, err := tr.Synchronize(ctx, day(10, 9, 0))
	require.NoError(t, err)
	before := tr.Snapshot()

	s, err := tr.RecordPlanGenerated(ctx)
	require.NoError(t, err)

	before.TotalPlansGenerated++
	assert.Equal(t, before, s)
}

func TestRecordFocusCompleted(t *testing.T) {
	store := newFakeStore()
	tr := newTestTracker(t, store)
	ctx := context.Background()

	s, err := tr.RecordFocusCompleted(ctx, 45)
	require.NoError(t, err)
	assert.Equal(t, 45, s.TotalFocusMinutes)

	writes := store.sets
	_, err = tr.RecordFocusCompleted(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidMinutes)
	assert.Equal(t, writes, store.sets)
	assert.Equal(t, 45, tr.Snapshot().TotalFocusMinutes)
}

func TestRecordFocusCompleted_RejectsOversizedBlocks(t *testing.T) {
	store := newFakeStore()
	tr := newTestTracker(t, store)
	ctx := context.Background()

	_, err := tr.RecordFocusCompleted(ctx, math.MaxInt)
	assert.ErrorIs(t, err, ErrInvalidMinutes)
	_, err = tr.RecordFocusCompleted(ctx, domain.MaxFocusMinutes+1)
	assert.ErrorIs(t, err, ErrInvalidMinutes)

	s, err := tr.RecordFocusCompleted(ctx, domain.MaxFocusMinutes)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxFocusMinutes, s.TotalFocusMinutes)
	assert.GreaterOrEqual(t, tr.BurnoutLoadIndex(), 0.0)
}

func TestRecordFocusCompleted_TotalNeverWraps(t *testing.T) {
	seed := domain.NewUserStats()
	seed.TotalFocusMinutes = math.MaxInt - 5
	raw, err := EncodeStats(seed)
	require.NoError(t, err)
	store := newFakeStore()
	store.data[StatsKey] = raw
	tr := newTestTracker(t, store)
	ctx := context.Background()

	_, err = tr.RecordFocusCompleted(ctx, 10)
	assert.ErrorIs(t, err, ErrInvalidMinutes)
	assert.Equal(t, math.MaxInt-5, tr.Snapshot().TotalFocusMinutes)

	s, err := tr.RecordFocusCompleted(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, s.TotalFocusMinutes)
	assert.GreaterOrEqual(t, tr.BurnoutLoadIndex(), 0.0)
	assert.LessOrEqual(t, tr.BurnoutLoadIndex(), 100.0)
}

func TestSynchronize_UsesTrackerLocationForCalendarDay(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	now := time.Date(2026, time.March, 20, 20, 0, 0, 0, time.UTC) // 05:00 on the 21st in Tokyo
	store := newFakeStore()
	ctx := context.Background()
	tr := NewTracker(store, ClockFunc(func() time.Time { return now }), WithLocation(tokyo))
	_, err := tr.Initialize(ctx)
	require.NoError(t, err)

	_, err = tr.Synchronize(ctx, now.Add(-48*time.Hour))
	require.NoError(t, err)
	_, err = tr.Synchronize(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	s, err := tr.SynchronizeNow(ctx)
	require.NoError(t, err)
	require.NotNil(t, s.LastUsedDate)
	assert.Equal(t, "2026-03-21", *s.LastUsedDate)
	assert.Equal(t, 2, s.CurrentStreak)

	for _, reload := range []bool{false, true} {
		if reload {
			tr = NewTracker(store, ClockFunc(func() time.Time { return now }), WithLocation(tokyo))
			_, err = tr.Initialize(ctx)
			require.NoError(t, err)
		}
		days := tr.ActivityHeatmap(2)
		assert.Equal(t, []DayActivity{
			{Date: "2026-03-20", Active: true},
			{Date: "2026-03-21", Active: true},
		}, days, "reload=%v", reload)
	}
}

func TestRecordFocusCompleted_ConcurrentCallsAllCounted(t *testing.T) {
	tr := newTestTracker(t, newFakeStore())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := tr.RecordFocusCompleted(ctx, 2)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, tr.Snapshot().TotalFocusMinutes)
}

func TestSetAndResetProfile(t *testing.T) {
	tr := newTestTracker(t, newFakeStore())
	ctx := context.Background()
	_, err := tr.Synchronize(ctx, day(10, 9, 0))
	require.NoError(t, err)
	_, err = tr.Synchronize(ctx, day(11, 9, 0))
	require.NoError(t, err)

	p := domain.Profile{PrimaryType: "ADHD profile", Context: domain.ContextCreative, Traits: []string{"novelty seeking"}}
	s, err := tr.SetProfile(ctx, p)
	require.NoError(t, err)
	require.NotNil(t, s.NeuralProfile)
	assert.False(t, tr.IsOnboarding())

	s, err = tr.ResetProfile(ctx)
	require.NoError(t, err)
	assert.Nil(t, s.NeuralProfile)
	assert.True(t, tr.IsOnboarding())
	assert.Equal(t, 1, s.CurrentStreak, "reset keeps the streak")
	assert.Len(t, s.EntryTimeHistory, 1)
}

func TestSnapshotDoesNotAliasInternalState(t *testing.T) {
	tr := newTestTracker(t, newFakeStore())
	ctx := context.Background()
	_, err := tr.Synchronize(ctx, day(10, 9, 0))
	require.NoError(t, err)
	_, err = tr.Synchronize(ctx, day(11, 9, 0))
	require.NoError(t, err)

	s := tr.Snapshot()
	s.EntryTimeHistory[0] = time.Time{}
	*s.LastUsedDate = "1999-01-01"

	again := tr.Snapshot()
	assert.Equal(t, day(11, 9, 0), again.EntryTimeHistory[0])
	assert.Equal(t, "2026-03-11", *again.LastUsedDate)
}

func TestStatePersistsAcrossTrackers(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()
	tr := newTestTracker(t, store)
	_, err := tr.Synchronize(ctx, day(10, 9, 0))
	require.NoError(t, err)
	_, err = tr.Synchronize(ctx, day(11, 9, 30))
	require.NoError(t, err)
	_, err = tr.RecordFocusCompleted(ctx, 30)
	require.NoError(t, err)

	reloaded := newTestTracker(t, store)
	assert.Equal(t, tr.Snapshot(), reloaded.Snapshot())
}

func TestEncodeStats_WireLayout(t *testing.T) {
	raw, err := EncodeStats(domain.NewUserStats())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	for _, key := range []string{
		"currentStreak", "highestStreak", "totalPlansGenerated", "totalFocusMinutes",
		"lastUsedDate", "unlockedBadgeIds", "neuralProfile", "entryTimeHistory",
	} {
		assert.Contains(t, m, key)
	}
	assert.Nil(t, m["lastUsedDate"])
	assert.Nil(t, m["neuralProfile"])
	assert.Equal(t, []any{}, m["unlockedBadgeIds"])
}

func TestDecodeStats_TrimsOversizedHistory(t *testing.T) {
	s := domain.NewUserStats()
	for i := 0; i < 40; i++ {
		s.EntryTimeHistory = append(s.EntryTimeHistory, day(1, 0, 0).AddDate(0, 0, i))
	}
	raw, err := json.Marshal(s)
	require.NoError(t, err)

	decoded, err := DecodeStats(string(raw))
	require.NoError(t, err)
	require.Len(t, decoded.EntryTimeHistory, MaxEntryHistory)
	assert.Equal(t, day(1, 0, 0).AddDate(0, 0, 39), decoded.EntryTimeHistory[MaxEntryHistory-1])
}

func TestTrackerLoadLevelAndNextBadge(t *testing.T) {
	tr := newTestTracker(t, newFakeStore())
	ctx := context.Background()

	badge, left, ok := tr.NextBadge()
	require.True(t, ok)
	assert.Equal(t, "3day", badge.ID)
	assert.Equal(t, 3, left)
	assert.Equal(t, LoadNominal, tr.LoadLevel())

	_, err := tr.RecordFocusCompleted(ctx, 300)
	require.NoError(t, err)
	assert.Equal(t, LoadStrained, tr.LoadLevel())

	_, err = tr.RecordFocusCompleted(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, LoadHigh, tr.LoadLevel())
}
