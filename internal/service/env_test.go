package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/neuralplan/internal/domain"
	"github.com/alexanderramin/neuralplan/internal/engagement"
	"github.com/alexanderramin/neuralplan/internal/intelligence"
	"github.com/alexanderramin/neuralplan/internal/repository"
	"github.com/alexanderramin/neuralplan/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testEnv wires a tracker over an in-memory database.
type testEnv struct {
	db      *sql.DB
	kv      *repository.SQLiteKVStore
	plans   *repository.SQLitePlanRepo
	tracker *engagement.Tracker
	now     time.Time
}

func newTestEnv(t *testing.T, seed *domain.UserStats) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	env := &testEnv{
		db:    database,
		kv:    repository.NewSQLiteKVStore(database),
		plans: repository.NewSQLitePlanRepo(database),
		now:   time.Date(2025, 6, 3, 9, 30, 0, 0, time.UTC),
	}
	ctx := context.Background()
	if seed != nil {
		raw, err := engagement.EncodeStats(*seed)
		require.NoError(t, err)
		require.NoError(t, env.kv.Set(ctx, engagement.StatsKey, raw))
	}
	env.tracker = engagement.NewTracker(env.kv,
		engagement.ClockFunc(func() time.Time { return env.now }),
		engagement.WithLocation(time.UTC))
	_, err := env.tracker.Initialize(ctx)
	require.NoError(t, err)
	return env
}

// fakeAnalysis returns result or err and counts calls.
type fakeAnalysis struct {
	result *domain.PlanResult
	err    error
	last   intelligence.AnalysisRequest
	calls  int
}

func (f *fakeAnalysis) AnalyzePatterns(_ context.Context, req intelligence.AnalysisRequest) (*domain.PlanResult, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	r := *f.result
	return &r, nil
}

type fakeChat struct {
	reply   string
	err     error
	profile *domain.Profile
}

func (f *fakeChat) Chat(_ context.Context, _ string, profile *domain.Profile) (string, error) {
	f.profile = profile
	return f.reply, f.err
}

func (f *fakeChat) StartChat(profile *domain.Profile) *intelligence.ChatConversation {
	f.profile = profile
	return &intelligence.ChatConversation{Profile: profile}
}

func (f *fakeChat) NextTurn(_ context.Context, conv *intelligence.ChatConversation, message string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	conv.Turns = append(conv.Turns,
		intelligence.ChatTurn{Role: "User", Content: message},
		intelligence.ChatTurn{Role: "Dr. Neural", Content: f.reply})
	return f.reply, nil
}

type fakeProfiles struct {
	profile *domain.Profile
}

func (f *fakeProfiles) GenerateProfile(_ context.Context, answers map[string]string) (*domain.Profile, error) {
	p := f.profile.Clone()
	p.Context = domain.ParseWorkContext(answers["context"])
	return &p, nil
}

func validAnswers() map[string]string {
	return map[string]string{
		"context":    "academic",
		"struggle":   "completion",
		"sensory":    "neutral",
		"processing": "visual",
	}
}
