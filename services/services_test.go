package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/models"
	"github.com/Dosada05/tournament-bracket/repositories"
	"github.com/Dosada05/tournament-bracket/roster"
	"github.com/Dosada05/tournament-bracket/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin = models.Actor{Role: models.RoleAdmin}
	guest = models.Actor{Role: models.RoleGuest}
)

type recordedMessage struct {
	room string
	msg  brackets.WebSocketMessage
}

type fakeBroadcaster struct {
	mu       sync.Mutex
	messages []recordedMessage
}

func (f *fakeBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, recordedMessage{room: roomID, msg: message.(brackets.WebSocketMessage)})
}

func (f *fakeBroadcaster) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.messages))
	for i, m := range f.messages {
		out[i] = m.msg.Type
	}
	return out
}

type failingRepository struct {
	state   *models.TournamentState
	loadErr error
	saveErr error
	saves   int
}

func (r *failingRepository) Load(ctx context.Context) (*models.TournamentState, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return r.state.Clone(), nil
}

func (r *failingRepository) Save(ctx context.Context, state *models.TournamentState) error {
	r.saves++
	return r.saveErr
}

type fixture struct {
	repo        repositories.StateRepository
	hub         *fakeBroadcaster
	tournaments TournamentService
	brackets    BracketService
}

func newFixture(t *testing.T, capacity int) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := repositories.NewObjectStateRepository(storage.NewMemoryStore(), "state.json", capacity)
	hub := &fakeBroadcaster{}
	runner := NewStateRunner(repo, hub, logger)
	return &fixture{
		repo:        repo,
		hub:         hub,
		tournaments: NewTournamentService(runner, logger),
		brackets:    NewBracketService(runner, rand.New(rand.NewPCG(1, 2)), logger),
	}
}

func (f *fixture) admit(t *testing.T, names ...string) {
	t.Helper()
	for _, n := range names {
		_, err := f.tournaments.AdmitTeam(context.Background(), AdmitTeamInput{Name: n})
		require.NoError(t, err)
	}
}

func (f *fixture) load(t *testing.T) *models.TournamentState {
	t.Helper()
	state, err := f.repo.Load(context.Background())
	require.NoError(t, err)
	return state
}

// decideRound вносит победу первой команды во все играбельные матчи раунда.
func (f *fixture) decideRound(t *testing.T, round int) *BracketView {
	t.Helper()
	view, err := f.brackets.GetBracket(context.Background())
	require.NoError(t, err)
	for i, m := range view.Rounds[round] {
		if !m.IsPlayable() {
			continue
		}
		view, err = f.brackets.SubmitScore(context.Background(), SubmitScoreInput{Round: round, Match: i, Score1: 2, Score2: 1})
		require.NoError(t, err)
	}
	return view
}

func TestAdmitTeamPlacement(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()

	res, err := f.tournaments.AdmitTeam(ctx, AdmitTeamInput{Name: "A", Players: []string{"ann"}})
	require.NoError(t, err)
	assert.Equal(t, roster.PlacementRoster, res.Placement)

	f.admit(t, "B")
	res, err = f.tournaments.AdmitTeam(ctx, AdmitTeamInput{Name: "C"})
	require.NoError(t, err)
	assert.Equal(t, roster.PlacementWaitlist, res.Placement)
	assert.True(t, res.Roster.Full)
	assert.Equal(t, 0, res.Roster.OpenSlots)
	assert.Equal(t, []string{"C"}, models.TeamNames(res.Roster.Waitlist))

	assert.Equal(t, []string{brackets.MessageRosterUpdated, brackets.MessageRosterUpdated, brackets.MessageRosterUpdated}, f.hub.types())
}

func TestAdmitTeamRejectsDuplicate(t *testing.T) {
	f := newFixture(t, 4)
	f.admit(t, "A")

	res, err := f.tournaments.AdmitTeam(context.Background(), AdmitTeamInput{Name: "a"})
	require.ErrorIs(t, err, roster.ErrTeamNameConflict)
	require.NotNil(t, res)
	assert.Equal(t, []string{"A"}, models.TeamNames(res.Roster.Teams))
	assert.Len(t, f.load(t).Teams, 1)
}

func TestAdminOperationsFailClosed(t *testing.T) {
	f := newFixture(t, 2)
	f.admit(t, "A", "B", "C")
	_, err := f.brackets.GetBracket(context.Background())
	require.NoError(t, err)
	before := f.load(t)
	ctx := context.Background()

	calls := map[string]func() error{
		"remove":          func() error { _, err := f.tournaments.RemoveTeam(ctx, guest, 0); return err },
		"remove waitlist": func() error { _, err := f.tournaments.RemoveWaitlistedTeam(ctx, guest, 0); return err },
		"set capacity":    func() error { _, err := f.tournaments.SetCapacity(ctx, guest, 4); return err },
		"set mode":        func() error { _, err := f.tournaments.SetMode(ctx, guest, models.ModeSingle); return err },
		"clear":           func() error { _, err := f.tournaments.ClearTournament(ctx, guest); return err },
		"reset bracket":   func() error { _, err := f.brackets.ResetBracket(ctx, models.Actor{}); return err },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, call(), ErrForbiddenOperation)
			assert.Equal(t, before, f.load(t))
		})
	}
}

func TestBracketOnlyAtFullCapacity(t *testing.T) {
	f := newFixture(t, 4)
	f.admit(t, "A", "B", "C")

	view, err := f.brackets.GetBracket(context.Background())
	require.NoError(t, err)
	assert.False(t, view.Ready)
	assert.Equal(t, 1, view.TeamsNeeded)
	assert.Empty(t, view.Rounds)
	assert.Empty(t, f.load(t).Bracket.Rounds)

	f.admit(t, "D")
	view, err = f.brackets.GetBracket(context.Background())
	require.NoError(t, err)
	assert.True(t, view.Ready)
	assert.Len(t, view.Rounds, 1)
	assert.Len(t, view.Rounds[0], 2)
}

func TestGetBracketIsPersistedAndStable(t *testing.T) {
	f := newFixture(t, 4)
	f.admit(t, "A", "B", "C", "D")

	first, err := f.brackets.GetBracket(context.Background())
	require.NoError(t, err)
	second, err := f.brackets.GetBracket(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Rounds, second.Rounds)
	assert.Equal(t, first.Rounds, f.load(t).Bracket.Rounds)
}

func TestFullTournamentRoundTrip(t *testing.T) {
	f := newFixture(t, 4)
	f.admit(t, "A", "B", "C", "D")

	view := f.decideRound(t, 0)
	require.Len(t, view.Rounds, 2)
	final := view.Rounds[1]
	require.Len(t, final, 1)
	assert.Equal(t, view.Rounds[0][0].Winner, final[0].Team1)
	assert.Equal(t, view.Rounds[0][1].Winner, final[0].Team2)

	view = f.decideRound(t, 1)
	assert.Equal(t, final[0].Team1, view.Winner)
	assert.Len(t, view.Rounds, 2)
	assert.Equal(t, final[0].Team1, f.load(t).Winner)

	types := f.hub.types()
	assert.Equal(t, brackets.MessageTournamentFinished, types[len(types)-1])
}

func TestOddRosterBracket(t *testing.T) {
	f := newFixture(t, 5)
	f.admit(t, "A", "B", "C", "D", "E")

	view, err := f.brackets.GetBracket(context.Background())
	require.NoError(t, err)
	require.Len(t, view.Rounds[0], 3)

	byes := 0
	for _, m := range view.Rounds[0] {
		if m.IsBye() {
			byes++
			assert.NotEmpty(t, m.Winner)
		}
	}
	assert.Equal(t, 1, byes)

	view = f.decideRound(t, 0)
	require.Len(t, view.Rounds, 2)
	view = f.decideRound(t, 1)
	require.Len(t, view.Rounds, 3)
	view = f.decideRound(t, 2)
	assert.NotEmpty(t, view.Winner)
}

func TestTiedScoreLeavesStateUntouched(t *testing.T) {
	f := newFixture(t, 2)
	f.admit(t, "A", "B")
	_, err := f.brackets.GetBracket(context.Background())
	require.NoError(t, err)
	before := f.load(t)

	view, err := f.brackets.SubmitScore(context.Background(), SubmitScoreInput{Round: 0, Match: 0, Score1: 1, Score2: 1})
	require.ErrorIs(t, err, brackets.ErrTiedScore)
	require.NotNil(t, view)
	assert.Empty(t, view.Rounds[0][0].Winner)
	assert.Equal(t, before, f.load(t))
}

func TestSubmitScoreBeforeBracket(t *testing.T) {
	f := newFixture(t, 4)
	f.admit(t, "A", "B")

	_, err := f.brackets.SubmitScore(context.Background(), SubmitScoreInput{Round: 0, Match: 0, Score1: 1, Score2: 0})
	require.ErrorIs(t, err, brackets.ErrBracketNotGenerated)
	assert.True(t, errors.Is(err, models.ErrState))
}

func TestRosterChangeInvalidatesBracket(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name   string
		change func(f *fixture) error
	}{
		{name: "remove", change: func(f *fixture) error { _, err := f.tournaments.RemoveTeam(ctx, admin, 0); return err }},
		{name: "shrink capacity", change: func(f *fixture) error { _, err := f.tournaments.SetCapacity(ctx, admin, 2); return err }},
		{name: "grow capacity", change: func(f *fixture) error { _, err := f.tournaments.SetCapacity(ctx, admin, 8); return err }},
		{name: "reset", change: func(f *fixture) error { _, err := f.brackets.ResetBracket(ctx, admin); return err }},
		{name: "clear", change: func(f *fixture) error { _, err := f.tournaments.ClearTournament(ctx, admin); return err }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, 4)
			f.admit(t, "A", "B", "C", "D", "E")
			f.decideRound(t, 0)
			f.decideRound(t, 1)
			require.NotEmpty(t, f.load(t).Winner)

			require.NoError(t, tc.change(f))

			state := f.load(t)
			assert.Empty(t, state.Bracket.Rounds)
			assert.Empty(t, state.Winner)
		})
	}
}

func TestRemoveTeamPromotesAndRegenerates(t *testing.T) {
	f := newFixture(t, 2)
	f.admit(t, "A", "B", "C")
	_, err := f.brackets.GetBracket(context.Background())
	require.NoError(t, err)

	view, err := f.tournaments.RemoveTeam(context.Background(), admin, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, models.TeamNames(view.Teams))
	assert.Empty(t, view.Waitlist)

	bracket, err := f.brackets.GetBracket(context.Background())
	require.NoError(t, err)
	require.True(t, bracket.Ready)
	m := bracket.Rounds[0][0]
	assert.ElementsMatch(t, []string{"B", "C"}, []string{m.Team1, m.Team2})
}

func TestRemoveTeamOutOfRange(t *testing.T) {
	f := newFixture(t, 2)
	f.admit(t, "A")

	view, err := f.tournaments.RemoveTeam(context.Background(), admin, 3)
	require.ErrorIs(t, err, roster.ErrIndexOutOfRange)
	require.NotNil(t, view)
	assert.Equal(t, []string{"A"}, models.TeamNames(view.Teams))
}

func TestSetCapacityRejectsBelowTwo(t *testing.T) {
	f := newFixture(t, 4)
	_, err := f.tournaments.SetCapacity(context.Background(), admin, 1)
	require.ErrorIs(t, err, roster.ErrInvalidCapacity)
	assert.Equal(t, 4, f.load(t).Max)
}

func TestSetMode(t *testing.T) {
	f := newFixture(t, 4)

	_, err := f.tournaments.SetMode(context.Background(), admin, "double")
	require.ErrorIs(t, err, brackets.ErrUnsupportedMode)

	view, err := f.tournaments.SetMode(context.Background(), admin, models.ModeSingle)
	require.NoError(t, err)
	assert.Equal(t, models.ModeSingle, view.Mode)
	assert.Empty(t, f.hub.types(), "unchanged mode must not be broadcast")
}

func TestClearTournamentKeepsCapacity(t *testing.T) {
	f := newFixture(t, 3)
	f.admit(t, "A", "B", "C", "D")

	view, err := f.tournaments.ClearTournament(context.Background(), admin)
	require.NoError(t, err)
	assert.Empty(t, view.Teams)
	assert.Empty(t, view.Waitlist)
	assert.Equal(t, 3, view.Max)
}

func TestStorageErrorsPropagate(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ioErr := errors.New("disk on fire")

	t.Run("load", func(t *testing.T) {
		repo := &failingRepository{loadErr: ioErr}
		svc := NewTournamentService(NewStateRunner(repo, nil, logger), logger)

		view, err := svc.GetRoster(context.Background())
		require.ErrorIs(t, err, ErrStorage)
		assert.ErrorIs(t, err, ioErr)
		assert.Nil(t, view)
	})

	t.Run("save", func(t *testing.T) {
		hub := &fakeBroadcaster{}
		repo := &failingRepository{state: models.NewTournamentState(4), saveErr: ioErr}
		svc := NewTournamentService(NewStateRunner(repo, hub, logger), logger)

		res, err := svc.AdmitTeam(context.Background(), AdmitTeamInput{Name: "A"})
		require.ErrorIs(t, err, ErrStorage)
		assert.Nil(t, res)
		assert.Equal(t, 1, repo.saves)
		assert.Empty(t, hub.types())
	})
}

func TestReadsDoNotSave(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := &failingRepository{state: models.NewTournamentState(4)}
	runner := NewStateRunner(repo, nil, logger)

	_, err := NewTournamentService(runner, logger).GetRoster(context.Background())
	require.NoError(t, err)
	_, err = NewBracketService(runner, nil, logger).GetBracket(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, repo.saves)
}

func TestConcurrentAdmissionsAreSerialized(t *testing.T) {
	f := newFixture(t, 8)
	const n = 40

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.tournaments.AdmitTeam(context.Background(), AdmitTeamInput{Name: fmt.Sprintf("team-%d", i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	state := f.load(t)
	assert.Len(t, state.Teams, 8)
	assert.Len(t, state.Waitlist, n-8)
}

func TestOverfullStoredRosterIsRepairedOnLoad(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"teams": ["A", "B", "C", "D", "E"], "max": 4, "mode": "double"}`), 0o644))

	runner := NewStateRunner(repositories.NewFileStateRepository(path, 8), nil, logger)
	tournaments := NewTournamentService(runner, logger)
	bracketSvc := NewBracketService(runner, rand.New(rand.NewPCG(3, 3)), logger)

	res, err := tournaments.AdmitTeam(context.Background(), AdmitTeamInput{Name: "F"})
	require.NoError(t, err)
	assert.Equal(t, roster.PlacementWaitlist, res.Placement)
	assert.Equal(t, []string{"A", "B", "C", "D"}, models.TeamNames(res.Roster.Teams))
	assert.Equal(t, []string{"E", "F"}, models.TeamNames(res.Roster.Waitlist))

	view, err := bracketSvc.GetBracket(context.Background())
	require.NoError(t, err)
	assert.True(t, view.Ready)
	require.Len(t, view.Rounds, 1)
	assert.Len(t, view.Rounds[0], 2)
}

func readMessage(t *testing.T, client *brackets.Client, payload interface{}) string {
	t.Helper()
	select {
	case raw := <-client.Send:
		var msg struct {
			Type    string          `json:"type"`
			Payload json.RawMessage `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(raw, &msg))
		require.NoError(t, json.Unmarshal(msg.Payload, payload))
		return msg.Type
	case <-time.After(time.Second):
		t.Fatal("expected message for subscriber")
		return ""
	}
}

func TestSubscribeDoesNotMissConcurrentSave(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := brackets.NewHub(logger)
	go hub.Run()
	t.Cleanup(hub.Stop)

	repo := repositories.NewObjectStateRepository(storage.NewMemoryStore(), "state.json", 4)
	runner := NewStateRunner(repo, hub, logger)
	tournaments := NewTournamentService(runner, logger)
	bracketSvc := NewBracketService(runner, rand.New(rand.NewPCG(1, 2)), logger)

	_, err := tournaments.AdmitTeam(context.Background(), AdmitTeamInput{Name: "Early"})
	require.NoError(t, err)

	client := &brackets.Client{Hub: hub, Send: make(chan []byte, 8), Room: brackets.BracketRoom}
	admitted := make(chan error, 1)

	err = bracketSvc.Subscribe(context.Background(), func(snapshot *Snapshot) error {
		raw, err := json.Marshal(brackets.WebSocketMessage{Type: brackets.MessageSnapshot, Payload: snapshot})
		if err != nil {
			return err
		}
		client.Send <- raw

		// Сохранение, начатое между снимком и регистрацией, ждет блокировку.
		go func() {
			_, err := tournaments.AdmitTeam(context.Background(), AdmitTeamInput{Name: "Late"})
			admitted <- err
		}()
		select {
		case err := <-admitted:
			t.Errorf("admission finished before subscriber joined: %v", err)
		case <-time.After(50 * time.Millisecond):
		}

		require.True(t, hub.Join(client))
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, <-admitted)

	var snapshot Snapshot
	require.Equal(t, brackets.MessageSnapshot, readMessage(t, client, &snapshot))
	assert.Equal(t, []string{"Early"}, models.TeamNames(snapshot.Roster.Teams))
	assert.False(t, snapshot.Bracket.Ready)
	assert.Equal(t, 3, snapshot.Bracket.TeamsNeeded)

	var update models.TournamentState
	require.Equal(t, brackets.MessageRosterUpdated, readMessage(t, client, &update))
	assert.Equal(t, []string{"Early", "Late"}, models.TeamNames(update.Teams))
}

func TestSubscribeJoinErrorIsReturned(t *testing.T) {
	f := newFixture(t, 4)
	joinErr := errors.New("join failed")

	err := f.brackets.Subscribe(context.Background(), func(*Snapshot) error { return joinErr })
	assert.ErrorIs(t, err, joinErr)
	assert.Empty(t, f.hub.types())
}
