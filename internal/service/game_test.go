package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"letterlinks/internal/achievement"
	"letterlinks/internal/board"
	"letterlinks/internal/domain"
	"letterlinks/internal/scoring"
	"letterlinks/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testPlayer = int64(123)

// rack of 2025-06-15: PRTOVZYNMOWAKMUIFE* with the powerup on the wildcard
var (
	tileT    = domain.TileID(2)
	tileO    = domain.TileID(3)
	tileWild = domain.TileID(18)
)

var testDay = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func center() domain.Position { return domain.Center() }

func at(row, col int) domain.Position { return domain.Position{Row: row, Col: col} }

type gameFixture struct {
	players     *testutil.MockPlayerRepository
	completions *testutil.MockCompletionRepository
	service     *GameService
	now         time.Time
}

func newGameFixture(t *testing.T, words ...string) *gameFixture {
	t.Helper()
	f := &gameFixture{
		players:     new(testutil.MockPlayerRepository),
		completions: new(testutil.MockCompletionRepository),
		now:         testDay,
	}
	f.service = NewGameService(f.players, f.completions, testutil.NewWordList(words...), GameOptions{
		Policy: scoring.DefaultPolicy(),
		Now:    func() time.Time { return f.now },
	}, testutil.NewTestLogger())
	return f
}

// fresh sets up a player with no progress and no completion today
func (f *gameFixture) fresh() {
	f.players.On("LoadProgress", testPlayer).Return(nil, nil)
	f.players.On("SaveProgress", testPlayer, mock.Anything).Return(nil)
	f.completions.On("GetCompletion", testPlayer, "20250615").Return(nil, nil)
}

func TestGameService_Start(t *testing.T) {
	f := newGameFixture(t)
	f.fresh()

	view, err := f.service.Start(testPlayer)

	require.NoError(t, err)
	assert.Equal(t, 20250615, view.Day.Seed())
	assert.Len(t, view.Squares, 16)
	assert.Len(t, view.Rack, 19)
	assert.Empty(t, view.Placed)
	assert.False(t, view.Completed)
	assert.Equal(t, []string{scoring.MsgNoTiles}, view.Result.Errors)

	// the second call reuses the session
	_, err = f.service.Start(testPlayer)
	require.NoError(t, err)
	f.players.AssertNumberOfCalls(t, "LoadProgress", 1)
	f.completions.AssertNumberOfCalls(t, "GetCompletion", 1)
}

func TestGameService_StartLoadError(t *testing.T) {
	f := newGameFixture(t)
	f.players.On("LoadProgress", testPlayer).Return(nil, fmt.Errorf("db error"))

	view, err := f.service.Start(testPlayer)

	assert.Error(t, err)
	assert.Nil(t, view)
}

func TestGameService_PlaceAndSubmit(t *testing.T) {
	f := newGameFixture(t, "to")
	f.fresh()
	f.completions.On("SaveCompletion", testPlayer, mock.AnythingOfType("*domain.Completion")).Return(nil)

	_, err := f.service.Place(testPlayer, tileT, center())
	require.NoError(t, err)
	view, err := f.service.Place(testPlayer, tileO, at(2, 3))
	require.NoError(t, err)

	assert.Len(t, view.Placed, 2)
	assert.Len(t, view.Rack, 17)
	require.Len(t, view.Result.ValidWords, 1)
	assert.Equal(t, "TO", view.Result.ValidWords[0].Letters)
	assert.True(t, view.Result.Submittable)

	view, err = f.service.Submit(testPlayer)
	require.NoError(t, err)
	assert.True(t, view.Completed)
	assert.Equal(t, view.Result.Score, view.Score)
	assert.Contains(t, view.NewAchievements, achievement.FirstGame)

	progress, err := f.service.Progress(testPlayer)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.Stats.GamesPlayed)
	assert.Equal(t, view.Score, progress.Stats.HighestScore)
	assert.Equal(t, 2, progress.Stats.TotalTilesPlaced)
	assert.Equal(t, "TO", progress.Stats.LongestWord)
	assert.True(t, progress.IsUnlocked(achievement.FirstGame))

	saved := f.completions.Calls[len(f.completions.Calls)-1].Arguments.Get(1).(*domain.Completion)
	assert.Equal(t, "20250615", saved.Date)
	assert.Len(t, saved.Placed, 2)
	assert.Len(t, saved.Rack, 17)

	// finished boards are read-only
	_, err = f.service.Submit(testPlayer)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	_, err = f.service.Remove(testPlayer, center())
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestGameService_SubmitNotReady(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *gameFixture)
	}{
		{
			name:  "empty board",
			setup: func(f *gameFixture) {},
		},
		{
			name: "invalid word",
			setup: func(f *gameFixture) {
				_, _ = f.service.Place(testPlayer, tileT, center())
				_, _ = f.service.Place(testPlayer, tileO, at(2, 1))
			},
		},
		{
			name: "center empty",
			setup: func(f *gameFixture) {
				_, _ = f.service.Place(testPlayer, tileT, at(0, 0))
				_, _ = f.service.Place(testPlayer, tileO, at(0, 1))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGameFixture(t, "to")
			f.fresh()
			tt.setup(f)

			view, err := f.service.Submit(testPlayer)

			assert.ErrorIs(t, err, ErrNotSubmittable)
			require.NotNil(t, view)
			assert.False(t, view.Completed)
			assert.False(t, view.Result.Submittable)
			f.completions.AssertNotCalled(t, "SaveCompletion", mock.Anything, mock.Anything)
		})
	}
}

func TestGameService_SubmitSaveError(t *testing.T) {
	f := newGameFixture(t, "to")
	f.fresh()
	f.completions.On("SaveCompletion", testPlayer, mock.Anything).Return(fmt.Errorf("db error"))

	_, err := f.service.Place(testPlayer, tileT, center())
	require.NoError(t, err)
	_, err = f.service.Place(testPlayer, tileO, at(2, 3))
	require.NoError(t, err)

	_, err = f.service.Submit(testPlayer)
	assert.Error(t, err)

	// the board stays playable
	view, err := f.service.Session(testPlayer)
	require.NoError(t, err)
	assert.False(t, view.Completed)
}

func TestGameService_LedgerErrors(t *testing.T) {
	f := newGameFixture(t)
	f.fresh()

	_, err := f.service.Place(testPlayer, tileT, center())
	require.NoError(t, err)

	_, err = f.service.Place(testPlayer, tileO, center())
	assert.True(t, errors.Is(err, board.ErrCellOccupied))

	_, err = f.service.Place(testPlayer, tileT, at(0, 0))
	assert.True(t, errors.Is(err, board.ErrTileNotInRack))

	_, err = f.service.Move(testPlayer, at(4, 4), at(0, 0))
	assert.True(t, errors.Is(err, board.ErrCellEmpty))

	_, err = f.service.ResolveWildcard(testPlayer, center(), 'A')
	assert.True(t, errors.Is(err, board.ErrNotWildcard))

	_, err = f.service.Place(testPlayer, tileO, at(5, 0))
	assert.True(t, errors.Is(err, board.ErrOutOfBounds))
}

func TestGameService_Wildcard(t *testing.T) {
	f := newGameFixture(t, "at")
	f.fresh()

	_, err := f.service.Place(testPlayer, tileWild, center())
	require.NoError(t, err)
	view, err := f.service.Place(testPlayer, tileT, at(2, 3))
	require.NoError(t, err)
	assert.Len(t, view.Result.PendingWords, 1)
	assert.Empty(t, view.Result.ValidWords)

	view, err = f.service.ResolveWildcard(testPlayer, center(), 'A')
	require.NoError(t, err)

	tile, ok := view.TileAt(center())
	require.True(t, ok)
	assert.Equal(t, 'A', tile.Assigned)
	require.Len(t, view.Result.ValidWords, 1)
	assert.Equal(t, "AT", view.Result.ValidWords[0].Letters)
	assert.Contains(t, view.NewAchievements, achievement.WildMaster)
}

func TestGameService_MoveRemoveClear(t *testing.T) {
	f := newGameFixture(t)
	f.fresh()

	_, err := f.service.Place(testPlayer, tileT, center())
	require.NoError(t, err)
	_, err = f.service.Place(testPlayer, tileO, at(2, 3))
	require.NoError(t, err)

	view, err := f.service.Move(testPlayer, at(2, 3), at(3, 2))
	require.NoError(t, err)
	_, ok := view.TileAt(at(3, 2))
	assert.True(t, ok)

	view, err = f.service.Remove(testPlayer, at(3, 2))
	require.NoError(t, err)
	assert.Len(t, view.Rack, 18)
	assert.Equal(t, tileO, view.Rack[len(view.Rack)-1].ID)

	view, err = f.service.Clear(testPlayer)
	require.NoError(t, err)
	assert.Empty(t, view.Placed)
	assert.Len(t, view.Rack, 19)

	_, err = f.service.Clear(testPlayer)
	assert.True(t, errors.Is(err, board.ErrBoardEmpty))

	progress, err := f.service.Progress(testPlayer)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.Stats.TotalTilesPlaced)
}

func TestGameService_Shuffle(t *testing.T) {
	f := newGameFixture(t)
	f.fresh()

	before, err := f.service.Start(testPlayer)
	require.NoError(t, err)

	after, err := f.service.Shuffle(testPlayer)
	require.NoError(t, err)
	assert.ElementsMatch(t, before.Rack, after.Rack)
}

func TestGameService_ResumeCompletion(t *testing.T) {
	squares := board.GenerateSpecialSquares(20250615)
	stored := testutil.NewTestCompletion("20250615", 0, "TO")
	ledger, err := board.Restore(stored.Rack, stored.Placed)
	require.NoError(t, err)
	recomputed := scoring.Validate(ledger, squares, testutil.NewWordList("to")).Score
	require.Greater(t, recomputed, 0)

	tests := []struct {
		name     string
		claimed  int
		expected int
	}{
		{name: "honest score", claimed: recomputed, expected: recomputed},
		{name: "tampered score", claimed: 999, expected: recomputed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGameFixture(t, "to")
			completion := testutil.NewTestCompletion("20250615", tt.claimed, "TO")
			f.players.On("LoadProgress", testPlayer).Return(domain.NewProgress(), nil)
			f.completions.On("GetCompletion", testPlayer, "20250615").Return(completion, nil)

			view, err := f.service.Start(testPlayer)

			require.NoError(t, err)
			assert.True(t, view.Completed)
			assert.Equal(t, tt.expected, view.Score)
			assert.Len(t, view.Placed, 2)

			_, err = f.service.Place(testPlayer, tileT, at(0, 0))
			assert.ErrorIs(t, err, ErrAlreadyCompleted)
		})
	}
}

func TestGameService_NewDay(t *testing.T) {
	f := newGameFixture(t)
	f.fresh()
	f.completions.On("GetCompletion", testPlayer, "20250616").Return(nil, nil)

	first, err := f.service.Start(testPlayer)
	require.NoError(t, err)

	f.now = testDay.Add(24 * time.Hour)

	_, err = f.service.Session(testPlayer)
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Equal(t, 1, f.service.EvictStale())

	second, err := f.service.Start(testPlayer)
	require.NoError(t, err)
	assert.Equal(t, 20250616, second.Day.Seed())
	assert.NotEqual(t, first.Rack, second.Rack)
}

func TestGameService_ProgressWithoutSession(t *testing.T) {
	f := newGameFixture(t)
	stored := domain.NewProgress()
	stored.Stats.Complete(77)
	f.players.On("LoadProgress", testPlayer).Return(stored, nil)

	progress, err := f.service.Progress(testPlayer)

	require.NoError(t, err)
	assert.Equal(t, 77, progress.Stats.HighestScore)
}

// blockingPlayers holds LoadProgress for one player until released
type blockingPlayers struct {
	*testutil.MockPlayerRepository
	blocked int64
	entered chan struct{}
	release chan struct{}
}

func (r *blockingPlayers) LoadProgress(playerID int64) (*domain.Progress, error) {
	if playerID == r.blocked {
		close(r.entered)
		<-r.release
	}
	return r.MockPlayerRepository.LoadProgress(playerID)
}

func TestGameService_SlowLoadDoesNotBlockOthers(t *testing.T) {
	const otherPlayer = int64(456)

	players := &blockingPlayers{
		MockPlayerRepository: new(testutil.MockPlayerRepository),
		blocked:              otherPlayer,
		entered:              make(chan struct{}),
		release:              make(chan struct{}),
	}
	completions := new(testutil.MockCompletionRepository)
	players.On("LoadProgress", mock.Anything).Return(nil, nil)
	players.On("SaveProgress", mock.Anything, mock.Anything).Return(nil)
	completions.On("GetCompletion", mock.Anything, "20250615").Return(nil, nil)

	svc := NewGameService(players, completions, testutil.NewWordList(), GameOptions{
		Policy: scoring.DefaultPolicy(),
		Now:    testutil.FixedClock(testDay),
	}, testutil.NewTestLogger())

	_, err := svc.Start(testPlayer)
	require.NoError(t, err)

	loaded := make(chan error, 1)
	go func() {
		_, err := svc.Start(otherPlayer)
		loaded <- err
	}()
	<-players.entered

	placed := make(chan error, 1)
	go func() {
		_, err := svc.Place(testPlayer, tileT, center())
		placed <- err
	}()

	select {
	case err := <-placed:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Place waited for another player's session to load")
	}

	close(players.release)
	require.NoError(t, <-loaded)
	view, err := svc.Session(otherPlayer)
	require.NoError(t, err)
	assert.Empty(t, view.Placed)
}

func TestGameService_ConcurrentStartLoadsOnce(t *testing.T) {
	f := newGameFixture(t)
	f.fresh()

	views := make(chan *View, 8)
	for i := 0; i < cap(views); i++ {
		go func() {
			v, err := f.service.Start(testPlayer)
			assert.NoError(t, err)
			views <- v
		}()
	}
	for i := 0; i < cap(views); i++ {
		require.NotNil(t, <-views)
	}

	// later callers either join the running load or find the cached session
	f.players.AssertNumberOfCalls(t, "LoadProgress", 1)
}

func TestGameService_CorruptCompletionClosesDay(t *testing.T) {
	duplicated := testutil.NewTestCompletion("20250615", 50, "TO")
	duplicated.Placed = append(duplicated.Placed,
		domain.NewPlacedTile(duplicated.Placed[0].Tile, at(3, 2)))

	tests := []struct {
		name       string
		completion *domain.Completion
	}{
		{name: "duplicated tile", completion: duplicated},
		{name: "unreadable date", completion: testutil.NewTestCompletion("June 15", 50, "TO")},
		{name: "other day", completion: testutil.NewTestCompletion("20250614", 50, "TO")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGameFixture(t, "to")
			f.players.On("LoadProgress", testPlayer).Return(domain.NewProgress(), nil)
			f.completions.On("GetCompletion", testPlayer, "20250615").Return(tt.completion, nil)

			view, err := f.service.Start(testPlayer)
			require.NoError(t, err)
			assert.True(t, view.Completed)
			assert.Equal(t, 0, view.Score)
			assert.Empty(t, view.Placed)

			_, err = f.service.Submit(testPlayer)
			assert.ErrorIs(t, err, ErrAlreadyCompleted)
			_, err = f.service.Place(testPlayer, tileT, center())
			assert.ErrorIs(t, err, ErrAlreadyCompleted)
			f.completions.AssertNotCalled(t, "SaveCompletion", mock.Anything, mock.Anything)

			progress, err := f.service.Progress(testPlayer)
			require.NoError(t, err)
			assert.Equal(t, 0, progress.Stats.GamesPlayed)
		})
	}
}
