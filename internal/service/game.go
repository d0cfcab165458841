package service

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"letterlinks/internal/achievement"
	"letterlinks/internal/board"
	"letterlinks/internal/domain"
	"letterlinks/internal/repository"
	"letterlinks/internal/rng"
	"letterlinks/internal/scoring"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotSubmittable   = errors.New("board is not ready to submit")
	ErrAlreadyCompleted = errors.New("today's board is already completed")
	ErrNoSession        = errors.New("no game in progress")
)

// GameOptions tunes the game service
type GameOptions struct {
	Policy scoring.Policy
	// Location decides when the daily board changes
	Location *time.Location
	// Now defaults to time.Now
	Now func() time.Time
}

// View is a snapshot of a player's board for rendering
type View struct {
	Day       domain.Day
	Squares   []domain.SpecialSquare
	Rack      []domain.LetterTile
	Placed    []domain.PlacedTile
	Result    domain.ValidationResult
	Completed bool
	Score     int
	// NewAchievements holds what the last call unlocked
	NewAchievements []domain.AchievementID
}

// TileAt returns the placed tile at pos
func (v *View) TileAt(pos domain.Position) (domain.PlacedTile, bool) {
	for _, p := range v.Placed {
		if p.Position == pos {
			return p, true
		}
	}
	return domain.PlacedTile{}, false
}

type session struct {
	mu         sync.Mutex
	day        domain.Day
	daily      board.Daily
	ledger     *board.Ledger
	result     domain.ValidationResult
	progress   *domain.Progress
	completion *domain.Completion
}

// GameService runs the daily puzzle for every player.
// Each player has one session; calls for the same player are serialised.
type GameService struct {
	players     repository.PlayerRepository
	completions repository.CompletionRepository
	dict        scoring.Dictionary
	policy      scoring.Policy
	loc         *time.Location
	now         func() time.Time
	logger      *zap.Logger

	mu       sync.Mutex
	sessions map[int64]*session
	// loads builds sessions outside mu, one load per player at a time
	loads singleflight.Group
}

// NewGameService creates a new game service
func NewGameService(
	players repository.PlayerRepository,
	completions repository.CompletionRepository,
	dict scoring.Dictionary,
	opts GameOptions,
	logger *zap.Logger,
) *GameService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &GameService{
		players:     players,
		completions: completions,
		dict:        dict,
		policy:      opts.Policy,
		loc:         opts.Location,
		now:         opts.Now,
		logger:      logger,
		sessions:    make(map[int64]*session),
	}
}

// Today returns the current puzzle day
func (s *GameService) Today() domain.Day {
	return domain.DayOf(s.now(), s.loc)
}

// Start returns today's board for the player, creating or resuming it as needed
func (s *GameService) Start(playerID int64) (*View, error) {
	sess, err := s.session(playerID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(), nil
}

// Session returns the board the player is playing without starting a new one
func (s *GameService) Session(playerID int64) (*View, error) {
	sess, ok := s.cached(playerID, s.Today())
	if !ok {
		return nil, ErrNoSession
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(), nil
}

// Place puts a rack tile on the board
func (s *GameService) Place(playerID int64, id domain.TileID, pos domain.Position) (*View, error) {
	return s.mutate(playerID, func(sess *session) error {
		if err := sess.ledger.Place(id, pos); err != nil {
			return fmt.Errorf("place tile: %w", err)
		}
		sess.progress.Stats.TotalTilesPlaced++
		return nil
	})
}

// Move moves a placed tile to another cell
func (s *GameService) Move(playerID int64, from, to domain.Position) (*View, error) {
	return s.mutate(playerID, func(sess *session) error {
		if err := sess.ledger.Move(from, to); err != nil {
			return fmt.Errorf("move tile: %w", err)
		}
		return nil
	})
}

// Remove returns a placed tile to the rack
func (s *GameService) Remove(playerID int64, pos domain.Position) (*View, error) {
	return s.mutate(playerID, func(sess *session) error {
		if _, err := sess.ledger.Remove(pos); err != nil {
			return fmt.Errorf("remove tile: %w", err)
		}
		sess.progress.Stats.TotalTilesPlaced--
		return nil
	})
}

// ResolveWildcard sets the letter of a placed wildcard
func (s *GameService) ResolveWildcard(playerID int64, pos domain.Position, letter rune) (*View, error) {
	return s.mutate(playerID, func(sess *session) error {
		if err := sess.ledger.ResolveWildcard(pos, letter); err != nil {
			return fmt.Errorf("resolve wildcard: %w", err)
		}
		return nil
	})
}

// Shuffle reorders the rack
func (s *GameService) Shuffle(playerID int64) (*View, error) {
	return s.mutate(playerID, func(sess *session) error {
		if err := sess.ledger.Shuffle(rng.New(int(s.now().UnixNano()))); err != nil {
			return fmt.Errorf("shuffle rack: %w", err)
		}
		return nil
	})
}

// Clear returns every placed tile to the rack
func (s *GameService) Clear(playerID int64) (*View, error) {
	return s.mutate(playerID, func(sess *session) error {
		n := len(sess.ledger.Placed())
		if err := sess.ledger.Clear(); err != nil {
			return fmt.Errorf("clear board: %w", err)
		}
		sess.progress.Stats.TotalTilesPlaced -= n
		return nil
	})
}

// Submit finishes today's board.
// When the board cannot be submitted the view is returned with ErrNotSubmittable.
func (s *GameService) Submit(playerID int64) (*View, error) {
	sess, err := s.session(playerID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.completion != nil {
		return sess.view(), ErrAlreadyCompleted
	}

	sess.validate(s.dict)
	if !sess.result.Submittable {
		return sess.view(), ErrNotSubmittable
	}

	completion := &domain.Completion{
		Score:       sess.result.Score,
		Date:        sess.day.DateString(),
		Placed:      sess.ledger.Placed(),
		Rack:        sess.ledger.Rack(),
		CompletedAt: s.now(),
	}
	if err := s.completions.SaveCompletion(playerID, completion); err != nil {
		s.logger.Error("Failed to save completion", zap.Int64("player_id", playerID), zap.Error(err))
		return nil, fmt.Errorf("save completion: %w", err)
	}
	sess.completion = completion
	sess.progress.Stats.Complete(completion.Score)

	view := sess.view()
	view.NewAchievements = s.unlock(playerID, sess, true)
	s.saveProgress(playerID, sess.progress)

	s.logger.Info("Board completed",
		zap.Int64("player_id", playerID),
		zap.String("date", completion.Date),
		zap.Int("score", completion.Score),
	)
	return view, nil
}

// Progress returns the stats and achievements of a player
func (s *GameService) Progress(playerID int64) (*domain.Progress, error) {
	s.mu.Lock()
	sess, ok := s.sessions[playerID]
	s.mu.Unlock()
	if ok {
		sess.mu.Lock()
		defer sess.mu.Unlock()
		p := *sess.progress
		p.Achievements = make(map[domain.AchievementID]bool, len(sess.progress.Achievements))
		for id, v := range sess.progress.Achievements {
			p.Achievements[id] = v
		}
		return &p, nil
	}
	return s.loadProgress(playerID)
}

// EvictStale drops sessions of earlier days and returns how many were dropped
func (s *GameService) EvictStale() int {
	today := s.Today().Seed()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if sess.day.Seed() != today {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// mutate applies op to an unfinished board, then re-validates and records progress
func (s *GameService) mutate(playerID int64, op func(sess *session) error) (*View, error) {
	sess, err := s.session(playerID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.completion != nil {
		return sess.view(), ErrAlreadyCompleted
	}
	if err := op(sess); err != nil {
		return nil, err
	}

	sess.validate(s.dict)
	sess.progress.Stats.Observe(sess.result)

	view := sess.view()
	view.NewAchievements = s.unlock(playerID, sess, false)
	s.saveProgress(playerID, sess.progress)
	return view, nil
}

func (s *GameService) unlock(playerID int64, sess *session, completed bool) []domain.AchievementID {
	state := achievement.State{
		Completed:  completed,
		Score:      sess.result.Score,
		ValidWords: sess.result.ValidWords,
		Placed:     sess.ledger.Placed(),
		Rack:       sess.ledger.Rack(),
		Squares:    sess.daily.Squares,
	}
	fresh := sess.progress.Unlock(achievement.Evaluate(state, sess.progress)...)
	for _, id := range fresh {
		s.logger.Info("Achievement unlocked", zap.Int64("player_id", playerID), zap.String("achievement", string(id)))
	}
	return fresh
}

// cached returns the player's session if it belongs to day
func (s *GameService) cached(playerID int64, day domain.Day) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[playerID]
	if !ok || sess.day.Seed() != day.Seed() {
		return nil, false
	}
	return sess, true
}

// session returns the player's session for today, building it on first use.
// Storage is read without holding mu so a slow load only delays its own player.
func (s *GameService) session(playerID int64) (*session, error) {
	day := s.Today()
	if sess, ok := s.cached(playerID, day); ok {
		return sess, nil
	}

	key := strconv.FormatInt(playerID, 10) + "/" + day.DateString()
	v, err, _ := s.loads.Do(key, func() (interface{}, error) {
		if sess, ok := s.cached(playerID, day); ok {
			return sess, nil
		}
		sess, err := s.newSession(playerID, day)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.sessions[playerID] = sess
		s.mu.Unlock()
		return sess, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*session), nil
}

func (s *GameService) newSession(playerID int64, day domain.Day) (*session, error) {
	progress, err := s.loadProgress(playerID)
	if err != nil {
		return nil, err
	}

	sess := &session{
		day:      day,
		daily:    board.GenerateDaily(day.Seed()),
		progress: progress,
	}

	completion, err := s.completions.GetCompletion(playerID, day.DateString())
	if err != nil {
		s.logger.Error("Failed to load completion", zap.Int64("player_id", playerID), zap.Error(err))
		return nil, fmt.Errorf("load completion: %w", err)
	}

	if completion == nil {
		sess.ledger = board.NewLedger(sess.daily.Rack)
		sess.validate(s.dict)
		return sess, nil
	}

	ledger, err := restoreCompletion(day, completion)
	if err != nil {
		// a corrupt completion still closes the day
		s.logger.Warn("Stored completion is corrupt, closing the board with no score",
			zap.Int64("player_id", playerID), zap.String("date", completion.Date), zap.Error(err))
		sess.ledger = board.NewLedger(sess.daily.Rack)
		sess.validate(s.dict)
		sess.completion = &domain.Completion{
			Date:        day.DateString(),
			Rack:        sess.daily.Rack,
			CompletedAt: completion.CompletedAt,
		}
		return sess, nil
	}
	sess.ledger = ledger
	sess.validate(s.dict)

	claimed := completion.Score
	completion.Score = s.policy.Clamp(claimed, sess.result.Score, len(completion.Placed))
	if completion.Score != claimed {
		s.logger.Warn("Stored score does not match the board",
			zap.Int64("player_id", playerID),
			zap.Int("claimed", claimed),
			zap.Int("recomputed", sess.result.Score),
			zap.Int("kept", completion.Score),
		)
	}
	sess.completion = completion
	return sess, nil
}

// restoreCompletion rebuilds the board of a completion stored for day
func restoreCompletion(day domain.Day, c *domain.Completion) (*board.Ledger, error) {
	stored, err := domain.ParseDay(c.Date)
	if err != nil {
		return nil, fmt.Errorf("parse completion date: %w", err)
	}
	if stored.Seed() != day.Seed() {
		return nil, fmt.Errorf("completion is for %s, not %s", c.Date, day.DateString())
	}
	return board.Restore(c.Rack, c.Placed)
}

func (s *GameService) loadProgress(playerID int64) (*domain.Progress, error) {
	progress, err := s.players.LoadProgress(playerID)
	if err != nil {
		s.logger.Error("Failed to load progress", zap.Int64("player_id", playerID), zap.Error(err))
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if progress == nil {
		progress = domain.NewProgress()
	}
	return progress, nil
}

func (s *GameService) saveProgress(playerID int64, progress *domain.Progress) {
	if err := s.players.SaveProgress(playerID, progress); err != nil {
		s.logger.Error("Failed to save progress", zap.Int64("player_id", playerID), zap.Error(err))
	}
}

func (sess *session) validate(dict scoring.Dictionary) {
	sess.result = scoring.Validate(sess.ledger, sess.daily.Squares, dict)
}

func (sess *session) view() *View {
	v := &View{
		Day:     sess.day,
		Squares: sess.daily.Squares,
		Rack:    sess.ledger.Rack(),
		Placed:  sess.ledger.Placed(),
		Result:  sess.result,
		Score:   sess.result.Score,
	}
	if sess.completion != nil {
		v.Completed = true
		v.Score = sess.completion.Score
	}
	return v
}
