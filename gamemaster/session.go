package gamemaster

import (
	"fmt"
	"sync"
	"time"

	"tilemerge/game"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Snapshot is a read-only copy of a session for renderers.
type Snapshot struct {
	ID       string
	Grid     [][]int
	Score    int
	Moves    int
	Terminal bool
}

type Option func(s *Session)

// WithSource replaces the seeded spawn source.
func WithSource(src game.Source) Option {
	return func(s *Session) {
		if src != nil {
			s.src = src
		}
	}
}

// WithGrid starts the session from g instead of an empty grid with two
// spawned tiles.
func WithGrid(g *game.Grid) Option {
	return func(s *Session) {
		s.start = g
	}
}

// WithObserver registers fn to receive a snapshot at session start and after
// every move that changed the grid.
func WithObserver(fn func(Snapshot)) Option {
	return func(s *Session) {
		if fn != nil {
			s.observers = append(s.observers, fn)
		}
	}
}

// Session owns the live grid and score of one game. It is the only place
// where either is modified.
type Session struct {
	sync.RWMutex
	config    game.Config
	id        uuid.UUID
	grid      *game.Grid
	score     int
	moves     int
	terminal  bool
	src       game.Source
	spawner   *game.Spawner
	start     *game.Grid
	observers []func(Snapshot)
}

func NewSession(config game.Config, options ...Option) (*Session, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := &Session{config: config}
	for _, option := range options {
		option(s)
	}
	if s.src == nil {
		s.src = newSource(config.Seed)
	}

	spawner, err := game.NewSpawner(s.src, config.SpawnTwo)
	if err != nil {
		return nil, err
	}
	s.spawner = spawner

	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

func newSource(seed uint64) game.Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

// Reset starts a new game with a fresh ID and a zero score.
func (s *Session) Reset() error {
	s.Lock()
	var grid *game.Grid
	if s.start != nil {
		if s.start.Size() != s.config.Size {
			s.Unlock()
			return fmt.Errorf("start grid is %dx%d, configured size is %d: %w",
				s.start.Size(), s.start.Size(), s.config.Size, game.ErrInvalidConfig)
		}
		grid = s.start.Copy()
	} else {
		empty, err := game.NewGrid(s.config.Size)
		if err != nil {
			s.Unlock()
			return err
		}
		grid = empty
		s.spawner.Spawn(grid)
		s.spawner.Spawn(grid)
	}

	s.id = uuid.New()
	s.grid = grid
	s.score = 0
	s.moves = 0
	s.terminal = game.IsTerminal(grid)
	snapshot := s.snapshot()
	s.Unlock()

	log.Info().Str("session", snapshot.ID).Int("size", s.config.Size).Msg("session started")
	s.notify(snapshot)
	return nil
}

func (s *Session) ID() string {
	s.RLock()
	defer s.RUnlock()

	return s.id.String()
}

// Grid returns a copy of the live grid.
func (s *Session) Grid() *game.Grid {
	s.RLock()
	defer s.RUnlock()

	return s.grid.Copy()
}

func (s *Session) Score() int {
	s.RLock()
	defer s.RUnlock()

	return s.score
}

// Terminal reports whether the last move left the grid without a legal move.
func (s *Session) Terminal() bool {
	s.RLock()
	defer s.RUnlock()

	return s.terminal
}

func (s *Session) Snapshot() Snapshot {
	s.RLock()
	defer s.RUnlock()

	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		ID:       s.id.String(),
		Grid:     s.grid.Rows(),
		Score:    s.score,
		Moves:    s.moves,
		Terminal: s.terminal,
	}
}

func (s *Session) notify(snapshot Snapshot) {
	for _, fn := range s.observers {
		fn(snapshot)
	}
}
