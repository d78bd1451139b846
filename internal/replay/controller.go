package replay

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lgbarn/chess-replay-go/internal/chess"
	"github.com/lgbarn/chess-replay-go/internal/config"
	"github.com/lgbarn/chess-replay-go/internal/errors"
	"github.com/lgbarn/chess-replay-go/internal/parser"
	"github.com/lgbarn/chess-replay-go/internal/source"
)

// Load reads, parses and validates the single game in the file at path.
// Compressed files are detected by extension.
func Load(path string) (*Session, error) {
	rc, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	s, err := LoadReader(rc)
	if err != nil {
		var ge *errors.GameError
		if errors.As(err, &ge) {
			ge.File = path
			return nil, ge
		}
		return nil, &errors.GameError{Err: err, File: path}
	}
	return s, nil
}

// LoadReader parses and validates the single game read from r.
func LoadReader(r io.Reader) (*Session, error) {
	game, err := parser.Parse(r)
	if err != nil {
		return nil, &errors.GameError{Err: err, Stage: "parse"}
	}
	return NewSession(game)
}

// Summary describes a freshly loaded game.
type Summary struct {
	ID     string
	Tags   map[string]string
	Moves  []string
	Result chess.Result
}

// Event is delivered to a Listener after the cursor moves.
type Event struct {
	SessionID string
	Cursor    int
	Len       int
	Move      string // full text of the move played or taken back
	Autoplay  bool
	Ended     bool
	Err       error // set when autoplay stopped on a failed move
}

// Listener is notified after every cursor change. Autoplay events arrive
// on the autoplay goroutine; OnMove must not call StopAutoplay, Wait or Load.
type Listener interface {
	OnMove(Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(Event)

// OnMove calls f(e).
func (f ListenerFunc) OnMove(e Event) { f(e) }

// Option configures a Controller.
type Option func(*Controller)

// WithListener sets the listener notified after every move.
func WithListener(l Listener) Option {
	return func(c *Controller) {
		c.listener = l
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// Controller serializes access to the current session. Every method is
// safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	session  *Session
	id       string
	logger   zerolog.Logger
	listener Listener

	cancel context.CancelFunc // nil unless autoplay is running
	done   chan struct{}      // closed when the latest autoplay run exits
}

// NewController creates a controller with no game loaded.
func NewController(opts ...Option) *Controller {
	c := &Controller{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load replaces the current game with the one in the file at path. On
// failure the previous game is kept.
func (c *Controller) Load(path string) (*Summary, error) {
	s, err := Load(path)
	if err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("load failed")
		return nil, err
	}
	return c.install(s, path), nil
}

// LoadReader replaces the current game with the one read from r. On
// failure the previous game is kept.
func (c *Controller) LoadReader(name string, r io.Reader) (*Summary, error) {
	s, err := LoadReader(r)
	if err != nil {
		c.logger.Warn().Err(err).Str("path", name).Msg("load failed")
		return nil, err
	}
	return c.install(s, name), nil
}

// install swaps in a validated session, stopping any autoplay over the
// previous one.
func (c *Controller) install(s *Session, name string) *Summary {
	c.StopAutoplay()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = s
	c.id = uuid.NewString()
	c.logger.Info().
		Str("session", c.id).
		Str("path", name).
		Int("plies", s.Len()).
		Stringer("result", s.Result()).
		Msg("game loaded")
	return &Summary{ID: c.id, Tags: s.Tags(), Moves: s.FullTextList(), Result: s.Result()}
}

// PlayOne plays the next move.
func (c *Controller) PlayOne() error {
	return c.step(false, false)
}

// TakeBackOne takes back the last move.
func (c *Controller) TakeBackOne() error {
	return c.step(true, false)
}

// step moves the cursor by one ply under the lock and notifies the
// listener outside it.
func (c *Controller) step(back, autoplay bool) error {
	c.mu.Lock()
	if c.session == nil {
		c.mu.Unlock()
		return errors.ErrNoGame
	}
	s := c.session
	before := s.Cursor()
	var err error
	if back {
		err = s.TakeBackTurn()
	} else {
		err = s.PlayTurn()
	}
	ev := c.event(before, autoplay)
	listener := c.listener
	c.mu.Unlock()

	if err != nil {
		c.logger.Error().Err(err).Str("session", ev.SessionID).Msg("replay failed")
		return err
	}
	if listener != nil && ev.Cursor != before {
		listener.OnMove(ev)
	}
	return nil
}

// event describes the cursor change from before. Callers hold c.mu.
func (c *Controller) event(before int, autoplay bool) Event {
	s := c.session
	ev := Event{
		SessionID: c.id,
		Cursor:    s.Cursor(),
		Len:       s.Len(),
		Autoplay:  autoplay,
		Ended:     s.HasEnded(),
	}
	idx := min(before, s.Cursor())
	if idx < s.Len() && before != s.Cursor() {
		ev.Move = s.Moves()[idx].FullText()
	}
	return ev
}

// StartAutoplay plays one move per interval until the game ends or
// StopAutoplay is called. Intervals below config.MinTurnTime are raised to
// it. Starting while autoplay is already running does nothing.
func (c *Controller) StartAutoplay(interval time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return errors.ErrNoGame
	}
	if c.cancel != nil {
		return nil
	}
	interval = max(interval, config.MinTurnTime)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.cancel, c.done = cancel, done
	c.logger.Debug().Str("session", c.id).Dur("interval", interval).Msg("autoplay started")
	go c.autoplay(ctx, interval, done)
	return nil
}

// StopAutoplay stops autoplay and waits for it to finish the move in
// progress. It does nothing when autoplay is not running.
func (c *Controller) StopAutoplay() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Autoplaying reports whether autoplay is running.
func (c *Controller) Autoplaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

// Wait blocks until the latest autoplay run has ended and delivered its
// last event.
func (c *Controller) Wait() {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (c *Controller) autoplay(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if !c.autoplayStep(ctx, done) {
			return
		}
	}
}

// autoplayStep plays one move and reports whether autoplay continues. A
// cancellation observed under the lock wins over the pending tick.
func (c *Controller) autoplayStep(ctx context.Context, done chan struct{}) bool {
	c.mu.Lock()
	if ctx.Err() != nil {
		c.mu.Unlock()
		return false
	}
	s := c.session
	before := s.Cursor()
	err := s.PlayTurn()
	ev := c.event(before, true)
	ev.Err = err
	finished := err != nil || s.HasEnded()
	if finished && c.cancel != nil && c.done == done {
		c.cancel()
		c.cancel = nil
	}
	listener := c.listener
	c.mu.Unlock()

	if err != nil {
		c.logger.Error().Err(err).Str("session", ev.SessionID).Msg("autoplay stopped")
	} else if finished {
		c.logger.Debug().Str("session", ev.SessionID).Msg("autoplay reached the end")
	}
	if listener != nil && (err != nil || ev.Cursor != before) {
		listener.OnMove(ev)
	}
	return !finished
}

// SessionID returns the ID of the current game, or "" when none is loaded.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

// Seek moves the cursor to ply n of the current game.
func (c *Controller) Seek(n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return errors.ErrNoGame
	}
	return c.session.Seek(n)
}

// LastMove returns the squares of the most recently played move.
func (c *Controller) LastMove() (from, to chess.Square, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return chess.Square{}, chess.Square{}, false
	}
	return c.session.LastMove()
}

// HasStarted reports whether a move of the current game has been played.
func (c *Controller) HasStarted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil && c.session.HasStarted()
}

// HasEnded reports whether every move of the current game has been played.
func (c *Controller) HasEnded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil && c.session.HasEnded()
}

// Snapshot returns the placement of the current game at its cursor.
func (c *Controller) Snapshot() (chess.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return chess.Snapshot{}, errors.ErrNoGame
	}
	return c.session.Snapshot(), nil
}

// View runs fn with the current session under the lock. fn must not keep
// the session or call back into the controller.
func (c *Controller) View(fn func(s *Session)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return errors.ErrNoGame
	}
	fn(c.session)
	return nil
}
