package games

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/sahayak-backend/internal/observability"
	"github.com/yungbote/sahayak-backend/internal/platform/logger"
)

const (
	ActionAnswer    = "answer"
	ActionGuess     = "guess"
	ActionFlip      = "flip"
	ActionPlayAgain = "play_again"
	ActionNextLevel = "next_level"
)

type Action struct {
	Type   string `json:"type" binding:"required"`
	Option *int   `json:"option,omitempty"`
	Guess  string `json:"guess,omitempty"`
	Card   *int   `json:"card,omitempty"`
}

// Outcome describes the effect of the last action on the round.
type Outcome struct {
	Action        string      `json:"action"`
	Correct       *bool       `json:"correct,omitempty"`
	CorrectAnswer *int        `json:"correctAnswer,omitempty"`
	Flip          *FlipResult `json:"flip,omitempty"`
	RoundComplete bool        `json:"roundComplete,omitempty"`
}

type State struct {
	ID         string      `json:"id"`
	Game       Kind        `json:"game"`
	Level      int         `json:"level"`
	Difficulty Difficulty  `json:"difficulty"`
	TotalScore int         `json:"totalScore"`
	RoundScore int         `json:"roundScore"`
	Complete   bool        `json:"complete"`
	Quiz       *QuizView   `json:"quiz,omitempty"`
	Puzzle     *PuzzleView `json:"puzzle,omitempty"`
	Memory     *MemoryView `json:"memory,omitempty"`
	Last       *Outcome    `json:"last,omitempty"`
}

type session struct {
	id         string
	game       Kind
	level      int
	total      int
	round      round
	scored     bool
	last       *Outcome
	lastActive time.Time
}

type Options struct {
	TTL         time.Duration
	MaxSessions int
	Rand        *rand.Rand
	Now         func() time.Time
	Log         *logger.Logger
	Metrics     *observability.Metrics
	OnExpire    func(id string)
}

// Arcade owns every live game session. OnExpire, when set, is called without the lock held for
// each session the idle sweep removes. Sessions live in memory only and expire after TTL of
// inactivity.
type Arcade struct {
	mu       sync.Mutex
	sessions map[string]*session
	rng      *rand.Rand
	ttl      time.Duration
	max      int
	now      func() time.Time
	log      *logger.Logger
	metrics  *observability.Metrics
	onExpire func(id string)
}

func NewArcade(o Options) *Arcade {
	if o.TTL <= 0 {
		o.TTL = 2 * time.Hour
	}
	if o.MaxSessions <= 0 {
		o.MaxSessions = 1000
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return &Arcade{
		sessions: map[string]*session{},
		rng:      o.Rand,
		ttl:      o.TTL,
		max:      o.MaxSessions,
		now:      o.Now,
		log:      o.Log.With("component", "games"),
		metrics:  o.Metrics,
		onExpire: o.OnExpire,
	}
}

func (a *Arcade) Create(kind Kind) (State, error) {
	st, expired, err := a.create(kind)
	a.notifyExpired(expired)
	return st, err
}

func (a *Arcade) create(kind Kind) (State, []string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	expired := a.sweepLocked()
	if len(a.sessions) >= a.max {
		return State{}, expired, ErrTooManySessions
	}
	r, err := newRound(kind, 1, a.rng)
	if err != nil {
		return State{}, expired, err
	}
	s := &session{id: uuid.NewString(), game: kind, level: 1, round: r, lastActive: a.now()}
	a.sessions[s.id] = s
	a.metrics.SetGameSessions(len(a.sessions))
	a.log.Debug("game session created", "session_id", s.id, "game", kind)
	return s.state(), expired, nil
}

func (a *Arcade) Get(id string) (State, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, err := a.lookupLocked(id)
	if err != nil {
		return State{}, err
	}
	return s.state(), nil
}

func (a *Arcade) Act(id string, act Action) (State, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, err := a.lookupLocked(id)
	if err != nil {
		return State{}, err
	}
	s.lastActive = a.now()
	out, err := a.apply(s, act)
	if err != nil {
		return State{}, err
	}
	if s.round.Complete() && !s.scored {
		s.scored = true
		s.total += s.round.Score()
		out.RoundComplete = true
		a.log.Debug("game round complete", "session_id", s.id, "game", s.game, "level", s.level, "round_score", s.round.Score())
	}
	s.last = &out
	return s.state(), nil
}

func (a *Arcade) apply(s *session, act Action) (Outcome, error) {
	out := Outcome{Action: act.Type}
	switch act.Type {
	case ActionAnswer:
		q, ok := s.round.(*Quiz)
		if !ok {
			return out, fmt.Errorf("%w: %s is not valid for %s", ErrInvalidAction, act.Type, s.game)
		}
		if act.Option == nil {
			return out, fmt.Errorf("%w: option", ErrMissingParameter)
		}
		correct, expected, err := q.Answer(*act.Option)
		if err != nil {
			return out, err
		}
		out.Correct, out.CorrectAnswer = &correct, &expected
	case ActionGuess:
		p, ok := s.round.(*Scramble)
		if !ok {
			return out, fmt.Errorf("%w: %s is not valid for %s", ErrInvalidAction, act.Type, s.game)
		}
		if act.Guess == "" {
			return out, fmt.Errorf("%w: guess", ErrMissingParameter)
		}
		correct, err := p.Guess(act.Guess)
		if err != nil {
			return out, err
		}
		out.Correct = &correct
	case ActionFlip:
		m, ok := s.round.(*Memory)
		if !ok {
			return out, fmt.Errorf("%w: %s is not valid for %s", ErrInvalidAction, act.Type, s.game)
		}
		if act.Card == nil {
			return out, fmt.Errorf("%w: card", ErrMissingParameter)
		}
		res, err := m.Flip(*act.Card)
		if err != nil {
			return out, err
		}
		out.Flip = &res
	case ActionPlayAgain:
		return out, a.restart(s, s.level)
	case ActionNextLevel:
		if !s.round.Complete() {
			return out, ErrRoundInProgress
		}
		return out, a.restart(s, s.level+1)
	default:
		return out, fmt.Errorf("%w: %q", ErrInvalidAction, act.Type)
	}
	return out, nil
}

func (a *Arcade) restart(s *session, level int) error {
	r, err := newRound(s.game, level, a.rng)
	if err != nil {
		return err
	}
	s.level, s.round, s.scored = level, r, false
	return nil
}

func (a *Arcade) End(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, err := a.lookupLocked(id); err != nil {
		return err
	}
	delete(a.sessions, id)
	a.metrics.SetGameSessions(len(a.sessions))
	return nil
}

func (a *Arcade) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.sessions)
}

// Sweep drops expired sessions and returns their ids.
func (a *Arcade) Sweep() []string {
	a.mu.Lock()
	expired := a.sweepLocked()
	a.mu.Unlock()
	a.notifyExpired(expired)
	return expired
}

func (a *Arcade) notifyExpired(ids []string) {
	if a.onExpire == nil {
		return
	}
	for _, id := range ids {
		a.onExpire(id)
	}
}

// Run sweeps expired sessions until ctx is cancelled.
func (a *Arcade) Run(ctx context.Context) {
	interval := max(a.ttl/4, time.Second)
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if expired := a.Sweep(); len(expired) > 0 {
				a.log.Info("expired game sessions removed", "count", len(expired))
			}
		}
	}
}

func (a *Arcade) sweepLocked() []string {
	cutoff := a.now().Add(-a.ttl)
	var expired []string
	for id, s := range a.sessions {
		if s.lastActive.Before(cutoff) {
			delete(a.sessions, id)
			expired = append(expired, id)
		}
	}
	if len(expired) > 0 {
		a.metrics.SetGameSessions(len(a.sessions))
	}
	return expired
}

func (a *Arcade) lookupLocked(id string) (*session, error) {
	s, ok := a.sessions[id]
	if !ok || s.lastActive.Before(a.now().Add(-a.ttl)) {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (s *session) state() State {
	st := State{
		ID:         s.id,
		Game:       s.game,
		Level:      s.level,
		Difficulty: DifficultyFor(s.level),
		TotalScore: s.total,
		RoundScore: s.round.Score(),
		Complete:   s.round.Complete(),
		Last:       s.last,
	}
	switch r := s.round.(type) {
	case *Quiz:
		v := r.View()
		st.Quiz = &v
	case *Scramble:
		v := r.View()
		st.Puzzle = &v
	case *Memory:
		v := r.View()
		st.Memory = &v
	}
	return st
}
