package games

import (
	"errors"
	"math/rand/v2"
)

type Kind string

const (
	KindQuiz   Kind = "quiz"
	KindPuzzle Kind = "puzzle"
	KindMemory Kind = "memory"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

var (
	ErrUnknownGame      = errors.New("unknown game")
	ErrSessionNotFound  = errors.New("game session not found")
	ErrTooManySessions  = errors.New("too many live game sessions")
	ErrInvalidAction    = errors.New("invalid game action")
	ErrRoundComplete    = errors.New("round already complete")
	ErrRoundInProgress  = errors.New("round still in progress")
	ErrNoSuchCard       = errors.New("no such card")
	ErrMissingParameter = errors.New("missing action parameter")
)

type Info struct {
	Kind        Kind   `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var catalog = []Info{
	{Kind: KindQuiz, Title: "Math Quiz", Description: "Solve quick math problems."},
	{Kind: KindPuzzle, Title: "Word Scramble", Description: "Unscramble letters to find the word."},
	{Kind: KindMemory, Title: "Memory Match", Description: "Find all the matching pairs."},
}

// Catalog lists the playable games in display order.
func Catalog() []Info {
	out := make([]Info, len(catalog))
	copy(out, catalog)
	return out
}

func ParseKind(s string) (Kind, error) {
	for _, g := range catalog {
		if string(g.Kind) == s {
			return g.Kind, nil
		}
	}
	return "", ErrUnknownGame
}

func DifficultyFor(level int) Difficulty {
	switch {
	case level < 4:
		return DifficultyBeginner
	case level < 8:
		return DifficultyIntermediate
	default:
		return DifficultyAdvanced
	}
}

// round is one playthrough of a game at a fixed level.
type round interface {
	Complete() bool
	Score() int
}

func newRound(kind Kind, level int, rng *rand.Rand) (round, error) {
	switch kind {
	case KindQuiz:
		return NewQuiz(level, rng), nil
	case KindPuzzle:
		return NewScramble(level, rng), nil
	case KindMemory:
		return NewMemory(level, rng), nil
	default:
		return nil, ErrUnknownGame
	}
}

// between returns a uniform int in [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}
