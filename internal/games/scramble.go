package games

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/samber/lo"
)

const (
	scramblePuzzles = 5
	scramblePoints  = 10
	shuffleAttempts = 16
)

var words = []string{
	"cat", "dog", "sun", "run", "cup", "egg", "pen", "bed", "tree", "moon",
	"apple", "house", "water", "earth", "train", "smile", "happy", "cloud", "school", "friend",
	"banana", "orange", "purple", "window", "teacher", "student", "computer", "learning", "puzzle", "journey",
}

type Puzzle struct {
	Word      string `json:"-"`
	Scrambled string `json:"scrambled"`
	Hint      string `json:"hint"`
}

type Scramble struct {
	Puzzles []Puzzle
	current int
}

func wordPool(level int) []string {
	return lo.Filter(words, func(w string, _ int) bool {
		n := len(w)
		switch {
		case level < 3:
			return n <= 4
		case level < 6:
			return n >= 5 && n <= 6
		default:
			return n > 6
		}
	})
}

func pickWords(level int, rng *rand.Rand) []string {
	pool := wordPool(level)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	picked := pool[:min(scramblePuzzles, len(pool))]
	for len(picked) < scramblePuzzles {
		w := words[rng.IntN(len(words))]
		if !lo.Contains(picked, w) {
			picked = append(picked, w)
		}
	}
	return picked
}

func NewScramble(level int, rng *rand.Rand) *Scramble {
	s := &Scramble{}
	for _, w := range pickWords(level, rng) {
		s.Puzzles = append(s.Puzzles, Puzzle{
			Word:      w,
			Scrambled: scrambleWord(w, rng),
			Hint:      fmt.Sprintf("A %d-letter word.", len(w)),
		})
	}
	return s
}

// scrambleWord shuffles letters until the result differs from w, giving up after a few tries
// for words with no distinct permutation.
func scrambleWord(w string, rng *rand.Rand) string {
	letters := []rune(w)
	if len(letters) < 2 {
		return w
	}
	for range shuffleAttempts {
		rng.Shuffle(len(letters), func(i, j int) { letters[i], letters[j] = letters[j], letters[i] })
		if s := string(letters); s != w {
			return s
		}
	}
	return string(letters)
}

// Guess checks the current puzzle. A wrong guess leaves the puzzle in place.
func (s *Scramble) Guess(guess string) (bool, error) {
	if s.Complete() {
		return false, ErrRoundComplete
	}
	if !strings.EqualFold(strings.TrimSpace(guess), s.Puzzles[s.current].Word) {
		return false, nil
	}
	s.current++
	return true, nil
}

func (s *Scramble) Complete() bool { return s.current >= len(s.Puzzles) }

func (s *Scramble) Score() int {
	if !s.Complete() {
		return 0
	}
	return len(s.Puzzles) * scramblePoints
}

type PuzzleView struct {
	Index  int     `json:"index"`
	Total  int     `json:"total"`
	Puzzle *Puzzle `json:"puzzle,omitempty"`
}

func (s *Scramble) View() PuzzleView {
	v := PuzzleView{Index: s.current, Total: len(s.Puzzles)}
	if !s.Complete() {
		cur := s.Puzzles[s.current]
		v.Puzzle = &cur
	}
	return v
}
