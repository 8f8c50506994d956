package games

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

var icons = []string{"dog", "cat", "tree", "sun", "star", "moon", "car", "bus", "house", "boat", "fish", "bird"}

type Card struct {
	ID   string `json:"id"`
	Icon string `json:"icon"`
}

type Memory struct {
	Cards   []Card
	faceUp  []int
	matched map[string]bool
	turns   int
}

func memoryPairs(level int) int {
	return min(max(level+1, 3), 8)
}

func NewMemory(level int, rng *rand.Rand) *Memory {
	chosen := icons[:memoryPairs(level)]
	deck := append(slices.Clone(chosen), chosen...)
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	cards := make([]Card, len(deck))
	for i, icon := range deck {
		cards[i] = Card{ID: fmt.Sprintf("%s-%d", icon, i), Icon: icon}
	}
	return &Memory{Cards: cards, matched: map[string]bool{}}
}

type FlipResult struct {
	Ignored bool `json:"ignored,omitempty"`
	// Turn is set on the second flip of a turn.
	Turn    bool   `json:"turn,omitempty"`
	Matched bool   `json:"matched,omitempty"`
	Pair    []Card `json:"pair,omitempty"`
}

// Flip turns a card face-up. The second flip of a turn resolves it: a match stays revealed,
// a mismatch is turned back and reported in Pair so the player can see what was flipped.
func (m *Memory) Flip(index int) (FlipResult, error) {
	if index < 0 || index >= len(m.Cards) {
		return FlipResult{}, ErrNoSuchCard
	}
	card := m.Cards[index]
	if m.Complete() || len(m.faceUp) >= 2 || slices.Contains(m.faceUp, index) || m.matched[card.Icon] {
		return FlipResult{Ignored: true}, nil
	}
	m.faceUp = append(m.faceUp, index)
	if len(m.faceUp) < 2 {
		return FlipResult{}, nil
	}

	m.turns++
	first, second := m.Cards[m.faceUp[0]], m.Cards[m.faceUp[1]]
	res := FlipResult{Turn: true, Pair: []Card{first, second}}
	if first.Icon == second.Icon {
		m.matched[first.Icon] = true
		res.Matched = true
	}
	m.faceUp = m.faceUp[:0]
	return res, nil
}

func (m *Memory) Turns() int { return m.turns }

func (m *Memory) Complete() bool { return len(m.matched) == len(m.Cards)/2 }

func (m *Memory) Score() int {
	if !m.Complete() {
		return 0
	}
	return max(100-5*m.turns, 10)
}

type CardView struct {
	ID      string `json:"id"`
	Icon    string `json:"icon,omitempty"`
	FaceUp  bool   `json:"faceUp"`
	Matched bool   `json:"matched"`
}

type MemoryView struct {
	Cards []CardView `json:"cards"`
	Turns int        `json:"turns"`
	Pairs int        `json:"pairs"`
	Found int        `json:"found"`
}

// View hides the icon of every card that is neither face-up nor matched.
func (m *Memory) View() MemoryView {
	v := MemoryView{Turns: m.turns, Pairs: len(m.Cards) / 2, Found: len(m.matched)}
	for i, c := range m.Cards {
		cv := CardView{ID: c.ID, FaceUp: slices.Contains(m.faceUp, i), Matched: m.matched[c.Icon]}
		if cv.FaceUp || cv.Matched {
			cv.Icon = c.Icon
		}
		v.Cards = append(v.Cards, cv)
	}
	return v
}
