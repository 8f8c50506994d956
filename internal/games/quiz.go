package games

import (
	"fmt"
	"math/rand/v2"

	"github.com/samber/lo"
)

const (
	quizQuestions = 5
	quizPoints    = 10
	quizOptions   = 4
)

type Question struct {
	Text    string `json:"text"`
	Options []int  `json:"options"`
	Answer  int    `json:"-"`
}

type Quiz struct {
	Questions []Question
	current   int
	score     int
}

func NewQuiz(level int, rng *rand.Rand) *Quiz {
	q := &Quiz{Questions: make([]Question, 0, quizQuestions)}
	for range quizQuestions {
		q.Questions = append(q.Questions, newQuestion(level, rng))
	}
	return q
}

func newQuestion(level int, rng *rand.Rand) Question {
	maxNum := level * 5
	var text string
	var answer int
	switch rng.IntN(4) {
	case 0:
		a, b := between(rng, 1, maxNum), between(rng, 1, maxNum)
		text, answer = fmt.Sprintf("What is %d + %d?", a, b), a+b
	case 1:
		a, b := between(rng, 1, maxNum), between(rng, 1, maxNum)
		a, b = max(a, b), min(a, b)
		text, answer = fmt.Sprintf("What is %d - %d?", a, b), a-b
	case 2:
		a, b := between(rng, 1, level+4), between(rng, 1, 9)
		text, answer = fmt.Sprintf("What is %d × %d?", a, b), a*b
	default:
		quotient, divisor := between(rng, 1, level+2), between(rng, 2, 9)
		text, answer = fmt.Sprintf("What is %d ÷ %d?", quotient*divisor, divisor), quotient
	}
	return Question{Text: text, Options: quizChoices(answer, rng), Answer: answer}
}

func quizChoices(answer int, rng *rand.Rand) []int {
	opts := []int{answer}
	for len(opts) < quizOptions {
		c := answer + rng.IntN(10) - 5
		if c >= 0 && !lo.Contains(opts, c) {
			opts = append(opts, c)
		}
	}
	rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	return opts
}

// Answer grades the current question and advances regardless of the result.
func (q *Quiz) Answer(option int) (correct bool, expected int, err error) {
	if q.Complete() {
		return false, 0, ErrRoundComplete
	}
	cur := q.Questions[q.current]
	correct = option == cur.Answer
	if correct {
		q.score += quizPoints
	}
	q.current++
	return correct, cur.Answer, nil
}

func (q *Quiz) Complete() bool { return q.current >= len(q.Questions) }
func (q *Quiz) Score() int     { return q.score }

type QuizView struct {
	Index    int       `json:"index"`
	Total    int       `json:"total"`
	Question *Question `json:"question,omitempty"`
	Score    int       `json:"score"`
}

func (q *Quiz) View() QuizView {
	v := QuizView{Index: q.current, Total: len(q.Questions), Score: q.score}
	if !q.Complete() {
		cur := q.Questions[q.current]
		v.Question = &cur
	}
	return v
}
