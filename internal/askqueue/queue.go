package askqueue

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/yungbote/sahayak-backend/internal/flows"
	"github.com/yungbote/sahayak-backend/internal/observability"
	"github.com/yungbote/sahayak-backend/internal/platform/logger"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAnswering Status = "answering"
	StatusAnswered  Status = "answered"
	StatusFailed    Status = "failed"
)

var (
	ErrNotFound      = errors.New("question not found")
	ErrFull          = errors.New("ask-later queue is full")
	ErrEmptyQuestion = errors.New("question is required")
	ErrAnswering     = errors.New("question is already being answered")
)

type Question struct {
	ID         string                `json:"id"`
	Text       string                `json:"question"`
	Language   string                `json:"language,omitempty"`
	Status     Status                `json:"status"`
	CreatedAt  time.Time             `json:"createdAt"`
	AnsweredAt *time.Time            `json:"answeredAt,omitempty"`
	Result     *flows.AskLaterResult `json:"result,omitempty"`
	Error      string                `json:"error,omitempty"`
}

// AnswerFunc produces the answer for one queued question.
type AnswerFunc func(ctx context.Context, q Question) (*flows.AskLaterResult, error)

type Options struct {
	MaxQuestions int
	Now          func() time.Time
	Log          *logger.Logger
	Metrics      *observability.Metrics
}

// Queue parks student questions raised during class until the teacher has time for them.
// Contents are lost on restart.
type Queue struct {
	mu      sync.Mutex
	items   map[string]*Question
	order   []string
	max     int
	now     func() time.Time
	log     *logger.Logger
	metrics *observability.Metrics
}

func New(o Options) *Queue {
	if o.MaxQuestions <= 0 {
		o.MaxQuestions = 200
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return &Queue{
		items:   map[string]*Question{},
		max:     o.MaxQuestions,
		now:     o.Now,
		log:     o.Log.With("component", "askqueue"),
		metrics: o.Metrics,
	}
}

func (q *Queue) Add(text, language string) (Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Question{}, ErrEmptyQuestion
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.order) >= q.max {
		return Question{}, ErrFull
	}
	item := &Question{
		ID:        uuid.NewString(),
		Text:      text,
		Language:  strings.TrimSpace(language),
		Status:    StatusPending,
		CreatedAt: q.now(),
	}
	q.items[item.ID] = item
	q.order = append(q.order, item.ID)
	q.metrics.SetAskLaterQueued(len(q.order))
	q.log.Debug("question queued", "question_id", item.ID)
	return *item, nil
}

// List returns questions in insertion order.
func (q *Queue) List() []Question {
	q.mu.Lock()
	defer q.mu.Unlock()
	return lo.Map(q.order, func(id string, _ int) Question { return *q.items[id] })
}

func (q *Queue) Get(id string) (Question, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	item, ok := q.items[id]
	if !ok {
		return Question{}, ErrNotFound
	}
	return *item, nil
}

func (q *Queue) Remove(id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.items[id]; !ok {
		return ErrNotFound
	}
	delete(q.items, id)
	q.order = lo.Without(q.order, id)
	q.metrics.SetAskLaterQueued(len(q.order))
	return nil
}

// Answer claims the question, runs fn without holding the lock and records the outcome.
// Pending, failed and answered questions can all be (re)answered; regenerating drops the
// previous answer. Only a question already being answered is rejected.
func (q *Queue) Answer(ctx context.Context, id string, fn AnswerFunc) (Question, error) {
	q.mu.Lock()
	item, ok := q.items[id]
	if !ok {
		q.mu.Unlock()
		return Question{}, ErrNotFound
	}
	if item.Status == StatusAnswering {
		q.mu.Unlock()
		return Question{}, ErrAnswering
	}
	item.Status = StatusAnswering
	item.Error = ""
	item.Result = nil
	item.AnsweredAt = nil
	snapshot := *item
	q.mu.Unlock()

	res, err := fn(ctx, snapshot)

	q.mu.Lock()
	defer q.mu.Unlock()
	item, ok = q.items[id]
	if !ok {
		// Removed while the answer was generating.
		if err != nil {
			return Question{}, err
		}
		return Question{}, ErrNotFound
	}
	if err != nil {
		item.Status = StatusFailed
		item.Error = err.Error()
		q.log.Warn("ask later answer failed", "question_id", id, "error", err)
		return *item, err
	}
	at := q.now()
	item.Status = StatusAnswered
	item.Result = res
	item.AnsweredAt = &at
	return *item, nil
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.order)
}
