package askqueue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/sahayak-backend/internal/flows"
	"github.com/yungbote/sahayak-backend/internal/observability"
)

func TestAddListRemove(t *testing.T) {
	q := New(Options{MaxQuestions: 2})

	_, err := q.Add("   ", "")
	assert.ErrorIs(t, err, ErrEmptyQuestion)

	a, err := q.Add(" Why is the sky blue? ", "English")
	require.NoError(t, err)
	assert.Equal(t, "Why is the sky blue?", a.Text)
	assert.Equal(t, StatusPending, a.Status)
	b, err := q.Add("Why do leaves fall?", "")
	require.NoError(t, err)

	_, err = q.Add("one too many", "")
	assert.ErrorIs(t, err, ErrFull)

	list := q.List()
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, b.ID, list[1].ID)

	require.NoError(t, q.Remove(a.ID))
	assert.ErrorIs(t, q.Remove(a.ID), ErrNotFound)
	_, err = q.Get(a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, q.Len())
}

func TestAnswerLifecycle(t *testing.T) {
	fixed := time.Unix(1_700_000_000, 0)
	q := New(Options{Now: func() time.Time { return fixed }, Metrics: observability.NewMetrics(true)})
	item, err := q.Add("What is photosynthesis?", "Hindi")
	require.NoError(t, err)

	boom := errors.New("model unavailable")
	got, err := q.Answer(t.Context(), item.ID, func(ctx context.Context, in Question) (*flows.AskLaterResult, error) {
		assert.Equal(t, StatusAnswering, in.Status)
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StatusFailed, got.Status)
	assert.Equal(t, "model unavailable", got.Error)

	got, err = q.Answer(t.Context(), item.ID, func(ctx context.Context, in Question) (*flows.AskLaterResult, error) {
		assert.Equal(t, "Hindi", in.Language)
		return &flows.AskLaterResult{Answer: "Plants make food from light."}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, StatusAnswered, got.Status)
	assert.Empty(t, got.Error)
	require.NotNil(t, got.AnsweredAt)
	assert.Equal(t, fixed, *got.AnsweredAt)
	assert.Equal(t, "Plants make food from light.", got.Result.Answer)

	_, err = q.Answer(t.Context(), "missing", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegenerateAnsweredQuestion(t *testing.T) {
	q := New(Options{})
	item, err := q.Add("Why do stars twinkle?", "English")
	require.NoError(t, err)

	answer := func(text string) AnswerFunc {
		return func(context.Context, Question) (*flows.AskLaterResult, error) {
			return &flows.AskLaterResult{Answer: text}, nil
		}
	}
	first, err := q.Answer(t.Context(), item.ID, answer("first"))
	require.NoError(t, err)
	assert.Equal(t, "first", first.Result.Answer)

	got, err := q.Answer(t.Context(), item.ID, func(ctx context.Context, in Question) (*flows.AskLaterResult, error) {
		assert.Equal(t, StatusAnswering, in.Status)
		assert.Nil(t, in.Result)
		assert.Nil(t, in.AnsweredAt)
		return answer("regenerated")(ctx, in)
	})
	require.NoError(t, err)
	assert.Equal(t, StatusAnswered, got.Status)
	assert.Equal(t, "regenerated", got.Result.Answer)

	// A failed regeneration leaves no stale answer behind.
	got, err = q.Answer(t.Context(), item.ID, func(context.Context, Question) (*flows.AskLaterResult, error) {
		return nil, errors.New("quota exceeded")
	})
	require.Error(t, err)
	assert.Equal(t, StatusFailed, got.Status)
	assert.Nil(t, got.Result)
	assert.Nil(t, got.AnsweredAt)
}

func TestConcurrentAnswerRejected(t *testing.T) {
	q := New(Options{})
	item, err := q.Add("How far is the moon?", "")
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := q.Answer(context.Background(), item.ID, func(ctx context.Context, _ Question) (*flows.AskLaterResult, error) {
			close(started)
			<-release
			return &flows.AskLaterResult{Answer: "far"}, nil
		})
		done <- err
	}()

	<-started
	_, err = q.Answer(t.Context(), item.ID, func(context.Context, Question) (*flows.AskLaterResult, error) {
		t.Fatal("second answer must not run")
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrAnswering)

	close(release)
	require.NoError(t, <-done)
	got, err := q.Get(item.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusAnswered, got.Status)
}

func TestRemoveWhileAnswering(t *testing.T) {
	q := New(Options{})
	item, err := q.Add("Why is the sea salty?", "")
	require.NoError(t, err)

	_, err = q.Answer(t.Context(), item.ID, func(context.Context, Question) (*flows.AskLaterResult, error) {
		require.NoError(t, q.Remove(item.ID))
		return &flows.AskLaterResult{Answer: "rivers"}, nil
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, q.Len())
}
