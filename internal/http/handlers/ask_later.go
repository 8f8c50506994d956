package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/sahayak-backend/internal/askqueue"
	"github.com/yungbote/sahayak-backend/internal/flows"
	"github.com/yungbote/sahayak-backend/internal/http/response"
	"github.com/yungbote/sahayak-backend/internal/platform/apierr"
)

type AskLaterHandler struct {
	queue *askqueue.Queue
	flows *flows.Service
}

func NewAskLaterHandler(queue *askqueue.Queue, svc *flows.Service) *AskLaterHandler {
	return &AskLaterHandler{queue: queue, flows: svc}
}

type addQuestionRequest struct {
	Question string `json:"question"`
	Language string `json:"language"`
}

func queueError(err error) *apierr.Error {
	switch {
	case errors.Is(err, askqueue.ErrNotFound):
		return apierr.NotFound(err.Error())
	case errors.Is(err, askqueue.ErrEmptyQuestion):
		return apierr.Invalid(err)
	case errors.Is(err, askqueue.ErrFull), errors.Is(err, askqueue.ErrAnswering):
		return apierr.Conflict(err)
	default:
		return apierr.From(err)
	}
}

// GET /api/ask-later/questions
func (h *AskLaterHandler) List(c *gin.Context) {
	response.RespondOK(c, gin.H{"questions": h.queue.List()})
}

// POST /api/ask-later/questions
func (h *AskLaterHandler) Add(c *gin.Context) {
	var req addQuestionRequest
	if !bindJSON(c, &req) {
		return
	}
	q, err := h.queue.Add(req.Question, req.Language)
	if err != nil {
		response.RespondAPIError(c, queueError(err))
		return
	}
	response.RespondCreated(c, gin.H{"question": q})
}

// GET /api/ask-later/questions/:id
func (h *AskLaterHandler) Get(c *gin.Context) {
	q, err := h.queue.Get(c.Param("id"))
	if err != nil {
		response.RespondAPIError(c, queueError(err))
		return
	}
	response.RespondOK(c, gin.H{"question": q})
}

// DELETE /api/ask-later/questions/:id
func (h *AskLaterHandler) Remove(c *gin.Context) {
	if err := h.queue.Remove(c.Param("id")); err != nil {
		response.RespondAPIError(c, queueError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/ask-later/questions/:id/answer
func (h *AskLaterHandler) Answer(c *gin.Context) {
	q, err := h.queue.Answer(c.Request.Context(), c.Param("id"), func(ctx context.Context, q askqueue.Question) (*flows.AskLaterResult, error) {
		return h.flows.AskLater(ctx, flows.AskLaterInput{Question: q.Text, Language: q.Language})
	})
	if err != nil {
		var flowErr *apierr.Error
		if errors.As(err, &flowErr) {
			response.RespondAPIError(c, flowErr)
			return
		}
		response.RespondAPIError(c, queueError(err))
		return
	}
	response.RespondOK(c, gin.H{"question": q})
}
