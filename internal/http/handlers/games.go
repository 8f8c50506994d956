package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/sahayak-backend/internal/games"
	"github.com/yungbote/sahayak-backend/internal/http/response"
	"github.com/yungbote/sahayak-backend/internal/platform/apierr"
	"github.com/yungbote/sahayak-backend/internal/realtime"
)

type GameHandler struct {
	arcade *games.Arcade
	hub    *realtime.Hub
	ws     wsOptions
}

func NewGameHandler(arcade *games.Arcade, hub *realtime.Hub, allowedOrigins []string) *GameHandler {
	return &GameHandler{arcade: arcade, hub: hub, ws: newWSOptions(allowedOrigins)}
}

// publish pushes the new session state to every websocket watching it.
func (h *GameHandler) publish(st games.State) {
	h.hub.Broadcast(realtime.Message{Channel: st.ID, Event: realtime.EventState, Data: st})
}

func (h *GameHandler) ended(id string) {
	h.hub.End(id)
}

type createSessionRequest struct {
	Game string `json:"game" binding:"required"`
}

func gameError(err error) *apierr.Error {
	switch {
	case errors.Is(err, games.ErrSessionNotFound):
		return apierr.NotFound(err.Error())
	case errors.Is(err, games.ErrUnknownGame),
		errors.Is(err, games.ErrInvalidAction),
		errors.Is(err, games.ErrMissingParameter),
		errors.Is(err, games.ErrNoSuchCard):
		return apierr.Invalid(err)
	case errors.Is(err, games.ErrRoundComplete), errors.Is(err, games.ErrRoundInProgress):
		return apierr.Conflict(err)
	case errors.Is(err, games.ErrTooManySessions):
		return apierr.New(http.StatusServiceUnavailable, "too_many_sessions", err)
	default:
		return apierr.From(err)
	}
}

// GET /api/games
func (h *GameHandler) Catalog(c *gin.Context) {
	response.RespondOK(c, gin.H{"games": games.Catalog()})
}

// POST /api/games/sessions
func (h *GameHandler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if !bindJSON(c, &req) {
		return
	}
	kind, err := games.ParseKind(req.Game)
	if err != nil {
		response.RespondAPIError(c, gameError(err))
		return
	}
	st, err := h.arcade.Create(kind)
	if err != nil {
		response.RespondAPIError(c, gameError(err))
		return
	}
	response.RespondCreated(c, gin.H{"session": st})
}

// GET /api/games/sessions/:id
func (h *GameHandler) GetSession(c *gin.Context) {
	st, err := h.arcade.Get(c.Param("id"))
	if err != nil {
		response.RespondAPIError(c, gameError(err))
		return
	}
	response.RespondOK(c, gin.H{"session": st})
}

// DELETE /api/games/sessions/:id
func (h *GameHandler) EndSession(c *gin.Context) {
	id := c.Param("id")
	if err := h.arcade.End(id); err != nil {
		response.RespondAPIError(c, gameError(err))
		return
	}
	h.ended(id)
	c.Status(http.StatusNoContent)
}

// POST /api/games/sessions/:id/actions
func (h *GameHandler) Act(c *gin.Context) {
	var act games.Action
	if !bindJSON(c, &act) {
		return
	}
	st, err := h.arcade.Act(c.Param("id"), act)
	if err != nil {
		response.RespondAPIError(c, gameError(err))
		return
	}
	h.publish(st)
	response.RespondOK(c, gin.H{"session": st})
}
