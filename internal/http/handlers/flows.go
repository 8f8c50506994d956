package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/sahayak-backend/internal/flows"
	"github.com/yungbote/sahayak-backend/internal/http/response"
	"github.com/yungbote/sahayak-backend/internal/platform/apierr"
)

type FlowHandler struct {
	flows *flows.Service
}

func NewFlowHandler(svc *flows.Service) *FlowHandler {
	return &FlowHandler{flows: svc}
}

// bindJSON decodes the request body into dst and writes the error response on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.RespondError(c, http.StatusRequestEntityTooLarge, "payload_too_large", errors.New("request body too large"))
			return false
		}
		response.RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, errors.New("invalid request body"))
		return false
	}
	return true
}

func serveFlow[In any, Out any](c *gin.Context, fn func(context.Context, In) (Out, error)) {
	var in In
	if !bindJSON(c, &in) {
		return
	}
	out, err := fn(c.Request.Context(), in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/flows/knowledge-assistant
func (h *FlowHandler) KnowledgeAssistant(c *gin.Context) {
	serveFlow(c, h.flows.KnowledgeAssistant)
}

// POST /api/flows/speech
func (h *FlowHandler) Speech(c *gin.Context) {
	serveFlow(c, h.flows.GenerateSpeech)
}

// POST /api/flows/hyperlocal-content
func (h *FlowHandler) HyperlocalContent(c *gin.Context) {
	serveFlow(c, h.flows.HyperlocalContent)
}

// POST /api/flows/lesson-plan
func (h *FlowHandler) LessonPlan(c *gin.Context) {
	serveFlow(c, h.flows.LessonPlan)
}

// POST /api/flows/worksheets
func (h *FlowHandler) Worksheets(c *gin.Context) {
	serveFlow(c, h.flows.DifferentiatedWorksheets)
}

// POST /api/flows/visual-aid
func (h *FlowHandler) VisualAid(c *gin.Context) {
	serveFlow(c, h.flows.VisualAid)
}

// POST /api/flows/ask-later
func (h *FlowHandler) AskLater(c *gin.Context) {
	serveFlow(c, h.flows.AskLater)
}

// POST /api/flows/role-play-script
func (h *FlowHandler) RolePlayScript(c *gin.Context) {
	serveFlow(c, h.flows.RolePlayScript)
}

// POST /api/flows/role-play-audio
func (h *FlowHandler) RolePlayAudio(c *gin.Context) {
	serveFlow(c, h.flows.ScriptAudio)
}

// GET /api/flows/image-search?query=
func (h *FlowHandler) ImageSearch(c *gin.Context) {
	var in flows.ImageSearchInput
	if err := c.ShouldBindQuery(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeInvalidInput, err)
		return
	}
	out, err := h.flows.ImageSearchURL(in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}
