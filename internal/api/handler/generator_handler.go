package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Dishankaswal/CodeArena/internal/common"
	"github.com/Dishankaswal/CodeArena/internal/platform/genai"

	"github.com/go-chi/chi/v5"
)

type GeneratorHandler struct {
	genai *genai.Client
}

func NewGeneratorHandler(client *genai.Client) *GeneratorHandler {
	return &GeneratorHandler{genai: client}
}

func (h *GeneratorHandler) RegisterRoutes(r chi.Router) {
	r.Post("/generate-html", h.generateHTML)
}

type generateHTMLRequest struct {
	Text string `json:"text"`
}

// generateHTML formats a raw problem statement into HTML. The generative API
// key stays server-side; clients only ever send raw text.
func (h *GeneratorHandler) generateHTML(w http.ResponseWriter, r *http.Request) {
	var req generateHTMLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	html, err := h.genai.Generate(r.Context(), req.Text)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"html": html})
}
