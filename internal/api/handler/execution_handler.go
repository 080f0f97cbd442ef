package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Dishankaswal/CodeArena/internal/app/service"
	"github.com/Dishankaswal/CodeArena/internal/common"
	"github.com/Dishankaswal/CodeArena/internal/platform/judge"

	"github.com/go-chi/chi/v5"
)

type ExecutionHandler struct {
	submissionService *service.SubmissionService
}

func NewExecutionHandler(ss *service.SubmissionService) *ExecutionHandler {
	return &ExecutionHandler{submissionService: ss}
}

func (h *ExecutionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/execute", h.execute)
	r.Get("/languages", h.languages)
}

func (h *ExecutionHandler) execute(w http.ResponseWriter, r *http.Request) {
	var req service.ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	result, err := h.submissionService.Execute(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}

func (h *ExecutionHandler) languages(w http.ResponseWriter, r *http.Request) {
	common.RespondWithJSON(w, http.StatusOK, judge.Languages)
}
