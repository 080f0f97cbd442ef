package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Dishankaswal/CodeArena/internal/api/middleware"
	"github.com/Dishankaswal/CodeArena/internal/app/service"
	"github.com/Dishankaswal/CodeArena/internal/common"

	"github.com/go-chi/chi/v5"
)

type QuestionHandler struct {
	questionService   *service.QuestionService
	submissionService *service.SubmissionService
}

func NewQuestionHandler(qs *service.QuestionService, ss *service.SubmissionService) *QuestionHandler {
	return &QuestionHandler{questionService: qs, submissionService: ss}
}

// RegisterContestRoutes mounts the per-contest question routes; all require
// a live session.
func (h *QuestionHandler) RegisterContestRoutes(r chi.Router) {
	r.Get("/{contestID}/questions", h.listQuestions)
	r.Post("/{contestID}/questions", h.addQuestion)
}

// RegisterRoutes mounts the question-scoped routes.
func (h *QuestionHandler) RegisterRoutes(r chi.Router) {
	r.Delete("/{questionID}", h.deleteQuestion)
	r.Post("/{questionID}/run", h.runQuestion)
}

func (h *QuestionHandler) listQuestions(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	contestID := chi.URLParam(r, "contestID")

	questions, err := h.questionService.ListQuestions(r.Context(), user.ID, contestID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, questions)
}

func (h *QuestionHandler) addQuestion(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	contestID := chi.URLParam(r, "contestID")

	var req service.AddQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	question, err := h.questionService.AddQuestion(r.Context(), user.ID, contestID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, question)
}

func (h *QuestionHandler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	questionID := chi.URLParam(r, "questionID")

	if err := h.questionService.DeleteQuestion(r.Context(), user.ID, questionID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *QuestionHandler) runQuestion(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	questionID := chi.URLParam(r, "questionID")

	var req service.RunQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	resp, err := h.submissionService.RunQuestion(r.Context(), user.ID, questionID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
