package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Dishankaswal/CodeArena/internal/api/middleware"
	"github.com/Dishankaswal/CodeArena/internal/app/lifecycle"
	"github.com/Dishankaswal/CodeArena/internal/app/service"
	"github.com/Dishankaswal/CodeArena/internal/common"
	"github.com/Dishankaswal/CodeArena/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type ContestHandler struct {
	contestService *service.ContestService
}

func NewContestHandler(cs *service.ContestService) *ContestHandler {
	return &ContestHandler{contestService: cs}
}

// RegisterRoutes mounts the contest routes. Listing and detail are public;
// creation and registration require a live session. The countdown stream is
// registered without the request timeout: it stays open until the contest
// ends and closes itself on the terminal label.
func (h *ContestHandler) RegisterRoutes(r chi.Router, authn, timeout func(http.Handler) http.Handler) {
	r.Group(func(timed chi.Router) {
		timed.Use(timeout)
		timed.Get("/", h.listContests)
		timed.Get("/{contestID}", h.getContest)

		timed.Group(func(protected chi.Router) {
			protected.Use(authn)
			protected.Post("/", h.createContest)
			protected.Get("/{contestID}/registration", h.getRegistration)
			protected.Post("/{contestID}/registration/toggle", h.toggleRegistration)
		})
	})

	r.Get("/{contestID}/countdown", h.countdown)
}

// contestResponse decorates a contest with its derived phase and countdown.
type contestResponse struct {
	model.Contest
	Phase     model.Phase `json:"phase"`
	Countdown string      `json:"countdown"`
}

func toContestResponse(c model.Contest, now time.Time) contestResponse {
	return contestResponse{
		Contest:   c,
		Phase:     c.PhaseAt(now),
		Countdown: model.CountdownAt(c.StartTime, now, model.ContestDuration),
	}
}

func (h *ContestHandler) listContests(w http.ResponseWriter, r *http.Request) {
	contests, err := h.contestService.ListContests(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	now := time.Now()
	resp := make([]contestResponse, 0, len(contests))
	for _, c := range contests {
		resp = append(resp, toContestResponse(c, now))
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *ContestHandler) createContest(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateContestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	contest, err := h.contestService.CreateContest(r.Context(), user, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, toContestResponse(*contest, time.Now()))
}

func (h *ContestHandler) getContest(w http.ResponseWriter, r *http.Request) {
	contestID := chi.URLParam(r, "contestID")
	contest, err := h.contestService.GetContest(r.Context(), contestID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, toContestResponse(*contest, time.Now()))
}

// countdown streams the contest countdown as server-sent events, one line per
// second, and closes once the contest has ended.
func (h *ContestHandler) countdown(w http.ResponseWriter, r *http.Request) {
	contestID := chi.URLParam(r, "contestID")
	contest, err := h.contestService.GetContest(r.Context(), contestID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		common.RespondWithError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	for label := range lifecycle.Countdown(r.Context(), contest.StartTime, model.ContestDuration, time.Second) {
		fmt.Fprintf(w, "data: %s\n\n", label)
		flusher.Flush()
	}
}

func (h *ContestHandler) getRegistration(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	contestID := chi.URLParam(r, "contestID")

	reg, err := h.contestService.GetRegistration(r.Context(), contestID, user.ID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]bool{"registered": reg != nil})
}

func (h *ContestHandler) toggleRegistration(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	contestID := chi.URLParam(r, "contestID")

	registered, err := h.contestService.ToggleRegistration(r.Context(), contestID, user.ID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]bool{"registered": registered})
}
