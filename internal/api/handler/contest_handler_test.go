package handler

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dishankaswal/CodeArena/internal/app/service"
	"github.com/Dishankaswal/CodeArena/internal/common"
	"github.com/Dishankaswal/CodeArena/internal/domain/model"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubContestRepo struct {
	contest *model.Contest
}

func (r *stubContestRepo) Create(ctx context.Context, contest *model.Contest) error { return nil }

func (r *stubContestRepo) FindByID(ctx context.Context, id string) (*model.Contest, error) {
	if r.contest != nil && r.contest.ID == id {
		clone := *r.contest
		return &clone, nil
	}
	return nil, common.ErrNotFound
}

func (r *stubContestRepo) List(ctx context.Context) ([]model.Contest, error) {
	if r.contest == nil {
		return []model.Contest{}, nil
	}
	return []model.Contest{*r.contest}, nil
}

type stubRegistrationRepo struct{}

func (r *stubRegistrationRepo) Find(ctx context.Context, contestID, userID string) (*model.Registration, error) {
	return nil, common.ErrNotFound
}
func (r *stubRegistrationRepo) Create(ctx context.Context, reg *model.Registration) error { return nil }
func (r *stubRegistrationRepo) Delete(ctx context.Context, contestID, userID string) error {
	return common.ErrNotFound
}

func passthrough(next http.Handler) http.Handler { return next }

// newContestServer wires the handler the way the router does: timed routes
// behind the request timeout, the countdown stream outside it.
func newContestServer(t *testing.T, contest *model.Contest, timeout func(http.Handler) http.Handler) *httptest.Server {
	t.Helper()
	svc := service.NewContestService(&stubContestRepo{contest: contest}, &stubRegistrationRepo{})
	h := NewContestHandler(svc)

	r := chi.NewRouter()
	r.Route("/contests", func(cr chi.Router) {
		h.RegisterRoutes(cr, passthrough, timeout)
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func readEventLabels(t *testing.T, body *bufio.Scanner) []string {
	t.Helper()
	labels := []string{}
	for body.Scan() {
		line := body.Text()
		if strings.HasPrefix(line, "data: ") {
			labels = append(labels, strings.TrimPrefix(line, "data: "))
		}
	}
	require.NoError(t, body.Err())
	return labels
}

func TestCountdownStreamOutlivesRequestTimeout(t *testing.T) {
	// Ends well after the request timeout below.
	contest := &model.Contest{
		ID:        "c1",
		Title:     "Weekly",
		StartTime: time.Now().Add(600*time.Millisecond - model.ContestDuration),
	}
	server := newContestServer(t, contest, chiMiddleware.Timeout(150*time.Millisecond))

	started := time.Now()
	resp, err := server.Client().Get(server.URL + "/contests/c1/countdown")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	labels := readEventLabels(t, bufio.NewScanner(resp.Body))
	elapsed := time.Since(started)

	require.NotEmpty(t, labels)
	assert.Equal(t, model.CountdownEnded, labels[len(labels)-1], "stream closes on the terminal label")
	assert.Greater(t, elapsed, 450*time.Millisecond, "stream survived past the request timeout")
}

func TestCountdownStreamForEndedContest(t *testing.T) {
	contest := &model.Contest{
		ID:        "c1",
		Title:     "Weekly",
		StartTime: time.Now().Add(-2 * model.ContestDuration),
	}
	server := newContestServer(t, contest, chiMiddleware.Timeout(150*time.Millisecond))

	resp, err := server.Client().Get(server.URL + "/contests/c1/countdown")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	labels := readEventLabels(t, bufio.NewScanner(resp.Body))
	require.Equal(t, []string{model.CountdownEnded}, labels)
}

func TestCountdownUnknownContest(t *testing.T) {
	server := newContestServer(t, nil, chiMiddleware.Timeout(150*time.Millisecond))

	resp, err := server.Client().Get(server.URL + "/contests/missing/countdown")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestContestDetailStaysRouted(t *testing.T) {
	contest := &model.Contest{
		ID:        "c1",
		Title:     "Weekly",
		StartTime: time.Now().Add(time.Hour),
	}
	server := newContestServer(t, contest, chiMiddleware.Timeout(150*time.Millisecond))

	resp, err := server.Client().Get(server.URL + "/contests/c1")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
