package sync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/dentaltrack/student-progress/internal/client/api"
	"github.com/dentaltrack/student-progress/internal/client/pending"
	"github.com/dentaltrack/student-progress/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// stubServer records replayed writes in arrival order and fails the
// ones whose notes/title appear in failing.
type stubServer struct {
	*httptest.Server
	received []string
	failing  map[string]bool
	block    chan struct{}
	started  chan struct{}
}

func newStubServer(t *testing.T) *stubServer {
	t.Helper()
	s := &stubServer{failing: map[string]bool{}}

	mux := http.NewServeMux()
	mux.HandleFunc("/cases", func(w http.ResponseWriter, r *http.Request) {
		if s.started != nil {
			s.started <- struct{}{}
		}
		if s.block != nil {
			<-s.block
		}
		var req models.CreateCaseRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		s.received = append(s.received, req.Notes)
		if s.failing[req.Notes] {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "Internal server error"}`))
			return
		}
		json.NewEncoder(w).Encode(models.CreateCaseResponse{Success: true, Case: &models.Case{ID: "c-" + req.Notes}})
	})
	mux.HandleFunc("/research", func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateResearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		s.received = append(s.received, req.Title)
		if s.failing[req.Title] {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "Internal server error"}`))
			return
		}
		json.NewEncoder(w).Encode(models.CreateResearchResponse{Success: true, Research: &models.Research{ID: "r-" + req.Title}})
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func newTestQueue(t *testing.T) *pending.Store {
	t.Helper()
	queue, err := pending.Open(filepath.Join(t.TempDir(), "queue.json"))
	require.NoError(t, err)
	return queue
}

func newTestClient(baseURL string) *api.Client {
	return api.New(baseURL, 2*time.Second, 0, 0, nil, zerolog.Nop())
}

func enqueueCases(t *testing.T, queue *pending.Store, notes ...string) {
	t.Helper()
	for _, n := range notes {
		_, err := queue.Enqueue(pending.KindCase, models.CreateCaseRequest{Procedure: "cavity", Notes: n}, "ref-"+n)
		require.NoError(t, err)
	}
}

func TestSyncOffline_ReplaysInOrder(t *testing.T) {
	server := newStubServer(t)
	queue := newTestQueue(t)

	enqueueCases(t, queue, "one", "two", "three")
	_, err := queue.Enqueue(pending.KindResearch, models.CreateResearchRequest{Title: "study", Type: "project", Status: "ongoing"}, "ref-study")
	require.NoError(t, err)

	var completed []Summary
	r := New(queue, newTestClient(server.URL), false, zerolog.Nop())
	r.OnComplete(func(s Summary) { completed = append(completed, s) })

	summary, err := r.SyncOffline(context.Background())
	require.NoError(t, err)
	require.Equal(t, Summary{CasesSynced: 3, ResearchSynced: 1}, summary)

	// Cases first, then research, each kind in insertion order.
	require.Equal(t, []string{"one", "two", "three", "study"}, server.received)

	// Confirmed entries are gone.
	cases, err := queue.DrainAll(pending.KindCase)
	require.NoError(t, err)
	require.Empty(t, cases)
	research, err := queue.DrainAll(pending.KindResearch)
	require.NoError(t, err)
	require.Empty(t, research)

	require.Len(t, completed, 1)
}

func TestSyncOffline_PartialFailureContinuesBatch(t *testing.T) {
	server := newStubServer(t)
	server.failing["two"] = true
	queue := newTestQueue(t)

	enqueueCases(t, queue, "one", "two", "three")

	r := New(queue, newTestClient(server.URL), false, zerolog.Nop())
	summary, err := r.SyncOffline(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, summary.CasesSynced)
	require.Equal(t, 1, summary.CasesFailed)

	// The failure did not abort the batch.
	require.Equal(t, []string{"one", "two", "three"}, server.received)

	// Default policy keeps the failed entry for the next pass.
	remaining, err := queue.DrainAll(pending.KindCase)
	require.NoError(t, err)
	require.Len(t, remaining, 1)

	var req models.CreateCaseRequest
	require.NoError(t, json.Unmarshal(remaining[0].Payload, &req))
	require.Equal(t, "two", req.Notes)
}

func TestSyncOffline_DropFailedClearsUnconditionally(t *testing.T) {
	server := newStubServer(t)
	server.failing["two"] = true
	queue := newTestQueue(t)

	enqueueCases(t, queue, "one", "two")

	r := New(queue, newTestClient(server.URL), true, zerolog.Nop())
	summary, err := r.SyncOffline(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.CasesFailed)

	// The original at-most-once behavior: failed writes are dropped too.
	remaining, err := queue.DrainAll(pending.KindCase)
	require.NoError(t, err)
	require.Empty(t, remaining)
}

func TestSyncOffline_InFlightGuard(t *testing.T) {
	server := newStubServer(t)
	server.block = make(chan struct{})
	server.started = make(chan struct{}, 1)
	queue := newTestQueue(t)

	enqueueCases(t, queue, "one")

	r := New(queue, newTestClient(server.URL), false, zerolog.Nop())

	done := make(chan Summary, 1)
	go func() {
		summary, err := r.SyncOffline(context.Background())
		require.NoError(t, err)
		done <- summary
	}()

	// Wait for the first pass to be inside a request, then try again.
	<-server.started
	_, err := r.SyncOffline(context.Background())
	require.ErrorIs(t, err, ErrSyncInFlight)

	close(server.block)
	summary := <-done
	require.Equal(t, 1, summary.CasesSynced)
}

func TestSyncOffline_EmptyQueueSkipsCallback(t *testing.T) {
	server := newStubServer(t)
	queue := newTestQueue(t)

	called := false
	r := New(queue, newTestClient(server.URL), false, zerolog.Nop())
	r.OnComplete(func(Summary) { called = true })

	summary, err := r.SyncOffline(context.Background())
	require.NoError(t, err)
	require.Zero(t, summary.Attempted())
	require.False(t, called)
	require.Empty(t, server.received)
}

// A replayed pass over the same queue is harmless: the first pass
// cleared confirmed entries, so the second has nothing to send.
func TestSyncOffline_SecondPassIsNoop(t *testing.T) {
	server := newStubServer(t)
	queue := newTestQueue(t)

	enqueueCases(t, queue, "one")

	r := New(queue, newTestClient(server.URL), false, zerolog.Nop())

	_, err := r.SyncOffline(context.Background())
	require.NoError(t, err)

	summary, err := r.SyncOffline(context.Background())
	require.NoError(t, err)
	require.Zero(t, summary.Attempted())
	require.Equal(t, []string{"one"}, server.received)
}
