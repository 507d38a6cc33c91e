// Package sync drains the pending-write queue against the remote
// service once connectivity returns.
package sync

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"

	"github.com/dentaltrack/student-progress/internal/client/api"
	"github.com/dentaltrack/student-progress/internal/client/pending"
	"github.com/dentaltrack/student-progress/internal/models"
	"github.com/rs/zerolog"
)

// ErrSyncInFlight is returned when a sync is already running. The
// connectivity observer suppresses duplicate triggers for a single
// transition, but a manual sync can still race an automatic one.
var ErrSyncInFlight = errors.New("sync already in progress")

// Summary is the user-visible outcome of one reconciliation pass.
type Summary struct {
	CasesSynced    int
	CasesFailed    int
	ResearchSynced int
	ResearchFailed int
}

// Attempted is the number of entries that were pending when the pass
// started.
func (s Summary) Attempted() int {
	return s.CasesSynced + s.CasesFailed + s.ResearchSynced + s.ResearchFailed
}

type Reconciler struct {
	queue      *pending.Store
	client     *api.Client
	dropFailed bool
	inFlight   atomic.Bool
	onComplete func(Summary)
	logger     zerolog.Logger
}

// New builds a reconciler. dropFailed selects the queue-clear policy:
// true clears a kind's queue even when some replays failed (the
// original at-most-once behavior, which loses those writes); false
// keeps failed entries queued for the next pass.
func New(queue *pending.Store, client *api.Client, dropFailed bool, logger zerolog.Logger) *Reconciler {
	return &Reconciler{
		queue:      queue,
		client:     client,
		dropFailed: dropFailed,
		logger:     logger,
	}
}

// OnComplete registers a callback run after a pass that had at least
// one pending entry, e.g. to refresh the dashboard and notify the user.
func (r *Reconciler) OnComplete(fn func(Summary)) {
	r.onComplete = fn
}

// SyncOffline replays every pending write, cases first, each kind in
// insertion order, one request at a time. An individual failure is
// logged and the pass continues. Only one pass may run at a time.
func (r *Reconciler) SyncOffline(ctx context.Context) (Summary, error) {
	if !r.inFlight.CompareAndSwap(false, true) {
		return Summary{}, ErrSyncInFlight
	}
	defer r.inFlight.Store(false)

	var summary Summary

	casesSynced, casesFailed, err := r.replayCases(ctx)
	if err != nil {
		return summary, err
	}
	summary.CasesSynced = casesSynced
	summary.CasesFailed = casesFailed

	researchSynced, researchFailed, err := r.replayResearch(ctx)
	if err != nil {
		return summary, err
	}
	summary.ResearchSynced = researchSynced
	summary.ResearchFailed = researchFailed

	if summary.Attempted() > 0 {
		r.logger.Info().
			Int("cases_synced", summary.CasesSynced).
			Int("cases_failed", summary.CasesFailed).
			Int("research_synced", summary.ResearchSynced).
			Int("research_failed", summary.ResearchFailed).
			Msg("Offline data synced")
		if r.onComplete != nil {
			r.onComplete(summary)
		}
	}

	return summary, nil
}

func (r *Reconciler) replayCases(ctx context.Context) (synced, failed int, err error) {
	entries, err := r.queue.DrainAll(pending.KindCase)
	if err != nil {
		return 0, 0, err
	}
	if len(entries) == 0 {
		return 0, 0, nil
	}

	var confirmed []int64
	for _, entry := range entries {
		var req models.CreateCaseRequest
		if err := json.Unmarshal(entry.Payload, &req); err != nil {
			r.logger.Error().Err(err).Int64("local_id", entry.LocalID).Msg("Dropping undecodable pending case")
			confirmed = append(confirmed, entry.LocalID)
			failed++
			continue
		}
		req.ClientRef = entry.ClientRef

		if _, err := r.client.CreateCase(ctx, &req); err != nil {
			r.logger.Warn().Err(err).Int64("local_id", entry.LocalID).Msg("Case sync failed")
			failed++
			continue
		}
		confirmed = append(confirmed, entry.LocalID)
		synced++
	}

	if err := r.clear(pending.KindCase, confirmed); err != nil {
		return synced, failed, err
	}
	return synced, failed, nil
}

func (r *Reconciler) replayResearch(ctx context.Context) (synced, failed int, err error) {
	entries, err := r.queue.DrainAll(pending.KindResearch)
	if err != nil {
		return 0, 0, err
	}
	if len(entries) == 0 {
		return 0, 0, nil
	}

	var confirmed []int64
	for _, entry := range entries {
		var req models.CreateResearchRequest
		if err := json.Unmarshal(entry.Payload, &req); err != nil {
			r.logger.Error().Err(err).Int64("local_id", entry.LocalID).Msg("Dropping undecodable pending research")
			confirmed = append(confirmed, entry.LocalID)
			failed++
			continue
		}
		req.ClientRef = entry.ClientRef

		if _, err := r.client.CreateResearch(ctx, &req); err != nil {
			r.logger.Warn().Err(err).Int64("local_id", entry.LocalID).Msg("Research sync failed")
			failed++
			continue
		}
		confirmed = append(confirmed, entry.LocalID)
		synced++
	}

	if err := r.clear(pending.KindResearch, confirmed); err != nil {
		return synced, failed, err
	}
	return synced, failed, nil
}

func (r *Reconciler) clear(kind pending.Kind, confirmed []int64) error {
	if r.dropFailed {
		return r.queue.Clear(kind)
	}
	return r.queue.Remove(kind, confirmed)
}
