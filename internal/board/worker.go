package board

import (
	"context"
	"errors"
	"log"
	"time"

	"ats-pipeline/internal/notify"
	"ats-pipeline/internal/pipeline"
	"ats-pipeline/internal/storage"
)

// StageChangeJob is a move waiting to be persisted.
type StageChangeJob struct {
	TenantID string
	JobID    string
	ActorID  string
	Change   pipeline.StageChange
}

// StartBackgroundWorkers starts the stage persistence worker.
func (b *Board) StartBackgroundWorkers() {
	b.wg.Add(1)
	go b.stageWorker()
	log.Println("[BackgroundJobs] Stage worker started")
}

// enqueue never blocks the caller; a full queue drops the job.
func (b *Board) enqueue(job StageChangeJob) {
	b.queueMu.RLock()
	defer b.queueMu.RUnlock()

	if b.closed {
		log.Printf("[BackgroundJobs] Board closed, dropping stage change for candidate %s", job.Change.CandidateID)
		return
	}

	key := sessionKey{tenantID: job.TenantID, jobID: job.JobID}
	b.track(key)
	select {
	case b.queue <- job:
	default:
		b.untrack(key)
		log.Printf("[BackgroundJobs] Queue full! Dropping stage change for candidate %s (%s -> %s)",
			job.Change.CandidateID, job.Change.FromStageID, job.Change.ToStageID)
	}
}

func (b *Board) track(key sessionKey) {
	b.mu.Lock()
	b.pending[key]++
	b.mu.Unlock()
}

func (b *Board) untrack(key sessionKey) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending[key]--
	if b.pending[key] <= 0 {
		delete(b.pending, key)
		b.drained.Broadcast()
	}
}

// waitPersisted blocks until no move for key is queued or being written.
func (b *Board) waitPersisted(key sessionKey) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for b.pending[key] > 0 {
		b.drained.Wait()
	}
}

func (b *Board) stageWorker() {
	defer b.wg.Done()
	log.Println("[StageWorker] Started")

	for job := range b.queue {
		b.persist(job)
	}

	log.Println("[StageWorker] Stopped")
}

func (b *Board) persist(job StageChangeJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	t := &storage.StageTransition{
		TenantID:    job.TenantID,
		JobID:       job.JobID,
		CandidateID: job.Change.CandidateID,
		FromStageID: job.Change.FromStageID,
		ToStageID:   job.Change.ToStageID,
		MovedBy:     job.ActorID,
		MovedAt:     job.Change.At,
	}
	err := b.store.MoveCandidateStage(ctx, t)
	b.untrack(sessionKey{tenantID: job.TenantID, jobID: job.JobID})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Printf("[StageWorker] Candidate %s no longer exists, stage change dropped", t.CandidateID)
		} else {
			log.Printf("[StageWorker] Failed to persist stage change for candidate %s: %v", t.CandidateID, err)
		}
		return
	}

	if b.notifier == nil {
		return
	}
	event := notify.Event{
		TenantID:    t.TenantID,
		JobID:       t.JobID,
		CandidateID: t.CandidateID,
		FromStageID: t.FromStageID,
		ToStageID:   t.ToStageID,
		MovedBy:     t.MovedBy,
		MovedAt:     t.MovedAt,
	}
	if err := b.notifier.StageChanged(ctx, event); err != nil {
		log.Printf("[StageWorker] Webhook failed for candidate %s: %v", t.CandidateID, err)
	}
}

// Close stops accepting moves and waits for queued ones to be persisted.
func (b *Board) Close() {
	b.queueMu.Lock()
	if b.closed {
		b.queueMu.Unlock()
		return
	}
	b.closed = true
	close(b.queue)
	b.queueMu.Unlock()

	b.wg.Wait()
}
