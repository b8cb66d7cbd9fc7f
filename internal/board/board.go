// Package board keeps one live pipeline per (tenant, job) and persists
// stage moves in the background.
package board

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"ats-pipeline/internal/notify"
	"ats-pipeline/internal/pipeline"
	"ats-pipeline/internal/session"
	"ats-pipeline/internal/stages"
	"ats-pipeline/internal/storage"
)

// ErrNoSession is returned when ctx carries no tenant.
var ErrNoSession = errors.New("board: no tenant in request context")

// Store is the persistence the board reads from and writes moves to.
type Store interface {
	GetJob(ctx context.Context, tenantID, jobID string) (*storage.Job, error)
	ListCandidatesByJob(ctx context.Context, tenantID, jobID string) ([]storage.CandidateRecord, error)
	MoveCandidateStage(ctx context.Context, t *storage.StageTransition) error
}

// Notifier is told about each persisted move.
type Notifier interface {
	StageChanged(ctx context.Context, e notify.Event) error
}

type sessionKey struct {
	tenantID string
	jobID    string
}

type jobSession struct {
	mu       sync.Mutex
	job      storage.Job
	pipeline *pipeline.Pipeline
	actorID  string
}

// StageView is one column of the board.
type StageView struct {
	Stage      pipeline.Stage       `json:"stage"`
	Candidates []pipeline.Candidate `json:"candidates"`
}

// View is a read-only rendering of a job's pipeline.
type View struct {
	Job        storage.Job          `json:"job"`
	Stages     []StageView          `json:"stages"`
	Unassigned []pipeline.Candidate `json:"unassigned"`
	Total      int                  `json:"total"`
}

// Options tune a Board.
type Options struct {
	QueueSize int
	Notifier  Notifier
}

// Board owns the live pipelines of every tenant and job it has served and
// the worker that persists their moves. It is safe for concurrent use.
type Board struct {
	store    Store
	catalog  *stages.Catalog
	notifier Notifier

	mu       sync.Mutex
	sessions map[sessionKey]*jobSession
	// pending counts queued moves per job; load waits for it to drain.
	pending map[sessionKey]int
	drained *sync.Cond

	queueMu sync.RWMutex
	queue   chan StageChangeJob
	closed  bool
	wg      sync.WaitGroup
}

// New creates a board and starts its stage worker. Call Close to drain it.
func New(store Store, catalog *stages.Catalog, opts Options) *Board {
	size := opts.QueueSize
	if size <= 0 {
		size = 100
	}
	b := &Board{
		store:    store,
		catalog:  catalog,
		notifier: opts.Notifier,
		sessions: make(map[sessionKey]*jobSession),
		pending:  make(map[sessionKey]int),
		queue:    make(chan StageChangeJob, size),
	}
	b.drained = sync.NewCond(&b.mu)
	b.StartBackgroundWorkers()
	return b
}

func tenantFrom(ctx context.Context) (session.Session, error) {
	s, ok := session.FromContext(ctx)
	if !ok || s.TenantID == "" {
		return session.Session{}, ErrNoSession
	}
	return s, nil
}

// open returns the cached session for the job, loading it on first use.
func (b *Board) open(ctx context.Context, jobID string) (*jobSession, error) {
	s, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}
	key := sessionKey{tenantID: s.TenantID, jobID: jobID}

	b.mu.Lock()
	sess, ok := b.sessions[key]
	b.mu.Unlock()
	if ok {
		return sess, nil
	}

	sess, err = b.load(ctx, key)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if existing, ok := b.sessions[key]; ok {
		return existing, nil
	}
	b.sessions[key] = sess
	return sess, nil
}

func (b *Board) load(ctx context.Context, key sessionKey) (*jobSession, error) {
	b.waitPersisted(key)

	job, err := b.store.GetJob(ctx, key.tenantID, key.jobID)
	if err != nil {
		return nil, err
	}
	records, err := b.store.ListCandidatesByJob(ctx, key.tenantID, key.jobID)
	if err != nil {
		return nil, err
	}

	candidates := make([]pipeline.Candidate, 0, len(records))
	for _, r := range records {
		candidates = append(candidates, r.Candidate)
	}

	sess := &jobSession{job: *job}
	p, err := pipeline.New(b.catalog.For(job.JobType), candidates,
		pipeline.WithStageChangeHook(func(sc pipeline.StageChange) {
			b.enqueue(StageChangeJob{
				TenantID: key.tenantID,
				JobID:    key.jobID,
				ActorID:  sess.actorID,
				Change:   sc,
			})
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("job %s: %w", key.jobID, err)
	}
	sess.pipeline = p

	if n := len(p.Unassigned()); n > 0 {
		log.Printf("[Board] job %s (tenant %s): %d candidate(s) reference unknown stages", key.jobID, key.tenantID, n)
	}
	return sess, nil
}

// Move applies a stage change for the tenant and user in ctx. It reports
// false for no-op moves; only loading the job can fail.
func (b *Board) Move(ctx context.Context, jobID, candidateID, fromStageID, toStageID string) (bool, error) {
	sess, err := b.open(ctx, jobID)
	if err != nil {
		return false, err
	}
	s, _ := session.FromContext(ctx)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.actorID = s.UserID
	moved := sess.pipeline.MoveCandidate(candidateID, fromStageID, toStageID)
	sess.actorID = ""
	return moved, nil
}

// View returns the job's board with f applied.
func (b *Board) View(ctx context.Context, jobID string, f pipeline.Filter) (*View, error) {
	p, job, err := b.Pipeline(ctx, jobID, f)
	if err != nil {
		return nil, err
	}

	v := &View{Job: job, Unassigned: p.Unassigned(), Total: p.Len()}
	if v.Unassigned == nil {
		v.Unassigned = []pipeline.Candidate{}
	}
	for _, st := range p.Stages() {
		v.Stages = append(v.Stages, StageView{Stage: st, Candidates: p.Bucket(st.ID)})
	}
	return v, nil
}

// Analytics computes analytics for the filtered board.
func (b *Board) Analytics(ctx context.Context, jobID string, f pipeline.Filter) (pipeline.Analytics, error) {
	p, _, err := b.Pipeline(ctx, jobID, f)
	if err != nil {
		return pipeline.Analytics{}, err
	}
	return pipeline.ComputeAnalytics(p), nil
}

// Pipeline returns a read-only, filtered copy of the job's pipeline.
func (b *Board) Pipeline(ctx context.Context, jobID string, f pipeline.Filter) (*pipeline.Pipeline, storage.Job, error) {
	sess, err := b.open(ctx, jobID)
	if err != nil {
		return nil, storage.Job{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.pipeline.Filter(f), sess.job, nil
}

// Invalidate drops the cached pipeline so the next call reloads it. The
// reload waits for the job's queued moves to be persisted first.
func (b *Board) Invalidate(tenantID, jobID string) {
	b.mu.Lock()
	delete(b.sessions, sessionKey{tenantID: tenantID, jobID: jobID})
	b.mu.Unlock()
}

// Reload discards and reloads the job's pipeline from the store.
func (b *Board) Reload(ctx context.Context, jobID string) (*View, error) {
	s, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}
	b.Invalidate(s.TenantID, jobID)
	return b.View(ctx, jobID, pipeline.Filter{})
}

// Stages returns the stage list a job uses.
func (b *Board) Stages(jobType string) []pipeline.Stage {
	return b.catalog.For(jobType)
}
