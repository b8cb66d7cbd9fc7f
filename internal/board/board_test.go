package board

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"ats-pipeline/internal/notify"
	"ats-pipeline/internal/pipeline"
	"ats-pipeline/internal/session"
	"ats-pipeline/internal/stages"
	"ats-pipeline/internal/storage"
)

type fakeStore struct {
	mu      sync.Mutex
	jobs    map[string]storage.Job
	records map[string][]storage.CandidateRecord
	moves   []storage.StageTransition
	loads   int
	listErr error
	moveErr error
	// gate, when set, holds MoveCandidateStage until it is closed.
	gate chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		jobs: map[string]storage.Job{
			"acme/job-1": {ID: "job-1", TenantID: "acme", Title: "Backend Engineer"},
		},
		records: map[string][]storage.CandidateRecord{
			"acme/job-1": {
				{TenantID: "acme", JobID: "job-1", Candidate: pipeline.Candidate{ID: "1", Name: "Ada", StageID: "applied", Rating: 5, Source: "LinkedIn"}},
				{TenantID: "acme", JobID: "job-1", Candidate: pipeline.Candidate{ID: "2", Name: "Grace", StageID: "applied", Rating: 3, Source: "Referral"}},
				{TenantID: "acme", JobID: "job-1", Candidate: pipeline.Candidate{ID: "3", Name: "Alan", StageID: "screening", Rating: 4, Source: "LinkedIn"}},
				{TenantID: "acme", JobID: "job-1", Candidate: pipeline.Candidate{ID: "4", Name: "Lost", StageID: "archived"}},
			},
		},
	}
}

func (f *fakeStore) GetJob(ctx context.Context, tenantID, jobID string) (*storage.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[tenantID+"/"+jobID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &job, nil
}

func (f *fakeStore) ListCandidatesByJob(ctx context.Context, tenantID, jobID string) ([]storage.CandidateRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.listErr != nil {
		return nil, &storage.FetchError{Op: "candidates", Err: f.listErr}
	}
	return append([]storage.CandidateRecord(nil), f.records[tenantID+"/"+jobID]...), nil
}

func (f *fakeStore) MoveCandidateStage(ctx context.Context, t *storage.StageTransition) error {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.moveErr != nil {
		return f.moveErr
	}
	f.moves = append(f.moves, *t)
	recs := f.records[t.TenantID+"/"+t.JobID]
	for i := range recs {
		if recs[i].Candidate.ID == t.CandidateID {
			recs[i].Candidate.StageID = t.ToStageID
		}
	}
	return nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *fakeNotifier) StageChanged(ctx context.Context, e notify.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
	return nil
}

func newTestBoard(t *testing.T, store *fakeStore, notifier Notifier) *Board {
	t.Helper()
	catalog, err := stages.NewCatalog(map[string][]pipeline.Stage{
		"default": {
			{ID: "applied", Name: "Applied", Rank: 1},
			{ID: "screening", Name: "Screening", Rank: 2},
			{ID: "hired", Name: "Hired", Rank: 3},
		},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return New(store, catalog, Options{QueueSize: 10, Notifier: notifier})
}

func acmeCtx(user string) context.Context {
	return session.WithSession(context.Background(), session.Session{TenantID: "acme", UserID: user})
}

func candidateIDs(cs []pipeline.Candidate) []string {
	out := []string{}
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestViewLoadsPipeline(t *testing.T) {
	store := newFakeStore()
	b := newTestBoard(t, store, nil)
	defer b.Close()

	v, err := b.View(acmeCtx("u"), "job-1", pipeline.Filter{})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if v.Total != 3 || len(v.Stages) != 3 {
		t.Fatalf("view total=%d stages=%d", v.Total, len(v.Stages))
	}
	if got := candidateIDs(v.Stages[0].Candidates); !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Fatalf("applied = %v", got)
	}
	if got := candidateIDs(v.Unassigned); !reflect.DeepEqual(got, []string{"4"}) {
		t.Fatalf("unassigned = %v", got)
	}

	if _, err := b.View(acmeCtx("u"), "job-1", pipeline.Filter{Source: "LinkedIn"}); err != nil {
		t.Fatalf("second View: %v", err)
	}
	if store.loads != 1 {
		t.Fatalf("store loaded %d times, want 1 (cached)", store.loads)
	}
}

func TestMovePersistsAndNotifies(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	b := newTestBoard(t, store, notifier)

	moved, err := b.Move(acmeCtx("recruiter-9"), "job-1", "1", "applied", "screening")
	if err != nil || !moved {
		t.Fatalf("Move = %v, %v", moved, err)
	}

	v, _ := b.View(acmeCtx("recruiter-9"), "job-1", pipeline.Filter{})
	if got := candidateIDs(v.Stages[1].Candidates); !reflect.DeepEqual(got, []string{"3", "1"}) {
		t.Fatalf("screening = %v, want [3 1]", got)
	}

	b.Close()

	if len(store.moves) != 1 {
		t.Fatalf("persisted %d moves, want 1", len(store.moves))
	}
	m := store.moves[0]
	if m.CandidateID != "1" || m.FromStageID != "applied" || m.ToStageID != "screening" || m.MovedBy != "recruiter-9" || m.TenantID != "acme" {
		t.Fatalf("persisted move = %+v", m)
	}
	if len(notifier.events) != 1 || notifier.events[0].ToStageID != "screening" {
		t.Fatalf("events = %+v", notifier.events)
	}
}

func TestMoveNoOpIsNotPersisted(t *testing.T) {
	store := newFakeStore()
	b := newTestBoard(t, store, nil)

	for _, tc := range [][3]string{
		{"1", "applied", "applied"},
		{"99", "applied", "hired"},
	} {
		moved, err := b.Move(acmeCtx("u"), "job-1", tc[0], tc[1], tc[2])
		if err != nil {
			t.Fatalf("Move(%v): %v", tc, err)
		}
		if moved {
			t.Fatalf("Move(%v) should be a no-op", tc)
		}
	}

	b.Close()
	if len(store.moves) != 0 {
		t.Fatalf("persisted %d moves, want 0", len(store.moves))
	}
}

func TestPersistFailureKeepsSessionState(t *testing.T) {
	store := newFakeStore()
	store.moveErr = errors.New("db down")
	b := newTestBoard(t, store, nil)

	if moved, _ := b.Move(acmeCtx("u"), "job-1", "3", "screening", "hired"); !moved {
		t.Fatal("expected move")
	}
	b.Close()

	p, _, err := b.Pipeline(acmeCtx("u"), "job-1", pipeline.Filter{})
	if err != nil {
		t.Fatalf("Pipeline: %v", err)
	}
	if c, _ := p.Candidate("3"); c.StageID != "hired" {
		t.Fatalf("session state = %q, want hired", c.StageID)
	}
}

func TestInvalidateWaitsForQueuedMoves(t *testing.T) {
	store := newFakeStore()
	store.gate = make(chan struct{})
	b := newTestBoard(t, store, nil)
	defer b.Close()

	if moved, err := b.Move(acmeCtx("u"), "job-1", "1", "applied", "screening"); err != nil || !moved {
		t.Fatalf("Move = %v, %v", moved, err)
	}
	b.Invalidate("acme", "job-1")

	type result struct {
		v   *View
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := b.View(acmeCtx("u"), "job-1", pipeline.Filter{})
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		close(store.gate)
		t.Fatalf("View returned before the move was persisted: %+v", r)
	case <-time.After(50 * time.Millisecond):
	}

	close(store.gate)
	var r result
	select {
	case r = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("View did not return after the move was persisted")
	}
	if r.err != nil {
		t.Fatalf("View: %v", r.err)
	}
	if got := candidateIDs(r.v.Stages[0].Candidates); !reflect.DeepEqual(got, []string{"2"}) {
		t.Fatalf("applied = %v, want [2]", got)
	}
	if got := candidateIDs(r.v.Stages[1].Candidates); !reflect.DeepEqual(got, []string{"1", "3"}) {
		t.Fatalf("screening = %v, want [1 3]", got)
	}

	if moved, _ := b.Move(acmeCtx("u"), "job-1", "1", "screening", "hired"); !moved {
		t.Fatal("follow-up move from the persisted stage should apply")
	}
}

func TestErrors(t *testing.T) {
	store := newFakeStore()
	b := newTestBoard(t, store, nil)
	defer b.Close()

	if _, err := b.View(context.Background(), "job-1", pipeline.Filter{}); !errors.Is(err, ErrNoSession) {
		t.Fatalf("no session err = %v", err)
	}
	if _, err := b.View(acmeCtx("u"), "missing", pipeline.Filter{}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("missing job err = %v", err)
	}
	other := session.WithSession(context.Background(), session.Session{TenantID: "globex"})
	if _, err := b.View(other, "job-1", pipeline.Filter{}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("cross-tenant err = %v", err)
	}

	store.listErr = errors.New("connection refused")
	b.Invalidate("acme", "job-1")
	_, err := b.View(acmeCtx("u"), "job-1", pipeline.Filter{})
	var fetchErr *storage.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("err = %v, want *storage.FetchError", err)
	}
}

func TestReloadPicksUpStoreChanges(t *testing.T) {
	store := newFakeStore()
	b := newTestBoard(t, store, nil)
	defer b.Close()

	if _, err := b.View(acmeCtx("u"), "job-1", pipeline.Filter{}); err != nil {
		t.Fatalf("View: %v", err)
	}

	store.mu.Lock()
	store.records["acme/job-1"] = append(store.records["acme/job-1"], storage.CandidateRecord{
		Candidate: pipeline.Candidate{ID: "5", Name: "Barbara", StageID: "hired"},
	})
	store.mu.Unlock()

	v, err := b.Reload(acmeCtx("u"), "job-1")
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := candidateIDs(v.Stages[2].Candidates); !reflect.DeepEqual(got, []string{"5"}) {
		t.Fatalf("hired = %v", got)
	}
}

func TestAnalytics(t *testing.T) {
	b := newTestBoard(t, newFakeStore(), nil)
	defer b.Close()

	a, err := b.Analytics(acmeCtx("u"), "job-1", pipeline.Filter{})
	if err != nil {
		t.Fatalf("Analytics: %v", err)
	}
	if a.Total != 3 || a.Unassigned != 1 || a.AverageRating != 4 {
		t.Fatalf("analytics = %+v", a)
	}
}

func TestCloseIsIdempotentAndDropsLateMoves(t *testing.T) {
	store := newFakeStore()
	b := newTestBoard(t, store, nil)
	if _, err := b.View(acmeCtx("u"), "job-1", pipeline.Filter{}); err != nil {
		t.Fatalf("View: %v", err)
	}
	b.Close()
	b.Close()

	if moved, _ := b.Move(acmeCtx("u"), "job-1", "1", "applied", "hired"); !moved {
		t.Fatal("in-memory move should still apply")
	}
	if len(store.moves) != 0 {
		t.Fatalf("late move persisted: %+v", store.moves)
	}
}
