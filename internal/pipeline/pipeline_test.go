package pipeline

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func testStages() []Stage {
	return []Stage{
		{ID: "hired", Name: "Hired", Color: "green", Rank: 3},
		{ID: "applied", Name: "Applied", Color: "blue", Rank: 1},
		{ID: "screening", Name: "Screening", Color: "yellow", Rank: 2},
	}
}

func testCandidates() []Candidate {
	return []Candidate{
		{ID: "1", Name: "Ada Lovelace", Email: "ada@example.com", StageID: "applied", Rating: 5, Source: "LinkedIn", Skills: []string{"Go", "Math"}, Status: StatusActive},
		{ID: "2", Name: "Grace Hopper", Email: "grace@example.com", StageID: "applied", Rating: 4, Source: "Referral", Skills: []string{"COBOL"}, Status: StatusActive},
		{ID: "3", Name: "Alan Turing", Email: "alan@example.com", StageID: "screening", Rating: 3, Source: "LinkedIn", Skills: []string{"Cryptography"}, Status: StatusActive},
	}
}

func ids(cs []Candidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func mustNew(t *testing.T, opts ...Option) *Pipeline {
	t.Helper()
	p, err := New(testStages(), testCandidates(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestNewOrdersStagesByRank(t *testing.T) {
	p := mustNew(t)
	var got []string
	for _, s := range p.Stages() {
		got = append(got, s.ID)
	}
	want := []string{"applied", "screening", "hired"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("stages = %v, want %v", got, want)
	}
	if p.FirstStage().ID != "applied" {
		t.Fatalf("FirstStage = %q, want applied", p.FirstStage().ID)
	}
}

func TestNewPartitionsAllCandidates(t *testing.T) {
	p := mustNew(t)
	if p.Len() != len(testCandidates()) {
		t.Fatalf("Len = %d, want %d", p.Len(), len(testCandidates()))
	}
	if got := ids(p.Bucket("applied")); !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Fatalf("applied = %v", got)
	}
	if got := ids(p.Bucket("screening")); !reflect.DeepEqual(got, []string{"3"}) {
		t.Fatalf("screening = %v", got)
	}
	if got := p.Bucket("hired"); len(got) != 0 {
		t.Fatalf("hired = %v, want empty", ids(got))
	}
}

func TestNewRejectsBadStageConfig(t *testing.T) {
	tests := []struct {
		name   string
		stages []Stage
	}{
		{"empty", nil},
		{"duplicate id", []Stage{{ID: "a", Rank: 1}, {ID: "a", Rank: 2}}},
		{"duplicate id after trim", []Stage{{ID: "a", Rank: 1}, {ID: " a", Rank: 2}}},
		{"blank id", []Stage{{ID: " ", Name: "Blank", Rank: 1}}},
		{"duplicate rank", []Stage{{ID: "a", Rank: 1}, {ID: "b", Rank: 1}}},
		{"gap in ranks", []Stage{{ID: "a", Rank: 1}, {ID: "b", Rank: 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.stages, nil)
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
		})
	}
}

func TestNewTrimsStageIDs(t *testing.T) {
	p, err := New([]Stage{{ID: " applied", Rank: 1}, {ID: "offer\t", Rank: 2}}, []Candidate{
		{ID: "1", StageID: "applied"},
		{ID: "2", StageID: "offer"},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.Len() != 2 || len(p.Unassigned()) != 0 {
		t.Fatalf("len=%d unassigned=%d, want 2 and 0", p.Len(), len(p.Unassigned()))
	}
	if got := p.Stages()[0].ID; got != "applied" {
		t.Fatalf("stage id = %q, want trimmed", got)
	}
	if !p.MoveCandidate("1", "applied", "offer") {
		t.Fatal("move between trimmed ids should apply")
	}
}

func TestNewKeepsUnknownStageCandidatesAsUnassigned(t *testing.T) {
	cands := append(testCandidates(), Candidate{ID: "4", Name: "Lost", StageID: "unknown_stage", Status: StatusActive})
	p, err := New(testStages(), cands)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.Len() != 3 {
		t.Fatalf("Len = %d, want 3", p.Len())
	}
	un := p.Unassigned()
	if len(un) != 1 || un[0].ID != "4" {
		t.Fatalf("Unassigned = %v, want [4]", ids(un))
	}
	if _, ok := p.Candidate("4"); ok {
		t.Fatal("unassigned candidate should not be found in a stage")
	}
}

func TestNewSkipsDuplicateIDs(t *testing.T) {
	cands := append(testCandidates(), Candidate{ID: "1", Name: "Copy", StageID: "hired"})
	p, err := New(testStages(), cands)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.DuplicateCount() != 1 {
		t.Fatalf("DuplicateCount = %d, want 1", p.DuplicateCount())
	}
	if got := p.Bucket("hired"); len(got) != 0 {
		t.Fatalf("duplicate should not be bucketed, hired = %v", ids(got))
	}
}

func TestMoveCandidateScenario(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	var events []StageChange
	p := mustNew(t,
		WithClock(func() time.Time { return at }),
		WithStageChangeHook(func(sc StageChange) { events = append(events, sc) }),
	)

	if !p.MoveCandidate("1", "applied", "screening") {
		t.Fatal("expected move to succeed")
	}

	if got := ids(p.Bucket("applied")); !reflect.DeepEqual(got, []string{"2"}) {
		t.Fatalf("applied = %v, want [2]", got)
	}
	if got := ids(p.Bucket("screening")); !reflect.DeepEqual(got, []string{"3", "1"}) {
		t.Fatalf("screening = %v, want [3 1]", got)
	}
	if got := p.Bucket("hired"); len(got) != 0 {
		t.Fatalf("hired = %v, want empty", ids(got))
	}

	c, ok := p.Candidate("1")
	if !ok {
		t.Fatal("candidate 1 missing")
	}
	if c.StageID != "screening" {
		t.Fatalf("StageID = %q, want screening", c.StageID)
	}
	if !c.LastActivity.Equal(at) {
		t.Fatalf("LastActivity = %v, want %v", c.LastActivity, at)
	}

	want := []StageChange{{CandidateID: "1", FromStageID: "applied", ToStageID: "screening", At: at}}
	if !reflect.DeepEqual(events, want) {
		t.Fatalf("events = %+v, want %+v", events, want)
	}
}

func TestMoveCandidateRoundTrip(t *testing.T) {
	p := mustNew(t)
	p.MoveCandidate("3", "screening", "hired")
	p.MoveCandidate("3", "hired", "screening")

	c, _ := p.Candidate("3")
	if c.StageID != "screening" {
		t.Fatalf("StageID = %q, want screening", c.StageID)
	}
	if got := ids(p.Bucket("screening")); !reflect.DeepEqual(got, []string{"3"}) {
		t.Fatalf("screening = %v, want [3]", got)
	}
	if p.Len() != 3 {
		t.Fatalf("Len = %d, want 3", p.Len())
	}
}

func TestMoveCandidateBackwardAllowed(t *testing.T) {
	p := mustNew(t)
	if !p.MoveCandidate("3", "screening", "applied") {
		t.Fatal("backward move should be allowed")
	}
	if got := ids(p.Bucket("applied")); !reflect.DeepEqual(got, []string{"1", "2", "3"}) {
		t.Fatalf("applied = %v", got)
	}
}

func TestMoveCandidateNoOps(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		from      string
		to        string
	}{
		{"same stage", "1", "applied", "applied"},
		{"missing candidate", "99", "applied", "hired"},
		{"wrong source stage", "3", "applied", "hired"},
		{"unknown source", "1", "nowhere", "hired"},
		{"unknown target", "1", "applied", "nowhere"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			p := mustNew(t, WithStageChangeHook(func(StageChange) { calls++ }))
			before := p.Snapshot()

			if p.MoveCandidate(tt.candidate, tt.from, tt.to) {
				t.Fatal("expected no-op")
			}
			if !reflect.DeepEqual(before, p.Snapshot()) {
				t.Fatal("pipeline changed on a no-op move")
			}
			if calls != 0 {
				t.Fatalf("hook called %d times on a no-op", calls)
			}
		})
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	p := mustNew(t)
	snap := p.Snapshot()
	snap["applied"][0].Skills[0] = "mutated"
	snap["applied"] = nil

	c, _ := p.Candidate("1")
	if c.Skills[0] != "Go" {
		t.Fatalf("skills leaked through snapshot: %v", c.Skills)
	}
	if len(p.Bucket("applied")) != 2 {
		t.Fatal("bucket leaked through snapshot")
	}
}

func TestCandidatesInRankOrder(t *testing.T) {
	p := mustNew(t)
	p.MoveCandidate("1", "applied", "hired")
	if got := ids(p.Candidates()); !reflect.DeepEqual(got, []string{"2", "3", "1"}) {
		t.Fatalf("Candidates = %v", got)
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusActive, StatusOnHold, StatusRejected, StatusHired} {
		if !s.Valid() {
			t.Fatalf("%q should be valid", s)
		}
	}
	if Status("archived").Valid() {
		t.Fatal("archived should not be valid")
	}
}

func TestClampRating(t *testing.T) {
	tests := map[int]int{-2: 0, 0: 0, 3: 3, 5: 5, 9: 5}
	for in, want := range tests {
		if got := ClampRating(in); got != want {
			t.Fatalf("ClampRating(%d) = %d, want %d", in, got, want)
		}
	}
}
