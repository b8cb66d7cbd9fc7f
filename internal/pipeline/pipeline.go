// Package pipeline holds the in-memory assignment of candidates to hiring
// stages for a single job requisition.
//
// A Pipeline is owned by one session and is not safe for concurrent use.
// Interactive operations never fail: invalid moves are ignored. Only a
// malformed stage configuration is rejected, by New.
package pipeline

import (
	"log"
	"time"
)

// StageChange describes a completed move of one candidate.
type StageChange struct {
	CandidateID string    `json:"candidate_id"`
	FromStageID string    `json:"from_stage_id"`
	ToStageID   string    `json:"to_stage_id"`
	At          time.Time `json:"at"`
}

// StageChangeHook is called after every successful move. The pipeline does
// not wait on anything the hook starts.
type StageChangeHook func(StageChange)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithStageChangeHook registers the observer notified after each move.
func WithStageChangeHook(hook StageChangeHook) Option {
	return func(p *Pipeline) { p.onStageChange = hook }
}

// WithClock overrides the time source used to stamp moves.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// Pipeline maps stage ids to the candidates currently in that stage.
type Pipeline struct {
	stages     []Stage
	stageIndex map[string]int
	buckets    map[string][]Candidate
	unassigned []Candidate
	duplicates int

	readOnly      bool
	onStageChange StageChangeHook
	now           func() time.Time
}

// New validates the stage configuration and partitions candidates into
// per-stage buckets, keeping input order inside each bucket. Candidates
// pointing at an unknown stage are held in Unassigned instead of being
// dropped. Repeated candidate ids keep the first occurrence.
func New(stages []Stage, candidates []Candidate, opts ...Option) (*Pipeline, error) {
	sorted, err := ValidateStages(stages)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		stages:     sorted,
		stageIndex: make(map[string]int, len(sorted)),
		buckets:    make(map[string][]Candidate, len(sorted)),
		now:        time.Now,
	}
	for i, s := range sorted {
		p.stageIndex[s.ID] = i
		p.buckets[s.ID] = []Candidate{}
	}
	for _, opt := range opts {
		opt(p)
	}

	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if seen[c.ID] {
			p.duplicates++
			log.Printf("[Pipeline] duplicate candidate id %q ignored", c.ID)
			continue
		}
		seen[c.ID] = true

		if _, ok := p.stageIndex[c.StageID]; !ok {
			p.unassigned = append(p.unassigned, c.clone())
			continue
		}
		p.buckets[c.StageID] = append(p.buckets[c.StageID], c.clone())
	}

	if len(p.unassigned) > 0 {
		log.Printf("[Pipeline] %d candidate(s) reference unknown stages and are unassigned", len(p.unassigned))
	}

	return p, nil
}

// MoveCandidate moves a candidate from one stage to the end of another and
// reports whether anything changed. Moving to the same stage, moving a
// candidate that is not in fromStageID, or targeting an unknown stage is a
// no-op. Moves in either direction are allowed.
func (p *Pipeline) MoveCandidate(candidateID, fromStageID, toStageID string) bool {
	if p.readOnly || fromStageID == toStageID {
		return false
	}
	if _, ok := p.stageIndex[toStageID]; !ok {
		return false
	}
	src, ok := p.buckets[fromStageID]
	if !ok {
		return false
	}

	pos := -1
	for i := range src {
		if src[i].ID == candidateID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return false
	}

	moved := src[pos]
	remaining := make([]Candidate, 0, len(src)-1)
	remaining = append(remaining, src[:pos]...)
	remaining = append(remaining, src[pos+1:]...)

	at := p.now()
	moved.StageID = toStageID
	moved.LastActivity = at

	p.buckets[fromStageID] = remaining
	p.buckets[toStageID] = append(p.buckets[toStageID], moved)

	if p.onStageChange != nil {
		p.onStageChange(StageChange{
			CandidateID: candidateID,
			FromStageID: fromStageID,
			ToStageID:   toStageID,
			At:          at,
		})
	}
	return true
}

// Stages returns the stage configuration in rank order.
func (p *Pipeline) Stages() []Stage {
	out := make([]Stage, len(p.stages))
	copy(out, p.stages)
	return out
}

// HasStage reports whether stageID is part of the configuration.
func (p *Pipeline) HasStage(stageID string) bool {
	_, ok := p.stageIndex[stageID]
	return ok
}

// FirstStage returns the lowest ranked stage.
func (p *Pipeline) FirstStage() Stage {
	return p.stages[0]
}

// Bucket returns a copy of the candidates in a stage, in arrival order.
// Unknown stages yield nil.
func (p *Pipeline) Bucket(stageID string) []Candidate {
	src, ok := p.buckets[stageID]
	if !ok {
		return nil
	}
	out := make([]Candidate, len(src))
	for i, c := range src {
		out[i] = c.clone()
	}
	return out
}

// Candidate looks a candidate up across all stages.
func (p *Pipeline) Candidate(id string) (Candidate, bool) {
	for _, s := range p.stages {
		for _, c := range p.buckets[s.ID] {
			if c.ID == id {
				return c.clone(), true
			}
		}
	}
	return Candidate{}, false
}

// Len is the number of candidates assigned to a known stage.
func (p *Pipeline) Len() int {
	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}

// Unassigned returns candidates whose stage id matched no configured stage.
func (p *Pipeline) Unassigned() []Candidate {
	out := make([]Candidate, len(p.unassigned))
	for i, c := range p.unassigned {
		out[i] = c.clone()
	}
	return out
}

// DuplicateCount is the number of input records skipped for a repeated id.
func (p *Pipeline) DuplicateCount() int {
	return p.duplicates
}

// ReadOnly reports whether p is a derived view that rejects moves.
func (p *Pipeline) ReadOnly() bool {
	return p.readOnly
}

// Snapshot returns a deep copy of every bucket keyed by stage id.
func (p *Pipeline) Snapshot() map[string][]Candidate {
	out := make(map[string][]Candidate, len(p.buckets))
	for id := range p.buckets {
		out[id] = p.Bucket(id)
	}
	return out
}

// Candidates flattens the pipeline in stage rank order.
func (p *Pipeline) Candidates() []Candidate {
	out := make([]Candidate, 0, p.Len())
	for _, s := range p.stages {
		for _, c := range p.buckets[s.ID] {
			out = append(out, c.clone())
		}
	}
	return out
}
