package pipeline

// StageCount is the number of candidates in one stage.
type StageCount struct {
	StageID string `json:"stage_id"`
	Name    string `json:"name"`
	Count   int    `json:"count"`
}

// Conversion relates two adjacent stages.
//
// SnapshotConversion is next/(current+next) over the current assignment.
// It is a point-in-time ratio, not a cohort funnel rate.
type Conversion struct {
	FromStageID        string  `json:"from_stage_id"`
	ToStageID          string  `json:"to_stage_id"`
	FromCount          int     `json:"from_count"`
	ToCount            int     `json:"to_count"`
	SnapshotConversion float64 `json:"snapshot_conversion"`
}

// Analytics is derived from a pipeline and never stored.
type Analytics struct {
	Total         int            `json:"total"`
	AverageRating float64        `json:"average_rating"`
	Stages        []StageCount   `json:"stages"`
	Conversions   []Conversion   `json:"conversions"`
	BySource      map[string]int `json:"by_source"`
	Unassigned    int            `json:"unassigned"`
}

// UnknownSource groups candidates without a source channel.
const UnknownSource = "unknown"

// ComputeAnalytics summarises the stage assignment of p. Unassigned
// candidates are counted separately and excluded from everything else.
func ComputeAnalytics(p *Pipeline) Analytics {
	a := Analytics{
		Stages:      make([]StageCount, 0, len(p.stages)),
		Conversions: make([]Conversion, 0, len(p.stages)),
		BySource:    map[string]int{},
		Unassigned:  len(p.unassigned),
	}

	ratingSum := 0
	for _, s := range p.stages {
		bucket := p.buckets[s.ID]
		a.Stages = append(a.Stages, StageCount{StageID: s.ID, Name: s.Name, Count: len(bucket)})
		for _, c := range bucket {
			a.Total++
			ratingSum += c.Rating
			source := c.Source
			if source == "" {
				source = UnknownSource
			}
			a.BySource[source]++
		}
	}

	if a.Total > 0 {
		a.AverageRating = float64(ratingSum) / float64(a.Total)
	}

	for i := 0; i+1 < len(a.Stages); i++ {
		cur, next := a.Stages[i], a.Stages[i+1]
		conv := Conversion{
			FromStageID: cur.StageID,
			ToStageID:   next.StageID,
			FromCount:   cur.Count,
			ToCount:     next.Count,
		}
		if denom := cur.Count + next.Count; denom > 0 {
			conv.SnapshotConversion = float64(next.Count) / float64(denom)
		}
		a.Conversions = append(a.Conversions, conv)
	}

	return a
}

// Conversion returns the snapshot conversion between from and the stage
// directly after it.
func (a Analytics) Conversion(fromStageID string) (Conversion, bool) {
	for _, c := range a.Conversions {
		if c.FromStageID == fromStageID {
			return c, true
		}
	}
	return Conversion{}, false
}
