package pipeline

import (
	"fmt"
	"sort"
	"strings"
)

// Stage is one ordered step of a hiring pipeline.
type Stage struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Color       string `json:"color" yaml:"color"`
	Rank        int    `json:"rank" yaml:"rank"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ConfigError reports a malformed stage configuration. It is the only
// error the engine returns.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "pipeline: invalid stage configuration: " + e.Reason
}

// ValidateStages checks ids are present and unique and that ranks form a
// contiguous run. It returns the stages sorted by rank, with ids trimmed.
func ValidateStages(stages []Stage) ([]Stage, error) {
	if len(stages) == 0 {
		return nil, &ConfigError{Reason: "no stages defined"}
	}

	sorted := make([]Stage, len(stages))
	seenIDs := make(map[string]bool, len(stages))
	seenRanks := make(map[int]string, len(stages))
	for i, s := range stages {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			return nil, &ConfigError{Reason: fmt.Sprintf("stage %q has an empty id", s.Name)}
		}
		if seenIDs[id] {
			return nil, &ConfigError{Reason: fmt.Sprintf("duplicate stage id %q", id)}
		}
		seenIDs[id] = true
		if other, ok := seenRanks[s.Rank]; ok {
			return nil, &ConfigError{Reason: fmt.Sprintf("stages %q and %q share rank %d", other, id, s.Rank)}
		}
		seenRanks[s.Rank] = id
		s.ID = id
		sorted[i] = s
	}

	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Rank < sorted[j].Rank })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Rank != sorted[i-1].Rank+1 {
			return nil, &ConfigError{Reason: fmt.Sprintf("ranks are not contiguous between %q (%d) and %q (%d)",
				sorted[i-1].ID, sorted[i-1].Rank, sorted[i].ID, sorted[i].Rank)}
		}
	}

	return sorted, nil
}
