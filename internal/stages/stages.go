// Package stages loads the stage configuration used to build pipelines.
package stages

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"ats-pipeline/internal/pipeline"
)

// DefaultJobType is used when a job has no type or an unconfigured one.
const DefaultJobType = "default"

// Default is the stage list applied to jobs without a configured type.
var Default = []pipeline.Stage{
	{ID: "applied", Name: "Applied", Color: "#3B82F6", Rank: 1, Description: "Application received"},
	{ID: "screening", Name: "Screening", Color: "#EAB308", Rank: 2, Description: "Recruiter screen"},
	{ID: "interview", Name: "Interview", Color: "#A855F7", Rank: 3, Description: "Interview loop"},
	{ID: "offer", Name: "Offer", Color: "#F97316", Rank: 4, Description: "Offer extended"},
	{ID: "hired", Name: "Hired", Color: "#22C55E", Rank: 5, Description: "Offer accepted"},
}

type file struct {
	JobTypes map[string][]pipeline.Stage `yaml:"job_types"`
}

// Catalog maps job types to validated, rank ordered stage lists.
type Catalog struct {
	byType map[string][]pipeline.Stage
}

// NewCatalog validates every list. The default list is added when absent.
func NewCatalog(byType map[string][]pipeline.Stage) (*Catalog, error) {
	c := &Catalog{byType: make(map[string][]pipeline.Stage, len(byType)+1)}
	for jobType, list := range byType {
		key := normalize(jobType)
		sorted, err := pipeline.ValidateStages(list)
		if err != nil {
			return nil, fmt.Errorf("job type %q: %w", jobType, err)
		}
		c.byType[key] = sorted
	}
	if _, ok := c.byType[DefaultJobType]; !ok {
		c.byType[DefaultJobType] = Default
	}
	return c, nil
}

// Load reads a YAML stage file. An empty path yields the built-in default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return NewCatalog(nil)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stages file: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse stages yaml: %w", err)
	}

	return NewCatalog(f.JobTypes)
}

// For returns the stages configured for jobType, falling back to the
// default list.
func (c *Catalog) For(jobType string) []pipeline.Stage {
	list, ok := c.byType[normalize(jobType)]
	if !ok {
		list = c.byType[DefaultJobType]
	}
	out := make([]pipeline.Stage, len(list))
	copy(out, list)
	return out
}

// JobTypes lists the configured job types.
func (c *Catalog) JobTypes() []string {
	out := make([]string, 0, len(c.byType))
	for k := range c.byType {
		out = append(out, k)
	}
	return out
}

func normalize(jobType string) string {
	jobType = strings.ToLower(strings.TrimSpace(jobType))
	if jobType == "" {
		return DefaultJobType
	}
	return jobType
}
