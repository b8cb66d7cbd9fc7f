package stages

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"ats-pipeline/internal/pipeline"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stages.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write stages file: %v", err)
	}
	return path
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := c.For("anything")
	if len(got) != len(Default) || got[0].ID != "applied" {
		t.Fatalf("For = %+v, want default stages", got)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, `
job_types:
  Engineering:
    - id: review
      name: Review
      color: "#111111"
      rank: 2
    - id: applied
      name: Applied
      color: "#222222"
      rank: 1
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := c.For(" engineering ")
	if len(got) != 2 || got[0].ID != "applied" || got[1].ID != "review" {
		t.Fatalf("For(engineering) = %+v", got)
	}

	types := c.JobTypes()
	sort.Strings(types)
	if len(types) != 2 || types[0] != "default" || types[1] != "engineering" {
		t.Fatalf("JobTypes = %v", types)
	}
}

func TestLoadRejectsInvalidStages(t *testing.T) {
	path := writeFile(t, `
job_types:
  sales:
    - id: a
      rank: 1
    - id: a
      rank: 2
`)
	_, err := Load(path)
	var cfgErr *pipeline.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestForReturnsCopy(t *testing.T) {
	c, _ := Load("")
	got := c.For("")
	got[0].Name = "changed"
	if c.For("")[0].Name != "Applied" {
		t.Fatal("For leaked internal slice")
	}
}

func TestDefaultIsValid(t *testing.T) {
	if _, err := pipeline.ValidateStages(Default); err != nil {
		t.Fatalf("default stages invalid: %v", err)
	}
}
