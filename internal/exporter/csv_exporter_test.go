package exporter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"ats-pipeline/internal/pipeline"
)

func testPipeline(t *testing.T) *pipeline.Pipeline {
	t.Helper()
	salary := 120000.5
	applied := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	p, err := pipeline.New(
		[]pipeline.Stage{
			{ID: "screening", Name: "Screening", Rank: 2},
			{ID: "applied", Name: "Applied", Rank: 1},
		},
		[]pipeline.Candidate{
			{ID: "3", Name: "Alan", StageID: "screening", Rating: 3, Source: "LinkedIn"},
			{ID: "1", Name: "Ada", Email: "ada@example.com", StageID: "applied", Rating: 5, Source: "LinkedIn",
				Skills: []string{"Go", " ", "Post\ngres"}, SalaryExpectation: &salary, AppliedDate: applied,
				Status: pipeline.StatusActive},
			{ID: "9", Name: "Nobody", StageID: "archived"},
		},
	)
	if err != nil {
		t.Fatalf("pipeline.New: %v", err)
	}
	return p
}

func TestWritePipelineCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePipelineCSV(&buf, testPipeline(t)); err != nil {
		t.Fatalf("WritePipelineCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(records))
	}
	if records[0][0] != "STAGE_ID" || len(records[0]) != len(pipelineHeader) {
		t.Fatalf("header = %v", records[0])
	}

	ada := records[1]
	if ada[0] != "applied" || ada[2] != "1" {
		t.Fatalf("first row should be Ada in applied, got %v", ada)
	}
	if ada[11] != "120000.5" {
		t.Errorf("salary = %q", ada[11])
	}
	if ada[12] != "Go | Post gres" {
		t.Errorf("skills = %q", ada[12])
	}
	if ada[14] != "2024-03-01 09:30:00" {
		t.Errorf("applied date = %q", ada[14])
	}
	if ada[15] != "" {
		t.Errorf("zero last activity should be empty, got %q", ada[15])
	}
	if records[2][0] != "screening" || records[2][2] != "3" {
		t.Fatalf("second row = %v", records[2])
	}
}

func TestWriteAnalyticsCSV(t *testing.T) {
	a := pipeline.ComputeAnalytics(testPipeline(t))

	var buf bytes.Buffer
	if err := WriteAnalyticsCSV(&buf, a); err != nil {
		t.Fatalf("WriteAnalyticsCSV: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"METRIC,KEY,VALUE\n",
		"total,,2\n",
		"average_rating,,4.00\n",
		"unassigned,,1\n",
		"stage_count,applied,1\n",
		"snapshot_conversion,applied->screening,0.5000\n",
		"source,LinkedIn,2\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
