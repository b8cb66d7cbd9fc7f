package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ats-pipeline/internal/pipeline"
)

const dateLayout = "2006-01-02 15:04:05"

var pipelineHeader = []string{
	"STAGE_ID",
	"STAGE_NAME",
	"CANDIDATE_ID",
	"NAME",
	"EMAIL",
	"PHONE",
	"LOCATION",
	"POSITION",
	"RATING",
	"SOURCE",
	"EXPERIENCE",
	"SALARY_EXPECTATION",
	"SKILLS",
	"STATUS",
	"APPLIED_DATE",
	"LAST_ACTIVITY",
}

// WritePipelineCSV writes one row per candidate, stages in rank order.
// Unassigned candidates are not exported.
func WritePipelineCSV(w io.Writer, p *pipeline.Pipeline) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(pipelineHeader); err != nil {
		return fmt.Errorf("write CSV headers: %w", err)
	}

	for _, st := range p.Stages() {
		for _, c := range p.Bucket(st.ID) {
			if err := cw.Write(candidateRow(st, c)); err != nil {
				return fmt.Errorf("write CSV record: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func candidateRow(st pipeline.Stage, c pipeline.Candidate) []string {
	salary := ""
	if c.SalaryExpectation != nil {
		salary = strconv.FormatFloat(*c.SalaryExpectation, 'f', -1, 64)
	}

	return []string{
		st.ID,
		st.Name,
		c.ID,
		c.Name,
		c.Email,
		c.Phone,
		c.Location,
		c.Position,
		strconv.Itoa(c.Rating),
		c.Source,
		c.Experience,
		salary,
		strings.Join(cleanStrings(c.Skills), " | "),
		string(c.Status),
		formatDate(c.AppliedDate),
		formatDate(c.LastActivity),
	}
}

// WriteAnalyticsCSV writes stage counts, conversions and the source
// breakdown as METRIC,KEY,VALUE rows.
func WriteAnalyticsCSV(w io.Writer, a pipeline.Analytics) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"METRIC", "KEY", "VALUE"},
		{"total", "", strconv.Itoa(a.Total)},
		{"average_rating", "", strconv.FormatFloat(a.AverageRating, 'f', 2, 64)},
		{"unassigned", "", strconv.Itoa(a.Unassigned)},
	}
	for _, s := range a.Stages {
		rows = append(rows, []string{"stage_count", s.StageID, strconv.Itoa(s.Count)})
	}
	for _, c := range a.Conversions {
		rows = append(rows, []string{
			"snapshot_conversion",
			c.FromStageID + "->" + c.ToStageID,
			strconv.FormatFloat(c.SnapshotConversion, 'f', 4, 64),
		})
	}
	for _, source := range sortedKeys(a.BySource) {
		rows = append(rows, []string{"source", source, strconv.Itoa(a.BySource[source])})
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write analytics CSV: %w", err)
	}
	return nil
}
