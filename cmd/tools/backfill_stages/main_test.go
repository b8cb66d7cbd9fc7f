package main

import (
	"reflect"
	"testing"

	"ats-pipeline/internal/pipeline"
	"ats-pipeline/internal/storage"
)

func record(id, stage string) storage.CandidateRecord {
	return storage.CandidateRecord{Candidate: pipeline.Candidate{ID: id, Name: "c" + id, StageID: stage}}
}

func TestPlanReassignments(t *testing.T) {
	jobStages := []pipeline.Stage{
		{ID: "applied", Rank: 1},
		{ID: "screening", Rank: 2},
	}
	records := []storage.CandidateRecord{
		record("1", "applied"),
		record("2", "phone_screen"),
		record("3", "archived"),
		record("4", ""),
		record("5", "legacy"),
	}
	renames := map[string]string{"phone_screen": "screening", "legacy": "gone"}

	got := planReassignments(jobStages, records, renames)
	want := []reassignment{
		{CandidateID: "2", Name: "c2", FromStageID: "phone_screen", ToStageID: "screening"},
		{CandidateID: "3", Name: "c3", FromStageID: "archived", ToStageID: "applied"},
		{CandidateID: "4", Name: "c4", FromStageID: "", ToStageID: "applied"},
		{CandidateID: "5", Name: "c5", FromStageID: "legacy", ToStageID: "applied"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("plan = %+v\nwant %+v", got, want)
	}

	if plan := planReassignments(nil, records, nil); plan != nil {
		t.Fatalf("no stages should plan nothing, got %+v", plan)
	}
}

func TestParseMapping(t *testing.T) {
	got, err := parseMapping(" phone_screen = screening, onsite=interview ,")
	if err != nil {
		t.Fatalf("parseMapping: %v", err)
	}
	want := map[string]string{"phone_screen": "screening", "onsite": "interview"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("mapping = %v", got)
	}

	for _, bad := range []string{"nope", "=x", "x="} {
		if _, err := parseMapping(bad); err == nil {
			t.Errorf("parseMapping(%q) should fail", bad)
		}
	}
}
