package count

import (
	"strings"
	"testing"

	"github.com/jdhollis/logtally/models"
	"gopkg.in/yaml.v3"
)

func sampleReport() *models.Report {
	return &models.Report{
		Input:     "access.ndjson",
		Field:     "IP",
		Extractor: "field",
		Policy:    "skip",
		Workers:   4,
		Processed: 3,
		Malformed: 1,
		Distinct:  2,
		Top: []models.KeyCount{
			{Key: "1.1.1.1", Count: 2},
			{Key: "2.2.2.2", Count: 1},
		},
	}
}

func TestRenderYAML(t *testing.T) {
	out, err := Render(sampleReport(), "yaml")
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}

	var parsed models.Report
	if err := yaml.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("yaml output does not parse back: %v", err)
	}
	if parsed.Processed != 3 || len(parsed.Top) != 2 {
		t.Errorf("round-tripped report = %+v, want processed=3 with 2 top keys", parsed)
	}
	if parsed.Top[0].Key != "1.1.1.1" || parsed.Top[0].Count != 2 {
		t.Errorf("top[0] = %+v, want 1.1.1.1:2", parsed.Top[0])
	}
}

func TestRenderTable(t *testing.T) {
	out, err := Render(sampleReport(), "table")
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}

	for _, want := range []string{"1.1.1.1", "2.2.2.2", "malformed lines skipped: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q", want)
		}
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	if _, err := Render(sampleReport(), "csv"); err == nil {
		t.Error("Render() accepted an unknown format, want error")
	}
}
