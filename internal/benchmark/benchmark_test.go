package benchmark

import (
	"strings"
	"testing"

	"github.com/fact-agent/fact-engine/internal/knowledge"
	"github.com/fact-agent/fact-engine/internal/search"
)

func benchRetriever() (*search.Retriever, int) {
	store := knowledge.NewStore()
	store.Load([]knowledge.Entry{
		{
			ID:       1,
			Question: "How much does a Georgia contractor license cost?",
			Answer:   "The Georgia contractor license costs $200 for the application plus exam fees.",
			Category: knowledge.CategoryCost,
			State:    "GA",
			Tags:     []string{"georgia", "cost", "license"},
		},
		{
			ID:       2,
			Question: "What is on the contractor licensing exam?",
			Answer:   "The exam covers business law, project management, and trade knowledge.",
			Category: knowledge.CategoryExam,
			Tags:     []string{"exam"},
		},
	})
	params := search.StaticParams{W: search.DefaultWeights(), Syn: search.DefaultSynonyms()}
	return search.NewRetriever(store, params), store.Len()
}

func TestRun_DefaultProbes(t *testing.T) {
	retriever, entries := benchRetriever()

	report := Run(retriever, entries, nil, 2)

	if report.Entries != entries {
		t.Errorf("expected %d entries, got %d", entries, report.Entries)
	}
	if report.Iterations != 2 {
		t.Errorf("expected 2 iterations, got %d", report.Iterations)
	}
	if len(report.Probes) != len(DefaultProbes()) {
		t.Errorf("expected %d probes, got %d", len(DefaultProbes()), len(report.Probes))
	}
	if report.HighCount+report.MediumCount+report.LowCount != len(report.Probes) {
		t.Error("confidence counts do not sum to probe count")
	}
	if report.P95Micros < report.P50Micros {
		t.Errorf("expected p95 >= p50, got %d < %d", report.P95Micros, report.P50Micros)
	}
}

func TestRun_CustomProbes(t *testing.T) {
	retriever, entries := benchRetriever()

	probes := []Probe{{Query: "georgia license cost"}}
	report := Run(retriever, entries, probes, 1)

	if len(report.Probes) != 1 {
		t.Fatalf("expected 1 probe result, got %d", len(report.Probes))
	}
	if report.Probes[0].Confidence == search.ConfidenceLow {
		t.Errorf("expected a confident match for an on-topic probe, got %s (score %f)",
			report.Probes[0].Confidence, report.Probes[0].TopScore)
	}
}

func TestFormatReport(t *testing.T) {
	retriever, entries := benchRetriever()
	report := Run(retriever, entries, []Probe{{Query: "georgia license cost"}}, 1)

	out := FormatReport(report)

	if !strings.Contains(out, "RETRIEVAL BENCHMARK") {
		t.Error("expected report header")
	}
	if !strings.Contains(out, "georgia license cost") {
		t.Error("expected probe query in output")
	}
}
