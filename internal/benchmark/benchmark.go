/*
Package benchmark measures retrieval latency and answer quality over a
loaded knowledge store.

Each probe query runs through the full retrieval pipeline (tokenizer,
fuzzy matcher, scoring engine, ranking). The report aggregates latency
percentiles and the confidence distribution of top results.
*/
package benchmark

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fact-agent/fact-engine/internal/search"
)

// defaultIterations is how many times each probe query runs when the
// caller passes none.
const defaultIterations = 100

// Probe is one benchmark query with optional filters.
type Probe struct {
	Query   string         `json:"query"`
	Filters search.Filters `json:"filters,omitempty"`
}

// ProbeResult aggregates one probe's runs.
type ProbeResult struct {
	Query      string            `json:"query"`
	Confidence search.Confidence `json:"confidence"`
	TopScore   float64           `json:"top_score"`
	Results    int               `json:"results"`
	MeanMicros int64             `json:"mean_micros"`
}

// Report is the full benchmark output.
type Report struct {
	Entries     int           `json:"entries"`
	Iterations  int           `json:"iterations"`
	Probes      []ProbeResult `json:"probes"`
	P50Micros   int64         `json:"p50_micros"`
	P95Micros   int64         `json:"p95_micros"`
	P99Micros   int64         `json:"p99_micros"`
	HighCount   int           `json:"high_count"`
	MediumCount int           `json:"medium_count"`
	LowCount    int           `json:"low_count"`
}

// DefaultProbes covers the query shapes the engine sees in practice:
// exact phrasing, paraphrase, typos, abbreviations, and off-domain
// noise.
func DefaultProbes() []Probe {
	return []Probe{
		{Query: "how much does a georgia contractor license cost"},
		{Query: "how much does a GA license cost"},
		{Query: "whats the price of a contractor licence in georgia"},
		{Query: "georgia contracter liscense requirements"},
		{Query: "do i need a license for handyman work"},
		{Query: "how long does the licensing process take"},
		{Query: "what is on the exam"},
		{Query: "can you fix my truck"},
	}
}

// Run executes every probe `iterations` times against the retriever
// and aggregates latency and confidence statistics.
func Run(retriever *search.Retriever, entryCount int, probes []Probe, iterations int) *Report {
	if len(probes) == 0 {
		probes = DefaultProbes()
	}
	if iterations <= 0 {
		iterations = defaultIterations
	}

	report := &Report{
		Entries:    entryCount,
		Iterations: iterations,
	}

	var allMicros []int64
	for _, probe := range probes {
		var total time.Duration
		var results []search.MatchResult
		for i := 0; i < iterations; i++ {
			start := time.Now()
			results = retriever.Search(probe.Query, probe.Filters, 0)
			elapsed := time.Since(start)
			total += elapsed
			allMicros = append(allMicros, elapsed.Microseconds())
		}

		pr := ProbeResult{
			Query:      probe.Query,
			Confidence: search.ConfidenceLow,
			Results:    len(results),
			MeanMicros: (total / time.Duration(iterations)).Microseconds(),
		}
		if len(results) > 0 {
			pr.Confidence = results[0].Confidence
			pr.TopScore = results[0].Score
		}
		switch pr.Confidence {
		case search.ConfidenceHigh:
			report.HighCount++
		case search.ConfidenceMedium:
			report.MediumCount++
		default:
			report.LowCount++
		}
		report.Probes = append(report.Probes, pr)
	}

	sort.Slice(allMicros, func(i, j int) bool { return allMicros[i] < allMicros[j] })
	report.P50Micros = percentile(allMicros, 0.50)
	report.P95Micros = percentile(allMicros, 0.95)
	report.P99Micros = percentile(allMicros, 0.99)

	return report
}

// percentile expects a sorted slice.
func percentile(sorted []int64, p float64) int64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}

// FormatReport formats the benchmark report for display.
func FormatReport(r *Report) string {
	var sb strings.Builder

	sb.WriteString("RETRIEVAL BENCHMARK\n")
	sb.WriteString(fmt.Sprintf("  entries:    %d\n", r.Entries))
	sb.WriteString(fmt.Sprintf("  iterations: %d per probe\n", r.Iterations))
	sb.WriteString(fmt.Sprintf("  latency:    p50=%dµs p95=%dµs p99=%dµs\n",
		r.P50Micros, r.P95Micros, r.P99Micros))
	sb.WriteString(fmt.Sprintf("  confidence: high=%d medium=%d low=%d\n\n",
		r.HighCount, r.MediumCount, r.LowCount))

	for _, p := range r.Probes {
		sb.WriteString(fmt.Sprintf("  %-55q %-7s score=%.3f mean=%dµs\n",
			p.Query, p.Confidence, p.TopScore, p.MeanMicros))
	}

	return sb.String()
}
