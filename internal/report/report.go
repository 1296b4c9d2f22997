// Package report collects test case records and derives a network metrics summary from them.
package report

import (
	"strings"

	"github.com/survivorsrl/netreport/internal/junit"
)

// Metrics is the aggregate result of one run. Field names, nesting, and value types are a
// stability contract with downstream consumers of the serialized artifact.
type Metrics struct {
	Latency   Latency      `json:"latency" jsonschema:"required"`
	Bandwidth Bandwidth    `json:"bandwidth" jsonschema:"required"`
	Scenarios Scenarios    `json:"scenarios" jsonschema:"required"`
	Tests     []TestResult `json:"tests" jsonschema:"required"`
}

// Latency captures timing aggregates. Min and Max are reserved fields: they are emitted for
// schema stability but nothing computes them yet.
type Latency struct {
	Average float64 `json:"average" jsonschema:"required"`
	Min     float64 `json:"min" jsonschema:"required"`
	Max     float64 `json:"max" jsonschema:"required"`
	Samples int     `json:"samples" jsonschema:"required"`
}

// Bandwidth is a reserved block of always-zero placeholder fields.
type Bandwidth struct {
	Upstream   float64 `json:"upstream" jsonschema:"required"`
	Downstream float64 `json:"downstream" jsonschema:"required"`
	Peak       float64 `json:"peak" jsonschema:"required"`
}

// Scenarios flags which multiplayer configurations were observed to pass at least once.
type Scenarios struct {
	TwoPlayers   bool `json:"twoPlayers" jsonschema:"required"`
	ThreePlayers bool `json:"threePlayers" jsonschema:"required"`
	FourPlayers  bool `json:"fourPlayers" jsonschema:"required"`
}

// TestResult is the simplified per-test record carried in the artifact.
type TestResult struct {
	Name     string  `json:"name" jsonschema:"required"`
	Class    string  `json:"class" jsonschema:"required"`
	Status   Status  `json:"status" jsonschema:"required,enum=PASS,enum=FAIL"`
	Duration float64 `json:"duration" jsonschema:"required"`
}

// Status captures the pass/fail status of a test.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
)

// Marker substrings scanned for in test names and diagnostic output. The pass and scenario
// markers are matched case-sensitively, the latency marker case-insensitively.
const (
	passMarker         = "PASS"
	latencyMarker      = "latency"
	twoPlayersMarker   = "TwoPlayers"
	threePlayersMarker = "ThreePlayer"
	fourPlayersMarker  = "FourPlayer"
)

// Report accumulates test case records over a single sequential pass. It is owned by one
// goroutine; scenario flags and the sample count only ever move from unset to set.
type Report struct {
	metrics       Metrics
	totalDuration float64
}

// NewReport creates a new empty report. Tests is initialized so that an empty report still
// serializes it as an array rather than null.
func NewReport() *Report {
	return &Report{
		metrics: Metrics{
			Tests: make([]TestResult, 0),
		},
	}
}

// Record adds one test case to the report.
func (r *Report) Record(testCase junit.TestCase) {
	if strings.Contains(strings.ToLower(testCase.SystemOut), latencyMarker) {
		r.metrics.Latency.Samples++
	}

	passed := strings.Contains(testCase.SystemOut, passMarker)

	// First marker wins when a name matches more than one scenario.
	switch {
	case passed && strings.Contains(testCase.Name, twoPlayersMarker):
		r.metrics.Scenarios.TwoPlayers = true
	case passed && strings.Contains(testCase.Name, threePlayersMarker):
		r.metrics.Scenarios.ThreePlayers = true
	case passed && strings.Contains(testCase.Name, fourPlayersMarker):
		r.metrics.Scenarios.FourPlayers = true
	}

	status := StatusPass
	if testCase.Failed {
		status = StatusFail
	}

	r.metrics.Tests = append(r.metrics.Tests, TestResult{
		Name:     testCase.Name,
		Class:    testCase.ClassName,
		Status:   status,
		Duration: testCase.Duration,
	})

	r.totalDuration += testCase.Duration
}

// Summarize finalizes the metrics. The average is left at 0 when no records were collected.
func (r *Report) Summarize() *Metrics {
	metrics := r.metrics

	if len(metrics.Tests) > 0 {
		metrics.Latency.Average = r.totalDuration / float64(len(metrics.Tests))
	}

	return &metrics
}
