package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Summary formats metrics for output as a human-readable block under the JSON echo.
type Summary struct {
	TestsPassed    int
	TestsFailed    int
	LatencySamples int
	AverageLatency float64
	Scenarios      Scenarios

	totalTests  int
	shouldColor bool
}

const (
	summaryPrefix       = "   "
	summaryHeader       = "❯❯ Network Test Summary"
	passedLabel         = "Passed"
	failedLabel         = "Failed"
	latencySamplesLabel = "Latency Samples"
	scenariosLabel      = "Scenarios"
	separatorLineLength = 28
)

// Summary derives the display summary from the metrics.
func (m *Metrics) Summary(shouldColor bool) *Summary {
	summary := &Summary{
		LatencySamples: m.Latency.Samples,
		AverageLatency: m.Latency.Average,
		Scenarios:      m.Scenarios,
		totalTests:     len(m.Tests),
		shouldColor:    shouldColor,
	}

	for _, test := range m.Tests {
		switch test.Status {
		case StatusPass:
			summary.TestsPassed++
		case StatusFail:
			summary.TestsFailed++
		}
	}

	return summary
}

// Write writes the summary to a writer. Nothing is written when there are no tests; the JSON
// echo already tells the whole story then.
func (s *Summary) Write(w io.Writer) error {
	if s.totalTests == 0 {
		return nil
	}

	colorizer := NewColorizer(s.shouldColor)

	header := fmt.Sprintf("%s  %s  %s",
		colorizer.headingColorizer(summaryHeader),
		colorizer.countColorizer(fmt.Sprintf("%d tests", s.totalTests)),
		colorizer.colorLatency(s.AverageLatency),
	)

	if _, err := fmt.Fprintf(w, "\n%s\n", header); err != nil {
		return err
	}

	separatorLine := fmt.Sprintf("%s%s", summaryPrefix, strings.Repeat("─", separatorLineLength))
	if _, err := fmt.Fprintf(w, "%s\n", separatorLine); err != nil {
		return err
	}

	if s.TestsPassed > 0 {
		if err := s.writeEntry(w, colorizer.successColorizer(passedLabel), strconv.Itoa(s.TestsPassed)); err != nil {
			return err
		}
	}

	if s.TestsFailed > 0 {
		if err := s.writeEntry(w, colorizer.failureColorizer(failedLabel), strconv.Itoa(s.TestsFailed)); err != nil {
			return err
		}
	}

	if s.LatencySamples > 0 {
		if err := s.writeEntry(w, colorizer.defaultColorizer(latencySamplesLabel), strconv.Itoa(s.LatencySamples)); err != nil {
			return err
		}
	}

	return s.writeEntry(w, colorizer.defaultColorizer(scenariosLabel), s.scenarioList(colorizer))
}

func (s *Summary) writeEntry(w io.Writer, label string, value string) error {
	_, err := fmt.Fprintf(w, "%s%s: %s\n", summaryPrefix, label, value)
	return err
}

// scenarioList renders coverage per multiplayer scenario, dimming the ones never seen passing.
func (s *Summary) scenarioList(colorizer *Colorizer) string {
	entries := []struct {
		label   string
		covered bool
	}{
		{label: "2p", covered: s.Scenarios.TwoPlayers},
		{label: "3p", covered: s.Scenarios.ThreePlayers},
		{label: "4p", covered: s.Scenarios.FourPlayers},
	}

	parts := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.covered {
			parts = append(parts, colorizer.scenarioColorizer(entry.label+" ✓"))
		} else {
			parts = append(parts, colorizer.missingColorizer(entry.label+" ✗"))
		}
	}

	return strings.Join(parts, "  ")
}
