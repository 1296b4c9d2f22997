package report

import (
	"fmt"

	"github.com/mgutz/ansi"
)

// Colorizer is a colorizer for the metrics summary output.
type Colorizer struct {
	headingColorizer  func(string) string
	countColorizer    func(string) string
	successColorizer  func(string) string
	failureColorizer  func(string) string
	scenarioColorizer func(string) string
	missingColorizer  func(string) string
	fastColorizer     func(string) string
	slowColorizer     func(string) string
	defaultColorizer  func(string) string
}

// NewColorizer creates a new Colorizer.
func NewColorizer(shouldColor bool) *Colorizer {
	if !shouldColor {
		noop := func(s string) string { return s }

		return &Colorizer{
			headingColorizer:  noop,
			countColorizer:    noop,
			successColorizer:  noop,
			failureColorizer:  noop,
			scenarioColorizer: noop,
			missingColorizer:  noop,
			fastColorizer:     noop,
			slowColorizer:     noop,
			defaultColorizer:  noop,
		}
	}

	return &Colorizer{
		headingColorizer:  ansi.ColorFunc("yellow+bh"),
		countColorizer:    ansi.ColorFunc("white+bh"),
		successColorizer:  ansi.ColorFunc("green+bh"),
		failureColorizer:  ansi.ColorFunc("red+bh"),
		scenarioColorizer: ansi.ColorFunc("green+h"),
		missingColorizer:  ansi.ColorFunc("gray"),
		fastColorizer:     ansi.ColorFunc("cyan+bh"),
		slowColorizer:     ansi.ColorFunc("yellow+bh"),
		defaultColorizer:  ansi.ColorFunc("white+bh"),
	}
}

// colorLatency returns the average latency as a string, colored based on its magnitude.
func (c *Colorizer) colorLatency(seconds float64) string {
	text := fmt.Sprintf("%.3fs avg", seconds)

	switch {
	case seconds == 0:
		return c.defaultColorizer(text)
	case seconds < 1:
		return c.fastColorizer(text)
	default:
		return c.slowColorizer(text)
	}
}
