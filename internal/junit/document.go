// Package junit parses JUnit-style XML result documents produced by the Unity test runner.
//
// Parsing is deliberately tolerant: missing attributes default to zero values, and unknown
// elements are ignored. Only a malformed document as a whole is rejected, so that one corrupt
// result file never poisons the records extracted from its siblings.
package junit

import (
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/survivorsrl/netreport/internal/errors"
)

// TestCase is one observed test execution extracted from a result document.
type TestCase struct {
	Name      string
	ClassName string
	Duration  float64
	Failed    bool
	SystemOut string
}

// testCaseElement mirrors the wire shape of a <testcase> element. The time attribute is kept
// as a string so that a non-numeric value degrades to 0 instead of failing the document.
type testCaseElement struct {
	Name      string          `xml:"name,attr"`
	ClassName string          `xml:"classname,attr"`
	Time      string          `xml:"time,attr"`
	Failure   *failureElement `xml:"failure"`
	SystemOut *string         `xml:"system-out"`
}

type failureElement struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Content string `xml:",chardata"`
}

// Parse reads a result document and returns one TestCase per <testcase> element, at any
// nesting depth, in document order. A syntax error rejects the whole document: no partial
// record list is returned.
func Parse(reader io.Reader) ([]TestCase, error) {
	decoder := xml.NewDecoder(reader)

	var cases []TestCase

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, errors.WithStackTrace(err)
		}

		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "testcase" {
			continue
		}

		var element testCaseElement
		if err := decoder.DecodeElement(&element, &start); err != nil {
			return nil, errors.WithStackTrace(err)
		}

		cases = append(cases, element.testCase())
	}

	return cases, nil
}

// ParseFile parses the result document at the given path. The file handle is released before
// returning, whether or not parsing succeeded.
func ParseFile(path string) ([]TestCase, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStackTraceAndPrefix(err, "error opening result document %s", path)
	}
	defer file.Close()

	cases, err := Parse(file)
	if err != nil {
		return nil, errors.WithStackTraceAndPrefix(err, "error parsing result document %s", path)
	}

	return cases, nil
}

func (element *testCaseElement) testCase() TestCase {
	testCase := TestCase{
		Name:      element.Name,
		ClassName: element.ClassName,
		Duration:  parseDuration(element.Time),
		Failed:    element.Failure != nil,
	}

	if element.SystemOut != nil {
		testCase.SystemOut = *element.SystemOut
	}

	return testCase
}

// parseDuration converts a time attribute to seconds. Missing, blank, or non-numeric values
// degrade to 0; durations are non-negative, so negative values clamp to 0 as well.
func parseDuration(value string) float64 {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || seconds < 0 {
		return 0
	}

	return seconds
}
