package reporting

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spboyer/scorebench/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Name       string           `xml:"name,attr,omitempty"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one benchmark suite.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one benchmark.
type JUnitTestCase struct {
	XMLName    xml.Name        `xml:"testcase"`
	Name       string          `xml:"name,attr"`
	Classname  string          `xml:"classname,attr"`
	Time       float64         `xml:"time,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	Error      *JUnitError     `xml:"error,omitempty"`
}

// JUnitError represents a benchmark that failed in setup, run or teardown.
type JUnitError struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit converts a RunOutcome to JUnit XML format.
func ConvertToJUnit(outcome *models.RunOutcome) *JUnitTestSuites {
	out := &JUnitTestSuites{
		Name: "scorebench " + outcome.RunID,
		Time: seconds(float64(outcome.DurationMs)),
	}

	for i := range outcome.Suites {
		s := &outcome.Suites[i]
		suite := JUnitTestSuite{
			Name:      s.Name,
			Tests:     len(s.Benchmarks),
			Errors:    s.Failed(),
			Time:      seconds(float64(s.DurationMs)),
			Timestamp: outcome.Timestamp.Format(time.RFC3339),
			Properties: []JUnitProperty{
				{Name: "normalization", Value: formatFloat(outcome.Setup.Normalization)},
			},
		}
		if s.Scored {
			suite.Properties = append(suite.Properties, JUnitProperty{Name: "score", Value: formatFloat(s.Score)})
		}

		for j := range s.Benchmarks {
			suite.TestCases = append(suite.TestCases, convertResult(&s.Benchmarks[j]))
		}

		out.Tests += suite.Tests
		out.Errors += suite.Errors
		out.TestSuites = append(out.TestSuites, suite)
	}

	return out
}

func convertResult(r *models.BenchmarkResult) JUnitTestCase {
	tc := JUnitTestCase{
		Name:      r.Name,
		Classname: r.Suite,
		Time:      seconds(r.ElapsedMs),
		Properties: []JUnitProperty{
			{Name: "iterations", Value: strconv.Itoa(r.Iterations)},
			{Name: "reference_ms", Value: formatFloat(r.ReferenceMs)},
		},
	}

	if r.Status == models.StatusError {
		tc.Error = &JUnitError{
			Message: r.Error,
			Type:    "BenchmarkError",
			Body:    fmt.Sprintf("phase: %s", r.Phase),
		}
		return tc
	}

	tc.Properties = append(tc.Properties, JUnitProperty{Name: "score", Value: formatFloat(r.Score)})
	if r.Stats != nil {
		tc.Properties = append(tc.Properties, JUnitProperty{Name: "relative_error", Value: formatFloat(r.Stats.RelativeError)})
	}
	return tc
}

// WriteJUnitXML writes JUnit XML to the specified file path.
func WriteJUnitXML(outcome *models.RunOutcome, path string) error {
	suites := ConvertToJUnit(outcome)

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	output := append([]byte(xml.Header), data...)
	return os.WriteFile(path, output, 0644)
}

func seconds(ms float64) float64 {
	return ms / 1000.0
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
