// Package report renders harness results for the console.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"movebench/internal/harness"
)

// Format selects how results are rendered.
type Format string

const (
	Text  Format = "text"
	Table Format = "table"
	JSON  Format = "json"
	YAML  Format = "yaml"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("report: unknown output format")

// Formats lists every supported format.
func Formats() []Format {
	return []Format{Text, Table, JSON, YAML}
}

// ParseFormat maps a case-insensitive name to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

const separator = "-------------------------------------------------------"

// Seconds formats d in seconds with six significant digits.
func Seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'g', 6, 64)
}

// Line is the console line for one timed step.
func Line(label string, d time.Duration) string {
	return fmt.Sprintf("current computation elapsed time : %ss for %s", Seconds(d), label)
}

// Writer streams text output as steps complete and renders the other
// formats once all results are in.
type Writer struct {
	w      io.Writer
	format Format
}

// NewWriter returns a Writer emitting format to w.
func NewWriter(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

// Begin prints the banner for a run. Only text output is streamed.
func (rw *Writer) Begin(title string) {
	if rw.format != Text {
		return
	}
	fmt.Fprintf(rw.w, "\n\n%s\n%s\n", separator, title)
}

// Step prints the line for one completed step. Only text output is streamed.
func (rw *Writer) Step(s harness.Step) {
	if rw.format != Text {
		return
	}
	fmt.Fprintln(rw.w, Line(s.Label, s.Elapsed))
}

// Finish renders results for the non-streaming formats.
func (rw *Writer) Finish(results []harness.Result) error {
	switch rw.format {
	case Text:
		return nil
	case Table:
		return renderTable(rw.w, results)
	case JSON:
		enc := json.NewEncoder(rw.w)
		enc.SetIndent("", "  ")
		return enc.Encode(newDocument(results))
	case YAML:
		enc := yaml.NewEncoder(rw.w)
		enc.SetIndent(2)
		if err := enc.Encode(newDocument(results)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, rw.format)
	}
}

type document struct {
	Runs []runDoc `json:"runs" yaml:"runs"`
}

type runDoc struct {
	Name  string    `json:"name" yaml:"name"`
	Title string    `json:"title" yaml:"title"`
	Size  int       `json:"size" yaml:"size"`
	Steps []stepDoc `json:"steps" yaml:"steps"`
}

type stepDoc struct {
	Label      string  `json:"label" yaml:"label"`
	Seconds    float64 `json:"seconds" yaml:"seconds"`
	Transfer   bool    `json:"transfer" yaml:"transfer"`
	Cumulative bool    `json:"cumulative,omitempty" yaml:"cumulative,omitempty"`
}

func newDocument(results []harness.Result) document {
	doc := document{Runs: make([]runDoc, 0, len(results))}
	for _, r := range results {
		rd := runDoc{Name: r.Name, Title: r.Title, Size: r.Size, Steps: make([]stepDoc, 0, len(r.Steps))}
		for _, s := range r.Steps {
			rd.Steps = append(rd.Steps, stepDoc{
				Label:      s.Label,
				Seconds:    s.Elapsed.Seconds(),
				Transfer:   s.Transfer,
				Cumulative: s.Cumulative,
			})
		}
		doc.Runs = append(doc.Runs, rd)
	}
	return doc
}
