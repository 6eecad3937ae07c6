// Package report renders detected refactorings as a text table, JSON or YAML.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/refminer/pkg/refactoring"
)

// ErrUnsupportedFormat is returned for an unknown output format.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the supported output formats.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML}
}

// Document is the structured report written by the JSON and YAML formats.
type Document struct {
	Count        int                        `json:"count"        yaml:"count"`
	Refactorings []*refactoring.Refactoring `json:"refactorings" yaml:"refactorings"`
}

// Render writes refactorings to w in the given format.
func Render(w io.Writer, format string, refactorings []*refactoring.Refactoring) error {
	switch strings.ToLower(format) {
	case FormatText, "":
		return renderText(w, refactorings)
	case FormatJSON:
		return renderJSON(w, refactorings)
	case FormatYAML:
		return renderYAML(w, refactorings)
	default:
		return fmt.Errorf("%w: %q (want one of %s)", ErrUnsupportedFormat, format, strings.Join(Formats(), ", "))
	}
}

func document(refactorings []*refactoring.Refactoring) Document {
	if refactorings == nil {
		refactorings = []*refactoring.Refactoring{}
	}

	return Document{Count: len(refactorings), Refactorings: refactorings}
}

func renderJSON(w io.Writer, refactorings []*refactoring.Refactoring) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(document(refactorings)); err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}

	return nil
}

func renderYAML(w io.Writer, refactorings []*refactoring.Refactoring) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(document(refactorings)); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush yaml report: %w", err)
	}

	return nil
}

func kindColor(k refactoring.Kind) *color.Color {
	switch k {
	case refactoring.PushDownOperation, refactoring.PullUpOperation:
		return color.New(color.FgMagenta, color.Bold)
	case refactoring.MoveOperation, refactoring.MoveAndRenameOperation:
		return color.New(color.FgCyan)
	case refactoring.RenameOperation, refactoring.RenameParameter:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgYellow)
	}
}

func renderText(w io.Writer, refactorings []*refactoring.Refactoring) error {
	if len(refactorings) == 0 {
		_, err := fmt.Fprintln(w, "No refactorings detected")

		return wrapWrite(err)
	}

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Format.Footer = text.FormatDefault
	tbl.AppendHeader(table.Row{"#", "Kind", "Description", "Location"})

	for i, ref := range refactorings {
		tbl.AppendRow(table.Row{
			i + 1,
			kindColor(ref.Kind()).Sprint(ref.Kind().String()),
			ref.Description(),
			location(ref),
		})
	}

	tbl.AppendFooter(table.Row{"", "", summary(refactorings), ""})
	tbl.Render()

	return nil
}

func location(ref *refactoring.Refactoring) string {
	right := ref.RightSide()
	if len(right) == 0 {
		return ""
	}

	return fmt.Sprintf("%s:%d", right[0].FilePath(), right[0].StartLine())
}

// summary renders e.g. "3 refactorings: 2 Move Method, 1 Push Down Method".
func summary(refactorings []*refactoring.Refactoring) string {
	counts := make(map[refactoring.Kind]int)
	for _, ref := range refactorings {
		counts[ref.Kind()]++
	}

	kinds := make([]refactoring.Kind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}

	slices.Sort(kinds)

	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, humanize.Comma(int64(counts[k]))+" "+k.String())
	}

	return english.Plural(len(refactorings), "refactoring", "") + ": " + strings.Join(parts, ", ")
}

func wrapWrite(err error) error {
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}
