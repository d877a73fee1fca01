// Package render turns validated graphs and their diagnostics into
// human-facing output: a colored diagnostic formatter, a component-tree
// drawing, and slog handlers for structured or formatted logging.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	weft "github.com/weft-fn/weft-go"
)

// Formatter writes diagnostics in a readable, compiler-style layout.
type Formatter struct {
	out     io.Writer
	colored bool
}

// FormatterOption is a modifier for formatters.
type FormatterOption func(*Formatter)

// WithColor enables or disables ANSI colors. Colors are on by default.
func WithColor(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.colored = enabled
	}
}

// NewFormatter creates a formatter writing to w.
func NewFormatter(w io.Writer, opts ...FormatterOption) *Formatter {
	f := &Formatter{out: w, colored: true}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Print writes every diagnostic of the graph, followed by a one-line
// summary. It returns the first write error encountered.
func (f *Formatter) Print(g *weft.Graph) error {
	errors, warnings := 0, 0
	for _, d := range g.Diagnostics() {
		if err := f.PrintDiagnostic(g, d); err != nil {
			return err
		}
		switch d.Severity {
		case weft.SeverityError:
			errors++
		case weft.SeverityWarning:
			warnings++
		}
	}
	_, err := fmt.Fprintf(f.out, "%d error(s), %d warning(s)\n", errors, warnings)
	return err
}

// PrintDiagnostic writes one diagnostic with its dependency trace, if any.
func (f *Formatter) PrintDiagnostic(g *weft.Graph, d weft.Diagnostic) error {
	if _, err := fmt.Fprintf(f.out, "%s [%s] %s\n", f.severity(d.Severity), d.Kind, d.Message); err != nil {
		return err
	}
	if at := f.location(g, d); at != "" {
		if _, err := fmt.Fprintf(f.out, "  at %s\n", at); err != nil {
			return err
		}
	}
	if len(d.Trace) > 0 {
		if _, err := fmt.Fprintln(f.out, "  requested via:"); err != nil {
			return err
		}
		for i, entry := range d.Trace {
			connector := "├─>"
			if i == len(d.Trace)-1 {
				connector = "└─>"
			}
			line := fmt.Sprintf("    %s %s (%s)", connector, entry.Request.Key, entry.Request.Kind)
			if _, err := fmt.Fprintln(f.out, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *Formatter) severity(s weft.Severity) string {
	if !f.colored {
		return s.String()
	}
	switch s {
	case weft.SeverityError:
		return color.New(color.FgRed, color.Bold).Sprint(s.String())
	case weft.SeverityWarning:
		return color.New(color.FgYellow).Sprint(s.String())
	}
	return s.String()
}

func (f *Formatter) location(g *weft.Graph, d weft.Diagnostic) string {
	net := g.Network()
	switch {
	case d.Edge != weft.NoEdge:
		edge := net.Edge(d.Edge)
		return fmt.Sprintf("request for %s in %s",
			edge.Request.Key, net.Node(edge.Source).Path)
	case d.Node != weft.NoNode:
		node := net.Node(d.Node)
		if node.Kind == weft.NodeComponent {
			return fmt.Sprintf("component %s", node.Path)
		}
		return fmt.Sprintf("%s in %s", node.Key, node.Path)
	}
	return ""
}

// Summary returns a compact single-string rendering of all diagnostics,
// colorless, for embedding in error messages and tests.
func Summary(g *weft.Graph) string {
	var sb strings.Builder
	f := NewFormatter(&sb, WithColor(false))
	_ = f.Print(g)
	return sb.String()
}
