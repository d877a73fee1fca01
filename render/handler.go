package render

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	weft "github.com/weft-fn/weft-go"
)

// graphReportMessage is the record message LogDiagnostics emits; HumanHandler
// special-cases it to produce the framed multi-line layout.
const graphReportMessage = "Graph Validation Report"

// LogDiagnostics logs the graph's diagnostics through the given handler.
// With a HumanHandler the output is the framed human layout; with
// slog.NewJSONHandler it is a compact machine-readable record; with
// SilentHandler nothing is emitted.
func LogDiagnostics(handler slog.Handler, g *weft.Graph) {
	logger := slog.New(handler)

	level := slog.LevelInfo
	if g.HasErrors() {
		level = slog.LevelError
	}
	logger.Log(context.Background(), level, graphReportMessage,
		"root", g.Root().Path().String(),
		"diagnostics", len(g.Diagnostics()),
		"report", Summary(g),
	)
}

// SilentHandler is a slog.Handler that discards all log output.
// Useful for testing when you don't want log output.
type SilentHandler struct{}

// NewSilentHandler creates a new silent log handler.
func NewSilentHandler() *SilentHandler {
	return &SilentHandler{}
}

func (h *SilentHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return false // Never enabled, discards everything
}

func (h *SilentHandler) Handle(ctx context.Context, record slog.Record) error {
	return nil // Do nothing
}

func (h *SilentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h // Return self, no state to modify
}

func (h *SilentHandler) WithGroup(name string) slog.Handler {
	return h // Return self, no state to modify
}

// HumanHandler is a slog.Handler that formats logs for human readability
// with proper line breaks and visual framing, especially for graph
// validation reports.
type HumanHandler struct {
	writer io.Writer
	level  slog.Level
}

// NewHumanHandler creates a new human-readable log handler.
func NewHumanHandler(writer io.Writer, level slog.Level) *HumanHandler {
	return &HumanHandler{
		writer: writer,
		level:  level,
	}
}

func (h *HumanHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *HumanHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Message == graphReportMessage {
		return h.handleGraphReport(record)
	}

	// Default formatting for other messages
	if _, err := fmt.Fprintf(h.writer, "[%s] %s\n", record.Level, record.Message); err != nil {
		return err
	}
	var writeErr error
	record.Attrs(func(a slog.Attr) bool {
		if _, err := fmt.Fprintf(h.writer, "  %s: %v\n", a.Key, a.Value); err != nil {
			writeErr = err
			return false
		}
		return true
	})
	return writeErr
}

func (h *HumanHandler) handleGraphReport(record slog.Record) error {
	var root, report string
	var count int64

	record.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case "root":
			root = a.Value.String()
		case "diagnostics":
			count = a.Value.Int64()
		case "report":
			report = a.Value.String()
		}
		return true
	})

	writes := []func() error{
		func() error { _, err := fmt.Fprintln(h.writer); return err },
		func() error { _, err := fmt.Fprintln(h.writer, strings.Repeat("=", 70)); return err },
		func() error { _, err := fmt.Fprintf(h.writer, "[Weft] %s\n", graphReportMessage); return err },
		func() error { _, err := fmt.Fprintln(h.writer, strings.Repeat("=", 70)); return err },
		func() error { _, err := fmt.Fprintf(h.writer, "\nRoot Component: %s\n", root); return err },
		func() error { _, err := fmt.Fprintf(h.writer, "Diagnostics: %d\n\n", count); return err },
		func() error { _, err := fmt.Fprint(h.writer, report); return err },
		func() error { _, err := fmt.Fprintln(h.writer, strings.Repeat("=", 70)); return err },
		func() error { _, err := fmt.Fprintln(h.writer); return err },
	}

	for _, write := range writes {
		if err := write(); err != nil {
			return err
		}
	}

	return nil
}

func (h *HumanHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	// For simplicity, return self (could create new handler with attrs if needed)
	return h
}

func (h *HumanHandler) WithGroup(name string) slog.Handler {
	// For simplicity, return self (could create new handler with group if needed)
	return h
}
