// Package output renders command results for terminals and pipes.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Mode selects how results are written.
type Mode string

// Output modes accepted by --output.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
	ModeCSV      Mode = "csv"
	ModeYAML     Mode = "yaml"
)

// Modes lists every accepted mode, for flag completion.
var Modes = []string{
	string(ModeAuto), string(ModeText), string(ModeMarkdown),
	string(ModeJSON), string(ModeCSV), string(ModeYAML),
}

// NullText is printed for NULL values in tabular modes.
const NullText = "NULL"

// Renderer writes results to an output stream and messages to an error stream.
type Renderer struct {
	w     io.Writer
	errW  io.Writer
	mode  Mode
	isTTY bool
}

// NewRenderer creates a renderer. In auto mode, w is probed for a terminal.
func NewRenderer(w, errW io.Writer, mode Mode) *Renderer {
	return NewRendererWithTTY(w, errW, mode, IsTerminal(w))
}

// NewRendererWithTTY creates a renderer with terminal detection overridden.
func NewRendererWithTTY(w, errW io.Writer, mode Mode, isTTY bool) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	return &Renderer{w: w, errW: errW, mode: mode, isTTY: isTTY}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// EffectiveMode resolves auto: text on a terminal, markdown otherwise.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// Writer returns the output stream.
func (r *Renderer) Writer() io.Writer { return r.w }

// Table renders a header and rows. A nil cell renders as NULL.
func (r *Renderer) Table(headers []string, rows [][]any) error {
	mode := r.EffectiveMode()
	switch mode {
	case ModeJSON:
		return r.JSON(rowObjects(headers, rows))
	case ModeYAML:
		return r.YAML(rowObjects(headers, rows))
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	t.AppendHeader(header)
	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, v := range row {
			tr[i] = FormatValue(v)
		}
		t.AppendRow(tr)
	}

	switch mode {
	case ModeCSV:
		t.RenderCSV()
		return nil
	case ModeMarkdown:
		if len(rows) == 0 {
			_, _ = fmt.Fprintln(r.w, "(0 rows)")
			return nil
		}
		t.RenderMarkdown()
		return nil
	default:
		if len(rows) == 0 {
			_, _ = fmt.Fprintln(r.w, "(0 rows)")
			return nil
		}
		t.Render()
		_, _ = fmt.Fprintf(r.w, "(%d rows)\n", len(rows))
		return nil
	}
}

// List renders a single-column listing.
func (r *Renderer) List(header string, items []string) error {
	rows := make([][]any, len(items))
	for i, item := range items {
		rows[i] = []any{item}
	}
	return r.Table([]string{header}, rows)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as YAML.
func (r *Renderer) YAML(v any) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Println writes a plain line to the output stream.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.w, a...)
}

// Success writes a status line to the error stream so piped output stays clean.
func (r *Renderer) Success(format string, a ...any) {
	_, _ = fmt.Fprintf(r.errW, "✓ "+format+"\n", a...)
}

// Warning writes a warning line to the error stream.
func (r *Renderer) Warning(format string, a ...any) {
	_, _ = fmt.Fprintf(r.errW, "! "+format+"\n", a...)
}

// FormatValue renders one decoded cell.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return NullText
	case []byte:
		return string(x)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func rowObjects(headers []string, rows [][]any) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		obj := make(map[string]any, len(headers))
		for i, h := range headers {
			if i < len(row) {
				obj[h] = row[i]
			}
		}
		out = append(out, obj)
	}
	return out
}
