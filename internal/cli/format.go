package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	// fatih/color disables these when stdout is not a terminal.
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	valueColor   = color.New(color.FgHiBlack)
	dimColor     = color.New(color.FgHiBlack)
)

// printer writes command output to a single writer.
type printer struct {
	w io.Writer
}

func (p printer) success(format string, a ...any) {
	_, _ = successColor.Fprintf(p.w, "✓ "+format+"\n", a...)
}

func (p printer) warning(format string, a ...any) {
	_, _ = warningColor.Fprintf(p.w, "⚠ "+format+"\n", a...)
}

func (p printer) error(err error) {
	_, _ = errorColor.Fprintf(p.w, "✗ %v\n", err)
}

func (p printer) info(format string, a ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", a...)
}

func (p printer) section(title string) {
	_, _ = headerColor.Fprintf(p.w, "▸ %s\n", title)
}

func (p printer) empty(msg string) {
	_, _ = dimColor.Fprintf(p.w, "  %s\n", msg)
}

func (p printer) labelValue(label, value string) {
	_, _ = labelColor.Fprintf(p.w, "  %s: ", label)
	_, _ = valueColor.Fprintln(p.w, value)
}

func (p printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table prints headers and rows in padded columns.
func (p printer) table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	_, _ = fmt.Fprint(p.w, "  ")
	for i, h := range headers {
		if i > 0 {
			_, _ = fmt.Fprint(p.w, "  ")
		}
		_, _ = headerColor.Fprintf(p.w, "%-*s", widths[i], h)
	}
	_, _ = fmt.Fprintln(p.w)

	_, _ = fmt.Fprint(p.w, "  ")
	for i, w := range widths {
		if i > 0 {
			_, _ = fmt.Fprint(p.w, "  ")
		}
		_, _ = fmt.Fprint(p.w, strings.Repeat("-", w))
	}
	_, _ = fmt.Fprintln(p.w)

	for _, row := range rows {
		_, _ = fmt.Fprint(p.w, "  ")
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				_, _ = fmt.Fprint(p.w, "  ")
			}
			_, _ = fmt.Fprintf(p.w, "%-*s", widths[i], cell)
		}
		_, _ = fmt.Fprintln(p.w)
	}
}

func countOf(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
