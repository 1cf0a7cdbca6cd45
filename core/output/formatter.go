// Package output provides output formatting interfaces.
// This package produces human and machine-readable outputs.
package output

import (
	"io"
	"sort"
	"strings"
	"sync"

	"tyre-cost/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatYAML is machine-readable YAML
	FormatYAML Format = "yaml"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"

	// FormatXLSX is an Excel workbook, one sheet per section
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts a format name case-insensitively; "md" and "excel"
// are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCLI, FormatJSON, FormatYAML, FormatMarkdown, FormatXLSX:
		return f, nil
	case "", "table", "text":
		return FormatCLI, nil
	case "md":
		return FormatMarkdown, nil
	case "yml":
		return FormatYAML, nil
	case "excel":
		return FormatXLSX, nil
	default:
		return "", errors.Inputf("unknown output format %q", s).
			WithContext("supported", "cli, json, yaml, markdown, xlsx")
	}
}

// Binary reports whether the format should not be written to a terminal
func (f Format) Binary() bool {
	return f == FormatXLSX
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, r *Report) error
}

// Registry manages formatter registration
type Registry struct {
	mu         sync.RWMutex
	formatters map[Format]Formatter
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[Format]Formatter)}
}

// Register adds a formatter to the registry
func (r *Registry) Register(f Formatter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formatters[f.Format()]; exists {
		return errors.Newf(errors.TypeInternal, "formatter already registered: %s", f.Format())
	}
	r.formatters[f.Format()] = f
	return nil
}

// Get returns the formatter for a format
func (r *Registry) Get(format Format) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.formatters[format]
	if !ok {
		return nil, errors.NotFound("formatter", string(format))
	}
	return f, nil
}

// Formats returns the registered formats, sorted
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Format, 0, len(r.formatters))
	for f := range r.formatters {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DefaultRegistry returns a registry holding every built-in formatter.
// noColor only affects the CLI formatter.
func DefaultRegistry(noColor bool) *Registry {
	r := NewRegistry()
	for _, f := range []Formatter{
		NewCLIFormatter(noColor),
		NewJSONFormatter(),
		NewYAMLFormatter(),
		NewMarkdownFormatter(),
		NewXLSXFormatter(),
	} {
		// built-in formats are distinct
		_ = r.Register(f)
	}
	return r
}

// Render is a convenience for DefaultRegistry(noColor).Get(format).Render
func Render(w io.Writer, format Format, noColor bool, r *Report) error {
	f, err := DefaultRegistry(noColor).Get(format)
	if err != nil {
		return err
	}
	if err := f.Render(w, r); err != nil {
		if errors.TypeOf(err) == errors.TypeInternal {
			return errors.Output("rendering "+string(format), err)
		}
		return err
	}
	return nil
}
