package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter renders the full report as YAML
type YAMLFormatter struct{}

// NewYAMLFormatter creates a YAML formatter
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Format returns FormatYAML
func (f *YAMLFormatter) Format() Format {
	return FormatYAML
}

// Render writes the report
func (f *YAMLFormatter) Render(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}
