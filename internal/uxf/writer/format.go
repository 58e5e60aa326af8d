// Package writer renders a model.Document back into canonical UXF text:
// a YAML-backed Format loaded/saved with sensible defaults, paired with a
// writer that walks a parsed tree into a string.Builder one indent level
// at a time.
package writer

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Format configures canonical UXF output.
type Format struct {
	// Indent is the per-level indent string. Empty produces compact output.
	Indent string `yaml:"indent"`
	// WrapWidth is the soft line-wrap target in columns. It is stored and
	// persisted with the profile, but Write does not consult it: bytes
	// literals and inline containers are emitted without wrapping.
	WrapWidth int `yaml:"wrap_width"`
	// RealDP is the number of decimal digits after '.' for reals. A
	// negative value means "minimal round-trip precision" (DefaultFormat
	// uses -1).
	RealDP int `yaml:"realdp"`
	// MaxShortLen is the inline-vs-multiline threshold for a container's
	// single-line render.
	MaxShortLen int `yaml:"max_short_len"`
	// UseTrueFalse selects true/false over yes/no for bool literals.
	UseTrueFalse bool `yaml:"use_true_false"`
	// ReplaceImports expands retained imports into inline ttype
	// definitions instead of re-emitting the import directives.
	ReplaceImports bool `yaml:"replace_imports"`
}

// DefaultFormat returns the canonical default Format.
func DefaultFormat() *Format {
	return &Format{
		Indent:       "  ",
		WrapWidth:    96,
		RealDP:       -1,
		MaxShortLen:  32,
		UseTrueFalse: false,
	}
}

// LoadFormat loads a Format from a YAML file under a top-level "format:"
// key. A missing file yields DefaultFormat().
func LoadFormat(path string) (*Format, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultFormat(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	wrapper := struct {
		Format Format `yaml:"format"`
	}{Format: *DefaultFormat()}

	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, err
	}
	f := wrapper.Format
	if f.WrapWidth == 0 {
		f.WrapWidth = 96
	}
	if f.MaxShortLen == 0 {
		f.MaxShortLen = 32
	}
	return &f, nil
}

// SaveFormat persists a Format to path under a "format:" key.
func SaveFormat(path string, f *Format) error {
	wrapper := struct {
		Format Format `yaml:"format"`
	}{Format: *f}

	data, err := yaml.Marshal(wrapper)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
