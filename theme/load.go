package theme

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"
)

// Load reads partial theme from TOML or YAML file, format is selected by file
// extension. Unknown keys are reported as errors.
func Load(path string) (*Partial, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read theme file: %w", err)
	}
	p, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("unable to decode theme file '%s': %w", path, err)
	}
	return p, nil
}

// Decode parses partial theme. Format is either file extension (".toml",
// ".yaml", ".yml") or format name.
func Decode(data []byte, format string) (*Partial, error) {
	p := &Partial{}
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(p); err != nil {
			return nil, err
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported theme format '%s'", format)
	}
	return p, nil
}
