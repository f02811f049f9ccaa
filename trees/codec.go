package trees

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCUE  Format = "cue"
)

var Formats = []Format{
	FormatJSON,
	FormatYAML,
	FormatCUE,
}

var ErrUnknownFormat = errors.New("unknown tree format")

// ErrNonFinite reports NaN or an infinity in a format without a literal for it.
var ErrNonFinite = errors.New("non-finite number")

func ParseFormat(str string) (Format, error) {
	switch str {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "cue":
		return FormatCUE, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, str)
}

// Encode writes a generic tree in the given format.
// JSON and CUE have no literal for NaN or infinities, so such trees only encode as YAML.
func Encode(w io.Writer, format Format, tree any) error {
	switch format {

	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(tree); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil

	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(tree); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return nil

	case FormatCUE:
		if err := checkFinite(tree); err != nil {
			return fmt.Errorf("encode cue: %w", err)
		}
		ctx := cuecontext.New()
		value := ctx.Encode(tree)
		if err := value.Err(); err != nil {
			return fmt.Errorf("encode cue: %w", err)
		}
		src, err := formatCue(value)
		if err != nil {
			return err
		}
		if _, err := w.Write(src); err != nil {
			return err
		}
		_, err = io.WriteString(w, "\n")
		return err

	}
	return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

func checkFinite(tree any) error {
	switch tree := tree.(type) {
	case []any:
		for _, elem := range tree {
			if err := checkFinite(elem); err != nil {
				return err
			}
		}
	case float64:
		if math.IsNaN(tree) || math.IsInf(tree, 0) {
			return fmt.Errorf("%w: %v", ErrNonFinite, tree)
		}
	}
	return nil
}

func formatCue(value cue.Value) ([]byte, error) {
	src, err := format.Node(value.Syntax(cue.Final()))
	if err != nil {
		return nil, fmt.Errorf("format cue: %w", err)
	}
	return src, nil
}

// Decode reads a generic tree. Lists decode as []any, numbers as int or float64.
func Decode(r io.Reader, format Format) (any, error) {
	switch format {

	case FormatJSON:
		var tree any
		if err := json.NewDecoder(r).Decode(&tree); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return tree, nil

	case FormatYAML:
		var tree any
		if err := yaml.NewDecoder(r).Decode(&tree); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		return tree, nil

	case FormatCUE:
		content, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		ctx := cuecontext.New()
		value := ctx.CompileBytes(content, cue.Filename("tree.cue"))
		if err := value.Err(); err != nil {
			return nil, fmt.Errorf("decode cue: %w", err)
		}
		var tree any
		if err := value.Decode(&tree); err != nil {
			return nil, fmt.Errorf("decode cue: %w", err)
		}
		return tree, nil

	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}
