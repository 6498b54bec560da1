// SPDX-License-Identifier: MIT

// Package report renders command results as text tables, YAML or TOML.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("report: unknown format")

// ParseFormat accepts text, yaml (or yml) and toml.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "":
		return FormatText, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Texter renders itself as human-readable text.
type Texter interface {
	WriteText(w io.Writer) error
}

// Write encodes v to w. For FormatText v must implement Texter.
func Write(w io.Writer, f Format, v any) error {
	var (
		data []byte
		err  error
	)
	switch f {
	case FormatText:
		t, ok := v.(Texter)
		if !ok {
			return fmt.Errorf("report: %T has no text form", v)
		}
		return t.WriteText(w)
	case FormatYAML:
		data, err = yaml.Marshal(v)
	case FormatTOML:
		data, err = toml.Marshal(v)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return fmt.Errorf("report: encode %s: %w", f, err)
	}
	_, err = w.Write(data)

	return err
}
