// SPDX-License-Identifier: MIT

package report_test

import (
	"bytes"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/sphgrid/internal/report"
)

func sample() *report.Decomposition {
	return &report.Decomposition{
		NX: 10, NY: 4, Layout: [2]int{3, 1}, XHalo: 1, YHalo: 1,
		XSizes: []int{4, 3, 3}, YSizes: []int{4},
		Ranks: []report.Rank{
			{Rank: 0, Compute: "1:4,1:4", Data: "0:5,0:5", West: -1, East: 1, South: -1, North: -1},
			{Rank: 1, Compute: "5:7,1:4", Data: "4:8,0:5", West: 0, East: 2, South: -1, North: -1},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]report.Format{
		"": report.FormatText, "text": report.FormatText,
		"yml": report.FormatYAML, "yaml": report.FormatYAML, "toml": report.FormatTOML,
	} {
		got, err := report.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := report.ParseFormat("json")
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestWriteEncodings(t *testing.T) {
	d := sample()

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.FormatYAML, d))
	var fromYAML report.Decomposition
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	assert.Equal(t, *d, fromYAML)

	buf.Reset()
	require.NoError(t, report.Write(&buf, report.FormatTOML, d))
	assert.Contains(t, buf.String(), "[[ranks]]")
	var fromTOML report.Decomposition
	require.NoError(t, toml.Unmarshal(buf.Bytes(), &fromTOML))
	assert.Equal(t, *d, fromTOML)

	buf.Reset()
	require.NoError(t, report.Write(&buf, report.FormatText, d))
	out := buf.String()
	assert.Contains(t, out, "grid 10x4 layout 3x1 halo 1,1")
	assert.Contains(t, out, "RANK")
	assert.Contains(t, out, "5:7,1:4")

	assert.Error(t, report.Write(&buf, report.FormatText, 42))
	assert.ErrorIs(t, report.Write(&buf, report.Format("xml"), d), report.ErrUnknownFormat)
}

func TestMosaicText(t *testing.T) {
	m := &report.Mosaic{
		N:        4,
		Contacts: []report.Contact{{Name: "mosaic:tile1::mosaic:tile2", Index: "4:4,1:4::1:1,1:4"}},
		Halos:    []report.Halo{{Tile: 1, Edge: "east", Neighbor: 2, NbrEdge: "west"}},
	}
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.FormatText, m))
	assert.Contains(t, buf.String(), "mosaic:tile1::mosaic:tile2")
	assert.Contains(t, buf.String(), "tile2.west")
}
