// SPDX-License-Identifier: MIT

package cubesphere

import "fmt"

// NumTiles is the number of cube faces.
const NumTiles = 6

// TileID is a 1-based cube face number.
type TileID int

func (t TileID) valid() bool { return t >= 1 && t <= NumTiles }

// Edge names a side of a tile.
type Edge int

const (
	West Edge = iota
	East
	South
	North
)

var edgeNames = [4]string{"west", "east", "south", "north"}

// String implements fmt.Stringer.
func (e Edge) String() string {
	if e < West || e > North {
		return fmt.Sprintf("Edge(%d)", int(e))
	}

	return edgeNames[e]
}

// alongX reports whether the edge runs along the x (i) axis.
func (e Edge) alongX() bool { return e == South || e == North }

// HaloDescriptor tells a tile where one of its halo strips comes from.
type HaloDescriptor struct {
	Neighbor     TileID
	NeighborEdge Edge
	// Reverse: along-edge index p on this side is L-1-p on the neighbour.
	Reverse bool
	// Swap: the neighbour edge lies on the other axis; the strip is read
	// from a column where this tile expects a row, or vice versa.
	Swap bool
}

// String implements fmt.Stringer.
func (d HaloDescriptor) String() string {
	return fmt.Sprintf("tile%d.%s reverse=%t swap=%t", d.Neighbor, d.NeighborEdge, d.Reverse, d.Swap)
}

func desc(t TileID, e Edge, rev bool) HaloDescriptor {
	return HaloDescriptor{Neighbor: t, NeighborEdge: e, Reverse: rev}
}

// topology is indexed by [tile-1][edge]. Odd tiles read W and N across a
// swapped edge, even tiles read E and S across one.
var topology = func() [NumTiles][4]HaloDescriptor {
	tab := [NumTiles][4]HaloDescriptor{
		{desc(5, North, true), desc(2, West, false), desc(6, North, false), desc(3, West, true)},
		{desc(1, East, false), desc(4, South, true), desc(6, East, true), desc(3, South, false)},
		{desc(1, North, true), desc(4, West, false), desc(2, North, false), desc(5, West, true)},
		{desc(3, East, false), desc(6, South, true), desc(2, East, true), desc(5, South, false)},
		{desc(3, North, true), desc(6, West, false), desc(4, North, false), desc(1, West, true)},
		{desc(5, East, false), desc(2, South, true), desc(4, East, true), desc(1, South, false)},
	}
	for t := range tab {
		for e := range tab[t] {
			d := &tab[t][e]
			d.Swap = Edge(e).alongX() != d.NeighborEdge.alongX()
		}
	}

	return tab
}()

// Descriptor returns the halo source of (tile, edge).
// Errors:
//   - ErrInvalidTile for tile ids outside 1..6 or an unknown edge.
func Descriptor(tile TileID, e Edge) (HaloDescriptor, error) {
	if !tile.valid() || e < West || e > North {
		return HaloDescriptor{}, fmt.Errorf("Descriptor(%d,%v): %w", tile, e, ErrInvalidTile)
	}

	return topology[tile-1][e], nil
}

// Contact is one shared edge of the cube mosaic, listed once.
type Contact struct {
	Tile1, Tile2 TileID
	Edge1, Edge2 Edge
	Reverse      bool
	// Name is "mosaic:tileA::mosaic:tileB".
	Name string `yaml:"contact" toml:"contact"`
	// Index is "i1:i2,j1:j2::i1:i2,j1:j2" in 1-based cell indices.
	Index string `yaml:"contact_index" toml:"contact_index"`
}

// Contacts lists the 12 cube edges for tiles of n×n cells, ordered by
// (Tile1, Edge1).
func Contacts(n int) []Contact {
	out := make([]Contact, 0, 12)
	for t := TileID(1); t <= NumTiles; t++ {
		for e := West; e <= North; e++ {
			d := topology[t-1][e]
			if d.Neighbor < t {
				continue
			}
			out = append(out, Contact{
				Tile1: t, Tile2: d.Neighbor,
				Edge1: e, Edge2: d.NeighborEdge,
				Reverse: d.Reverse,
				Name:    fmt.Sprintf("mosaic:tile%d::mosaic:tile%d", t, d.Neighbor),
				Index:   edgeRange(e, n, false) + "::" + edgeRange(d.NeighborEdge, n, d.Reverse),
			})
		}
	}

	return out
}

// edgeRange renders the cell index range of an edge row or column.
func edgeRange(e Edge, n int, rev bool) string {
	along := fmt.Sprintf("1:%d", n)
	if rev {
		along = fmt.Sprintf("%d:1", n)
	}
	switch e {
	case West:
		return "1:1," + along
	case East:
		return fmt.Sprintf("%d:%d,", n, n) + along
	case South:
		return along + ",1:1"
	default:
		return along + fmt.Sprintf(",%d:%d", n, n)
	}
}
