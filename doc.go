// SPDX-License-Identifier: MIT

// Package sphgrid is a toolkit for the grid plumbing of coupled Earth-system
// models: decomposing index spaces over ranks, building spherical grids,
// filling cubed-sphere halos and computing conservative exchange grids.
//
// 🚀 What is sphgrid?
//
//	A pure-Go library (no cgo) plus a CLI that brings together:
//		• Domain decomposition: balanced extents, rank layouts, cyclic/tripolar wrap
//		• Grids: regular lon-lat tiles with refinement, gnomonic cubed spheres
//		• Halos: the six-face cubed-sphere edge exchange with staggering
//		• Exchange grids: first- and second-order conservative remap weights
//		• Restart files: exchange grids saved to and loaded from SQLite
//
// Under the hood, everything is organized in flat subpackages:
//
//	sphere/     - unit-sphere vectors, polygons, clipping and areas
//	field/      - 2-D fields with halos
//	domain/     - ComputeExtent, Domain2D, layouts and wrap rules
//	grid/       - lon-lat and cubed-sphere tile builders
//	cubesphere/ - cube topology, halo descriptors and exchange
//	xgrid/      - exchange grid construction and remapping
//	remapstore/ - SQLite persistence of exchange grids
//	cmd/sphgrid - the command-line front end
//
// Quick example, where tile 1's halos come from:
//
//	west  <- tile5.north (reversed)
//	east  <- tile2.west
//	south <- tile6.north
//	north <- tile3.west  (reversed)
//
// See examples/ for a remap-and-restart walkthrough.
//
//	go install github.com/katalvlaran/sphgrid/cmd/sphgrid@latest
package sphgrid
