// SPDX-License-Identifier: MIT

// Command sphgrid builds spherical grids, domain decompositions, cubed-sphere
// mosaics and conservative exchange grids.
package main

func main() {
	Execute()
}
