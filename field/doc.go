// SPDX-License-Identifier: MIT

// Package field - row-major 2-D scalar fields with a halo ring.
//
// Purpose:
//   - Hold one tile's (or one rank's) cell or corner values in a contiguous
//     row-major buffer with the explicit index formula
//     (j+halo)*stride + (i+halo), stride = nx + 2*halo.
//   - Address halo cells with negative or ≥ n indices: i ∈ [-halo, nx+halo).
//   - Keep the public surface safe: At/Set return errors instead of panicking.
//
// Conventions:
//   - i runs along x (columns, fastest varying), j along y (rows).
//   - A field without halo is the interior-only view consumed by remapping.
//
// Complexity quicksheet:
//   - New: O((nx+2h)(ny+2h)) zero-init; At/Set: O(1); Clone: O(size);
//     WithHalo / Interior: O(nx·ny).
package field
