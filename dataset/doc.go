// SPDX-License-Identifier: MIT

// Package dataset loads numeric tables into a matrix.Dense and prepares them
// for a view: the row-index → values mapping the kernels consume and the
// data-driven column specs.
//
// Input is CSV with an optional header row. Files are decompressed by
// extension:
//   - .gz  → gzip (github.com/klauspost/compress/gzip)
//   - .zst → zstandard (github.com/klauspost/compress/zstd)
//   - .lz4 → LZ4 frame (github.com/pierrec/lz4/v4)
//
// Save writes the same formats, selecting the compressor the same way.
package dataset
