// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the stream codec around the CSV payload.
type Compression uint8

const (
	// CompressionNone reads and writes plain CSV.
	CompressionNone Compression = iota
	// CompressionGzip uses gzip.
	CompressionGzip
	// CompressionZstd uses zstandard.
	CompressionZstd
	// CompressionLZ4 uses the LZ4 frame format.
	CompressionLZ4
)

// String returns the codec name.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// CompressionFor infers the codec from a file extension.
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// decompress wraps r with the codec's reader. The returned closer releases
// decoder resources and does not close r.
func decompress(r io.Reader, c Compression) (io.Reader, func() error, error) {
	nop := func() error { return nil }
	switch c {
	case CompressionNone:
		return r, nop, nil
	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("gzip: %w", err)
		}
		return zr, zr.Close, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd: %w", err)
		}
		release := func() error {
			zr.Close()
			return nil
		}
		return zr, release, nil
	case CompressionLZ4:
		return lz4.NewReader(r), nop, nil
	default:
		return nil, nil, fmt.Errorf("decompress: unknown %v", c)
	}
}

// compress wraps w with the codec's writer. Closing the result flushes the
// codec and does not close w.
func compress(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionGzip:
		return gzip.NewWriter(w), nil
	case CompressionZstd:
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return zw, nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("compress: unknown %v", c)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
