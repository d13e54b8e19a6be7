// Package chunkwalk partitions a byte range into fixed-size, ordered,
// non-overlapping slices for a single forward pass over a source.
package chunkwalk

import (
	"iter"

	"github.com/WhileEndless/go-rangedecode/pkg/chunkmap"
)

// Walk yields (range, isLast) pairs partitioning [0, size) into slices of
// at most chunkSize bytes: (0..min(chunkSize,size), size<=chunkSize),
// (chunkSize..min(2*chunkSize,size), ...), with the final tuple's flag
// set true. size == 0 yields nothing.
func Walk(size uint64, chunkSize int) iter.Seq2[chunkmap.Range, bool] {
	return func(yield func(chunkmap.Range, bool) bool) {
		if size == 0 || chunkSize <= 0 {
			return
		}

		step := uint64(chunkSize)
		for start := uint64(0); start < size; start += step {
			end := start + step
			last := end >= size
			if last {
				end = size
			}
			if !yield(chunkmap.Range{Start: start, End: end}, last) {
				return
			}
		}
	}
}
