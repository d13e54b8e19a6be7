// Package filesource implements the FileSource contract — a uniform
// async byte-range source — along with a handful of concrete adapters
// and Transformed, which layers a decoded view over one.
package filesource

import (
	"context"

	"github.com/WhileEndless/go-rangedecode/pkg/chunkmap"
)

// FileSource is any byte-addressable source that can report its size
// and serve arbitrary byte-range reads. Implementations are expected to
// be read-only and safe for a single caller to drive concurrently with
// other FileSource methods, but are not required to be safe for
// concurrent Read calls from multiple goroutines — see filereader for
// the serialization gate that enforces single-producer access.
type FileSource interface {
	// Size returns the total size of the source in bytes.
	Size() uint64

	// Read returns the bytes in r, which must lie within [0, Size()).
	Read(ctx context.Context, r chunkmap.Range) ([]byte, error)
}
