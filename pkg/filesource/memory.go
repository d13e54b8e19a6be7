package filesource

import (
	"context"

	"github.com/WhileEndless/go-rangedecode/pkg/chunkmap"
	"github.com/WhileEndless/go-rangedecode/pkg/rangeerr"
)

// Memory is a FileSource backed by an in-memory byte slice.
type Memory struct {
	data []byte
}

// NewMemory wraps data as a FileSource. data is not copied; callers must
// not mutate it afterward.
func NewMemory(data []byte) *Memory {
	return &Memory{data: data}
}

func (m *Memory) Size() uint64 {
	return uint64(len(m.data))
}

func (m *Memory) Read(ctx context.Context, r chunkmap.Range) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.End > m.Size() || r.Start > r.End {
		return nil, rangeerr.New(rangeerr.OutOfCoverage,
			"range exceeds buffer bounds", "Memory.Read")
	}
	out := make([]byte, r.Len())
	copy(out, m.data[r.Start:r.End])
	return out, nil
}
