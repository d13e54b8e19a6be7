package filesource

import (
	"context"

	"github.com/WhileEndless/go-rangedecode/pkg/chunkmap"
	"github.com/WhileEndless/go-rangedecode/pkg/chunkwalk"
	"github.com/WhileEndless/go-rangedecode/pkg/transform"
)

// Transformed layers a decoded view over a source FileSource: Size and
// Read report the transform's output coordinate space, while the
// underlying source is only ever touched for the minimal source byte
// range a given output range requires.
//
// Building one performs a single forward pass over the entire source to
// construct the chunk map, reading it in chunkSize-sized slices.
type Transformed struct {
	source  FileSource
	decoder *chunkmap.Decoder
}

const defaultChunkSize = 32 * 1024

// NewTransformed runs a forward pass over source using seed as the
// transform applied to each chunkSize-byte slice, and returns a
// FileSource over the transformed output. A chunkSize <= 0 selects the
// default of 32 KiB.
func NewTransformed(ctx context.Context, source FileSource, seed transform.Transform, chunkSize int) (*Transformed, error) {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	builder := chunkmap.NewBuilder(seed)

	for r, last := range chunkwalk.Walk(source.Size(), chunkSize) {
		slice, err := source.Read(ctx, r)
		if err != nil {
			return nil, err
		}
		builder.Feed(slice, last)
	}

	return &Transformed{source: source, decoder: builder.Build()}, nil
}

func (t *Transformed) Size() uint64 {
	return t.decoder.OutputSize()
}

func (t *Transformed) Read(ctx context.Context, r chunkmap.Range) ([]byte, error) {
	srcRange := t.decoder.SourceRangeFor(r)
	if srcRange.Empty() {
		return []byte{}, nil
	}

	srcBytes, err := t.source.Read(ctx, srcRange)
	if err != nil {
		return nil, err
	}

	return t.decoder.Decode(srcBytes, srcRange.Start, r)
}
