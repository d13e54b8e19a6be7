package chunkmap

import "github.com/WhileEndless/go-rangedecode/pkg/transform"

// mapping records the transform state at the start of a source slice,
// and where that slice landed in both source and output coordinates.
type mapping struct {
	state    any
	srcRange Range
	dstRange Range
}

// Builder runs one forward pass over a source's slices, recording a
// chunk map that ties source ranges to output ranges and the transform
// state in effect at the start of each.
//
// Feeding after a slice with last=true is undefined; Build may only be
// called once.
type Builder struct {
	tpl      transform.Transform // seed, retained untouched for the built Decoder
	live     transform.Transform // advances as slices are fed
	srcPos   uint64
	dstPos   uint64
	mappings []mapping
}

// NewBuilder returns a Builder seeded with the given transform at its
// initial state. seed itself is never mutated — Feed advances an
// independent clone obtained via WithState, so seed remains usable as
// the built Decoder's replay template.
func NewBuilder(seed transform.Transform) *Builder {
	return &Builder{tpl: seed, live: seed.WithState(seed.State())}
}

// Feed records one forward slice. slice must be non-empty; the chunk
// walker that drives Feed never produces empty slices for a non-empty
// source, so an empty slice here is a programmer error.
func (b *Builder) Feed(slice []byte, last bool) {
	if len(slice) == 0 {
		panic("chunkmap: Builder.Feed called with an empty slice")
	}

	state := b.live.State()
	srcStart := b.srcPos
	dstStart := b.dstPos

	b.srcPos += uint64(len(slice))
	b.dstPos += uint64(b.live.TransformLen(slice, last))

	b.mappings = append(b.mappings, mapping{
		state:    state,
		srcRange: Range{Start: srcStart, End: b.srcPos},
		dstRange: Range{Start: dstStart, End: b.dstPos},
	})
}

// Build finalizes the chunk map into an immutable Decoder. An empty
// source (no Feed calls) produces a Decoder with output_size 0 and an
// empty chunk map.
func (b *Builder) Build() *Decoder {
	return &Decoder{
		tpl:        b.tpl,
		inputSize:  b.srcPos,
		outputSize: b.dstPos,
		mappings:   b.mappings,
	}
}
