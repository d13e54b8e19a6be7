package chunkmap

import (
	"testing"

	"github.com/WhileEndless/go-rangedecode/pkg/chunkwalk"
	"github.com/WhileEndless/go-rangedecode/pkg/transform"
)

// build feeds src through seed in chunkSize slices via the real chunk
// walker and returns the built Decoder.
func build(seed transform.Transform, src []byte, chunkSize int) *Decoder {
	b := NewBuilder(seed)
	for r, last := range chunkwalk.Walk(uint64(len(src)), chunkSize) {
		b.Feed(src[r.Start:r.End], last)
	}
	return b.Build()
}

func TestBuilder_EmptySourceProducesEmptyDecoder(t *testing.T) {
	d := build(transform.NewStripLineBreaks(), nil, 32*1024)
	if d.OutputSize() != 0 {
		t.Errorf("OutputSize() = %d, want 0", d.OutputSize())
	}
	if len(d.mappings) != 0 {
		t.Errorf("mappings = %v, want empty", d.mappings)
	}
}

func TestBuilder_CoversFullRangeContiguously(t *testing.T) {
	src := []byte("hello\nworld\r\n")
	d := build(transform.NewStripLineBreaks(), src, 4)

	if d.mappings[0].srcRange.Start != 0 {
		t.Errorf("first src range does not start at 0")
	}
	if d.mappings[len(d.mappings)-1].srcRange.End != uint64(len(src)) {
		t.Errorf("last src range does not end at input_size")
	}
	if d.mappings[0].dstRange.Start != 0 {
		t.Errorf("first dst range does not start at 0")
	}
	if d.mappings[len(d.mappings)-1].dstRange.End != d.OutputSize() {
		t.Errorf("last dst range does not end at output_size")
	}

	for i := 1; i < len(d.mappings); i++ {
		if d.mappings[i-1].srcRange.End != d.mappings[i].srcRange.Start {
			t.Errorf("src gap between chunk %d and %d", i-1, i)
		}
		if d.mappings[i-1].dstRange.End != d.mappings[i].dstRange.Start {
			t.Errorf("dst gap between chunk %d and %d", i-1, i)
		}
	}
}

func TestBuilder_FeedEmptySlicePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic feeding an empty slice")
		}
	}()
	b := NewBuilder(transform.NewStripLineBreaks())
	b.Feed(nil, true)
}

func TestBuilder_SeedRemainsUnmutated(t *testing.T) {
	seed := transform.NewWrapFile(transform.WrapFileConfig{Prefix: []byte("<"), Suffix: []byte(">")})
	b := NewBuilder(seed)
	b.Feed([]byte("abc"), true)

	if started, ok := seed.State().(bool); !ok || started {
		t.Errorf("seed transform was mutated by Feed: State() = %v", seed.State())
	}
}
