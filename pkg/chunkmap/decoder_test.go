package chunkmap

import (
	"testing"

	"github.com/WhileEndless/go-rangedecode/pkg/chunkwalk"
	"github.com/WhileEndless/go-rangedecode/pkg/transform"
)

// fullDecode feeds src through a fresh instance of seed in one shot, for
// comparison against the chunked decoder's output.
func fullDecode(seed transform.Transform, src []byte) []byte {
	return seed.WithState(seed.State()).Transform(src, true)
}

func decodeAll(t *testing.T, d *Decoder, src []byte, r Range) []byte {
	t.Helper()
	out, err := d.Decode(src, 0, r)
	if err != nil {
		t.Fatalf("Decode(%v): %v", r, err)
	}
	return out
}

// --- spec.md §8 concrete scenarios ---

func TestScenario1_StripLineBreaks(t *testing.T) {
	src := []byte("hello\nworld\r\n")
	d := build(transform.NewStripLineBreaks(), src, 4)
	got := decodeAll(t, d, src, Range{0, d.OutputSize()})
	if string(got) != "helloworld" {
		t.Errorf("got %q, want %q", got, "helloworld")
	}
}

func TestScenario2_Utf8EncoderWindows1252(t *testing.T) {
	enc, err := transform.NewUtf8Encoder(transform.Utf8EncoderConfig{EncodingLabel: "windows-1252"})
	if err != nil {
		t.Fatalf("NewUtf8Encoder: %v", err)
	}
	src := []byte{0xE9}
	d := build(enc, src, 32*1024)
	got := decodeAll(t, d, src, Range{0, d.OutputSize()})
	if string(got) != "é" {
		t.Errorf("got %q (% x), want é", got, got)
	}
}

func TestScenario3_WrapFile(t *testing.T) {
	src := []byte("content")
	d := build(transform.NewWrapFile(transform.WrapFileConfig{Prefix: []byte("<start>"), Suffix: []byte("<end>")}), src, 32*1024)
	got := decodeAll(t, d, src, Range{0, d.OutputSize()})
	if string(got) != "<start>content<end>" {
		t.Errorf("got %q", got)
	}
}

func TestScenario3Variant_WrapFileEmptyInput(t *testing.T) {
	d := build(transform.NewWrapFile(transform.WrapFileConfig{Prefix: []byte("<start>"), Suffix: []byte("<end>")}), nil, 32*1024)
	// The empty-source chunk walker feeds nothing, so the decoder never
	// sees a last=true call and output_size is 0 — this is the
	// "empty source" boundary, distinct from "one empty last chunk".
	if d.OutputSize() != 0 {
		t.Errorf("OutputSize() = %d, want 0 for an empty source", d.OutputSize())
	}
}

func TestScenario4_WrapLines(t *testing.T) {
	src := []byte("line1\n\nline2\n")
	d := build(transform.NewWrapLines(transform.WrapLinesConfig{Prefix: []byte("["), Suffix: []byte("]")}), src, 5)
	got := decodeAll(t, d, src, Range{0, d.OutputSize()})
	if string(got) != "[line1]\n\n[line2]\n" {
		t.Errorf("got %q", got)
	}
}

func TestScenario5_WrapLinesNoTrailingNewlineFinalChunk(t *testing.T) {
	src := []byte("hello")
	d := build(transform.NewWrapLines(transform.WrapLinesConfig{Prefix: []byte("["), Suffix: []byte("]")}), src, 32*1024)
	got := decodeAll(t, d, src, Range{0, d.OutputSize()})
	if string(got) != "[hello]" {
		t.Errorf("got %q", got)
	}
}

func TestScenario6_PartialDecodeExcludesWrapFileAffixes(t *testing.T) {
	src := []byte("abcdefghij")
	d := build(transform.NewWrapFile(transform.WrapFileConfig{Prefix: []byte("<"), Suffix: []byte(">")}), src, 3)

	got := decodeAll(t, d, src, Range{4, 9})
	if string(got) != "defgh" {
		t.Errorf("got %q, want %q", got, "defgh")
	}
}

// --- boundary behaviors ---

func TestDecode_EmptySourceYieldsEmptyOutputForAnyRange(t *testing.T) {
	d := build(transform.NewStripLineBreaks(), nil, 32*1024)
	got := decodeAll(t, d, nil, Range{0, 100})
	if len(got) != 0 {
		t.Errorf("got %q, want empty", got)
	}
}

func TestDecode_StartAtOrPastOutputSizeYieldsEmpty(t *testing.T) {
	src := []byte("hello")
	d := build(transform.NewStripLineBreaks(), src, 32*1024)
	got := decodeAll(t, d, src, Range{d.OutputSize(), d.OutputSize() + 10})
	if len(got) != 0 {
		t.Errorf("got %q, want empty", got)
	}
}

func TestDecode_RangeStraddlingFinalChunkIncludesSuffix(t *testing.T) {
	src := []byte("line1\nline2")
	d := build(transform.NewWrapLines(transform.WrapLinesConfig{Prefix: []byte("["), Suffix: []byte("]")}), src, 6)
	full := decodeAll(t, d, src, Range{0, d.OutputSize()})

	got := decodeAll(t, d, src, Range{d.OutputSize() - 3, d.OutputSize()})
	want := full[len(full)-3:]
	if string(got) != string(want) {
		t.Errorf("got %q, want %q (suffix must be included)", got, want)
	}
}

// --- quantified invariants ---

func TestInvariant_RoundTripMatchesSinglePass(t *testing.T) {
	src := []byte("the quick brown fox jumps over the lazy dog\n")
	seed := transform.NewWrapLines(transform.WrapLinesConfig{Prefix: []byte("<<"), Suffix: []byte(">>")})
	d := build(seed, src, 7)

	got := decodeAll(t, d, src, Range{0, d.OutputSize()})
	want := fullDecode(transform.NewWrapLines(transform.WrapLinesConfig{Prefix: []byte("<<"), Suffix: []byte(">>")}), src)

	if string(got) != string(want) {
		t.Errorf("chunked decode = %q, single pass = %q", got, want)
	}
}

func TestInvariant_RangeConsistencyAgainstFullDecode(t *testing.T) {
	src := []byte("abcdefghijklmnopqrstuvwxyz\n0123456789\n")
	seed := transform.NewWrapLines(transform.WrapLinesConfig{Prefix: []byte("["), Suffix: []byte("]")})
	d := build(seed, src, 6)

	full := decodeAll(t, d, src, Range{0, d.OutputSize()})

	for a := uint64(0); a < d.OutputSize(); a += 3 {
		for b := a; b <= d.OutputSize(); b += 5 {
			sr := d.SourceRangeFor(Range{a, b})
			got, err := d.Decode(src[sr.Start:sr.End], sr.Start, Range{a, b})
			if err != nil {
				t.Fatalf("Decode(%d,%d): %v", a, b, err)
			}
			if string(got) != string(full[a:b]) {
				t.Errorf("Decode(%d,%d) = %q, want %q", a, b, got, full[a:b])
			}
		}
	}
}

func TestInvariant_SplittabilityIndependentOfChunkSize(t *testing.T) {
	src := []byte("one two three four five six seven eight nine ten\n")
	cfg := transform.WrapLinesConfig{Prefix: []byte("{"), Suffix: []byte("}")}

	d1 := build(transform.NewWrapLines(cfg), src, 5)
	d2 := build(transform.NewWrapLines(cfg), src, 13)

	got1 := decodeAll(t, d1, src, Range{0, d1.OutputSize()})
	got2 := decodeAll(t, d2, src, Range{0, d2.OutputSize()})

	if string(got1) != string(got2) {
		t.Errorf("chunk_size=5 decode = %q, chunk_size=13 decode = %q", got1, got2)
	}
}

func TestInvariant_DisjointDecodesConcatenateToFullDecode(t *testing.T) {
	src := []byte("abcdefghijklmnopqrstuvwxyz")
	d := build(transform.NewStripLineBreaks(), src, 4)

	a := decodeAll(t, d, src, Range{0, 10})
	b := decodeAll(t, d, src, Range{10, 26})
	sequential := append(append([]byte{}, a...), b...)

	full := decodeAll(t, d, src, Range{0, d.OutputSize()})
	if string(sequential) != string(full) {
		t.Errorf("disjoint decodes concatenated = %q, want %q", sequential, full)
	}
}

func TestDecode_InsufficientSourceBytesIsAnError(t *testing.T) {
	src := []byte("hello world")
	d := build(transform.NewStripLineBreaks(), src, 4)

	_, err := d.Decode(src[:2], 0, Range{0, d.OutputSize()})
	if err == nil {
		t.Fatal("expected an InsufficientSource error")
	}
}
