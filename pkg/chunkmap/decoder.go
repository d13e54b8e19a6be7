package chunkmap

import (
	"sort"

	"github.com/WhileEndless/go-rangedecode/pkg/rangeerr"
	"github.com/WhileEndless/go-rangedecode/pkg/transform"
)

// Decoder answers random-access decoded-range queries against a chunk
// map built by Builder. It is immutable after construction and safe to
// share by reference across reads; the template transform it holds is
// only ever cloned via WithState, never mutated.
type Decoder struct {
	tpl        transform.Transform
	inputSize  uint64
	outputSize uint64
	mappings   []mapping
}

// OutputSize returns the total decoded size.
func (d *Decoder) OutputSize() uint64 {
	return d.outputSize
}

// SourceRangeFor translates a decoded range to the minimal source range
// whose bytes suffice to decode it. A decoded position sitting exactly
// on a chunk boundary b belongs to the chunk starting at b for the
// range's start, and to the chunk ending at b for its end, so a range
// ending exactly on a boundary does not pull in the source bytes of the
// chunk that follows it.
func (d *Decoder) SourceRangeFor(outputRange Range) Range {
	start := outputRange.Start
	end := outputRange.End
	if end > d.outputSize {
		end = d.outputSize
	}
	if end <= start || start >= d.outputSize {
		return Range{}
	}

	startIdx := sort.Search(len(d.mappings), func(i int) bool {
		return d.mappings[i].dstRange.End > start
	})
	endIdx := sort.Search(len(d.mappings), func(i int) bool {
		return d.mappings[i].dstRange.End >= end
	})

	if startIdx >= len(d.mappings) || endIdx >= len(d.mappings) {
		panic("chunkmap: output range not covered by any chunk")
	}

	return Range{
		Start: d.mappings[startIdx].srcRange.Start,
		End:   d.mappings[endIdx].srcRange.End,
	}
}

// Decode returns the decoded bytes for outputRange, given that srcBytes
// starts at absolute source offset srcOffset and covers at least
// SourceRangeFor(outputRange).
func (d *Decoder) Decode(srcBytes []byte, srcOffset uint64, outputRange Range) ([]byte, error) {
	start := outputRange.Start
	end := outputRange.End
	if end > d.outputSize {
		end = d.outputSize
	}
	if end <= start || start >= d.outputSize {
		return []byte{}, nil
	}

	buffer := make([]byte, 0, end-start)

	first := sort.Search(len(d.mappings), func(i int) bool {
		return d.mappings[i].dstRange.End > start
	})
	last := sort.Search(len(d.mappings), func(i int) bool {
		return d.mappings[i].dstRange.Start >= end
	})

	if first >= len(d.mappings) {
		return nil, rangeerr.New(rangeerr.OutOfCoverage,
			"output range start not covered by any chunk", "Decode")
	}

	var live transform.Transform
	for _, m := range d.mappings[first:last] {
		if live == nil {
			live = d.tpl.WithState(m.state)
		}

		srcLo64 := m.srcRange.Start - srcOffset
		srcHi64 := m.srcRange.End - srcOffset
		if srcHi64 > uint64(len(srcBytes)) || srcLo64 > srcHi64 {
			return nil, rangeerr.New(rangeerr.InsufficientSource,
				"provided source bytes do not cover the required range", "Decode")
		}
		srcLo, srcHi := int(srcLo64), int(srcHi64)

		chunkLast := m.srcRange.End == d.inputSize
		output := live.Transform(srcBytes[srcLo:srcHi], chunkLast)

		clipStart := 0
		if start > m.dstRange.Start {
			clipStart = int(start - m.dstRange.Start)
		}
		clipEnd := len(output)
		if m.dstRange.End > end {
			clipEnd = len(output) - int(m.dstRange.End-end)
		}
		if clipStart > clipEnd {
			clipStart = clipEnd
		}
		buffer = append(buffer, output[clipStart:clipEnd]...)
	}

	return buffer, nil
}
