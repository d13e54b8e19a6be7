package transform

import "bytes"

// WrapLinesConfig configures WrapLines.
type WrapLinesConfig struct {
	Prefix []byte
	Suffix []byte
}

// WrapLines wraps each non-empty line with a prefix and suffix, treating
// '\n' as the sole line terminator and preserving blank lines verbatim.
// Lines spanning chunk boundaries are handled by tracking whether the
// next byte begins a new line.
type WrapLines struct {
	prefix      []byte
	suffix      []byte
	atLineStart bool
}

// NewWrapLines returns a WrapLines transform for the given configuration.
func NewWrapLines(cfg WrapLinesConfig) *WrapLines {
	return &WrapLines{prefix: cfg.Prefix, suffix: cfg.Suffix, atLineStart: true}
}

// calculateLen returns the output length transform would produce for
// input, and the at-line-start state that would result, without
// mutating w.
func (w *WrapLines) calculateLen(input []byte, last bool) (int, bool) {
	if len(input) == 0 {
		if last && !w.atLineStart {
			return len(w.suffix), w.atLineStart
		}
		return 0, w.atLineStart
	}

	outputLen := len(input)
	affixLen := len(w.prefix) + len(w.suffix)

	for _, line := range bytes.Split(input, []byte{'\n'}) {
		if len(line) > 0 {
			outputLen += affixLen
		}
	}

	if !w.atLineStart {
		if input[0] == '\n' {
			outputLen += len(w.suffix)
		} else {
			outputLen -= len(w.prefix)
		}
	}

	endsWithNewline := input[len(input)-1] == '\n'
	if !last && !endsWithNewline {
		outputLen -= len(w.suffix)
	}

	return outputLen, endsWithNewline
}

func (w *WrapLines) Transform(input []byte, last bool) []byte {
	outputLen, _ := w.calculateLen(input, last)
	buf := make([]byte, 0, outputLen)

	for len(input) > 0 {
		nextNewline := bytes.IndexByte(input, '\n')
		if nextNewline == -1 {
			if w.atLineStart {
				buf = append(buf, w.prefix...)
			}
			buf = append(buf, input...)
			w.atLineStart = false
			break
		}

		switch {
		case !w.atLineStart:
			buf = append(buf, input[:nextNewline]...)
			buf = append(buf, w.suffix...)
			buf = append(buf, '\n')
		case nextNewline == 0:
			buf = append(buf, '\n')
		default:
			buf = append(buf, w.prefix...)
			buf = append(buf, input[:nextNewline]...)
			buf = append(buf, w.suffix...)
			buf = append(buf, '\n')
		}

		input = input[nextNewline+1:]
		w.atLineStart = true
	}

	if last && !w.atLineStart {
		buf = append(buf, w.suffix...)
	}

	return buf
}

func (w *WrapLines) TransformLen(input []byte, last bool) int {
	n, newState := w.calculateLen(input, last)
	w.atLineStart = newState
	return n
}

func (w *WrapLines) State() any { return w.atLineStart }

func (w *WrapLines) WithState(state any) Transform {
	return &WrapLines{prefix: w.prefix, suffix: w.suffix, atLineStart: state.(bool)}
}
