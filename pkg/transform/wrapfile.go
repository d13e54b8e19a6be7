package transform

// WrapFileConfig configures WrapFile.
type WrapFileConfig struct {
	Prefix []byte
	Suffix []byte
}

// WrapFile wraps an entire stream with a prefix and suffix. The prefix is
// emitted once before the first byte ever produced; the suffix is
// emitted on the final chunk, including when the whole input is empty.
type WrapFile struct {
	prefix  []byte
	suffix  []byte
	started bool
}

// NewWrapFile returns a WrapFile transform for the given configuration.
func NewWrapFile(cfg WrapFileConfig) *WrapFile {
	return &WrapFile{prefix: cfg.Prefix, suffix: cfg.Suffix}
}

func (w *WrapFile) outputLen(input []byte, last bool) int {
	n := len(input)
	if !w.started {
		n += len(w.prefix)
	}
	if last {
		n += len(w.suffix)
	}
	return n
}

func (w *WrapFile) Transform(input []byte, last bool) []byte {
	buf := make([]byte, 0, w.outputLen(input, last))
	if !w.started {
		buf = append(buf, w.prefix...)
		w.started = true
	}
	buf = append(buf, input...)
	if last {
		buf = append(buf, w.suffix...)
	}
	return buf
}

func (w *WrapFile) TransformLen(input []byte, last bool) int {
	n := w.outputLen(input, last)
	w.started = true
	return n
}

func (w *WrapFile) State() any { return w.started }

func (w *WrapFile) WithState(state any) Transform {
	return &WrapFile{prefix: w.prefix, suffix: w.suffix, started: state.(bool)}
}
