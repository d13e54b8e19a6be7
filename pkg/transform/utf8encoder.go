package transform

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	xtransform "golang.org/x/text/transform"

	"github.com/WhileEndless/go-rangedecode/pkg/rangeerr"
)

// Utf8EncoderConfig configures Utf8Encoder.
type Utf8EncoderConfig struct {
	// EncodingLabel is a WHATWG encoding label (e.g. "windows-1252",
	// "shift_jis", "utf-8"), resolved via htmlindex.
	EncodingLabel string
}

// Utf8Encoder re-encodes bytes from a named source character set into
// UTF-8. It carries a small tail buffer holding the trailing incomplete
// code unit sequence of the last chunk fed to it; that buffer is its
// entire state.
type Utf8Encoder struct {
	enc    encoding.Encoding
	buffer []byte
}

// NewUtf8Encoder resolves label against the standard WHATWG encoding
// registry and returns a Utf8Encoder for it. An unresolvable label is a
// ConfigurationError.
func NewUtf8Encoder(cfg Utf8EncoderConfig) (*Utf8Encoder, error) {
	enc, err := htmlindex.Get(cfg.EncodingLabel)
	if err != nil {
		return nil, rangeerr.New(rangeerr.ConfigurationError,
			"unrecognized encoding label: "+err.Error(), cfg.EncodingLabel)
	}
	return &Utf8Encoder{enc: enc}, nil
}

const decodeScratchSize = 2048

// decode drives a fresh decoder over buffer+input, returning the decoded
// UTF-8 bytes and the trailing undecoded bytes (nil once last is true).
func (u *Utf8Encoder) decode(input []byte, last bool) (output, tail []byte) {
	dec := u.enc.NewDecoder()
	src := u.prepend(input)
	scratch := make([]byte, decodeScratchSize)

	for {
		nDst, nSrc, err := dec.Transform(scratch, src, last)
		output = append(output, scratch[:nDst]...)
		src = src[nSrc:]

		switch err {
		case nil:
			return output, nil
		case xtransform.ErrShortDst:
			continue
		case xtransform.ErrShortSrc:
			if last {
				// The transform.Transformer contract guarantees src is
				// fully consumed once atEOF is true; treat this as
				// fully drained defensively rather than loop forever.
				return output, nil
			}
			return output, append([]byte(nil), src...)
		default:
			return output, nil
		}
	}
}

// countDecode is the transform_len counterpart of decode: it drives the
// same decoder but only tallies output length, skipping the output copy.
func (u *Utf8Encoder) countDecode(input []byte, last bool) (n int, tail []byte) {
	dec := u.enc.NewDecoder()
	src := u.prepend(input)
	scratch := make([]byte, decodeScratchSize)

	for {
		nDst, nSrc, err := dec.Transform(scratch, src, last)
		n += nDst
		src = src[nSrc:]

		switch err {
		case nil:
			return n, nil
		case xtransform.ErrShortDst:
			continue
		case xtransform.ErrShortSrc:
			if last {
				return n, nil
			}
			return n, append([]byte(nil), src...)
		default:
			return n, nil
		}
	}
}

func (u *Utf8Encoder) prepend(input []byte) []byte {
	if len(u.buffer) == 0 {
		return input
	}
	src := make([]byte, 0, len(u.buffer)+len(input))
	src = append(src, u.buffer...)
	src = append(src, input...)
	return src
}

func (u *Utf8Encoder) Transform(input []byte, last bool) []byte {
	out, tail := u.decode(input, last)
	u.buffer = tail
	return out
}

func (u *Utf8Encoder) TransformLen(input []byte, last bool) int {
	n, tail := u.countDecode(input, last)
	u.buffer = tail
	return n
}

func (u *Utf8Encoder) State() any {
	buf := make([]byte, len(u.buffer))
	copy(buf, u.buffer)
	return buf
}

func (u *Utf8Encoder) WithState(state any) Transform {
	buf := state.([]byte)
	newBuf := make([]byte, len(buf))
	copy(newBuf, buf)
	return &Utf8Encoder{enc: u.enc, buffer: newBuf}
}
