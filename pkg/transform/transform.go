// Package transform implements the streaming byte-transform contract used
// by the chunked random-access decoder: a stateful, cloneable pipeline
// stage that can be replayed from any point its state was snapshotted.
package transform

// Transform is a stateful byte-in/byte-out stream stage.
//
// State is a small, cloneable value that fully determines how subsequent
// bytes will be transformed — no other hidden history. Transform and
// TransformLen must produce identical state transitions on identical
// input sequences; splitting the same byte stream at any point and
// reprocessing the tail from the saved intermediate state must yield the
// same concatenated output as a single call. last=true is terminal:
// further calls on the same instance are undefined.
type Transform interface {
	// Transform produces the output bytes for input, treating last=true
	// as the signal that no more input will follow.
	Transform(input []byte, last bool) []byte

	// TransformLen returns what Transform would have returned in
	// length, advancing internal state identically. Implementations
	// should make this cheaper than Transform.
	TransformLen(input []byte, last bool) int

	// State snapshots the full internal state. The returned value must
	// be safe to hold onto and compare against later snapshots.
	State() any

	// WithState returns a fresh instance whose behavior on subsequent
	// input is indistinguishable from the receiver at the moment its
	// state equaled state.
	WithState(state any) Transform
}

// composed pipes a's output into b, both receiving the same last flag.
type composed struct {
	a, b Transform
}

// Compose pipes a's output into b. The composite state is the pair
// (a.State(), b.State()). Composition is associative; there is no
// identity transform.
func Compose(a, b Transform) Transform {
	return composed{a: a, b: b}
}

func (c composed) Transform(input []byte, last bool) []byte {
	return c.b.Transform(c.a.Transform(input, last), last)
}

func (c composed) TransformLen(input []byte, last bool) int {
	// b's length still depends on what a actually produced, so a must
	// run for real even though only b's length is wanted.
	return c.b.TransformLen(c.a.Transform(input, last), last)
}

func (c composed) State() any {
	return [2]any{c.a.State(), c.b.State()}
}

func (c composed) WithState(state any) Transform {
	pair := state.([2]any)
	return composed{a: c.a.WithState(pair[0]), b: c.b.WithState(pair[1])}
}
