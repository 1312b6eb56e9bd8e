package digest

// Engine is a one-shot SHA-256 accumulator.
//
// Compute continues from whatever state the accumulator holds, so call Reset
// (or use a fresh Engine from New) between independent messages. An Engine is
// not safe for concurrent use; distinct Engines share nothing mutable.
type Engine struct {
	h [8]uint32
}

// New returns an Engine holding the standard initial hash value.
func New() *Engine {
	e := &Engine{}
	e.Reset()
	return e
}

// Reset restores the accumulator to the standard initial hash value.
func (e *Engine) Reset() {
	e.h = initial
}

// Compute pads message, processes it block by block and returns the
// accumulator serialized big-endian. message is not modified.
func (e *Engine) Compute(message []byte) [Size]byte {
	compress(&e.h, pad(message, uint64(len(message))))
	return encode(e.h)
}

// Sum256 returns the SHA-256 digest of data.
func Sum256(data []byte) [Size]byte {
	return New().Compute(data)
}
