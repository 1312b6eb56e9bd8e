package digest

import "hash"

type stream struct {
	h   [8]uint32
	buf [BlockSize]byte
	nx  int
	len uint64
}

// NewHash returns a streaming hash.Hash computing SHA-256. Sum does not change
// the running state, so more data may be written after it.
func NewHash() hash.Hash {
	s := &stream{}
	s.Reset()
	return s
}

func (s *stream) Reset() {
	s.h = initial
	s.nx = 0
	s.len = 0
}

func (*stream) Size() int { return Size }

func (*stream) BlockSize() int { return BlockSize }

func (s *stream) Write(p []byte) (int, error) {
	n := len(p)
	s.len += uint64(n)

	if s.nx > 0 {
		c := copy(s.buf[s.nx:], p)
		s.nx += c
		if s.nx == BlockSize {
			block(&s.h, s.buf[:])
			s.nx = 0
		}
		p = p[c:]
	}

	for len(p) >= BlockSize {
		block(&s.h, p[:BlockSize])
		p = p[BlockSize:]
	}

	if len(p) > 0 {
		s.nx = copy(s.buf[:], p)
	}

	return n, nil
}

func (s *stream) Sum(in []byte) []byte {
	h := s.h
	compress(&h, pad(s.buf[:s.nx], s.len))
	out := encode(h)
	return append(in, out[:]...)
}
