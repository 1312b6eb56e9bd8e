package digest

import (
	"encoding/binary"
	"math/bits"
)

func rotr(x uint32, n int) uint32 { return bits.RotateLeft32(x, -n) }

func sigma0(x uint32) uint32 { return rotr(x, 7) ^ rotr(x, 18) ^ (x >> 3) }

func sigma1(x uint32) uint32 { return rotr(x, 17) ^ rotr(x, 19) ^ (x >> 10) }

func bigSigma0(x uint32) uint32 { return rotr(x, 2) ^ rotr(x, 13) ^ rotr(x, 22) }

func bigSigma1(x uint32) uint32 { return rotr(x, 6) ^ rotr(x, 11) ^ rotr(x, 25) }

func ch(e, f, g uint32) uint32 { return (e & f) ^ (^e & g) }

func maj(a, b, c uint32) uint32 { return (a & b) ^ (a & c) ^ (b & c) }

// block runs the compression function over one 64-byte block and folds the
// result into h.
func block(h *[8]uint32, p []byte) {
	_ = p[BlockSize-1]

	var w [64]uint32
	for t := 0; t < 16; t++ {
		w[t] = binary.BigEndian.Uint32(p[t*4:])
	}
	for t := 16; t < 64; t++ {
		w[t] = w[t-16] + sigma0(w[t-15]) + w[t-7] + sigma1(w[t-2])
	}

	a, b, c, d, e, f, g, hh := h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7]

	for t := 0; t < 64; t++ {
		t1 := hh + bigSigma1(e) + ch(e, f, g) + _K[t] + w[t]
		t2 := bigSigma0(a) + maj(a, b, c)

		hh = g
		g = f
		f = e
		e = d + t1
		d = c
		c = b
		b = a
		a = t1 + t2
	}

	h[0] += a
	h[1] += b
	h[2] += c
	h[3] += d
	h[4] += e
	h[5] += f
	h[6] += g
	h[7] += hh
}

// compress feeds every block of an already padded buffer into h, in order.
func compress(h *[8]uint32, padded []byte) {
	for i := 0; i < len(padded); i += BlockSize {
		block(h, padded[i:i+BlockSize])
	}
}

// pad returns tail || 0x80 || zeros || bitLength(total) with a length that is a
// multiple of BlockSize. total is the number of message bytes consumed overall,
// which equals len(tail) for one-shot hashing.
func pad(tail []byte, total uint64) []byte {
	n := len(tail)
	padded := make([]byte, (n+minPadding+BlockSize-1)/BlockSize*BlockSize)
	copy(padded, tail)
	padded[n] = 0x80
	binary.BigEndian.PutUint64(padded[len(padded)-8:], total*8)
	return padded
}

func encode(h [8]uint32) [Size]byte {
	var out [Size]byte
	for i, v := range h {
		binary.BigEndian.PutUint32(out[i*4:], v)
	}
	return out
}
