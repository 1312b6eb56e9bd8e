// Package digest implements the SHA-256 hash function as published in FIPS 180-4.
//
// Two forms are provided. Engine is a one-shot, resettable accumulator: Compute
// pads a whole message and runs it through the compression function. NewHash
// returns a streaming hash.Hash over the same compression function so the
// digest can be used with crypto/hmac, io.Copy and friends.
//
// Output is bit-for-bit compatible with every conforming SHA-256
// implementation, including crypto/sha256.
package digest
