// Package hash provides helpers for hashing and verifying secrets.
//
// Typical usage is for password hashing: store only the hash, then verify user
// input by comparing the plaintext against the stored hash. SaltedSHA256 is the
// default and reproduces the fixed-salt SHA-256 lock format; bcrypt, argon2id
// and HMAC-SHA256 are available behind the same interface via New.
package hash
