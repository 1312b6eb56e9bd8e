// Package uid generates identifiers. The service uses it for request
// correlation ids.
package uid

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}
