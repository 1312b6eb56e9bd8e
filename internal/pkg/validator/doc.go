// Package validator provides a small validation abstraction for request and
// domain structs.
//
// Business code should depend on the Validator interface so validation can be
// shared and tested consistently. V10Validator is backed by
// go-playground/validator v10 and adds the "hexdigest" and "lockid" tags.
package validator
