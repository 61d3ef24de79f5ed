// Package errors defines the failure taxonomy for the octet codec.
//
// Every error is a plain struct carrying the exact values that made the
// operation fail: cursor errors report capacity, position, and requested
// count; validation errors report the offending byte or code point; container
// errors report remaining space and requested size. Composite errors
// (ItemError, FieldError, DiscriminantError) wrap an inner error and record
// where in the value it occurred, so a failure deep inside a nested structure
// stays machine-inspectable:
//
//	var item errors.ItemError
//	if stderrors.As(err, &item) {
//		log.Printf("element %d rejected: %v", item.Index, item.Err)
//	}
//
// All types are comparable values: errors.Is matches a leaf error against an
// exact expected instance, and errors.As extracts one from any depth of
// wrapping. Wrappers implement Unwrap.
package errors
