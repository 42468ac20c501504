// Package errors provides the classified error primitives used across qdoc2rst.
//
// A ClassifiedError carries a category (config, parse, render, ...), a
// severity and free-form context. Errors are created through the fluent
// builder:
//
//	err := errors.WrapError(cause, errors.CategoryParse, "failed to parse page").
//		WithContext("path", path).
//		Build()
//
// The CLI adapter maps categories to process exit codes.
package errors
