// Package runtimex contains runtime extensions. This package is inspired to
// https://pkg.go.dev/github.com/m-lab/go/rtx, except that it's simpler.
//
// We use these functions where a failure means a broken contract with a
// collaborator (e.g., an engine returning a code outside of its enumeration)
// and continuing would be unsafe.
package runtimex

import (
	"fmt"

	"github.com/ooni/securetransport/internal/model"
)

// PanicOnError calls panic() if err is not nil.
func PanicOnError(err error, message string) {
	if err != nil {
		panic(fmt.Errorf("%s: %w", message, err))
	}
}

// PanicIfFalse calls panic if assertion is false.
func PanicIfFalse(assertion bool, message string) {
	if !assertion {
		panic(message)
	}
}

// PanicIfTrue calls panic if assertion is true.
func PanicIfTrue(assertion bool, message string) {
	PanicIfFalse(!assertion, message)
}

// PanicIfNil calls panic if the given interface is nil.
func PanicIfNil(v interface{}, message string) {
	PanicIfTrue(v == nil, message)
}

// Try0 panics if err is not nil.
func Try0(err error) {
	PanicOnError(err, "Try0")
}

// Try1 is like Try0 but supports functions returning one value and an error.
func Try1[T1 any](v1 T1, err error) T1 {
	PanicOnError(err, "Try1")
	return v1
}

// CatchLogAndIgnorePanic is a function that catches and ignores panics. You
// can invoke this function as follows:
//
//	defer runtimex.CatchLogAndIgnorePanic(logger, "prefix")
//
// and rest assured that any panic will not propagate outside of the function
// scope. The logger is used to warn about the panic.
func CatchLogAndIgnorePanic(logger model.Logger, prefix string) {
	if r := recover(); r != nil {
		logger.Warnf("%s: recovered from panic: %+v", prefix, r)
	}
}
