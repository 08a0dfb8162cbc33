// Package errs provides a small error-accumulator used by manifest
// validation so that a malformed manifest can be reported exhaustively
// instead of failing at the first problem found.
package errs

import (
	"errors"
	"fmt"
)

// Collector is a wrapper around []error that simplifies code where multiple
// errors can occur and need to be aggregated for collective display.
type Collector struct {
	Errors []error
}

// Add adds an error to this collector. If err is nil, nothing happens, so
// callers can write c.Add(operationThatMightFail()) unconditionally.
func (c *Collector) Add(err error) {
	if err != nil {
		c.Errors = append(c.Errors, err)
	}
}

// Addf adds an error built from a format string and arguments. If no
// arguments are given, format is used as the error string verbatim.
func (c *Collector) Addf(format string, args ...interface{}) {
	if len(args) > 0 {
		c.Errors = append(c.Errors, fmt.Errorf(format, args...))
	} else {
		c.Errors = append(c.Errors, errors.New(format))
	}
}

// Ok reports whether no errors have been collected.
func (c *Collector) Ok() bool {
	return len(c.Errors) == 0
}

// Join folds the collected errors into a single error, or nil if none were
// collected.
func (c *Collector) Join() error {
	if len(c.Errors) == 0 {
		return nil
	}
	return errors.Join(c.Errors...)
}
