// Package rtfmt wraps fmt writes whose errors should be reported, not ignored.
package rtfmt

import (
	"fmt"
	"io"
)

// Fprintf formats to w and routes a write error to onErr when set.
func Fprintf(w io.Writer, format string, onErr func(error), args ...interface{}) error {
	_, err := fmt.Fprintf(w, format, args...)
	if err != nil && onErr != nil {
		onErr(err)
	}
	return err
}

// Fprintln prints to w and routes a write error to onErr when set.
func Fprintln(w io.Writer, onErr func(error), args ...interface{}) error {
	_, err := fmt.Fprintln(w, args...)
	if err != nil && onErr != nil {
		onErr(err)
	}
	return err
}

// LogHandler adapts a printf-style logger into a write-error handler.
func LogHandler(logf func(string, ...interface{}), format string) func(error) {
	return func(err error) {
		if logf != nil {
			logf(format, err)
		}
	}
}
