// Package checkpoint decorates errors with the file and line where they passed
// through, which results in something similar to a stacktrace.
// Both the decorating error and the cause can be checked by errors.Is and
// retrieved by errors.As.
package checkpoint

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
)

// terminal errors are compared with == by callers (io.EOF and friends),
// so they are never decorated.
// https://github.com/golang/go/issues/39155
func terminal(err error) bool {
	return err == io.EOF || err == io.ErrUnexpectedEOF
}

// From decorates err with the caller position.
// It returns nil if err == nil.
func From(err error) error {
	if err == nil || terminal(err) {
		return err
	}

	_, file, line, ok := runtime.Caller(1)
	return &checkpoint{
		err:      err,
		callerOk: ok,
		file:     filepath.Base(file),
		line:     line,
	}
}

// Wrap records that cause surfaced as err at the caller position.
// Returns nil if cause == nil, so it can wrap a call result directly:
//
//	n, err := disk.ReadSector(addr, buf)
//	return checkpoint.Wrap(err, ErrFailedReadSector)
//
// errors.Is(result, ErrFailedReadSector) and errors.Is(result, cause) both hold.
func Wrap(cause, err error) error {
	if cause == nil || terminal(cause) {
		return cause
	}

	_, file, line, ok := runtime.Caller(1)
	return &checkpoint{
		err:      err,
		prev:     cause,
		callerOk: ok,
		file:     filepath.Base(file),
		line:     line,
	}
}

type checkpoint struct {
	err  error
	prev error

	callerOk bool
	file     string
	line     int
}

func (e *checkpoint) position() string {
	if e.callerOk {
		return fmt.Sprintf("%s:%d", e.file, e.line)
	}
	return "unknown"
}

func (e *checkpoint) Error() string {
	if e.prev == nil {
		return fmt.Sprintf("%v (at %s)", e.err, e.position())
	}

	prev := e.prev.Error()
	if _, ok := e.prev.(*checkpoint); !ok {
		prev = strings.ReplaceAll(prev, "\n", "\n\t")
	}
	return fmt.Sprintf("%v (at %s)\n\t%v", e.err, e.position(), prev)
}

func (e *checkpoint) Unwrap() error {
	return e.prev
}

func (e *checkpoint) Is(target error) bool {
	return errors.Is(e.err, target)
}

func (e *checkpoint) As(target interface{}) bool {
	return errors.As(e.err, target)
}
