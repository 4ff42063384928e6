// Package flushio provides flushable writers for console output.
package flushio

import (
	"bufio"
	"io"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// Discard is a WriteFlusher that drops everything.
var Discard WriteFlusher = nopFlusher{io.Discard}

// NewWriteFlusher adapts w into a WriteFlusher: existing WriteFlushers are
// returned as is, in-memory buffers get a noop Flush, anything else is wrapped
// in a bufio.Writer.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	switch impl := w.(type) {
	case nil:
		return Discard
	case WriteFlusher:
		return impl
	}
	if w == io.Discard {
		return Discard
	}

	// bytes.Buffer, strings.Builder and friends
	type buffer interface {
		io.Writer
		Len() int
		Reset()
	}
	if _, isBuffer := w.(buffer); isBuffer {
		return nopFlusher{w}
	}

	return bufio.NewWriter(w)
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }

// WriteFlushers combines any number of WriteFlusher-s into one that writes
// into and flushes all of them; nils are skipped.
func WriteFlushers(wfs ...WriteFlusher) WriteFlusher {
	var all writeFlushers
	for _, one := range wfs {
		if many, ok := one.(writeFlushers); ok {
			all = append(all, many...)
		} else if one != nil {
			all = append(all, one)
		}
	}
	switch len(all) {
	case 0:
		return Discard
	case 1:
		return all[0]
	default:
		return all
	}
}

type writeFlushers []WriteFlusher

func (wfs writeFlushers) Write(p []byte) (n int, err error) {
	for _, wf := range wfs {
		n, err = wf.Write(p)
		if err != nil {
			return n, err
		}
		if n != len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

func (wfs writeFlushers) Flush() (err error) {
	for _, wf := range wfs {
		if ferr := wf.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}
