package libatlas

import (
	"io"

	"github.com/atlas-structures/atlas.SDK/goatlas"
)

// ResultStream is a channel pipeline of verification results.
//
// Streams compose left to right: VerifyStream(at).AddTo(cat).Print(out, opts).Go()
type ResultStream struct {
	Outlet chan goatlas.OperationResult
}

func NewResultStream() *ResultStream {
	return &ResultStream{
		Outlet: make(chan goatlas.OperationResult),
	}
}

// VerifyStream runs all five categorical operations against the Atlas and
// streams their results in taxonomy order.
func VerifyStream(at goatlas.Atlas) *ResultStream {
	stream := NewResultStream()

	go func() {
		for _, op := range goatlas.AllOperations {
			stream.Outlet <- VerifyOperation(op, at)
		}
		stream.Close()
	}()

	return stream
}

// StreamResult emits a single already-computed result.
func StreamResult(res goatlas.OperationResult) *ResultStream {
	next := NewResultStream()

	go func() {
		next.Outlet <- res
		next.Close()
	}()

	return next
}

func (stream *ResultStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

// PullResult returns the next result in the stream, or false when the stream is done.
func (stream *ResultStream) PullResult() (goatlas.OperationResult, bool) {
	res, ok := <-stream.Outlet
	return res, ok
}

// AddTo forwards every result into the given adder (typically a Catalog),
// passing each result through.
func (stream *ResultStream) AddTo(adder goatlas.ResultAdder) *ResultStream {
	next := NewResultStream()

	go func() {
		for res := range stream.Outlet {
			adder.TryAddResult(res)
			next.Outlet <- res
		}
		next.Close()
	}()

	return next
}

// DropDupes filters out results whose certificate encoding has already been
// seen on this stream.
func (stream *ResultStream) DropDupes() *ResultStream {
	next := NewResultStream()

	go func() {
		certSet := NewCertSet()
		for res := range stream.Outlet {
			if certSet.TryAdd(res) {
				next.Outlet <- res
			}
		}
		certSet.Close()
		next.Close()
	}()

	return next
}

// SelectResults passes through only results meeting the selector's criteria.
func (stream *ResultStream) SelectResults(sel goatlas.ResultSelector) *ResultStream {
	next := NewResultStream()

	go func() {
		for res := range stream.Outlet {
			if sel.SelectsResult(res) {
				next.Outlet <- res
			}
		}
		next.Close()
	}()

	return next
}

// Print writes each result to out as it passes through.
func (stream *ResultStream) Print(out io.Writer, opts goatlas.PrintOpts) *ResultStream {
	next := NewResultStream()

	go func() {
		for res := range stream.Outlet {
			res.WriteAsString(out, opts)
			next.Outlet <- res
		}
		next.Close()
	}()

	return next
}

// Go drains the stream, returning how many results flowed through and
// whether all of them were verified.
func (stream *ResultStream) Go() (count int, allVerified bool) {
	allVerified = true
	for res := range stream.Outlet {
		count++
		if !res.Verified {
			allVerified = false
		}
	}
	return
}
