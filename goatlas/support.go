package goatlas

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/pkg/errors"
)

// ResultSpec is a binary encoding of an OperationResult, used as a canonic
// certificate key.  Layout: operation ordinal (byte), expected and actual
// counts (uvarint), verified flag (byte), then the three strings each as a
// uvarint length prefix followed by its bytes.
type ResultSpec []byte

// AppendResultSpecTo appends the canonic certificate encoding of this result to out.
func (res *OperationResult) AppendResultSpecTo(out []byte) []byte {
	out = append(out, byte(res.Op))
	out = binary.AppendUvarint(out, uint64(res.ExpectedRoots))
	out = binary.AppendUvarint(out, uint64(res.ActualCount))
	if res.Verified {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	out = appendLenPrefixed(out, res.GroupName)
	out = appendLenPrefixed(out, res.OperationType)
	out = appendLenPrefixed(out, res.Details)
	return out
}

// ReadResultSpec initializes this result from a certificate encoding
// previously produced by AppendResultSpecTo.
func (res *OperationResult) ReadResultSpec(spec ResultSpec) error {
	if len(spec) < 4 {
		return errors.Wrap(ErrBadResultSpec, "spec too short")
	}
	if spec[0] >= NumOperations {
		return errors.Wrapf(ErrBadResultSpec, "bad operation ordinal %d", spec[0])
	}
	res.Op = Operation(spec[0])
	spec = spec[1:]

	expected, n := binary.Uvarint(spec)
	if n <= 0 {
		return errors.Wrap(ErrBadResultSpec, "bad expected count")
	}
	spec = spec[n:]

	actual, n := binary.Uvarint(spec)
	if n <= 0 {
		return errors.Wrap(ErrBadResultSpec, "bad actual count")
	}
	spec = spec[n:]

	if len(spec) == 0 {
		return errors.Wrap(ErrBadResultSpec, "missing verified flag")
	}
	res.Verified = spec[0] != 0
	spec = spec[1:]

	var err error
	if res.GroupName, spec, err = readLenPrefixed(spec); err != nil {
		return err
	}
	if res.OperationType, spec, err = readLenPrefixed(spec); err != nil {
		return err
	}
	if res.Details, _, err = readLenPrefixed(spec); err != nil {
		return err
	}

	res.ExpectedRoots = int(expected)
	res.ActualCount = int(actual)
	return nil
}

func appendLenPrefixed(out []byte, str string) []byte {
	out = binary.AppendUvarint(out, uint64(len(str)))
	return append(out, str...)
}

func readLenPrefixed(spec []byte) (string, []byte, error) {
	strLen, n := binary.Uvarint(spec)
	if n <= 0 || uint64(len(spec)-n) < strLen {
		return "", nil, errors.Wrap(ErrBadResultSpec, "bad string field")
	}
	spec = spec[n:]
	return string(spec[:strLen]), spec[strLen:], nil
}

// WriteAsString writes a one-line report of this result, plus the diagnostic
// breakdown when opts.Details is set.
func (res *OperationResult) WriteAsString(out io.Writer, opts PrintOpts) {
	if len(opts.Label) > 0 {
		fmt.Fprintf(out, "%s ", opts.Label)
	}
	status := "FAIL"
	if res.Verified {
		status = "ok"
	}
	fmt.Fprintf(out, "%-4s %-32s %4d / %-4d %s\n",
		res.GroupName, res.OperationType, res.ActualCount, res.ExpectedRoots, status)
	if opts.Details {
		fmt.Fprintf(out, "     %s\n", res.Details)
	}
}

func NewCatalogContext() CatalogContext {
	ctx := &catalogContext{
		openCatalogs: make(map[Catalog]struct{}),
		closing:      make(chan struct{}),
		closed:       make(chan struct{}),
	}
	ctx.openCount.Add(1)
	go func() {
		<-ctx.Closing()
		ctx.openCount.Done()
		ctx.openCount.Wait()
		close(ctx.closed)
	}()
	return ctx
}

type catalogContext struct {
	mu           sync.Mutex
	openCount    sync.WaitGroup
	openCatalogs map[Catalog]struct{}
	closing      chan struct{}
	closed       chan struct{}
}

func (ctx *catalogContext) AttachCatalog(cat Catalog) {
	ctx.openCount.Add(1)
	ctx.mu.Lock()
	ctx.openCatalogs[cat] = struct{}{}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) DetachCatalog(cat Catalog) {
	ctx.mu.Lock()
	if _, exists := ctx.openCatalogs[cat]; exists {
		delete(ctx.openCatalogs, cat)
		ctx.openCount.Done()
	}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) Closing() <-chan struct{} {
	return ctx.closing
}

func (ctx *catalogContext) Done() <-chan struct{} {
	return ctx.closed
}

func (ctx *catalogContext) Close() {
	close(ctx.closing)
	ctx.mu.Lock()
	for cat := range ctx.openCatalogs {
		go cat.Close()
	}
	ctx.mu.Unlock()
}
