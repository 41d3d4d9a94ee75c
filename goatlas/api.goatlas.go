package goatlas

import (
	"io"
)

const (

	// AtlasVertexCount is the vertex count of the canonical Atlas of resonance classes.
	AtlasVertexCount = 96

	// UnityCount is the expected size of the Atlas's distinguished unity-position set.
	UnityCount = 2

	// KleinQuartetSize is |V₄|, the Klein four-group underlying the G₂ product construction.
	KleinQuartetSize = 4

	// CyclicTriadSize is |ℤ/3|, the cyclic factor of the G₂ product construction.
	CyclicTriadSize = 3

	// S4OrbitCount is the number of S₄ orbit representatives on the meta-layer structure.
	// It is computed elsewhere (not from the Atlas) and enters the E₇ augmentation as a fixed fact.
	S4OrbitCount = 30

	// E8RootCount is the root count of E₈, the target of the direct-embedding morphism.
	E8RootCount = 240
)

// Atlas is the query contract the verification algorithms consume.
//
// An Atlas is immutable for its lifetime: VertexCount() is fixed, Degree and
// MirrorPair are pure lookups over [0,N), and MirrorPair is expected to be a
// fixed-point-free involution.  A contract violation (an out-of-range vertex
// or mirror index) is a malformed collaborator, not a false claim, and panics.
type Atlas interface {

	// VertexCount returns N, the total number of vertices.
	VertexCount() int

	// Degree returns the degree of vertex v, for v in [0,N).
	Degree(v int) int

	// MirrorPair returns the mirror partner of vertex v, for v in [0,N).
	// mirror(mirror(v)) == v must hold; mirror(v) != v is expected.
	MirrorPair(v int) int

	// UnityPositions returns the distinguished unity vertex indices in ascending order.
	UnityPositions() []int
}

// Operation enumerates the five categorical operations that extract each
// exceptional group from the Atlas.
type Operation int32

const (
	OpProduct      Operation = iota // Klein × ℤ/3 → G₂
	OpQuotient                      // 96/± → F₄
	OpFiltration                    // degree partition → E₆
	OpAugmentation                  // 96 + 30 → E₇
	OpMorphism                      // direct embedding → E₈

	NumOperations = 5
)

// AllOperations lists the operations in taxonomy order.
var AllOperations = [NumOperations]Operation{
	OpProduct,
	OpQuotient,
	OpFiltration,
	OpAugmentation,
	OpMorphism,
}

// Name returns the display name of this operation.
func (op Operation) Name() string {
	return [NumOperations]string{
		"Product",
		"Quotient",
		"Filtration",
		"Augmentation",
		"Morphism",
	}[op]
}

// TargetGroup returns the exceptional group this operation extracts.
func (op Operation) TargetGroup() string {
	return [NumOperations]string{
		"G₂",
		"F₄",
		"E₆",
		"E₇",
		"E₈",
	}[op]
}

// ExpectedRoots returns the textbook root count of the target group.
//
// These counts are the theorem under test, never derived from an Atlas.
func (op Operation) ExpectedRoots() int {
	return [NumOperations]int{
		12,
		48,
		72,
		126,
		240,
	}[op]
}

func (op Operation) String() string {
	return op.Name()
}

// OperationResult is the uniform outcome record of a single verification call.
//
// A false claim surfaces as Verified == false with the offending counts in
// Details; no error pathway exists for mismatches.
type OperationResult struct {
	Op            Operation // operation that produced this result
	GroupName     string    // target group label, e.g. "F₄"
	OperationType string    // human-readable operation description
	ExpectedRoots int       // textbook root count (from the taxonomy)
	ActualCount   int       // count derived from the Atlas by this algorithm
	Verified      bool      // true iff all numeric preconditions held
	Details       string    // diagnostic breakdown of the counts that fed the decision
}

// OnResultHit is a callback channel used to return results meeting a set of
// selection criteria.
type OnResultHit chan<- OperationResult

// ResultAdder accepts verification certificates.
type ResultAdder interface {

	// TryAddResult adds the given result if an identical certificate is not already present.
	// Returns true if the result was added.
	TryAddResult(res OperationResult) bool
}

// Catalog wraps a database of verification certificates.
type Catalog interface {
	ResultAdder

	// Returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	// NumResults returns the number of unique certificates stored for the given operation.
	NumResults(op Operation) int64

	// Select fires the given channel with each stored certificate that meets the selection criteria.
	Select(sel ResultSelector, onHit OnResultHit)

	Close() error
}

// CatalogContext is a container for open / active Catalog instances.
type CatalogContext interface {

	// Attaches the given Catalog to this context.
	AttachCatalog(cat Catalog)

	// Detaches the given Catalog from this context.
	DetachCatalog(cat Catalog)

	// Signals all open catalogs to close, then closes this context.
	Close()

	// Closing signals when Close() has been called.
	Closing() <-chan struct{}

	// Done signals when Close() completed and all open Catalogs have been closed.
	Done() <-chan struct{}
}

// CatalogOpts specifies params for opening a certificate Catalog.
type CatalogOpts struct {
	DbPathName string // omit for an in-memory db
	ReadOnly   bool   // open in read-only mode
}

// ResultSelector selects a subset of stored certificates.
type ResultSelector struct {
	Ops          []Operation // nil selects all operations
	VerifiedOnly bool        // only select certificates with Verified == true
}

// SelectsResult returns whether the given result meets this selector's criteria.
func (sel *ResultSelector) SelectsResult(res OperationResult) bool {
	if sel.VerifiedOnly && !res.Verified {
		return false
	}
	if len(sel.Ops) == 0 {
		return true
	}
	for _, op := range sel.Ops {
		if op == res.Op {
			return true
		}
	}
	return false
}

// DefaultResultSelector selects every stored certificate.
var DefaultResultSelector = ResultSelector{}

// PrintOpts specifies what is printed when writing a result report.
type PrintOpts struct {
	Label   string // prefix label
	Details bool   // if set, the diagnostic breakdown is printed
}

// DefaultPrintOpts prints the full report line including details.
var DefaultPrintOpts = PrintOpts{
	Details: true,
}

// ResultWriter is anything that can render itself as a report line.
type ResultWriter interface {
	WriteAsString(out io.Writer, opts PrintOpts)
}
