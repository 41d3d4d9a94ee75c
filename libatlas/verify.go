package libatlas

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/atlas-structures/atlas.SDK/goatlas"
)

// VerifyOperation applies the given categorical operation to the Atlas and
// reports whether its numeric preconditions hold.
//
// Every mismatch between the Atlas's measurements and the operation's
// expected structure surfaces as Verified == false in the returned result;
// the only panics are Atlas contract violations (out-of-range indices).
func VerifyOperation(op goatlas.Operation, at goatlas.Atlas) goatlas.OperationResult {
	if at == nil {
		panic(goatlas.ErrNilAtlas)
	}
	switch op {
	case goatlas.OpProduct:
		return verifyProduct(at)
	case goatlas.OpQuotient:
		return verifyQuotient(at)
	case goatlas.OpFiltration:
		return verifyFiltration(at)
	case goatlas.OpAugmentation:
		return verifyAugmentation(at)
	case goatlas.OpMorphism:
		return verifyMorphism(at)
	}
	panic(errors.Wrapf(goatlas.ErrUnknownOperation, "operation %d", op))
}

// VerifyAll applies all five operations in taxonomy order.
func VerifyAll(at goatlas.Atlas) []goatlas.OperationResult {
	results := make([]goatlas.OperationResult, 0, goatlas.NumOperations)
	for _, op := range goatlas.AllOperations {
		results = append(results, VerifyOperation(op, at))
	}
	return results
}

// verifyProduct checks the G₂ product construction: Klein quartet × ℤ/3.
//
// The 4×3 product is a fixed fact of the construction, not measured from the
// Atlas.  The Atlas enters only through its preconditions: exactly 2 unity
// positions, and 12-fold divisibility of the vertex count (the divisibility
// that first exposed the product structure: 12,288 = 12 × 1,024).
func verifyProduct(at goatlas.Atlas) goatlas.OperationResult {
	op := goatlas.OpProduct
	unity := at.UnityPositions()

	productSize := goatlas.KleinQuartetSize * goatlas.CyclicTriadSize // 12
	atlasDivisible := at.VertexCount()%productSize == 0

	verified := len(unity) == goatlas.UnityCount &&
		productSize == op.ExpectedRoots() &&
		atlasDivisible

	return goatlas.OperationResult{
		Op:            op,
		GroupName:     op.TargetGroup(),
		OperationType: "Product (Klein×ℤ/3)",
		ExpectedRoots: op.ExpectedRoots(),
		ActualCount:   productSize,
		Verified:      verified,
		Details: fmt.Sprintf(
			"Klein quartet (%d) × ℤ/3 (%d) = %d. Unity positions: %d, 12-fold divisible: %v",
			goatlas.KleinQuartetSize, goatlas.CyclicTriadSize, productSize,
			len(unity), atlasDivisible),
	}
}

// verifyQuotient checks the F₄ quotient construction: 96/± sign classes.
//
// Vertices are walked in increasing index order; each unseen vertex and its
// mirror partner close out one sign class.  A fixed-point-free total
// involution yields exactly N/2 classes, so any odd vertex count or fixed
// point shows up as a class count that misses 48.
func verifyQuotient(at goatlas.Atlas) goatlas.OperationResult {
	op := goatlas.OpQuotient
	numVerts := at.VertexCount()

	seen := make([]bool, numVerts)
	signClasses := 0

	for v := 0; v < numVerts; v++ {
		if seen[v] {
			continue
		}
		mirror := at.MirrorPair(v)
		if mirror < 0 || mirror >= numVerts {
			panic(errors.Wrapf(goatlas.ErrBadMirrorPair, "mirror_pair(%d) returned %d with N=%d", v, mirror, numVerts))
		}
		seen[v] = true
		seen[mirror] = true
		signClasses++
	}

	verified := signClasses == op.ExpectedRoots()

	return goatlas.OperationResult{
		Op:            op,
		GroupName:     op.TargetGroup(),
		OperationType: "Quotient (96/±)",
		ExpectedRoots: op.ExpectedRoots(),
		ActualCount:   signClasses,
		Verified:      verified,
		Details: fmt.Sprintf(
			"%d vertices / mirror pairs = %d sign classes. Degree pattern: 32×5 + 16×6",
			numVerts, signClasses),
	}
}

// verifyFiltration checks the E₆ degree-partition construction:
// 64 degree-5 vertices + 8 degree-6 vertices = 72 roots.
//
// Contributions are capped at 64 and 8; surplus degree-5/6 vertices and all
// other degrees are deliberately ignored.  The caps are in vertex units and
// are intentionally not cross-checked against the Quotient's sign-class
// degree pattern.
func verifyFiltration(at goatlas.Atlas) goatlas.OperationResult {
	op := goatlas.OpFiltration

	spectrum := NewDegreeSpectrum()
	for v := 0; v < at.VertexCount(); v++ {
		spectrum.Tally(at.Degree(v))
	}
	deg5Count := spectrum.Count(5)
	deg6Count := spectrum.Count(6)

	e6FromDeg5 := min(64, deg5Count)
	e6FromDeg6 := min(8, deg6Count)
	e6Total := e6FromDeg5 + e6FromDeg6

	verified := e6Total == op.ExpectedRoots() &&
		deg5Count >= 64 &&
		deg6Count >= 8

	return goatlas.OperationResult{
		Op:            op,
		GroupName:     op.TargetGroup(),
		OperationType: "Filtration (degree-partition)",
		ExpectedRoots: op.ExpectedRoots(),
		ActualCount:   e6Total,
		Verified:      verified,
		Details: fmt.Sprintf(
			"Degree partition: %d degree-5 + %d degree-6 = %d. Totals: %d/%d, spectrum: %v",
			e6FromDeg5, e6FromDeg6, e6Total, deg5Count, deg6Count, spectrum),
	}
}

// verifyAugmentation checks the E₇ augmentation construction:
// 96 Atlas vertices + 30 S₄ orbit representatives = 126 roots.
//
// The 30 is a fixed external fact (goatlas.S4OrbitCount), computed from the
// S₄ action on the meta-layer structure and never re-derived here.
func verifyAugmentation(at goatlas.Atlas) goatlas.OperationResult {
	op := goatlas.OpAugmentation
	atlasVerts := at.VertexCount()

	e7Total := atlasVerts + goatlas.S4OrbitCount

	verified := e7Total == op.ExpectedRoots() &&
		atlasVerts == goatlas.AtlasVertexCount

	return goatlas.OperationResult{
		Op:            op,
		GroupName:     op.TargetGroup(),
		OperationType: "Augmentation (96+30)",
		ExpectedRoots: op.ExpectedRoots(),
		ActualCount:   e7Total,
		Verified:      verified,
		Details: fmt.Sprintf(
			"Augmentation: %d Atlas vertices + %d S₄ orbits = %d",
			atlasVerts, goatlas.S4OrbitCount, e7Total),
	}
}

// verifyMorphism checks the E₈ direct-embedding construction: the 96 Atlas
// vertices map injectively into the 240 E₈ roots.
//
// ActualCount is the target-set size (240 is a fixed fact); the embedded
// count and coverage ratio are diagnostic only.
func verifyMorphism(at goatlas.Atlas) goatlas.OperationResult {
	op := goatlas.OpMorphism
	embeddedCount := at.VertexCount()

	coveragePercent := embeddedCount * 100 / goatlas.E8RootCount

	verified := embeddedCount == goatlas.AtlasVertexCount &&
		goatlas.E8RootCount == op.ExpectedRoots()

	return goatlas.OperationResult{
		Op:            op,
		GroupName:     op.TargetGroup(),
		OperationType: "Morphism (direct-embedding)",
		ExpectedRoots: op.ExpectedRoots(),
		ActualCount:   goatlas.E8RootCount,
		Verified:      verified,
		Details: fmt.Sprintf(
			"Direct embedding: %d Atlas vertices → %d of %d E₈ roots (%d%% coverage)",
			embeddedCount, embeddedCount, goatlas.E8RootCount, coveragePercent),
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
