package libatlas_test

import (
	"strings"
	"testing"

	"github.com/atlas-structures/atlas.SDK/goatlas"
	"github.com/atlas-structures/atlas.SDK/libatlas"
)

func TestCanonicalAudit(t *testing.T) {
	atlas := libatlas.CanonicalAtlas()

	if atlas.VertexCount() != goatlas.AtlasVertexCount {
		t.Fatalf("canonical atlas has %d vertices", atlas.VertexCount())
	}

	results := libatlas.VerifyAll(atlas)
	if len(results) != goatlas.NumOperations {
		t.Fatalf("got %d results", len(results))
	}

	for i, res := range results {
		op := goatlas.AllOperations[i]
		if res.Op != op {
			t.Fatalf("result %d out of taxonomy order", i)
		}
		if res.GroupName != op.TargetGroup() {
			t.Fatalf("%v: group %q != %q", op, res.GroupName, op.TargetGroup())
		}
		if res.ExpectedRoots != op.ExpectedRoots() {
			t.Fatalf("%v: expected roots %d != %d", op, res.ExpectedRoots, op.ExpectedRoots())
		}
		if !res.Verified {
			t.Fatalf("%v did not verify: %s", op, res.Details)
		}
		if res.ActualCount != res.ExpectedRoots {
			t.Fatalf("%v: actual %d != expected %d", op, res.ActualCount, res.ExpectedRoots)
		}
	}
}

func TestOperationTaxonomy(t *testing.T) {
	expect := []struct {
		op    goatlas.Operation
		name  string
		group string
		roots int
	}{
		{goatlas.OpProduct, "Product", "G₂", 12},
		{goatlas.OpQuotient, "Quotient", "F₄", 48},
		{goatlas.OpFiltration, "Filtration", "E₆", 72},
		{goatlas.OpAugmentation, "Augmentation", "E₇", 126},
		{goatlas.OpMorphism, "Morphism", "E₈", 240},
	}

	for _, tc := range expect {
		if tc.op.Name() != tc.name || tc.op.TargetGroup() != tc.group || tc.op.ExpectedRoots() != tc.roots {
			t.Fatalf("taxonomy drift for %v: %v %v %v", tc.op, tc.op.Name(), tc.op.TargetGroup(), tc.op.ExpectedRoots())
		}
		op, err := goatlas.OperationByName(tc.name)
		if err != nil || op != tc.op {
			t.Fatalf("OperationByName(%q) = %v, %v", tc.name, op, err)
		}
	}
	if _, err := goatlas.OperationByName("Colimit"); err == nil {
		t.Fatal("expected unknown-operation error")
	}
}

// A fixed-point-free total involution over N vertices must always yield
// exactly N/2 sign classes.
func TestQuotientSignClasses(t *testing.T) {
	for _, tc := range []struct {
		expr    string
		classes int
	}{
		{"10*3, mirror +5", 5},
		{"96*5, mirror +48", 48},
		{libatlas.CanonicalAtlasExpr, 48},
	} {
		atlas := libatlas.NewAtlas()
		if err := atlas.InitFromExpr(tc.expr); err != nil {
			t.Fatal(err)
		}
		res := libatlas.VerifyOperation(goatlas.OpQuotient, atlas)
		if res.ActualCount != tc.classes {
			t.Fatalf("%q: %d sign classes, want %d", tc.expr, res.ActualCount, tc.classes)
		}
		if res.Verified != (tc.classes == 48) {
			t.Fatalf("%q: verified = %v", tc.expr, res.Verified)
		}
	}
}

// 97 vertices with a non-involution pairing: the sign-class count deviates
// from N/2 and verification fails without a fault.
func TestQuotientNegativeScenario(t *testing.T) {
	atlas := libatlas.NewAtlas()
	if err := atlas.InitFromExpr("97*5, mirror +1, unity 0 48"); err != nil {
		t.Fatal(err)
	}

	res := libatlas.VerifyOperation(goatlas.OpQuotient, atlas)
	if res.Verified {
		t.Fatal("malformed pairing verified")
	}
	if res.ActualCount == 97/2 {
		t.Fatal("sign-class count should deviate from N/2")
	}
	if res.ActualCount != 49 {
		t.Fatalf("offset-1 walk over 97 vertices closes 49 classes, got %d", res.ActualCount)
	}
}

func TestFiltrationCaps(t *testing.T) {
	for _, tc := range []struct {
		expr     string
		actual   int
		verified bool
	}{
		{libatlas.CanonicalAtlasExpr, 72, true},
		{"70*5 + 26*6, mirror +48, unity 0 48", 72, true}, // surplus capped at 64+8
		{"80*5 + 20*6, mirror +50", 72, true},             // caps ignore the 100-vertex count
		{"10*5 + 10*6, mirror +10", 18, false},            // under both thresholds
		{"64*5 + 4*6, mirror +34", 68, false},             // deg6 threshold missed
		{"96*4, mirror +48", 0, false},                    // no contributing degrees
	} {
		atlas := libatlas.NewAtlas()
		if err := atlas.InitFromExpr(tc.expr); err != nil {
			t.Fatal(err)
		}
		res := libatlas.VerifyOperation(goatlas.OpFiltration, atlas)
		if res.ActualCount > 72 {
			t.Fatalf("%q: actual %d exceeds the cap", tc.expr, res.ActualCount)
		}
		if res.ActualCount != tc.actual || res.Verified != tc.verified {
			t.Fatalf("%q: got %d/%v, want %d/%v", tc.expr, res.ActualCount, res.Verified, tc.actual, tc.verified)
		}
	}
}

// Augmentation is linear in the vertex count for any profile; only N == 96
// verifies.
func TestAugmentationLinearity(t *testing.T) {
	for _, tc := range []struct {
		expr     string
		actual   int
		verified bool
	}{
		{libatlas.CanonicalAtlasExpr, 126, true},
		{"12*5, mirror +6", 42, false},
		{"97*5, mirror +1", 127, false},
	} {
		atlas := libatlas.NewAtlas()
		if err := atlas.InitFromExpr(tc.expr); err != nil {
			t.Fatal(err)
		}
		res := libatlas.VerifyOperation(goatlas.OpAugmentation, atlas)
		if res.ActualCount != tc.actual || res.Verified != tc.verified {
			t.Fatalf("%q: got %d/%v, want %d/%v", tc.expr, res.ActualCount, res.Verified, tc.actual, tc.verified)
		}
	}
}

func TestMorphismTargetSize(t *testing.T) {
	atlas := libatlas.NewAtlas()
	if err := atlas.InitFromExpr("12*5, mirror +6"); err != nil {
		t.Fatal(err)
	}
	res := libatlas.VerifyOperation(goatlas.OpMorphism, atlas)
	if res.ActualCount != 240 {
		t.Fatalf("morphism target size is fixed at 240, got %d", res.ActualCount)
	}
	if res.Verified {
		t.Fatal("12-vertex profile should not verify the embedding")
	}

	res = libatlas.VerifyOperation(goatlas.OpMorphism, libatlas.CanonicalAtlas())
	if !res.Verified || !strings.Contains(res.Details, "40% coverage") {
		t.Fatalf("canonical morphism: %v / %q", res.Verified, res.Details)
	}
}

func TestProductPreconditions(t *testing.T) {
	// 12-fold divisible with two unity positions verifies regardless of degrees.
	atlas := libatlas.NewAtlas()
	if err := atlas.InitFromExpr("12*3, mirror +6, unity 0 6"); err != nil {
		t.Fatal(err)
	}
	res := libatlas.VerifyOperation(goatlas.OpProduct, atlas)
	if !res.Verified || res.ActualCount != 12 {
		t.Fatalf("got %v / %d", res.Verified, res.ActualCount)
	}

	// Not 12-fold divisible.
	if err := atlas.InitFromExpr("10*3, mirror +5, unity 0 5"); err != nil {
		t.Fatal(err)
	}
	res = libatlas.VerifyOperation(goatlas.OpProduct, atlas)
	if res.Verified {
		t.Fatal("10 vertices are not 12-fold divisible")
	}
	if res.ActualCount != 12 {
		t.Fatal("the 4×3 product size is definitionally fixed")
	}

	// Wrong unity count.
	if err := atlas.InitFromExpr("12*3, mirror +6, unity 0"); err != nil {
		t.Fatal(err)
	}
	if res = libatlas.VerifyOperation(goatlas.OpProduct, atlas); res.Verified {
		t.Fatal("one unity position should fail verification")
	}
}

// An out-of-range mirror pairing is an Atlas contract violation and must
// fail loudly, not as Verified == false.
func TestMirrorContractViolation(t *testing.T) {
	atlas := libatlas.NewAtlas()
	atlas.InitFromTables(
		[]int{5, 5, 5, 5},
		[]int{1, 0, 99, 2},
		nil,
	)

	defer func() {
		cause := recover()
		if cause == nil {
			t.Fatal("expected a contract-violation panic")
		}
	}()
	libatlas.VerifyOperation(goatlas.OpQuotient, atlas)
}

func TestVerifyStream(t *testing.T) {
	atlas := libatlas.CanonicalAtlas()

	b := strings.Builder{}
	count, allVerified := libatlas.VerifyStream(atlas).
		Print(&b, goatlas.PrintOpts{Details: true}).
		Go()
	if count != goatlas.NumOperations || !allVerified {
		t.Fatalf("stream drained %d results, allVerified=%v", count, allVerified)
	}
	for _, group := range []string{"G₂", "F₄", "E₆", "E₇", "E₈"} {
		if !strings.Contains(b.String(), group) {
			t.Fatalf("report missing %s", group)
		}
	}

	// Duplicate results collapse under DropDupes.
	stream := libatlas.NewResultStream()
	go func() {
		res := libatlas.VerifyOperation(goatlas.OpQuotient, atlas)
		stream.Outlet <- res
		stream.Outlet <- res
		stream.Outlet <- libatlas.VerifyOperation(goatlas.OpProduct, atlas)
		stream.Close()
	}()
	if count, _ = stream.DropDupes().Go(); count != 2 {
		t.Fatalf("DropDupes passed %d results", count)
	}
}

func TestCertSet(t *testing.T) {
	certSet := libatlas.NewCertSet()
	defer certSet.Close()

	res := libatlas.VerifyOperation(goatlas.OpFiltration, libatlas.CanonicalAtlas())
	if !certSet.TryAdd(res) {
		t.Fatal("first add should succeed")
	}
	if certSet.TryAdd(res) {
		t.Fatal("identical certificate should dedupe")
	}

	res.ActualCount++
	if !certSet.TryAdd(res) {
		t.Fatal("distinct certificate should add")
	}
}
