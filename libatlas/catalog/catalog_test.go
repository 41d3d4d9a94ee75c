package catalog_test

import (
	"os"
	"path"
	"testing"

	"github.com/atlas-structures/atlas.SDK/goatlas"
	"github.com/atlas-structures/atlas.SDK/libatlas"
	_ "github.com/atlas-structures/atlas.SDK/libatlas/catalog"
)

func TestBasics(t *testing.T) {
	dir, err := os.MkdirTemp("", "junk*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	ws := libatlas.NewWorkspace()
	defer ws.Close()

	dbPath := path.Join(dir, "TestBasics")
	cat, err := ws.OpenCatalog(goatlas.CatalogOpts{
		DbPathName: dbPath,
	})
	if err != nil {
		t.Fatal(err)
	}

	atlas := libatlas.CanonicalAtlas()
	results := libatlas.VerifyAll(atlas)

	for _, res := range results {
		if added := cat.TryAddResult(res); !added {
			t.Fatal("nope")
		}
		if added := cat.TryAddResult(res); added {
			t.Fatal("nope")
		}
	}

	// A distinct certificate for the same operation is a separate entry.
	badAtlas := libatlas.NewAtlas()
	if err = badAtlas.InitFromExpr("97*5, mirror +1, unity 0 48"); err != nil {
		t.Fatal(err)
	}
	badRes := libatlas.VerifyOperation(goatlas.OpQuotient, badAtlas)
	if added := cat.TryAddResult(badRes); !added {
		t.Fatal("nope")
	}

	if n := cat.NumResults(goatlas.OpQuotient); n != 2 {
		t.Fatalf("NumResults(Quotient) = %d", n)
	}
	if n := cat.NumResults(goatlas.OpMorphism); n != 1 {
		t.Fatalf("NumResults(Morphism) = %d", n)
	}

	// Select all, then only verified.
	if total := selectCount(cat, goatlas.DefaultResultSelector); total != 6 {
		t.Fatalf("selected %d certificates", total)
	}
	verifiedOnly := goatlas.ResultSelector{VerifiedOnly: true}
	if total := selectCount(cat, verifiedOnly); total != 5 {
		t.Fatalf("selected %d verified certificates", total)
	}
	quotientOnly := goatlas.ResultSelector{Ops: []goatlas.Operation{goatlas.OpQuotient}}
	if total := selectCount(cat, quotientOnly); total != 2 {
		t.Fatalf("selected %d quotient certificates", total)
	}

	if err = cat.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopen read-only: counts survive and adds are refused.
	cat, err = ws.OpenCatalog(goatlas.CatalogOpts{
		DbPathName: dbPath,
		ReadOnly:   true,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer cat.Close()

	if !cat.IsReadOnly() {
		t.Fatal("catalog should be read-only")
	}
	if n := cat.NumResults(goatlas.OpQuotient); n != 2 {
		t.Fatalf("persisted NumResults(Quotient) = %d", n)
	}
	if added := cat.TryAddResult(results[0]); added {
		t.Fatal("read-only catalog accepted a certificate")
	}
}

func selectCount(cat goatlas.Catalog, sel goatlas.ResultSelector) int {
	onHit := make(chan goatlas.OperationResult)
	go func() {
		cat.Select(sel, onHit)
		close(onHit)
	}()
	total := 0
	for res := range onHit {
		_ = res
		total++
	}
	return total
}

func TestInMemoryCatalog(t *testing.T) {
	ws := libatlas.NewWorkspace()
	defer ws.Close()

	cat, err := ws.OpenCatalog(goatlas.CatalogOpts{})
	if err != nil {
		t.Fatal(err)
	}
	defer cat.Close()

	count, allVerified := libatlas.VerifyStream(libatlas.CanonicalAtlas()).
		AddTo(cat).
		Go()
	if count != goatlas.NumOperations || !allVerified {
		t.Fatalf("streamed %d results, allVerified=%v", count, allVerified)
	}

	for _, op := range goatlas.AllOperations {
		if n := cat.NumResults(op); n != 1 {
			t.Fatalf("NumResults(%v) = %d", op, n)
		}
	}

	// Read-only requires a db pathname.
	if _, err = ws.OpenCatalog(goatlas.CatalogOpts{ReadOnly: true}); err == nil {
		t.Fatal("in-memory read-only open should fail")
	}
}
