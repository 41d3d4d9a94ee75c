package main

import (
	"os"

	"github.com/plan-systems/klog"

	"github.com/atlas-structures/atlas.SDK/goatlas"
	"github.com/atlas-structures/atlas.SDK/libatlas"
	_ "github.com/atlas-structures/atlas.SDK/libatlas/catalog"
)

// runAudit applies all five categorical operations to the canonical Atlas
// profile and prints the report, optionally appending certificates to a
// catalog db.
func runAudit(dbPath string) {
	atlas := libatlas.CanonicalAtlas()

	stream := libatlas.VerifyStream(atlas)

	if len(dbPath) > 0 {
		ws := libatlas.NewWorkspace()
		defer ws.Close()

		cat, err := ws.OpenCatalog(goatlas.CatalogOpts{
			DbPathName: dbPath,
		})
		if err != nil {
			klog.Fatalf("failed to open certificate catalog: %v", err)
		}
		stream = stream.AddTo(cat)
	}

	count, allVerified := stream.Print(os.Stdout, goatlas.DefaultPrintOpts).Go()
	if !allVerified {
		klog.Errorf("audit FAILED: one or more of the %d operations did not verify", count)
		klog.Flush()
		os.Exit(1)
	}
	klog.Infof("audit complete: all %d operations verified", count)
}
