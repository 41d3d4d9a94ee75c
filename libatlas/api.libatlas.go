package libatlas

import (
	"github.com/atlas-structures/atlas.SDK/goatlas"
)

var (
	LIB_VERSION = "v1.2026.1"
)

// OpenCatalog is a forward declared entry point, allowing Catalog
// implementations to decouple from the libatlas module.  The catalog
// package assigns it on import.
var OpenCatalog func(ctx goatlas.CatalogContext, opts goatlas.CatalogOpts) (goatlas.Catalog, error)

// Workspace collects active session resources and catalogs.
type Workspace struct {
	CatalogCtx goatlas.CatalogContext
}

func NewWorkspace() *Workspace {
	return &Workspace{
		CatalogCtx: goatlas.NewCatalogContext(),
	}
}

// OpenCatalog opens a certificate catalog attached to this workspace.
func (ws *Workspace) OpenCatalog(opts goatlas.CatalogOpts) (goatlas.Catalog, error) {
	return OpenCatalog(ws.CatalogCtx, opts)
}

// Close closes this workspace and blocks until all attached catalogs have closed.
func (ws *Workspace) Close() {
	ws.CatalogCtx.Close()
	<-ws.CatalogCtx.Done()
}
