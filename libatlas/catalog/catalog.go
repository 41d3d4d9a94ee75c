package catalog

import (
	"encoding/binary"
	"runtime"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/atlas-structures/atlas.SDK/goatlas"
	"github.com/atlas-structures/atlas.SDK/libatlas"
)

/***

Catalog database format:

	gCatalogStateKey => catalogState (uvarint certificate count per operation)

	gCertPrefix, ResultSpec => nil
		...

Certificates are stored entirely in the key (the ResultSpec encoding is
canonic), so dedupe is a key lookup and selection is a prefix walk.  The
state record keeps per-operation counts so NumResults() needs no walk.

***/

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
	gCertPrefix      = []byte{'c'}
)

// catalog is a db wrapper for a verification-certificate catalog.
type catalog struct {
	ctx          goatlas.CatalogContext
	mu           sync.Mutex
	readOnly     bool
	stateDirty   bool
	state        catalogState
	db           *badger.DB
	CatalogDesig string
}

type catalogState struct {
	numResults [goatlas.NumOperations]int64
}

func init() {
	libatlas.OpenCatalog = OpenCatalog
}

func OpenCatalog(ctx goatlas.CatalogContext, opts goatlas.CatalogOpts) (goatlas.Catalog, error) {
	cat := &catalog{
		ctx:          ctx,
		readOnly:     opts.ReadOnly,
		CatalogDesig: "A1",
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false // not needed so disable for performance
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(goatlas.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}

	// Once the db is open, the catalog ctx is blocked until the catalog closes
	ctx.AttachCatalog(cat)

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = true
	}
	if err != nil {
		cat.Close()
		return nil, err
	}

	klog.V(2).Infof("opened certificate catalog %q (%d certificates)", opts.DbPathName, cat.totalResults())
	return cat, nil
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

func (cat *catalog) TryAddResult(res goatlas.OperationResult) bool {
	if cat.readOnly {
		return false
	}

	var buf [192]byte
	key := append(buf[:0], gCertPrefix...)
	key = res.AppendResultSpecTo(key)

	txn := cat.db.NewTransaction(true)
	defer txn.Commit()

	added := false
	_, err := txn.Get(key)
	if err == nil {
		// no-op since the certificate is already in the db
	} else if err == badger.ErrKeyNotFound {
		err = txn.Set(key, nil)
		added = true
	}
	if err != nil {
		panic(err)
	}

	if added {
		cat.mu.Lock()
		cat.state.numResults[res.Op]++
		cat.stateDirty = true
		cat.mu.Unlock()
	}
	return added
}

func (cat *catalog) NumResults(op goatlas.Operation) int64 {
	if op < 0 || op >= goatlas.NumOperations {
		return 0
	}
	cat.mu.Lock()
	defer cat.mu.Unlock()
	return cat.state.numResults[op]
}

// Select walks the stored certificates in key order and fires onHit with
// each one meeting the selection criteria.  The caller owns onHit and
// closes it after Select returns.
func (cat *catalog) Select(sel goatlas.ResultSelector, onHit goatlas.OnResultHit) {
	err := cat.db.View(func(txn *badger.Txn) error {
		itOpts := badger.DefaultIteratorOptions
		itOpts.PrefetchValues = false
		it := txn.NewIterator(itOpts)
		defer it.Close()

		for it.Seek(gCertPrefix); it.ValidForPrefix(gCertPrefix); it.Next() {
			key := it.Item().KeyCopy(nil)

			var res goatlas.OperationResult
			if err := res.ReadResultSpec(key[len(gCertPrefix):]); err != nil {
				return err
			}
			if sel.SelectsResult(res) {
				onHit <- res
			}
		}
		return nil
	})
	if err != nil {
		klog.Errorf("certificate select failed: %v", err)
	}
}

func (cat *catalog) Close() error {
	if cat.db == nil {
		return nil
	}
	err := cat.flushState()
	if err != nil {
		klog.Errorf("error flushing catalog state: %v", err)
	}
	cat.ctx.DetachCatalog(cat)
	dbErr := cat.db.Close()
	cat.db = nil
	if err == nil {
		err = dbErr
	}
	return err
}

func (cat *catalog) totalResults() int64 {
	total := int64(0)
	for _, n := range cat.state.numResults {
		total += n
	}
	return total
}

func (cat *catalog) loadState() error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return cat.state.unmarshal(val)
		})
	})
}

func (cat *catalog) flushState() error {
	cat.mu.Lock()
	dirty := cat.stateDirty
	var buf [goatlas.NumOperations * binary.MaxVarintLen64]byte
	stateSpec := cat.state.appendTo(buf[:0])
	cat.stateDirty = false
	cat.mu.Unlock()

	if !dirty || cat.readOnly {
		return nil
	}
	return cat.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gCatalogStateKey, stateSpec)
	})
}

func (state *catalogState) appendTo(out []byte) []byte {
	for _, n := range state.numResults {
		out = binary.AppendUvarint(out, uint64(n))
	}
	return out
}

func (state *catalogState) unmarshal(spec []byte) error {
	for i := range state.numResults {
		n, sz := binary.Uvarint(spec)
		if sz <= 0 {
			return errors.Wrap(goatlas.ErrUnmarshal, "bad catalog state record")
		}
		state.numResults[i] = int64(n)
		spec = spec[sz:]
	}
	return nil
}
