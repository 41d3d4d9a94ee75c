package libatlas

import (
	"github.com/dgraph-io/badger/v4"

	"github.com/atlas-structures/atlas.SDK/goatlas"
)

// CertSet allows adding certificate encodings of verification results and
// returning whether an identical certificate has already been added.
type CertSet interface {

	// TryAdd adds the given result's certificate if it is not already present.
	//
	// If an identical certificate is already in this CertSet, this call has no
	// effect and TryAdd() returns false.  Otherwise the certificate is added
	// and TryAdd() returns true.
	//
	// After one or more calls to TryAdd(), call Close() for cleanup.
	TryAdd(res goatlas.OperationResult) bool

	// Close removes all previously added items from this set.
	//
	// If you make subsequent calls to TryAdd(), be sure you call Close() when you're done.
	Close()
}

func NewCertSet() CertSet {
	return &certSet{}
}

type certSet struct {
	lsmSet
}

func (set *certSet) TryAdd(res goatlas.OperationResult) bool {
	var buf [192]byte
	key := res.AppendResultSpecTo(buf[:0])
	return set.tryAdd(key)
}

type lsmSet struct {
	db *badger.DB
}

func (set *lsmSet) autoOpen() {
	if set.db == nil {
		dbOpts := badger.DefaultOptions("").WithInMemory(true)
		dbOpts.Logger = nil
		dbOpts.MetricsEnabled = false

		var err error
		set.db, err = badger.Open(dbOpts)
		if err != nil {
			panic(err)
		}
	}
}

func (set *lsmSet) tryAdd(key []byte) bool {
	set.autoOpen()

	txn := set.db.NewTransaction(true)
	defer txn.Commit()

	added := false
	_, err := txn.Get(key)
	if err == nil {
		// no-op since the key is already in the db
	} else if err == badger.ErrKeyNotFound {
		err = txn.Set(key, nil)
		added = true
	}

	if err != nil {
		panic(err)
	}

	return added
}

func (set *lsmSet) Close() {
	if set.db != nil {
		set.db.Close()
		set.db = nil
	}
}
