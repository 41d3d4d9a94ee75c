package libatlas

import (
	"strconv"
	"strings"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// DegreeSpectrum is an ordered degree → vertex-count tally.
//
// The red-black tree keeps the spectrum sorted by degree so report strings
// and spectrum walks are deterministic regardless of tally order.
type DegreeSpectrum struct {
	tree  *redblacktree.Tree
	total int
}

func NewDegreeSpectrum() *DegreeSpectrum {
	return &DegreeSpectrum{
		tree: redblacktree.NewWithIntComparator(),
	}
}

// Tally records one vertex of the given degree.
func (sp *DegreeSpectrum) Tally(degree int) {
	count := 0
	if val, found := sp.tree.Get(degree); found {
		count = val.(int)
	}
	sp.tree.Put(degree, count+1)
	sp.total++
}

// Count returns the number of vertices tallied with the given degree.
func (sp *DegreeSpectrum) Count(degree int) int {
	if val, found := sp.tree.Get(degree); found {
		return val.(int)
	}
	return 0
}

// NumVertices returns the total number of vertices tallied.
func (sp *DegreeSpectrum) NumVertices() int {
	return sp.total
}

// NumDegrees returns the number of distinct degrees tallied.
func (sp *DegreeSpectrum) NumDegrees() int {
	return sp.tree.Size()
}

// String renders the spectrum as "count×deg" terms in ascending degree
// order, e.g. "64×5 + 32×6".
func (sp *DegreeSpectrum) String() string {
	b := strings.Builder{}
	it := sp.tree.Iterator()
	for it.Next() {
		if b.Len() > 0 {
			b.WriteString(" + ")
		}
		b.WriteString(strconv.Itoa(it.Value().(int)))
		b.WriteString("×")
		b.WriteString(strconv.Itoa(it.Key().(int)))
	}
	if b.Len() == 0 {
		return "∅"
	}
	return b.String()
}
