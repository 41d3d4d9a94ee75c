package libatlas

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/atlas-structures/atlas.SDK/goatlas"
)

// CanonicalAtlasExpr is the measurement profile of the canonical 96-vertex
// Atlas: 64 degree-5 vertices and 32 degree-6 vertices, mirror involution
// pairing v with v+48 (mod 96), unity positions {0, 48}.
//
// This is the profile the Atlas construction is known to measure out to; the
// construction itself (resonance classes over E₈ labels) lives upstream.
const CanonicalAtlasExpr = "64*5 + 32*6, mirror +48, unity 0 48"

// Atlas is a concrete measurement profile satisfying the goatlas.Atlas
// query contract.  Once initialized it is read-only, so any number of
// verification calls may run against it concurrently.
type Atlas struct {
	degrees []int
	mirror  []int
	unity   []int
}

// NewAtlas returns an empty Atlas profile.
// Use InitFromExpr (or CanonicalAtlas) to populate it.
func NewAtlas() *Atlas {
	return &Atlas{}
}

// CanonicalAtlas returns the canonical 96-vertex Atlas measurement profile.
func CanonicalAtlas() *Atlas {
	at := NewAtlas()
	if err := at.InitFromExpr(CanonicalAtlasExpr); err != nil {
		panic(err) // the canonical expr is a compile-time fact
	}
	return at
}

// Init resets this Atlas to the empty profile.
func (at *Atlas) Init() {
	at.degrees = at.degrees[:0]
	at.mirror = at.mirror[:0]
	at.unity = at.unity[:0]
}

// VertexCount returns N, the total number of vertices.
func (at *Atlas) VertexCount() int {
	return len(at.degrees)
}

// Degree returns the degree of vertex v.
func (at *Atlas) Degree(v int) int {
	if v < 0 || v >= len(at.degrees) {
		panic(errors.Wrapf(goatlas.ErrBadVertexID, "degree(%d) with N=%d", v, len(at.degrees)))
	}
	return at.degrees[v]
}

// MirrorPair returns the mirror partner of vertex v.
func (at *Atlas) MirrorPair(v int) int {
	if v < 0 || v >= len(at.mirror) {
		panic(errors.Wrapf(goatlas.ErrBadVertexID, "mirror_pair(%d) with N=%d", v, len(at.mirror)))
	}
	return at.mirror[v]
}

// UnityPositions returns the distinguished unity vertex indices in ascending order.
func (at *Atlas) UnityPositions() []int {
	unity := make([]int, len(at.unity))
	copy(unity, at.unity)
	return unity
}

// DegreeSpectrum tallies the degree of every vertex into an ordered spectrum.
func (at *Atlas) DegreeSpectrum() *DegreeSpectrum {
	sp := NewDegreeSpectrum()
	for _, deg := range at.degrees {
		sp.Tally(deg)
	}
	return sp
}

// WriteAsString writes a one-line description of this profile.
func (at *Atlas) WriteAsString(out io.Writer, opts goatlas.PrintOpts) {
	if len(opts.Label) > 0 {
		fmt.Fprintf(out, "%s ", opts.Label)
	}
	fmt.Fprintf(out, "Atlas{N=%d, spectrum %v, unity %v}\n",
		at.VertexCount(), at.DegreeSpectrum(), at.unity)
}

func (at *Atlas) String() string {
	return fmt.Sprintf("Atlas{N=%d, spectrum %v, unity %v}",
		at.VertexCount(), at.DegreeSpectrum(), at.unity)
}
