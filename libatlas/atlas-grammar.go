package libatlas

import (
	"sort"

	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"

	"github.com/atlas-structures/atlas.SDK/goatlas"
)

// AtlasExpr is a compact measurement-profile expression:
//
//	"64*5 + 32*6, mirror +48, unity 0 48"
//
// Degree runs assign degrees to vertices in index order ("64*5" is 64
// vertices of degree 5).  The optional mirror clause pairs v with
// v+offset (mod N); omitting it leaves the identity pairing (which has
// fixed points and therefore fails the Quotient verification).  The
// optional unity clause lists the distinguished unity vertex indices.
type AtlasExpr struct {
	Degrees []*DegreeRun `parser:"@@ ('+' @@)*"`
	Clauses []*Clause    `parser:"(',' @@)*"`
}

type DegreeRun struct {
	Count  int `parser:"@Int '*'"`
	Degree int `parser:"@Int"`
}

type Clause struct {
	Mirror *MirrorExpr `parser:"'mirror' @@"`
	Unity  []*UnityPos `parser:"| 'unity' @@ @@*"`
}

type MirrorExpr struct {
	Offset int `parser:"'+' @Int"`
}

type UnityPos struct {
	Vtx int `parser:"@Int"`
}

var parseAtlasExpr = participle.MustBuild[AtlasExpr]()

// InitFromExpr initializes this Atlas from an AtlasExpr profile expression.
func (at *Atlas) InitFromExpr(atlasExpr string) error {
	at.Init()

	expr, err := parseAtlasExpr.ParseString("", atlasExpr)
	if err != nil {
		return errors.Wrap(goatlas.ErrBadAtlasExpr, err.Error())
	}

	for _, run := range expr.Degrees {
		if run.Count < 0 || run.Degree < 0 {
			return errors.Wrapf(goatlas.ErrBadAtlasExpr, "bad degree run %d*%d", run.Count, run.Degree)
		}
		for i := 0; i < run.Count; i++ {
			at.degrees = append(at.degrees, run.Degree)
		}
	}

	N := len(at.degrees)

	var mirror *MirrorExpr
	for _, clause := range expr.Clauses {
		switch {
		case clause.Mirror != nil:
			if mirror != nil {
				return errors.Wrap(goatlas.ErrBadAtlasExpr, "duplicate mirror clause")
			}
			mirror = clause.Mirror

		default:
			for _, pos := range clause.Unity {
				if pos.Vtx < 0 || pos.Vtx >= N {
					return errors.Wrapf(goatlas.ErrBadAtlasExpr, "unity vertex %d with N=%d", pos.Vtx, N)
				}
				at.unity = append(at.unity, pos.Vtx)
			}
		}
	}
	sort.Ints(at.unity)

	offset := 0
	if mirror != nil {
		if N == 0 {
			return errors.Wrap(goatlas.ErrBadAtlasExpr, "mirror clause on empty profile")
		}
		offset = mirror.Offset % N
	}
	for v := 0; v < N; v++ {
		at.mirror = append(at.mirror, (v+offset)%N)
	}

	return nil
}

// InitFromTables initializes this Atlas directly from measurement tables.
//
// The tables are adopted as-is (not copied, not validated); a mirror table
// that breaks the involution contract will trip the verifier's contract
// checks loudly rather than fail quietly here.
func (at *Atlas) InitFromTables(degrees, mirror, unity []int) {
	at.degrees = degrees
	at.mirror = mirror
	at.unity = unity
}
