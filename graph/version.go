package graph

import (
	"fmt"
	"math"
)

// Version is a point in a System's mutation history. Versions are strictly
// increasing, start at 1, and are totally ordered by the usual integer
// comparisons. The zero Version never identifies committed state; it is the
// "no version yet" marker.
type Version uint64

func (v Version) String() string {
	return fmt.Sprintf("v%d", uint64(v))
}

// next returns the successor version. Exhausting the version space is an
// unrecoverable invariant violation, not a condition to recover from.
func (v Version) next() Version {
	if v == math.MaxUint64 {
		panic(fmt.Errorf("%w: at %s", ErrVersionOverflow, v))
	}
	return v + 1
}

// maxVersion folds a dependency version into a running maximum where zero
// means "nothing observed yet".
func maxVersion(acc, observed Version) Version {
	if observed > acc {
		return observed
	}
	return acc
}
