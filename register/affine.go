package register

import (
	"fmt"
	"math"

	"github.com/tsawler/folio/model"
)

// degeneratePivot is the pivot magnitude below which the normal
// equations are treated as singular: the observed points are collinear
// or coincident and no affine transform is determined by them.
const degeneratePivot = 1e-12

// PointPair pairs an observed centroid with the canonical position it
// must map to.
type PointPair struct {
	Observed  model.Point
	Canonical model.Point
}

// SolveAffine finds the least-squares affine transform mapping each
// observed point onto its canonical partner:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
//
// Each pair contributes two rows; the six unknowns are solved through
// the 6x6 normal-equations matrix by Gaussian elimination with partial
// pivoting. Fewer than three pairs, or a degenerate configuration,
// fails with ErrRegistration.
func SolveAffine(pairs []PointPair) (model.Matrix, error) {
	if len(pairs) < 3 {
		return model.Matrix{}, fmt.Errorf("%w: need at least 3 point pairs, got %d", ErrRegistration, len(pairs))
	}

	var ata [6][6]float64
	var atb [6]float64
	for _, pr := range pairs {
		x, y := pr.Observed.X, pr.Observed.Y
		rows := [2][6]float64{
			{x, y, 1, 0, 0, 0},
			{0, 0, 0, x, y, 1},
		}
		rhs := [2]float64{pr.Canonical.X, pr.Canonical.Y}
		for r := 0; r < 2; r++ {
			for i := 0; i < 6; i++ {
				for j := 0; j < 6; j++ {
					ata[i][j] += rows[r][i] * rows[r][j]
				}
				atb[i] += rows[r][i] * rhs[r]
			}
		}
	}

	sol, err := solve6(ata, atb)
	if err != nil {
		return model.Matrix{}, err
	}

	// sol is (a,b,c,d,e,f); Matrix stores column-major affine terms.
	return model.Matrix{sol[0], sol[3], sol[1], sol[4], sol[2], sol[5]}, nil
}

// solve6 solves a 6x6 linear system in place by Gaussian elimination
// with partial pivoting.
func solve6(a [6][6]float64, b [6]float64) ([6]float64, error) {
	const n = 6
	for col := 0; col < n; col++ {
		// Partial pivot: move the largest remaining entry up.
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < degeneratePivot {
			return [6]float64{}, fmt.Errorf("%w: degenerate point configuration (pivot %g)", ErrRegistration, a[pivot][col])
		}
		if pivot != col {
			a[col], a[pivot] = a[pivot], a[col]
			b[col], b[pivot] = b[pivot], b[col]
		}

		for r := col + 1; r < n; r++ {
			factor := a[r][col] / a[col][col]
			if factor == 0 {
				continue
			}
			for c := col; c < n; c++ {
				a[r][c] -= factor * a[col][c]
			}
			b[r] -= factor * b[col]
		}
	}

	var x [6]float64
	for r := n - 1; r >= 0; r-- {
		sum := b[r]
		for c := r + 1; c < n; c++ {
			sum -= a[r][c] * x[c]
		}
		x[r] = sum / a[r][r]
	}
	return x, nil
}
