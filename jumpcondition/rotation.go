package jumpcondition

import (
	"math"

	"github.com/shaply/automesh/matrix"
)

// rotationAngle returns the magnitude of the axis-angle rotation that takes
// reference to current, i.e. the angle of current * reference^-1. Both
// matrices must be 3x3 rotations (reference^-1 is its transpose, since
// rotation matrices are orthonormal).
func rotationAngle(current, reference matrix.Matrix) float64 {
	rel := multiply(current, transpose(reference))
	return angleFromRotationMatrix(rel)
}

func multiply(a, b matrix.Matrix) matrix.Matrix {
	out := matrix.New(a.Rows, b.Cols)
	for i := 0; i < a.Rows; i++ {
		for j := 0; j < b.Cols; j++ {
			var sum float64
			for k := 0; k < a.Cols; k++ {
				sum += a.At(i, k) * b.At(k, j)
			}
			out.Set(i, j, sum)
		}
	}
	return out
}

func transpose(m matrix.Matrix) matrix.Matrix {
	out := matrix.New(m.Cols, m.Rows)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.Set(j, i, m.At(i, j))
		}
	}
	return out
}

// angleFromRotationMatrix converts a 3x3 rotation matrix to its
// axis-angle representation via the equivalent unit quaternion, then
// returns the angle component, matching the spec's "convert to axis-angle
// and compare the angle" prescription.
//
// Quaternion extraction uses the standard trace-based method: w from the
// trace, then the vector part from the matrix's off-diagonal
// antisymmetric components divided by 4w. When w is near zero (a rotation
// near pi, trace near -1) that division is unstable, so the vector part's
// magnitudes are taken from the diagonal instead; only the vector part's
// norm enters the angle, so the signs that branch drops do not matter.
func angleFromRotationMatrix(r matrix.Matrix) float64 {
	trace := r.At(0, 0) + r.At(1, 1) + r.At(2, 2)
	w := math.Sqrt(math.Max(0, 1+trace)) / 2

	var x, y, z float64
	if w > 1e-8 {
		x = (r.At(2, 1) - r.At(1, 2)) / (4 * w)
		y = (r.At(0, 2) - r.At(2, 0)) / (4 * w)
		z = (r.At(1, 0) - r.At(0, 1)) / (4 * w)
	} else {
		// Near a 180-degree rotation: fall back to the diagonal-dominant
		// extraction, since dividing by w would blow up.
		x = math.Sqrt(math.Max(0, 1+r.At(0, 0)-r.At(1, 1)-r.At(2, 2))) / 2
		y = math.Sqrt(math.Max(0, 1-r.At(0, 0)+r.At(1, 1)-r.At(2, 2))) / 2
		z = math.Sqrt(math.Max(0, 1-r.At(0, 0)-r.At(1, 1)+r.At(2, 2))) / 2
	}

	norm := math.Sqrt(x*x + y*y + z*z)
	return 2 * math.Atan2(norm, w)
}
