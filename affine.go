package bspline

// Affine describes an affine transform via coefficients.
//
// If the coefficients are (a, b, c, d, e, f), then the resulting
// transformation represents this augmented matrix:
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// Renderers use it to map curve space onto a raster.
type Affine struct {
	N0, N1, N2, N3, N4, N5 float64
}

// Scale creates an affine transform representing non-uniform scaling with
// different scale values for x and y
func Scale(x, y float64) Affine {
	return Affine{x, 0, 0, y, 0, 0}
}

// Translate creates an affine transform representing translation.
func Translate(v Vec2) Affine {
	return Affine{1, 0, 0, 1, v.X, v.Y}
}

// MapRect returns the transform that maps src onto dst. Either rectangle may
// have a negative width or height, which mirrors the corresponding axis; a
// y-up view mapped onto a y-down raster is written as dst{0, h, w, 0}.
func MapRect(src, dst Rect) Affine {
	sx := dst.Width() / src.Width()
	sy := dst.Height() / src.Height()
	return Translate(Vec(-src.X0, -src.Y0)).
		ThenScale(sx, sy).
		ThenTranslate(Vec(dst.X0, dst.Y0))
}

func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		aff.N0*o.N0 + aff.N2*o.N1,
		aff.N1*o.N0 + aff.N3*o.N1,
		aff.N0*o.N2 + aff.N2*o.N3,
		aff.N1*o.N2 + aff.N3*o.N3,
		aff.N0*o.N4 + aff.N2*o.N5 + aff.N4,
		aff.N1*o.N4 + aff.N3*o.N5 + aff.N5,
	}
}

// ThenScale creates aff followed by a scaling.
//
// Equivalent to "Scale(x, y) * aff"
func (aff Affine) ThenScale(x, y float64) Affine {
	return Scale(x, y).Mul(aff)
}

// ThenTranslate creates aff followed by a translation.
//
// Equivalent to "Translate(v) * aff"
func (aff Affine) ThenTranslate(v Vec2) Affine {
	aff.N4 += v.X
	aff.N5 += v.Y
	return aff
}

// Determinant computes the determinant of the transform.
func (aff Affine) Determinant() float64 {
	return aff.N0*aff.N3 - aff.N1*aff.N2
}

// Invert computes the inverse transform.
//
// Produces NaN values when the determinant is zero.
func (aff Affine) Invert() Affine {
	invDet := 1 / aff.Determinant()
	return Affine{
		invDet * aff.N3,
		invDet * -aff.N1,
		invDet * -aff.N2,
		invDet * aff.N0,
		invDet * (aff.N2*aff.N5 - aff.N3*aff.N4),
		invDet * (aff.N1*aff.N4 - aff.N0*aff.N5),
	}
}
