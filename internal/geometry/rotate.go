package geometry

import "math"

// NormalizeDegrees folds any angle into [0, 360). NaN and infinities map to 0.
func NormalizeDegrees(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	deg = math.Mod(deg, 360)
	if deg <= 0 {
		deg += 360
	}
	if deg >= 360 {
		return 0
	}
	return deg
}

// RotatedBoundingBox returns the size of the axis-aligned box enclosing a
// width x height rectangle rotated by deg degrees about its center.
//
// Every full quarter turn swaps width and height before the residual angle is
// applied, so the result for deg+90 is exactly the result for deg with the
// sides swapped.
func RotatedBoundingBox(width, height int, deg float64) (int, int) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}

	deg = NormalizeDegrees(deg)
	quarter := int(deg / 90)
	if quarter%2 == 1 {
		width, height = height, width
	}

	residual := deg - float64(quarter)*90
	if residual == 0 {
		return width, height
	}

	var (
		w     = float64(width)
		h     = float64(height)
		theta = residual * math.Pi / 180
		r     = math.Sqrt(w*w+h*h) / 2
		chord = 2 * math.Sin(theta/2) * r
		alpha = (math.Pi - theta) / 2
	)

	deltaW := math.Atan(h / w)
	deltaH := math.Atan(w / h)

	growW := int(chord * math.Cos(math.Pi-alpha-deltaW))
	growH := int(chord * math.Cos(math.Pi-alpha-deltaH))

	return width + 2*growW, height + 2*growH
}
