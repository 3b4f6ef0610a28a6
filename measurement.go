package pagedraw

// Unit conversion helpers. Page geometry is measured in points:
// 1 inch = 72 pt, 1 cm = 72/2.54 pt.

const (
	pointsPerInch       = 72.0
	pointsPerCentimeter = pointsPerInch / 2.54
	pointsPerMillimeter = pointsPerInch / 25.4
)

// Inch converts inches to points.
func Inch(n float64) float64 {
	return n * pointsPerInch
}

// Centimeter converts centimeters to points.
func Centimeter(n float64) float64 {
	return n * pointsPerCentimeter
}

// Millimeter converts millimeters to points.
func Millimeter(n float64) float64 {
	return n * pointsPerMillimeter
}

// Pixel converts pixels at the given resolution to points.
func Pixel(n, dpi float64) float64 {
	if dpi <= 0 {
		dpi = 96
	}
	return n * pointsPerInch / dpi
}

// PointToInch converts points to inches.
func PointToInch(pt float64) float64 {
	return pt / pointsPerInch
}

// PointToCentimeter converts points to centimeters.
func PointToCentimeter(pt float64) float64 {
	return pt / pointsPerCentimeter
}

// PointToMillimeter converts points to millimeters.
func PointToMillimeter(pt float64) float64 {
	return pt / pointsPerMillimeter
}

// PointToPixel converts points to pixels at the given resolution.
func PointToPixel(pt, dpi float64) float64 {
	if dpi <= 0 {
		dpi = 96
	}
	return pt * dpi / pointsPerInch
}
