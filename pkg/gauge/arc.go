package gauge

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/roffe/dialgauge/pkg/common"
)

type Point struct {
	X, Y float64
}

// Arc is a single SVG elliptical arc segment with equal radii, drawn from
// From to To with the sweep flag cleared.
type Arc struct {
	From     Point
	To       Point
	Radius   float64
	LargeArc bool
}

// PolarToCartesian converts an angle on a circle to a point. 0° points up
// and angles grow clockwise in screen coordinates.
func PolarToCartesian(centerX, centerY, radius, angleInDegrees float64) Point {
	angleInRadians := (angleInDegrees - common.QuarterCircle) * math.Pi / common.HalfCircle
	return Point{
		X: centerX + (radius * math.Cos(angleInRadians)),
		Y: centerY + (radius * math.Sin(angleInRadians)),
	}
}

// ArcSegment computes the arc between two angles. End angles of 180° or
// more are pulled back to 179.99° so the large-arc flag never has to pick
// between two half circles.
func ArcSegment(x, y, radius, startAngle, endAngle float64) Arc {
	if endAngle >= common.HalfCircle {
		endAngle = common.ArcAngleLimit
	}
	return Arc{
		From:     PolarToCartesian(x, y, radius, endAngle),
		To:       PolarToCartesian(x, y, radius, startAngle),
		Radius:   radius,
		LargeArc: endAngle-startAngle > common.HalfCircle,
	}
}

// DescribeArc returns the SVG path data for ArcSegment.
func DescribeArc(x, y, radius, startAngle, endAngle float64) string {
	return ArcSegment(x, y, radius, startAngle, endAngle).String()
}

func (a Arc) String() string {
	largeArcFlag := "0"
	if a.LargeArc {
		largeArcFlag = "1"
	}
	return strings.Join([]string{
		"M", f64s(a.From.X), f64s(a.From.Y),
		"A", f64s(a.Radius), f64s(a.Radius), "0", largeArcFlag, "0", f64s(a.To.X), f64s(a.To.Y),
	}, " ")
}

// ParseArc parses path data in the form produced by Arc.String.
func ParseArc(d string) (Arc, error) {
	f := strings.Fields(d)
	if len(f) != 11 || f[0] != "M" || f[3] != "A" {
		return Arc{}, fmt.Errorf("%w: %q", ErrMalformedPath, d)
	}
	if f[6] != "0" || f[8] != "0" {
		return Arc{}, fmt.Errorf("%w: rotation and sweep must be 0: %q", ErrMalformedPath, d)
	}

	var nums [6]float64
	for i, idx := range [...]int{1, 2, 4, 5, 9, 10} {
		v, err := strconv.ParseFloat(f[idx], 64)
		if err != nil {
			return Arc{}, fmt.Errorf("%w: %v", ErrMalformedPath, err)
		}
		nums[i] = v
	}
	if nums[2] != nums[3] {
		return Arc{}, fmt.Errorf("%w: radii differ: %q", ErrMalformedPath, d)
	}

	var large bool
	switch f[7] {
	case "0":
	case "1":
		large = true
	default:
		return Arc{}, fmt.Errorf("%w: large-arc flag %q", ErrMalformedPath, f[7])
	}

	return Arc{
		From:     Point{X: nums[0], Y: nums[1]},
		To:       Point{X: nums[4], Y: nums[5]},
		Radius:   nums[2],
		LargeArc: large,
	}, nil
}
