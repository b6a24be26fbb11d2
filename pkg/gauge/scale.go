package gauge

import (
	"math"
	"strconv"

	"github.com/roffe/dialgauge/pkg/common"
)

// ScaleDegrees maps value's position within [start, end] onto the usable
// sweep of the dial, a full circle minus the 2*offset gap at the bottom.
// Values outside the scale are not clamped, the caller decides what an
// out-of-range value looks like.
func ScaleDegrees(value, start, end, offset float64) (float64, error) {
	for _, in := range [...]struct {
		field string
		v     float64
	}{
		{AttrValue, value},
		{AttrScaleStart, start},
		{AttrScaleEnd, end},
		{AttrScaleOffset, offset},
	} {
		if math.IsNaN(in.v) || math.IsInf(in.v, 0) {
			return 0, &ConfigurationError{Field: in.field, Input: f64s(in.v), Err: ErrNotFinite}
		}
	}
	if end == start {
		return 0, &ConfigurationError{Field: "scale", Input: f64s(start), Err: ErrDegenerateScale}
	}
	deg := ((value - start) / (end - start)) * (common.FullCircle - 2*offset)
	if math.IsInf(deg, 0) || math.IsNaN(deg) {
		return 0, &ConfigurationError{Field: AttrValue, Input: f64s(value), Err: ErrNotFinite}
	}
	return deg, nil
}

func f64s(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
