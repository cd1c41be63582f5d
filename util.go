package genart

import (
	"cmp"

	"github.com/fogleman/ease"
	"github.com/osuushi/genart/partial"
)

// Clamp x to [low, high]. NaN passes through.
func Clamp[T cmp.Ordered](x, low, high T) T {
	if low > high {
		panic("genart: clamp with low > high")
	}
	return partial.Max(low, partial.Min(high, x))
}

// MapRange linearly maps x from [inLow, inHigh] onto [outLow, outHigh]. Values
// outside the input range extrapolate.
func MapRange(x, inLow, inHigh, outLow, outHigh float64) float64 {
	return outLow + (x-inLow)*(outHigh-outLow)/(inHigh-inLow)
}

// An easing curve maps [0, 1] onto [0, 1], starting at 0 and ending at 1.
// github.com/fogleman/ease has the usual ones.
type Easing func(t float64) float64

// MapRangeEased is MapRange with the position in the input range shaped by
// easing. Input outside the range is clamped to it first.
func MapRangeEased(x, inLow, inHigh, outLow, outHigh float64, easing Easing) float64 {
	t := Clamp((x-inLow)/(inHigh-inLow), 0, 1)
	return outLow + easing(t)*(outHigh-outLow)
}

// SmoothStep is 0 below low, 1 above high, and eases in and out between.
func SmoothStep(x, low, high float64) float64 {
	return MapRangeEased(x, low, high, 0, 1, ease.InOutCubic)
}
