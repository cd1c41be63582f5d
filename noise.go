package genart

import (
	"math/rand/v2"

	fastnoiselite "github.com/furui/fastnoiselite-go"
	"github.com/osuushi/genart/geom"
)

// A smooth scalar field over the plane, for perturbing shapes.
type Noise struct {
	noise *fastnoiselite.FastNoiseLite
}

// NewNoise seeds a value noise field from rng. Frequency is in cycles per unit
// of distance: use roughly the inverse of the feature size you want.
func NewNoise(rng *rand.Rand, frequency float64) *Noise {
	noise := fastnoiselite.NewNoise()
	noise.SetNoiseType(fastnoiselite.NoiseTypeValueCubic)
	noise.Seed = rng.Int32()
	noise.Frequency = frequency
	return &Noise{noise: noise}
}

// At samples the field. Values are roughly in [-1, 1].
func (n *Noise) At(p geom.Point) float64 {
	return float64(n.noise.GetNoise2D(fastnoiselite.FNLfloat(p.X), fastnoiselite.FNLfloat(p.Y)))
}

// Displace moves p by the field sampled at two decorrelated offsets, scaled
// by amount.
func (n *Noise) Displace(p geom.Point, amount float64) geom.Point {
	dx := n.At(p)
	dy := n.At(p.Add(geom.Point{X: 1013.7, Y: -719.3}))
	return p.Add(geom.Point{X: dx, Y: dy}.Mulf(amount))
}
