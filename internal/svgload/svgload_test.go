package svgload

import (
	"strings"
	"testing"

	"github.com/osuushi/genart/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePoints(t *testing.T) {
	t.Run("comma pairs", func(t *testing.T) {
		points, err := ParsePoints("0,0 10,0 10,5.5")
		require.NoError(t, err)
		assert.Equal(t, []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5.5}}, points)
	})

	t.Run("mixed separators", func(t *testing.T) {
		points, err := ParsePoints("  1 2,3\n4 , -5e1 6 ")
		require.NoError(t, err)
		assert.Equal(t, []geom.Point{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: -50, Y: 6}}, points)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := ParsePoints("1,2 3")
		assert.Error(t, err)
		_, err = ParsePoints("1,2 3,y")
		assert.ErrorContains(t, err, `invalid y value "y"`)
	})
}

func TestPolygons(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">
  <g>
    <polygon points="0,0 4,0 4,4" />
  </g>
  <polygon points="5,5 9,5 9,9 5,9" style="fill: red" />
</svg>`

	polygons, err := Polygons(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, polygons, 2)
	assert.Len(t, polygons[0].Points, 3)
	assert.Len(t, polygons[1].Points, 4)
	assert.Equal(t, geom.Point{X: 9, Y: 9}, polygons[1].Points[2])
}
