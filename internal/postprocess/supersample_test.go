package postprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownsampleNoopWhenSmall(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 5))
	assert.Same(t, img, Downsample(img, 10, 5))
	assert.Same(t, img, Downsample(img, 20, 20))
}

func TestDownsampleSize(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 48))
	out := Downsample(img, 32, 24)
	assert.Equal(t, image.Rect(0, 0, 32, 24), out.Bounds())
}

func TestDownsampleKeepsEdgeColor(t *testing.T) {
	// Left half opaque red, right half transparent black.
	img := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, A: 255})
		}
	}

	out := Downsample(img, 20, 10)
	require.Equal(t, 20, out.Bounds().Dx())

	inside := out.NRGBAAt(2, 5)
	assert.Equal(t, uint8(255), inside.A)
	assert.InDelta(t, 200, int(inside.R), 2)

	// The edge pixel is partly transparent but keeps its hue.
	edge := out.NRGBAAt(10, 5)
	if edge.A > 1 {
		assert.InDelta(t, 200, int(edge.R), 8)
		assert.Zero(t, edge.G)
	}
	assert.Equal(t, uint8(0), out.NRGBAAt(17, 5).A)
}
