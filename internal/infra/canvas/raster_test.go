package canvas

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	require.Equal(t, color.RGBA{0xe0, 0xe0, 0xe0, 255}, ParseColor("#e0e0e0"))
	require.Equal(t, color.RGBA{0x33, 0x33, 0x33, 255}, ParseColor("#333"))
	require.Equal(t, color.RGBA{255, 165, 0, 255}, ParseColor("Orange"))
	require.Equal(t, color.RGBA{0, 0, 0, 255}, ParseColor("not-a-colour"))
}

func TestRasterDrawing(t *testing.T) {
	r := NewRaster(500, 300)
	w, h := r.Size()
	require.Equal(t, 500, w)
	require.Equal(t, 300, h)

	r.FillRect(0, 0, 500, 300, "#e0e0e0")
	r.StrokeLine(50, 0, 50, 300, 5, "#333")
	r.FillCircle(200, 100, 8, "red")

	require.Equal(t, ParseColor("#e0e0e0"), r.At(10, 10))
	require.Equal(t, ParseColor("#333"), r.At(50, 150))
	require.Equal(t, ParseColor("#333"), r.At(48, 150))
	require.Equal(t, ParseColor("#e0e0e0"), r.At(53, 150))
	require.Equal(t, ParseColor("red"), r.At(200, 100))
	require.Equal(t, ParseColor("red"), r.At(205, 100))
	require.Equal(t, ParseColor("#e0e0e0"), r.At(209, 100))
}

func TestRasterClipsAndEncodes(t *testing.T) {
	r := NewRaster(20, 10)
	r.FillCircle(-2, -2, 8, "green")
	r.FillRect(15, 5, 100, 100, "orange")

	data, err := r.PNG()
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 20, img.Bounds().Dx())
	require.Equal(t, 10, img.Bounds().Dy())
	require.Equal(t, ParseColor("orange"), r.At(19, 9))
	require.Equal(t, ParseColor("green"), r.At(0, 0))
}

func TestRasterStrokeUsesButtCaps(t *testing.T) {
	r := NewRaster(40, 20)
	r.FillRect(0, 0, 40, 20, "white")
	r.StrokeLine(10, 10, 30, 10, 4, "#333")

	require.Equal(t, ParseColor("#333"), r.At(10, 10))
	require.Equal(t, ParseColor("#333"), r.At(29, 9))
	require.Equal(t, ParseColor("white"), r.At(30, 10))
	require.Equal(t, ParseColor("white"), r.At(9, 10))
	require.Equal(t, ParseColor("white"), r.At(20, 13))
}
