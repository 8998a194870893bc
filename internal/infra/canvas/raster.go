// Package canvas rasterizes dashboard drawing calls with gg.
package canvas

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"
	"sync"

	"github.com/fogleman/gg"

	"github.com/yanqian/trafficai/internal/domain/dashboard"
)

var namedColors = map[string]color.RGBA{
	"black":  {0, 0, 0, 255},
	"white":  {255, 255, 255, 255},
	"green":  {0, 128, 0, 255},
	"orange": {255, 165, 0, 255},
	"red":    {255, 0, 0, 255},
}

// Raster is a dashboard.Canvas backed by a gg drawing context.
type Raster struct {
	mu sync.RWMutex
	dc *gg.Context
}

// NewRaster allocates a blank surface.
func NewRaster(width, height int) *Raster {
	r := &Raster{}
	r.SetSize(width, height)
	return r
}

// SetSize reallocates the surface, discarding its contents.
func (r *Raster) SetSize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dc = gg.NewContext(max(width, 0), max(height, 0))
	r.dc.SetLineCapButt()
}

// Size reports the surface dimensions.
func (r *Raster) Size() (int, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dc.Width(), r.dc.Height()
}

// FillRect paints an axis aligned rectangle.
func (r *Raster) FillRect(x, y, w, h float64, fill string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dc.SetColor(ParseColor(fill))
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.Fill()
}

// StrokeLine paints a segment of the given width with butt caps.
func (r *Raster) StrokeLine(x1, y1, x2, y2, width float64, stroke string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dc.SetColor(ParseColor(stroke))
	r.dc.SetLineWidth(width)
	r.dc.DrawLine(x1, y1, x2, y2)
	r.dc.Stroke()
}

// FillCircle paints a filled disc.
func (r *Raster) FillCircle(cx, cy, radius float64, fill string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dc.SetColor(ParseColor(fill))
	r.dc.DrawCircle(cx, cy, radius)
	r.dc.Fill()
}

// At returns the colour of one pixel.
func (r *Raster) At(x, y int) color.RGBA {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return color.RGBAModel.Convert(r.dc.Image().At(x, y)).(color.RGBA)
}

// PNG encodes a copy of the current surface so drawing can continue meanwhile.
func (r *Raster) PNG() ([]byte, error) {
	r.mu.RLock()
	src := r.dc.Image()
	frame := image.NewRGBA(src.Bounds())
	draw.Draw(frame, frame.Bounds(), src, src.Bounds().Min, draw.Src)
	r.mu.RUnlock()

	var buf bytes.Buffer
	if err := gg.NewContextForRGBA(frame).EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseColor understands the CSS names used by the dashboard plus #rgb and
// #rrggbb. Unknown values render black.
func ParseColor(raw string) color.RGBA {
	value := strings.ToLower(strings.TrimSpace(raw))
	if c, ok := namedColors[value]; ok {
		return c
	}
	hex := strings.TrimPrefix(value, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 || !strings.HasPrefix(value, "#") {
		return namedColors["black"]
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return namedColors["black"]
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 255}
}

var _ dashboard.Canvas = (*Raster)(nil)
