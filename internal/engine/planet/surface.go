package planet

import (
	"image"
	"image/color"

	"github.com/soycan-sim/space-game/pkg/math"
)

// surfaceDetail is the octave count for baked color lookups.
const surfaceDetail = 4

// BakeSurfaceTexture rasterizes the color noise field into a size×size RGBA
// blend of the planet's low and high colors. The raster spans one cube face
// in block coordinates; every face samples the same blend map, so bake once
// per planet, not per rebuild.
func (p *Planet) BakeSurfaceTexture(size int) *image.RGBA {
	if size < 1 {
		size = 1
	}
	den := float32(size - 1)
	if den <= 0 {
		den = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			u := float32(x)/den*2 - 1
			v := float32(y)/den*2 - 1
			t := clamp01(p.color.Sample(math.Vec3{X: u, Y: 1, Z: v}, surfaceDetail))
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(lerpf(p.lowColor[0], p.highColor[0], t) * 255),
				G: uint8(lerpf(p.lowColor[1], p.highColor[1], t) * 255),
				B: uint8(lerpf(p.lowColor[2], p.highColor[2], t) * 255),
				A: 255,
			})
		}
	}
	return img
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerpf(a, b, t float32) float32 {
	return a + (b-a)*t
}
