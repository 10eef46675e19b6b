package background

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
)

// Generator creates side-on backdrop textures
type Generator struct {
	Width  int
	Height int
}

// NewGenerator creates a new background generator
func NewGenerator(width, height int) *Generator {
	return &Generator{
		Width:  width,
		Height: height,
	}
}

// skies holds the top and horizon colors per terrain tier
var skies = [][2]color.RGBA{
	{{90, 150, 210, 255}, {200, 220, 235, 255}},
	{{110, 130, 170, 255}, {220, 190, 160, 255}},
	{{80, 70, 110, 255}, {200, 120, 90, 255}},
	{{40, 40, 70, 255}, {130, 80, 80, 255}},
	{{15, 15, 30, 255}, {70, 40, 50, 255}},
}

// Generate paints a tileable backdrop for a terrain tier: sky gradient, a
// ruined skyline and dead trees. Higher tiers are darker.
func (g *Generator) Generate(tier int, seed int64) *ebiten.Image {
	return ebiten.NewImageFromImage(g.Paint(tier, seed))
}

// Paint is Generate on a plain RGBA image
func (g *Generator) Paint(tier int, seed int64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	rng := rand.New(rand.NewSource(seed))

	sky := skies[min(max(tier, 1), len(skies))-1]
	for y := 0; y < g.Height; y++ {
		t := float64(y) / float64(g.Height)
		c := lerp(sky[0], sky[1], t)
		for x := 0; x < g.Width; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	// skyline silhouettes, denser and taller on later tiers
	horizon := g.Height * 2 / 3
	building := color.RGBA{
		uint8(max(0, 60-tier*8)),
		uint8(max(0, 60-tier*8)),
		uint8(max(0, 75-tier*8)),
		255,
	}
	for x := 0; x < g.Width; {
		w := 30 + rng.Intn(50)
		h := 40 + rng.Intn(60+tier*20)
		g.fillRect(img, x, horizon-h, w, h, building)
		// broken windows
		for wy := horizon - h + 6; wy < horizon-6; wy += 12 {
			for wx := x + 5; wx < x+w-5; wx += 10 {
				if rng.Float64() < 0.15 {
					g.fillRect(img, wx, wy, 4, 6, color.RGBA{200, 180, 90, 255})
				}
			}
		}
		x += w + rng.Intn(20)
	}

	for i := 0; i < 6+tier*2; i++ {
		g.drawTree(img, rng.Intn(g.Width), horizon+rng.Intn(g.Height-horizon), rng)
	}
	return img
}

// drawTree draws a bare, leafless tree
func (g *Generator) drawTree(img *image.RGBA, x, y int, rng *rand.Rand) {
	height := 40 + rng.Intn(30)
	trunkColor := color.RGBA{50, 35, 25, 255}

	trunkW := 3 + rng.Intn(3)
	g.fillRect(img, x-trunkW/2, y-height, trunkW, height, trunkColor)

	// branches fan out from the upper half
	branches := 3 + rng.Intn(3)
	for b := 0; b < branches; b++ {
		by := y - height/2 - rng.Intn(height/2)
		angle := -math.Pi/2 + (rng.Float64()-0.5)*2.2
		length := 10 + rng.Intn(15)
		for s := 0; s < length; s++ {
			px := x + int(float64(s)*math.Cos(angle))
			py := by + int(float64(s)*math.Sin(angle))
			g.set(img, px, py, trunkColor)
		}
	}
}

func (g *Generator) fillRect(img *image.RGBA, x, y, w, h int, c color.RGBA) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			g.set(img, px, py, c)
		}
	}
}

func (g *Generator) set(img *image.RGBA, x, y int, c color.RGBA) {
	if x >= 0 && x < g.Width && y >= 0 && y < g.Height {
		img.SetRGBA(x, y, c)
	}
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(p, q uint8) uint8 {
		return uint8(float64(p) + (float64(q)-float64(p))*t)
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 255}
}
