package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/golangdaddy/roadkill/pkg/background"
	"github.com/golangdaddy/roadkill/pkg/campaign"
	"github.com/golangdaddy/roadkill/pkg/terrain"
	"github.com/golangdaddy/roadkill/pkg/ui"
	"github.com/golangdaddy/roadkill/pkg/upgrade"
	"github.com/golangdaddy/roadkill/pkg/vehicle"
	"github.com/golangdaddy/roadkill/pkg/zombie"
)

// MPHPerPixelPerFrame converts car speed to the speedometer reading.
// At 60 FPS the 9 px/frame cap reads as roughly 110 MPH.
const MPHPerPixelPerFrame = 12.5

const columnWidth = 4 // terrain is drawn in vertical strips this wide

var (
	groundColor     = color.RGBA{110, 85, 55, 255}
	groundDarkColor = color.RGBA{80, 60, 40, 255}
	lightColor      = color.RGBA{70, 170, 90, 255}
	heavyColor      = color.RGBA{170, 70, 70, 255}
	healthBg        = color.RGBA{80, 0, 0, 255}
	healthFg        = color.RGBA{200, 0, 0, 255}
	fuelBg          = color.RGBA{60, 50, 0, 255}
	fuelFg          = color.RGBA{230, 190, 40, 255}
)

// World is everything the renderer needs for one frame
type World struct {
	Ground    terrain.Ground
	Car       *vehicle.Car
	Zombies   []*zombie.Zombie
	Behaviors []upgrade.Behavior
	Egg       *campaign.EasterEgg
	Tier      int
	Darkness  uint8
}

// Renderer draws the side-scrolling world around the car
type Renderer struct {
	width, height int
	backdrops     *background.Generator
	backdrop      *ebiten.Image
	backdropTier  int
	carSprite     *ebiten.Image
}

// NewRenderer creates a renderer for the given screen size
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		width:     width,
		height:    height,
		backdrops: background.NewGenerator(width, height),
		carSprite: newCarSprite(vehicle.DefaultWidth, vehicle.DefaultHeight),
	}
}

// newCarSprite paints a side-on pickup truck
func newCarSprite(w, h int) *ebiten.Image {
	img := ebiten.NewImage(w, h)

	body := color.RGBA{220, 20, 20, 255}
	cabin := color.RGBA{180, 15, 15, 255}
	window := color.RGBA{100, 180, 220, 255}
	wheel := color.RGBA{40, 40, 40, 255}
	light := color.RGBA{255, 255, 100, 255}

	for y := h / 2; y < h-4; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, body)
		}
	}
	for y := 2; y < h/2; y++ {
		for x := w / 4; x < w*3/5; x++ {
			img.Set(x, y, cabin)
		}
	}
	for y := 4; y < h/2; y++ {
		for x := w/4 + 3; x < w*3/5-2; x++ {
			img.Set(x, y, window)
		}
	}
	for _, cx := range []int{w / 5, w * 4 / 5} {
		for y := h - 7; y < h; y++ {
			for x := cx - 3; x <= cx+3; x++ {
				img.Set(x, y, wheel)
			}
		}
	}
	for y := h / 2; y < h/2+3; y++ {
		img.Set(w-1, y, light)
		img.Set(w-2, y, light)
	}
	return img
}

// Draw renders the world with the camera anchored on the car
func (r *Renderer) Draw(screen *ebiten.Image, w World) {
	camX := w.Car.X

	r.drawBackdrop(screen, w.Tier, camX)
	r.drawGround(screen, w.Ground, camX)
	if w.Egg != nil && !w.Egg.Collected {
		r.drawEgg(screen, w.Egg, w.Ground, camX)
	}
	for _, z := range w.Zombies {
		r.drawZombie(screen, z, w.Ground, camX)
	}
	r.drawCar(screen, w.Car)
	for _, b := range w.Behaviors {
		if s, ok := b.(upgrade.Shooter); ok {
			for _, p := range s.Projectiles() {
				rect := p.Rect()
				vector.DrawFilledRect(screen, float32(rect.Min.X), float32(rect.Min.Y),
					float32(rect.Dx()), float32(rect.Dy()), s.Tint(), false)
			}
		}
	}

	if w.Darkness > 0 {
		vector.DrawFilledRect(screen, 0, 0, float32(r.width), float32(r.height), color.RGBA{0, 0, 0, w.Darkness}, false)
	}
}

func (r *Renderer) drawBackdrop(screen *ebiten.Image, tier int, camX float64) {
	if r.backdrop == nil || r.backdropTier != tier {
		r.backdrop = r.backdrops.Generate(tier, int64(tier))
		r.backdropTier = tier
	}
	// slow parallax, tiled twice across the screen
	offset := -math.Mod(camX*0.3, float64(r.width))
	if offset > 0 {
		offset -= float64(r.width)
	}
	for i := 0; i < 2; i++ {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(offset+float64(i*r.width), 0)
		screen.DrawImage(r.backdrop, op)
	}
}

func (r *Renderer) drawGround(screen *ebiten.Image, ground terrain.Ground, camX float64) {
	for sx := 0; sx < r.width; sx += columnWidth {
		worldX := camX + float64(sx-vehicle.Anchor)
		top := float32(ground.Height(worldX))
		vector.DrawFilledRect(screen, float32(sx), top, columnWidth, float32(r.height)-top, groundColor, false)
		vector.DrawFilledRect(screen, float32(sx), top, columnWidth, 4, groundDarkColor, false)
	}
}

func (r *Renderer) drawEgg(screen *ebiten.Image, egg *campaign.EasterEgg, ground terrain.Ground, camX float64) {
	rect := egg.Rect(ground)
	sx := float32(egg.X-camX) + vehicle.Anchor
	if sx < -float32(egg.Size) || sx > float32(r.width+egg.Size) {
		return
	}
	cx := sx + float32(egg.Size)/2
	cy := float32(rect.Min.Y) + float32(egg.Size)/2
	vector.DrawFilledCircle(screen, cx, cy, float32(egg.Size)/2, color.RGBA{255, 100, 255, 255}, true)
	vector.StrokeCircle(screen, cx, cy, float32(egg.Size)/2, 3, color.RGBA{255, 255, 100, 255}, true)
}

func (r *Renderer) drawZombie(screen *ebiten.Image, z *zombie.Zombie, ground terrain.Ground, camX float64) {
	rect := z.ScreenRect(camX, ground)
	if rect.Max.X < 0 || rect.Min.X > r.width {
		return
	}

	c := lightColor
	if z.Kind == zombie.Heavy {
		c = heavyColor
	}
	if z.Dying {
		// fade out over the death animation
		fade := 1 - float64(z.DeathTimer)/zombie.DeathDuration
		c.A = uint8(255 * max(0, fade))
		c.R = uint8(float64(c.R) * fade)
		c.G = uint8(float64(c.G) * fade)
		c.B = uint8(float64(c.B) * fade)
	}

	x, y := float32(rect.Min.X), float32(rect.Min.Y)
	w, h := float32(rect.Dx()), float32(rect.Dy())
	head := w * 0.6
	vector.DrawFilledRect(screen, x+(w-head)/2, y, head, head, c, false)
	vector.DrawFilledRect(screen, x, y+head, w, h-head, c, false)

	if !z.Dying && z.Health < z.MaxHealth {
		ui.DrawBar(screen, float64(x), float64(y)-8, float64(w), 4, z.Health/z.MaxHealth, healthBg, healthFg)
	}
}

func (r *Renderer) drawCar(screen *ebiten.Image, car *vehicle.Car) {
	w, h := float64(car.Width), float64(car.Height)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(vehicle.DefaultWidth), h/float64(vehicle.DefaultHeight))
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Rotate(-car.Angle * math.Pi / 180)
	op.GeoM.Translate(float64(vehicle.Anchor), car.Y+h/2)
	screen.DrawImage(r.carSprite, op)
}

// HUD holds the ledger values shown over the world
type HUD struct {
	Money    int
	Kills    int
	Level    int
	Distance float64
	Required float64
	Cheat    bool
	Warning  string
}

// DrawHUD renders health, fuel, speed, ammo and progress
func (r *Renderer) DrawHUD(screen *ebiten.Image, car *vehicle.Car, behaviors []upgrade.Behavior, hud HUD) {
	ui.DrawTextAt(screen, "HEALTH", 20, 24, 14, ui.ColorText)
	ui.DrawBar(screen, 90, 16, 200, 16, car.Health/car.MaxHealth, healthBg, healthFg)
	ui.DrawTextAt(screen, "FUEL", 20, 48, 14, ui.ColorText)
	ui.DrawBar(screen, 90, 40, 200, 16, car.Fuel/car.MaxFuel, fuelBg, fuelFg)

	ui.DrawTextAt(screen, fmt.Sprintf("%.0f MPH", math.Abs(car.Speed)*MPHPerPixelPerFrame), 20, 76, 16, ui.ColorText)

	y := 100.0
	for _, b := range behaviors {
		if a, ok := b.(upgrade.Armed); ok {
			ui.DrawTextAt(screen, fmt.Sprintf("AMMO %d/%d", a.Ammo(), a.MaxAmmo()), 20, y, 16, ui.ColorHighlight)
			y += 22
		}
	}

	right := float64(r.width) - 240
	ui.DrawTextAt(screen, fmt.Sprintf("MONEY $%d", hud.Money), right, 24, 16, ui.ColorText)
	ui.DrawTextAt(screen, fmt.Sprintf("KILLS %d", hud.Kills), right, 46, 16, ui.ColorText)
	if hud.Level > 0 {
		ui.DrawTextAt(screen, fmt.Sprintf("LEVEL %d", hud.Level), right, 68, 16, ui.ColorText)
	}
	if hud.Required > 0 {
		ui.DrawBar(screen, float64(r.width)/2-200, 12, 400, 10, hud.Distance/hud.Required,
			color.RGBA{40, 40, 40, 200}, color.RGBA{100, 255, 100, 255})
		ui.DrawText(screen, fmt.Sprintf("%.0f / %.0f m", max(0, hud.Distance), hud.Required),
			float64(r.width)/2, 34, 14, ui.ColorText)
	}
	if hud.Cheat {
		ui.DrawTextAt(screen, "CHEAT MODE", right, 90, 16, ui.ColorHighlight)
	}
	if hud.Warning != "" {
		ui.DrawText(screen, hud.Warning, float64(r.width)/2, float64(r.height)/3, 24, ui.ColorWarning)
	}
}
