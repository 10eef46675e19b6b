package replay

import (
	"fmt"

	"github.com/harbdog/raycaster-go/geom"
	"github.com/jinzhu/copier"

	"github.com/golangdaddy/roadkill/pkg/vehicle"
	"github.com/golangdaddy/roadkill/pkg/zombie"
)

// Playback speed bounds
const (
	MinSpeed = 0.1
	MaxSpeed = 5.0
)

// CarState is the recorded part of the car
type CarState struct {
	X         float64 `json:"world_x"`
	Y         float64 `json:"y"`
	Speed     float64 `json:"speed"`
	VSpeed    float64 `json:"vspeed"`
	Angle     float64 `json:"angle"`
	Health    float64 `json:"health"`
	Fuel      float64 `json:"fuel"`
	MaxHealth float64 `json:"max_health"`
	MaxFuel   float64 `json:"max_fuel"`
}

// ZombieState is the recorded part of a zombie
type ZombieState struct {
	Kind       zombie.Kind `json:"type"`
	X          float64     `json:"x"`
	Alive      bool        `json:"alive"`
	Dying      bool        `json:"dying"`
	DeathTimer int         `json:"death_timer"`
	Health     float64     `json:"health"`
}

// Frame is one tick of a run
type Frame struct {
	Car      CarState      `json:"car"`
	Zombies  []ZombieState `json:"zombies"`
	Distance float64       `json:"distance"`
	Money    int           `json:"money"`
}

// Apply writes the recorded car state onto c
func (s CarState) Apply(c *vehicle.Car) error {
	return copier.Copy(c, &s)
}

// BuildZombies rebuilds zombie values from the frame for drawing
func (f *Frame) BuildZombies() ([]*zombie.Zombie, error) {
	out := make([]*zombie.Zombie, 0, len(f.Zombies))
	for i := range f.Zombies {
		z := &zombie.Zombie{}
		if err := copier.Copy(z, &f.Zombies[i]); err != nil {
			return nil, fmt.Errorf("zombie %d: %w", i, err)
		}
		out = append(out, z)
	}
	return out, nil
}

// Recorder captures frames while recording
type Recorder struct {
	frames    []Frame
	recording bool
	limit     int
}

// NewRecorder creates a recorder. A positive limit keeps only the newest frames.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

// Start clears previous frames and begins recording
func (r *Recorder) Start() {
	r.frames = r.frames[:0]
	r.recording = true
}

// Stop ends recording and keeps the frames
func (r *Recorder) Stop() {
	r.recording = false
}

// Recording reports whether frames are being captured
func (r *Recorder) Recording() bool {
	return r.recording
}

// Record captures the current tick. It does nothing when not recording.
func (r *Recorder) Record(car *vehicle.Car, zombies []*zombie.Zombie, distance float64, money int) error {
	if !r.recording {
		return nil
	}

	f := Frame{Distance: distance, Money: money}
	if err := copier.Copy(&f.Car, car); err != nil {
		return fmt.Errorf("recording car: %w", err)
	}
	f.Zombies = make([]ZombieState, len(zombies))
	for i, z := range zombies {
		if err := copier.Copy(&f.Zombies[i], z); err != nil {
			return fmt.Errorf("recording zombie %d: %w", i, err)
		}
	}

	if r.limit > 0 && len(r.frames) >= r.limit {
		copy(r.frames, r.frames[1:])
		r.frames = r.frames[:len(r.frames)-1]
	}
	r.frames = append(r.frames, f)
	return nil
}

// Frames returns the recorded frames
func (r *Recorder) Frames() []Frame {
	return r.frames
}

// HasRecording reports whether any frame was captured
func (r *Recorder) HasRecording() bool {
	return len(r.frames) > 0
}

// Player steps through recorded frames
type Player struct {
	frames  []Frame
	current int
	playing bool
	speed   float64
	carry   float64
}

// NewPlayer creates a player at normal speed
func NewPlayer(frames []Frame) *Player {
	return &Player{frames: frames, speed: 1}
}

// Start rewinds and begins playback
func (p *Player) Start() {
	p.current = 0
	p.carry = 0
	p.playing = true
}

// Stop pauses playback
func (p *Player) Stop() {
	p.playing = false
}

// Playing reports whether playback is running
func (p *Player) Playing() bool {
	return p.playing
}

// Current returns the frame under the playhead, or false with no frames
func (p *Player) Current() (*Frame, bool) {
	if p.current < len(p.frames) {
		return &p.frames[p.current], true
	}
	return nil, false
}

// Index returns the playhead position
func (p *Player) Index() int {
	return p.current
}

// Advance moves one frame forward. At the last frame playback stops and
// Advance returns false.
func (p *Player) Advance() bool {
	if p.playing && p.current < len(p.frames)-1 {
		p.current++
		return true
	}
	p.playing = false
	return false
}

// Tick advances by the playback speed, carrying fractional frames over
func (p *Player) Tick() {
	if !p.playing {
		return
	}
	p.carry += p.speed
	for p.carry >= 1 {
		p.carry--
		if !p.Advance() {
			p.carry = 0
			return
		}
	}
}

// Finished reports whether the playhead is on the last frame
func (p *Player) Finished() bool {
	return p.current >= len(p.frames)-1
}

// SetSpeed sets the playback multiplier within [MinSpeed, MaxSpeed]
func (p *Player) SetSpeed(speed float64) {
	p.speed = geom.Clamp(speed, MinSpeed, MaxSpeed)
}

// Speed returns the playback multiplier
func (p *Player) Speed() float64 {
	return p.speed
}
