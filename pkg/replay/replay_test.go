package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/roadkill/pkg/level"
	"github.com/golangdaddy/roadkill/pkg/terrain"
	"github.com/golangdaddy/roadkill/pkg/vehicle"
	"github.com/golangdaddy/roadkill/pkg/zombie"
)

func TestRecorder_CapturesState(t *testing.T) {
	ground := terrain.Flat(460)
	car := vehicle.NewCar(ground)
	car.Speed = 3.5
	car.Health = 25
	car.Fuel = 60

	light := zombie.New(zombie.Light, 700, level.Get(1))
	heavy := zombie.New(zombie.Heavy, 900, level.Get(1))
	heavy.Dying = true
	heavy.DeathTimer = 12

	r := NewRecorder(0)
	require.NoError(t, r.Record(car, nil, 0, 0))
	assert.False(t, r.HasRecording(), "not recording yet")

	r.Start()
	require.NoError(t, r.Record(car, []*zombie.Zombie{light, heavy}, 42, 130))
	r.Stop()
	require.NoError(t, r.Record(car, nil, 0, 0))

	frames := r.Frames()
	require.Len(t, frames, 1)
	f := frames[0]
	assert.Equal(t, 42.0, f.Distance)
	assert.Equal(t, 130, f.Money)
	assert.Equal(t, vehicle.StartX, f.Car.X)
	assert.Equal(t, 3.5, f.Car.Speed)
	assert.Equal(t, 25.0, f.Car.Health)
	assert.Equal(t, 60.0, f.Car.Fuel)
	assert.Equal(t, vehicle.DefaultMaxFuel, f.Car.MaxFuel)

	require.Len(t, f.Zombies, 2)
	assert.Equal(t, zombie.Light, f.Zombies[0].Kind)
	assert.Equal(t, 700.0, f.Zombies[0].X)
	assert.True(t, f.Zombies[0].Alive)
	assert.Equal(t, zombie.Heavy, f.Zombies[1].Kind)
	assert.True(t, f.Zombies[1].Dying)
	assert.Equal(t, 12, f.Zombies[1].DeathTimer)

	car.Speed = 0
	light.X = 0
	assert.Equal(t, 3.5, r.Frames()[0].Car.Speed, "frames are copies")
	assert.Equal(t, 700.0, r.Frames()[0].Zombies[0].X)
}

func TestRecorder_Limit(t *testing.T) {
	car := vehicle.NewCar(terrain.Flat(460))
	r := NewRecorder(3)
	r.Start()
	for i := 0; i < 5; i++ {
		require.NoError(t, r.Record(car, nil, float64(i), 0))
	}
	frames := r.Frames()
	require.Len(t, frames, 3)
	assert.Equal(t, 2.0, frames[0].Distance)
	assert.Equal(t, 4.0, frames[2].Distance)

	r.Start()
	assert.False(t, r.HasRecording())
}

func TestFrame_Restore(t *testing.T) {
	ground := terrain.Flat(460)
	car := vehicle.NewCar(ground)
	car.X = 1234
	car.Angle = 12
	z := zombie.New(zombie.Heavy, 1500, level.Get(2))
	z.Health = 17

	r := NewRecorder(0)
	r.Start()
	require.NoError(t, r.Record(car, []*zombie.Zombie{z}, 1034, 0))

	target := vehicle.NewCar(ground)
	f := r.Frames()[0]
	require.NoError(t, f.Car.Apply(target))
	assert.Equal(t, 1234.0, target.X)
	assert.Equal(t, 12.0, target.Angle)
	assert.Equal(t, vehicle.DefaultWidth, target.Width, "unrecorded fields are kept")

	zs, err := f.BuildZombies()
	require.NoError(t, err)
	require.Len(t, zs, 1)
	assert.Equal(t, zombie.Heavy, zs[0].Kind)
	assert.Equal(t, 17.0, zs[0].Health)
	assert.Equal(t, zombie.Walking, zs[0].State())
}

func framesN(n int) []Frame {
	frames := make([]Frame, n)
	for i := range frames {
		frames[i].Distance = float64(i)
	}
	return frames
}

func TestPlayer_Advance(t *testing.T) {
	p := NewPlayer(framesN(3))
	assert.False(t, p.Advance(), "not started")

	p.Start()
	assert.True(t, p.Playing())
	assert.True(t, p.Advance())
	assert.True(t, p.Advance())
	assert.True(t, p.Finished())
	assert.False(t, p.Advance())
	assert.False(t, p.Playing())

	f, ok := p.Current()
	require.True(t, ok)
	assert.Equal(t, 2.0, f.Distance)

	p.Start()
	assert.Equal(t, 0, p.Index())
}

func TestPlayer_Empty(t *testing.T) {
	p := NewPlayer(nil)
	p.Start()
	_, ok := p.Current()
	assert.False(t, ok)
	assert.True(t, p.Finished())
	p.Tick()
	assert.False(t, p.Playing())
}

func TestPlayer_Speed(t *testing.T) {
	p := NewPlayer(framesN(20))
	p.SetSpeed(10)
	assert.Equal(t, MaxSpeed, p.Speed())
	p.SetSpeed(0)
	assert.Equal(t, MinSpeed, p.Speed())

	p.SetSpeed(0.5)
	p.Start()
	p.Tick()
	assert.Equal(t, 0, p.Index())
	p.Tick()
	assert.Equal(t, 1, p.Index())

	p.SetSpeed(3)
	p.Tick()
	assert.Equal(t, 4, p.Index())

	p.SetSpeed(5)
	for i := 0; i < 10; i++ {
		p.Tick()
	}
	assert.True(t, p.Finished())
	assert.False(t, p.Playing())
}
