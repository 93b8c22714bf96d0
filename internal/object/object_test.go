package object

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/airhockey/internal/draw"
	"github.com/tomz197/airhockey/internal/physics"
)

func TestFieldGoalMouthIsStrict(t *testing.T) {
	f := DefaultField()
	top := f.GoalTop()
	assert.Equal(t, 125.0, top)

	assert.True(t, f.InGoalMouth(250))
	assert.True(t, f.InGoalMouth(top+0.001))
	assert.False(t, f.InGoalMouth(top), "upper post is not inside")
	assert.False(t, f.InGoalMouth(top+f.GoalHeight), "lower post is not inside")
	assert.False(t, f.InGoalMouth(10))
}

func TestPlayerMoveStaysInsideField(t *testing.T) {
	f := DefaultField()
	const speed = 6.0

	starts := []physics.Vec2{
		{X: 20, Y: 20},
		{X: 780, Y: 480},
		{X: 23, Y: 477},
		{X: 400, Y: 250},
	}

	// Every combination of the four direction keys.
	for mask := 0; mask < 16; mask++ {
		intents := Intents{
			Up:    mask&1 != 0,
			Down:  mask&2 != 0,
			Left:  mask&4 != 0,
			Right: mask&8 != 0,
		}
		for _, start := range starts {
			p := NewPlayer(SideLeft, 20, "#ffd700")
			p.Position = start
			p.Intents = intents
			for i := 0; i < 200; i++ {
				p.Move(speed, f)
				assert.GreaterOrEqual(t, p.Position.X, p.Radius())
				assert.LessOrEqual(t, p.Position.X, f.Width-p.Radius())
				assert.GreaterOrEqual(t, p.Position.Y, p.Radius())
				assert.LessOrEqual(t, p.Position.Y, f.Height-p.Radius())
			}
		}
	}
}

func TestPlayerMoveDiagonalIsNotNormalized(t *testing.T) {
	p := NewPlayer(SideRight, 20, "#ff4500")
	p.Position = physics.NewVec2(400, 250)
	p.Intents = Intents{Down: true, Right: true}

	p.Move(6, DefaultField())

	assert.Equal(t, physics.NewVec2(6, 6), p.Velocity)
	assert.Equal(t, physics.NewVec2(406, 256), p.Position)
}

func TestPlayerMoveOppositeKeys(t *testing.T) {
	p := NewPlayer(SideLeft, 20, "#ffd700")
	p.Position = physics.NewVec2(400, 250)
	p.Intents = Intents{Up: true, Down: true, Left: true, Right: true}

	p.Move(6, DefaultField())

	// Down and right are applied last and win.
	assert.Equal(t, physics.NewVec2(6, 6), p.Velocity)
}

func TestPlayerClampKeepsVelocity(t *testing.T) {
	p := NewPlayer(SideLeft, 20, "#ffd700")
	p.Position = physics.NewVec2(778, 250)
	p.Intents = Intents{Right: true}

	p.Move(6, DefaultField())

	assert.Equal(t, 780.0, p.Position.X)
	assert.Equal(t, 6.0, p.Velocity.X, "clamping must not zero the velocity")
}

func TestBallAdvanceAppliesFriction(t *testing.T) {
	b := NewBall(10, "#ffffff")
	b.Position = physics.NewVec2(100, 100)
	b.Velocity = physics.NewVec2(10, -5)

	b.Advance(0.5)

	assert.Equal(t, physics.NewVec2(110, 95), b.Position)
	assert.Equal(t, physics.NewVec2(5, -2.5), b.Velocity)
}

func TestSide(t *testing.T) {
	assert.Equal(t, SideRight, SideLeft.Opponent())
	assert.Equal(t, SideLeft, SideRight.Opponent())
	assert.Equal(t, "left", SideLeft.String())
	assert.Equal(t, "right", SideRight.String())
}

func TestIntentsClear(t *testing.T) {
	i := Intents{Up: true, Left: true}
	i.Clear()
	assert.Equal(t, Intents{}, i)
}

func TestTextAboveRenderArea(t *testing.T) {
	var buf bytes.Buffer
	cw := draw.NewChunkWriter(&buf, 6, 2)

	Text{X: 1, Y: -1, Value: "hud", Width: 3}.DrawTo(cw, nil)
	Text{X: -20, Y: -9, Value: "clamped", Width: 7}.DrawTo(cw, nil)
	Text{X: 1, Y: 1, Value: ""}.DrawTo(cw, nil)
	require.NoError(t, cw.Flush())

	assert.Equal(t, "\033[1;7Hhud\033[1;1Hclamped", buf.String())
}

func TestDrawUsesEntityColours(t *testing.T) {
	canvas := draw.NewScaledCanvas(80, 25, 800, 500, nil)
	ctx := DrawContext{Canvas: canvas}

	p := NewPlayer(SideRight, 20, "#ff4500")
	p.Position = physics.NewVec2(650, 250)
	b := NewBall(10, "#ffffff")
	b.Position = physics.NewVec2(400, 250)

	require.NoError(t, p.Draw(ctx))
	require.NoError(t, b.Draw(ctx))

	assert.Equal(t, canvas.Ink(p.Color()), canvas.At(650, 250))
	assert.Equal(t, canvas.Ink(b.Color()), canvas.At(400, 250))
	assert.NotEqual(t, canvas.At(650, 250), canvas.At(400, 250))
}
