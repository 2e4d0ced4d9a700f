package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gecko-animutils/internal/animation"
	"gecko-animutils/internal/graph"
	"gecko-animutils/internal/keyframe"
	"gecko-animutils/internal/mathutil"
)

type library map[string]*animation.Animation

func (l library) Animation(name string) (*animation.Animation, bool) {
	a, ok := l[name]
	return a, ok
}

// swing rotates "arm" from 0 to 100 degrees on X over 2 seconds.
func swing() library {
	a := animation.New("swing", 2, false)
	a.Animator("arm").Add(
		&keyframe.Keyframe{Channel: keyframe.Rotation, Time: 0},
		&keyframe.Keyframe{Channel: keyframe.Rotation, Time: 2, Value: mathutil.Vec3{100, 0, 0}},
	)
	b := animation.New("rest", 2, false)
	b.Animator("arm").Add(&keyframe.Keyframe{Channel: keyframe.Rotation, Time: 0, Value: mathutil.Vec3{-20, 0, 0}})
	return library{"swing": a, "rest": b}
}

func newClip(clock graph.Clock) *graph.Clip {
	return graph.NewClip("Animation Clip", "swing", clock, swing(), animation.NewPlayer(keyframe.Plain{}))
}

func armX(p animation.Pose) float64 {
	return p.Of("arm").Rotation[0]
}

func TestClip(t *testing.T) {
	t.Run("should start paused with defaults", func(t *testing.T) {
		c := newClip(&graph.Timer{})
		assert.Equal(t, graph.Paused, c.State())
		assert.True(t, c.Loop())
		assert.Equal(t, 1.0, c.Speed())
		assert.Equal(t, "swing", c.Clip())
	})
	t.Run("should not advance while paused", func(t *testing.T) {
		clock := &graph.Timer{}
		c := newClip(clock)
		clock.Tick(0.5)
		require.NoError(t, c.Execute())
		assert.Equal(t, 0.0, c.SeekTime())
		assert.InDelta(t, 0, armX(c.Output()), 1e-9)
	})
	t.Run("should play once connected", func(t *testing.T) {
		clock := &graph.Timer{}
		clock.Tick(3)
		c := newClip(clock)
		c.Connected(true)
		assert.Equal(t, graph.Playing, c.State())
		assert.Equal(t, 0.0, c.StartTime(), "resuming from pause keeps start time")
		clock.Tick(0.5)
		require.NoError(t, c.Execute())
		assert.InDelta(t, 25, armX(c.Output()), 1e-9)
	})
	t.Run("should scale by speed", func(t *testing.T) {
		clock := &graph.Timer{}
		c := newClip(clock)
		c.SetSpeed(2)
		c.Play()
		clock.Tick(0.5)
		require.NoError(t, c.Execute())
		assert.Equal(t, 1.0, c.SeekTime())
		assert.InDelta(t, 50, armX(c.Output()), 1e-9)
	})
	t.Run("should clamp speed", func(t *testing.T) {
		c := newClip(&graph.Timer{})
		c.SetSpeed(42)
		assert.Equal(t, float64(graph.MaxSpeed), c.Speed())
		c.SetSpeed(-1)
		assert.Equal(t, float64(graph.MinSpeed), c.Speed())
	})
	t.Run("should wrap when looping", func(t *testing.T) {
		clock := &graph.Timer{}
		c := newClip(clock)
		c.Play()
		clock.Tick(2.5)
		require.NoError(t, c.Execute())
		assert.Equal(t, graph.Playing, c.State())
		assert.InDelta(t, 25, armX(c.Output()), 1e-9)
	})
	t.Run("should stop at the end when not looping", func(t *testing.T) {
		clock := &graph.Timer{}
		c := newClip(clock)
		c.SetLoop(false)
		c.Play()
		clock.Tick(3)
		require.NoError(t, c.Execute())
		assert.Equal(t, graph.Stopped, c.State())
		assert.InDelta(t, 100, armX(c.Output()), 1e-9)

		c.Resume()
		assert.Equal(t, graph.Stopped, c.State(), "resume keeps a stopped clip stopped")

		clock.Tick(7)
		c.SetLoop(true)
		assert.Equal(t, graph.Playing, c.State())
		assert.Equal(t, 10.0, c.StartTime())
	})
	t.Run("should resume a paused clip", func(t *testing.T) {
		c := newClip(&graph.Timer{})
		c.Resume()
		assert.Equal(t, graph.Playing, c.State())
		c.Pause()
		assert.Equal(t, graph.Paused, c.State())
	})
	t.Run("should reject unknown states", func(t *testing.T) {
		c := newClip(&graph.Timer{})
		assert.ErrorIs(t, c.SetState("rewinding"), graph.ErrUnknownState)
		require.NoError(t, c.SetState(graph.Stopped))
		assert.Equal(t, graph.Stopped, c.State())
	})
	t.Run("should fail for unknown clips", func(t *testing.T) {
		c := newClip(&graph.Timer{})
		c.SetClip("dance")
		assert.ErrorIs(t, c.Execute(), graph.ErrUnknownClip)
	})
	t.Run("should count distinct retainers", func(t *testing.T) {
		c := newClip(&graph.Timer{})
		c.Retain("blend 1")
		c.Retain("blend 1")
		c.Retain("blend 2")
		assert.Equal(t, 2, c.RefCount())
		assert.True(t, c.Retained("blend 2"))
		c.Release("blend 1")
		c.Release("blend 3")
		assert.Equal(t, 1, c.RefCount())
		assert.False(t, c.Retained("blend 1"))
	})
}

func TestBlend(t *testing.T) {
	clock := &graph.Timer{}
	lib := swing()
	player := animation.NewPlayer(keyframe.Plain{})
	a := graph.NewClip("a", "swing", clock, lib, player)
	b := graph.NewClip("b", "rest", clock, lib, player)
	n := graph.NewBlend("mix", a, b)
	n.Alpha = 0.25

	assert.Equal(t, 1, a.RefCount())
	assert.Equal(t, graph.Playing, a.State())
	assert.Equal(t, graph.Playing, b.State())

	clock.Tick(1)
	require.NoError(t, n.Execute())
	assert.InDelta(t, 0.75*50+0.25*-20, armX(n.Output()), 1e-9)

	n.Close()
	assert.Equal(t, 0, a.RefCount())
	assert.Equal(t, 0, b.RefCount())
}
