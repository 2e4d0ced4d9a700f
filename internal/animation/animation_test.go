package animation_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gecko-animutils/internal/animation"
	"gecko-animutils/internal/easing"
	"gecko-animutils/internal/keyframe"
	"gecko-animutils/internal/mathutil"
)

func walk() *animation.Animation {
	a := animation.New("animation.model.walk", 2, true)
	a.Animator("leg").Add(
		&keyframe.Keyframe{Channel: keyframe.Rotation, Time: 1, Value: mathutil.Vec3{30, 0, 0}, Easing: easing.EaseInQuad},
		&keyframe.Keyframe{Channel: keyframe.Rotation, Time: 0, Value: mathutil.Vec3{0, 0, 0}},
		&keyframe.Keyframe{Channel: keyframe.Rotation, Time: 2, Value: mathutil.Vec3{0, 0, 0}, Easing: easing.EaseOutBack, EasingArgs: []float64{2}},
	)
	a.Animator("body").Add(
		&keyframe.Keyframe{Channel: keyframe.Position, Time: 0, Value: mathutil.Vec3{0, 1, 0}},
	)
	return a
}

func TestAnimator(t *testing.T) {
	a := walk()
	leg, ok := a.Lookup("leg")
	require.True(t, ok)

	t.Run("should sort channel keyframes by time", func(t *testing.T) {
		kfs := leg.Channel(keyframe.Rotation)
		require.Len(t, kfs, 3)
		assert.Equal(t, []float64{0, 1, 2}, []float64{kfs[0].Time, kfs[1].Time, kfs[2].Time})
	})
	t.Run("should keep insertion order for equal times", func(t *testing.T) {
		an := animation.New("a", 1, false).Animator("arm")
		first := &keyframe.Keyframe{Channel: keyframe.Scale, Time: 0.5}
		second := &keyframe.Keyframe{Channel: keyframe.Scale, Time: 0.5}
		an.Add(first, &keyframe.Keyframe{Channel: keyframe.Scale, Time: 1})
		an.Add(second, &keyframe.Keyframe{Channel: keyframe.Scale, Time: 0})
		kfs := an.Channel(keyframe.Scale)
		require.Len(t, kfs, 4)
		assert.Same(t, first, kfs[1])
		assert.Same(t, second, kfs[2])
	})
	t.Run("should sort keyframes appended directly", func(t *testing.T) {
		b := walk()
		arm := b.Animator("leg")
		arm.Keyframes = append(arm.Keyframes, &keyframe.Keyframe{Channel: keyframe.Rotation, Time: 0.5})
		kfs := arm.Channel(keyframe.Rotation)
		require.Len(t, kfs, 4)
		assert.Equal(t, 0.5, kfs[1].Time)
		arm.Add(&keyframe.Keyframe{Channel: keyframe.Rotation, Time: 1.5})
		assert.Len(t, arm.Channel(keyframe.Rotation), 5)
		assert.Equal(t, 1.5, arm.Channel(keyframe.Rotation)[3].Time)
	})
	t.Run("should read channels without allocating", func(t *testing.T) {
		allocs := testing.AllocsPerRun(100, func() {
			_ = leg.Channel(keyframe.Rotation)
		})
		assert.Zero(t, allocs)
	})
	t.Run("should report first keyframe in channel", func(t *testing.T) {
		kfs := leg.Channel(keyframe.Rotation)
		assert.True(t, leg.IsFirstInChannel(kfs[0]))
		assert.False(t, leg.IsFirstInChannel(kfs[1]))
	})
	t.Run("should keep animator creation order", func(t *testing.T) {
		var bones []string
		for _, an := range a.Animators() {
			bones = append(bones, an.Bone)
		}
		assert.Equal(t, []string{"leg", "body"}, bones)
	})
	t.Run("should derive duration from keyframes when length is unset", func(t *testing.T) {
		b := walk()
		b.Length = 0
		assert.Equal(t, 2.0, b.Duration())
	})
}

func TestWrap(t *testing.T) {
	a := walk()
	assert.Equal(t, 0.5, a.Wrap(2.5))
	assert.Equal(t, 1.5, a.Wrap(-0.5))
	a.Loop = false
	assert.Equal(t, 2.0, a.Wrap(2.5))
	assert.Equal(t, 0.0, a.Wrap(-1))
	assert.Equal(t, 0.0, animation.New("empty", 0, true).Wrap(3))
}

func TestPlayer(t *testing.T) {
	a := walk()
	leg, _ := a.Lookup("leg")

	t.Run("should clamp before first and after last keyframe", func(t *testing.T) {
		p := animation.NewPlayer(nil)
		v, ok, err := p.Sample(leg, keyframe.Rotation, -1)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, mathutil.Vec3{}, v)
		v, _, err = p.Sample(leg, keyframe.Rotation, 5)
		require.NoError(t, err)
		assert.Equal(t, mathutil.Vec3{}, v)
	})
	t.Run("should interpolate linearly with the plain strategy", func(t *testing.T) {
		v, ok, err := animation.NewPlayer(keyframe.Plain{}).Sample(leg, keyframe.Rotation, 0.5)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.InDelta(t, 15, v[0], 1e-9)
	})
	t.Run("should apply destination easing with the eased strategy", func(t *testing.T) {
		v, _, err := animation.NewPlayer(keyframe.Eased{}).Sample(leg, keyframe.Rotation, 0.5)
		require.NoError(t, err)
		assert.InDelta(t, 7.5, v[0], 1e-9)
	})
	t.Run("should report missing channel", func(t *testing.T) {
		_, ok, err := animation.NewPlayer(nil).Sample(leg, keyframe.Scale, 0.5)
		require.NoError(t, err)
		assert.False(t, ok)
	})
	t.Run("should wrap looping animations", func(t *testing.T) {
		p := animation.NewPlayer(keyframe.Plain{})
		pose, err := p.Pose(a, a.Wrap(2.5))
		require.NoError(t, err)
		assert.InDelta(t, 15, pose.Of("leg").Rotation[0], 1e-9)
		assert.Equal(t, mathutil.Vec3{1, 1, 1}, pose.Of("leg").Scale)
		assert.Equal(t, mathutil.Vec3{0, 1, 0}, pose.Of("body").Position)
		assert.Equal(t, animation.Identity, pose.Of("head"))
	})
	t.Run("should propagate interpolation errors", func(t *testing.T) {
		b := animation.New("broken", 1, false)
		b.Animator("arm").Add(
			&keyframe.Keyframe{Channel: keyframe.Rotation, Time: 0},
			&keyframe.Keyframe{Channel: keyframe.Rotation, Time: 1, Easing: easing.NameStep, EasingArgs: []float64{1}},
		)
		_, err := animation.NewPlayer(keyframe.Eased{}).Pose(b, 0.5)
		assert.ErrorIs(t, err, easing.ErrInvalidArgument)
	})
}

func TestPoseLerp(t *testing.T) {
	a := animation.Pose{"arm": {Rotation: mathutil.Vec3{10, 0, 0}, Scale: mathutil.Vec3{1, 1, 1}}}
	b := animation.Pose{"leg": {Position: mathutil.Vec3{0, 4, 0}, Scale: mathutil.Vec3{2, 2, 2}}}
	got := a.Lerp(b, 0.5)
	assert.InDelta(t, 5, got.Of("arm").Rotation[0], 1e-12)
	assert.InDelta(t, 2, got.Of("leg").Position[1], 1e-12)
	assert.InDelta(t, 1.5, got.Of("leg").Scale[0], 1e-12)
}

func TestGeckoFile(t *testing.T) {
	t.Run("should write easing metadata with the eased serializer", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, animation.Encode(&buf, []*animation.Animation{walk()}, keyframe.Eased{}))
		s := buf.String()
		assert.Contains(t, s, `"format_version": "1.8.0"`)
		assert.Contains(t, s, `"easing": "easeOutBack"`)
		assert.Contains(t, s, `"easingArgs": [`)
		assert.Contains(t, s, `"animation_length": 2`)
		assert.Contains(t, s, `"loop": true`)
	})
	t.Run("should write plain vectors with the plain serializer", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, animation.Encode(&buf, []*animation.Animation{walk()}, keyframe.Plain{}))
		assert.NotContains(t, buf.String(), "easing")
	})
	t.Run("should restore easing on decode", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, animation.Encode(&buf, []*animation.Animation{walk()}, keyframe.Eased{}))
		anims, err := animation.Decode(&buf, keyframe.Eased{})
		require.NoError(t, err)
		require.Len(t, anims, 1)
		a := anims[0]
		assert.Equal(t, "animation.model.walk", a.Name)
		assert.True(t, a.Loop)
		assert.Equal(t, 2.0, a.Length)
		leg, ok := a.Lookup("leg")
		require.True(t, ok)
		kfs := leg.Channel(keyframe.Rotation)
		require.Len(t, kfs, 3)
		assert.Equal(t, easing.EaseInQuad, kfs[1].Easing)
		assert.Equal(t, mathutil.Vec3{30, 0, 0}, kfs[1].Value)
		assert.Equal(t, []float64{2}, kfs[2].EasingArgs)
	})
	t.Run("should read constant channels and numeric strings", func(t *testing.T) {
		src := `{"format_version": "1.8.0", "animations": {"idle": {"loop": "hold_on_last_frame",
			"bones": {"head": {"rotation": [0, "5", 0], "scale": {"0.0": [1, 1, 1], "0.5": [2, 2, 2]}}}}}}`
		anims, err := animation.Decode(bytes.NewBufferString(src), keyframe.Eased{})
		require.NoError(t, err)
		require.Len(t, anims, 1)
		assert.False(t, anims[0].Loop)
		head, _ := anims[0].Lookup("head")
		assert.Equal(t, mathutil.Vec3{0, 5, 0}, head.Channel(keyframe.Rotation)[0].Value)
		assert.Len(t, head.Channel(keyframe.Scale), 2)
	})
	t.Run("should reject expressions", func(t *testing.T) {
		src := `{"animations": {"idle": {"bones": {"head": {"rotation": {"0.0": ["math.sin(q.anim_time)", 0, 0]}}}}}}`
		_, err := animation.Decode(bytes.NewBufferString(src), keyframe.Eased{})
		assert.Error(t, err)
	})
}

func TestTimecode(t *testing.T) {
	assert.Equal(t, "0.0", animation.Timecode(0))
	assert.Equal(t, "1.25", animation.Timecode(1.25))
	assert.Equal(t, "2.0", animation.Timecode(2))
}
