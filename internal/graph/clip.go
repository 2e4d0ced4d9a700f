// Package graph implements the animation blending graph nodes.
package graph

import (
	"errors"
	"fmt"
	"math"

	"github.com/ErikKalkoken/go-set"

	"gecko-animutils/internal/animation"
)

// PlayState is the playback state of a clip node.
type PlayState string

const (
	Playing PlayState = "playing"
	Paused  PlayState = "paused"
	Stopped PlayState = "stopped"
)

// Speed limits of a clip node.
const (
	MinSpeed = 0
	MaxSpeed = 10
)

var (
	ErrUnknownState = errors.New("unrecognized play state")
	ErrUnknownClip  = errors.New("unknown animation clip")
)

// Clock is the time source of a graph. Both values are seconds.
type Clock interface {
	Elapsed() float64 // since the previous execution
	Now() float64     // since the graph started
}

// Library resolves animation clips by name.
type Library interface {
	Animation(name string) (*animation.Animation, bool)
}

// Sampler produces the pose of an animation at a time in seconds.
type Sampler interface {
	Pose(a *animation.Animation, t float64) (animation.Pose, error)
}

// Clip is a graph node that plays one animation and outputs its pose.
// A new clip is paused and starts playing once its output is connected.
type Clip struct {
	Title string

	clock   Clock
	lib     Library
	sampler Sampler

	clip  string
	loop  bool
	speed float64

	state     PlayState
	seek      float64 // seconds of playback, not wrapped
	startTime float64
	refs      set.Set[string]
	output    animation.Pose
}

// NewClip returns a paused, looping clip node at normal speed.
func NewClip(title, clip string, clock Clock, lib Library, sampler Sampler) *Clip {
	return &Clip{
		Title:   title,
		clock:   clock,
		lib:     lib,
		sampler: sampler,
		clip:    clip,
		loop:    true,
		speed:   1,
		state:   Paused,
	}
}

// Clip returns the name of the played animation.
func (c *Clip) Clip() string { return c.clip }

// SetClip selects the played animation.
func (c *Clip) SetClip(name string) { c.clip = name }

// Loop reports whether playback wraps at the end of the clip.
func (c *Clip) Loop() bool { return c.loop }

// SetLoop enables or disables looping. Enabling it restarts a stopped clip.
func (c *Clip) SetLoop(loop bool) {
	c.loop = loop
	if loop && c.state == Stopped {
		c.setState(Playing)
	}
}

// Speed returns the playback rate.
func (c *Clip) Speed() float64 { return c.speed }

// SetSpeed sets the playback rate, clamped to [MinSpeed, MaxSpeed].
func (c *Clip) SetSpeed(v float64) {
	c.speed = min(max(v, MinSpeed), MaxSpeed)
}

// State returns the play state.
func (c *Clip) State() PlayState { return c.state }

// SetState switches the play state.
func (c *Clip) SetState(s PlayState) error {
	switch s {
	case Playing, Paused, Stopped:
		c.setState(s)
		return nil
	}
	return fmt.Errorf("graph: clip %s: %w: %q", c.Title, ErrUnknownState, s)
}

func (c *Clip) setState(s PlayState) {
	if s == c.state {
		return
	}
	if s == Playing && c.state != Paused {
		c.startTime = c.clock.Now()
	}
	c.state = s
}

// Play starts or continues playback.
func (c *Clip) Play() { c.setState(Playing) }

// Pause holds the current position.
func (c *Clip) Pause() { c.setState(Paused) }

// Resume continues a paused clip. Stopped clips stay stopped.
func (c *Clip) Resume() {
	if c.state == Stopped {
		return
	}
	c.setState(Playing)
}

// StartTime returns the graph time at which playback last started from a non-paused state.
func (c *Clip) StartTime() float64 { return c.startTime }

// SeekTime returns the accumulated playback time in seconds.
func (c *Clip) SeekTime() float64 { return c.seek }

// Connected is called when the output connections change.
// A paused clip starts playing when its output gets connected.
func (c *Clip) Connected(connected bool) {
	if connected && c.state == Paused {
		c.Play()
	}
}

// Retain registers a node that consumes this clip.
func (c *Clip) Retain(retainer string) { c.refs.Add(retainer) }

// Release unregisters a consumer.
func (c *Clip) Release(retainer string) { c.refs.Delete(retainer) }

// RefCount returns the number of distinct retainers.
func (c *Clip) RefCount() int { return c.refs.Size() }

// Retained reports whether retainer holds the clip.
func (c *Clip) Retained(retainer string) bool { return c.refs.Contains(retainer) }

// Output returns the pose computed by the last Execute.
func (c *Clip) Output() animation.Pose { return c.output }

// Execute advances playback by the elapsed graph time and samples the clip.
// Past the end a looping clip wraps, otherwise it stops on the last frame.
func (c *Clip) Execute() error {
	switch c.state {
	case Playing:
		c.seek += c.clock.Elapsed() * c.speed
	case Paused, Stopped:
	default:
		return fmt.Errorf("graph: clip %s: %w: %q", c.Title, ErrUnknownState, c.state)
	}
	a, ok := c.lib.Animation(c.clip)
	if !ok {
		return fmt.Errorf("graph: clip %s: %w: %q", c.Title, ErrUnknownClip, c.clip)
	}
	d := a.Duration()
	var norm float64
	if d > 0 {
		norm = c.seek / d
	}
	if norm > 1 {
		if c.loop {
			norm = math.Mod(norm, 1)
		} else {
			c.setState(Stopped)
			norm = 1
		}
	}
	pose, err := c.sampler.Pose(a, norm*d)
	if err != nil {
		return fmt.Errorf("graph: clip %s: %w", c.Title, err)
	}
	c.output = pose
	return nil
}
