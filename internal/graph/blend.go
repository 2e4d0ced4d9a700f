package graph

import (
	"fmt"

	"gecko-animutils/internal/animation"
)

// Blend mixes the outputs of two clips. Alpha 0 is all A, 1 is all B.
type Blend struct {
	Title string
	Alpha float64

	a, b   *Clip
	output animation.Pose
}

// NewBlend connects a and b to a new blend node and retains them.
func NewBlend(title string, a, b *Clip) *Blend {
	n := &Blend{Title: title, a: a, b: b}
	for _, c := range []*Clip{a, b} {
		c.Retain(title)
		c.Connected(true)
	}
	return n
}

// Close releases the inputs.
func (n *Blend) Close() {
	n.a.Release(n.Title)
	n.b.Release(n.Title)
}

// Execute runs both inputs and blends their poses.
func (n *Blend) Execute() error {
	for _, c := range []*Clip{n.a, n.b} {
		if err := c.Execute(); err != nil {
			return fmt.Errorf("graph: blend %s: %w", n.Title, err)
		}
	}
	n.output = n.a.Output().Lerp(n.b.Output(), n.Alpha)
	return nil
}

// Output returns the pose computed by the last Execute.
func (n *Blend) Output() animation.Pose { return n.output }
